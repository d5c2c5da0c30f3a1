package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/one137/internal/comments"
	"github.com/iburimskiy/one137/internal/progress"
	"github.com/iburimskiy/one137/internal/server"
)

var (
	commentsPage  string
	serveAddr     string
	serveAllowAll bool
	postAuthor    string
	postMessage   string
	postNoConfirm bool
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Work with the comment section of a page",
}

var commentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the comments of a page",
	RunE: func(cmd *cobra.Command, args []string) error {
		if commentsPage == "" {
			return errors.New("--page is required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		list, err := newAPI(cfg.Comments).List(cmd.Context(), comments.PageNameFromURL(pageHref(commentsPage)))
		if err != nil {
			return fmt.Errorf("%s: %w", comments.LoadErrorMessage, err)
		}
		renderer := comments.NewRenderer(comments.RenderOptionsFromConfig(cfg.Comments))
		(&terminalView{out: cmd.OutOrStdout()}).SetList(renderer.Text(list))
		return nil
	},
}

var commentsPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Write a comment for a page",
	Long: `Shows the page's comments, then asks for a name and a message and
submits them. Messages support markdown: *italic*, ` + "`code`" + `, > quotes and lists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if commentsPage == "" {
			return errors.New("--page is required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		policy := comments.PolicyFromConfig(cfg.Comments)
		w := newWidget(cfg.Comments, cmd.OutOrStdout())
		w.Inject(pageHref(commentsPage))
		_ = w.Load(ctx)

		in := comments.Input{Author: postAuthor, Message: postMessage}
		if in.Author == "" {
			if in.Author, err = ask("Name", comments.ValidateAuthor); err != nil {
				return err
			}
		}
		if in.Message == "" {
			if in.Message, err = ask("Message", comments.ValidateMessage); err != nil {
				return err
			}
		}

		if postNoConfirm {
			until := w.RenderedAt().Add(policy.MinDwell)
			if time.Now().Before(until) {
				err := progress.Run(progress.NewReporter(os.Stderr), "Waiting before submitting", func() error {
					return waitUntil(ctx, until)
				})
				if err != nil {
					return err
				}
			}
		}

		for {
			err := w.Submit(ctx, in)
			if !errors.Is(err, comments.ErrTooSoon) {
				if err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Comment posted.")
				}
				return err
			}
			if postNoConfirm {
				return err
			}
			confirm := promptui.Prompt{Label: "Submit now", IsConfirm: true}
			if _, err := confirm.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) {
					return nil
				}
				return fmt.Errorf("confirm: %w", err)
			}
		}
	},
}

var commentsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Follow page changes read from stdin",
	Long: `Reads one page name, path or URL per line, as a router hook would emit
them, and shows the comments of each page it settles on. Lines that arrive
within comments.navigation_debounce of each other only load the last one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		w := newWidget(cfg.Comments, cmd.OutOrStdout())
		if commentsPage != "" {
			w.Inject(pageHref(commentsPage))
			_ = w.Load(ctx)
		}

		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			w.Navigate(ctx, pageHref(line))
		}
		w.Settle()
		return sc.Err()
	},
}

// ask prompts for one field until it validates.
func ask(label string, validate func(string) error) (string, error) {
	p := promptui.Prompt{Label: label, Validate: validate}
	v, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	return v, nil
}

var commentsServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the comment section as an HTML form",
	Long:  `Serves GET/POST /comments/{page}, forwarding submissions to the comments API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		srv := server.New(server.Config{
			Addr:     addr,
			AllowAll: serveAllowAll || cfg.Server.AllowAll,
			Verbose:  verbose,
		},
			comments.NewClient(cfg.Comments.APIURL, cfg.Comments.RequestTimeout),
			comments.NewRenderer(comments.RenderOptionsFromConfig(cfg.Comments)),
			comments.PolicyFromConfig(cfg.Comments),
		)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "one137 %s serving comments on %s\n", Version, addr)
		fmt.Fprintf(os.Stderr, "  API: %s\n", cfg.Comments.APIURL)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	commentsCmd.PersistentFlags().StringVarP(&commentsPage, "page", "p", "", "page name, path or URL")

	commentsPostCmd.Flags().StringVar(&postAuthor, "author", "", "name (prompted when empty)")
	commentsPostCmd.Flags().StringVar(&postMessage, "message", "", "message (prompted when empty)")
	commentsPostCmd.Flags().BoolVar(&postNoConfirm, "no-confirm", false, "wait out the dwell time instead of asking")

	commentsServeCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	commentsServeCmd.Flags().BoolVar(&serveAllowAll, "allow-all", false, "allow all CORS origins")

	commentsCmd.AddCommand(commentsListCmd, commentsPostCmd, commentsBrowseCmd, commentsServeCmd)
	rootCmd.AddCommand(commentsCmd)
}
