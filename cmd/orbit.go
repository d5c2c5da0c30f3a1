package cmd

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/one137/internal/game"
	"github.com/iburimskiy/one137/internal/term"
)

var (
	orbitTerminal bool
	orbitSeed     uint64
)

var orbitCmd = &cobra.Command{
	Use:   "orbit",
	Short: "Show the animated electron shells",
	Long: `Opens a window with the electron cloud. W/S, the arrow keys, the mouse
wheel or a pinch zoom; +/- add or remove electrons; hovering a shell
highlights its link and clicking it shows the shell's details.

With --terminal the cloud is drawn in the terminal instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Orbit.Seed = orbitSeed
		}

		if orbitTerminal {
			// Log lines would tear the screen.
			if !verbose {
				log.SetOutput(io.Discard)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err := term.Run(ctx, cfg.Orbit)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if err := game.Run(cfg); err != nil {
			if derr := zenity.Error(err.Error(), zenity.Title("one137"), zenity.ErrorIcon); derr != nil && !errors.Is(derr, zenity.ErrCanceled) {
				log.Printf("orbit: error dialog: %v", derr)
			}
			return err
		}
		return nil
	},
}

func init() {
	orbitCmd.Flags().BoolVarP(&orbitTerminal, "terminal", "t", false, "draw in the terminal")
	orbitCmd.Flags().Uint64Var(&orbitSeed, "seed", 0, "random seed for a reproducible cloud (0 picks one)")
	rootCmd.AddCommand(orbitCmd)
}
