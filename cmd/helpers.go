package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/iburimskiy/one137/internal/comments"
	"github.com/iburimskiy/one137/internal/config"
	"github.com/iburimskiy/one137/internal/progress"
)

// reportingAPI shows a spinner while each request runs.
type reportingAPI struct {
	api      comments.API
	reporter progress.Reporter
}

func (a *reportingAPI) List(ctx context.Context, page string) ([]comments.Comment, error) {
	var list []comments.Comment
	err := progress.Run(a.reporter, "Loading comments", func() error {
		var err error
		list, err = a.api.List(ctx, page)
		return err
	})
	return list, err
}

func (a *reportingAPI) Post(ctx context.Context, page string, s comments.Submission) error {
	return progress.Run(a.reporter, "Submitting comment", func() error {
		return a.api.Post(ctx, page, s)
	})
}

func newAPI(cfg config.CommentsConfig) comments.API {
	return &reportingAPI{
		api:      comments.NewClient(cfg.APIURL, cfg.RequestTimeout),
		reporter: progress.NewReporter(os.Stderr),
	}
}

// newWidget builds a comment widget that prints to out, with the guards and
// navigation delay from cfg.
func newWidget(cfg config.CommentsConfig, out io.Writer) *comments.Widget {
	renderer := comments.NewRenderer(comments.RenderOptionsFromConfig(cfg))
	return comments.NewWidget(newAPI(cfg), &terminalView{out: out},
		comments.WithPolicy(comments.PolicyFromConfig(cfg)),
		comments.WithFormatter(renderer.Text),
		comments.WithDebounce(cfg.NavigationDebounce),
	)
}

// waitUntil blocks until t or until ctx is done.
func waitUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pageHref accepts a page name, a path or a URL and returns something the
// widget can take the page name from.
func pageHref(page string) string {
	if strings.Contains(page, "/") {
		return page
	}
	return "/" + page
}

// terminalView prints what a browser would show in the comment section.
// The terminal keeps no form state, so clearing and enabling are no-ops.
type terminalView struct {
	out io.Writer
}

func (v *terminalView) SetList(content string) {
	fmt.Fprintln(v.out, strings.TrimRight(content, "\n"))
}

func (v *terminalView) ShowError(msg string) {
	fmt.Fprintf(v.out, "! %s\n", msg)
}

func (v *terminalView) HideError()            {}
func (v *terminalView) SetSubmitEnabled(bool) {}
func (v *terminalView) ResetForm()            {}
