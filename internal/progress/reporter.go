// Package progress shows that a slow request is running.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter gives feedback while one piece of work runs.
type Reporter interface {
	Start(desc string)
	Stop(err error)
}

// NewReporter returns a spinner writing to w, or a line-by-line reporter if
// the CI environment variable is set.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: w}
	}
	return &SpinnerReporter{w: w}
}

// Run reports desc while fn runs and returns fn's error.
func Run(r Reporter, desc string, fn func() error) error {
	r.Start(desc)
	err := fn()
	r.Stop(err)
	return err
}

const tick = 100 * time.Millisecond

// SpinnerReporter displays an indeterminate progress bar.
type SpinnerReporter struct {
	w    io.Writer
	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
}

func (r *SpinnerReporter) Start(desc string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)
	_ = r.bar.RenderBlank()

	r.done = make(chan struct{})
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		for {
			select {
			case <-r.done:
				return
			case <-ticker.C:
				_ = r.bar.Add(1)
			}
		}
	}()
}

func (r *SpinnerReporter) Stop(err error) {
	if r.bar == nil {
		return
	}
	close(r.done)
	r.wg.Wait()
	_ = r.bar.Finish()
	r.bar = nil
}

// CIReporter prints one line when work starts and one when it ends.
type CIReporter struct {
	w    io.Writer
	desc string
}

func (r *CIReporter) Start(desc string) {
	r.desc = desc
	fmt.Fprintf(r.w, "%s...\n", desc)
}

func (r *CIReporter) Stop(err error) {
	if err != nil {
		fmt.Fprintf(r.w, "%s failed: %v\n", r.desc, err)
		return
	}
	fmt.Fprintf(r.w, "%s done\n", r.desc)
}
