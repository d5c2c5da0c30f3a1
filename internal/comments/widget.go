package comments

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/iburimskiy/one137/internal/config"
)

// View is the surface a Widget drives. Calls are made with the widget's lock
// held, so implementations must not call back into the widget.
type View interface {
	// SetList replaces the rendered comment list.
	SetList(content string)
	ShowError(msg string)
	HideError()
	SetSubmitEnabled(enabled bool)
	// ResetForm clears the form fields.
	ResetForm()
}

// AfterFunc runs f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Option configures a Widget.
type Option func(*Widget)

// WithPolicy sets the submission guards. The default is StrictPolicy.
func WithPolicy(p Policy) Option {
	return func(w *Widget) { w.policy = p }
}

// WithFormatter sets how loaded lists are rendered for the view.
func WithFormatter(format func([]Comment) string) Option {
	return func(w *Widget) { w.format = format }
}

// WithDebounce sets the delay between a navigation and the re-injection.
func WithDebounce(d time.Duration) Option {
	return func(w *Widget) { w.debounce = d }
}

// WithClock replaces the wall clock and timers.
func WithClock(now func() time.Time, after AfterFunc) Option {
	return func(w *Widget) {
		w.now = now
		w.after = after
	}
}

// WithLogger sets the logger for API failures.
func WithLogger(l *log.Logger) Option {
	return func(w *Widget) { w.logger = l }
}

// Widget is the comment section of one page at a time. It keeps the render
// time of its form, refuses submissions that come too soon and serializes
// submissions.
type Widget struct {
	api      API
	view     View
	format   func([]Comment) string
	policy   Policy
	debounce time.Duration
	now      func() time.Time
	after    AfterFunc
	logger   *log.Logger

	mu         sync.Mutex
	href       string
	page       string
	renderedAt time.Time
	submitting bool
	loadSeq    uint64
	stopNav    func() bool
	navs       sync.WaitGroup
}

// NewWidget creates a Widget. Nothing is shown until Inject is called.
func NewWidget(api API, view View, opts ...Option) *Widget {
	w := &Widget{
		api:      api,
		view:     view,
		format:   NewRenderer(RenderOptions{}).HTML,
		policy:   StrictPolicy,
		debounce: config.NavigationDebounce,
		now:      time.Now,
		after:    realAfterFunc,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Inject shows a fresh form for href and records its render time.
func (w *Widget) Inject(href string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.injectLocked(href)
}

func (w *Widget) injectLocked(href string) {
	w.href = href
	w.page = PageNameFromURL(href)
	w.renderedAt = w.now()
	w.view.ResetForm()
	w.view.HideError()
	w.view.SetSubmitEnabled(!w.submitting)
}

// Page returns the page the widget currently shows.
func (w *Widget) Page() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.page
}

// RenderedAt returns when the current form was shown.
func (w *Widget) RenderedAt() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.renderedAt
}

// Submitting reports whether a submission is in flight or cooling down.
func (w *Widget) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Load fetches the current page's comments into the view. A load that
// finishes after a newer one was started is dropped.
func (w *Widget) Load(ctx context.Context) error {
	w.mu.Lock()
	w.loadSeq++
	seq, page := w.loadSeq, w.page
	w.mu.Unlock()

	comments, err := w.api.List(ctx, page)

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.loadSeq {
		return nil
	}
	if err != nil {
		w.logger.Printf("comments: error loading comments for %q: %v", page, err)
		w.view.SetList(LoadErrorMessage)
		return err
	}
	w.view.SetList(w.format(comments))
	return nil
}

// Submit posts in for the current page. It returns ErrSubmitInFlight while
// another submission runs and ErrTooSoon before the dwell time has passed;
// both leave the API untouched.
func (w *Widget) Submit(ctx context.Context, in Input) error {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return ErrSubmitInFlight
	}
	w.submitting = true
	w.view.SetSubmitEnabled(false)
	w.view.HideError()

	if w.policy.TooSoon(w.renderedAt, w.now()) {
		w.view.ShowError(TooSoonMessage)
		w.resetSubmitLocked()
		w.mu.Unlock()
		return ErrTooSoon
	}

	in = in.Trim()
	sub := Submission{
		Author:    in.Author,
		Message:   in.Message,
		Email:     in.Email,
		Timestamp: strconv.FormatInt(w.renderedAt.UnixMilli(), 10),
	}
	page := w.page
	w.mu.Unlock()

	if err := w.api.Post(ctx, page, sub); err != nil {
		w.logger.Printf("comments: error submitting comment for %q: %v", page, err)
		msg := SubmitErrorMessage
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}

		w.mu.Lock()
		w.view.ShowError(msg)
		if w.policy.CooldownOnFailure {
			w.after(w.policy.ResubmissionDelay, w.resetSubmit)
		} else {
			w.resetSubmitLocked()
		}
		w.mu.Unlock()
		return err
	}

	w.mu.Lock()
	w.view.ResetForm()
	w.renderedAt = w.now()
	w.mu.Unlock()

	// A failed reload is already shown in the list.
	_ = w.Load(ctx)

	w.after(w.policy.ResubmissionDelay, w.resetSubmit)
	return nil
}

func (w *Widget) resetSubmit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetSubmitLocked()
}

func (w *Widget) resetSubmitLocked() {
	w.submitting = false
	w.view.SetSubmitEnabled(true)
}

// Navigate reacts to a location change. When href differs from the current
// one, the form is re-injected and reloaded after the debounce delay; a newer
// navigation within the delay replaces the pending one.
func (w *Widget) Navigate(ctx context.Context, href string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if href == w.href {
		return
	}
	w.href = href
	if w.stopNav != nil && w.stopNav() {
		w.navs.Done()
	}
	w.navs.Add(1)
	w.stopNav = w.after(w.debounce, func() {
		defer w.navs.Done()
		w.mu.Lock()
		if w.href != href {
			w.mu.Unlock()
			return
		}
		w.injectLocked(href)
		w.mu.Unlock()
		_ = w.Load(ctx)
	})
}

// Settle blocks until the pending navigation, if any, has been applied.
func (w *Widget) Settle() {
	w.navs.Wait()
}
