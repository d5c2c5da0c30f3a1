// Package comments implements a comment section scoped to a page: an API
// client, list rendering and the form controller guarding submissions.
package comments

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iburimskiy/one137/internal/config"
)

// User-visible messages.
const (
	NoCommentsMessage   = "No comments yet."
	LoadErrorMessage    = "Error loading comments. Please try again later."
	TooSoonMessage      = "Please review your message before submitting."
	SubmitErrorMessage  = "Error submitting comment. Please try again later."
	DefaultSubmitFailed = "Failed to submit comment"
)

var (
	// ErrTooSoon is returned when a form is submitted before the minimum dwell time.
	ErrTooSoon = errors.New("comments: submitted too soon after the form was shown")
	// ErrSubmitInFlight is returned when a submission is already running.
	ErrSubmitInFlight = errors.New("comments: a submission is already in flight")
)

// Comment is a record owned by the comments API.
type Comment struct {
	Author    string `json:"author"`
	Message   string `json:"message"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

// Submission is the POST body. Timestamp is the time the form was shown, in
// Unix milliseconds, which the API uses for its own dwell check.
type Submission struct {
	Author    string `json:"author"`
	Message   string `json:"message"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

// APIError is a non-2xx answer from the comments API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("comments api: status %d: %s", e.Status, e.Message)
}

// Input is what a user typed into the form. Email is a honeypot field that
// people leave empty.
type Input struct {
	Author  string
	Message string
	Email   string
}

// Trim returns in with surrounding whitespace removed from every field.
func (in Input) Trim() Input {
	return Input{
		Author:  strings.TrimSpace(in.Author),
		Message: strings.TrimSpace(in.Message),
		Email:   strings.TrimSpace(in.Email),
	}
}

// ValidateAuthor applies the form's required and maxlength rules.
func ValidateAuthor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(s) > config.MaxAuthorLength {
		return fmt.Errorf("name is longer than %d characters", config.MaxAuthorLength)
	}
	return nil
}

// ValidateMessage applies the form's required and maxlength rules.
func ValidateMessage(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("message is required")
	}
	if utf8.RuneCountInString(s) > config.MaxMessageLength {
		return fmt.Errorf("message is longer than %d characters", config.MaxMessageLength)
	}
	return nil
}
