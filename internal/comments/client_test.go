package comments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPageName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/knowledge/Homelab/XYZ/Debian-Systems", "Debian-Systems"},
		{"/knowledge/Homelab/XYZ/Debian-Systems/", "Debian-Systems"},
		{"/knowledge/", "knowledge"},
		{"/", ""},
		{"", ""},
		{"page", "page"},
	}
	for _, tt := range tests {
		if got := PageName(tt.path); got != tt.want {
			t.Errorf("PageName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}

	if got := PageNameFromURL("https://example.com/notes/Go-Tips/?x=1#top"); got != "Go-Tips" {
		t.Errorf("PageNameFromURL: got %q", got)
	}
}

func TestClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/comments" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("pageName"); got != "Debian Systems" {
			t.Errorf("pageName: got %q", got)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept: got %q", r.Header.Get("Accept"))
		}
		if _, err := uuid.Parse(r.Header.Get("X-Request-ID")); err != nil {
			t.Errorf("X-Request-ID: %v", err)
		}
		json.NewEncoder(w).Encode([]Comment{
			{Author: "a", Message: "first", Timestamp: "2024-03-05T10:00:00Z"},
			{Author: "b", Message: "second", Timestamp: "2024-03-06T10:00:00Z"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", time.Second)
	got, err := c.List(context.Background(), "Debian Systems")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].Author != "a" || got[1].Message != "second" {
		t.Errorf("unexpected comments %+v", got)
	}
}

func TestClientListNullAndHTTPError(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte("null"))
	}))
	defer srv.Close()
	c := NewClient(srv.URL, time.Second)

	got, err := c.List(context.Background(), "p")
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("null body: got %v, %v", got, err)
	}

	status = http.StatusInternalServerError
	if _, err := c.List(context.Background(), "p"); err == nil {
		t.Fatal("expected error for status 500")
	}
}

func TestClientPost(t *testing.T) {
	var got Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type: got %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sub := Submission{Author: "ann", Message: "hi", Timestamp: "1700000000000"}
	if err := NewClient(srv.URL, time.Second).Post(context.Background(), "p", sub); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if got != sub {
		t.Errorf("body: got %+v, want %+v", got, sub)
	}
}

func TestClientPostErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantAPI bool
		wantMsg string
	}{
		{"api message", `{"error":"too fast"}`, true, "too fast"},
		{"no message", `{}`, true, DefaultSubmitFailed},
		{"not json", `<html>bad gateway</html>`, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL, time.Second).Post(context.Background(), "p", Submission{})
			if err == nil {
				t.Fatal("expected error")
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) != tt.wantAPI {
				t.Fatalf("APIError: got %v, want %v (%v)", apiErr != nil, tt.wantAPI, err)
			}
			if tt.wantAPI && (apiErr.Message != tt.wantMsg || apiErr.Status != http.StatusBadRequest) {
				t.Errorf("got %+v", apiErr)
			}
		})
	}
}

func TestValidators(t *testing.T) {
	if ValidateAuthor("  ") == nil {
		t.Error("blank author should fail")
	}
	if ValidateAuthor(strings.Repeat("a", 51)) == nil {
		t.Error("51-character author should fail")
	}
	if ValidateMessage("ok") != nil {
		t.Error("short message should pass")
	}
}
