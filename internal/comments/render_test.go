package comments

import (
	"strings"
	"testing"
	"time"
)

func utcRenderer(raw bool) *Renderer {
	return NewRenderer(RenderOptions{Location: time.UTC, RawHTML: raw})
}

func TestRenderEmpty(t *testing.T) {
	r := utcRenderer(false)
	if got := r.HTML(nil); got != NoCommentsMessage {
		t.Errorf("HTML: got %q", got)
	}
	if got := r.Text([]Comment{}); got != NoCommentsMessage {
		t.Errorf("Text: got %q", got)
	}
}

func TestRenderHTML(t *testing.T) {
	r := utcRenderer(false)
	got := r.HTML([]Comment{
		{Author: "first", Message: "*hi* and `code`", Timestamp: "2024-03-05T10:00:00Z"},
		{Author: "second", Message: "> quoted", Timestamp: "1709633000000"},
	})

	for _, want := range []string{
		`<span class="comment-author">first</span>`,
		`<span class="comment-timestamp">Mar 5, 2024</span>`,
		"<em>hi</em>",
		"<code>code</code>",
		"<blockquote>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Index(got, "first") > strings.Index(got, "second") {
		t.Error("comments should keep API order")
	}
	if strings.Count(got, `<div class="comment">`) != 2 {
		t.Errorf("expected two comment blocks:\n%s", got)
	}
}

func TestRenderEscapesByDefault(t *testing.T) {
	c := []Comment{{
		Author:    `<b onclick="x()">mallory</b>`,
		Message:   "<script>alert(1)</script>\n\nplain",
		Timestamp: "2024-03-05T10:00:00Z",
	}}

	got := utcRenderer(false).HTML(c)
	if strings.Contains(got, "<script>") || strings.Contains(got, "<b ") {
		t.Errorf("markup should not be inserted verbatim:\n%s", got)
	}
	if !strings.Contains(got, "&lt;b onclick=") {
		t.Errorf("author should be escaped:\n%s", got)
	}

	raw := utcRenderer(true).HTML(c)
	if !strings.Contains(raw, "<script>") || !strings.Contains(raw, `<b onclick="x()">`) {
		t.Errorf("raw mode should keep markup:\n%s", raw)
	}
}

func TestFormatDate(t *testing.T) {
	r := utcRenderer(false)
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-05T10:00:00Z", "Mar 5, 2024"},
		{"2024-03-05T23:30:00-05:00", "Mar 6, 2024"},
		{"2024-12-31T08:00:00.123Z", "Dec 31, 2024"},
		{"1709633000000", "Mar 5, 2024"},
		{"2024-01-01", "Jan 1, 2024"},
		{"2024-13-01", "2024-13-01"},
		{"yesterday", "yesterday"},
	}
	for _, tt := range tests {
		if got := r.FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderText(t *testing.T) {
	got := utcRenderer(false).Text([]Comment{
		{Author: "ann", Message: "line one\nline two\n", Timestamp: "2024-03-05T10:00:00Z"},
	})
	want := "ann – Mar 5, 2024\n  line one\n  line two\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderSingleComment(t *testing.T) {
	got := utcRenderer(false).HTML([]Comment{
		{Author: "Alice", Message: "Hi", Timestamp: "2024-01-01T00:00:00Z"},
	})
	if !strings.Contains(got, "Alice") || !strings.Contains(got, "Jan 1, 2024") || !strings.Contains(got, "<p>Hi</p>") {
		t.Errorf("unexpected rendering:\n%s", got)
	}
}
