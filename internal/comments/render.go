package comments

import (
	"bytes"
	"html/template"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/iburimskiy/one137/internal/config"
)

// RenderOptions controls how comment lists are rendered.
type RenderOptions struct {
	// DateLayout is a time.Format layout for comment dates.
	DateLayout string
	// Location is the time zone dates are shown in.
	Location *time.Location
	// RawHTML inserts author names and HTML found in messages verbatim.
	// Only for trusted comment stores.
	RawHTML bool
}

// RenderOptionsFromConfig maps the comments section of the configuration.
func RenderOptionsFromConfig(cfg config.CommentsConfig) RenderOptions {
	return RenderOptions{
		DateLayout: cfg.DateLayout,
		Location:   cfg.Location(),
		RawHTML:    cfg.RawHTML,
	}
}

// Renderer turns comment lists into HTML fragments or plain text.
type Renderer struct {
	md     goldmark.Markdown
	tmpl   *template.Template
	layout string
	loc    *time.Location
	raw    bool
}

// commentData holds the data passed to the list template for each comment.
type commentData struct {
	Author  template.HTML
	Date    string
	Message template.HTML
}

const listTemplate = `{{range .}}<div class="comment">
  <div class="comment-header"><span class="comment-author">{{.Author}}</span> – <span class="comment-timestamp">{{.Date}}</span></div>
  <div class="comment-message">{{.Message}}</div>
</div>
{{end}}`

// NewRenderer creates a Renderer. Zero options fall back to the default
// date layout in the local time zone.
func NewRenderer(opts RenderOptions) *Renderer {
	if opts.DateLayout == "" {
		opts.DateLayout = config.DateLayout
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	rendererOpts := []goldmark.Option{
		goldmark.WithExtensions(
			extension.Strikethrough,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
	}
	htmlOpts := []renderer.Option{html.WithHardWraps()}
	if opts.RawHTML {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}
	rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(htmlOpts...))

	return &Renderer{
		md:     goldmark.New(rendererOpts...),
		tmpl:   template.Must(template.New("comments").Parse(listTemplate)),
		layout: opts.DateLayout,
		loc:    opts.Location,
		raw:    opts.RawHTML,
	}
}

// FormatDate shows an API timestamp in the configured layout. RFC 3339, bare
// dates (taken as UTC midnight) and Unix milliseconds are understood; anything
// else is returned as given.
func (r *Renderer) FormatDate(ts string) string {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.In(r.loc).Format(r.layout)
		}
	}
	if ms, err := strconv.ParseInt(ts, 10, 64); err == nil {
		return time.UnixMilli(ms).In(r.loc).Format(r.layout)
	}
	return ts
}

// Markdown renders a message. Raw HTML in the message is dropped unless the
// renderer was built with RawHTML.
func (r *Renderer) Markdown(msg string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(msg), &buf); err != nil {
		log.Printf("comments: rendering markdown: %v", err)
		return template.HTML(template.HTMLEscapeString(msg))
	}
	return template.HTML(buf.String())
}

// HTML renders comments as a list of comment blocks, in the given order.
func (r *Renderer) HTML(comments []Comment) string {
	if len(comments) == 0 {
		return NoCommentsMessage
	}

	data := make([]commentData, 0, len(comments))
	for _, c := range comments {
		author := template.HTML(template.HTMLEscapeString(c.Author))
		if r.raw {
			author = template.HTML(c.Author)
		}
		data = append(data, commentData{
			Author:  author,
			Date:    r.FormatDate(c.Timestamp),
			Message: r.Markdown(c.Message),
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		log.Printf("comments: rendering list: %v", err)
		return LoadErrorMessage
	}
	return buf.String()
}

// Text renders comments for a terminal: a header line per comment followed
// by the indented message source.
func (r *Renderer) Text(comments []Comment) string {
	if len(comments) == 0 {
		return NoCommentsMessage
	}

	var b strings.Builder
	for i, c := range comments {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.Author)
		b.WriteString(" – ")
		b.WriteString(r.FormatDate(c.Timestamp))
		b.WriteString("\n")
		for _, line := range strings.Split(strings.TrimRight(c.Message, "\n"), "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
