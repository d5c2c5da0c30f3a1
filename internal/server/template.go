package server

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Comments · {{.Page}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
.comment { border-bottom: 1px solid #d0d7de; padding: .75rem 0; }
.comment-header { font-size: .9rem; color: #59636e; }
.comment-author { font-weight: 600; color: #1f2328; }
.comment-message blockquote { margin: .5rem 0; padding-left: .75rem; border-left: 3px solid #d0d7de; color: #59636e; }
#cmt-form { display: grid; gap: .5rem; margin-top: 1.5rem; }
#cmt-form textarea { min-height: 8rem; }
#cmt-email { display: none; }
#cmt-error { color: #cf222e; }
</style>
</head>
<body>
<div id="one137-comments">
  <h2>Comments</h2>
  <div id="cmt-list">{{.List}}</div>
  <form id="cmt-form" method="post">
    <input type="text" id="cmt-author" name="cmt-author" placeholder="Name" required maxlength="{{.MaxAuthor}}" value="{{.Author}}">
    <input type="email" id="cmt-email" name="cmt-email" tabindex="-1" autocomplete="off">
    <textarea id="cmt-message" name="cmt-message" placeholder="Message (markdown: *italic*, ` + "`code`" + `, > quote, - lists)" required maxlength="{{.MaxMessage}}">{{.Message}}</textarea>
    <input type="hidden" id="cmt-timestamp" name="cmt-timestamp" value="{{.Timestamp}}">
    {{if .Error}}<div id="cmt-error" role="alert">{{.Error}}</div>{{end}}
    <button type="submit" id="cmt-submit">Submit</button>
  </form>
</div>
</body>
</html>
`
