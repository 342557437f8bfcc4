package api

import (
	"html/template"
	"net/http"

	"github.com/surveypulse/surveypulse/internal/utils"
)

// Acknowledgment page served after a rating link is clicked. When no comment
// was submitted yet, the page embeds a GET form posting back to the same
// respond endpoint so the recipient can add one.
var ackPageTmpl = template.Must(template.New("ack").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; display: flex; justify-content: center; align-items: center; min-height: 100vh; margin: 0; background-color: #f5f5f5; padding: 20px; }
    .container { text-align: center; max-width: 500px; padding: 40px; background: white; border-radius: 8px; box-shadow: 0 4px 8px rgba(0,0,0,0.1); }
    h1 { color: #333; margin-bottom: 20px; }
    p { color: #666; margin-bottom: 30px; font-size: 18px; }
    .rating { font-size: 72px; margin: 20px 0; }
    .form-container { margin-top: 30px; text-align: left; display: {{if .Comment}}none{{else}}block{{end}}; }
    textarea { width: 100%; padding: 10px; border: 1px solid #ddd; border-radius: 4px; margin-bottom: 15px; font-family: Arial, sans-serif; }
    button { background-color: #4CAF50; color: white; border: none; padding: 10px 20px; font-size: 16px; cursor: pointer; border-radius: 4px; }
    .comment-text { margin-top: 20px; padding: 15px; background-color: #f9f9f9; border-radius: 4px; font-style: italic; text-align: left; display: {{if .Comment}}block{{else}}none{{end}}; }
  </style>
</head>
<body>
  <div class="container">
    <h1>{{.Heading}}</h1>
    <p>{{.Saved}}</p>
    <div class="rating">{{.Emoji}}</div>
    {{if .Comment}}
    <div class="comment-text">
      <p><strong>{{.CommentLabel}}</strong></p>
      <p>"{{.Comment}}"</p>
    </div>
    {{else}}
    <div class="form-container">
      <p>{{.CommentPrompt}}</p>
      <form method="get">
        <input type="hidden" name="email" value="{{.Email}}">
        <input type="hidden" name="rating" value="{{.Rating}}">
        <textarea name="comment" rows="4" placeholder="{{.CommentPlaceholder}}"></textarea>
        <button type="submit">{{.Submit}}</button>
      </form>
    </div>
    {{end}}
    <p>{{.Footer}}</p>
  </div>
</body>
</html>
`))

var ackEmojis = map[int]string{1: "😡", 2: "😕", 3: "😐", 4: "🙂", 5: "😍"}

func renderAckPage(w http.ResponseWriter, locale string, rating int, email, comment string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = ackPageTmpl.Execute(w, map[string]any{
		"Lang":               locale,
		"Title":              utils.T(locale, "ack.title"),
		"Heading":            utils.T(locale, "ack.heading"),
		"Saved":              utils.Tf(locale, "ack.saved", rating),
		"Emoji":              ackEmojis[rating],
		"Email":              email,
		"Rating":             rating,
		"Comment":            comment,
		"CommentLabel":       utils.T(locale, "ack.comment_label"),
		"CommentPrompt":      utils.T(locale, "ack.comment_prompt"),
		"CommentPlaceholder": utils.T(locale, "ack.comment_placeholder"),
		"Submit":             utils.T(locale, "ack.submit"),
		"Footer":             utils.T(locale, "ack.footer"),
	})
}
