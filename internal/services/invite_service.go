package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"strings"

	"github.com/surveypulse/surveypulse/internal/utils"
)

// Mailer is the transport the invite batch sends through. Implementations
// enforce their own per-send timeout; the batch never retries.
type Mailer interface {
	Send(to, subject, htmlBody string) (messageID string, err error)
}

// InviteResult is the outcome of one recipient's dispatch attempt.
type InviteResult struct {
	Email     string `json:"email"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// InviteService renders rating-invite emails and dispatches them one per
// recipient. A single recipient's failure is recorded, never propagated, so
// the rest of the batch is still attempted.
type InviteService struct {
	mailer  Mailer
	baseURL string
}

func NewInviteService(mailer Mailer, baseURL string) *InviteService {
	return &InviteService{mailer: mailer, baseURL: strings.TrimRight(baseURL, "/")}
}

var inviteTmpl = template.Must(template.New("invite").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eaeaea; border-radius: 5px;">
  <h2 style="color: #334155; text-align: center;">{{.Title}}</h2>
  <p style="color: #64748B; margin-bottom: 30px; text-align: center;">{{.Intro}}</p>
  <div style="display: flex; justify-content: space-between; margin: 30px 0;">
{{- range .Options}}
    <a href="{{.URL}}" style="text-decoration: none; text-align: center; display: block; width: 18%;">
      <div style="font-size: 40px; margin-bottom: 10px;">{{.Emoji}}</div>
      <div style="color: {{.Color}}; font-size: 14px;">{{.Label}}</div>
    </a>
{{- end}}
  </div>
  <p style="color: #64748B; margin: 30px 0 15px; text-align: center;">{{.Hint}}</p>
  <p style="color: #94A3B8; font-size: 12px; text-align: center; margin-top: 30px;">{{.Footer}}</p>
</div>`))

type inviteOption struct {
	URL   template.URL
	Emoji string
	Label string
	Color template.CSS
}

var inviteEmojis = map[int]string{1: "😡", 2: "😕", 3: "😐", 4: "🙂", 5: "😍"}

var inviteColors = map[int]string{
	1: "#d32f2f",
	2: "#f57c00",
	3: "#ffc107",
	4: "#4caf50",
	5: "#2196f3",
}

// RespondURL builds the link a recipient clicks to record the given rating.
func (s *InviteService) RespondURL(surveyID, email string, rating int) string {
	return fmt.Sprintf("%s/api/surveys/%s/respond?email=%s&rating=%d", s.baseURL, surveyID, url.QueryEscape(email), rating)
}

// RenderInvite produces the localized HTML body of the rating invite, with
// one emoji link per rating value.
func (s *InviteService) RenderInvite(sv *Survey, email, locale string) (string, error) {
	opts := make([]inviteOption, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		opts = append(opts, inviteOption{
			URL:   template.URL(s.RespondURL(sv.ID, email, rating)),
			Emoji: inviteEmojis[rating],
			Label: utils.T(locale, "rating."+fmt.Sprint(rating)),
			Color: template.CSS(inviteColors[rating]),
		})
	}
	var buf bytes.Buffer
	err := inviteTmpl.Execute(&buf, map[string]any{
		"Title":   sv.Title,
		"Intro":   utils.T(locale, "invite.intro"),
		"Hint":    utils.T(locale, "invite.hint"),
		"Footer":  utils.T(locale, "invite.footer"),
		"Options": opts,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendBatch dispatches one invite per recipient and records a per-recipient
// outcome. The batch always runs to completion; the returned counts
// aggregate successes and failures.
func (s *InviteService) SendBatch(sv *Survey, emails []string, locale string) (results []InviteResult, sent, failed int) {
	subject := utils.Tf(locale, "invite.subject", sv.Title)
	results = make([]InviteResult, 0, len(emails))
	for _, addr := range emails {
		body, err := s.RenderInvite(sv, addr, locale)
		if err == nil {
			var msgID string
			msgID, err = s.mailer.Send(addr, subject, body)
			if err == nil {
				results = append(results, InviteResult{Email: addr, Success: true, MessageID: msgID})
				sent++
				continue
			}
		}
		slog.Warn("invite dispatch failed", "survey_id", sv.ID, "email", addr, "error", err)
		results = append(results, InviteResult{Email: addr, Success: false, Error: err.Error()})
		failed++
	}
	return results, sent, failed
}
