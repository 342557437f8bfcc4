package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/surveypulse/surveypulse/internal/middleware"
	"github.com/surveypulse/surveypulse/internal/services"
)

type Router struct {
	surveys   *services.SurveyService
	responses *services.ResponseService
	templates *services.TemplateService
	reports   *services.ReportService
	invites   *services.InviteService
}

// NewRouter wires the service layer onto the injected store and mailer.
func NewRouter(store Store, mailer services.Mailer, baseURL string) *Router {
	return &Router{
		surveys:   services.NewSurveyService(newSurveyStoreAdapter(store)),
		responses: services.NewResponseService(newResponseStoreAdapter(store)),
		templates: services.NewTemplateService(newTemplateStoreAdapter(store)),
		reports:   services.NewReportService(newReportStoreAdapter(store)),
		invites:   services.NewInviteService(mailer, baseURL),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/surveys", rt.handleSurveys)       // GET list, POST create+dispatch
	mux.HandleFunc("/api/surveys/", rt.handleSurveyScoped) // GET/DELETE {id}, GET {id}/respond
	mux.HandleFunc("/api/templates", rt.handleTemplates)   // GET, POST, DELETE ?id=
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeServiceError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			writeMessage(w, http.StatusBadRequest, se.Message)
			return
		case services.ErrorNotFound:
			writeMessage(w, http.StatusNotFound, se.Message)
			return
		case services.ErrorConflict:
			writeMessage(w, http.StatusConflict, se.Message)
			return
		}
	}
	slog.Error("request failed", "error", err)
	writeMessage(w, http.StatusInternalServerError, "internal server error")
}

// GET/POST /api/surveys
func (rt *Router) handleSurveys(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := rt.surveys.List()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"surveys": list})
	case http.MethodPost:
		rt.handleCreateSurvey(w, r)
	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type createSurveyRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Emails           []string `json:"emails"`
	Code             string   `json:"code"`
	TemplateID       string   `json:"templateId"`
	IsExistingSurvey bool     `json:"isExistingSurvey"`
	ExistingSurveyID string   `json:"existingSurveyId"`
}

// POST /api/surveys — create (or reuse) a survey and dispatch one rating
// invite per recipient. A recipient's dispatch failure never fails the
// request; it is recorded in emailResults.
func (rt *Router) handleCreateSurvey(w http.ResponseWriter, r *http.Request) {
	var req createSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeMessage(w, http.StatusBadRequest, "survey name is required")
		return
	}
	if len(req.Emails) == 0 {
		writeMessage(w, http.StatusBadRequest, "at least one email address is required")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeMessage(w, http.StatusBadRequest, "survey code is required")
		return
	}

	sv, created, err := rt.surveys.Resolve(req.IsExistingSurvey, req.ExistingSurveyID, req.Name, req.Description, req.Code, req.TemplateID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if created {
		slog.Info("survey created", "survey_id", sv.ID, "code", sv.Code)
	} else {
		slog.Info("reusing existing survey", "survey_id", sv.ID)
	}

	locale := middleware.LocaleFromContext(r.Context())
	results, sent, failed := rt.invites.SendBatch(sv, req.Emails, locale)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"message":      fmt.Sprintf("survey ready: %d invites sent, %d failed", sent, failed),
		"surveyId":     sv.ID,
		"emailResults": results,
		"successCount": sent,
		"failureCount": failed,
	})
}

// /api/surveys/{id} and /api/surveys/{id}/respond
func (rt *Router) handleSurveyScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/surveys/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		rt.handleSurveyDetail(w, r, id)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		rt.handleSurveyDelete(w, r, id)
	case len(parts) == 1:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	case len(parts) == 2 && parts[1] == "respond" && r.Method == http.MethodGet:
		rt.handleRespond(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// GET /api/surveys/{id} — survey plus every derived statistic the dashboard
// renders: histogram, average, top rating, unique respondent emails, raw
// responses, and the chart-ready distribution.
func (rt *Router) handleSurveyDetail(w http.ResponseWriter, r *http.Request, id string) {
	locale := middleware.LocaleFromContext(r.Context())
	sum, err := rt.reports.Summary(id, locale)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// DELETE /api/surveys/{id}
func (rt *Router) handleSurveyDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := rt.surveys.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	slog.Info("survey deleted", "survey_id", id)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "survey and its responses deleted",
	})
}

// GET /api/surveys/{id}/respond?email=&rating=&comment= — records one
// response and returns an HTML acknowledgment page. When the comment is
// absent the page offers a follow-up form submitting to this same endpoint.
func (rt *Router) handleRespond(w http.ResponseWriter, r *http.Request, id string) {
	q := r.URL.Query()
	email := q.Get("email")
	if strings.TrimSpace(email) == "" {
		writeMessage(w, http.StatusBadRequest, "email address is required")
		return
	}
	rating, err := strconv.Atoi(q.Get("rating"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "a valid rating is required")
		return
	}
	comment := q.Get("comment")

	if _, err := rt.responses.Record(id, email, rating, comment); err != nil {
		writeServiceError(w, err)
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	renderAckPage(w, locale, rating, email, comment)
}

// GET/POST/DELETE /api/templates
func (rt *Router) handleTemplates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := rt.templates.List()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		t, err := rt.templates.Create(req.Name, req.Description)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if err := rt.templates.Delete(id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
