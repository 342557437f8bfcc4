package services

import "time"

// Survey is a named feedback request. Code is a free-text grouping label
// shared by zero or more surveys; it carries no uniqueness constraint.
type Survey struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Code        string    `json:"code"`
	TemplateID  string    `json:"templateId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SurveyWithCount decorates a survey with its stored response count for list views.
type SurveyWithCount struct {
	Survey
	ResponseCount int `json:"responseCount"`
}

// Response is one respondent's rating against a survey. Responses are
// immutable once created; the same email may submit any number of them.
type Response struct {
	ID        string    `json:"id"`
	SurveyID  string    `json:"surveyId"`
	Email     string    `json:"email"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Template is an inert grouping aid referenced by surveys at creation time.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
