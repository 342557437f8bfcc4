package services

import (
	"strings"
	"time"
)

// ResponseStore abstracts the persistence operations ResponseService needs.
type ResponseStore interface {
	GetSurvey(id string) (*Survey, error)
	InsertResponse(r *Response) (*Response, error)
}

// ResponseService records rating responses. Writes are never deduplicated by
// (survey, email); the same address may respond any number of times and each
// row is retained. Collapsing happens only in reporting.
type ResponseService struct {
	store       ResponseStore
	now         func() time.Time
	idGenerator func() string
}

func NewResponseService(store ResponseStore) *ResponseService {
	return &ResponseService{
		store:       store,
		now:         func() time.Time { return time.Now().UTC() },
		idGenerator: func() string { return shortID(12) },
	}
}

// Record validates and persists one response. Rating must be 1..5 and email
// non-empty; the referenced survey must exist. Comment is optional.
func (s *ResponseService) Record(surveyID, email string, rating int, comment string) (*Response, error) {
	if strings.TrimSpace(email) == "" {
		return nil, NewInvalidError("email address is required")
	}
	if rating < 1 || rating > 5 {
		return nil, NewInvalidError("rating must be between 1 and 5")
	}
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	resp := &Response{
		ID:        s.idGenerator(),
		SurveyID:  surveyID,
		Email:     email,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now(),
	}
	created, err := s.store.InsertResponse(resp)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return resp, nil
	}
	return created, nil
}
