package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorInvalid  ErrorCode = "invalid"
	ErrorNotFound ErrorCode = "not_found"
	ErrorConflict ErrorCode = "conflict"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewNotFoundError(msg string) error { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error { return &ServiceError{Code: ErrorConflict, Message: msg} }

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// SurveyStore abstracts the persistence operations SurveyService needs.
type SurveyStore interface {
	InsertSurvey(sv *Survey) (*Survey, error)
	GetSurvey(id string) (*Survey, error)
	ListSurveys() ([]*SurveyWithCount, error)
	DeleteSurveyCascade(id string) (bool, error)
	GetTemplate(id string) (*Template, error)
}

type SurveyService struct {
	store       SurveyStore
	now         func() time.Time
	idGenerator func() string
}

func NewSurveyService(store SurveyStore) *SurveyService {
	return &SurveyService{
		store:       store,
		now:         func() time.Time { return time.Now().UTC() },
		idGenerator: func() string { return shortID(8) },
	}
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// List returns every survey newest-first, each with its response count.
func (s *SurveyService) List() ([]*SurveyWithCount, error) {
	return s.store.ListSurveys()
}

func (s *SurveyService) Get(id string) (*Survey, error) {
	sv, err := s.store.GetSurvey(id)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	return sv, nil
}

// Create persists a new survey. Title and code are required; templateID is
// optional but must reference an existing template when set.
func (s *SurveyService) Create(title, description, code, templateID string) (*Survey, error) {
	if strings.TrimSpace(title) == "" {
		return nil, NewInvalidError("survey name is required")
	}
	if strings.TrimSpace(code) == "" {
		return nil, NewInvalidError("survey code is required")
	}
	if templateID != "" {
		tpl, err := s.store.GetTemplate(templateID)
		if err != nil {
			return nil, err
		}
		if tpl == nil {
			return nil, NewNotFoundError("template not found")
		}
	}
	sv := &Survey{
		ID:          s.idGenerator(),
		Title:       title,
		Description: description,
		Code:        code,
		TemplateID:  templateID,
		CreatedAt:   s.now(),
	}
	created, err := s.store.InsertSurvey(sv)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return sv, nil
	}
	return created, nil
}

// Resolve returns the survey a create request targets: the referenced
// existing survey when useExisting is set, otherwise a freshly created one.
// The second return reports whether a new survey was created.
func (s *SurveyService) Resolve(useExisting bool, existingID, title, description, code, templateID string) (*Survey, bool, error) {
	if useExisting && existingID != "" {
		sv, err := s.store.GetSurvey(existingID)
		if err != nil {
			return nil, false, err
		}
		if sv == nil {
			return nil, false, NewNotFoundError("selected survey not found")
		}
		return sv, false, nil
	}
	sv, err := s.Create(title, description, code, templateID)
	if err != nil {
		return nil, false, err
	}
	return sv, true, nil
}

// Delete removes the survey and all of its responses as one failure-atomic
// unit; a partial cascade must never leave orphaned response rows.
func (s *SurveyService) Delete(id string) error {
	found, err := s.store.DeleteSurveyCascade(id)
	if err != nil {
		return err
	}
	if !found {
		return NewNotFoundError("survey not found")
	}
	return nil
}
