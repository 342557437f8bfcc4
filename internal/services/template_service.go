package services

import (
	"strings"
	"time"
)

// TemplateStore abstracts the persistence operations TemplateService needs.
type TemplateStore interface {
	InsertTemplate(t *Template) (*Template, error)
	ListTemplates() ([]*Template, error)
	DeleteTemplate(id string) (bool, error)
}

// TemplateService is simple CRUD over survey templates. Templates are inert
// with respect to aggregation; they only group surveys at creation time.
type TemplateService struct {
	store       TemplateStore
	now         func() time.Time
	idGenerator func() string
}

func NewTemplateService(store TemplateStore) *TemplateService {
	return &TemplateService{
		store:       store,
		now:         func() time.Time { return time.Now().UTC() },
		idGenerator: func() string { return shortID(8) },
	}
}

func (s *TemplateService) List() ([]*Template, error) {
	return s.store.ListTemplates()
}

func (s *TemplateService) Create(name, description string) (*Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewInvalidError("template name is required")
	}
	t := &Template{
		ID:          s.idGenerator(),
		Name:        name,
		Description: description,
		CreatedAt:   s.now(),
	}
	created, err := s.store.InsertTemplate(t)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return t, nil
	}
	return created, nil
}

func (s *TemplateService) Delete(id string) error {
	if strings.TrimSpace(id) == "" {
		return NewInvalidError("template id is required")
	}
	found, err := s.store.DeleteTemplate(id)
	if err != nil {
		return err
	}
	if !found {
		return NewNotFoundError("template not found")
	}
	return nil
}
