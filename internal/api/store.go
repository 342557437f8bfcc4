package api

import (
	"sort"
	"sync"
	"time"
)

type Survey struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Code        string    `json:"code"`
	TemplateID  string    `json:"templateId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SurveyWithCount struct {
	Survey
	ResponseCount int `json:"responseCount"`
}

type Response struct {
	ID        string    `json:"id"`
	SurveyID  string    `json:"surveyId"`
	Email     string    `json:"email"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MemoryStore is the in-process Store used by tests and as the fallback when
// no SQLite path is configured. All methods are safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	surveys   map[string]*Survey
	responses []*Response
	templates map[string]*Template
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		surveys:   map[string]*Survey{},
		responses: []*Response{},
		templates: map[string]*Template{},
	}
}

func (s *MemoryStore) InsertSurvey(sv *Survey) (*Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *sv
	s.surveys[sv.ID] = &copy
	return sv, nil
}

func (s *MemoryStore) GetSurvey(id string) (*Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sv, ok := s.surveys[id]
	if !ok {
		return nil, nil
	}
	copy := *sv
	return &copy, nil
}

func (s *MemoryStore) ListSurveys() ([]*SurveyWithCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int{}
	for _, r := range s.responses {
		counts[r.SurveyID]++
	}
	out := make([]*SurveyWithCount, 0, len(s.surveys))
	for _, sv := range s.surveys {
		out = append(out, &SurveyWithCount{Survey: *sv, ResponseCount: counts[sv.ID]})
	}
	// newest first; id as a stable tiebreak for equal timestamps
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// DeleteSurveyCascade removes the survey and every response referencing it
// as one unit. Returns false when the survey does not exist.
func (s *MemoryStore) DeleteSurveyCascade(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.surveys[id]; !ok {
		return false, nil
	}
	kept := make([]*Response, 0, len(s.responses))
	for _, r := range s.responses {
		if r.SurveyID != id {
			kept = append(kept, r)
		}
	}
	s.responses = kept
	delete(s.surveys, id)
	return true, nil
}

func (s *MemoryStore) InsertResponse(r *Response) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *r
	s.responses = append(s.responses, &copy)
	return r, nil
}

// ListResponsesBySurvey returns the survey's responses newest first. The
// dashboard renders the raw list, the unique-email order, and same-rank
// distribution ties from this order.
func (s *MemoryStore) ListResponsesBySurvey(surveyID string) ([]*Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Response{}
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			copy := *r
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) InsertTemplate(t *Template) (*Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *t
	s.templates[t.ID] = &copy
	return t, nil
}

func (s *MemoryStore) GetTemplate(id string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	if !ok {
		return nil, nil
	}
	copy := *t
	return &copy, nil
}

func (s *MemoryStore) ListTemplates() ([]*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Template, 0, len(s.templates))
	for _, t := range s.templates {
		copy := *t
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) DeleteTemplate(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return false, nil
	}
	delete(s.templates, id)
	return true, nil
}
