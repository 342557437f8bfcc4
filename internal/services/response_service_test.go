package services

import (
	"testing"
	"time"
)

type stubResponseStore struct {
	survey   *Survey
	inserted []*Response
}

func (s *stubResponseStore) GetSurvey(id string) (*Survey, error) {
	if s.survey != nil && s.survey.ID == id {
		return s.survey, nil
	}
	return nil, nil
}

func (s *stubResponseStore) InsertResponse(r *Response) (*Response, error) {
	s.inserted = append(s.inserted, r)
	return r, nil
}

func TestRecordRejectsOutOfRangeRating(t *testing.T) {
	store := &stubResponseStore{survey: &Survey{ID: "sv1"}}
	svc := NewResponseService(store)

	for _, rating := range []int{0, 6, -1, 100} {
		if _, err := svc.Record("sv1", "a@example.com", rating, ""); err == nil {
			t.Fatalf("expected rating %d to be rejected", rating)
		} else if se, _ := AsServiceError(err); se.Code != ErrorInvalid {
			t.Fatalf("expected invalid code for rating %d, got %v", rating, se.Code)
		}
	}
	if len(store.inserted) != 0 {
		t.Fatalf("expected no rows written, got %d", len(store.inserted))
	}
}

func TestRecordRequiresEmail(t *testing.T) {
	store := &stubResponseStore{survey: &Survey{ID: "sv1"}}
	svc := NewResponseService(store)
	if _, err := svc.Record("sv1", "  ", 3, ""); err == nil {
		t.Fatalf("expected empty email to be rejected")
	}
	if len(store.inserted) != 0 {
		t.Fatalf("expected no rows written")
	}
}

func TestRecordUnknownSurvey(t *testing.T) {
	svc := NewResponseService(&stubResponseStore{})
	if _, err := svc.Record("missing", "a@example.com", 3, ""); err == nil {
		t.Fatalf("expected survey not found")
	} else if se, _ := AsServiceError(err); se.Code != ErrorNotFound {
		t.Fatalf("expected not_found code, got %v", se.Code)
	}
}

func TestRecordWithoutComment(t *testing.T) {
	store := &stubResponseStore{survey: &Survey{ID: "sv1"}}
	svc := NewResponseService(store)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	resp, err := svc.Record("sv1", "a@example.com", 3, "")
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if resp.Comment != "" {
		t.Fatalf("expected empty comment, got %q", resp.Comment)
	}
	if resp.ID == "" || resp.SurveyID != "sv1" || resp.Rating != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected one row written")
	}
}

func TestRecordAllowsDuplicateEmails(t *testing.T) {
	store := &stubResponseStore{survey: &Survey{ID: "sv1"}}
	svc := NewResponseService(store)

	if _, err := svc.Record("sv1", "a@example.com", 5, ""); err != nil {
		t.Fatalf("first Record error: %v", err)
	}
	if _, err := svc.Record("sv1", "a@example.com", 1, "changed my mind"); err != nil {
		t.Fatalf("expected duplicate email to be allowed: %v", err)
	}
	if len(store.inserted) != 2 {
		t.Fatalf("expected both rows retained, got %d", len(store.inserted))
	}
}
