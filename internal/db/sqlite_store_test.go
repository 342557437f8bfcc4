package db

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/surveypulse/surveypulse/internal/api"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := RunMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	store, err := NewSQLiteStore(conn)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSQLiteSurveyRoundTrip(t *testing.T) {
	store := newTestStore(t)
	created := time.Date(2026, 5, 10, 9, 30, 0, 123456789, time.UTC)
	in := &api.Survey{ID: "sv1", Title: "Checkout", Description: "post-purchase", Code: "CHK", CreatedAt: created}
	if _, err := store.InsertSurvey(in); err != nil {
		t.Fatalf("insert: %v", err)
	}

	out, err := store.GetSurvey("sv1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out == nil {
		t.Fatalf("survey not found after insert")
	}
	if out.Title != in.Title || out.Description != in.Description || out.Code != in.Code {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if !out.CreatedAt.Equal(created) {
		t.Fatalf("createdAt = %v, want %v", out.CreatedAt, created)
	}

	missing, err := store.GetSurvey("nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing survey, got %+v", missing)
	}
}

func TestSQLiteListSurveysNewestFirstWithCounts(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if _, err := store.InsertSurvey(&api.Survey{ID: id, Title: id, Code: "C", CreatedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
	for i, sid := range []string{"a", "a", "c"} {
		r := &api.Response{ID: "r" + string(rune('0'+i)), SurveyID: sid, Email: "x@y.com", Rating: 4, CreatedAt: base}
		if _, err := store.InsertResponse(r); err != nil {
			t.Fatalf("insert response: %v", err)
		}
	}

	list, err := store.ListSurveys()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[0].ID != "c" || list[1].ID != "b" || list[2].ID != "a" {
		t.Fatalf("order = %s,%s,%s", list[0].ID, list[1].ID, list[2].ID)
	}
	if list[0].ResponseCount != 1 || list[1].ResponseCount != 0 || list[2].ResponseCount != 2 {
		t.Fatalf("counts = %d,%d,%d", list[0].ResponseCount, list[1].ResponseCount, list[2].ResponseCount)
	}
}

func TestSQLiteCascadeDelete(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()
	if _, err := store.InsertSurvey(&api.Survey{ID: "sv", Title: "t", Code: "C", CreatedAt: now}); err != nil {
		t.Fatalf("insert survey: %v", err)
	}
	if _, err := store.InsertResponse(&api.Response{ID: "r1", SurveyID: "sv", Email: "a@x.com", Rating: 5, CreatedAt: now}); err != nil {
		t.Fatalf("insert response: %v", err)
	}

	found, err := store.DeleteSurveyCascade("sv")
	if err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	if !found {
		t.Fatalf("expected found=true")
	}
	if rs, _ := store.ListResponsesBySurvey("sv"); len(rs) != 0 {
		t.Fatalf("responses left = %d", len(rs))
	}

	found, err = store.DeleteSurveyCascade("sv")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if found {
		t.Fatalf("second delete should report missing")
	}
}

func TestSQLiteRejectsOutOfRangeRating(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()
	if _, err := store.InsertSurvey(&api.Survey{ID: "sv", Title: "t", Code: "C", CreatedAt: now}); err != nil {
		t.Fatalf("insert survey: %v", err)
	}
	if _, err := store.InsertResponse(&api.Response{ID: "r", SurveyID: "sv", Email: "a@x.com", Rating: 9, CreatedAt: now}); err == nil {
		t.Fatalf("expected CHECK constraint violation for rating 9")
	}
}

func TestSQLiteTemplates(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	if _, err := store.InsertTemplate(&api.Template{ID: "t1", Name: "NPS", CreatedAt: now}); err != nil {
		t.Fatalf("insert template: %v", err)
	}
	if _, err := store.InsertTemplate(&api.Template{ID: "t2", Name: "CSAT", Description: "after support", CreatedAt: now.Add(time.Hour)}); err != nil {
		t.Fatalf("insert template: %v", err)
	}

	got, err := store.GetTemplate("t2")
	if err != nil {
		t.Fatalf("get template: %v", err)
	}
	if got == nil || got.Description != "after support" {
		t.Fatalf("template = %+v", got)
	}

	list, err := store.ListTemplates()
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	if len(list) != 2 || list[0].ID != "t2" {
		t.Fatalf("templates = %+v", list)
	}

	found, err := store.DeleteTemplate("t1")
	if err != nil || !found {
		t.Fatalf("delete = %v, %v", found, err)
	}
	found, err = store.DeleteTemplate("t1")
	if err != nil || found {
		t.Fatalf("second delete = %v, %v", found, err)
	}
}

func TestSQLiteResponsesNewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	if _, err := store.InsertSurvey(&api.Survey{ID: "sv", Title: "t", Code: "C", CreatedAt: base}); err != nil {
		t.Fatalf("insert survey: %v", err)
	}
	for i, id := range []string{"old", "mid", "new"} {
		r := &api.Response{
			ID:        id,
			SurveyID:  "sv",
			Email:     id + "@x.com",
			Rating:    3,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if _, err := store.InsertResponse(r); err != nil {
			t.Fatalf("insert response %s: %v", id, err)
		}
	}
	rs, err := store.ListResponsesBySurvey("sv")
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(rs) != 3 {
		t.Fatalf("len = %d, want 3", len(rs))
	}
	if rs[0].ID != "new" || rs[1].ID != "mid" || rs[2].ID != "old" {
		t.Fatalf("order = %s,%s,%s, want newest first", rs[0].ID, rs[1].ID, rs[2].ID)
	}
	if rs[0].Comment != "" {
		t.Fatalf("comment = %q, want empty", rs[0].Comment)
	}
}
