package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/surveypulse/surveypulse/internal/api"
)

// SQLiteStore persists surveys, responses and templates in a single SQLite
// database. Timestamps are stored as RFC3339Nano TEXT in UTC.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

var _ api.Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) logErr(prefix string, err error) {
	if err != nil {
		log.Printf("sqlite store: %s: %v", prefix, err)
	}
}

func toNullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func (s *SQLiteStore) InsertSurvey(sv *api.Survey) (*api.Survey, error) {
	_, err := s.db.Exec(`INSERT INTO surveys (id, title, description, code, template_id, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		sv.ID, sv.Title, toNullString(sv.Description), sv.Code, toNullString(sv.TemplateID), formatTime(sv.CreatedAt))
	if err != nil {
		s.logErr("insert survey", err)
		return nil, err
	}
	return sv, nil
}

func (s *SQLiteStore) GetSurvey(id string) (*api.Survey, error) {
	row := s.db.QueryRow(`SELECT id, title, description, code, template_id, created_at
        FROM surveys WHERE id = ?`, id)
	sv, err := scanSurvey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logErr("get survey", err)
		return nil, err
	}
	return sv, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row rowScanner) (*api.Survey, error) {
	var (
		sv          api.Survey
		description sql.NullString
		templateID  sql.NullString
		created     string
	)
	if err := row.Scan(&sv.ID, &sv.Title, &description, &sv.Code, &templateID, &created); err != nil {
		return nil, err
	}
	sv.Description = description.String
	sv.TemplateID = templateID.String
	sv.CreatedAt = parseTime(created)
	return &sv, nil
}

func (s *SQLiteStore) ListSurveys() ([]*api.SurveyWithCount, error) {
	rows, err := s.db.Query(`SELECT s.id, s.title, s.description, s.code, s.template_id, s.created_at,
            COUNT(r.id) AS response_count
        FROM surveys s
        LEFT JOIN responses r ON r.survey_id = s.id
        GROUP BY s.id
        ORDER BY s.created_at DESC, s.id DESC`)
	if err != nil {
		s.logErr("list surveys", err)
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []*api.SurveyWithCount{}
	for rows.Next() {
		var (
			item        api.SurveyWithCount
			description sql.NullString
			templateID  sql.NullString
			created     string
		)
		if err := rows.Scan(&item.ID, &item.Title, &description, &item.Code, &templateID, &created, &item.ResponseCount); err != nil {
			s.logErr("scan survey row", err)
			return nil, err
		}
		item.Description = description.String
		item.TemplateID = templateID.String
		item.CreatedAt = parseTime(created)
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		s.logErr("iterate surveys", err)
		return nil, err
	}
	return out, nil
}

// DeleteSurveyCascade removes the survey and its responses in one
// transaction. The explicit response delete keeps the cascade working even
// when foreign_keys is off for the connection.
func (s *SQLiteStore) DeleteSurveyCascade(id string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		s.logErr("begin cascade delete", err)
		return false, err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec(`DELETE FROM responses WHERE survey_id = ?`, id); err != nil {
		s.logErr("delete responses", err)
		return false, err
	}
	res, err := tx.Exec(`DELETE FROM surveys WHERE id = ?`, id)
	if err != nil {
		s.logErr("delete survey", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		s.logErr("cascade rows affected", err)
		return false, err
	}
	if err := tx.Commit(); err != nil {
		s.logErr("commit cascade delete", err)
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) InsertResponse(r *api.Response) (*api.Response, error) {
	_, err := s.db.Exec(`INSERT INTO responses (id, survey_id, email, rating, comment, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.SurveyID, r.Email, r.Rating, toNullString(r.Comment), formatTime(r.CreatedAt))
	if err != nil {
		s.logErr("insert response", err)
		return nil, err
	}
	return r, nil
}

// ListResponsesBySurvey returns the survey's responses newest first.
func (s *SQLiteStore) ListResponsesBySurvey(surveyID string) ([]*api.Response, error) {
	rows, err := s.db.Query(`SELECT id, survey_id, email, rating, comment, created_at
        FROM responses WHERE survey_id = ? ORDER BY created_at DESC, id DESC`, surveyID)
	if err != nil {
		s.logErr("list responses", err)
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []*api.Response{}
	for rows.Next() {
		var (
			r       api.Response
			comment sql.NullString
			created string
		)
		if err := rows.Scan(&r.ID, &r.SurveyID, &r.Email, &r.Rating, &comment, &created); err != nil {
			s.logErr("scan response row", err)
			return nil, err
		}
		r.Comment = comment.String
		r.CreatedAt = parseTime(created)
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		s.logErr("iterate responses", err)
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) InsertTemplate(t *api.Template) (*api.Template, error) {
	_, err := s.db.Exec(`INSERT INTO templates (id, name, description, created_at)
        VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, toNullString(t.Description), formatTime(t.CreatedAt))
	if err != nil {
		s.logErr("insert template", err)
		return nil, err
	}
	return t, nil
}

func (s *SQLiteStore) GetTemplate(id string) (*api.Template, error) {
	var (
		t           api.Template
		description sql.NullString
		created     string
	)
	err := s.db.QueryRow(`SELECT id, name, description, created_at
        FROM templates WHERE id = ?`, id).Scan(&t.ID, &t.Name, &description, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logErr("get template", err)
		return nil, err
	}
	t.Description = description.String
	t.CreatedAt = parseTime(created)
	return &t, nil
}

func (s *SQLiteStore) ListTemplates() ([]*api.Template, error) {
	rows, err := s.db.Query(`SELECT id, name, description, created_at
        FROM templates ORDER BY created_at DESC, id DESC`)
	if err != nil {
		s.logErr("list templates", err)
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []*api.Template{}
	for rows.Next() {
		var (
			t           api.Template
			description sql.NullString
			created     string
		)
		if err := rows.Scan(&t.ID, &t.Name, &description, &created); err != nil {
			s.logErr("scan template row", err)
			return nil, err
		}
		t.Description = description.String
		t.CreatedAt = parseTime(created)
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		s.logErr("iterate templates", err)
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) DeleteTemplate(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		s.logErr("delete template", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		s.logErr("template rows affected", err)
		return false, err
	}
	return n > 0, nil
}
