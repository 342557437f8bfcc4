package api

// Store is the persistence boundary injected into the router. Implementations
// must treat the survey cascade delete as a single failure-atomic unit.
type Store interface {
	InsertSurvey(sv *Survey) (*Survey, error)
	GetSurvey(id string) (*Survey, error)
	ListSurveys() ([]*SurveyWithCount, error)
	DeleteSurveyCascade(id string) (bool, error)

	InsertResponse(r *Response) (*Response, error)
	// newest first
	ListResponsesBySurvey(surveyID string) ([]*Response, error)

	InsertTemplate(t *Template) (*Template, error)
	GetTemplate(id string) (*Template, error)
	ListTemplates() ([]*Template, error)
	DeleteTemplate(id string) (bool, error)
}

var _ Store = (*MemoryStore)(nil)
