package api

import "github.com/surveypulse/surveypulse/internal/services"

type reportStoreAdapter struct {
	store Store
}

func newReportStoreAdapter(store Store) services.ReportStore {
	return &reportStoreAdapter{store: store}
}

func (a *reportStoreAdapter) GetSurvey(id string) (*services.Survey, error) {
	sv, err := a.store.GetSurvey(id)
	if err != nil {
		return nil, err
	}
	return convertAPISurvey(sv), nil
}

func (a *reportStoreAdapter) ListResponsesBySurvey(surveyID string) ([]*services.Response, error) {
	rs, err := a.store.ListResponsesBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	out := make([]*services.Response, 0, len(rs))
	for _, r := range rs {
		out = append(out, convertAPIResponse(r))
	}
	return out, nil
}

var _ services.ReportStore = (*reportStoreAdapter)(nil)
