package api

import "github.com/surveypulse/surveypulse/internal/services"

type responseStoreAdapter struct {
	store Store
}

func newResponseStoreAdapter(store Store) services.ResponseStore {
	return &responseStoreAdapter{store: store}
}

func (a *responseStoreAdapter) GetSurvey(id string) (*services.Survey, error) {
	sv, err := a.store.GetSurvey(id)
	if err != nil {
		return nil, err
	}
	return convertAPISurvey(sv), nil
}

func (a *responseStoreAdapter) InsertResponse(r *services.Response) (*services.Response, error) {
	created, err := a.store.InsertResponse(convertServiceResponse(r))
	if err != nil {
		return nil, err
	}
	return convertAPIResponse(created), nil
}

var _ services.ResponseStore = (*responseStoreAdapter)(nil)
