package api

import "github.com/surveypulse/surveypulse/internal/services"

func convertAPISurvey(sv *Survey) *services.Survey {
	if sv == nil {
		return nil
	}
	return &services.Survey{
		ID:          sv.ID,
		Title:       sv.Title,
		Description: sv.Description,
		Code:        sv.Code,
		TemplateID:  sv.TemplateID,
		CreatedAt:   sv.CreatedAt,
	}
}

func convertServiceSurvey(sv *services.Survey) *Survey {
	if sv == nil {
		return nil
	}
	return &Survey{
		ID:          sv.ID,
		Title:       sv.Title,
		Description: sv.Description,
		Code:        sv.Code,
		TemplateID:  sv.TemplateID,
		CreatedAt:   sv.CreatedAt,
	}
}

func convertAPIResponse(r *Response) *services.Response {
	if r == nil {
		return nil
	}
	return &services.Response{
		ID:        r.ID,
		SurveyID:  r.SurveyID,
		Email:     r.Email,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func convertServiceResponse(r *services.Response) *Response {
	if r == nil {
		return nil
	}
	return &Response{
		ID:        r.ID,
		SurveyID:  r.SurveyID,
		Email:     r.Email,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func convertAPITemplate(t *Template) *services.Template {
	if t == nil {
		return nil
	}
	return &services.Template{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func convertServiceTemplate(t *services.Template) *Template {
	if t == nil {
		return nil
	}
	return &Template{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

type surveyStoreAdapter struct {
	store Store
}

func newSurveyStoreAdapter(store Store) services.SurveyStore {
	return &surveyStoreAdapter{store: store}
}

func (a *surveyStoreAdapter) InsertSurvey(sv *services.Survey) (*services.Survey, error) {
	created, err := a.store.InsertSurvey(convertServiceSurvey(sv))
	if err != nil {
		return nil, err
	}
	return convertAPISurvey(created), nil
}

func (a *surveyStoreAdapter) GetSurvey(id string) (*services.Survey, error) {
	sv, err := a.store.GetSurvey(id)
	if err != nil {
		return nil, err
	}
	return convertAPISurvey(sv), nil
}

func (a *surveyStoreAdapter) ListSurveys() ([]*services.SurveyWithCount, error) {
	list, err := a.store.ListSurveys()
	if err != nil {
		return nil, err
	}
	out := make([]*services.SurveyWithCount, 0, len(list))
	for _, sv := range list {
		out = append(out, &services.SurveyWithCount{
			Survey:        *convertAPISurvey(&sv.Survey),
			ResponseCount: sv.ResponseCount,
		})
	}
	return out, nil
}

func (a *surveyStoreAdapter) DeleteSurveyCascade(id string) (bool, error) {
	return a.store.DeleteSurveyCascade(id)
}

func (a *surveyStoreAdapter) GetTemplate(id string) (*services.Template, error) {
	t, err := a.store.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	return convertAPITemplate(t), nil
}

var _ services.SurveyStore = (*surveyStoreAdapter)(nil)
