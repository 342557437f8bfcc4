package api

import "github.com/surveypulse/surveypulse/internal/services"

type templateStoreAdapter struct {
	store Store
}

func newTemplateStoreAdapter(store Store) services.TemplateStore {
	return &templateStoreAdapter{store: store}
}

func (a *templateStoreAdapter) InsertTemplate(t *services.Template) (*services.Template, error) {
	created, err := a.store.InsertTemplate(convertServiceTemplate(t))
	if err != nil {
		return nil, err
	}
	return convertAPITemplate(created), nil
}

func (a *templateStoreAdapter) ListTemplates() ([]*services.Template, error) {
	list, err := a.store.ListTemplates()
	if err != nil {
		return nil, err
	}
	out := make([]*services.Template, 0, len(list))
	for _, t := range list {
		out = append(out, convertAPITemplate(t))
	}
	return out, nil
}

func (a *templateStoreAdapter) DeleteTemplate(id string) (bool, error) {
	return a.store.DeleteTemplate(id)
}

var _ services.TemplateStore = (*templateStoreAdapter)(nil)
