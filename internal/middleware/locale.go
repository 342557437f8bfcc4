package middleware

import (
	"context"
	"net/http"

	"github.com/surveypulse/surveypulse/internal/utils"
)

type ctxKey int

const localeKey ctxKey = 1

var supportedLocales = []string{"en", "tr"}

// Locale extracts the locale from the lang query param or Accept-Language
// and stores it in the request context. Invite emails, the acknowledgment
// page, and rating labels are rendered in this locale.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		qLang := r.URL.Query().Get("lang")
		aLang := r.Header.Get("Accept-Language")
		locale := utils.DetermineLocale(qLang, aLang, supportedLocales, "en")
		ctx := context.WithValue(r.Context(), localeKey, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LocaleFromContext retrieves the locale stored by Locale.
func LocaleFromContext(ctx context.Context) string {
	if v := ctx.Value(localeKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "en"
}
