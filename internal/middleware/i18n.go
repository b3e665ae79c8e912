package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

// LocaleKey stores the negotiated locale in the request context.
var LocaleKey = localeContextKey{}

// supportedLocales lists the languages summaries can be rendered in.
// Traditional Chinese first: it is the product's primary audience and wins
// ties and unknowns.
var supportedLocales = language.NewMatcher([]language.Tag{
	language.TraditionalChinese,
	language.English,
})

var localeNames = []string{"zh-TW", "en"}

// I18N negotiates the response locale from the X-Locale header (explicit
// override) or Accept-Language, falling back to the configured default.
func I18N(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string) string {
	if v := r.Header.Get("X-Locale"); v != "" {
		return matchLocale(v)
	}
	if v := r.Header.Get("Accept-Language"); v != "" {
		return matchLocale(v)
	}
	if fallback != "" {
		return matchLocale(fallback)
	}
	return localeNames[0]
}

func matchLocale(requested string) string {
	_, idx := language.MatchStrings(supportedLocales, requested)
	return localeNames[idx]
}

// LocaleFromContext returns the negotiated locale for the request, defaulting
// to Traditional Chinese outside a request scope.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return localeNames[0]
}
