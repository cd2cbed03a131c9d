package middleware

import (
	"net/http"
	"strings"

	"dirtyduck.club/storefront/internal/i18n"
)

const langCookieName = "hl"

// VaryLocale sets Vary header for Accept-Language on dynamic responses
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// append to existing Vary if any
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

// Locale resolves the display language from ?hl=, the hl cookie or
// Accept-Language, in that order, and stores a localizer on the request.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("hl"))); q != "" && bundle.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{
					Name:     langCookieName,
					Value:    q,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			} else if c, err := r.Cookie(langCookieName); err == nil && bundle.IsSupported(strings.ToLower(c.Value)) {
				lang = strings.ToLower(c.Value)
			} else {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			loc := bundle.For(lang)
			w.Header().Set("Content-Language", loc.Lang())
			next.ServeHTTP(w, r.WithContext(WithLocalizer(r.Context(), loc)))
		})
	}
}

// Localizer returns the request localizer, falling back to the bundle default.
func Localizer(r *http.Request, bundle *i18n.Bundle) i18n.Localizer {
	if loc, ok := LocalizerFromContext(r.Context()); ok {
		return loc
	}
	return bundle.For(bundle.Fallback())
}
