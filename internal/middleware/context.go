package middleware

import (
	"context"

	"dirtyduck.club/storefront/internal/i18n"
	"dirtyduck.club/storefront/internal/shell"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyIsHTMX    ctxKey = "is_htmx"
	ctxKeySessionID ctxKey = "session_id"
	ctxKeyShell     ctxKey = "shell"
	ctxKeyLocalizer ctxKey = "localizer"
	ctxKeyCSRF      ctxKey = "csrf"

	ctxKeyRequestInfo ctxKey = "request_info"
)

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithShell attaches the visitor shell and its session id.
func WithShell(ctx context.Context, id string, sh *shell.Shell) context.Context {
	if info, ok := ctx.Value(ctxKeyRequestInfo).(*requestInfo); ok {
		info.sessionID = id
	}
	ctx = context.WithValue(ctx, ctxKeySessionID, id)
	return context.WithValue(ctx, ctxKeyShell, sh)
}

// ShellFromContext returns the visitor shell, or nil outside the Session middleware.
func ShellFromContext(ctx context.Context) *shell.Shell {
	sh, _ := ctx.Value(ctxKeyShell).(*shell.Shell)
	return sh
}

// SessionID returns the session id for the request
func SessionID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeySessionID).(string)
	return v
}

// WithLocalizer stores the resolved localizer.
func WithLocalizer(ctx context.Context, loc i18n.Localizer) context.Context {
	return context.WithValue(ctx, ctxKeyLocalizer, loc)
}

// LocalizerFromContext returns the localizer set by Locale.
func LocalizerFromContext(ctx context.Context) (i18n.Localizer, bool) {
	loc, ok := ctx.Value(ctxKeyLocalizer).(i18n.Localizer)
	return loc, ok
}

// WithCSRFToken stores the token templates must echo back.
func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyCSRF, token)
}

// CSRFToken returns the current CSRF token
func CSRFToken(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyCSRF).(string)
	return v
}
