package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"dirtyduck.club/storefront/internal/i18n"
	"dirtyduck.club/storefront/internal/logging"
	"dirtyduck.club/storefront/internal/session"
	"dirtyduck.club/storefront/internal/shell"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	_, _ = io.WriteString(w, "ok")
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCSRFIssuesTokenOnSafeRequests(t *testing.T) {
	var seen string
	h := CSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CSRFToken(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	c := cookieNamed(rec, csrfCookieName)
	require.NotNil(t, c)
	require.Equal(t, c.Value, seen)
}

func TestCSRFRejectsMissingOrWrongToken(t *testing.T) {
	h := HTMX(CSRF(false)(http.HandlerFunc(okHandler)))
	token := newCSRFToken()

	req := httptest.NewRequest(http.MethodPost, "/tabs/shop", nil)
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	req = httptest.NewRequest(http.MethodPost, "/tabs/shop", nil)
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
	req.Header.Set(csrfHeaderName, newCSRFToken())
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/tabs/shop", nil)
	req.Header.Set(csrfHeaderName, token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code, "no cookie means no token to match")
}

func TestCSRFAcceptsHeaderOrFormField(t *testing.T) {
	h := CSRF(false)(http.HandlerFunc(okHandler))
	token := newCSRFToken()

	req := httptest.NewRequest(http.MethodPost, "/cart/x", nil)
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
	req.Header.Set(csrfHeaderName, token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	form := url.Values{csrfFormField: {token}}
	req = httptest.NewRequest(http.MethodPost, "/cart/x", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionReusesShellAcrossRequests(t *testing.T) {
	store := session.NewStore(func() *shell.Shell {
		return shell.New(shell.WithTitleInterval(time.Hour))
	}, session.Options{})
	defer store.Close()
	codec, err := session.NewCodec([]byte("0123456789abcdef0123456789abcdef"), nil, false, 0)
	require.NoError(t, err)

	var shells []*shell.Shell
	h := Session(store, codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, SessionID(r.Context()))
		shells = append(shells, ShellFromContext(r.Context()))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	c := cookieNamed(rec, session.CookieName)
	require.NotNil(t, c)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	again := cookieNamed(rec, session.CookieName)
	require.NotNil(t, again, "known sessions are re-signed")
	check := httptest.NewRequest(http.MethodGet, "/", nil)
	check.AddCookie(again)
	require.Equal(t, codec.Read(req), codec.Read(check))

	require.Len(t, shells, 2)
	require.Same(t, shells[0], shells[1])
	require.Equal(t, 1, store.Len())
}

func TestSessionOutlivesCookieMaxAgeWhileActive(t *testing.T) {
	if testing.Short() {
		t.Skip("waits on wall-clock cookie expiry")
	}
	store := session.NewStore(func() *shell.Shell {
		return shell.New(shell.WithTitleInterval(time.Hour))
	}, session.Options{IdleTimeout: time.Minute})
	defer store.Close()
	codec, err := session.NewCodec([]byte("0123456789abcdef0123456789abcdef"), nil, false, time.Second)
	require.NoError(t, err)

	var ids []string
	h := Session(store, codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, SessionID(r.Context()))
	}))

	var c *http.Cookie
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if c != nil {
			time.Sleep(700 * time.Millisecond)
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		c = cookieNamed(rec, session.CookieName)
		require.NotNil(t, c)
	}

	require.Len(t, ids, 4)
	for _, id := range ids[1:] {
		require.Equal(t, ids[0], id, "an active visitor keeps one session")
	}
	require.Equal(t, 1, store.Len())
}

func TestSessionUnavailableAfterStoreClose(t *testing.T) {
	store := session.NewStore(func() *shell.Shell { return shell.New() }, session.Options{})
	require.NoError(t, store.Close())
	codec, err := session.NewCodec(nil, nil, false, 0)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	Session(store, codec)(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLocaleResolution(t *testing.T) {
	bundle, err := i18n.LoadDefault()
	require.NoError(t, err)

	var got string
	h := Locale(bundle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Localizer(r, bundle).Lang()
	}))

	cases := []struct {
		name   string
		target string
		cookie string
		accept string
		want   string
	}{
		{name: "default", target: "/", want: "ru"},
		{name: "accept language", target: "/", accept: "en-US,en;q=0.8", want: "en"},
		{name: "cookie beats header", target: "/", cookie: "ru", accept: "en", want: "ru"},
		{name: "query beats cookie", target: "/?hl=en", cookie: "ru", want: "en"},
		{name: "unsupported query ignored", target: "/?hl=xx", accept: "en", want: "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: langCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.want, rec.Header().Get("Content-Language"))
		})
	}
}

func TestAssetsETag(t *testing.T) {
	fsys := fstest.MapFS{"app.css": {Data: []byte("body{}")}}
	h := http.StripPrefix("/assets", AssetsWithCache(fsys))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/app.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	et := rec.Header().Get("ETag")
	require.NotEmpty(t, et)
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age")

	req := httptest.NewRequest(http.MethodGet, "/assets/app.css", nil)
	req.Header.Set("If-None-Match", et)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Equal(t, 1, logs.FilterMessage("inside").Len())
	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	require.EqualValues(t, http.StatusTeapot, entries[0].ContextMap()["status"])
	require.Equal(t, "/x", entries[0].ContextMap()["path"])
}
