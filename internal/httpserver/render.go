package httpserver

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"dirtyduck.club/storefront/internal/cards"
	"dirtyduck.club/storefront/internal/logging"
	"dirtyduck.club/storefront/internal/nav"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var assetFS embed.FS

func staticFS() fs.FS {
	sub, err := fs.Sub(assetFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

type renderer struct {
	t *template.Template
}

type productCardData struct {
	Card cards.ProductCard
	CSRF string
}

type badgeData struct {
	Count int
	OOB   bool
}

type navData struct {
	Items []nav.RenderedItem
	Label string
	CSRF  string
	OOB   bool
}

func newRenderer() (*renderer, error) {
	funcMap := template.FuncMap{
		"productCard": func(c cards.ProductCard, csrf string) productCardData {
			return productCardData{Card: c, CSRF: csrf}
		},
		"badge": func(count int, oob bool) badgeData {
			return badgeData{Count: count, OOB: oob}
		},
		"navBar": func(n pageNav, csrf string, oob bool) navData {
			return navData{Items: n.Items, Label: n.Label, CSRF: csrf, OOB: oob}
		},
		"tabPath":   nav.ActionPath,
		"guidePath": guidePath,
	}
	t, err := template.New("_root").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &renderer{t: t}, nil
}

func guidePath(sectionID string, index int) string {
	return "/guide/" + url.PathEscape(sectionID) + "/" + strconv.Itoa(index)
}

// render executes name into a buffer so a template failure never leaves a
// half-written response.
func (rd *renderer) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := rd.t.ExecuteTemplate(&buf, name, data); err != nil {
		logging.FromContext(r.Context()).Error("template exec", zap.String("template", name), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
