package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dirtyduck.club/storefront/internal/cards"
	"dirtyduck.club/storefront/internal/i18n"
	"dirtyduck.club/storefront/internal/logging"
	mw "dirtyduck.club/storefront/internal/middleware"
	"dirtyduck.club/storefront/internal/nav"
	"dirtyduck.club/storefront/internal/seo"
	"dirtyduck.club/storefront/internal/shell"
	"dirtyduck.club/storefront/internal/view"
)

// page is the view model of the full document and the tab fragment.
type page struct {
	Screen  view.Screen
	Nav     pageNav
	Title   titleData
	Loc     i18n.Localizer
	Meta    seo.Meta
	CSRF    string
	AltLang string
}

type pageNav struct {
	Items []nav.RenderedItem
	Label string
}

type titleData struct {
	Full  bool
	Text  string
	Every string
}

type cartSwap struct {
	Product productCardData
	Count   int
}

type noticeData struct {
	SectionID string
	Text      string
}

func (s *Server) buildPage(r *http.Request, sh *shell.Shell) page {
	loc := mw.Localizer(r, s.bundle)
	snap := sh.Snapshot()
	scr := view.Build(snap, s.reg, loc)
	p := page{
		Screen: scr,
		Nav:    pageNav{Items: nav.Build(scr.Tab, loc), Label: loc.T("nav.label")},
		Title:  s.title(snap.TitleFull, loc),
		Loc:    loc,
		Meta:   s.meta(scr, loc),
		CSRF:   mw.CSRFToken(r.Context()),
	}
	for _, l := range s.bundle.Supported() {
		if l != loc.Lang() {
			p.AltLang = l
			break
		}
	}
	return p
}

func (s *Server) title(full bool, loc i18n.Localizer) titleData {
	t := titleData{Full: full, Every: strconv.FormatInt(s.interval.Milliseconds(), 10) + "ms"}
	if full {
		t.Text = loc.T("brand.name")
	} else {
		t.Text = loc.T("brand.short")
	}
	return t
}

func (s *Server) meta(scr view.Screen, loc i18n.Localizer) seo.Meta {
	name := loc.T("brand.name")
	m := seo.Meta{
		Title:       name,
		Description: loc.T("page.description"),
		OG: seo.OpenGraph{
			Title:       name,
			Description: loc.T("page.description"),
			Type:        "website",
			SiteName:    name,
		},
		Twitter: seo.Twitter{Card: "summary"},
	}
	links := scr.Links
	m.JSONLD = append(m.JSONLD, seo.Script(seo.Organization(name, "", "", links.Contact, links.Channel)))
	if scr.Tab == shell.TabShop {
		m.Title = loc.T("nav.shop") + " · " + name
		m.JSONLD = append(m.JSONLD, seo.Script(seo.Catalog(loc.T("nav.shop"), s.reg.Products())))
	}
	return m
}

func visitorShell(w http.ResponseWriter, r *http.Request) (*shell.Shell, bool) {
	sh := mw.ShellFromContext(r.Context())
	if sh == nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "session unavailable")
		return nil, false
	}
	return sh, true
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sh, ok := visitorShell(w, r)
	if !ok {
		return
	}
	// the title timer runs only for visitors that loaded the page
	sh.Start()
	s.tmpl.render(w, r, http.StatusOK, "base", s.buildPage(r, sh))
}

func (s *Server) handleSelectTab(w http.ResponseWriter, r *http.Request) {
	sh, ok := visitorShell(w, r)
	if !ok {
		return
	}
	tab, ok := shell.ParseTab(chi.URLParam(r, "tab"))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "unknown tab")
		return
	}
	sh.SelectTab(tab)
	logging.FromContext(r.Context()).Debug("tab selected", zap.Stringer("tab", tab))

	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.tmpl.render(w, r, http.StatusOK, "tab-swap", s.buildPage(r, sh))
}

func (s *Server) handleToggleCart(w http.ResponseWriter, r *http.Request) {
	sh, ok := visitorShell(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "productID")
	inCart, err := sh.ToggleCart(id)
	if err != nil {
		if errors.Is(err, shell.ErrUnknownProduct) {
			mw.WriteError(w, r, http.StatusNotFound, "unknown product")
			return
		}
		logging.FromContext(r.Context()).Error("toggle cart", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	logging.FromContext(r.Context()).Debug("cart toggled", zap.String("product", id), zap.Bool("in_cart", inCart))

	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	product, _ := s.reg.Product(id)
	loc := mw.Localizer(r, s.bundle)
	s.tmpl.render(w, r, http.StatusOK, "cart-swap", cartSwap{
		Product: productCardData{Card: cards.Product(product, inCart, loc), CSRF: mw.CSRFToken(r.Context())},
		Count:   sh.Snapshot().CartCount(),
	})
}

func (s *Server) handleTitle(w http.ResponseWriter, r *http.Request) {
	sh, ok := visitorShell(w, r)
	if !ok {
		return
	}
	sh.Start()
	w.Header().Set("Cache-Control", "no-store")
	loc := mw.Localizer(r, s.bundle)
	s.tmpl.render(w, r, http.StatusOK, "title", s.title(sh.Snapshot().TitleFull, loc))
}

func (s *Server) handleGuideNotice(w http.ResponseWriter, r *http.Request) {
	section, ok := s.reg.Guide(chi.URLParam(r, "sectionID"))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "unknown guide section")
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		mw.WriteError(w, r, http.StatusNotFound, "unknown guide item")
		return
	}
	text, ok := view.Notice(section, index, mw.Localizer(r, s.bundle))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "unknown guide item")
		return
	}
	s.tmpl.render(w, r, http.StatusOK, "notice", noticeData{SectionID: section.ID, Text: text})
}
