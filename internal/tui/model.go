// Package tui is the terminal storefront: the same shell and screens as the
// web surface rendered with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"dirtyduck.club/storefront/internal/cards"
	"dirtyduck.club/storefront/internal/catalog"
	"dirtyduck.club/storefront/internal/i18n"
	"dirtyduck.club/storefront/internal/nav"
	"dirtyduck.club/storefront/internal/shell"
	"dirtyduck.club/storefront/internal/view"
)

const defaultWidth = 72

// titleMsg reports a title toggle from the shell timer.
type titleMsg struct{}

// guideRef addresses one item inside a guide section.
type guideRef struct {
	section catalog.GuideSection
	index   int
}

// Model is the bubbletea model over one shell.
type Model struct {
	sh     *shell.Shell
	reg    *catalog.Registry
	loc    i18n.Localizer
	keys   keyMap
	styles Styles
	logger *zap.Logger

	renderer *glamour.TermRenderer
	width    int
	cursor   int
	notice   string
	quitting bool

	done chan struct{}
}

// New builds a model. The caller owns sh and must Close it.
func New(sh *shell.Shell, reg *catalog.Registry, loc i18n.Localizer, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		sh:     sh,
		reg:    reg,
		loc:    loc,
		keys:   defaultKeyMap(),
		styles: DefaultStyles(),
		logger: logger,
		width:  defaultWidth,
		done:   make(chan struct{}),
	}
	m.renderer = newRenderer(m.width)
	return m
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return nil
	}
	return r
}

// Init waits for the first title toggle.
func (m Model) Init() tea.Cmd {
	return m.waitForTitle()
}

func (m Model) waitForTitle() tea.Cmd {
	changes, done := m.sh.Changes(), m.done
	return func() tea.Msg {
		select {
		case <-changes:
			return titleMsg{}
		case <-done:
			return nil
		}
	}
}

// Update applies one input event.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case titleMsg:
		return m, m.waitForTitle()
	case tea.WindowSizeMsg:
		if msg.Width > 0 && msg.Width != m.width {
			m.width = msg.Width
			m.renderer = newRenderer(m.width)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.stopWaiting()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.selectTab((m.sh.Tab() + 1) % shell.Tab(len(shell.Tabs()))), nil
	case key.Matches(msg, m.keys.Prev):
		n := shell.Tab(len(shell.Tabs()))
		return m.selectTab((m.sh.Tab() + n - 1) % n), nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		return m.activate(), nil
	}
	for i, b := range m.keys.Tabs {
		if key.Matches(msg, b) {
			return m.selectTab(shell.Tabs()[i]), nil
		}
	}
	return m, nil
}

func (m *Model) stopWaiting() {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

func (m Model) selectTab(t shell.Tab) Model {
	if m.sh.SelectTab(t) {
		m.cursor = 0
		m.notice = ""
	}
	return m
}

func (m Model) itemCount() int {
	switch m.sh.Tab() {
	case shell.TabShop:
		return len(m.reg.Products())
	case shell.TabGuide:
		return len(m.guideRefs())
	}
	return 0
}

func (m Model) guideRefs() []guideRef {
	var refs []guideRef
	for _, g := range m.reg.Guides() {
		for i := range g.Items {
			refs = append(refs, guideRef{section: g, index: i})
		}
	}
	return refs
}

func (m Model) activate() Model {
	switch m.sh.Tab() {
	case shell.TabWelcome:
		return m.selectTab(shell.TabShop)
	case shell.TabShop:
		products := m.reg.Products()
		if m.cursor >= len(products) {
			return m
		}
		id := products[m.cursor].ID
		inCart, err := m.sh.ToggleCart(id)
		if err != nil {
			m.logger.Warn("toggle cart", zap.String("product", id), zap.Error(err))
			return m
		}
		m.logger.Debug("cart toggled", zap.String("product", id), zap.Bool("in_cart", inCart))
	case shell.TabGuide:
		refs := m.guideRefs()
		if m.cursor >= len(refs) {
			return m
		}
		ref := refs[m.cursor]
		if text, ok := view.Notice(ref.section, ref.index, m.loc); ok {
			m.notice = text
		}
	}
	return m
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.sh.Snapshot()
	scr := view.Build(snap, m.reg, m.loc)

	var b strings.Builder
	b.WriteString(m.header(scr))
	b.WriteString("\n")
	b.WriteString(m.tabs(scr.Tab))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Heading.Render(scr.Intro.Heading) + " " + m.styles.Accent.Render(scr.Intro.Accent))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(scr.Intro.Subheading))
	b.WriteString("\n\n")

	switch {
	case scr.Welcome != nil:
		b.WriteString(m.welcome(scr.Welcome))
	case scr.Products != nil:
		b.WriteString(m.products(scr.Products))
	case scr.Guides != nil:
		b.WriteString(m.guides(scr))
	case scr.Reviews != nil:
		b.WriteString(m.reviews(scr))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.loc.T("tui.help")))
	return b.String()
}

func (m Model) header(scr view.Screen) string {
	var title string
	if scr.TitleFull {
		title = m.styles.Title.Render(m.loc.T("brand.name"))
	} else {
		title = m.styles.TitleShort.Render(m.loc.T("brand.short"))
	}
	left := title + "  " + m.styles.Muted.Render(m.loc.T("brand.est"))
	right := m.loc.Tf("tui.cart", scr.CartCount)
	if scr.CartCount > 0 {
		right = m.styles.Badge.Render(right)
	} else {
		right = m.styles.Muted.Render(right)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) tabs(active shell.Tab) string {
	items := nav.Build(active, m.loc)
	parts := make([]string, 0, len(items))
	for i, it := range items {
		label := fmt.Sprintf("%d %s", i+1, it.Label)
		if it.Active {
			parts = append(parts, m.styles.TabActive.Foreground(toneColor(it.Tone)).Render(label))
			continue
		}
		parts = append(parts, m.styles.Tab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) welcome(w *view.Welcome) string {
	var body string
	if m.renderer != nil {
		if out, err := m.renderer.Render(w.Markdown); err == nil {
			body = strings.TrimRight(out, "\n")
		}
	}
	if body == "" {
		body = strings.Join(w.ParagraphsText, "\n\n")
	}
	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render(w.Regards))
	b.WriteString("\n")
	b.WriteString(m.styles.Heading.Render(w.Signature))
	b.WriteString("\n\n")
	b.WriteString(m.styles.CardActive.Render(w.Action + " →"))
	return b.String()
}

func (m Model) products(list []cards.ProductCard) string {
	rows := make([]string, 0, len(list))
	for i, c := range list {
		var b strings.Builder
		b.WriteString(c.Glyph.Symbol + " " + m.styles.Heading.Render(c.Title))
		if c.Badge != "" {
			b.WriteString(" " + m.styles.Badge.Render(c.Badge))
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(c.DescriptionText))
		b.WriteString("\n")
		if c.HasDiscount {
			b.WriteString(m.styles.OldPrice.Render(strings.TrimSpace(c.OldPrice+" "+c.Currency)) + " ")
		}
		b.WriteString(m.styles.Price.Render(strings.TrimSpace(c.Price + " " + c.Currency)))
		b.WriteString("  ")
		if c.InCart {
			b.WriteString(m.styles.InCart.Render("✓ " + c.ToggleLabel))
		} else {
			b.WriteString(m.styles.Muted.Render("+ " + c.ToggleLabel))
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render(m.loc.Tf("tui.link", c.CTALink)))
		rows = append(rows, m.card(i == m.cursor).Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) guides(scr view.Screen) string {
	var rows []string
	pos := 0
	for _, g := range scr.Guides {
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().Foreground(toneColor(g.Glyph.Tone)).Render(g.Glyph.Symbol) + " " + m.styles.Heading.Render(g.Title))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(g.DescriptionText))
		for _, it := range g.Items {
			b.WriteString("\n")
			marker := "  "
			if pos == m.cursor {
				marker = m.styles.Accent.Render("› ")
			}
			b.WriteString(marker + it.Label)
			pos++
		}
		rows = append(rows, m.card(false).Render(b.String()))
	}
	if scr.Footer != nil {
		rows = append(rows, m.styles.Muted.Render(scr.Footer.Text)+"\n"+m.styles.Help.Render(m.loc.Tf("tui.link", scr.Footer.Link)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) reviews(scr view.Screen) string {
	var rows []string
	if scr.Banner != nil {
		rows = append(rows, m.styles.Banner.Render(m.styles.Heading.Render(scr.Banner.Title)+"\n"+scr.Banner.Body))
	}
	for _, r := range scr.Reviews {
		var b strings.Builder
		b.WriteString(m.styles.Stars.Render(strings.Repeat("★", r.Rating)))
		b.WriteString("\n“" + r.Text + "”\n")
		b.WriteString(m.styles.Heading.Render(r.Author))
		if r.Context != "" {
			b.WriteString(" " + m.styles.Muted.Render(r.Context))
		}
		rows = append(rows, m.card(false).Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) card(selected bool) lipgloss.Style {
	st := m.styles.Card
	if selected {
		st = m.styles.CardActive
	}
	return st.Width(m.width - 2)
}

// Options configures Run.
type Options struct {
	TitleInterval time.Duration
	Logger        *zap.Logger
	// ProgramOptions are passed to tea.NewProgram, e.g. custom input for tests.
	ProgramOptions []tea.ProgramOption
}

// Run starts a shell, drives it from the terminal until the user quits or ctx
// is cancelled and closes the shell before returning.
func Run(ctx context.Context, reg *catalog.Registry, loc i18n.Localizer, opts Options) error {
	sh := shell.New(shell.WithProducts(reg), shell.WithTitleInterval(opts.TitleInterval))
	sh.Start()
	defer sh.Close()

	m := New(sh, reg, loc, opts.Logger)
	popts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts.ProgramOptions...)
	_, err := tea.NewProgram(m, popts...).Run()
	m.stopWaiting()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
