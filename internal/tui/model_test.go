package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"dirtyduck.club/storefront/internal/catalog"
	"dirtyduck.club/storefront/internal/i18n"
	"dirtyduck.club/storefront/internal/shell"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (Model, *shell.Shell) {
	t.Helper()
	bundle, err := i18n.LoadDefault()
	require.NoError(t, err)
	reg := catalog.Default()
	sh := shell.New(shell.WithProducts(reg))
	t.Cleanup(func() { _ = sh.Close() })
	return New(sh, reg, bundle.For("en"), nil), sh
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestNumberKeysSelectTabs(t *testing.T) {
	m, sh := newTestModel(t)
	require.Equal(t, shell.TabWelcome, sh.Tab())

	press(t, m, runes("2"))
	require.Equal(t, shell.TabShop, sh.Tab())
	press(t, m, runes("4"))
	require.Equal(t, shell.TabReviews, sh.Tab())
	press(t, m, runes("1"))
	require.Equal(t, shell.TabWelcome, sh.Tab())
}

func TestTabKeysCycle(t *testing.T) {
	m, sh := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, shell.TabReviews, sh.Tab(), "shift+tab wraps backwards")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, shell.TabWelcome, sh.Tab(), "tab wraps forwards")
	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, shell.TabShop, sh.Tab())
}

func TestSpaceTogglesSelectedProduct(t *testing.T) {
	m, sh := newTestModel(t)
	m = press(t, m, runes("2"), tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, []string{"book-gentleman"}, sh.Snapshot().CartIDs)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{"book-gentleman", "style-audit"}, sh.Snapshot().CartIDs)
	require.Contains(t, m.View(), "Cart: 2")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, []string{"style-audit"}, sh.Snapshot().CartIDs)
}

func TestCursorStaysInBounds(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("2"), tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.cursor)
	for i := 0; i < 20; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, len(catalog.Default().Products())-1, m.cursor)

	m = press(t, m, runes("3"))
	require.Equal(t, 0, m.cursor, "switching tabs resets the cursor")
}

func TestGuideShowsNotice(t *testing.T) {
	m, sh := newTestModel(t)
	m = press(t, m, runes("3"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, shell.TabGuide, sh.Tab())
	require.Contains(t, m.notice, "Пять ошибок в базовом гардеробе")
	require.Contains(t, m.View(), m.notice)
	require.Empty(t, sh.Snapshot().CartIDs, "guide items never touch the cart")

	m = press(t, m, runes("4"))
	require.Empty(t, m.notice)
}

func TestWelcomeActionOpensShop(t *testing.T) {
	m, sh := newTestModel(t)
	view := m.View()
	require.Contains(t, view, "Go to services")
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, shell.TabShop, sh.Tab())
}

func TestViewReflectsTitleFlag(t *testing.T) {
	bundle, err := i18n.LoadDefault()
	require.NoError(t, err)
	reg := catalog.Default()

	ticks := make(chan time.Time)
	sh := shell.New(shell.WithProducts(reg), shell.WithTicker(func(time.Duration) shell.Ticker {
		return chanTicker(ticks)
	}))
	sh.Start()
	defer sh.Close()

	m := New(sh, reg, bundle.For("en"), nil)
	require.Contains(t, m.View(), "Dirty Duck Club")

	cmd := m.Init()
	ticks <- time.Now()
	msg := cmd()
	require.IsType(t, titleMsg{}, msg)

	next, rearm := m.Update(msg)
	require.NotNil(t, rearm, "the title wait is re-armed")
	view := next.(Model).View()
	require.NotContains(t, view, "Dirty Duck Club")
	require.Contains(t, view, "DDC")
}

func TestQuitStopsWaiting(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	m, _ := newTestModel(t)

	wait := m.Init()
	result := make(chan tea.Msg, 1)
	go func() { result <- wait() }()

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Empty(t, next.(Model).View())
	require.Nil(t, <-result)
}

func TestReviewsRenderStars(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("4"))
	view := m.View()
	require.Contains(t, view, strings.Repeat("★", 5))
	require.Contains(t, view, "Anonymous")
}

type chanTicker chan time.Time

func (c chanTicker) C() <-chan time.Time { return c }
func (c chanTicker) Stop()               {}
