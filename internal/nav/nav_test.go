package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dirtyduck.club/storefront/internal/shell"
)

type echo struct{}

func (echo) T(key string) string { return key }

func TestBuildMarksExactlyOneActive(t *testing.T) {
	for _, tab := range shell.Tabs() {
		items := Build(tab, echo{})
		require.Len(t, items, len(shell.Tabs()))
		active := 0
		for _, it := range items {
			if it.Active {
				active++
				require.Equal(t, tab, it.Tab)
			}
		}
		require.Equal(t, 1, active, "tab %s", tab)
	}
}

func TestBuildOrderAndActions(t *testing.T) {
	items := Build(shell.TabWelcome, echo{})
	var names, actions []string
	for _, it := range items {
		names = append(names, it.Name)
		actions = append(actions, it.Action)
	}
	require.Equal(t, []string{"welcome", "shop", "guide", "reviews"}, names)
	require.Equal(t, "/tabs/shop", actions[1])
	require.Equal(t, "nav.shop", items[1].Label)
}
