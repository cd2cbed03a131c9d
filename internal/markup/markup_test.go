package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTMLRendersEmphasis(t *testing.T) {
	out := string(HTML("Стиль **без воды**"))
	require.Contains(t, out, "<strong>без воды</strong>")
}

func TestHTMLStripsScripts(t *testing.T) {
	out := string(HTML("hi <script>alert(1)</script>"))
	require.NotContains(t, out, "<script")
}

func TestHTMLOpensLinksInNewContext(t *testing.T) {
	out := string(HTML("[канал](https://t.me/dirtyduckclub)"))
	require.Contains(t, out, `target="_blank"`)
	require.Contains(t, out, "noreferrer")
}

func TestInlineDropsParagraph(t *testing.T) {
	out := string(Inline("*one*"))
	require.Equal(t, "<em>one</em>", out)
}

func TestPlain(t *testing.T) {
	require.Equal(t, "Стиль без воды & газ", Plain("Стиль **без воды** & газ"))
	require.Empty(t, Plain("   "))
	require.False(t, strings.Contains(Plain("[a](https://x.io)"), "<"))
	require.Equal(t, "one\n\ntwo", Plain("one\n\ntwo"))
}
