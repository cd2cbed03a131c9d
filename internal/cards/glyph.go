package cards

import (
	"strings"

	"dirtyduck.club/storefront/internal/catalog"
)

// Glyph is an abstract icon: a name the stylesheet maps to artwork, a colour
// tone and a terminal symbol.
type Glyph struct {
	Name   string
	Tone   string
	Symbol string
}

// DefaultGlyph is used for any icon outside the known set.
var DefaultGlyph = Glyph{Name: "flame", Tone: "neutral", Symbol: "🔥"}

var guideGlyphs = map[catalog.Icon]Glyph{
	catalog.IconFlame: {Name: "flame", Tone: "orange", Symbol: "🔥"},
	catalog.IconBrain: {Name: "brain", Tone: "purple", Symbol: "🧠"},
	catalog.IconMask:  {Name: "user", Tone: "blue", Symbol: "👤"},
}

var categoryGlyphs = map[catalog.Category]Glyph{
	catalog.CategoryBook:     {Name: "book", Tone: "purple", Symbol: "📖"},
	catalog.CategoryService:  {Name: "sparkles", Tone: "purple", Symbol: "✨"},
	catalog.CategoryCourse:   {Name: "graduation", Tone: "purple", Symbol: "🎓"},
	catalog.CategoryBusiness: {Name: "briefcase", Tone: "purple", Symbol: "💼"},
}

// GlyphFor resolves a guide icon. Unknown names yield DefaultGlyph.
func GlyphFor(icon catalog.Icon) Glyph {
	if g, ok := guideGlyphs[catalog.Icon(strings.ToLower(strings.TrimSpace(string(icon))))]; ok {
		return g
	}
	return DefaultGlyph
}

// CategoryGlyph resolves the product category icon.
func CategoryGlyph(c catalog.Category) Glyph {
	if g, ok := categoryGlyphs[c]; ok {
		return g
	}
	return DefaultGlyph
}
