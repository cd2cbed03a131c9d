package i18n

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestResolveHonorsQValues(t *testing.T) {
	b, err := LoadDefault()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := b.Resolve("ru;q=0.8, en;q=0.9")
	if got != "en" {
		t.Fatalf("expected en, got %s", got)
	}
}

func TestResolveFallsBack(t *testing.T) {
	b, err := LoadDefault()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, header := range []string{"", "de-DE", "not a header;;;"} {
		if got := b.Resolve(header); got != "ru" {
			t.Fatalf("Resolve(%q) = %s, want ru", header, got)
		}
	}
	if got := b.Resolve("en-US,en;q=0.9"); got != "en" {
		t.Fatalf("expected regional en to resolve to en, got %s", got)
	}
}

func TestTranslateFallsBackToDefaultThenKey(t *testing.T) {
	fsys := fstest.MapFS{
		"ru.json": {Data: []byte(`{"a":"А","b":"Б"}`)},
		"en.json": {Data: []byte(`{"a":"A"}`)},
	}
	b, err := Load(fsys, "ru", []string{"ru", "en"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	en := b.For("en")
	if got := en.T("a"); got != "A" {
		t.Fatalf("expected A, got %s", got)
	}
	if got := en.T("b"); got != "Б" {
		t.Fatalf("expected fallback Б, got %s", got)
	}
	if got := en.T("missing"); got != "missing" {
		t.Fatalf("expected key echo, got %s", got)
	}
	if got := b.For("fr").Lang(); got != "ru" {
		t.Fatalf("unsupported language should bind fallback, got %s", got)
	}
}

func TestLoadRequiresFallback(t *testing.T) {
	fsys := fstest.MapFS{"en.json": {Data: []byte(`{}`)}}
	if _, err := Load(fsys, "ru", []string{"ru", "en"}); err == nil {
		t.Fatal("expected error when fallback locale is missing")
	}
}

func TestLocalesShareKeys(t *testing.T) {
	b, err := LoadDefault()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for key := range b.dict["ru"] {
		if _, ok := b.dict["en"][key]; !ok {
			t.Errorf("en is missing key %q", key)
		}
	}
}

func TestGuideNoticeTakesOneTitle(t *testing.T) {
	b, err := LoadDefault()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, lang := range b.Supported() {
		msg, ok := b.dict[lang]["guide.notice"]
		if !ok {
			t.Errorf("%s is missing guide.notice", lang)
			continue
		}
		if n := strings.Count(msg, "%s"); n != 1 || strings.Count(msg, "%") != 1 {
			t.Errorf("%s guide.notice must carry exactly one %%s verb, got %q", lang, msg)
		}
	}
}
