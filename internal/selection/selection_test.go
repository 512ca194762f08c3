package selection_test

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/JaimeStill/image-forge/internal/formats"
	"github.com/JaimeStill/image-forge/internal/selection"
)

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	p := func(name string) string { return filepath.Join(dir, name) }

	classifier := formats.NewClassifier(false)

	tests := []struct {
		name string
		req  selection.Request
		want []string
	}{
		{
			"primary only",
			selection.Request{Primary: p("a.png")},
			[]string{p("a.png")},
		},
		{
			"multi takes precedence over primary",
			selection.Request{Primary: p("a.png"), Paths: []string{p("b.jpg"), p("c.webp")}},
			[]string{p("b.jpg"), p("c.webp")},
		},
		{
			"duplicates keep first occurrence order",
			selection.Request{Paths: []string{p("b.jpg"), p("a.png"), p("b.jpg"), p("a.png")}},
			[]string{p("b.jpg"), p("a.png")},
		},
		{
			"equivalent paths collapse",
			selection.Request{Paths: []string{p("a.png"), filepath.Join(dir, "sub", "..", "a.png")}},
			[]string{p("a.png")},
		},
		{
			"unreadable filtered",
			selection.Request{Paths: []string{p("notes.txt"), p("logo.svg"), p("raw.dng")}},
			[]string{p("logo.svg")},
		},
		{
			"active fallback",
			selection.Request{Active: p("current.gif")},
			[]string{p("current.gif")},
		},
		{
			"active ignored when primary set",
			selection.Request{Primary: p("a.png"), Active: p("current.gif")},
			[]string{p("a.png")},
		},
		{
			"nothing selected",
			selection.Request{},
			[]string{},
		},
		{
			"nothing survives filtering",
			selection.Request{Paths: []string{p("a.txt"), ""}},
			[]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selection.Paths(selection.Resolve(tt.req, classifier))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_NeverNil(t *testing.T) {
	files := selection.Resolve(selection.Request{}, formats.NewClassifier(true))
	if files == nil {
		t.Error("Resolve() returned nil, want empty slice")
	}
}
