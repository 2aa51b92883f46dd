package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/scholarly-tools/paperverify/internal/translit"
)

func testEngine() *Engine {
	return New(translit.Default())
}

func TestAuthorMatchTransliteration(t *testing.T) {
	e := testEngine()
	ctx := context.Background()

	tests := []struct {
		name string
		web  string
		pdf  string
		want bool
	}{
		{name: "cjk reversed order", web: "徐飞", pdf: "Fei Xu", want: true},
		{name: "cjk same order", web: "徐飞", pdf: "Xu Fei", want: true},
		{name: "cjk wrong person", web: "徐飞", pdf: "John Smith", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.authorMatch(ctx, tt.web, tt.pdf); got != tt.want {
				t.Errorf("authorMatch(%q, %q) = %v, want %v", tt.web, tt.pdf, got, tt.want)
			}
		})
	}
}

func TestAuthorMatchLatin(t *testing.T) {
	e := testEngine()
	ctx := context.Background()

	tests := []struct {
		name string
		web  string
		pdf  string
		want bool
	}{
		{name: "exact", web: "Jane Doe", pdf: "jane doe", want: true},
		{name: "containment", web: "Jane Doe", pdf: "Prof. Jane Doe", want: true},
		{name: "reversed name parts", web: "Doe Jane", pdf: "Jane Doe", want: true},
		{name: "initialed given name", web: "J. Doe", pdf: "Jane Doe", want: false},
		{name: "typo within tolerance", web: "Jane Dooe", pdf: "Jane Doe", want: true},
		{name: "different people", web: "Jane Doe", pdf: "Mark Twain", want: false},
		{name: "empty pdf side", web: "Jane Doe", pdf: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.authorMatch(ctx, tt.web, tt.pdf); got != tt.want {
				t.Errorf("authorMatch(%q, %q) = %v, want %v", tt.web, tt.pdf, got, tt.want)
			}
		})
	}
}

type failingTranslit struct{}

func (failingTranslit) Transliterate(context.Context, string) (string, error) {
	return "", errors.New("unavailable")
}

func TestAuthorMatchSurvivesTranslitFailure(t *testing.T) {
	e := New(failingTranslit{})

	// No transliteration possible: the raw strings differ, so no match,
	// but no panic and no error surfaced either.
	if e.authorMatch(context.Background(), "徐飞", "Fei Xu") {
		t.Error("expected no match when transliteration is unavailable")
	}

	// Latin input never needed the service in the first place.
	if !e.authorMatch(context.Background(), "Jane Doe", "Jane Doe") {
		t.Error("latin comparison should not depend on transliteration")
	}
}

func TestAuthorWordMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "reordered equal sets", a: "maria del garcia", b: "garcia maria del", want: true},
		{name: "unequal counts all covered", a: "jane doe", b: "jane m doe", want: false},
		{name: "hyphenated surname substring covered", a: "jane doe", b: "jane doe-smith", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authorWordMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("authorWordMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
