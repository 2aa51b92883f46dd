// Package translit turns CJK author names into Latin (pinyin) form so they
// can be fuzzily compared against names harvested from PDFs. The primary
// transliterator is loaded once and shared; when it is unavailable a static
// surname table takes over, and characters nothing knows pass through.
package translit

import (
	"context"
	"strings"
	"sync"
	"unicode"
)

// Service converts a CJK string into a capitalized, space-joined Latin
// transliteration. An empty result means the service could not handle the
// input and the next fallback should run.
type Service interface {
	Transliterate(ctx context.Context, s string) (string, error)
}

// Loader memoizes a single service load. Concurrent callers block on the
// same load instead of re-triggering it, and every later call reuses the
// first outcome.
type Loader struct {
	once sync.Once
	load func(ctx context.Context) (Service, error)
	svc  Service
	err  error
}

// NewLoader wraps a load function in a single-flight memoized handle.
func NewLoader(load func(ctx context.Context) (Service, error)) *Loader {
	return &Loader{load: load}
}

// Get returns the loaded service, running the load exactly once.
func (l *Loader) Get(ctx context.Context) (Service, error) {
	l.once.Do(func() {
		l.svc, l.err = l.load(ctx)
	})
	return l.svc, l.err
}

// Chain tries each service in order and takes the first non-empty result.
type Chain struct {
	services []Service
}

// NewChain builds a fallback chain over the given services.
func NewChain(services ...Service) *Chain {
	return &Chain{services: services}
}

// Transliterate runs the chain. A service error or empty result moves on
// to the next service; if every service comes up empty the input is
// returned unchanged.
func (c *Chain) Transliterate(ctx context.Context, s string) (string, error) {
	for _, svc := range c.services {
		if svc == nil {
			continue
		}
		out, err := svc.Transliterate(ctx, s)
		if err == nil && out != "" {
			return out, nil
		}
	}
	return s, nil
}

// Default builds the standard chain: the pinyin library behind a memoized
// loader, then the static surname table.
func Default() *Chain {
	loader := NewLoader(func(ctx context.Context) (Service, error) {
		return NewPinyinService(), nil
	})
	return NewChain(&lazyService{loader: loader}, NewSurnameTable())
}

// lazyService defers the loader until first use.
type lazyService struct {
	loader *Loader
}

func (l *lazyService) Transliterate(ctx context.Context, s string) (string, error) {
	svc, err := l.loader.Get(ctx)
	if err != nil {
		return "", err
	}
	return svc.Transliterate(ctx, s)
}

// ContainsCJK reports whether the string has any Han characters.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// splitWords walks s, mapping each Han rune through hanWord and grouping
// consecutive non-Han, non-space runes into single words.
func splitWords(s string, hanWord func(r rune) string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Han, r):
			flush()
			words = append(words, hanWord(r))
		case unicode.IsSpace(r):
			flush()
		default:
			current = append(current, r)
		}
	}
	flush()
	return words
}

// capitalizeJoin uppercases the first letter of each word and joins them
// with single spaces.
func capitalizeJoin(words []string) string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		out = append(out, string(runes))
	}
	return strings.Join(out, " ")
}
