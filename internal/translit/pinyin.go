package translit

import (
	"context"

	"github.com/mozillazg/go-pinyin"
)

// PinyinService transliterates Han characters with the go-pinyin
// dictionary. Runs of non-Han runes pass through as single words.
type PinyinService struct {
	args pinyin.Args
}

// NewPinyinService builds the dictionary-backed transliterator.
func NewPinyinService() *PinyinService {
	return &PinyinService{args: pinyin.NewArgs()}
}

// Transliterate returns a capitalized, space-joined pinyin rendering of s,
// or "" when s contains no Han characters at all.
func (p *PinyinService) Transliterate(_ context.Context, s string) (string, error) {
	if !ContainsCJK(s) {
		return "", nil
	}

	words := splitWords(s, func(r rune) string {
		syllables := pinyin.Pinyin(string(r), p.args)
		if len(syllables) > 0 && len(syllables[0]) > 0 {
			return syllables[0][0]
		}
		return string(r)
	})

	return capitalizeJoin(words), nil
}
