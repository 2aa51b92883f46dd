package verify

import "github.com/agnivade/levenshtein"

// Similarity maps edit distance onto [0,1]:
// (max(len1,len2) - distance) / max(len1,len2), over runes.
func Similarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	len1 := len([]rune(s1))
	len2 := len([]rune(s2))
	if len1 == 0 || len2 == 0 {
		return 0.0
	}

	maxLen := len1
	if len2 > maxLen {
		maxLen = len2
	}

	distance := levenshtein.ComputeDistance(s1, s2)
	return float64(maxLen-distance) / float64(maxLen)
}
