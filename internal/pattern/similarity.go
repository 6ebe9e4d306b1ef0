package pattern

import (
	"strings"
	"unicode"
)

// Similarity computes structural similarity between a clause and a golden
// template as the Dice coefficient over character bigrams of the normalized
// texts. Character bigrams work for both Japanese and Western clause text
// without a tokenizer.
func Similarity(a, b string) float64 {
	ba := bigrams(normalize(a))
	bb := bigrams(normalize(b))
	if len(ba) == 0 || len(bb) == 0 {
		return 0
	}
	shared := 0
	for g, n := range ba {
		if m, ok := bb[g]; ok {
			if m < n {
				shared += m
			} else {
				shared += n
			}
		}
	}
	total := 0
	for _, n := range ba {
		total += n
	}
	for _, n := range bb {
		total += n
	}
	return 2 * float64(shared) / float64(total)
}

// normalize strips whitespace and punctuation so similarity reflects
// structure and wording, not formatting.
func normalize(s string) []rune {
	var out []rune
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func bigrams(rs []rune) map[string]int {
	grams := make(map[string]int)
	for i := 0; i+1 < len(rs); i++ {
		grams[string(rs[i:i+2])]++
	}
	return grams
}
