package logic

import "regexp"

// Explicit duration expressions recognized as temporal bounds.
var temporalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s*年(間)?`),
	regexp.MustCompile(`\d+\s*(ヶ月|か月|ケ月|箇月)(間)?`),
	regexp.MustCompile(`\d+\s*日(間|以内|前)?`),
	regexp.MustCompile(`\d+\s*週間?`),
	regexp.MustCompile(`引渡し?(の日)?から\s*\d+`),
	regexp.MustCompile(`(契約|本契約)(終了|解除)(の日)?から\s*\d+`),
	regexp.MustCompile(`(?i)\d+\s*(days?|months?|years?|weeks?)`),
}

// Open-ended duration markers; these are explicit statements of no bound,
// not bounds.
var unboundedMarker = regexp.MustCompile(`(永久に|無期限|期間の定めなく|(?i:in perpetuity))`)

// TemporalBound is one explicit duration expression found in clause text.
type TemporalBound struct {
	Text  string
	Start int // byte offset in the clause text
	End   int
}

// TemporalBounds returns every explicit duration expression in text, in
// textual order. Unbounded markers ("永久に", "in perpetuity") never count.
func TemporalBounds(text string) []TemporalBound {
	var out []TemporalBound
	for _, re := range temporalPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			out = append(out, TemporalBound{Text: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]})
		}
	}
	return out
}

// ExplicitlyUnbounded reports whether the clause states an unlimited
// duration outright.
func ExplicitlyUnbounded(text string) bool {
	return unboundedMarker.MatchString(text)
}
