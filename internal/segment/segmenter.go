// Package segment splits normalized contract text into addressable clauses.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clauseguard/clauseguard/internal/model"
)

// SegmentationError reports structurally ambiguous input: no clause markers
// were found and the text is too long to treat as a single clause. It is
// fatal for the document; no partial verdicts are emitted.
type SegmentationError struct {
	Length int
	Limit  int
}

func (e *SegmentationError) Error() string {
	return fmt.Sprintf("no structural markers in %d bytes of text (limit %d for a single clause)", e.Length, e.Limit)
}

// Structural markers recognized as clause boundaries, checked per line.
var markerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^第\d+条(?:の\d+)?(?:[（(][^）)]*[）)])?`), // 第15条（使用材料） style articles
	regexp.MustCompile(`^\d+[.．]\s*\S`),                       // numbered paragraphs
	regexp.MustCompile(`^[（(]\d+[）)]`),                        // parenthesized item numbers
	regexp.MustCompile(`^[①-⑳]`),                              // circled item numbers
	regexp.MustCompile(`^(?i)article\s+\d+`),                  // Western article headings
	regexp.MustCompile(`^(?i)section\s+\d+`),
}

// Segmenter splits contract text on structural markers. Side-effect free.
type Segmenter struct {
	// singleClauseLimit is the max text length accepted without any marker.
	singleClauseLimit int
}

// New creates a segmenter. limit guards against silently treating a whole
// document as one clause; 0 uses the default from config.
func New(limit int) *Segmenter {
	if limit <= 0 {
		limit = model.DefaultConfig().Thresholds.SegmentationLimit
	}
	return &Segmenter{singleClauseLimit: limit}
}

// Segment splits text into an ordered clause sequence with stable IDs and
// source offsets. Clause IDs increase monotonically in textual order.
func (s *Segmenter) Segment(text string) ([]model.Clause, error) {
	lines := strings.Split(text, "\n")

	type rawClause struct {
		label string
		start int
		end   int
	}

	var raws []rawClause
	offset := 0
	for _, line := range lines {
		lineLen := len(line) + 1 // account for the stripped newline
		trimmed := strings.TrimLeft(line, " \t　")
		indent := len(line) - len(trimmed)

		if label := matchMarker(trimmed); label != "" {
			if len(raws) > 0 {
				raws[len(raws)-1].end = offset
			}
			raws = append(raws, rawClause{label: label, start: offset + indent})
		}
		offset += lineLen
	}
	if offset > len(text) {
		offset = len(text)
	}
	if len(raws) > 0 {
		raws[len(raws)-1].end = offset
	}

	if len(raws) == 0 {
		body := strings.TrimSpace(text)
		if len(body) > s.singleClauseLimit {
			return nil, &SegmentationError{Length: len(body), Limit: s.singleClauseLimit}
		}
		if body == "" {
			return nil, nil
		}
		return []model.Clause{{
			ID:          "c001",
			Text:        body,
			StartOffset: 0,
			EndOffset:   len(text),
		}}, nil
	}

	clauses := make([]model.Clause, 0, len(raws))
	for _, r := range raws {
		body := strings.TrimSpace(text[r.start:r.end])
		if body == "" {
			continue
		}
		clauses = append(clauses, model.Clause{
			ID:          fmt.Sprintf("c%03d", len(clauses)+1),
			Label:       r.label,
			Text:        body,
			StartOffset: r.start,
			EndOffset:   r.end,
		})
	}
	return clauses, nil
}

// matchMarker returns the marker text when the line opens a new clause.
func matchMarker(line string) string {
	for _, re := range markerPatterns {
		if m := re.FindString(line); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}
