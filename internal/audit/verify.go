package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Report summarizes chain verification. FirstTampered is the index of the
// earliest record that fails verification, or 0 when the chain is intact.
type Report struct {
	OK            bool     `json:"ok"`
	Total         int64    `json:"total"`
	LastHash      string   `json:"last_hash"`
	FirstTampered int64    `json:"first_tampered,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

// VerifyChain replays the chain file and recomputes every link. It keeps
// scanning after the first failure so the report covers the whole file,
// but FirstTampered pins the earliest break.
func VerifyChain(path string) Report {
	report := Report{OK: true}

	recs, err := readRecords(path)
	if err != nil {
		report.OK = false
		report.Errors = append(report.Errors, fmt.Sprintf("read chain: %v", err))
		return report
	}

	expectedPrev := GenesisHash
	var expectedIndex int64
	for _, rec := range recs {
		expectedIndex++
		bad := false
		if rec.Index != expectedIndex {
			report.Errors = append(report.Errors, fmt.Sprintf("index mismatch at %d: want %d", rec.Index, expectedIndex))
			bad = true
		}
		if rec.PrevHash != expectedPrev {
			report.Errors = append(report.Errors, fmt.Sprintf("prev_hash mismatch at %d", rec.Index))
			bad = true
		}
		computed, err := recordHash(rec.PrevHash, rec.Index, rec.Timestamp, rec.Entry)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("hash record %d: %v", rec.Index, err))
			bad = true
		} else if computed != rec.Hash {
			report.Errors = append(report.Errors, fmt.Sprintf("hash mismatch at %d", rec.Index))
			bad = true
		}
		if vh, err := VerdictHash(rec.Entry.Verdict); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("verdict hash record %d: %v", rec.Index, err))
			bad = true
		} else if vh != rec.Entry.VerdictHash {
			report.Errors = append(report.Errors, fmt.Sprintf("verdict_hash mismatch at %d", rec.Index))
			bad = true
		}
		if bad {
			report.OK = false
			if report.FirstTampered == 0 {
				report.FirstTampered = expectedIndex
			}
		}
		expectedPrev = rec.Hash
		report.Total = expectedIndex
		report.LastHash = rec.Hash
	}
	return report
}

func readRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 5*1024*1024)
	var out []Record
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, rec)
	}
	return out, scanner.Err()
}
