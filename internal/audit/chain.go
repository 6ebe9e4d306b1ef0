// Package audit keeps an append-only, hash-chained log of clause verdicts,
// one record per verdict decision. Each record's hash covers its
// predecessor's hash, so rewriting history breaks the chain at the point
// of tampering and everywhere after it.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/clauseguard/clauseguard/internal/model"
)

// GenesisHash anchors the chain. The first record's prev_hash is this
// constant, never empty, so a truncated file cannot pose as a fresh chain.
const GenesisHash = "clauseguard:genesis:v1"

// Entry is the hashed payload of one clause verdict decision. The run
// metadata rides on every entry so each record stands alone.
type Entry struct {
	DocumentID         string        `json:"document_id"`
	Domain             model.Domain  `json:"domain"`
	EngineVersion      string        `json:"engine_version"`
	CatalogFingerprint string        `json:"catalog_fingerprint"`
	ClauseID           string        `json:"clause_id"`
	Verdict            model.Verdict `json:"verdict"`
	// VerdictHash content-addresses the verdict independently of its chain
	// position. Append fills it; caller-supplied values are overwritten.
	VerdictHash string `json:"verdict_hash"`
}

// Record is a tamper-evident log entry wrapping an Entry.
type Record struct {
	Index     int64     `json:"index"`
	Timestamp time.Time `json:"timestamp"`
	Entry     Entry     `json:"entry"`
	PrevHash  string    `json:"prev_hash"`
	Hash      string    `json:"hash"`
}

// Store appends records to a JSONL file under dir. Safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	path      string
	lastIndex int64
	lastHash  string
}

// NewStore opens or creates the chain under dir and replays it to find the
// chain head.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "./audit"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{
		path:     filepath.Join(dir, "chain.log"),
		lastHash: GenesisHash,
	}
	if err := s.loadState(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the chain file location.
func (s *Store) Path() string { return s.path }

// Append writes one record linked to the current head. The record is
// durable before the new head is advanced; a failed write leaves the chain
// untouched.
func (s *Store) Append(entry Entry) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vh, err := VerdictHash(entry.Verdict)
	if err != nil {
		return Record{}, err
	}
	entry.VerdictHash = vh

	index := s.lastIndex + 1
	ts := time.Now().UTC()
	hash, err := recordHash(s.lastHash, index, ts, entry)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		Index:     index,
		Timestamp: ts,
		Entry:     entry,
		PrevHash:  s.lastHash,
		Hash:      hash,
	}

	if err := appendJSONLine(s.path, rec); err != nil {
		return Record{}, err
	}

	s.lastIndex = rec.Index
	s.lastHash = rec.Hash
	return rec, nil
}

// Head returns the current chain head.
func (s *Store) Head() (int64, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastIndex, s.lastHash
}

func (s *Store) loadState() error {
	recs, err := readRecords(s.path)
	if err != nil {
		// A store that has never appended has no chain file yet.
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(recs) > 0 {
		last := recs[len(recs)-1]
		s.lastIndex = last.Index
		s.lastHash = last.Hash
	}
	return nil
}

// VerdictHash is the content address of a single verdict over its
// canonical JSON form, independent of chain position.
func VerdictHash(v model.Verdict) (string, error) {
	payload, err := StableJSON(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func recordHash(prevHash string, index int64, ts time.Time, entry Entry) (string, error) {
	payload, err := StableJSON(entry)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(prevHash))
	fmt.Fprintf(h, "|%d|%s|", index, ts.Format(time.RFC3339Nano))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func appendJSONLine(path string, v interface{}) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
