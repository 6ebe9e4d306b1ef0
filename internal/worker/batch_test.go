package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/clauseguard/clauseguard/internal/model"
)

// mockReviewer returns a canned result per document and counts calls.
type mockReviewer struct {
	calls  int64
	failOn string
}

func (m *mockReviewer) ReviewText(ctx context.Context, documentID, text string) (*model.DocumentResult, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.failOn != "" && documentID == m.failOn {
		return nil, fmt.Errorf("review %s: deliberate failure", documentID)
	}
	return &model.DocumentResult{
		Domain: model.DomainGeneric,
		Clauses: []model.Clause{
			{ID: "c001", Text: text},
		},
		Verdicts: []model.Verdict{
			{ClauseID: "c001", FinalSeverity: model.SeveritySafe},
		},
	}, nil
}

func writeContracts(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	var paths []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("第1条\n本契約の内容を定める。"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestBatchProcessor_ProcessFiles(t *testing.T) {
	dir := t.TempDir()
	paths := writeContracts(t, dir, "b.txt", "a.txt", "c.txt")

	reviewer := &mockReviewer{}
	results := NewBatchProcessor(reviewer, 2).ProcessFiles(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if atomic.LoadInt64(&reviewer.calls) != 3 {
		t.Errorf("Expected 3 reviewer calls, got %d", reviewer.calls)
	}

	// Stable output order regardless of completion order.
	for i := 1; i < len(results); i++ {
		if results[i-1].Path > results[i].Path {
			t.Errorf("Expected results sorted by path, got %s before %s", results[i-1].Path, results[i].Path)
		}
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("Expected no error for %s, got %v", r.Path, r.Error)
		}
		if r.Result == nil || len(r.Result.Verdicts) != 1 {
			t.Errorf("Expected a result with one verdict for %s", r.Path)
		}
	}
}

func TestBatchProcessor_LargeBatch(t *testing.T) {
	dir := t.TempDir()
	var names []string
	for i := 0; i < 45; i++ {
		names = append(names, fmt.Sprintf("contract-%02d.txt", i))
	}
	paths := writeContracts(t, dir, names...)

	reviewer := &mockReviewer{}
	results := NewBatchProcessor(reviewer, 8).ProcessFiles(context.Background(), paths)

	if len(results) != 45 {
		t.Fatalf("Expected 45 results, got %d", len(results))
	}
	if atomic.LoadInt64(&reviewer.calls) != 45 {
		t.Errorf("Expected 45 reviewer calls, got %d", reviewer.calls)
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	paths := writeContracts(t, dir, "good.txt", "bad.txt")

	reviewer := &mockReviewer{failOn: "bad.txt"}
	results := NewBatchProcessor(reviewer, 2).ProcessFiles(context.Background(), paths)

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		failed := r.GetError() != nil
		wantFail := strings.HasSuffix(r.Path, "bad.txt")
		if failed != wantFail {
			t.Errorf("Expected failure=%v for %s, got error %v", wantFail, r.Path, r.Error)
		}
	}
}

func TestBatchProcessor_UnreadableFile(t *testing.T) {
	reviewer := &mockReviewer{}
	results := NewBatchProcessor(reviewer, 1).ProcessFiles(context.Background(), []string{"/nonexistent/contract.txt"})

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].GetError() == nil {
		t.Error("Expected an error for an unreadable file")
	}
	if atomic.LoadInt64(&reviewer.calls) != 0 {
		t.Error("Expected the reviewer not to be called for an unreadable file")
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	results := NewBatchProcessor(&mockReviewer{}, 2).ProcessFiles(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("Expected no results for no files, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessDirFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	writeContracts(t, dir, "a.txt", "b.md", "ignore.pdf", "notes.json")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	reviewer := &mockReviewer{}
	results, err := NewBatchProcessor(reviewer, 2).ProcessDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected only .txt and .md files reviewed, got %d results", len(results))
	}
}

func TestBatchProcessor_ProcessDirMissing(t *testing.T) {
	if _, err := NewBatchProcessor(&mockReviewer{}, 1).ProcessDir(context.Background(), "/nonexistent-dir"); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}
