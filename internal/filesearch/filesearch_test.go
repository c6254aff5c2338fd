package filesearch

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dirs := []string{"Raporlar", "muzik"}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	files := []string{"rapor.pdf", "Raporlar/rapor-2026.pdf", "muzik/liste.txt", "sunum.pptx"}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func TestSearchMatchesFilesAndDirs(t *testing.T) {
	root := setupTree(t)
	s := &Searcher{Roots: []string{root}, MaxResults: 10}

	got := s.Search("rapor")
	if len(got) != 3 {
		t.Fatalf("expected 3 matches (dir + 2 files), got %#v", got)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	root := setupTree(t)
	s := &Searcher{Roots: []string{root}, MaxResults: 10}
	if got := s.Search("RAPOR"); len(got) == 0 {
		t.Fatal("expected case-insensitive matches")
	}
}

func TestSearchBounded(t *testing.T) {
	root := setupTree(t)
	s := &Searcher{Roots: []string{root}, MaxResults: 1}
	if got := s.Search("rapor"); len(got) != 1 {
		t.Fatalf("expected bounded result, got %#v", got)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	root := setupTree(t)
	s := &Searcher{Roots: []string{root}, MaxResults: 10}
	if got := s.Search("   "); got != nil {
		t.Fatalf("expected nil for empty query, got %#v", got)
	}
}

func TestSearchMissingRoot(t *testing.T) {
	s := &Searcher{Roots: []string{filepath.Join(t.TempDir(), "yok")}, MaxResults: 10}
	if got := s.Search("rapor"); len(got) != 0 {
		t.Fatalf("expected no matches, got %#v", got)
	}
}
