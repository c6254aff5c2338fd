package filesearch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const DefaultMaxResults = 20

// Searcher walks a fixed set of roots looking for file and directory names
// containing the query. Permission errors are skipped, matching results are
// bounded.
type Searcher struct {
	Roots      []string
	MaxResults int
}

func NewSearcher() *Searcher {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Searcher{
		Roots: []string{
			home,
			filepath.Join(home, "Desktop"),
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Downloads"),
		},
		MaxResults: DefaultMaxResults,
	}
}

func (s *Searcher) Search(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	limit := s.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	results := make([]string, 0, limit)
	seen := make(map[string]bool)
	for _, root := range s.Roots {
		if len(results) >= limit {
			break
		}
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fs.SkipDir
			}
			if len(results) >= limit {
				return fs.SkipAll
			}
			if path == root {
				return nil
			}
			if strings.Contains(strings.ToLower(d.Name()), query) && !seen[path] {
				seen[path] = true
				results = append(results, path)
			}
			return nil
		})
	}
	return results
}
