package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const stampLayout = "2006-01-02 15:04"

// Log is an append-only note file. Each line is "<timestamp>: <content>",
// matching the format the assistant has always written.
type Log struct {
	path string
}

func NewLog(path string) *Log {
	return &Log{path: path}
}

func (l *Log) Append(content string, now time.Time) error {
	dir := filepath.Dir(l.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line := fmt.Sprintf("%s: %s\n", now.Format(stampLayout), strings.TrimSpace(content))
	if _, err := f.WriteString(line); err != nil {
		return err
	}
	return f.Sync()
}

// ReadRecent returns the last n non-empty lines. A missing file is an empty
// log, not an error.
func (l *Log) ReadRecent(n int) ([]string, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
