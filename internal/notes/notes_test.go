package notes

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestAppendAndReadRecent(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "notes.txt"))
	stamp := time.Date(2026, time.January, 5, 9, 15, 0, 0, time.UTC)

	for _, content := range []string{"ilk not", "ikinci not", "üçüncü not"} {
		if err := log.Append(content, stamp); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := log.ReadRecent(2)
	if err != nil {
		t.Fatalf("read recent: %v", err)
	}
	want := []string{
		"2026-01-05 09:15: ikinci not",
		"2026-01-05 09:15: üçüncü not",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("recent = %#v, want %#v", got, want)
	}
}

func TestReadRecentMissingFile(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "missing.txt"))
	got, err := log.ReadRecent(10)
	if err != nil {
		t.Fatalf("read recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty log, got %#v", got)
	}
}

func TestReadRecentIdempotent(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "notes.txt"))
	if err := log.Append("tek not", time.Now()); err != nil {
		t.Fatalf("append: %v", err)
	}
	first, err := log.ReadRecent(10)
	if err != nil {
		t.Fatalf("read recent: %v", err)
	}
	second, err := log.ReadRecent(10)
	if err != nil {
		t.Fatalf("read recent: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reads differ: %#v vs %#v", first, second)
	}
}
