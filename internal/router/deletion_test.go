package router

import (
	"testing"
	"time"

	"github.com/kahya/kahya/internal/storage"
)

func TestFindMatchesByTitleSubstring(t *testing.T) {
	reminders := []storage.Reminder{
		{ID: 1, Title: "Doktor randevusu", ReminderTime: time.Date(2025, time.July, 11, 9, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Kira", ReminderTime: time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)},
	}

	matched := FindMatches("DOKTOR", reminders)
	if len(matched) != 1 || matched[0].ID != 1 {
		t.Fatalf("unexpected matches: %+v", matched)
	}
}

func TestFindMatchesByDayAndMonth(t *testing.T) {
	reminders := []storage.Reminder{
		{ID: 1, Title: "Doktor", ReminderTime: time.Date(2025, time.July, 11, 9, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Toplantı", ReminderTime: time.Date(2025, time.July, 11, 14, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Kira", ReminderTime: time.Date(2025, time.July, 12, 9, 0, 0, 0, time.UTC)},
	}

	matched := FindMatches("11 temmuz", reminders)
	if len(matched) != 2 {
		t.Fatalf("expected both July 11 reminders, got %+v", matched)
	}
	if matched[0].ID != 1 || matched[1].ID != 2 {
		t.Fatalf("unexpected match order: %+v", matched)
	}
}

func TestFindMatchesByFormattedDateEitherDirection(t *testing.T) {
	reminders := []storage.Reminder{
		{ID: 1, Title: "Doktor", ReminderTime: time.Date(2025, time.July, 11, 9, 0, 0, 0, time.UTC)},
	}

	// Search is a fragment of the formatted date.
	if matched := FindMatches("11.07", reminders); len(matched) != 1 {
		t.Fatalf("fragment search should match: %+v", matched)
	}
	// Formatted date is a fragment of the search.
	if matched := FindMatches("şu 11.07.2025 olanı", reminders); len(matched) != 1 {
		t.Fatalf("containing search should match: %+v", matched)
	}
}

func TestFindMatchesNone(t *testing.T) {
	reminders := []storage.Reminder{
		{ID: 1, Title: "Doktor", ReminderTime: time.Date(2025, time.July, 11, 9, 0, 0, 0, time.UTC)},
	}

	if matched := FindMatches("3 aralık", reminders); len(matched) != 0 {
		t.Fatalf("expected no matches, got %+v", matched)
	}
}
