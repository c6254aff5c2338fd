package router

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kahya/kahya/internal/dateparse"
	"github.com/kahya/kahya/internal/storage"
)

var dayMonthRe = regexp.MustCompile(`(\d{1,2})\s+(ocak|şubat|mart|nisan|mayıs|haziran|temmuz|ağustos|eylül|ekim|kasım|aralık)`)

// FindMatches selects every reminder the search text refers to. Per
// reminder the first rule that hits wins:
//
//  1. lowercased search text appears in the lowercased title
//  2. "<day> <month-name>" in the search text equals the reminder's
//     calendar day and month, year ignored
//  3. the search text and the reminder date formatted DD.MM.YYYY contain
//     each other in either direction
//
// All matching reminders are returned; deletion is bulk.
func FindMatches(search string, reminders []storage.Reminder) []storage.Reminder {
	searchLower := strings.ToLower(strings.TrimSpace(search))
	var matched []storage.Reminder
	for _, rem := range reminders {
		if matchesReminder(searchLower, rem) {
			matched = append(matched, rem)
		}
	}
	return matched
}

func matchesReminder(searchLower string, rem storage.Reminder) bool {
	if strings.Contains(strings.ToLower(rem.Title), searchLower) {
		return true
	}

	if m := dayMonthRe.FindStringSubmatch(searchLower); m != nil {
		day, _ := strconv.Atoi(m[1])
		if month, ok := dateparse.MonthByName(m[2]); ok {
			if rem.ReminderTime.Day() == day && rem.ReminderTime.Month() == month {
				return true
			}
		}
	}

	dateStr := rem.ReminderTime.Format("02.01.2006")
	return strings.Contains(dateStr, searchLower) || strings.Contains(searchLower, dateStr)
}
