package dateparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("dateparse: invalid calendar date")

// Fragment kinds, in the order the scanner tries them.
type Kind string

const (
	KindMonthName Kind = "month_name"
	KindSlashDate Kind = "slash_date"
	KindDotDate   Kind = "dot_date"
	KindMonthDay  Kind = "month_day"
	KindWeekday   Kind = "weekday"
	KindTomorrow  Kind = "tomorrow"
	KindToday     Kind = "today"
)

// Fragment is a recognized date expression inside free text, not yet
// resolved against a reference instant.
type Fragment struct {
	Kind    Kind
	Day     int
	Month   time.Month
	Weekday time.Weekday
	Raw     string
}

// DefaultHour and DefaultMinute apply when the text carries no HH:MM.
const (
	DefaultHour   = 9
	DefaultMinute = 0
)

// RolloverCompareMonthOnly names the year-rollover policy for month-name,
// slash and dot dates: only the month component is compared against the
// reference month, so a smaller day earlier in the current month does not
// roll the year. This mirrors the assistant's long-standing behavior and is
// kept deliberately.
const RolloverCompareMonthOnly = true

var monthNames = map[string]time.Month{
	"ocak": time.January, "şubat": time.February, "mart": time.March,
	"nisan": time.April, "mayıs": time.May, "haziran": time.June,
	"temmuz": time.July, "ağustos": time.August, "eylül": time.September,
	"ekim": time.October, "kasım": time.November, "aralık": time.December,
}

var weekdayNames = map[string]time.Weekday{
	"pazartesi": time.Monday, "salı": time.Tuesday, "çarşamba": time.Wednesday,
	"perşembe": time.Thursday, "cuma": time.Friday, "cumartesi": time.Saturday,
	"pazar": time.Sunday,
}

// MonthByName resolves a lowercase Turkish month name to 1..12.
func MonthByName(name string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// WeekdayByName resolves a lowercase Turkish weekday name.
func WeekdayByName(name string) (time.Weekday, bool) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// MonthName is the lowercase Turkish name for a month.
func MonthName(m time.Month) string {
	for name, month := range monthNames {
		if month == m {
			return name
		}
	}
	return ""
}

// WeekdayName is the lowercase Turkish name for a weekday.
func WeekdayName(d time.Weekday) string {
	for name, day := range weekdayNames {
		if day == d {
			return name
		}
	}
	return ""
}

var (
	monthNameRe = regexp.MustCompile(`(\d{1,2})\s*(ocak|şubat|mart|nisan|mayıs|haziran|temmuz|ağustos|eylül|ekim|kasım|aralık)`)
	slashRe     = regexp.MustCompile(`(\d{1,2})/(\d{1,2})`)
	dotRe       = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})`)
	monthDayRe  = regexp.MustCompile(`(?:bu )?ayın\s+(\d{1,2})`)
	sindeRe     = regexp.MustCompile(`(\d{1,2})\s+(sinde|sında|günü|gün)`)
	// Long weekday names first: "cumartesi" contains "cuma".
	weekdayRe = regexp.MustCompile(`cumartesi|pazartesi|çarşamba|perşembe|cuma|salı|pazar`)
	timeRe    = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// Scan finds the first recognizable date fragment in lowercased free text.
// Pattern precedence follows the original command grammar: explicit dates
// before month-day shorthand before weekday names before relative tokens.
func Scan(text string) (Fragment, bool) {
	lower := strings.ToLower(text)

	if m := monthNameRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := monthNames[m[2]]
		return Fragment{Kind: KindMonthName, Day: day, Month: month, Raw: m[0]}, true
	}
	if m := slashRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return Fragment{Kind: KindSlashDate, Day: day, Month: time.Month(month), Raw: m[0]}, true
	}
	if m := dotRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return Fragment{Kind: KindDotDate, Day: day, Month: time.Month(month), Raw: m[0]}, true
	}
	if m := monthDayRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		return Fragment{Kind: KindMonthDay, Day: day, Raw: m[0]}, true
	}
	if m := sindeRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		return Fragment{Kind: KindMonthDay, Day: day, Raw: m[0]}, true
	}
	if m := weekdayRe.FindString(lower); m != "" {
		return Fragment{Kind: KindWeekday, Weekday: weekdayNames[m], Raw: m}, true
	}
	if strings.Contains(lower, "yarın") {
		return Fragment{Kind: KindTomorrow, Raw: "yarın"}, true
	}
	if strings.Contains(lower, "bugün") {
		return Fragment{Kind: KindToday, Raw: "bugün"}, true
	}
	return Fragment{}, false
}

// Resolve turns a fragment into a concrete date at midnight, applying the
// already-passed rollover policy against now.
func Resolve(f Fragment, now time.Time) (time.Time, error) {
	switch f.Kind {
	case KindWeekday:
		return NextWeekday(f.Weekday, now), nil
	case KindMonthDay:
		return ResolveMonthDay(f.Day, now)
	case KindMonthName, KindSlashDate, KindDotDate:
		return ResolveMonthDate(f.Day, f.Month, now)
	case KindTomorrow:
		return midnight(now.AddDate(0, 0, 1)), nil
	case KindToday:
		return midnight(now), nil
	default:
		return time.Time{}, fmt.Errorf("dateparse: unknown fragment kind %q", f.Kind)
	}
}

// NextWeekday returns the next occurrence of the target weekday strictly
// after now: when today is the target, the result is a full week away.
func NextWeekday(target time.Weekday, now time.Time) time.Time {
	ahead := int(target) - int(now.Weekday())
	if ahead <= 0 {
		ahead += 7
	}
	return midnight(now.AddDate(0, 0, ahead))
}

// ResolveMonthDay resolves "ayın N'inde": day N of the current month, or of
// the next month when that day has already passed. December rolls the year.
func ResolveMonthDay(day int, now time.Time) (time.Time, error) {
	year, month := now.Year(), now.Month()
	target, err := makeDate(year, month, day, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	if target.Before(now) {
		if month == time.December {
			year, month = year+1, time.January
		} else {
			month++
		}
		return makeDate(year, month, day, now.Location())
	}
	return target, nil
}

// ResolveMonthDate resolves an explicit day+month ("15 mart", "15/3",
// "15.3"). The year rolls forward only when the month is earlier than the
// reference month; see RolloverCompareMonthOnly.
func ResolveMonthDate(day int, month time.Month, now time.Time) (time.Time, error) {
	year := now.Year()
	if month < now.Month() {
		year++
	}
	return makeDate(year, month, day, now.Location())
}

// ResolveText resolves free text to a concrete date+time: first fragment
// found (or tomorrow as the default date), with an embedded HH:MM or the
// 09:00 default applied.
func ResolveText(text string, now time.Time) (time.Time, error) {
	var date time.Time
	if frag, ok := Scan(text); ok {
		resolved, err := Resolve(frag, now)
		if err != nil {
			return time.Time{}, err
		}
		date = resolved
	} else {
		date = midnight(now.AddDate(0, 0, 1))
	}

	hour, minute := DefaultHour, DefaultMinute
	if h, m, ok := ScanClock(text); ok {
		hour, minute = h, m
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location()), nil
}

// ScanClock finds an HH:MM token anywhere in the text.
func ScanClock(text string) (hour, minute int, ok bool) {
	m := timeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func makeDate(year int, month time.Month, day int, loc *time.Location) (time.Time, error) {
	if month < time.January || month > time.December {
		return time.Time{}, fmt.Errorf("%w: month %d", ErrInvalidDate, int(month))
	}
	if day < 1 || day > daysIn(year, month) {
		return time.Time{}, fmt.Errorf("%w: %d %s has no day %d", ErrInvalidDate, year, strings.ToLower(month.String()), day)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc), nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
