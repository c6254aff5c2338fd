package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kahya/kahya/internal/dateparse"
)

type Kind string

const (
	KindAddNote         Kind = "add_note"
	KindListNotes       Kind = "list_notes"
	KindDeleteReminder  Kind = "delete_reminder"
	KindAddReminderFree Kind = "add_reminder_free"
	KindAddTimeReminder Kind = "add_time_reminder"
	KindListReminders   Kind = "list_reminders"
	KindAddDayReminder  Kind = "add_day_reminder"
	KindAddMonthDay     Kind = "add_month_day_reminder"
	KindAddMonthName    Kind = "add_month_name_reminder"
	KindAddSlashDate    Kind = "add_slash_date_reminder"
	KindAddDotDate      Kind = "add_dot_date_reminder"
	KindAddTodo         Kind = "add_todo"
	KindListTodos       Kind = "list_todos"
	KindWebSearch       Kind = "web_search"
	KindWebOpen         Kind = "web_open"
	KindMusic           Kind = "music"
	KindMusicPlatform   Kind = "music_platform"
	KindFileSearch      Kind = "file_search"
	KindFileOpen        Kind = "file_open"
	KindTodoDelete      Kind = "todo_delete"
	KindTodoComplete    Kind = "todo_complete"
	KindBrowserOpen     Kind = "browser_open"
	KindAppOpen         Kind = "app_open"
	KindFolderOpen      Kind = "folder_open"
)

type NoteArgs struct {
	Content string
}

type DeleteReminderArgs struct {
	Search string
}

type FreeReminderArgs struct {
	Content string
}

type TimeReminderArgs struct {
	Hour    int
	Minute  int
	Content string
}

type DayReminderArgs struct {
	Weekday time.Weekday
	Content string
}

type MonthDayArgs struct {
	Day     int
	Content string
}

type MonthDateArgs struct {
	Day     int
	Month   time.Month
	Content string
}

type TodoArgs struct {
	Title string
}

type TodoIDArgs struct {
	ID int64
}

type QueryArgs struct {
	Query string
}

type PlatformArgs struct {
	Platform string
	Query    string
}

type PathArgs struct {
	Path string
}

// Intent is the classified purpose of a lowercased utterance, with the
// payload the matched rule extracted. Exactly the field matching Kind is
// set.
type Intent struct {
	Kind     Kind
	Raw      string
	Note     *NoteArgs
	Delete   *DeleteReminderArgs
	Free     *FreeReminderArgs
	Timed    *TimeReminderArgs
	Day      *DayReminderArgs
	MonthDay *MonthDayArgs
	Dated    *MonthDateArgs
	Todo     *TodoArgs
	TodoID   *TodoIDArgs
	Query    *QueryArgs
	Platform *PlatformArgs
	Path     *PathArgs
}

type rule struct {
	re    *regexp.Regexp
	build func(raw string, groups []string) (Intent, bool)
}

// The natural tier mirrors the assistant's historical grammar. Order is
// load-bearing: deletion rules precede the generic reminder rule so that
// "sil ..." is never classified as an add.
var naturalRules = []rule{
	{regexp.MustCompile(`^(not|not al|not tut|kaydet|yaz)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindAddNote, Raw: raw, Note: &NoteArgs{Content: g[2]}}, true
	}},
	{regexp.MustCompile(`^(perşembe|pazartesi|salı|çarşamba|cuma|cumartesi|pazar)\s+(günü|gün)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		day, ok := dateparse.WeekdayByName(g[1])
		if !ok {
			return Intent{}, false
		}
		return Intent{Kind: KindAddDayReminder, Raw: raw, Day: &DayReminderArgs{Weekday: day, Content: g[3]}}, true
	}},
	{regexp.MustCompile(`^(notlar|notlarım|kayıtlar)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindListNotes, Raw: raw}, true
	}},
	{regexp.MustCompile(`^(.+)\s+(hatırlatıcısını|alarmını)\s+(sil|kaldır|iptal)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindDeleteReminder, Raw: raw, Delete: &DeleteReminderArgs{Search: strings.TrimSpace(g[1])}}, true
	}},
	{regexp.MustCompile(`^(sil|kaldır|iptal)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindDeleteReminder, Raw: raw, Delete: &DeleteReminderArgs{Search: strings.TrimSpace(g[2])}}, true
	}},
	{regexp.MustCompile(`^(hatırlat|hatırlatıcı|alarm)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindAddReminderFree, Raw: raw, Free: &FreeReminderArgs{Content: g[2]}}, true
	}},
	{regexp.MustCompile(`^saat\s+(\d{1,2}):(\d{2})\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		hour, _ := strconv.Atoi(g[1])
		minute, _ := strconv.Atoi(g[2])
		return Intent{Kind: KindAddTimeReminder, Raw: raw, Timed: &TimeReminderArgs{Hour: hour, Minute: minute, Content: g[3]}}, true
	}},
	{regexp.MustCompile(`^(hatırlatıcılar|alarmlar)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindListReminders, Raw: raw}, true
	}},
	{regexp.MustCompile(`^(bu ayın|ayın)\s+(\d{1,2})\s+(günü|gün|sinde|sında)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		day, _ := strconv.Atoi(g[2])
		return Intent{Kind: KindAddMonthDay, Raw: raw, MonthDay: &MonthDayArgs{Day: day, Content: g[4]}}, true
	}},
	{regexp.MustCompile(`^(\d{1,2})\s+(ocak|şubat|mart|nisan|mayıs|haziran|temmuz|ağustos|eylül|ekim|kasım|aralık)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		day, _ := strconv.Atoi(g[1])
		month, ok := dateparse.MonthByName(g[2])
		if !ok {
			return Intent{}, false
		}
		return Intent{Kind: KindAddMonthName, Raw: raw, Dated: &MonthDateArgs{Day: day, Month: month, Content: g[3]}}, true
	}},
	{regexp.MustCompile(`^(\d{1,2})/(\d{1,2})\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		day, _ := strconv.Atoi(g[1])
		month, _ := strconv.Atoi(g[2])
		return Intent{Kind: KindAddSlashDate, Raw: raw, Dated: &MonthDateArgs{Day: day, Month: time.Month(month), Content: g[3]}}, true
	}},
	{regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		day, _ := strconv.Atoi(g[1])
		month, _ := strconv.Atoi(g[2])
		return Intent{Kind: KindAddDotDate, Raw: raw, Dated: &MonthDateArgs{Day: day, Month: time.Month(month), Content: g[3]}}, true
	}},
	{regexp.MustCompile(`^(yapılacak|todo|görev|task)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindAddTodo, Raw: raw, Todo: &TodoArgs{Title: g[2]}}, true
	}},
	{regexp.MustCompile(`^(listele|göster|bak)\s+(yapılacak|todo|görev)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindListTodos, Raw: raw}, true
	}},
	{regexp.MustCompile(`^(yapılacaklar|görevler)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindListTodos, Raw: raw}, true
	}},
	{regexp.MustCompile(`^(ara|google|internet)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindWebSearch, Raw: raw, Query: &QueryArgs{Query: g[2]}}, true
	}},
	{regexp.MustCompile(`^(aç|git)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindWebOpen, Raw: raw, Query: &QueryArgs{Query: g[2]}}, true
	}},
	{regexp.MustCompile(`^(müzik|şarkı|çal)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindMusic, Raw: raw, Query: &QueryArgs{Query: g[2]}}, true
	}},
	{regexp.MustCompile(`^(spotify|youtube)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindMusicPlatform, Raw: raw, Platform: &PlatformArgs{Platform: g[1], Query: g[2]}}, true
	}},
	{regexp.MustCompile(`^(dosya|belge)\s+(ara|bul)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindFileSearch, Raw: raw, Query: &QueryArgs{Query: g[3]}}, true
	}},
	{regexp.MustCompile(`^(dosya|belge)\s+(aç|göster)\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindFileOpen, Raw: raw, Path: &PathArgs{Path: g[3]}}, true
	}},
}

// The legacy tier keeps the strict command phrasings around for muscle
// memory. It runs only when the natural tier found nothing.
var legacyRules = []rule{
	{regexp.MustCompile(`^todo\s+ekle\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindAddTodo, Raw: raw, Todo: &TodoArgs{Title: g[1]}}, true
	}},
	{regexp.MustCompile(`^todo\s+listele`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindListTodos, Raw: raw}, true
	}},
	{regexp.MustCompile(`^todo\s+sil\s+(\d+)`), func(raw string, g []string) (Intent, bool) {
		id, _ := strconv.ParseInt(g[1], 10, 64)
		return Intent{Kind: KindTodoDelete, Raw: raw, TodoID: &TodoIDArgs{ID: id}}, true
	}},
	{regexp.MustCompile(`^todo\s+tamamla\s+(\d+)`), func(raw string, g []string) (Intent, bool) {
		id, _ := strconv.ParseInt(g[1], 10, 64)
		return Intent{Kind: KindTodoComplete, Raw: raw, TodoID: &TodoIDArgs{ID: id}}, true
	}},
	{regexp.MustCompile(`^hatırlat\s+(.+?)\s+saat\s+(\d{1,2}):(\d{2})`), func(raw string, g []string) (Intent, bool) {
		hour, _ := strconv.Atoi(g[2])
		minute, _ := strconv.Atoi(g[3])
		return Intent{Kind: KindAddTimeReminder, Raw: raw, Timed: &TimeReminderArgs{Hour: hour, Minute: minute, Content: g[1]}}, true
	}},
	{regexp.MustCompile(`^hatırlatıcı\s+listele`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindListReminders, Raw: raw}, true
	}},
	{regexp.MustCompile(`^dosya\s+ara\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindFileSearch, Raw: raw, Query: &QueryArgs{Query: g[1]}}, true
	}},
	{regexp.MustCompile(`^dosya\s+aç\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindFileOpen, Raw: raw, Path: &PathArgs{Path: g[1]}}, true
	}},
	{regexp.MustCompile(`^tarayıcı\s+aç\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindBrowserOpen, Raw: raw, Query: &QueryArgs{Query: g[1]}}, true
	}},
	{regexp.MustCompile(`^uygulama\s+aç\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindAppOpen, Raw: raw, Query: &QueryArgs{Query: g[1]}}, true
	}},
	{regexp.MustCompile(`^klasör\s+aç\s+(.+)`), func(raw string, g []string) (Intent, bool) {
		return Intent{Kind: KindFolderOpen, Raw: raw, Path: &PathArgs{Path: g[1]}}, true
	}},
}

// Match classifies a lowercased utterance against the natural tier, then
// the legacy tier. First matching rule wins.
func Match(input string) (Intent, bool) {
	for _, tier := range [][]rule{naturalRules, legacyRules} {
		for _, r := range tier {
			m := r.re.FindStringSubmatch(input)
			if m == nil {
				continue
			}
			if in, ok := r.build(input, m); ok {
				return in, true
			}
		}
	}
	return Intent{}, false
}
