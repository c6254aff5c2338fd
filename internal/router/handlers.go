package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kahya/kahya/internal/dateparse"
	"github.com/kahya/kahya/internal/intent"
	"github.com/kahya/kahya/internal/scheduler"
	"github.com/kahya/kahya/internal/storage"
)

const stampLayout = "02.01.2006 15:04"

var errUnknownIntent = errors.New("router: unknown intent")

func (r *Router) handle(ctx context.Context, in intent.Intent) (string, error) {
	switch in.Kind {
	case intent.KindAddNote:
		return r.handleNoteAdd(in.Note.Content)
	case intent.KindListNotes:
		return r.listNotesNumbered(ctx)
	case intent.KindDeleteReminder:
		return r.handleReminderDelete(ctx, in.Delete.Search)
	case intent.KindAddReminderFree:
		return r.addReminderFromText(ctx, in.Free.Content)
	case intent.KindAddTimeReminder:
		return r.handleTimeReminder(ctx, in.Timed.Hour, in.Timed.Minute, in.Timed.Content)
	case intent.KindListReminders:
		return r.listRemindersNumbered(ctx)
	case intent.KindAddDayReminder:
		return r.handleDayReminder(ctx, in.Day.Weekday, in.Day.Content)
	case intent.KindAddMonthDay:
		return r.handleMonthDayReminder(ctx, in.MonthDay.Day, in.MonthDay.Content)
	case intent.KindAddMonthName:
		return r.handleMonthNameReminder(ctx, in.Dated.Day, in.Dated.Month, in.Dated.Content)
	case intent.KindAddSlashDate:
		return r.handleDateReminder(ctx, in.Dated.Day, in.Dated.Month, in.Dated.Content, "/")
	case intent.KindAddDotDate:
		return r.handleDateReminder(ctx, in.Dated.Day, in.Dated.Month, in.Dated.Content, ".")
	case intent.KindAddTodo:
		if _, err := r.store.CreateTodo(ctx, in.Todo.Title); err != nil {
			return "", err
		}
		return "✅ Yapılacak eklendi: " + in.Todo.Title, nil
	case intent.KindListTodos:
		return r.listTodos(ctx, "📝 Henüz yapılacak görev yok", "📝 Yapılacaklar:\n")
	case intent.KindTodoDelete:
		if err := r.store.DeleteTodo(ctx, in.TodoID.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("🗑️ Todo silindi (ID: %d)", in.TodoID.ID), nil
	case intent.KindTodoComplete:
		if err := r.store.SetTodoCompleted(ctx, in.TodoID.ID, true); err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ Todo tamamlandı (ID: %d)", in.TodoID.ID), nil
	case intent.KindWebSearch:
		return r.handleWebSearch(in.Query.Query)
	case intent.KindWebOpen:
		return r.handleWebOpen(in.Query.Query)
	case intent.KindMusic:
		return r.handleMusic(in.Query.Query)
	case intent.KindMusicPlatform:
		return r.handleMusicPlatform(in.Platform.Platform, in.Platform.Query)
	case intent.KindFileSearch:
		return r.handleFileSearch(in.Query.Query)
	case intent.KindFileOpen:
		if err := r.osctl.OpenFile(in.Path.Path); err != nil {
			return "❌ Dosya açılamadı: " + in.Path.Path, nil
		}
		return "📄 Dosya açıldı: " + in.Path.Path, nil
	case intent.KindBrowserOpen:
		if err := r.osctl.OpenURL(in.Query.Query); err != nil {
			return "❌ URL açılamadı: " + in.Query.Query, nil
		}
		return "🌐 Tarayıcıda açıldı: " + in.Query.Query, nil
	case intent.KindAppOpen:
		if err := r.osctl.OpenApplication(in.Query.Query); err != nil {
			return "❌ Uygulama açılamadı: " + in.Query.Query, nil
		}
		// Launch bookkeeping is best effort.
		_ = r.store.LogAppUsage(ctx, in.Query.Query, 0)
		return "🚀 Uygulama açıldı: " + in.Query.Query, nil
	case intent.KindFolderOpen:
		if err := r.osctl.OpenFolder(in.Path.Path); err != nil {
			return "❌ Klasör açılamadı: " + in.Path.Path, nil
		}
		return "📁 Klasör açıldı: " + in.Path.Path, nil
	}
	return "", fmt.Errorf("%w: %s", errUnknownIntent, in.Kind)
}

// addReminderFromText resolves any date and clock fragments in free text,
// strips them out of the title, and stores the reminder.
func (r *Router) addReminderFromText(ctx context.Context, content string) (string, error) {
	now := r.now()
	at, err := dateparse.ResolveText(content, now)
	if err != nil {
		return "", err
	}
	title := dateparse.CleanTitle(content)
	if _, err := r.createReminder(ctx, title, content, at); err != nil {
		return "", err
	}
	return fmt.Sprintf("⏰ Hatırlatıcı eklendi: %s\n📅 Tarih: %s", title, at.Format(stampLayout)), nil
}

func (r *Router) handleNoteAdd(content string) (string, error) {
	if err := r.notes.Append(content, r.now()); err != nil {
		return "", err
	}
	return "✅ Not kaydedildi: " + content, nil
}

func (r *Router) handleTimeReminder(ctx context.Context, hour, minute int, content string) (string, error) {
	if hour > 23 || minute > 59 {
		return "", fmt.Errorf("geçersiz saat: %02d:%02d", hour, minute)
	}
	now := r.now()
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if _, err := r.createReminder(ctx, content, content, at); err != nil {
		return "", err
	}
	return fmt.Sprintf("⏰ Hatırlatıcı eklendi: %s saat %02d:%02d", content, hour, minute), nil
}

func (r *Router) handleDayReminder(ctx context.Context, day time.Weekday, content string) (string, error) {
	at := dateparse.NextWeekday(day, r.now()).Add(dateparse.DefaultHour * time.Hour)
	if _, err := r.createReminder(ctx, content, content, at); err != nil {
		return "", err
	}
	return fmt.Sprintf("⏰ %s hatırlatıcısı eklendi: %s", capFirst(dateparse.WeekdayName(day)), content), nil
}

func (r *Router) handleMonthDayReminder(ctx context.Context, day int, content string) (string, error) {
	date, err := dateparse.ResolveMonthDay(day, r.now())
	if err != nil {
		return "", err
	}
	at := date.Add(dateparse.DefaultHour * time.Hour)
	if _, err := r.createReminder(ctx, content, content, at); err != nil {
		return "", err
	}
	return fmt.Sprintf("⏰ %d. gün hatırlatıcısı eklendi: %s", day, content), nil
}

func (r *Router) handleMonthNameReminder(ctx context.Context, day int, month time.Month, content string) (string, error) {
	date, err := dateparse.ResolveMonthDate(day, month, r.now())
	if err != nil {
		return "", err
	}
	at := date.Add(dateparse.DefaultHour * time.Hour)
	if _, err := r.createReminder(ctx, content, content, at); err != nil {
		return "", err
	}
	return fmt.Sprintf("⏰ %d %s hatırlatıcısı eklendi: %s", day, capFirst(dateparse.MonthName(month)), content), nil
}

func (r *Router) handleDateReminder(ctx context.Context, day int, month time.Month, content, sep string) (string, error) {
	date, err := dateparse.ResolveMonthDate(day, month, r.now())
	if err != nil {
		return "", err
	}
	at := date.Add(dateparse.DefaultHour * time.Hour)
	if _, err := r.createReminder(ctx, content, content, at); err != nil {
		return "", err
	}
	return fmt.Sprintf("⏰ %d%s%d hatırlatıcısı eklendi: %s", day, sep, int(month), content), nil
}

// createReminder is the single write path for reminders. It holds the
// reminder mutex, feeds the trigger engine, and fires the calendar signal.
func (r *Router) createReminder(ctx context.Context, title, message string, at time.Time) (int64, error) {
	r.reminderMu.Lock()
	defer r.reminderMu.Unlock()

	id, err := r.store.CreateReminder(ctx, title, message, at)
	if err != nil {
		return 0, err
	}
	if r.sched != nil {
		// Best effort: a full engine queue must not fail the add.
		_ = r.sched.Schedule(scheduler.ReminderEvent{ID: id, Title: title, Message: message, TriggerAt: at})
	}
	r.signalCalendar()
	return id, nil
}

func (r *Router) handleReminderDelete(ctx context.Context, search string) (string, error) {
	r.reminderMu.Lock()
	defer r.reminderMu.Unlock()

	reminders, err := r.store.ListReminders(ctx, storage.ReminderFilter{})
	if err != nil {
		return "", err
	}
	if len(reminders) == 0 {
		return "📅 Silinecek hatırlatıcı bulunamadı.", nil
	}

	matched := FindMatches(search, reminders)
	if len(matched) == 0 {
		return fmt.Sprintf("📅 '%s' ile eşleşen hatırlatıcı bulunamadı.", search), nil
	}

	deleted := 0
	for _, rem := range matched {
		if err := r.store.DeleteReminder(ctx, rem.ID); err != nil {
			continue
		}
		if r.sched != nil {
			r.sched.Unschedule(rem.ID)
		}
		deleted++
	}
	r.signalCalendar()
	return fmt.Sprintf("🗑️ %d hatırlatıcı silindi.", deleted), nil
}

func (r *Router) listRemindersNumbered(ctx context.Context) (string, error) {
	reminders, err := r.store.ListReminders(ctx, storage.ReminderFilter{})
	if err != nil {
		return "", err
	}
	if len(reminders) == 0 {
		return "⏰ Henüz hatırlatıcı yok", nil
	}
	var b strings.Builder
	b.WriteString("⏰ Hatırlatıcılarınız:\n")
	for i, rem := range reminders {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, rem.Title, rem.ReminderTime.Format(stampLayout))
	}
	return b.String(), nil
}

// listRemindersDetailed backs the exact "hatırlatıcılar" quick action and
// shows the triggered state per entry.
func (r *Router) listRemindersDetailed(ctx context.Context) (string, error) {
	reminders, err := r.store.ListReminders(ctx, storage.ReminderFilter{})
	if err != nil {
		return "", err
	}
	if len(reminders) == 0 {
		return "📅 Henüz hatırlatıcı yok", nil
	}
	var b strings.Builder
	b.WriteString("📅 Hatırlatıcılarınız:\n")
	for _, rem := range reminders {
		status := "⏳"
		if rem.Triggered {
			status = "✅"
		}
		fmt.Fprintf(&b, "%s %s - %s\n", status, rem.ReminderTime.Format(stampLayout), rem.Title)
	}
	return b.String(), nil
}

func (r *Router) listTodos(ctx context.Context, empty, header string) (string, error) {
	todos, err := r.store.ListTodos(ctx, storage.TodoFilter{})
	if err != nil {
		return "", err
	}
	if len(todos) == 0 {
		return empty, nil
	}
	var b strings.Builder
	b.WriteString(header)
	for _, todo := range todos {
		status := "⏳"
		if todo.Completed {
			status = "✅"
		}
		fmt.Fprintf(&b, "%s %s\n", status, todo.Title)
	}
	return b.String(), nil
}

const recentNotes = 10

func (r *Router) listNotesNumbered(ctx context.Context) (string, error) {
	lines, err := r.notes.ReadRecent(recentNotes)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "📝 Henüz not yok", nil
	}
	var b strings.Builder
	b.WriteString("📝 Notlarınız:\n")
	for i, line := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}
	return b.String(), nil
}

func (r *Router) listNotesBulleted(ctx context.Context) (string, error) {
	lines, err := r.notes.ReadRecent(recentNotes)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "📝 Henüz not yok", nil
	}
	var b strings.Builder
	b.WriteString("📝 Notlarınız:\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "• %s\n", line)
	}
	return b.String(), nil
}

func (r *Router) handleWebSearch(query string) (string, error) {
	searchURL := "https://www.google.com/search?q=" + strings.ReplaceAll(query, " ", "+")
	if err := r.osctl.OpenURL(searchURL); err != nil {
		return "❌ Arama yapılamadı: " + query, nil
	}
	return "🔍 Google'da aranıyor: " + query, nil
}

func (r *Router) handleWebOpen(target string) (string, error) {
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}
	if err := r.osctl.OpenURL(target); err != nil {
		return "❌ Site açılamadı: " + target, nil
	}
	return "🌐 Site açıldı: " + target, nil
}

func (r *Router) handleMusic(query string) (string, error) {
	searchURL := "https://www.youtube.com/results?search_query=" + strings.ReplaceAll(query, " ", "+") + "+müzik"
	if err := r.osctl.OpenURL(searchURL); err != nil {
		return "❌ Müzik açılamadı: " + query, nil
	}
	return "🎵 YouTube'da müzik aranıyor: " + query, nil
}

func (r *Router) handleMusicPlatform(platform, query string) (string, error) {
	var target string
	if platform == "spotify" {
		target = "https://open.spotify.com/search/" + strings.ReplaceAll(query, " ", "%20")
	} else {
		target = "https://www.youtube.com/results?search_query=" + strings.ReplaceAll(query, " ", "+")
	}
	if err := r.osctl.OpenURL(target); err != nil {
		return fmt.Sprintf("❌ %s açılamadı: %s", capFirst(platform), query), nil
	}
	return fmt.Sprintf("🎵 %s açıldı: %s", capFirst(platform), query), nil
}

const maxShownFiles = 5

func (r *Router) handleFileSearch(query string) (string, error) {
	results := r.search.Search(query)
	if len(results) == 0 {
		return fmt.Sprintf("🔍 '%s' için dosya bulunamadı", query), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 '%s' için bulunan dosyalar:\n", query)
	for i, path := range results {
		if i == maxShownFiles {
			break
		}
		fmt.Fprintf(&b, "📄 %s\n", path)
	}
	return b.String(), nil
}

// capFirst uppercases the first rune with the Turkish dotted-i rule.
func capFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	if runes[0] == 'i' {
		runes[0] = 'İ'
	} else {
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	}
	return string(runes)
}
