package router

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kahya/kahya/internal/intent"
	"github.com/kahya/kahya/internal/scheduler"
	"github.com/kahya/kahya/internal/storage"
)

// Source classifies where a result's text came from.
type Source string

const (
	SourceHandler   Source = "handler"
	SourceLLMAction Source = "llm_action"
	SourceLLMChat   Source = "llm_chat"
	SourceError     Source = "error"
)

// Result is one user-visible outcome of a routed command. Every dispatch,
// successful or not, produces exactly one Result on the channel.
type Result struct {
	Text   string
	Source Source
}

// Store is the slice of the repository the router mutates and reads.
type Store interface {
	CreateReminder(ctx context.Context, title, message string, at time.Time) (int64, error)
	ListReminders(ctx context.Context, filter storage.ReminderFilter) ([]storage.Reminder, error)
	DeleteReminder(ctx context.Context, id int64) error

	CreateTodo(ctx context.Context, title string) (int64, error)
	ListTodos(ctx context.Context, filter storage.TodoFilter) ([]storage.Todo, error)
	SetTodoCompleted(ctx context.Context, id int64, completed bool) error
	DeleteTodo(ctx context.Context, id int64) error

	LogAppUsage(ctx context.Context, appName string, duration time.Duration) error
}

// NoteLog is the append-only note file.
type NoteLog interface {
	Append(content string, now time.Time) error
	ReadRecent(n int) ([]string, error)
}

// Responder answers free-form prompts, typically an Ollama client.
type Responder interface {
	GetResponse(ctx context.Context, message string) (string, error)
}

// FileSearcher finds files by name fragment.
type FileSearcher interface {
	Search(query string) []string
}

// Opener launches external targets through the host OS.
type Opener interface {
	OpenURL(rawURL string) error
	OpenFile(path string) error
	OpenFolder(path string) error
	OpenApplication(name string) error
}

// ReminderScheduler receives trigger-time events for stored reminders.
type ReminderScheduler interface {
	Schedule(ev scheduler.ReminderEvent) error
	Unschedule(id int64)
}

const resultBuffer = 16

// Router turns raw chat input into store mutations, OS actions, or an LLM
// reply. Route never blocks the caller; each command runs on its own
// goroutine and reports through Results.
type Router struct {
	store  Store
	notes  NoteLog
	llm    Responder
	search FileSearcher
	osctl  Opener

	sched      ReminderScheduler
	onCalendar func()
	now        func() time.Time

	// reminderMu serializes reminder mutations so concurrent deletes and
	// adds cannot race on the same rows.
	reminderMu sync.Mutex

	results chan Result
}

type Option func(*Router)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// WithScheduler wires reminder adds and deletes into a trigger engine.
func WithScheduler(s ReminderScheduler) Option {
	return func(r *Router) { r.sched = s }
}

// WithCalendarSignal registers a best-effort refresh callback, fired after
// every reminder add or delete.
func WithCalendarSignal(fn func()) Option {
	return func(r *Router) { r.onCalendar = fn }
}

func New(store Store, notes NoteLog, llm Responder, search FileSearcher, osctl Opener, opts ...Option) *Router {
	r := &Router{
		store:   store,
		notes:   notes,
		llm:     llm,
		search:  search,
		osctl:   osctl,
		now:     time.Now,
		results: make(chan Result, resultBuffer),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Results delivers one Result per dispatched command, in completion order.
func (r *Router) Results() <-chan Result {
	return r.results
}

// Route classifies the input and dispatches it. Empty input is a no-op.
// Classification happens synchronously; the handler itself always runs on
// its own goroutine.
func (r *Router) Route(input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	// Fixed prefixes come from the chat surface's quick actions and skip
	// pattern matching entirely.
	switch {
	case strings.HasPrefix(input, "hatırlatıcı_ekle "):
		content := strings.TrimPrefix(input, "hatırlatıcı_ekle ")
		r.dispatch(func(ctx context.Context) (string, error) {
			return r.addReminderFromText(ctx, content)
		})
		return
	case strings.HasPrefix(input, "not_al "):
		content := strings.TrimPrefix(input, "not_al ")
		r.dispatch(func(ctx context.Context) (string, error) {
			if err := r.notes.Append(content, r.now()); err != nil {
				return "", err
			}
			return "📝 Not kaydedildi: " + content, nil
		})
		return
	case strings.HasPrefix(input, "todo_ekle "):
		content := strings.TrimPrefix(input, "todo_ekle ")
		r.dispatch(func(ctx context.Context) (string, error) {
			if _, err := r.store.CreateTodo(ctx, content); err != nil {
				return "", err
			}
			return "✅ Yapılacak eklendi: " + content, nil
		})
		return
	case input == "hatırlatıcılar":
		r.dispatch(r.listRemindersDetailed)
		return
	case input == "notlar":
		r.dispatch(r.listNotesBulleted)
		return
	}

	if in, ok := intent.Match(strings.ToLower(input)); ok {
		r.dispatch(func(ctx context.Context) (string, error) {
			return r.handle(ctx, in)
		})
		return
	}

	// Nothing matched: the LLM gets the original-case input.
	r.dispatchLLM(input)
}

func (r *Router) dispatch(fn func(ctx context.Context) (string, error)) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.emit(Result{Text: fmt.Sprintf("Hata: %v", rec), Source: SourceError})
			}
		}()
		text, err := fn(context.Background())
		if err != nil {
			r.emit(Result{Text: "Hata: " + err.Error(), Source: SourceError})
			return
		}
		r.emit(Result{Text: text, Source: SourceHandler})
	}()
}

func (r *Router) dispatchLLM(input string) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.emit(Result{Text: fmt.Sprintf("Hata: %v", rec), Source: SourceError})
			}
		}()
		reply, err := r.llm.GetResponse(context.Background(), input)
		if err != nil {
			r.emit(Result{Text: "LLM hatası: " + err.Error(), Source: SourceError})
			return
		}
		src := SourceLLMChat
		if IsActionReport(reply) {
			src = SourceLLMAction
		}
		r.emit(Result{Text: reply, Source: src})
	}()
}

func (r *Router) emit(res Result) {
	r.results <- res
}

func (r *Router) signalCalendar() {
	if r.onCalendar != nil {
		r.onCalendar()
	}
}

// markerPhrases are the self-report phrases the system prompt instructs the
// model to use when it claims to have performed an action.
var markerPhrases = []string{
	"hatırlatıcı eklendi",
	"not kaydedildi",
	"todo eklendi",
	"hatırlatıcılar",
	"notlar",
	"yapılacaklar",
}

// IsActionReport reports whether an LLM reply claims a completed action
// rather than plain conversation.
func IsActionReport(reply string) bool {
	lower := strings.ToLower(reply)
	for _, phrase := range markerPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
