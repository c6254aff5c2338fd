package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kahya/kahya/internal/filesearch"
	"github.com/kahya/kahya/internal/llm"
	"github.com/kahya/kahya/internal/notes"
	"github.com/kahya/kahya/internal/router"
	"github.com/kahya/kahya/internal/scheduler"
	"github.com/kahya/kahya/internal/storage"
	"github.com/kahya/kahya/internal/sysops"
	"github.com/kahya/kahya/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kahya failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return err
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()
	if err := scheduleStored(repo, engine); err != nil {
		return err
	}

	r := router.New(
		repo,
		notes.NewLog(cfg.NotesPath),
		llm.NewClient(cfg.OllamaURL, cfg.OllamaModel),
		filesearch.NewSearcher(),
		sysops.NewController(),
		router.WithScheduler(engine),
	)

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	model := update.NewModelWithConfig(r, update.NewStoreAgenda(repo), engine.C(), notifier, cfg)
	program := tea.NewProgram(model)

	// The calendar signal arrives from router goroutines, so it is bridged
	// into the event loop with Send.
	router.WithCalendarSignal(func() {
		program.Send(update.CalendarRefreshMsg{})
	})(r)

	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// scheduleStored queues every untriggered reminder so restarts do not lose
// pending alarms. Past-due ones fire immediately.
func scheduleStored(repo storage.Repository, engine *scheduler.Engine) error {
	untriggered := false
	reminders, err := repo.ListReminders(context.Background(), storage.ReminderFilter{Triggered: &untriggered})
	if err != nil {
		return err
	}
	for _, rem := range reminders {
		_ = engine.Schedule(scheduler.ReminderEvent{
			ID:        rem.ID,
			Title:     rem.Title,
			Message:   rem.Message,
			TriggerAt: rem.ReminderTime,
		})
	}
	return nil
}
