package update

import (
	"context"
	"sort"
	"time"

	"github.com/kahya/kahya/internal/storage"
)

// StoreAgenda reads the agenda pane straight from the reminder store.
type StoreAgenda struct {
	Repo storage.Repository
	Now  func() time.Time
}

func NewStoreAgenda(repo storage.Repository) *StoreAgenda {
	return &StoreAgenda{Repo: repo, Now: time.Now}
}

// Upcoming returns the next untriggered reminders in trigger order.
func (a *StoreAgenda) Upcoming(limit int) ([]storage.Reminder, error) {
	untriggered := false
	reminders, err := a.Repo.ListReminders(context.Background(), storage.ReminderFilter{Triggered: &untriggered})
	if err != nil {
		return nil, err
	}
	now := a.Now()
	upcoming := reminders[:0]
	for _, rem := range reminders {
		if rem.ReminderTime.After(now) {
			upcoming = append(upcoming, rem)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ReminderTime.Before(upcoming[j].ReminderTime)
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

func (a *StoreAgenda) MarkTriggered(id int64) error {
	return a.Repo.SetReminderTriggered(context.Background(), id, true)
}
