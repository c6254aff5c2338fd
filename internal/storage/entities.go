package storage

import "time"

type Reminder struct {
	ID           int64
	Title        string
	Message      string
	ReminderTime time.Time
	Triggered    bool
	CreatedAt    time.Time
}

type Todo struct {
	ID        int64
	Title     string
	Completed bool
	CreatedAt time.Time
}

type AppUsage struct {
	ID           int64
	AppName      string
	SessionCount int
	DurationSec  int
	LastUsed     time.Time
}

type ReminderFilter struct {
	Triggered *bool
	Limit     int
	Offset    int
}

type TodoFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}
