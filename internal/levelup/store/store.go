package store

import "github.com/jackc/pgx/v5/pgxpool"

// Store exposes one repository per table over a shared pool.
type Store struct {
	Users      *UserStore
	Gamers     *GamerStore
	GameTypes  *GameTypeStore
	Games      *GameStore
	Events     *EventStore
	Attendance *AttendanceStore
	Reports    *ReportStore
}

func New(db *pgxpool.Pool) *Store {
	return &Store{
		Users:      NewUserStore(db),
		Gamers:     NewGamerStore(db),
		GameTypes:  NewGameTypeStore(db),
		Games:      NewGameStore(db),
		Events:     NewEventStore(db),
		Attendance: NewAttendanceStore(db),
		Reports:    NewReportStore(db),
	}
}
