package service

import (
	"context"

	"github.com/avvvet/levelup-services/internal/comm"
	"github.com/avvvet/levelup-services/internal/levelup/models"
)

type EventInput struct {
	Game        *int64 `json:"game" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,nonul"`
	Date        string `json:"date" validate:"required,date"`
	Time        string `json:"time" validate:"required,clock"`
}

// EventService manages events and who attends them.
type EventService struct {
	events     EventRepository
	attendance AttendanceRepository
	notifier   Notifier
}

func NewEventService(events EventRepository, attendance AttendanceRepository, notifier Notifier) *EventService {
	return &EventService{
		events:     events,
		attendance: attendance,
		notifier:   notifier,
	}
}

// ListEvents returns every event with its attendees, attendees_count and joined,
// where joined counts the requester's attendance rows (0 or 1).
func (s *EventService) ListEvents(ctx context.Context, requester *models.Gamer, filter models.EventFilter) ([]models.Event, error) {
	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return []models.Event{}, nil
	}

	ids := make([]int64, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	rows, err := s.attendance.ListByEvents(ctx, ids)
	if err != nil {
		return nil, err
	}

	// single pass over the join
	attendees := make(map[int64][]models.Gamer, len(events))
	joined := make(map[int64]int, len(events))
	for _, a := range rows {
		attendees[a.EventID] = append(attendees[a.EventID], a.Gamer)
		if a.Gamer.ID == requester.ID {
			joined[a.EventID]++
		}
	}

	for i := range events {
		id := events[i].ID
		count := len(attendees[id])
		j := joined[id]

		events[i].Attendees = nonNil(attendees[id])
		events[i].AttendeesCount = &count
		events[i].Joined = &j
	}
	return events, nil
}

// GetEvent returns one event with attendees and attendees_count. joined is left nil.
func (s *EventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.attendance.ListByEvents(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	attendees := make([]models.Gamer, 0, len(rows))
	for _, a := range rows {
		attendees = append(attendees, a.Gamer)
	}
	count := len(attendees)

	event.Attendees = attendees
	event.AttendeesCount = &count
	return event, nil
}

// CreateEvent stores a new event organized by requester.
func (s *EventService) CreateEvent(ctx context.Context, requester *models.Gamer, in EventInput) (*models.Event, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	clock, _ := ParseClock(in.Time)

	event := &models.Event{
		GameID:      *in.Game,
		Description: in.Description,
		Date:        in.Date,
		Time:        clock,
		OrganizerID: requester.ID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	notify(ctx, s.notifier, comm.Notification{
		Type: comm.EventCreated, EventID: event.ID, GameID: event.GameID, GamerID: requester.ID,
	})
	return event, nil
}

// UpdateEvent replaces game, description, date and time. The organizer never changes.
// Any authenticated gamer may update any event.
func (s *EventService) UpdateEvent(ctx context.Context, requester *models.Gamer, id int64, in EventInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	clock, _ := ParseClock(in.Time)

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	event.GameID = *in.Game
	event.Description = in.Description
	event.Date = in.Date
	event.Time = clock

	if err := s.events.Update(ctx, event); err != nil {
		return err
	}

	notify(ctx, s.notifier, comm.Notification{
		Type: comm.EventUpdated, EventID: id, GameID: event.GameID, GamerID: requester.ID,
	})
	return nil
}

// DeleteEvent removes an event and its attendance. Any authenticated gamer may delete any event.
func (s *EventService) DeleteEvent(ctx context.Context, requester *models.Gamer, id int64) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}

	notify(ctx, s.notifier, comm.Notification{Type: comm.EventDeleted, EventID: id, GamerID: requester.ID})
	return nil
}

// Join makes requester an attendee of the event. Joining twice changes nothing.
func (s *EventService) Join(ctx context.Context, eventID int64, requester *models.Gamer) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.attendance.Add(ctx, event.ID, requester.ID); err != nil {
		return err
	}

	notify(ctx, s.notifier, comm.Notification{
		Type: comm.GamerJoined, EventID: event.ID, GameID: event.GameID, GamerID: requester.ID,
	})
	return nil
}

// Leave removes requester from the event's attendees. Leaving as a non-attendee is a no-op.
func (s *EventService) Leave(ctx context.Context, eventID int64, requester *models.Gamer) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.attendance.Remove(ctx, event.ID, requester.ID); err != nil {
		return err
	}

	notify(ctx, s.notifier, comm.Notification{
		Type: comm.GamerLeft, EventID: event.ID, GameID: event.GameID, GamerID: requester.ID,
	})
	return nil
}

func nonNil(gamers []models.Gamer) []models.Gamer {
	if gamers == nil {
		return []models.Gamer{}
	}
	return gamers
}
