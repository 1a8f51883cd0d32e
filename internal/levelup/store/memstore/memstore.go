// Package memstore keeps the levelup data set in process memory. It backs
// STORAGE_DRIVER=memory and the hermetic tests, and mirrors the constraints of
// the PostgreSQL schema: unique usernames, unique (event, gamer) attendance,
// foreign keys and cascading deletes.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/avvvet/levelup-services/internal/levelup/models"
)

type userRow struct {
	user models.User
	hash string
}

type gamerRow struct {
	id     int64
	userID int64
	bio    string
}

type attendanceKey struct {
	eventID int64
	gamerID int64
}

type state struct {
	mu sync.RWMutex

	users      map[int64]userRow
	gamers     map[int64]gamerRow
	gameTypes  map[int64]models.GameType
	games      map[int64]models.Game
	events     map[int64]models.Event
	attendance map[attendanceKey]int64 // value is insertion order

	seq int64
}

// Store exposes one repository per table, all sharing the same state.
type Store struct {
	Users      *UserStore
	Gamers     *GamerStore
	GameTypes  *GameTypeStore
	Games      *GameStore
	Events     *EventStore
	Attendance *AttendanceStore
	Reports    *ReportStore
}

// New returns an empty store seeded with the default game types.
func New() *Store {
	s := &state{
		users:      map[int64]userRow{},
		gamers:     map[int64]gamerRow{},
		gameTypes:  map[int64]models.GameType{},
		games:      map[int64]models.Game{},
		events:     map[int64]models.Event{},
		attendance: map[attendanceKey]int64{},
	}
	for _, label := range []string{"Board game", "Card game", "Tabletop role playing game"} {
		id := s.next()
		s.gameTypes[id] = models.GameType{ID: id, Label: label}
	}

	return &Store{
		Users:      &UserStore{s},
		Gamers:     &GamerStore{s},
		GameTypes:  &GameTypeStore{s},
		Games:      &GameStore{s},
		Events:     &EventStore{s},
		Attendance: &AttendanceStore{s},
		Reports:    &ReportStore{s},
	}
}

// next hands out ids; callers hold the write lock.
func (s *state) next() int64 {
	s.seq++
	return s.seq
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func idSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// expansion helpers, callers hold at least the read lock

func (s *state) gamer(id int64) *models.Gamer {
	g, ok := s.gamers[id]
	if !ok {
		return nil
	}
	return &models.Gamer{ID: g.id, UserID: g.userID, Bio: g.bio, User: s.users[g.userID].user}
}

func (s *state) game(id int64) *models.Game {
	g, ok := s.games[id]
	if !ok {
		return nil
	}
	if gt, ok := s.gameTypes[g.GameTypeID]; ok {
		g.GameType = &gt
	}
	g.Owner = s.gamer(g.OwnerID)
	return &g
}

func (s *state) event(id int64) *models.Event {
	e, ok := s.events[id]
	if !ok {
		return nil
	}
	e.Game = s.game(e.GameID)
	e.Organizer = s.gamer(e.OrganizerID)
	return &e
}

func (s *state) deleteEvent(id int64) {
	delete(s.events, id)
	for k := range s.attendance {
		if k.eventID == id {
			delete(s.attendance, k)
		}
	}
}

type UserStore struct{ s *state }

func (r *UserStore) CreateWithGamer(ctx context.Context, u models.User, passwordHash, bio string) (*models.Gamer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, row := range r.s.users {
		if row.user.Username == u.Username {
			return nil, models.DuplicateUsername()
		}
	}
	u.ID = r.s.next()
	r.s.users[u.ID] = userRow{user: u, hash: passwordHash}

	gamerID := r.s.next()
	r.s.gamers[gamerID] = gamerRow{id: gamerID, userID: u.ID, bio: bio}
	return r.s.gamer(gamerID), nil
}

func (r *UserStore) GetCredentials(ctx context.Context, username string) (*models.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, row := range r.s.users {
		if row.user.Username == username {
			u := row.user
			return &u, row.hash, nil
		}
	}
	return nil, "", models.NotFound("User")
}

type GamerStore struct{ s *state }

func (r *GamerStore) GetByUserID(ctx context.Context, userID int64) (*models.Gamer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, g := range r.s.gamers {
		if g.userID == userID {
			return r.s.gamer(g.id), nil
		}
	}
	return nil, models.NotFound("Gamer")
}

type GameTypeStore struct{ s *state }

func (r *GameTypeStore) List(ctx context.Context) ([]models.GameType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.GameType, 0, len(r.s.gameTypes))
	for _, id := range sortedKeys(r.s.gameTypes) {
		out = append(out, r.s.gameTypes[id])
	}
	return out, nil
}

func (r *GameTypeStore) GetByID(ctx context.Context, id int64) (*models.GameType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	gt, ok := r.s.gameTypes[id]
	if !ok {
		return nil, models.NotFound("GameType")
	}
	return &gt, nil
}

type GameStore struct{ s *state }

func (r *GameStore) List(ctx context.Context, filter models.GameFilter) ([]models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Game{}
	for _, id := range sortedKeys(r.s.games) {
		g := r.s.games[id]
		if filter.GameTypeID != nil && g.GameTypeID != *filter.GameTypeID {
			continue
		}
		out = append(out, *r.s.game(id))
	}
	return out, nil
}

func (r *GameStore) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g := r.s.game(id)
	if g == nil {
		return nil, models.NotFound("Game")
	}
	return g, nil
}

func (r *GameStore) Create(ctx context.Context, g *models.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.gameTypes[g.GameTypeID]; !ok {
		return models.InvalidReference("game_type", g.GameTypeID)
	}
	if _, ok := r.s.gamers[g.OwnerID]; !ok {
		return models.InvalidReference("gamer", g.OwnerID)
	}
	g.ID = r.s.next()
	r.s.games[g.ID] = stripGame(*g)
	return nil
}

func (r *GameStore) Update(ctx context.Context, g *models.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.games[g.ID]; !ok {
		return models.NotFound("Game")
	}
	if _, ok := r.s.gameTypes[g.GameTypeID]; !ok {
		return models.InvalidReference("game_type", g.GameTypeID)
	}
	r.s.games[g.ID] = stripGame(*g)
	return nil
}

func (r *GameStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.games[id]; !ok {
		return models.NotFound("Game")
	}
	delete(r.s.games, id)
	for eventID, e := range r.s.events {
		if e.GameID == id {
			r.s.deleteEvent(eventID)
		}
	}
	return nil
}

// stripGame drops expanded and derived fields before storing.
func stripGame(g models.Game) models.Game {
	g.GameType = nil
	g.Owner = nil
	g.EventCount = nil
	g.UserEventCount = nil
	return g
}

type EventStore struct{ s *state }

func (r *EventStore) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Event{}
	for _, id := range sortedKeys(r.s.events) {
		if filter.GameID != nil && r.s.events[id].GameID != *filter.GameID {
			continue
		}
		out = append(out, *r.s.event(id))
	}
	return out, nil
}

func (r *EventStore) ListByGames(ctx context.Context, gameIDs []int64) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	want := idSet(gameIDs)
	out := []models.Event{}
	for _, id := range sortedKeys(r.s.events) {
		if e := r.s.events[id]; want[e.GameID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e := r.s.event(id)
	if e == nil {
		return nil, models.NotFound("Event")
	}
	return e, nil
}

func (r *EventStore) Create(ctx context.Context, e *models.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.games[e.GameID]; !ok {
		return models.InvalidReference("game", e.GameID)
	}
	if _, ok := r.s.gamers[e.OrganizerID]; !ok {
		return models.InvalidReference("organizer", e.OrganizerID)
	}
	e.ID = r.s.next()
	r.s.events[e.ID] = stripEvent(*e)
	return nil
}

func (r *EventStore) Update(ctx context.Context, e *models.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[e.ID]; !ok {
		return models.NotFound("Event")
	}
	if _, ok := r.s.games[e.GameID]; !ok {
		return models.InvalidReference("game", e.GameID)
	}
	r.s.events[e.ID] = stripEvent(*e)
	return nil
}

func (r *EventStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return models.NotFound("Event")
	}
	r.s.deleteEvent(id)
	return nil
}

func stripEvent(e models.Event) models.Event {
	e.Game = nil
	e.Organizer = nil
	e.Attendees = nil
	e.AttendeesCount = nil
	e.Joined = nil
	return e
}

type AttendanceStore struct{ s *state }

func (r *AttendanceStore) Add(ctx context.Context, eventID, gamerID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[eventID]; !ok {
		return models.NotFound("Event")
	}
	if _, ok := r.s.gamers[gamerID]; !ok {
		return models.NotFound("Gamer")
	}
	key := attendanceKey{eventID: eventID, gamerID: gamerID}
	if _, ok := r.s.attendance[key]; ok {
		return nil
	}
	r.s.attendance[key] = r.s.next()
	return nil
}

func (r *AttendanceStore) Remove(ctx context.Context, eventID, gamerID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.attendance, attendanceKey{eventID: eventID, gamerID: gamerID})
	return nil
}

func (r *AttendanceStore) ListByEvents(ctx context.Context, eventIDs []int64) ([]models.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	want := idSet(eventIDs)
	type row struct {
		key   attendanceKey
		order int64
	}
	var rows []row
	for k, order := range r.s.attendance {
		if want[k.eventID] {
			rows = append(rows, row{k, order})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].order < rows[j].order })

	out := make([]models.Attendance, 0, len(rows))
	for _, x := range rows {
		out = append(out, models.Attendance{EventID: x.key.eventID, Gamer: *r.s.gamer(x.key.gamerID)})
	}
	return out, nil
}

type ReportStore struct{ s *state }

// EventsByUser mirrors the events_by_user view.
func (r *ReportStore) EventsByUser(ctx context.Context) ([]models.UserEventRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.UserEventRow{}
	for _, id := range sortedKeys(r.s.events) {
		e := r.s.event(id)
		out = append(out, models.UserEventRow{
			ID:          e.ID,
			Date:        e.Date,
			Time:        e.Time,
			Title:       e.Game.Title,
			OrganizerID: e.OrganizerID,
			FullName:    e.Organizer.User.FullName(),
		})
	}
	return out, nil
}

// GamesByUser mirrors the games_by_user view.
func (r *ReportStore) GamesByUser(ctx context.Context) ([]models.UserGameRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.UserGameRow{}
	for _, id := range sortedKeys(r.s.games) {
		g := r.s.game(id)
		out = append(out, models.UserGameRow{
			ID:              g.ID,
			Title:           g.Title,
			Maker:           g.Maker,
			NumberOfPlayers: g.NumberOfPlayers,
			SkillLevel:      g.SkillLevel,
			GameTypeID:      g.GameTypeID,
			GamerID:         g.OwnerID,
			FullName:        g.Owner.User.FullName(),
		})
	}
	return out, nil
}
