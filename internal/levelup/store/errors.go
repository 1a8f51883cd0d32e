package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	classDataException      = "22"
)

// referencing column per foreign key constraint, as named by postgres defaults
var foreignKeyFields = map[string]string{
	"games_game_type_id_fkey":  "game_type",
	"games_gamer_id_fkey":      "gamer",
	"events_game_id_fkey":      "game",
	"events_organizer_id_fkey": "organizer",
}

// translate maps driver errors onto the domain error kinds. refs holds the
// offending id per referencing field for foreign key violations.
func translate(err error, entity string, refs map[string]int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NotFound(entity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation:
			switch pgErr.ConstraintName {
			case "event_attendees_event_id_fkey":
				return models.NotFound("Event")
			case "event_attendees_gamer_id_fkey":
				return models.NotFound("Gamer")
			}
			if field, ok := foreignKeyFields[pgErr.ConstraintName]; ok {
				return models.InvalidReference(field, refs[field])
			}
			return fmt.Errorf("invalid reference: %s", pgErr.Message)
		case codeUniqueViolation:
			if pgErr.ConstraintName == "users_username_key" {
				return models.DuplicateUsername()
			}
		}
		if strings.HasPrefix(pgErr.Code, classDataException) {
			return models.NewValidationError(dataExceptionField(pgErr), "Invalid value.")
		}
	}
	return fmt.Errorf("%s query failed: %w", strings.ToLower(entity), err)
}

// dataExceptionField names the payload field of a rejected value, when postgres reports it.
func dataExceptionField(pgErr *pgconn.PgError) string {
	switch pgErr.ColumnName {
	case "":
		return "non_field_errors"
	case "game_type_id":
		return "game_type"
	case "game_id":
		return "game"
	}
	return pgErr.ColumnName
}

type scanner interface {
	Scan(dest ...any) error
}

// column lists shared by the expanded reads
const (
	gamerColumns = `%[1]s.id, %[1]s.user_id, %[1]s.bio, %[2]s.id, %[2]s.username, %[2]s.first_name, %[2]s.last_name`
	gameColumns  = `g.id, g.game_type_id, g.title, g.maker, g.gamer_id, g.number_of_players, g.skill_level, gt.id, gt.label`
)

func gamerCols(gamerAlias, userAlias string) string {
	return fmt.Sprintf(gamerColumns, gamerAlias, userAlias)
}

func gamerDest(g *models.Gamer) []any {
	return []any{&g.ID, &g.UserID, &g.Bio, &g.User.ID, &g.User.Username, &g.User.FirstName, &g.User.LastName}
}

func gameDest(g *models.Game) []any {
	g.GameType = &models.GameType{}
	g.Owner = &models.Gamer{}
	dest := []any{
		&g.ID, &g.GameTypeID, &g.Title, &g.Maker, &g.OwnerID, &g.NumberOfPlayers, &g.SkillLevel,
		&g.GameType.ID, &g.GameType.Label,
	}
	return append(dest, gamerDest(g.Owner)...)
}
