package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidWeek           = errors.New("week outside season range")
	ErrUnknownTeam           = errors.New("unknown team code")
	ErrWeekLocked            = errors.New("week is locked")
	ErrTeamAlreadyUsed       = errors.New("team already used by entry")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// TeamUsedError reports a season team reuse together with the week
// where the team was burned, so callers can show the conflict without
// parsing the message.
type TeamUsedError struct {
	Team         string
	ConflictWeek int
}

func (e *TeamUsedError) Error() string {
	return fmt.Sprintf("team %s already used in week %d", e.Team, e.ConflictWeek)
}

func (e *TeamUsedError) Unwrap() error {
	return ErrTeamAlreadyUsed
}
