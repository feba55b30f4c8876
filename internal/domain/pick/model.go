package pick

import (
	"fmt"
	"time"
)

// Pick is an entry's team selection for one week. At most one pick
// exists per (entry, week), and a team code never repeats within an
// entry across the season.
type Pick struct {
	ID        string
	EntryID   string
	Week      int
	Team      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pick) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("pick id is required")
	}
	if p.EntryID == "" {
		return fmt.Errorf("pick entry id is required")
	}
	if p.Week < 1 {
		return fmt.Errorf("pick week must be positive")
	}
	if p.Team == "" {
		return fmt.Errorf("pick team is required")
	}

	return nil
}
