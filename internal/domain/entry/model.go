package entry

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one participant's pick line within a pool.
type Entry struct {
	ID        string
	PoolID    string
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry id is required")
	}
	if e.PoolID == "" {
		return fmt.Errorf("entry pool id is required")
	}
	if e.UserID == "" {
		return fmt.Errorf("entry user id is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("entry name is required")
	}

	return nil
}
