package pool

import (
	"fmt"
	"strings"
	"time"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Rules are the pool-level survivor rules that feed elimination.
type Rules struct {
	TiesCountAsLoss bool
	NoPickForfeit   bool
	// MaxEntriesPerUser limits lines per participant; 0 means unlimited.
	MaxEntriesPerUser int
}

func DefaultRules() Rules {
	return Rules{
		TiesCountAsLoss:   true,
		NoPickForfeit:     true,
		MaxEntriesPerUser: 1,
	}
}

// Pool groups entries under one owner and one rule set.
type Pool struct {
	ID          string
	Name        string
	Description string
	Visibility  string
	LockTime    *time.Time
	OwnerID     string
	Rules       Rules
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Pool) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("pool id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("pool name is required")
	}
	if p.OwnerID == "" {
		return fmt.Errorf("pool owner id is required")
	}
	if p.Visibility != VisibilityPublic && p.Visibility != VisibilityPrivate {
		return fmt.Errorf("pool visibility must be %s or %s", VisibilityPublic, VisibilityPrivate)
	}
	if p.Rules.MaxEntriesPerUser < 0 {
		return fmt.Errorf("pool max entries per user cannot be negative")
	}

	return nil
}

func NormalizeVisibility(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case VisibilityPrivate:
		return VisibilityPrivate
	default:
		return VisibilityPublic
	}
}
