package schedule

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusInPlay    = "IN_PLAY"
	StatusFinal     = "FINAL"
	StatusPostponed = "POSTPONED"
)

// Game is one scheduled matchup. Read-only for the pick engine; it
// supplies lock times and, once final, the outcome.
type Game struct {
	ID         string
	Week       int
	HomeTeam   string
	AwayTeam   string
	KickoffAt  time.Time
	Status     string
	WinnerTeam string
}

func (g Game) Involves(teamCode string) bool {
	return g.HomeTeam == teamCode || g.AwayTeam == teamCode
}

func (g Game) IsFinal() bool {
	return NormalizeStatus(g.Status) == StatusFinal
}

// IsTie reports a finalized game with no winner.
func (g Game) IsTie() bool {
	return g.IsFinal() && strings.TrimSpace(g.WinnerTeam) == ""
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	switch status {
	case "FT", "FINISHED", "CLOSED":
		return StatusFinal
	case "LIVE", "IN_PROGRESS":
		return StatusInPlay
	default:
		return status
	}
}

// WeekDeadline is the earliest kickoff among a week's games. It is the
// cutoff used for the no-pick forfeit rule and for the unlocked versus
// no-selection display split. Zero time when the week has no games.
func WeekDeadline(games []Game) time.Time {
	var deadline time.Time
	for _, g := range games {
		if deadline.IsZero() || g.KickoffAt.Before(deadline) {
			deadline = g.KickoffAt
		}
	}
	return deadline
}
