package usecase

import (
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/pick"
	"github.com/agsmith/run-my-pool/internal/domain/pool"
	"github.com/agsmith/run-my-pool/internal/domain/schedule"
)

type EntryState string

const (
	EntryActive     EntryState = "active"
	EntryEliminated EntryState = "eliminated"
)

const (
	EliminationReasonLoss   = "loss"
	EliminationReasonTie    = "tie"
	EliminationReasonNoPick = "no_pick"
)

// EntryVerdict is the derived status of one entry. It is never stored;
// it is recomputed from picks and game results on every evaluation.
type EntryVerdict struct {
	State          EntryState
	EliminatedWeek int
	Reason         string
}

func (v EntryVerdict) Eliminated() bool {
	return v.State == EntryEliminated
}

// EvaluateEntry derives an entry's survivor status from its pick history
// and the season schedule. Weeks are scanned in order; the first decided
// loss is terminal, later picks and results cannot revive the entry.
// The function is pure: same inputs, same verdict, no writes.
func EvaluateEntry(picks []pick.Pick, gamesByWeek map[int][]schedule.Game, rules pool.Rules, asOf time.Time) EntryVerdict {
	picksByWeek := make(map[int]pick.Pick, len(picks))
	lastWeek := 0
	for _, p := range picks {
		picksByWeek[p.Week] = p
		if p.Week > lastWeek {
			lastWeek = p.Week
		}
	}
	for week := range gamesByWeek {
		if week > lastWeek {
			lastWeek = week
		}
	}

	for week := 1; week <= lastWeek; week++ {
		games := gamesByWeek[week]
		p, picked := picksByWeek[week]

		if !picked {
			if !rules.NoPickForfeit || len(games) == 0 {
				continue
			}
			deadline := schedule.WeekDeadline(games)
			if !deadline.IsZero() && !asOf.Before(deadline) {
				return EntryVerdict{State: EntryEliminated, EliminatedWeek: week, Reason: EliminationReasonNoPick}
			}
			continue
		}

		game, ok := findGameFor(games, p.Team)
		if !ok || !game.IsFinal() {
			continue
		}

		if game.IsTie() {
			if rules.TiesCountAsLoss {
				return EntryVerdict{State: EntryEliminated, EliminatedWeek: week, Reason: EliminationReasonTie}
			}
			continue
		}

		if game.WinnerTeam != p.Team {
			return EntryVerdict{State: EntryEliminated, EliminatedWeek: week, Reason: EliminationReasonLoss}
		}
	}

	return EntryVerdict{State: EntryActive}
}

func findGameFor(games []schedule.Game, teamCode string) (schedule.Game, bool) {
	for _, g := range games {
		if g.Involves(teamCode) {
			return g, true
		}
	}
	return schedule.Game{}, false
}

// GroupGamesByWeek shapes a flat season schedule for evaluation.
func GroupGamesByWeek(games []schedule.Game) map[int][]schedule.Game {
	out := make(map[int][]schedule.Game)
	for _, g := range games {
		out[g.Week] = append(out[g.Week], g)
	}
	return out
}
