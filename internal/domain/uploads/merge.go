package uploads

import (
	"github.com/google/uuid"
	"github.com/pviana/matchview-api/internal/domain/matches"
)

type MergeDecision string

const (
	DecisionInsert    MergeDecision = "insert"
	DecisionUpdate    MergeDecision = "update"
	DecisionUnchanged MergeDecision = "unchanged"
)

// ResolveRow decides what to do with an incoming schedule row against the
// stored record for the same fixture (zero-value stored means no record
// exists yet). A weekly re-upload mostly repeats rows already sent; only
// rows whose played fields changed (a filled-in score, corrected xG,
// attendance) are worth writing.
func ResolveRow(incoming matches.MatchRecord, stored matches.MatchRecord) MergeDecision {
	if stored.ID == uuid.Nil {
		return DecisionInsert
	}
	if incoming.SameFixture(stored) && sameContent(incoming, stored) {
		return DecisionUnchanged
	}
	return DecisionUpdate
}

func sameContent(a, b matches.MatchRecord) bool {
	return a.Date.Equal(b.Date) &&
		a.Day == b.Day &&
		a.KickoffTime == b.KickoffTime &&
		a.Score == b.Score &&
		a.XGHome == b.XGHome &&
		a.XGAway == b.XGAway &&
		a.Attendance == b.Attendance &&
		a.Venue == b.Venue &&
		a.Referee == b.Referee
}
