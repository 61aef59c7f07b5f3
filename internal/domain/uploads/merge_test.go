package uploads

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pviana/matchview-api/internal/domain/matches"
)

func TestResolveRow(t *testing.T) {
	date := time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC)
	stored := matches.MatchRecord{
		ID:       uuid.New(),
		Week:     1,
		Date:     date,
		HomeTeam: "Arsenal",
		AwayTeam: "Wolves",
		Score:    "2–0",
		XGHome:   1.8,
		XGAway:   0.4,
	}

	scored := stored
	scored.Score = "2–1"

	laterXg := stored
	laterXg.XGAway = 0.5

	tests := []struct {
		name     string
		incoming matches.MatchRecord
		stored   matches.MatchRecord
		want     MergeDecision
	}{
		{name: "new fixture", incoming: stored, stored: matches.MatchRecord{}, want: DecisionInsert},
		{name: "identical row", incoming: stored, stored: stored, want: DecisionUnchanged},
		{name: "corrected score", incoming: scored, stored: stored, want: DecisionUpdate},
		{name: "revised xg", incoming: laterXg, stored: stored, want: DecisionUpdate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveRow(tc.incoming, tc.stored)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestRowCountsApply(t *testing.T) {
	var counts RowCounts
	counts.Apply(DecisionInsert)
	counts.Apply(DecisionInsert)
	counts.Apply(DecisionUpdate)
	counts.Apply(DecisionUnchanged)

	if counts.Inserted != 2 || counts.Updated != 1 || counts.Unchanged != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
