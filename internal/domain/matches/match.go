package matches

import (
	"time"

	"github.com/google/uuid"
)

// MatchRecord is one played fixture as it appears in an uploaded schedule
// row. Score is kept in its raw string form ("2–1"); parsing lives in the
// stats package. Day, KickoffTime, Attendance, Venue and Referee are carried
// through for the table view and never aggregated.
type MatchRecord struct {
	ID          uuid.UUID `json:"id"`
	DatasetID   uuid.UUID `json:"datasetId"`
	Week        int       `json:"week"`
	Day         string    `json:"day,omitempty"`
	Date        time.Time `json:"date"`
	KickoffTime string    `json:"kickoffTime,omitempty"`
	HomeTeam    string    `json:"homeTeam"`
	AwayTeam    string    `json:"awayTeam"`
	XGHome      float64   `json:"xgHome"`
	XGAway      float64   `json:"xgAway"`
	Score       string    `json:"score"`
	Attendance  string    `json:"attendance,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	Referee     string    `json:"referee,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (m MatchRecord) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

func (m MatchRecord) IsHome(team string) bool {
	return m.HomeTeam == team
}

// Opponent returns the other side of the fixture, or "" when the team did
// not play in it.
func (m MatchRecord) Opponent(team string) string {
	switch team {
	case m.HomeTeam:
		return m.AwayTeam
	case m.AwayTeam:
		return m.HomeTeam
	}
	return ""
}

// SameFixture reports whether two records describe the same scheduled match
// within a dataset. Week plus the two team names is the fixture identity a
// re-uploaded schedule row is matched on.
func (m MatchRecord) SameFixture(other MatchRecord) bool {
	return m.Week == other.Week && m.HomeTeam == other.HomeTeam && m.AwayTeam == other.AwayTeam
}
