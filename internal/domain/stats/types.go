package stats

import "time"

type Result string

const (
	ResultWin  Result = "Win"
	ResultDraw Result = "Draw"
	ResultLoss Result = "Loss"
)

type TeamGoalRate struct {
	Team          string  `json:"team"`
	GoalsScored   int     `json:"goalsScored"`
	MatchesPlayed int     `json:"matchesPlayed"`
	GoalsPerMatch float64 `json:"goalsPerMatch"`
}

type OutcomeSummary struct {
	HomeWins   int     `json:"homeWins"`
	AwayWins   int     `json:"awayWins"`
	Draws      int     `json:"draws"`
	Total      int     `json:"total"`
	HomeWinPct float64 `json:"homeWinPct"`
	AwayWinPct float64 `json:"awayWinPct"`
	DrawPct    float64 `json:"drawPct"`
}

type XgPoint struct {
	Date      time.Time `json:"date"`
	Team      string    `json:"team"`
	Opponent  string    `json:"opponent"`
	XGFor     float64   `json:"xgFor"`
	XGAgainst float64   `json:"xgAgainst"`
}

type TeamXgSummary struct {
	Team             string  `json:"team"`
	MatchesPlayed    int     `json:"matchesPlayed"`
	AvgXGFor         float64 `json:"avgXgFor"`
	AvgXGAgainst     float64 `json:"avgXgAgainst"`
	AvgGoalsFor      float64 `json:"avgGoalsFor"`
	AvgGoalsAgainst  float64 `json:"avgGoalsAgainst"`
	GoalDifferential float64 `json:"goalDifferential"`
}

// PpgPoint is one step of a team's cumulative points-per-game series. Venue
// is the team's role in that fixture ("Home" or "Away"); Result and Opponent
// describe that single match, not the running state.
type PpgPoint struct {
	Date             time.Time `json:"date"`
	Opponent         string    `json:"opponent"`
	Venue            string    `json:"venue"`
	Result           Result    `json:"result"`
	Score            string    `json:"score"`
	MatchesPlayed    int       `json:"matchesPlayed"`
	CumulativePoints int       `json:"cumulativePoints"`
	PointsPerGame    float64   `json:"pointsPerGame"`
}

type WeekIndex struct {
	Weeks     []int `json:"weeks"`
	TeamWeeks []int `json:"teamWeeks,omitempty"`
}
