package stats

import (
	"math"
	"sort"

	"github.com/pviana/matchview-api/internal/domain/matches"
)

// TeamGoalRates attributes parsed goals to the scoring team across both
// roles and returns goals-per-match per team, sorted descending. The sort is
// stable, so teams with equal rates keep the order they were first seen in.
func TeamGoalRates(items []matches.MatchRecord) []TeamGoalRate {
	type accumulator struct {
		goals  int
		played int
	}
	byTeam := make(map[string]*accumulator)
	order := make([]string, 0)
	touch := func(team string) *accumulator {
		if acc, ok := byTeam[team]; ok {
			return acc
		}
		acc := &accumulator{}
		byTeam[team] = acc
		order = append(order, team)
		return acc
	}

	for _, m := range items {
		score := ParseScore(m.Score)
		home := touch(m.HomeTeam)
		home.goals += score.HomeGoals
		home.played++
		away := touch(m.AwayTeam)
		away.goals += score.AwayGoals
		away.played++
	}

	out := make([]TeamGoalRate, 0, len(order))
	for _, team := range order {
		acc := byTeam[team]
		out = append(out, TeamGoalRate{
			Team:          team,
			GoalsScored:   acc.goals,
			MatchesPlayed: acc.played,
			GoalsPerMatch: float64(acc.goals) / float64(acc.played),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].GoalsPerMatch > out[j].GoalsPerMatch })
	return out
}

// SummarizeOutcomes tallies home wins, away wins and draws. Percentages are
// of the full match count; an empty input keeps them at zero rather than
// dividing by zero.
func SummarizeOutcomes(items []matches.MatchRecord) OutcomeSummary {
	var out OutcomeSummary
	for _, m := range items {
		score := ParseScore(m.Score)
		switch {
		case score.HomeGoals > score.AwayGoals:
			out.HomeWins++
		case score.HomeGoals < score.AwayGoals:
			out.AwayWins++
		default:
			out.Draws++
		}
	}
	out.Total = len(items)
	if out.Total == 0 {
		return out
	}
	out.HomeWinPct = float64(out.HomeWins) / float64(out.Total) * 100
	out.AwayWinPct = float64(out.AwayWins) / float64(out.Total) * 100
	out.DrawPct = float64(out.Draws) / float64(out.Total) * 100
	return out
}

// XgSeries reorients each match's expected-goals pair to the selected team's
// viewpoint and returns the points in ascending date order. In the away role
// the pair swaps: the team's xG for is the fixture's away xG. With no team
// selected every match is emitted from the home side's perspective; that
// default is the documented policy, not a fallback.
func XgSeries(items []matches.MatchRecord, selectedTeam string) []XgPoint {
	out := make([]XgPoint, 0, len(items))
	for _, m := range items {
		switch {
		case selectedTeam == "":
			out = append(out, XgPoint{
				Date: m.Date, Team: m.HomeTeam, Opponent: m.AwayTeam,
				XGFor: m.XGHome, XGAgainst: m.XGAway,
			})
		case m.HomeTeam == selectedTeam:
			out = append(out, XgPoint{
				Date: m.Date, Team: selectedTeam, Opponent: m.AwayTeam,
				XGFor: m.XGHome, XGAgainst: m.XGAway,
			})
		case m.AwayTeam == selectedTeam:
			out = append(out, XgPoint{
				Date: m.Date, Team: selectedTeam, Opponent: m.HomeTeam,
				XGFor: m.XGAway, XGAgainst: m.XGHome,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TeamXgSummaries carries four running sums per team (xG for and against,
// goals for and against) plus a match count, and averages them. It always
// covers the whole league; highlighting a selected team is the consumer's
// job. Output is sorted by team name.
func TeamXgSummaries(items []matches.MatchRecord) []TeamXgSummary {
	type accumulator struct {
		xgFor, xgAgainst       float64
		goalsFor, goalsAgainst int
		played                 int
	}
	byTeam := make(map[string]*accumulator)
	touch := func(team string) *accumulator {
		if acc, ok := byTeam[team]; ok {
			return acc
		}
		acc := &accumulator{}
		byTeam[team] = acc
		return acc
	}

	for _, m := range items {
		score := ParseScore(m.Score)

		home := touch(m.HomeTeam)
		home.xgFor += m.XGHome
		home.xgAgainst += m.XGAway
		home.goalsFor += score.HomeGoals
		home.goalsAgainst += score.AwayGoals
		home.played++

		away := touch(m.AwayTeam)
		away.xgFor += m.XGAway
		away.xgAgainst += m.XGHome
		away.goalsFor += score.AwayGoals
		away.goalsAgainst += score.HomeGoals
		away.played++
	}

	names := make([]string, 0, len(byTeam))
	for team := range byTeam {
		names = append(names, team)
	}
	sort.Strings(names)

	out := make([]TeamXgSummary, 0, len(names))
	for _, team := range names {
		acc := byTeam[team]
		played := float64(acc.played)
		avgGoalsFor := float64(acc.goalsFor) / played
		avgGoalsAgainst := float64(acc.goalsAgainst) / played
		out = append(out, TeamXgSummary{
			Team:             team,
			MatchesPlayed:    acc.played,
			AvgXGFor:         acc.xgFor / played,
			AvgXGAgainst:     acc.xgAgainst / played,
			AvgGoalsFor:      avgGoalsFor,
			AvgGoalsAgainst:  avgGoalsAgainst,
			GoalDifferential: avgGoalsFor - avgGoalsAgainst,
		})
	}
	return out
}

// ResultFor classifies a single match from the given team's side.
func ResultFor(m matches.MatchRecord, team string) Result {
	score := ParseScore(m.Score)
	scored, conceded := score.HomeGoals, score.AwayGoals
	if !m.IsHome(team) {
		scored, conceded = conceded, scored
	}
	switch {
	case scored > conceded:
		return ResultWin
	case scored < conceded:
		return ResultLoss
	default:
		return ResultDraw
	}
}

func MatchPoints(r Result) int {
	switch r {
	case ResultWin:
		return 3
	case ResultDraw:
		return 1
	default:
		return 0
	}
}

// PointsPerGame folds a team's fixtures in chronological order, threading a
// (points, matchesPlayed) accumulator so each emitted point reflects the
// cumulative state as of that match. The fold is strictly sequential; every
// point depends on all prior ones.
func PointsPerGame(items []matches.MatchRecord, team string) []PpgPoint {
	fixtures := make([]matches.MatchRecord, 0)
	for _, m := range items {
		if m.Involves(team) {
			fixtures = append(fixtures, m)
		}
	}
	sort.SliceStable(fixtures, func(i, j int) bool { return fixtures[i].Date.Before(fixtures[j].Date) })

	points := 0
	played := 0
	out := make([]PpgPoint, 0, len(fixtures))
	for _, m := range fixtures {
		result := ResultFor(m, team)
		points += MatchPoints(result)
		played++

		venue := "Away"
		if m.IsHome(team) {
			venue = "Home"
		}
		out = append(out, PpgPoint{
			Date:             m.Date,
			Opponent:         m.Opponent(team),
			Venue:            venue,
			Result:           result,
			Score:            m.Score,
			MatchesPlayed:    played,
			CumulativePoints: points,
			PointsPerGame:    float64(points) / float64(played),
		})
	}
	return out
}

// Weeks returns the distinct week numbers present in the dataset, ascending.
func Weeks(items []matches.MatchRecord) []int {
	seen := make(map[int]struct{})
	for _, m := range items {
		seen[m.Week] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for week := range seen {
		out = append(out, week)
	}
	sort.Ints(out)
	return out
}

// TeamWeeks returns the subset of week numbers in which the team has at
// least one fixture, ascending.
func TeamWeeks(items []matches.MatchRecord, team string) []int {
	seen := make(map[int]struct{})
	for _, m := range items {
		if m.Involves(team) {
			seen[m.Week] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for week := range seen {
		out = append(out, week)
	}
	sort.Ints(out)
	return out
}

func Round(v float64) float64 {
	return math.Round(v*10000) / 10000
}
