package projections

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pviana/matchview-api/internal/domain/matches"
	"github.com/pviana/matchview-api/internal/domain/stats"
)

type projectionStoreMock struct {
	matches []matches.MatchRecord

	replacedRatesDataset uuid.UUID
	replacedRates        []stats.TeamGoalRate
	upsertedSummary      stats.OutcomeSummary
	replacedXg           []stats.TeamXgSummary
}

func (m *projectionStoreMock) ListMatchesByDataset(_ context.Context, _ uuid.UUID) ([]matches.MatchRecord, error) {
	return m.matches, nil
}

func (m *projectionStoreMock) ReplaceTeamGoalRates(_ context.Context, datasetID uuid.UUID, rows []stats.TeamGoalRate) error {
	m.replacedRatesDataset = datasetID
	m.replacedRates = rows
	return nil
}

func (m *projectionStoreMock) UpsertOutcomeSummary(_ context.Context, _ uuid.UUID, summary stats.OutcomeSummary) error {
	m.upsertedSummary = summary
	return nil
}

func (m *projectionStoreMock) ReplaceTeamXgSummaries(_ context.Context, _ uuid.UUID, rows []stats.TeamXgSummary) error {
	m.replacedXg = rows
	return nil
}

func TestRecomputeForDatasetReplacesAllLeagueViews(t *testing.T) {
	datasetID := uuid.New()
	day := time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC)

	mock := &projectionStoreMock{
		matches: []matches.MatchRecord{
			{Week: 1, Date: day, HomeTeam: "Arsenal", AwayTeam: "Wolves", Score: "2–0", XGHome: 1.8, XGAway: 0.4},
			{Week: 1, Date: day, HomeTeam: "Chelsea", AwayTeam: "Fulham", Score: "1–1", XGHome: 1.1, XGAway: 0.9},
			{Week: 2, Date: day.AddDate(0, 0, 7), HomeTeam: "Wolves", AwayTeam: "Arsenal", Score: "0–3", XGHome: 0.6, XGAway: 2.2},
		},
	}

	svc := NewService(mock)
	if err := svc.RecomputeForDataset(context.Background(), datasetID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	if mock.replacedRatesDataset != datasetID {
		t.Fatalf("unexpected dataset for goal rates")
	}
	if len(mock.replacedRates) != 4 {
		t.Fatalf("expected 4 goal-rate rows, got %d", len(mock.replacedRates))
	}
	if mock.replacedRates[0].Team != "Arsenal" || mock.replacedRates[0].GoalsPerMatch != 2.5 {
		t.Fatalf("unexpected top goal rate: %+v", mock.replacedRates[0])
	}

	if mock.upsertedSummary.HomeWins != 1 || mock.upsertedSummary.AwayWins != 1 || mock.upsertedSummary.Draws != 1 {
		t.Fatalf("unexpected outcome summary: %+v", mock.upsertedSummary)
	}
	if mock.upsertedSummary.Total != 3 {
		t.Fatalf("expected total 3, got %d", mock.upsertedSummary.Total)
	}
	if mock.upsertedSummary.DrawPct != 33.3333 {
		t.Fatalf("expected rounded draw pct 33.3333, got %.4f", mock.upsertedSummary.DrawPct)
	}

	if len(mock.replacedXg) != 4 {
		t.Fatalf("expected 4 xG summary rows, got %d", len(mock.replacedXg))
	}
	if mock.replacedXg[0].Team != "Arsenal" || mock.replacedXg[0].MatchesPlayed != 2 {
		t.Fatalf("unexpected xG summary row: %+v", mock.replacedXg[0])
	}
	if mock.replacedXg[0].AvgXGFor != 2.0 {
		t.Fatalf("expected Arsenal avg xG 2.0, got %.4f", mock.replacedXg[0].AvgXGFor)
	}
}

func TestRecomputeForDatasetEmptyDataset(t *testing.T) {
	mock := &projectionStoreMock{}
	svc := NewService(mock)
	if err := svc.RecomputeForDataset(context.Background(), uuid.New()); err != nil {
		t.Fatalf("recompute on empty dataset failed: %v", err)
	}
	if mock.upsertedSummary != (stats.OutcomeSummary{}) {
		t.Fatalf("expected all-zero summary, got %+v", mock.upsertedSummary)
	}
	if len(mock.replacedRates) != 0 || len(mock.replacedXg) != 0 {
		t.Fatalf("expected empty derived rows")
	}
}
