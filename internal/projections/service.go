package projections

import (
	"context"

	"github.com/google/uuid"
	"github.com/pviana/matchview-api/internal/domain/matches"
	"github.com/pviana/matchview-api/internal/domain/stats"
)

type Store interface {
	ListMatchesByDataset(ctx context.Context, datasetID uuid.UUID) ([]matches.MatchRecord, error)
	ReplaceTeamGoalRates(ctx context.Context, datasetID uuid.UUID, rows []stats.TeamGoalRate) error
	UpsertOutcomeSummary(ctx context.Context, datasetID uuid.UUID, summary stats.OutcomeSummary) error
	ReplaceTeamXgSummaries(ctx context.Context, datasetID uuid.UUID, rows []stats.TeamXgSummary) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// RecomputeForDataset rebuilds every league-wide derived view for a dataset
// from scratch and replaces the stored copies. Team-parameterized views (xG
// series, points per game, week subsets) depend on request state and are
// computed at read time instead.
func (s *Service) RecomputeForDataset(ctx context.Context, datasetID uuid.UUID) error {
	items, err := s.store.ListMatchesByDataset(ctx, datasetID)
	if err != nil {
		return err
	}

	rates := stats.TeamGoalRates(items)
	for i := range rates {
		rates[i].GoalsPerMatch = stats.Round(rates[i].GoalsPerMatch)
	}
	if err := s.store.ReplaceTeamGoalRates(ctx, datasetID, rates); err != nil {
		return err
	}

	summary := stats.SummarizeOutcomes(items)
	summary.HomeWinPct = stats.Round(summary.HomeWinPct)
	summary.AwayWinPct = stats.Round(summary.AwayWinPct)
	summary.DrawPct = stats.Round(summary.DrawPct)
	if err := s.store.UpsertOutcomeSummary(ctx, datasetID, summary); err != nil {
		return err
	}

	xg := stats.TeamXgSummaries(items)
	for i := range xg {
		xg[i].AvgXGFor = stats.Round(xg[i].AvgXGFor)
		xg[i].AvgXGAgainst = stats.Round(xg[i].AvgXGAgainst)
		xg[i].AvgGoalsFor = stats.Round(xg[i].AvgGoalsFor)
		xg[i].AvgGoalsAgainst = stats.Round(xg[i].AvgGoalsAgainst)
		xg[i].GoalDifferential = stats.Round(xg[i].GoalDifferential)
	}
	return s.store.ReplaceTeamXgSummaries(ctx, datasetID, xg)
}
