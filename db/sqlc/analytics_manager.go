package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

// EnsureServer creates the counters row for this server if it is missing.
// Every increment is an UPDATE, so this must run once on startup.
func (a *AnalyticsManager) EnsureServer(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsEnsureServer(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementMatchesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsIncrementMatchesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementMatchesRestartedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsIncrementMatchesRestartedCount(ctx, serverIpNet)
}

// IncrementWinsCount bumps the counter matching the winner of a match.
func (a *AnalyticsManager) IncrementWinsCount(ctx context.Context, serverIpNet pqtype.Inet, humanWon bool) error {
	if humanWon {
		return a.queries.AnalyticsIncrementHumanWinsCount(ctx, serverIpNet)
	}
	return a.queries.AnalyticsIncrementComputerWinsCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) ServerAnalytics(ctx context.Context, serverIpNet pqtype.Inet) (GameServerAnalytic, error) {
	return a.queries.AnalyticsGetServer(ctx, serverIpNet)
}
