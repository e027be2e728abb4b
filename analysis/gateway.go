package analysis

import (
	"context"

	"wow_check/wcl"
)

// Gateway is the slice of the query client the analysis needs.
// *wcl.Client satisfies it; tests substitute fixture gateways.
type Gateway interface {
	ReportFights(ctx context.Context, vars wcl.ReportFightsVars) (*wcl.ReportFightsResponse, error)
	ReportRoster(ctx context.Context, vars wcl.ReportRosterVars) (*wcl.ReportRosterResponse, error)
	ReportEvents(ctx context.Context, vars wcl.ReportEventsVars) (*wcl.ReportEventsResponse, error)
	ReportTable(ctx context.Context, vars wcl.ReportTableVars) (*wcl.ReportTableResponse, error)
	ReportActors(ctx context.Context, vars wcl.ReportActorsVars) (*wcl.ReportActorsResponse, error)
}
