package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lotwise/dealerd/internal/domain"
)

type AnalyticsRangeInput struct {
	From time.Time `query:"from" doc:"Window start, RFC 3339; defaults to the trailing six months"`
	To   time.Time `query:"to" doc:"Window end, RFC 3339; defaults to now"`
}

type FinancialMetricsOutput struct {
	Body *domain.FinancialMetrics
}

type RevenueOverTimeOutput struct {
	Body []domain.RevenuePoint
}

type InventoryTurnoverOutput struct {
	Body struct {
		AverageDaysToSell int `json:"average_days_to_sell"`
	}
}

func (in *AnalyticsRangeInput) dateRange() *domain.DateRange {
	if in.From.IsZero() && in.To.IsZero() {
		return nil
	}
	return &domain.DateRange{From: in.From, To: in.To}
}

func RegisterAnalyticsRoutes(api huma.API, analyticsSvc AnalyticsService) {
	huma.Register(api, huma.Operation{
		OperationID: "financial-metrics",
		Method:      http.MethodGet,
		Path:        "/analytics/financials",
		Summary:     "Revenue, expenses, COGS and net profit for a window",
		Tags:        []string{"Analytics"},
	}, func(ctx context.Context, input *AnalyticsRangeInput) (*FinancialMetricsOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		metrics, err := analyticsSvc.FinancialMetrics(ctx, id, input.dateRange())
		if err != nil {
			return nil, gateError(err)
		}

		return &FinancialMetricsOutput{Body: metrics}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "revenue-over-time",
		Method:      http.MethodGet,
		Path:        "/analytics/revenue-over-time",
		Summary:     "Monthly revenue buckets for a window",
		Tags:        []string{"Analytics"},
	}, func(ctx context.Context, input *AnalyticsRangeInput) (*RevenueOverTimeOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		points, err := analyticsSvc.RevenueOverTime(ctx, id, input.dateRange())
		if err != nil {
			return nil, gateError(err)
		}

		return &RevenueOverTimeOutput{Body: points}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "inventory-turnover",
		Method:      http.MethodGet,
		Path:        "/analytics/inventory-turnover",
		Summary:     "Average days from intake to sale",
		Tags:        []string{"Analytics"},
	}, func(ctx context.Context, _ *struct{}) (*InventoryTurnoverOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		days, err := analyticsSvc.InventoryTurnover(ctx, id)
		if err != nil {
			return nil, gateError(err)
		}

		out := &InventoryTurnoverOutput{}
		out.Body.AverageDaysToSell = days
		return out, nil
	})
}
