package contracts

import (
	"context"
	"medicore-service/internal/pkg/dto/responses"
)

type DashboardUsecase interface {
	GetDashboard(ctx context.Context) (*responses.Dashboard, error)
}
