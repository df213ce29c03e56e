package contracts

import (
	"context"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.RegisterPatient, error)
	CreateStaffUser(ctx context.Context, request *requests.CreateStaffUser) (*responses.WhoAmI, error)
	LoginUser(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error)
	LogoutUser(ctx context.Context, sessionID string) error
	WhoAmI(ctx context.Context, sessionID string) (*responses.WhoAmI, error)
}
