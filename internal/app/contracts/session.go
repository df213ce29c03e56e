package contracts

import (
	"context"
	"medicore-service/internal/app/models"
)

type SessionService interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	RemoveSession(ctx context.Context, sessionID string) error
}
