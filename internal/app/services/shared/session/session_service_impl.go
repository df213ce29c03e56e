package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medicore-service/internal/app/config"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

var (
	sessionServiceInstance contracts.SessionService
	onceSessionService     sync.Once
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
}

func NewSessionService(redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig) contracts.SessionService {
	onceSessionService.Do(func() {
		instance := &sessionService{
			RedisRepository: redisRepository,
			InternalConfig:  internalConfig,
		}
		sessionServiceInstance = instance
	})
	return sessionServiceInstance
}

func (svc *sessionService) CreateSession(ctx context.Context, sessionModel *models.Session) error {
	key := fmt.Sprintf(constvars.RedisSessionKeyFormat, sessionModel.SessionID)
	ttl := time.Duration(svc.InternalConfig.Session.TTLInHour) * time.Hour
	return svc.RedisRepository.Set(ctx, key, sessionModel, ttl)
}

func (svc *sessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	key := fmt.Sprintf(constvars.RedisSessionKeyFormat, sessionID)
	sessionData, err := svc.RedisRepository.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if sessionData == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	sessionModel := new(models.Session)
	err = json.Unmarshal([]byte(sessionData), sessionModel)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return sessionModel, nil
}

func (svc *sessionService) RemoveSession(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(constvars.RedisSessionKeyFormat, sessionID)
	return svc.RedisRepository.Delete(ctx, key)
}
