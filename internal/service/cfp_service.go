package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cfptracker/internal/cache"
	apperrors "cfptracker/internal/errors"
	"cfptracker/internal/model"
	"cfptracker/internal/repository"
)

const cfpCacheTTL = 5 * time.Minute

// CFPService exposes CFP domain operations.
type CFPService interface {
	CreateCFP(ctx context.Context, cfp *model.CFP, createdByID uint) (*model.CFP, error)
	GetCFP(ctx context.Context, id uint) (*model.CFP, error)
	ListCFPs(ctx context.Context, filter repository.CFPFilter) ([]model.CFP, error)
	CountCFPs(ctx context.Context, filter repository.CFPFilter) (int64, error)
}

type cfpService struct {
	repo  repository.CFPRepository
	cache *cache.Client
}

// NewCFPService builds a CFPService with repository and cache.
func NewCFPService(repo repository.CFPRepository, cache *cache.Client) CFPService {
	return &cfpService{repo: repo, cache: cache}
}

func (s *cfpService) cacheKey(id uint) string {
	return fmt.Sprintf("cfp:%d", id)
}

// CreateCFP persists a new CFP owned by the given user. A closing date after
// the event date is rejected before the store is touched.
func (s *cfpService) CreateCFP(ctx context.Context, cfp *model.CFP, createdByID uint) (*model.CFP, error) {
	if cfp.ClosingDate.After(cfp.EventDate) {
		return nil, apperrors.ErrClosingAfterEvent
	}

	cfp.CreatedByID = createdByID
	if err := s.repo.Create(ctx, cfp); err != nil {
		return nil, fmt.Errorf("create cfp: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(cfp.ID))
	return cfp, nil
}

// GetCFP looks a CFP up by id, consulting the cache first. Absence maps to
// ErrCFPNotFound.
func (s *cfpService) GetCFP(ctx context.Context, id uint) (*model.CFP, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.CFP
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	cfp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCFPNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(cfp); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, cfpCacheTTL)
	}
	return cfp, nil
}

func (s *cfpService) ListCFPs(ctx context.Context, filter repository.CFPFilter) ([]model.CFP, error) {
	return s.repo.List(ctx, filter)
}

func (s *cfpService) CountCFPs(ctx context.Context, filter repository.CFPFilter) (int64, error) {
	return s.repo.Count(ctx, filter)
}
