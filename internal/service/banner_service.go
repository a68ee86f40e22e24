package service

import (
	"context"
	"fmt"
	"time"

	"github.com/medinova/medinova-api/internal/domain"
	"github.com/medinova/medinova-api/internal/repository"
	"github.com/medinova/medinova-api/pkg/events"
	"github.com/medinova/medinova-api/pkg/logger"
)

type BannerService interface {
	ListActive(ctx context.Context) ([]domain.Banner, error)
	List(ctx context.Context) ([]domain.Banner, error)
	Create(ctx context.Context, req *domain.CreateBannerRequest) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	// Activate makes the target banner the only active one. Returns the
	// matched count for the target id (0 when it does not exist).
	Activate(ctx context.Context, id int64) (int64, error)
}

type bannerService struct {
	banners repository.BannerRepository
	bus     events.Publisher
}

func NewBannerService(banners repository.BannerRepository, bus events.Publisher) BannerService {
	return &bannerService{banners: banners, bus: bus}
}

func (s *bannerService) ListActive(ctx context.Context) ([]domain.Banner, error) {
	return s.banners.ListActive(ctx)
}

func (s *bannerService) List(ctx context.Context) ([]domain.Banner, error) {
	return s.banners.List(ctx)
}

func (s *bannerService) Create(ctx context.Context, req *domain.CreateBannerRequest) (int64, error) {
	id, err := s.banners.Create(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create banner: %w", err)
	}
	return id, nil
}

func (s *bannerService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.banners.Delete(ctx, id)
}

func (s *bannerService) Activate(ctx context.Context, id int64) (int64, error) {
	matched, err := s.banners.Activate(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to activate banner: %w", err)
	}

	if matched > 0 {
		event := events.BannerActivatedEvent{
			BannerID:    id,
			ActivatedAt: time.Now(),
		}
		if err := s.bus.Publish(ctx, events.BannerActivated, event); err != nil {
			logger.ErrorContext(ctx, "Failed to publish banner activated event", "error", err, "banner_id", id)
		}
	}

	return matched, nil
}
