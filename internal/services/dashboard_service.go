package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/edusync-app/school-service/internal/cache"
	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
)

const dashboardCountsKey = "counts"

type dashboardService struct {
	repo   repositories.Repository
	db     *gorm.DB
	cache  *cache.CacheManager
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, db *gorm.DB, cacheManager *cache.CacheManager, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		db:     db,
		cache:  cacheManager,
		logger: logger,
	}
}

// GetCounts returns the entity counts shown on the landing dashboard,
// cached for a few minutes because every role's home page requests them.
func (s *dashboardService) GetCounts(ctx context.Context) (*models.DashboardCounts, error) {
	if s.cache != nil {
		var cached models.DashboardCounts
		err := s.cache.Dashboard.Get(ctx, dashboardCountsKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheNotAvailable) {
			s.logger.Warn("dashboard cache read failed", "error", err)
		}
	}

	counts := &models.DashboardCounts{}
	tables := []struct {
		model any
		dest  *int64
	}{
		{&models.Student{}, &counts.Students},
		{&models.Teacher{}, &counts.Teachers},
		{&models.Class{}, &counts.Classes},
		{&models.Course{}, &counts.Courses},
		{&models.Assignment{}, &counts.Assignments},
		{&models.Notification{}, &counts.Notifications},
		{&models.CalendarEvent{}, &counts.Events},
	}
	for _, t := range tables {
		if err := s.db.WithContext(ctx).Model(t.model).Count(t.dest).Error; err != nil {
			return nil, fmt.Errorf("count %T: %w", t.model, err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Dashboard.Set(ctx, dashboardCountsKey, counts, cache.DashboardCacheConfig.TTL); err != nil &&
			!errors.Is(err, cache.ErrCacheNotAvailable) {
			s.logger.Warn("dashboard cache write failed", "error", err)
		}
	}

	return counts, nil
}
