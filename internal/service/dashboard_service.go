package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second
)

type DashboardService struct {
	clients    *repository.ClientRepo
	projects   *repository.ProjectRepo
	tasks      *repository.TaskRepo
	checklists *repository.ChecklistRepo
	documents  *repository.DocumentRepo
	rdb        *redis.Client
	logger     *zap.Logger
}

func NewDashboardService(
	clients *repository.ClientRepo,
	projects *repository.ProjectRepo,
	tasks *repository.TaskRepo,
	checklists *repository.ChecklistRepo,
	documents *repository.DocumentRepo,
	rdb *redis.Client,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		clients:    clients,
		projects:   projects,
		tasks:      tasks,
		checklists: checklists,
		documents:  documents,
		rdb:        rdb,
		logger:     logger,
	}
}

type DashboardStats struct {
	ActiveClients   int                     `json:"activeClients"`
	ProjectsByState map[string]int          `json:"projectsByState"`
	OpenTasks       int                     `json:"openTasks"`
	OverdueTasks    int                     `json:"overdueTasks"`
	ItemsByStatus   map[string]int          `json:"itemsByStatus"`
	RecentUploads   []models.ClientDocument `json:"recentUploads"`
	GeneratedAt     time.Time               `json:"generatedAt"`
}

// Stats aggregates the dashboard counters, serving a short-lived Redis
// cache first. Cache errors fall through to the database.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
		var stats DashboardStats
		if json.Unmarshal(cached, &stats) == nil {
			return &stats, nil
		}
	}

	stats := &DashboardStats{GeneratedAt: time.Now().UTC()}
	var err error

	if stats.ActiveClients, err = s.clients.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.ProjectsByState, err = s.projects.CountByState(ctx); err != nil {
		return nil, err
	}
	if stats.OpenTasks, stats.OverdueTasks, err = s.tasks.CountOpen(ctx); err != nil {
		return nil, err
	}
	if stats.ItemsByStatus, err = s.checklists.StatusCounts(ctx); err != nil {
		return nil, err
	}
	if stats.RecentUploads, err = s.documents.Recent(ctx, 10); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.rdb.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL).Err(); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}
