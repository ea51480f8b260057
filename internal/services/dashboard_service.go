package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/types"
)

type DashboardServiceInterface interface {
	GetDashboardStats(ctx context.Context, caller authz.Caller) (*dto.DashboardStatsDTO, error)
}

type DashboardService struct {
	repo   repositories.DashboardRepositoryInterface
	logger *zap.Logger
}

func NewDashboardService(repo repositories.DashboardRepositoryInterface, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: logger}
}

func (s *DashboardService) GetDashboardStats(ctx context.Context, caller authz.Caller) (*dto.DashboardStatsDTO, error) {
	if err := authz.Require(caller, authz.DashboardView); err != nil {
		return nil, err
	}

	var (
		wg          sync.WaitGroup
		total       int
		byType      []types.DashboardCountByGroup
		byStatus    []types.DashboardCountByGroup
		byMaintType []types.DashboardCountByGroup
		recent      []entities.Equipment

		errs []error
		mu   sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	// Запускаем параллельные запросы
	addTask(func() (err error) { total, err = s.repo.GetTotal(ctx); return })
	addTask(func() (err error) { byType, err = s.repo.GetCountByColumn(ctx, "equipment_type"); return })
	addTask(func() (err error) { byStatus, err = s.repo.GetCountByColumn(ctx, "equipment_status"); return })
	addTask(func() (err error) { byMaintType, err = s.repo.GetCountByColumn(ctx, "maintenance_type"); return })
	addTask(func() (err error) { recent, err = s.repo.GetRecent(ctx, constants.DashboardRecentLimit); return })

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("Ошибка загрузки дашборда", zap.Error(errs[0]))
		return nil, errs[0]
	}

	stats := &dto.DashboardStatsDTO{
		TotalEquipments:    total,
		EquipmentsByType:   types.CountsToMap(byType),
		EquipmentsByStatus: types.CountsToMap(byStatus),
		MaintenanceByType:  types.CountsToMap(byMaintType),
		RecentMaintenances: make([]dto.RecentMaintenanceDTO, 0, len(recent)),
	}
	for _, e := range recent {
		stats.RecentMaintenances = append(stats.RecentMaintenances, dto.RecentMaintenanceDTO{
			ID:                    e.ID,
			EquipmentType:         string(e.EquipmentType),
			Brand:                 e.Brand,
			Model:                 e.Model,
			MaintenanceType:       string(e.MaintenanceType),
			MaintenanceDate:       formatTimestamp(e.MaintenanceDate),
			ResponsibleTechnician: e.ResponsibleTechnician,
		})
	}
	return stats, nil
}
