package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"maintenance-system/internal/entities"
	"maintenance-system/pkg/types"
)

type DashboardRepositoryInterface interface {
	GetTotal(ctx context.Context) (int, error)
	GetCountByColumn(ctx context.Context, column string) ([]types.DashboardCountByGroup, error)
	GetRecent(ctx context.Context, limit uint64) ([]entities.Equipment, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

// Колонки, по которым разрешена группировка.
var dashboardGroupColumns = map[string]bool{
	"equipment_type":   true,
	"equipment_status": true,
	"maintenance_type": true,
}

func (r *DashboardRepository) GetTotal(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From(equipmentTable).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, err
	}
	var total int
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта оборудования: %w", err)
	}
	return total, nil
}

func (r *DashboardRepository) GetCountByColumn(ctx context.Context, column string) ([]types.DashboardCountByGroup, error) {
	if !dashboardGroupColumns[column] {
		return nil, fmt.Errorf("группировка по колонке '%s' не поддерживается", column)
	}

	query, args, err := sq.Select(column, "COUNT(*)").
		From(equipmentTable).
		GroupBy(column).
		OrderBy(column).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка группировки по %s: %w", column, err)
	}
	defer rows.Close()

	result := make([]types.DashboardCountByGroup, 0)
	for rows.Next() {
		var item types.DashboardCountByGroup
		if err := rows.Scan(&item.Key, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *DashboardRepository) GetRecent(ctx context.Context, limit uint64) ([]entities.Equipment, error) {
	query, args, err := sq.Select(equipmentFields).
		From(equipmentTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки последних обслуживаний: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Equipment, 0, limit)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}
