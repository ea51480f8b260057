package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	equipmentTable  = "equipments"
	equipmentFields = "id, area, equipment_type, device_name, brand, model, serial_number, maintenance_type, " +
		"maintenance_date, equipment_status, notes, responsible_technician, created_by, created_at, updated_at, updated_by"
)

type EquipmentRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.Equipment, error)
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error)
	Create(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) (*entities.Equipment, error)
	Update(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) (*entities.Equipment, error)
	Delete(ctx context.Context, tx pgx.Tx, id string) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	psql    sq.StatementBuilderType
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		storage: storage,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *EquipmentRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var updatedAt *time.Time
	var updatedBy *string

	err := row.Scan(
		&e.ID, &e.Area, &e.EquipmentType, &e.DeviceName, &e.Brand, &e.Model, &e.SerialNumber,
		&e.MaintenanceType, &e.MaintenanceDate, &e.EquipmentStatus, &e.Notes,
		&e.ResponsibleTechnician, &e.CreatedBy, &e.CreatedAt, &updatedAt, &updatedBy,
	)
	if err != nil {
		return nil, err
	}
	e.UpdatedAt = null.TimeFromPtr(updatedAt)
	e.UpdatedBy = null.StringFromPtr(updatedBy)
	return &e, nil
}

// GetAll возвращает все записи, новые первыми.
func (r *EquipmentRepository) GetAll(ctx context.Context) ([]entities.Equipment, error) {
	query, args, err := r.psql.Select(equipmentFields).
		From(equipmentTable).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса списка оборудования: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса списка оборудования: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования оборудования: %w", err)
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по оборудованию: %w", err)
	}
	return list, nil
}

// FindByID внутри транзакции блокирует строку до её завершения.
func (r *EquipmentRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error) {
	builder := r.psql.Select(equipmentFields).From(equipmentTable).Where(sq.Eq{"id": id})
	if tx != nil {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса оборудования: %w", err)
	}

	e, err := scanEquipment(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска оборудования: %w", err)
	}
	return e, nil
}

func (r *EquipmentRepository) Create(ctx context.Context, tx pgx.Tx, e entities.Equipment) (*entities.Equipment, error) {
	query, args, err := r.psql.Insert(equipmentTable).
		Columns("id", "area", "equipment_type", "device_name", "brand", "model", "serial_number",
			"maintenance_type", "maintenance_date", "equipment_status", "notes",
			"responsible_technician", "created_by", "created_at").
		Values(e.ID, e.Area, string(e.EquipmentType), e.DeviceName, e.Brand, e.Model, e.SerialNumber,
			string(e.MaintenanceType), e.MaintenanceDate, string(e.EquipmentStatus), e.Notes,
			e.ResponsibleTechnician, e.CreatedBy, e.CreatedAt).
		Suffix("RETURNING " + equipmentFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса создания оборудования: %w", err)
	}

	created, err := scanEquipment(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания оборудования: %w", err)
	}
	return created, nil
}

// Update перезаписывает все изменяемые поля записи. Поля created_* и responsible_technician не трогаются.
func (r *EquipmentRepository) Update(ctx context.Context, tx pgx.Tx, e entities.Equipment) (*entities.Equipment, error) {
	query, args, err := r.psql.Update(equipmentTable).
		SetMap(map[string]interface{}{
			"area":             e.Area,
			"equipment_type":   string(e.EquipmentType),
			"device_name":      e.DeviceName,
			"brand":            e.Brand,
			"model":            e.Model,
			"serial_number":    e.SerialNumber,
			"maintenance_type": string(e.MaintenanceType),
			"maintenance_date": e.MaintenanceDate,
			"equipment_status": string(e.EquipmentStatus),
			"notes":            e.Notes,
			"updated_at":       e.UpdatedAt.Ptr(),
			"updated_by":       e.UpdatedBy.Ptr(),
		}).
		Where(sq.Eq{"id": e.ID}).
		Suffix("RETURNING " + equipmentFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса обновления оборудования: %w", err)
	}

	updated, err := scanEquipment(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка обновления оборудования: %w", err)
	}
	return updated, nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	query, args, err := r.psql.Delete(equipmentTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса удаления оборудования: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("ошибка удаления оборудования: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// isInvalidID - id не является корректным uuid, такой записи быть не может.
func isInvalidID(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgInvalidTextForType
}
