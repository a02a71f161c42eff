package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	"github.com/m04kA/TMS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/TMS-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/TMS-SchedulingService/pkg/types"
)

var slotColumns = []string{
	"id",
	"tailor_id",
	"slot_date",
	"start_time",
	"end_time",
	"break_start",
	"break_end",
	"slot_type",
	"capacity",
	"manually_blocked",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с рабочими слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
// Проверка пересечений выполняется в usecase внутри serializable-транзакции,
// сюда слот приходит уже провалидированным
func (r *Repository) Create(ctx context.Context, slot *domain.WorkingSlot) (*domain.WorkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_slots").
		Columns(
			"tailor_id",
			"slot_date",
			"start_time",
			"end_time",
			"break_start",
			"break_end",
			"slot_type",
			"capacity",
			"manually_blocked",
			"status",
		).
		Values(
			slot.TailorID,
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.BreakStart,
			slot.BreakEnd,
			slot.Type,
			slot.Capacity,
			slot.ManuallyBlocked,
			slot.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется через FOR UPDATE - это ключ сериализации
// для бронирования и смены статуса
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WorkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("working_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.WorkingSlot
	if err := scanSlot(executor.QueryRowContext(ctx, query, args...), &slot); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return &slot, nil
}

// GetByTailorAndDate получает все слоты мастера на дату
// Используется проверкой пересечений при создании слота; внутри транзакции
// строки блокируются через FOR UPDATE, чтобы два конкурентных создания
// пересекающихся слотов не прошли одновременно
func (r *Repository) GetByTailorAndDate(ctx context.Context, tailorID int64, date time.Time) ([]*domain.WorkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("working_slots").
		Where(squirrel.Eq{"tailor_id": tailorID}).
		Where(squirrel.Eq{"slot_date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTailorAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTailorAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListWithFilter получает слоты с гибкой фильтрацией
// Поддерживает фильтры по мастеру, периоду, типу и статусу; все опциональны
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.WorkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("working_slots")

	if filter.TailorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"tailor_id": *filter.TailorID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": *filter.EndDate})
	}
	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_type": *filter.Type})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("slot_date ASC, start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// UpdateStatus обновляет выведенный статус и флаг ручной блокировки слота
// Вызывается только изнутри мутирующих операций после пересчёта статуса
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus, manuallyBlocked bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("working_slots").
		Set("status", status).
		Set("manually_blocked", manuallyBlocked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner, slot *domain.WorkingSlot) error {
	var createdAt, updatedAt sql.NullTime
	var breakStart, breakEnd sql.NullString

	err := row.Scan(
		&slot.ID,
		&slot.TailorID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&breakStart,
		&breakEnd,
		&slot.Type,
		&slot.Capacity,
		&slot.ManuallyBlocked,
		&slot.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return err
	}

	slot.BreakStart, err = nullableTimeString(breakStart)
	if err != nil {
		return err
	}
	slot.BreakEnd, err = nullableTimeString(breakEnd)
	if err != nil {
		return err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time
	return nil
}

// nullableTimeString конвертирует nullable TIME-колонку в *types.TimeString
func nullableTimeString(v sql.NullString) (*types.TimeString, error) {
	if !v.Valid {
		return nil, nil
	}
	var ts types.TimeString
	if err := ts.Scan(v.String); err != nil {
		return nil, err
	}
	return &ts, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.WorkingSlot, error) {
	slots := make([]*domain.WorkingSlot, 0)

	for rows.Next() {
		var slot domain.WorkingSlot
		if err := scanSlot(rows, &slot); err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
