package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	"github.com/m04kA/TMS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/TMS-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/TMS-SchedulingService/pkg/types"
)

var appointmentColumns = []string{
	"id",
	"slot_id",
	"customer_id",
	"status",
	"customer_name",
	"customer_phone",
	"order_id",
	"notes",
	"created_at",
	"updated_at",
}

// entryColumns колонки для выборки записи вместе с её слотом
var entryColumns = []string{
	"a.id",
	"a.slot_id",
	"a.customer_id",
	"a.status",
	"a.customer_name",
	"a.customer_phone",
	"a.order_id",
	"a.notes",
	"a.created_at",
	"a.updated_at",
	"s.tailor_id",
	"s.slot_date",
	"s.start_time",
	"s.end_time",
	"s.slot_type",
	"s.capacity",
	"s.manually_blocked",
	"s.status",
}

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Проверка вместимости слота выполняется в usecase внутри serializable-транзакции
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"slot_id",
			"customer_id",
			"status",
			"customer_name",
			"customer_phone",
			"order_id",
			"notes",
		).
		Values(
			appt.SlotID,
			appt.CustomerID,
			appt.Status,
			appt.CustomerName,
			appt.CustomerPhone,
			appt.OrderID,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется через FOR UPDATE
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var appt domain.Appointment
	if err := scanAppointment(executor.QueryRowContext(ctx, query, args...), &appt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return &appt, nil
}

// CountActiveBySlot подсчитывает активные записи слота (pending, confirmed)
// Именно это число сравнивается с вместимостью при бронировании и пересчёте статуса
func (r *Repository) CountActiveBySlot(ctx context.Context, slotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveAppointmentStatuses))
	for i, s := range domain.ActiveAppointmentStatuses {
		activeStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetEntryByID получает запись вместе с её слотом
func (r *Repository) GetEntryByID(ctx context.Context, id int64) (*domain.ScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("appointments a").
		Join("working_slots s ON s.id = a.slot_id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEntryByID - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.ScheduleEntry
	if err := scanEntry(executor.QueryRowContext(ctx, query, args...), &entry); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: GetEntryByID - scan entry: %v", ErrScanRow, err)
	}

	return &entry, nil
}

// ListWithFilter получает записи вместе с их слотами с гибкой фильтрацией
// Поддерживает фильтры по мастеру, периоду, типу слота, статусу записи
// и регистронезависимый поиск по клиенту/телефону/номеру записи
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.ScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("appointments a").
		Join("working_slots s ON s.id = a.slot_id")

	if filter.TailorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.tailor_id": *filter.TailorID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"s.slot_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"s.slot_date": *filter.EndDate})
	}
	if filter.SlotType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.slot_type": *filter.SlotType})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": *filter.Status})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"a.customer_name": pattern},
			squirrel.ILike{"a.customer_phone": pattern},
			squirrel.Expr("CAST(a.customer_id AS TEXT) ILIKE ?", pattern),
			squirrel.Expr("CAST(a.id AS TEXT) ILIKE ?", pattern),
		})
	}

	selectBuilder = selectBuilder.OrderBy("s.slot_date ASC, s.start_time ASC, a.id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// UpdateStatus обновляет статус записи
// Корректность перехода проверяет usecase по графу статусов
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
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
		return ErrAppointmentNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner, appt *domain.Appointment) error {
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.SlotID,
		&appt.CustomerID,
		&appt.Status,
		&appt.CustomerName,
		&appt.CustomerPhone,
		&appt.OrderID,
		&appt.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time
	return nil
}

func scanEntry(row rowScanner, entry *domain.ScheduleEntry) error {
	var createdAt, updatedAt sql.NullTime
	var startTime, endTime types.TimeString

	err := row.Scan(
		&entry.Appointment.ID,
		&entry.Appointment.SlotID,
		&entry.Appointment.CustomerID,
		&entry.Appointment.Status,
		&entry.Appointment.CustomerName,
		&entry.Appointment.CustomerPhone,
		&entry.Appointment.OrderID,
		&entry.Appointment.Notes,
		&createdAt,
		&updatedAt,
		&entry.Slot.TailorID,
		&entry.Slot.Date,
		&startTime,
		&endTime,
		&entry.Slot.Type,
		&entry.Slot.Capacity,
		&entry.Slot.ManuallyBlocked,
		&entry.Slot.Status,
	)
	if err != nil {
		return err
	}

	entry.Slot.ID = entry.Appointment.SlotID
	entry.Slot.StartTime = startTime
	entry.Slot.EndTime = endTime
	entry.Appointment.CreatedAt = createdAt.Time
	entry.Appointment.UpdatedAt = updatedAt.Time
	return nil
}

// scanEntries сканирует результаты запроса в слайс записей со слотами
func scanEntries(rows *sql.Rows) ([]*domain.ScheduleEntry, error) {
	entries := make([]*domain.ScheduleEntry, 0)

	for rows.Next() {
		var entry domain.ScheduleEntry
		if err := scanEntry(rows, &entry); err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
