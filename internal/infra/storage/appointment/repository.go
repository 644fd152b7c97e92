package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"location_id",
	"technician_id",
	"start_time",
	"end_time",
	"status",
	"client_name",
	"client_phone",
	"service_name",
	"notes",
	"created_at",
	"updated_at",
}

// Filter параметры выборки записей. Возвращаются записи, пересекающиеся с окном [From, To)
type Filter struct {
	LocationID      *int64
	TechnicianIDs   []int64
	From            time.Time
	To              time.Time
	IncludeInactive bool // включать отменённые и неявки
}

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает запись по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до её завершения
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// List получает записи, пересекающиеся с окном фильтра, по возрастанию начала.
// Внутри транзакции при выборке по мастерам строки блокируются (FOR UPDATE),
// чтобы параллельный перенос не занял тот же интервал
func (r *Repository) List(ctx context.Context, filter Filter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Lt{"start_time": filter.To}).
		Where(squirrel.Gt{"end_time": filter.From})

	if filter.LocationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if len(filter.TechnicianIDs) > 0 {
		selectBuilder = selectBuilder.Where("technician_id = ANY(?)", pq.Array(filter.TechnicianIDs))
	}
	if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveAppointmentStatuses))
		for i, s := range domain.InactiveAppointmentStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) && len(filter.TechnicianIDs) > 0 {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// Reschedule переносит запись к мастеру на новое время
func (r *Repository) Reschedule(ctx context.Context, id, technicianID int64, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("technician_id", technicianID).
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row scanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var clientPhone, notes sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.LocationID,
		&a.TechnicianID,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.ClientName,
		&clientPhone,
		&a.ServiceName,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if clientPhone.Valid {
		a.ClientPhone = &clientPhone.String
	}
	if notes.Valid {
		a.Notes = &notes.String
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
