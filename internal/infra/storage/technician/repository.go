package technician

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
	"name",
	"is_active",
	"display_order",
}

// Repository репозиторий мастеров и их рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастера вместе с расписанием
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Technician, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("technicians").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.Technician
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.LocationID,
		&t.Name,
		&t.IsActive,
		&t.DisplayOrder,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTechnicianNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan technician: %v", ErrScanRow, err)
	}

	schedules, err := r.schedules(ctx, []int64{t.ID})
	if err != nil {
		return nil, err
	}
	t.Schedule = schedules[t.ID]

	return &t, nil
}

// ListByLocation получает мастеров салона в порядке отображения
func (r *Repository) ListByLocation(ctx context.Context, locationID int64, includeInactive bool) ([]domain.Technician, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("technicians").
		Where(squirrel.Eq{"location_id": locationID})

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.OrderBy("display_order ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	technicians := make([]domain.Technician, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var t domain.Technician
		if err := rows.Scan(&t.ID, &t.LocationID, &t.Name, &t.IsActive, &t.DisplayOrder); err != nil {
			return nil, fmt.Errorf("%w: ListByLocation - scan technician: %v", ErrScanRow, err)
		}
		technicians = append(technicians, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return technicians, nil
	}

	schedules, err := r.schedules(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range technicians {
		technicians[i].Schedule = schedules[technicians[i].ID]
	}

	return technicians, nil
}

// schedules загружает рабочие часы мастеров одним запросом
func (r *Repository) schedules(ctx context.Context, technicianIDs []int64) (map[int64][]domain.WorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"technician_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_working",
	).
		From("technician_schedules").
		Where("technician_id = ANY(?)", pq.Array(technicianIDs)).
		OrderBy("technician_id ASC", "day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: schedules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: schedules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.WorkingDay, len(technicianIDs))
	for rows.Next() {
		var technicianID int64
		var dayOfWeek int
		var day domain.WorkingDay
		if err := rows.Scan(&technicianID, &dayOfWeek, &day.StartTime, &day.EndTime, &day.IsWorking); err != nil {
			return nil, fmt.Errorf("%w: schedules - scan schedule: %v", ErrScanRow, err)
		}
		day.DayOfWeek = time.Weekday(dayOfWeek)
		out[technicianID] = append(out[technicianID], day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: schedules - rows error: %v", ErrScanRow, err)
	}

	return out, nil
}
