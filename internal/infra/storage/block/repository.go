package block

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
	"technician_id",
	"title",
	"block_type",
	"start_time",
	"end_time",
	"is_active",
	"recurrence_rule",
	"created_at",
	"updated_at",
}

// Filter параметры выборки блоков.
// Повторяющиеся блоки возвращаются, если первое вхождение началось до конца окна:
// вхождения разворачиваются уровнем выше
type Filter struct {
	TechnicianIDs []int64
	From          time.Time
	To            time.Time
}

// Repository репозиторий для работы с блоками личного времени мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блоков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый блок
func (r *Repository) Create(ctx context.Context, b *domain.TechnicianBlock) (*domain.TechnicianBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("technician_blocks").
		Columns(
			"technician_id",
			"title",
			"block_type",
			"start_time",
			"end_time",
			"is_active",
			"recurrence_rule",
		).
		Values(
			b.TechnicianID,
			b.Title,
			b.BlockType,
			b.StartTime,
			b.EndTime,
			b.IsActive,
			b.RecurrenceRule,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает блок по ID. Внутри транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TechnicianBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("technician_blocks").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	return b, nil
}

// List получает активные блоки мастеров для окна фильтра
func (r *Repository) List(ctx context.Context, filter Filter) ([]*domain.TechnicianBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("technician_blocks").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Lt{"start_time": filter.To}).
		Where(squirrel.Or{
			squirrel.Gt{"end_time": filter.From},
			squirrel.NotEq{"recurrence_rule": nil},
		})

	if len(filter.TechnicianIDs) > 0 {
		selectBuilder = selectBuilder.Where("technician_id = ANY(?)", pq.Array(filter.TechnicianIDs))
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.TechnicianBlock, 0)
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan block: %v", ErrScanRow, err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// Reschedule переносит блок к мастеру на новое время
func (r *Repository) Reschedule(ctx context.Context, id, technicianID int64, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("technician_blocks").
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
		return ErrBlockNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row scanner) (*domain.TechnicianBlock, error) {
	var b domain.TechnicianBlock
	var rule sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.TechnicianID,
		&b.Title,
		&b.BlockType,
		&b.StartTime,
		&b.EndTime,
		&b.IsActive,
		&rule,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rule.Valid && rule.String != "" {
		b.RecurrenceRule = &rule.String
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
