package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

const table = "availability"

// Время хранится в колонках TIME, наружу отдаётся в формате "H:MM"
const (
	startTimeColumn = "to_char(start_time, 'FMHH24:MI')"
	endTimeColumn   = "to_char(end_time, 'FMHH24:MI')"
)

// Repository репозиторий окон доступности мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Fetch возвращает окна за период [From, To] с опциональным фильтром по мастерам
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) Fetch(ctx context.Context, filter domain.AvailabilityFilter) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFetchQuery(filter, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: Fetch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Fetch - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.StaffID, &w.Date, &w.StartTime, &w.EndTime, &w.IsAvailable); err != nil {
			return nil, fmt.Errorf("%w: Fetch - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Fetch - rows iteration: %v", ErrScanRow, err)
	}

	return windows, nil
}

// Replace удаляет все окна (staffID, date) и вставляет новые
// Атомарность обеспечивает транзакция из контекста; без неё это два независимых запроса
func (r *Repository) Replace(ctx context.Context, staffID int64, date time.Time, windows []domain.WindowSpec) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := buildDeleteQuery(staffID, date)
	if err != nil {
		return fmt.Errorf("%w: Replace - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: Replace - execute delete: %v", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return nil
	}

	insertQuery, insertArgs, err := buildInsertQuery(staffID, date, windows)
	if err != nil {
		return err
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: Replace - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func buildFetchQuery(filter domain.AvailabilityFilter, forUpdate bool) (string, []interface{}, error) {
	builder := psqlbuilder.Select(
		"id",
		"staff_id",
		"available_date",
		startTimeColumn,
		endTimeColumn,
		"is_available",
	).
		From(table).
		Where(squirrel.GtOrEq{"available_date": filter.From.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"available_date": filter.To.Format(domain.DateFormat)}).
		OrderBy("staff_id ASC", "available_date ASC", "start_time ASC")

	if len(filter.StaffIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"staff_id": filter.StaffIDs})
	}
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder.ToSql()
}

func buildDeleteQuery(staffID int64, date time.Time) (string, []interface{}, error) {
	return psqlbuilder.Delete(table).
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"available_date": date.Format(domain.DateFormat)}).
		ToSql()
}

func buildInsertQuery(staffID int64, date time.Time, windows []domain.WindowSpec) (string, []interface{}, error) {
	builder := psqlbuilder.Insert(table).
		Columns("staff_id", "available_date", "start_time", "end_time", "is_available")

	day := date.Format(domain.DateFormat)
	for _, w := range windows {
		start, err := timegrid.ToMinutes(w.StartTime)
		if err != nil {
			return "", nil, fmt.Errorf("%w: start %q: %v", ErrInvalidWindow, w.StartTime, err)
		}
		end, err := timegrid.ToMinutes(w.EndTime)
		if err != nil {
			return "", nil, fmt.Errorf("%w: end %q: %v", ErrInvalidWindow, w.EndTime, err)
		}
		if end <= start {
			return "", nil, fmt.Errorf("%w: %s-%s", ErrInvalidWindow, w.StartTime, w.EndTime)
		}
		builder = builder.Values(staffID, day, w.StartTime, w.EndTime, w.IsAvailable)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: Replace - build insert query: %v", ErrBuildQuery, err)
	}
	return query, args, nil
}
