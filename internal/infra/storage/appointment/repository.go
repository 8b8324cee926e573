package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"customer_id",
	"staff_id",
	"appointment_date",
	"to_char(start_time, 'FMHH24:MI')",
	"to_char(end_time, 'FMHH24:MI')",
	"status",
	"total_amount",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись и строки customer_services для каждой услуги
// Если в контексте есть транзакция, обе вставки выполняются в ней.
// Без транзакции сбой второй вставки оставит запись без услуг.
func (r *Repository) Create(ctx context.Context, payload *domain.AppointmentCreatePayload) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !payload.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, payload.Status)
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"customer_id",
			"staff_id",
			"appointment_date",
			"start_time",
			"end_time",
			"status",
			"total_amount",
		).
		Values(
			payload.CustomerID,
			payload.StaffID,
			payload.Date.Format(domain.DateFormat),
			payload.StartTime,
			payload.EndTime,
			payload.Status,
			payload.TotalPrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	appt := &domain.Appointment{
		CustomerID:  payload.CustomerID,
		StaffID:     payload.StaffID,
		Date:        payload.Date,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		Status:      payload.Status,
		TotalAmount: payload.TotalPrice,
		Services:    append([]domain.ServiceLine(nil), payload.ServiceLines...),
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&appt.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	if len(payload.ServiceLines) == 0 {
		return appt, nil
	}

	linesQuery, linesArgs, err := buildServiceLinesInsert(appt.ID, payload.CustomerID, payload.ServiceLines)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build customer_services insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, linesQuery, linesArgs...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute customer_services insert: %v", ErrExecQuery, err)
	}

	return appt, nil
}

// GetByID получает запись с услугами по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - execute select: %v", ErrExecQuery, err)
	}

	lines, err := r.loadServiceLines(ctx, []int64{appt.ID})
	if err != nil {
		return nil, err
	}
	appt.Services = lines[appt.ID]

	return appt, nil
}

// ListByStaffAndDate записи мастера на дату, отсортированные по времени начала
// Внутри транзакции строки блокируются (FOR UPDATE) для проверки пересечений
func (r *Repository) ListByStaffAndDate(ctx context.Context, staffID int64, date time.Time, includeInactive bool) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"appointment_date": date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC", "id ASC")

	if !includeInactive {
		inactive := make([]string, 0, len(domain.InactiveStatuses))
		for _, s := range domain.InactiveStatuses {
			inactive = append(inactive, string(s))
		}
		builder = builder.Where(squirrel.NotEq{"status": inactive})
	}

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaffAndDate - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByStaffAndDate - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
		ids = append(ids, appt.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStaffAndDate - rows iteration: %v", ErrScanRow, err)
	}

	lines, err := r.loadServiceLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, appt := range appointments {
		appt.Services = lines[appt.ID]
	}

	return appointments, nil
}

// UpdateStatus переводит запись из статуса from в статус to
// Если статус уже изменён параллельной транзакцией, строка не обновляется и возвращается ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !to.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	query, args, err := buildStatusUpdate(id, from, to)
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
		return fmt.Errorf("%w: id=%d, expected status %s", ErrStatusChanged, id, from)
	}

	return nil
}

func buildStatusUpdate(id int64, from, to domain.AppointmentStatus) (string, []interface{}, error) {
	return psqlbuilder.Update("appointments").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(from)}).
		ToSql()
}

func (r *Repository) loadServiceLines(ctx context.Context, appointmentIDs []int64) (map[int64][]domain.ServiceLine, error) {
	result := make(map[int64][]domain.ServiceLine, len(appointmentIDs))
	if len(appointmentIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("appointment_id", "service_id", "service_name", "price", "duration_minutes").
		From("customer_services").
		Where(squirrel.Eq{"appointment_id": appointmentIDs}).
		OrderBy("appointment_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadServiceLines - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadServiceLines - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			appointmentID int64
			line          domain.ServiceLine
		)
		if err := rows.Scan(&appointmentID, &line.ServiceID, &line.Name, &line.Price, &line.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: loadServiceLines - scan row: %v", ErrScanRow, err)
		}
		result[appointmentID] = append(result[appointmentID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadServiceLines - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

func buildServiceLinesInsert(appointmentID, customerID int64, lines []domain.ServiceLine) (string, []interface{}, error) {
	builder := psqlbuilder.Insert("customer_services").
		Columns("appointment_id", "customer_id", "service_id", "service_name", "price", "duration_minutes")
	for _, line := range lines {
		builder = builder.Values(appointmentID, customerID, line.ServiceID, line.Name, line.Price, line.DurationMinutes)
	}
	return builder.ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appt                 domain.Appointment
		status               string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.CustomerID,
		&appt.StaffID,
		&appt.Date,
		&appt.StartTime,
		&appt.EndTime,
		&status,
		&appt.TotalAmount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.Status = domain.AppointmentStatus(status)
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time
	return &appt, nil
}
