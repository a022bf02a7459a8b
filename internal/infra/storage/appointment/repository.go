package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	"github.com/m04kA/SMC-AppointmentBot/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentBot/pkg/txmanager"
)

const (
	confirmedTable = "appointments"
	pendingTable   = "pending_appointments"
)

var appointmentColumns = []string{
	"user_id",
	"weekday",
	"start_at",
	"end_at",
	"name",
	"contact",
	"status",
	"created_at",
}

// Repository репозиторий для работы с записями (подтвержденными и заявками)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertConfirmed сохраняет подтвержденную запись.
// У пользователя может быть только одна подтвержденная запись - повторная
// вставка перезаписывает предыдущую.
func (r *Repository) InsertConfirmed(ctx context.Context, appt *domain.Appointment) error {
	return r.upsert(ctx, confirmedTable, appt)
}

// GetConfirmed получает подтвержденную запись пользователя
func (r *Repository) GetConfirmed(ctx context.Context, userID int64) (*domain.Appointment, error) {
	appt, err := r.getByUser(ctx, confirmedTable, userID)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// ListConfirmed получает все подтвержденные записи, отсортированные по началу
func (r *Repository) ListConfirmed(ctx context.Context) ([]*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(confirmedTable).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListConfirmedOnDate получает подтвержденные записи на календарную дату.
// Внутри транзакции добавляет FOR UPDATE - используется при проверке
// занятости слота перед записью, чтобы исключить гонку.
func (r *Repository) ListConfirmedOnDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(confirmedTable).
		Where(squirrel.GtOrEq{"start_at": dayStart}).
		Where(squirrel.Lt{"start_at": dayEnd}).
		OrderBy("start_at ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// DeleteConfirmed удаляет подтвержденную запись пользователя
func (r *Repository) DeleteConfirmed(ctx context.Context, userID int64) error {
	return r.deleteByUser(ctx, confirmedTable, userID, ErrAppointmentNotFound)
}

// GetPending получает заявку пользователя, ожидающую решения администратора
func (r *Repository) GetPending(ctx context.Context, userID int64) (*domain.Appointment, error) {
	appt, err := r.getByUser(ctx, pendingTable, userID)
	if err == sql.ErrNoRows {
		return nil, ErrPendingNotFound
	}
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// UpsertPending сохраняет заявку, перезаписывая предыдущую заявку пользователя
// (последний выбор выигрывает)
func (r *Repository) UpsertPending(ctx context.Context, appt *domain.Appointment) error {
	return r.upsert(ctx, pendingTable, appt)
}

// DeletePending удаляет заявку пользователя
func (r *Repository) DeletePending(ctx context.Context, userID int64) error {
	return r.deleteByUser(ctx, pendingTable, userID, ErrPendingNotFound)
}

func (r *Repository) upsert(ctx context.Context, table string, appt *domain.Appointment) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"weekday",
			"start_at",
			"end_at",
			"name",
			"contact",
			"status",
		).
		Values(
			appt.UserID,
			appt.Weekday,
			appt.StartAt,
			appt.EndAt,
			appt.Name,
			appt.Contact,
			appt.Status,
		).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			weekday = EXCLUDED.weekday,
			start_at = EXCLUDED.start_at,
			end_at = EXCLUDED.end_at,
			name = EXCLUDED.name,
			contact = EXCLUDED.contact,
			status = EXCLUDED.status,
			created_at = NOW()
		RETURNING created_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: upsert %s - build insert query: %v", ErrBuildQuery, table, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return fmt.Errorf("%w: upsert %s - execute insert: %v", ErrExecQuery, table, err)
	}

	appt.CreatedAt = createdAt.Time
	return nil
}

func (r *Repository) getByUser(ctx context.Context, table string, userID int64) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getByUser %s - build select query: %v", ErrBuildQuery, table, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByUser %s - scan appointment: %v", ErrScanRow, table, err)
	}

	return appt, nil
}

func (r *Repository) deleteByUser(ctx context.Context, table string, userID int64, notFound error) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: deleteByUser %s - build delete query: %v", ErrBuildQuery, table, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: deleteByUser %s - execute delete: %v", ErrExecQuery, table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleteByUser %s - get rows affected: %v", ErrExecQuery, table, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt sql.NullTime

	err := row.Scan(
		&appt.UserID,
		&appt.Weekday,
		&appt.StartAt,
		&appt.EndAt,
		&appt.Name,
		&appt.Contact,
		&appt.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
