package dayconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	"github.com/m04kA/SMC-AppointmentBot/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentBot/pkg/txmanager"
)

// Repository репозиторий для работы с конфигурацией дней записи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации дней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает конфигурацию для одного дня недели
func (r *Repository) Get(ctx context.Context, weekday domain.Weekday) (*domain.DayConfig, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"active",
		"open_time",
		"close_time",
		"slot_duration_minutes",
		"breaks",
		"allow_partial_slots",
		"updated_at",
	).
		From("day_configs").
		Where(squirrel.Eq{"weekday": weekday}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// GetAll получает конфигурации всех дней недели
func (r *Repository) GetAll(ctx context.Context) ([]*domain.DayConfig, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"active",
		"open_time",
		"close_time",
		"slot_duration_minutes",
		"breaks",
		"allow_partial_slots",
		"updated_at",
	).
		From("day_configs").
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.DayConfig, 0)
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Put сохраняет конфигурацию дня целиком (upsert, last-writer-wins)
func (r *Repository) Put(ctx context.Context, cfg *domain.DayConfig) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	breaksJSON, err := json.Marshal(cfg.Breaks)
	if err != nil {
		return fmt.Errorf("%w: Put - marshal breaks: %v", ErrMarshalBreaks, err)
	}

	query, args, err := psqlbuilder.Insert("day_configs").
		Columns(
			"weekday",
			"active",
			"open_time",
			"close_time",
			"slot_duration_minutes",
			"breaks",
			"allow_partial_slots",
		).
		Values(
			cfg.Weekday,
			cfg.Active,
			cfg.OpenTime,
			cfg.CloseTime,
			cfg.SlotDurationMinutes,
			breaksJSON,
			cfg.AllowPartialSlots,
		).
		Suffix(`ON CONFLICT (weekday) DO UPDATE SET
			active = EXCLUDED.active,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			breaks = EXCLUDED.breaks,
			allow_partial_slots = EXCLUDED.allow_partial_slots,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Put - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Put - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanConfig сканирует строку результата в доменную модель
func scanConfig(row rowScanner) (*domain.DayConfig, error) {
	var cfg domain.DayConfig
	var breaksJSON []byte
	var updatedAt sql.NullTime

	err := row.Scan(
		&cfg.Weekday,
		&cfg.Active,
		&cfg.OpenTime,
		&cfg.CloseTime,
		&cfg.SlotDurationMinutes,
		&breaksJSON,
		&cfg.AllowPartialSlots,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cfg.Breaks = make([]domain.BreakInterval, 0)
	if len(breaksJSON) > 0 {
		if err := json.Unmarshal(breaksJSON, &cfg.Breaks); err != nil {
			return nil, err
		}
	}

	cfg.UpdatedAt = updatedAt.Time
	return &cfg, nil
}
