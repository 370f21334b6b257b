package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var calendarColumns = []string{
	"id",
	"owner_id",
	"name",
	"description",
	"created_at",
	"updated_at",
}

var settingsColumns = []string{
	"calendar_id",
	"slot_duration_minutes",
	"allow_multiple_bookings",
	"min_booking_notice_days",
	"max_booking_days_ahead",
	"timezone",
	"custom_field_1_label",
	"custom_field_2_label",
	"custom_field_3_label",
	"custom_field_4_label",
	"updated_at",
}

// Repository репозиторий календарей и их настроек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет календарь. ID должен быть заполнен вызывающей стороной.
func (r *Repository) Create(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendars").
		Columns("id", "owner_id", "name", "description").
		Values(cal.ID, cal.OwnerID, cal.Name, cal.Description).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cal.CreatedAt, &cal.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return cal, nil
}

// GetByID получает календарь по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(calendarColumns...).
		From("calendars").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	cal, err := scanCalendar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan calendar: %v", ErrScanRow, err)
	}

	return cal, nil
}

// List получает календари, при ownerID != nil только календари этого администратора
func (r *Repository) List(ctx context.Context, ownerID *uuid.UUID) ([]*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(calendarColumns...).
		From("calendars").
		OrderBy("name ASC", "created_at ASC")

	if ownerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *ownerID})
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

	calendars := make([]*domain.Calendar, 0)
	for rows.Next() {
		cal, err := scanCalendar(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan calendar: %v", ErrScanRow, err)
		}
		calendars = append(calendars, cal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return calendars, nil
}

// Delete удаляет календарь; настройки, расписание и бронирования удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendars").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCalendarNotFound
	}

	return nil
}

// UpsertSettings создает или полностью перезаписывает настройки календаря
func (r *Repository) UpsertSettings(ctx context.Context, settings *domain.CalendarSettings) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	labels := settings.CustomFieldLabels
	query, args, err := psqlbuilder.Insert("calendar_settings").
		Columns(settingsColumns[:len(settingsColumns)-1]...).
		Values(
			settings.CalendarID,
			settings.SlotDurationMinutes,
			settings.AllowMultipleBookings,
			settings.MinBookingNoticeDays,
			settings.MaxBookingDaysAhead,
			settings.Timezone,
			labels[0],
			labels[1],
			labels[2],
			labels[3],
		).
		Suffix(`ON CONFLICT (calendar_id) DO UPDATE SET
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			allow_multiple_bookings = EXCLUDED.allow_multiple_bookings,
			min_booking_notice_days = EXCLUDED.min_booking_notice_days,
			max_booking_days_ahead = EXCLUDED.max_booking_days_ahead,
			timezone = EXCLUDED.timezone,
			custom_field_1_label = EXCLUDED.custom_field_1_label,
			custom_field_2_label = EXCLUDED.custom_field_2_label,
			custom_field_3_label = EXCLUDED.custom_field_3_label,
			custom_field_4_label = EXCLUDED.custom_field_4_label,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&settings.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - execute upsert: %v", ErrExecQuery, err)
	}

	return settings, nil
}

// GetSettings получает настройки календаря
func (r *Repository) GetSettings(ctx context.Context, calendarID uuid.UUID) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("calendar_settings").
		Where(squirrel.Eq{"calendar_id": calendarID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.CalendarSettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.CalendarID,
		&s.SlotDurationMinutes,
		&s.AllowMultipleBookings,
		&s.MinBookingNoticeDays,
		&s.MaxBookingDaysAhead,
		&s.Timezone,
		&s.CustomFieldLabels[0],
		&s.CustomFieldLabels[1],
		&s.CustomFieldLabels[2],
		&s.CustomFieldLabels[3],
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %v", ErrScanRow, err)
	}

	return &s, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCalendar(row rowScanner) (*domain.Calendar, error) {
	var cal domain.Calendar
	if err := row.Scan(
		&cal.ID,
		&cal.OwnerID,
		&cal.Name,
		&cal.Description,
		&cal.CreatedAt,
		&cal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cal, nil
}
