package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var columns = []string{
	"r.id",
	"r.calendar_id",
	"r.start_time",
	"r.end_time",
	"r.customer_name",
	"r.customer_email",
	"r.customer_phone",
	"r.custom_field_1",
	"r.custom_field_2",
	"r.custom_field_3",
	"r.custom_field_4",
	"r.created_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование.
// Ошибка драйвера сохраняется в цепочке, чтобы вызывающий код мог распознать конфликт сериализации.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"calendar_id",
			"start_time",
			"end_time",
			"customer_name",
			"customer_email",
			"customer_phone",
			"custom_field_1",
			"custom_field_2",
			"custom_field_3",
			"custom_field_4",
		).
		Values(
			res.CalendarID,
			res.StartTime,
			res.EndTime,
			res.CustomerName,
			res.CustomerEmail,
			res.CustomerPhone,
			res.CustomFields[0],
			res.CustomFields[1],
			res.CustomFields[2],
			res.CustomFields[3],
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("reservations r").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByIDs получает бронирования по списку ID; отсутствующие ID пропускаются
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Reservation, error) {
	if len(ids) == 0 {
		return []*domain.Reservation{}, nil
	}

	query, args, err := psqlbuilder.Select(columns...).
		From("reservations r").
		Where(squirrel.Eq{"r.id": ids}).
		OrderBy("r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByIDs", query, args)
}

// GetByCalendarAndPeriod получает бронирования календаря с началом в [from, to).
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельное создание
// бронирования на тот же день дождалось фиксации текущей транзакции.
func (r *Repository) GetByCalendarAndPeriod(ctx context.Context, calendarID uuid.UUID, from, to time.Time) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("reservations r").
		Where(squirrel.Eq{"r.calendar_id": calendarID}).
		Where(squirrel.GtOrEq{"r.start_time": from}).
		Where(squirrel.Lt{"r.start_time": to}).
		OrderBy("r.start_time ASC", "r.id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCalendarAndPeriod - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByCalendarAndPeriod", query, args)
}

// List получает бронирования календарей администратора с фильтрацией
//
// Примеры использования:
//
// Все бронирования администратора:
//
//	filter := domain.ReservationsFilter{OwnerID: ownerID}
//
// Бронирования одного календаря за январь:
//
//	filter := domain.ReservationsFilter{OwnerID: ownerID, CalendarID: &calID, From: &jan1, To: &feb1}
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("reservations r").
		Join("calendars c ON c.id = r.calendar_id").
		Where(squirrel.Eq{"c.owner_id": filter.OwnerID}).
		OrderBy("r.start_time DESC", "r.id DESC")

	if filter.CalendarID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.calendar_id": *filter.CalendarID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"r.start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"r.start_time": *filter.To})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "List", query, args)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
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
		return ErrReservationNotFound
	}

	return nil
}

// DeleteMany удаляет бронирования по списку ID и возвращает число удалённых строк
func (r *Repository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMany - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMany - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMany - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := row.Scan(
		&res.ID,
		&res.CalendarID,
		&res.StartTime,
		&res.EndTime,
		&res.CustomerName,
		&res.CustomerEmail,
		&res.CustomerPhone,
		&res.CustomFields[0],
		&res.CustomFields[1],
		&res.CustomFields[2],
		&res.CustomFields[3],
		&res.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}
