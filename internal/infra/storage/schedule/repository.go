package schedule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания и особых дней календаря.
// Оба набора заменяются целиком при сохранении настроек календаря.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWorkingHours получает правила рабочих часов; пустой список означает, что календарь всегда закрыт
func (r *Repository) GetWorkingHours(ctx context.Context, calendarID uuid.UUID) ([]domain.WorkingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("calendar_id", "day_of_week", "start_time", "end_time").
		From("working_hours").
		Where(squirrel.Eq{"calendar_id": calendarID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.WorkingHoursRule, 0, 7)
	for rows.Next() {
		var rule domain.WorkingHoursRule
		if err := rows.Scan(&rule.CalendarID, &rule.DayOfWeek, &rule.StartTime, &rule.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetWorkingHours - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// ReplaceWorkingHours удаляет все правила календаря и вставляет новые.
// Вызывать внутри транзакции.
func (r *Repository) ReplaceWorkingHours(ctx context.Context, calendarID uuid.UUID, rules []domain.WorkingHoursRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"calendar_id": calendarID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute delete: %v", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("working_hours").
		Columns("calendar_id", "day_of_week", "start_time", "end_time")
	for _, rule := range rules {
		insert = insert.Values(calendarID, int(rule.DayOfWeek), rule.StartTime, rule.EndTime)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetSpecialDays получает особые дни календаря
func (r *Repository) GetSpecialDays(ctx context.Context, calendarID uuid.UUID) ([]domain.SpecialDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("calendar_id", "date", "is_working_day", "start_time", "end_time").
		From("special_days").
		Where(squirrel.Eq{"calendar_id": calendarID}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.SpecialDay, 0)
	for rows.Next() {
		var day domain.SpecialDay
		if err := rows.Scan(&day.CalendarID, &day.Date, &day.IsWorkingDay, &day.StartTime, &day.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetSpecialDays - scan row: %v", ErrScanRow, err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSpecialDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// ReplaceSpecialDays удаляет все особые дни календаря и вставляет новые.
// Вызывать внутри транзакции.
func (r *Repository) ReplaceSpecialDays(ctx context.Context, calendarID uuid.UUID, days []domain.SpecialDay) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("special_days").
		Where(squirrel.Eq{"calendar_id": calendarID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSpecialDays - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceSpecialDays - execute delete: %v", ErrExecQuery, err)
	}

	if len(days) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("special_days").
		Columns("calendar_id", "date", "is_working_day", "start_time", "end_time")
	for _, day := range days {
		insert = insert.Values(calendarID, day.Date.Format(domain.DateFormat), day.IsWorkingDay, day.StartTime, day.EndTime)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSpecialDays - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceSpecialDays - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
