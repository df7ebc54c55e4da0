package capacity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TA-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/TA-BookingEngine/pkg/psqlbuilder"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// Availability остаток пакетов по дате заезда
type Availability struct {
	StartDate types.Date
	Remaining int
	Total     int
}

// Ledger учёт пакетов туров по парам (tour_id, start_date).
//
// Каждое активное бронирование удерживает ровно один пакет; бронь
// привязана к booking_id, поэтому Release идемпотентен по бронированию.
// Уменьшение остатка выполняется условным UPDATE (remaining > 0) -
// при конкурентных Reserve на последний пакет успешным будет ровно один
type Ledger struct {
	db DBExecutor
}

// NewLedger создает новый экземпляр учёта пакетов
func NewLedger(db DBExecutor) *Ledger {
	return &Ledger{db: db}
}

// Seed инициализирует строку учёта из квоты каталога
// (availablePackages). Повторный вызов ничего не меняет: остаток
// уже отражает сделанные бронирования
func (l *Ledger) Seed(ctx context.Context, tourID int64, startDate types.Date, total int) error {
	executor := dbmetrics.GetExecutor(ctx, l.db)

	query, args, err := psqlbuilder.Insert("tour_capacity").
		Columns("tour_id", "start_date", "total", "remaining").
		Values(tourID, startDate, total, total).
		Suffix("ON CONFLICT (tour_id, start_date) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Seed - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Seed - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Reserve удерживает один пакет на дату заезда для бронирования.
// Возвращает ErrCapacityExhausted, если пакетов не осталось
func (l *Ledger) Reserve(ctx context.Context, bookingID, tourID int64, startDate types.Date) error {
	executor := dbmetrics.GetExecutor(ctx, l.db)

	if err := l.decrement(ctx, executor, tourID, startDate); err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert("capacity_reservations").
		Columns("booking_id", "tour_id", "start_date").
		Values(bookingID, tourID, startDate).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reserve - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Reserve - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Release возвращает пакет, удерживаемый бронированием.
// Идемпотентен: повторный Release для того же бронирования - no-op,
// остаток не увеличивается дважды. Отмена и Edit со сменой даты могут
// оба попытаться освободить одну и ту же бронь
func (l *Ledger) Release(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, l.db)

	query, args, err := psqlbuilder.Update("capacity_reservations").
		Set("released", true).
		Set("released_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID, "released": false}).
		Suffix("RETURNING tour_id, start_date").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	var (
		tourID    int64
		startDate types.Date
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tourID, &startDate)
	if err == sql.ErrNoRows {
		// Бронь уже освобождена или не существовала - no-op
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return l.increment(ctx, executor, tourID, startDate)
}

// Move переносит бронь бронирования на новую дату заезда (Edit со сменой
// даты). Сначала удерживается пакет на новой дате, затем возвращается
// пакет старой; при нехватке мест на новой дате возвращается
// ErrCapacityExhausted и ничего не меняется (вызывается в транзакции)
func (l *Ledger) Move(ctx context.Context, bookingID int64, newStartDate types.Date) error {
	executor := dbmetrics.GetExecutor(ctx, l.db)

	// Находим активную бронь с блокировкой строки
	selectBuilder := psqlbuilder.Select("tour_id", "start_date").
		From("capacity_reservations").
		Where(squirrel.Eq{"booking_id": bookingID, "released": false})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Move - build select query: %v", ErrBuildQuery, err)
	}

	var (
		tourID  int64
		oldDate types.Date
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tourID, &oldDate)
	if err == sql.ErrNoRows {
		return ErrReservationNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Move - scan reservation: %v", ErrScanRow, err)
	}

	if oldDate.Equal(newStartDate) {
		return nil
	}

	// Сначала резервируем новую дату: при неудаче транзакция откатится,
	// старая бронь останется нетронутой
	if err := l.decrement(ctx, executor, tourID, newStartDate); err != nil {
		return err
	}

	query, args, err = psqlbuilder.Update("capacity_reservations").
		Set("start_date", newStartDate).
		Where(squirrel.Eq{"booking_id": bookingID, "released": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Move - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Move - execute update: %v", ErrExecQuery, err)
	}

	return l.increment(ctx, executor, tourID, oldDate)
}

// Remaining возвращает остаток пакетов на дату заезда
func (l *Ledger) Remaining(ctx context.Context, tourID int64, startDate types.Date) (*Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, l.db)

	query, args, err := psqlbuilder.Select("start_date", "remaining", "total").
		From("tour_capacity").
		Where(squirrel.Eq{"tour_id": tourID, "start_date": startDate}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Remaining - build select query: %v", ErrBuildQuery, err)
	}

	var a Availability
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.StartDate, &a.Remaining, &a.Total)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Remaining - scan row: %v", ErrScanRow, err)
	}

	return &a, nil
}

// RemainingByTour возвращает остатки пакетов по всем датам тура,
// для которых уже были бронирования
func (l *Ledger) RemainingByTour(ctx context.Context, tourID int64) (map[types.Date]Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, l.db)

	query, args, err := psqlbuilder.Select("start_date", "remaining", "total").
		From("tour_capacity").
		Where(squirrel.Eq{"tour_id": tourID}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RemainingByTour - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RemainingByTour - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[types.Date]Availability)
	for rows.Next() {
		var a Availability
		if err := rows.Scan(&a.StartDate, &a.Remaining, &a.Total); err != nil {
			return nil, fmt.Errorf("%w: RemainingByTour - scan row: %v", ErrScanRow, err)
		}
		result[a.StartDate] = a
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RemainingByTour - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// decrement условно уменьшает остаток; 0 затронутых строк означает,
// что пакетов не осталось (или строка учёта не создана)
func (l *Ledger) decrement(ctx context.Context, executor DBExecutor, tourID int64, startDate types.Date) error {
	query, args, err := psqlbuilder.Update("tour_capacity").
		Set("remaining", squirrel.Expr("remaining - 1")).
		Where(squirrel.Eq{"tour_id": tourID, "start_date": startDate}).
		Where(squirrel.Gt{"remaining": 0}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: decrement - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: decrement - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: decrement - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCapacityExhausted
	}

	return nil
}

// increment возвращает пакет в остаток, не превышая исходную квоту
func (l *Ledger) increment(ctx context.Context, executor DBExecutor, tourID int64, startDate types.Date) error {
	query, args, err := psqlbuilder.Update("tour_capacity").
		Set("remaining", squirrel.Expr("LEAST(total, remaining + 1)")).
		Where(squirrel.Eq{"tour_id": tourID, "start_date": startDate}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: increment - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: increment - execute update: %v", ErrExecQuery, err)
	}

	return nil
}
