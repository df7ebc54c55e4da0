package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/TA-BookingEngine/pkg/psqlbuilder"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"tour_id",
	"start_date",
	"duration_days",
	"meal_plan",
	"adults",
	"children",
	"guest_entries",
	"state",
	"total_price",
	"cancellation_reason",
	"cancelled_by",
	"cancelled_at",
	"cancellation_free",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями туров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value),
// использует её; создание всегда должно идти в одной транзакции
// с резервированием места в CapacityLedger
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	guestsJSON, err := json.Marshal(b.GuestEntries)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrEncodeGuests, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"tour_id",
			"start_date",
			"duration_days",
			"meal_plan",
			"adults",
			"children",
			"guest_entries",
			"state",
			"total_price",
		).
		Values(
			b.UserID,
			b.TourID,
			b.StartDate,
			b.DurationDays,
			b.MealPlan,
			b.Guests.Adults,
			b.Guests.Children,
			guestsJSON,
			b.State,
			b.TotalPrice,
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

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID с блокировкой строки
// (FOR UPDATE). Используется внутри транзакций для сериализации переходов
// состояний по одному бронированию: из двух конкурирующих операций вторая
// увидит уже изменённое состояние
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// FOR UPDATE имеет смысл только внутри транзакции
	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// UpdateDetails обновляет изменяемые поля бронирования (Edit):
// дату заезда, длительность, питание, состав гостей и пересчитанную цену
func (r *Repository) UpdateDetails(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	guestsJSON, err := json.Marshal(b.GuestEntries)
	if err != nil {
		return fmt.Errorf("%w: UpdateDetails: %v", ErrEncodeGuests, err)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_date", b.StartDate).
		Set("duration_days", b.DurationDays).
		Set("meal_plan", b.MealPlan).
		Set("adults", b.Guests.Adults).
		Set("children", b.Guests.Children).
		Set("guest_entries", guestsJSON).
		Set("total_price", b.TotalPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateState обновляет состояние бронирования
func (r *Repository) UpdateState(ctx context.Context, id int64, state domain.BookingState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("state", state).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateState - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel переводит бронирование в состояние cancelled и записывает
// данные об отмене, включая классификацию (бесплатная/платная)
func (r *Repository) Cancel(ctx context.Context, id int64, c domain.Cancellation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("state", domain.StateCancelled).
		Set("cancellation_reason", c.Reason).
		Set("cancelled_by", c.CancelledBy).
		Set("cancelled_at", c.CancelledAt).
		Set("cancellation_free", c.Free).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListByUser получает список бронирований пользователя
// Опционально фильтрует по состоянию
func (r *Repository) ListByUser(ctx context.Context, userID int64, state *domain.BookingState) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_date DESC, id DESC")

	if state != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": *state})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByTourWithFilter получает бронирования тура для агентской отчётности
// Поддерживает фильтрацию по дате заезда, состоянию и включению отменённых
func (r *Repository) ListByTourWithFilter(ctx context.Context, filter domain.TourBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListByTourQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTourWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTourWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// buildListByTourQuery собирает запрос агентской выборки: явный фильтр по
// состоянию имеет приоритет, иначе без includeCancelled выбираются только
// активные состояния
func buildListByTourQuery(filter domain.TourBookingsFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tour_id": filter.TourID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"start_date": *filter.StartDate})
	}

	if filter.State != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": *filter.State})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": domain.ActiveStates})
	}

	return selectBuilder.OrderBy("start_date ASC, id ASC").ToSql()
}

// ListDueForAdvance возвращает ID бронирований, которым пора сменить
// состояние по часам: confirmed с наступившей датой заезда и started
// с истёкшей длительностью. Используется фоновым sweep'ом; каждое
// бронирование затем продвигается в отдельной транзакции
func (r *Repository) ListDueForAdvance(ctx context.Context, asOf types.Date) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"state": domain.StateConfirmed},
				squirrel.LtOrEq{"start_date": asOf},
			},
			squirrel.And{
				squirrel.Eq{"state": domain.StateStarted},
				squirrel.Expr("start_date + duration_days * INTERVAL '1 day' <= ?", asOf),
			},
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDueForAdvance - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueForAdvance - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListDueForAdvance - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDueForAdvance - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку бронирования
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                  domain.Booking
		guestsJSON         []byte
		cancellationReason sql.NullString
		cancelledBy        sql.NullInt64
		cancelledAt        sql.NullTime
		cancellationFree   sql.NullBool
		createdAt          sql.NullTime
		updatedAt          sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.TourID,
		&b.StartDate,
		&b.DurationDays,
		&b.MealPlan,
		&b.Guests.Adults,
		&b.Guests.Children,
		&guestsJSON,
		&b.State,
		&b.TotalPrice,
		&cancellationReason,
		&cancelledBy,
		&cancelledAt,
		&cancellationFree,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(guestsJSON) > 0 {
		if err := json.Unmarshal(guestsJSON, &b.GuestEntries); err != nil {
			return nil, err
		}
	}

	if cancelledAt.Valid {
		b.Cancellation = &domain.Cancellation{
			Reason:      cancellationReason.String,
			CancelledBy: cancelledBy.Int64,
			CancelledAt: cancelledAt.Time,
			Free:        cancellationFree.Bool,
		}
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
