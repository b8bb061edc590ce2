package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Колонки бронирования вместе с данными клиента, услуги и стилиста
var bookingColumns = []string{
	"b.id",
	"b.customer_id",
	"b.service_id",
	"b.stylist_id",
	"b.booking_date",
	"b.booking_time",
	"b.status",
	"b.total_amount",
	"b.special_requests",
	"c.name",
	"c.email",
	"c.phone",
	"s.name",
	"st.name",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение уникального индекса активных слотов возвращается как ErrSlotNotAvailable
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"service_id",
			"stylist_id",
			"booking_date",
			"booking_time",
			"status",
			"total_amount",
			"special_requests",
		).
		Values(
			booking.CustomerID,
			booking.ServiceID,
			booking.StylistID,
			booking.BookingDate,
			booking.BookingTime,
			booking.Status,
			booking.TotalAmount,
			booking.SpecialRequests,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if IsSlotConflict(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrSlotNotAvailable, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID вместе с данными клиента, услуги и стилиста
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List возвращает страницу бронирований для админки и общее количество подходящих записей
// Поиск идет по имени и email клиента и по названию услуги (ILIKE)
//
// Примеры использования:
//
// 1. Первая страница всех бронирований:
//    filter := domain.BookingsFilter{Page: 1, PageSize: 10}
//
// 2. Только ожидающие подтверждения:
//    status := domain.StatusPending
//    filter := domain.BookingsFilter{Status: &status}
//
// 3. Поиск по клиенту:
//    filter := domain.BookingsFilter{Search: "jane@"}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	filter.Normalize()

	countQuery, countArgs, err := applyFilter(
		psqlbuilder.Select("COUNT(*)").
			From("bookings b").
			Join("customers c ON c.id = b.customer_id").
			Join("services s ON s.id = b.service_id"),
		filter,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count bookings: %v", ErrExecQuery, err)
	}

	query, args, err := applyFilter(selectBookings(), filter).
		OrderBy("b.booking_date DESC", "b.booking_time DESC", "b.id DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// CountActiveInSlot считает неотмененные бронирования на дату и время
// Если stylistID == nil, считаются все бронирования слота (глобальная занятость)
// Внутри транзакции строки блокируются (FOR UPDATE), поэтому считаем на стороне Go:
// PostgreSQL не допускает FOR UPDATE вместе с агрегатами
func (r *Repository) CountActiveInSlot(ctx context.Context, slot domain.Slot) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{"booking_date": slot.Date}).
		Where(squirrel.Eq{"booking_time": slot.Time}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled})

	if slot.StylistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"stylist_id": *slot.StylistID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveInSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveInSlot - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountActiveInSlot - rows error: %w", ErrScanRow, err)
	}

	return count, nil
}

// ListActiveTimesByDate возвращает время начала всех неотмененных бронирований на дату
// Используется для построения сетки слотов одним запросом
func (r *Repository) ListActiveTimesByDate(ctx context.Context, date time.Time, stylistID *int64) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("DISTINCT booking_time").
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("booking_time ASC")

	if stylistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"stylist_id": *stylistID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveTimesByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveTimesByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListActiveTimesByDate - scan booking_time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveTimesByDate - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// UpdateStatus меняет статус бронирования, только если текущий статус равен from (compare-and-set)
// Если бронирование существует, но его статус уже другой, возвращает ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, updatedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

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
		return ErrStatusChanged
	}

	return nil
}

// CountByStatus возвращает количество бронирований в каждом статусе
// Статусы без бронирований присутствуют в результате с нулем
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("bookings").
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.BookingStatus]int, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		counts[status] = 0
	}

	for rows.Next() {
		var status domain.BookingStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		Join("services s ON s.id = b.service_id").
		LeftJoin("stylists st ON st.id = b.stylist_id")
}

func applyFilter(builder squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.email": pattern},
			squirrel.ILike{"s.name": pattern},
		})
	}
	return builder
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike экранирует спецсимволы LIKE, чтобы поиск шел по буквальному тексту
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ServiceID,
		&booking.StylistID,
		&booking.BookingDate,
		&booking.BookingTime,
		&booking.Status,
		&booking.TotalAmount,
		&booking.SpecialRequests,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.ServiceName,
		&booking.StylistName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
