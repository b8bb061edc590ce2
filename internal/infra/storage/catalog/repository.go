package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"price",
	"duration_minutes",
	"category",
	"discount",
	"total_price",
	"is_active",
}

var stylistColumns = []string{
	"id",
	"name",
	"phone",
	"email",
	"specialties",
	"experience_years",
	"rating",
	"is_available",
	"image_url",
}

// Repository репозиторий справочников салона: услуги и стилисты
// Каталог редактируется админкой вне этого сервиса, здесь только чтение
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID (включая неактивные)
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return service, nil
}

// ListActiveServices возвращает активные услуги, отсортированные по категории и названию
func (r *Repository) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("category ASC", "name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetStylist получает стилиста по ID
func (r *Repository) GetStylist(ctx context.Context, id int64) (*domain.Stylist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stylistColumns...).
		From("stylists").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStylist - build select query: %v", ErrBuildQuery, err)
	}

	stylist, err := scanStylist(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStylist - scan stylist: %v", ErrScanRow, err)
	}

	return stylist, nil
}

// ListAvailableStylists возвращает доступных стилистов без служебных записей "Any ... Stylist"
func (r *Repository) ListAvailableStylists(ctx context.Context) ([]*domain.Stylist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stylistColumns...).
		From("stylists").
		Where(squirrel.Eq{"is_available": true}).
		Where(squirrel.Expr("LOWER(name) <> ALL(?)", pq.Array(lowerSentinelNames()))).
		OrderBy("rating DESC", "name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableStylists - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableStylists - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stylists := make([]*domain.Stylist, 0)
	for rows.Next() {
		stylist, err := scanStylist(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailableStylists - scan row: %v", ErrScanRow, err)
		}
		stylists = append(stylists, stylist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailableStylists - rows error: %v", ErrScanRow, err)
	}

	return stylists, nil
}

func lowerSentinelNames() []string {
	names := make([]string, len(domain.SentinelStylistNames))
	for i, name := range domain.SentinelStylistNames {
		names[i] = strings.ToLower(name)
	}
	return names
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var description sql.NullString
	var discount, totalPrice decimal.NullDecimal

	if err := row.Scan(
		&service.ID,
		&service.Name,
		&description,
		&service.Price,
		&service.DurationMinutes,
		&service.Category,
		&discount,
		&totalPrice,
		&service.IsActive,
	); err != nil {
		return nil, err
	}

	service.Description = description.String
	if discount.Valid {
		service.Discount = &discount.Decimal
	}
	if totalPrice.Valid {
		service.TotalPrice = &totalPrice.Decimal
	}

	return &service, nil
}

func scanStylist(row rowScanner) (*domain.Stylist, error) {
	var stylist domain.Stylist
	var phone, email sql.NullString

	if err := row.Scan(
		&stylist.ID,
		&stylist.Name,
		&phone,
		&email,
		pq.Array(&stylist.Specialties),
		&stylist.ExperienceYears,
		&stylist.Rating,
		&stylist.IsAvailable,
		&stylist.ImageURL,
	); err != nil {
		return nil, err
	}

	stylist.Phone = phone.String
	stylist.Email = email.String

	return &stylist, nil
}
