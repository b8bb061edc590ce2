package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

var customerColumns = []string{"id", "name", "email", "phone", "created_at", "updated_at"}

// Repository репозиторий клиентов салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByEmail ищет клиента по точному совпадению email (email хранится в нижнем регистре)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": domain.NormalizeEmail(email)})
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// Upsert создает клиента или, если email уже занят, возвращает существующую запись без изменений.
// ON CONFLICT DO UPDATE с присваиванием того же значения нужен, чтобы RETURNING вернул строку
func (r *Repository) Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("name", "email", "phone").
		Values(customer.Name, domain.NormalizeEmail(customer.Email), customer.Phone).
		Suffix("ON CONFLICT (email) DO UPDATE SET email = customers.email RETURNING id, name, email, phone, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return result, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	customer, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan customer: %v", ErrScanRow, op, err)
	}

	return customer, nil
}

func scanCustomer(row *sql.Row) (*domain.Customer, error) {
	var customer domain.Customer
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return &customer, nil
}
