package resolve_customer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	customerRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/customer"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*domain.Customer)
	return c, args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, customer)
	c, _ := args.Get(0).(*domain.Customer)
	return c, args.Error(1)
}

func TestExecute_ReturnsExistingUnchanged(t *testing.T) {
	repo := &mockRepo{}
	existing := &domain.Customer{ID: 42, Name: "Jane Doe", Email: "jane@example.com", Phone: "+15551234567"}
	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(existing, nil)

	resp, err := NewUseCase(repo, nopLogger{}).Execute(context.Background(), &Request{
		Name: "Janet", Email: " Jane@Example.com ", Phone: "+15550000000",
	})

	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.Equal(t, "Jane Doe", resp.Customer.Name)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestExecute_CreatesNew(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, customerRepo.ErrCustomerNotFound)
	repo.On("Upsert", mock.Anything, &domain.Customer{Name: "Jane Doe", Email: "jane@example.com", Phone: "+15551234567"}).
		Return(&domain.Customer{ID: 43, Name: "Jane Doe", Email: "jane@example.com", Phone: "+15551234567"}, nil)

	resp, err := NewUseCase(repo, nopLogger{}).Execute(context.Background(), &Request{
		Name: " Jane Doe ", Email: "jane@example.com", Phone: "+15551234567",
	})

	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, int64(43), resp.Customer.ID)
	repo.AssertExpectations(t)
}

func TestExecute_InvalidContact(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{name: "no name", req: Request{Email: "jane@example.com", Phone: "+15551234567"}, field: "customer_name"},
		{name: "bad email", req: Request{Name: "Jane", Email: "jane@", Phone: "+15551234567"}, field: "customer_email"},
		{name: "bad phone", req: Request{Name: "Jane", Email: "jane@example.com", Phone: "call me"}, field: "customer_phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}

			_, err := NewUseCase(repo, nopLogger{}).Execute(context.Background(), &tt.req)

			require.ErrorIs(t, err, ErrInvalidInput)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_BackendFailures(t *testing.T) {
	req := &Request{Name: "Jane", Email: "jane@example.com", Phone: "+15551234567"}

	lookupFails := &mockRepo{}
	lookupFails.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	_, err := NewUseCase(lookupFails, nopLogger{}).Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrLookup)

	createFails := &mockRepo{}
	createFails.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, customerRepo.ErrCustomerNotFound)
	createFails.On("Upsert", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))
	_, err = NewUseCase(createFails, nopLogger{}).Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCreate)
}

func TestLookup(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.Customer{ID: 42}, nil)
	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, customerRepo.ErrCustomerNotFound)
	uc := NewUseCase(repo, nopLogger{})

	c, err := uc.Lookup(context.Background(), "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.ID)

	_, err = uc.Lookup(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = uc.Lookup(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
