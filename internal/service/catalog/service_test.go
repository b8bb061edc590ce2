package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/catalog"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	services map[int64]*domain.Service
	stylists map[int64]*domain.Stylist
	err      error
}

func (f *fakeRepo) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeRepo) ListActiveServices(context.Context) ([]*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Service
	for _, s := range f.services {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetStylist(_ context.Context, id int64) (*domain.Stylist, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.stylists[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrStylistNotFound
}

func (f *fakeRepo) ListAvailableStylists(context.Context) ([]*domain.Stylist, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*domain.Stylist{}
	for _, s := range f.stylists {
		if s.IsAvailable {
			out = append(out, s)
		}
	}
	return out, nil
}

func newRepo() *fakeRepo {
	discount := decimal.NewFromInt(10)
	total := decimal.NewFromInt(900)
	return &fakeRepo{
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Hair Color", Price: decimal.NewFromInt(1000), Discount: &discount, TotalPrice: &total, IsActive: true},
			2: {ID: 2, Name: "Perm", Price: decimal.NewFromInt(500), IsActive: false},
		},
		stylists: map[int64]*domain.Stylist{
			3:  {ID: 3, Name: "Anna", IsAvailable: true},
			4:  {ID: 4, Name: "Boris", IsAvailable: false},
			99: {ID: 99, Name: domain.SentinelStylistNames[0], IsAvailable: true},
		},
	}
}

func choice(c domain.StylistChoice) *domain.StylistChoice { return &c }

func TestGetActiveService(t *testing.T) {
	svc := NewService(newRepo(), nopLogger{})

	s, err := svc.GetActiveService(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(900).Equal(s.EffectivePrice()))

	_, err = svc.GetActiveService(context.Background(), 2)
	assert.ErrorIs(t, err, ErrServiceInactive)

	_, err = svc.GetActiveService(context.Background(), 7)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestListServices_OnlyActive(t *testing.T) {
	resp, err := NewService(newRepo(), nopLogger{}).ListServices(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Hair Color", resp.Services[0].Name)
	assert.True(t, decimal.NewFromInt(900).Equal(resp.Services[0].TotalPrice))
}

func TestListStylists_HidesSentinel(t *testing.T) {
	resp, err := NewService(newRepo(), nopLogger{}).ListStylists(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Stylists, 1)
	assert.Equal(t, "Anna", resp.Stylists[0].Name)
	assert.True(t, resp.AnyOption.IsAny())
}

func TestResolveStylist(t *testing.T) {
	svc := NewService(newRepo(), nopLogger{})
	ctx := context.Background()

	id, err := svc.ResolveStylist(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = svc.ResolveStylist(ctx, choice(domain.SpecificStylist(3)))
	require.NoError(t, err)
	assert.Equal(t, int64(3), *id)

	id, err = svc.ResolveStylist(ctx, choice(domain.AnyStylist()))
	require.NoError(t, err)
	assert.Nil(t, id)

	_, err = svc.ResolveStylist(ctx, choice(domain.SpecificStylist(4)))
	assert.ErrorIs(t, err, ErrStylistUnavailable)

	_, err = svc.ResolveStylist(ctx, choice(domain.SpecificStylist(8)))
	assert.ErrorIs(t, err, ErrStylistNotFound)
}

func TestResolveStylist_AnyIgnoresPlaceholderRows(t *testing.T) {
	repo := newRepo()
	repo.stylists[98] = &domain.Stylist{ID: 98, Name: domain.SentinelStylistNames[1], IsAvailable: false}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	// набор данных не влияет на "любого стилиста": всегда глобальный слот
	id, err := svc.ResolveStylist(ctx, choice(domain.AnyStylist()))
	require.NoError(t, err)
	assert.Nil(t, id)

	for _, placeholder := range []int64{98, 99} {
		id, err = svc.ResolveStylist(ctx, choice(domain.SpecificStylist(placeholder)))
		require.NoError(t, err)
		assert.Nil(t, id, "placeholder id=%d", placeholder)
	}
}

func TestResolveStylist_AnyDoesNotTouchRepository(t *testing.T) {
	repo := newRepo()
	repo.err = errors.New("connection refused")

	id, err := NewService(repo, nopLogger{}).ResolveStylist(context.Background(), choice(domain.AnyStylist()))

	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestRepositoryFailures(t *testing.T) {
	repo := newRepo()
	repo.err = errors.New("connection refused")
	svc := NewService(repo, nopLogger{})

	_, err := svc.ListServices(context.Background())
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.GetActiveService(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.ResolveStylist(context.Background(), choice(domain.SpecificStylist(3)))
	assert.ErrorIs(t, err, ErrInternal)
}
