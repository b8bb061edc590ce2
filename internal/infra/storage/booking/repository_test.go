package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "jane", want: "jane"},
		{in: "100%", want: `100\%`},
		{in: "a_b", want: `a\_b`},
		{in: `c:\tmp`, want: `c:\\tmp`},
		{in: `%_\`, want: `\%\_\\`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.in))
		})
	}
}

func TestApplyFilter_SearchIsLiteral(t *testing.T) {
	query, args, err := applyFilter(
		psqlbuilder.Select("b.id").From("bookings b"),
		domain.BookingsFilter{Search: "50%_off"},
	).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query, "ILIKE")
	require.Len(t, args, 3)
	for _, arg := range args {
		assert.Equal(t, `%50\%\_off%`, arg)
	}
}

func TestApplyFilter_Status(t *testing.T) {
	status := domain.StatusConfirmed

	query, args, err := applyFilter(
		psqlbuilder.Select("b.id").From("bookings b"),
		domain.BookingsFilter{Status: &status},
	).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query, "b.status = $1")
	assert.Equal(t, []interface{}{domain.StatusConfirmed}, args)
}

func TestConflictClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: pqUniqueViolation})
	serialization := fmt.Errorf("commit: %w", &pq.Error{Code: pqSerializationFailure})

	assert.True(t, IsSlotConflict(unique))
	assert.True(t, IsSlotConflict(fmt.Errorf("%w: Create", ErrSlotNotAvailable)))
	assert.False(t, IsSlotConflict(serialization))
	assert.False(t, IsSlotConflict(errors.New("connection reset")))

	assert.True(t, IsSerializationFailure(serialization))
	assert.False(t, IsSerializationFailure(unique))
}
