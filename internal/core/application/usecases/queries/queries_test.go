package queries_test

import (
	"testing"

	"cementops/internal/core/application/usecases/queries"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerateScheduleQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		limit, err := kernel.ParseTonnage("1000")
		require.NoError(t, err)

		query, err := queries.NewGenerateScheduleQuery(limit)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, "1000", query.DailyLimit().String())
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		_, err := queries.NewGenerateScheduleQuery(kernel.ZeroTonnage())
		require.ErrorIs(t, err, services.ErrDailyLimitIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		query := queries.GenerateScheduleQuery{}
		err := query.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrGenerateScheduleQueryIsNotConstructed)
	})
}

func TestNewGetDeliveryBoardQuery(t *testing.T) {
	t.Run("accepts the three sort keys", func(t *testing.T) {
		for _, key := range []services.SortKey{services.SortByOrder, services.SortByTime, services.SortByClient} {
			query, err := queries.NewGetDeliveryBoardQuery(key)
			require.NoError(t, err)
			assert.Equal(t, key, query.SortKey())
		}
	})

	t.Run("rejects unknown sort key", func(t *testing.T) {
		_, err := queries.NewGetDeliveryBoardQuery(services.SortKey("distance"))
		require.ErrorIs(t, err, queries.ErrSortKeyIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		query := queries.GetDeliveryBoardQuery{}
		err := query.Validate()
		require.ErrorIs(t, err, queries.ErrGetDeliveryBoardQueryIsNotConstructed)
	})
}

func TestNewValidateAssignmentQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		truckID := kernel.NewUUID()
		excluding := kernel.NewUUID()

		query, err := queries.NewValidateAssignmentQuery(
			[]kernel.UUID{kernel.NewUUID()}, &truckID, &excluding)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Len(t, query.OrderIDs(), 1)
		require.NotNil(t, query.TruckID())
		require.NotNil(t, query.Excluding())
	})

	t.Run("rejects invalid order identifier", func(t *testing.T) {
		_, err := queries.NewValidateAssignmentQuery([]kernel.UUID{{}}, nil, nil)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		query := queries.ValidateAssignmentQuery{}
		err := query.Validate()
		require.ErrorIs(t, err, queries.ErrValidateAssignmentQueryIsNotConstructed)
	})
}
