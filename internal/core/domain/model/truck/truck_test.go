package truck_test

import (
	"testing"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/truck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTruck(t *testing.T) {
	capacity, _ := kernel.ParseTonnage("20")

	t.Run("creates_valid_truck", func(t *testing.T) {
		tr, err := truck.NewTruck(kernel.NewUUID(), "AB-123-CD", "Karim Haddad", capacity)

		require.NoError(t, err)
		require.NoError(t, tr.Validate())
		assert.Equal(t, "AB-123-CD", tr.PlateNumber())
		assert.Equal(t, "Karim Haddad", tr.DriverName())
		assert.Equal(t, "20", tr.Capacity().String())
	})

	tests := []struct {
		name  string
		setup func() error
	}{
		{
			name: "empty_plate_number",
			setup: func() error {
				_, err := truck.NewTruck(kernel.NewUUID(), "", "Karim Haddad", capacity)
				return err
			},
		},
		{
			name: "empty_driver_name",
			setup: func() error {
				_, err := truck.NewTruck(kernel.NewUUID(), "AB-123-CD", "", capacity)
				return err
			},
		},
		{
			name: "zero_capacity",
			setup: func() error {
				_, err := truck.NewTruck(kernel.NewUUID(), "AB-123-CD", "Karim Haddad", kernel.ZeroTonnage())
				return err
			},
		},
		{
			name: "unconstructed_id",
			setup: func() error {
				_, err := truck.NewTruck(kernel.UUID{}, "AB-123-CD", "Karim Haddad", capacity)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.setup())
		})
	}
}

func TestTruck_CanCarry(t *testing.T) {
	capacity, _ := kernel.ParseTonnage("20")
	tr, _ := truck.NewTruck(kernel.NewUUID(), "AB-123-CD", "Karim Haddad", capacity)

	t.Run("exact_fit_is_allowed", func(t *testing.T) {
		load, _ := kernel.ParseTonnage("20.00")
		assert.True(t, tr.CanCarry(load))
	})

	t.Run("overflow_is_rejected", func(t *testing.T) {
		load, _ := kernel.ParseTonnage("20.01")
		assert.False(t, tr.CanCarry(load))
	})
}

func TestTruck_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var tr truck.Truck
		require.ErrorIs(t, tr.Validate(), truck.ErrTruckIsNotConstructed)
	})

	t.Run("nil_receiver_is_invalid", func(t *testing.T) {
		var tr *truck.Truck
		require.ErrorIs(t, tr.Validate(), truck.ErrTruckIsNotConstructed)
	})
}
