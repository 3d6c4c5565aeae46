package kernel_test

import (
	"testing"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTonnage(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "positive", value: "12.5", wantErr: false},
		{name: "zero", value: "0", wantErr: false},
		{name: "two_decimal_places", value: "0.01", wantErr: false},
		{name: "negative", value: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tonnage, err := kernel.NewTonnage(decimal.RequireFromString(tt.value))

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}

			require.NoError(t, err)
			require.NoError(t, tonnage.Validate())
			assert.Equal(t, tt.value, tonnage.Decimal().String())
		})
	}
}

func TestParseTonnage(t *testing.T) {
	t.Run("parses_decimal_string", func(t *testing.T) {
		tonnage, err := kernel.ParseTonnage("7.25")

		require.NoError(t, err)
		assert.Equal(t, "7.25", tonnage.String())
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		_, err := kernel.ParseTonnage("seven tonnes")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_negative", func(t *testing.T) {
		_, err := kernel.ParseTonnage("-3")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTonnage_Arithmetic(t *testing.T) {
	t.Run("add_accumulates", func(t *testing.T) {
		a, _ := kernel.ParseTonnage("10")
		b, _ := kernel.ParseTonnage("8.5")

		sum := kernel.ZeroTonnage().Add(a).Add(b)

		assert.Equal(t, "18.5", sum.String())
		require.NoError(t, sum.Validate())
	})

	t.Run("comparison_is_strict", func(t *testing.T) {
		capacity, _ := kernel.ParseTonnage("20")
		exactFit, _ := kernel.ParseTonnage("20.00")
		overflow, _ := kernel.ParseTonnage("20.01")

		assert.False(t, exactFit.GreaterThan(capacity))
		assert.True(t, overflow.GreaterThan(capacity))
	})

	t.Run("equality_ignores_exponent", func(t *testing.T) {
		a, _ := kernel.ParseTonnage("12.50")
		b, _ := kernel.ParseTonnage("12.5")

		assert.True(t, a.IsEqual(b))
	})
}

func TestTonnage_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var tonnage kernel.Tonnage

		require.ErrorIs(t, tonnage.Validate(), kernel.ErrTonnageIsNotConstructed)
	})

	t.Run("zero_tonnage_constructor_is_valid", func(t *testing.T) {
		tonnage := kernel.ZeroTonnage()

		require.NoError(t, tonnage.Validate())
		assert.True(t, tonnage.IsZero())
		assert.False(t, tonnage.IsPositive())
	})
}
