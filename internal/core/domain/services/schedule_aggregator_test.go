package services_test

import (
	"testing"

	"cementops/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleAggregator_Aggregate(t *testing.T) {
	aggregator := services.NewScheduleAggregator()

	t.Run("should return nil for an empty order list", func(t *testing.T) {
		assert.Nil(t, aggregator.Aggregate("12345-A-6", nil))
		assert.Nil(t, aggregator.Aggregate("12345-A-6", []services.OrderLine{}))
	})

	t.Run("should merge clients and sum quantities", func(t *testing.T) {
		row := aggregator.Aggregate("12345-A-6", []services.OrderLine{
			{ClientName: "Lafarge Sud", ProductName: "CPJ 45", Quantity: "5", RequestedDate: "2026-10-05", RequestedTime: "08:00"},
			{ClientName: "Atlas BTP", ProductName: "CPJ 35", Quantity: "3", RequestedDate: "2026-10-05", RequestedTime: "10:00"},
		})

		require.NotNil(t, row)
		assert.Equal(t, "12345-A-6", row.TruckLabel)
		assert.Equal(t, "Lafarge Sud 5T - Atlas BTP 3T", row.Clients)
		assert.Equal(t, "8", row.TotalQuantity.String())
		assert.Equal(t, "2026-10-05", row.Date)
		assert.Equal(t, "08:00", row.Time)
	})

	t.Run("should deduplicate products preserving first-seen order", func(t *testing.T) {
		row := aggregator.Aggregate("truck", []services.OrderLine{
			{ClientName: "A", ProductName: "CPJ 45", Quantity: "1"},
			{ClientName: "B", ProductName: "CPJ 35", Quantity: "1"},
			{ClientName: "C", ProductName: "CPJ 45", Quantity: "1"},
		})

		require.NotNil(t, row)
		assert.Equal(t, []string{"CPJ 45", "CPJ 35"}, row.Products)
	})

	t.Run("should count an unparseable quantity as zero but echo it verbatim", func(t *testing.T) {
		row := aggregator.Aggregate("truck", []services.OrderLine{
			{ClientName: "A", ProductName: "CPJ 45", Quantity: "5"},
			{ClientName: "B", ProductName: "CPJ 45", Quantity: "n/a"},
		})

		require.NotNil(t, row)
		assert.Equal(t, "5", row.TotalQuantity.String())
		assert.Equal(t, "A 5T - B n/aT", row.Clients)
	})

	t.Run("should normalize parseable quantities in the client segment", func(t *testing.T) {
		row := aggregator.Aggregate("truck", []services.OrderLine{
			{ClientName: "A", ProductName: "CPJ 45", Quantity: "5.0000"},
		})

		require.NotNil(t, row)
		assert.Equal(t, "A 5T", row.Clients)
	})
}

func TestScheduleAggregator_Sort(t *testing.T) {
	aggregator := services.NewScheduleAggregator()

	makeRows := func() []*services.AggregatedRow {
		return []*services.AggregatedRow{
			{Clients: "Zahra Travaux 5T", Date: "2026-10-06", Time: "08:00"},
			{Clients: "Atlas BTP 3T", Date: "2026-10-05", Time: "14:00"},
			{Clients: "Lafarge Sud 10T", Date: "2026-10-05", Time: "09:00"},
		}
	}

	t.Run("should keep insertion order for the order key", func(t *testing.T) {
		rows := makeRows()

		aggregator.Sort(rows, services.SortByOrder)

		assert.Equal(t, "Zahra Travaux 5T", rows[0].Clients)
		assert.Equal(t, "Atlas BTP 3T", rows[1].Clients)
		assert.Equal(t, "Lafarge Sud 10T", rows[2].Clients)
	})

	t.Run("should sort by date then time of day", func(t *testing.T) {
		rows := makeRows()

		aggregator.Sort(rows, services.SortByTime)

		assert.Equal(t, "Lafarge Sud 10T", rows[0].Clients)
		assert.Equal(t, "Atlas BTP 3T", rows[1].Clients)
		assert.Equal(t, "Zahra Travaux 5T", rows[2].Clients)
	})

	t.Run("should sort rows without a date first", func(t *testing.T) {
		rows := append(makeRows(), &services.AggregatedRow{Clients: "Undated 1T"})

		aggregator.Sort(rows, services.SortByTime)

		assert.Equal(t, "Undated 1T", rows[0].Clients)
	})

	t.Run("should sort by aggregated client string", func(t *testing.T) {
		rows := makeRows()

		aggregator.Sort(rows, services.SortByClient)

		assert.Equal(t, "Atlas BTP 3T", rows[0].Clients)
		assert.Equal(t, "Lafarge Sud 10T", rows[1].Clients)
		assert.Equal(t, "Zahra Travaux 5T", rows[2].Clients)
	})

	t.Run("should tolerate nil rows", func(t *testing.T) {
		rows := []*services.AggregatedRow{
			{Clients: "Atlas BTP 3T", Date: "2026-10-05", Time: "09:00"},
			nil,
		}

		aggregator.Sort(rows, services.SortByTime)

		assert.Nil(t, rows[0])
		assert.Equal(t, "Atlas BTP 3T", rows[1].Clients)
	})

	t.Run("should leave rows untouched for an unknown key", func(t *testing.T) {
		rows := makeRows()

		aggregator.Sort(rows, services.SortKey("surprise"))

		assert.Equal(t, "Zahra Travaux 5T", rows[0].Clients)
	})
}
