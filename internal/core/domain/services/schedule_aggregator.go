package services

import (
	"fmt"
	"sort"
	"strings"

	"cementops/internal/core/domain/model/kernel"
)

// SortKey selects the ordering applied by ScheduleAggregator.Sort.
type SortKey string

const (
	// SortByOrder keeps rows in insertion order.
	SortByOrder SortKey = "order"
	// SortByTime orders rows by scheduled date and time of day.
	SortByTime SortKey = "time"
	// SortByClient orders rows by the aggregated client string.
	SortByClient SortKey = "client"
)

// OrderLine is one order as it appears on the read side: already joined with its
// client and product names, quantities still in their stored string form.
type OrderLine struct {
	ClientName    string
	ProductName   string
	Quantity      string
	RequestedDate string
	RequestedTime string
}

// AggregatedRow is the display form of one truck's mission: orders merged,
// quantities summed, products de-duplicated. Derived, never authoritative.
type AggregatedRow struct {
	TruckLabel    string
	Clients       string
	Products      []string
	TotalQuantity kernel.Tonnage
	Date          string
	Time          string
}

// ScheduleAggregator is a domain service that turns raw per-truck order
// assignments into rows a schedule board can render directly.
//
// It is a read-side transform: it never mutates state and tolerates dirty
// input, so stale or hand-edited rows degrade to a blank cell instead of
// failing the whole board.
type ScheduleAggregator struct{}

// NewScheduleAggregator creates a new ScheduleAggregator instance.
func NewScheduleAggregator() ScheduleAggregator {
	return ScheduleAggregator{}
}

// Aggregate merges one truck's order lines into a single display row.
// Returns nil for an empty line set, rendered by callers as a "no delivery" row.
//
// The row's date and time come from the first line. Quantities that fail to
// parse count as zero in the total but are echoed verbatim in the client
// segment, so a dirty row stays visible instead of silently reading "0T".
func (a ScheduleAggregator) Aggregate(truckLabel string, lines []OrderLine) *AggregatedRow {
	if len(lines) == 0 {
		return nil
	}

	clients := make([]string, 0, len(lines))
	products := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	total := kernel.ZeroTonnage()

	for _, line := range lines {
		rendered := line.Quantity
		if quantity, err := kernel.ParseTonnage(line.Quantity); err == nil {
			total = total.Add(quantity)
			rendered = quantity.String()
		}

		clients = append(clients, fmt.Sprintf("%s %sT", line.ClientName, rendered))

		if !seen[line.ProductName] {
			seen[line.ProductName] = true
			products = append(products, line.ProductName)
		}
	}

	return &AggregatedRow{
		TruckLabel:    truckLabel,
		Clients:       strings.Join(clients, " - "),
		Products:      products,
		TotalQuantity: total,
		Date:          lines[0].RequestedDate,
		Time:          lines[0].RequestedTime,
	}
}

// Sort orders rows in place by the given key. Unknown keys and SortByOrder
// leave the slice untouched. Sorting is stable, so rows that compare equal
// keep their insertion order.
func (a ScheduleAggregator) Sort(rows []*AggregatedRow, key SortKey) {
	switch key {
	case SortByTime:
		sort.SliceStable(rows, func(i, j int) bool {
			return timeSortKey(rows[i]) < timeSortKey(rows[j])
		})
	case SortByClient:
		sort.SliceStable(rows, func(i, j int) bool {
			return clientSortKey(rows[i]) < clientSortKey(rows[j])
		})
	case SortByOrder:
	default:
	}
}

// timeSortKey degrades gracefully for rows missing a date or time: empty
// strings sort first.
func timeSortKey(row *AggregatedRow) string {
	if row == nil {
		return ""
	}

	return row.Date + "T" + row.Time
}

func clientSortKey(row *AggregatedRow) string {
	if row == nil {
		return ""
	}

	return row.Clients
}
