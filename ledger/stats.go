package ledger

import (
	"sort"
	"time"

	"rental-ledger/models"
)

// Rental status labels used by the reporting queries.
const (
	StatusOpen     = "open"
	StatusReturned = "returned"
)

// RentalWithStatus pairs a rental with its open/returned status at the
// moment the query ran.
type RentalWithStatus struct {
	models.Rental
	Status string `json:"status"`
}

func withStatus(r models.Rental) RentalWithStatus {
	s := RentalWithStatus{Rental: r, Status: StatusReturned}
	if r.Open() {
		s.Status = StatusOpen
	}
	return s
}

// VehicleCount is one row of the vehicle top list.
type VehicleCount struct {
	VehicleName string `json:"vehicle_name"`
	Count       int    `json:"count"`
}

// CustomerCount is one row of the customer top list, keyed by tax id.
type CustomerCount struct {
	TaxID string `json:"tax_id"`
	Count int    `json:"count"`
}

// All statistics are computed against "now" at call time; nothing is
// cached between calls.

// RentalsInLastNDays lists rentals picked up within the last n days
// (default 7), in ledger insertion order.
func (e *Engine) RentalsInLastNDays(n int) []RentalWithStatus {
	if n <= 0 {
		n = 7
	}
	return e.rentalsSince(e.now().AddDate(0, 0, -n))
}

// RentalsInCurrentWeek lists rentals picked up in the current week, where
// the week runs Monday 00:00:00 through Sunday 23:59:59 inclusive.
func (e *Engine) RentalsInCurrentWeek() []RentalWithStatus {
	now := e.now()
	// Monday = 0 under this indexing.
	weekday := (int(now.Weekday()) + 6) % 7
	start := midnight(now).AddDate(0, 0, -weekday)
	end := start.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	var out []RentalWithStatus
	for _, r := range e.rentals {
		if !r.PickupTime.Before(start) && !r.PickupTime.After(end) {
			out = append(out, withStatus(r))
		}
	}
	return out
}

// TopVehiclesThisMonth counts this calendar month's rentals per vehicle
// and returns the n (default 5) most rented, count descending. Ties keep
// the order the vehicles were first seen in the ledger. A vehicle id that
// no longer resolves is skipped silently.
func (e *Engine) TopVehiclesThisMonth(n int) []VehicleCount {
	if n <= 0 {
		n = 5
	}
	counts, order := countThisMonth(e.rentals, e.now(), func(r models.Rental) int { return r.VehicleID })

	var out []VehicleCount
	for _, id := range topKeys(counts, order, n) {
		i, ok := e.vehicleIdx[id]
		if !ok {
			continue
		}
		out = append(out, VehicleCount{VehicleName: e.vehicles[i].Name, Count: counts[id]})
	}
	return out
}

// TopCustomersThisMonth is the same ranking grouped by customer tax id.
func (e *Engine) TopCustomersThisMonth(n int) []CustomerCount {
	if n <= 0 {
		n = 5
	}
	counts, order := countThisMonth(e.rentals, e.now(), func(r models.Rental) string { return r.TaxID })

	var out []CustomerCount
	for _, key := range topKeys(counts, order, n) {
		out = append(out, CustomerCount{TaxID: key, Count: counts[key]})
	}
	return out
}

// DailyRevenue holds parallel day labels (DD/MM) and per-day revenue
// sums, oldest day first.
type DailyRevenue struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// DailyRevenueLastNDays buckets rental totals by pickup calendar date over
// the last n days (default 7), today inclusive. Revenue is attributed at
// creation time, not at return.
func (e *Engine) DailyRevenueLastNDays(n int) DailyRevenue {
	if n <= 0 {
		n = 7
	}
	now := e.now()

	totals := make(map[string]float64, n)
	days := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := midnight(now).AddDate(0, 0, -i)
		days = append(days, d)
		totals[dayKey(d)] = 0
	}

	for _, r := range e.rentals {
		key := dayKey(r.PickupTime)
		if _, ok := totals[key]; ok {
			totals[key] += r.TotalAmount
		}
	}

	rev := DailyRevenue{
		Labels: make([]string, 0, n),
		Values: make([]float64, 0, n),
	}
	for _, d := range days {
		rev.Labels = append(rev.Labels, d.Format("02/01"))
		rev.Values = append(rev.Values, totals[dayKey(d)])
	}
	return rev
}

// countThisMonth tallies rentals picked up in now's calendar month and
// year, grouped by key. order preserves first-encountered sequence for
// the stable tie-break.
func countThisMonth[K comparable](rentals []models.Rental, now time.Time, key func(models.Rental) K) (map[K]int, []K) {
	counts := make(map[K]int)
	var order []K
	for _, r := range rentals {
		if r.PickupTime.Year() != now.Year() || r.PickupTime.Month() != now.Month() {
			continue
		}
		k := key(r)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	return counts, order
}

// topKeys orders keys by count descending, first-encountered order among
// equal counts, truncated to n.
func topKeys[K comparable](counts map[K]int, order []K, n int) []K {
	keys := make([]K, len(order))
	copy(keys, order)
	sort.SliceStable(keys, func(i, j int) bool {
		return counts[keys[i]] > counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
