package ledger

import (
	"errors"
	"testing"
	"time"

	"rental-ledger/models"
)

func setupFleet(t *testing.T) *Engine {
	t.Helper()
	e, _ := newTestEngine(t)
	loginAdmin(t, e)
	if _, err := e.RegisterVehicle("Civic", "Honda", "2020", "ABC123"); err != nil {
		t.Fatalf("RegisterVehicle: %v", err)
	}
	if err := e.CreateUser("joao", "123", models.RoleStandard); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return e
}

func TestRentAndReturnLifecycle(t *testing.T) {
	e := setupFleet(t)
	if !e.Login("joao", "123") {
		t.Fatal("login failed")
	}

	pickup := time.Date(2025, 6, 10, 9, 30, 0, 0, time.Local)
	e.now = func() time.Time { return pickup }

	conf, err := e.RentVehicle(1, "Carlos", "111.222.333-44", "+55 11 99999-0000", 3, 100)
	if err != nil {
		t.Fatalf("RentVehicle: %v", err)
	}
	if conf.RentalID != 1 || conf.TotalAmount != 300 || conf.VehicleName != "Civic" {
		t.Fatalf("unexpected confirmation: %+v", conf)
	}
	if conf.PickupTime != "10/06/2025 09:30" {
		t.Fatalf("unexpected pickup format: %q", conf.PickupTime)
	}
	if conf.EstimatedReturnTime != "13/06/2025 09:30" {
		t.Fatalf("unexpected estimated return: %q", conf.EstimatedReturnTime)
	}

	if e.ListVehicles()[0].Available {
		t.Fatal("rented vehicle still available")
	}
	r := e.rentals[0]
	if r.RentedBy != "joao" || !r.Open() {
		t.Fatalf("unexpected rental: %+v", r)
	}
	if !r.EstimatedReturnTime.Equal(pickup.AddDate(0, 0, 3)) {
		t.Fatalf("estimated return mismatch: %v", r.EstimatedReturnTime)
	}

	e.now = func() time.Time { return pickup.Add(48 * time.Hour) }
	ret, err := e.ReturnVehicle(1)
	if err != nil {
		t.Fatalf("ReturnVehicle: %v", err)
	}
	if ret.ReturnedAt != "12/06/2025 09:30" {
		t.Fatalf("unexpected return timestamp: %q", ret.ReturnedAt)
	}
	if !e.ListVehicles()[0].Available {
		t.Fatal("returned vehicle still unavailable")
	}
	r = e.rentals[0]
	if r.Open() || r.ActualReturnTime.Before(r.PickupTime) {
		t.Fatalf("unexpected rental after return: %+v", r)
	}

	// Open -> Closed is one-way.
	if _, err := e.ReturnVehicle(1); !errors.Is(err, ErrAlreadyReturned) {
		t.Fatalf("expected ErrAlreadyReturned, got %v", err)
	}
}

func TestRentUnavailableVehicle(t *testing.T) {
	e := setupFleet(t)
	if !e.Login("joao", "123") {
		t.Fatal("login failed")
	}
	if _, err := e.RentVehicle(1, "Carlos", "111", "555", 2, 50); err != nil {
		t.Fatalf("RentVehicle: %v", err)
	}

	// Repeated attempts are all rejected the same way until returned.
	for i := 0; i < 3; i++ {
		if _, err := e.RentVehicle(1, "Ana", "222", "556", 1, 80); !errors.Is(err, ErrVehicleUnavailable) {
			t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
		}
	}
	if len(e.rentals) != 1 {
		t.Fatalf("rejected rents must not append, got %d rentals", len(e.rentals))
	}

	if _, err := e.ReturnVehicle(1); err != nil {
		t.Fatalf("ReturnVehicle: %v", err)
	}
	if _, err := e.RentVehicle(1, "Ana", "222", "556", 1, 80); err != nil {
		t.Fatalf("rent after return: %v", err)
	}
}

func TestRentRequiresSession(t *testing.T) {
	e := setupFleet(t)
	e.Logout()

	if _, err := e.RentVehicle(1, "Carlos", "111", "555", 2, 50); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if _, err := e.ReturnVehicle(1); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestRentUnknownVehicle(t *testing.T) {
	e := setupFleet(t)
	if _, err := e.RentVehicle(42, "Carlos", "111", "555", 2, 50); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTotalAmount(t *testing.T) {
	e := setupFleet(t)
	loginAdmin(t, e)
	for i, tc := range []struct {
		days int
		rate float64
	}{
		{1, 0},
		{3, 100},
		{7, 89.9},
		{30, 45.5},
	} {
		plate := string(rune('A'+i)) + "AA000"
		if _, err := e.RegisterVehicle("V", "B", "2020", plate); err != nil {
			t.Fatalf("RegisterVehicle: %v", err)
		}
		conf, err := e.RentVehicle(i+2, "C", "111", "555", tc.days, tc.rate)
		if err != nil {
			t.Fatalf("RentVehicle: %v", err)
		}
		// Exact equality: the total is defined as days * rate, nothing else.
		if conf.TotalAmount != float64(tc.days)*tc.rate {
			t.Fatalf("days=%d rate=%v: total %v", tc.days, tc.rate, conf.TotalAmount)
		}
	}
}

func TestAnyUserMayReturn(t *testing.T) {
	e := setupFleet(t)
	if !e.Login("joao", "123") {
		t.Fatal("login failed")
	}
	if _, err := e.RentVehicle(1, "Carlos", "111", "555", 2, 50); err != nil {
		t.Fatalf("RentVehicle: %v", err)
	}

	// No ownership check against the renting user.
	loginAdmin(t, e)
	if _, err := e.ReturnVehicle(1); err != nil {
		t.Fatalf("ReturnVehicle by another user: %v", err)
	}
}

func TestListOpenRentals(t *testing.T) {
	e := setupFleet(t)
	loginAdmin(t, e)
	if _, err := e.RegisterVehicle("Gol", "VW", "2018", "XYZ789"); err != nil {
		t.Fatalf("RegisterVehicle: %v", err)
	}
	if _, err := e.RentVehicle(1, "Carlos", "111", "555", 2, 50); err != nil {
		t.Fatalf("RentVehicle: %v", err)
	}
	if _, err := e.RentVehicle(2, "Ana", "222", "556", 1, 80); err != nil {
		t.Fatalf("RentVehicle: %v", err)
	}
	if _, err := e.ReturnVehicle(1); err != nil {
		t.Fatalf("ReturnVehicle: %v", err)
	}

	open := e.ListOpenRentals()
	if len(open) != 1 || open[0].ID != 2 {
		t.Fatalf("unexpected open rentals: %+v", open)
	}
}
