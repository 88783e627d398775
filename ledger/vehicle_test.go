package ledger

import (
	"errors"
	"testing"

	"rental-ledger/models"
)

func TestRegisterVehicle(t *testing.T) {
	e, _ := newTestEngine(t)
	loginAdmin(t, e)

	v, err := e.RegisterVehicle("Civic", "Honda", "2020", "ABC123")
	if err != nil {
		t.Fatalf("RegisterVehicle: %v", err)
	}
	if v.ID != 1 || !v.Available {
		t.Fatalf("unexpected vehicle: %+v", v)
	}

	v2, err := e.RegisterVehicle("Gol", "VW", "2018", "XYZ789")
	if err != nil {
		t.Fatalf("RegisterVehicle: %v", err)
	}
	if v2.ID != 2 {
		t.Fatalf("ids must be sequential, got %d", v2.ID)
	}
}

func TestRegisterVehicleDuplicatePlate(t *testing.T) {
	e, _ := newTestEngine(t)
	loginAdmin(t, e)
	if _, err := e.RegisterVehicle("Civic", "Honda", "2020", "ABC123"); err != nil {
		t.Fatalf("RegisterVehicle: %v", err)
	}

	// Plate uniqueness ignores case.
	if _, err := e.RegisterVehicle("Gol", "VW", "2018", "abc123"); !errors.Is(err, ErrDuplicatePlate) {
		t.Fatalf("expected ErrDuplicatePlate, got %v", err)
	}
	if len(e.ListVehicles()) != 1 {
		t.Fatal("rejected registration must not change the fleet")
	}
}

func TestRegisterVehicleRequiresAdmin(t *testing.T) {
	e, _ := newTestEngine(t)
	loginAdmin(t, e)
	if err := e.CreateUser("joao", "123", models.RoleStandard); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !e.Login("joao", "123") {
		t.Fatal("login failed")
	}

	if _, err := e.RegisterVehicle("Civic", "Honda", "2020", "ABC123"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	// No id was consumed by the rejected attempt.
	loginAdmin(t, e)
	v, err := e.RegisterVehicle("Civic", "Honda", "2020", "ABC123")
	if err != nil {
		t.Fatalf("RegisterVehicle: %v", err)
	}
	if v.ID != 1 {
		t.Fatalf("expected id 1, got %d", v.ID)
	}
}

func TestModifyVehicle(t *testing.T) {
	e, _ := newTestEngine(t)
	loginAdmin(t, e)
	if _, err := e.RegisterVehicle("Civic", "Honda", "2020", "ABC123"); err != nil {
		t.Fatalf("RegisterVehicle: %v", err)
	}
	if _, err := e.RegisterVehicle("Gol", "VW", "2018", "XYZ789"); err != nil {
		t.Fatalf("RegisterVehicle: %v", err)
	}

	// Empty fields keep their current value.
	v, err := e.ModifyVehicle(1, "Civic Touring", "", "2021", "")
	if err != nil {
		t.Fatalf("ModifyVehicle: %v", err)
	}
	if v.Name != "Civic Touring" || v.Brand != "Honda" || v.Year != "2021" || v.Plate != "ABC123" {
		t.Fatalf("unexpected vehicle after partial update: %+v", v)
	}

	if _, err := e.ModifyVehicle(99, "X", "", "", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Colliding with a different vehicle's plate is rejected, any case.
	if _, err := e.ModifyVehicle(1, "", "", "", "xyz789"); !errors.Is(err, ErrDuplicatePlate) {
		t.Fatalf("expected ErrDuplicatePlate, got %v", err)
	}
	// Re-submitting the vehicle's own plate is fine.
	if _, err := e.ModifyVehicle(1, "", "", "", "ABC123"); err != nil {
		t.Fatalf("ModifyVehicle with own plate: %v", err)
	}
}

func TestModifyVehicleRequiresAdmin(t *testing.T) {
	e, _ := newTestEngine(t)
	loginAdmin(t, e)
	if _, err := e.RegisterVehicle("Civic", "Honda", "2020", "ABC123"); err != nil {
		t.Fatalf("RegisterVehicle: %v", err)
	}
	e.Logout()

	if _, err := e.ModifyVehicle(1, "X", "", "", ""); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestListVehiclesInsertionOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	loginAdmin(t, e)
	for _, plate := range []string{"AAA111", "BBB222", "CCC333"} {
		if _, err := e.RegisterVehicle("V"+plate, "B", "2020", plate); err != nil {
			t.Fatalf("RegisterVehicle: %v", err)
		}
	}

	got := e.ListVehicles()
	if len(got) != 3 {
		t.Fatalf("expected 3 vehicles, got %d", len(got))
	}
	for i, v := range got {
		if v.ID != i+1 {
			t.Fatalf("vehicles out of insertion order: %+v", got)
		}
	}
}
