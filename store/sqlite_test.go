package store

import (
	"path/filepath"
	"testing"

	"rental-ledger/models"
)

func newSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := newSQLite(t)

	want := sampleSnapshot()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(got.Users) != 2 || got.Users[0] != want.Users[0] || got.Users[1] != want.Users[1] {
		t.Fatalf("users mismatch: %+v", got.Users)
	}
	if len(got.Vehicles) != 2 || got.Vehicles[0] != want.Vehicles[0] {
		t.Fatalf("vehicles mismatch: %+v", got.Vehicles)
	}
	if len(got.Rentals) != 2 {
		t.Fatalf("rentals mismatch: %+v", got.Rentals)
	}

	closed, open := got.Rentals[0], got.Rentals[1]
	if !closed.PickupTime.Equal(want.Rentals[0].PickupTime) {
		t.Fatalf("pickup time drifted: %v", closed.PickupTime)
	}
	if closed.ActualReturnTime == nil || !closed.ActualReturnTime.Equal(*want.Rentals[0].ActualReturnTime) {
		t.Fatalf("actual return time drifted: %v", closed.ActualReturnTime)
	}
	if open.ActualReturnTime != nil {
		t.Fatal("open rental gained a return time through the round trip")
	}
}

func TestSQLiteEmptyDatabase(t *testing.T) {
	s := newSQLite(t)
	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Users) != 0 || len(snap.Vehicles) != 0 || len(snap.Rentals) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestSQLiteSaveReplacesSnapshot(t *testing.T) {
	s := newSQLite(t)

	if err := s.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := Snapshot{
		Users:    []models.User{{Username: "admin", Password: "admin", Role: models.RoleAdmin}},
		Vehicles: []models.Vehicle{{ID: 1, Name: "Uno", Brand: "Fiat", Year: "2015", Plate: "FFF000", Available: true}},
	}
	if err := s.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Users) != 1 || len(snap.Vehicles) != 1 || len(snap.Rentals) != 0 {
		t.Fatalf("save is not a full rewrite: %+v", snap)
	}
	if snap.Vehicles[0].Name != "Uno" {
		t.Fatalf("stale vehicle row survived: %+v", snap.Vehicles[0])
	}
}
