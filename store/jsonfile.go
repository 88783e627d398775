package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rental-ledger/models"
)

// JSONStore persists the ledger snapshot as a single JSON document.
// Saving rewrites the whole file through a temp file + rename so readers
// never observe a half-written document.
type JSONStore struct {
	Path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{Path: path}
}

// Records mirror the on-disk schema. Fields are pointers so the loader can
// tell an absent field from a zero value: only customer_name (older files)
// and actual_return_time (open rentals) may legitimately be missing.
type userRecord struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type vehicleRecord struct {
	ID        *int    `json:"id"`
	Name      *string `json:"name"`
	Brand     *string `json:"brand"`
	Year      *string `json:"year"`
	Plate     *string `json:"plate"`
	Available *bool   `json:"available"`
}

type rentalRecord struct {
	RentalID            *int     `json:"rental_id"`
	VehicleID           *int     `json:"vehicle_id"`
	CustomerName        *string  `json:"customer_name"`
	RentedBy            *string  `json:"rented_by"`
	TaxID               *string  `json:"tax_id"`
	Phone               *string  `json:"phone"`
	Days                *int     `json:"days"`
	DailyRate           *float64 `json:"daily_rate"`
	TotalAmount         *float64 `json:"total_amount"`
	PickupTime          *string  `json:"pickup_time"`
	EstimatedReturnTime *string  `json:"estimated_return_time"`
	ActualReturnTime    *string  `json:"actual_return_time"`
}

type document struct {
	Users    []userRecord    `json:"users"`
	Vehicles []vehicleRecord `json:"vehicles"`
	Rentals  []rentalRecord  `json:"rentals"`
}

// Load reads the backing file. A missing file is an empty ledger, not an
// error; a present file must satisfy the schema.
func (s *JSONStore) Load() (Snapshot, error) {
	raw, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", s.Path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("parse %s: %w", s.Path, err)
	}

	var snap Snapshot
	for i, u := range doc.Users {
		if u.Username == nil || u.Password == nil || u.Role == nil {
			return Snapshot{}, fmt.Errorf("%w: users[%d]", ErrInvalidRecord, i)
		}
		snap.Users = append(snap.Users, models.User{
			Username: *u.Username,
			Password: *u.Password,
			Role:     models.Role(*u.Role),
		})
	}
	for i, v := range doc.Vehicles {
		if v.ID == nil || v.Name == nil || v.Brand == nil || v.Year == nil || v.Plate == nil || v.Available == nil {
			return Snapshot{}, fmt.Errorf("%w: vehicles[%d]", ErrInvalidRecord, i)
		}
		snap.Vehicles = append(snap.Vehicles, models.Vehicle{
			ID:        *v.ID,
			Name:      *v.Name,
			Brand:     *v.Brand,
			Year:      *v.Year,
			Plate:     *v.Plate,
			Available: *v.Available,
		})
	}
	for i, r := range doc.Rentals {
		rental, err := r.toModel()
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: rentals[%d]: %v", ErrInvalidRecord, i, err)
		}
		snap.Rentals = append(snap.Rentals, rental)
	}
	return snap, nil
}

func (r rentalRecord) toModel() (models.Rental, error) {
	if r.RentalID == nil || r.VehicleID == nil || r.RentedBy == nil || r.TaxID == nil ||
		r.Phone == nil || r.Days == nil || r.DailyRate == nil || r.TotalAmount == nil ||
		r.PickupTime == nil || r.EstimatedReturnTime == nil {
		return models.Rental{}, fmt.Errorf("missing required field")
	}

	pickup, err := parseTimestamp(*r.PickupTime)
	if err != nil {
		return models.Rental{}, fmt.Errorf("pickup_time: %v", err)
	}
	estimated, err := parseTimestamp(*r.EstimatedReturnTime)
	if err != nil {
		return models.Rental{}, fmt.Errorf("estimated_return_time: %v", err)
	}

	rental := models.Rental{
		ID:                  *r.RentalID,
		VehicleID:           *r.VehicleID,
		RentedBy:            *r.RentedBy,
		TaxID:               *r.TaxID,
		Phone:               *r.Phone,
		Days:                *r.Days,
		DailyRate:           *r.DailyRate,
		TotalAmount:         *r.TotalAmount,
		PickupTime:          pickup,
		EstimatedReturnTime: estimated,
	}
	// Older files predate the customer name column; default to empty.
	if r.CustomerName != nil {
		rental.CustomerName = *r.CustomerName
	}
	if r.ActualReturnTime != nil {
		actual, err := parseTimestamp(*r.ActualReturnTime)
		if err != nil {
			return models.Rental{}, fmt.Errorf("actual_return_time: %v", err)
		}
		rental.ActualReturnTime = &actual
	}
	return rental, nil
}

// parseTimestamp accepts RFC 3339 as written by Save, plus zoneless
// ISO-8601 as found in data files produced by older exports.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.Local)
}

// Save rewrites the whole file from the snapshot.
func (s *JSONStore) Save(snap Snapshot) error {
	doc := document{
		Users:    []userRecord{},
		Vehicles: []vehicleRecord{},
		Rentals:  []rentalRecord{},
	}
	for i := range snap.Users {
		u := snap.Users[i]
		role := string(u.Role)
		doc.Users = append(doc.Users, userRecord{Username: &u.Username, Password: &u.Password, Role: &role})
	}
	for i := range snap.Vehicles {
		v := snap.Vehicles[i]
		doc.Vehicles = append(doc.Vehicles, vehicleRecord{
			ID: &v.ID, Name: &v.Name, Brand: &v.Brand, Year: &v.Year, Plate: &v.Plate, Available: &v.Available,
		})
	}
	for i := range snap.Rentals {
		r := snap.Rentals[i]
		pickup := r.PickupTime.Format(time.RFC3339Nano)
		estimated := r.EstimatedReturnTime.Format(time.RFC3339Nano)
		rec := rentalRecord{
			RentalID:            &r.ID,
			VehicleID:           &r.VehicleID,
			CustomerName:        &r.CustomerName,
			RentedBy:            &r.RentedBy,
			TaxID:               &r.TaxID,
			Phone:               &r.Phone,
			Days:                &r.Days,
			DailyRate:           &r.DailyRate,
			TotalAmount:         &r.TotalAmount,
			PickupTime:          &pickup,
			EstimatedReturnTime: &estimated,
		}
		if r.ActualReturnTime != nil {
			actual := r.ActualReturnTime.Format(time.RFC3339Nano)
			rec.ActualReturnTime = &actual
		}
		doc.Rentals = append(doc.Rentals, rec)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	return nil
}
