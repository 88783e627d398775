package store

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rental-ledger/models"
)

// SQLiteStore keeps the snapshot in a local SQLite database. It honors the
// same contract as the JSON file: Save replaces the whole ledger, so the
// database always holds exactly one snapshot.
type SQLiteStore struct {
	db *gorm.DB
}

type userRow struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Role     string `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

type vehicleRow struct {
	ID        int `gorm:"primaryKey;autoIncrement:false"`
	Name      string
	Brand     string
	Year      string
	Plate     string `gorm:"uniqueIndex"`
	Available bool
}

func (vehicleRow) TableName() string { return "vehicles" }

type rentalRow struct {
	RentalID            int `gorm:"primaryKey;autoIncrement:false"`
	VehicleID           int `gorm:"index"`
	CustomerName        string
	RentedBy            string
	TaxID               string
	Phone               string
	Days                int
	DailyRate           float64
	TotalAmount         float64
	PickupTime          time.Time
	EstimatedReturnTime time.Time
	ActualReturnTime    *time.Time `gorm:"index"`
}

func (rentalRow) TableName() string { return "rentals" }

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&userRow{}, &vehicleRow{}, &rentalRow{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() (Snapshot, error) {
	var snap Snapshot

	var users []userRow
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return Snapshot{}, fmt.Errorf("load users: %w", err)
	}
	for _, u := range users {
		snap.Users = append(snap.Users, models.User{
			Username: u.Username,
			Password: u.Password,
			Role:     models.Role(u.Role),
		})
	}

	var vehicles []vehicleRow
	if err := s.db.Order("id").Find(&vehicles).Error; err != nil {
		return Snapshot{}, fmt.Errorf("load vehicles: %w", err)
	}
	for _, v := range vehicles {
		snap.Vehicles = append(snap.Vehicles, models.Vehicle{
			ID:        v.ID,
			Name:      v.Name,
			Brand:     v.Brand,
			Year:      v.Year,
			Plate:     v.Plate,
			Available: v.Available,
		})
	}

	var rentals []rentalRow
	if err := s.db.Order("rental_id").Find(&rentals).Error; err != nil {
		return Snapshot{}, fmt.Errorf("load rentals: %w", err)
	}
	for _, r := range rentals {
		snap.Rentals = append(snap.Rentals, models.Rental{
			ID:                  r.RentalID,
			VehicleID:           r.VehicleID,
			CustomerName:        r.CustomerName,
			RentedBy:            r.RentedBy,
			TaxID:               r.TaxID,
			Phone:               r.Phone,
			Days:                r.Days,
			DailyRate:           r.DailyRate,
			TotalAmount:         r.TotalAmount,
			PickupTime:          r.PickupTime,
			EstimatedReturnTime: r.EstimatedReturnTime,
			ActualReturnTime:    r.ActualReturnTime,
		})
	}
	return snap, nil
}

func (s *SQLiteStore) Save(snap Snapshot) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&userRow{}, &vehicleRow{}, &rentalRow{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("clear table: %w", err)
			}
		}

		var users []userRow
		for _, u := range snap.Users {
			users = append(users, userRow{Username: u.Username, Password: u.Password, Role: string(u.Role)})
		}
		if len(users) > 0 {
			if err := tx.Create(&users).Error; err != nil {
				return fmt.Errorf("save users: %w", err)
			}
		}

		var vehicles []vehicleRow
		for _, v := range snap.Vehicles {
			vehicles = append(vehicles, vehicleRow{
				ID: v.ID, Name: v.Name, Brand: v.Brand, Year: v.Year, Plate: v.Plate, Available: v.Available,
			})
		}
		if len(vehicles) > 0 {
			if err := tx.Create(&vehicles).Error; err != nil {
				return fmt.Errorf("save vehicles: %w", err)
			}
		}

		var rentals []rentalRow
		for _, r := range snap.Rentals {
			rentals = append(rentals, rentalRow{
				RentalID:            r.ID,
				VehicleID:           r.VehicleID,
				CustomerName:        r.CustomerName,
				RentedBy:            r.RentedBy,
				TaxID:               r.TaxID,
				Phone:               r.Phone,
				Days:                r.Days,
				DailyRate:           r.DailyRate,
				TotalAmount:         r.TotalAmount,
				PickupTime:          r.PickupTime,
				EstimatedReturnTime: r.EstimatedReturnTime,
				ActualReturnTime:    r.ActualReturnTime,
			})
		}
		if len(rentals) > 0 {
			if err := tx.Create(&rentals).Error; err != nil {
				return fmt.Errorf("save rentals: %w", err)
			}
		}
		return nil
	})
}
