package location

import (
	"errors"
	"time"
)

var (
	ErrNoRows = errors.New("no location rows")
)

// Table: locations. Reference data, seeded from YAML and read by the catalog.
type Location struct {
	ID               uint64    `gorm:"primaryKey;column:id" json:"-"`
	Name             string    `gorm:"column:name;size:128;uniqueIndex:ux_locations_name" json:"name" yaml:"name"`
	MonthlyRent      float64   `gorm:"column:monthly_rent;type:decimal(18,2)" json:"monthly_rent" yaml:"monthly_rent"`
	AppreciationRate *float64  `gorm:"column:appreciation_rate;type:decimal(6,4)" json:"appreciation_rate,omitempty" yaml:"appreciation_rate,omitempty"`
	RentalYield      *float64  `gorm:"column:rental_yield;type:decimal(6,4)" json:"rental_yield,omitempty" yaml:"rental_yield,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"-" yaml:"-"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-" yaml:"-"`
}

func (Location) TableName() string { return "locations" }
