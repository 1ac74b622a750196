package mysql

import (
	"context"
	"errors"
	"strings"

	locationDomain "propinvest/internal/domain/location"

	"gorm.io/gorm"
)

type LocationRepository struct{ db *gorm.DB }

func NewLocationRepository(db *gorm.DB) *LocationRepository { return &LocationRepository{db: db} }

func (r *LocationRepository) List(ctx context.Context) ([]locationDomain.Location, error) {
	var out []locationDomain.Location
	res := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&out)
	return out, res.Error
}

// Upsert inserts or updates a row by case-insensitive name.
func (r *LocationRepository) Upsert(ctx context.Context, l *locationDomain.Location) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur locationDomain.Location
		err := tx.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(l.Name))).First(&cur).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(l).Error
		case err != nil:
			return err
		}
		l.ID = cur.ID
		l.CreatedAt = cur.CreatedAt
		return tx.Save(l).Error
	})
}
