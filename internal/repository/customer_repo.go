package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Thedurancode/aitickets-sub000/internal/models"
	"gorm.io/gorm"
)

// CustomerRepository reads customers and their preference profiles.
type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (*models.EventGoer, error)
	FindByEmail(ctx context.Context, email string) (*models.EventGoer, error)
	// FindPreference returns nil (no error) when the customer has no
	// preference profile.
	FindPreference(ctx context.Context, goerID uint) (*models.CustomerPreference, error)
	// FindInactiveProfiles lists profiles whose last interaction is
	// before the cutoff, highest spenders first, capped at limit.
	FindInactiveProfiles(ctx context.Context, cutoff time.Time, limit int) ([]models.CustomerPreference, error)
	FindAllProfiles(ctx context.Context) ([]models.CustomerPreference, error)
	CountGoers(ctx context.Context) (int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*models.EventGoer, error) {
	var goer models.EventGoer
	if err := r.db.WithContext(ctx).First(&goer, id).Error; err != nil {
		return nil, err
	}
	return &goer, nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*models.EventGoer, error) {
	var goer models.EventGoer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&goer).Error; err != nil {
		return nil, err
	}
	return &goer, nil
}

func (r *customerRepository) FindPreference(ctx context.Context, goerID uint) (*models.CustomerPreference, error) {
	var pref models.CustomerPreference
	err := r.db.WithContext(ctx).Where("event_goer_id = ?", goerID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *customerRepository) FindInactiveProfiles(ctx context.Context, cutoff time.Time, limit int) ([]models.CustomerPreference, error) {
	var prefs []models.CustomerPreference
	err := r.db.WithContext(ctx).
		Preload("EventGoer").
		Where("last_interaction_at < ?", cutoff).
		Order("total_spent_cents DESC").
		Limit(limit).
		Find(&prefs).Error
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *customerRepository) FindAllProfiles(ctx context.Context) ([]models.CustomerPreference, error) {
	var prefs []models.CustomerPreference
	err := r.db.WithContext(ctx).
		Preload("EventGoer").
		Order("id ASC").
		Find(&prefs).Error
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *customerRepository) CountGoers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventGoer{}).Count(&count).Error
	return count, err
}
