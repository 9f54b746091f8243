package repository

import (
	"context"
	"time"

	"github.com/Thedurancode/aitickets-sub000/internal/models"
	"gorm.io/gorm"
)

// EngagementRepository reads traffic and waitlist pressure signals.
type EngagementRepository interface {
	// CountEventPageViews counts views of one page kind for one event
	// within [from, to).
	CountEventPageViews(ctx context.Context, eventID uint, page string, from, to time.Time) (int64, error)
	// PageViewCounts counts views per event since the cutoff. A nil
	// eventIDs slice means all events with a non-null event id.
	PageViewCounts(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error)
	// CountWaiting counts entries currently in waiting status.
	CountWaiting(ctx context.Context, eventID uint) (int64, error)
	// WaitlistCountsSince counts waiting entries created on or after
	// the cutoff, per event.
	WaitlistCountsSince(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) CountEventPageViews(ctx context.Context, eventID uint, page string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PageView{}).
		Where("event_id = ? AND page = ? AND created_at >= ? AND created_at < ?", eventID, page, from, to).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) PageViewCounts(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.PageView{}).
		Where("event_id IS NOT NULL AND created_at >= ?", since)
	if eventIDs != nil {
		if len(eventIDs) == 0 {
			return map[uint]int64{}, nil
		}
		q = q.Where("event_id IN ?", eventIDs)
	}

	var rows []struct {
		EventID uint
		Views   int64
	}
	err := q.Select("event_id, COUNT(id) AS views").
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row.Views
	}
	return counts, nil
}

func (r *engagementRepository) CountWaiting(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("event_id = ? AND status = ?", eventID, models.WaitlistWaiting).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) WaitlistCountsSince(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error) {
	if len(eventIDs) == 0 {
		return map[uint]int64{}, nil
	}
	var rows []struct {
		EventID uint
		Entries int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("event_id IN ? AND status = ? AND created_at >= ?", eventIDs, models.WaitlistWaiting, since).
		Select("event_id, COUNT(id) AS entries").
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row.Entries
	}
	return counts, nil
}
