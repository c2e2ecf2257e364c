package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"cfptracker/internal/model"
)

// CFPFilter holds the optional criteria applied when listing CFPs. All
// filters are conjunctive; zero values impose no constraint. String filters
// are case-insensitive substring matches. ClosingBefore keeps records whose
// closing date is at or before the given instant.
type CFPFilter struct {
	Location       string
	TargetAudience string
	EventType      string
	ClosingBefore  *time.Time
	Skip           int
	Limit          int // negative means no limit
}

// CFPRepository defines CFP persistence operations.
type CFPRepository interface {
	Create(ctx context.Context, cfp *model.CFP) error
	FindByID(ctx context.Context, id uint) (*model.CFP, error)
	List(ctx context.Context, filter CFPFilter) ([]model.CFP, error)
	Count(ctx context.Context, filter CFPFilter) (int64, error)
}

type cfpRepository struct {
	db *gorm.DB
}

// NewCFPRepository builds a GORM-backed repository.
func NewCFPRepository(db *gorm.DB) CFPRepository {
	return &cfpRepository{db: db}
}

func (r *cfpRepository) Create(ctx context.Context, cfp *model.CFP) error {
	return r.db.WithContext(ctx).Create(cfp).Error
}

func (r *cfpRepository) FindByID(ctx context.Context, id uint) (*model.CFP, error) {
	var cfp model.CFP
	if err := r.db.WithContext(ctx).First(&cfp, id).Error; err != nil {
		return nil, err
	}
	return &cfp, nil
}

// List returns CFPs matching the filter, ordered by closing date ascending
// (soonest-closing first) before skip/limit are applied.
func (r *cfpRepository) List(ctx context.Context, filter CFPFilter) ([]model.CFP, error) {
	var cfps []model.CFP
	q := applyFilter(r.db.WithContext(ctx).Model(&model.CFP{}), filter).
		Order("closing_date asc").
		Offset(filter.Skip).
		Limit(filter.Limit)
	if err := q.Find(&cfps).Error; err != nil {
		return nil, err
	}
	return cfps, nil
}

// Count returns the number of CFPs matching the filter, ignoring skip/limit.
func (r *cfpRepository) Count(ctx context.Context, filter CFPFilter) (int64, error) {
	var count int64
	q := applyFilter(r.db.WithContext(ctx).Model(&model.CFP{}), filter)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter adds the conjunctive WHERE clauses. LOWER(...) LIKE keeps the
// substring match case-insensitive regardless of column collation.
func applyFilter(q *gorm.DB, filter CFPFilter) *gorm.DB {
	if filter.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", contains(filter.Location))
	}
	if filter.TargetAudience != "" {
		q = q.Where("LOWER(target_audience) LIKE ?", contains(filter.TargetAudience))
	}
	if filter.EventType != "" {
		q = q.Where("LOWER(event_type) LIKE ?", contains(filter.EventType))
	}
	if filter.ClosingBefore != nil {
		q = q.Where("closing_date <= ?", *filter.ClosingBefore)
	}
	return q
}

func contains(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
