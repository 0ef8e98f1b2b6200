package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/gym-buddy/internal/db"
	"github.com/oggyb/gym-buddy/internal/domain"
)

// DecisionRepository provides data access for the swipe log.
// Rows are only ever inserted; a repeated swipe adds a new row.
type DecisionRepository struct {
	db *gorm.DB
}

// NewDecisionRepository creates a new repository bound to the given DB connection.
func NewDecisionRepository(database *gorm.DB) *DecisionRepository {
	return &DecisionRepository{db: database}
}

// Append inserts a decision.
//
// Example:
//
//	repo.Append(ctx, domain.Decision{ID: "s_1", SwiperID: "me", TargetID: "u_2", Value: domain.DecisionLike})
func (r *DecisionRepository) Append(ctx context.Context, d domain.Decision) error {
	row := db.DecisionFromDomain(d)
	return r.db.WithContext(ctx).Create(&row).Error
}

// DecisionsBy returns every decision made by swiperID, oldest first.
// Used to exclude already-seen profiles from recommendations.
func (r *DecisionRepository) DecisionsBy(ctx context.Context, swiperID string) ([]domain.Decision, error) {
	var rows []db.Decision
	err := r.db.WithContext(ctx).
		Where("swiper_id = ?", swiperID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainDecisions(rows), nil
}

// Between returns decisions a→b and b→a, oldest first.
func (r *DecisionRepository) Between(ctx context.Context, a, b string) ([]domain.Decision, error) {
	var rows []db.Decision
	err := r.db.WithContext(ctx).
		Where("(swiper_id = ? AND target_id = ?) OR (swiper_id = ? AND target_id = ?)", a, b, b, a).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainDecisions(rows), nil
}

// CountLikers returns how many distinct users liked targetID.
//
// Behavior:
//   - Users that targetID explicitly passed are excluded.
//   - Repeated likes from one user count once.
//   - Used in conjunction with Redis cache (DB is fallback).
func (r *DecisionRepository) CountLikers(ctx context.Context, targetID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("decisions d").
		Where("d.target_id = ? AND d.value = ?", targetID, string(domain.DecisionLike)).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM decisions d2
				WHERE d2.swiper_id = ?
				  AND d2.target_id = d.swiper_id
				  AND d2.value = ?
			)`, targetID, string(domain.DecisionPass)).
		Distinct("d.swiper_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// HasLiked checks whether swiperID has ever liked targetID.
func (r *DecisionRepository) HasLiked(ctx context.Context, swiperID, targetID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Decision{}).
		Where("swiper_id = ? AND target_id = ? AND value = ?", swiperID, targetID, string(domain.DecisionLike)).
		Count(&count).Error
	return count > 0, err
}

func toDomainDecisions(rows []db.Decision) []domain.Decision {
	out := make([]domain.Decision, len(rows))
	for i, d := range rows {
		out[i] = d.ToDomain()
	}
	return out
}
