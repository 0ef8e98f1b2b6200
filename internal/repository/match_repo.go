package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oggyb/gym-buddy/internal/db"
	"github.com/oggyb/gym-buddy/internal/domain"
)

// MatchRepository stores matches. Rows are never deleted; archiving flips Active.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// Create inserts a match.
func (r *MatchRepository) Create(ctx context.Context, m domain.Match) error {
	row := db.MatchFromDomain(m)
	return r.db.WithContext(ctx).Create(&row).Error
}

// Get loads a match by id.
func (r *MatchRepository) Get(ctx context.Context, id string) (domain.Match, error) {
	var row db.Match
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	if err != nil {
		return domain.Match{}, err
	}
	return row.ToDomain(), nil
}

// ActiveBetween finds the active match of the unordered pair (a, b).
func (r *MatchRepository) ActiveBetween(ctx context.Context, a, b string) (domain.Match, bool, error) {
	var rows []db.Match
	err := r.db.WithContext(ctx).
		Where("pair_key = ? AND active = ?", db.PairKey(a, b), true).
		Order("created_at ASC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return domain.Match{}, false, err
	}
	if len(rows) == 0 {
		return domain.Match{}, false, nil
	}
	return rows[0].ToDomain(), true, nil
}

// ActiveFor lists the active matches involving userID, newest first.
func (r *MatchRepository) ActiveFor(ctx context.Context, userID string) ([]domain.Match, error) {
	var rows []db.Match
	err := r.db.WithContext(ctx).
		Where("(user_a = ? OR user_b = ?) AND active = ?", userID, userID, true).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Match, len(rows))
	for i, m := range rows {
		out[i] = m.ToDomain()
	}
	return out, nil
}

// SetActive updates the active flag of a match.
func (r *MatchRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).Model(&db.Match{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// no row changed: either missing or already in that state
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
