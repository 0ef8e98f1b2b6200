package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/oggyb/gym-buddy/internal/availability"
	"github.com/oggyb/gym-buddy/internal/db"
	"github.com/oggyb/gym-buddy/internal/domain"
)

// ProfileRepository reads profiles and facility reference data.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// LoadProfiles builds the snapshot the engine works on.
//
// Behavior:
//   - Users contains every active profile (current user included), ordered by id.
//   - Favorites are returned in their saved order.
//   - Returns domain.ErrUserNotFound if currentUserID is unknown.
func (r *ProfileRepository) LoadProfiles(ctx context.Context, currentUserID string) (domain.Snapshot, error) {
	var users []db.User
	if err := r.db.WithContext(ctx).
		Preload("Favorites").
		Where("active = ?", true).
		Order("id").
		Find(&users).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("load users: %w", err)
	}

	facilities, err := r.Facilities(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	var chains []db.Chain
	if err := r.db.WithContext(ctx).Order("id").Find(&chains).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("load chains: %w", err)
	}

	snap := domain.Snapshot{
		Users:      make([]domain.User, 0, len(users)),
		Facilities: facilities,
		Chains:     make([]domain.Chain, 0, len(chains)),
	}
	found := false
	for _, u := range users {
		du := u.ToDomain()
		if du.ID == currentUserID {
			snap.CurrentUser = du
			found = true
		}
		snap.Users = append(snap.Users, du)
	}
	for _, c := range chains {
		snap.Chains = append(snap.Chains, c.ToDomain())
	}
	if !found {
		return domain.Snapshot{}, domain.ErrUserNotFound
	}
	return snap, nil
}

// GetUser loads one profile with its favorites.
func (r *ProfileRepository) GetUser(ctx context.Context, id string) (domain.User, error) {
	var u db.User
	err := r.db.WithContext(ctx).Preload("Favorites").First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u.ToDomain(), nil
}

// UpdateProfile applies upd to the user's profile and returns the result.
//
// Behavior:
//   - A blank name keeps the current one.
//   - Level is clamped to 0..3.
//   - The availability blob is decoded and re-encoded in canonical form.
//   - Favorites are deduplicated and stored in the given order; every id must
//     be a known facility (domain.ErrFacilityNotFound otherwise).
//   - Returns domain.ErrUserNotFound if userID is unknown.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (domain.User, error) {
	cols := map[string]any{}
	setString := func(col string, v *string) {
		if v != nil {
			cols[col] = strings.TrimSpace(*v)
		}
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		setString("name", upd.Name)
	}
	setString("photo_url", upd.PhotoURL)
	setString("bio", upd.Bio)
	setString("birth_date", upd.BirthDate)
	setString("goal", upd.Goal)
	setString("region_code", upd.RegionCode)
	setString("department_code", upd.DepartmentCode)
	setString("city", upd.City)
	if upd.Level != nil {
		cols["level"] = min(max(*upd.Level, 0), 3)
	}
	if upd.AvailabilityMask != nil {
		m, err := availability.Decode(*upd.AvailabilityMask)
		if err != nil {
			return domain.User{}, err
		}
		cols["availability_mask"] = availability.Encode(m)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u db.User
		if err := tx.Select("id").First(&u, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		if len(cols) > 0 {
			if err := tx.Model(&db.User{}).Where("id = ?", userID).Updates(cols).Error; err != nil {
				return fmt.Errorf("update user: %w", err)
			}
		}

		if upd.Favorites == nil {
			return nil
		}
		favorites := domain.DedupeIDs(*upd.Favorites)
		if len(favorites) > 0 {
			var known int64
			if err := tx.Model(&db.Facility{}).Where("id IN ?", favorites).Count(&known).Error; err != nil {
				return err
			}
			if int(known) != len(favorites) {
				return domain.ErrFacilityNotFound
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&db.UserFavorite{}).Error; err != nil {
			return fmt.Errorf("clear favorites: %w", err)
		}
		if len(favorites) == 0 {
			return nil
		}
		rows := make([]db.UserFavorite, len(favorites))
		for i, id := range favorites {
			rows[i] = db.UserFavorite{UserID: userID, FacilityID: id, Position: i}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("save favorites: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return r.GetUser(ctx, userID)
}

// Facilities returns every facility ordered by id.
func (r *ProfileRepository) Facilities(ctx context.Context) ([]domain.Facility, error) {
	var rows []db.Facility
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load facilities: %w", err)
	}
	out := make([]domain.Facility, len(rows))
	for i, f := range rows {
		out[i] = f.ToDomain()
	}
	return out, nil
}

// GetFacility loads one facility.
func (r *ProfileRepository) GetFacility(ctx context.Context, id string) (domain.Facility, error) {
	var f db.Facility
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Facility{}, domain.ErrFacilityNotFound
	}
	if err != nil {
		return domain.Facility{}, err
	}
	return f.ToDomain(), nil
}
