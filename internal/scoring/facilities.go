package scoring

import "github.com/oggyb/gym-buddy/internal/domain"

// FacilitySet indexes facility reference data by id.
type FacilitySet map[string]domain.Facility

// NewFacilitySet builds an index over facilities. Later duplicates win.
func NewFacilitySet(facilities []domain.Facility) FacilitySet {
	set := make(FacilitySet, len(facilities))
	for _, f := range facilities {
		set[f.ID] = f
	}
	return set
}

// Resolve expands favorite ids into facilities, dropping unknown ids.
func (s FacilitySet) Resolve(ids []string) []domain.Facility {
	out := make([]domain.Facility, 0, len(ids))
	for _, id := range domain.DedupeIDs(ids) {
		if f, ok := s[id]; ok {
			out = append(out, f)
		}
	}
	return out
}
