package scoring

// DefaultLevel is assumed when a profile has no level.
const DefaultLevel = 1

var levelTable = [...]float64{1.0, 0.66, 0.33, 0.0}

// LevelScore scores two skill levels by their ordinal distance.
func LevelScore(a, b *int) float64 {
	diff := clampLevel(a) - clampLevel(b)
	if diff < 0 {
		diff = -diff
	}
	if diff > len(levelTable)-1 {
		diff = len(levelTable) - 1
	}
	return levelTable[diff]
}

// clampLevel resolves a missing level to DefaultLevel and clamps the rest to [0,3].
func clampLevel(l *int) int {
	if l == nil {
		return DefaultLevel
	}
	switch {
	case *l < 0:
		return 0
	case *l > len(levelTable)-1:
		return len(levelTable) - 1
	}
	return *l
}
