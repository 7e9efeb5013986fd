package assembler

// MaxSectionLevels is the deepest heading markdown supports.
const MaxSectionLevels = 6

// LevelCap clamps the configured section levels into [1, MaxSectionLevels].
func LevelCap(sectionLevels int) int {
	if sectionLevels <= 0 || sectionLevels > MaxSectionLevels {
		return MaxSectionLevels
	}
	return sectionLevels
}

// nextLevel returns the depth of the children of a node at level.
// Once the cap is reached, deeper nodes stay at the cap.
func nextLevel(level, limit int) int {
	if level >= limit {
		return limit
	}
	return level + 1
}
