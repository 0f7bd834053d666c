package components

// String returns the display name for a Species.
func (s Species) String() string {
	names := SpeciesNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// SpeciesNames returns the display names for all species.
// The order matches the Species constants.
func SpeciesNames() []string {
	return []string{"prey", "predator"}
}

// String returns the display name for a Direction.
func (d Direction) String() string {
	names := DirectionNames()
	if int(d) < len(names) {
		return names[d]
	}
	return "Unknown"
}

// DirectionNames returns the display names for all directions.
func DirectionNames() []string {
	return []string{"up", "down", "left", "right", "stay"}
}
