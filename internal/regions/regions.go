// Package regions holds the static reference data for supported
// administrative regions. Names must match the boundary dataset exactly;
// lookup is by exact string, no fuzzy matching.
package regions

var stateOrder = []string{"Punjab", "Haryana", "Uttar Pradesh", "Delhi"}

var districtsByState = map[string][]string{
	"Punjab":        {"Amritsar", "Bathinda", "Ferozepur", "Gurdaspur", "Hoshiarpur", "Jalandhar", "Ludhiana", "Patiala", "Sangrur"},
	"Haryana":       {"Ambala", "Hisar", "Karnal", "Kurukshetra", "Panipat", "Rohtak", "Sirsa", "Sonipat", "Yamunanagar"},
	"Uttar Pradesh": {"Agra", "Aligarh", "Bareilly", "Ghaziabad", "Kanpur", "Lucknow", "Meerut", "Varanasi"},
	"Delhi":         {"Central Delhi", "East Delhi", "New Delhi", "North Delhi", "South Delhi", "West Delhi"},
}

// States lists the supported states in display order.
func States() []string {
	out := make([]string, len(stateOrder))
	copy(out, stateOrder)
	return out
}

// Districts lists the districts of a state. ok is false for unknown states.
func Districts(state string) (districts []string, ok bool) {
	ds, ok := districtsByState[state]
	if !ok {
		return nil, false
	}
	out := make([]string, len(ds))
	copy(out, ds)
	return out, true
}
