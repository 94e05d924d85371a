package rank

import "golang.org/x/exp/slices"

// Definition is one tier of the experience ladder. The table is ordered by
// MinExperience ascending and the first entry is the zero floor, so every
// non-negative experience value resolves to exactly one tier.
type Definition struct {
	ID            string
	Name          string
	MinExperience int64
	Color         string
	Glow          bool
}

var table = []Definition{
	{ID: "unranked", Name: "Unranked", MinExperience: 0, Color: "#9ca3af"},
	{ID: "bronze", Name: "Bronze", MinExperience: 1000, Color: "#cd7f32"},
	{ID: "silver", Name: "Silver", MinExperience: 5000, Color: "#c0c0c0"},
	{ID: "gold", Name: "Gold", MinExperience: 15000, Color: "#ffd700"},
	{ID: "platinum", Name: "Platinum", MinExperience: 40000, Color: "#8bd1e8", Glow: true},
	{ID: "diamond", Name: "Diamond", MinExperience: 100000, Color: "#b9f2ff", Glow: true},
}

// List returns a copy of the rank table in ascending order.
func List() []Definition {
	result := make([]Definition, len(table))
	copy(result, table)
	return result
}

// Resolve returns the highest tier whose threshold is covered by experience.
// Thresholds are inclusive. Negative experience resolves to the floor tier.
func Resolve(experience int64) Definition {
	result := table[0]
	for _, def := range table {
		if experience < def.MinExperience {
			break
		}
		result = def
	}

	return result
}

// Next returns the tier immediately above the given one, or false if it is
// the terminal tier or unknown.
func Next(currentID string) (Definition, bool) {
	i := slices.IndexFunc(table, func(def Definition) bool { return def.ID == currentID })
	if i == -1 || i == len(table)-1 {
		return Definition{}, false
	}

	return table[i+1], true
}

// Progress returns the fraction in [0, 1] of the way from the current tier
// threshold to the next one. The terminal tier always reports 1.
func Progress(experience int64) float64 {
	current := Resolve(experience)
	next, ok := Next(current.ID)
	if !ok {
		return 1
	}

	fraction := float64(experience-current.MinExperience) /
		float64(next.MinExperience-current.MinExperience)
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}

	return fraction
}
