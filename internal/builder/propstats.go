package builder

// PropStatsByPosition lists the prop stats a given position can be queried on,
// in display order. The first entry is the default stat for that position.
// Defense/offense stat companions with a position suffix (wr/te/rb) are
// validated against the same tables.
var PropStatsByPosition = map[string][]string{
	"any": {"pass_yards", "rush_yards", "receiving_yards", "receptions"},
	"QB": {
		"pass_yards", "pass_tds", "pass_attempts", "completions",
		"interceptions", "rush_yards", "rush_tds", "rush_long",
	},
	"RB": {
		"rush_yards", "rush_tds", "rush_attempts", "rush_long",
		"receiving_yards", "receptions", "receiving_long",
	},
	"WR": {
		"receiving_yards", "receptions", "receiving_tds", "receiving_long",
		"rush_yards",
	},
	"TE": {"receiving_yards", "receptions", "receiving_tds", "receiving_long"},
	"K":  {"fg_made", "fg_attempts", "xp_made"},
}

// ValidPropStat reports whether stat is queryable for the given position.
func ValidPropStat(position, stat string) bool {
	stats, ok := PropStatsByPosition[position]
	if !ok {
		stats = PropStatsByPosition["any"]
	}
	for _, s := range stats {
		if s == stat {
			return true
		}
	}
	return false
}

// DefaultPropStat returns the fallback stat for a position, used when a
// decoded stat is outside the position's domain.
func DefaultPropStat(position string) string {
	if stats, ok := PropStatsByPosition[position]; ok && len(stats) > 0 {
		return stats[0]
	}
	return PropStatsByPosition["any"][0]
}
