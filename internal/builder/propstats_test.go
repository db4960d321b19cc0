package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPropStat(t *testing.T) {
	assert.True(t, ValidPropStat("QB", "pass_tds"))
	assert.True(t, ValidPropStat("any", "receptions"))
	assert.False(t, ValidPropStat("K", "receiving_yards"))
	assert.False(t, ValidPropStat("QB", "fg_made"))
	assert.True(t, ValidPropStat("LB", "pass_yards"), "unknown positions use the any domain")
}

func TestDefaultPropStat(t *testing.T) {
	assert.Equal(t, "pass_yards", DefaultPropStat("QB"))
	assert.Equal(t, "rush_yards", DefaultPropStat("RB"))
	assert.Equal(t, "fg_made", DefaultPropStat("K"))
	assert.Equal(t, "pass_yards", DefaultPropStat("nonsense"))
}
