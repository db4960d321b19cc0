package builder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDefaultState(t *testing.T) {
	c := Serialize(DefaultState())

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, []string(nil), missingKeys(fields, "queryType", "betType", "side", "timePeriod"))
	assert.Len(t, fields, 4, "default build should persist identity fields only, got %v", fields)
}

func missingKeys(fields map[string]any, keys ...string) []string {
	var missing []string
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

func TestSerializeKeepsReferenceRecords(t *testing.T) {
	s := DefaultState()
	s.QueryType = QueryTeam
	s.TeamID = 14
	s.VersusTeam = &TeamRef{ID: 21, Name: "Philadelphia Eagles", Abbr: "PHI", Resolved: true}

	c := Serialize(s)

	assert.Equal(t, 14, c.TeamID)
	assert.Equal(t, 21, c.VersusTeamID)
	assert.Equal(t, "Philadelphia Eagles", c.VersusTeamName)
	assert.Equal(t, "PHI", c.VersusTeamAbbr)
}

func TestSerializeStatCompanionsRequireActiveRank(t *testing.T) {
	s := DefaultState()
	s.DefenseStat = "rush"

	c := Serialize(s)
	assert.Empty(t, c.DefenseStat, "stat without an active rank is inert")

	s.DefenseRank = RankTop5
	c = Serialize(s)
	assert.Equal(t, "rush", c.DefenseStat)
	assert.Equal(t, RankTop5, c.DefenseRank)
}

func TestDeserializeEmptyConfig(t *testing.T) {
	assert.Equal(t, DefaultState(), Deserialize(SavedConfig{}))
}

func TestDeserializeRestoresResolvedTeam(t *testing.T) {
	c := SavedConfig{
		QueryType:      QueryTeam,
		TeamID:         14,
		VersusTeamID:   21,
		VersusTeamName: "Philadelphia Eagles",
		VersusTeamAbbr: "PHI",
	}
	s := Deserialize(c)

	require.NotNil(t, s.VersusTeam)
	assert.True(t, s.VersusTeam.Resolved, "a saved record carries its own display fields")
	assert.Equal(t, "Philadelphia Eagles", s.VersusTeam.Name)
}

func TestDeserializeBadValuesFallBack(t *testing.T) {
	c := SavedConfig{
		QueryType:  "weird",
		BetType:    "parlay",
		TimePeriod: "L99",
		Location:   "mars",
		SpreadMin:  "abc",
	}
	s := Deserialize(c)
	assert.Equal(t, DefaultState(), s)
}

func TestSavedConfigRoundTrip(t *testing.T) {
	s := DefaultState()
	s.QueryType = QueryProp
	s.TimePeriod = PeriodSince2023
	s.PropPosition = "WR"
	s.PropStat = "receptions"
	s.Player = &PlayerRef{ID: 4262921, Name: "Justin Jefferson", Position: "WR"}
	s.PropLineMode = LineModeBook
	s.BookLineMin = "5.5"
	s.MinTargets = "6"

	raw, err := json.Marshal(Serialize(s))
	require.NoError(t, err)

	var c SavedConfig
	require.NoError(t, json.Unmarshal(raw, &c))
	assert.Equal(t, s, Deserialize(c))
}

func TestSavedConfigJSONShape(t *testing.T) {
	s := DefaultState()
	s.QueryType = QueryReferee
	s.Referee = &RefereeRef{Name: "Carl Cheffers", GameCount: 44, Resolved: true}
	s.TotalMin = "44.5"

	raw, err := json.Marshal(Serialize(s))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "Carl Cheffers", fields["refereeName"])
	assert.Equal(t, "44.5", fields["totalMin"])
	assert.NotContains(t, fields, "gameCount", "only the name is persisted for referees")
}
