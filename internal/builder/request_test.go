package builder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequestTrendDefaults(t *testing.T) {
	req, err := BuildRequest(DefaultState())
	require.NoError(t, err)

	trend, ok := req.(TrendRequest)
	require.True(t, ok)
	assert.Equal(t, QueryTrend, trend.RequestType())
	assert.Equal(t, BetSpread, trend.BetType)
	assert.Equal(t, "favorite", trend.Side, "default perspective when nothing narrows it")
	assert.Equal(t, PeriodSince2022, trend.Filters.TimePeriod)
}

func TestTrendSideDerivation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*FilterState)
		want string
	}{
		{"totals use the picked side", func(s *FilterState) {
			s.BetType = BetTotal
			s.Side = SideUnder
		}, "under"},
		{"favorite filter wins over location", func(s *FilterState) {
			s.Favorite = "underdog"
			s.Location = "home"
		}, "underdog"},
		{"location when no favorite", func(s *FilterState) {
			s.Location = "away"
		}, "away"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultState()
			tt.mod(&s)
			req, err := BuildRequest(s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.(TrendRequest).Side)
		})
	}
}

func TestBuildRequestTeam(t *testing.T) {
	s := DefaultState()
	s.QueryType = QueryTeam
	s.TeamID = 14
	s.TeamLocation = "away"
	s.VersusTeam = &TeamRef{ID: 21, Resolved: false}

	req, err := BuildRequest(s)
	require.NoError(t, err)

	team, ok := req.(TeamRequest)
	require.True(t, ok)
	assert.Equal(t, 14, team.TeamID)
	assert.Equal(t, 21, team.OpponentID, "unresolved refs still carry the id")
	assert.Equal(t, "away", team.Side)
}

func TestBuildRequestReferee(t *testing.T) {
	s := DefaultState()
	s.QueryType = QueryReferee
	s.Referee = &RefereeRef{Name: "Carl Cheffers"}

	req, err := BuildRequest(s)
	require.NoError(t, err)

	ref, ok := req.(RefereeRequest)
	require.True(t, ok)
	assert.Equal(t, "Carl Cheffers", ref.RefereeID)
	assert.Equal(t, "home", ref.Side)
}

func TestBuildRequestPropNeedsSubject(t *testing.T) {
	s := DefaultState()
	s.QueryType = QueryProp
	s.PropPosition = "any"
	s.Player = nil

	_, err := BuildRequest(s)
	assert.ErrorIs(t, err, ErrNoPropSubject)
}

func TestBuildRequestPropLineModes(t *testing.T) {
	base := func() FilterState {
		s := DefaultState()
		s.QueryType = QueryProp
		s.PropPosition = "WR"
		s.PropStat = "receiving_yards"
		s.PropLine = "75.5"
		s.BookLineMin = "60"
		s.BookLineMax = "80"
		return s
	}

	t.Run("custom line", func(t *testing.T) {
		s := base()
		req, err := BuildRequest(s)
		require.NoError(t, err)
		prop := req.(PropRequest)
		assert.False(t, prop.UseBookLines)
		assert.Equal(t, 75.5, prop.Line)
		assert.Nil(t, prop.BookLineMin)
	})

	t.Run("book line", func(t *testing.T) {
		s := base()
		s.PropLineMode = LineModeBook
		req, err := BuildRequest(s)
		require.NoError(t, err)
		prop := req.(PropRequest)
		assert.True(t, prop.UseBookLines)
		assert.Zero(t, prop.Line, "book mode grades against the book's own line")
		require.NotNil(t, prop.BookLineMin)
		assert.Equal(t, 60.0, *prop.BookLineMin)
	})

	t.Run("combined", func(t *testing.T) {
		s := base()
		s.PropLineMode = LineModeAnd
		req, err := BuildRequest(s)
		require.NoError(t, err)
		prop := req.(PropRequest)
		assert.True(t, prop.UseBookLines)
		assert.Equal(t, 75.5, prop.Line)
		require.NotNil(t, prop.BookLineMax)
		assert.Equal(t, 80.0, *prop.BookLineMax)
	})
}

func TestBuildFiltersStreakSplit(t *testing.T) {
	s := DefaultState()
	s.Streak = "3"
	req, err := BuildRequest(s)
	require.NoError(t, err)
	f := req.(TrendRequest).Filters
	assert.Equal(t, 3, f.WinningStreak)
	assert.Zero(t, f.LosingStreak)

	s.Streak = "-4"
	req, err = BuildRequest(s)
	require.NoError(t, err)
	f = req.(TrendRequest).Filters
	assert.Zero(t, f.WinningStreak)
	assert.Equal(t, 4, f.LosingStreak)
}

func TestBuildFiltersMarginNeedsBothBounds(t *testing.T) {
	s := DefaultState()
	s.PrevGameMarginMin = "7"

	req, err := BuildRequest(s)
	require.NoError(t, err)
	assert.Nil(t, req.(TrendRequest).Filters.PrevGameMargin, "open-ended margin is not sent")

	s.PrevGameMarginMax = "14"
	req, err = BuildRequest(s)
	require.NoError(t, err)
	margin := req.(TrendRequest).Filters.PrevGameMargin
	require.NotNil(t, margin)
	assert.Equal(t, 7.0, *margin.Min)
	assert.Equal(t, 14.0, *margin.Max)
}

func TestBuildFiltersTotalsSwitchToFourWay(t *testing.T) {
	s := DefaultState()
	s.BetType = BetTotal
	s.Favorite = "favorite"
	s.OwnDefenseRank = RankTop5
	s.HomeFavDog = "home_fav"
	s.HomeTeamDefenseRank = RankTop10
	s.AwayStreak = "2"

	req, err := BuildRequest(s)
	require.NoError(t, err)
	f := req.(TrendRequest).Filters

	assert.Empty(t, f.IsFavorite, "fav/dog does not apply to totals")
	assert.Empty(t, f.OwnDefenseRank, "subject rankings do not apply to totals")
	assert.Equal(t, "home_fav", f.HomeFavDog)
	assert.Equal(t, "top_10", f.HomeTeamDefenseRank)
	assert.Equal(t, "overall", f.HomeTeamDefenseStat)
	assert.Equal(t, 2, f.AwayWinningStreak)
}

func TestRequestWireFormat(t *testing.T) {
	s := DefaultState()
	s.TimePeriod = PeriodL10
	s.Streak = "3"
	s.SpreadMin = "-7"
	s.SpreadMax = "-3"

	req, err := BuildRequest(s)
	require.NoError(t, err)

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "trend", body["type"])
	assert.Equal(t, "spread", body["bet_type"])

	filters, ok := body["filters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "L10", filters["time_period"])
	assert.Equal(t, float64(3), filters["winning_streak"])
	assert.NotContains(t, filters, "losing_streak")

	spread, ok := filters["spread_range"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, -7.0, spread["min"])
	assert.Equal(t, -3.0, spread["max"])
}
