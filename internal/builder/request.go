package builder

import (
	"errors"
	"strconv"
)

// Range bounds a numeric filter; either side may be open.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// QueryFilters is the wire form of the filter block sent to the query engine.
type QueryFilters struct {
	TimePeriod   TimePeriod `json:"time_period"`
	Location     string     `json:"location,omitempty"`
	IsDivision   string     `json:"is_division,omitempty"`
	IsConference string     `json:"is_conference,omitempty"`
	IsPlayoff    string     `json:"is_playoff,omitempty"`
	IsFavorite   string     `json:"is_favorite,omitempty"`

	OwnDefenseRank string `json:"own_defense_rank,omitempty"`
	OwnDefenseStat string `json:"own_defense_stat,omitempty"`
	OwnOffenseRank string `json:"own_offense_rank,omitempty"`
	OwnOffenseStat string `json:"own_offense_stat,omitempty"`

	VsDefenseRank string `json:"vs_defense_rank,omitempty"`
	DefenseStat   string `json:"defense_stat,omitempty"`
	VsOffenseRank string `json:"vs_offense_rank,omitempty"`
	OffenseStat   string `json:"offense_stat,omitempty"`

	DefenseStatPosition    string `json:"defense_stat_position,omitempty"`
	OffenseStatPosition    string `json:"offense_stat_position,omitempty"`
	OwnDefenseStatPosition string `json:"own_defense_stat_position,omitempty"`
	OwnOffenseStatPosition string `json:"own_offense_stat_position,omitempty"`

	TeamWinPct *Range `json:"team_win_pct,omitempty"`
	OppWinPct  *Range `json:"opp_win_pct,omitempty"`

	SpreadRange *Range `json:"spread_range,omitempty"`
	TotalRange  *Range `json:"total_range,omitempty"`

	HomeFavDog string `json:"home_fav_dog,omitempty"`

	HomeTeamDefenseRank string `json:"home_team_defense_rank,omitempty"`
	HomeTeamDefenseStat string `json:"home_team_defense_stat,omitempty"`
	HomeTeamOffenseRank string `json:"home_team_offense_rank,omitempty"`
	HomeTeamOffenseStat string `json:"home_team_offense_stat,omitempty"`
	AwayTeamDefenseRank string `json:"away_team_defense_rank,omitempty"`
	AwayTeamDefenseStat string `json:"away_team_defense_stat,omitempty"`
	AwayTeamOffenseRank string `json:"away_team_offense_rank,omitempty"`
	AwayTeamOffenseStat string `json:"away_team_offense_stat,omitempty"`

	WinningStreak      int    `json:"winning_streak,omitempty"`
	LosingStreak       int    `json:"losing_streak,omitempty"`
	PrevGameMargin     *Range `json:"prev_game_margin,omitempty"`
	AwayWinningStreak  int    `json:"away_winning_streak,omitempty"`
	AwayLosingStreak   int    `json:"away_losing_streak,omitempty"`
	AwayPrevGameMargin *Range `json:"away_prev_game_margin,omitempty"`

	SpreadMovementRange *Range `json:"spread_movement_range,omitempty"`
	TotalMovementRange  *Range `json:"total_movement_range,omitempty"`
	MlMovementRange     *Range `json:"ml_movement_range,omitempty"`

	OpponentID int `json:"opponent_id,omitempty"`

	MinTargets      int `json:"min_targets,omitempty"`
	MinCarries      int `json:"min_carries,omitempty"`
	MinPassAttempts int `json:"min_pass_attempts,omitempty"`
}

// QueryRequest is the tagged request sent to the query engine; exactly one
// concrete request type exists per query type, so a field irrelevant to the
// active type cannot be sent by construction.
type QueryRequest interface {
	RequestType() QueryType
}

type TrendRequest struct {
	Type    QueryType    `json:"type"`
	BetType BetType      `json:"bet_type"`
	Side    string       `json:"side"`
	Filters QueryFilters `json:"filters"`
}

type TeamRequest struct {
	Type       QueryType    `json:"type"`
	TeamID     int          `json:"team_id"`
	BetType    BetType      `json:"bet_type"`
	Location   string       `json:"location"`
	OpponentID int          `json:"opponent_id,omitempty"`
	Side       string       `json:"side"`
	Filters    QueryFilters `json:"filters"`
}

type RefereeRequest struct {
	Type      QueryType    `json:"type"`
	BetType   BetType      `json:"bet_type"`
	RefereeID string       `json:"referee_id,omitempty"`
	Side      string       `json:"side"`
	Filters   QueryFilters `json:"filters"`
}

type PropRequest struct {
	Type         QueryType    `json:"type"`
	PlayerID     int          `json:"player_id,omitempty"`
	Position     string       `json:"position,omitempty"`
	Stat         string       `json:"stat"`
	Line         float64      `json:"line"`
	UseBookLines bool         `json:"use_book_lines"`
	BookLineMin  *float64     `json:"book_line_min,omitempty"`
	BookLineMax  *float64     `json:"book_line_max,omitempty"`
	Filters      QueryFilters `json:"filters"`
}

func (TrendRequest) RequestType() QueryType   { return QueryTrend }
func (TeamRequest) RequestType() QueryType    { return QueryTeam }
func (RefereeRequest) RequestType() QueryType { return QueryReferee }
func (PropRequest) RequestType() QueryType    { return QueryProp }

// ErrNoPropSubject is returned when a prop build names neither a player nor
// a position; the engine has nothing to scan.
var ErrNoPropSubject = errors.New("prop build requires a player or a position")

// BuildRequest maps a build to its engine request. The mapping is exhaustive
// over query types and mirrors the applicability rules: subject/opponent
// filters for spread and moneyline builds, four-way and away-team filters
// for totals.
func BuildRequest(s FilterState) (QueryRequest, error) {
	f := buildFilters(s)

	switch s.QueryType {
	case QueryTeam:
		req := TeamRequest{
			Type:     QueryTeam,
			TeamID:   s.TeamID,
			BetType:  s.BetType,
			Location: s.TeamLocation,
			Side:     teamSide(s),
			Filters:  f,
		}
		if s.VersusTeam != nil {
			req.OpponentID = s.VersusTeam.ID
		}
		return req, nil

	case QueryReferee:
		req := RefereeRequest{
			Type:    QueryReferee,
			BetType: s.BetType,
			Side:    refereeSide(s),
			Filters: f,
		}
		if s.Referee != nil {
			req.RefereeID = s.Referee.Name
		}
		return req, nil

	case QueryProp:
		req := PropRequest{
			Type:    QueryProp,
			Stat:    s.PropStat,
			Filters: f,
		}
		switch {
		case s.Player != nil && s.Player.ID > 0:
			req.PlayerID = s.Player.ID
		case s.PropPosition != "" && s.PropPosition != "any":
			req.Position = s.PropPosition
		default:
			return nil, ErrNoPropSubject
		}
		switch s.PropLineMode {
		case LineModeBook:
			// Hit rate is computed against the book's own line.
			req.UseBookLines = true
			req.BookLineMin = floatPtr(s.BookLineMin)
			req.BookLineMax = floatPtr(s.BookLineMax)
		case LineModeAnd:
			// Filter by book lines but grade against the custom line.
			req.UseBookLines = true
			req.BookLineMin = floatPtr(s.BookLineMin)
			req.BookLineMax = floatPtr(s.BookLineMax)
			req.Line = floatValue(s.PropLine)
		default:
			req.Line = floatValue(s.PropLine)
		}
		return req, nil

	default:
		return TrendRequest{
			Type:    QueryTrend,
			BetType: s.BetType,
			Side:    trendSide(s),
			Filters: f,
		}, nil
	}
}

func buildFilters(s FilterState) QueryFilters {
	f := QueryFilters{TimePeriod: s.TimePeriod}

	if s.Division != "any" {
		f.IsDivision = s.Division
	}
	if s.Conference != "any" {
		f.IsConference = s.Conference
	}
	if s.Playoff != "any" {
		f.IsPlayoff = s.Playoff
	}

	if !s.IsOverUnder() {
		if s.Location != "any" {
			f.Location = s.Location
		}
		if s.Favorite != "any" {
			f.IsFavorite = s.Favorite
		}
		if s.OwnDefenseRank != RankAny {
			f.OwnDefenseRank = string(s.OwnDefenseRank)
			f.OwnDefenseStat = s.OwnDefenseStat
			f.OwnDefenseStatPosition = s.OwnDefenseStatPosition
		}
		if s.OwnOffenseRank != RankAny {
			f.OwnOffenseRank = string(s.OwnOffenseRank)
			f.OwnOffenseStat = s.OwnOffenseStat
			f.OwnOffenseStatPosition = s.OwnOffenseStatPosition
		}
		if s.DefenseRank != RankAny {
			f.VsDefenseRank = string(s.DefenseRank)
			f.DefenseStat = s.DefenseStat
			f.DefenseStatPosition = s.DefenseStatPosition
		}
		if s.OffenseRank != RankAny {
			f.VsOffenseRank = string(s.OffenseRank)
			f.OffenseStat = s.OffenseStat
			f.OffenseStatPosition = s.OffenseStatPosition
		}
		f.TeamWinPct = rangeOf(s.TeamWinPctMin, s.TeamWinPctMax)
		f.OppWinPct = rangeOf(s.OppWinPctMin, s.OppWinPctMax)
	} else {
		if s.HomeFavDog != "any" {
			f.HomeFavDog = s.HomeFavDog
		}
		if s.HomeTeamDefenseRank != RankAny {
			f.HomeTeamDefenseRank = string(s.HomeTeamDefenseRank)
			f.HomeTeamDefenseStat = s.HomeTeamDefenseStat
		}
		if s.HomeTeamOffenseRank != RankAny {
			f.HomeTeamOffenseRank = string(s.HomeTeamOffenseRank)
			f.HomeTeamOffenseStat = s.HomeTeamOffenseStat
		}
		if s.AwayTeamDefenseRank != RankAny {
			f.AwayTeamDefenseRank = string(s.AwayTeamDefenseRank)
			f.AwayTeamDefenseStat = s.AwayTeamDefenseStat
		}
		if s.AwayTeamOffenseRank != RankAny {
			f.AwayTeamOffenseRank = string(s.AwayTeamOffenseRank)
			f.AwayTeamOffenseStat = s.AwayTeamOffenseStat
		}
		f.AwayWinningStreak, f.AwayLosingStreak = splitStreak(s.AwayStreak)
		if s.AwayPrevGameMarginMin != "" && s.AwayPrevGameMarginMax != "" {
			f.AwayPrevGameMargin = rangeOf(s.AwayPrevGameMarginMin, s.AwayPrevGameMarginMax)
		}
	}

	f.SpreadRange = rangeOf(s.SpreadMin, s.SpreadMax)
	f.TotalRange = rangeOf(s.TotalMin, s.TotalMax)

	f.WinningStreak, f.LosingStreak = splitStreak(s.Streak)
	if s.PrevGameMarginMin != "" && s.PrevGameMarginMax != "" {
		f.PrevGameMargin = rangeOf(s.PrevGameMarginMin, s.PrevGameMarginMax)
	}

	f.SpreadMovementRange = rangeOf(s.SpreadMoveMin, s.SpreadMoveMax)
	f.TotalMovementRange = rangeOf(s.TotalMoveMin, s.TotalMoveMax)
	f.MlMovementRange = rangeOf(s.MlMoveMin, s.MlMoveMax)

	if s.QueryType == QueryProp {
		if s.PropVersusTeam != nil {
			f.OpponentID = s.PropVersusTeam.ID
		}
		if s.Location != "any" {
			f.Location = s.Location
		}
		f.MinTargets = intValue(s.MinTargets)
		f.MinCarries = intValue(s.MinCarries)
		f.MinPassAttempts = intValue(s.MinPassAttempts)
	}

	return f
}

// trendSide picks the perspective for a league-wide trend: totals use the
// over/under side, otherwise the fav/dog or home/away mini-filter decides.
func trendSide(s FilterState) string {
	if s.BetType == BetTotal {
		return string(s.Side)
	}
	if s.Favorite != "any" {
		return s.Favorite
	}
	if s.Location != "any" {
		return s.Location
	}
	return "favorite"
}

func teamSide(s FilterState) string {
	if s.BetType == BetTotal {
		return string(s.Side)
	}
	if s.TeamLocation == "away" {
		return "away"
	}
	return "home"
}

func refereeSide(s FilterState) string {
	if s.BetType == BetTotal {
		return string(s.Side)
	}
	if s.Location != "any" {
		return s.Location
	}
	return "home"
}

// splitStreak turns the signed streak token into the engine's separate
// winning/losing counts.
func splitStreak(streak string) (winning, losing int) {
	n, err := strconv.Atoi(streak)
	if err != nil {
		return 0, 0
	}
	if n > 0 {
		return n, 0
	}
	if n < 0 {
		return 0, -n
	}
	return 0, 0
}

func rangeOf(min, max string) *Range {
	lo := floatPtr(min)
	hi := floatPtr(max)
	if lo == nil && hi == nil {
		return nil
	}
	return &Range{Min: lo, Max: hi}
}

func floatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func floatValue(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func intValue(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
