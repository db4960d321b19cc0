package builder

// SavedConfig is the persisted form of a build: a flat JSON document with
// non-default fields only, references flattened to their stable identifiers
// plus display fields. It is the storage-side sibling of the URL codec and
// obeys the same round-trip law.
type SavedConfig struct {
	QueryType  QueryType  `json:"queryType"`
	BetType    BetType    `json:"betType,omitempty"`
	Side       Side       `json:"side,omitempty"`
	TimePeriod TimePeriod `json:"timePeriod"`

	Location   string `json:"location,omitempty"`
	Division   string `json:"division,omitempty"`
	Conference string `json:"conference,omitempty"`
	Playoff    string `json:"playoff,omitempty"`
	Favorite   string `json:"favorite,omitempty"`
	HomeFavDog string `json:"homeFavDog,omitempty"`

	OwnDefenseRank RankFilter `json:"ownDefenseRank,omitempty"`
	OwnDefenseStat string     `json:"ownDefenseStat,omitempty"`
	OwnOffenseRank RankFilter `json:"ownOffenseRank,omitempty"`
	OwnOffenseStat string     `json:"ownOffenseStat,omitempty"`

	DefenseRank RankFilter `json:"defenseRank,omitempty"`
	DefenseStat string     `json:"defenseStat,omitempty"`
	OffenseRank RankFilter `json:"offenseRank,omitempty"`
	OffenseStat string     `json:"offenseStat,omitempty"`

	DefenseStatPosition    string `json:"defenseStatPosition,omitempty"`
	OffenseStatPosition    string `json:"offenseStatPosition,omitempty"`
	OwnDefenseStatPosition string `json:"ownDefenseStatPosition,omitempty"`
	OwnOffenseStatPosition string `json:"ownOffenseStatPosition,omitempty"`

	TeamWinPctMin string `json:"teamWinPctMin,omitempty"`
	TeamWinPctMax string `json:"teamWinPctMax,omitempty"`
	OppWinPctMin  string `json:"oppWinPctMin,omitempty"`
	OppWinPctMax  string `json:"oppWinPctMax,omitempty"`

	SpreadMin string `json:"spreadMin,omitempty"`
	SpreadMax string `json:"spreadMax,omitempty"`
	TotalMin  string `json:"totalMin,omitempty"`
	TotalMax  string `json:"totalMax,omitempty"`
	MlMin     string `json:"mlMin,omitempty"`
	MlMax     string `json:"mlMax,omitempty"`

	SpreadMoveMin string `json:"spreadMoveMin,omitempty"`
	SpreadMoveMax string `json:"spreadMoveMax,omitempty"`
	TotalMoveMin  string `json:"totalMoveMin,omitempty"`
	TotalMoveMax  string `json:"totalMoveMax,omitempty"`
	MlMoveMin     string `json:"mlMoveMin,omitempty"`
	MlMoveMax     string `json:"mlMoveMax,omitempty"`

	HomeTeamDefenseRank RankFilter `json:"homeTeamDefenseRank,omitempty"`
	HomeTeamDefenseStat string     `json:"homeTeamDefenseStat,omitempty"`
	HomeTeamOffenseRank RankFilter `json:"homeTeamOffenseRank,omitempty"`
	HomeTeamOffenseStat string     `json:"homeTeamOffenseStat,omitempty"`
	AwayTeamDefenseRank RankFilter `json:"awayTeamDefenseRank,omitempty"`
	AwayTeamDefenseStat string     `json:"awayTeamDefenseStat,omitempty"`
	AwayTeamOffenseRank RankFilter `json:"awayTeamOffenseRank,omitempty"`
	AwayTeamOffenseStat string     `json:"awayTeamOffenseStat,omitempty"`

	Streak                string `json:"streak,omitempty"`
	PrevGameMarginMin     string `json:"prevGameMarginMin,omitempty"`
	PrevGameMarginMax     string `json:"prevGameMarginMax,omitempty"`
	AwayStreak            string `json:"awayStreak,omitempty"`
	AwayPrevGameMarginMin string `json:"awayPrevGameMarginMin,omitempty"`
	AwayPrevGameMarginMax string `json:"awayPrevGameMarginMax,omitempty"`

	TeamID         int    `json:"teamId,omitempty"`
	TeamLocation   string `json:"teamLocation,omitempty"`
	VersusTeamID   int    `json:"versusTeamId,omitempty"`
	VersusTeamName string `json:"versusTeamName,omitempty"`
	VersusTeamAbbr string `json:"versusTeamAbbr,omitempty"`

	RefereeName string `json:"refereeName,omitempty"`

	PlayerID           int      `json:"playerId,omitempty"`
	PlayerName         string   `json:"playerName,omitempty"`
	PlayerPosition     string   `json:"playerPosition,omitempty"`
	PropPosition       string   `json:"propPosition,omitempty"`
	PropStat           string   `json:"propStat,omitempty"`
	PropLine           string   `json:"propLine,omitempty"`
	PropLineMode       LineMode `json:"propLineMode,omitempty"`
	BookLineMin        string   `json:"bookLineMin,omitempty"`
	BookLineMax        string   `json:"bookLineMax,omitempty"`
	PropVersusTeamID   int      `json:"propVersusTeamId,omitempty"`
	PropVersusTeamName string   `json:"propVersusTeamName,omitempty"`
	PropVersusTeamAbbr string   `json:"propVersusTeamAbbr,omitempty"`
	MinTargets         string   `json:"minTargets,omitempty"`
	MinCarries         string   `json:"minCarries,omitempty"`
	MinPassAttempts    string   `json:"minPassAttempts,omitempty"`
}

// Serialize produces the persisted config for a build. Like the URL encoder
// it drops fields at their default, but it keeps full reference records so a
// saved build restores without a lookup.
func Serialize(s FilterState) SavedConfig {
	c := SavedConfig{
		QueryType:  s.QueryType,
		TimePeriod: s.TimePeriod,
		BetType:    s.BetType,
		Side:       s.Side,
	}

	if s.Location != "any" {
		c.Location = s.Location
	}
	if s.Division != "any" {
		c.Division = s.Division
	}
	if s.Conference != "any" {
		c.Conference = s.Conference
	}
	if s.Playoff != "any" {
		c.Playoff = s.Playoff
	}
	if s.Favorite != "any" {
		c.Favorite = s.Favorite
	}
	if s.HomeFavDog != "any" {
		c.HomeFavDog = s.HomeFavDog
	}

	// Stat companions only persist alongside an active ranking.
	if s.OwnDefenseRank != RankAny {
		c.OwnDefenseRank = s.OwnDefenseRank
		c.OwnDefenseStat = s.OwnDefenseStat
		c.OwnDefenseStatPosition = s.OwnDefenseStatPosition
	}
	if s.OwnOffenseRank != RankAny {
		c.OwnOffenseRank = s.OwnOffenseRank
		c.OwnOffenseStat = s.OwnOffenseStat
		c.OwnOffenseStatPosition = s.OwnOffenseStatPosition
	}
	if s.DefenseRank != RankAny {
		c.DefenseRank = s.DefenseRank
		c.DefenseStat = s.DefenseStat
		c.DefenseStatPosition = s.DefenseStatPosition
	}
	if s.OffenseRank != RankAny {
		c.OffenseRank = s.OffenseRank
		c.OffenseStat = s.OffenseStat
		c.OffenseStatPosition = s.OffenseStatPosition
	}

	c.TeamWinPctMin = s.TeamWinPctMin
	c.TeamWinPctMax = s.TeamWinPctMax
	c.OppWinPctMin = s.OppWinPctMin
	c.OppWinPctMax = s.OppWinPctMax

	c.SpreadMin = s.SpreadMin
	c.SpreadMax = s.SpreadMax
	c.TotalMin = s.TotalMin
	c.TotalMax = s.TotalMax
	c.MlMin = s.MlMin
	c.MlMax = s.MlMax

	c.SpreadMoveMin = s.SpreadMoveMin
	c.SpreadMoveMax = s.SpreadMoveMax
	c.TotalMoveMin = s.TotalMoveMin
	c.TotalMoveMax = s.TotalMoveMax
	c.MlMoveMin = s.MlMoveMin
	c.MlMoveMax = s.MlMoveMax

	if s.HomeTeamDefenseRank != RankAny {
		c.HomeTeamDefenseRank = s.HomeTeamDefenseRank
		c.HomeTeamDefenseStat = s.HomeTeamDefenseStat
	}
	if s.HomeTeamOffenseRank != RankAny {
		c.HomeTeamOffenseRank = s.HomeTeamOffenseRank
		c.HomeTeamOffenseStat = s.HomeTeamOffenseStat
	}
	if s.AwayTeamDefenseRank != RankAny {
		c.AwayTeamDefenseRank = s.AwayTeamDefenseRank
		c.AwayTeamDefenseStat = s.AwayTeamDefenseStat
	}
	if s.AwayTeamOffenseRank != RankAny {
		c.AwayTeamOffenseRank = s.AwayTeamOffenseRank
		c.AwayTeamOffenseStat = s.AwayTeamOffenseStat
	}

	c.Streak = s.Streak
	c.PrevGameMarginMin = s.PrevGameMarginMin
	c.PrevGameMarginMax = s.PrevGameMarginMax
	c.AwayStreak = s.AwayStreak
	c.AwayPrevGameMarginMin = s.AwayPrevGameMarginMin
	c.AwayPrevGameMarginMax = s.AwayPrevGameMarginMax

	switch s.QueryType {
	case QueryTeam:
		c.TeamID = s.TeamID
		c.TeamLocation = s.TeamLocation
		if s.VersusTeam != nil {
			c.VersusTeamID = s.VersusTeam.ID
			c.VersusTeamName = s.VersusTeam.Name
			c.VersusTeamAbbr = s.VersusTeam.Abbr
		}
	case QueryReferee:
		if s.Referee != nil {
			c.RefereeName = s.Referee.Name
		}
	case QueryProp:
		if s.Player != nil {
			c.PlayerID = s.Player.ID
			c.PlayerName = s.Player.Name
			c.PlayerPosition = s.Player.Position
		}
		if s.PropPosition != "any" {
			c.PropPosition = s.PropPosition
		}
		c.PropStat = s.PropStat
		c.PropLine = s.PropLine
		c.PropLineMode = s.PropLineMode
		c.BookLineMin = s.BookLineMin
		c.BookLineMax = s.BookLineMax
		if s.PropVersusTeam != nil {
			c.PropVersusTeamID = s.PropVersusTeam.ID
			c.PropVersusTeamName = s.PropVersusTeam.Name
			c.PropVersusTeamAbbr = s.PropVersusTeam.Abbr
		}
		c.MinTargets = s.MinTargets
		c.MinCarries = s.MinCarries
		c.MinPassAttempts = s.MinPassAttempts
	}

	return c
}

// Deserialize restores a build from a persisted config, filling defaults for
// every omitted field. Like URL decoding it never fails; malformed enum
// values fall back to defaults.
func Deserialize(c SavedConfig) FilterState {
	s := DefaultState()

	if qt, ok := ParseQueryType(string(c.QueryType)); ok {
		s.QueryType = qt
	}
	if bt, ok := ParseBetType(string(c.BetType)); ok {
		s.BetType = bt
	}
	if side, ok := ParseSide(string(c.Side)); ok {
		s.Side = side
	}
	if tp, ok := ParseTimePeriod(string(c.TimePeriod)); ok {
		s.TimePeriod = tp
	}

	s.Location = enumOr(c.Location, locations, s.Location)
	s.Division = enumOr(c.Division, divisions, s.Division)
	s.Conference = enumOr(c.Conference, conferences, s.Conference)
	s.Playoff = enumOr(c.Playoff, playoffs, s.Playoff)
	s.Favorite = enumOr(c.Favorite, favorites, s.Favorite)
	s.HomeFavDog = enumOr(c.HomeFavDog, homeFavDogs, s.HomeFavDog)

	if r, ok := ParseRankFilter(string(c.OwnDefenseRank)); ok {
		s.OwnDefenseRank = r
		s.OwnDefenseStat = tokenOr(c.OwnDefenseStat, s.OwnDefenseStat)
		s.OwnDefenseStatPosition = c.OwnDefenseStatPosition
	}
	if r, ok := ParseRankFilter(string(c.OwnOffenseRank)); ok {
		s.OwnOffenseRank = r
		s.OwnOffenseStat = tokenOr(c.OwnOffenseStat, s.OwnOffenseStat)
		s.OwnOffenseStatPosition = c.OwnOffenseStatPosition
	}
	if r, ok := ParseRankFilter(string(c.DefenseRank)); ok {
		s.DefenseRank = r
		s.DefenseStat = tokenOr(c.DefenseStat, s.DefenseStat)
		s.DefenseStatPosition = c.DefenseStatPosition
	}
	if r, ok := ParseRankFilter(string(c.OffenseRank)); ok {
		s.OffenseRank = r
		s.OffenseStat = tokenOr(c.OffenseStat, s.OffenseStat)
		s.OffenseStatPosition = c.OffenseStatPosition
	}

	s.TeamWinPctMin = decimalOr(c.TeamWinPctMin, s.TeamWinPctMin)
	s.TeamWinPctMax = decimalOr(c.TeamWinPctMax, s.TeamWinPctMax)
	s.OppWinPctMin = decimalOr(c.OppWinPctMin, s.OppWinPctMin)
	s.OppWinPctMax = decimalOr(c.OppWinPctMax, s.OppWinPctMax)

	s.SpreadMin = decimalOr(c.SpreadMin, s.SpreadMin)
	s.SpreadMax = decimalOr(c.SpreadMax, s.SpreadMax)
	s.TotalMin = decimalOr(c.TotalMin, s.TotalMin)
	s.TotalMax = decimalOr(c.TotalMax, s.TotalMax)
	s.MlMin = decimalOr(c.MlMin, s.MlMin)
	s.MlMax = decimalOr(c.MlMax, s.MlMax)

	s.SpreadMoveMin = decimalOr(c.SpreadMoveMin, s.SpreadMoveMin)
	s.SpreadMoveMax = decimalOr(c.SpreadMoveMax, s.SpreadMoveMax)
	s.TotalMoveMin = decimalOr(c.TotalMoveMin, s.TotalMoveMin)
	s.TotalMoveMax = decimalOr(c.TotalMoveMax, s.TotalMoveMax)
	s.MlMoveMin = decimalOr(c.MlMoveMin, s.MlMoveMin)
	s.MlMoveMax = decimalOr(c.MlMoveMax, s.MlMoveMax)

	if r, ok := ParseRankFilter(string(c.HomeTeamDefenseRank)); ok {
		s.HomeTeamDefenseRank = r
		s.HomeTeamDefenseStat = tokenOr(c.HomeTeamDefenseStat, s.HomeTeamDefenseStat)
	}
	if r, ok := ParseRankFilter(string(c.HomeTeamOffenseRank)); ok {
		s.HomeTeamOffenseRank = r
		s.HomeTeamOffenseStat = tokenOr(c.HomeTeamOffenseStat, s.HomeTeamOffenseStat)
	}
	if r, ok := ParseRankFilter(string(c.AwayTeamDefenseRank)); ok {
		s.AwayTeamDefenseRank = r
		s.AwayTeamDefenseStat = tokenOr(c.AwayTeamDefenseStat, s.AwayTeamDefenseStat)
	}
	if r, ok := ParseRankFilter(string(c.AwayTeamOffenseRank)); ok {
		s.AwayTeamOffenseRank = r
		s.AwayTeamOffenseStat = tokenOr(c.AwayTeamOffenseStat, s.AwayTeamOffenseStat)
	}

	s.Streak = integerOr(c.Streak, s.Streak)
	s.PrevGameMarginMin = integerOr(c.PrevGameMarginMin, s.PrevGameMarginMin)
	s.PrevGameMarginMax = integerOr(c.PrevGameMarginMax, s.PrevGameMarginMax)
	s.AwayStreak = integerOr(c.AwayStreak, s.AwayStreak)
	s.AwayPrevGameMarginMin = integerOr(c.AwayPrevGameMarginMin, s.AwayPrevGameMarginMin)
	s.AwayPrevGameMarginMax = integerOr(c.AwayPrevGameMarginMax, s.AwayPrevGameMarginMax)

	switch s.QueryType {
	case QueryTeam:
		if c.TeamID > 0 {
			s.TeamID = c.TeamID
		}
		s.TeamLocation = enumOr(c.TeamLocation, locations, s.TeamLocation)
		if c.VersusTeamID > 0 {
			s.VersusTeam = &TeamRef{
				ID:       c.VersusTeamID,
				Name:     c.VersusTeamName,
				Abbr:     c.VersusTeamAbbr,
				Resolved: c.VersusTeamName != "",
			}
		}
	case QueryReferee:
		if c.RefereeName != "" {
			s.Referee = &RefereeRef{Name: c.RefereeName}
		}
	case QueryProp:
		if c.PlayerID > 0 {
			s.Player = &PlayerRef{ID: c.PlayerID, Name: c.PlayerName, Position: c.PlayerPosition}
		}
		s.PropPosition = enumOr(c.PropPosition, positions, s.PropPosition)
		if c.PropStat != "" && ValidPropStat(s.PropPosition, c.PropStat) {
			s.PropStat = c.PropStat
		}
		s.PropLine = decimalOr(c.PropLine, s.PropLine)
		if mode, ok := ParseLineMode(string(c.PropLineMode)); ok {
			s.PropLineMode = mode
		}
		s.BookLineMin = decimalOr(c.BookLineMin, s.BookLineMin)
		s.BookLineMax = decimalOr(c.BookLineMax, s.BookLineMax)
		if c.PropVersusTeamID > 0 {
			s.PropVersusTeam = &TeamRef{
				ID:       c.PropVersusTeamID,
				Name:     c.PropVersusTeamName,
				Abbr:     c.PropVersusTeamAbbr,
				Resolved: c.PropVersusTeamName != "",
			}
		}
		s.MinTargets = countOr(c.MinTargets, s.MinTargets)
		s.MinCarries = countOr(c.MinCarries, s.MinCarries)
		s.MinPassAttempts = countOr(c.MinPassAttempts, s.MinPassAttempts)
	}

	return s
}
