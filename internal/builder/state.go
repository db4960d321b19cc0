package builder

// TeamRef references an NFL team. A ref decoded from a shared link carries
// only the id until it is upgraded against the team table; callers must not
// use Name/Abbr while Resolved is false.
type TeamRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name,omitempty"`
	Abbr     string `json:"abbr,omitempty"`
	Resolved bool   `json:"resolved"`
}

// RefereeRef references a referee by name. GameCount is zero until resolved
// against the referee list.
type RefereeRef struct {
	Name      string `json:"referee_name"`
	GameCount int    `json:"game_count"`
	Resolved  bool   `json:"resolved"`
}

// PlayerRef references a player for prop builds.
type PlayerRef struct {
	ID       int    `json:"espn_player_id"`
	Name     string `json:"name,omitempty"`
	Position string `json:"position,omitempty"`
}

// FilterState is the complete in-memory representation of one build. Numeric
// range fields are kept as decimal strings with the empty string meaning
// "not set"; values pass through the codec without rounding or reformatting.
type FilterState struct {
	// Query identity
	QueryType QueryType `json:"queryType"`
	BetType   BetType   `json:"betType"`
	Side      Side      `json:"side"` // totals only

	TimePeriod TimePeriod `json:"timePeriod"`

	// Game context
	Location   string `json:"location"`
	Division   string `json:"division"`
	Conference string `json:"conference"`
	Playoff    string `json:"playoff"`
	Favorite   string `json:"favorite"`
	HomeFavDog string `json:"homeFavDog"` // totals analog of Favorite

	// Subject team's own rankings
	OwnDefenseRank RankFilter `json:"ownDefenseRank"`
	OwnDefenseStat string     `json:"ownDefenseStat"`
	OwnOffenseRank RankFilter `json:"ownOffenseRank"`
	OwnOffenseStat string     `json:"ownOffenseStat"`

	// Opponent rankings
	DefenseRank RankFilter `json:"defenseRank"`
	DefenseStat string     `json:"defenseStat"`
	OffenseRank RankFilter `json:"offenseRank"`
	OffenseStat string     `json:"offenseStat"`

	// Position-specific stat companions (wr/te/rb suffixes)
	DefenseStatPosition    string `json:"defenseStatPosition"`
	OffenseStatPosition    string `json:"offenseStatPosition"`
	OwnDefenseStatPosition string `json:"ownDefenseStatPosition"`
	OwnOffenseStatPosition string `json:"ownOffenseStatPosition"`

	// Win percentage bounds (0-100)
	TeamWinPctMin string `json:"teamWinPctMin"`
	TeamWinPctMax string `json:"teamWinPctMax"`
	OppWinPctMin  string `json:"oppWinPctMin"`
	OppWinPctMax  string `json:"oppWinPctMax"`

	// Line ranges
	SpreadMin string `json:"spreadMin"`
	SpreadMax string `json:"spreadMax"`
	TotalMin  string `json:"totalMin"`
	TotalMax  string `json:"totalMax"`
	MlMin     string `json:"mlMin"`
	MlMax     string `json:"mlMax"`

	// Line movement ranges
	SpreadMoveMin string `json:"spreadMoveMin"`
	SpreadMoveMax string `json:"spreadMoveMax"`
	TotalMoveMin  string `json:"totalMoveMin"`
	TotalMoveMax  string `json:"totalMoveMax"`
	MlMoveMin     string `json:"mlMoveMin"`
	MlMoveMax     string `json:"mlMoveMax"`

	// O/U four-way rankings (both teams matter for totals)
	HomeTeamDefenseRank RankFilter `json:"homeTeamDefenseRank"`
	HomeTeamDefenseStat string     `json:"homeTeamDefenseStat"`
	HomeTeamOffenseRank RankFilter `json:"homeTeamOffenseRank"`
	HomeTeamOffenseStat string     `json:"homeTeamOffenseStat"`
	AwayTeamDefenseRank RankFilter `json:"awayTeamDefenseRank"`
	AwayTeamDefenseStat string     `json:"awayTeamDefenseStat"`
	AwayTeamOffenseRank RankFilter `json:"awayTeamOffenseRank"`
	AwayTeamOffenseStat string     `json:"awayTeamOffenseStat"`

	// Momentum. Streak is a signed count: positive = consecutive wins,
	// negative = consecutive losses. Away mirrors apply to totals only.
	Streak               string `json:"streak"`
	PrevGameMarginMin    string `json:"prevGameMarginMin"`
	PrevGameMarginMax    string `json:"prevGameMarginMax"`
	AwayStreak           string `json:"awayStreak"`
	AwayPrevGameMarginMin string `json:"awayPrevGameMarginMin"`
	AwayPrevGameMarginMax string `json:"awayPrevGameMarginMax"`

	// Team query
	TeamID       int      `json:"teamId"`
	TeamLocation string   `json:"teamLocation"`
	VersusTeam   *TeamRef `json:"selectedVersusTeam,omitempty"`

	// Referee query
	Referee *RefereeRef `json:"selectedReferee,omitempty"`

	// Prop query
	PropPosition    string      `json:"propPosition"`
	Player          *PlayerRef  `json:"selectedPlayer,omitempty"`
	PropStat        string      `json:"propStat"`
	PropLine        string      `json:"propLine"`
	PropLineMode    LineMode    `json:"propLineMode"`
	BookLineMin     string      `json:"bookLineMin"`
	BookLineMax     string      `json:"bookLineMax"`
	PropVersusTeam  *TeamRef    `json:"selectedPropVersusTeam,omitempty"`
	MinTargets      string      `json:"minTargets"`
	MinCarries      string      `json:"minCarries"`
	MinPassAttempts string      `json:"minPassAttempts"`
}

// Default stat companions differ per ranking field; these mirror the form's
// initial selections and drive omit-at-default encoding.
const (
	defaultOwnDefenseStat = "overall"
	defaultOwnOffenseStat = "overall"
	defaultDefenseStat    = "pass"
	defaultOffenseStat    = "points"
	defaultFourWayStat    = "overall"
	defaultTeamID         = 2 // Buffalo Bills
	defaultPropStat       = "pass_yards"
	defaultPropLine       = "250"
)

// DefaultState returns a brand-new, untouched build.
func DefaultState() FilterState {
	return FilterState{
		QueryType:  QueryTrend,
		BetType:    BetSpread,
		Side:       SideOver,
		TimePeriod: PeriodSince2022,

		Location:   "any",
		Division:   "any",
		Conference: "any",
		Playoff:    "any",
		Favorite:   "any",
		HomeFavDog: "any",

		OwnDefenseRank: RankAny,
		OwnDefenseStat: defaultOwnDefenseStat,
		OwnOffenseRank: RankAny,
		OwnOffenseStat: defaultOwnOffenseStat,
		DefenseRank:    RankAny,
		DefenseStat:    defaultDefenseStat,
		OffenseRank:    RankAny,
		OffenseStat:    defaultOffenseStat,

		HomeTeamDefenseRank: RankAny,
		HomeTeamDefenseStat: defaultFourWayStat,
		HomeTeamOffenseRank: RankAny,
		HomeTeamOffenseStat: defaultFourWayStat,
		AwayTeamDefenseRank: RankAny,
		AwayTeamDefenseStat: defaultFourWayStat,
		AwayTeamOffenseRank: RankAny,
		AwayTeamOffenseStat: defaultFourWayStat,

		TeamID:       defaultTeamID,
		TeamLocation: "any",

		PropPosition: "any",
		PropStat:     defaultPropStat,
		PropLine:     defaultPropLine,
		PropLineMode: LineModeAny,
	}
}

// Clear resets every filter to its default, keeping only the active query
// type. Matches the form's "clear filters" action.
func (s FilterState) Clear() FilterState {
	next := DefaultState()
	next.QueryType = s.QueryType
	return next
}

// IsOverUnder reports whether the build is scoped to the combined score of
// both teams, which switches several filters to their four-way form.
func (s FilterState) IsOverUnder() bool {
	return s.QueryType != QueryProp && s.BetType == BetTotal
}
