package builder

import (
	"net/url"
	"strconv"
)

// The URL key table is a published contract: previously shared links must
// keep decoding forever, so keys are only ever added, never renamed. The
// legacy keys (through vsTeam) predate the O/U four-way filters; the keys
// after them were added for fields the first version of the share link
// didn't carry.

// Encode flattens a build into shareable query parameters. Fields at their
// default value are omitted to keep links short, except type and period which
// are always present so decoders can anchor on them. Fields that only apply
// under a specific query type or bet type are suppressed outside it.
func Encode(s FilterState) url.Values {
	params := url.Values{}

	params.Set("type", string(s.QueryType))

	// Bet type applies to trends, teams and refs; props have no bet type.
	if s.QueryType != QueryProp {
		params.Set("bet", string(s.BetType))
		if s.BetType == BetTotal && s.Side != "" {
			params.Set("side", string(s.Side))
		}
	}

	params.Set("period", string(s.TimePeriod))

	if s.Location != "any" {
		params.Set("loc", s.Location)
	}
	if s.Division != "any" {
		params.Set("div", s.Division)
	}
	if s.Conference != "any" {
		params.Set("conf", s.Conference)
	}
	if s.Playoff != "any" {
		params.Set("playoff", s.Playoff)
	}
	if !s.IsOverUnder() && s.Favorite != "any" {
		params.Set("fav", s.Favorite)
	}
	if s.IsOverUnder() && s.HomeFavDog != "any" {
		params.Set("homefav", s.HomeFavDog)
	}

	// Rankings
	if s.OwnDefenseRank != RankAny {
		params.Set("ownDef", string(s.OwnDefenseRank))
	}
	if s.OwnOffenseRank != RankAny {
		params.Set("ownOff", string(s.OwnOffenseRank))
	}
	if s.DefenseRank != RankAny {
		params.Set("vsDef", string(s.DefenseRank))
	}
	if s.OffenseRank != RankAny {
		params.Set("vsOff", string(s.OffenseRank))
	}
	if s.OwnDefenseStat != defaultOwnDefenseStat {
		params.Set("ownDefStat", s.OwnDefenseStat)
	}
	if s.OwnOffenseStat != defaultOwnOffenseStat {
		params.Set("ownOffStat", s.OwnOffenseStat)
	}
	if s.DefenseStat != defaultDefenseStat {
		params.Set("defStat", s.DefenseStat)
	}
	if s.OffenseStat != defaultOffenseStat {
		params.Set("offStat", s.OffenseStat)
	}

	// Ranges pass through as typed by the user; no rounding.
	setIfPresent(params, "spMin", s.SpreadMin)
	setIfPresent(params, "spMax", s.SpreadMax)
	setIfPresent(params, "totMin", s.TotalMin)
	setIfPresent(params, "totMax", s.TotalMax)
	setIfPresent(params, "mlMin", s.MlMin)
	setIfPresent(params, "mlMax", s.MlMax)

	setIfPresent(params, "spMoveMin", s.SpreadMoveMin)
	setIfPresent(params, "spMoveMax", s.SpreadMoveMax)
	setIfPresent(params, "totMoveMin", s.TotalMoveMin)
	setIfPresent(params, "totMoveMax", s.TotalMoveMax)
	setIfPresent(params, "mlMoveMin", s.MlMoveMin)
	setIfPresent(params, "mlMoveMax", s.MlMoveMax)

	setIfPresent(params, "teamWinMin", s.TeamWinPctMin)
	setIfPresent(params, "teamWinMax", s.TeamWinPctMax)
	setIfPresent(params, "oppWinMin", s.OppWinPctMin)
	setIfPresent(params, "oppWinMax", s.OppWinPctMax)

	setIfPresent(params, "streak", s.Streak)
	setIfPresent(params, "prevMin", s.PrevGameMarginMin)
	setIfPresent(params, "prevMax", s.PrevGameMarginMax)

	// O/U four-way rankings and away momentum only mean anything for totals.
	if s.IsOverUnder() {
		if s.HomeTeamDefenseRank != RankAny {
			params.Set("homeDef", string(s.HomeTeamDefenseRank))
		}
		if s.HomeTeamOffenseRank != RankAny {
			params.Set("homeOff", string(s.HomeTeamOffenseRank))
		}
		if s.AwayTeamDefenseRank != RankAny {
			params.Set("awayDef", string(s.AwayTeamDefenseRank))
		}
		if s.AwayTeamOffenseRank != RankAny {
			params.Set("awayOff", string(s.AwayTeamOffenseRank))
		}
		if s.HomeTeamDefenseStat != defaultFourWayStat {
			params.Set("homeDefStat", s.HomeTeamDefenseStat)
		}
		if s.HomeTeamOffenseStat != defaultFourWayStat {
			params.Set("homeOffStat", s.HomeTeamOffenseStat)
		}
		if s.AwayTeamDefenseStat != defaultFourWayStat {
			params.Set("awayDefStat", s.AwayTeamDefenseStat)
		}
		if s.AwayTeamOffenseStat != defaultFourWayStat {
			params.Set("awayOffStat", s.AwayTeamOffenseStat)
		}
		setIfPresent(params, "awayStreak", s.AwayStreak)
		setIfPresent(params, "awayPrevMin", s.AwayPrevGameMarginMin)
		setIfPresent(params, "awayPrevMax", s.AwayPrevGameMarginMax)
	}

	// Team-specific. References are carried by stable id only; the decoder
	// re-resolves the full record from the team table.
	if s.QueryType == QueryTeam {
		if s.TeamID != 0 {
			params.Set("team", strconv.Itoa(s.TeamID))
		}
		if s.TeamLocation != "any" {
			params.Set("teamLoc", s.TeamLocation)
		}
		if s.VersusTeam != nil {
			params.Set("opp", strconv.Itoa(s.VersusTeam.ID))
		}
	}

	// Referee-specific; referees have no numeric id, the name is the key.
	if s.QueryType == QueryReferee && s.Referee != nil {
		params.Set("ref", s.Referee.Name)
	}

	// Prop-specific
	if s.QueryType == QueryProp {
		if s.PropPosition != "any" {
			params.Set("pos", s.PropPosition)
		}
		if s.PropStat != "" && ValidPropStat(s.PropPosition, s.PropStat) {
			params.Set("stat", s.PropStat)
		}
		setIfPresent(params, "line", s.PropLine)
		if s.PropLineMode == LineModeBook || s.PropLineMode == LineModeAnd {
			params.Set("lineMode", string(s.PropLineMode))
			setIfPresent(params, "bookMin", s.BookLineMin)
			setIfPresent(params, "bookMax", s.BookLineMax)
		}
		if s.PropVersusTeam != nil {
			params.Set("vsTeam", strconv.Itoa(s.PropVersusTeam.ID))
		}
		setIfPresent(params, "minTgt", s.MinTargets)
		setIfPresent(params, "minCar", s.MinCarries)
		setIfPresent(params, "minPass", s.MinPassAttempts)
	}

	return params
}

// ShareURL builds the full shareable link for a build.
func ShareURL(origin string, s FilterState) string {
	return origin + "/builder?" + Encode(s).Encode()
}

// Decode restores a build from incoming query parameters. Decoding is total:
// unknown keys are ignored, out-of-domain enum values and unparsable numbers
// fall back to the field's default, and reference keys produce unresolved
// placeholders. A shared link must never hard-fail.
func Decode(params url.Values) FilterState {
	s := DefaultState()

	// Query type first: several keys below only apply under one type.
	if qt, ok := ParseQueryType(params.Get("type")); ok {
		s.QueryType = qt
	}
	if bt, ok := ParseBetType(params.Get("bet")); ok {
		s.BetType = bt
	}
	if side, ok := ParseSide(params.Get("side")); ok {
		s.Side = side
	}
	if tp, ok := ParseTimePeriod(params.Get("period")); ok {
		s.TimePeriod = tp
	}

	s.Location = enumOr(params.Get("loc"), locations, s.Location)
	s.Division = enumOr(params.Get("div"), divisions, s.Division)
	s.Conference = enumOr(params.Get("conf"), conferences, s.Conference)
	s.Playoff = enumOr(params.Get("playoff"), playoffs, s.Playoff)
	s.Favorite = enumOr(params.Get("fav"), favorites, s.Favorite)
	s.HomeFavDog = enumOr(params.Get("homefav"), homeFavDogs, s.HomeFavDog)

	s.OwnDefenseRank = rankOr(params.Get("ownDef"), s.OwnDefenseRank)
	s.OwnOffenseRank = rankOr(params.Get("ownOff"), s.OwnOffenseRank)
	s.DefenseRank = rankOr(params.Get("vsDef"), s.DefenseRank)
	s.OffenseRank = rankOr(params.Get("vsOff"), s.OffenseRank)

	// Stat companions are open tokens (pass/rush/points/overall plus the
	// wr/te/rb position cuts); any non-empty token is accepted.
	s.OwnDefenseStat = tokenOr(params.Get("ownDefStat"), s.OwnDefenseStat)
	s.OwnOffenseStat = tokenOr(params.Get("ownOffStat"), s.OwnOffenseStat)
	s.DefenseStat = tokenOr(params.Get("defStat"), s.DefenseStat)
	s.OffenseStat = tokenOr(params.Get("offStat"), s.OffenseStat)

	s.SpreadMin = decimalOr(params.Get("spMin"), s.SpreadMin)
	s.SpreadMax = decimalOr(params.Get("spMax"), s.SpreadMax)
	s.TotalMin = decimalOr(params.Get("totMin"), s.TotalMin)
	s.TotalMax = decimalOr(params.Get("totMax"), s.TotalMax)
	s.MlMin = decimalOr(params.Get("mlMin"), s.MlMin)
	s.MlMax = decimalOr(params.Get("mlMax"), s.MlMax)

	s.SpreadMoveMin = decimalOr(params.Get("spMoveMin"), s.SpreadMoveMin)
	s.SpreadMoveMax = decimalOr(params.Get("spMoveMax"), s.SpreadMoveMax)
	s.TotalMoveMin = decimalOr(params.Get("totMoveMin"), s.TotalMoveMin)
	s.TotalMoveMax = decimalOr(params.Get("totMoveMax"), s.TotalMoveMax)
	s.MlMoveMin = decimalOr(params.Get("mlMoveMin"), s.MlMoveMin)
	s.MlMoveMax = decimalOr(params.Get("mlMoveMax"), s.MlMoveMax)

	s.TeamWinPctMin = decimalOr(params.Get("teamWinMin"), s.TeamWinPctMin)
	s.TeamWinPctMax = decimalOr(params.Get("teamWinMax"), s.TeamWinPctMax)
	s.OppWinPctMin = decimalOr(params.Get("oppWinMin"), s.OppWinPctMin)
	s.OppWinPctMax = decimalOr(params.Get("oppWinMax"), s.OppWinPctMax)

	s.Streak = integerOr(params.Get("streak"), s.Streak)
	s.PrevGameMarginMin = integerOr(params.Get("prevMin"), s.PrevGameMarginMin)
	s.PrevGameMarginMax = integerOr(params.Get("prevMax"), s.PrevGameMarginMax)

	s.HomeTeamDefenseRank = rankOr(params.Get("homeDef"), s.HomeTeamDefenseRank)
	s.HomeTeamOffenseRank = rankOr(params.Get("homeOff"), s.HomeTeamOffenseRank)
	s.AwayTeamDefenseRank = rankOr(params.Get("awayDef"), s.AwayTeamDefenseRank)
	s.AwayTeamOffenseRank = rankOr(params.Get("awayOff"), s.AwayTeamOffenseRank)
	s.HomeTeamDefenseStat = tokenOr(params.Get("homeDefStat"), s.HomeTeamDefenseStat)
	s.HomeTeamOffenseStat = tokenOr(params.Get("homeOffStat"), s.HomeTeamOffenseStat)
	s.AwayTeamDefenseStat = tokenOr(params.Get("awayDefStat"), s.AwayTeamDefenseStat)
	s.AwayTeamOffenseStat = tokenOr(params.Get("awayOffStat"), s.AwayTeamOffenseStat)
	s.AwayStreak = integerOr(params.Get("awayStreak"), s.AwayStreak)
	s.AwayPrevGameMarginMin = integerOr(params.Get("awayPrevMin"), s.AwayPrevGameMarginMin)
	s.AwayPrevGameMarginMax = integerOr(params.Get("awayPrevMax"), s.AwayPrevGameMarginMax)

	if s.QueryType == QueryTeam {
		if id, err := strconv.Atoi(params.Get("team")); err == nil && id > 0 {
			s.TeamID = id
		}
		s.TeamLocation = enumOr(params.Get("teamLoc"), locations, s.TeamLocation)
		if id, err := strconv.Atoi(params.Get("opp")); err == nil && id > 0 {
			s.VersusTeam = &TeamRef{ID: id}
		}
	}

	if s.QueryType == QueryReferee {
		if name := params.Get("ref"); name != "" {
			s.Referee = &RefereeRef{Name: name}
		}
	}

	if s.QueryType == QueryProp {
		s.PropPosition = enumOr(params.Get("pos"), positions, s.PropPosition)
		if stat := params.Get("stat"); stat != "" {
			if ValidPropStat(s.PropPosition, stat) {
				s.PropStat = stat
			} else {
				s.PropStat = DefaultPropStat(s.PropPosition)
			}
		}
		s.PropLine = decimalOr(params.Get("line"), s.PropLine)
		if mode, ok := ParseLineMode(params.Get("lineMode")); ok && mode != LineModeAny {
			s.PropLineMode = mode
			s.BookLineMin = decimalOr(params.Get("bookMin"), s.BookLineMin)
			s.BookLineMax = decimalOr(params.Get("bookMax"), s.BookLineMax)
		}
		if id, err := strconv.Atoi(params.Get("vsTeam")); err == nil && id > 0 {
			s.PropVersusTeam = &TeamRef{ID: id}
		}
		s.MinTargets = countOr(params.Get("minTgt"), s.MinTargets)
		s.MinCarries = countOr(params.Get("minCar"), s.MinCarries)
		s.MinPassAttempts = countOr(params.Get("minPass"), s.MinPassAttempts)
	}

	return s
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

func enumOr(raw string, domain []string, fallback string) string {
	if raw != "" && inDomain(domain, raw) {
		return raw
	}
	return fallback
}

func rankOr(raw string, fallback RankFilter) RankFilter {
	if r, ok := ParseRankFilter(raw); ok {
		return r
	}
	return fallback
}

func tokenOr(raw, fallback string) string {
	if raw != "" {
		return raw
	}
	return fallback
}

// decimalOr keeps the raw string when it parses as a signed decimal;
// malformed values are treated as absent.
func decimalOr(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fallback
	}
	return raw
}

func integerOr(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	if _, err := strconv.Atoi(raw); err != nil {
		return fallback
	}
	return raw
}

func countOr(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return raw
}
