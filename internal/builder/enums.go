package builder

// QueryType selects which kind of build is being run. Several URL keys and
// request fields only have meaning under a specific query type.
type QueryType string

const (
	QueryTrend   QueryType = "trend"
	QueryTeam    QueryType = "team"
	QueryReferee QueryType = "referee"
	QueryProp    QueryType = "prop"
)

type BetType string

const (
	BetSpread    BetType = "spread"
	BetTotal     BetType = "total"
	BetMoneyline BetType = "moneyline"
)

type Side string

const (
	SideOver  Side = "over"
	SideUnder Side = "under"
)

// TimePeriod is one of twelve fixed tokens. since_2022 is the default; book
// line data only exists since_2023 (see Validate).
type TimePeriod string

const (
	PeriodL3         TimePeriod = "L3"
	PeriodL5         TimePeriod = "L5"
	PeriodL10        TimePeriod = "L10"
	PeriodL15        TimePeriod = "L15"
	PeriodL20        TimePeriod = "L20"
	PeriodL30        TimePeriod = "L30"
	PeriodSeason     TimePeriod = "season"
	PeriodLastSeason TimePeriod = "last_season"
	PeriodL2Years    TimePeriod = "L2years"
	PeriodL3Years    TimePeriod = "L3years"
	PeriodSince2023  TimePeriod = "since_2023"
	PeriodSince2022  TimePeriod = "since_2022"
)

// RankFilter buckets a team ranking (1-32) into top/bottom tiers.
type RankFilter string

const (
	RankAny      RankFilter = "any"
	RankTop5     RankFilter = "top_5"
	RankTop10    RankFilter = "top_10"
	RankTop15    RankFilter = "top_15"
	RankBottom15 RankFilter = "bottom_15"
	RankBottom10 RankFilter = "bottom_10"
	RankBottom5  RankFilter = "bottom_5"
)

// LineMode controls how prop lines are sourced: the sportsbook's published
// line ("book"), a user threshold combined with book filtering ("and"), or a
// plain user threshold ("any").
type LineMode string

const (
	LineModeBook LineMode = "book"
	LineModeAnd  LineMode = "and"
	LineModeAny  LineMode = "any"
)

var (
	queryTypes  = []QueryType{QueryTrend, QueryTeam, QueryReferee, QueryProp}
	betTypes    = []BetType{BetSpread, BetTotal, BetMoneyline}
	sides       = []Side{SideOver, SideUnder}
	timePeriods = []TimePeriod{
		PeriodL3, PeriodL5, PeriodL10, PeriodL15, PeriodL20, PeriodL30,
		PeriodSeason, PeriodLastSeason, PeriodL2Years, PeriodL3Years,
		PeriodSince2023, PeriodSince2022,
	}
	rankFilters = []RankFilter{
		RankAny, RankTop5, RankTop10, RankTop15,
		RankBottom15, RankBottom10, RankBottom5,
	}
	locations   = []string{"any", "home", "away"}
	divisions   = []string{"any", "division", "non_division"}
	conferences = []string{"any", "conference", "non_conference"}
	playoffs    = []string{"any", "playoff", "regular"}
	favorites   = []string{"any", "favorite", "underdog"}
	homeFavDogs = []string{"any", "home_fav", "home_dog"}
	positions   = []string{"any", "QB", "RB", "WR", "TE", "K"}
)

// TimePeriodLabels maps period tokens to their display labels, in menu order.
var TimePeriodLabels = map[TimePeriod]string{
	PeriodL3:         "Last 3",
	PeriodL5:         "Last 5",
	PeriodL10:        "Last 10",
	PeriodL15:        "Last 15",
	PeriodL20:        "Last 20",
	PeriodL30:        "Last 30",
	PeriodSeason:     "This Season",
	PeriodLastSeason: "Last Season",
	PeriodL2Years:    "Last 2 Years",
	PeriodL3Years:    "Last 3 Years",
	PeriodSince2023:  "Since 2023",
	PeriodSince2022:  "Since 2022",
}

// ParseQueryType validates s against the closed query type domain.
func ParseQueryType(s string) (QueryType, bool) {
	for _, q := range queryTypes {
		if string(q) == s {
			return q, true
		}
	}
	return "", false
}

func ParseBetType(s string) (BetType, bool) {
	for _, b := range betTypes {
		if string(b) == s {
			return b, true
		}
	}
	return "", false
}

func ParseSide(s string) (Side, bool) {
	for _, v := range sides {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

func ParseTimePeriod(s string) (TimePeriod, bool) {
	for _, p := range timePeriods {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

func ParseRankFilter(s string) (RankFilter, bool) {
	for _, r := range rankFilters {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

func ParseLineMode(s string) (LineMode, bool) {
	switch LineMode(s) {
	case LineModeBook, LineModeAnd, LineModeAny:
		return LineMode(s), true
	}
	return "", false
}

func inDomain(domain []string, s string) bool {
	for _, d := range domain {
		if d == s {
			return true
		}
	}
	return false
}
