package builder

import (
	"fmt"
	"strconv"
)

// Periods with sportsbook line coverage. Book lines were first recorded for
// the 2023 season, so older windows cannot drive book or combined line modes.
var bookLinePeriods = map[TimePeriod]bool{
	PeriodL3:        true,
	PeriodL5:        true,
	PeriodL10:       true,
	PeriodL15:       true,
	PeriodL20:       true,
	PeriodL30:       true,
	PeriodSeason:    true,
	PeriodSince2023: true,
}

// ValidationError describes a single rejected field combination. Field names
// the camelCase state field so API clients can highlight the control.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks a state for contradictions the codec deliberately lets
// through. Decoding never fails; running a build requires a clean state.
func Validate(s FilterState) []ValidationError {
	var errs []ValidationError

	errs = appendRangeErr(errs, "spread", s.SpreadMin, s.SpreadMax)
	errs = appendRangeErr(errs, "total", s.TotalMin, s.TotalMax)
	errs = appendRangeErr(errs, "moneyline", s.MlMin, s.MlMax)
	errs = appendRangeErr(errs, "spreadMove", s.SpreadMoveMin, s.SpreadMoveMax)
	errs = appendRangeErr(errs, "totalMove", s.TotalMoveMin, s.TotalMoveMax)
	errs = appendRangeErr(errs, "mlMove", s.MlMoveMin, s.MlMoveMax)
	errs = appendRangeErr(errs, "prevGameMargin", s.PrevGameMarginMin, s.PrevGameMarginMax)
	errs = appendRangeErr(errs, "awayPrevGameMargin", s.AwayPrevGameMarginMin, s.AwayPrevGameMarginMax)

	errs = appendPctErr(errs, "teamWinPctMin", s.TeamWinPctMin)
	errs = appendPctErr(errs, "teamWinPctMax", s.TeamWinPctMax)
	errs = appendPctErr(errs, "oppWinPctMin", s.OppWinPctMin)
	errs = appendPctErr(errs, "oppWinPctMax", s.OppWinPctMax)
	errs = appendRangeErr(errs, "teamWinPct", s.TeamWinPctMin, s.TeamWinPctMax)
	errs = appendRangeErr(errs, "oppWinPct", s.OppWinPctMin, s.OppWinPctMax)

	if s.QueryType == QueryProp {
		if !ValidPropStat(s.PropPosition, s.PropStat) {
			errs = append(errs, ValidationError{
				Field:   "propStat",
				Message: fmt.Sprintf("stat %q is not tracked for position %q", s.PropStat, s.PropPosition),
			})
		}
		if s.PropLineMode != LineModeAny && !bookLinePeriods[s.TimePeriod] {
			errs = append(errs, ValidationError{
				Field:   "propLineMode",
				Message: "book lines are only available for periods within the 2023 season or later",
			})
		}
		errs = appendRangeErr(errs, "bookLine", s.BookLineMin, s.BookLineMax)
	}

	return errs
}

func appendRangeErr(errs []ValidationError, field, min, max string) []ValidationError {
	if min == "" || max == "" {
		return errs
	}
	lo, loErr := strconv.ParseFloat(min, 64)
	hi, hiErr := strconv.ParseFloat(max, 64)
	if loErr != nil || hiErr != nil {
		return errs
	}
	if lo > hi {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("min %s is greater than max %s", min, max),
		})
	}
	return errs
}

func appendPctErr(errs []ValidationError, field, v string) []ValidationError {
	if v == "" {
		return errs
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errs
	}
	if n < 0 || n > 100 {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: "win percentage must be between 0 and 100",
		})
	}
	return errs
}
