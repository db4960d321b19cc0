package builder

import (
	"fmt"
	"strconv"
	"strings"
)

// AppliedFilters renders the active filters as short display chips, one per
// non-default field, in a fixed group order: bet type, time period, game
// context, fav/dog, rankings, ranges, momentum, then query-type specifics.
// Presentation only; the chip count doubles as the "N filters" badge.
func AppliedFilters(s FilterState) []string {
	var chips []string
	ou := s.IsOverUnder()

	if s.QueryType != QueryProp {
		switch s.BetType {
		case BetTotal:
			if s.Side == SideUnder {
				chips = append(chips, "Under")
			} else {
				chips = append(chips, "Over")
			}
		case BetMoneyline:
			chips = append(chips, "Moneyline")
		default:
			chips = append(chips, "Spread")
		}
	}

	if label, ok := TimePeriodLabels[s.TimePeriod]; ok {
		chips = append(chips, label)
	}

	if !ou && s.Location != "any" {
		chips = append(chips, titleCase(s.Location))
	}
	if s.Division != "any" {
		if s.Division == "division" {
			chips = append(chips, "Division Game")
		} else {
			chips = append(chips, "Non-Division")
		}
	}
	if s.Conference != "any" {
		if s.Conference == "conference" {
			chips = append(chips, "Conference Game")
		} else {
			chips = append(chips, "Non-Conference")
		}
	}
	if s.Playoff != "any" {
		if s.Playoff == "playoff" {
			chips = append(chips, "Playoff")
		} else {
			chips = append(chips, "Regular Season")
		}
	}

	if !ou && s.Favorite != "any" {
		chips = append(chips, titleCase(s.Favorite))
	}
	if ou && s.HomeFavDog != "any" {
		if s.HomeFavDog == "home_fav" {
			chips = append(chips, "Home Favorite")
		} else {
			chips = append(chips, "Home Underdog")
		}
	}

	if !ou {
		chips = appendRankChip(chips, "Team", "Defense", s.OwnDefenseRank, s.OwnDefenseStat, defaultOwnDefenseStat)
		chips = appendRankChip(chips, "Team", "Offense", s.OwnOffenseRank, s.OwnOffenseStat, defaultOwnOffenseStat)
		chips = appendRankChip(chips, "vs", "Defense", s.DefenseRank, s.DefenseStat, "overall")
		chips = appendRankChip(chips, "vs", "Offense", s.OffenseRank, s.OffenseStat, "overall")
		chips = appendPctChip(chips, "Team Win%", s.TeamWinPctMin, s.TeamWinPctMax)
		chips = appendPctChip(chips, "Opp Win%", s.OppWinPctMin, s.OppWinPctMax)
	} else {
		chips = appendRankChip(chips, "Home", "D", s.HomeTeamDefenseRank, s.HomeTeamDefenseStat, defaultFourWayStat)
		chips = appendRankChip(chips, "Home", "O", s.HomeTeamOffenseRank, s.HomeTeamOffenseStat, defaultFourWayStat)
		chips = appendRankChip(chips, "Away", "D", s.AwayTeamDefenseRank, s.AwayTeamDefenseStat, defaultFourWayStat)
		chips = appendRankChip(chips, "Away", "O", s.AwayTeamOffenseRank, s.AwayTeamOffenseStat, defaultFourWayStat)
	}

	spreadLabel := "Spread"
	if ou {
		spreadLabel = "Home Spread"
	}
	chips = appendRangeChip(chips, spreadLabel, s.SpreadMin, s.SpreadMax)
	chips = appendRangeChip(chips, "Total", s.TotalMin, s.TotalMax)
	chips = appendRangeChip(chips, "ML", s.MlMin, s.MlMax)
	chips = appendRangeChip(chips, "Spread Move", s.SpreadMoveMin, s.SpreadMoveMax)
	chips = appendRangeChip(chips, "Total Move", s.TotalMoveMin, s.TotalMoveMax)
	chips = appendRangeChip(chips, "ML Move", s.MlMoveMin, s.MlMoveMax)

	subject := "Team"
	if ou {
		subject = "Home"
	}
	chips = appendStreakChip(chips, subject, s.Streak)
	chips = appendMarginChip(chips, subject, s.PrevGameMarginMin, s.PrevGameMarginMax)
	if ou {
		chips = appendStreakChip(chips, "Away", s.AwayStreak)
		chips = appendMarginChip(chips, "Away", s.AwayPrevGameMarginMin, s.AwayPrevGameMarginMax)
	}

	switch s.QueryType {
	case QueryTeam:
		chips = append(chips, teamChip(s))
		if s.VersusTeam != nil {
			chips = append(chips, "vs "+teamLabel(s.VersusTeam))
		}
	case QueryReferee:
		if s.Referee != nil {
			chips = append(chips, "Ref: "+s.Referee.Name)
		}
	case QueryProp:
		if s.Player != nil {
			chips = append(chips, s.Player.Name)
		} else if s.PropPosition != "any" {
			chips = append(chips, "All "+s.PropPosition+"s")
		}
		chips = append(chips, statLabel(s.PropStat))
		if s.PropLineMode == LineModeBook {
			if chip, ok := rangeChip("Book Line", s.BookLineMin, s.BookLineMax); ok {
				chips = append(chips, chip)
			} else {
				chips = append(chips, "Book Lines (any)")
			}
		} else if s.PropLine != "" {
			chips = append(chips, "Line: "+s.PropLine+"+")
		}
		if s.PropVersusTeam != nil {
			chips = append(chips, "vs "+teamLabel(s.PropVersusTeam))
		}
		if s.MinTargets != "" {
			chips = append(chips, s.MinTargets+"+ Targets")
		}
		if s.MinCarries != "" {
			chips = append(chips, s.MinCarries+"+ Carries")
		}
		if s.MinPassAttempts != "" {
			chips = append(chips, s.MinPassAttempts+"+ Pass Att")
		}
	}

	return chips
}

func appendRankChip(chips []string, subject, unit string, rank RankFilter, stat, neutralStat string) []string {
	if rank == RankAny {
		return chips
	}
	label := fmt.Sprintf("%s %s %s", subject, strings.ReplaceAll(string(rank), "_", " "), unit)
	if stat != neutralStat && stat != "overall" {
		label += " (" + stat + ")"
	}
	return append(chips, label)
}

func appendPctChip(chips []string, label, min, max string) []string {
	switch {
	case min != "" && max != "":
		return append(chips, fmt.Sprintf("%s: %s-%s", label, min, max))
	case min != "":
		return append(chips, fmt.Sprintf("%s: %s+", label, min))
	case max != "":
		return append(chips, fmt.Sprintf("%s: under %s", label, max))
	}
	return chips
}

func appendRangeChip(chips []string, label, min, max string) []string {
	if chip, ok := rangeChip(label, min, max); ok {
		return append(chips, chip)
	}
	return chips
}

func rangeChip(label, min, max string) (string, bool) {
	switch {
	case min != "" && max != "":
		return fmt.Sprintf("%s: %s to %s", label, signed(min), signed(max)), true
	case min != "":
		return fmt.Sprintf("%s: %s or more", label, signed(min)), true
	case max != "":
		return fmt.Sprintf("%s: %s or less", label, signed(max)), true
	}
	return "", false
}

func appendStreakChip(chips []string, subject, streak string) []string {
	n, err := strconv.Atoi(streak)
	if err != nil || n == 0 {
		return chips
	}
	if n > 0 {
		return append(chips, fmt.Sprintf("%s %dW Streak", subject, n))
	}
	return append(chips, fmt.Sprintf("%s %dL Streak", subject, -n))
}

func appendMarginChip(chips []string, subject, min, max string) []string {
	lo, loErr := strconv.Atoi(min)
	hi, hiErr := strconv.Atoi(max)
	hasLo, hasHi := loErr == nil, hiErr == nil

	switch {
	case hasLo && hasHi:
		if lo >= 0 && hi >= 0 {
			return append(chips, fmt.Sprintf("%s won prev by %d to %d", subject, lo, hi))
		}
		if lo < 0 && hi < 0 {
			return append(chips, fmt.Sprintf("%s lost prev by %d to %d", subject, -hi, -lo))
		}
		return append(chips, fmt.Sprintf("%s prev margin: %s to %s", subject, signed(min), signed(max)))
	case hasLo:
		if lo >= 0 {
			return append(chips, fmt.Sprintf("%s won prev by %d+", subject, lo))
		}
		return append(chips, fmt.Sprintf("%s lost prev by %d", subject, -lo))
	case hasHi:
		if hi >= 0 {
			return append(chips, fmt.Sprintf("%s won prev by %d", subject, hi))
		}
		return append(chips, fmt.Sprintf("%s lost prev by %d+", subject, -hi))
	}
	return chips
}

func teamChip(s FilterState) string {
	label := "Team #" + strconv.Itoa(s.TeamID)
	switch s.TeamLocation {
	case "home":
		return label + " at Home"
	case "away":
		return label + " Away"
	}
	return label
}

func teamLabel(ref *TeamRef) string {
	if ref.Resolved && ref.Name != "" {
		return ref.Name
	}
	return "Team #" + strconv.Itoa(ref.ID)
}

func statLabel(stat string) string {
	words := strings.Split(stat, "_")
	for i, w := range words {
		words[i] = titleCase(w)
	}
	return strings.Join(words, " ")
}

func signed(v string) string {
	if !strings.HasPrefix(v, "-") && !strings.HasPrefix(v, "+") {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
			return "+" + v
		}
	}
	return v
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
