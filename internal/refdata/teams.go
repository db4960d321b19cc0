package refdata

import (
	"github.com/sahilm/fuzzy"

	"github.com/trendlinehq/builder-api/internal/builder"
)

// Team is one NFL franchise. IDs are the upstream provider's team ids and
// appear in share links and saved configs; they are stable across seasons.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Abbr string `json:"abbr"`
}

// NFLTeams lists all 32 franchises in alphabetical order.
var NFLTeams = []Team{
	{ID: 22, Name: "Arizona Cardinals", Abbr: "ARI"},
	{ID: 1, Name: "Atlanta Falcons", Abbr: "ATL"},
	{ID: 33, Name: "Baltimore Ravens", Abbr: "BAL"},
	{ID: 2, Name: "Buffalo Bills", Abbr: "BUF"},
	{ID: 29, Name: "Carolina Panthers", Abbr: "CAR"},
	{ID: 3, Name: "Chicago Bears", Abbr: "CHI"},
	{ID: 4, Name: "Cincinnati Bengals", Abbr: "CIN"},
	{ID: 5, Name: "Cleveland Browns", Abbr: "CLE"},
	{ID: 6, Name: "Dallas Cowboys", Abbr: "DAL"},
	{ID: 7, Name: "Denver Broncos", Abbr: "DEN"},
	{ID: 8, Name: "Detroit Lions", Abbr: "DET"},
	{ID: 9, Name: "Green Bay Packers", Abbr: "GB"},
	{ID: 34, Name: "Houston Texans", Abbr: "HOU"},
	{ID: 11, Name: "Indianapolis Colts", Abbr: "IND"},
	{ID: 30, Name: "Jacksonville Jaguars", Abbr: "JAX"},
	{ID: 12, Name: "Kansas City Chiefs", Abbr: "KC"},
	{ID: 13, Name: "Las Vegas Raiders", Abbr: "LV"},
	{ID: 24, Name: "Los Angeles Chargers", Abbr: "LAC"},
	{ID: 14, Name: "Los Angeles Rams", Abbr: "LAR"},
	{ID: 15, Name: "Miami Dolphins", Abbr: "MIA"},
	{ID: 16, Name: "Minnesota Vikings", Abbr: "MIN"},
	{ID: 17, Name: "New England Patriots", Abbr: "NE"},
	{ID: 18, Name: "New Orleans Saints", Abbr: "NO"},
	{ID: 19, Name: "New York Giants", Abbr: "NYG"},
	{ID: 20, Name: "New York Jets", Abbr: "NYJ"},
	{ID: 21, Name: "Philadelphia Eagles", Abbr: "PHI"},
	{ID: 23, Name: "Pittsburgh Steelers", Abbr: "PIT"},
	{ID: 25, Name: "San Francisco 49ers", Abbr: "SF"},
	{ID: 26, Name: "Seattle Seahawks", Abbr: "SEA"},
	{ID: 27, Name: "Tampa Bay Buccaneers", Abbr: "TB"},
	{ID: 10, Name: "Tennessee Titans", Abbr: "TEN"},
	{ID: 28, Name: "Washington Commanders", Abbr: "WAS"},
}

var teamsByID = func() map[int]Team {
	m := make(map[int]Team, len(NFLTeams))
	for _, t := range NFLTeams {
		m[t.ID] = t
	}
	return m
}()

// TeamByID looks up a franchise by its provider id.
func TeamByID(id int) (Team, bool) {
	t, ok := teamsByID[id]
	return t, ok
}

type teamSource []Team

func (s teamSource) String(i int) string { return s[i].Name + " " + s[i].Abbr }
func (s teamSource) Len() int            { return len(s) }

// SearchTeams fuzzy-matches teams by name or abbreviation, best match first.
func SearchTeams(query string) []Team {
	if query == "" {
		return nil
	}
	matches := fuzzy.FindFrom(query, teamSource(NFLTeams))
	results := make([]Team, 0, len(matches))
	for _, m := range matches {
		results = append(results, NFLTeams[m.Index])
	}
	return results
}

// ResolveTeamRef fills in the display fields of a placeholder ref. A ref with
// an unknown id is left unresolved rather than failing; the build still runs
// on the raw id.
func ResolveTeamRef(ref *builder.TeamRef) {
	if ref == nil || ref.Resolved {
		return
	}
	if t, ok := TeamByID(ref.ID); ok {
		ref.Name = t.Name
		ref.Abbr = t.Abbr
		ref.Resolved = true
	}
}
