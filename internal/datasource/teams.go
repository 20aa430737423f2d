package datasource

import "sort"

// teamAbbreviations maps full franchise names, as odds and injury feeds quote
// them, onto the internal abbreviations.
var teamAbbreviations = map[string]string{
	"Arizona Cardinals":    "ARI",
	"Atlanta Falcons":      "ATL",
	"Baltimore Ravens":     "BAL",
	"Buffalo Bills":        "BUF",
	"Carolina Panthers":    "CAR",
	"Chicago Bears":        "CHI",
	"Cincinnati Bengals":   "CIN",
	"Cleveland Browns":     "CLE",
	"Dallas Cowboys":       "DAL",
	"Denver Broncos":       "DEN",
	"Detroit Lions":        "DET",
	"Green Bay Packers":    "GB",
	"Houston Texans":       "HOU",
	"Indianapolis Colts":   "IND",
	"Jacksonville Jaguars": "JAX",
	"Kansas City Chiefs":   "KC",
	"Las Vegas Raiders":    "LV",
	"Los Angeles Chargers": "LAC",
	"Los Angeles Rams":     "LA",
	"Miami Dolphins":       "MIA",
	"Minnesota Vikings":    "MIN",
	"New England Patriots": "NE",
	"New Orleans Saints":   "NO",
	"New York Giants":      "NYG",
	"New York Jets":        "NYJ",
	"Philadelphia Eagles":  "PHI",
	"Pittsburgh Steelers":  "PIT",
	"San Francisco 49ers":  "SF",
	"Seattle Seahawks":     "SEA",
	"Tampa Bay Buccaneers": "TB",
	"Tennessee Titans":     "TEN",
	"Washington Commanders": "WAS",
}

// teamFullNames is the reverse mapping, built once at init.
var teamFullNames = func() map[string]string {
	m := make(map[string]string, len(teamAbbreviations))
	for full, abbr := range teamAbbreviations {
		m[abbr] = full
	}
	return m
}()

// TeamAbbreviation converts a full franchise name to its abbreviation.
// Unknown names pass through unchanged so a renamed franchise shows up in
// logs rather than vanishing.
func TeamAbbreviation(fullName string) string {
	if abbr, ok := teamAbbreviations[fullName]; ok {
		return abbr
	}
	return fullName
}

// TeamFullName converts an abbreviation to the full franchise name.
func TeamFullName(abbr string) string {
	if full, ok := teamFullNames[abbr]; ok {
		return full
	}
	return abbr
}

// IsKnownTeam reports whether the abbreviation belongs to a current franchise.
func IsKnownTeam(abbr string) bool {
	_, ok := teamFullNames[abbr]
	return ok
}

// AllTeams returns every franchise abbreviation in stable sorted order.
func AllTeams() []string {
	teams := make([]string, 0, len(teamFullNames))
	for abbr := range teamFullNames {
		teams = append(teams, abbr)
	}
	sort.Strings(teams)
	return teams
}
