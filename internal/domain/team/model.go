package team

import "strings"

// Team is one NFL franchise eligible for survivor picks.
type Team struct {
	Code string
	Name string
}

var catalog = []Team{
	{Code: "ARI", Name: "Arizona Cardinals"},
	{Code: "ATL", Name: "Atlanta Falcons"},
	{Code: "BAL", Name: "Baltimore Ravens"},
	{Code: "BUF", Name: "Buffalo Bills"},
	{Code: "CAR", Name: "Carolina Panthers"},
	{Code: "CHI", Name: "Chicago Bears"},
	{Code: "CIN", Name: "Cincinnati Bengals"},
	{Code: "CLE", Name: "Cleveland Browns"},
	{Code: "DAL", Name: "Dallas Cowboys"},
	{Code: "DEN", Name: "Denver Broncos"},
	{Code: "DET", Name: "Detroit Lions"},
	{Code: "GB", Name: "Green Bay Packers"},
	{Code: "HOU", Name: "Houston Texans"},
	{Code: "IND", Name: "Indianapolis Colts"},
	{Code: "JAX", Name: "Jacksonville Jaguars"},
	{Code: "KC", Name: "Kansas City Chiefs"},
	{Code: "LAC", Name: "Los Angeles Chargers"},
	{Code: "LAR", Name: "Los Angeles Rams"},
	{Code: "LV", Name: "Las Vegas Raiders"},
	{Code: "MIA", Name: "Miami Dolphins"},
	{Code: "MIN", Name: "Minnesota Vikings"},
	{Code: "NE", Name: "New England Patriots"},
	{Code: "NO", Name: "New Orleans Saints"},
	{Code: "NYG", Name: "New York Giants"},
	{Code: "NYJ", Name: "New York Jets"},
	{Code: "PHI", Name: "Philadelphia Eagles"},
	{Code: "PIT", Name: "Pittsburgh Steelers"},
	{Code: "SEA", Name: "Seattle Seahawks"},
	{Code: "SF", Name: "San Francisco 49ers"},
	{Code: "TB", Name: "Tampa Bay Buccaneers"},
	{Code: "TEN", Name: "Tennessee Titans"},
	{Code: "WAS", Name: "Washington Commanders"},
}

var byCode = func() map[string]Team {
	out := make(map[string]Team, len(catalog))
	for _, t := range catalog {
		out[t.Code] = t
	}
	return out
}()

// NormalizeCode maps user input onto the canonical team code form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func ByCode(code string) (Team, bool) {
	t, ok := byCode[NormalizeCode(code)]
	return t, ok
}

func IsValidCode(code string) bool {
	_, ok := byCode[NormalizeCode(code)]
	return ok
}

// All returns the league catalog ordered by team code.
func All() []Team {
	out := make([]Team, len(catalog))
	copy(out, catalog)
	return out
}
