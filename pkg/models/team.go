package models

// ColorScheme is one entry of the fixed team palette. The class triples come
// straight from the board stylesheet.
type ColorScheme struct {
	Background string `json:"bg"`
	Border     string `json:"border"`
	Highlight  string `json:"highlight"`
}

// TeamColorSchemes is the fixed 8-entry palette. Teams are assigned an index
// into it at creation time and keep it for life.
var TeamColorSchemes = []ColorScheme{
	{Background: "bg-blue-100", Border: "border-blue-300", Highlight: "bg-blue-200"},
	{Background: "bg-red-100", Border: "border-red-300", Highlight: "bg-red-200"},
	{Background: "bg-green-100", Border: "border-green-300", Highlight: "bg-green-200"},
	{Background: "bg-yellow-100", Border: "border-yellow-300", Highlight: "bg-yellow-200"},
	{Background: "bg-purple-100", Border: "border-purple-300", Highlight: "bg-purple-200"},
	{Background: "bg-pink-100", Border: "border-pink-300", Highlight: "bg-pink-200"},
	{Background: "bg-indigo-100", Border: "border-indigo-300", Highlight: "bg-indigo-200"},
	{Background: "bg-orange-100", Border: "border-orange-300", Highlight: "bg-orange-200"},
}

// Team is one scoring team on the board.
type Team struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	ColorIndex int    `json:"colorIndex"`
}

// Colors resolves the team's palette entry. Out-of-range indices (hand-edited
// storage) wrap instead of panicking.
func (t Team) Colors() ColorScheme {
	n := len(TeamColorSchemes)
	idx := ((t.ColorIndex % n) + n) % n
	return TeamColorSchemes[idx]
}

// DefaultTeams returns a fresh copy of the two-team starting roster.
func DefaultTeams() []Team {
	return []Team{
		{ID: 1, Name: "Team Alpha", Score: 0, ColorIndex: 0},
		{ID: 2, Name: "Team Beta", Score: 0, ColorIndex: 1},
	}
}

// TeamView is a team plus its resolved palette entry, as handed to the view.
type TeamView struct {
	Team
	ColorScheme ColorScheme `json:"colorScheme"`
}

// TeamResponse wraps team payloads in API replies.
type TeamResponse struct {
	Team  *TeamView  `json:"team,omitempty"`
	Teams []TeamView `json:"teams,omitempty"`
	Count int        `json:"count,omitempty"`
}
