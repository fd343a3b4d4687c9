// Package model contains domain models passed between pipeline stages.
package model

import "time"

// DateLayout is the PGN header date format ("2025.08.08").
const DateLayout = "2006.01.02"

// Result is one of the three literal PGN game outcomes. Anything else is
// rejected at ingestion and never reaches the aggregator.
type Result string

const (
	WhiteWin Result = "1-0"
	BlackWin Result = "0-1"
	Draw     Result = "1/2-1/2"
)

// Valid reports whether r is one of the three canonical outcomes.
func (r Result) Valid() bool {
	switch r {
	case WhiteWin, BlackWin, Draw:
		return true
	}
	return false
}

// RawGame is the per-game tuple handed in by collaborators (PGN readers,
// generators). Fields are recorded verbatim; validation happens in ingest.
type RawGame struct {
	White       string
	Black       string
	Result      string
	Tournament  string
	Date        string // PGN date header, possibly "????.??.??"
	Termination string
	Opening     string
	ECO         string
}

// GameRecord is a validated game. Immutable once created.
type GameRecord struct {
	White       string
	Black       string
	Result      Result
	Tournament  string
	Date        time.Time // zero when the raw date did not parse
	Termination string
	Opening     string
	ECO         string
}

// HasDate reports whether the game carried a parseable calendar date.
func (g GameRecord) HasDate() bool {
	return !g.Date.IsZero()
}

// Winner returns the name of the winning side, or "" on a draw.
func (g GameRecord) Winner() string {
	switch g.Result {
	case WhiteWin:
		return g.White
	case BlackWin:
		return g.Black
	}
	return ""
}

// Opponent returns the other side's name, or "" if name played neither side.
func (g GameRecord) Opponent(name string) string {
	switch name {
	case g.White:
		return g.Black
	case g.Black:
		return g.White
	}
	return ""
}

// Tally is a win/loss/draw counter triple used at the identity, opponent,
// and tournament levels.
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Games returns the number of games the tally covers.
func (t Tally) Games() int {
	return t.Wins + t.Losses + t.Draws
}

// Score returns wins plus half a point per draw.
func (t Tally) Score() float64 {
	return float64(t.Wins) + 0.5*float64(t.Draws)
}

// TournamentTally tracks per-tournament results. Games is maintained
// incrementally alongside the outcome counters, never recomputed.
type TournamentTally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
	Games  int `json:"games"`
}
