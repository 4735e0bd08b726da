package models

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// BracketSlot is a single play-off position (QF1..QF4, SF1, SF2, F).
// HomeRef/AwayRef are seed placeholders ("1A") or forward references ("W QF1").
type BracketSlot struct {
	ID             string `json:"id"`
	Round          string `json:"round"`
	HomeRef        string `json:"home_ref"`
	AwayRef        string `json:"away_ref"`
	HomeResolved   string `json:"home_resolved"`
	AwayResolved   string `json:"away_resolved"`
	HomePts        *int   `json:"home_pts,omitempty"`
	AwayPts        *int   `json:"away_pts,omitempty"`
	Score          string `json:"score,omitempty"`
	WinnerSide     *Side  `json:"winner_side,omitempty"`
	WinnerResolved string `json:"winner_resolved,omitempty"`
}

// Played reports whether a score has been recorded for the slot.
func (s *BracketSlot) Played() bool {
	return s.Score != ""
}
