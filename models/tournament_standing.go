package models

// StandingsRow — строка групповой таблицы.
// Invariants: Played = Wins+Draws+Losses, Diff = PointsFor-PointsAgainst.
type StandingsRow struct {
	Team          string `json:"team"`
	Played        int    `json:"played"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
	Losses        int    `json:"losses"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
	Points        int    `json:"points"`
	Diff          int    `json:"diff"`
}
