package model

// ClientPlayer is the per-seat view sent to clients.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    Color  `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

// MatchFoundEvent notifies a queued player of their match.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  Color  `json:"color"`
}
