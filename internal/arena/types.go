package arena

// MatchRequest carries the player configuration the arena needs to run a
// full game. Provider names and keys are forwarded as supplied; the arena
// owns their validation.
type MatchRequest struct {
	WhiteModel  string `json:"white_model"`
	BlackModel  string `json:"black_model"`
	WhiteAPIKey string `json:"white_api_key"`
	BlackAPIKey string `json:"black_api_key"`
	MaxTurns    int    `json:"max_turns"`
}

// MatchResponse is the arena's record of a finished game. MoveHistory holds
// UCI-style move codes in play order, one entry per ply.
type MatchResponse struct {
	MoveHistory []string `json:"move_history"`
	Result      string   `json:"result,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}
