package game

// Reporter is the fire-and-forget side channel to the score backend. All
// implementations must swallow failures; nothing here feeds back into
// simulation state.
type Reporter interface {
	RegisterPlayer(playerID, playerName string)
	SubmitScore(playerID string, score int)
	SubmitMatch(playerID, difficulty string, durationMs int64)
}

// NopReporter discards every submission. Used when no backend is configured
// and in tests.
type NopReporter struct{}

func (NopReporter) RegisterPlayer(string, string)     {}
func (NopReporter) SubmitScore(string, int)           {}
func (NopReporter) SubmitMatch(string, string, int64) {}
