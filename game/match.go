package game

import "time"

// Phase is the match state machine position. Exactly one phase holds at a
// time; illegal transition attempts are silent no-ops.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseScoringDelay
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "notStarted"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseScoringDelay:
		return "scoringDelay"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// NoWinner is the Winner value while the match is undecided.
const NoWinner = -1

type Match struct {
	Phase        Phase `json:"phase"`
	ScoreTop     int   `json:"scoreTop"`
	ScoreBottom  int   `json:"scoreBottom"`
	WinningScore int   `json:"winningScore"`
	Winner       int   `json:"winner"`  // SideTop, SideBottom or NoWinner
	ServeTo      int   `json:"serveTo"` // Side receiving the next serve

	// Epoch increments on every reset. Deferred serve callbacks stamp the
	// epoch they were scheduled under and no-op if it has moved on.
	Epoch uint64 `json:"epoch"`

	StartedAt time.Time `json:"-"`
}

func NewMatch(winningScore int) *Match {
	return &Match{
		Phase:        PhaseNotStarted,
		WinningScore: winningScore,
		Winner:       NoWinner,
		ServeTo:      SideBottom,
	}
}

// Start begins the match. Only legal from NotStarted.
func (m *Match) Start(now time.Time) bool {
	if m.Phase != PhaseNotStarted {
		return false
	}
	m.Phase = PhaseRunning
	m.StartedAt = now
	return true
}

// TogglePause flips between Running and Paused. No-op in any other phase.
func (m *Match) TogglePause() bool {
	switch m.Phase {
	case PhaseRunning:
		m.Phase = PhasePaused
		return true
	case PhasePaused:
		m.Phase = PhaseRunning
		return true
	}
	return false
}

// PointScored records a point for scorer while Running. The next serve goes
// toward the side that did not score. Returns true if the match just ended.
func (m *Match) PointScored(scorer int) bool {
	if m.Phase != PhaseRunning {
		return false
	}
	if scorer == SideTop {
		m.ScoreTop++
		m.ServeTo = SideBottom
	} else {
		m.ScoreBottom++
		m.ServeTo = SideTop
	}

	if m.ScoreTop >= m.WinningScore || m.ScoreBottom >= m.WinningScore {
		m.Phase = PhaseEnded
		m.Winner = scorer
		return true
	}
	m.Phase = PhaseScoringDelay
	return false
}

// ResumeServe leaves ScoringDelay back into Running. Called by the deferred
// serve after the scoring delay elapses.
func (m *Match) ResumeServe() bool {
	if m.Phase != PhaseScoringDelay {
		return false
	}
	m.Phase = PhaseRunning
	return true
}

// Reset returns the match to NotStarted with fresh scores and bumps the
// epoch so any pending deferred serve fires into a no-op.
func (m *Match) Reset() {
	m.Phase = PhaseNotStarted
	m.ScoreTop = 0
	m.ScoreBottom = 0
	m.Winner = NoWinner
	m.ServeTo = SideBottom
	m.Epoch++
	m.StartedAt = time.Time{}
}

// Duration reports elapsed match time since Start.
func (m *Match) Duration(now time.Time) time.Duration {
	if m.StartedAt.IsZero() {
		return 0
	}
	return now.Sub(m.StartedAt)
}
