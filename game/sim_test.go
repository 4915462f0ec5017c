// File: game/sim_test.go
package game

import (
	"testing"

	"github.com/pbianche/pongcourt/utils"
	"github.com/stretchr/testify/require"
)

func newTestSim(t *testing.T) *Sim {
	t.Helper()
	cfg := utils.DefaultConfig()
	return NewSim(cfg, Beginner())
}

// placeBallOut parks the ball past a boundary so the next tick scores.
func placeBallOut(s *Sim, side int) {
	s.Ball.Vx = 0
	s.Ball.Vy = 0
	s.Ball.X = s.Cfg.CourtWidth / 2
	if side == SideTop {
		s.Ball.Y = -s.Cfg.OvershootTolerance - 50
	} else {
		s.Ball.Y = s.Cfg.CourtHeight + s.Cfg.OvershootTolerance + 50
	}
}

func findEvent[T Event](events []Event) (T, bool) {
	for _, ev := range events {
		if typed, ok := ev.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

func TestSim_TickSuppressedOutsideRunning(t *testing.T) {
	s := newTestSim(t)

	// Not started: nothing moves.
	before := s.Snapshot()
	require.Nil(t, s.Tick(InputState{}))
	require.Equal(t, before.Ball, s.Snapshot().Ball)

	// Paused: nothing moves either.
	require.True(t, s.Start())
	s.Tick(InputState{})
	require.True(t, s.TogglePause())
	paused := s.Snapshot()
	for i := 0; i < 10; i++ {
		require.Nil(t, s.Tick(InputState{Left: true}))
	}
	require.Equal(t, paused.Ball, s.Snapshot().Ball)
	require.Equal(t, paused.Bottom, s.Snapshot().Bottom)
	require.Equal(t, paused.Top, s.Snapshot().Top)

	// Resume: motion accrues again from the exact frozen state.
	require.True(t, s.TogglePause())
	s.Tick(InputState{})
	require.NotEqual(t, paused.Ball.Y, s.Snapshot().Ball.Y)
}

func TestSim_TopExitScoresForBottom(t *testing.T) {
	s := newTestSim(t)
	require.True(t, s.Start())

	placeBallOut(s, SideTop)
	events := s.Tick(InputState{})

	point, ok := findEvent[PointEvent](events)
	require.True(t, ok, "expected a PointEvent")
	require.Equal(t, SideBottom, point.Scorer)
	require.Equal(t, 1, s.Match.ScoreBottom)
	require.Equal(t, 0, s.Match.ScoreTop)
	require.Equal(t, PhaseScoringDelay, s.Match.Phase)

	// Ball back at center, motionless, waiting for the serve.
	require.Equal(t, s.Cfg.CourtWidth/2, s.Ball.CenterX())
	require.Zero(t, s.Ball.Vx)
	require.Zero(t, s.Ball.Vy)

	pending, ok := findEvent[ServePendingEvent](events)
	require.True(t, ok, "expected a ServePendingEvent")
	require.Equal(t, s.Match.Epoch, pending.Epoch)
	require.Equal(t, s.Cfg.ScoringDelay, pending.Delay)
}

func TestSim_BottomExitScoresForTop(t *testing.T) {
	s := newTestSim(t)
	require.True(t, s.Start())

	placeBallOut(s, SideBottom)
	events := s.Tick(InputState{})

	point, ok := findEvent[PointEvent](events)
	require.True(t, ok)
	require.Equal(t, SideTop, point.Scorer)
	require.Equal(t, 1, s.Match.ScoreTop)
}

func TestSim_ServeEpochGuard(t *testing.T) {
	s := newTestSim(t)
	require.True(t, s.Start())

	placeBallOut(s, SideTop)
	events := s.Tick(InputState{})
	pending, ok := findEvent[ServePendingEvent](events)
	require.True(t, ok)

	// A reset lands while the serve timer is still pending.
	s.Reset()

	// The stale timer fires into a no-op against the new generation.
	require.False(t, s.Serve(pending.Epoch))
	require.Equal(t, PhaseNotStarted, s.Match.Phase)
	require.Zero(t, s.Ball.Vx)
	require.Zero(t, s.Ball.Vy)
}

func TestSim_ServeAfterDelayResumesPlay(t *testing.T) {
	s := newTestSim(t)
	require.True(t, s.Start())

	placeBallOut(s, SideTop)
	events := s.Tick(InputState{})
	pending, _ := findEvent[ServePendingEvent](events)

	require.True(t, s.Serve(pending.Epoch))
	require.Equal(t, PhaseRunning, s.Match.Phase)
	// Bottom scored, so the serve travels toward the top side.
	require.Negative(t, s.Ball.Vy)
	require.GreaterOrEqual(t, utils.Abs(s.Ball.Vx), MinServeComponent)

	// A second fire of the same timer is a no-op.
	require.False(t, s.Serve(pending.Epoch))
}

// Scripted end-to-end: beginner, winning score 5, five top-boundary exits.
func TestSim_ScriptedMatchHumanSweep(t *testing.T) {
	s := newTestSim(t)
	require.Equal(t, 5, s.Match.WinningScore)
	require.True(t, s.Start())

	var ended MatchEndedEvent
	for i := 0; i < 5; i++ {
		placeBallOut(s, SideTop)
		events := s.Tick(InputState{})

		if i < 4 {
			pending, ok := findEvent[ServePendingEvent](events)
			require.True(t, ok, "round %d should re-serve", i)
			require.True(t, s.Serve(pending.Epoch))
		} else {
			var ok bool
			ended, ok = findEvent[MatchEndedEvent](events)
			require.True(t, ok, "fifth point should end the match")
		}
	}

	require.Equal(t, PhaseEnded, s.Match.Phase)
	require.Equal(t, 5, s.Match.ScoreBottom)
	require.Equal(t, 0, s.Match.ScoreTop)
	require.Equal(t, SideBottom, s.Match.Winner)
	require.Equal(t, SideBottom, ended.Winner)

	// Idempotent terminal state: extra ticks change nothing.
	final := s.Snapshot()
	for i := 0; i < 20; i++ {
		require.Nil(t, s.Tick(InputState{Right: true}))
	}
	require.Equal(t, final, s.Snapshot())
}

func TestSim_PaddleHitEmitsEventAndHook(t *testing.T) {
	s := newTestSim(t)
	require.True(t, s.Start())

	var hookSides []int
	s.Subscribe(func(side int) { hookSides = append(hookSides, side) })

	// Drop the ball straight onto the human paddle.
	s.Ball.X = s.Bottom.CenterX() - s.Ball.Width/2
	s.Ball.Y = s.Bottom.Y - s.Ball.Height + 1
	s.Ball.Vx = 0.5
	s.Ball.Vy = 3

	events := s.Tick(InputState{})
	hit, ok := findEvent[PaddleHitEvent](events)
	require.True(t, ok, "expected a PaddleHitEvent")
	require.Equal(t, SideBottom, hit.Side)
	require.Equal(t, []int{SideBottom}, hookSides)

	require.Equal(t, SideBottom, s.Ball.LastTouch)
	require.Negative(t, s.Ball.Vy, "ball returns toward the AI")
	require.LessOrEqual(t, s.Ball.Y+s.Ball.Height, s.Bottom.Y, "ball ejected above the paddle box")
}

// A ball overlapping both paddles in one tick belongs to the top paddle.
func TestSim_TieBreakPrefersTopPaddle(t *testing.T) {
	s := newTestSim(t)
	require.True(t, s.Start())

	// Stack both paddles onto the ball and resolve the collision directly,
	// so the AI cannot ease the top paddle out of the staged overlap.
	s.Top.X, s.Top.Y = 200, 300
	s.Bottom.X, s.Bottom.Y = 200, 300
	s.Ball.X, s.Ball.Y = 220, 302
	s.Ball.Vx, s.Ball.Vy = 0, -1

	hit := s.collidePaddles()
	require.NotNil(t, hit)
	require.Equal(t, SideTop, hit.Side)
}

func TestSim_SideExitHeuristic(t *testing.T) {
	testCases := []struct {
		name           string
		y, vx, vy      float64
		expectedScorer int
	}{
		{"vertical-dominated exit in top half", 100, 2, -5, SideBottom},
		{"vertical-dominated exit in bottom half", 500, 2, 5, SideTop},
		{"horizontal-dominated exit in top half", 100, 6, 1, SideTop},
		{"horizontal-dominated exit in bottom half", 500, 6, 1, SideBottom},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSim(t)
			require.True(t, s.Start())

			// Teleport the ball far past a side boundary. Exits are
			// resolved before the wall bounce, so the tick scores instead
			// of clamping the ball back into play.
			s.Ball.X = -s.Cfg.OvershootTolerance - 60
			s.Ball.Y = tc.y
			s.Ball.Vx = tc.vx
			s.Ball.Vy = tc.vy

			events := s.Tick(InputState{})
			point, ok := findEvent[PointEvent](events)
			require.True(t, ok, "expected a PointEvent")
			require.Equal(t, tc.expectedScorer, point.Scorer)
		})
	}
}

func TestSim_SetDifficultyReappliesProfile(t *testing.T) {
	s := newTestSim(t)
	s.Ball.Vy = 99 // garbage that must not survive the re-derivation

	require.NoError(t, s.SetDifficulty("expert"))
	require.Equal(t, "expert", s.Prof.Name)
	require.Equal(t, Expert().BallMaxSpeed, s.Ball.MaxSpeed)
	require.Equal(t, Expert().AISpeed, s.Top.Speed)
	require.Zero(t, s.Ball.Vy, "live state is re-derived, not patched")
	require.Equal(t, s.Top.X, s.AI.TargetX, "AI target re-initialized to the paddle")

	require.Error(t, s.SetDifficulty("nightmare"))
	require.Equal(t, "expert", s.Prof.Name)
}

// A difficulty switch mid-rally must not leave a running match with a dead
// ball: the recreated ball is re-served immediately.
func TestSim_SetDifficultyMidRallyReserves(t *testing.T) {
	s := newTestSim(t)
	require.True(t, s.Start())

	require.NoError(t, s.SetDifficulty("expert"))
	require.Equal(t, PhaseRunning, s.Match.Phase)
	require.GreaterOrEqual(t, utils.Abs(s.Ball.Vx), MinServeComponent)
	require.GreaterOrEqual(t, utils.Abs(s.Ball.Vy), MinServeComponent)

	before := s.Ball.Y
	s.Tick(InputState{})
	require.NotEqual(t, before, s.Ball.Y, "rally must keep moving after the switch")
}

// Same guarantee across a pause: the switch happens frozen, the ball is live
// again on resume.
func TestSim_SetDifficultyWhilePausedReserves(t *testing.T) {
	s := newTestSim(t)
	require.True(t, s.Start())
	require.True(t, s.TogglePause())

	require.NoError(t, s.SetDifficulty("advanced"))
	require.Equal(t, PhasePaused, s.Match.Phase)
	require.Nil(t, s.Tick(InputState{}), "ticks stay suppressed while paused")

	require.True(t, s.TogglePause())
	before := s.Ball.Y
	s.Tick(InputState{})
	require.NotEqual(t, before, s.Ball.Y)
}

func TestSim_ResetReinitializesEverything(t *testing.T) {
	s := newTestSim(t)
	require.True(t, s.Start())
	placeBallOut(s, SideBottom)
	s.Tick(InputState{})
	require.Equal(t, 1, s.Match.ScoreTop)

	epoch := s.Match.Epoch
	s.Reset()

	require.Equal(t, PhaseNotStarted, s.Match.Phase)
	require.Zero(t, s.Match.ScoreTop)
	require.Zero(t, s.Match.ScoreBottom)
	require.Equal(t, epoch+1, s.Match.Epoch)
	require.Equal(t, s.Cfg.CourtWidth/2, s.Ball.CenterX())
	require.Equal(t, s.Cfg.CourtHeight/2, s.Ball.CenterY())
}
