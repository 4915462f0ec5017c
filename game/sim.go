// File: game/sim.go
package game

import (
	"math/rand"
	"time"

	"github.com/pbianche/pongcourt/utils"
)

// Event is emitted by Sim.Tick for the owner (GameActor, tests) to act on.
// The simulation itself never does I/O.
type Event interface{}

// PaddleHitEvent fires when a paddle returns the ball. Presentation layers
// (sound, UI flashes) subscribe to this.
type PaddleHitEvent struct {
	Side int
}

// PointEvent fires when a side scores.
type PointEvent struct {
	Scorer      int
	ScoreTop    int
	ScoreBottom int
}

// ServePendingEvent asks the owner to schedule a deferred serve. The epoch
// must be passed back to Serve so a reset in between invalidates it.
type ServePendingEvent struct {
	Epoch uint64
	Delay time.Duration
}

// MatchEndedEvent fires once when the winning threshold is reached.
type MatchEndedEvent struct {
	Winner   int
	Duration time.Duration
}

// HitFunc is a presentation hook invoked synchronously on paddle contact.
type HitFunc func(side int)

// Sim is the explicit simulation context. All state lives here and is only
// touched by whoever calls Tick; there is no internal locking.
type Sim struct {
	Cfg    utils.Config
	Prof   Difficulty
	Ball   *Ball
	Top    *Paddle
	Bottom *Paddle
	AI     *AIController
	Match  *Match

	rng       *rand.Rand
	onHit     []HitFunc
	rallyHits int
	now       func() time.Time
}

func NewSim(cfg utils.Config, prof Difficulty) *Sim {
	s := &Sim{
		Cfg:  cfg,
		Prof: prof,
		AI:   &AIController{},
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
	s.Match = NewMatch(cfg.WinningScore)
	s.applyProfile()
	return s
}

// NetY is the net line splitting the court horizontally.
func (s *Sim) NetY() float64 { return s.Cfg.CourtHeight / 2 }

// applyProfile re-derives all live entities from the active profile. Used
// identically at reset and on a difficulty switch.
func (s *Sim) applyProfile() {
	s.Ball = NewBall(s.Cfg.BallSize, s.Prof.BallMaxSpeed, s.Cfg.CourtWidth, s.Cfg.CourtHeight)
	humanSpeed := s.Prof.AISpeed * 1.4
	s.Top = NewPaddle(SideTop, s.Cfg.PaddleWidth, s.Cfg.PaddleHeight, s.Prof.AISpeed, s.Cfg.CourtWidth, s.Cfg.CourtHeight)
	s.Bottom = NewPaddle(SideBottom, s.Cfg.PaddleWidth, s.Cfg.PaddleHeight, humanSpeed, s.Cfg.CourtWidth, s.Cfg.CourtHeight)
	s.AI.Reset(s.Top)
	s.rallyHits = 0
}

// SetDifficulty swaps the active profile and re-applies it to live state.
// A switch mid-rally re-serves right away: the re-derivation recreates the
// ball motionless, and a running (or paused) match must never carry a dead
// ball. A switch during the scoring delay leaves serving to the pending
// timer, whose epoch is unaffected.
func (s *Sim) SetDifficulty(name string) error {
	prof, err := ProfileByName(name)
	if err != nil {
		return err
	}
	s.Prof = prof
	s.applyProfile()
	if s.Match.Phase == PhaseRunning || s.Match.Phase == PhasePaused {
		s.Ball.Serve(s.Match.ServeTo, s.Prof, s.Cfg.CourtWidth, s.Cfg.CourtHeight, s.rng)
	}
	return nil
}

// Reset reinitializes every entity and bumps the match epoch.
func (s *Sim) Reset() {
	s.Match.Reset()
	s.applyProfile()
}

// Start begins the match and serves the first ball immediately.
func (s *Sim) Start() bool {
	if !s.Match.Start(s.now()) {
		return false
	}
	s.Ball.Serve(s.Match.ServeTo, s.Prof, s.Cfg.CourtWidth, s.Cfg.CourtHeight, s.rng)
	return true
}

// TogglePause flips Running/Paused. Ticks are suppressed while paused.
func (s *Sim) TogglePause() bool {
	return s.Match.TogglePause()
}

// Subscribe registers a presentation hook for paddle hits.
func (s *Sim) Subscribe(fn HitFunc) {
	s.onHit = append(s.onHit, fn)
}

// Serve re-launches the ball after a scoring delay. The epoch argument is
// the one stamped on the ServePendingEvent; a stale epoch is a no-op, which
// is what protects a reset from a still-pending serve timer.
func (s *Sim) Serve(epoch uint64) bool {
	if epoch != s.Match.Epoch {
		return false
	}
	if !s.Match.ResumeServe() {
		return false
	}
	s.Ball.Serve(s.Match.ServeTo, s.Prof, s.Cfg.CourtWidth, s.Cfg.CourtHeight, s.rng)
	s.rallyHits = 0
	return true
}

// Tick advances the simulation by one step. Paddle and ball motion only
// happens while Running; every other phase is a frozen frame.
func (s *Sim) Tick(input InputState) []Event {
	if s.Match.Phase != PhaseRunning {
		return nil
	}

	var events []Event

	s.Bottom.ApplyInput(input, s.Cfg.CourtWidth, s.Cfg.CourtHeight, s.NetY(), s.Cfg.NetMargin)
	s.AI.Update(s.Ball, s.Top, s.Prof, s.Cfg.CourtWidth, s.NetY())

	s.Ball.Move()

	// Exits are checked before the wall bounce so a ball already past the
	// side tolerance scores via the fallback heuristic instead of being
	// clamped back into play.
	if ev := s.checkScoring(); len(ev) > 0 {
		return append(events, ev...)
	}

	s.Ball.BounceWalls(s.Cfg.CourtWidth)

	// Top paddle checked before bottom: a ball overlapping both in one tick
	// is attributed to the top paddle.
	if hit := s.collidePaddles(); hit != nil {
		events = append(events, *hit)
	}
	return events
}

func (s *Sim) collidePaddles() *PaddleHitEvent {
	for _, paddle := range []*Paddle{s.Top, s.Bottom} {
		if !s.Ball.Intercepts(paddle) {
			continue
		}
		// Only count contact while the ball travels into the paddle,
		// otherwise a slow ball re-triggers on consecutive ticks.
		if paddle.Side == SideTop && s.Ball.Vy > 0 {
			continue
		}
		if paddle.Side == SideBottom && s.Ball.Vy < 0 {
			continue
		}

		opponent := s.Bottom
		if paddle.Side == SideBottom {
			opponent = s.Top
		}
		s.rallyHits++
		vx, vy := returnVelocity(s.Ball, paddle, opponent, s.Prof, s.Cfg.CourtWidth, s.rallyHits, s.rng)
		s.Ball.Vx = vx
		s.Ball.Vy = vy
		s.Ball.ClampSpeed()
		s.Ball.LastTouch = paddle.Side

		// Eject the ball from the paddle box so it cannot re-collide.
		if paddle.Side == SideTop {
			s.Ball.Y = paddle.Y + paddle.Height
		} else {
			s.Ball.Y = paddle.Y - s.Ball.Height
		}

		for _, fn := range s.onHit {
			fn(paddle.Side)
		}
		return &PaddleHitEvent{Side: paddle.Side}
	}
	return nil
}

func (s *Sim) checkScoring() []Event {
	tol := s.Cfg.OvershootTolerance
	scorer := NoWinner

	switch {
	case s.Ball.OutTop(tol):
		scorer = SideBottom
	case s.Ball.OutBottom(s.Cfg.CourtHeight, tol):
		scorer = SideTop
	case s.Ball.CenterX() < -tol || s.Ball.CenterX() > s.Cfg.CourtWidth+tol:
		// Side exit should not happen with wall bounces, but when it does
		// (e.g. a ball placed out of bounds) attribution falls back to a
		// heuristic: the point goes against the half the ball was in, but
		// only when vertical speed dominated horizontal speed at exit.
		if utils.Abs(s.Ball.Vy) > utils.Abs(s.Ball.Vx) {
			if s.Ball.CenterY() < s.NetY() {
				scorer = SideBottom
			} else {
				scorer = SideTop
			}
		} else {
			// Mostly-horizontal side exits are treated as a dead ball
			// against whoever's half it escaped from, inverted.
			if s.Ball.CenterY() < s.NetY() {
				scorer = SideTop
			} else {
				scorer = SideBottom
			}
		}
	default:
		return nil
	}

	ended := s.Match.PointScored(scorer)
	events := []Event{PointEvent{Scorer: scorer, ScoreTop: s.Match.ScoreTop, ScoreBottom: s.Match.ScoreBottom}}

	s.Ball.Recenter(s.Cfg.CourtWidth, s.Cfg.CourtHeight)
	s.rallyHits = 0

	if ended {
		events = append(events, MatchEndedEvent{
			Winner:   s.Match.Winner,
			Duration: s.Match.Duration(s.now()),
		})
	} else {
		events = append(events, ServePendingEvent{
			Epoch: s.Match.Epoch,
			Delay: s.Cfg.ScoringDelay,
		})
	}
	return events
}

// Snapshot is the read-only view handed to renderers each tick.
type Snapshot struct {
	Ball       Ball    `json:"ball"`
	Top        Paddle  `json:"top"`
	Bottom     Paddle  `json:"bottom"`
	Match      Match   `json:"match"`
	Difficulty string  `json:"difficulty"`
	CourtW     float64 `json:"courtWidth"`
	CourtH     float64 `json:"courtHeight"`
}

// Snapshot returns a value copy of the current state. The renderer never
// mutates simulation state.
func (s *Sim) Snapshot() Snapshot {
	return Snapshot{
		Ball:       *s.Ball,
		Top:        *s.Top,
		Bottom:     *s.Bottom,
		Match:      *s.Match,
		Difficulty: s.Prof.Name,
		CourtW:     s.Cfg.CourtWidth,
		CourtH:     s.Cfg.CourtHeight,
	}
}
