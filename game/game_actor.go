// File: game/game_actor.go
package game

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/lguibr/bollywood"
	"github.com/pbianche/pongcourt/utils"
	"golang.org/x/net/websocket"
)

// GameActor owns one Sim and one websocket subscriber. All simulation state
// is touched only inside Receive, so the single-threaded model of the core
// holds: one tick, one broadcast, per GameTick message.
type GameActor struct {
	cfg      utils.Config
	sim      *Sim
	conn     *websocket.Conn
	engine   *bollywood.Engine
	reporter Reporter

	ticker       *time.Ticker
	stopTickerCh chan struct{}
	selfPID      *bollywood.PID

	input      InputState
	playerID   string
	playerName string
}

// NewGameActorProducer creates a producer for a GameActor bound to one
// websocket connection.
func NewGameActorProducer(engine *bollywood.Engine, cfg utils.Config, conn *websocket.Conn, reporter Reporter) bollywood.Producer {
	return func() bollywood.Actor {
		if reporter == nil {
			reporter = NopReporter{}
		}
		return &GameActor{
			cfg:          cfg,
			sim:          NewSim(cfg, Beginner()),
			conn:         conn,
			engine:       engine,
			reporter:     reporter,
			stopTickerCh: make(chan struct{}),
		}
	}
}

func (a *GameActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			pidStr := "unknown"
			if a.selfPID != nil {
				pidStr = a.selfPID.String()
			}
			fmt.Printf("PANIC recovered in GameActor %s Receive: %v\nStack trace:\n%s\n", pidStr, r, string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch m := ctx.Message().(type) {
	case bollywood.Started:
		a.sendWelcome()
		a.ticker = time.NewTicker(a.cfg.GameTickPeriod)
		go a.runTickerLoop()

	case *GameTick:
		a.handleTick()

	case ClientMessage:
		a.handleCommand(m.Command)

	case serveDueMsg:
		// Stale epochs (a reset happened while the timer was pending) are
		// rejected inside Serve.
		a.sim.Serve(m.Epoch)

	case bollywood.Stopping:
		if a.ticker != nil {
			a.ticker.Stop()
			select {
			case <-a.stopTickerCh:
			default:
				close(a.stopTickerCh)
			}
		}
		if a.conn != nil {
			_ = a.conn.Close()
			a.conn = nil
		}

	case bollywood.Stopped:

	default:
		fmt.Printf("GameActor %s: unknown message type %T\n", a.selfPID, m)
	}
}

// runTickerLoop posts GameTick into the actor's own mailbox every period.
func (a *GameActor) runTickerLoop() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in GameActor ticker loop: %v\n", r)
		}
	}()

	tickMsg := &GameTick{}
	for {
		select {
		case <-a.stopTickerCh:
			return
		case _, ok := <-a.ticker.C:
			if !ok {
				return
			}
			a.engine.Send(a.selfPID, tickMsg, nil)
		}
	}
}

func (a *GameActor) handleTick() {
	events := a.sim.Tick(a.input)
	for _, ev := range events {
		switch e := ev.(type) {
		case PaddleHitEvent:
			a.send(HitMessage{MessageType: "paddleHit", Side: e.Side})

		case PointEvent:
			if a.playerID != "" {
				go a.reporter.SubmitScore(a.playerID, e.ScoreBottom)
			}

		case ServePendingEvent:
			selfPID := a.selfPID
			epoch := e.Epoch
			time.AfterFunc(e.Delay, func() {
				a.engine.Send(selfPID, serveDueMsg{Epoch: epoch}, nil)
			})

		case MatchEndedEvent:
			snap := a.sim.Snapshot()
			a.send(GameOverMessage{
				MessageType: "gameOver",
				Winner:      e.Winner,
				ScoreTop:    snap.Match.ScoreTop,
				ScoreBottom: snap.Match.ScoreBottom,
				DurationMs:  e.Duration.Milliseconds(),
			})
			if a.playerID != "" {
				id, name, dur := a.playerID, a.sim.Prof.Name, e.Duration.Milliseconds()
				go a.reporter.SubmitMatch(id, name, dur)
			}
		}
	}
	a.send(StateMessage{MessageType: "state", State: a.sim.Snapshot()})
}

func (a *GameActor) handleCommand(cmd ClientCommand) {
	switch cmd.Type {
	case "hello":
		a.playerID = cmd.PlayerID
		a.playerName = cmd.PlayerName
		if a.playerID != "" {
			id, name := a.playerID, a.playerName
			go a.reporter.RegisterPlayer(id, name)
		}

	case "input":
		if cmd.Input != nil {
			a.input = *cmd.Input
		}

	case "start":
		a.sim.Start()

	case "pause":
		a.sim.TogglePause()

	case "reset":
		a.sim.Reset()
		a.input = InputState{}

	case "difficulty":
		if err := a.sim.SetDifficulty(cmd.Difficulty); err != nil {
			fmt.Printf("GameActor %s: %v\n", a.selfPID, err)
		}

	default:
		fmt.Printf("GameActor %s: unknown command %q\n", a.selfPID, cmd.Type)
	}
}

func (a *GameActor) sendWelcome() {
	names := make([]string, 0, 3)
	for _, d := range Profiles() {
		names = append(names, d.Name)
	}
	a.send(WelcomeMessage{
		MessageType:  "welcome",
		Difficulties: names,
		WinningScore: a.cfg.WinningScore,
	})
}

func (a *GameActor) send(msg interface{}) {
	if a.conn == nil {
		return
	}
	if err := websocket.JSON.Send(a.conn, msg); err != nil {
		// The read loop owns disconnect handling; just stop writing.
		fmt.Printf("GameActor %s: send failed: %v\n", a.selfPID, err)
		a.conn = nil
	}
}
