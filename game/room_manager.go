// File: game/room_manager.go
package game

import (
	"fmt"
	"runtime/debug"

	"github.com/lguibr/bollywood"
	"github.com/pbianche/pongcourt/utils"
)

// maxRooms caps concurrent single-player rooms.
const maxRooms = 128

// roomInfo tracks one live GameActor.
type roomInfo struct {
	PID *bollywood.PID
}

// RoomManagerActor spawns one GameActor per websocket connection and stops
// it when the connection goes away.
type RoomManagerActor struct {
	engine   *bollywood.Engine
	cfg      utils.Config
	reporter Reporter
	rooms    map[string]*roomInfo
	selfPID  *bollywood.PID
}

// NewRoomManagerProducer creates a producer for the RoomManagerActor.
func NewRoomManagerProducer(engine *bollywood.Engine, cfg utils.Config, reporter Reporter) bollywood.Producer {
	return func() bollywood.Actor {
		return &RoomManagerActor{
			engine:   engine,
			cfg:      cfg,
			reporter: reporter,
			rooms:    make(map[string]*roomInfo),
		}
	}
}

func (a *RoomManagerActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			pidStr := "unknown"
			if a.selfPID != nil {
				pidStr = a.selfPID.String()
			}
			fmt.Printf("PANIC recovered in RoomManagerActor %s Receive: %v\nStack trace:\n%s\n", pidStr, r, string(debug.Stack()))
			if ctx.RequestID() != "" {
				ctx.Reply(fmt.Errorf("room manager panicked: %v", r))
			}
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch m := ctx.Message().(type) {
	case bollywood.Started:
		fmt.Printf("RoomManagerActor %s: started.\n", a.selfPID)

	case OpenRoom:
		a.handleOpenRoom(ctx, m)

	case CloseRoom:
		a.handleCloseRoom(m)

	case GetRoomListRequest:
		rooms := make([]string, 0, len(a.rooms))
		for pid := range a.rooms {
			rooms = append(rooms, pid)
		}
		if ctx.RequestID() != "" {
			ctx.Reply(RoomListResponse{Rooms: rooms})
		}

	case bollywood.Stopping:
		fmt.Printf("RoomManagerActor %s: stopping %d rooms.\n", a.selfPID, len(a.rooms))
		for _, info := range a.rooms {
			a.engine.Stop(info.PID)
		}
		a.rooms = make(map[string]*roomInfo)

	case bollywood.Stopped:

	default:
		fmt.Printf("RoomManagerActor %s: unknown message type %T\n", a.selfPID, m)
	}
}

func (a *RoomManagerActor) handleOpenRoom(ctx bollywood.Context, m OpenRoom) {
	if len(a.rooms) >= maxRooms {
		fmt.Printf("RoomManagerActor %s: room limit (%d) reached, refusing connection.\n", a.selfPID, maxRooms)
		if ctx.RequestID() != "" {
			ctx.Reply(RoomAssigned{RoomPID: nil})
		}
		return
	}

	pid := a.engine.Spawn(bollywood.NewProps(NewGameActorProducer(a.engine, a.cfg, m.WsConn, a.reporter)))
	if pid == nil {
		if ctx.RequestID() != "" {
			ctx.Reply(RoomAssigned{RoomPID: nil})
		}
		return
	}

	a.rooms[pid.String()] = &roomInfo{PID: pid}
	fmt.Printf("RoomManagerActor %s: opened room %s (%d active).\n", a.selfPID, pid, len(a.rooms))
	if ctx.RequestID() != "" {
		ctx.Reply(RoomAssigned{RoomPID: pid})
	}
}

func (a *RoomManagerActor) handleCloseRoom(m CloseRoom) {
	if m.RoomPID == nil {
		return
	}
	if _, ok := a.rooms[m.RoomPID.String()]; !ok {
		return
	}
	delete(a.rooms, m.RoomPID.String())
	a.engine.Stop(m.RoomPID)
	fmt.Printf("RoomManagerActor %s: closed room %s (%d active).\n", a.selfPID, m.RoomPID, len(a.rooms))
}
