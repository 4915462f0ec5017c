// File: server/handlers.go
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/pbianche/pongcourt/game"
	"golang.org/x/net/websocket"
)

// HandleSubscribe opens a single-player room for the connection and pumps
// client commands into it until the socket dies.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		connectionAddr := ws.RemoteAddr().String()
		fmt.Printf("HandleSubscribe: new connection from %s\n", connectionAddr)

		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("PANIC recovered in HandleSubscribe for %s: %v\nStack trace:\n%s\n", connectionAddr, r, string(debug.Stack()))
			}
			_ = ws.Close()
		}()

		reply, err := s.engine.Ask(s.roomManagerPID, game.OpenRoom{WsConn: ws}, AskTimeout)
		if err != nil {
			fmt.Printf("HandleSubscribe: room assignment failed for %s: %v\n", connectionAddr, err)
			return
		}
		assigned, ok := reply.(game.RoomAssigned)
		if !ok || assigned.RoomPID == nil {
			fmt.Printf("HandleSubscribe: no room available for %s\n", connectionAddr)
			return
		}

		defer s.engine.Send(s.roomManagerPID, game.CloseRoom{RoomPID: assigned.RoomPID}, nil)

		s.readLoop(ws, assigned)
		fmt.Printf("HandleSubscribe: read loop finished for %s\n", connectionAddr)
	}
}

// readLoop decodes ClientCommand envelopes and forwards them to the room.
func (s *Server) readLoop(conn *websocket.Conn, assigned game.RoomAssigned) {
	connectionAddr := conn.RemoteAddr().String()

	for {
		var cmd game.ClientCommand
		err := websocket.JSON.Receive(conn, &cmd)
		if err != nil {
			isClosedErr := err == io.EOF ||
				strings.Contains(err.Error(), "use of closed network connection") ||
				strings.Contains(err.Error(), "closed")
			if !isClosedErr {
				fmt.Printf("ReadLoop: error receiving from %s: %v\n", connectionAddr, err)
			}
			return
		}
		s.engine.Send(assigned.RoomPID, game.ClientMessage{Command: cmd}, nil)
	}
}

// HandleRoomList reports the active rooms, mostly for diagnostics.
func (s *Server) HandleRoomList(w http.ResponseWriter, r *http.Request) {
	reply, err := s.engine.Ask(s.roomManagerPID, game.GetRoomListRequest{}, AskTimeout)
	if err != nil {
		http.Error(w, "room manager unavailable", http.StatusServiceUnavailable)
		return
	}
	list, ok := reply.(game.RoomListResponse)
	if !ok {
		http.Error(w, "unexpected room manager reply", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(list.Rooms),
		"rooms": list.Rooms,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Println("Error writing JSON response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
