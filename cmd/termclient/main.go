// Command termclient is a terminal client for the pongcourt server: it
// subscribes to a game room, renders snapshots as ASCII and maps keystrokes
// to paddle input.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lguibr/asciiring/helpers"
	"github.com/pbianche/pongcourt/game"
	"github.com/pbianche/pongcourt/render"
	"golang.org/x/net/websocket"
	"golang.org/x/sys/unix"
)

const (
	courtCols = 48
	courtRows = 28
	// Terminals have no key-up events; a pressed direction is released
	// automatically after this long without a repeat.
	keyHold = 150 * time.Millisecond
)

func setRawMode(fd uintptr) (*unix.Termios, error) {
	settings, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	if err != nil {
		return nil, err
	}
	saved := *settings
	settings.Lflag &^= unix.ECHO | unix.ICANON
	if err := unix.IoctlSetTermios(int(fd), unix.TCSETS, settings); err != nil {
		return nil, err
	}
	return &saved, nil
}

func restoreMode(fd uintptr, saved *unix.Termios) {
	_ = unix.IoctlSetTermios(int(fd), unix.TCSETS, saved)
}

func main() {
	serverURL := "ws://localhost:3001/subscribe"
	if len(os.Args) > 1 {
		serverURL = os.Args[1]
	}

	conn, err := websocket.Dial(serverURL, "", "http://localhost/")
	if err != nil {
		fmt.Println("Error connecting to server:", err)
		return
	}
	defer conn.Close()

	saved, err := setRawMode(os.Stdin.Fd())
	if err != nil {
		fmt.Println("Error entering raw mode:", err)
		return
	}
	defer restoreMode(os.Stdin.Fd(), saved)

	send := func(cmd game.ClientCommand) {
		if err := websocket.JSON.Send(conn, cmd); err != nil {
			fmt.Println("Error sending to server:", err)
		}
	}

	send(game.ClientCommand{Type: "hello", PlayerID: hostID(), PlayerName: "terminal"})

	// Render loop: decode every server message, redraw on snapshots.
	go func() {
		helpers.ClearScreen()
		for {
			var raw json.RawMessage
			if err := websocket.JSON.Receive(conn, &raw); err != nil {
				fmt.Println("\nDisconnected:", err)
				os.Exit(0)
			}
			var header struct {
				MessageType string `json:"messageType"`
			}
			if err := json.Unmarshal(raw, &header); err != nil || header.MessageType != "state" {
				continue
			}
			var msg game.StateMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				continue
			}
			fmt.Print("\033[H")
			fmt.Print(render.CourtToASCII(msg.State, courtCols, courtRows))
			fmt.Println("\n a/d move  w/s advance  space start  p pause  r reset  1/2/3 difficulty  q quit")
		}
	}()

	// Key loop: one byte per keystroke in raw mode.
	input := game.InputState{}
	var releaseTimer *time.Timer
	scheduleRelease := func() {
		if releaseTimer != nil {
			releaseTimer.Stop()
		}
		releaseTimer = time.AfterFunc(keyHold, func() {
			send(game.ClientCommand{Type: "input", Input: &game.InputState{}})
		})
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		restoreMode(os.Stdin.Fd(), saved)
		os.Exit(0)
	}()

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}
		switch buf[0] {
		case 'a':
			input = game.InputState{Left: true}
		case 'd':
			input = game.InputState{Right: true}
		case 'w':
			input = game.InputState{Up: true}
		case 's':
			input = game.InputState{Down: true}
		case ' ':
			send(game.ClientCommand{Type: "start"})
			continue
		case 'p':
			send(game.ClientCommand{Type: "pause"})
			continue
		case 'r':
			send(game.ClientCommand{Type: "reset"})
			continue
		case '1':
			send(game.ClientCommand{Type: "difficulty", Difficulty: "beginner"})
			continue
		case '2':
			send(game.ClientCommand{Type: "difficulty", Difficulty: "advanced"})
			continue
		case '3':
			send(game.ClientCommand{Type: "difficulty", Difficulty: "expert"})
			continue
		case 'q', 3: // q or Ctrl-C
			return
		default:
			continue
		}
		send(game.ClientCommand{Type: "input", Input: &input})
		scheduleRelease()
	}
}

// hostID derives a stable-ish player id from the hostname.
func hostID() string {
	host, err := os.Hostname()
	if err != nil {
		return "terminal-player"
	}
	return "term-" + host
}
