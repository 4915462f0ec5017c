package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/lguibr/bollywood"
	"github.com/pbianche/pongcourt/store"
	"github.com/pbianche/pongcourt/utils"
	"golang.org/x/net/websocket"
)

// AskTimeout bounds room-manager round trips from HTTP handlers.
const AskTimeout = 2 * time.Second

// Server wires the actor system, the store and the HTTP surface together.
type Server struct {
	engine         *bollywood.Engine
	roomManagerPID *bollywood.PID
	store          *store.Store
	cfg            utils.Config
}

func New(engine *bollywood.Engine, roomManagerPID *bollywood.PID, st *store.Store, cfg utils.Config) *Server {
	return &Server{
		engine:         engine,
		roomManagerPID: roomManagerPID,
		store:          st,
		cfg:            cfg,
	}
}

// Router builds the full HTTP surface: game websocket, score REST API and
// the static browser client.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Handle("/subscribe", websocket.Handler(s.HandleSubscribe()))
	r.Get("/rooms", s.HandleRoomList)

	r.Post("/players", s.HandleUpsertPlayer)
	r.Get("/players/{playerId}", s.HandleGetPlayer)
	r.Post("/scores", s.HandleRecordScore)
	r.Get("/leaderboard", s.HandleLeaderboard)
	r.Post("/matches", s.HandleRecordMatch)
	r.Get("/leaderboard/timers", s.HandleBestTimes)

	fileServer := http.FileServer(http.Dir(s.cfg.StaticDir))
	r.Handle("/*", fileServer)

	return r
}
