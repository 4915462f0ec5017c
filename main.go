package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lguibr/bollywood"
	"github.com/pbianche/pongcourt/game"
	"github.com/pbianche/pongcourt/scoreclient"
	"github.com/pbianche/pongcourt/server"
	"github.com/pbianche/pongcourt/store"
	"github.com/pbianche/pongcourt/utils"
)

func main() {
	cfg := utils.LoadConfig()

	st := store.New(cfg.DBPath)
	defer st.Close()

	reporter := scoreclient.New(cfg.BackendURL)

	engine := bollywood.NewEngine()
	roomManagerPID := engine.Spawn(bollywood.NewProps(game.NewRoomManagerProducer(engine, cfg, reporter)))
	if roomManagerPID == nil {
		fmt.Println("Failed to spawn room manager")
		os.Exit(1)
	}

	srv := server.New(engine, roomManagerPID, st, cfg)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	go func() {
		fmt.Printf("pongcourt listening on :%s\n", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("HTTP server error:", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Println("Shutting down...")
	_ = httpServer.Close()
	engine.Shutdown(5 * time.Second)
}
