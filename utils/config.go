// File: utils/config.go
package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configurable game and server parameters.
type Config struct {
	// Timing
	GameTickPeriod time.Duration `json:"gameTickPeriod"` // Time between simulation ticks
	ScoringDelay   time.Duration `json:"scoringDelay"`   // Pause between a point and the next serve

	// Court geometry
	CourtWidth  float64 `json:"courtWidth"`  // Playable width in world units
	CourtHeight float64 `json:"courtHeight"` // Playable height in world units

	// Ball & paddle shapes
	BallSize     float64 `json:"ballSize"`     // Side of the ball's bounding box
	PaddleWidth  float64 `json:"paddleWidth"`  // Paddle extent along X
	PaddleHeight float64 `json:"paddleHeight"` // Paddle extent along Y
	NetMargin    float64 `json:"netMargin"`    // How far the human paddle must stay below the net

	// Scoring
	WinningScore       int     `json:"winningScore"`       // Points needed to end a match
	OvershootTolerance float64 `json:"overshootTolerance"` // How far past a boundary counts as out

	// Server
	Port       string `json:"port"`
	StaticDir  string `json:"staticDir"`
	DBPath     string `json:"dbPath"`
	BackendURL string `json:"backendURL"` // Score API base URL used by the fire-and-forget reporter
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	courtWidth := 480.0
	courtHeight := 640.0

	return Config{
		GameTickPeriod: 16 * time.Millisecond,
		ScoringDelay:   time.Second,

		CourtWidth:  courtWidth,
		CourtHeight: courtHeight,

		BallSize:     12,
		PaddleWidth:  96,
		PaddleHeight: 14,
		NetMargin:    24,

		WinningScore:       5,
		OvershootTolerance: courtHeight / 20, // 32

		Port:       "3001",
		StaticDir:  "./static",
		DBPath:     "pongcourt.db",
		BackendURL: "http://localhost:3001",
	}
}

// LoadConfig builds the runtime config from defaults, a .env file if one is
// present, and process environment overrides.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded:", err)
	}

	cfg := DefaultConfig()
	cfg.Port = GetEnv("PORT", cfg.Port)
	cfg.StaticDir = GetEnv("STATIC_DIR", cfg.StaticDir)
	cfg.DBPath = GetEnv("DB_PATH", cfg.DBPath)
	cfg.BackendURL = GetEnv("BACKEND_URL", cfg.BackendURL)
	return cfg
}

// GetEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
