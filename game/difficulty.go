package game

import "fmt"

// Difficulty bundles every tunable the simulation derives live state from.
// Profiles are immutable; switching one re-runs the same apply routine used
// at reset.
type Difficulty struct {
	Name string `json:"name"`

	// Ball
	BallSpeedX   float64 `json:"ballSpeedX"` // Base horizontal serve speed
	BallSpeedY   float64 `json:"ballSpeedY"` // Base vertical serve speed
	BallMaxSpeed float64 `json:"ballMaxSpeed"`
	SpeedGrowth  float64 `json:"speedGrowth"` // Multiplier applied on each paddle hit

	// AI
	AISpeed            float64 `json:"aiSpeed"`            // Max per-tick paddle movement
	AIReaction         float64 `json:"aiReaction"`         // Horizontal target easing factor
	AIVerticalReaction float64 `json:"aiVerticalReaction"` // Vertical target easing factor (slower)
	AISmoothing        float64 `json:"aiSmoothing"`        // Paddle-to-target easing factor
	AIDeadZone         float64 `json:"aiDeadZone"`         // Suppress movement below this delta
	AIStandOff         float64 `json:"aiStandOff"`         // Min distance kept from the net line
}

func Beginner() Difficulty {
	return Difficulty{
		Name:               "beginner",
		BallSpeedX:         3.0,
		BallSpeedY:         4.0,
		BallMaxSpeed:       7.0,
		SpeedGrowth:        1.02,
		AISpeed:            4.5,
		AIReaction:         0.08,
		AIVerticalReaction: 0.04,
		AISmoothing:        0.10,
		AIDeadZone:         6.0,
		AIStandOff:         90.0,
	}
}

func Advanced() Difficulty {
	return Difficulty{
		Name:               "advanced",
		BallSpeedX:         4.0,
		BallSpeedY:         5.5,
		BallMaxSpeed:       9.0,
		SpeedGrowth:        1.035,
		AISpeed:            6.5,
		AIReaction:         0.14,
		AIVerticalReaction: 0.07,
		AISmoothing:        0.16,
		AIDeadZone:         4.0,
		AIStandOff:         70.0,
	}
}

func Expert() Difficulty {
	return Difficulty{
		Name:               "expert",
		BallSpeedX:         5.0,
		BallSpeedY:         7.0,
		BallMaxSpeed:       12.0,
		SpeedGrowth:        1.05,
		AISpeed:            9.0,
		AIReaction:         0.22,
		AIVerticalReaction: 0.12,
		AISmoothing:        0.25,
		AIDeadZone:         2.5,
		AIStandOff:         50.0,
	}
}

// Profiles returns every selectable difficulty, in ascending order.
func Profiles() []Difficulty {
	return []Difficulty{Beginner(), Advanced(), Expert()}
}

// ProfileByName resolves a difficulty by its name.
func ProfileByName(name string) (Difficulty, error) {
	for _, d := range Profiles() {
		if d.Name == name {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("unknown difficulty %q", name)
}
