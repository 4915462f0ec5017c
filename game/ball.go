package game

import (
	"math/rand"

	"github.com/pbianche/pongcourt/utils"
)

// NoTouch marks a ball that no paddle has returned yet (fresh serve).
const NoTouch = -1

// Ball is the live ball state. Positions are the top-left corner of the
// axis-aligned bounding box, velocities are per-tick deltas.
type Ball struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Vx       float64 `json:"vx"`
	Vy       float64 `json:"vy"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	MaxSpeed float64 `json:"maxSpeed"`

	// LastTouch is the side (SideTop/SideBottom) whose paddle last returned
	// the ball, or NoTouch after a serve.
	LastTouch int `json:"lastTouch"`
}

func NewBall(size, maxSpeed, courtWidth, courtHeight float64) *Ball {
	return &Ball{
		X:         courtWidth/2 - size/2,
		Y:         courtHeight/2 - size/2,
		Width:     size,
		Height:    size,
		MaxSpeed:  maxSpeed,
		LastTouch: NoTouch,
	}
}

func (b *Ball) CenterX() float64 { return b.X + b.Width/2 }
func (b *Ball) CenterY() float64 { return b.Y + b.Height/2 }

// Move advances the ball by one Euler step.
func (b *Ball) Move() {
	b.X += b.Vx
	b.Y += b.Vy
}

// ClampSpeed keeps both velocity components within [-MaxSpeed, MaxSpeed].
func (b *Ball) ClampSpeed() {
	b.Vx = utils.Clamp(b.Vx, -b.MaxSpeed, b.MaxSpeed)
	b.Vy = utils.Clamp(b.Vy, -b.MaxSpeed, b.MaxSpeed)
}

// BounceWalls reflects the ball off the left/right court boundaries and
// clamps it back inside. Returns true if a wall was hit.
func (b *Ball) BounceWalls(courtWidth float64) bool {
	hit := false
	if b.X <= 0 {
		b.X = 0
		b.Vx = utils.Abs(b.Vx)
		hit = true
	}
	if b.X+b.Width >= courtWidth {
		b.X = courtWidth - b.Width
		b.Vx = -utils.Abs(b.Vx)
		hit = true
	}
	return hit
}

// OutTop reports whether the ball has left the court past the top boundary
// by more than the overshoot tolerance.
func (b *Ball) OutTop(tolerance float64) bool {
	return b.Y+b.Height < -tolerance
}

// OutBottom reports whether the ball has left past the bottom boundary.
func (b *Ball) OutBottom(courtHeight, tolerance float64) bool {
	return b.Y > courtHeight+tolerance
}

// Recenter parks the ball motionless at center court, ready for a serve.
func (b *Ball) Recenter(courtWidth, courtHeight float64) {
	b.X = courtWidth/2 - b.Width/2
	b.Y = courtHeight/2 - b.Height/2
	b.Vx = 0
	b.Vy = 0
	b.LastTouch = NoTouch
}

// Serve launches the ball from center court toward the receiving side.
// Both components get a nonzero floor so no serve is fully axis aligned.
func (b *Ball) Serve(receiver int, prof Difficulty, courtWidth, courtHeight float64, rng *rand.Rand) {
	b.Recenter(courtWidth, courtHeight)

	vx := utils.RandBetween(rng, prof.BallSpeedX*0.5, prof.BallSpeedX) * utils.RandSign(rng)
	if utils.Abs(vx) < MinServeComponent {
		vx = utils.CopySign(MinServeComponent, vx)
	}

	vy := utils.RandBetween(rng, prof.BallSpeedY*0.8, prof.BallSpeedY)
	if vy < MinServeComponent {
		vy = MinServeComponent
	}
	if receiver == SideTop {
		vy = -vy
	}

	b.Vx = vx
	b.Vy = vy
	b.ClampSpeed()
}

// Intercepts reports axis-aligned bounding-box overlap with a paddle.
func (b *Ball) Intercepts(p *Paddle) bool {
	return b.X < p.X+p.Width &&
		b.X+b.Width > p.X &&
		b.Y < p.Y+p.Height &&
		b.Y+b.Height > p.Y
}
