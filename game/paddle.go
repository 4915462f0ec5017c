// File: game/paddle.go
package game

import "github.com/pbianche/pongcourt/utils"

// Paddle sides. SideTop is the AI paddle, SideBottom the human one.
const (
	SideTop = iota
	SideBottom
)

// MinServeComponent is the floor magnitude for each velocity component on a
// serve or return, so rallies cannot degenerate into axis-aligned crawls.
const MinServeComponent = 1.5

// InputState is the pressed/released key map polled once per tick.
type InputState struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Up    bool `json:"up"`
	Down  bool `json:"down"`
}

type Paddle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Speed  float64 `json:"speed"`
	Side   int     `json:"side"`
}

// NewPaddle places a paddle centered horizontally on its baseline.
func NewPaddle(side int, width, height, speed, courtWidth, courtHeight float64) *Paddle {
	y := courtHeight - height*2
	if side == SideTop {
		y = height
	}
	return &Paddle{
		X:      courtWidth/2 - width/2,
		Y:      y,
		Width:  width,
		Height: height,
		Speed:  speed,
		Side:   side,
	}
}

func (p *Paddle) CenterX() float64 { return p.X + p.Width/2 }
func (p *Paddle) CenterY() float64 { return p.Y + p.Height/2 }

// ApplyInput moves the human paddle directly from the key state, one step of
// Speed per pressed axis, then clamps to the court and below the net line.
func (p *Paddle) ApplyInput(in InputState, courtWidth, courtHeight, netY, netMargin float64) {
	if in.Left {
		p.X -= p.Speed
	}
	if in.Right {
		p.X += p.Speed
	}
	if in.Up {
		p.Y -= p.Speed
	}
	if in.Down {
		p.Y += p.Speed
	}

	p.X = utils.Clamp(p.X, 0, courtWidth-p.Width)
	p.Y = utils.Clamp(p.Y, netY+netMargin, courtHeight-p.Height)
}

// ClampTop keeps the AI paddle inside the court and at least standOff above
// the net line. Called every tick regardless of how the target was computed.
func (p *Paddle) ClampTop(courtWidth, netY, standOff float64) {
	p.X = utils.Clamp(p.X, 0, courtWidth-p.Width)
	p.Y = utils.Clamp(p.Y, 0, netY-standOff-p.Height)
}
