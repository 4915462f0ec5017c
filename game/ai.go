package game

import "github.com/pbianche/pongcourt/utils"

// Prediction tuning shared by all difficulties. The profile controls how
// fast the AI converges, these control what it converges to.
const (
	predictionFrames  = 8   // Linear lookahead for the ball's future X
	predictionMinVx   = 0.3 // Below this the ball is treated as dropping straight
	verticalLeadRatio = 0.4 // How far ahead of the ball's Y the defensive target sits
)

// AIController drives the top paddle. It chases a continuously-tracked
// target position rather than the ball itself; the extra easing stage models
// human-like reaction lag.
type AIController struct {
	TargetX float64 `json:"targetX"`
	TargetY float64 `json:"targetY"`
}

// Reset re-initializes the tracked target to the paddle's current position.
func (c *AIController) Reset(paddle *Paddle) {
	c.TargetX = paddle.X
	c.TargetY = paddle.Y
}

// Update computes this tick's ideal defensive position, eases the tracked
// target toward it, then eases the paddle toward the target. The paddle is
// clamped to the court and its net stand-off every tick.
func (c *AIController) Update(ball *Ball, paddle *Paddle, prof Difficulty, courtWidth, netY float64) {
	// Horizontal: predicted future ball X, centered on the paddle.
	idealX := ball.CenterX() - paddle.Width/2
	if utils.Abs(ball.Vx) > predictionMinVx {
		idealX = ball.CenterX() + ball.Vx*predictionFrames - paddle.Width/2
	}
	idealX = utils.Clamp(idealX, 0, courtWidth-paddle.Width)

	// Vertical: press toward the net while the threat is inbound, retreat to
	// the baseline otherwise. Never closer to the net than the stand-off.
	baselineY := paddle.Height
	maxY := netY - prof.AIStandOff - paddle.Height
	idealY := baselineY
	if ball.Vy < 0 && ball.CenterY() > netY {
		lead := (ball.CenterY() - netY) * verticalLeadRatio
		idealY = utils.Clamp(maxY-lead, baselineY, maxY)
	}

	// Reaction lag: the tracked target converges slower than the paddle.
	c.TargetX = utils.Ease(c.TargetX, idealX, prof.AIReaction)
	c.TargetY = utils.Ease(c.TargetY, idealY, prof.AIVerticalReaction)

	// Chase the target with a dead-zone so the paddle does not jitter.
	dx := c.TargetX - paddle.X
	if utils.Abs(dx) > prof.AIDeadZone {
		step := dx * prof.AISmoothing
		step = utils.Clamp(step, -prof.AISpeed, prof.AISpeed)
		paddle.X += step
	}
	dy := c.TargetY - paddle.Y
	if utils.Abs(dy) > prof.AIDeadZone {
		step := dy * prof.AISmoothing
		step = utils.Clamp(step, -prof.AISpeed, prof.AISpeed)
		paddle.Y += step
	}

	paddle.ClampTop(courtWidth, netY, prof.AIStandOff)
}
