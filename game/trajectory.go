package game

import (
	"math"
	"math/rand"

	"github.com/pbianche/pongcourt/utils"
)

// Fairness bounds for computed returns. The horizontal clamp keeps shots
// returnable at every difficulty, the vertical floor keeps rallies moving.
const (
	safeZoneMargin = 0.12 // Fraction of court width excluded from targeting on each side
	minReturnVx    = 0.8
	maxReturnVx    = 6.5
	minReturnVy    = 2.0
	vxJitter       = 0.6
	vyJitter       = 0.4
)

// returnVelocity computes the post-hit ball velocity for a paddle contact.
// The ball is sent toward a target point on the opponent's side, biased away
// from the opponent's current zone, with bounded random jitter and per-rally
// speed growth, all inside the difficulty's speed ceilings.
func returnVelocity(ball *Ball, striker, opponent *Paddle, prof Difficulty, courtWidth float64, rallyHits int, rng *rand.Rand) (vx, vy float64) {
	// 1. Where along the paddle did the ball land (0 = left edge, 1 = right).
	ratio := 0.5
	if striker.Width > 0 {
		ratio = utils.Clamp((ball.CenterX()-striker.X)/striker.Width, 0, 1)
	}

	// 2. Interpolate across the safe sub-range of the court width.
	margin := courtWidth * safeZoneMargin
	targetX := utils.Lerp(margin, courtWidth-margin, ratio)

	// 3. Avoid aiming into the third the opponent already covers.
	third := courtWidth / 3
	switch {
	case opponent.CenterX() < third && targetX < courtWidth/2:
		targetX = courtWidth - targetX
	case opponent.CenterX() > 2*third && targetX > courtWidth/2:
		targetX = courtWidth - targetX
	}

	// 4. Required components from distance over a flat time-to-cross
	// estimate based on the opponent's baseline distance.
	dy := utils.Abs(opponent.CenterY() - ball.CenterY())
	if dy < 1 {
		dy = 1
	}
	timeToCross := dy / prof.BallSpeedY
	vx = (targetX - ball.CenterX()) / timeToCross
	vyMag := prof.BallSpeedY

	// Rally growth, capped by the profile ceiling before jitter.
	vyMag = math.Min(vyMag*math.Pow(prof.SpeedGrowth, float64(rallyHits)), prof.BallMaxSpeed)

	// 5. Speed clamps.
	vx = utils.CopySign(utils.Clamp(utils.Abs(vx), minReturnVx, maxReturnVx), vx)
	vyMag = utils.Clamp(vyMag, minReturnVy, prof.BallMaxSpeed)

	// 6. Bounded jitter, then the final clamp pass.
	vx += utils.RandBetween(rng, -vxJitter, vxJitter)
	vyMag += utils.RandBetween(rng, -vyJitter, vyJitter)

	vx = utils.CopySign(utils.Clamp(utils.Abs(vx), minReturnVx, maxReturnVx), vx)
	vyMag = utils.Clamp(vyMag, minReturnVy, prof.BallMaxSpeed)

	// The ball always leaves toward the opponent's side.
	if striker.Side == SideBottom {
		vyMag = -vyMag
	}
	return vx, vyMag
}
