package game

import "testing"

func TestPaddle_ApplyInput(t *testing.T) {
	courtWidth, courtHeight := 480.0, 640.0
	netY := courtHeight / 2
	netMargin := 24.0

	testCases := []struct {
		name                 string
		x, y                 float64
		input                InputState
		expectedX, expectedY float64
	}{
		{"moves left", 200, 500, InputState{Left: true}, 192, 500},
		{"moves right", 200, 500, InputState{Right: true}, 208, 500},
		{"moves up", 200, 500, InputState{Up: true}, 200, 492},
		{"moves down", 200, 500, InputState{Down: true}, 200, 508},
		{"diagonal", 200, 500, InputState{Left: true, Up: true}, 192, 492},
		{"clamped at left wall", 2, 500, InputState{Left: true}, 0, 500},
		{"clamped at right wall", 380, 500, InputState{Right: true}, 384, 500},
		{"cannot cross the net margin", 200, netY + netMargin + 2, InputState{Up: true}, 200, netY + netMargin},
		{"clamped at bottom", 200, courtHeight - 16, InputState{Down: true}, 200, courtHeight - 14},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			paddle := &Paddle{X: tc.x, Y: tc.y, Width: 96, Height: 14, Speed: 8, Side: SideBottom}
			paddle.ApplyInput(tc.input, courtWidth, courtHeight, netY, netMargin)
			if paddle.X != tc.expectedX {
				t.Errorf("Expected X %f, got %f", tc.expectedX, paddle.X)
			}
			if paddle.Y != tc.expectedY {
				t.Errorf("Expected Y %f, got %f", tc.expectedY, paddle.Y)
			}
		})
	}
}

func TestPaddle_ClampTop(t *testing.T) {
	courtWidth := 480.0
	netY := 320.0
	standOff := 90.0

	testCases := []struct {
		name                 string
		x, y                 float64
		expectedX, expectedY float64
	}{
		{"inside bounds untouched", 100, 50, 100, 50},
		{"clamped to left", -10, 50, 0, 50},
		{"clamped to right", 500, 50, courtWidth - 96, 50},
		{"never closer to net than stand-off", 100, 300, 100, netY - standOff - 14},
		{"never above court top", 100, -5, 100, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			paddle := &Paddle{X: tc.x, Y: tc.y, Width: 96, Height: 14, Side: SideTop}
			paddle.ClampTop(courtWidth, netY, standOff)
			if paddle.X != tc.expectedX {
				t.Errorf("Expected X %f, got %f", tc.expectedX, paddle.X)
			}
			if paddle.Y != tc.expectedY {
				t.Errorf("Expected Y %f, got %f", tc.expectedY, paddle.Y)
			}
		})
	}
}

func TestNewPaddle_Placement(t *testing.T) {
	courtWidth, courtHeight := 480.0, 640.0
	top := NewPaddle(SideTop, 96, 14, 5, courtWidth, courtHeight)
	bottom := NewPaddle(SideBottom, 96, 14, 5, courtWidth, courtHeight)

	if top.CenterX() != courtWidth/2 {
		t.Errorf("top paddle not centered: %f", top.CenterX())
	}
	if bottom.CenterX() != courtWidth/2 {
		t.Errorf("bottom paddle not centered: %f", bottom.CenterX())
	}
	if top.Y >= courtHeight/2 {
		t.Errorf("top paddle spawned below the net: %f", top.Y)
	}
	if bottom.Y <= courtHeight/2 {
		t.Errorf("bottom paddle spawned above the net: %f", bottom.Y)
	}
}
