// Package render draws court snapshots as ASCII for the terminal client.
package render

import (
	"fmt"
	"strings"

	"github.com/pbianche/pongcourt/game"
)

const (
	ballChar   = '@'
	paddleChar = '='
	netChar    = '-'
	emptyChar  = ' '
)

// CourtToASCII rasterizes a snapshot into a cols x rows character grid with
// a one-character border. World coordinates scale down to the grid.
func CourtToASCII(snap game.Snapshot, cols, rows int) string {
	if cols < 8 || rows < 8 || snap.CourtW <= 0 || snap.CourtH <= 0 {
		return ""
	}

	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = make([]rune, cols)
		for x := range grid[y] {
			grid[y][x] = emptyChar
		}
	}

	scaleX := float64(cols) / snap.CourtW
	scaleY := float64(rows) / snap.CourtH

	netRow := clampIndex(int(snap.CourtH/2*scaleY), rows)
	for x := 0; x < cols; x++ {
		grid[netRow][x] = netChar
	}

	drawPaddle := func(p game.Paddle) {
		row := clampIndex(int(p.CenterY()*scaleY), rows)
		from := clampIndex(int(p.X*scaleX), cols)
		to := clampIndex(int((p.X+p.Width)*scaleX), cols)
		for x := from; x <= to; x++ {
			grid[row][x] = paddleChar
		}
	}
	drawPaddle(snap.Top)
	drawPaddle(snap.Bottom)

	ballRow := clampIndex(int(snap.Ball.CenterY()*scaleY), rows)
	ballCol := clampIndex(int(snap.Ball.CenterX()*scaleX), cols)
	grid[ballRow][ballCol] = ballChar

	var out strings.Builder
	out.WriteString("+" + strings.Repeat("-", cols) + "+\n")
	for _, row := range grid {
		out.WriteString("|")
		out.WriteString(string(row))
		out.WriteString("|\n")
	}
	out.WriteString("+" + strings.Repeat("-", cols) + "+\n")
	out.WriteString(fmt.Sprintf(" AI %d : %d YOU   [%s] %s\n",
		snap.Match.ScoreTop, snap.Match.ScoreBottom, snap.Difficulty, snap.Match.Phase))
	return out.String()
}

func clampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}
