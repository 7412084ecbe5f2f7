// Package motion advances agents across a topology one tick at a time.
//
// An agent cruises in a straight line until its quantized cell changes, and
// only then picks a new heading: from the wall resolver when bouncing, or
// from the nearest target's direction table when seeking. Agents that cannot
// move anywhere become stationary instead of failing the tick.
package motion

import (
	"github.com/go-gl/mathgl/mgl32"

	"gridwalk/pkg/grid"
)

// Mode selects how an agent chooses headings.
type Mode uint8

const (
	// Bounce follows corridors using the wall resolver.
	Bounce Mode = iota
	// Seek walks down the nearest target's shortest-path field.
	Seek
)

func (m Mode) String() string {
	if m == Seek {
		return "seek"
	}
	return "bounce"
}

// Agent is the per-agent movement state. Pos is in face-local cell units:
// cell (x, y) covers [x, x+1)×[y, y+1).
type Agent struct {
	Pos  mgl32.Vec2
	Dir  grid.Direction
	Cell grid.Cell
	Face int
	Mode Mode
}

// Spawn returns an agent heading North with the sentinel cell. pos may be
// anywhere inside a cell: the first Step snaps it to that cell's centre and
// resolves the real heading without moving.
func Spawn(pos mgl32.Vec2, face int, mode Mode) Agent {
	return Agent{Pos: pos, Dir: grid.North, Cell: grid.Sentinel, Face: face, Mode: mode}
}

// Stationary reports whether the agent has stopped.
func (a *Agent) Stationary() bool { return !a.Dir.Valid() }

// Center returns the centre of the agent's cell.
func (a *Agent) Center() mgl32.Vec2 {
	return mgl32.Vec2{float32(a.Cell.X) + 0.5, float32(a.Cell.Y) + 0.5}
}
