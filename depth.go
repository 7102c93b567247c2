package dome

import (
	"math"
	"slices"
)

// Draw order bounds. A tile facing the viewer gets MaxDrawOrder, a tile
// directly behind gets MinDrawOrder.
const (
	MinDrawOrder = 1
	MaxDrawOrder = 999
)

// FrameScheduler coalesces recompute requests into at most one run per frame.
type FrameScheduler interface {
	// RequestRecompute marks work pending. Calling it again while pending is
	// a no-op.
	RequestRecompute()
	// OnFrame runs the pending work, if any, and reports whether it ran.
	OnFrame() bool
}

// frameJob is a FrameScheduler around a single function.
type frameJob struct {
	pending bool
	run     func()
}

func (j *frameJob) RequestRecompute() {
	j.pending = true
}

func (j *frameJob) OnFrame() bool {
	if !j.pending {
		return false
	}
	j.pending = false
	j.run()
	return true
}

// TileAngle returns the intrinsic angular position in degrees used for depth
// ordering of a tile at horizontal grid offset offsetX.
func TileAngle(offsetX, segments int) float64 {
	return (360 / float64(segments)) * (float64(offsetX) + 0.5)
}

// DrawOrderFor maps a tile's angle relative to the viewing yaw to its draw
// order: round(500 + 499*cos(relative)), floored at MinDrawOrder.
func DrawOrderFor(relativeAngle float64) int {
	rel := WrapSigned(relativeAngle)
	order := int(math.Round(500 + 499*math.Cos(degToRad(rel))))
	if order < MinDrawOrder {
		return MinDrawOrder
	}
	return order
}

// DepthSorter assigns each tile a draw order from the current yaw. Requests
// are coalesced: only the latest yaw is used and the sort runs at most once
// per frame.
type DepthSorter struct {
	tiles    []Tile
	segments int

	yaw      float64
	orders   []int
	sequence []int // tile indices back-to-front

	sched      FrameScheduler
	recomputes int
}

// NewDepthSorter creates a sorter with orders computed for yaw 0.
func NewDepthSorter(tiles []Tile, segments int) *DepthSorter {
	if segments < 1 {
		segments = 1
	}
	d := &DepthSorter{
		tiles:    tiles,
		segments: segments,
		orders:   make([]int, len(tiles)),
		sequence: make([]int, len(tiles)),
	}
	d.sched = &frameJob{run: func() {
		d.sort()
		d.recomputes++
	}}
	d.sort()
	return d
}

// RequestRecompute records yaw as the latest orientation and schedules one
// sort for the next frame.
func (d *DepthSorter) RequestRecompute(yaw float64) {
	d.yaw = yaw
	d.sched.RequestRecompute()
}

// OnFrame runs the pending sort, if any.
func (d *DepthSorter) OnFrame() bool {
	return d.sched.OnFrame()
}

// DrawOrder returns the draw order of tile i.
func (d *DepthSorter) DrawOrder(i int) int {
	return d.orders[i]
}

// DrawSequence returns tile indices sorted back-to-front. The returned slice
// MUST NOT be mutated.
func (d *DepthSorter) DrawSequence() []int {
	return d.sequence
}

// Recomputes returns how many scheduled sorts have run.
func (d *DepthSorter) Recomputes() int {
	return d.recomputes
}

// Yaw returns the yaw the current orders were requested for.
func (d *DepthSorter) Yaw() float64 {
	return d.yaw
}

func (d *DepthSorter) sort() {
	for i, t := range d.tiles {
		d.orders[i] = DrawOrderFor(TileAngle(t.OffsetX, d.segments) - d.yaw)
		d.sequence[i] = i
	}
	slices.SortStableFunc(d.sequence, func(a, b int) int {
		return d.orders[a] - d.orders[b]
	})
}
