// Package telemetry aggregates movement-resolution statistics over tick
// windows and writes them to CSV and structured logs.
package telemetry

import "log/slog"

// WindowStats holds aggregated motion statistics for a tick window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Entity count at window end.
	Entities int `csv:"entities"`

	// Resolver activity during the window. Moves counts resolver calls
	// with nonzero movement, Collisions the sub-steps that ended in
	// contact, SubSteps all sub-steps taken, and CapHits the resolutions
	// that ran out of sub-steps.
	Moves      int `csv:"moves"`
	Collisions int `csv:"collisions"`
	SubSteps   int `csv:"sub_steps"`
	CapHits    int `csv:"cap_hits"`

	// MeanSubSteps is SubSteps per move, 0 when nothing moved.
	MeanSubSteps float64 `csv:"mean_sub_steps"`
}

// Collector accumulates per-tick resolver stats into windows.
type Collector struct {
	windowTicks int
	logStats    bool
	out         *OutputManager

	// started is set once the first tick is seen; the first window's
	// start is whatever tick numbering the caller uses.
	started bool
	current WindowStats
}

// NewCollector creates a collector closing a window every windowTicks
// ticks. out may be nil (no CSV output); logStats controls slog output.
func NewCollector(windowTicks int, logStats bool, out *OutputManager) *Collector {
	if windowTicks <= 0 {
		windowTicks = 60
	}
	return &Collector{
		windowTicks: windowTicks,
		logStats:    logStats,
		out:         out,
	}
}

// RecordMove records one resolver call.
func (c *Collector) RecordMove(subSteps, collisions int, capped bool) {
	c.current.Moves++
	c.current.SubSteps += subSteps
	c.current.Collisions += collisions
	if capped {
		c.current.CapHits++
	}
}

// EndTick closes the tick; when the window is full it is reported and a
// fresh one begins. Errors from the CSV writer are returned so the caller
// can surface them once rather than every window.
func (c *Collector) EndTick(tick int32, entities int) error {
	if !c.started {
		c.current.WindowStartTick = tick
		c.started = true
	}
	if tick-c.current.WindowStartTick+1 < int32(c.windowTicks) {
		return nil
	}

	c.current.WindowEndTick = tick
	c.current.Entities = entities
	if c.current.Moves > 0 {
		c.current.MeanSubSteps = float64(c.current.SubSteps) / float64(c.current.Moves)
	}

	if c.logStats {
		slog.Info("motion window",
			"window_end", c.current.WindowEndTick,
			"entities", c.current.Entities,
			"moves", c.current.Moves,
			"collisions", c.current.Collisions,
			"sub_steps", c.current.SubSteps,
			"cap_hits", c.current.CapHits,
			"mean_sub_steps", c.current.MeanSubSteps,
		)
	}

	var err error
	if c.out != nil {
		err = c.out.WriteMotion(c.current)
	}
	c.current = WindowStats{WindowStartTick: tick + 1}
	return err
}
