package demo

import (
	"context"
	"time"
)

// RunHeadless steps the demo on a synthetic clock at the configured target
// frame rate, without sleeping. It stops after maxSteps steps (0 = no limit)
// or when ctx is done, and returns the number of frames drawn.
func (d *Demo) RunHeadless(ctx context.Context, maxSteps int64) int64 {
	fps := d.cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	now := time.Now()

	d.logger.Info("starting headless run", "max_steps", maxSteps, "fps", fps)
	for step := int64(0); maxSteps == 0 || step < maxSteps; step++ {
		if ctx.Err() != nil {
			break
		}
		d.Step(now)
		now = now.Add(interval)
	}
	frames := d.renderer.Frame()
	d.logger.Info("headless run finished", "frames", frames)
	return frames
}
