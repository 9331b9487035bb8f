package hostbridge

import (
	"log/slog"
	"sync/atomic"

	"github.com/pthm-cable/silk/silk"
)

// Inbox buffers decoded commands between connection goroutines and the
// frame loop. When full, new commands are dropped.
type Inbox struct {
	ch      chan Command
	dropped atomic.Int64
	logger  *slog.Logger
}

// NewInbox creates an inbox holding up to size commands.
func NewInbox(size int, logger *slog.Logger) *Inbox {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Inbox{ch: make(chan Command, size), logger: logger}
}

// Push enqueues cmd without blocking. It reports false if the inbox is full.
func (in *Inbox) Push(cmd Command) bool {
	select {
	case in.ch <- cmd:
		return true
	default:
		if in.dropped.Add(1) == 1 {
			in.logger.Warn("host bridge inbox full, dropping commands", "capacity", cap(in.ch))
		}
		return false
	}
}

// Apply drains every queued command into t and returns how many ran. It
// must be called from the frame thread.
func (in *Inbox) Apply(t Target) int {
	n := 0
	for {
		select {
		case cmd := <-in.ch:
			cmd.apply(t)
			n++
		default:
			return n
		}
	}
}

// Len returns the number of queued commands.
func (in *Inbox) Len() int {
	return len(in.ch)
}

// Dropped returns the number of commands dropped on a full inbox.
func (in *Inbox) Dropped() int64 {
	return in.dropped.Load()
}

// rendererTarget adapts a silk renderer to Target.
type rendererTarget struct {
	r *silk.Renderer
}

// Bind returns a Target that drives r.
func Bind(r *silk.Renderer) Target {
	return rendererTarget{r: r}
}

func (t rendererTarget) SetPointerTarget(x, y float64)    { t.r.SetPointerTarget(x, y) }
func (t rendererTarget) SetScrollTarget(v float64)        { t.r.HeroScroll().SetTarget(v) }
func (t rendererTarget) SyncMotionPreference(reduce bool) { t.r.SyncMotionPreference(reduce) }
func (t rendererTarget) EvaluateFallback()                { t.r.EvaluateFallback() }
