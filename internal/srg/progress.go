package srg

import "time"

// ProgressReporter receives progress during an import. OnPassAdvance may be
// called from several goroutines at once.
type ProgressReporter interface {
	OnPassStart(pass Pass, total int)
	OnPassAdvance(pass Pass, processed int)
	OnPassComplete(pass Pass, duration time.Duration)
}

type noopProgress struct{}

func (noopProgress) OnPassStart(Pass, int)              {}
func (noopProgress) OnPassAdvance(Pass, int)            {}
func (noopProgress) OnPassComplete(Pass, time.Duration) {}
