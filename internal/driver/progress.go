package driver

import "time"

// ProgressStatus reports where a file is in the pipeline.
type ProgressStatus uint8

const (
	ProgressQueued ProgressStatus = iota
	ProgressStarted
	ProgressDone
)

// ProgressEvent describes one file transition.
type ProgressEvent struct {
	Path     string
	Status   ProgressStatus
	Index    int // position of the file in the sorted input
	Total    int
	Errors   int
	Warnings int
	Elapsed  time.Duration
}

// ProgressObserver receives events from worker goroutines; it must be safe
// for concurrent use.
type ProgressObserver func(ProgressEvent)

func (o ProgressObserver) emit(ev ProgressEvent) {
	if o != nil {
		o(ev)
	}
}
