package common

import "time"

// StopWatch accumulates wall time between Start and Stop calls.
type StopWatch struct {
	Name    string
	started time.Time
	running bool
	elapsed time.Duration
}

func NewStopWatch(name string) *StopWatch {
	return &StopWatch{Name: name}
}

func (w *StopWatch) Start() {
	if w.running {
		return
	}
	w.started = time.Now()
	w.running = true
}

func (w *StopWatch) Stop() {
	if !w.running {
		return
	}
	w.elapsed += time.Since(w.started)
	w.running = false
}

func (w *StopWatch) Reset() {
	w.elapsed = 0
	w.running = false
}

// Elapsed includes the running lap when the watch has not been stopped.
func (w *StopWatch) Elapsed() time.Duration {
	if w.running {
		return w.elapsed + time.Since(w.started)
	}
	return w.elapsed
}
