package clarity

import (
	"time"

	"github.com/charmbracelet/log"
)

// stageTiming is the duration of one pipeline stage.
type stageTiming struct {
	Stage    string
	Duration time.Duration
}

// profiler records stage timings and reports them at debug level.
type profiler struct {
	logger    *log.Logger
	startTime time.Time
	stages    []stageTiming
}

func newProfiler(logger *log.Logger) *profiler {
	return &profiler{logger: logger, startTime: time.Now()}
}

// endStage records the time since start under name.
func (p *profiler) endStage(name string, start time.Time) {
	p.stages = append(p.stages, stageTiming{Stage: name, Duration: time.Since(start)})
}

// write logs every recorded stage and the total.
func (p *profiler) write() {
	if p.logger == nil || len(p.stages) == 0 {
		return
	}
	for _, s := range p.stages {
		p.logger.Debug("stage timing", "stage", s.Stage, "duration", s.Duration)
	}
	p.logger.Debug("run complete", "total", time.Since(p.startTime))
}
