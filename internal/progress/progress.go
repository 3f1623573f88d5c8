package progress

import (
	"sync"
	"time"
)

// Progress encapsulates a single progress indicator.
type Progress struct {
	mu   sync.RWMutex
	info ProgressInfo
}

// NewProgress creates a new Progress indicator.
func NewProgress(progressType ProgressType) *Progress {
	return &Progress{
		info: ProgressInfo{
			Type:   progressType,
			Status: ProgressStatusIdle,
		},
	}
}

// Info returns a copy of the ProgressInfo.
func (p *Progress) Info() ProgressInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.info
}

// Start resets the progress for a run of total items.
func (p *Progress) Start(total int64, stage string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	p.info.Status = ProgressStatusRunning
	p.info.Current = 0
	p.info.Total = total
	p.info.Stage = stage
	p.info.Message = ""
	p.info.Counts = OutcomeCounts{}
	p.info.StartTime = now
	p.info.LastUpdateTime = now
	p.info.EstimatedETA = 0
}

// Update sets the absolute position.
func (p *Progress) Update(current, total int64, stage, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if p.info.Status == ProgressStatusIdle {
		p.info.StartTime = now
		p.info.Status = ProgressStatusRunning
	}

	p.info.Current = current
	p.info.Total = total
	p.info.Stage = stage
	p.info.Message = message
	p.info.LastUpdateTime = now
	p.info.UpdateETA()
}

// RecordOutcome advances by one item and counts it as good or bad.
func (p *Progress) RecordOutcome(good bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.info.Status == ProgressStatusIdle {
		p.info.StartTime = time.Now()
		p.info.Status = ProgressStatusRunning
	}

	p.info.Current++
	if good {
		p.info.Counts.Good++
	} else {
		p.info.Counts.Bad++
	}
	p.info.LastUpdateTime = time.Now()
	p.info.UpdateETA()
}

// SetStatus sets the progress status.
func (p *Progress) SetStatus(status ProgressStatus, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.Status = status
	p.info.Message = message
	p.info.LastUpdateTime = time.Now()
}
