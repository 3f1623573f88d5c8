package progress

import "time"

// ProgressType identifies which phase a progress tracks
type ProgressType string

const (
	ProgressTypeCompile ProgressType = "COMPILE"
	ProgressTypeCheck   ProgressType = "CHECK"
)

// ProgressStatus defines the state of a progress
type ProgressStatus string

const (
	ProgressStatusIdle      ProgressStatus = "IDLE"
	ProgressStatusRunning   ProgressStatus = "RUNNING"
	ProgressStatusComplete  ProgressStatus = "COMPLETE"
	ProgressStatusError     ProgressStatus = "ERROR"
	ProgressStatusCancelled ProgressStatus = "CANCELLED"
)

// OutcomeCounts tallies classified URLs
type OutcomeCounts struct {
	Good int `json:"good"`
	Bad  int `json:"bad"`
}

// ProgressInfo is a snapshot of one progress
type ProgressInfo struct {
	Type           ProgressType   `json:"type"`
	Status         ProgressStatus `json:"status"`
	Current        int64          `json:"current"`
	Total          int64          `json:"total"`
	Stage          string         `json:"stage"`
	Message        string         `json:"message"`
	StartTime      time.Time      `json:"start_time"`
	LastUpdateTime time.Time      `json:"last_update_time"`
	EstimatedETA   time.Duration  `json:"estimated_eta"`
	Counts         OutcomeCounts  `json:"counts"`
}

// UpdateETA estimates the remaining time from the average rate so far
func (pi *ProgressInfo) UpdateETA() {
	if pi.Total <= 0 || pi.Current <= 0 || pi.Status != ProgressStatusRunning {
		pi.EstimatedETA = 0
		return
	}

	elapsed := time.Since(pi.StartTime)
	if elapsed <= 0 {
		pi.EstimatedETA = 0
		return
	}

	rate := float64(pi.Current) / elapsed.Seconds()
	remaining := float64(pi.Total - pi.Current)
	if rate <= 0 || remaining <= 0 {
		pi.EstimatedETA = 0
		return
	}

	pi.EstimatedETA = time.Duration(remaining / rate * float64(time.Second))
}

// GetPercentage returns completion in [0, 100]
func (pi *ProgressInfo) GetPercentage() float64 {
	if pi.Total <= 0 {
		return 0.0
	}
	percentage := float64(pi.Current) * 100 / float64(pi.Total)
	if percentage > 100 {
		return 100.0
	}
	return percentage
}
