package progress

import (
	"context"
	"sync"
	"time"

	"github.com/aleister1102/linkchecker/internal/config"
	"github.com/rs/zerolog"
)

// ProgressDisplayConfig holds display settings
type ProgressDisplayConfig struct {
	DisplayInterval   time.Duration
	EnableProgress    bool
	ShowETAEstimation bool
}

// DisplayConfigFrom converts the application progress config
func DisplayConfigFrom(cfg config.ProgressConfig) *ProgressDisplayConfig {
	interval := cfg.GetDisplayIntervalDuration()
	if interval <= 0 {
		interval = time.Duration(config.DefaultProgressDisplayInterval) * time.Second
	}
	return &ProgressDisplayConfig{
		DisplayInterval:   interval,
		EnableProgress:    cfg.EnableProgress,
		ShowETAEstimation: cfg.ShowETAEstimation,
	}
}

// ProgressDisplayManager periodically logs the compile and check progress
type ProgressDisplayManager struct {
	compileProgress *Progress
	checkProgress   *Progress
	mutex           sync.RWMutex
	logger          zerolog.Logger
	displayTicker   *time.Ticker
	isRunning       bool
	stopChan        chan struct{}
	loopDone        chan struct{}
	ctx             context.Context
	cancel          context.CancelFunc
	lastDisplayed   string
	config          *ProgressDisplayConfig
	triggerDisplay  chan struct{}
}

// NewProgressDisplayManager creates a display manager; a nil config uses defaults
func NewProgressDisplayManager(logger zerolog.Logger, cfg *ProgressDisplayConfig) *ProgressDisplayManager {
	if cfg == nil {
		cfg = &ProgressDisplayConfig{
			DisplayInterval:   3 * time.Second,
			EnableProgress:    true,
			ShowETAEstimation: true,
		}
	}

	return &ProgressDisplayManager{
		compileProgress: NewProgress(ProgressTypeCompile),
		checkProgress:   NewProgress(ProgressTypeCheck),
		logger:          logger.With().Str("component", "ProgressDisplay").Logger(),
		config:          cfg,
		triggerDisplay:  make(chan struct{}, 1),
	}
}

// Start begins the display loop. A stopped manager can be started again.
func (pdm *ProgressDisplayManager) Start() {
	pdm.mutex.Lock()
	defer pdm.mutex.Unlock()

	if pdm.isRunning {
		return
	}
	if !pdm.config.EnableProgress {
		pdm.logger.Debug().Msg("Progress display disabled in configuration")
		return
	}

	pdm.isRunning = true
	pdm.ctx, pdm.cancel = context.WithCancel(context.Background())
	pdm.stopChan = make(chan struct{})
	pdm.loopDone = make(chan struct{})
	pdm.displayTicker = time.NewTicker(pdm.config.DisplayInterval)

	go pdm.displayLoop(pdm.ctx, pdm.displayTicker, pdm.stopChan, pdm.loopDone)
}

// Stop ends the display loop after logging the final state
func (pdm *ProgressDisplayManager) Stop() {
	pdm.mutex.Lock()
	if !pdm.isRunning {
		pdm.mutex.Unlock()
		return
	}
	pdm.isRunning = false
	pdm.cancel()
	pdm.displayTicker.Stop()
	close(pdm.stopChan)
	loopDone := pdm.loopDone
	pdm.mutex.Unlock()

	<-loopDone
	pdm.displayProgress()
}

// StartCompile marks candidate compilation as running
func (pdm *ProgressDisplayManager) StartCompile(totalInputLinks int64) {
	pdm.compileProgress.Start(totalInputLinks, "compiling candidates")
	pdm.triggerImmediateDisplay()
}

// UpdateCompile sets how many input links were filtered or expanded
func (pdm *ProgressDisplayManager) UpdateCompile(current, total int64, message string) {
	pdm.compileProgress.Update(current, total, "compiling candidates", message)
	pdm.triggerImmediateDisplay()
}

// SetCompileStatus sets the compile phase status
func (pdm *ProgressDisplayManager) SetCompileStatus(status ProgressStatus, message string) {
	pdm.compileProgress.SetStatus(status, message)
	pdm.triggerImmediateDisplay()
}

// StartCheck marks verification as running for total candidates
func (pdm *ProgressDisplayManager) StartCheck(total int64) {
	pdm.checkProgress.Start(total, "verifying")
	pdm.triggerImmediateDisplay()
}

// RecordResult counts one verified URL. It does not force a redraw so the
// ticker bounds the log volume on large runs.
func (pdm *ProgressDisplayManager) RecordResult(good bool) {
	pdm.checkProgress.RecordOutcome(good)
}

// SetCheckStatus sets the check phase status
func (pdm *ProgressDisplayManager) SetCheckStatus(status ProgressStatus, message string) {
	pdm.checkProgress.SetStatus(status, message)
	pdm.triggerImmediateDisplay()
}

// GetCheckProgress returns a snapshot of the check phase
func (pdm *ProgressDisplayManager) GetCheckProgress() ProgressInfo {
	return pdm.checkProgress.Info()
}

// GetCompileProgress returns a snapshot of the compile phase
func (pdm *ProgressDisplayManager) GetCompileProgress() ProgressInfo {
	return pdm.compileProgress.Info()
}

func (pdm *ProgressDisplayManager) triggerImmediateDisplay() {
	select {
	case pdm.triggerDisplay <- struct{}{}:
	default:
	}
}
