package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressState tracks the completed fraction of several concurrent tasks.
type ProgressState struct {
	progresses []float64
	numTasks   int
}

// NewProgressState tracks numTasks tasks, all at 0.
func NewProgressState(numTasks int) *ProgressState {
	if numTasks < 0 {
		numTasks = 0
	}
	return &ProgressState{progresses: make([]float64, numTasks), numTasks: numTasks}
}

// Update records the progress of task idx, clamped to [0, 1]. Out-of-range
// indices are ignored.
func (p *ProgressState) Update(idx int, value float64) {
	if idx < 0 || idx >= len(p.progresses) {
		return
	}
	p.progresses[idx] = min(max(value, 0), 1)
}

// CalculateAverage returns the mean progress over all tasks.
func (p *ProgressState) CalculateAverage() float64 {
	if p.numTasks == 0 {
		return 0
	}
	var sum float64
	for _, v := range p.progresses {
		sum += v
	}
	return sum / float64(p.numTasks)
}

// maxETA caps estimates so a stalled start does not print absurd values.
const maxETA = 24 * time.Hour

// ProgressWithETA adds a smoothed rate and an ETA to ProgressState.
// It is safe for concurrent use.
type ProgressWithETA struct {
	*ProgressState
	mu           sync.Mutex
	numTasks     int
	startTime    time.Time
	lastTime     time.Time
	lastProgress float64
	progressRate float64 // fraction per second
}

// NewProgressWithETA tracks numTasks tasks starting now.
func NewProgressWithETA(numTasks int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numTasks),
		numTasks:      numTasks,
		startTime:     now,
		lastTime:      now,
	}
}

// UpdateWithETA records progress for task idx and returns the average
// progress with the current ETA.
func (p *ProgressWithETA) UpdateWithETA(idx int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Update(idx, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if dt := now.Sub(p.lastTime).Seconds(); dt > 0 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / dt
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = 0.7*p.progressRate + 0.3*rate
		}
		p.lastTime = now
		p.lastProgress = avg
	}
	return avg, p.etaLocked(avg)
}

// GetETA returns the remaining time at the current rate, 0 while unknown.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.CalculateAverage())
}

func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.progressRate <= 0 || avg <= 0 || avg >= 1 {
		return 0
	}
	eta := time.Duration((1 - avg) / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// ProgressBar renders a bar of length runes, █ for done and ░ for pending.
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), min(max(progress, 0), 1)*100, FormatETA(eta))
}
