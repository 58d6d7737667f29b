//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/rnafold/internal/format"
	"github.com/agbru/rnafold/internal/orchestration"
	"github.com/agbru/rnafold/internal/progress"
)

const (
	// ProgressRefreshRate is both the spinner frame interval and the ticker
	// that refreshes the ETA between updates.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the bar width in characters.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// DisplayProgress shows a spinner with an aggregated progress bar and ETA
// until progressChan is closed. With no strategies it only drains the
// channel.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numFolders int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numFolders)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	label := "Folding"
	if agg.IsMultiFolder() {
		label = fmt.Sprintf("Folding (%d strategies)", numFolders)
	}
	suffix := func(avg float64) string {
		return fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(avg, agg.GetETA(), ProgressBarWidth))
	}
	s.UpdateSuffix(suffix(0))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case u, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(suffix(1))
				return
			}
			s.UpdateSuffix(suffix(agg.Update(u).AverageProgress))
		case <-ticker.C:
			s.UpdateSuffix(suffix(agg.CalculateAverage()))
		}
	}
}
