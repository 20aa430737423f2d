// Package report renders weekly analysis output as text files.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/gridiron-prophet/internal/models"
	"github.com/yourusername/gridiron-prophet/internal/service"
)

const divider = "================================================================================"

// Writer renders weekly betting reports
type Writer struct {
	dir string
}

// NewWriter creates a report writer targeting the given directory
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "reports"
	}
	return &Writer{dir: dir}
}

// SaveWeekly writes the analysis to a timestamped file and returns its path
func (w *Writer) SaveWeekly(analysis *service.WeekAnalysis) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	timestamp := analysis.GeneratedAt.Format("20060102_1504")
	filename := filepath.Join(w.dir, fmt.Sprintf("week%d_%d_predictions_%s.txt", analysis.Week, analysis.Season, timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer file.Close()

	if err := w.Render(file, analysis); err != nil {
		return "", err
	}

	return filename, nil
}

// Render writes the report body
func (w *Writer) Render(out io.Writer, analysis *service.WeekAnalysis) error {
	var b strings.Builder

	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "GRIDIRON PROPHET - WEEK %d BETTING REPORT\n", analysis.Week)
	fmt.Fprintf(&b, "Season %d | Generated: %s\n", analysis.Season, analysis.GeneratedAt.Format("2006-01-02 15:04"))
	b.WriteString(divider + "\n\n")

	if analysis.StaleInjuryData {
		b.WriteString("WARNING: injury data is stale, last snapshot fetch failed\n\n")
	}

	if len(analysis.Opportunities) > 0 {
		fmt.Fprintf(&b, "TOP BETTING OPPORTUNITIES (%d picks)\n", len(analysis.Opportunities))
		b.WriteString(divider + "\n\n")

		for i, rec := range analysis.Opportunities {
			fmt.Fprintf(&b, "%d. %s @ %s\n", i+1, rec.AwayTeam, rec.HomeTeam)
			fmt.Fprintf(&b, "   BET: %s\n", rec.Side)
			fmt.Fprintf(&b, "   Edge: %+.1f pts | Confidence: %s\n", *rec.Edge, rec.Confidence)
			if prob, ok := winProbability(analysis, rec); ok {
				fmt.Fprintf(&b, "   Win Probability: %.1f%%\n", prob*100)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("No strong betting opportunities found this week.\n")
	}

	b.WriteString("\n" + divider + "\n")
	b.WriteString("After games complete, update results with:\n")
	b.WriteString("  gridiron-prophet accuracy --week " + fmt.Sprint(analysis.Week) + "\n")
	b.WriteString(divider + "\n")

	_, err := io.WriteString(out, b.String())
	return err
}

// RenderPredictions writes the full per-game prediction breakdown
func (w *Writer) RenderPredictions(out io.Writer, analysis *service.WeekAnalysis) error {
	var b strings.Builder

	for _, p := range analysis.Predictions {
		home, away := p.PredictedScores()
		fmt.Fprintf(&b, "%s @ %s\n", p.AwayTeam, p.HomeTeam)
		fmt.Fprintf(&b, "  Predicted: %s %.0f - %s %.0f (margin %+.1f, line %+.1f)\n",
			p.HomeTeam, home, p.AwayTeam, away, p.PredictedMargin, p.PredictedLine)
		fmt.Fprintf(&b, "  Confidence: %s (%d)\n", p.Confidence, p.ConfidenceScore)
		fmt.Fprintf(&b, "  Components: classifier %+.1f, record %+.1f, trend %+.1f, offense %+.1f, defense %+.1f, injuries %+.1f, home field %+.1f\n\n",
			p.Components.Classifier, p.Components.CurrentRecord, p.Components.HistoricalTrend,
			p.Components.OffensivePower, p.Components.DefensivePower, p.Components.InjuryImpact,
			p.Components.HomeField)
	}

	_, err := io.WriteString(out, b.String())
	return err
}

// winProbability looks up the classifier probability for a recommendation
func winProbability(analysis *service.WeekAnalysis, rec *models.Recommendation) (float64, bool) {
	for _, p := range analysis.Predictions {
		if p.GameID == rec.GameID {
			return p.WinProbability, true
		}
	}
	return 0, false
}
