package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sleeperstats/leaguecrawl/internal/model"
)

// TextWriter outputs human-readable text reports for terminal display.
// Plain ASCII formatting keeps the output pipeable and portable across
// terminals.
type TextWriter struct {
	baseWriter

	// limit caps the number of ranked players shown; zero shows all.
	limit int

	// printer formats counts with digit grouping.
	printer *message.Printer
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithLimit caps the number of ranked players in the output.
func WithLimit(n int) TextWriterOption {
	return func(w *TextWriter) {
		w.limit = n
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *TextWriter) Write(report *model.OddsReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writePlayers(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the dataset summary block.
func (w *TextWriter) writeHeader(sb *strings.Builder, report *model.OddsReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       PLAYOFF ODDS REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(w.printer.Sprintf("Leagues:            %d\n", report.Stats.Leagues))
	sb.WriteString(w.printer.Sprintf("Classified Rosters: %d\n", report.Stats.ClassifiedRosters))
	sb.WriteString(fmt.Sprintf("Baseline Rate:      %.2f%%\n", report.BaselineRate))
	sb.WriteString("\n")
}

// writePlayers writes the ranked player table.
func (w *TextWriter) writePlayers(sb *strings.Builder, report *model.OddsReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PLAYER PLAYOFF RATES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Players) == 0 {
		sb.WriteString("  No player data collected yet.\n\n")
		return
	}

	players := report.Players
	if w.limit > 0 && len(players) > w.limit {
		players = players[:w.limit]
	}

	sb.WriteString(fmt.Sprintf("  %4s  %-28s %-4s %-4s %9s %12s\n",
		"Rank", "Player", "Pos", "Team", "Playoff%", "Rostered"))
	for i, p := range players {
		name := p.FullName
		if name == "" {
			name = p.PlayerID
		}
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		team := p.Team
		if team == "" {
			team = "FA"
		}
		sb.WriteString(fmt.Sprintf("  %4d  %-28s %-4s %-4s %8.2f%% %12s\n",
			i+1, name, p.Position, team, p.PlayoffPct,
			w.printer.Sprintf("%d", p.TotalRosters)))
	}
	sb.WriteString("\n")

	if w.limit > 0 && len(report.Players) > w.limit {
		sb.WriteString(w.printer.Sprintf("  ... and %d more players above the ownership threshold.\n\n",
			len(report.Players)-w.limit))
	}
}
