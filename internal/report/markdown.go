package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/sleeperstats/leaguecrawl/internal/model"
)

// MarkdownWriter outputs reports in Markdown format for documentation
// and sharing. It uses the nao1215/markdown library for fluent,
// type-safe markdown generation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.OddsReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writePlayers(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and dataset overview table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.OddsReport) {
	md.H1("Playoff Odds Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Leagues", strconv.Itoa(report.Stats.Leagues)},
			{"Classified Rosters", strconv.Itoa(report.Stats.ClassifiedRosters)},
			{"Baseline Playoff Rate", fmt.Sprintf("%.2f%%", report.BaselineRate)},
			{"Players Ranked", strconv.Itoa(len(report.Players))},
		},
	})
	md.PlainText("")
}

// writeSummary writes per-position counts with a distribution chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.OddsReport) {
	md.H2("Position Breakdown")
	md.PlainText("")

	if len(report.Players) == 0 {
		md.PlainText("No players met the ownership threshold.")
		md.PlainText("")
		return
	}

	counts := positionCounts(report.Players)
	rows := make([][]string, 0, len(counts))
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Ranked Players by Position"),
		piechart.WithShowData(true),
	)
	for _, pc := range counts {
		rows = append(rows, []string{pc.position, strconv.Itoa(pc.count)})
		chart.LabelAndIntValue(pc.position, uint64(pc.count))
	}

	md.Table(markdown.TableSet{
		Header: []string{"Position", "Players"},
		Rows:   rows,
	})
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writePlayers writes the ranked odds table.
func (w *MarkdownWriter) writePlayers(md *markdown.Markdown, report *model.OddsReport) {
	md.H2("Player Playoff Rates")
	md.PlainText("")

	if len(report.Players) == 0 {
		md.PlainText("No player data collected yet.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Players))
	for i, p := range report.Players {
		name := p.FullName
		if name == "" {
			name = p.PlayerID
		}
		team := p.Team
		if team == "" {
			team = "FA"
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			name,
			p.Position,
			team,
			fmt.Sprintf("%.2f%%", p.PlayoffPct),
			fmt.Sprintf("%d / %d", p.PlayoffRosters, p.TotalRosters),
			fmt.Sprintf("%.1f%%", p.OwnershipPct),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Player", "Pos", "Team", "Playoff Rate", "Made / Rostered", "Ownership"},
		Rows:   rows,
	})
	md.PlainText("")
	md.HorizontalRule()
	md.PlainTextf("*Rates are relative to a baseline of %.2f%% across all classified rosters.*", report.BaselineRate)
}

// positionCount pairs a position with how many ranked players hold it.
type positionCount struct {
	position string
	count    int
}

// positionCounts tallies ranked players per position, preserving the
// order positions first appear in the ranking.
func positionCounts(players []model.PlayerOdds) []positionCount {
	index := make(map[string]int)
	counts := make([]positionCount, 0, 8)
	for _, p := range players {
		pos := p.Position
		if pos == "" {
			pos = "UNK"
		}
		i, ok := index[pos]
		if !ok {
			index[pos] = len(counts)
			counts = append(counts, positionCount{position: pos})
			i = len(counts) - 1
		}
		counts[i].count++
	}
	return counts
}
