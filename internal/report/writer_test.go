package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sleeperstats/leaguecrawl/internal/model"
)

// createTestReport creates a report with sample data for testing.
func createTestReport() *model.OddsReport {
	return &model.OddsReport{
		Stats: model.Stats{
			Leagues:           1250,
			ClassifiedRosters: 14200,
		},
		BaselineRate: 50.21,
		Players: []model.PlayerOdds{
			{
				PlayerID: "4046", FullName: "Patrick Mahomes", Position: "QB", Team: "KC",
				TotalRosters: 900, PlayoffRosters: 585, PlayoffPct: 65.0, OwnershipPct: 6.3,
			},
			{
				PlayerID: "9509", FullName: "Bijan Robinson", Position: "RB", Team: "ATL",
				TotalRosters: 850, PlayoffRosters: 510, PlayoffPct: 60.0, OwnershipPct: 6.0,
			},
			{
				PlayerID: "SF", FullName: "San Francisco 49ers", Position: "DEF", Team: "SF",
				TotalRosters: 400, PlayoffRosters: 180, PlayoffPct: 45.0, OwnershipPct: 2.8,
			},
		},
	}
}

// TestTextWriter tests the human-readable report writer.
func TestTextWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewTextWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "PLAYOFF ODDS REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "1,250") {
			t.Error("expected league count with digit grouping")
		}
		if !strings.Contains(output, "50.21%") {
			t.Error("expected baseline rate")
		}
	})

	t.Run("ranks players in order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewTextWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		mahomes := strings.Index(output, "Patrick Mahomes")
		robinson := strings.Index(output, "Bijan Robinson")
		if mahomes == -1 || robinson == -1 {
			t.Fatal("expected both players in output")
		}
		if mahomes > robinson {
			t.Error("expected players in ranked order")
		}
	})

	t.Run("limit truncates the table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewTextWriter(&buf, WithLimit(1))

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Patrick Mahomes") {
			t.Error("expected top player in output")
		}
		if strings.Contains(output, "Bijan Robinson") {
			t.Error("expected second player to be truncated")
		}
		if !strings.Contains(output, "2 more players") {
			t.Error("expected truncation notice")
		}
	})

	t.Run("empty report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewTextWriter(&buf)

		if _, err := w.Write(&model.OddsReport{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No player data collected yet") {
			t.Error("expected empty-data notice")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output round-trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		n, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("Write() = %d bytes, buffer holds %d", n, buf.Len())
		}

		var decoded model.OddsReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Stats.Leagues != 1250 {
			t.Errorf("Leagues = %d, want 1250", decoded.Stats.Leagues)
		}
		if len(decoded.Players) != 3 {
			t.Errorf("Players = %d, want 3", len(decoded.Players))
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"stats\"") {
			t.Error("expected indented output")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Playoff Odds Report") {
			t.Error("expected H1 title")
		}
		if !strings.Contains(output, "| Rank |") {
			t.Error("expected ranked player table")
		}
		if !strings.Contains(output, "mermaid") {
			t.Error("expected position distribution chart")
		}
		if !strings.Contains(output, "Patrick Mahomes") {
			t.Error("expected player rows")
		}
	})

	t.Run("empty report has placeholders", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(&model.OddsReport{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No player data collected yet") {
			t.Error("expected empty-data notice")
		}
	})
}

// TestMultiWriter tests fan-out across writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to every destination", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		mw := NewMultiWriter(NewTextWriter(&text), NewJSONWriter(&js))

		total, err := mw.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != text.Len()+js.Len() {
			t.Errorf("total = %d, want %d", total, text.Len()+js.Len())
		}
		if text.Len() == 0 || js.Len() == 0 {
			t.Error("expected output in both destinations")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := NewMultiWriter(
			NewJSONWriter(failingWriter{}),
			NewJSONWriter(&buf),
		)

		if _, err := mw.Write(createTestReport()); err == nil {
			t.Fatal("expected error from failing destination")
		}
		if buf.Len() != 0 {
			t.Error("expected no writes after the failing destination")
		}
	})
}

// failingWriter always fails, for error-path tests.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}
