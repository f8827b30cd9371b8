package utils

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"
)

func TestDurationUS(t *testing.T) {
	d := 1234*time.Microsecond + 567*time.Nanosecond
	got := DurationUS(d)
	if math.Abs(got-1234.567) > 0.001 {
		t.Fatalf("want 1234.567µs, got %.3f", got)
	}
}

func TestPrintTrainingStats(t *testing.T) {
	var buf bytes.Buffer
	oldOut, oldVerbose := Output, Verbose
	Output, Verbose = &buf, true
	defer func() { Output, Verbose = oldOut, oldVerbose }()

	PrintTrainingStats(&TrainingStats{
		TotalTime: 2 * time.Second,
		Epochs:    4,
		FinalCost: 0.0009,
		Converged: true,
	})

	out := buf.String()
	if !strings.Contains(out, "Epochs completed: 4") {
		t.Errorf("missing epoch count in %q", out)
	}
	if !strings.Contains(out, "Converged: yes") {
		t.Errorf("missing convergence flag in %q", out)
	}
}

func TestPrintTrainingStatsQuiet(t *testing.T) {
	var buf bytes.Buffer
	oldOut, oldVerbose := Output, Verbose
	Output, Verbose = &buf, false
	defer func() { Output, Verbose = oldOut, oldVerbose }()

	PrintTrainingStats(&TrainingStats{Epochs: 1})
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
