package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Verbose controls whether training statistics are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where training statistics are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// TrainingStats holds the outcome of a training run
type TrainingStats struct {
	TotalTime time.Duration
	Epochs    int
	FinalCost float64
	Converged bool
}

// PrintTrainingStats prints training statistics.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintTrainingStats(stats *TrainingStats) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== TRAINING STATISTICS ===")
	fmt.Fprintf(Output, "Total training time: %v\n", stats.TotalTime)
	fmt.Fprintf(Output, "Epochs completed: %d\n", stats.Epochs)
	fmt.Fprintf(Output, "Final cost: %g\n", stats.FinalCost)
	if stats.Converged {
		fmt.Fprintln(Output, "Converged: yes")
	} else {
		fmt.Fprintln(Output, "Converged: no (epoch bound reached)")
	}
	if stats.Epochs > 0 {
		fmt.Fprintf(Output, "Average time per epoch: %v\n", stats.TotalTime/time.Duration(stats.Epochs))
	}
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
