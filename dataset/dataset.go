// Package dataset holds labeled training examples and their CSV reader.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Sample is one training example: an input vector and its target vector.
type Sample struct {
	Inputs  []float64
	Targets []float64
}

// Samples is an ordered training set.
type Samples []Sample

// Read parses comma-separated lines of inputNum inputs followed by
// outputNum targets.
func Read(reader io.Reader, inputNum, outputNum int) (Samples, error) {
	scanner := bufio.NewScanner(reader)
	var samples Samples
	var lineNum int
	for scanner.Scan() {
		lineNum++
		splits := strings.Split(scanner.Text(), ",")
		if len(splits) != inputNum+outputNum {
			return samples, errInvalidLine{
				lineNum:  lineNum,
				splits:   len(splits),
				expected: inputNum + outputNum,
			}
		}
		inputs := make([]float64, inputNum)
		targets := make([]float64, outputNum)

		for i, split := range splits {
			num, err := strconv.ParseFloat(strings.TrimSpace(split), 64)
			if err != nil {
				if i < inputNum {
					return samples, fmt.Errorf("line %d: parsing input: %w", lineNum, err)
				}
				return samples, fmt.Errorf("line %d: parsing target: %w", lineNum, err)
			}
			if i < inputNum {
				inputs[i] = num
			} else {
				targets[i-inputNum] = num
			}
		}
		samples = append(samples, Sample{
			Inputs:  inputs,
			Targets: targets,
		})
	}
	if err := scanner.Err(); err != nil {
		return samples, fmt.Errorf("reading dataset: %w", err)
	}
	return samples, nil
}

type errInvalidLine struct {
	lineNum  int
	splits   int
	expected int
}

func (e errInvalidLine) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d",
		e.lineNum, e.expected, e.splits)
}

// Mean returns the per-feature mean of the inputs.
func Mean(samples Samples) []float64 {
	if len(samples) == 0 {
		return nil
	}

	mean := make([]float64, len(samples[0].Inputs))
	for _, sample := range samples {
		for i, x := range sample.Inputs {
			mean[i] += x
		}
	}
	for i := range mean {
		mean[i] /= float64(len(samples))
	}
	return mean
}

// StdDev returns the per-feature standard deviation of the inputs.
func StdDev(samples Samples) []float64 {
	if len(samples) == 0 {
		return nil
	}

	mean := Mean(samples)
	stdDev := make([]float64, len(samples[0].Inputs))
	for _, sample := range samples {
		for i, x := range sample.Inputs {
			diff := x - mean[i]
			stdDev[i] += diff * diff
		}
	}
	for i := range stdDev {
		stdDev[i] = math.Sqrt(stdDev[i] / float64(len(samples)))
	}
	return stdDev
}

// Normalize returns a copy of the set with inputs shifted by mean and
// scaled by std. Targets are left alone.
func Normalize(samples Samples, mean, std []float64) Samples {
	normalized := make(Samples, len(samples))
	for i, sample := range samples {
		inputs := make([]float64, len(sample.Inputs))
		for j, x := range sample.Inputs {
			inputs[j] = (x - mean[j]) / std[j]
		}
		normalized[i] = Sample{
			Inputs:  inputs,
			Targets: sample.Targets,
		}
	}
	return normalized
}
