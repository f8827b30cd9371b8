package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Config holds training configuration
type Config struct {
	Architecture []int
	Activation   string
	LearningRate float64
	Threshold    float64
	MaxEpochs    int
	DataPath     string
	ModelDir     string
}

// ParseArchitecture parses an architecture string like "2 3 1" into layer sizes
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.Fields(archStr)
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		arch[i] = n
	}
	return arch, nil
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	if len(config.Architecture) < 2 {
		return fmt.Errorf("architecture must have at least 2 sizes (input and output)")
	}

	for _, size := range config.Architecture {
		if size <= 0 {
			return fmt.Errorf("layer sizes must be positive")
		}
	}

	if config.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive")
	}

	if config.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive")
	}

	if config.MaxEpochs < 0 {
		return fmt.Errorf("max epochs must not be negative")
	}

	return nil
}

// LayerConfigSizes expands an architecture into (inputs, outputs) pairs,
// one per computational layer. The first size is the raw input width and
// is not itself a layer.
func LayerConfigSizes(arch []int) [][2]int {
	pairs := make([][2]int, len(arch)-1)
	for i := 1; i < len(arch); i++ {
		pairs[i-1] = [2]int{arch[i-1], arch[i]}
	}
	return pairs
}
