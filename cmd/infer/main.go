// perceptron-infer: loads a persisted model and prints one prediction per
// input line.
//
// Usage:
//
//	perceptron-infer --model=perceptron-1724930000.json --data=inputs.csv
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/Stepami/OOMLCS/nn"
)

var (
	modelPath = flag.String("model", "", "Path to a persisted model file")
	dataPath  = flag.String("data", "", "CSV of input vectors, one per line (default stdin)")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "perceptron-infer: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *modelPath == "" {
		return fmt.Errorf("missing --model")
	}
	net, err := nn.LoadNetwork(*modelPath, nn.DefaultLearningRate)
	if err != nil {
		return err
	}

	in := os.Stdin
	if *dataPath != "" {
		file, err := os.Open(*dataPath)
		if err != nil {
			return fmt.Errorf("opening inputs: %w", err)
		}
		defer file.Close()
		in = file
	}

	scanner := bufio.NewScanner(in)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		splits := strings.Split(text, ",")
		inputs := make([]float64, len(splits))
		for i, split := range splits {
			inputs[i], err = strconv.ParseFloat(strings.TrimSpace(split), 64)
			if err != nil {
				return fmt.Errorf("line %d: parsing input: %w", lineNum, err)
			}
		}

		output, err := net.Predict(mat.NewVecDense(len(inputs), inputs))
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}

		parts := make([]string, output.Len())
		for i := range parts {
			parts[i] = strconv.FormatFloat(output.AtVec(i), 'g', -1, 64)
		}
		fmt.Println(strings.Join(parts, ","))
	}
	return scanner.Err()
}
