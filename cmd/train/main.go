// perceptron-train: trains a multi-layer perceptron on a CSV dataset and
// persists the fitted model.
//
// Usage:
//
//	perceptron-train --arch="2 3 1" --data=xor.csv --lr=0.5 --threshold=0.001 --out=models
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Stepami/OOMLCS/dataset"
	"github.com/Stepami/OOMLCS/nn"
	"github.com/Stepami/OOMLCS/utils"
)

var (
	archStr      = flag.String("arch", "2 3 1", "Layer sizes, input first: \"2 3 1\"")
	activation   = flag.String("activation", "sigmoid", "Activation function: sigmoid, tanh, relu")
	learningRate = flag.Float64("lr", 0.5, "Learning rate")
	threshold    = flag.Float64("threshold", nn.DefaultThreshold, "Convergence threshold on epoch cost")
	maxEpochs    = flag.Int("max-epochs", 0, "Epoch bound, 0 means run until convergence")
	dataPath     = flag.String("data", "", "CSV dataset: inputs followed by targets per line")
	modelDir     = flag.String("out", ".", "Directory the model file is written to")
	normalize    = flag.Bool("normalize", false, "Normalize inputs to zero mean, unit variance")
	verbose      = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "perceptron-train: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	arch, err := utils.ParseArchitecture(*archStr)
	if err != nil {
		return fmt.Errorf("parsing architecture: %w", err)
	}
	config := &utils.Config{
		Architecture: arch,
		Activation:   *activation,
		LearningRate: *learningRate,
		Threshold:    *threshold,
		MaxEpochs:    *maxEpochs,
		DataPath:     *dataPath,
		ModelDir:     *modelDir,
	}
	if err := utils.ValidateConfig(config); err != nil {
		return err
	}
	if config.DataPath == "" {
		return fmt.Errorf("missing --data")
	}

	configs := make([]nn.LayerConfig, 0, len(arch)-1)
	for _, pair := range utils.LayerConfigSizes(arch) {
		configs = append(configs, nn.LayerConfig{
			Inputs:     pair[0],
			Outputs:    pair[1],
			Activation: config.Activation,
		})
	}
	net, err := nn.NewNetwork(config.LearningRate, configs...)
	if err != nil {
		return err
	}

	file, err := os.Open(config.DataPath)
	if err != nil {
		return fmt.Errorf("opening dataset: %w", err)
	}
	samples, err := dataset.Read(file, net.InputSize(), net.OutputSize())
	file.Close()
	if err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}
	if *normalize {
		samples = dataset.Normalize(samples, dataset.Mean(samples), dataset.StdDev(samples))
	}

	if utils.Verbose {
		fmt.Fprintf(utils.Output, "Training %d samples, architecture %v, threshold %g\n",
			len(samples), arch, config.Threshold)
	}

	var opts []nn.TrainOption
	if config.MaxEpochs > 0 {
		opts = append(opts, nn.WithMaxEpochs(config.MaxEpochs))
	}
	result, err := net.TrainBackProp(samples, config.Threshold, opts...)
	if err != nil {
		return err
	}

	utils.PrintTrainingStats(&utils.TrainingStats{
		TotalTime: net.LastLearningTime(),
		Epochs:    result.Epochs,
		FinalCost: result.Cost,
		Converged: result.Converged,
	})

	filename, err := net.SaveModel(config.ModelDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(utils.Output, "Saved model %s\n", filename)

	return nil
}
