package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/norin/shapekey/internal/classifier"
	"github.com/norin/shapekey/internal/core"
	"github.com/norin/shapekey/internal/di"
	"github.com/norin/shapekey/internal/matcher"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	svc *classifier.Service,
	m *matcher.Matcher,
) error {
	defer logger.Sync()

	ctx := context.Background()

	switch flags.Mode {
	case "train":
		return runTrain(ctx, flags, logger, svc)
	case "match":
		return runMatch(ctx, flags, logger, m)
	case "info":
		return runInfo(ctx, flags, svc)
	case "clear":
		return runClear(ctx, flags, logger, svc)
	default:
		return fmt.Errorf("unknown mode: %s", flags.Mode)
	}
}

// runTrain trains a model from newline-separated samples
func runTrain(ctx context.Context, flags *di.CLIFlags, logger *zap.Logger, svc *classifier.Service) error {
	if flags.ModelID == "" {
		return fmt.Errorf("train mode requires -model")
	}

	text, err := readInput(flags, logger)
	if err != nil {
		return err
	}

	startTime := time.Now()
	history, err := svc.TrainText(ctx, flags.ModelID, text)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	fmt.Printf("\n=== Training Results ===\n")
	fmt.Printf("Model: %s\n", flags.ModelID)
	fmt.Printf("Epochs: %d\n", history.Epochs())
	if n := history.Epochs(); n > 0 {
		fmt.Printf("Final loss: %.4f\n", history.Loss[n-1])
		fmt.Printf("Final accuracy: %.4f\n", history.Accuracy[n-1])
	}
	fmt.Printf("Training time: %v\n", time.Since(startTime))
	return nil
}

// runMatch matches input text against the requested rule cases
func runMatch(ctx context.Context, flags *di.CLIFlags, logger *zap.Logger, m *matcher.Matcher) error {
	if flags.Cases == "" {
		return fmt.Errorf("match mode requires -cases")
	}

	text, err := readInput(flags, logger)
	if err != nil {
		return err
	}

	var rules []*core.Rule
	for _, c := range strings.Split(flags.Cases, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		rules = append(rules, &core.Rule{
			ID:   uuid.NewString(),
			Key:  c,
			Case: c,
		})
	}

	startTime := time.Now()
	rule, ok := m.Match(ctx, text, rules)
	duration := time.Since(startTime)

	fmt.Printf("\n=== Match Results ===\n")
	fmt.Printf("Matched: %t\n", ok)
	if ok {
		fmt.Printf("Case: %s\n", rule.Case)
		if rule.CaseLabel != "" {
			fmt.Printf("Label: %s\n", rule.CaseLabel)
		}
	}
	fmt.Printf("Processing time: %v\n", duration)
	return nil
}

// runInfo prints stored model details
func runInfo(ctx context.Context, flags *di.CLIFlags, svc *classifier.Service) error {
	if flags.ModelID == "" {
		return fmt.Errorf("info mode requires -model")
	}

	info, err := svc.ModelInfo(ctx, flags.ModelID)
	if err != nil {
		return fmt.Errorf("failed to read model info: %w", err)
	}

	fmt.Printf("\n=== Model Info ===\n")
	fmt.Printf("Model: %s\n", flags.ModelID)
	fmt.Printf("Trained: %t\n", info.Trained)
	fmt.Printf("Vocabulary size: %d\n", info.Vocabulary)
	fmt.Printf("Storage size: %.1f KB\n", info.SizeKB)
	return nil
}

// runClear removes a stored model
func runClear(ctx context.Context, flags *di.CLIFlags, logger *zap.Logger, svc *classifier.Service) error {
	if flags.ModelID == "" {
		return fmt.Errorf("clear mode requires -model")
	}

	if err := svc.ClearSavedModel(ctx, flags.ModelID); err != nil {
		return fmt.Errorf("failed to clear model: %w", err)
	}
	logger.Info("Cleared saved model", zap.String("model", flags.ModelID))
	return nil
}

// readInput reads text from the input file or stdin
func readInput(flags *di.CLIFlags, logger *zap.Logger) (string, error) {
	var reader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return "", fmt.Errorf("failed to open input file %s: %w", flags.InputFile, err)
		}
		defer file.Close()
		reader = file
		logger.Info("Reading text from file", zap.String("file", flags.InputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading text from stdin")
	}

	data, err := io.ReadAll(bufio.NewReader(reader))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
