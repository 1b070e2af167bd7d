package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/norin/shapekey/internal/classifier"
	"github.com/norin/shapekey/internal/core"
	"github.com/norin/shapekey/internal/di"
	"github.com/norin/shapekey/internal/factory"
	"github.com/norin/shapekey/internal/matcher"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
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

// run is the main application function that gets all dependencies injected.
// It matches each line read from stdin against the configured rules and
// prints the action of the first matching rule.
func run(
	logger *zap.Logger,
	storeFactory *factory.StoreFactory,
	store core.KeyValueStore,
	svc *classifier.Service,
	m *matcher.Matcher,
	rules []*core.Rule,
) error {
	defer logger.Sync()

	logger.Info("Starting matcher", zap.Int("rules", len(rules)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Evict stale cached models in the background
	maxAge, err := storeFactory.GetCacheMaxAge()
	if err != nil {
		return fmt.Errorf("invalid cache max age: %w", err)
	}
	evictFreq, err := storeFactory.GetEvictFrequency()
	if err != nil {
		return fmt.Errorf("invalid cache evict frequency: %w", err)
	}
	go evictLoop(ctx, logger, svc, maxAge, evictFreq)

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Shutting down...")
		cancel()
		os.Stdin.Close()
	}()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := scanner.Text()
		rule, ok := m.Match(ctx, text, rules)
		if !ok {
			fmt.Println("-")
			continue
		}
		if rule.Action != "" {
			fmt.Println(rule.Action)
		} else {
			fmt.Println(rule.Key)
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		logger.Error("Failed to read input", zap.Error(err))
	}

	// Close the store if needed
	if closer, ok := store.(interface{ Close() }); ok {
		closer.Close()
	}

	logger.Info("Shutdown complete")
	return nil
}

// evictLoop periodically drops cached models that have not been used
// within maxAge.
func evictLoop(ctx context.Context, logger *zap.Logger, svc *classifier.Service, maxAge, freq time.Duration) {
	ticker := time.NewTicker(freq)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := svc.EvictExpired(maxAge); n > 0 {
				logger.Debug("Evicted stale cached models", zap.Int("count", n))
			}
		}
	}
}
