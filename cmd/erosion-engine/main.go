package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"erosion-engine/internal/algorithms"
	"erosion-engine/internal/config"
	"erosion-engine/internal/logger"
	"erosion-engine/internal/opencv/memory"
	"erosion-engine/internal/pipeline"
)

const AppName = "erosion-engine"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stderr))
}

func run(args []string, getenv func(string) string, stderr io.Writer) int {
	cfg, err := config.Load(args, getenv, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", AppName, err)
		if errors.Is(err, config.ErrUsage) {
			return exitUsage
		}
		return exitError
	}

	log := logger.NewConsoleLogger(stderr, cfg.LogLevel)

	memMgr := memory.NewManager(log)
	defer memMgr.Cleanup()

	codec, err := pipeline.NewCodec(cfg.Backend, memMgr)
	if err != nil {
		log.Error("Main", err, nil)
		return exitError
	}

	coord := pipeline.NewCoordinator(codec, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := setupSignalHandling(cancel, log)
	defer stop()

	if cfg.Timeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, cfg.Timeout)
		defer timeoutCancel()
	}

	report, err := coord.Run(ctx, pipeline.Job{
		Input:      cfg.Input,
		Output:     cfg.Output,
		Algorithm:  cfg.Operation,
		Parameters: cfg.Parameters(),
	})
	if errors.Is(err, algorithms.ErrUnknownAlgorithm) {
		fmt.Fprintf(stderr, "%s: unknown operation %q, available: %s\n", AppName, cfg.Operation,
			strings.Join(coord.Algorithms().GetAvailableAlgorithms(), ", "))
		return exitUsage
	}
	if err != nil {
		log.Error("Main", err, map[string]interface{}{
			"input":  cfg.Input,
			"output": cfg.Output,
		})
		return exitError
	}

	log.Debug("Main", "finished", map[string]interface{}{
		"run_id": report.RunID,
		"mats":   memMgr.GetStats().Allocations,
	})
	return exitOK
}

func setupSignalHandling(cancel context.CancelFunc, log logger.Logger) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			log.Warning("Main", "signal received, shutting down", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
