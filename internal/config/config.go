package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"erosion-engine/internal/logger"
	"erosion-engine/internal/morph"

	"github.com/rs/zerolog"
)

var ErrUsage = errors.New("usage error")

const (
	envBackend  = "EROSION_BACKEND"
	envWorkers  = "EROSION_WORKERS"
	envLogLevel = "LOG_LEVEL"
)

type Config struct {
	Input      string
	Output     string
	Operation  string
	Radius     int
	Iterations int
	Workers    int
	Backend    string
	LogLevel   zerolog.Level
	Timeout    time.Duration
}

// Parameters returns the algorithm parameter map for Operation.
func (c *Config) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"radius":     c.Radius,
		"iterations": c.Iterations,
		"workers":    c.Workers,
	}
}

// Load parses args (without the program name). Flags fall back to the
// environment read through getenv, then to built-in defaults.
func Load(args []string, getenv func(string) string, output io.Writer) (*Config, error) {
	workersDefault := 0
	if v := getenv(envWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envWorkers, err)
		}
		workersDefault = n
	}

	backendDefault := "opencv"
	if v := getenv(envBackend); v != "" {
		backendDefault = v
	}

	cfg := &Config{}
	var logLevel string

	fs := flag.NewFlagSet("erosion-engine", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Operation, "op", "erode", "operation: erode, dilate, median, open, close")
	fs.IntVar(&cfg.Radius, "radius", morph.DefaultRadius, "structuring element radius (window side 2r+1)")
	fs.IntVar(&cfg.Iterations, "iterations", 1, "number of times to apply the operation")
	fs.IntVar(&cfg.Workers, "workers", workersDefault, "concurrent row bands (0 = GOMAXPROCS)")
	fs.StringVar(&cfg.Backend, "backend", backendDefault, "image file backend: opencv or native")
	fs.StringVar(&logLevel, "log-level", getenv(envLogLevel), "log level: debug, info, warn, error, disabled")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "abort processing after this long (0 = no limit)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: erosion-engine [flags] <input> <output>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return nil, fmt.Errorf("%w: expected <input> <output>, got %d arguments", ErrUsage, fs.NArg())
	}
	cfg.Input = fs.Arg(0)
	cfg.Output = fs.Arg(1)

	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	cfg.LogLevel = level

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Input == "" || c.Output == "" {
		return fmt.Errorf("%w: input and output paths are required", ErrUsage)
	}

	if c.Input == c.Output {
		return fmt.Errorf("%w: output must differ from input", ErrUsage)
	}

	switch c.Backend {
	case "opencv", "native":
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrUsage, c.Backend)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrUsage)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrUsage)
	}

	return nil
}
