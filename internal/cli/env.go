package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/druarnfield/mindcheck/internal/config"
	"github.com/druarnfield/mindcheck/internal/form"
	"github.com/druarnfield/mindcheck/internal/logging"
	"github.com/druarnfield/mindcheck/internal/predict"
	"github.com/druarnfield/mindcheck/internal/session"
	"github.com/druarnfield/mindcheck/internal/wizard"
)

// loadConfig reads --config, or the default location. A missing default
// file means defaults; a missing explicit file is an error.
func loadConfig(out io.Writer) (*config.Config, error) {
	path := flagConfig
	explicit := path != ""
	if !explicit {
		path = config.ConfigFilePath()
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			if flagVerbose {
				fmt.Fprintf(out, "No config file found, using defaults. Create %s to customize.\n", path)
			}
			return config.Defaults(), nil
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// setupLogger never fails: when the log file cannot be opened the reason is
// printed to errOut and everything is dropped.
func setupLogger(cfg *config.Config, errOut io.Writer) (*slog.Logger, func()) {
	path := cfg.Log.File
	if path == "" {
		path = config.LogFilePath()
	}
	logger, closer, err := logging.Setup(logging.Options{
		Path:    path,
		Level:   cfg.Log.Level,
		Verbose: flagVerbose,
	})
	if err != nil {
		fmt.Fprintf(errOut, "Logging disabled: %v\n", err)
		return logging.Nop(), func() {}
	}
	return logger, func() { closer.Close() }
}

func loadForm(cfg *config.Config) (*form.Form, error) {
	if cfg.Questionnaire.File == "" {
		return form.Default(), nil
	}
	return form.LoadFile(cfg.Questionnaire.File)
}

func newClient(cfg *config.Config, logger *slog.Logger) *predict.Client {
	opts := []predict.Option{predict.WithPath(cfg.Endpoint.PredictPath)}
	if cfg.Endpoint.Timeout.Duration > 0 {
		opts = append(opts, predict.WithTimeout(cfg.Endpoint.Timeout.Duration))
	}
	return predict.NewClient(cfg.Endpoint.BaseURL, logger, opts...)
}

// openSession returns the session file, or a memory store with --no-persist.
func openSession(cfg *config.Config) session.Store {
	if flagNoPersist {
		return session.NewMemory()
	}
	path := cfg.Session.File
	if path == "" {
		path = config.SessionFilePath()
	}
	return session.Open(path)
}

func labelsFor(cfg *config.Config) wizard.Labels {
	l := wizard.DefaultLabels()
	if cfg.Labels.Submit != "" {
		l.Submit = cfg.Labels.Submit
	}
	if cfg.Labels.Busy != "" {
		l.Busy = cfg.Labels.Busy
	}
	return l
}
