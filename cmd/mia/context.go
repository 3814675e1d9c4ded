package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"mia/internal/config"
	"mia/internal/logging"
	"mia/internal/organizer"
	"mia/internal/resolve"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	fs    afero.Fs
	runID string
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
		fs:            afero.NewOsFs(),
		runID:         uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
			cfg.Logging.Format = strings.ToLower(strings.TrimSpace(*c.logFormatFlag))
		}
		if err := validateConfig(cfg); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// validateConfig runs the config package checks plus the ones owned by the
// packages that consume the values.
func validateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := organizer.ParseConflictPolicy(cfg.Organize.OnConflict); err != nil {
		return fmt.Errorf("organize.on_conflict: %w", err)
	}
	return nil
}

// logger builds the diagnostic logger for cmd. Records go to the command's
// stderr so stdout stays reserved for results.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, context.Context, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, c.runID)
	ctx = logging.WithCommand(ctx, cmd.Name())
	return logging.WithContext(ctx, logger), ctx, nil
}

// pathMatcher matches slash-separated paths relative to a walk root.
type pathMatcher interface {
	MatchesPath(path string) bool
}

// excludeMatcher compiles the configured walk excludes, or returns nil when
// none are set.
func (c *commandContext) excludeMatcher() pathMatcher {
	cfg, err := c.ensureConfig()
	if err != nil || len(cfg.Walk.Exclude) == 0 {
		return nil
	}
	return gitignore.CompileIgnoreLines(cfg.Walk.Exclude...)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// pathArg returns args[index] or "." when absent.
func pathArg(args []string, index int) string {
	if len(args) > index {
		return args[index]
	}
	return "."
}

// resolveEntry resolves raw without following a symlink in its final
// component, so rename acts on the link itself.
func resolveEntry(raw string) (string, error) {
	expanded, err := resolve.Expand(raw)
	if err != nil {
		return "", err
	}
	parent, err := resolve.Target(filepath.Dir(expanded))
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, filepath.Base(expanded)), nil
}
