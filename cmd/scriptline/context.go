package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/vsariola/scriptline"
	"github.com/vsariola/scriptline/config"
	"github.com/vsariola/scriptline/editor"
	"github.com/vsariola/scriptline/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	once    sync.Once
	config  *config.Config
	logger  *slog.Logger
	catalog scriptline.Catalog
	err     error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensure loads the configuration, the logger writing to logOut and the
// alternatives catalog, once.
func (c *commandContext) ensure(logOut io.Writer) error {
	c.once.Do(func() {
		cfg, err := config.Load(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.err = err
			return
		}
		if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
			cfg.Log.Level = level
		}
		logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logOut})
		if err != nil {
			c.err = err
			return
		}
		catalog, err := loadCatalog(cfg.Catalog.Path)
		if err != nil {
			c.err = err
			return
		}
		c.config, c.logger, c.catalog = cfg, logger, catalog
	})
	return c.err
}

func loadCatalog(path string) (scriptline.Catalog, error) {
	if path == "" {
		return scriptline.DefaultCatalog(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return scriptline.LoadCatalog(f)
}

// newReducer returns a reducer configured from the loaded configuration.
func (c *commandContext) newReducer() *editor.Reducer {
	r := editor.NewReducer(c.catalog, c.logger)
	if seed := c.config.Regen.Seed; seed != 0 {
		r.Rand = rand.New(rand.NewPCG(seed, seed))
	}
	return r
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
