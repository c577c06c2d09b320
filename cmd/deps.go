package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eduval/eduval/internal/config"
	"github.com/eduval/eduval/internal/generate"
	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/llm"
	"github.com/eduval/eduval/internal/logging"
	"github.com/eduval/eduval/internal/store"
	"github.com/eduval/eduval/internal/workbench"
)

// deps holds what every command builds from configuration.
type deps struct {
	cfg   config.Config
	log   *zap.Logger
	cat   *i18n.Catalog
	store *store.Store
}

// loadDeps resolves configuration, the logger and the catalog. A terminal
// UI only logs when a log file is configured.
func loadDeps(cmd *cobra.Command, terminal bool) (*deps, error) {
	cfg, err := config.Load(cmd, cfgFile)
	if err != nil {
		return nil, err
	}

	var log *zap.Logger
	if terminal {
		log, err = logging.ForTerminal(cfg.Log)
	} else {
		log, err = logging.New(cfg.Log)
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	cat, err := i18n.New(cfg.Lang)
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		log.Debug("config loaded", zap.String("file", cfg.File))
	}
	return &deps{cfg: cfg, log: log, cat: cat}, nil
}

func (d *deps) Close() {
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.log.Warn("closing audit log", zap.Error(err))
		}
	}
	_ = d.log.Sync()
}

// openStore opens the LLM audit log, or returns nil when it is disabled.
func (d *deps) openStore() (*store.Store, error) {
	if d.store != nil || d.cfg.DB == "" {
		return d.store, nil
	}
	if err := store.EnsureDir(d.cfg.DB); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	s, err := store.Open(d.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d.store = s
	return s, nil
}

// generator builds the configured provider chain and the generator on top.
func (d *deps) generator(ctx context.Context) (*generate.Generator, error) {
	if err := d.cfg.LLM.Validate(); err != nil {
		return nil, err
	}

	var repo store.EventRepo
	s, err := d.openStore()
	if err != nil {
		d.log.Warn("LLM audit log disabled", zap.Error(err))
	} else if s != nil {
		repo = s.EventRepo()
	}

	provider, err := llm.NewProvider(ctx, d.cfg.LLM, repo, d.log)
	if err != nil {
		return nil, err
	}
	d.log.Info("LLM provider ready",
		zap.String("provider", d.cfg.LLM.Provider),
		zap.String("model", provider.ModelID()))
	return generate.NewGenerator(provider, generate.NewBuilder(d.cat), d.cfg.Generate, d.log), nil
}

// workbench returns a workbench whose generation works when a provider is
// configured. Without one, manual authoring still works and generation
// fails with a transport error.
func (d *deps) workbench(ctx context.Context) *workbench.Workbench {
	gen, err := d.generator(ctx)
	if err != nil {
		d.log.Warn("AI generation unavailable", zap.Error(err))
		return workbench.New(nil, d.cat.Placeholders(), d.log)
	}
	return workbench.New(gen, d.cat.Placeholders(), d.log)
}
