package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kodkafa/nataly/internal/domain"
	"github.com/kodkafa/nataly/internal/infra/config"
	"github.com/kodkafa/nataly/internal/infra/ephe"
	"github.com/kodkafa/nataly/internal/infra/natalyexec"
	"github.com/kodkafa/nataly/internal/infra/plugindir"
	"github.com/kodkafa/nataly/internal/infra/runstore"
	"github.com/kodkafa/nataly/internal/ports"
)

type pluginCtx struct {
	root string
	cfg  domain.Config

	engine ports.ChartEngine
	ephe   ports.EphemerisResolver
	store  ports.ArtifactStore
}

func loadPlugin(pluginDirFlag string) (*pluginCtx, error) {
	root, err := resolvePluginRoot(pluginDirFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	engBinary := cfg.Engine.Binary
	if env := strings.TrimSpace(os.Getenv("NATALY_ENGINE")); env != "" {
		engBinary = env
	}

	engine := natalyexec.New(
		natalyexec.WithBinary(engBinary),
		natalyexec.WithTimeout(time.Duration(cfg.Engine.TimeoutSeconds)*time.Second),
	)

	resolver := ephe.NewResolver(root, ephe.WithDirName(cfg.Paths.EpheDir))

	store := runstore.NewJSONStore(root, cfg, runstore.WithIndex(true))

	return &pluginCtx{
		root:   root,
		cfg:    cfg,
		engine: engine,
		ephe:   resolver,
		store:  store,
	}, nil
}

func resolvePluginRoot(pluginDirFlag string) (string, error) {
	p := strings.TrimSpace(pluginDirFlag)
	if p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("invalid plugin dir: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := plugindir.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("plugin root not found from %q (is the plugin installed?): %w", wd, err)
	}
	return root, nil
}
