package main

import (
	"context"
	"errors"
	"io/fs"

	"github.com/coder/quartz"

	"github.com/palemoky/card-showdown/internal/config"
	"github.com/palemoky/card-showdown/internal/logger"
	"github.com/palemoky/card-showdown/internal/storage"
)

// Globals 所有子命令共用的参数
type Globals struct {
	Config string `short:"c" default:"configs/config.yaml" help:"配置文件路径"`
	Debug  bool   `help:"输出调试日志"`
}

// setup 加载配置并初始化日志，配置文件不存在时使用默认配置
func (g *Globals) setup() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = config.Default()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if err := logger.Init(cfg.Log.Dir, cfg.Log.Level); err != nil {
		return nil, err
	}
	logger.Debug("配置已加载", "path", g.Config, "backend", cfg.Storage.Backend)
	return cfg, nil
}

// openRecorder 按配置打开存储
func openRecorder(ctx context.Context, cfg *config.Config) (*storage.Recorder, error) {
	return storage.Open(ctx, cfg, quartz.NewReal())
}
