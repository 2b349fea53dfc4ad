package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/medagent/internal/config"
	"github.com/sandevgo/medagent/internal/core"
	"github.com/sandevgo/medagent/internal/providers/llm"
	"github.com/sandevgo/medagent/internal/service/orchestrator"
	"github.com/sandevgo/medagent/internal/service/retention"
	"github.com/sandevgo/medagent/internal/storage/sessionlog"
	"github.com/sandevgo/medagent/internal/storage/sqlite"
	"github.com/sandevgo/medagent/internal/transport/telegram"
	"github.com/sandevgo/medagent/internal/transport/web"
	"github.com/sandevgo/medagent/pkg/log"
	"github.com/sandevgo/medagent/pkg/srv"
)

// initEnv loads a local .env when present. Variables already set in the
// environment win.
func initEnv(ctx context.Context) {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to load .env")
	}
}

// pipelineDeps is the wiring shared by the long-running server and the
// one-shot analyze command.
type pipelineDeps struct {
	cfg      *config.AppConfig
	pipeline *orchestrator.Orchestrator
	followup *orchestrator.Followup
	index    core.SessionIndex
	logs     *sessionlog.Writer
	cleanup  srv.Service
}

func buildPipeline(ctx context.Context) *pipelineDeps {
	logger := log.FromCtx(ctx)

	cfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)

	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	index := sqlite.NewSessionsRepo(db)

	client, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create completion client")
	}

	logs, err := sessionlog.NewWriter(cfg.LogDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session log writer")
	}

	return &pipelineDeps{
		cfg:      cfg,
		pipeline: orchestrator.New(client, logs, index),
		followup: orchestrator.NewFollowup(client),
		index:    index,
		logs:     logs,
		cleanup:  srv.NewCleanup(db.Close),
	}
}

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)

	initEnv(ctx)
	deps := buildPipeline(ctx)

	services := []srv.Service{deps.cleanup}

	services = append(services,
		retention.NewSweeper(deps.index, deps.logs, deps.cfg.RetentionKeep, deps.cfg.RetentionEvery))

	webSrv, err := web.NewServer(ctx, deps.cfg.HTTPAddr, deps.pipeline, deps.followup, deps.index)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create web server")
	}
	services = append(services, webSrv)

	if deps.cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, deps.pipeline)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create telegram bot")
		}
		services = append(services, bot)
	}

	return services
}
