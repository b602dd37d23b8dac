/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/manu-joy/rosa-agent/cliexec"
	"github.com/manu-joy/rosa-agent/config"
	"github.com/manu-joy/rosa-agent/expert"
	"github.com/manu-joy/rosa-agent/gateway"
	"github.com/manu-joy/rosa-agent/intent"
	"github.com/manu-joy/rosa-agent/llm"
	"github.com/manu-joy/rosa-agent/metrics"
	"github.com/manu-joy/rosa-agent/server"
	"github.com/manu-joy/rosa-agent/settings"
	"github.com/manu-joy/rosa-agent/utils"
	"github.com/manu-joy/rosa-agent/version"
	"go.uber.org/zap"
)

func main() {
	logger, err := utils.InitializeLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao inicializar o logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.New(logger)
	cfg.Load()

	vi := version.GetCurrentVersion()
	logger.Info("ROSA agent iniciando",
		zap.String("version", vi.Version),
		zap.String("commit", vi.CommitHash))

	// Métricas Prometheus no registry do agente
	cmdMetrics := metrics.NewCommandMetrics(metrics.Registry)
	llmMetrics := metrics.NewLLMMetrics(metrics.Registry)
	metrics.NewServerMetrics(metrics.Registry, vi.Version, time.Now())

	// Gateway de comandos: validador, executor e matcher de intenção
	validator := cliexec.NewValidator(cfg.GetStringSlice("ALLOWED_COMMANDS", nil), logger)
	executor := cliexec.NewExecutor(validator, cfg.GetDuration("COMMAND_TIMEOUT", config.DefaultCommandTimeout), logger)
	executor.SetMetrics(cmdMetrics)

	rules := intent.DefaultRules()
	if rulesFile := cfg.GetString("INTENT_RULES_FILE"); rulesFile != "" {
		loaded, err := intent.LoadRulesFile(rulesFile)
		if err != nil {
			logger.Fatal("Erro ao carregar regras de intenção", zap.String("file", rulesFile), zap.Error(err))
		}
		rules = loaded
		logger.Info("Regras de intenção carregadas", zap.String("file", rulesFile), zap.Int("rules", len(rules)))
	}
	matcher := intent.NewMatcher(rules, validator, logger)
	gw := gateway.NewGateway(matcher, executor, logger)

	// Provedor LLM: settings persistidos com semeadura por ambiente
	store := settings.NewStore(cfg.GetString("SETTINGS_FILE"), logger)
	llmMgr := llm.NewManager(logger)
	llmMgr.SetMetrics(llmMetrics)

	if doc := store.Load(); doc.IsConfigured() {
		if err := llmMgr.Configure(doc); err != nil {
			logger.Warn("Provedor inicial inválido, aguardando configuração via settings", zap.Error(err))
		}
	} else {
		logger.Info("Nenhuma credencial no ambiente, provedor será configurado via settings")
	}

	// Hot reload: alterações no arquivo de settings reconfiguram o provedor
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := store.Watch(ctx, func(doc settings.Document) {
			if !doc.IsConfigured() {
				return
			}
			if err := llmMgr.Configure(doc); err != nil {
				logger.Warn("Settings recarregados são inválidos", zap.Error(err))
			}
		}); err != nil && ctx.Err() == nil {
			logger.Warn("Watcher de settings encerrado", zap.Error(err))
		}
	}()

	handler := server.NewHandler(gw, expert.NewExpert(), llmMgr, store, executor, logger)

	srv := server.New(server.Config{
		Port:      cfg.GetInt("PORT", config.DefaultHTTPPort),
		StaticDir: utils.GetEnvOrDefault("STATIC_DIR", "frontend"),
		RateLimit: cfg.GetInt("RATE_LIMIT", config.DefaultRateLimit),
		RateBurst: cfg.GetInt("RATE_BURST", config.DefaultRateBurst),
	}, handler, logger)

	if err := srv.Start(); err != nil {
		logger.Fatal("Servidor encerrou com erro", zap.Error(err))
	}
}
