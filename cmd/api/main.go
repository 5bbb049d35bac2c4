package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-manager-api/infrastructure/gateway"
	"github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-manager-api/infrastructure/repository"
	"github.com/vfg2006/ads-manager-api/internal/api"
	"github.com/vfg2006/ads-manager-api/internal/api/handler"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/scheduler"
	"github.com/vfg2006/ads-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-manager-api/internal/usecases/batching"
	"github.com/vfg2006/ads-manager-api/internal/usecases/fetching"
	"github.com/vfg2006/ads-manager-api/internal/usecases/managing"
	"github.com/vfg2006/ads-manager-api/internal/usecases/syncing"
	"github.com/vfg2006/ads-manager-api/internal/usecases/toggling"
	"github.com/vfg2006/ads-manager-api/internal/usecases/workspace"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	entityRepo := repository.NewEntityRepository(pgConn)

	renderClient := config.NewRenderClient(cfg)

	tokenManager := metaclient.NewTokenManager(cfg, renderClient)
	tokenManager.InitToken(ctx)
	go tokenManager.StartAutoRefresh(ctx)

	metaClient := metaclient.NewClient(cfg, tokenManager)
	metaIntegrator := meta.New(cfg, metaClient)

	platform := gateway.New(metaIntegrator, entityRepo)

	registry := workspace.NewRegistry(cfg.Fetch.DefaultPageSize)

	syncService := syncing.NewService(platform, cfg.Sync.TTL)
	fetchService := fetching.NewService(platform, cfg.Fetch.DefaultPageSize)
	toggleService := toggling.NewService(platform)
	batchService := batching.NewService(platform, batching.SettingsFromConfig(cfg.Bulk))

	managerService := managing.NewService(registry, syncService, fetchService, toggleService, batchService)
	// O recarregamento após um lote passa pelo gerenciador para respeitar a navegação atual
	batchService.SetRefresher(managerService)

	validator := authenticating.NewService(cfg)

	autoSyncService := scheduler.NewAutoSyncService(registry, syncService, cfg)
	workspaceCleanupService := scheduler.NewWorkspaceCleanupService(registry, cfg)

	if err := autoSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização automática")
	} else {
		logrus.Info("Agendador de sincronização automática iniciado com sucesso")
	}

	if err := workspaceCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de workspaces")
	} else {
		logrus.Info("Agendador de limpeza de workspaces iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		managerService,
		validator,
		handler.CronJobServices{
			AutoSyncService:         autoSyncService,
			WorkspaceCleanupService: workspaceCleanupService,
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
