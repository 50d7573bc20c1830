package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/lead-tracker-api/infrastructure/database"
	"github.com/vfg2006/lead-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/lead-tracker-api/infrastructure/database/sqlite"
	"github.com/vfg2006/lead-tracker-api/infrastructure/migration"
	"github.com/vfg2006/lead-tracker-api/infrastructure/repository"
	"github.com/vfg2006/lead-tracker-api/infrastructure/repository/memory"
	"github.com/vfg2006/lead-tracker-api/internal/config"
	"github.com/vfg2006/lead-tracker-api/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:           "lead-tracker-api",
	Short:         "API de rastreamento da jornada de leads",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// loadConfig carrega a configuração e ajusta o logger global
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	return cfg, nil
}

// openConnection abre a conexão SQL do driver configurado; retorna nil para o driver em memória
func openConnection(ctx context.Context, cfg *config.Config) (database.Conn, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
		}
		logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
		return conn, nil

	case config.DriverSQLite:
		conn, err := sqlite.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		logrus.WithField("path", cfg.Database.DSN).Info("Banco SQLite aberto com sucesso")
		return conn, nil

	case config.DriverMemory:
		logrus.Warn("Usando armazenamento em memória; os dados serão perdidos ao encerrar")
		return nil, nil

	default:
		return nil, fmt.Errorf("driver de banco de dados não suportado: %s", cfg.Database.Driver)
	}
}

// openRepositories monta os repositórios e aplica as migrações quando configurado
func openRepositories(ctx context.Context, cfg *config.Config) (*repository.Repositories, func(), error) {
	conn, err := openConnection(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if conn == nil {
		return memory.NewRepositories(), func() {}, nil
	}

	closeFn := func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com o banco")
		}
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, conn); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	return repository.NewSQLRepositories(conn), closeFn, nil
}

func runMigrations(ctx context.Context, conn database.Conn) error {
	applied, err := migration.Run(ctx, conn)
	if err != nil {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"dialect": conn.Dialect(),
		"applied": applied,
	}).Info("Migrações verificadas")

	return nil
}
