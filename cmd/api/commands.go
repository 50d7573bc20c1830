package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/lead-tracker-api/infrastructure/integrator/ghl"
	"github.com/vfg2006/lead-tracker-api/internal/api"
	"github.com/vfg2006/lead-tracker-api/internal/api/handler"
	"github.com/vfg2006/lead-tracker-api/internal/config"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/internal/scheduler"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/analytics"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/tracking"
)

// --- serve ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia o servidor HTTP e o agendador de retenção",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		repos, closeRepos, err := openRepositories(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeRepos()

		tracker := tracking.NewService(repos, cfg)
		analyzer := analytics.NewService(repos, cfg)
		authenticator := authenticating.NewService(cfg)

		eventRetentionService := scheduler.NewEventRetentionService(repos.Events, cfg)
		if err := eventRetentionService.Start(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao iniciar o agendador de retenção de eventos")
		}

		server, err := api.New(
			cfg,
			tracker,
			analyzer,
			authenticator,
			ghl.New(),
			handler.CronJobServices{
				scheduler.CronJobTypeEventRetention: eventRetentionService,
			},
		)
		if err != nil {
			return err
		}

		return server.Run(ctx)
	},
}

// --- migrate ---

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica as migrações pendentes no banco configurado",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		conn, err := openConnection(ctx, cfg)
		if err != nil {
			return err
		}
		if conn == nil {
			return fmt.Errorf("o driver %q não usa migrações", cfg.Database.Driver)
		}
		defer conn.Close()

		return runMigrations(ctx, conn)
	},
}

// --- token ---

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite um token de API",
	Long: `Emite um token de API assinado com SECRET_KEY.

Exemplos:
  lead-tracker-api token --name crm-webhook --role ingest
  lead-tracker-api token --name painel --role viewer --ttl 24h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		roleName, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		roleID := domain.RoleFromName(roleName)
		if roleID == 0 {
			return fmt.Errorf("papel inválido %q: use admin, viewer ou ingest", roleName)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("ttl") {
			cfg.Auth.TokenTTL = ttl
		}

		token, expiresAt, err := authenticating.NewService(cfg).IssueToken(name, roleID)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		if !expiresAt.IsZero() {
			fmt.Fprintf(cmd.ErrOrStderr(), "expira em %s\n", expiresAt.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("name", "", "nome do portador do token")
	tokenCmd.Flags().String("role", domain.RoleName(domain.RoleViewer), "papel: admin, viewer ou ingest")
	tokenCmd.Flags().Duration("ttl", config.DefaultTokenTTL, "validade do token (0 para não expirar)")
	_ = tokenCmd.MarkFlagRequired("name")
}
