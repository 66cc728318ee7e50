package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/config"
	"github.com/keshav84652/workflow-management/internal/db"
	"github.com/keshav84652/workflow-management/internal/logger"
	"github.com/keshav84652/workflow-management/internal/repository"
	"github.com/keshav84652/workflow-management/internal/service"
)

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the admin account and the default work type catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts)
		},
	}
}

func runSeed(opts *RootOptions) error {
	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return errors.New("admin.email and admin.password (or ADMIN_EMAIL / ADMIN_PASSWORD) are required")
	}

	log, err := logger.New()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DB, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	users := repository.NewUserRepo(pool, log)
	workTypes := repository.NewWorkTypeRepo(pool, log)

	authSvc := service.NewAuthService(users, cfg.Auth.JWTSecret, log)
	if err := authSvc.SeedAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	workTypeSvc := service.NewWorkTypeService(workTypes)
	existing, err := workTypeSvc.List(ctx)
	if err != nil {
		return fmt.Errorf("list work types: %w", err)
	}
	if len(existing) > 0 {
		log.Info("work types already present, skipping catalog seed", zap.Int("count", len(existing)))
		return nil
	}

	for _, seed := range defaultCatalog() {
		wt, err := workTypeSvc.Create(ctx, service.WorkTypeInput{Name: seed.name, Description: seed.description})
		if err != nil {
			return fmt.Errorf("seed work type %q: %w", seed.name, err)
		}
		for i, st := range seed.statuses {
			_, err := workTypeSvc.CreateStatus(ctx, wt.ID, service.StatusInput{
				Name:       st.name,
				Color:      st.color,
				Position:   i,
				IsDefault:  i == 0,
				IsTerminal: st.terminal,
			})
			if err != nil {
				return fmt.Errorf("seed status %q: %w", st.name, err)
			}
		}
		log.Info("seeded work type", zap.String("name", seed.name), zap.Int("statuses", len(seed.statuses)))
	}
	return nil
}

type statusSeed struct {
	name     string
	color    string
	terminal bool
}

type workTypeSeed struct {
	name        string
	description string
	statuses    []statusSeed
}

func defaultCatalog() []workTypeSeed {
	return []workTypeSeed{
		{
			name:        "Tax Return",
			description: "Individual and business tax preparation",
			statuses: []statusSeed{
				{name: "Awaiting Documents", color: "#f59e0b"},
				{name: "In Preparation", color: "#3b82f6"},
				{name: "In Review", color: "#8b5cf6"},
				{name: "Filed", color: "#22c55e", terminal: true},
			},
		},
		{
			name:        "Bookkeeping",
			description: "Monthly bookkeeping and reconciliation",
			statuses: []statusSeed{
				{name: "Open", color: "#f59e0b"},
				{name: "Reconciling", color: "#3b82f6"},
				{name: "Closed", color: "#22c55e", terminal: true},
			},
		},
		{
			name:        "Payroll",
			description: "Payroll processing",
			statuses: []statusSeed{
				{name: "Pending", color: "#f59e0b"},
				{name: "Processing", color: "#3b82f6"},
				{name: "Submitted", color: "#22c55e", terminal: true},
			},
		},
	}
}
