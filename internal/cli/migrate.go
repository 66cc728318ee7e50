package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshav84652/workflow-management/internal/config"
	"github.com/keshav84652/workflow-management/internal/db"
	"github.com/keshav84652/workflow-management/internal/logger"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
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

			return db.Migrate(ctx, pool, log)
		},
	}
}
