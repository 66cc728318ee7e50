package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/blobstore"
	"github.com/keshav84652/workflow-management/internal/cache"
	"github.com/keshav84652/workflow-management/internal/config"
	"github.com/keshav84652/workflow-management/internal/db"
	"github.com/keshav84652/workflow-management/internal/handler"
	"github.com/keshav84652/workflow-management/internal/logger"
	"github.com/keshav84652/workflow-management/internal/repository"
	"github.com/keshav84652/workflow-management/internal/router"
	"github.com/keshav84652/workflow-management/internal/service"
)

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
}

func runServe(opts *RootOptions) error {
	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret (or JWT_SECRET) is required")
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

	rdb := cache.New(cfg.Redis)
	defer rdb.Close()

	blobs, err := blobstore.NewDiskStore(cfg.Blobs.Dir)
	if err != nil {
		return fmt.Errorf("init blob store: %w", err)
	}

	users := repository.NewUserRepo(pool, log)
	clients := repository.NewClientRepo(pool, log)
	clientUsers := repository.NewClientUserRepo(pool, log)
	contacts := repository.NewContactRepo(pool, log)
	workTypes := repository.NewWorkTypeRepo(pool, log)
	templates := repository.NewTemplateRepo(pool, log)
	projects := repository.NewProjectRepo(pool, log)
	tasks := repository.NewTaskRepo(pool, log)
	checklists := repository.NewChecklistRepo(pool, log)
	documents := repository.NewDocumentRepo(pool, log)
	timeEntries := repository.NewTimeEntryRepo(pool, log)

	limiter := cache.NewLoginLimiter(rdb, cfg.Portal.LoginAttempts, time.Duration(cfg.Portal.WindowMinutes)*time.Minute)

	authSvc := service.NewAuthService(users, cfg.Auth.JWTSecret, log)
	clientSvc := service.NewClientService(clients, clientUsers, log)
	contactSvc := service.NewContactService(contacts)
	workTypeSvc := service.NewWorkTypeService(workTypes)
	templateSvc := service.NewTemplateService(templates, workTypes)
	projectSvc := service.NewProjectService(projects, tasks, workTypes, templates, clients, log)
	taskSvc := service.NewTaskService(tasks, projects, log)
	checklistSvc := service.NewChecklistService(checklists, documents, clients)
	documentSvc := service.NewDocumentService(documents, checklists, blobs, log)
	portalSvc := service.NewPortalService(clientUsers, clients, checklists, documentSvc, limiter, cfg.Auth.JWTSecret, log)
	dashboardSvc := service.NewDashboardService(clients, projects, tasks, checklists, documents, rdb, log)
	reportSvc := service.NewReportService(timeEntries, clients, projects)

	mux := router.New(cfg.Auth.JWTSecret, log, pool, router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Client:    handler.NewClientHandler(clientSvc, checklistSvc),
		Contact:   handler.NewContactHandler(contactSvc),
		Project:   handler.NewProjectHandler(projectSvc),
		Task:      handler.NewTaskHandler(taskSvc),
		Admin:     handler.NewAdminHandler(workTypeSvc, templateSvc),
		Checklist: handler.NewChecklistHandler(checklistSvc, documentSvc),
		Portal:    handler.NewPortalHandler(portalSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Report:    handler.NewReportHandler(reportSvc),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
