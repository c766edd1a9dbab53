package container

import (
	"database/sql"

	"github.com/naruerongk-png/inventory/internal/assets"
	"github.com/naruerongk-png/inventory/internal/documents"
	"github.com/naruerongk-png/inventory/internal/glpi"
	"github.com/naruerongk-png/inventory/internal/loans"
	"github.com/naruerongk-png/inventory/internal/maintenance"
	"github.com/naruerongk-png/inventory/internal/reports"
	"github.com/naruerongk-png/inventory/internal/repository"
	"github.com/naruerongk-png/inventory/internal/users"
	"github.com/naruerongk-png/inventory/pkg/history"
	"github.com/naruerongk-png/inventory/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Repository         *repository.Repository
	Trail              *history.Trail
	LoginHandler       *security.LoginHandler
	AssetHandler       *assets.AssetHandler
	LoansHandler       *loans.LoansHandler
	MaintenanceHandler *maintenance.MaintenanceHandler
	DocumentHandler    *documents.DocumentHandler
	ReportHandler      *reports.ReportHandler
	SyncHandler        *glpi.SyncHandler
	UserHandler        *users.UsersHandler
}

func NewAppContainer(db *sql.DB, logger *zap.Logger) *Container {
	repo := repository.NewRepository(db)
	trail := history.NewTrail(repo)

	assetRepo := assets.NewRepository(repo)
	assetService := assets.NewAssetService(assetRepo, trail)
	assetHandler := assets.NewAssetHandler(assetService)

	loansRepo := loans.NewRepository(repo)
	loanService := loans.NewLoanService(loansRepo, trail)
	loansHandler := loans.NewHandler(loanService)

	maintenanceRepo := maintenance.NewRepository(repo)
	maintenanceService := maintenance.NewService(maintenanceRepo, trail)
	maintenanceHandler := maintenance.NewHandler(maintenanceService)

	documentService := documents.NewService(assetService)
	documentHandler := documents.NewHandler(documentService)

	reportService := reports.NewService(assetService)
	reportHandler := reports.NewHandler(reportService)

	syncHandler := glpi.NewSyncHandler(assetService, logger)

	userRepo := users.NewRepository(repo)
	userHandler := users.NewHandler(userRepo)
	loginHandler := security.NewLoginHandler(repo)

	return &Container{
		Repository:         repo,
		Trail:              trail,
		LoginHandler:       loginHandler,
		AssetHandler:       assetHandler,
		LoansHandler:       loansHandler,
		MaintenanceHandler: maintenanceHandler,
		DocumentHandler:    documentHandler,
		ReportHandler:      reportHandler,
		SyncHandler:        syncHandler,
		UserHandler:        userHandler,
	}
}
