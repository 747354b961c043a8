package app

import (
	"database/sql"

	"go-exitflow/internal/assetclearance"
	"go-exitflow/internal/auth"
	"go-exitflow/internal/employee"
	"go-exitflow/internal/exitform"
	"go-exitflow/internal/exitworkflow"
	"go-exitflow/internal/finalapproval"
	"go-exitflow/internal/hrreview"
	"go-exitflow/internal/managerreview"
	"go-exitflow/internal/messaging/kafka"
	"go-exitflow/internal/offboarding"
	"go-exitflow/internal/payrollcheck"
	"go-exitflow/internal/rbac"
	"go-exitflow/internal/rbac/infra"
	"go-exitflow/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	exitFormRepo := exitform.NewRepository(db)
	managerReviewRepo := managerreview.NewRepository(db)
	hrReviewRepo := hrreview.NewRepository(db)
	assetClearanceRepo := assetclearance.NewRepository(db)
	offboardingRepo := offboarding.NewRepository(db)
	payrollCheckRepo := payrollcheck.NewRepository(db)
	finalApprovalRepo := finalapproval.NewRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(employeeRepo)
	employeeService := employee.NewService(employeeRepo)
	exitFormService := exitform.NewService(db, exitFormRepo, employeeRepo, counterRepo, outboxRepo, rdb)
	managerReviewService := managerreview.NewService(managerReviewRepo, exitFormService)
	hrReviewService := hrreview.NewService(hrReviewRepo, exitFormService)
	assetClearanceService := assetclearance.NewService(assetClearanceRepo, exitFormService)
	offboardingService := offboarding.NewService(offboardingRepo, exitFormService)
	payrollCheckService := payrollcheck.NewService(payrollCheckRepo, exitFormService)
	finalApprovalService := finalapproval.NewService(finalApprovalRepo, exitFormService)
	exitWorkflowService := exitworkflow.NewService(
		exitFormService,
		employeeRepo,
		managerReviewService,
		hrReviewService,
		assetClearanceService,
		offboardingService,
		payrollCheckService,
		finalApprovalService,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	exitFormHandler := exitform.NewHandlerWithRedis(exitFormService, rdb)
	managerReviewHandler := managerreview.NewHandlerWithRedis(managerReviewService, rdb)
	hrReviewHandler := hrreview.NewHandlerWithRedis(hrReviewService, rdb)
	assetClearanceHandler := assetclearance.NewHandlerWithRedis(assetClearanceService, rdb)
	offboardingHandler := offboarding.NewHandlerWithRedis(offboardingService, rdb)
	payrollCheckHandler := payrollcheck.NewHandlerWithRedis(payrollCheckService, rdb)
	finalApprovalHandler := finalapproval.NewHandlerWithRedis(finalApprovalService, rdb)
	exitWorkflowHandler := exitworkflow.NewHandler(exitWorkflowService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		exitform.RegisterRoutes(api, exitFormHandler, rbacService, rdb)
		managerreview.RegisterRoutes(api, managerReviewHandler, rbacService, rdb)
		hrreview.RegisterRoutes(api, hrReviewHandler, rbacService, rdb)
		assetclearance.RegisterRoutes(api, assetClearanceHandler, rbacService, rdb)
		offboarding.RegisterRoutes(api, offboardingHandler, rbacService, rdb)
		payrollcheck.RegisterRoutes(api, payrollCheckHandler, rbacService, rdb)
		finalapproval.RegisterRoutes(api, finalApprovalHandler, rbacService, rdb)
		exitworkflow.RegisterRoutes(api, exitWorkflowHandler, rbacService)
	}

	return nil
}
