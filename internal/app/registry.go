package app

import (
	"database/sql"
	"os"

	"go-sirh/internal/absence"
	"go-sirh/internal/account"
	"go-sirh/internal/auth"
	"go-sirh/internal/department"
	"go-sirh/internal/document"
	"go-sirh/internal/filestore"
	"go-sirh/internal/messaging/kafka"
	"go-sirh/internal/middleware"
	"go-sirh/internal/payroll"
	"go-sirh/internal/person"
	"go-sirh/internal/rbac"
	"go-sirh/internal/recruitment"
	"go-sirh/internal/scope"
	"go-sirh/internal/secondment"
	"go-sirh/internal/shared/counter"
	"go-sirh/internal/staff"
	"go-sirh/internal/structure"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	storageDir := os.Getenv("STORAGE_DIR")
	if storageDir == "" {
		storageDir = "storage"
	}
	files, err := filestore.NewDiskStore(storageDir)
	if err != nil {
		return err
	}

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	accountRepo := account.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	structureRepo := structure.NewRepository(gormDB)
	personRepo := person.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	absenceRepo := absence.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	secondmentRepo := secondment.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	recruitmentRepo := recruitment.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Access control core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	resolver := scope.NewResolver(gormDB)

	// --- Services ---
	authService := auth.NewService(authRepo)
	accountService := account.NewService(accountRepo)
	departmentService := department.NewService(db, departmentRepo, resolver)
	structureService := structure.NewService(db, structureRepo, resolver)
	personService := person.NewService(db, personRepo, outboxRepo, counterRepo, resolver, rdb)
	staffService := staff.NewService(db, staffRepo, resolver)
	absenceService := absence.NewService(db, absenceRepo, outboxRepo, resolver)
	payrollService := payroll.NewService(db, payrollRepo, resolver)
	secondmentService := secondment.NewService(db, secondmentRepo, resolver)
	documentService := document.NewService(documentRepo, files, resolver)
	recruitmentService := recruitment.NewService(db, recruitmentRepo, resolver)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	accountHandler := account.NewHandler(accountService)
	departmentHandler := department.NewHandler(departmentService)
	structureHandler := structure.NewHandler(structureService)
	personHandler := person.NewHandler(personService)
	staffHandler := staff.NewHandler(staffService)
	absenceHandler := absence.NewHandler(absenceService)
	payrollHandler := payroll.NewHandler(payrollService)
	secondmentHandler := secondment.NewHandler(secondmentService)
	documentHandler := document.NewHandler(documentService)
	recruitmentHandler := recruitment.NewHandler(recruitmentService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		account.RegisterRoutes(api, accountHandler, enforcer)
		department.RegisterRoutes(api, departmentHandler, enforcer)
		structure.RegisterRoutes(api, structureHandler, enforcer)
		person.RegisterRoutes(api, personHandler, enforcer)
		staff.RegisterRoutes(api, staffHandler, enforcer)
		absence.RegisterRoutes(api, absenceHandler, enforcer, rdb)
		payroll.RegisterRoutes(api, payrollHandler, enforcer)
		secondment.RegisterRoutes(api, secondmentHandler, enforcer)
		document.RegisterRoutes(api, documentHandler, enforcer)
		recruitment.RegisterRoutes(api, recruitmentHandler, enforcer)
	}

	return nil
}
