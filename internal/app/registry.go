package app

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"go-crm/internal/attendance"
	"go-crm/internal/document"
	"go-crm/internal/employee"
	"go-crm/internal/lead"
	"go-crm/internal/messaging/kafka"
	"go-crm/internal/note"
	"go-crm/internal/rbac"
	"go-crm/internal/rbac/infra"
	"go-crm/internal/settings"
	"go-crm/internal/shared/counter"
	"go-crm/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	minioClient *minio.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leadRepo := lead.NewRepository(gormDB)
	scoringRepo := lead.NewScoringRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	noteRepo := note.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Object storage ---
	var storage document.ObjectStorage
	if minioClient != nil {
		bucket := os.Getenv("MINIO_BUCKET")
		if bucket == "" {
			bucket = "crm-documents"
		}
		storage = document.NewMinioStorage(minioClient, bucket)
	}

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	leadService := lead.NewService(db, leadRepo, scoringRepo, counterRepo, outboxRepo)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, outboxRepo)
	taskService := task.NewService(taskRepo)
	documentService := document.NewService(documentRepo, storage)
	noteService := note.NewService(noteRepo)
	settingsService := settings.NewService(settingsRepo, rdb)

	// --- Handlers ---
	rbacHandler := rbac.NewHandler(rbacService)
	employeeHandler := employee.NewHandler(employeeService)
	leadHandler := lead.NewHandler(leadService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	taskHandler := task.NewHandler(taskService)
	documentHandler := document.NewHandler(documentService)
	noteHandler := note.NewHandler(noteService)
	settingsHandler := settings.NewHandler(settingsService)

	// --- Seed data ---
	if companyID := os.Getenv("DEFAULT_COMPANY_ID"); companyID != "" {
		if err := rbac.SeedDefaults(gormDB, companyID); err != nil {
			return err
		}
		if err := lead.SeedDefaultScoringRules(context.Background(), scoringRepo, companyID); err != nil {
			return err
		}
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		lead.RegisterRoutes(api, leadHandler, rbacService, rdb, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		task.RegisterRoutes(api, taskHandler, rbacService, logger)
		document.RegisterRoutes(api, documentHandler, rbacService, logger)
		note.RegisterRoutes(api, noteHandler, rbacService, logger)
		settings.RegisterRoutes(api, settingsHandler, rbacService, logger)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
