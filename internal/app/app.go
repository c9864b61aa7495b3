package app

import (
	"os"
	"strconv"

	"go-crm/internal/middleware"
	"go-crm/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	// 1. Infrastruktur
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	// MinIO opsional: tanpa object storage modul dokumen menolak upload
	// tapi sisanya tetap jalan.
	var minioClient *minio.Client
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		useSSL, _ := strconv.ParseBool(os.Getenv("MINIO_USE_SSL"))
		minioClient, err = connection.ConnectMinio(
			endpoint,
			os.Getenv("MINIO_ACCESS_KEY"),
			os.Getenv("MINIO_SECRET_KEY"),
			useSSL,
		)
		if err != nil {
			return err
		}
		logger.Info("minio client ready")
	} else {
		logger.Warn("MINIO_ENDPOINT not set, document upload disabled")
	}

	// 2. Middleware global
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	corsCfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		corsCfg.AllowOrigins = []string{origins}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID", "Idempotency-Key")
	router.Use(cors.New(corsCfg))

	// 3. Modul & routes
	return registerModules(router, sqlDB, gormDB, redisClient, minioClient)
}
