package main

import (
	"context"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "postboard/docs" // swagger docs

	"postboard/internal/auth"
	"postboard/internal/cache"
	"postboard/internal/config"
	"postboard/internal/db"
	"postboard/internal/handler"
	"postboard/internal/logger"
	"postboard/internal/model"
	"postboard/internal/repository"
	"postboard/internal/router"
	"postboard/internal/service"
	"postboard/internal/storage"
)

// @title Postboard API
// @version 1.0
// @description Social-post platform backend: auth, profiles, posts, comments and likes.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Info("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Follow{},
			&model.Like{},
			&model.Comment{},
			&model.Post{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn("failed to drop table (may not exist)", zap.Error(err))
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Follow{},
	); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	var avatarStore storage.AvatarStore
	if cfg.S3Bucket != "" {
		avatarStore, err = storage.NewS3Store(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
		})
		if err != nil {
			log.Fatal("s3 init", zap.Error(err))
		}
	} else {
		log.Warn("S3_BUCKET not set, avatar uploads will fail")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	likeRepo := repository.NewLikeRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	profileService := service.NewProfileService(userRepo, avatarStore, cacheClient)
	postService := service.NewPostService(postRepo, likeRepo)
	commentService := service.NewCommentService(commentRepo)
	likeService := service.NewLikeService(likeRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, profileService)
	profileHandler := handler.NewProfileHandler(profileService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)

	// Register routes
	router.Register(
		e,
		jwtService,
		tokenStore,
		authHandler,
		profileHandler,
		postHandler,
		commentHandler,
		likeHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info("starting server", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal("server start", zap.Error(err))
	}
}
