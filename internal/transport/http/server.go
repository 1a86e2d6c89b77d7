package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"time"

	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/handler"
	appredis "microblog/internal/redis"
	"microblog/internal/repository"
	"microblog/internal/service"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Connect to Redis (page cache)
	rdb, err := appredis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rdb.Close()
	if err := rdb.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// 5. Services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(refreshTokenRepo, cfg)
	postService := service.NewPostService(postRepo, groupRepo, commentRepo, userRepo, followRepo, cfg)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)
	followService := service.NewFollowService(followRepo, userRepo, postRepo, cfg)

	// Media uploads are optional: without R2 credentials, posts are text-only
	mediaService, err := service.NewMediaService(context.Background(), cfg)
	if err != nil {
		log.Printf("[Server] media uploads disabled: %v", err)
		mediaService = nil
	}

	pageCache := cache.NewPageCache(rdb.Client)

	// 6. Handlers and router
	router := NewRouter(RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService, authService),
		PostHandler:    handler.NewPostHandler(postService, userService, mediaService, pageCache, cfg),
		CommentHandler: handler.NewCommentHandler(commentService, postService),
		FollowHandler:  handler.NewFollowHandler(followService),
		JWTSecret:      cfg.JWTSecret,
	})

	addr := ":" + cfg.ServerPort
	srv := &stdhttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting server on %s", addr)
	return srv.ListenAndServe()
}
