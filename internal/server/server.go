package server

import (
	"backend-microblog/internal/blob"
	"backend-microblog/internal/composer"
	"backend-microblog/internal/config"
	"backend-microblog/internal/post"
	"backend-microblog/internal/profile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	profiles := profile.NewStore(s.Redis)
	blobs := blob.NewPgStore(s.DB, s.Cfg.PublicBaseURL)
	posts := post.NewService(post.NewPgStore(s.DB), blobs, profiles, s.Cfg.AnonymousName)

	profile.RegisterRoutes(s.App.Group("/profile"), profiles)
	post.RegisterRoutes(s.App.Group("/posts"), posts)
	blob.RegisterRoutes(s.App.Group("/storage"), blobs)
	composer.RegisterRoutes(s.App.Group("/composer"), composer.NewService(s.Redis, posts))
}
