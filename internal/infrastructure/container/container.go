package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"github.com/swipehire/backend/internal/config"
	"github.com/swipehire/backend/internal/delivery/http"
	"github.com/swipehire/backend/internal/delivery/http/handler"
	"github.com/swipehire/backend/internal/delivery/http/middleware"
	"github.com/swipehire/backend/internal/infrastructure/database"
	"github.com/swipehire/backend/internal/infrastructure/payment"
	"github.com/swipehire/backend/internal/infrastructure/server"
	"github.com/swipehire/backend/internal/repository/postgres"
	redisrepo "github.com/swipehire/backend/internal/repository/redis"
	"github.com/swipehire/backend/internal/usecase/account"
	"github.com/swipehire/backend/internal/usecase/auth"
	"github.com/swipehire/backend/internal/usecase/chat"
	"github.com/swipehire/backend/internal/usecase/checkout"
	"github.com/swipehire/backend/internal/usecase/entitlement"
	"github.com/swipehire/backend/internal/usecase/feed"
	"github.com/swipehire/backend/internal/usecase/job"
	"github.com/swipehire/backend/internal/usecase/match"
	"github.com/swipehire/backend/internal/usecase/swipe"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *goredis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database (runs embedded migrations)
	db, err := database.NewPostgresDB(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	checkoutStore := redisrepo.NewCheckoutSessionStore(redisClient)

	// Payment gateway
	gateway := payment.NewStripeGateway(
		cfg.Stripe.SecretKey,
		cfg.Stripe.WebhookSecret,
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
		cfg.Stripe.Currency,
	)

	// Initialize use cases
	engine := entitlement.NewEngine(
		accountRepo,
		matchRepo,
		jobRepo,
		cfg.Pricing.PriceTable(),
	)

	authUseCase := auth.NewAuthUseCase(
		accountRepo,
		sessionRepo,
		cfg.JWT.AccessSecret,
		cfg.JWT.AccessExpiryMin,
	)

	accountUseCase := account.NewAccountUseCase(accountRepo)

	jobUseCase := job.NewJobUseCase(jobRepo)

	feedUseCase := feed.NewFeedUseCase(
		accountRepo,
		jobRepo,
		swipeRepo,
	)

	swipeUseCase := swipe.NewSwipeUseCase(
		swipeRepo,
		matchRepo,
		jobRepo,
		accountRepo,
		engine,
	)

	matchUseCase := match.NewMatchUseCase(
		matchRepo,
		accountRepo,
		paymentRepo,
	)

	checkoutUseCase := checkout.NewCheckoutUseCase(
		engine,
		matchRepo,
		accountRepo,
		checkoutStore,
		gateway,
	)

	chatUseCase := chat.NewChatUseCase(matchRepo, messageRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	accountHandler := handler.NewAccountHandler(accountUseCase)
	jobHandler := handler.NewJobHandler(jobUseCase)
	feedHandler := handler.NewFeedHandler(feedUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	checkoutHandler := handler.NewCheckoutHandler(checkoutUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		accountHandler,
		jobHandler,
		feedHandler,
		swipeHandler,
		matchHandler,
		checkoutHandler,
		chatHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("error closing redis: %v\n", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
