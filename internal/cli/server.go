package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	tele "gopkg.in/telebot.v4"

	"topic-quiz-bot/internal/app"
	"topic-quiz-bot/internal/config"
	"topic-quiz-bot/internal/domain"
	"topic-quiz-bot/internal/infra/memory"
	pgcatalog "topic-quiz-bot/internal/infra/postgres"
	rediscatalog "topic-quiz-bot/internal/infra/redis"
	transport "topic-quiz-bot/internal/transport/http"
	tgtransport "topic-quiz-bot/internal/transport/telegram"
)

// NewStartCmd builds the CLI subcommand to start the bot and HTTP server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	sessionTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.CatalogLoader = memory.NewStaticCatalog(sampleTopics(), sampleQuestions())
	if pool != nil {
		loader = pgcatalog.NewCatalog(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var source app.QuestionSource
	if redisClient != nil {
		source = rediscatalog.NewCatalog(redisClient, loader, catalogTTL)
	} else {
		source = memory.NewCatalog(loader, catalogTTL)
	}

	var store app.SessionStore
	if redisClient != nil {
		store = rediscatalog.NewSessionStore(redisClient, sessionTTL)
	} else {
		store = memory.NewSessionStore()
	}
	engine := app.NewEngine(store, source)

	var bot *tele.Bot
	if cfg.Telegram.Token != "" {
		bot, err = tele.NewBot(tele.Settings{
			Token:  cfg.Telegram.Token,
			Poller: tgtransport.BuildPoller(cfg),
		})
		if err != nil {
			return err
		}
		tgtransport.NewHandler(bot, engine, cfg.Telegram.AdminID).Register()
		go func() {
			log.Printf("starting telegram bot (%s mode)", cfg.Telegram.RunMode)
			bot.Start()
		}()
	} else {
		log.Printf("no telegram token configured, running websocket transport only")
	}

	wsHandler := transport.NewWSHandler(engine)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz bot HTTP server on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down...")
	}

	if bot != nil {
		bot.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleTopics and sampleQuestions provide a minimal demo catalog for runs
// without a database.
func sampleTopics() []domain.Topic {
	return []domain.Topic{{ID: 1, Name: "General knowledge"}}
}

func sampleQuestions() map[int64][]domain.Question {
	return map[int64][]domain.Question{
		1: {
			{
				ID:      1,
				TopicID: 1,
				Prompt:  "What is 2 + 2?",
				Choices: [4]domain.Choice{
					{Label: "a", Text: "3"},
					{Label: "b", Text: "4"},
					{Label: "c", Text: "5"},
					{Label: "d", Text: "22"},
				},
				Correct:     "b",
				Explanation: "Basic arithmetic.",
			},
		},
	}
}
