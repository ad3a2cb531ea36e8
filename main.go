package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/priyanshu14077/NeuronPress/api"
	"github.com/priyanshu14077/NeuronPress/config"
	"github.com/priyanshu14077/NeuronPress/database"
	"github.com/priyanshu14077/NeuronPress/events"
	"github.com/priyanshu14077/NeuronPress/llm"
	"github.com/priyanshu14077/NeuronPress/models"
	"github.com/priyanshu14077/NeuronPress/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	setupLogger(c)

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := config.LoadSSM(startupCtx, c); err != nil {
		log.Fatal().Err(err).Msg("Error loading SSM parameters")
	}

	db, err := database.Open(startupCtx, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		if err := models.GenerateColumnMismatchReportStandalone(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		return
	}

	if config.GetBool(c, "AUTO_MIGRATE", false) {
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error migrating database")
		}
		log.Info().Msg("Database schema migrated")
	}

	currentDB := database.New(db)

	completer, err := llm.New(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing completion client")
	}

	invalidator, closeEvents := setupEvents(c)
	defer closeEvents()

	postService := services.NewPostService(
		currentDB.PostRepo(),
		currentDB.AuthorRepo(),
		invalidator,
		config.GetInt(c, "SLUG_MAX_ATTEMPTS", services.DefaultSlugMaxAttempts),
	)
	aiService := services.NewAIService(completer, currentDB.AIGenerationRepo(), services.AIServiceConfig{
		CostPerToken: config.GetFloat(c, "AI_COST_PER_TOKEN", services.DefaultCostPerToken),
		RecordAll:    config.GetBool(c, "AI_RECORD_ALL_GENERATIONS", false),
	})
	taxonomyService := services.NewTaxonomyService(currentDB.TaxonomyRepo())

	server, err := api.NewServer(c, api.Dependencies{
		Database: currentDB,
		Posts:    postService,
		AI:       aiService,
		Taxonomy: taxonomyService,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	fatalErr := firstError(server.Start, listenToInterrupt)
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// setupLogger configures the global zerolog logger from LOG_LEVEL and LOG_PRETTY.
func setupLogger(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetBool(c, "LOG_PRETTY", false) {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// setupEvents fans invalidations out to RabbitMQ and the Redis page cache when
// they are configured. The returned func releases their connections.
func setupEvents(c map[string]string) (events.Publisher, func()) {
	var publishers events.Multi
	var closers []func()

	if url := config.GetString(c, "RABBITMQ_URL", ""); url != "" {
		rabbit, err := events.NewRabbitPublisher(url, config.GetString(c, "RABBITMQ_EXCHANGE", events.DefaultExchange))
		if err != nil {
			log.Error().Err(err).Msg("RabbitMQ unavailable, invalidations will not be published")
		} else {
			publishers = append(publishers, rabbit)
			closers = append(closers, func() { _ = rabbit.Close() })
		}
	}

	if addr := config.GetString(c, "REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.GetString(c, "REDIS_PASSWORD", ""),
			DB:       config.GetInt(c, "REDIS_DB", 0),
		})
		publishers = append(publishers, events.NewRedisPurger(client, config.GetString(c, "REDIS_PAGE_PREFIX", events.DefaultPageKeyPrefix)))
		closers = append(closers, func() { _ = client.Close() })
	}

	closeAll := func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}
	if len(publishers) == 0 {
		return events.Noop{}, closeAll
	}
	return publishers, closeAll
}

// firstError runs each reporter in its own goroutine and returns the first error sent.
// The channel has room for every reporter, so the ones that report later never block.
func firstError(reporters ...func(chan<- error)) error {
	errChannel := make(chan error, len(reporters))
	for _, report := range reporters {
		go report(errChannel)
	}
	return <-errChannel
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
