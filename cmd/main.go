package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/estanteapp/estante-api/internal/api"
	"github.com/estanteapp/estante-api/internal/auth"
	"github.com/estanteapp/estante-api/internal/events"
	"github.com/estanteapp/estante-api/internal/kafka"
	"github.com/estanteapp/estante-api/internal/payment"
	"github.com/estanteapp/estante-api/internal/storage"
	"github.com/estanteapp/estante-api/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func main() {
	log, _ := telemetry.NewLogger()
	defer log.Sync()

	telemetry.InitMetrics()

	// store: Postgres when DATABASE_URL is set, in-memory otherwise
	var (
		users  storage.UserRepo
		books  storage.BookRepo
		dbPing func(ctx context.Context) error
	)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pg, err := storage.NewPostgres(dsn)
		if err != nil {
			log.Fatal("postgres connection failed", zap.Error(err))
		}
		defer pg.Close()
		users, books = pg, pg
		dbPing = pg.DB.PingContext
		log.Info("using postgres store")
	} else {
		mem := storage.NewMemoryStore()
		users, books = mem, mem
		log.Info("using in-memory store")
	}

	// validator
	v := validator.New()

	// JWT
	issuer, err := auth.NewJWTIssuerFromEnv()
	if err != nil {
		log.Fatal("jwt issuer setup failed", zap.Error(err))
	}

	// PIX gateway client; a missing API key only fails payment requests
	gateway := payment.NewClientFromEnv(log)

	// kafka payment events (optional)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var publish func(events.PaymentCreated)
	kafkaEnabled := false
	brokers := os.Getenv("KAFKA_BROKERS")
	topic := os.Getenv("KAFKA_TOPIC_PAYMENTS")
	if brokers != "" && topic != "" {
		schemaValidator, err := kafka.NewValidator()
		if err != nil {
			log.Fatal("event schema setup failed", zap.Error(err))
		}
		producer := kafka.NewProducer(strings.Split(brokers, ","), topic)
		defer producer.Close()

		dispatcher := events.NewDispatcher(log, producer, schemaValidator, 100)
		go dispatcher.Run(ctx)
		publish = dispatcher.Enqueue
		kafkaEnabled = true
		log.Info("kafka payment events enabled", zap.String("topic", topic))
	}

	// handlers with dependencies
	h := &api.Handlers{
		Log:          log,
		Users:        users,
		Books:        books,
		Gateway:      gateway,
		V:            v,
		DBPing:       dbPing,
		KafkaEnabled: kafkaEnabled,
		Publish:      publish,
	}
	ah := &api.AuthHandlers{
		Log:    log,
		Users:  users,
		V:      v,
		Tokens: issuer,
	}

	// gin engine
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(telemetry.PrometheusMiddleware())

	// middleware de log http simples
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
		)
	})

	api.SetupRoutes(r, h, ah, auth.RequireAuth())

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("addr", addr))

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	cancel()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctxTimeout)
	log.Info("server stopped")
}
