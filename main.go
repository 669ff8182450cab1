package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"

	"ipaybot/internal/api"
	"ipaybot/internal/config"
	"ipaybot/internal/handlers"
	"ipaybot/internal/logging"
	"ipaybot/internal/middleware"
	"ipaybot/internal/service"
	"ipaybot/internal/tracing"
)

const serviceName = "ipaybot"

func main() {
	// Load .env file (if present)
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	log := logging.New(cfg.LogLevel)
	if envErr != nil {
		log.Debug("no .env file found, continuing with existing environment variables")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(serviceName, cfg.JaegerEndpoint)
		if err != nil {
			log.Fatalf("failed to init tracing: %v", err)
		}
		defer tp.Shutdown(context.Background())
		log.Info("tracing enabled")
	}

	// The listener comes first: with ngrok its URL is the base of the callback URLs.
	ln, publicURL, err := listen(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	log.WithField("public_url", publicURL).Info("listener ready")

	client := api.NewClient(cfg.SellerID, cfg.IpayKey,
		api.WithEndpoint(endpointOrDefault(cfg.Endpoint)),
		api.WithHTTPClient(&http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
		api.WithLogger(log.WithField("component", "ipay")),
		api.WithTracer(tracing.GetTracer(api.TracerName)),
	)

	paymentService := service.NewPaymentService(client, service.CallbackURLs{
		Back:     publicURL + handlers.BackPath,
		Service:  publicURL + handlers.ServicePath,
		Redirect: publicURL + handlers.RedirectPath,
	}, log.WithField("component", "payment"))

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(log))

	// Simple health check route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.NewIpayHandler(paymentService).RegisterRoutes(router)
	handlers.NewCallbackHandler(log.WithField("component", "callback")).RegisterRoutes(router)

	srv := &http.Server{
		Handler:      otelhttp.NewHandler(router, serviceName),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * cfg.HTTPTimeout,
	}

	go func() {
		log.WithField("seller_id", client.SellerID()).Info("server started")
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	}
}

// listen opens a local port, or an ngrok tunnel when NGROK_ENABLED=1 so
// iPay can reach the callback routes of a development machine.
func listen(ctx context.Context, cfg *config.Config) (net.Listener, string, error) {
	if cfg.NgrokEnabled {
		tun, err := ngrok.Listen(ctx, ngrokconfig.HTTPEndpoint(), ngrok.WithAuthtokenFromEnv())
		if err != nil {
			return nil, "", err
		}
		return tun, tun.URL(), nil
	}

	ln, err := net.Listen("tcp", ":"+cfg.ServerPort)
	if err != nil {
		return nil, "", err
	}
	publicURL := cfg.PublicBaseURL
	if publicURL == "" {
		publicURL = "http://localhost:" + cfg.ServerPort
	}
	return ln, publicURL, nil
}

func endpointOrDefault(endpoint string) string {
	if endpoint == "" {
		return api.DefaultEndpoint
	}
	return endpoint
}
