package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	apphttp "bookfinder/internal/http"
	"bookfinder/internal/httpx"
	"bookfinder/internal/openlibrary"
	"bookfinder/internal/search"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	catalogBaseURL := getEnv("OPENLIBRARY_URL", "https://openlibrary.org")
	userAgent := getEnv("USER_AGENT", "bookfinder/1.0 (+https://github.com/bookfinder)")
	outboundRPS := getEnvInt("OPENLIBRARY_RPS", 2)
	sessionTTL := getEnvDuration("SESSION_TTL", 30*time.Minute)

	client := openlibrary.NewClient(catalogBaseURL, userAgent, outboundRPS)
	sessions := search.NewStore(sessionTTL)
	service := search.NewService(client)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.Sweep(sweepCtx, 5*time.Minute)

	pageHandler := apphttp.NewHandler(service, sessions)
	apiHandler := apphttp.NewAPIHandler(client)

	searchLimit := httpx.NewRateLimitMiddleware(1, 5)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.HandleFunc("GET /{$}", pageHandler.Index)
	router.Handle("POST /search", searchLimit.Middleware(http.HandlerFunc(pageHandler.SubmitSearch)))
	router.HandleFunc("GET /books/{isbn}", pageHandler.ShowDetail)
	router.HandleFunc("POST /back", pageHandler.Back)
	router.HandleFunc("POST /sort", pageHandler.SortByRating)
	router.HandleFunc("POST /filter", pageHandler.FilterEbooks)

	apiSearch := searchLimit.Middleware(http.HandlerFunc(apiHandler.Search))
	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		apiSearch = httpx.CORSMiddleware([]string{origins})(apiSearch)
	}
	router.Handle("GET /api/search", apiSearch)

	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(1 << 20)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", serverAddress)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q, using default %d", key, v, def)
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid %s=%q, using default %s", key, v, def)
	}
	return def
}
