package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"tts-gateway/metering"
	"tts-gateway/metering/application"
	"tts-gateway/metering/domain"
	"tts-gateway/metering/infra"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env é opcional; variáveis já exportadas têm precedência
	_ = godotenv.Load()

	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ledger := infra.NewLedger(cfg.users)
	pools := infra.NewSlotPools(cfg.concurrencyMax)
	synth := infra.NewElevenLabs(cfg.apiKey, infra.WithElevenLabsURL(cfg.elevenLabsURL))

	var statsStore domain.StatsStore
	if cfg.statsEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			log.Fatalf("redis stats ping error: %v", err)
		}

		statsStore = infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
			infra.WithStatsTrackUsers(cfg.statsTrackUsers),
		)
	}

	meteringSvc := application.Metering{
		Ledger: ledger,
		Synth:  synth,
		Slots: application.ConcurrencyService{
			Pools:          pools,
			AcquireTimeout: cfg.concurrencyTimeout,
		},
		Stats: statsStore,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	h := buildHandler(ctx, cfg, ledger, meteringSvc)

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// sem WriteTimeout: a resposta é um stream de áudio de duração desconhecida
		IdleTimeout: 90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("tts gateway listening on %s -> %s", cfg.listenAddr, cfg.elevenLabsURL)
	log.Printf("users: %d seeded", len(cfg.users))
	log.Printf("concurrency: max=%d per user, acquireTimeout=%s", cfg.concurrencyMax, cfg.concurrencyTimeout)
	log.Printf("rate: enabled=%v perMinute=%.0f trustXFF=%v", cfg.rateEnabled, cfg.authRatePerMinute, cfg.trustXFF)
	log.Printf("stats: enabled=%v redisAddr=%q bucket=%q ttl=%s trackUsers=%v", cfg.statsEnabled, cfg.statsRedisAddr, cfg.statsBucket, cfg.statsTTL, cfg.statsTrackUsers)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

// buildHandler monta a cadeia de middlewares em volta do endpoint /ttx.
// O store do rate limit (e seu janitor) só existe quando o limite está ligado;
// ctx encerra o janitor junto com o servidor.
func buildHandler(ctx context.Context, cfg config, ledger domain.Ledger, meteringSvc application.Metering) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ttx", metering.Handler(metering.HandlerOptions{Metering: meteringSvc}))

	h := http.Handler(mux)
	h = metering.BasicAuthMiddleware(metering.AuthOptions{
		Auth: application.Auth{Ledger: ledger},
	})(h)
	if cfg.rateEnabled {
		rateStore := infra.NewStore(cfg.authRatePerMinute/60.0, int(cfg.authRatePerMinute))
		rateStore.StartJanitor(ctx)
		h = metering.RateLimitMiddleware(metering.RateLimitOptions{
			Store:               rateStore,
			TrustXForwardedFor:  cfg.trustXFF,
			RejectStatus:        http.StatusTooManyRequests,
			RetryAfter:          cfg.retryAfter,
			AddRateLimitHeaders: cfg.addHeaders,
		})(h)
	}
	return metering.RequestIDMiddleware(h)
}

type config struct {
	listenAddr    string
	apiKey        string
	elevenLabsURL string

	users map[string]domain.Account

	concurrencyMax     int
	concurrencyTimeout time.Duration

	rateEnabled       bool
	authRatePerMinute float64
	trustXFF          bool
	retryAfter        time.Duration
	addHeaders        bool

	statsEnabled       bool
	statsRedisAddr     string
	statsRedisPassword string
	statsRedisDB       int
	statsPrefix        string
	statsTTL           time.Duration
	statsBucket        string
	statsTrackUsers    bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.apiKey = os.Getenv("API_KEY")
	cfg.elevenLabsURL = getenvDefault("ELEVENLABS_URL", infra.DefaultElevenLabsURL)

	users, err := parseUsers(os.Getenv("USERS"))
	if err != nil {
		return config{}, err
	}
	cfg.users = users

	cfg.concurrencyMax = getenvIntDefault("CONCURRENCY_MAX", 3)
	cfg.concurrencyTimeout = getenvDurationDefault("CONCURRENCY_TIMEOUT", 0)

	cfg.rateEnabled = getenvBoolDefault("RATE_ENABLED", true)
	cfg.authRatePerMinute = getenvFloatDefault("AUTH_RATE_PER_MINUTE", 20)
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)
	cfg.addHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", false)

	cfg.statsEnabled = getenvBoolDefault("STATS_ENABLED", false)
	cfg.statsRedisAddr = getenvDefault("STATS_REDIS_ADDR", "")
	cfg.statsRedisPassword = os.Getenv("STATS_REDIS_PASSWORD")
	cfg.statsRedisDB = getenvIntDefault("STATS_REDIS_DB", 0)
	cfg.statsPrefix = getenvDefault("STATS_PREFIX", "tts:stats")
	cfg.statsTTL = getenvDurationDefault("STATS_TTL", 24*time.Hour)
	cfg.statsBucket = getenvDefault("STATS_BUCKET", "minute")
	cfg.statsTrackUsers = getenvBoolDefault("STATS_TRACK_USERS", false)

	if cfg.apiKey == "" {
		return config{}, errors.New("API_KEY is required")
	}
	if cfg.concurrencyMax <= 0 {
		return config{}, errors.New("CONCURRENCY_MAX must be > 0")
	}
	if cfg.authRatePerMinute <= 0 {
		return config{}, errors.New("AUTH_RATE_PER_MINUTE must be > 0")
	}
	if cfg.statsEnabled && strings.TrimSpace(cfg.statsRedisAddr) == "" {
		return config{}, errors.New("STATS_REDIS_ADDR is required when STATS_ENABLED=true")
	}
	return cfg, nil
}

// parseUsers interpreta USERS no formato "nome:senha:creditos,..." e cai no
// seed padrão quando a variável está vazia. Contas são provisionadas aqui,
// fora do core — o gateway nunca cria nem apaga usuários em runtime.
func parseUsers(raw string) (map[string]domain.Account, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]domain.Account{
			"robert": {Credits: 69, Password: "robertHeslo"},
			"karel":  {Credits: 1, Password: "karlovHeslo"},
			"oliver": {Credits: 20000, Password: "oliverHeslo"},
			"blanka": {Credits: 0, Password: "blankaHeslo"},
		}, nil
	}

	users := make(map[string]domain.Account)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid USERS entry %q (want name:password:credits)", entry)
		}
		credits, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || credits < 0 {
			return nil, fmt.Errorf("invalid credits in USERS entry %q", entry)
		}
		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, fmt.Errorf("empty name in USERS entry %q", entry)
		}
		users[name] = domain.Account{Credits: credits, Password: parts[1]}
	}
	return users, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
