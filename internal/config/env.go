package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	// Upstream Node backend and third-party collaborators.
	APIBaseURL            string
	MapsAPIKey            string
	MapsBaseURL           string
	PaymentPublishableKey string

	JWTSecret     string
	DeviceKeyHash string

	DatabaseDSN string

	NATSURL           string
	NATSSubjectPrefix string

	TrackingInterval time.Duration
	TrackerIdleTTL   time.Duration
	AdminCacheTTL    time.Duration
	UpstreamTimeout  time.Duration
	MaxTrackers      int
	PositionMaxAge   time.Duration

	CORSAllowedOrigins []string
}

func LoadEnv() Env {
	// .env is optional; real environment wins.
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	return Env{
		AppAddr: appAddr,
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		APIBaseURL:            strings.TrimRight(getenvDefault("API_BASE_URL", "http://localhost:3000/api"), "/"),
		MapsAPIKey:            strings.TrimSpace(os.Getenv("MAPS_API_KEY")),
		MapsBaseURL:           getenvDefault("MAPS_BASE_URL", "https://maps.googleapis.com/maps/api"),
		PaymentPublishableKey: strings.TrimSpace(os.Getenv("PAYMENT_PUBLISHABLE_KEY")),

		JWTSecret:     getenvDefault("JWT_SECRET", "super-secret-key-change-me"),
		DeviceKeyHash: strings.TrimSpace(os.Getenv("DEVICE_KEY_HASH")),

		DatabaseDSN: strings.TrimSpace(os.Getenv("DATABASE_DSN")),

		NATSURL:           strings.TrimSpace(os.Getenv("NATS_URL")),
		NATSSubjectPrefix: getenvDefault("NATS_SUBJECT_PREFIX", "transit.locations"),

		TrackingInterval: getenvDuration("TRACKING_INTERVAL", 5*time.Second),
		TrackerIdleTTL:   getenvDuration("TRACKER_IDLE_TTL", 2*time.Minute),
		AdminCacheTTL:    getenvDuration("ADMIN_CACHE_TTL", time.Minute),
		UpstreamTimeout:  getenvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		MaxTrackers:      getenvInt("TRACKER_MAX_SETS", 64),
		PositionMaxAge:   getenvDuration("POSITION_MAX_AGE", 2*time.Minute),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

func getenvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("warning: invalid %s=%q, using %s", k, v, def)
		return def
	}
	return d
}

func getenvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("warning: invalid %s=%q, using %d", k, v, def)
		return def
	}
	return n
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
