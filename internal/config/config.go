package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// GuestCartPolicy controls what a cart-mutating request from an
// unauthenticated caller gets back. Either way no cart item is created.
type GuestCartPolicy string

const (
	// GuestRedirect answers 401 with the login entry point in the body.
	GuestRedirect GuestCartPolicy = "redirect"
	// GuestReject answers a bare 401.
	GuestReject GuestCartPolicy = "reject"
)

type Config struct {
	ServerPort int
	LogLevel   string

	DatabaseURL string
	JWTSecret   []byte

	LoginURL        string
	GuestCartPolicy GuestCartPolicy

	// First saved address becomes the user's default.
	AddressFirstDefault bool

	KafkaBrokers     []string
	InteractionTopic string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: envIntDefault("SERVER_PORT", 8080),
		LogLevel:   envDefault("LOG_LEVEL", "info"),

		DatabaseURL: must(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		JWTSecret:   []byte(must(os.Getenv("JWT_HS256_SECRET"), "JWT_HS256_SECRET")),

		LoginURL:        envDefault("LOGIN_URL", "/account/login"),
		GuestCartPolicy: guestPolicy(envDefault("GUEST_CART_POLICY", "redirect")),

		AddressFirstDefault: envBoolDefault("ADDRESS_FIRST_DEFAULT", true),

		KafkaBrokers:     csv(os.Getenv("KAFKA_BROKERS")),
		InteractionTopic: envDefault("INTERACTION_TOPIC", "interaction_events"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    envDefault("ES_INDEX", "products"),
	}
	return cfg
}

func guestPolicy(v string) GuestCartPolicy {
	switch GuestCartPolicy(strings.ToLower(v)) {
	case GuestReject:
		return GuestReject
	default:
		return GuestRedirect
	}
}

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func csv(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
