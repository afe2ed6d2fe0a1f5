// Package config loads the process configuration from the environment.
package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

// Redis is optional; an empty URL selects the in-memory fallbacks.
type Redis struct {
	URL       string `envconfig:"URL"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"backoffice"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[backoffice]"`
}

// Server configures the listener. ProxyHeader is honored only for requests
// whose remote address is listed in TrustedProxies.
type Server struct {
	Scheme         string   `envconfig:"SCHEME" default:"http"`
	Host           string   `envconfig:"HOST" default:"localhost"`
	Port           int      `envconfig:"PORT" default:"3000"`
	ProxyHeader    string   `envconfig:"PROXY_HEADER"`
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

// Activation configures the codes sent to newly registered users.
type Activation struct {
	CodeLength int           `envconfig:"CODE_LENGTH" default:"6"`
	CodeTTL    time.Duration `envconfig:"CODE_TTL" default:"10m"`
}

type EventBus struct {
	Driver string `envconfig:"DRIVER" default:"memory"`
}

type App struct {
	Env        string      `envconfig:"APP_ENV" default:"development"`
	Server     *Server     `envconfig:"SERVER"`
	Log        *Log        `envconfig:"LOG"`
	DB         *DB         `envconfig:"DATABASE"`
	Auth       *Auth       `envconfig:"AUTH"`
	Redis      *Redis      `envconfig:"REDIS"`
	RateLimit  *RateLimit  `envconfig:"RATE_LIMIT"`
	Activation *Activation `envconfig:"ACTIVATION"`
	EventBus   *EventBus   `envconfig:"EVENT_BUS"`
}
