package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	JWT      JWT      `envPrefix:"JWT_"`
	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
	Txn      Txn      `envPrefix:"TXN_"`
}

type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
}

type JWT struct {
	Secret string `env:"SECRET"`
}

// Txn bounds how long an inventory transaction may wait on row locks and how
// long the whole transaction may run before the request fails fast.
type Txn struct {
	LockWait time.Duration `env:"LOCK_WAIT" envDefault:"5s"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
