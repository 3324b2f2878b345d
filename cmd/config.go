package main

import "time"

type Config struct {
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,required=true"`
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=8080"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL,default=15s"`
	PresenceTimeout time.Duration `env:"PRESENCE_TIMEOUT,default=10s"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	LimitMessages   *int          `env:"LIMIT_MESSAGES"`
	AllowedOrigins  string        `env:"ALLOWED_ORIGINS,default=*"`
}
