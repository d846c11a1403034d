// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/recipes-api/pkg/defaults"
	"golang.org/x/time/rate"
)

// Config holds the listener, limiter and timeout settings of a Server.
type Config struct {
	Name    string
	Version string

	// Handlers keyed by ServeMux pattern, e.g. "GET /recipes/{id}".
	Handlers map[string]http.HandlerFunc

	Address string
	Port    int

	// Per-client rate limiting
	RateLimit        rate.Limit // requests per second
	RateLimitBurst   int        // burst size
	RateLimitClients int        // number of client limiters kept

	// CORS
	AllowedOrigins []string

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns the default configuration with environment overrides
// applied, for callers that adjust it before passing it to WithConfig.
func NewConfig() *Config {
	return parseConfig()
}

// parseConfig returns defaults overridden by the environment. Values that
// do not parse are ignored.
func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              8080,
		RateLimit:         100,
		RateLimitBurst:    200,
		RateLimitClients:  1024,
		AllowedOrigins:    []string{"*"},
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	cfg.Address = os.Getenv("ADDRESS")
	if port, ok := envInt("PORT"); ok && port > 0 && port < 65536 {
		cfg.Port = port
	}
	if rps, ok := envInt("RATE_LIMIT_RPS"); ok && rps > 0 {
		cfg.RateLimit = rate.Limit(rps)
	}
	if burst, ok := envInt("RATE_LIMIT_BURST"); ok && burst > 0 {
		cfg.RateLimitBurst = burst
	}
	// match the service manager's stop timeout
	if seconds, ok := envInt("SHUTDOWN_TIMEOUT_SECONDS"); ok && seconds > 0 {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		list := strings.Split(origins, ",")
		for i := range list {
			list[i] = strings.TrimSpace(list[i])
		}
		cfg.AllowedOrigins = slices.DeleteFunc(list, func(o string) bool { return o == "" })
	}

	return cfg
}

func envInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("ignoring invalid environment value", "name", name, "value", raw)
		return 0, false
	}
	return n, true
}
