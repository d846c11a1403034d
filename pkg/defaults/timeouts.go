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

package defaults

import "time"

// Store timeouts for database operations.
const (
	// StoreTimeout bounds a single read or write against the recipe store.
	StoreTimeout = 10 * time.Second

	// StoreMigrationTimeout bounds schema migration and seeding on startup.
	StoreMigrationTimeout = 60 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// RecipeHandlerTimeout is the timeout for recipe list, search and CRUD requests.
	RecipeHandlerTimeout = 30 * time.Second

	// SelectorTimeout is the timeout for one recipe selector run, including the email.
	// Should be longer than MailTimeout so a slow mail server does not fail the run.
	SelectorTimeout = 45 * time.Second

	// UploadHandlerTimeout is the timeout for media uploads.
	// Longer than recipe requests due to file I/O.
	UploadHandlerTimeout = 60 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ReadinessCheckTimeout bounds the dependency check behind /ready.
	ReadinessCheckTimeout = 2 * time.Second
)

// Mail timeouts for outbound email.
const (
	// MailTimeout bounds dialing and delivering one message.
	MailTimeout = 20 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the total timeout for fetching remote import documents.
	HTTPClientTimeout = 30 * time.Second
)

// Cache settings for the configuration store.
const (
	// SettingsCacheTTL is how long a cached setting is served before it is re-read.
	SettingsCacheTTL = 10 * time.Minute

	// SettingsCacheSize is the maximum number of cached setting lookups.
	SettingsCacheSize = 256
)

// Query defaults.
const (
	// PageSize is the number of recipes per page.
	PageSize = 6
)
