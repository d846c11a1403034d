// Package api wires the recipe store, settings cache, selector and media
// handlers into the reusable pkg/server and runs the recipesd API server.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Recipes:
//   - GET /recipes, GET /recipes/all, GET /recipes/where, GET /recipes/search
//   - GET /recipes/name/{name}, GET /recipes/categories-dropdown, GET /recipes/file/{id}
//   - POST /recipes, PATCH /recipes/update/{id}, DELETE /recipes/delete/{id}
//   - PATCH /recipes/favourites/{id}, PATCH /recipes/featured/{id}, POST /recipes/category
//
// Selector, media and settings:
//   - GET /recipes/selector?fe-selector=true&count=2
//   - POST /recipes/upload/{id}, GET /media/{name}
//   - GET /recipes/configs, GET /recipes/config/keys, GET /recipes/config/{key}
//   - GET /recipes/config/value/{value}
//   - POST /recipes/config, PATCH /recipes/config/{key}/{value}, DELETE /recipes/config/deletecache
//
// System endpoints (no rate limiting): GET /health, GET /ready, GET /metrics.
//
// # Configuration
//
// Defaults are overlaid with the YAML file named by RECIPES_CONFIG and then
// with the environment:
//   - RECIPES_DB_PATH: SQLite database file (default: data/recipes.db)
//   - RECIPES_DB_DEBUG: log every SQL statement
//   - RECIPES_MEDIA_DIR: upload directory (default: data/media)
//   - RECIPES_SMTP_ADDR, RECIPES_SMTP_USERNAME, RECIPES_SMTP_PASSWORD: outgoing mail
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: logging level (debug, info, warn, error)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/recipes-api/pkg/api.version=1.0.0'"
package api
