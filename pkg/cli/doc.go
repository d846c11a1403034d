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

// Package cli implements the recipes command-line tool.
//
// # Commands
//
//	recipes serve                         run the HTTP API server
//	recipes migrate                       create or update the schema
//	recipes select [--frontend] [--count N]
//	recipes search <keyword> [--filter F --value V --page N]
//	recipes list [--filter F --value V --page N]
//	recipes config list | get <key> | set <key> <value> [--type T]
//	recipes export [--output FILE]
//	recipes import --file FILE|URL
//
// # Global Flags
//
//	--db           SQLite database file (env RECIPES_DB_PATH)
//	--log-level    debug, info, warn, error (env LOG_LEVEL)
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//
// Export writes a RecipeExport document whose header carries the kind,
// apiVersion and a count of the exported recipes; import rejects documents
// of any other kind or schema version.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/recipes-api/pkg/cli.version=1.0.0'"
package cli
