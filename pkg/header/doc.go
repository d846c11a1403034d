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

// Package header provides the common header of exported documents.
//
// Every document written by the recipes CLI starts with a Header carrying
// its kind, schema version and metadata:
//
//	kind: RecipeExport
//	apiVersion: recipes.nvidia.com/v1
//	metadata:
//	  timestamp: "2025-01-15T10:30:00Z"
//	  version: v1.2.0
//	  count: "42"
//
// Importers call Check before reading the body so that documents of another
// kind or schema version are rejected up front.
package header
