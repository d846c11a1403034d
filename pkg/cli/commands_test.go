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

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NVIDIA/recipes-api/pkg/api"
	"github.com/NVIDIA/recipes-api/pkg/header"
	"github.com/NVIDIA/recipes-api/pkg/recipe"
	"github.com/NVIDIA/recipes-api/pkg/selector"
	"github.com/NVIDIA/recipes-api/pkg/settings"
)

const exportYAML = `kind: RecipeExport
apiVersion: recipes.nvidia.com/v1
metadata:
  count: "2"
recipes:
  - name: Tomato Soup
    category: Soup
    directions: [Chop the tomatoes, Simmer]
    ingredients: [Tomatoes, Salt]
  - name: Beef Tacos
    category: Main Dish
    subCategory: Mexican
    directions: [Brown the beef, Fill the shells]
    ingredients: [Beef, Shells]
    tags:
      - name: quick
`

type testEnv struct {
	t  *testing.T
	db string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(api.EnvConfigFile, "")
	t.Setenv(api.EnvMediaDir, filepath.Join(dir, "media"))
	t.Setenv("LOG_LEVEL", "error")
	return &testEnv{t: t, db: filepath.Join(dir, "recipes.db")}
}

// run executes the root command with the test database and json output.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.Writer = &out
	root.ErrWriter = io.Discard

	argv := append([]string{name, "--db", e.db, "--format", "json"}, args...)
	err := root.Run(context.Background(), argv)
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("%v: %v", args, err)
	}
	return out
}

func (e *testEnv) importFixture() {
	e.t.Helper()
	path := filepath.Join(e.t.TempDir(), "export.yaml")
	if err := os.WriteFile(path, []byte(exportYAML), 0o600); err != nil {
		e.t.Fatal(err)
	}
	out := e.mustRun("import", "--file", path)
	if !strings.Contains(out, "imported 2 recipes") {
		e.t.Fatalf("import output = %q", out)
	}
}

func decodeJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return v
}

func TestMigrate(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("migrate")
	if !strings.Contains(out, "is up to date") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(env.db); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestListAndSearch(t *testing.T) {
	env := newTestEnv(t)
	env.importFixture()

	page := decodeJSON[recipe.Page[recipe.Document]](t, env.mustRun("list"))
	if page.TotalItems != 2 || len(page.Results) != 2 {
		t.Fatalf("list totals = %d, results = %d", page.TotalItems, len(page.Results))
	}
	if page.Results[1].Name != "Beef Tacos" || len(page.Results[1].Tags) != 1 {
		t.Errorf("second recipe = %+v", page.Results[1])
	}

	page = decodeJSON[recipe.Page[recipe.Document]](t, env.mustRun("list", "--filter", "category", "--value", "Soup"))
	if page.TotalItems != 1 || page.Results[0].Name != "Tomato Soup" {
		t.Errorf("filtered list = %+v", page)
	}

	page = decodeJSON[recipe.Page[recipe.Document]](t, env.mustRun("search", "taco"))
	if page.TotalItems != 1 || page.Results[0].Name != "Beef Tacos" {
		t.Errorf("search = %+v", page)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"disallowed filter", []string{"list", "--filter", "password", "--value", "x"}},
		{"invalid page", []string{"list", "--page", "0"}},
		{"search without keyword", []string{"search"}},
		{"blank keyword", []string{"search", "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.run(tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	env := newTestEnv(t)
	env.importFixture()

	res := decodeJSON[selector.Result](t, env.mustRun("select", "--frontend", "--count", "1"))
	if len(res.Names) != 1 || res.Names[0] != "Beef Tacos" {
		t.Errorf("names = %v", res.Names)
	}

	// the only main dish is in the history, so the next run starts a new cycle
	res = decodeJSON[selector.Result](t, env.mustRun("select", "--frontend", "--count", "1"))
	if !res.Reset {
		t.Error("expected a cycle reset")
	}
}

func TestConfig(t *testing.T) {
	env := newTestEnv(t)

	kv := decodeJSON[settings.KeyValue](t, env.mustRun("config", "get", settings.KeySelectorCounter))
	if kv.Value != "2" {
		t.Errorf("default counter = %q, want 2", kv.Value)
	}

	env.mustRun("config", "set", settings.KeySelectorCounter, "4")
	kv = decodeJSON[settings.KeyValue](t, env.mustRun("config", "get", settings.KeySelectorCounter))
	if kv.Value != "4" {
		t.Errorf("counter = %q, want 4", kv.Value)
	}

	list := decodeJSON[[]settings.Setting](t, env.mustRun("config", "list"))
	if len(list) != len(settings.Defaults()) {
		t.Errorf("settings = %d, want %d", len(list), len(settings.Defaults()))
	}

	if _, err := env.run("config", "get", "missing-key"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := env.run("config", "set", "only-key"); err == nil {
		t.Error("expected error for missing value")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.importFixture()

	out := env.mustRun("export")
	doc := decodeJSON[RecipeExport](t, out)
	if err := doc.Check(header.KindRecipeExport); err != nil {
		t.Fatalf("export header: %v", err)
	}
	if doc.Metadata[header.MetadataCount] != "2" || len(doc.Recipes) != 2 {
		t.Fatalf("export = %+v", doc)
	}

	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
		t.Fatal(err)
	}

	other := newTestEnv(t)
	other.mustRun("import", "--file", path)
	page := decodeJSON[recipe.Page[recipe.Document]](t, other.mustRun("list"))
	if page.TotalItems != 2 {
		t.Errorf("imported = %d, want 2", page.TotalItems)
	}
	if got := page.Results[0].Directions; len(got) != 2 || got[0] != "Chop the tomatoes" {
		t.Errorf("directions = %v", got)
	}
}

func TestImportRejectsOtherKinds(t *testing.T) {
	env := newTestEnv(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := strings.Replace(exportYAML, "kind: RecipeExport", "kind: SettingsExport", 1)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := env.run("import", "--file", path); err == nil {
		t.Error("expected error for a SettingsExport document")
	}
}

func TestExportToFile(t *testing.T) {
	env := newTestEnv(t)
	env.importFixture()

	path := filepath.Join(t.TempDir(), "out.json")
	if out := env.mustRun("--output", path, "export"); out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := decodeJSON[RecipeExport](t, string(data))
	if len(doc.Recipes) != 2 {
		t.Errorf("recipes = %d, want 2", len(doc.Recipes))
	}
}
