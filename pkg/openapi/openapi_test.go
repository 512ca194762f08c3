package openapi_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/image-forge/pkg/openapi"
)

func TestRefs(t *testing.T) {
	if got := openapi.SchemaRef("Report").Ref; got != "#/components/schemas/Report" {
		t.Errorf("SchemaRef().Ref = %q", got)
	}
	if got := openapi.ResponseRef("BadRequest").Ref; got != "#/components/responses/BadRequest" {
		t.Errorf("ResponseRef().Ref = %q", got)
	}
	if got := openapi.ArrayOfRef("Failure").Items.Ref; got != "#/components/schemas/Failure" {
		t.Errorf("ArrayOfRef().Items.Ref = %q", got)
	}
}

func TestNewComponents(t *testing.T) {
	c := openapi.NewComponents()

	for _, name := range []string{"BadRequest", "Forbidden", "NotFound", "UnsupportedMediaType", "UnprocessableEntity", "ServiceUnavailable"} {
		if _, ok := c.Responses[name]; !ok {
			t.Errorf("missing response %s", name)
		}
	}

	c.AddSchemas(map[string]*openapi.Schema{"Report": {Type: "object"}})
	if _, ok := c.Schemas["Error"]; !ok {
		t.Error("AddSchemas() dropped the Error schema")
	}
	if _, ok := c.Schemas["Report"]; !ok {
		t.Error("AddSchemas() did not add Report")
	}

	c.AddResponses(map[string]*openapi.Response{"Teapot": {Description: "short and stout"}})
	if _, ok := c.Responses["BadRequest"]; !ok {
		t.Error("AddResponses() dropped BadRequest")
	}
}

func TestSpec_AddOperation(t *testing.T) {
	cfg := &openapi.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	spec := openapi.NewSpec(cfg, openapi.NewComponents())

	get := &openapi.Operation{Summary: "list"}
	post := &openapi.Operation{Summary: "create"}
	spec.AddOperation("/things", "GET", get)
	spec.AddOperation("/things", "POST", post)
	spec.AddOperation("/things", "PATCH", &openapi.Operation{})

	item := spec.Paths["/things"]
	if item.Get != get || item.Post != post {
		t.Error("operations not attached to the path")
	}
	if item.Put != nil || item.Delete != nil {
		t.Error("unexpected operations on the path")
	}
	if spec.Info.Title != "imgconv API" || spec.OpenAPI != openapi.Version {
		t.Errorf("info = %+v, openapi = %s", spec.Info, spec.OpenAPI)
	}
}

func TestConfig(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Editor bridge")

	cfg := &openapi.Config{Version: "2.0.0"}
	if err := cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "Editor bridge" {
		t.Errorf("Title = %q, want env override", cfg.Title)
	}
	if cfg.Version != "2.0.0" {
		t.Errorf("Version = %q, want 2.0.0", cfg.Version)
	}

	cfg.Merge(&openapi.Config{Description: "overlay"})
	if cfg.Description != "overlay" || cfg.Title != "Editor bridge" {
		t.Errorf("Merge() = %+v", cfg)
	}
}

func TestMarshalAndWriteJSON(t *testing.T) {
	spec := &openapi.Spec{
		OpenAPI: openapi.Version,
		Info:    &openapi.Info{Title: "Test", Version: "1"},
		Paths: map[string]*openapi.PathItem{
			"/formats": {Get: &openapi.Operation{Responses: map[int]*openapi.Response{200: {Description: "ok"}}}},
		},
	}

	path := filepath.Join(t.TempDir(), "api", "openapi.json")
	if err := openapi.WriteJSON(spec, path); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	paths := doc["paths"].(map[string]any)
	op := paths["/formats"].(map[string]any)["get"].(map[string]any)
	if _, ok := op["responses"].(map[string]any)["200"]; !ok {
		t.Errorf("responses = %v, want status keys as strings", op["responses"])
	}
}
