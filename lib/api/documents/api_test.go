package documents

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/typecast/typecast-go/lib/document"
)

func newTestApp(defaultText string) (*fiber.App, *document.Registry) {
	app := fiber.New()
	registry := document.NewRegistry(defaultText)
	Init(app, registry, validator.New(validator.WithRequiredStructEnabled()))
	return app, registry
}

func TestGetDocumentContent(t *testing.T) {
	app, registry := newTestApp("")
	registry.GetOrCreate("main.go").Splice(0, 0, "package main\n")

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/documents?path=main.go", nil), 2000)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status code 200, got %v", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["content"] != "package main\n" {
		t.Error("Expected the live content, got ", body["content"])
	}
}

func TestGetMissingDocument(t *testing.T) {
	app, _ := newTestApp("")

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/documents?path=nope.go", nil), 2000)
	if resp.StatusCode != 404 {
		t.Errorf("Expected status code 404, got %v", resp.StatusCode)
	}
}

func TestListDocumentPaths(t *testing.T) {
	app, registry := newTestApp("")
	registry.GetOrCreate("a.go")
	registry.GetOrCreate("b.go")

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/documents", nil), 2000)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status code 200, got %v", resp.StatusCode)
	}

	var body map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body["paths"]) != 2 {
		t.Error("Expected 2 paths, got ", body["paths"])
	}
}

func TestPutDocumentReplacesContent(t *testing.T) {
	app, registry := newTestApp("initial")

	body := `{"path": "main.go", "content": "replaced"}`
	req := httptest.NewRequest("PUT", "/api/documents", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, 2000)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status code 200, got %v", resp.StatusCode)
	}
	if got := registry.GetOrCreate("main.go").Read(); got != "replaced" {
		t.Error("Expected replaced, got ", got)
	}
}

func TestPutDocumentRequiresPath(t *testing.T) {
	app, _ := newTestApp("")

	req := httptest.NewRequest("PUT", "/api/documents", strings.NewReader(`{"content": "x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, 2000)
	if resp.StatusCode != 400 {
		t.Errorf("Expected status code 400, got %v", resp.StatusCode)
	}
}
