package snapshots

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/typecast/typecast-go/lib/db"
	"github.com/typecast/typecast-go/lib/document"
	"github.com/typecast/typecast-go/lib/snapshot"
)

func newTestApp() (*fiber.App, *snapshot.Store, *document.Registry) {
	app := fiber.New()
	store := snapshot.NewStore(db.NewMemoryDataStore())
	registry := document.NewRegistry("")
	Init(app, store, registry, validator.New(validator.WithRequiredStructEnabled()), zap.NewNop().Sugar())
	return app, store, registry
}

func TestCreateSnapshotWithExplicitContent(t *testing.T) {
	app, _, _ := newTestApp()

	body := `{"path": "main.go", "title": "step 1", "content": "package main\n"}`
	req := httptest.NewRequest("POST", "/api/snapshots", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, 2000)
	if resp.StatusCode != 201 {
		t.Errorf("Expected status code 201, got %v", resp.StatusCode)
	}

	var created snapshot.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Error("Expected an assigned id")
	}
	if created.Content != "package main\n" {
		t.Error("Expected the explicit content, got ", created.Content)
	}
}

func TestCreateSnapshotCapturesLiveBuffer(t *testing.T) {
	app, _, registry := newTestApp()
	registry.GetOrCreate("main.go").Splice(0, 0, "live content")

	body := `{"path": "main.go"}`
	req := httptest.NewRequest("POST", "/api/snapshots", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, 2000)
	if resp.StatusCode != 201 {
		t.Errorf("Expected status code 201, got %v", resp.StatusCode)
	}

	var created snapshot.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Content != "live content" {
		t.Error("Expected the live buffer content, got ", created.Content)
	}
}

func TestCreateSnapshotRequiresPath(t *testing.T) {
	app, _, _ := newTestApp()

	req := httptest.NewRequest("POST", "/api/snapshots", strings.NewReader(`{"title": "no path"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, 2000)
	if resp.StatusCode != 400 {
		t.Errorf("Expected status code 400, got %v", resp.StatusCode)
	}
}

func TestListSnapshotsFiltersByPath(t *testing.T) {
	app, store, _ := newTestApp()
	store.Save("a.go", "", "one")
	store.Save("b.go", "", "two")

	req := httptest.NewRequest("GET", "/api/snapshots?path=a.go", nil)
	resp, _ := app.Test(req, 2000)
	if resp.StatusCode != 200 {
		t.Errorf("Expected status code 200, got %v", resp.StatusCode)
	}

	var listed []snapshot.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 {
		t.Error("Expected 1 snapshot, got ", len(listed))
	}
}

func TestGetMissingSnapshot(t *testing.T) {
	app, _, _ := newTestApp()

	req := httptest.NewRequest("GET", "/api/snapshots/does-not-exist", nil)
	resp, _ := app.Test(req, 2000)
	if resp.StatusCode != 404 {
		t.Errorf("Expected status code 404, got %v", resp.StatusCode)
	}
}

func TestDeleteSnapshot(t *testing.T) {
	app, store, _ := newTestApp()
	saved, err := store.Save("main.go", "", "content")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("DELETE", "/api/snapshots/"+saved.ID, nil)
	resp, _ := app.Test(req, 2000)
	if resp.StatusCode != 204 {
		t.Errorf("Expected status code 204, got %v", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("DELETE", "/api/snapshots/"+saved.ID, nil), 2000)
	if resp.StatusCode != 404 {
		t.Errorf("Expected status code 404, got %v", resp.StatusCode)
	}
}
