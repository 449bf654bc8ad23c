package board

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"listkit/core/reorder"
)

func setupTestApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	app := fiber.New()
	svc := NewService(zap.NewNop(), nil, nil, reorder.Policy{Enabled: true})
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, svc
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestHandleCreateAndList(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := doJSON(t, app, "POST", "/boards/", CreateBoardRequest{Name: "Chores"})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Chores", body["name"])
	assert.NotEmpty(t, body["id"])

	req := httptest.NewRequest("GET", "/boards/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var infos []BoardInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	assert.Len(t, infos, 1)
}

func TestHandleApplyTargetReturnsPlan(t *testing.T) {
	app, svc := setupTestApp(t)
	id := svc.CreateBoard("Chores").ID

	status, body := doJSON(t, app, "PUT", "/boards/"+id+"/layout", ApplyTargetRequest{
		TargetLayout: TargetLayout{Sections: []TargetSection{
			{ID: "todo", Items: []string{"wash", "cook"}},
		}},
	})
	assert.Equal(t, 200, status)

	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["section_inserts"])
	assert.Equal(t, float64(2), summary["item_inserts"])
}

func TestHandleAppendConflict(t *testing.T) {
	app, svc := setupTestApp(t)
	id := seededBoard(t, svc)

	status, _ := doJSON(t, app, "POST", "/boards/"+id+"/sections/done/items",
		ItemsRequest{Items: []string{"wash"}})
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestHandleMoveAndDelete(t *testing.T) {
	app, svc := setupTestApp(t)
	id := seededBoard(t, svc)

	status, body := doJSON(t, app, "POST", "/boards/"+id+"/items/cook/move",
		MoveRequest{Section: "done"})
	assert.Equal(t, 200, status)
	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["moves"])

	status, _ = doJSON(t, app, "DELETE", "/boards/"+id+"/items",
		ItemsRequest{Items: []string{"wash"}})
	assert.Equal(t, 200, status)
}

func TestHandleUnknownBoardIs404(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/boards/nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleReorder(t *testing.T) {
	app, svc := setupTestApp(t)
	id := seededBoard(t, svc)

	status, body := doJSON(t, app, "POST", "/boards/"+id+"/reorder", ReorderRequest{
		From: PositionRef{Section: "todo", Index: 0},
		To:   PositionRef{Section: "todo", Index: 2},
	})
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["moved"])

	// Cross-group drop is rejected by policy, not an error.
	status, body = doJSON(t, app, "POST", "/boards/"+id+"/reorder", ReorderRequest{
		From: PositionRef{Section: "todo", Index: 0},
		To:   PositionRef{Section: "done", Index: 0},
	})
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["moved"])
}

// The fixed /saved path must not be swallowed by the :id layout route.
func TestHandleSavedRouteNotShadowedByID(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/boards/saved", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	// No store configured: the saved handler answers 501, while the
	// layout route would have answered 404 for an unknown id.
	assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)
}

func TestHandleDeleteBoard(t *testing.T) {
	app, svc := setupTestApp(t)
	id := seededBoard(t, svc)

	req := httptest.NewRequest("DELETE", "/boards/"+id, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest("GET", "/boards/"+id, nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest("DELETE", "/boards/"+id, nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleSaveWithoutStoreIs501(t *testing.T) {
	app, svc := setupTestApp(t)
	id := svc.CreateBoard("Board").ID

	req := httptest.NewRequest("POST", "/boards/"+id+"/save", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)
}
