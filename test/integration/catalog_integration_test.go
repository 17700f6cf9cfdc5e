package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putJSON(t *testing.T, srv http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPut, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestFolderLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	srv := NewTestServer(db.Pool)

	rec := postJSON(t, srv, "/api/folders", `{"name": "Hydraulics"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Duplicate names are rejected.
	rec = postJSON(t, srv, "/api/folders", `{"name": "Hydraulics"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var folders []map[string]any
	getJSON(t, srv, "/api/folders", &folders)
	require.Len(t, folders, 1)
	folderID := folders[0]["id"].(string)
	assert.Equal(t, "Hydraulics", folders[0]["name"])

	// Assign a product, then delete the folder: the product is detached,
	// not deleted.
	productID := insertProduct(t, db.Pool, "Bracket", 3)
	rec = putJSON(t, srv, fmt.Sprintf("/api/products/%d/folder", productID), fmt.Sprintf(`{"folderId": %q}`, folderID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var products []map[string]any
	getJSON(t, srv, "/api/products", &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Hydraulics", products[0]["folderName"])

	req := httptest.NewRequest(http.MethodDelete, "/api/folders/"+folderID, nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	products = nil
	getJSON(t, srv, "/api/products", &products)
	require.Len(t, products, 1)
	assert.Nil(t, products[0]["folderId"])
	assert.Equal(t, 0, countRows(t, db.Pool, "folders"))
}

func TestProductUpdate_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	srv := NewTestServer(db.Pool)

	productID := insertProduct(t, db.Pool, "Bracket", 3)

	rec := putJSON(t, srv, fmt.Sprintf("/api/product/%d", productID),
		`{"Title": "Bracket v2", "Description": "Updated", "Hours": 8, "hoursVisible": false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var products []map[string]any
	getJSON(t, srv, "/api/products", &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Bracket v2", products[0]["title"])
	assert.Equal(t, float64(8), products[0]["hours"])
	assert.Equal(t, false, products[0]["hoursVisible"])
	assert.Contains(t, products[0]["imageUrl"], "data:image/png;base64,")

	// Negative hours are rejected.
	rec = putJSON(t, srv, fmt.Sprintf("/api/product/%d", productID),
		`{"Title": "Bracket v2", "Description": "Updated", "Hours": -1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScrollingMessage_DefaultAndUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	srv := NewTestServer(db.Pool)

	// The migration seeds a default banner.
	var resp map[string]any
	getJSON(t, srv, "/api/site-settings/scrolling-message", &resp)
	assert.Equal(t, true, resp["success"])
	assert.Contains(t, resp["message"], "Welcome to GEC")

	rec := putJSON(t, srv, "/api/site-settings/scrolling-message", `{"message": "Holiday closure next week"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp = nil
	getJSON(t, srv, "/api/site-settings/scrolling-message", &resp)
	assert.Equal(t, "Holiday closure next week", resp["message"])

	// Empty message is rejected.
	rec = putJSON(t, srv, "/api/site-settings/scrolling-message", `{"message": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var j map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &j))
	assert.Equal(t, false, j["success"])
}
