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

func postJSON(t *testing.T, srv http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func getJSON(t *testing.T, srv http.Handler, path string, out any) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestOrderPlacement_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	srv := NewTestServer(db.Pool)

	p1 := insertProduct(t, db.Pool, "Bracket", 3)
	p2 := insertProduct(t, db.Pool, "Valve", 5)

	body := fmt.Sprintf(`{
		"customerEmail": "a@b.com",
		"customerName": "A B",
		"branch": "X",
		"deliveryDate": "2025-01-01",
		"items": [
			{"productId": %d, "quantity": 2, "hours": 3},
			{"productId": %d, "quantity": 1, "hours": 5}
		]
	}`, p1, p2)

	rec := postJSON(t, srv, "/api/orders", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		OrderID int64  `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.NotZero(t, created.OrderID)

	assert.Equal(t, 1, countRows(t, db.Pool, "orders"))
	assert.Equal(t, 2, countRows(t, db.Pool, "order_items"))

	var orders []map[string]any
	getJSON(t, srv, "/api/orders", &orders)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, float64(created.OrderID), order["id"])
	assert.Equal(t, float64(11), order["totalHours"])
	assert.Equal(t, "2025-01-01", order["deliveryDate"])

	items := order["items"].([]any)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	assert.Equal(t, "Bracket", first["productTitle"])
	assert.Equal(t, float64(2), first["quantity"])
	assert.Contains(t, first["imageUrl"], "data:image/png;base64,")
}

func TestOrderPlacement_ValidationFailureWritesNothing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	srv := NewTestServer(db.Pool)

	insertProduct(t, db.Pool, "Bracket", 3)

	// Empty items array is rejected before any store access.
	rec := postJSON(t, srv, "/api/orders", `{
		"customerEmail": "a@b.com",
		"customerName": "A B",
		"branch": "X",
		"deliveryDate": "2025-01-01",
		"items": []
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing branch likewise.
	rec = postJSON(t, srv, "/api/orders", `{
		"customerEmail": "a@b.com",
		"customerName": "A B",
		"deliveryDate": "2025-01-01",
		"items": [{"productId": 1, "quantity": 1, "hours": 2}]
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 0, countRows(t, db.Pool, "orders"))
	assert.Equal(t, 0, countRows(t, db.Pool, "order_items"))
}

func TestOrderPlacement_AtomicRollbackOnItemFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	srv := NewTestServer(db.Pool)

	p1 := insertProduct(t, db.Pool, "Bracket", 3)

	// Second item references a product that does not exist; the foreign key
	// violation must roll back the header and the first item.
	body := fmt.Sprintf(`{
		"customerEmail": "a@b.com",
		"customerName": "A B",
		"branch": "X",
		"deliveryDate": "2025-01-01",
		"items": [
			{"productId": %d, "quantity": 2, "hours": 3},
			{"productId": 999999, "quantity": 1, "hours": 5}
		]
	}`, p1)

	rec := postJSON(t, srv, "/api/orders", body)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.NotEmpty(t, resp["error"])

	assert.Equal(t, 0, countRows(t, db.Pool, "orders"))
	assert.Equal(t, 0, countRows(t, db.Pool, "order_items"))

	var orders []map[string]any
	getJSON(t, srv, "/api/orders", &orders)
	assert.Empty(t, orders)
}

func TestListOrders_NewestFirstAndIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	srv := NewTestServer(db.Pool)

	p1 := insertProduct(t, db.Pool, "Bracket", 3)

	place := func(email string) int64 {
		body := fmt.Sprintf(`{
			"customerEmail": %q,
			"customerName": "A B",
			"branch": "X",
			"deliveryDate": "2025-01-01",
			"items": [{"productId": %d, "quantity": 1, "hours": 3}]
		}`, email, p1)

		rec := postJSON(t, srv, "/api/orders", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var created struct {
			OrderID int64 `json:"orderId"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		return created.OrderID
	}

	first := place("first@example.com")
	second := place("second@example.com")
	require.Greater(t, second, first)

	var orders []map[string]any
	getJSON(t, srv, "/api/orders", &orders)
	require.Len(t, orders, 2)

	// Newest first, tie-broken by identifier.
	assert.Equal(t, float64(second), orders[0]["id"])
	assert.Equal(t, float64(first), orders[1]["id"])

	// A second read with no intervening writes is identical.
	var again []map[string]any
	body1 := getJSON(t, srv, "/api/orders", &again).Body.String()
	body2 := getJSON(t, srv, "/api/orders", nil).Body.String()
	assert.Equal(t, body1, body2)
}
