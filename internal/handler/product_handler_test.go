package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"gec-catalog/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Upload(ctx context.Context, upload *model.ProductUpload) (int64, error) {
	args := m.Called(ctx, upload)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductService) BulkUpload(ctx context.Context, uploads []model.ProductUpload) error {
	args := m.Called(ctx, uploads)
	return args.Error(0)
}

func (m *MockProductService) Update(ctx context.Context, id int64, upd *model.ProductUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) SetFolder(ctx context.Context, id int64, folderID *uuid.UUID) error {
	args := m.Called(ctx, id, folderID)
	return args.Error(0)
}

// newRouter mounts the handler on a chi router so URL parameters resolve.
func newProductRouter(h *ProductHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/products", h.List)
	r.Post("/api/upload-product", h.Upload)
	r.Post("/api/bulk-upload", h.BulkUpload)
	r.Put("/api/product/{id}", h.Update)
	r.Delete("/api/product/{id}", h.Delete)
	r.Put("/api/products/{id}/folder", h.SetFolder)
	return r
}

// multipartUpload builds a multipart body with one image file and form fields.
func multipartUpload(t *testing.T, fields map[string]string, fileField, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}

	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestProductHandler_List(t *testing.T) {
	mockService := new(MockProductService)
	h := NewProductHandler(mockService, zerolog.Nop())

	imageURL := "data:image/png;base64,AQ=="
	mockService.On("List", mock.Anything).Return([]model.Product{
		{ID: 1, Title: "Bracket", Hours: 12, HoursVisible: true, ImageURL: &imageURL},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	newProductRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Bracket", resp[0]["title"])
	assert.Equal(t, imageURL, resp[0]["imageUrl"])
	assert.Equal(t, true, resp[0]["hoursVisible"])
}

func TestProductHandler_Upload_Success(t *testing.T) {
	mockService := new(MockProductService)
	h := NewProductHandler(mockService, zerolog.Nop())

	mockService.On("Upload", mock.Anything, mock.AnythingOfType("*model.ProductUpload")).Return(int64(7), nil)

	body, contentType := multipartUpload(t, map[string]string{
		"title":       "Bracket",
		"description": "Mounting bracket",
		"category":    "Mechanical",
		"hours":       "12",
	}, "image", "bracket.png", []byte{0x89, 0x50})

	req := httptest.NewRequest(http.MethodPost, "/api/upload-product", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newProductRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Product uploaded successfully", resp.Message)

	upload := mockService.Calls[0].Arguments.Get(1).(*model.ProductUpload)
	assert.Equal(t, "Bracket", upload.Title)
	assert.Equal(t, 12, upload.Hours)
	assert.Equal(t, "bracket.png", upload.ImageName)
	assert.Equal(t, []byte{0x89, 0x50}, upload.ImageData)
}

func TestProductHandler_Upload_MissingImage(t *testing.T) {
	mockService := new(MockProductService)
	h := NewProductHandler(mockService, zerolog.Nop())

	body, contentType := multipartUpload(t, map[string]string{
		"title": "Bracket",
		"hours": "12",
	}, "", "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-product", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newProductRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp failureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "No image uploaded", resp.Message)
	mockService.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestProductHandler_BulkUpload_CountMismatch(t *testing.T) {
	mockService := new(MockProductService)
	h := NewProductHandler(mockService, zerolog.Nop())

	body, contentType := multipartUpload(t, map[string]string{
		"products": `[{"title":"A","hours":3},{"title":"B","hours":4}]`,
		"category": "Mechanical",
	}, "images", "a.png", []byte{0x1})

	req := httptest.NewRequest(http.MethodPost, "/api/bulk-upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newProductRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp failureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Number of products does not match number of images", resp.Message)
	mockService.AssertNotCalled(t, "BulkUpload", mock.Anything, mock.Anything)
}

func TestProductHandler_Update(t *testing.T) {
	mockService := new(MockProductService)
	h := NewProductHandler(mockService, zerolog.Nop())

	mockService.On("Update", mock.Anything, int64(5), mock.AnythingOfType("*model.ProductUpdate")).Return(nil)

	body := `{"Title":"Bracket","Description":"Updated","Hours":8,"hoursVisible":false}`
	req := httptest.NewRequest(http.MethodPut, "/api/product/5", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	newProductRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "5", resp["productId"])
}

func TestProductHandler_Update_InvalidID(t *testing.T) {
	mockService := new(MockProductService)
	h := NewProductHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/product/abc", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	newProductRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductHandler_Delete_NotFound(t *testing.T) {
	mockService := new(MockProductService)
	h := NewProductHandler(mockService, zerolog.Nop())

	mockService.On("Delete", mock.Anything, int64(99)).Return(model.NewNotFoundError("product", "99"))

	req := httptest.NewRequest(http.MethodDelete, "/api/product/99", nil)
	rec := httptest.NewRecorder()

	newProductRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_SetFolder_Detach(t *testing.T) {
	mockService := new(MockProductService)
	h := NewProductHandler(mockService, zerolog.Nop())

	mockService.On("SetFolder", mock.Anything, int64(5), (*uuid.UUID)(nil)).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/products/5/folder", bytes.NewBufferString(`{"folderId":""}`))
	rec := httptest.NewRecorder()

	newProductRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}
