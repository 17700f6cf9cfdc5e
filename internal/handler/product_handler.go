package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"gec-catalog/internal/model"
	"gec-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxUploadBytes bounds a multipart upload request body.
const maxUploadBytes = 32 << 20

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Error retrieving products", h.logger)
		return
	}

	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

// Upload handles POST /api/upload-product: one image plus metadata fields
// as a multipart form.
func (h *ProductHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid multipart form", "", h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "No image uploaded", "", h.logger)
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Failed to read image", "", h.logger)
		return
	}

	hours, err := strconv.Atoi(r.FormValue("hours"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "hours must be an integer", "", h.logger)
		return
	}

	upload := &model.ProductUpload{
		Title:            r.FormValue("title"),
		Description:      r.FormValue("description"),
		Category:         r.FormValue("category"),
		Type:             r.FormValue("type"),
		Subcategory:      r.FormValue("subcategory"),
		Hours:            hours,
		ImageData:        imageData,
		ImageName:        header.Filename,
		ImageContentType: header.Header.Get("Content-Type"),
	}

	if folderID := r.FormValue("folderId"); folderID != "" {
		parsed, err := uuid.Parse(folderID)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "Invalid folder id", "", h.logger)
			return
		}
		upload.FolderID = &parsed
	}

	if _, err := h.service.Upload(r.Context(), upload); err != nil {
		writeServiceError(w, err, "Error uploading product", h.logger)
		return
	}

	writeSuccess(w, "Product uploaded successfully")
}

// BulkUpload handles POST /api/bulk-upload: an images file array paired
// positionally with a JSON products array, sharing category fields.
func (h *ProductHandler) BulkUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid multipart form", "", h.logger)
		return
	}

	images := r.MultipartForm.File["images"]
	if len(images) == 0 {
		writeFailure(w, http.StatusBadRequest, "No images uploaded", "", h.logger)
		return
	}

	var products []model.BulkProduct
	if err := json.Unmarshal([]byte(r.FormValue("products")), &products); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid products payload", "", h.logger)
		return
	}

	if len(products) != len(images) {
		writeFailure(w, http.StatusBadRequest, "Number of products does not match number of images", "", h.logger)
		return
	}

	category := r.FormValue("category")
	productType := r.FormValue("type")
	subcategory := r.FormValue("subcategory")

	uploads := make([]model.ProductUpload, len(products))
	for i, p := range products {
		imageData, name, contentType, err := readUpload(images[i])
		if err != nil {
			writeFailure(w, http.StatusBadRequest, fmt.Sprintf("Failed to read image %d", i), "", h.logger)
			return
		}

		hours := p.Hours
		if hours == 0 {
			hours = 12
		}

		uploads[i] = model.ProductUpload{
			Title:            p.Title,
			Description:      p.Description,
			Category:         category,
			Type:             productType,
			Subcategory:      subcategory,
			Hours:            hours,
			ImageData:        imageData,
			ImageName:        name,
			ImageContentType: contentType,
		}
	}

	if err := h.service.BulkUpload(r.Context(), uploads); err != nil {
		writeServiceError(w, err, "Error uploading products", h.logger)
		return
	}

	writeSuccess(w, "Products uploaded successfully")
}

// Update handles PUT /api/product/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid product id", "", h.logger)
		return
	}

	var upd model.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", "", h.logger)
		return
	}

	if err := h.service.Update(r.Context(), id, &upd); err != nil {
		writeServiceError(w, err, "Error updating product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		ProductID string `json:"productId"`
	}{true, "Product updated successfully", strconv.FormatInt(id, 10)})
}

// Delete handles DELETE /api/product/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid product id", "", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Error deleting product", h.logger)
		return
	}

	writeSuccess(w, "Product deleted successfully")
}

// SetFolder handles PUT /api/products/{id}/folder.
func (h *ProductHandler) SetFolder(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid product id", "", h.logger)
		return
	}

	var body struct {
		FolderID *string `json:"folderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", "", h.logger)
		return
	}

	var folderID *uuid.UUID
	if body.FolderID != nil && *body.FolderID != "" {
		parsed, err := uuid.Parse(*body.FolderID)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "Invalid folder id", "", h.logger)
			return
		}
		folderID = &parsed
	}

	if err := h.service.SetFolder(r.Context(), id, folderID); err != nil {
		writeServiceError(w, err, "Error updating product folder", h.logger)
		return
	}

	writeSuccess(w, "Product folder updated successfully")
}

// productID extracts and parses the {id} route parameter.
func productID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// readUpload reads one multipart file into memory.
func readUpload(fh *multipart.FileHeader) (data []byte, name, contentType string, err error) {
	file, err := fh.Open()
	if err != nil {
		return nil, "", "", err
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", "", err
	}

	return data, fh.Filename, fh.Header.Get("Content-Type"), nil
}
