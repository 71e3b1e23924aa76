// collections.go
//
// Collection lifecycle routes: create, list, delete, upload, index build,
// query. Handlers stay thin; all state coordination lives in the service.

package handlers

import (
	"fmt"
	"io"

	"github.com/docuchat/docuchat/internal/services"
	"github.com/docuchat/docuchat/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// CollectionsHandler handles collection routes
type CollectionsHandler struct {
	Service *services.RAGService
}

// CreateCollectionRequest is the body of POST /api/collections
type CreateCollectionRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// QueryRequest is the body of POST /api/collections/:id/query
type QueryRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// ListCollections handles GET /api/collections
// @Summary List collections
// @Description List all active document collections
// @Tags Collections
// @Produce json
// @Success 200 {array} models.Collection
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /collections [get]
func (h *CollectionsHandler) ListCollections(c *fiber.Ctx) error {
	colls, err := h.Service.ListCollections()
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, colls, fiber.StatusOK)
}

// CreateCollection handles POST /api/collections
// @Summary Create a collection
// @Description Create a new named document collection
// @Tags Collections
// @Accept json
// @Produce json
// @Param request body CreateCollectionRequest true "Collection to create"
// @Success 201 {object} models.Collection
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /collections [post]
func (h *CollectionsHandler) CreateCollection(c *fiber.Ctx) error {
	var req CreateCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "createCollection")
	}

	coll, err := h.Service.CreateCollection(req.Name, req.Description, req.Metadata)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, coll, fiber.StatusCreated)
}

// DeleteCollection handles DELETE /api/collections/:id
// @Summary Delete a collection
// @Description Cascading delete of a collection, its documents, stored files and index
// @Tags Collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /collections/{id} [delete]
func (h *CollectionsHandler) DeleteCollection(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.Service.DeleteCollection(id); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.Map{
		"message": "Collection deleted",
		"ok":      true,
	}, fiber.StatusOK)
}

// UploadDocuments handles POST /api/collections/:id/documents
// @Summary Upload documents
// @Description Upload one or more files into a collection
// @Tags Collections
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Collection ID"
// @Param files formData file true "Files to upload"
// @Success 200 {object} services.UploadResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /collections/{id}/documents [post]
func (h *CollectionsHandler) UploadDocuments(c *fiber.Ctx) error {
	id := c.Params("id")

	files, err := parseMultipartFiles(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "uploadDocuments")
	}

	result, err := h.Service.UploadDocuments(id, files)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// BuildIndex handles POST /api/collections/:id/index
// @Summary Build the collection index
// @Description Ingest all stored documents of the collection into its retrieval index
// @Tags Collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} services.IngestResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /collections/{id}/index [post]
func (h *CollectionsHandler) BuildIndex(c *fiber.Ctx) error {
	id := c.Params("id")

	result, err := h.Service.BuildIndex(c.UserContext(), id)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// QueryCollection handles POST /api/collections/:id/query
// @Summary Query a collection
// @Description Run a retrieval-augmented query against the collection's index
// @Tags Collections
// @Accept json
// @Produce json
// @Param id path string true "Collection ID"
// @Param request body QueryRequest true "Query"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /collections/{id}/query [post]
func (h *CollectionsHandler) QueryCollection(c *fiber.Ctx) error {
	id := c.Params("id")

	var req QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "queryCollection")
	}

	result, err := h.Service.Query(c.UserContext(), id, req.Query, req.TopK)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	response := result.Answer
	if result.ErrorMessage != "" {
		response = "Error processing query: " + result.ErrorMessage
	}

	return utils.SuccessResponse(c, fiber.Map{
		"collection": result.CollectionName,
		"query":      result.Query,
		"response":   response,
		"sources":    result.Sources,
		"indexed":    result.Indexed,
	}, fiber.StatusOK)
}

// parseMultipartFiles reads the uploaded files of a multipart request.
func parseMultipartFiles(c *fiber.Ctx) ([]services.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("expected multipart form data")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, fmt.Errorf("no files provided under 'files'")
	}

	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %s", fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %s", fh.Filename)
		}
		files = append(files, services.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}
