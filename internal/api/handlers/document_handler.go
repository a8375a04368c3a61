package handlers

import (
	"io"
	"net/url"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	docService *service.DocumentService
	logger     *zap.Logger
}

func NewDocumentHandler(docService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// ProcessDocuments godoc
// @Summary Upload and process financial documents
// @Description Extracts labeled metrics from one or more PDF or spreadsheet files; replaces the session's document set
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "PDF, XLS, or XLSX files (multiple allowed)"
// @Success 200 {object} dto.ProcessResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/documents/process [post]
func (h *DocumentHandler) ProcessDocuments(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Multipart form is required",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please upload one or more PDF/Excel files first",
		})
	}

	var uploads []service.Upload
	var opened []io.Closer
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			h.logger.Error("failed to open uploaded file",
				zap.String("file", fh.Filename),
				zap.Error(err),
			)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to open uploaded file: " + fh.Filename,
			})
		}
		opened = append(opened, src)
		uploads = append(uploads, service.Upload{FileName: fh.Filename, Reader: src})
	}

	resp := h.docService.ProcessUploads(c.Context(), uploads)
	return c.JSON(resp)
}

// ListDocuments godoc
// @Summary List processed documents
// @Produce json
// @Success 200 {array} models.Document
// @Router /api/v1/documents [get]
func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	return c.JSON(h.docService.ListDocuments())
}

// DocumentMetrics godoc
// @Summary Extracted metric mapping for one document
// @Produce json
// @Param name path string true "Uploaded file name"
// @Success 200 {object} models.MetricMapping
// @Failure 404 {object} map[string]string
// @Router /api/v1/documents/{name}/metrics [get]
func (h *DocumentHandler) DocumentMetrics(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document name",
		})
	}

	mapping, ok := h.docService.DocumentMetrics(name)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}
	return c.JSON(mapping)
}

// ResetStore godoc
// @Summary Clear all processed documents
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/reset [post]
func (h *DocumentHandler) ResetStore(c *fiber.Ctx) error {
	h.docService.Reset()
	return c.JSON(fiber.Map{"status": "reset"})
}
