package handlers

import (
	"io"
	"math"
	"mime/multipart"
	"strconv"
	"strings"

	"controle-financeiro/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const couldNotProcess = "Could not process document"

// uploadFields are the multipart field names accepted for receipt files.
var uploadFields = []string{"file", "comprovante"}

type DocumentHandler struct {
	extractions   ExtractionService
	maxUploadSize int64
	logger        *zap.Logger
}

func NewDocumentHandler(extractions ExtractionService, maxUploadSize int64, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		extractions:   extractions,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// ExtractURL godoc
// @Summary Extract a receipt page
// @Description Fetch an NFC-e receipt page, categorize its items and optionally save them as purchases
// @Tags extractions
// @Accept json
// @Produce json
// @Param request body dto.ExtractURLRequest true "Receipt URL"
// @Security Bearer
// @Success 200 {object} dto.ExtractionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/extractions/url [post]
func (h *DocumentHandler) ExtractURL(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ExtractURLRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.extractions.ExtractURL(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, couldNotProcess)
	}
	return c.JSON(resp)
}

// ExtractImage godoc
// @Summary Extract a receipt image
// @Description Read a receipt photo or PDF. Returns the items, or a lookup link when the receipt carries an access key.
// @Tags extractions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt image or PDF (field name file or comprovante)"
// @Param save formData bool false "Save items as purchases"
// @Security Bearer
// @Success 200 {object} dto.ExtractionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/extractions/image [post]
func (h *DocumentHandler) ExtractImage(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var file *multipart.FileHeader
	for _, field := range uploadFields {
		if fh, err := c.FormFile(field); err == nil {
			file = fh
			break
		}
	}
	if file == nil {
		return badRequest(c, "File is required")
	}
	if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
		return badRequest(c, "File is too large")
	}

	save := false
	if raw := strings.TrimSpace(c.FormValue("save")); raw != "" {
		if save, err = strconv.ParseBool(raw); err != nil {
			return badRequest(c, "save must be true or false")
		}
	}

	src, err := file.Open()
	if err != nil {
		return badRequest(c, "Failed to open file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.limit()))
	if err != nil {
		return badRequest(c, "Failed to read file")
	}

	resp, err := h.extractions.ExtractImage(c.UserContext(), userID, data, file.Filename, save)
	if err != nil {
		return respondError(c, h.logger, err, couldNotProcess)
	}
	return c.JSON(resp)
}

// ExtractAccessKey godoc
// @Summary Resolve an access key
// @Description Turn a typed-in 44-digit NF-e access key into the tax authority lookup URL
// @Tags extractions
// @Accept json
// @Produce json
// @Param request body dto.AccessKeyRequest true "Access key"
// @Security Bearer
// @Success 200 {object} dto.ExtractionResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/extractions/access-key [post]
func (h *DocumentHandler) ExtractAccessKey(c *fiber.Ctx) error {
	var req dto.AccessKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.extractions.ExtractAccessKey(&req)
	if err != nil {
		return respondError(c, h.logger, err, couldNotProcess)
	}
	return c.JSON(resp)
}

// ListDocuments godoc
// @Summary List saved extractions
// @Description Get the user's ingestion log, newest first
// @Tags extractions
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.DocumentResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/documents [get]
func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	docs, err := h.extractions.Documents(c.UserContext(), userID, limit, offset)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list documents")
	}

	return c.JSON(docs)
}

func (h *DocumentHandler) limit() int64 {
	if h.maxUploadSize > 0 {
		return h.maxUploadSize
	}
	return math.MaxInt64
}
