package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"directory-backend/internal/domains/directory/model"
	"directory-backend/internal/domains/directory/service"
	"directory-backend/internal/shared/response"
)

// =====================================================
// DIRECTORY HANDLER
// =====================================================

type DirectoryHandler struct {
	directoryService service.ServiceInterface
}

func NewDirectoryHandler(directoryService service.ServiceInterface) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
	}
}

// =====================================================
// ROSTER ENDPOINTS
// =====================================================

// LoadDirectory rebuilds the roster from the best available source
// POST /api/v1/directory/load
func (h *DirectoryHandler) LoadDirectory(c *gin.Context) {
	roster := h.directoryService.LoadDirectory(c.Request.Context())
	respondSuccess(c, http.StatusOK, roster.Summary())
}

// GetVisiblePage returns the current page of the current filter
// GET /api/v1/directory
func (h *DirectoryHandler) GetVisiblePage(c *gin.Context) {
	page := h.directoryService.VisiblePage()
	response.SuccessWithMeta(c, http.StatusOK, page, &response.Meta{
		Page:       page.CurrentPage,
		Limit:      page.PageSize,
		Total:      page.TotalEntries,
		TotalPages: page.TotalPages,
	})
}

// Query computes any page without changing the view state
// GET /api/v1/directory/query?letter=B&page=2
func (h *DirectoryHandler) Query(c *gin.Context) {
	// Step 1: Bind query params
	var req model.QueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, err.Error())
		return
	}

	// Step 2: Validate (fills defaults)
	if err := req.Validate(); err != nil {
		respondValidationError(c, model.ErrCodeInvalidLetter, err)
		return
	}

	letter, _ := model.ParseLetter(req.Letter)
	respondSuccess(c, http.StatusOK, h.directoryService.Query(letter, req.Page))
}

// =====================================================
// VIEW STATE ENDPOINTS
// =====================================================

// SetLetterFilter changes the letter filter and resets to page 1
// PUT /api/v1/directory/filter
func (h *DirectoryHandler) SetLetterFilter(c *gin.Context) {
	// Step 1: Bind request body
	var req model.SetLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, err.Error())
		return
	}

	// Step 2: Validate request
	if err := req.Validate(); err != nil {
		respondValidationError(c, model.ErrCodeInvalidLetter, err)
		return
	}

	// Step 3: Call service
	if err := h.directoryService.SetLetterFilter(req.Letter); err != nil {
		statusCode, errCode := mapDirectoryError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, h.directoryService.VisiblePage())
}

// GoToPage moves to a page; out of range pages leave the view unchanged
// PUT /api/v1/directory/page
func (h *DirectoryHandler) GoToPage(c *gin.Context) {
	var req model.GoToPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		err := model.NewInvalidPageError()
		respondError(c, http.StatusBadRequest, err.Code, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, model.ErrCodeInvalidPage, err)
		return
	}

	moved := h.directoryService.GoToPage(*req.Page)
	respondSuccess(c, http.StatusOK, model.GoToPageResponse{
		Moved: moved,
		Page:  h.directoryService.VisiblePage(),
	})
}

// =====================================================
// SELECTION ENDPOINTS
// =====================================================

// SelectEntry opens the profile overlay for an entry of the full roster.
// An unknown ordinal is not an error: found=false.
// POST /api/v1/directory/entries/:ordinal/select
func (h *DirectoryHandler) SelectEntry(c *gin.Context) {
	// Step 1: Parse ordinal
	raw := c.Param("ordinal")
	ordinal, err := strconv.Atoi(raw)
	if err != nil {
		statusCode, errCode := mapDirectoryError(model.NewInvalidOrdinalError(raw))
		respondError(c, statusCode, errCode, "Invalid entry id")
		return
	}

	// Step 2: Resolve
	profile, found := h.directoryService.SelectEntry(c.Request.Context(), ordinal)
	respondSuccess(c, http.StatusOK, model.SelectEntryResponse{
		Found:   found,
		Profile: profile,
	})
}

// =====================================================
// EXPORT
// =====================================================

// ExportRoster downloads the filtered roster as xlsx
// GET /api/v1/directory/export?letter=B
func (h *DirectoryHandler) ExportRoster(c *gin.Context) {
	letter, err := model.ParseLetter(c.DefaultQuery("letter", string(model.LetterAll)))
	if err != nil {
		statusCode, errCode := mapDirectoryError(model.NewInvalidLetterError(c.Query("letter")))
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	f, err := h.directoryService.ExportRoster(letter)
	if err != nil {
		log.Error().Err(err).Msg("[DIRECTORY] Export failed")
		statusCode, errCode := mapDirectoryError(err)
		respondError(c, statusCode, errCode, "Failed to export directory")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("directory_%s_%s.xlsx", letter, time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("[DIRECTORY] Failed to stream export")
	}
}

// =====================================================
// RESPONSE HELPERS
// =====================================================

func respondSuccess(c *gin.Context, statusCode int, data interface{}) {
	response.Success(c, statusCode, data)
}

func respondError(c *gin.Context, statusCode int, code, message string) {
	response.ErrorResponse(c, statusCode, code, message)
}

// respondValidationError keeps the per-field ozzo messages in details
func respondValidationError(c *gin.Context, code string, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, code, "Validation failed", err)
}

func mapDirectoryError(err error) (int, string) {
	var dirErr *model.DirectoryError
	if errors.As(err, &dirErr) {
		switch dirErr.Code {
		case model.ErrCodeInvalidLetter, model.ErrCodeInvalidPage,
			model.ErrCodeInvalidOrdinal, model.ErrCodeInvalidRequest:
			return http.StatusBadRequest, dirErr.Code
		case model.ErrCodeExportFailed:
			return http.StatusInternalServerError, dirErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
