package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/infrastructure/storage"
	"library-backend/internal/shared/request"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BookHandler struct {
	service         service.ServiceInterface
	defaultPageSize int
}

func NewBookHandler(svc service.ServiceInterface, defaultPageSize int) *BookHandler {
	return &BookHandler{service: svc, defaultPageSize: defaultPageSize}
}

// ════════════════════════════════════════════════════════════════
// POST /v1/books (multipart/form-data)
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Create(c *gin.Context) {
	in, closeCover, ok := bindBookInput(c)
	if !ok {
		return
	}
	defer closeCover()

	resp, err := h.service.AddBook(c.Request.Context(), in)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	log.Info().Str("book_id", resp.ID.String()).Str("title", resp.Title).Msg("book created")
	response.Success(c, http.StatusCreated, resp)
}

// ════════════════════════════════════════════════════════════════
// PUT /v1/books/:id (multipart/form-data)
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	in, closeCover, ok := bindBookInput(c)
	if !ok {
		return
	}
	defer closeCover()

	resp, err := h.service.UpdateBook(c.Request.Context(), id, in)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ════════════════════════════════════════════════════════════════
// DELETE /v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ════════════════════════════════════════════════════════════════
// READ
// ════════════════════════════════════════════════════════════════

// GET /v1/books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GET /v1/books?page=&page_size=
func (h *BookHandler) List(c *gin.Context) {
	p, ok := request.Pagination(c, h.defaultPageSize)
	if !ok {
		return
	}

	result, err := h.service.GetBooks(c.Request.Context(), p)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paged(c, *result)
}

// GET /v1/books/all
func (h *BookHandler) GetAll(c *gin.Context) {
	books, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, books)
}

// GET /v1/books/search?title=&description=&author=&genre=&page=&page_size=
func (h *BookHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, ok := request.Pagination(c, h.defaultPageSize)
	if !ok {
		return
	}

	result, err := h.service.Search(c.Request.Context(), req, p)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paged(c, *result)
}

// GET /v1/books/recent
func (h *BookHandler) Recent(c *gin.Context) {
	p, ok := request.Pagination(c, h.defaultPageSize)
	if !ok {
		return
	}

	result, err := h.service.GetLastTwoWeeks(c.Request.Context(), p)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paged(c, *result)
}

// GET /v1/books/count
func (h *BookHandler) Count(c *gin.Context) {
	n, err := h.service.GetBooksCount(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.CountResponse{Count: n})
}

// GET /v1/books/:id/quantity-check
func (h *BookHandler) QuantityCheck(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	allReturned, err := h.service.CompareBookQuantity(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.QuantityCheckResponse{BookID: id, AllReturned: allReturned})
}

// GET /v1/books/export
func (h *BookHandler) Export(c *gin.Context) {
	f, err := h.service.ExportCatalog(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("catalog_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", excelContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("failed to stream catalog export")
	}
}

// bindBookInput reads the form fields and the optional "cover" part.
// The returned func closes the cover stream and is always safe to call.
func bindBookInput(c *gin.Context) (model.BookInput, func(), bool) {
	noop := func() {}

	var in model.BookInput
	if err := c.ShouldBind(&in); err != nil {
		response.BadRequest(c, err.Error())
		return in, noop, false
	}

	fh, err := c.FormFile("cover")
	if errors.Is(err, http.ErrMissingFile) {
		return in, noop, true
	}
	if err != nil {
		response.BadRequest(c, "invalid cover upload")
		return in, noop, false
	}

	cover, closeFn, err := openCover(fh)
	if err != nil {
		log.Error().Err(err).Str("file_name", fh.Filename).Msg("failed to open cover upload")
		response.BadRequest(c, "invalid cover upload")
		return in, noop, false
	}

	in.Cover = cover
	return in, closeFn, true
}

func openCover(fh *multipart.FileHeader) (*storage.File, func(), error) {
	src, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}

	return &storage.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     src,
	}, func() { _ = src.Close() }, nil
}
