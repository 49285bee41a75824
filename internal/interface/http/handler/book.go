package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
// Handler只负责解析请求、调用应用层、返回响应,不包含业务逻辑
type BookHandler struct {
	listBooks  *appbook.ListBooksUseCase
	createBook *appbook.CreateBookUseCase
	updateBook *appbook.UpdateBookUseCase
	deleteBook *appbook.DeleteBookUseCase
	summary    *appbook.BookSummaryUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	createBook *appbook.CreateBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	summary *appbook.BookSummaryUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:  listBooks,
		createBook: createBook,
		updateBook: updateBook,
		deleteBook: deleteBook,
		summary:    summary,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  返回全部图书(按ID升序)
// @Tags         图书
// @Produce      json
// @Success      200 {array} dto.BookResponse
// @Failure      500 {object} response.ErrorBody
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.listBooks.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookList(books))
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  description为空时调用大模型生成摘要作为描述
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody "参数错误或ISBN重复"
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.createBook.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewBookResponse(b))
}

// UpdateBook 部分更新图书
// @Summary      更新图书
// @Description  只更新请求中出现的字段;available必须与当前借阅状态一致
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "要更新的字段"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, apperrors.ErrBookNotFound)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	b, err := h.updateBook.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:    id,
		Patch: req.Patch(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBookResponse(b))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  不级联删除借阅记录,历史记录中的book快照变为null
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      404 {object} response.ErrorBody
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c, apperrors.ErrBookNotFound)
	if !ok {
		return
	}

	if err := h.deleteBook.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Summary 图书AI摘要
// @Summary      图书摘要
// @Description  生成失败时summary为错误文本,状态码仍为200
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.SummaryResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /api/books/{id}/summary [get]
func (h *BookHandler) Summary(c *gin.Context) {
	id, ok := pathID(c, apperrors.ErrBookNotFound)
	if !ok {
		return
	}

	text, err := h.summary.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SummaryResponse{Summary: text})
}
