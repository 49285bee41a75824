package handler

import (
	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	borrow      *apploan.BorrowUseCase
	giveBack    *apploan.ReturnUseCase
	listRecords *apploan.ListRecordsUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	borrow *apploan.BorrowUseCase,
	giveBack *apploan.ReturnUseCase,
	listRecords *apploan.ListRecordsUseCase,
) *LoanHandler {
	return &LoanHandler{
		borrow:      borrow,
		giveBack:    giveBack,
		listRecords: listRecords,
	}
}

// Borrow 借书
// @Summary      借书
// @Description  创建借阅记录并把图书标记为不可借(同一事务)
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.BorrowRequest true "借阅信息"
// @Success      201 {object} dto.RecordResponse
// @Failure      400 {object} response.ErrorBody "图书不可借"
// @Failure      404 {object} response.ErrorBody "图书或用户不存在"
// @Router       /api/borrow [post]
func (h *LoanHandler) Borrow(c *gin.Context) {
	var req dto.BorrowRequest
	if !bindJSON(c, &req) {
		return
	}

	detail, err := h.borrow.Execute(c.Request.Context(), apploan.BorrowRequest{
		BookID: req.BookID,
		UserID: req.UserID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewRecordResponse(detail))
}

// Return 还书
// @Summary      还书
// @Description  关闭借阅记录并把图书标记为可借(同一事务)
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.ReturnRequest true "借阅记录"
// @Success      200 {object} dto.RecordResponse
// @Failure      400 {object} response.ErrorBody "已归还"
// @Failure      404 {object} response.ErrorBody "借阅记录不存在"
// @Router       /api/return [post]
func (h *LoanHandler) Return(c *gin.Context) {
	var req dto.ReturnRequest
	if !bindJSON(c, &req) {
		return
	}

	detail, err := h.giveBack.Execute(c.Request.Context(), req.RecordID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewRecordResponse(detail))
}

// ListRecords 借阅记录
// @Summary      借阅记录列表
// @Tags         借阅
// @Produce      json
// @Success      200 {array} dto.RecordResponse
// @Router       /api/borrow-records [get]
func (h *LoanHandler) ListRecords(c *gin.Context) {
	details, err := h.listRecords.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewRecordList(details))
}
