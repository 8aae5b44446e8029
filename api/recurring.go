package api

import (
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RecurringHandler 周期交易处理器
type RecurringHandler struct{}

// NewRecurringHandler 创建周期交易处理器
func NewRecurringHandler() *RecurringHandler {
	return &RecurringHandler{}
}

// RecurringRequest 创建/更新周期交易请求
type RecurringRequest struct {
	AccountID         uint                   `json:"account_id" binding:"required" example:"1"`
	TransferAccountID *uint                  `json:"transfer_account_id"`
	CategoryID        *uint                  `json:"category_id"`
	TransactionType   models.TransactionType `json:"transaction_type" example:"EXPENSE"`
	Amount            decimal.Decimal        `json:"amount" swaggertype:"number" example:"15.99"`
	Description       string                 `json:"description" binding:"required,max=200" example:"Netflix"`
	Frequency         models.Frequency       `json:"frequency" binding:"required" example:"MONTHLY"`
	StartDate         string                 `json:"start_date" example:"2024-01-31"`
	EndDate           string                 `json:"end_date" example:"2024-12-31"`
}

func (r *RecurringRequest) model() (*models.RecurringTransaction, error) {
	start, err := parseDate("开始日期", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("结束日期", r.EndDate)
	if err != nil {
		return nil, err
	}
	m := &models.RecurringTransaction{
		AccountID:         r.AccountID,
		TransferAccountID: r.TransferAccountID,
		CategoryID:        r.CategoryID,
		TransactionType:   r.TransactionType,
		Amount:            r.Amount,
		Description:       r.Description,
		Frequency:         r.Frequency,
		EndDate:           end,
	}
	if start != nil {
		m.StartDate = *start
	}
	return m, nil
}

// Create 创建周期交易
// @Summary 创建周期交易
// @Description 首次到期日为开始日期（缺省为今天），按月/年的模板以开始日期为锚点，短月取月末
// @Tags 周期交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecurringRequest true "周期交易信息"
// @Success 200 {object} Response{data=models.RecurringTransaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/recurring [post]
func (h *RecurringHandler) Create(c *gin.Context) {
	var req RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	r, err := req.model()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := ledger().CreateRecurring(middleware.GetCurrentUserID(c), r); err != nil {
		ServiceError(c, err, "创建周期交易失败")
		return
	}
	SuccessWithMessage(c, "创建成功", r)
}

// List 列出周期交易
// @Summary 获取周期交易列表
// @Tags 周期交易
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态 ACTIVE/PAUSED/CANCELLED/COMPLETED"
// @Success 200 {object} Response{data=[]models.RecurringTransaction} "获取成功"
// @Router /api/v1/recurring [get]
func (h *RecurringHandler) List(c *gin.Context) {
	status := models.RecurringStatus(c.Query("status"))
	list, err := ledger().ListRecurring(middleware.GetCurrentUserID(c), status)
	if err != nil {
		ServiceError(c, err, "获取周期交易失败")
		return
	}
	Success(c, list)
}

// Get 获取周期交易
// @Summary 获取周期交易详情
// @Tags 周期交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "周期交易ID"
// @Success 200 {object} Response{data=models.RecurringTransaction} "获取成功"
// @Failure 404 {object} Response "周期交易不存在"
// @Router /api/v1/recurring/{id} [get]
func (h *RecurringHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r, err := ledger().GetRecurring(middleware.GetCurrentUserID(c), id)
	if err != nil {
		ServiceError(c, err, "获取周期交易失败")
		return
	}
	Success(c, r)
}

// Update 更新周期交易
// @Summary 更新周期交易
// @Tags 周期交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "周期交易ID"
// @Param request body RecurringRequest true "周期交易信息"
// @Success 200 {object} Response{data=models.RecurringTransaction} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "周期交易不存在"
// @Router /api/v1/recurring/{id} [put]
func (h *RecurringHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	in, err := req.model()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	r, err := ledger().UpdateRecurring(middleware.GetCurrentUserID(c), id, in)
	if err != nil {
		ServiceError(c, err, "更新周期交易失败")
		return
	}
	SuccessWithMessage(c, "更新成功", r)
}

// Delete 删除周期交易
// @Summary 删除周期交易
// @Description 已生成的交易保留，仅解除关联
// @Tags 周期交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "周期交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "周期交易不存在"
// @Router /api/v1/recurring/{id} [delete]
func (h *RecurringHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ledger().DeleteRecurring(middleware.GetCurrentUserID(c), id); err != nil {
		ServiceError(c, err, "删除周期交易失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

type recurringTransition func(svc *service.LedgerService, userID, id uint) (*models.RecurringTransaction, error)

func (h *RecurringHandler) transition(c *gin.Context, fn recurringTransition, message string) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r, err := fn(ledger(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		ServiceError(c, err, "操作失败")
		return
	}
	SuccessWithMessage(c, message, r)
}

// Pause 暂停周期交易
// @Summary 暂停周期交易
// @Tags 周期交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "周期交易ID"
// @Success 200 {object} Response{data=models.RecurringTransaction} "已暂停"
// @Failure 400 {object} Response "当前状态不能暂停"
// @Router /api/v1/recurring/{id}/pause [post]
func (h *RecurringHandler) Pause(c *gin.Context) {
	h.transition(c, (*service.LedgerService).PauseRecurring, "已暂停")
}

// Resume 恢复周期交易
// @Summary 恢复周期交易
// @Description 暂停期间错过的到期日直接跳过，不补生成
// @Tags 周期交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "周期交易ID"
// @Success 200 {object} Response{data=models.RecurringTransaction} "已恢复"
// @Failure 400 {object} Response "当前状态不能恢复"
// @Router /api/v1/recurring/{id}/resume [post]
func (h *RecurringHandler) Resume(c *gin.Context) {
	h.transition(c, (*service.LedgerService).ResumeRecurring, "已恢复")
}

// Cancel 取消周期交易
// @Summary 取消周期交易
// @Tags 周期交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "周期交易ID"
// @Success 200 {object} Response{data=models.RecurringTransaction} "已取消"
// @Failure 400 {object} Response "已取消"
// @Router /api/v1/recurring/{id}/cancel [post]
func (h *RecurringHandler) Cancel(c *gin.Context) {
	h.transition(c, (*service.LedgerService).CancelRecurring, "已取消")
}
