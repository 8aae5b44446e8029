package api

import (
	"sync"

	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// SettingsHandler 用户偏好设置
type SettingsHandler struct {
	email *service.EmailService
}

// NewSettingsHandler 创建设置处理器
func NewSettingsHandler(email *service.EmailService) *SettingsHandler {
	return &SettingsHandler{email: email}
}

// UpdateSettingsRequest 更新设置请求，未提供的字段保持不变
type UpdateSettingsRequest struct {
	Email                *string `json:"email" binding:"omitempty,email,max=100" example:"me@example.com"`
	Currency             *string `json:"currency" example:"USD"`
	Language             *string `json:"language" example:"en"`
	Theme                *string `json:"theme" example:"dark"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
}

// Get 获取设置
// @Summary 获取偏好设置
// @Tags 设置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	user, err := ledger().GetSettings(middleware.GetCurrentUserID(c))
	if err != nil {
		ServiceError(c, err, "获取设置失败")
		return
	}
	Success(c, user)
}

// Update 更新设置
// @Summary 更新偏好设置
// @Description 币种为 3 位代码，语言为 2 位代码，主题为 light 或 dark
// @Tags 设置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateSettingsRequest true "设置项"
// @Success 200 {object} Response{data=models.User} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	user, err := ledger().UpdateSettings(middleware.GetCurrentUserID(c), service.SettingsUpdate{
		Email:                req.Email,
		Currency:             req.Currency,
		Language:             req.Language,
		Theme:                req.Theme,
		NotificationsEnabled: req.NotificationsEnabled,
	})
	if err != nil {
		ServiceError(c, err, "更新设置失败")
		return
	}
	SuccessWithMessage(c, "更新成功", user)
}

// TestEmail 发送测试邮件到当前用户邮箱
// @Summary 发送测试邮件
// @Tags 设置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "未设置邮箱或邮件服务未启用"
// @Router /api/v1/settings/test-email [post]
func (h *SettingsHandler) TestEmail(c *gin.Context) {
	user, err := ledger().GetSettings(middleware.GetCurrentUserID(c))
	if err != nil {
		ServiceError(c, err, "获取设置失败")
		return
	}
	if user.Email == "" {
		BadRequest(c, "请先设置邮箱")
		return
	}
	if !h.email.Enabled() {
		BadRequest(c, "邮件服务未启用")
		return
	}
	if err := h.email.SendTestEmail(user.Email); err != nil {
		InternalError(c, SafeErrorMessage(err, "发送失败"))
		return
	}
	SuccessWithMessage(c, "发送成功", nil)
}

// ProvisionUser 首次访问时按令牌中的身份建档，需放在 JWTAuth 之后
func ProvisionUser() gin.HandlerFunc {
	var seen sync.Map
	return func(c *gin.Context) {
		userID := middleware.GetCurrentUserID(c)
		if userID == 0 {
			c.Next()
			return
		}
		if _, ok := seen.Load(userID); !ok {
			if _, err := ledger().EnsureUser(userID, middleware.GetCurrentUsername(c)); err != nil {
				InternalError(c, SafeErrorMessage(err, "用户初始化失败"))
				c.Abort()
				return
			}
			seen.Store(userID, struct{}{})
		}
		c.Next()
	}
}
