package api

import (
	"fmt"
	"strconv"
	"time"

	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// parseID 解析路径参数 id
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// parseDate 解析 YYYY-MM-DD，空字符串返回 nil
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("%s格式错误，应为: %s", field, models.DateLayout)
	}
	return &d, nil
}

// parseOptionalUint 解析可选的数字查询参数
func parseOptionalUint(field, value string) (*uint, error) {
	if value == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("无效的%s", field)
	}
	id := uint(v)
	return &id, nil
}

// today 当前 UTC 日期
func today() time.Time {
	return models.DateOf(time.Now())
}

// DateRangeQuery 报表时间范围，缺省为本月初至今天
type DateRangeQuery struct {
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-01-31"`
}

// bindRange 解析时间范围，失败时已写入 400 响应
func bindRange(c *gin.Context, defaultStart time.Time) (models.DateRange, bool) {
	var q DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return models.DateRange{}, false
	}
	start, err := parseDate("开始日期", q.StartDate)
	if err != nil {
		BadRequest(c, err.Error())
		return models.DateRange{}, false
	}
	end, err := parseDate("结束日期", q.EndDate)
	if err != nil {
		BadRequest(c, err.Error())
		return models.DateRange{}, false
	}

	r := models.NewDateRange(defaultStart, today())
	if start != nil {
		r.Start = *start
	}
	if end != nil {
		r.End = *end
	}
	if !r.Valid() {
		BadRequest(c, "开始日期不能晚于结束日期")
		return models.DateRange{}, false
	}
	return r, true
}
