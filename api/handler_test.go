package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountColumns = []string{
	"id", "user_id", "name", "account_type", "opening_balance", "balance",
	"currency", "is_default", "icon", "color", "is_archived", "created_at", "updated_at",
}

func TestAccountHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(1, 1, "现金", "CASH", "100.00", "80.50", "USD", true, "", "", false, now, now).
			AddRow(2, 1, "招商银行", "BANK", "0.00", "1200.00", "USD", false, "", "", false, now, now))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/accounts", NewAccountHandler().List)

	w := doRequest(router, "GET", "/accounts", "")
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Data []struct {
			Name      string `json:"name"`
			Balance   string `json:"balance"`
			IsDefault bool   `json:"is_default"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "现金", resp.Data[0].Name)
	assert.Equal(t, "80.5", resp.Data[0].Balance)
	assert.True(t, resp.Data[0].IsDefault)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(sqlmock.NewRows(accountColumns))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/accounts/:id", NewAccountHandler().Get)

	w := doRequest(router, "GET", "/accounts/99", "")
	assert.Equal(t, 404, w.Code)
	assert.Contains(t, decodeMessage(t, w), "账户")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `accounts`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/accounts", NewAccountHandler().Create)

	w := doRequest(router, "POST", "/accounts", `{"name":"现金","account_type":"CASH","opening_balance":"100.50"}`)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "创建成功", decodeMessage(t, w))
	data := decodeData(t, w)
	assert.Equal(t, "100.5", data["balance"])
	assert.Equal(t, "USD", data["currency"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountHandler_Create_Invalid(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/accounts", NewAccountHandler().Create)

	// 缺少名称
	w := doRequest(router, "POST", "/accounts", `{"account_type":"CASH"}`)
	assert.Equal(t, 400, w.Code)

	// 无效的账户类型在服务层校验，不落库
	w = doRequest(router, "POST", "/accounts", `{"name":"x","account_type":"GOLD"}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, decodeMessage(t, w), "无效的账户类型")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlers_InvalidID(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/transactions/:id", NewTransactionHandler().Get)
	router.DELETE("/budgets/:id", NewBudgetHandler().Delete)
	router.POST("/recurring/:id/pause", NewRecurringHandler().Pause)

	for _, tc := range []struct{ method, path string }{
		{"GET", "/transactions/abc"},
		{"DELETE", "/budgets/0"},
		{"POST", "/recurring/-1/pause"},
	} {
		w := doRequest(router, tc.method, tc.path, "")
		assert.Equal(t, 400, w.Code, tc.path)
		assert.Equal(t, "无效的ID", decodeMessage(t, w))
	}
}

func TestTransactionHandler_Create_InvalidDate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/transactions", NewTransactionHandler().Create)

	body := `{"account_id":1,"amount":"10","transaction_type":"EXPENSE","date":"2024/01/15"}`
	w := doRequest(router, "POST", "/transactions", body)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, decodeMessage(t, w), "日期格式错误")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_List_InvalidFilter(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/transactions", NewTransactionHandler().List)

	w := doRequest(router, "GET", "/transactions?account_id=x", "")
	assert.Equal(t, 400, w.Code)
	w = doRequest(router, "GET", "/transactions?start_date=yesterday", "")
	assert.Equal(t, 400, w.Code)
}

func TestBudgetHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `budgets`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.DELETE("/budgets/:id", NewBudgetHandler().Delete)

	w := doRequest(router, "DELETE", "/budgets/5", "")
	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalHandler_Contribute_Invalid(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/goals/:id/contribute", NewGoalHandler(nil).Contribute)

	w := doRequest(router, "POST", "/goals/1/contribute", `{"amount":"-5"}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, decodeMessage(t, w), "存入金额")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsHandler_Update_Invalid(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/settings", NewSettingsHandler(nil).Update)

	w := doRequest(router, "PUT", "/settings", `{"email":"not-an-email"}`)
	assert.Equal(t, 400, w.Code)
}

func TestReportHandler_InvalidParams(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	h := NewReportHandler()
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/reports/monthly-trend", h.MonthlyTrend)
	router.GET("/reports/cash-flow", h.CashFlow)
	router.GET("/charts/categories", h.CategoryChart)

	cases := map[string]string{
		"/reports/monthly-trend?months=0":                               "months",
		"/reports/monthly-trend?months=25":                              "months",
		"/reports/cash-flow?start_date=2024-02-01&end_date=2024-01-01": "开始日期不能晚于结束日期",
		"/charts/categories?type=TRANSFER":                              "type",
	}
	for path, msg := range cases {
		w := doRequest(router, "GET", path, "")
		assert.Equal(t, 400, w.Code, path)
		assert.Contains(t, decodeMessage(t, w), msg, path)
	}
}

func TestExportHandler_InvalidParams(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	h := NewExportHandler()
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/transactions", h.Transactions)
	router.GET("/export/report/:type", h.Report)

	w := doRequest(router, "GET", "/export/transactions?format=pdf", "")
	assert.Equal(t, 400, w.Code)

	w = doRequest(router, "GET", "/export/report/balance-sheet", "")
	assert.Equal(t, 404, w.Code)
	assert.Contains(t, decodeMessage(t, w), "balance-sheet")
}
