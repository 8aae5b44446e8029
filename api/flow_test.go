package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newFlowRouter(userID uint) *gin.Engine {
	router := gin.New()
	router.Use(setUserIDMiddleware(userID), ProvisionUser())

	accounts := NewAccountHandler()
	router.POST("/accounts", accounts.Create)
	router.GET("/accounts/:id", accounts.Get)
	router.DELETE("/accounts/:id", accounts.Delete)
	router.POST("/accounts/:id/reconcile", accounts.Reconcile)

	categories := NewCategoryHandler()
	router.POST("/categories", categories.Create)

	transactions := NewTransactionHandler()
	router.GET("/transactions", transactions.List)
	router.POST("/transactions", transactions.Create)
	router.PUT("/transactions/:id", transactions.Update)
	router.DELETE("/transactions/:id", transactions.Delete)

	reports := NewReportHandler()
	router.GET("/reports/expense-summary", reports.ExpenseSummary)
	router.GET("/reports/cash-flow", reports.CashFlow)
	router.GET("/charts/categories", reports.CategoryChart)

	settings := NewSettingsHandler(nil)
	router.GET("/settings", settings.Get)
	router.PUT("/settings", settings.Update)

	export := NewExportHandler()
	router.GET("/export/transactions", export.Transactions)
	router.GET("/export/report/:type", export.Report)
	return router
}

func createID(t *testing.T, router *gin.Engine, path, body string) uint {
	t.Helper()
	w := doRequest(router, "POST", path, body)
	require.Equal(t, 200, w.Code, w.Body.String())
	return uint(decodeData(t, w)["id"].(float64))
}

func accountBalance(t *testing.T, router *gin.Engine, id uint) string {
	t.Helper()
	w := doRequest(router, "GET", fmt.Sprintf("/accounts/%d", id), "")
	require.Equal(t, 200, w.Code, w.Body.String())
	return decimal.RequireFromString(decodeData(t, w)["balance"].(string)).StringFixed(2)
}

func TestTransactionFlow_BalanceFollowsEdits(t *testing.T) {
	setupSQLiteDB(t)
	router := newFlowRouter(1)

	accountID := createID(t, router, "/accounts", `{"name":"钱包","account_type":"CASH","opening_balance":"100"}`)
	txID := createID(t, router, "/transactions",
		fmt.Sprintf(`{"account_id":%d,"amount":"30","transaction_type":"EXPENSE","date":"2024-01-15"}`, accountID))
	assert.Equal(t, "70.00", accountBalance(t, router, accountID))

	// 30 改为 50，余额为 50 而不是 20
	w := doRequest(router, "PUT", fmt.Sprintf("/transactions/%d", txID),
		fmt.Sprintf(`{"account_id":%d,"amount":"50","transaction_type":"EXPENSE","date":"2024-01-15"}`, accountID))
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Equal(t, "50.00", accountBalance(t, router, accountID))

	w = doRequest(router, "GET", fmt.Sprintf("/transactions?account_id=%d", accountID), "")
	require.Equal(t, 200, w.Code)
	page := decodeData(t, w)
	assert.Equal(t, float64(1), page["total"])
	assert.Equal(t, float64(20), page["page_size"])

	// 有交易的账户删除时归档
	w = doRequest(router, "DELETE", fmt.Sprintf("/accounts/%d", accountID), "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, true, decodeData(t, w)["archived"])

	// 已归档账户不能再记账
	w = doRequest(router, "POST", "/transactions",
		fmt.Sprintf(`{"account_id":%d,"amount":"1","transaction_type":"EXPENSE"}`, accountID))
	assert.Equal(t, 400, w.Code)

	w = doRequest(router, "DELETE", fmt.Sprintf("/transactions/%d", txID), "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "100.00", accountBalance(t, router, accountID))

	w = doRequest(router, "POST", fmt.Sprintf("/accounts/%d/reconcile", accountID), "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "0", decodeData(t, w)["drift"])
}

func TestTransactionFlow_UserIsolation(t *testing.T) {
	setupSQLiteDB(t)
	alice := newFlowRouter(1)
	bob := newFlowRouter(2)

	accountID := createID(t, alice, "/accounts", `{"name":"钱包","account_type":"CASH"}`)

	w := doRequest(bob, "GET", fmt.Sprintf("/accounts/%d", accountID), "")
	assert.Equal(t, 404, w.Code)

	w = doRequest(bob, "POST", "/transactions",
		fmt.Sprintf(`{"account_id":%d,"amount":"1","transaction_type":"EXPENSE"}`, accountID))
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, decodeMessage(t, w), "不存在")
}

func TestSettingsFlow(t *testing.T) {
	setupSQLiteDB(t)
	router := newFlowRouter(7)

	w := doRequest(router, "GET", "/settings", "")
	require.Equal(t, 200, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "tester", data["username"])
	assert.Equal(t, "USD", data["currency"])
	assert.Equal(t, true, data["notifications_enabled"])

	w = doRequest(router, "PUT", "/settings", `{"currency":"eur","theme":"dark","notifications_enabled":false}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	data = decodeData(t, w)
	assert.Equal(t, "EUR", data["currency"])
	assert.Equal(t, "dark", data["theme"])
	assert.Equal(t, false, data["notifications_enabled"])

	w = doRequest(router, "PUT", "/settings", `{"theme":"blue"}`)
	assert.Equal(t, 400, w.Code)
}

// seedReportData 3 月份：餐饮 45.50 + 12，交通 20，未分类 5，工资 1000
func seedReportData(t *testing.T, router *gin.Engine) {
	t.Helper()
	accountID := createID(t, router, "/accounts", `{"name":"银行卡","account_type":"BANK"}`)
	food := createID(t, router, "/categories", `{"name":"餐饮"}`)
	transport := createID(t, router, "/categories", `{"name":"交通"}`)

	for _, body := range []string{
		fmt.Sprintf(`{"account_id":%d,"category_id":%d,"amount":"45.50","transaction_type":"EXPENSE","date":"2024-03-02","description":"聚餐"}`, accountID, food),
		fmt.Sprintf(`{"account_id":%d,"category_id":%d,"amount":"12","transaction_type":"EXPENSE","date":"2024-03-05"}`, accountID, food),
		fmt.Sprintf(`{"account_id":%d,"category_id":%d,"amount":"20","transaction_type":"EXPENSE","date":"2024-03-05"}`, accountID, transport),
		fmt.Sprintf(`{"account_id":%d,"amount":"5","transaction_type":"EXPENSE","date":"2024-03-09"}`, accountID),
		fmt.Sprintf(`{"account_id":%d,"amount":"1000","transaction_type":"INCOME","date":"2024-03-01"}`, accountID),
		fmt.Sprintf(`{"account_id":%d,"amount":"99","transaction_type":"EXPENSE","date":"2024-03-10","status":"CANCELLED"}`, accountID),
	} {
		createID(t, router, "/transactions", body)
	}
}

func TestReportFlow(t *testing.T) {
	setupSQLiteDB(t)
	router := newFlowRouter(1)
	seedReportData(t, router)

	w := doRequest(router, "GET", "/reports/expense-summary?start_date=2024-03-01&end_date=2024-03-31", "")
	require.Equal(t, 200, w.Code, w.Body.String())
	var summary struct {
		Data struct {
			Total      decimal.Decimal `json:"total"`
			ByCategory []struct {
				CategoryName string          `json:"category_name"`
				Total        decimal.Decimal `json:"total"`
			} `json:"by_category"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "82.50", summary.Data.Total.StringFixed(2))
	require.Len(t, summary.Data.ByCategory, 3)
	assert.Equal(t, "餐饮", summary.Data.ByCategory[0].CategoryName)
	assert.Equal(t, "57.50", summary.Data.ByCategory[0].Total.StringFixed(2))
	assert.Equal(t, models.UncategorizedName, summary.Data.ByCategory[2].CategoryName)

	w = doRequest(router, "GET", "/reports/cash-flow?start_date=2024-03-01&end_date=2024-03-31", "")
	require.Equal(t, 200, w.Code)
	var flow struct {
		Data struct {
			Income  decimal.Decimal   `json:"income"`
			Expense decimal.Decimal   `json:"expense"`
			Net     decimal.Decimal   `json:"net"`
			Series  []json.RawMessage `json:"series"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &flow))
	assert.Equal(t, "1000.00", flow.Data.Income.StringFixed(2))
	assert.Equal(t, "82.50", flow.Data.Expense.StringFixed(2))
	assert.Equal(t, "917.50", flow.Data.Net.StringFixed(2))
	assert.Len(t, flow.Data.Series, 4)

	w = doRequest(router, "GET", "/charts/categories?start_date=2024-03-01&end_date=2024-03-31", "")
	require.Equal(t, 200, w.Code)
	var chart struct {
		Data CategoryChart `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chart))
	assert.Equal(t, []string{"餐饮", "交通", models.UncategorizedName}, chart.Data.Labels)
	assert.Equal(t, []float64{57.5, 20, 5}, chart.Data.Values)
}

func TestExportFlow(t *testing.T) {
	setupSQLiteDB(t)
	router := newFlowRouter(1)
	seedReportData(t, router)

	w := doRequest(router, "GET", "/export/transactions?start_date=2024-03-01&end_date=2024-03-31", "")
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(body, "\xEF\xBB\xBF")), "\n")
	assert.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "ID,日期,类型,金额"))
	assert.Contains(t, body, "45.50")

	w = doRequest(router, "GET", "/export/transactions?format=xlsx&type=INCOME", "")
	require.Equal(t, 200, w.Code, w.Body.String())
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("交易记录")
	require.NoError(t, err)
	require.Len(t, rows, 3) // 表头、1 条收入、合计
	assert.Equal(t, "INCOME", rows[1][2])
	assert.Equal(t, "合计", rows[2][0])

	w = doRequest(router, "GET", "/export/report/cash-flow?format=xlsx&start_date=2024-03-01&end_date=2024-03-31", "")
	require.Equal(t, 200, w.Code, w.Body.String())
	report, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer report.Close()
	rows, err = report.GetRows("现金流")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"日期", "收入", "支出", "净额"}, rows[0])
	assert.Equal(t, "2024-03-01", rows[1][0])

	w = doRequest(router, "GET", "/export/report/expense-summary?start_date=2024-03-01&end_date=2024-03-31", "")
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "餐饮,57.50,69.70")
}
