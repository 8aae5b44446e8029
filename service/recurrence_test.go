package service

import (
	"context"
	"testing"
	"time"

	"fintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyStepper(t *testing.T) {
	tests := []struct {
		name      string
		frequency models.Frequency
		anchor    time.Time
		current   time.Time
		want      time.Time
	}{
		{"每日", models.FrequencyDaily, models.NewDate(2024, 1, 1), models.NewDate(2024, 2, 28), models.NewDate(2024, 2, 29)},
		{"每周", models.FrequencyWeekly, models.NewDate(2024, 1, 1), models.NewDate(2024, 12, 30), models.NewDate(2025, 1, 6)},
		{"每月", models.FrequencyMonthly, models.NewDate(2024, 1, 1), models.NewDate(2024, 1, 1), models.NewDate(2024, 2, 1)},
		{"月末截断", models.FrequencyMonthly, models.NewDate(2024, 1, 31), models.NewDate(2024, 1, 31), models.NewDate(2024, 2, 29)},
		{"截断后恢复锚点", models.FrequencyMonthly, models.NewDate(2024, 1, 31), models.NewDate(2024, 2, 29), models.NewDate(2024, 3, 31)},
		{"跨年", models.FrequencyMonthly, models.NewDate(2023, 12, 15), models.NewDate(2023, 12, 15), models.NewDate(2024, 1, 15)},
		{"每年", models.FrequencyYearly, models.NewDate(2023, 6, 1), models.NewDate(2023, 6, 1), models.NewDate(2024, 6, 1)},
		{"闰日", models.FrequencyYearly, models.NewDate(2024, 2, 29), models.NewDate(2024, 2, 29), models.NewDate(2025, 2, 28)},
		{"闰日回到闰年", models.FrequencyYearly, models.NewDate(2024, 2, 29), models.NewDate(2027, 2, 28), models.NewDate(2028, 2, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stepper, err := GetFrequencyStepper(tt.frequency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stepper.Next(tt.anchor, tt.current))
		})
	}

	_, err := GetFrequencyStepper("HOURLY")
	assert.Error(t, err)
}

func newSchedulerFixture(t *testing.T, today time.Time) (*LedgerService, *RecurrenceScheduler, *models.Account) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db, 1, today)
	account := mustAccount(t, ledger, 1, "Checking", "100")
	return ledger, NewRecurrenceScheduler(db, nil), account
}

func recurringTransactions(t *testing.T, ledger *LedgerService, recurringID uint) []models.Transaction {
	t.Helper()
	list, _, err := ledger.ListTransactions(1, TransactionFilter{}, Page{PageSize: 100})
	require.NoError(t, err)
	var out []models.Transaction
	for _, tx := range list {
		if tx.RecurringID != nil && *tx.RecurringID == recurringID {
			out = append(out, tx)
		}
	}
	return out
}

func TestProcessDue_Idempotent(t *testing.T) {
	today := models.NewDate(2024, 1, 1)
	ledger, scheduler, account := newSchedulerFixture(t, today)
	r := &models.RecurringTransaction{
		AccountID: account.ID, Amount: dec("15"), Description: "rent",
		Frequency: models.FrequencyMonthly, StartDate: today,
	}
	require.NoError(t, ledger.CreateRecurring(1, r))

	created, err := scheduler.ProcessDue(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = scheduler.ProcessDue(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	txs := recurringTransactions(t, ledger, r.ID)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].IsRecurring)
	assert.Equal(t, today, models.DateOf(txs[0].Date))

	got, err := ledger.GetRecurring(1, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(2024, 2, 1), models.DateOf(got.NextDue))
	require.NotNil(t, got.LastProcessed)
	assert.Equal(t, today, models.DateOf(*got.LastProcessed))
	assert.Equal(t, "85.00", balanceOf(t, ledger, 1, account.ID))
}

func TestProcessDue_CatchesUpAndCompletes(t *testing.T) {
	today := models.NewDate(2024, 1, 10)
	ledger, scheduler, account := newSchedulerFixture(t, today)
	end := models.NewDate(2024, 1, 5)
	r := &models.RecurringTransaction{
		AccountID: account.ID, Amount: dec("1"), Description: "coffee",
		Frequency: models.FrequencyDaily, StartDate: models.NewDate(2024, 1, 1), EndDate: &end,
	}
	require.NoError(t, ledger.CreateRecurring(1, r))

	created, err := scheduler.ProcessDue(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 5, created)

	txs := recurringTransactions(t, ledger, r.ID)
	require.Len(t, txs, 5)
	assert.Equal(t, models.NewDate(2024, 1, 5), models.DateOf(txs[0].Date))
	assert.Equal(t, models.NewDate(2024, 1, 1), models.DateOf(txs[4].Date))

	got, err := ledger.GetRecurring(1, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RecurringCompleted, got.Status)
	assert.Equal(t, "95.00", balanceOf(t, ledger, 1, account.ID))
	requireConsistent(t, ledger, 1, account.ID)
}

func TestProcessDue_SkipsPausedAndFuture(t *testing.T) {
	today := models.NewDate(2024, 3, 1)
	ledger, scheduler, account := newSchedulerFixture(t, today)
	paused := &models.RecurringTransaction{
		AccountID: account.ID, Amount: dec("5"), Description: "paused",
		Frequency: models.FrequencyWeekly, StartDate: models.NewDate(2024, 2, 1),
	}
	future := &models.RecurringTransaction{
		AccountID: account.ID, Amount: dec("5"), Description: "future",
		Frequency: models.FrequencyWeekly, StartDate: models.NewDate(2024, 3, 2),
	}
	require.NoError(t, ledger.CreateRecurring(1, paused))
	require.NoError(t, ledger.CreateRecurring(1, future))
	_, err := ledger.PauseRecurring(1, paused.ID)
	require.NoError(t, err)

	created, err := scheduler.ProcessDue(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, "100.00", balanceOf(t, ledger, 1, account.ID))
}

func TestProcessDue_TransferTemplate(t *testing.T) {
	today := models.NewDate(2024, 1, 1)
	ledger, scheduler, account := newSchedulerFixture(t, today)
	savings := mustAccount(t, ledger, 1, "Savings", "0")
	require.NoError(t, ledger.CreateRecurring(1, &models.RecurringTransaction{
		AccountID: account.ID, TransferAccountID: &savings.ID, TransactionType: models.TypeTransfer,
		Amount: dec("25"), Description: "save", Frequency: models.FrequencyMonthly, StartDate: today,
	}))

	created, err := scheduler.ProcessDue(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, "75.00", balanceOf(t, ledger, 1, account.ID))
	assert.Equal(t, "25.00", balanceOf(t, ledger, 1, savings.ID))
}

func TestProcessDue_EvaluatesGoals(t *testing.T) {
	today := models.NewDate(2024, 6, 1)
	db := newTestDB(t)
	goals := NewGoalService(db, nil)
	overdue := &models.Goal{Name: "car", TargetAmount: dec("5000"), Deadline: ptr(models.NewDate(2024, 5, 31))}
	require.NoError(t, goals.CreateGoal(1, overdue))

	_, err := NewRecurrenceScheduler(db, goals).ProcessDue(context.Background(), today)
	require.NoError(t, err)

	got, err := goals.GetGoal(1, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GoalFailed, got.Status)
}

func TestProcessDue_StopsOnCancelledContext(t *testing.T) {
	today := models.NewDate(2024, 1, 1)
	ledger, scheduler, account := newSchedulerFixture(t, today)
	require.NoError(t, ledger.CreateRecurring(1, &models.RecurringTransaction{
		AccountID: account.ID, Amount: dec("1"), Description: "x",
		Frequency: models.FrequencyDaily, StartDate: today,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := scheduler.ProcessDue(ctx, today)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ProcessesOnStartAndStops(t *testing.T) {
	today := models.DateOf(time.Now())
	ledger, scheduler, account := newSchedulerFixture(t, today)
	r := &models.RecurringTransaction{
		AccountID: account.ID, Amount: dec("1"), Description: "daily",
		Frequency: models.FrequencyDaily, StartDate: today.AddDate(0, 0, -2),
	}
	require.NoError(t, ledger.CreateRecurring(1, r))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, time.Hour)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		got, err := ledger.GetRecurring(1, r.ID)
		return err == nil && models.DateOf(got.NextDue).After(today)
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("调度未在取消后退出")
	}
	assert.Len(t, recurringTransactions(t, ledger, r.ID), 3)
}

func TestProcessDue_ArchivedAccountPausesTemplates(t *testing.T) {
	today := models.NewDate(2024, 3, 1)
	ledger, scheduler, account := newSchedulerFixture(t, today)
	savings := mustAccount(t, ledger, 1, "Savings", "0")
	wallet := mustAccount(t, ledger, 1, "Wallet", "0")

	rent := &models.RecurringTransaction{
		AccountID: account.ID, Amount: dec("15"), Description: "rent",
		Frequency: models.FrequencyMonthly, StartDate: models.NewDate(2024, 1, 1),
	}
	require.NoError(t, ledger.CreateRecurring(1, rent))
	// 转入方为待归档账户
	sweep := &models.RecurringTransaction{
		AccountID: wallet.ID, TransferAccountID: &account.ID, TransactionType: models.TypeTransfer,
		Amount: dec("5"), Description: "sweep", Frequency: models.FrequencyMonthly, StartDate: today,
	}
	require.NoError(t, ledger.CreateRecurring(1, sweep))
	other := &models.RecurringTransaction{
		AccountID: savings.ID, Amount: dec("2"), Description: "fee",
		Frequency: models.FrequencyMonthly, StartDate: today,
	}
	require.NoError(t, ledger.CreateRecurring(1, other))

	_, err := ledger.ArchiveAccount(1, account.ID)
	require.NoError(t, err)

	for _, id := range []uint{rent.ID, sweep.ID} {
		got, err := ledger.GetRecurring(1, id)
		require.NoError(t, err)
		assert.Equal(t, models.RecurringPaused, got.Status)
	}

	// 只有未受影响的模板生成交易
	for i, want := range []int{1, 0, 0} {
		created, err := scheduler.ProcessDue(context.Background(), today.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.Equal(t, want, created)
	}
	assert.Empty(t, recurringTransactions(t, ledger, rent.ID))
	assert.Empty(t, recurringTransactions(t, ledger, sweep.ID))
	assert.Len(t, recurringTransactions(t, ledger, other.ID), 1)

	got, err := ledger.GetRecurring(1, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(2024, 1, 1), models.DateOf(got.NextDue))
	assert.Equal(t, "100.00", balanceOf(t, ledger, 1, account.ID))

	// 账户仍归档时不能恢复，改绑后可以
	_, err = ledger.ResumeRecurring(1, rent.ID)
	assert.ErrorIs(t, err, ErrValidation)

	got.AccountID = savings.ID
	_, err = ledger.UpdateRecurring(1, rent.ID, got)
	require.NoError(t, err)
	resumed, err := ledger.ResumeRecurring(1, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RecurringActive, resumed.Status)
	assert.Equal(t, today, models.DateOf(resumed.NextDue))
}

func TestProcessOccurrence_StaleCopyLosesClaim(t *testing.T) {
	today := models.NewDate(2024, 1, 1)
	ledger, scheduler, account := newSchedulerFixture(t, today)
	r := &models.RecurringTransaction{
		AccountID: account.ID, Amount: dec("15"), Description: "rent",
		Frequency: models.FrequencyMonthly, StartDate: today,
	}
	require.NoError(t, ledger.CreateRecurring(1, r))

	// 两个执行者读到同一份模板
	loaded, err := ledger.GetRecurring(1, r.ID)
	require.NoError(t, err)
	first, stale := *loaded, *loaded

	ok, err := scheduler.processOccurrence(context.Background(), &first, today)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = scheduler.processOccurrence(context.Background(), &stale, today)
	assert.ErrorIs(t, err, errClaimLost)
	assert.False(t, ok)

	assert.Len(t, recurringTransactions(t, ledger, r.ID), 1)
	assert.Equal(t, "85.00", balanceOf(t, ledger, 1, account.ID))
	got, err := ledger.GetRecurring(1, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(2024, 2, 1), models.DateOf(got.NextDue))
}
