package service

import (
	"fmt"
	"time"

	"fintrack/models"
)

// FrequencyStepper 计算周期交易的下一次到期日
// anchor 为起始日期，按月/按年的步进始终对齐起始日期的日（月末截断），避免 31 日漂移到 28 日后回不去
type FrequencyStepper interface {
	Next(anchor, current time.Time) time.Time
}

// DailyStepper 每日
type DailyStepper struct{}

func (DailyStepper) Next(_, current time.Time) time.Time {
	return models.DateOf(current).AddDate(0, 0, 1)
}

// WeeklyStepper 每周
type WeeklyStepper struct{}

func (WeeklyStepper) Next(_, current time.Time) time.Time {
	return models.DateOf(current).AddDate(0, 0, 7)
}

// MonthlyStepper 每月，1 月 31 日之后依次为 2 月 29/28 日、3 月 31 日
type MonthlyStepper struct{}

func (MonthlyStepper) Next(anchor, current time.Time) time.Time {
	first := models.MonthStart(current).AddDate(0, 1, 0)
	return clampDay(first.Year(), first.Month(), anchor.Day())
}

// YearlyStepper 每年，2 月 29 日在平年截断为 2 月 28 日
type YearlyStepper struct{}

func (YearlyStepper) Next(anchor, current time.Time) time.Time {
	return clampDay(current.Year()+1, anchor.Month(), anchor.Day())
}

func clampDay(year int, month time.Month, day int) time.Time {
	if last := models.DaysInMonth(year, month); day > last {
		day = last
	}
	return models.NewDate(year, month, day)
}

var frequencyStrategies = map[models.Frequency]FrequencyStepper{
	models.FrequencyDaily:   DailyStepper{},
	models.FrequencyWeekly:  WeeklyStepper{},
	models.FrequencyMonthly: MonthlyStepper{},
	models.FrequencyYearly:  YearlyStepper{},
}

// GetFrequencyStepper 按频率返回步进策略
func GetFrequencyStepper(frequency models.Frequency) (FrequencyStepper, error) {
	stepper, ok := frequencyStrategies[frequency]
	if !ok {
		return nil, fmt.Errorf("未知的周期频率: %s", frequency)
	}
	return stepper, nil
}

// NextDue 计算周期交易在 current 之后的下一次到期日
func NextDue(r *models.RecurringTransaction, current time.Time) (time.Time, error) {
	stepper, err := GetFrequencyStepper(r.Frequency)
	if err != nil {
		return time.Time{}, err
	}
	return stepper.Next(r.StartDate, current), nil
}
