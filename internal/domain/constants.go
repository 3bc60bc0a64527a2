package domain

import "github.com/m04kA/DSP-EnrollmentService/pkg/types"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business constants
const (
	// DurationToleranceHours допуск при сравнении длительности слота с
	// требованием курса. Поглощает погрешность вычитания времени
	// (например 3.98h против требуемых 4h). Значение унаследовано из
	// исходной системы и может быть переопределено в конфигурации.
	DurationToleranceHours = 0.05

	// FullDayClockSpanHours порог, начиная с которого слот считается
	// "полнодневным" и из его длительности вычитается обеденный перерыв
	FullDayClockSpanHours = 8.0

	// LunchBreakHours длительность обеденного перерыва, не входящего
	// в учебное время полнодневного слота
	LunchBreakHours = 1.0

	// DiscountRate доля скидки для льготных категорий (ПВД, пенсионеры)
	DiscountRate = 0.20

	// DownpaymentShare доля предоплаты для очных курсов
	DownpaymentShare = 0.5
)

// Canonical start times for named time windows
const (
	MorningStartTime   types.TimeString = "08:00"
	AfternoonStartTime types.TimeString = "13:00"
)

// Validation limits
const (
	MaxCancellationReasonLength = 500
	MinPaymentReferenceLength   = 6
	MaxPaymentReferenceLength   = 32
)
