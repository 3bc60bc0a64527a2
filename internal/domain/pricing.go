package domain

import (
	"fmt"
	"math"
)

// DiscountCategory льготная категория студента.
// Подтверждающий документ загружается через внешний сервис; здесь категория
// влияет только на расчет суммы.
type DiscountCategory string

const (
	DiscountNone   DiscountCategory = "none"
	DiscountPWD    DiscountCategory = "pwd"
	DiscountSenior DiscountCategory = "senior"
)

// ParseDiscountCategory парсит льготную категорию из строки
func ParseDiscountCategory(s string) (DiscountCategory, error) {
	switch DiscountCategory(s) {
	case DiscountNone, "":
		return DiscountNone, nil
	case DiscountPWD, DiscountSenior:
		return DiscountCategory(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDiscountCategory, s)
	}
}

// HasDiscount возвращает true, если категория дает скидку
func (c DiscountCategory) HasDiscount() bool {
	return c == DiscountPWD || c == DiscountSenior
}

// Modality форма оплаты курса: полностью онлайн-курсы оплачиваются сразу,
// очные - с предоплатой в половину стоимости
type Modality string

const (
	ModalityFullPayment Modality = "full_payment"
	ModalityDownpayment Modality = "downpayment"
)

// ParseModality парсит форму оплаты из строки
func ParseModality(s string) (Modality, error) {
	switch Modality(s) {
	case ModalityFullPayment, ModalityDownpayment:
		return Modality(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidModality, s)
	}
}

// PricingQuote расчет стоимости записи: скидка, итог и разбивка
// на "к оплате сейчас" и "к оплате позже"
type PricingQuote struct {
	BasePrice        float64
	DiscountCategory DiscountCategory
	DiscountAmount   float64
	NetPrice         float64
	AmountDueNow     float64
	AmountDueLater   float64
}

// Quote вычисляет стоимость записи. Чистая функция без I/O.
//
// Скидка льготных категорий - фиксированные 20% от базовой цены.
// Для онлайн-курсов (full_payment) вся сумма к оплате сразу; для очных -
// предоплата 50%, остаток вычисляется вычитанием из округленной предоплаты,
// поэтому две части всегда сходятся ровно в итоговую цену.
func Quote(basePrice float64, category DiscountCategory, modality Modality) PricingQuote {
	discount := 0.0
	if category.HasDiscount() {
		discount = Round2(DiscountRate * basePrice)
	}

	net := Round2(basePrice - discount)

	var dueNow float64
	if modality == ModalityFullPayment {
		dueNow = net
	} else {
		dueNow = Round2(DownpaymentShare * net)
	}
	dueLater := Round2(net - dueNow)

	return PricingQuote{
		BasePrice:        basePrice,
		DiscountCategory: category,
		DiscountAmount:   discount,
		NetPrice:         net,
		AmountDueNow:     dueNow,
		AmountDueLater:   dueLater,
	}
}

// Round2 округляет денежную сумму до двух знаков (half-up)
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
