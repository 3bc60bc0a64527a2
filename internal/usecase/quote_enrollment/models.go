package quote_enrollment

// Request модель запроса на расчет стоимости записи
type Request struct {
	CourseID         int64  // ID курса
	DiscountCategory string // none | pwd | senior
}

// Response модель ответа с расчетом стоимости
type Response struct {
	CourseID         int64
	CourseName       string
	Modality         string
	DiscountCategory string
	BasePrice        float64
	DiscountAmount   float64
	NetPrice         float64
	AmountDueNow     float64
	AmountDueLater   float64
}
