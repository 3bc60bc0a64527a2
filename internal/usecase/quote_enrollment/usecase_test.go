package quote_enrollment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
)

type fakeCatalogClient struct {
	course *catalogservice.Course
	err    error
}

func (f *fakeCatalogClient) GetCourse(_ context.Context, _ int64) (*catalogservice.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.course, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func onlineCourse() *catalogservice.Course {
	return &catalogservice.Course{
		ID:             10,
		Name:           "Теория вождения",
		Classification: "theoretical",
		Modality:       "full_payment",
		BasePrice:      15000,
		IsPublished:    true,
	}
}

func TestUseCase_Execute_FullPayment(t *testing.T) {
	uc := NewUseCase(&fakeCatalogClient{course: onlineCourse()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{CourseID: 10, DiscountCategory: "none"})
	require.NoError(t, err)

	assert.Equal(t, "Теория вождения", resp.CourseName)
	assert.Equal(t, 15000.0, resp.NetPrice)
	assert.Equal(t, 15000.0, resp.AmountDueNow)
	assert.Equal(t, 0.0, resp.AmountDueLater)
}

func TestUseCase_Execute_DiscountedDownpayment(t *testing.T) {
	course := onlineCourse()
	course.Modality = "downpayment"
	uc := NewUseCase(&fakeCatalogClient{course: course}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{CourseID: 10, DiscountCategory: "senior"})
	require.NoError(t, err)

	assert.Equal(t, 3000.0, resp.DiscountAmount)
	assert.Equal(t, 12000.0, resp.NetPrice)
	assert.Equal(t, 6000.0, resp.AmountDueNow)
	assert.Equal(t, 6000.0, resp.AmountDueLater)
	// части всегда сходятся в итоговую цену
	assert.Equal(t, resp.NetPrice, resp.AmountDueNow+resp.AmountDueLater)
}

func TestUseCase_Execute_EmptyCategoryMeansNone(t *testing.T) {
	uc := NewUseCase(&fakeCatalogClient{course: onlineCourse()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{CourseID: 10})
	require.NoError(t, err)
	assert.Equal(t, "none", resp.DiscountCategory)
	assert.Equal(t, 0.0, resp.DiscountAmount)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	t.Run("invalid course id", func(t *testing.T) {
		uc := NewUseCase(&fakeCatalogClient{}, nopLogger{})
		_, err := uc.Execute(context.Background(), &Request{CourseID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown category", func(t *testing.T) {
		uc := NewUseCase(&fakeCatalogClient{}, nopLogger{})
		_, err := uc.Execute(context.Background(), &Request{CourseID: 10, DiscountCategory: "student"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("course not found", func(t *testing.T) {
		uc := NewUseCase(&fakeCatalogClient{err: catalogservice.ErrCourseNotFound}, nopLogger{})
		_, err := uc.Execute(context.Background(), &Request{CourseID: 10})
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("course not published", func(t *testing.T) {
		course := onlineCourse()
		course.IsPublished = false
		uc := NewUseCase(&fakeCatalogClient{course: course}, nopLogger{})
		_, err := uc.Execute(context.Background(), &Request{CourseID: 10})
		assert.ErrorIs(t, err, ErrCourseNotPublished)
	})

	t.Run("catalog unavailable", func(t *testing.T) {
		uc := NewUseCase(&fakeCatalogClient{err: catalogservice.ErrUnavailable}, nopLogger{})
		_, err := uc.Execute(context.Background(), &Request{CourseID: 10})
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
