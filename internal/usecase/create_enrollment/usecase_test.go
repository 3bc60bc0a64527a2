package create_enrollment

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	slotRepo "github.com/m04kA/DSP-EnrollmentService/internal/infra/storage/slot"
	"github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
	"github.com/m04kA/DSP-EnrollmentService/internal/integrations/uploadservice"
	"github.com/m04kA/DSP-EnrollmentService/pkg/ptr"
	"github.com/m04kA/DSP-EnrollmentService/pkg/types"
)

// fakeStore in-memory хранилище слотов и зачислений с транзакционной
// семантикой: снимок ёмкости перед fn, откат при ошибке, глобальный mutex
// вместо сериализуемой изоляции
type fakeStore struct {
	mu          sync.Mutex
	slots       map[int64]*domain.Slot
	enrollments []*domain.Enrollment
	hasActive   map[int64]bool
	nextID      int64
}

func newFakeStore(slots ...*domain.Slot) *fakeStore {
	byID := make(map[int64]*domain.Slot, len(slots))
	for _, s := range slots {
		byID[s.ID] = s
	}
	return &fakeStore{
		slots:     byID,
		hasActive: make(map[int64]bool),
		nextID:    1,
	}
}

func (s *fakeStore) GetByIDs(_ context.Context, ids []int64) ([]*domain.Slot, error) {
	result := make([]*domain.Slot, 0, len(ids))
	for _, id := range ids {
		if slot, ok := s.slots[id]; ok {
			copied := *slot
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *fakeStore) DecrementCapacity(_ context.Context, slotID int64, withVehicle bool) error {
	slot, ok := s.slots[slotID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if slot.RemainingSeats <= 0 {
		return slotRepo.ErrSlotExhausted
	}
	if withVehicle && slot.RemainingVehicles <= 0 {
		return slotRepo.ErrSlotExhausted
	}
	slot.RemainingSeats--
	if withVehicle {
		slot.RemainingVehicles--
	}
	return nil
}

func (s *fakeStore) Create(_ context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	created := *enrollment
	created.ID = s.nextID
	created.CreatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s.nextID++
	s.enrollments = append(s.enrollments, &created)
	s.hasActive[created.StudentID] = true
	return &created, nil
}

func (s *fakeStore) HasActive(_ context.Context, studentID int64) (bool, error) {
	return s.hasActive[studentID], nil
}

// DoSerializable исполняет fn под глобальным mutex и откатывает ёмкость
// слотов при ошибке
func (s *fakeStore) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[int64]domain.Slot, len(s.slots))
	for id, slot := range s.slots {
		snapshot[id] = *slot
	}
	enrollmentCount := len(s.enrollments)

	if err := fn(ctx); err != nil {
		for id := range s.slots {
			restored := snapshot[id]
			s.slots[id] = &restored
		}
		s.enrollments = s.enrollments[:enrollmentCount]
		return err
	}
	return nil
}

type fakeCatalog struct {
	course      *catalogservice.Course
	requirement *catalogservice.ScheduleRequirement
	courseErr   error
}

func (f *fakeCatalog) GetCourse(_ context.Context, _ int64) (*catalogservice.Course, error) {
	if f.courseErr != nil {
		return nil, f.courseErr
	}
	return f.course, nil
}

func (f *fakeCatalog) GetScheduleRequirement(_ context.Context, _ int64) (*catalogservice.ScheduleRequirement, error) {
	return f.requirement, nil
}

type fakeUpload struct {
	err error
}

func (f *fakeUpload) CheckArtifactWithGracefulDegradation(_ context.Context, _ string) error {
	return f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func practicalCourse() *catalogservice.Course {
	return &catalogservice.Course{
		ID:                    10,
		Name:                  "Практика вождения",
		Classification:        "practical",
		Modality:              "downpayment",
		BasePrice:             20000,
		RequiredScheduleCount: 2,
		IsPublished:           true,
	}
}

func practicalRequirement() *catalogservice.ScheduleRequirement {
	return &catalogservice.ScheduleRequirement{
		CourseID: 10,
		Version:  1,
		Days: []catalogservice.DayRequirement{
			{DayIndex: 1, DurationHours: 2, TimeWindow: "flexible"},
			{DayIndex: 2, DurationHours: 2, TimeWindow: "flexible"},
		},
	}
}

func practicalSlot(id int64, date time.Time, start, end string, seats, vehicles int) *domain.Slot {
	return &domain.Slot{
		ID:                id,
		CourseID:          10,
		Classification:    domain.ClassificationPractical,
		Date:              date,
		StartTime:         types.TimeString(start),
		EndTime:           types.TimeString(end),
		TotalSeats:        seats,
		RemainingSeats:    seats,
		TotalVehicles:     vehicles,
		RemainingVehicles: vehicles,
	}
}

func newTestUseCase(store *fakeStore, catalog *fakeCatalog, upload *fakeUpload) *UseCase {
	uc := NewUseCase(store, store, catalog, upload, store, nopLogger{}, domain.DurationToleranceHours)
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		StudentID:        1,
		CourseID:         10,
		SlotIDs:          []int64{1, 2},
		DiscountCategory: "none",
		PaymentReference: "PAY-2026-001",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	day1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(
		practicalSlot(1, day1, "08:00", "10:00", 3, 2),
		practicalSlot(2, day2, "08:00", "10:00", 3, 2),
	)
	uc := newTestUseCase(store, &fakeCatalog{course: practicalCourse(), requirement: practicalRequirement()}, &fakeUpload{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)

	// снимок стоимости: 20000 без скидки, очный курс - предоплата 50%
	assert.Equal(t, 20000.0, resp.BasePrice)
	assert.Equal(t, 0.0, resp.DiscountAmount)
	assert.Equal(t, 20000.0, resp.NetPrice)
	assert.Equal(t, 10000.0, resp.AmountDueNow)
	assert.Equal(t, 10000.0, resp.AmountDueLater)

	require.Len(t, resp.Assignments, 2)
	assert.Equal(t, 1, resp.Assignments[0].DayIndex)
	assert.Equal(t, int64(1), resp.Assignments[0].SlotID)
	assert.Equal(t, day1, resp.Assignments[0].Date)
	assert.Equal(t, "pending", resp.Assignments[0].Outcome)

	// ёмкость списана вместе с автомобилями
	assert.Equal(t, 2, store.slots[1].RemainingSeats)
	assert.Equal(t, 1, store.slots[1].RemainingVehicles)
	assert.Equal(t, 2, store.slots[2].RemainingSeats)
}

func TestUseCase_Execute_DiscountedQuoteSnapshot(t *testing.T) {
	day1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(
		practicalSlot(1, day1, "08:00", "10:00", 3, 2),
		practicalSlot(2, day2, "08:00", "10:00", 3, 2),
	)
	uc := newTestUseCase(store, &fakeCatalog{course: practicalCourse(), requirement: practicalRequirement()}, &fakeUpload{})

	req := validRequest()
	req.DiscountCategory = "pwd"
	req.DiscountProofRef = ptr.Ptr("proofs/pwd-123.pdf")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 4000.0, resp.DiscountAmount)
	assert.Equal(t, 16000.0, resp.NetPrice)
	assert.Equal(t, 8000.0, resp.AmountDueNow)
	assert.Equal(t, 8000.0, resp.AmountDueLater)
	assert.Equal(t, "pwd", resp.DiscountCategory)
}

func TestUseCase_Execute_AllOrNothingOnExhaustion(t *testing.T) {
	day1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	exhausted := practicalSlot(2, day2, "08:00", "10:00", 3, 2)
	exhausted.RemainingSeats = 0
	store := newFakeStore(
		practicalSlot(1, day1, "08:00", "10:00", 3, 2),
		exhausted,
	)
	uc := newTestUseCase(store, &fakeCatalog{course: practicalCourse(), requirement: practicalRequirement()}, &fakeUpload{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)

	// ёмкость первого слота не тронута - частичных списаний нет
	assert.Equal(t, 3, store.slots[1].RemainingSeats)
	assert.Equal(t, 2, store.slots[1].RemainingVehicles)
	assert.Empty(t, store.enrollments)
}

func TestUseCase_Execute_LastSeatConcurrency(t *testing.T) {
	day1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(
		practicalSlot(1, day1, "08:00", "10:00", 1, 1),
		practicalSlot(2, day2, "08:00", "10:00", 5, 5),
	)
	catalog := &fakeCatalog{course: practicalCourse(), requirement: practicalRequirement()}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			uc := newTestUseCase(store, catalog, &fakeUpload{})
			req := validRequest()
			req.StudentID = int64(n + 1)
			_, errs[n] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one commit wins the last seat")
	assert.Equal(t, 0, store.slots[1].RemainingSeats)
	assert.Len(t, store.enrollments, 1)
}

func TestUseCase_Execute_ActiveEnrollmentGuard(t *testing.T) {
	day1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(
		practicalSlot(1, day1, "08:00", "10:00", 3, 2),
		practicalSlot(2, day2, "08:00", "10:00", 3, 2),
	)
	store.hasActive[1] = true
	uc := newTestUseCase(store, &fakeCatalog{course: practicalCourse(), requirement: practicalRequirement()}, &fakeUpload{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrActiveEnrollmentExists)
	assert.Equal(t, 3, store.slots[1].RemainingSeats)
}

func TestUseCase_Execute_ChronologyRecheck(t *testing.T) {
	day1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(
		// второй день раньше первого по времени в ту же дату
		practicalSlot(1, day1, "13:00", "15:00", 3, 2),
		practicalSlot(2, day1, "08:00", "10:00", 3, 2),
	)
	uc := newTestUseCase(store, &fakeCatalog{course: practicalCourse(), requirement: practicalRequirement()}, &fakeUpload{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSelectionInvalid)
	assert.Empty(t, store.enrollments)
}

func TestUseCase_Execute_PastDateRejected(t *testing.T) {
	past := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(
		practicalSlot(1, past, "08:00", "10:00", 3, 2),
		practicalSlot(2, day2, "08:00", "10:00", 3, 2),
	)
	uc := newTestUseCase(store, &fakeCatalog{course: practicalCourse(), requirement: practicalRequirement()}, &fakeUpload{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSelectionInvalid)
}

func TestUseCase_Execute_SelectionIncomplete(t *testing.T) {
	day1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(practicalSlot(1, day1, "08:00", "10:00", 3, 2))
	uc := newTestUseCase(store, &fakeCatalog{course: practicalCourse(), requirement: practicalRequirement()}, &fakeUpload{})

	req := validRequest()
	req.SlotIDs = []int64{1}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSelectionIncomplete)
}

func TestUseCase_Execute_DiscountProofRequired(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store, &fakeCatalog{}, &fakeUpload{})

	req := validRequest()
	req.DiscountCategory = "senior"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDiscountProofRequired)
}

func TestUseCase_Execute_ProofNotFound(t *testing.T) {
	day1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(
		practicalSlot(1, day1, "08:00", "10:00", 3, 2),
		practicalSlot(2, day2, "08:00", "10:00", 3, 2),
	)
	uc := newTestUseCase(store,
		&fakeCatalog{course: practicalCourse(), requirement: practicalRequirement()},
		&fakeUpload{err: uploadservice.ErrArtifactNotFound})

	req := validRequest()
	req.DiscountCategory = "pwd"
	req.DiscountProofRef = ptr.Ptr("proofs/missing.pdf")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrProofNotFound)
	assert.Empty(t, store.enrollments)
}

func TestUseCase_Execute_DegradedUploadServiceAccepted(t *testing.T) {
	day1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(
		practicalSlot(1, day1, "08:00", "10:00", 3, 2),
		practicalSlot(2, day2, "08:00", "10:00", 3, 2),
	)
	uc := newTestUseCase(store,
		&fakeCatalog{course: practicalCourse(), requirement: practicalRequirement()},
		&fakeUpload{err: uploadservice.ErrServiceDegraded})

	req := validRequest()
	req.DiscountCategory = "pwd"
	req.DiscountProofRef = ptr.Ptr("proofs/pwd-123.pdf")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "pwd", resp.DiscountCategory)
}

func TestUseCase_Execute_InvalidPaymentReference(t *testing.T) {
	uc := newTestUseCase(newFakeStore(), &fakeCatalog{}, &fakeUpload{})

	req := validRequest()
	req.PaymentReference = "pay_001"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_RequirementCountMismatch(t *testing.T) {
	day1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(
		practicalSlot(1, day1, "08:00", "10:00", 3, 2),
		practicalSlot(2, day2, "08:00", "10:00", 3, 2),
	)
	course := practicalCourse()
	// каталог несогласован: требование на 2 дня, курс заявляет 3
	course.RequiredScheduleCount = 3
	uc := newTestUseCase(store, &fakeCatalog{course: course, requirement: practicalRequirement()}, &fakeUpload{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, store.enrollments)
	assert.Equal(t, 3, store.slots[1].RemainingSeats)
}

func TestUseCase_Execute_CourseNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeStore(), &fakeCatalog{courseErr: catalogservice.ErrCourseNotFound}, &fakeUpload{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
