package enrollments

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	enrollmentRepo "github.com/m04kA/DSP-EnrollmentService/internal/infra/storage/enrollment"
	slotRepo "github.com/m04kA/DSP-EnrollmentService/internal/infra/storage/slot"
	"github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments/models"
	"github.com/m04kA/DSP-EnrollmentService/pkg/ptr"
)

type fakeEnrollmentRepo struct {
	enrollments map[int64]*domain.Enrollment
}

func (f *fakeEnrollmentRepo) GetByID(_ context.Context, id int64) (*domain.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, enrollmentRepo.ErrEnrollmentNotFound
	}
	copied := *e
	copied.Assignments = append([]domain.SlotAssignment(nil), e.Assignments...)
	return &copied, nil
}

func (f *fakeEnrollmentRepo) GetByStudentID(_ context.Context, studentID int64, status *domain.EnrollmentStatus) ([]*domain.Enrollment, error) {
	result := make([]*domain.Enrollment, 0)
	for _, e := range f.enrollments {
		if e.StudentID != studentID {
			continue
		}
		if status != nil && e.Status != *status {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (f *fakeEnrollmentRepo) UpdateStatus(_ context.Context, id int64, status domain.EnrollmentStatus) error {
	e, ok := f.enrollments[id]
	if !ok {
		return enrollmentRepo.ErrEnrollmentNotFound
	}
	e.Status = status
	return nil
}

func (f *fakeEnrollmentRepo) Cancel(_ context.Context, id int64, reason string) error {
	e, ok := f.enrollments[id]
	if !ok {
		return enrollmentRepo.ErrEnrollmentNotFound
	}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	e.Status = domain.StatusCancelled
	e.CancellationReason = &reason
	e.CancelledAt = &now
	return nil
}

func (f *fakeEnrollmentRepo) UpdateDayOutcome(_ context.Context, enrollmentID int64, dayIndex int, outcome domain.DayOutcome) error {
	e, ok := f.enrollments[enrollmentID]
	if !ok {
		return enrollmentRepo.ErrEnrollmentNotFound
	}
	for i := range e.Assignments {
		if e.Assignments[i].DayIndex == dayIndex {
			e.Assignments[i].Outcome = outcome
			return nil
		}
	}
	return enrollmentRepo.ErrAssignmentNotFound
}

type fakeSlotRepo struct {
	slots    map[int64]*domain.Slot
	restored []int64
}

func (f *fakeSlotRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Slot, error) {
	result := make([]*domain.Slot, 0, len(ids))
	for _, id := range ids {
		if slot, ok := f.slots[id]; ok {
			result = append(result, slot)
		}
	}
	return result, nil
}

func (f *fakeSlotRepo) RestoreCapacity(_ context.Context, slotID int64, withVehicle bool) error {
	slot, ok := f.slots[slotID]
	if !ok || slot.RemainingSeats >= slot.TotalSeats {
		return slotRepo.ErrCapacityOverflow
	}
	slot.RemainingSeats++
	if withVehicle {
		slot.RemainingVehicles++
	}
	f.restored = append(f.restored, slotID)
	return nil
}

// fakeTxManager исполняет fn под глобальным mutex: сериализация вместо
// сериализуемой изоляции
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testEnrollment(id int64, status domain.EnrollmentStatus) *domain.Enrollment {
	return &domain.Enrollment{
		ID:               id,
		StudentID:        1,
		CourseID:         10,
		Status:           status,
		DiscountCategory: domain.DiscountNone,
		BasePrice:        20000,
		NetPrice:         20000,
		AmountDueNow:     10000,
		AmountDueLater:   10000,
		PaymentReference: "PAY-2026-001",
		Assignments: []domain.SlotAssignment{
			{ID: 1, EnrollmentID: id, DayIndex: 1, SlotID: 101, Outcome: domain.OutcomePending},
			{ID: 2, EnrollmentID: id, DayIndex: 2, SlotID: 102, Outcome: domain.OutcomePending},
		},
	}
}

func practicalSlot(id int64, seats, vehicles int) *domain.Slot {
	return &domain.Slot{
		ID:                id,
		CourseID:          10,
		Classification:    domain.ClassificationPractical,
		TotalSeats:        5,
		RemainingSeats:    seats,
		TotalVehicles:     5,
		RemainingVehicles: vehicles,
	}
}

func newTestService(enrollments *fakeEnrollmentRepo, slots *fakeSlotRepo) *Service {
	return NewService(enrollments, slots, &fakeTxManager{}, nopLogger{})
}

func TestService_GetByID_OwnerAndStaff(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: map[int64]*domain.Enrollment{
		1: testEnrollment(1, domain.StatusPending),
	}}
	svc := newTestService(repo, &fakeSlotRepo{})

	// владелец
	resp, err := svc.GetByID(context.Background(), 1, 1, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// сотрудник
	_, err = svc.GetByID(context.Background(), 1, 99, true)
	assert.NoError(t, err)

	// чужой студент
	_, err = svc.GetByID(context.Background(), 1, 2, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 404, 1, false)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestService_GetStudentEnrollments_StatusFilter(t *testing.T) {
	cancelled := testEnrollment(2, domain.StatusCancelled)
	repo := &fakeEnrollmentRepo{enrollments: map[int64]*domain.Enrollment{
		1: testEnrollment(1, domain.StatusPending),
		2: cancelled,
	}}
	svc := newTestService(repo, &fakeSlotRepo{})

	resp, err := svc.GetStudentEnrollments(context.Background(), &models.GetStudentEnrollmentsRequest{StudentID: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	resp, err = svc.GetStudentEnrollments(context.Background(), &models.GetStudentEnrollmentsRequest{
		StudentID: 1,
		Status:    ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.GetStudentEnrollments(context.Background(), &models.GetStudentEnrollmentsRequest{
		StudentID: 1,
		Status:    ptr.Ptr("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel_RestoresPendingCapacityOnly(t *testing.T) {
	enrollment := testEnrollment(1, domain.StatusInProgress)
	enrollment.Assignments[0].Outcome = domain.OutcomeCompleted
	repo := &fakeEnrollmentRepo{enrollments: map[int64]*domain.Enrollment{1: enrollment}}
	slots := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		101: practicalSlot(101, 2, 2),
		102: practicalSlot(102, 2, 2),
	}}
	svc := newTestService(repo, slots)

	err := svc.Cancel(context.Background(), 1, &models.CancelEnrollmentRequest{
		UserID:             1,
		CancellationReason: "переезд",
	})
	require.NoError(t, err)

	// ёмкость вернулась только по незакрытому дню 2
	assert.Equal(t, []int64{102}, slots.restored)
	assert.Equal(t, 2, slots.slots[101].RemainingSeats)
	assert.Equal(t, 3, slots.slots[102].RemainingSeats)
	assert.Equal(t, 3, slots.slots[102].RemainingVehicles)

	assert.Equal(t, domain.StatusCancelled, repo.enrollments[1].Status)
	require.NotNil(t, repo.enrollments[1].CancellationReason)
	assert.Equal(t, "переезд", *repo.enrollments[1].CancellationReason)
}

func TestService_Cancel_SkipsOverflowingSlot(t *testing.T) {
	enrollment := testEnrollment(1, domain.StatusPending)
	repo := &fakeEnrollmentRepo{enrollments: map[int64]*domain.Enrollment{1: enrollment}}
	full := practicalSlot(101, 5, 5) // слот уже на полной ёмкости
	slots := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		101: full,
		102: practicalSlot(102, 2, 2),
	}}
	svc := newTestService(repo, slots)

	err := svc.Cancel(context.Background(), 1, &models.CancelEnrollmentRequest{UserID: 1})
	require.NoError(t, err)

	// аномалия по одному слоту не блокирует отмену
	assert.Equal(t, []int64{102}, slots.restored)
	assert.Equal(t, 5, slots.slots[101].RemainingSeats)
	assert.Equal(t, 3, slots.slots[102].RemainingSeats)
	assert.Equal(t, domain.StatusCancelled, repo.enrollments[1].Status)
}

func TestService_Cancel_AccessAndStatus(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: map[int64]*domain.Enrollment{
		1: testEnrollment(1, domain.StatusPending),
		2: testEnrollment(2, domain.StatusPassed),
	}}
	slots := &fakeSlotRepo{slots: map[int64]*domain.Slot{}}
	svc := newTestService(repo, slots)

	// чужой студент без прав сотрудника
	err := svc.Cancel(context.Background(), 1, &models.CancelEnrollmentRequest{UserID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// конечный статус отменить нельзя
	err = svc.Cancel(context.Background(), 2, &models.CancelEnrollmentRequest{UserID: 1})
	assert.ErrorIs(t, err, ErrCannotCancel)

	// сотрудник может отменить чужое
	err = svc.Cancel(context.Background(), 1, &models.CancelEnrollmentRequest{UserID: 99, IsStaff: true})
	assert.NoError(t, err)
}

func TestService_Cancel_ReasonTooLong(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: map[int64]*domain.Enrollment{
		1: testEnrollment(1, domain.StatusPending),
	}}
	svc := newTestService(repo, &fakeSlotRepo{})

	long := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}

	err := svc.Cancel(context.Background(), 1, &models.CancelEnrollmentRequest{
		UserID:             1,
		CancellationReason: string(long),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_RecordDayOutcome_ProgressesStatus(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: map[int64]*domain.Enrollment{
		1: testEnrollment(1, domain.StatusPending),
	}}
	svc := newTestService(repo, &fakeSlotRepo{})

	// первый день закрыт - зачисление переходит в in_progress
	resp, err := svc.RecordDayOutcome(context.Background(), 1, &models.RecordDayOutcomeRequest{
		UserID:   50,
		IsStaff:  true,
		DayIndex: 1,
		Outcome:  "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", resp.Status)

	// последний день закрыт с полной посещаемостью - passed
	resp, err = svc.RecordDayOutcome(context.Background(), 1, &models.RecordDayOutcomeRequest{
		UserID:   50,
		IsStaff:  true,
		DayIndex: 2,
		Outcome:  "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, "passed", resp.Status)
}

func TestService_RecordDayOutcome_AbsenceFails(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: map[int64]*domain.Enrollment{
		1: testEnrollment(1, domain.StatusPending),
	}}
	svc := newTestService(repo, &fakeSlotRepo{})

	_, err := svc.RecordDayOutcome(context.Background(), 1, &models.RecordDayOutcomeRequest{
		UserID: 50, IsStaff: true, DayIndex: 1, Outcome: "absent",
	})
	require.NoError(t, err)

	resp, err := svc.RecordDayOutcome(context.Background(), 1, &models.RecordDayOutcomeRequest{
		UserID: 50, IsStaff: true, DayIndex: 2, Outcome: "completed",
	})
	require.NoError(t, err)
	// пропуск любого дня означает провал курса
	assert.Equal(t, "failed", resp.Status)
}

func TestService_RecordDayOutcome_ConcurrentLastDays(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: map[int64]*domain.Enrollment{
		1: testEnrollment(1, domain.StatusPending),
	}}
	svc := newTestService(repo, &fakeSlotRepo{})

	// два сотрудника закрывают последние два дня одновременно:
	// зачисление не должно застрять в in_progress
	var wg sync.WaitGroup
	for day := 1; day <= 2; day++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			_, err := svc.RecordDayOutcome(context.Background(), 1, &models.RecordDayOutcomeRequest{
				UserID: 50, IsStaff: true, DayIndex: day, Outcome: "completed",
			})
			assert.NoError(t, err)
		}(day)
	}
	wg.Wait()

	assert.Equal(t, domain.StatusPassed, repo.enrollments[1].Status)
}

func TestService_RecordDayOutcome_Guards(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: map[int64]*domain.Enrollment{
		1: testEnrollment(1, domain.StatusPending),
		2: testEnrollment(2, domain.StatusCancelled),
	}}
	svc := newTestService(repo, &fakeSlotRepo{})

	// только для сотрудников
	_, err := svc.RecordDayOutcome(context.Background(), 1, &models.RecordDayOutcomeRequest{
		UserID: 1, DayIndex: 1, Outcome: "completed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// pending не является результатом
	_, err = svc.RecordDayOutcome(context.Background(), 1, &models.RecordDayOutcomeRequest{
		UserID: 50, IsStaff: true, DayIndex: 1, Outcome: "pending",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// нет такого дня
	_, err = svc.RecordDayOutcome(context.Background(), 1, &models.RecordDayOutcomeRequest{
		UserID: 50, IsStaff: true, DayIndex: 9, Outcome: "completed",
	})
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	// конечный статус
	_, err = svc.RecordDayOutcome(context.Background(), 2, &models.RecordDayOutcomeRequest{
		UserID: 50, IsStaff: true, DayIndex: 1, Outcome: "completed",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_RecordDayOutcome_AlreadyRecorded(t *testing.T) {
	enrollment := testEnrollment(1, domain.StatusInProgress)
	enrollment.Assignments[0].Outcome = domain.OutcomeCompleted
	repo := &fakeEnrollmentRepo{enrollments: map[int64]*domain.Enrollment{1: enrollment}}
	svc := newTestService(repo, &fakeSlotRepo{})

	_, err := svc.RecordDayOutcome(context.Background(), 1, &models.RecordDayOutcomeRequest{
		UserID: 50, IsStaff: true, DayIndex: 1, Outcome: "completed",
	})
	assert.ErrorIs(t, err, ErrOutcomeAlreadyRecorded)
}
