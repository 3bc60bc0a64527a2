package slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	slotRepo "github.com/m04kA/DSP-EnrollmentService/internal/infra/storage/slot"
	"github.com/m04kA/DSP-EnrollmentService/internal/service/slots/models"
)

type fakeSlotRepo struct {
	slots  map[int64]*domain.Slot
	nextID int64
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[int64]*domain.Slot), nextID: 1}
}

func (f *fakeSlotRepo) Create(_ context.Context, slot *domain.Slot) (*domain.Slot, error) {
	created := *slot
	created.ID = f.nextID
	created.RemainingSeats = created.TotalSeats
	created.RemainingVehicles = created.TotalVehicles
	f.nextID++
	f.slots[created.ID] = &created
	return &created, nil
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return slot, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validCreateRequest() *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		UserID:         50,
		IsStaff:        true,
		CourseID:       10,
		Classification: "practical",
		Date:           "2026-09-15",
		StartTime:      "08:00",
		EndTime:        "17:00",
		TotalSeats:     5,
		TotalVehicles:  3,
	}
}

func TestService_Create(t *testing.T) {
	svc := NewService(newFakeSlotRepo(), nopLogger{})

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, 5, resp.RemainingSeats)
	assert.Equal(t, 3, resp.RemainingVehicles)
	// полный день: 9 часов по часам минус обед
	assert.Equal(t, 8.0, resp.DurationHours)
}

func TestService_Create_StaffOnly(t *testing.T) {
	svc := NewService(newFakeSlotRepo(), nopLogger{})

	req := validCreateRequest()
	req.IsStaff = false

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newFakeSlotRepo(), nopLogger{})

	tests := []struct {
		name   string
		mutate func(*models.CreateSlotRequest)
	}{
		{"negative course", func(r *models.CreateSlotRequest) { r.CourseID = 0 }},
		{"unknown classification", func(r *models.CreateSlotRequest) { r.Classification = "remote" }},
		{"bad date", func(r *models.CreateSlotRequest) { r.Date = "15.09.2026" }},
		{"bad start time", func(r *models.CreateSlotRequest) { r.StartTime = "8am" }},
		{"bad end time", func(r *models.CreateSlotRequest) { r.EndTime = "25:00" }},
		{"start after end", func(r *models.CreateSlotRequest) { r.StartTime = "17:00"; r.EndTime = "08:00" }},
		{"no seats", func(r *models.CreateSlotRequest) { r.TotalSeats = 0 }},
		{"practical without vehicles", func(r *models.CreateSlotRequest) { r.TotalVehicles = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Create_TheoreticalWithoutVehicles(t *testing.T) {
	svc := NewService(newFakeSlotRepo(), nopLogger{})

	req := validCreateRequest()
	req.Classification = "theoretical"
	req.TotalVehicles = 0

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "theoretical", resp.Classification)
	assert.Equal(t, 0, resp.TotalVehicles)
}

func TestService_GetByID(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := NewService(repo, nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
