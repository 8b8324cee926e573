package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var day = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type fakeRepo struct {
	windows    []domain.AvailabilityWindow
	err        error
	lastFilter domain.AvailabilityFilter
}

func (f *fakeRepo) Fetch(ctx context.Context, filter domain.AvailabilityFilter) ([]domain.AvailabilityWindow, error) {
	f.lastFilter = filter
	return f.windows, f.err
}

type fakeTxManager struct{ readOnlyCalls int }

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.readOnlyCalls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func window(staffID int64, date time.Time, start, end string, available bool) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{StaffID: staffID, Date: date, StartTime: start, EndTime: end, IsAvailable: available}
}

func TestExecuteGroupsByStaffAndDate(t *testing.T) {
	repo := &fakeRepo{windows: []domain.AvailabilityWindow{
		window(2, day, "9:00", "10:00", true),
		window(1, day, "9:00", "9:30", true),
		window(1, day, "9:30", "10:00", false),
		window(1, day.AddDate(0, 0, 2), "13:00", "17:00", true),
	}}
	uc := NewUseCase(repo, &fakeTxManager{}, nopLogger{}, 31)

	resp, err := uc.Execute(context.Background(), &Request{From: day, To: day.AddDate(0, 0, 2)})
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)

	assert.Equal(t, int64(1), resp.Days[0].StaffID)
	assert.Equal(t, []string{"9:00"}, resp.Days[0].AvailableSlots)
	assert.Len(t, resp.Days[0].Windows, 2)

	assert.Equal(t, int64(1), resp.Days[1].StaffID)
	assert.Equal(t, 8, resp.Days[1].SlotCount)

	assert.Equal(t, int64(2), resp.Days[2].StaffID)
	assert.Equal(t, []string{"9:00", "9:30"}, resp.Days[2].AvailableSlots)
}

func TestExecuteFiltersByStaff(t *testing.T) {
	repo := &fakeRepo{windows: []domain.AvailabilityWindow{window(3, day, "9:00", "9:30", true)}}
	uc := NewUseCase(repo, &fakeTxManager{}, nopLogger{}, 31)

	resp, err := uc.Execute(context.Background(), &Request{From: day, To: day, StaffIDs: []int64{3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, repo.lastFilter.StaffIDs)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, int64(3), resp.Days[0].StaffID)
}

func TestExecuteValidation(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeTxManager{}, nopLogger{}, 7)

	_, err := uc.Execute(context.Background(), &Request{From: day, To: day.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{From: day, To: day.AddDate(0, 0, 7)})
	assert.ErrorIs(t, err, ErrRangeTooLong)

	_, err = uc.Execute(context.Background(), &Request{From: day, To: day, StaffIDs: []int64{0}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteRepositoryError(t *testing.T) {
	uc := NewUseCase(&fakeRepo{err: errors.New("db down")}, &fakeTxManager{}, nopLogger{}, 7)

	_, err := uc.Execute(context.Background(), &Request{From: day, To: day})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecuteReadsInReadOnlyTransaction(t *testing.T) {
	tx := &fakeTxManager{}
	uc := NewUseCase(&fakeRepo{windows: []domain.AvailabilityWindow{window(1, day, "9:00", "9:30", true)}}, tx, nopLogger{}, 7)

	_, err := uc.Execute(context.Background(), &Request{From: day, To: day})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.readOnlyCalls)
}
