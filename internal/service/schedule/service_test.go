package schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/redislock"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/events"
)

var (
	day  = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	next = day.AddDate(0, 0, 1)
)

type fakeAvailabilityRepo struct {
	days     map[string][]domain.AvailabilityWindow
	replaces int
	nextID   int64
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{days: make(map[string][]domain.AvailabilityWindow)}
}

func dayKey(staffID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", staffID, date.Format(domain.DateFormat))
}

func (f *fakeAvailabilityRepo) Fetch(ctx context.Context, filter domain.AvailabilityFilter) ([]domain.AvailabilityWindow, error) {
	out := make([]domain.AvailabilityWindow, 0)
	for _, staffID := range filter.StaffIDs {
		for d := filter.From; !d.After(filter.To); d = d.AddDate(0, 0, 1) {
			out = append(out, f.days[dayKey(staffID, d)]...)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) Replace(ctx context.Context, staffID int64, date time.Time, windows []domain.WindowSpec) error {
	f.replaces++
	rows := make([]domain.AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		f.nextID++
		rows = append(rows, domain.AvailabilityWindow{
			ID: f.nextID, StaffID: staffID, Date: date,
			StartTime: w.StartTime, EndTime: w.EndTime, IsAvailable: w.IsAvailable,
		})
	}
	f.days[dayKey(staffID, date)] = rows
	return nil
}

func (f *fakeAvailabilityRepo) seed(staffID int64, date time.Time, windows ...domain.WindowSpec) {
	_ = f.Replace(context.Background(), staffID, date, windows)
	f.replaces = 0
}

type fakeStaffRepo struct{}

func (fakeStaffRepo) GetStaff(ctx context.Context, id int64) (*domain.Staff, error) {
	if id > 100 {
		return nil, catalogRepo.ErrStaffNotFound
	}
	return &domain.Staff{ID: id, Name: "Anna", IsActive: true}, nil
}

type fakeTxManager struct{ calls int }

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeLocker struct{ busy bool }

func (f *fakeLocker) WithDayLock(ctx context.Context, staffID int64, date time.Time, fn func(ctx context.Context) error) error {
	if f.busy {
		return redislock.ErrLockNotAcquired
	}
	return fn(ctx)
}

type fakePublisher struct {
	subjects []string
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	f.subjects = append(f.subjects, subject)
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	svc       *Service
	repo      *fakeAvailabilityRepo
	locker    *fakeLocker
	publisher *fakePublisher
}

func newFixture() *fixture {
	repo := newFakeAvailabilityRepo()
	locker := &fakeLocker{}
	publisher := &fakePublisher{}
	svc := NewService(repo, fakeStaffRepo{}, &fakeTxManager{}, locker, publisher, nopLogger{}, 31)
	return &fixture{svc: svc, repo: repo, locker: locker, publisher: publisher}
}

func TestSetDayIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.SetDay(ctx, 1, day, true)
	require.NoError(t, err)
	second, err := f.svc.SetDay(ctx, 1, day, true)
	require.NoError(t, err)

	assert.Len(t, first.Windows, 23)
	assert.Len(t, first.AvailableSlots, 23)
	assert.Equal(t, first.AvailableSlots, second.AvailableSlots)
	assert.Equal(t, len(first.Windows), len(second.Windows))
	for i := range first.Windows {
		assert.Equal(t, first.Windows[i].Spec(), second.Windows[i].Spec())
	}
	assert.True(t, second.Changed)
	assert.Equal(t, []string{events.SubjectAvailabilityReplaced, events.SubjectAvailabilityReplaced}, f.publisher.subjects)
}

func TestSetDayUnavailable(t *testing.T) {
	f := newFixture()

	res, err := f.svc.SetDay(context.Background(), 1, day, false)
	require.NoError(t, err)
	assert.Len(t, res.Windows, 23)
	assert.Empty(t, res.AvailableSlots)
	assert.Equal(t, 0, res.Index.AvailableSlotCount(1, day))
}

func TestToggleSlotFlipsExistingWindow(t *testing.T) {
	f := newFixture()
	f.repo.seed(1, day,
		domain.WindowSpec{StartTime: "9:00", EndTime: "9:30", IsAvailable: true},
		domain.WindowSpec{StartTime: "9:30", EndTime: "10:00", IsAvailable: true},
	)

	res, err := f.svc.ToggleSlot(context.Background(), 1, day, "09:30")
	require.NoError(t, err)

	require.Len(t, res.Windows, 2)
	assert.Equal(t, []string{"9:00"}, res.AvailableSlots)
	assert.False(t, res.Index.IsAvailable(1, day, "9:30"))
	assert.Equal(t, 1, f.repo.replaces)
}

func TestToggleSlotInsertsMissingWindow(t *testing.T) {
	f := newFixture()
	f.repo.seed(1, day, domain.WindowSpec{StartTime: "9:00", EndTime: "9:30", IsAvailable: true})

	res, err := f.svc.ToggleSlot(context.Background(), 1, day, "14:00")
	require.NoError(t, err)

	require.Len(t, res.Windows, 2)
	assert.Equal(t, "14:00", res.Windows[1].StartTime)
	assert.Equal(t, "14:30", res.Windows[1].EndTime)
	assert.Equal(t, []string{"9:00", "14:00"}, res.AvailableSlots)
}

func TestToggleSlotRejectsOffGridTime(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ToggleSlot(context.Background(), 1, day, "14:15")
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = f.svc.ToggleSlot(context.Background(), 1, day, "21:00")
	assert.ErrorIs(t, err, ErrInvalidTime)
	assert.Equal(t, 0, f.repo.replaces)
}

func TestCopyDayFromEmptySourceLeavesTarget(t *testing.T) {
	f := newFixture()
	f.repo.seed(1, next, domain.WindowSpec{StartTime: "12:00", EndTime: "12:30", IsAvailable: true})

	res, err := f.svc.CopyDay(context.Background(), 1, day, next)
	require.NoError(t, err)

	assert.False(t, res.Changed)
	assert.Equal(t, WarningEmptySource, res.Warning)
	assert.Equal(t, []string{"12:00"}, res.AvailableSlots)
	assert.Equal(t, 0, f.repo.replaces)
	assert.Empty(t, f.publisher.subjects)
}

func TestCopyDayCopiesPattern(t *testing.T) {
	f := newFixture()
	f.repo.seed(1, day,
		domain.WindowSpec{StartTime: "9:00", EndTime: "9:30", IsAvailable: true},
		domain.WindowSpec{StartTime: "9:30", EndTime: "10:00", IsAvailable: false},
	)
	f.repo.seed(1, next, domain.WindowSpec{StartTime: "15:00", EndTime: "15:30", IsAvailable: true})

	res, err := f.svc.CopyDay(context.Background(), 1, day, next)
	require.NoError(t, err)

	assert.True(t, res.Changed)
	require.Len(t, res.Windows, 2)
	assert.True(t, domain.SameDate(next, res.Windows[0].Date))
	assert.Equal(t, []string{"9:00"}, res.AvailableSlots)
	assert.False(t, res.Index.IsAvailable(1, next, "15:00"))
}

func TestCopyDayRejectsSameDate(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CopyDay(context.Background(), 1, day, day)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCopyStaff(t *testing.T) {
	f := newFixture()
	f.repo.seed(1, day, domain.WindowSpec{StartTime: "10:00", EndTime: "11:00", IsAvailable: true})

	res, err := f.svc.CopyStaff(context.Background(), 1, 2, day)
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.StaffID)
	assert.Equal(t, []string{"10:00", "10:30"}, res.AvailableSlots)

	res, err = f.svc.CopyStaff(context.Background(), 3, 2, day)
	require.NoError(t, err)
	assert.Equal(t, WarningEmptySource, res.Warning)
	assert.Equal(t, []string{"10:00", "10:30"}, res.AvailableSlots)
}

func TestCopyStaffUnknownTarget(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CopyStaff(context.Background(), 1, 500, day)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestApplyMorningTemplate(t *testing.T) {
	f := newFixture()
	f.repo.seed(1, day, domain.WindowSpec{StartTime: "18:00", EndTime: "18:30", IsAvailable: true})

	res, err := f.svc.ApplyTemplate(context.Background(), 1, day, "morning")
	require.NoError(t, err)

	assert.Equal(t, []string{"9:00", "9:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30"}, res.AvailableSlots)
	assert.Len(t, res.Windows, 8)
	for _, w := range res.Windows {
		assert.True(t, w.IsAvailable)
	}
	// слоты вне шаблона отсутствуют, а не помечены недоступными
	for _, slot := range []string{"13:00", "18:00", "20:00"} {
		assert.False(t, res.Index.IsAvailable(1, day, slot), slot)
	}
}

func TestFullTemplateMatchesAvailableDay(t *testing.T) {
	f := newFixture()

	byTemplate, err := f.svc.ApplyTemplate(context.Background(), 1, day, "full")
	require.NoError(t, err)
	byDay, err := f.svc.SetDay(context.Background(), 2, day, true)
	require.NoError(t, err)

	assert.Equal(t, byDay.AvailableSlots, byTemplate.AvailableSlots)
	assert.Equal(t, "20:00", byTemplate.AvailableSlots[len(byTemplate.AvailableSlots)-1])
}

func TestApplyTemplateUnknown(t *testing.T) {
	f := newFixture()
	_, err := f.svc.ApplyTemplate(context.Background(), 1, day, "night")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestApplyTemplateRange(t *testing.T) {
	f := newFixture()

	results, err := f.svc.ApplyTemplateRange(context.Background(), 1, day, day.AddDate(0, 0, 2), "evening")
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, res := range results {
		assert.Equal(t, []string{"17:00", "17:30", "18:00", "18:30", "19:00", "19:30"}, res.AvailableSlots)
	}

	_, err = f.svc.ApplyTemplateRange(context.Background(), 1, day, day.AddDate(0, 0, 40), "evening")
	assert.ErrorIs(t, err, ErrRangeTooLong)

	_, err = f.svc.ApplyTemplateRange(context.Background(), 1, next, day, "evening")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLockedDay(t *testing.T) {
	f := newFixture()
	f.locker.busy = true

	_, err := f.svc.SetDay(context.Background(), 1, day, true)
	assert.ErrorIs(t, err, ErrDayLocked)
	assert.Equal(t, 0, f.repo.replaces)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("nats down")

	res, err := f.svc.SetDay(context.Background(), 1, day, true)
	require.NoError(t, err)
	assert.True(t, res.Changed)
}

func TestTemplatesListed(t *testing.T) {
	list := Templates()
	require.Len(t, list, 6)
	assert.Equal(t, "full", list[0].ID)
	assert.Equal(t, "morning", list[1].ID)

	full, ok := LookupTemplate("full")
	require.True(t, ok)
	assert.Len(t, full.Windows(), 23)

	weekend, _ := LookupTemplate("weekend")
	specs := weekend.Windows()
	assert.Equal(t, "10:00", specs[0].StartTime)
	assert.Equal(t, "17:30", specs[len(specs)-1].StartTime)
}
