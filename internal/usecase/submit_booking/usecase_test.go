package submit_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/redislock"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/events"
)

var day = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type fakeAvailabilityRepo struct {
	windows []domain.AvailabilityWindow
	err     error
}

func (f *fakeAvailabilityRepo) Fetch(ctx context.Context, filter domain.AvailabilityFilter) ([]domain.AvailabilityWindow, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.AvailabilityWindow, 0)
	for _, w := range f.windows {
		if w.Date.Before(filter.From) || w.Date.After(filter.To) {
			continue
		}
		for _, id := range filter.StaffIDs {
			if w.StaffID == id {
				out = append(out, w)
			}
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	existing  []*domain.Appointment
	created   []domain.AppointmentCreatePayload
	createErr error
	nextID    int64
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, payload *domain.AppointmentCreatePayload) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	f.created = append(f.created, *payload)
	appt := &domain.Appointment{
		ID: f.nextID, CustomerID: payload.CustomerID, StaffID: payload.StaffID, Date: payload.Date,
		StartTime: payload.StartTime, EndTime: payload.EndTime, Status: payload.Status,
		TotalAmount: payload.TotalPrice, Services: payload.ServiceLines,
	}
	f.existing = append(f.existing, appt)
	return appt, nil
}

func (f *fakeAppointmentRepo) ListByStaffAndDate(ctx context.Context, staffID int64, date time.Time, includeInactive bool) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range f.existing {
		if a.StaffID == staffID && domain.SameDate(a.Date, date) && (includeInactive || a.IsActive()) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	services []*domain.Service
}

func (f *fakeCatalog) GetStaff(ctx context.Context, id int64) (*domain.Staff, error) {
	switch {
	case id == 9:
		return &domain.Staff{ID: id, Name: "Уволен", IsActive: false}, nil
	case id > 100:
		return nil, catalogRepo.ErrStaffNotFound
	}
	return &domain.Staff{ID: id, Name: "Анна", IsActive: true}, nil
}

func (f *fakeCatalog) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	if id > 100 {
		return nil, catalogRepo.ErrCustomerNotFound
	}
	return &domain.Customer{ID: id, Name: "Ольга"}, nil
}

func (f *fakeCatalog) GetServicesByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0)
	for _, s := range f.services {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

type fakeTxManager struct{ calls int }

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

type fakePublisher struct{ subjects []string }

func (f *fakePublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	uc           *UseCase
	availability *fakeAvailabilityRepo
	appointments *fakeAppointmentRepo
	tx           *fakeTxManager
	locker       *fakeLocker
	publisher    *fakePublisher
}

func newFixture(windows ...domain.AvailabilityWindow) *fixture {
	f := &fixture{
		availability: &fakeAvailabilityRepo{windows: windows},
		appointments: &fakeAppointmentRepo{},
		tx:           &fakeTxManager{},
		locker:       &fakeLocker{},
		publisher:    &fakePublisher{},
	}
	catalog := &fakeCatalog{services: []*domain.Service{
		{ID: 1, Name: "Стрижка", Price: 500, DurationMinutes: 30, IsActive: true},
		{ID: 2, Name: "Укладка", Price: 300, DurationMinutes: 30, IsActive: true},
		{ID: 3, Name: "Окрашивание", Price: 700, DurationMinutes: 60, IsActive: true},
		{ID: 4, Name: "Архив", Price: 100, DurationMinutes: 30, IsActive: false},
		{ID: 5, Name: "Маникюр", Price: 900, DurationMinutes: 45, IsActive: true},
	}}
	f.uc = NewUseCase(f.availability, f.appointments, catalog, f.tx, f.locker, f.publisher, nopLogger{}, 3)
	f.uc.timeProvider = fixedTime{now: day.Add(8 * time.Hour)}
	return f
}

func window(staffID int64, start, end string, available bool) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{StaffID: staffID, Date: day, StartTime: start, EndTime: end, IsAvailable: available}
}

func fullDay(staffID int64) domain.AvailabilityWindow {
	return window(staffID, "9:00", "20:30", true)
}

func TestSubmitContiguousWindows(t *testing.T) {
	f := newFixture(window(1, "9:00", "9:30", true), window(1, "9:30", "10:00", true))

	resp, err := f.uc.Execute(context.Background(), &Request{CustomerID: 5, Entries: []Entry{
		{StaffID: 1, Date: day, StartTime: "09:00", ServiceIDs: []int64{1, 2}},
	}})
	require.NoError(t, err)
	require.Len(t, resp.Created, 1)
	assert.Equal(t, "9:00", resp.Created[0].StartTime)
	assert.Equal(t, "10:00", resp.Created[0].EndTime)
	assert.Equal(t, "pending", resp.Created[0].Status)
	assert.Nil(t, resp.FailedIndex)
	assert.Equal(t, []string{events.SubjectAppointmentCreated}, f.publisher.subjects)
}

func TestSubmitRejectsGap(t *testing.T) {
	f := newFixture(window(1, "9:00", "9:30", true), window(1, "9:30", "10:00", false))

	_, err := f.uc.Execute(context.Background(), &Request{CustomerID: 5, Entries: []Entry{
		{StaffID: 1, Date: day, StartTime: "9:00", ServiceIDs: []int64{1, 2}},
	}})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	var entryErr *EntryError
	require.True(t, errors.As(err, &entryErr))
	assert.Equal(t, 0, entryErr.Index)
	assert.Empty(t, f.appointments.created)
	assert.Zero(t, f.tx.calls)
}

func TestSubmitBatchCurrentThenQueued(t *testing.T) {
	f := newFixture(fullDay(1))

	resp, err := f.uc.Execute(context.Background(), &Request{CustomerID: 5, Entries: []Entry{
		{StaffID: 1, Date: day, StartTime: "9:00", ServiceIDs: []int64{1}},
		{StaffID: 1, Date: day, StartTime: "10:00", ServiceIDs: []int64{2}},
		{StaffID: 1, Date: day, StartTime: "11:00", ServiceIDs: []int64{3}},
	}})
	require.NoError(t, err)
	require.Len(t, resp.Created, 3)
	require.Len(t, f.appointments.created, 3)

	var total float64
	for _, p := range f.appointments.created {
		total += p.TotalPrice
		assert.Equal(t, domain.StatusPending, p.Status)
	}
	assert.Equal(t, 1500.0, total)
	assert.Equal(t, 500.0, f.appointments.created[0].TotalPrice)
	assert.Equal(t, 300.0, f.appointments.created[1].TotalPrice)
	assert.Equal(t, 700.0, f.appointments.created[2].TotalPrice)
	assert.Equal(t, "12:00", f.appointments.created[2].EndTime)
	assert.Equal(t, 3, f.tx.calls)
	assert.Len(t, f.publisher.subjects, 3)
}

func TestSubmitExplicitSlotCount(t *testing.T) {
	f := newFixture(fullDay(1))

	resp, err := f.uc.Execute(context.Background(), &Request{CustomerID: 5, Entries: []Entry{
		{StaffID: 1, Date: day, StartTime: "14:00", ServiceIDs: []int64{1}, SlotCount: 3},
	}})
	require.NoError(t, err)
	assert.Equal(t, "15:30", resp.Created[0].EndTime)
}

func TestSubmitSlotCountShorterThanServices(t *testing.T) {
	tests := []struct {
		name       string
		serviceIDs []int64
		wantEnd    string
	}{
		{name: "60 minutes", serviceIDs: []int64{3}, wantEnd: "15:00"},
		{name: "75 minutes", serviceIDs: []int64{1, 5}, wantEnd: "15:15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(fullDay(1))

			resp, err := f.uc.Execute(context.Background(), &Request{CustomerID: 5, Entries: []Entry{
				{StaffID: 1, Date: day, StartTime: "14:00", ServiceIDs: tt.serviceIDs, SlotCount: 1},
			}})
			require.NoError(t, err)
			require.Len(t, resp.Created, 1)
			assert.Equal(t, "14:00", resp.Created[0].StartTime)
			assert.Equal(t, tt.wantEnd, resp.Created[0].EndTime)
		})
	}
}

func TestSubmitRejectsOverlapInsideBatch(t *testing.T) {
	f := newFixture(fullDay(1))

	_, err := f.uc.Execute(context.Background(), &Request{CustomerID: 5, Entries: []Entry{
		{StaffID: 1, Date: day, StartTime: "9:00", ServiceIDs: []int64{3}},
		{StaffID: 1, Date: day, StartTime: "9:30", ServiceIDs: []int64{1}},
	}})
	assert.ErrorIs(t, err, ErrBatchOverlap)
	assert.Empty(t, f.appointments.created)
}

func TestSubmitPartialFailure(t *testing.T) {
	f := newFixture(fullDay(1))
	f.appointments.existing = []*domain.Appointment{
		{ID: 77, StaffID: 1, Date: day, StartTime: "10:00", EndTime: "10:30", Status: domain.StatusPending},
		{ID: 78, StaffID: 1, Date: day, StartTime: "9:00", EndTime: "9:30", Status: domain.StatusCancelled},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{CustomerID: 5, Entries: []Entry{
		{StaffID: 1, Date: day, StartTime: "9:00", ServiceIDs: []int64{1}},
		{StaffID: 1, Date: day, StartTime: "10:00", ServiceIDs: []int64{2}},
		{StaffID: 1, Date: day, StartTime: "11:00", ServiceIDs: []int64{2}},
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPartialFailure)
	assert.ErrorIs(t, err, ErrSlotTaken)

	require.NotNil(t, resp)
	require.Len(t, resp.Created, 1)
	assert.Equal(t, "9:00", resp.Created[0].StartTime)
	require.NotNil(t, resp.FailedIndex)
	assert.Equal(t, 1, *resp.FailedIndex)
	assert.NotEmpty(t, resp.FailureReason)
	assert.Equal(t, []int{2}, resp.NotAttempted)
}

func TestSubmitDayLocked(t *testing.T) {
	f := newFixture(fullDay(1))
	f.locker.busy = true

	resp, err := f.uc.Execute(context.Background(), &Request{CustomerID: 5, Entries: []Entry{
		{StaffID: 1, Date: day, StartTime: "9:00", ServiceIDs: []int64{1}},
	}})
	assert.ErrorIs(t, err, ErrDayLocked)
	require.NotNil(t, resp)
	assert.Empty(t, resp.Created)
}

func TestSubmitStoreFailure(t *testing.T) {
	f := newFixture(fullDay(1))
	f.appointments.createErr = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), &Request{CustomerID: 5, Entries: []Entry{
		{StaffID: 1, Date: day, StartTime: "9:00", ServiceIDs: []int64{1}},
	}})
	assert.ErrorIs(t, err, ErrPartialFailure)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestSubmitValidation(t *testing.T) {
	entry := Entry{StaffID: 1, Date: day, StartTime: "9:00", ServiceIDs: []int64{1}}

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "no customer", req: Request{Entries: []Entry{entry}}, want: ErrInvalidInput},
		{name: "no entries", req: Request{CustomerID: 5}, want: ErrInvalidInput},
		{name: "too many", req: Request{CustomerID: 5, Entries: []Entry{entry, entry, entry, entry}}, want: ErrBatchTooLarge},
		{name: "bad time", req: Request{CustomerID: 5, Entries: []Entry{{StaffID: 1, Date: day, StartTime: "9", ServiceIDs: []int64{1}}}}, want: ErrInvalidInput},
		{name: "no services", req: Request{CustomerID: 5, Entries: []Entry{{StaffID: 1, Date: day, StartTime: "9:00"}}}, want: ErrInvalidInput},
		{name: "past date", req: Request{CustomerID: 5, Entries: []Entry{{StaffID: 1, Date: day.AddDate(0, 0, -1), StartTime: "9:00", ServiceIDs: []int64{1}}}}, want: ErrInvalidDate},
		{name: "unknown customer", req: Request{CustomerID: 500, Entries: []Entry{entry}}, want: ErrCustomerNotFound},
		{name: "unknown staff", req: Request{CustomerID: 5, Entries: []Entry{{StaffID: 500, Date: day, StartTime: "9:00", ServiceIDs: []int64{1}}}}, want: ErrStaffNotFound},
		{name: "inactive staff", req: Request{CustomerID: 5, Entries: []Entry{{StaffID: 9, Date: day, StartTime: "9:00", ServiceIDs: []int64{1}}}}, want: ErrStaffNotFound},
		{name: "inactive service", req: Request{CustomerID: 5, Entries: []Entry{{StaffID: 1, Date: day, StartTime: "9:00", ServiceIDs: []int64{4}}}}, want: ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(fullDay(1), fullDay(9))
			resp, err := f.uc.Execute(context.Background(), &tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.appointments.created)
		})
	}
}
