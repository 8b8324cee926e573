package submit_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	submitBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/submit_booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubUseCase struct {
	req  *submitBooking.Request
	resp *submitBooking.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *submitBooking.Request) (*submitBooking.Response, error) {
	s.req = req
	return s.resp, s.err
}

const body = `{"customerId":7,"entries":[
	{"staffId":1,"date":"2030-03-04","startTime":"13:30","serviceIds":[10,11]},
	{"staffId":2,"date":"2030-03-04","startTime":"9:00","serviceIds":[12],"slotCount":2}
]}`

func post(h *Handler, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload)))
	return w
}

func TestHandleCreated(t *testing.T) {
	uc := &stubUseCase{resp: &submitBooking.Response{Created: []submitBooking.Appointment{{
		ID: 100, CustomerID: 7, StaffID: 1, Date: time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC),
		StartTime: "13:30", EndTime: "15:00", Status: "pending", TotalAmount: 125,
	}}}}
	w := post(NewHandler(uc, nopLogger{}), body)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, int64(7), uc.req.CustomerID)
	require.Len(t, uc.req.Entries, 2)
	assert.Equal(t, []int64{10, 11}, uc.req.Entries[0].ServiceIDs)
	assert.Equal(t, 2, uc.req.Entries[1].SlotCount)

	var resp SubmitBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Created, 1)
	assert.Equal(t, "2030-03-04", resp.Created[0].Date)
	assert.Equal(t, "15:00", resp.Created[0].EndTime)
	assert.Nil(t, resp.FailedIndex)
}

func TestHandleInvalidBody(t *testing.T) {
	uc := &stubUseCase{}
	w := post(NewHandler(uc, nopLogger{}), `{"customerId":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.req)

	w = post(NewHandler(uc, nopLogger{}), `{"customerId":1,"entries":[{"staffId":1,"date":"04.03.2030","startTime":"9:00","serviceIds":[1]}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.req)
}

func TestHandlePartialFailure(t *testing.T) {
	failed := 1
	uc := &stubUseCase{
		resp: &submitBooking.Response{
			Created:       []submitBooking.Appointment{{ID: 100, Status: "pending"}},
			FailedIndex:   &failed,
			FailureReason: "slot is already taken",
			NotAttempted:  []int{2},
		},
		err: &submitBooking.EntryError{
			Index: 1,
			Err:   fmt.Errorf("%w: %w", submitBooking.ErrPartialFailure, submitBooking.ErrSlotTaken),
		},
	}
	w := post(NewHandler(uc, nopLogger{}), body)

	require.Equal(t, http.StatusConflict, w.Code)
	var resp SubmitBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Created, 1)
	require.NotNil(t, resp.FailedIndex)
	assert.Equal(t, 1, *resp.FailedIndex)
	assert.Equal(t, []int{2}, resp.NotAttempted)
	assert.Equal(t, msgPartialFailure, resp.Error)
}

func TestHandlePartialFailureInternal(t *testing.T) {
	failed := 0
	uc := &stubUseCase{
		resp: &submitBooking.Response{Created: []submitBooking.Appointment{}, FailedIndex: &failed},
		err:  fmt.Errorf("%w: %w", submitBooking.ErrPartialFailure, submitBooking.ErrInternal),
	}
	w := post(NewHandler(uc, nopLogger{}), body)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"customer", submitBooking.ErrCustomerNotFound, http.StatusNotFound},
		{"staff", submitBooking.ErrStaffNotFound, http.StatusNotFound},
		{"service", submitBooking.ErrServiceNotFound, http.StatusNotFound},
		{"past date", &submitBooking.EntryError{Index: 0, Err: submitBooking.ErrInvalidDate}, http.StatusBadRequest},
		{"too large", submitBooking.ErrBatchTooLarge, http.StatusBadRequest},
		{"invalid", submitBooking.ErrInvalidInput, http.StatusBadRequest},
		{"not available", &submitBooking.EntryError{Index: 1, Err: submitBooking.ErrSlotNotAvailable}, http.StatusConflict},
		{"overlap", submitBooking.ErrBatchOverlap, http.StatusConflict},
		{"internal", fmt.Errorf("%w: boom", submitBooking.ErrInternal), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := post(NewHandler(&stubUseCase{err: tc.err}, nopLogger{}), body)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestHandleEntryErrorCarriesIndex(t *testing.T) {
	uc := &stubUseCase{err: &submitBooking.EntryError{Index: 1, Err: submitBooking.ErrSlotNotAvailable}}
	w := post(NewHandler(uc, nopLogger{}), body)

	require.Equal(t, http.StatusConflict, w.Code)
	var resp EntryErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.EntryIndex)
	assert.Equal(t, msgSlotNotAvailable, resp.Error)
}
