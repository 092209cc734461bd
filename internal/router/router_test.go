package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edoc/booking-api/internal/handler"
	appointmentHandler "github.com/edoc/booking-api/internal/handler/appointment"
	availabilityHandler "github.com/edoc/booking-api/internal/handler/availability"
	ratingHandler "github.com/edoc/booking-api/internal/handler/rating"
	"github.com/edoc/booking-api/internal/model"
	"github.com/edoc/booking-api/internal/router"
	"github.com/edoc/booking-api/internal/service/availability"
	"github.com/edoc/booking-api/internal/service/booking"
	"github.com/edoc/booking-api/internal/service/rating"
	apperrors "github.com/edoc/booking-api/pkg/errors"
)

var (
	testClinicID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testDoctorID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	testPESEL     = "90010112345"
	testSlotStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
)

type fixtureStore struct {
	mu     sync.Mutex
	booked map[string]bool
}

func slotKey(clinicID, doctorID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("%s|%s|%d", clinicID, doctorID, at.UTC().Unix())
}

func (s *fixtureStore) clinic() *model.Clinic {
	return &model.Clinic{ID: testClinicID, Name: "MedCenter", City: "Warsaw"}
}

func (s *fixtureStore) doctor() *model.Doctor {
	return &model.Doctor{
		ID:        testDoctorID,
		ClinicID:  testClinicID,
		FirstName: "Anna",
		LastName:  "Kowalska",
		Specialty: "cardiology",
	}
}

func (s *fixtureStore) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	if id == testClinicID {
		return s.clinic(), nil
	}
	return nil, apperrors.NotFound("clinic", nil)
}

func (s *fixtureStore) List(ctx context.Context, city, nameFilter string) ([]*model.Clinic, error) {
	if !strings.EqualFold(city, "Warsaw") {
		return nil, nil
	}
	return []*model.Clinic{s.clinic()}, nil
}

type doctorDir struct{ store *fixtureStore }

func (d doctorDir) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	if id == testDoctorID {
		return d.store.doctor(), nil
	}
	return nil, apperrors.NotFound("doctor", nil)
}

func (d doctorDir) List(ctx context.Context, clinicName, specialty, nameFilter string) ([]*model.Doctor, error) {
	if specialty != "cardiology" {
		return nil, nil
	}
	return []*model.Doctor{d.store.doctor()}, nil
}

type patientDir struct{}

func (patientDir) Get(ctx context.Context, pesel string) (*model.Patient, error) {
	if pesel != testPESEL {
		return nil, apperrors.NotFound("patient", nil)
	}
	return &model.Patient{PESEL: pesel, FirstName: "Jan", LastName: "Nowak", Email: "jan@example.com"}, nil
}

type appointmentStore struct{ store *fixtureStore }

func (a appointmentStore) Insert(ctx context.Context, appointment *model.Appointment) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	key := slotKey(appointment.ClinicID, appointment.DoctorID, appointment.StartTime)
	if a.store.booked[key] {
		return apperrors.Conflict("slot already booked", nil)
	}
	a.store.booked[key] = true
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now().UTC()
	return nil
}

func (a appointmentStore) Exists(ctx context.Context, clinicID, doctorID uuid.UUID, at time.Time) (bool, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return a.store.booked[slotKey(clinicID, doctorID, at)], nil
}

func (a appointmentStore) ListByPatient(ctx context.Context, pesel string) ([]*model.Appointment, error) {
	return nil, nil
}

func (a appointmentStore) ListTimesForDay(ctx context.Context, clinicID, doctorID uuid.UUID, day time.Time) ([]time.Time, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	var times []time.Time
	for t := day; t.Before(day.AddDate(0, 0, 1)); t = t.Add(model.VisitDuration) {
		if a.store.booked[slotKey(clinicID, doctorID, t)] {
			times = append(times, t)
		}
	}
	return times, nil
}

type scheduleDir struct{}

func (scheduleDir) GetWorkingWindow(ctx context.Context, clinicID, doctorID uuid.UUID, day time.Time) (*model.WorkingWindow, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC)
	return &model.WorkingWindow{Start: start, End: start.Add(3 * time.Hour)}, nil
}

type ratingStore struct{}

func (ratingStore) Get(ctx context.Context, appointmentID uuid.UUID) (*model.Rating, error) {
	return nil, apperrors.NotFound("rating", nil)
}

func (ratingStore) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Rating, error) {
	return nil, nil
}

type noopScheduler struct{}

func (noopScheduler) Schedule(ctx context.Context, job model.ReminderJob) {}

func newTestRouter(t *testing.T) *router.Router {
	t.Helper()

	store := &fixtureStore{booked: make(map[string]bool)}
	appointments := appointmentStore{store: store}
	doctors := doctorDir{store: store}

	availabilitySvc := availability.NewService(store, doctors, scheduleDir{}, appointments, availability.Config{})
	bookingSvc := booking.NewService(appointments, store, doctors, patientDir{}, noopScheduler{})
	ratingSvc := rating.NewService(ratingStore{})

	r := router.NewRouter(
		handler.NewHandler(),
		availabilityHandler.NewHandler(availabilitySvc),
		appointmentHandler.NewHandler(bookingSvc),
		ratingHandler.NewHandler(ratingSvc),
		router.Config{},
	)
	r.Setup()
	return r
}

func doRequest(r *router.Router, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSearchFreeSlots(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/appointments/free?since=2024-05-01&city=Warsaw&specialty=cardiology", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, "success", env.Status)

	var slots []model.Slot
	require.NoError(t, json.Unmarshal(env.Data, &slots))
	require.NotEmpty(t, slots)
	assert.Len(t, slots, 20)
	assert.True(t, slots[0].StartTime.Equal(testSlotStart))
}

func TestSearchFreeSlotsRequiresCity(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/appointments/free?since=2024-05-01&specialty=cardiology", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchFreeSlotsRejectsBadDate(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/appointments/free?since=01-05-2024&city=Warsaw&specialty=cardiology", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookAppointment(t *testing.T) {
	r := newTestRouter(t)

	body := fmt.Sprintf(`{"clinic_id":%q,"doctor_id":%q,"start_time":%q,"pesel":%q}`,
		testClinicID, testDoctorID, testSlotStart.Format(time.RFC3339), testPESEL)

	w := doRequest(r, http.MethodPost, "/api/v1/appointments", body)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, "success", env.Status)

	var appt model.Appointment
	require.NoError(t, json.Unmarshal(env.Data, &appt))
	assert.NotEqual(t, uuid.Nil, appt.ID)
	assert.Equal(t, testPESEL, appt.PatientPESEL)
}

func TestBookAppointmentConflict(t *testing.T) {
	r := newTestRouter(t)

	body := fmt.Sprintf(`{"clinic_id":%q,"doctor_id":%q,"start_time":%q,"pesel":%q}`,
		testClinicID, testDoctorID, testSlotStart.Format(time.RFC3339), testPESEL)

	first := doRequest(r, http.MethodPost, "/api/v1/appointments", body)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doRequest(r, http.MethodPost, "/api/v1/appointments", body)
	assert.Equal(t, http.StatusConflict, second.Code)

	env := decodeEnvelope(t, second)
	assert.Equal(t, "error", env.Status)
}

func TestBookAppointmentUnknownPatient(t *testing.T) {
	r := newTestRouter(t)

	body := fmt.Sprintf(`{"clinic_id":%q,"doctor_id":%q,"start_time":%q,"pesel":"00000000000"}`,
		testClinicID, testDoctorID, testSlotStart.Format(time.RFC3339))

	w := doRequest(r, http.MethodPost, "/api/v1/appointments", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookAppointmentRejectsMalformedIDs(t *testing.T) {
	r := newTestRouter(t)

	body := fmt.Sprintf(`{"clinic_id":"not-a-uuid","doctor_id":%q,"start_time":%q,"pesel":%q}`,
		testDoctorID, testSlotStart.Format(time.RFC3339), testPESEL)

	w := doRequest(r, http.MethodPost, "/api/v1/appointments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookedSlotDisappearsFromSearch(t *testing.T) {
	r := newTestRouter(t)

	body := fmt.Sprintf(`{"clinic_id":%q,"doctor_id":%q,"start_time":%q,"pesel":%q}`,
		testClinicID, testDoctorID, testSlotStart.Format(time.RFC3339), testPESEL)
	booked := doRequest(r, http.MethodPost, "/api/v1/appointments", body)
	require.Equal(t, http.StatusCreated, booked.Code)

	w := doRequest(r, http.MethodGet, "/api/v1/appointments/free?since=2024-05-01&city=Warsaw&specialty=cardiology", "")
	require.Equal(t, http.StatusOK, w.Code)

	var slots []model.Slot
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &slots))
	for _, slot := range slots {
		assert.False(t, slot.StartTime.Equal(testSlotStart), "booked slot still offered")
	}
}

func TestListBookedTimes(t *testing.T) {
	r := newTestRouter(t)

	body := fmt.Sprintf(`{"clinic_id":%q,"doctor_id":%q,"start_time":%q,"pesel":%q}`,
		testClinicID, testDoctorID, testSlotStart.Format(time.RFC3339), testPESEL)
	booked := doRequest(r, http.MethodPost, "/api/v1/appointments", body)
	require.Equal(t, http.StatusCreated, booked.Code)

	path := fmt.Sprintf("/api/v1/appointments/booked?clinic_id=%s&doctor_id=%s&date=2024-05-01", testClinicID, testDoctorID)
	w := doRequest(r, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var times []time.Time
	require.NoError(t, json.Unmarshal(env.Data, &times))
	require.Len(t, times, 1)
	assert.True(t, times[0].Equal(testSlotStart))
}

func TestAppointmentRatingNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/appointments/"+uuid.NewString()+"/rating", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDoctorRatingsEmpty(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/doctors/"+testDoctorID.String()+"/ratings", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
