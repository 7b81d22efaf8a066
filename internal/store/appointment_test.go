package store_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acasalaka/apapmedika-gateway/internal/apiclient"
	"github.com/acasalaka/apapmedika-gateway/internal/models"
	"github.com/acasalaka/apapmedika-gateway/internal/store"
)

// appointmentFixture wires an appointment store against a fake backend that
// also serves the user directory, recording every entity path requested.
type appointmentFixture struct {
	store    *store.AppointmentStore
	notify   *recordingNotifier
	server   *httptest.Server
	mu       sync.Mutex
	requests []string
}

func newAppointmentFixture(t *testing.T, role models.Role, userID string, register func(f *appointmentFixture, mux *http.ServeMux)) *appointmentFixture {
	t.Helper()

	f := &appointmentFixture{notify: &recordingNotifier{}}
	mux := http.NewServeMux()
	serveUserDetail(mux, userID, role)
	register(f, mux)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	f.store = store.NewAppointmentStore(apiclient.New(0), f.server.URL, resolverFor(f.server.URL), f.notify)
	return f
}

func (f *appointmentFixture) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := r.URL.Path
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}
	f.requests = append(f.requests, path)
}

func (f *appointmentFixture) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func TestAppointmentListScopedByDoctor(t *testing.T) {
	f := newAppointmentFixture(t, models.RoleDoctor, "D1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/by-doctor", func(w http.ResponseWriter, r *http.Request) {
			f.record(r)
			writeEnvelope(w, http.StatusOK, []models.Appointment{{ID: "A1"}}, "")
		})
	})

	items, err := f.store.List(context.Background(), signedToken(t, "dokter@apapmedika.id"))
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, []string{"/api/appointment/by-doctor?idDoctor=D1"}, f.requested())
	assert.Empty(t, f.store.Err())
}

func TestAppointmentListScopedByPatient(t *testing.T) {
	f := newAppointmentFixture(t, models.RolePatient, "P7", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/by-patient", func(w http.ResponseWriter, r *http.Request) {
			f.record(r)
			writeEnvelope(w, http.StatusOK, []models.Appointment{}, "")
		})
	})

	_, err := f.store.List(context.Background(), signedToken(t, "pasien@apapmedika.id"))
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/appointment/by-patient?idPatient=P7"}, f.requested())
}

func TestAppointmentListUnscopedForAdmin(t *testing.T) {
	f := newAppointmentFixture(t, models.RoleAdmin, "AD1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/viewall", func(w http.ResponseWriter, r *http.Request) {
			f.record(r)
			writeEnvelope(w, http.StatusOK, []models.Appointment{{ID: "A1"}, {ID: "A2"}}, "")
		})
	})

	items, err := f.store.List(context.Background(), signedToken(t, "admin@apapmedika.id"))
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, []string{"/api/appointment/viewall"}, f.requested())
}

func TestAppointmentListIdempotent(t *testing.T) {
	f := newAppointmentFixture(t, models.RoleAdmin, "AD1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/viewall", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, []models.Appointment{{ID: "A1"}, {ID: "A2"}}, "")
		})
	})

	token := signedToken(t, "admin@apapmedika.id")
	first, err := f.store.List(context.Background(), token)
	require.NoError(t, err)
	second, err := f.store.List(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, f.store.Items())
}

func TestAppointmentListLoadingOnlyDuringFlight(t *testing.T) {
	var inFlight bool
	f := newAppointmentFixture(t, models.RoleAdmin, "AD1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/viewall", func(w http.ResponseWriter, r *http.Request) {
			inFlight = f.store.Loading()
			writeEnvelope(w, http.StatusOK, []models.Appointment{}, "")
		})
	})

	require.False(t, f.store.Loading(), "loading must be false before the call")

	_, err := f.store.List(context.Background(), signedToken(t, "admin@apapmedika.id"))
	require.NoError(t, err)

	assert.True(t, inFlight, "loading must be true while the request is in flight")
	assert.False(t, f.store.Loading(), "loading must be false after the call settles")
}

func TestAppointmentListFailureKeepsItems(t *testing.T) {
	fail := false
	f := newAppointmentFixture(t, models.RoleAdmin, "AD1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/viewall", func(w http.ResponseWriter, r *http.Request) {
			if fail {
				writeEnvelope(w, http.StatusInternalServerError, nil, "appointment service down")
				return
			}
			writeEnvelope(w, http.StatusOK, []models.Appointment{{ID: "A1"}}, "")
		})
	})

	token := signedToken(t, "admin@apapmedika.id")
	_, err := f.store.List(context.Background(), token)
	require.NoError(t, err)

	fail = true
	_, err = f.store.List(context.Background(), token)
	require.Error(t, err)

	assert.Equal(t, []models.Appointment{{ID: "A1"}}, f.store.Items(), "failed list must not disturb the collection")
	assert.NotEmpty(t, f.store.Err())
	assert.False(t, f.store.Loading(), "loading must settle after failure")
}

func TestAppointmentListUnresolvedIdentity(t *testing.T) {
	f := &appointmentFixture{notify: &recordingNotifier{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/detail/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, nil, "user not found")
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	f.store = store.NewAppointmentStore(apiclient.New(0), f.server.URL, resolverFor(f.server.URL), f.notify)

	_, err := f.store.List(context.Background(), signedToken(t, "ghost@apapmedika.id"))

	require.Error(t, err)
	assert.NotEmpty(t, f.store.Err())
	assert.Empty(t, f.store.Items())
	assert.False(t, f.store.Loading())
}

func TestAddAppointmentAppendsReturnedEntity(t *testing.T) {
	f := newAppointmentFixture(t, models.RolePatient, "P1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/add", func(w http.ResponseWriter, r *http.Request) {
			f.record(r)
			writeEnvelope(w, http.StatusOK, models.Appointment{ID: "A1", DoctorName: "dr. Siti"}, "")
		})
	})

	created, err := f.store.Create(context.Background(), signedToken(t, "pasien@apapmedika.id"), models.CreateAppointmentRequest{
		NIK:      "123",
		DoctorID: "D1",
		Date:     "2025-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "A1", created.ID)
	items := f.store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "A1", items[0].ID)
	assert.Empty(t, f.store.Err())
	assert.Contains(t, f.notify.successes, "Sukses menambahkan appointment")
}

func TestAddAppointmentFailureNotifiesWithBackendMessage(t *testing.T) {
	f := newAppointmentFixture(t, models.RolePatient, "P1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/add", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusBadRequest, nil, "jadwal dokter penuh")
		})
	})

	_, err := f.store.Create(context.Background(), signedToken(t, "pasien@apapmedika.id"), models.CreateAppointmentRequest{NIK: "123"})
	require.Error(t, err)

	assert.Empty(t, f.store.Items())
	assert.Contains(t, f.store.Err(), "Gagal menambah appointment")
	assert.Contains(t, f.store.Err(), "jadwal dokter penuh")
	require.Len(t, f.notify.failures, 1)
}

func TestUpdateAppointmentStatusMutatesOnlyRequestedFields(t *testing.T) {
	f := newAppointmentFixture(t, models.RoleDoctor, "D1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/by-doctor", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, []models.Appointment{
				{ID: "A1", Diagnosis: "flu", Status: models.AppointmentStatusPending},
				{ID: "A2", Status: models.AppointmentStatusPending},
			}, "")
		})
		mux.HandleFunc("/api/appointment/update-status", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, models.Appointment{ID: "A1", Status: models.AppointmentStatusConfirmed}, "")
		})
	})

	token := signedToken(t, "dokter@apapmedika.id")
	_, err := f.store.List(context.Background(), token)
	require.NoError(t, err)

	err = f.store.UpdateStatus(context.Background(), token, models.UpdateAppointmentStatusRequest{
		ID:        "A1",
		Status:    models.AppointmentStatusConfirmed,
		UpdatedBy: "D1",
	})
	require.NoError(t, err)

	items := f.store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, models.AppointmentStatusConfirmed, items[0].Status)
	assert.Equal(t, "D1", items[0].UpdatedBy)
	assert.Equal(t, "flu", items[0].Diagnosis, "fields outside the request must be untouched")
	assert.Equal(t, models.AppointmentStatusPending, items[1].Status)
}

func TestUpdateAppointmentStatusUnknownIDSilentlySkipped(t *testing.T) {
	f := newAppointmentFixture(t, models.RoleDoctor, "D1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/update-status", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, models.Appointment{ID: "A9"}, "")
		})
	})

	err := f.store.UpdateStatus(context.Background(), signedToken(t, "dokter@apapmedika.id"), models.UpdateAppointmentStatusRequest{ID: "A9"})
	require.NoError(t, err)

	assert.Empty(t, f.store.Items(), "mutation without a cached row must not grow the collection")
	assert.Empty(t, f.store.Err())
}

func TestUpdateAppointmentTreatmentsMutatesTreatmentFields(t *testing.T) {
	f := newAppointmentFixture(t, models.RoleDoctor, "D1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/by-doctor", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, []models.Appointment{
				{ID: "A1", Status: models.AppointmentStatusConfirmed, Diagnosis: "flu"},
			}, "")
		})
		mux.HandleFunc("/api/appointment/update-treatments", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, models.Appointment{
				ID:         "A1",
				Diagnosis:  "demam berdarah",
				Treatments: []string{"Infus", "Rawat inap"},
			}, "")
		})
	})

	token := signedToken(t, "dokter@apapmedika.id")
	_, err := f.store.List(context.Background(), token)
	require.NoError(t, err)

	err = f.store.UpdateTreatments(context.Background(), token, models.UpdateAppointmentTreatmentsRequest{
		ID:         "A1",
		Diagnosis:  "demam berdarah",
		Treatments: []int{3, 8},
		UpdatedBy:  "D1",
	})
	require.NoError(t, err)

	items := f.store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "demam berdarah", items[0].Diagnosis)
	assert.Equal(t, []string{"Infus", "Rawat inap"}, items[0].Treatments)
	assert.Equal(t, models.AppointmentStatusConfirmed, items[0].Status, "status must not change on a treatment update")
}

func TestDeleteAppointmentRemovesExactlyOne(t *testing.T) {
	f := newAppointmentFixture(t, models.RoleAdmin, "AD1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/viewall", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, []models.Appointment{{ID: "A1"}, {ID: "A2"}, {ID: "A3"}}, "")
		})
		mux.HandleFunc("/api/appointment/A2/delete", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, nil, "")
		})
	})

	token := signedToken(t, "admin@apapmedika.id")
	_, err := f.store.List(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, f.store.Delete(context.Background(), token, "A2"))

	items := f.store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A1", items[0].ID)
	assert.Equal(t, "A3", items[1].ID)
	assert.Contains(t, f.notify.successes, "Sukses menghapus appointment")
}

func TestDeleteAppointmentFailureKeepsItems(t *testing.T) {
	f := newAppointmentFixture(t, models.RoleAdmin, "AD1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment/viewall", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, []models.Appointment{{ID: "A1"}}, "")
		})
		mux.HandleFunc("/api/appointment/A1/delete", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusForbidden, nil, "tidak boleh")
		})
	})

	token := signedToken(t, "admin@apapmedika.id")
	_, err := f.store.List(context.Background(), token)
	require.NoError(t, err)

	require.Error(t, f.store.Delete(context.Background(), token, "A1"))

	assert.Len(t, f.store.Items(), 1)
	assert.Contains(t, f.store.Err(), "Gagal menghapus appointment")
	assert.False(t, f.store.Loading())
}

func TestAppointmentDetailNotMergedIntoItems(t *testing.T) {
	f := newAppointmentFixture(t, models.RoleAdmin, "AD1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment", func(w http.ResponseWriter, r *http.Request) {
			f.record(r)
			writeEnvelope(w, http.StatusOK, models.Appointment{ID: r.URL.Query().Get("id")}, "")
		})
	})

	item, err := f.store.Detail(context.Background(), signedToken(t, "admin@apapmedika.id"), "A5")
	require.NoError(t, err)

	assert.Equal(t, "A5", item.ID)
	assert.Empty(t, f.store.Items(), "detail must not merge into the collection")
	assert.Equal(t, []string{"/api/appointment?id=A5"}, f.requested())
}

func TestAppointmentDetailFailureSetsError(t *testing.T) {
	f := newAppointmentFixture(t, models.RoleAdmin, "AD1", func(f *appointmentFixture, mux *http.ServeMux) {
		mux.HandleFunc("/api/appointment", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusNotFound, nil, "appointment tidak ditemukan")
		})
	})

	_, err := f.store.Detail(context.Background(), signedToken(t, "admin@apapmedika.id"), "A404")
	require.Error(t, err)

	assert.Contains(t, f.store.Err(), "Gagal mengambil appointment. ")
	assert.Contains(t, f.store.Err(), "appointment tidak ditemukan")
	assert.False(t, f.store.Loading())
}
