package endpoint_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healthplus/clinic-api/config"
	"github.com/healthplus/clinic-api/endpoint"
	"github.com/healthplus/clinic-api/middleware"
	"github.com/healthplus/clinic-api/model"
	"github.com/healthplus/clinic-api/notification"
)

type apiResp struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Error     string          `json:"error"`
	Token     string          `json:"token"`
	User      json.RawMessage `json:"user"`
	Data      json.RawMessage `json:"data"`
	EmailSent *bool           `json:"emailSent"`
}

// fakeNotifier records confirmations on a channel so tests can wait for the
// asynchronous dispatch without sleeping.
type fakeNotifier struct {
	calls chan notification.Confirmation
	err   error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan notification.Confirmation, 8)}
}

func (n *fakeNotifier) SendAppointmentConfirmation(conf notification.Confirmation) error {
	n.calls <- conf
	return n.err
}

// waitForConfirmation blocks until the notifier receives a confirmation or
// the timeout elapses.
func waitForConfirmation(t *testing.T, n *fakeNotifier) notification.Confirmation {
	t.Helper()
	select {
	case conf := <-n.calls:
		return conf
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for confirmation dispatch")
		return notification.Confirmation{}
	}
}

// assertNoConfirmation verifies the notifier stays idle.
func assertNoConfirmation(t *testing.T, n *fakeNotifier) {
	t.Helper()
	select {
	case conf := <-n.calls:
		t.Fatalf("unexpected confirmation dispatched for %s", conf.PatientName)
	case <-time.After(100 * time.Millisecond):
	}
}

// SetupTestServer connects the test database, migrates models and returns a
// router wired like main.go minus the rate limiter. It calls t.Fatalf on
// fatal errors and registers a cleanup that drops the tables.
func SetupTestServer(t *testing.T) (*gin.Engine, *gorm.DB, *fakeNotifier) {
	t.Helper()

	db, err := config.ConnectDatabase()
	if err != nil {
		t.Fatalf("failed to connect test DB: %v", err)
	}

	testModels := []interface{}{&model.User{}, &model.Appointment{}}
	if err := db.AutoMigrate(testModels...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Migrator().DropTable(testModels...); err != nil {
			t.Errorf("failed to drop tables during cleanup: %v", err)
		}
	})

	notifier := newFakeNotifier()

	r := gin.New()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.NotifierMiddleware(notifier))

	api := r.Group("/api")
	{
		api.GET("/health", endpoint.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/register", endpoint.Register)
			auth.POST("/login", endpoint.Login)
			auth.GET("/me", middleware.RequireAuth(), endpoint.CurrentUser)
		}

		appointments := api.Group("/appointments")
		{
			appointments.GET("", endpoint.ListAppointments)
			appointments.POST("", endpoint.CreateAppointment)
			appointments.GET("/:id", endpoint.GetAppointment)
			appointments.PATCH("/:id", endpoint.UpdateAppointmentStatus)
			appointments.DELETE("/:id", endpoint.DeleteAppointment)
		}
	}

	return r, db, notifier
}

func doRequest(r http.Handler, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doJSONRequest(t *testing.T, r http.Handler, method, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request payload: %v", err)
		}
		body = b
	}
	return doRequest(r, method, path, body, headers)
}

// parseAPIResp decodes the standard response envelope and fails the test on
// decoding errors.
func parseAPIResp(t *testing.T, rr *httptest.ResponseRecorder) apiResp {
	t.Helper()
	var resp apiResp
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v; body: %s", err, rr.Body.String())
	}
	return resp
}

func parseDataToMap(t *testing.T, raw json.RawMessage) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("parse data failed: %v; raw: %s", err, string(raw))
	}
	return data
}

// registerUser registers an account and returns the issued token. It fails
// the test on any non-201 response.
func registerUser(t *testing.T, r http.Handler, name, email, password string) string {
	t.Helper()
	body := map[string]string{"name": name, "email": email, "password": password}
	rr := doJSONRequest(t, r, "POST", "/api/auth/register", body, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %s returned %d: %s", email, rr.Code, rr.Body.String())
	}
	resp := parseAPIResp(t, rr)
	if resp.Token == "" {
		t.Fatalf("register %s returned no token", email)
	}
	return resp.Token
}

// validAppointmentPayload builds a booking request that passes validation.
// Callers override individual fields to provoke specific failures.
func validAppointmentPayload() map[string]interface{} {
	return map[string]interface{}{
		"patientName":     "John Smith Jr",
		"patientNumber":   "0123456789",
		"patientEmail":    "",
		"patientGender":   "male",
		"appointmentTime": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"preferredMode":   "video",
	}
}
