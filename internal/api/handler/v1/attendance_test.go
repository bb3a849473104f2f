package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/service"
)

type fakeAttendanceService struct {
	summaries map[string]domain.RegistrationSummary

	markedCode    string
	markedPresent bool
}

func (f *fakeAttendanceService) VerifyCode(_ context.Context, code string) (domain.RegistrationSummary, error) {
	summary, ok := f.summaries[code]
	if !ok {
		return domain.RegistrationSummary{}, service.ErrRegistrationNotFound
	}

	return summary, nil
}

func (f *fakeAttendanceService) MarkAttendance(_ context.Context, code string, isPresent bool) (domain.RegistrationSummary, error) {
	summary, ok := f.summaries[code]
	if !ok {
		return domain.RegistrationSummary{}, service.ErrRegistrationNotFound
	}

	f.markedCode = code
	f.markedPresent = isPresent
	summary.IsPresent = isPresent

	return summary, nil
}

func newAttendanceRouter(svc *fakeAttendanceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewAttendanceHandler(svc)
	router.POST("/attendance/verify", handler.HandleVerifyAttendance)
	router.POST("/attendance/mark", handler.HandleMarkAttendance)

	return router
}

func TestHandleVerifyAttendance(t *testing.T) {
	svc := &fakeAttendanceService{summaries: map[string]domain.RegistrationSummary{
		"A1B2C3": {RegistrationID: 1, ParticipantName: "Asha R", EventTitle: "Hack2025"},
	}}
	router := newAttendanceRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/attendance/verify",
		strings.NewReader(`{"attendance_code":"A1B2C3"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"success":true`)
	assert.Contains(t, resp.Body.String(), "Hack2025")
	assert.Empty(t, svc.markedCode, "verification must not mark attendance")
}

func TestHandleVerifyAttendance_UnknownCode(t *testing.T) {
	router := newAttendanceRouter(&fakeAttendanceService{summaries: map[string]domain.RegistrationSummary{}})

	req := httptest.NewRequest(http.MethodPost, "/attendance/verify",
		strings.NewReader(`{"attendance_code":"ZZZZZZ"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), `"success":false`)
}

func TestHandleVerifyAttendance_BadCodeLength(t *testing.T) {
	router := newAttendanceRouter(&fakeAttendanceService{})

	req := httptest.NewRequest(http.MethodPost, "/attendance/verify",
		strings.NewReader(`{"attendance_code":"ABC"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleMarkAttendance(t *testing.T) {
	svc := &fakeAttendanceService{summaries: map[string]domain.RegistrationSummary{
		"A1B2C3": {RegistrationID: 1, ParticipantName: "Asha R"},
	}}
	router := newAttendanceRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/attendance/mark",
		strings.NewReader(`{"attendance_code":"A1B2C3","is_present":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "A1B2C3", svc.markedCode)
	assert.True(t, svc.markedPresent)
}

func TestHandleMarkAttendance_MissingPresentFlag(t *testing.T) {
	router := newAttendanceRouter(&fakeAttendanceService{})

	req := httptest.NewRequest(http.MethodPost, "/attendance/mark",
		strings.NewReader(`{"attendance_code":"A1B2C3"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code,
		"is_present must be explicit so false is distinguishable from absent")
}
