package v1

import (
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventfesta/eventfesta-api/internal/api/middleware"
	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/pkg/jwthelper"
	"github.com/eventfesta/eventfesta-api/internal/service"
)

type fakeOrgEventService struct {
	deleted     domain.Event
	deleteErr   error
	gotOrgID    uint
	gotEventID  uint
	deleteCalls int
}

func (f *fakeOrgEventService) CreateEvent(_ context.Context, event domain.Event) (domain.Event, error) {
	return event, nil
}

func (f *fakeOrgEventService) GetEventsByOrganization(context.Context, uint) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeOrgEventService) GetEventByOrganizationAndTitle(context.Context, uint, string) (domain.Event, error) {
	return domain.Event{}, nil
}

func (f *fakeOrgEventService) UpdateEvent(_ context.Context, _, _ uint, update domain.Event) (domain.Event, error) {
	return update, nil
}

func (f *fakeOrgEventService) DeleteEvent(_ context.Context, orgID, eventID uint) (domain.Event, error) {
	f.deleteCalls++
	f.gotOrgID = orgID
	f.gotEventID = eventID
	if f.deleteErr != nil {
		return domain.Event{}, f.deleteErr
	}

	return f.deleted, nil
}

type fakeImageStore struct {
	removed []string
}

func (f *fakeImageStore) Save(*multipart.FileHeader) (string, error) {
	return "stored-ref", nil
}

func (f *fakeImageStore) Remove(ref string) error {
	f.removed = append(f.removed, ref)
	return nil
}

func newDeleteEventRouter(eventSvc *fakeOrgEventService, images *fakeImageStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewOrganizationHandler(nil, eventSvc, nil, images)

	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ClaimsContextKey, &jwthelper.SessionClaims{
			AccountID: 11,
			Role:      domain.RoleOrganization,
		})
	})
	router.DELETE("/organizations/:orgID/events/:eventID", handler.HandleDeleteEvent)

	return router
}

func TestHandleDeleteEvent_RemovesStoredImage(t *testing.T) {
	eventSvc := &fakeOrgEventService{
		deleted: domain.Event{ID: 3, OrganizationID: 11, ImageRef: "poster.png"},
	}
	images := &fakeImageStore{}
	router := newDeleteEventRouter(eventSvc, images)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/organizations/11/events/3", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(11), eventSvc.gotOrgID)
	assert.Equal(t, uint(3), eventSvc.gotEventID)
	assert.Equal(t, []string{"poster.png"}, images.removed)
}

func TestHandleDeleteEvent_UnknownEvent(t *testing.T) {
	eventSvc := &fakeOrgEventService{deleteErr: service.ErrEventNotFound}
	images := &fakeImageStore{}
	router := newDeleteEventRouter(eventSvc, images)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/organizations/11/events/42", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, images.removed)
}

func TestHandleDeleteEvent_OtherAccount(t *testing.T) {
	eventSvc := &fakeOrgEventService{}
	images := &fakeImageStore{}
	router := newDeleteEventRouter(eventSvc, images)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/organizations/99/events/3", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, eventSvc.deleteCalls)
}
