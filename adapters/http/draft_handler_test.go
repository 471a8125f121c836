package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/khangtran/folio/adapters/event"
	draftUC "github.com/khangtran/folio/internal/application/usecase/draft"
	publishUC "github.com/khangtran/folio/internal/application/usecase/publish"
	"github.com/khangtran/folio/internal/domain/portfolio"
	"github.com/khangtran/folio/pkg/apperror"
	"github.com/khangtran/folio/pkg/auth"
	"github.com/khangtran/folio/pkg/logger"
	"github.com/khangtran/folio/pkg/token"
)

type memDraftRepo struct {
	drafts map[uuid.UUID]portfolio.Draft
}

func (m *memDraftRepo) Get(_ context.Context, ownerID uuid.UUID) (portfolio.Draft, error) {
	d, ok := m.drafts[ownerID]
	if !ok {
		return portfolio.Draft{OwnerID: ownerID}, nil
	}
	return d, nil
}

func (m *memDraftRepo) SaveRaw(_ context.Context, ownerID uuid.UUID, raw []byte) error {
	d := m.drafts[ownerID]
	d.OwnerID = ownerID
	d.Raw = raw
	m.drafts[ownerID] = d
	return nil
}

func (m *memDraftRepo) SavePublishID(_ context.Context, ownerID uuid.UUID, publishID string) error {
	d := m.drafts[ownerID]
	d.OwnerID = ownerID
	d.PublishID = publishID
	m.drafts[ownerID] = d
	return nil
}

type memRegistry struct {
	blobs map[string][]byte
}

func (m *memRegistry) Publish(_ context.Context, id string, snapshot portfolio.Profile) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	m.blobs[id] = raw
	return nil
}

func (m *memRegistry) Fetch(_ context.Context, id string) (*portfolio.Profile, error) {
	raw, ok := m.blobs[id]
	if !ok {
		return nil, apperror.NewNotFound("portfolio", id)
	}
	var p portfolio.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, apperror.NewNotFound("portfolio", id)
	}
	p.Normalize()
	return &p, nil
}

func (m *memRegistry) ListPublished(_ context.Context, _ int) ([]portfolio.PublishedEntry, error) {
	return []portfolio.PublishedEntry{}, nil
}

func (m *memRegistry) GenerateID() string { return token.NewPublishID() }

type dropEmitter struct{}

func (dropEmitter) EmitPortfolioEvent(_ context.Context, _ event.PortfolioEventPayload) error {
	return nil
}

type EditorAPITestSuite struct {
	suite.Suite
	Router  *gin.Engine
	ownerID uuid.UUID
	token   string
}

func (s *EditorAPITestSuite) SetupTest() {
	log := logger.NewNop()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)

	s.ownerID = uuid.New()
	tok, err := jwtSvc.GenerateToken(s.ownerID)
	s.Require().NoError(err)
	s.token = tok

	draftRepo := &memDraftRepo{drafts: map[uuid.UUID]portfolio.Draft{}}
	registry := &memRegistry{blobs: map[string][]byte{}}

	draftHandler := NewDraftHandler(draftUC.NewDraftUseCase(draftRepo), log)
	publishHandler := NewPublishHandler(
		publishUC.NewPublishUseCase(draftRepo, registry, dropEmitter{}, "http://localhost", log), log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(log))

	api := router.Group("/api")
	adminPrivate := api.Group("/admin/")
	adminPrivate.Use(AuthMiddleware(jwtSvc))
	{
		adminPrivate.GET("/draft", draftHandler.GetDraft)
		adminPrivate.PATCH("/draft/fields", draftHandler.SetField)
		adminPrivate.PATCH("/draft/socials", draftHandler.SetSocial)
		adminPrivate.POST("/draft/:list", draftHandler.AddListItem)
		adminPrivate.PATCH("/draft/:list/:id", draftHandler.UpdateListItem)
		adminPrivate.DELETE("/draft/:list/:id", draftHandler.RemoveListItem)
		adminPrivate.POST("/publish", publishHandler.Publish)
	}
	api.GET("/p/:id", publishHandler.GetPublic)

	s.Router = router
}

func TestEditorAPI(t *testing.T) {
	suite.Run(t, new(EditorAPITestSuite))
}

func (s *EditorAPITestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *EditorAPITestSuite) Test_GetDraft_RequiresAuth() {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/draft", nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *EditorAPITestSuite) Test_GetDraft_ReturnsDefaults() {
	w := s.request(http.MethodGet, "/api/admin/draft", nil)
	s.Equal(http.StatusOK, w.Code)

	var p portfolio.Profile
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &p))
	s.Equal(portfolio.DefaultProfile().FullName, p.FullName)
}

func (s *EditorAPITestSuite) Test_SetField_RoundTrip() {
	w := s.request(http.MethodPatch, "/api/admin/draft/fields",
		SetFieldRequest{Name: "title", Value: "Backend Engineer"})
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/admin/draft", nil)
	var p portfolio.Profile
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &p))
	s.Equal("Backend Engineer", p.Title)
}

func (s *EditorAPITestSuite) Test_SetField_UnknownFieldIs400() {
	w := s.request(http.MethodPatch, "/api/admin/draft/fields",
		SetFieldRequest{Name: "shoeSize", Value: "42"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *EditorAPITestSuite) Test_ListItem_AddUpdateRemove() {
	w := s.request(http.MethodPost, "/api/admin/draft/experiences", nil)
	s.Require().Equal(http.StatusCreated, w.Code)

	var added AddListItemResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &added))
	s.NotEmpty(added.ID)

	w = s.request(http.MethodPatch, "/api/admin/draft/experiences/"+added.ID,
		UpdateListItemRequest{Field: "company", Value: "Acme"})
	s.Require().Equal(http.StatusOK, w.Code)

	var updated UpdateListItemResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	s.True(updated.Updated)
	s.Equal("Acme", updated.Profile.Experiences[0].Company)

	w = s.request(http.MethodDelete, "/api/admin/draft/experiences/"+added.ID, nil)
	s.Equal(http.StatusNoContent, w.Code)

	// Deleting again stays a no-op.
	w = s.request(http.MethodDelete, "/api/admin/draft/experiences/"+added.ID, nil)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *EditorAPITestSuite) Test_UpdateListItem_AbsentIDReportsNoMatch() {
	w := s.request(http.MethodPatch, "/api/admin/draft/projects/ghost",
		UpdateListItemRequest{Field: "title", Value: "X"})
	s.Require().Equal(http.StatusOK, w.Code)

	var updated UpdateListItemResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	s.False(updated.Updated)
}

func (s *EditorAPITestSuite) Test_PublishThenPublicFetch() {
	w := s.request(http.MethodPatch, "/api/admin/draft/fields",
		SetFieldRequest{Name: "fullName", Value: "Published Person"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPost, "/api/admin/publish", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var pub PublishResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &pub))
	s.NotEmpty(pub.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/p/"+pub.ID, nil)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var p portfolio.Profile
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &p))
	s.Equal("Published Person", p.FullName)
}

func (s *EditorAPITestSuite) Test_PublicFetch_UnknownIDIs404() {
	req := httptest.NewRequest(http.MethodGet, "/api/p/neverpub", nil)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	s.Equal(http.StatusNotFound, rec.Code)
}
