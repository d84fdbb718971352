package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/mocks"
	"github.com/walatech/tenant-core/internal/repository"
	"github.com/walatech/tenant-core/internal/settings"
	"github.com/walatech/tenant-core/pkg/logger"
)

type TenantSettingsServiceTestSuite struct {
	suite.Suite
	mockRepo   *mocks.Repository
	mockTenant *mocks.TenantRepository
	service    *TenantSettingsService
}

func (s *TenantSettingsServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockTenant = new(mocks.TenantRepository)
	s.mockRepo.On("Tenant").Return(s.mockTenant)
	s.service = NewTenantSettingsService(s.mockRepo, logger.NewNopLogger())
}

func TestTenantSettingsService(t *testing.T) {
	suite.Run(t, new(TenantSettingsServiceTestSuite))
}

func activeTenant(id string, stored string) *domain.Tenant {
	tenant := &domain.Tenant{ID: id, Subdomain: "acme", Status: domain.TenantStatusActive}
	if stored != "" {
		tenant.Settings = &stored
	}
	return tenant
}

// captureSettings records the document written through UpdateSettings.
func (s *TenantSettingsServiceTestSuite) captureSettings(ctx context.Context, id string) *settings.Document {
	var written settings.Document
	s.mockTenant.On("UpdateSettings", ctx, id, mock.AnythingOfType("*string")).
		Run(func(args mock.Arguments) {
			raw := args.Get(2).(*string)
			s.Require().NoError(json.Unmarshal([]byte(*raw), &written))
		}).
		Return(nil)
	return &written
}

func (s *TenantSettingsServiceTestSuite) TestGet_DefaultsWhenNothingStored() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "t1").Return(activeTenant("t1", ""), nil)

	doc, err := s.service.Get(ctx, "t1")

	s.NoError(err)
	s.Equal(settings.Default(), doc)
}

func (s *TenantSettingsServiceTestSuite) TestGet_MigratesLegacyFeatures() {
	ctx := context.Background()
	stored := `{"features":{"inventory":true,"production":false,"reporting":true,"userManagement":true}}`
	s.mockTenant.On("GetByID", ctx, "t1").Return(activeTenant("t1", stored), nil)

	doc, err := s.service.Get(ctx, "t1")

	s.NoError(err)
	s.Equal(map[string]any{
		"enableInventory":     true,
		"enableManufacturing": false,
		"enableQuality":       false,
		"enableMaintenance":   false,
		"enableReports":       true,
		"enableAPI":           true,
	}, doc["features"])
	s.mockTenant.AssertNotCalled(s.T(), "UpdateSettings", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TenantSettingsServiceTestSuite) TestGet_NotFound() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := s.service.Get(ctx, "missing")

	s.ErrorIs(err, ErrTenantNotFound)
}

func (s *TenantSettingsServiceTestSuite) TestGet_InactiveTenant() {
	ctx := context.Background()
	for _, status := range []domain.TenantStatus{
		domain.TenantStatusTrial, domain.TenantStatusSuspended, domain.TenantStatusSoftDeleted,
	} {
		id := "t-" + string(status)
		s.mockTenant.On("GetByID", ctx, id).Return(&domain.Tenant{ID: id, Status: status}, nil)

		_, err := s.service.Get(ctx, id)

		s.ErrorIs(err, ErrTenantInactive, status)
	}
}

func (s *TenantSettingsServiceTestSuite) TestUpdate_DeepMergesAndPersists() {
	ctx := context.Background()
	stored := `{"branding":{"primaryColor":"#111111","secondaryColor":"#222222"},"security":{"allowedDomains":["a.com","b.com"]}}`
	s.mockTenant.On("GetByID", ctx, "t1").Return(activeTenant("t1", stored), nil)
	written := s.captureSettings(ctx, "t1")

	doc, err := s.service.Update(ctx, "t1", settings.Document{
		"branding": map[string]any{"primaryColor": "#ff0000"},
		"security": map[string]any{"allowedDomains": []any{"c.com"}},
	})

	s.NoError(err)
	s.Equal(map[string]any{"primaryColor": "#ff0000", "secondaryColor": "#222222"}, doc["branding"])
	s.Equal([]any{"c.com"}, doc["security"].(map[string]any)["allowedDomains"])
	s.Equal(map[string]any{"primaryColor": "#ff0000", "secondaryColor": "#222222"}, (*written)["branding"])
}

func (s *TenantSettingsServiceTestSuite) TestUpdate_ValidationFailureWritesNothing() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "t1").Return(activeTenant("t1", ""), nil)

	_, err := s.service.Update(ctx, "t1", settings.Document{
		"features": map[string]any{"maxUsers": 0},
	})

	s.ErrorIs(err, ErrInvalidSettings)
	var verr *settings.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("features.maxUsers", verr.Field)
	s.mockTenant.AssertNotCalled(s.T(), "UpdateSettings", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TenantSettingsServiceTestSuite) TestUpdate_InactiveTenant() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "t1").Return(&domain.Tenant{ID: "t1", Status: domain.TenantStatusSuspended}, nil)

	_, err := s.service.Update(ctx, "t1", settings.Document{})

	s.ErrorIs(err, ErrTenantInactive)
}

func (s *TenantSettingsServiceTestSuite) TestUpdate_PersistsMigratedLegacyFeatures() {
	ctx := context.Background()
	stored := `{"features":{"inventory":true}}`
	s.mockTenant.On("GetByID", ctx, "t1").Return(activeTenant("t1", stored), nil)
	written := s.captureSettings(ctx, "t1")

	_, err := s.service.Update(ctx, "t1", settings.Document{
		"branding": map[string]any{"primaryColor": "#abcdef"},
	})

	s.NoError(err)
	features := (*written)["features"].(map[string]any)
	s.Equal(true, features["enableInventory"])
	s.NotContains(features, "inventory")
}

func (s *TenantSettingsServiceTestSuite) TestReset() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "t1").Return(activeTenant("t1", `{"branding":{"primaryColor":"#000000"}}`), nil)
	written := s.captureSettings(ctx, "t1")

	doc, err := s.service.Reset(ctx, "t1")

	s.NoError(err)
	s.Equal(settings.Default(), doc)
	s.Equal(settings.Default(), *written)
}

func (s *TenantSettingsServiceTestSuite) TestGetByPath() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "t1").Return(activeTenant("t1", `{"branding":{"primaryColor":"#123456"}}`), nil)

	value, ok, err := s.service.GetByPath(ctx, "t1", "branding.primaryColor")
	s.NoError(err)
	s.True(ok)
	s.Equal("#123456", value)

	_, ok, err = s.service.GetByPath(ctx, "t1", "branding.missing")
	s.NoError(err)
	s.False(ok)
}

func (s *TenantSettingsServiceTestSuite) TestGetByPath_MalformedPath() {
	_, _, err := s.service.GetByPath(context.Background(), "t1", "branding..primaryColor")

	s.ErrorIs(err, settings.ErrInvalidPath)
	s.ErrorIs(err, ErrInvalidSettings)
	s.mockTenant.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything)
}

func (s *TenantSettingsServiceTestSuite) TestSetByPath_CreatesPath() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "t1").Return(activeTenant("t1", `{}`), nil)
	written := s.captureSettings(ctx, "t1")

	doc, err := s.service.SetByPath(ctx, "t1", "integrations.slack.webhook", "https://hooks.example.com/x")

	s.NoError(err)
	s.Equal(map[string]any{"slack": map[string]any{"webhook": "https://hooks.example.com/x"}}, doc["integrations"])
	s.Equal(doc["integrations"], (*written)["integrations"])
}

func (s *TenantSettingsServiceTestSuite) TestSetByPath_InvalidColor() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "t1").Return(activeTenant("t1", ""), nil)

	_, err := s.service.SetByPath(ctx, "t1", "theme.primaryColor", "blue")

	s.ErrorIs(err, ErrInvalidSettings)
	s.mockTenant.AssertNotCalled(s.T(), "UpdateSettings", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TenantSettingsServiceTestSuite) TestSetByPath_InvalidPath() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "t1").Return(activeTenant("t1", ""), nil)

	_, err := s.service.SetByPath(ctx, "t1", "branding..primaryColor", "#ffffff")

	s.ErrorIs(err, settings.ErrInvalidPath)
}
