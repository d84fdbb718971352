package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSettings))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, field, validationErr.Field)
	assert.Contains(t, err.Error(), field)
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestDefault_IsFullyPopulated(t *testing.T) {
	doc := Default()
	for _, section := range []string{"general", "features", "security", "notifications", "branding", "theme", "integrations"} {
		assert.Contains(t, doc, section)
	}
	domains, ok := GetPath(doc, "security.allowedDomains")
	require.True(t, ok)
	assert.Equal(t, []any{}, domains)
}

func TestValidate_NumericBoundaries(t *testing.T) {
	tests := []struct {
		field string
		doc   Document
		valid bool
	}{
		{"features.maxUsers", Document{"features": map[string]any{"maxUsers": 1}}, true},
		{"features.maxUsers", Document{"features": map[string]any{"maxUsers": 0}}, false},
		{"features.maxProjects", Document{"features": map[string]any{"maxProjects": 1}}, true},
		{"features.maxProjects", Document{"features": map[string]any{"maxProjects": -3}}, false},
		{"features.storageLimit", Document{"features": map[string]any{"storageLimit": 100}}, true},
		{"features.storageLimit", Document{"features": map[string]any{"storageLimit": 99}}, false},
		{"security.sessionTimeout", Document{"security": map[string]any{"sessionTimeout": 5}}, true},
		{"security.sessionTimeout", Document{"security": map[string]any{"sessionTimeout": 4}}, false},
	}

	for _, tt := range tests {
		err := Validate(tt.doc)
		if tt.valid {
			assert.NoError(t, err, tt.field)
			continue
		}
		requireFieldError(t, err, tt.field)
	}
}

func TestIsHexColor(t *testing.T) {
	for _, ok := range []string{"#fff", "#FFF", "#1a2b3c", "#A0B1C2"} {
		assert.True(t, IsHexColor(ok), ok)
	}
	for _, bad := range []string{"red", "#12345", "123456", "#ggg", "#1234567", ""} {
		assert.False(t, IsHexColor(bad), bad)
	}
}

func TestValidate_Colors(t *testing.T) {
	assert.NoError(t, Validate(Document{"branding": map[string]any{"primaryColor": "#fff", "secondaryColor": "#1a2b3c"}}))

	requireFieldError(t, Validate(Document{"branding": map[string]any{"primaryColor": "red"}}), "branding.primaryColor")
	requireFieldError(t, Validate(Document{"branding": map[string]any{"secondaryColor": "#12345"}}), "branding.secondaryColor")
	requireFieldError(t, Validate(Document{"theme": map[string]any{"sidebarColor": "123456"}}), "theme.sidebarColor")
	requireFieldError(t, Validate(Document{"theme": map[string]any{"headerGradientEndColor": "blue"}}), "theme.headerGradientEndColor")
}

func TestValidate_ColorErrorNamesValue(t *testing.T) {
	err := Validate(Document{"theme": map[string]any{"primaryColor": "red"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "red")
}

func TestValidate_GradientDirection(t *testing.T) {
	for _, dir := range []string{"to-r", "to-b", "to-br"} {
		assert.NoError(t, Validate(Document{"theme": map[string]any{"headerGradientDirection": dir}}))
	}
	requireFieldError(t, Validate(Document{"theme": map[string]any{"headerGradientDirection": "to-l"}}), "theme.headerGradientDirection")
}

func TestValidate_NullValuesAreUnset(t *testing.T) {
	assert.NoError(t, Validate(Document{
		"features": map[string]any{"maxUsers": nil},
		"theme":    nil,
	}))
}

func TestValidate_UnknownKeysRejected(t *testing.T) {
	requireFieldError(t, Validate(Document{"billing": map[string]any{}}), "billing")
	requireFieldError(t, Validate(Document{"security": map[string]any{"passwordPolicy": map[string]any{"minLen": 3}}}), "security.passwordPolicy.minLen")
}

func TestValidate_LegacyFeatureKeysRejectedOnWrite(t *testing.T) {
	requireFieldError(t, Validate(Document{"features": map[string]any{"inventory": true}}), "features.inventory")
}

func TestValidate_IntegrationsAreOpen(t *testing.T) {
	assert.NoError(t, Validate(Document{"integrations": map[string]any{
		"quickbooks": map[string]any{"realmId": "123", "sandbox": true},
		"slack":      map[string]any{"channels": []any{"#ops"}},
	}}))
}

func TestValidate_WrongType(t *testing.T) {
	err := Validate(Document{"features": map[string]any{"maxUsers": "many"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSettings))
	assert.Contains(t, err.Error(), "maxUsers")
}
