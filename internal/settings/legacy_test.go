package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateLegacyFeatures(t *testing.T) {
	doc := Document{
		"general": map[string]any{"companyName": "Acme"},
		"features": map[string]any{
			"inventory":      true,
			"production":     true,
			"reporting":      false,
			"userManagement": true,
		},
	}

	got := MigrateLegacyFeatures(doc)

	assert.Equal(t, map[string]any{
		"enableInventory":     true,
		"enableManufacturing": true,
		"enableQuality":       false,
		"enableMaintenance":   false,
		"enableReports":       false,
		"enableAPI":           true,
	}, got["features"])
	assert.Equal(t, map[string]any{"companyName": "Acme"}, got["general"])
	assert.Contains(t, doc["features"], "inventory", "input must not be rewritten")
}

func TestMigrateLegacyFeatures_SingleKeyTriggers(t *testing.T) {
	doc := Document{"features": map[string]any{"reporting": true, "maxUsers": 25}}

	got := MigrateLegacyFeatures(doc)

	assert.Equal(t, map[string]any{
		"enableInventory":     false,
		"enableManufacturing": false,
		"enableQuality":       false,
		"enableMaintenance":   false,
		"enableReports":       true,
		"enableAPI":           false,
	}, got["features"])
}

func TestMigrateLegacyFeatures_APIPrecedence(t *testing.T) {
	doc := Document{"features": map[string]any{"inventory": true, "api": false, "userManagement": true, "quality": true}}

	features := MigrateLegacyFeatures(doc)["features"].(map[string]any)

	assert.Equal(t, false, features["enableAPI"])
	assert.Equal(t, true, features["enableQuality"])
}

func TestMigrateLegacyFeatures_NullFallsBackToFalse(t *testing.T) {
	doc := Document{"features": map[string]any{"inventory": nil, "api": nil, "userManagement": true}}

	features := MigrateLegacyFeatures(doc)["features"].(map[string]any)

	assert.Equal(t, false, features["enableInventory"])
	assert.Equal(t, true, features["enableAPI"])
}

func TestMigrateLegacyFeatures_CurrentShapeUntouched(t *testing.T) {
	doc := Default()
	assert.Equal(t, doc, MigrateLegacyFeatures(doc))

	noFeatures := Document{"general": map[string]any{"currency": "USD"}}
	assert.Equal(t, noFeatures, MigrateLegacyFeatures(noFeatures))
}

func TestMigrateLegacyFeatures_Idempotent(t *testing.T) {
	doc := Document{"features": map[string]any{"inventory": true, "production": false}}

	once := MigrateLegacyFeatures(doc)
	twice := MigrateLegacyFeatures(once)

	assert.Equal(t, once, twice)
}
