package settings

var legacyFeatureKeys = []string{"inventory", "production", "reporting", "userManagement"}

// MigrateLegacyFeatures rewrites an old-style features object (inventory,
// production, reporting, userManagement) into the current enable* flags.
// Documents without legacy keys are returned unchanged. The input is not
// modified.
func MigrateLegacyFeatures(doc Document) Document {
	features, ok := asMap(doc["features"])
	if !ok || !hasLegacyFeatureKeys(features) {
		return doc
	}

	out := doc.Clone()
	out["features"] = map[string]any{
		"enableInventory":     orFalse(features["inventory"]),
		"enableManufacturing": orFalse(features["production"]),
		"enableQuality":       orFalse(features["quality"]),
		"enableMaintenance":   orFalse(features["maintenance"]),
		"enableReports":       orFalse(features["reporting"]),
		"enableAPI":           orFalse(features["api"], features["userManagement"]),
	}
	return out
}

func hasLegacyFeatureKeys(features map[string]any) bool {
	for _, key := range legacyFeatureKeys {
		if _, ok := features[key]; ok {
			return true
		}
	}
	return false
}

// orFalse returns the first non-null value, or false.
func orFalse(values ...any) any {
	for _, v := range values {
		if v != nil {
			return cloneValue(v)
		}
	}
	return false
}
