package settings

import "encoding/json"

// DefaultSettings returns the fully populated default settings.
func DefaultSettings() Settings {
	return Settings{
		General: &GeneralSettings{
			CompanyName:     ptr(""),
			CompanyEmail:    ptr(""),
			CompanyPhone:    ptr(""),
			CompanyAddress:  ptr(""),
			CompanyWebsite:  ptr(""),
			TaxID:           ptr(""),
			Timezone:        ptr("UTC"),
			DateFormat:      ptr("YYYY-MM-DD"),
			TimeFormat:      ptr("24h"),
			Currency:        ptr("USD"),
			Language:        ptr("en"),
			FiscalYearStart: ptr("01-01"),
		},
		Features: &FeatureSettings{
			EnableInventory:     ptr(true),
			EnableManufacturing: ptr(true),
			EnableQuality:       ptr(false),
			EnableMaintenance:   ptr(false),
			EnableReports:       ptr(true),
			EnableAPI:           ptr(false),
			EnableHR:            ptr(true),
			EnableAccounting:    ptr(true),
			EnableCRM:           ptr(true),
			EnablePurchasing:    ptr(true),
			MaxUsers:            ptr(10),
			MaxProjects:         ptr(5),
			StorageLimit:        ptr(1024),
		},
		Security: &SecuritySettings{
			PasswordPolicy: &PasswordPolicy{
				MinLength:           ptr(8),
				RequireUppercase:    ptr(true),
				RequireLowercase:    ptr(true),
				RequireNumbers:      ptr(true),
				RequireSpecialChars: ptr(false),
				ExpiryDays:          ptr(90),
			},
			SessionTimeout:    ptr(30),
			TwoFactorRequired: ptr(false),
			AllowedDomains:    []string{},
			IPWhitelist:       []string{},
			MaxLoginAttempts:  ptr(5),
		},
		Notifications: &NotificationSettings{
			EmailNotifications:     ptr(true),
			SMSNotifications:       ptr(false),
			PushNotifications:      ptr(true),
			DigestFrequency:        ptr("daily"),
			NotifyOnLogin:          ptr(false),
			NotifyOnSettingsChange: ptr(true),
		},
		Branding: &BrandingSettings{
			LogoURL:        ptr(""),
			FaviconURL:     ptr(""),
			PrimaryColor:   ptr("#1890ff"),
			SecondaryColor: ptr("#52c41a"),
			AccentColor:    ptr("#faad14"),
			CustomCSS:      ptr(""),
		},
		Theme: &ThemeSettings{
			Mode:                     ptr("light"),
			PrimaryColor:             ptr("#1890ff"),
			SecondaryColor:           ptr("#52c41a"),
			AccentColor:              ptr("#faad14"),
			BackgroundColor:          ptr("#ffffff"),
			SurfaceColor:             ptr("#f5f5f5"),
			TextColor:                ptr("#000000"),
			SidebarColor:             ptr("#001529"),
			HeaderColor:              ptr("#ffffff"),
			HeaderTextColor:          ptr("#000000"),
			HeaderGradientEnabled:    ptr(false),
			HeaderGradientStartColor: ptr("#1890ff"),
			HeaderGradientEndColor:   ptr("#096dd9"),
			HeaderGradientDirection:  ptr("to-r"),
			FontFamily:               ptr("Inter, sans-serif"),
			BorderRadius:             ptr(6),
		},
		Integrations: map[string]any{},
	}
}

// Default returns the default settings as a Document, shaped exactly like a
// document decoded from storage.
func Default() Document {
	data, err := json.Marshal(DefaultSettings())
	if err != nil {
		panic("settings: default document does not encode: " + err.Error())
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		panic("settings: default document does not decode: " + err.Error())
	}
	return doc
}

func ptr[T any](v T) *T {
	return &v
}
