package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Settings is the typed view of a Document used for schema checks and
// validation. Every field is optional; nil means "not set, default applies".
type Settings struct {
	General       *GeneralSettings      `json:"general,omitempty"`
	Features      *FeatureSettings      `json:"features,omitempty"`
	Security      *SecuritySettings     `json:"security,omitempty"`
	Notifications *NotificationSettings `json:"notifications,omitempty"`
	Branding      *BrandingSettings     `json:"branding,omitempty"`
	Theme         *ThemeSettings        `json:"theme,omitempty"`
	// Integrations is the only open-ended section: any named config is accepted.
	Integrations map[string]any `json:"integrations"`
}

type GeneralSettings struct {
	CompanyName     *string `json:"companyName,omitempty"`
	CompanyEmail    *string `json:"companyEmail,omitempty"`
	CompanyPhone    *string `json:"companyPhone,omitempty"`
	CompanyAddress  *string `json:"companyAddress,omitempty"`
	CompanyWebsite  *string `json:"companyWebsite,omitempty"`
	TaxID           *string `json:"taxId,omitempty"`
	Timezone        *string `json:"timezone,omitempty"`
	DateFormat      *string `json:"dateFormat,omitempty"`
	TimeFormat      *string `json:"timeFormat,omitempty"`
	Currency        *string `json:"currency,omitempty"`
	Language        *string `json:"language,omitempty"`
	FiscalYearStart *string `json:"fiscalYearStart,omitempty"`
}

type FeatureSettings struct {
	EnableInventory     *bool `json:"enableInventory,omitempty"`
	EnableManufacturing *bool `json:"enableManufacturing,omitempty"`
	EnableQuality       *bool `json:"enableQuality,omitempty"`
	EnableMaintenance   *bool `json:"enableMaintenance,omitempty"`
	EnableReports       *bool `json:"enableReports,omitempty"`
	EnableAPI           *bool `json:"enableAPI,omitempty"`
	EnableHR            *bool `json:"enableHR,omitempty"`
	EnableAccounting    *bool `json:"enableAccounting,omitempty"`
	EnableCRM           *bool `json:"enableCRM,omitempty"`
	EnablePurchasing    *bool `json:"enablePurchasing,omitempty"`
	MaxUsers            *int  `json:"maxUsers,omitempty"`
	MaxProjects         *int  `json:"maxProjects,omitempty"`
	// StorageLimit is expressed in megabytes.
	StorageLimit *int `json:"storageLimit,omitempty"`
}

type PasswordPolicy struct {
	MinLength           *int  `json:"minLength,omitempty"`
	RequireUppercase    *bool `json:"requireUppercase,omitempty"`
	RequireLowercase    *bool `json:"requireLowercase,omitempty"`
	RequireNumbers      *bool `json:"requireNumbers,omitempty"`
	RequireSpecialChars *bool `json:"requireSpecialChars,omitempty"`
	ExpiryDays          *int  `json:"expiryDays,omitempty"`
}

type SecuritySettings struct {
	PasswordPolicy *PasswordPolicy `json:"passwordPolicy,omitempty"`
	// SessionTimeout is expressed in minutes.
	SessionTimeout    *int     `json:"sessionTimeout,omitempty"`
	TwoFactorRequired *bool    `json:"twoFactorRequired,omitempty"`
	AllowedDomains    []string `json:"allowedDomains"`
	IPWhitelist       []string `json:"ipWhitelist"`
	MaxLoginAttempts  *int     `json:"maxLoginAttempts,omitempty"`
}

type NotificationSettings struct {
	EmailNotifications     *bool   `json:"emailNotifications,omitempty"`
	SMSNotifications       *bool   `json:"smsNotifications,omitempty"`
	PushNotifications      *bool   `json:"pushNotifications,omitempty"`
	DigestFrequency        *string `json:"digestFrequency,omitempty"`
	NotifyOnLogin          *bool   `json:"notifyOnLogin,omitempty"`
	NotifyOnSettingsChange *bool   `json:"notifyOnSettingsChange,omitempty"`
}

type BrandingSettings struct {
	LogoURL        *string `json:"logoUrl,omitempty"`
	FaviconURL     *string `json:"faviconUrl,omitempty"`
	PrimaryColor   *string `json:"primaryColor,omitempty"`
	SecondaryColor *string `json:"secondaryColor,omitempty"`
	AccentColor    *string `json:"accentColor,omitempty"`
	CustomCSS      *string `json:"customCss,omitempty"`
}

type ThemeSettings struct {
	Mode                     *string `json:"mode,omitempty"`
	PrimaryColor             *string `json:"primaryColor,omitempty"`
	SecondaryColor           *string `json:"secondaryColor,omitempty"`
	AccentColor              *string `json:"accentColor,omitempty"`
	BackgroundColor          *string `json:"backgroundColor,omitempty"`
	SurfaceColor             *string `json:"surfaceColor,omitempty"`
	TextColor                *string `json:"textColor,omitempty"`
	SidebarColor             *string `json:"sidebarColor,omitempty"`
	HeaderColor              *string `json:"headerColor,omitempty"`
	HeaderTextColor          *string `json:"headerTextColor,omitempty"`
	HeaderGradientEnabled    *bool   `json:"headerGradientEnabled,omitempty"`
	HeaderGradientStartColor *string `json:"headerGradientStartColor,omitempty"`
	HeaderGradientEndColor   *string `json:"headerGradientEndColor,omitempty"`
	HeaderGradientDirection  *string `json:"headerGradientDirection,omitempty"`
	FontFamily               *string `json:"fontFamily,omitempty"`
	BorderRadius             *int    `json:"borderRadius,omitempty"`
}

// Decode checks doc against the schema and returns its typed view. Unknown
// keys outside integrations and values of the wrong type are reported as
// *ValidationError.
func Decode(doc Document) (*Settings, error) {
	if err := checkKnownKeys(doc, reflect.TypeOf(Settings{}), ""); err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ValidationError{
				Field:  typeErr.Field,
				Value:  typeErr.Value,
				Reason: "must be of type " + typeErr.Type.String(),
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return &s, nil
}

func checkKnownKeys(m map[string]any, t reflect.Type, prefix string) error {
	fields := jsonFields(t)
	for key, value := range m {
		field, ok := fields[key]
		if !ok {
			return &ValidationError{Field: prefix + key, Reason: "is not a recognised setting"}
		}

		ft := field.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() != reflect.Struct {
			continue
		}
		if nested, isMap := asMap(value); isMap {
			if err := checkKnownKeys(nested, ft, prefix+key+"."); err != nil {
				return err
			}
		}
	}
	return nil
}

func jsonFields(t reflect.Type) map[string]reflect.StructField {
	fields := make(map[string]reflect.StructField, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		fields[name] = f
	}
	return fields
}
