package settings

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

var gradientDirections = map[string]bool{
	"to-r":  true,
	"to-b":  true,
	"to-br": true,
}

const (
	minMaxUsers       = 1
	minMaxProjects    = 1
	minStorageLimit   = 100
	minSessionTimeout = 5
)

// IsHexColor reports whether s is #RGB or #RRGGBB.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// Validate checks the schema and the value rules of doc. The first
// violation found is returned as a *ValidationError.
func Validate(doc Document) error {
	s, err := Decode(doc)
	if err != nil {
		return err
	}
	return s.Validate()
}

func (s *Settings) Validate() error {
	if f := s.Features; f != nil {
		if err := atLeast("features.maxUsers", f.MaxUsers, minMaxUsers); err != nil {
			return err
		}
		if err := atLeast("features.maxProjects", f.MaxProjects, minMaxProjects); err != nil {
			return err
		}
		if err := atLeast("features.storageLimit", f.StorageLimit, minStorageLimit); err != nil {
			return err
		}
	}

	if sec := s.Security; sec != nil {
		if err := atLeast("security.sessionTimeout", sec.SessionTimeout, minSessionTimeout); err != nil {
			return err
		}
	}

	if s.Branding != nil {
		if err := validateColors("branding", s.Branding); err != nil {
			return err
		}
	}

	if th := s.Theme; th != nil {
		if err := validateColors("theme", th); err != nil {
			return err
		}
		if d := th.HeaderGradientDirection; d != nil && !gradientDirections[*d] {
			return &ValidationError{
				Field:  "theme.headerGradientDirection",
				Value:  *d,
				Reason: "must be one of to-r, to-b, to-br",
			}
		}
	}

	return nil
}

func atLeast(field string, value *int, minimum int) error {
	if value != nil && *value < minimum {
		return &ValidationError{Field: field, Value: *value, Reason: fmt.Sprintf("must be at least %d", minimum)}
	}
	return nil
}

// validateColors checks every *string field of section whose JSON name ends in "Color".
func validateColors(prefix string, section any) error {
	v := reflect.ValueOf(section).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if !strings.HasSuffix(name, "Color") {
			continue
		}
		color, ok := v.Field(i).Interface().(*string)
		if !ok || color == nil {
			continue
		}
		if !IsHexColor(*color) {
			return &ValidationError{
				Field:  prefix + "." + name,
				Value:  *color,
				Reason: "must be a hex color like #RGB or #RRGGBB",
			}
		}
	}
	return nil
}
