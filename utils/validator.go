package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
)

// Minimal internal validator to avoid external dependency. Supports:
// - required
// - titleok (printable title, 1-150 chars)
// - oneof=a|b|c (string must equal one of the listed values, empty allowed)

var reTitleOK = regexp.MustCompile(`^[^\x00-\x1f]{1,150}$`)

// ValidateStruct inspects struct tags `validate:"..."` and returns the first error encountered.
func ValidateStruct(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.New("ValidateStruct expects a struct or pointer to struct")
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		parts := strings.Split(tag, ",")
		fv := v.Field(i)
		var sval string
		if fv.IsValid() && fv.Kind() == reflect.String {
			sval = fv.String()
		}
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "required" {
				if sval == "" {
					return errors.New(field.Name + " is required")
				}
			} else if p == "titleok" {
				if sval != "" && !reTitleOK.MatchString(sval) {
					return errors.New(field.Name + " contains invalid characters or is too long")
				}
			} else if strings.HasPrefix(p, "oneof=") {
				if sval == "" {
					continue
				}
				allowed := strings.Split(strings.TrimPrefix(p, "oneof="), "|")
				found := false
				for _, a := range allowed {
					if sval == a {
						found = true
						break
					}
				}
				if !found {
					return errors.New(field.Name + " must be one of: " + strings.Join(allowed, ", "))
				}
			}
		}
	}
	return nil
}
