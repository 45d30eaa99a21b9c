package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	v        *validator.Validate
	cellRe   = regexp.MustCompile(`^[A-Za-z]{1,3}[0-9]+$`)
	fillRe   = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)
	badSheet = `[]:*?/\`
)

// Validator returns a singleton validator with custom rules registered.
func Validator() *validator.Validate {
	if v == nil {
		v = validator.New()
		// Custom: workbook path must have a supported extension
		_ = v.RegisterValidation("xlsx_path", func(fl validator.FieldLevel) bool {
			s := strings.ToLower(strings.TrimSpace(fl.Field().String()))
			if s == "" {
				return false
			}
			return strings.HasSuffix(s, ".xlsx") || strings.HasSuffix(s, ".xlsm")
		})
		// Custom: A1-style cell or corner:corner range
		_ = v.RegisterValidation("a1addr", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			if s == "" {
				return false
			}
			parts := strings.Split(s, ":")
			if len(parts) > 2 {
				return false
			}
			for _, p := range parts {
				if !cellRe.MatchString(p) {
					return false
				}
			}
			return true
		})
		// Custom: sheet name length and forbidden characters
		_ = v.RegisterValidation("sheetname", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if n := utf8.RuneCountInString(s); n < 1 || n > 31 {
				return false
			}
			return !strings.ContainsAny(s, badSheet)
		})
		// Custom: 6 hex digits with optional leading '#'
		_ = v.RegisterValidation("fillhex", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			if s == "" {
				return true // optional; pair with omitempty
			}
			return fillRe.MatchString(s)
		})
	}
	return v
}

// ValidateStruct validates a struct and returns a user-friendly error string
// suitable for MCP tool errors. Returns empty string when valid.
func ValidateStruct(s any) string {
	if err := Validator().Struct(s); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			fe := ve[0]
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				return fmt.Sprintf("VALIDATION: %s is required", field)
			case "xlsx_path":
				return "VALIDATION: file_path must be an Excel file (.xlsx, .xlsm)"
			case "a1addr":
				return fmt.Sprintf("VALIDATION: %s must be a cell or range like B2 or A1:C10", field)
			case "sheetname":
				return "INVALID_SHEET_NAME: sheet name must be 1-31 characters without []:*?/\\"
			case "fillhex":
				return "INVALID_COLOR: fill_hex must be 6 hex characters, e.g. EAF2FF"
			case "min", "max", "gte", "lte":
				return fmt.Sprintf("VALIDATION: %s must satisfy %s=%s", field, fe.Tag(), fe.Param())
			}
			return fmt.Sprintf("VALIDATION: invalid %s", field)
		}
		return "VALIDATION: invalid inputs"
	}
	return ""
}
