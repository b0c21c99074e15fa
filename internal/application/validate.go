// internal/application/validate.go
//
// Server-side validation for moderator-application submissions.
//
// Context
//   The form page (and any direct API caller) posts a flat JSON object.
//   Validate checks every field independently and reports *all* failures in
//   one pass, so the UI can highlight exact issues instead of forcing the
//   submitter through one round-trip per mistake.  Fields that validate
//   cleanly are never mentioned in the error list.
//
// Workflow
//   •  Each field has its own check; a failure appends a FieldError and
//      moves on to the next field.
//   •  Professionalism accepts anything coercible to an integer (JSON
//      number or numeric string); non-coercible input fails that field
//      only.
//   •  On success a normalized Application (strings trimmed) is returned.
//   •  On failure the []FieldError list comes back wrapped in
//      ValidationError, so callers can tell user input errors from system
//      failures via errors.As and answer with a 400, not a 500.
//
// Style
//   Comments are full sentences with two-space spacing and Oxford commas.
//
//------------------------------------------------------------------------------

package application

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// -----------------------------------------------------------------------------
// Error types
// -----------------------------------------------------------------------------

// FieldError describes a single validation failure so the UI can render a
// field-level message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError wraps []FieldError and satisfies the error interface.
//
// It allows callers (the API handler, tests) to distinguish user input
// errors from system failures via errors.As.
type ValidationError struct{ Fields []FieldError }

func (ve ValidationError) Error() string { return "application validation failed" }

// -----------------------------------------------------------------------------
// Field constraints
// -----------------------------------------------------------------------------

const (
	minUsernameLen = 2
	maxUsernameLen = 64
	minAboutLen    = 10
	minWhyJoinLen  = 10
	minJokeLen     = 5
	maxTextLen     = 2000

	minProfessionalism = 1
	maxProfessionalism = 10
)

// -----------------------------------------------------------------------------
// Public API
// -----------------------------------------------------------------------------

// Validate checks every field of sub independently and returns either a
// normalized Application or a ValidationError carrying the complete list
// of field errors.  The checks are order-independent: each field's verdict
// depends only on its own value.
func Validate(sub Submission) (Application, error) {
	var errs []FieldError

	username := strings.TrimSpace(sub.Username)
	if msg := textCheck(username, minUsernameLen, maxUsernameLen); msg != "" {
		errs = append(errs, FieldError{"username", msg})
	}

	about := strings.TrimSpace(sub.AboutYourself)
	if msg := textCheck(about, minAboutLen, maxTextLen); msg != "" {
		errs = append(errs, FieldError{"aboutYourself", msg})
	}

	whyJoin := strings.TrimSpace(sub.WhyJoin)
	if msg := textCheck(whyJoin, minWhyJoinLen, maxTextLen); msg != "" {
		errs = append(errs, FieldError{"whyJoin", msg})
	}

	joke := strings.TrimSpace(sub.Joke)
	if msg := textCheck(joke, minJokeLen, maxTextLen); msg != "" {
		errs = append(errs, FieldError{"joke", msg})
	}

	timezone := strings.TrimSpace(sub.Timezone)
	if !optionAllowed(Timezones, timezone) {
		errs = append(errs, FieldError{"timezone", "Please select a timezone from the list."})
	}

	activity := strings.TrimSpace(sub.ActivityLevel)
	if !optionAllowed(ActivityLevels, activity) {
		errs = append(errs, FieldError{"activityLevel", "Please select an activity level from the list."})
	}

	prof, msg := coerceProfessionalism(sub.Professionalism)
	if msg != "" {
		errs = append(errs, FieldError{"professionalism", msg})
	}

	if len(errs) > 0 {
		return Application{}, ValidationError{Fields: errs}
	}

	return Application{
		Username:        username,
		AboutYourself:   about,
		WhyJoin:         whyJoin,
		Timezone:        timezone,
		ActivityLevel:   activity,
		Professionalism: prof,
		Joke:            joke,
	}, nil
}

// -----------------------------------------------------------------------------
// Field-level helpers
// -----------------------------------------------------------------------------

// textCheck enforces required presence plus min / max length on a trimmed
// string.  Lengths count runes, not bytes, so the messages stay honest for
// multibyte input.  Returns empty string on success, user-visible message
// on failure.
func textCheck(s string, min, max int) string {
	n := utf8.RuneCountInString(s)
	switch {
	case n == 0:
		return "This field is required."
	case n < min:
		return fmt.Sprintf("Must be at least %d characters.", min)
	case n > max:
		return fmt.Sprintf("Must be less than %d characters.", max)
	default:
		return ""
	}
}

func optionAllowed(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}

// coerceProfessionalism converts a JSON number or numeric string into an
// integer and range-checks it.  The original form posts this field from a
// slider, so both `7` and `"7"` arrive in practice.
func coerceProfessionalism(raw any) (int, string) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return 0, "This field is required."
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, "Must be a number."
		}
		f = parsed
	default:
		return 0, "Must be a number."
	}

	n := int(f)
	if float64(n) != f {
		return 0, "Must be a whole number."
	}
	if n < minProfessionalism || n > maxProfessionalism {
		return 0, fmt.Sprintf("Must be between %d and %d.", minProfessionalism, maxProfessionalism)
	}
	return n, ""
}
