// internal/application/validate_test.go
//
// Unit-tests for submission validation.
//
// Context
// -------
// Validate must report *every* failing field, never mention clean fields,
// coerce professionalism from both JSON numbers and numeric strings, and
// surface failures as an errors.As-detectable ValidationError.
//
// Run: go test ./internal/application -v

package application

import (
	"errors"
	"strings"
	"testing"
)

// goodSubmission returns a payload that passes every check.
func goodSubmission() Submission {
	return Submission{
		Username:        "alice",
		AboutYourself:   strings.Repeat("A", 10),
		WhyJoin:         strings.Repeat("B", 10),
		Timezone:        "UTC+00:00",
		ActivityLevel:   "daily",
		Professionalism: float64(7),
		Joke:            "knock knock",
	}
}

// fieldsOf unwraps err into its per-field messages.  A nil err yields an
// empty map; a non-ValidationError err fails the test.
func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	m := make(map[string]string)
	if err == nil {
		return m
	}
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error is %T, want ValidationError", err)
	}
	for _, e := range verr.Fields {
		m[e.Field] = e.Message
	}
	return m
}

func TestValidate_Accepts(t *testing.T) {
	app, err := Validate(goodSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Username != "alice" || app.Professionalism != 7 {
		t.Fatalf("normalization wrong: %#v", app)
	}
	if app.ID != 0 || !app.CreatedAt.IsZero() {
		t.Fatalf("validator must not assign ID or CreatedAt: %#v", app)
	}
}

func TestValidate_FailureIsValidationError(t *testing.T) {
	_, err := Validate(Submission{})
	if err == nil {
		t.Fatal("empty submission accepted")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error is %T, not detectable as ValidationError", err)
	}
	if len(verr.Fields) == 0 {
		t.Fatal("ValidationError carries no fields")
	}
}

func TestValidate_TrimsWhitespace(t *testing.T) {
	sub := goodSubmission()
	sub.Username = "  alice  "
	sub.Joke = "\tknock knock\n"

	app, err := Validate(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Username != "alice" || app.Joke != "knock knock" {
		t.Fatalf("trim failed: %#v", app)
	}
}

func TestValidate_EmptySubmission_ReportsEveryField(t *testing.T) {
	_, err := Validate(Submission{})

	want := []string{
		"username", "aboutYourself", "whyJoin", "joke",
		"timezone", "activityLevel", "professionalism",
	}
	got := fieldsOf(t, err)
	if len(got) != len(want) {
		t.Fatalf("got %d errors, want %d: %#v", len(got), len(want), got)
	}
	for _, f := range want {
		if _, ok := got[f]; !ok {
			t.Errorf("field %q not reported", f)
		}
	}
}

func TestValidate_OnlyBadFieldsReported(t *testing.T) {
	sub := goodSubmission()
	sub.AboutYourself = "short"
	sub.Professionalism = float64(11)

	_, err := Validate(sub)
	got := fieldsOf(t, err)
	if len(got) != 2 {
		t.Fatalf("got %d errors, want 2: %#v", len(got), got)
	}
	if _, ok := got["aboutYourself"]; !ok {
		t.Errorf("aboutYourself not reported")
	}
	if _, ok := got["professionalism"]; !ok {
		t.Errorf("professionalism not reported")
	}
}

func TestValidate_Professionalism(t *testing.T) {
	cases := []struct {
		name  string
		raw   any
		valid bool
	}{
		{"json number", float64(7), true},
		{"numeric string", "7", true},
		{"lower bound", float64(1), true},
		{"upper bound", float64(10), true},
		{"zero", float64(0), false},
		{"eleven", float64(11), false},
		{"fractional", 7.5, false},
		{"not a number", "very", false},
		{"missing", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := goodSubmission()
			sub.Professionalism = tc.raw

			_, err := Validate(sub)
			_, reported := fieldsOf(t, err)["professionalism"]
			if tc.valid && reported {
				t.Fatalf("value %v rejected", tc.raw)
			}
			if !tc.valid && !reported {
				t.Fatalf("value %v accepted", tc.raw)
			}
		})
	}
}

func TestValidate_EnumFields(t *testing.T) {
	sub := goodSubmission()
	sub.Timezone = "UTC+13:00"
	sub.ActivityLevel = "sometimes"

	_, err := Validate(sub)
	got := fieldsOf(t, err)
	if len(got) != 2 {
		t.Fatalf("got %d errors, want 2: %#v", len(got), got)
	}
	if _, ok := got["timezone"]; !ok {
		t.Errorf("timezone not reported")
	}
	if _, ok := got["activityLevel"]; !ok {
		t.Errorf("activityLevel not reported")
	}
}

func TestValidate_WhitespaceOnlyIsRequired(t *testing.T) {
	sub := goodSubmission()
	sub.WhyJoin = "   \t  "

	_, err := Validate(sub)
	if msg := fieldsOf(t, err)["whyJoin"]; msg != "This field is required." {
		t.Fatalf("whyJoin message = %q", msg)
	}
}

func TestValidate_LengthsCountRunes(t *testing.T) {
	// Three runes, nine bytes: a byte count would sneak past the
	// five-character joke minimum.
	sub := goodSubmission()
	sub.Joke = "日本語"

	_, err := Validate(sub)
	if _, ok := fieldsOf(t, err)["joke"]; !ok {
		t.Fatal("three-rune joke passed the five-character minimum")
	}

	// Ten runes of multibyte text satisfy the ten-character minimum.
	sub = goodSubmission()
	sub.AboutYourself = strings.Repeat("あ", 10)

	_, err = Validate(sub)
	if _, ok := fieldsOf(t, err)["aboutYourself"]; ok {
		t.Fatal("ten-rune multibyte text rejected")
	}
}
