// internal/application/model.go
//
// Domain types for moderator applications.
//
// Context
// -------
// An Application is the accepted, normalized form submission.  The store is
// the only writer of ID and CreatedAt; everything else is produced by
// Validate from the raw Submission payload.  OriginIP, UserAgent, and
// Country are audit-only fields captured from request metadata and are
// never echoed back to the submitter.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package application

import "time"

// Application is an accepted moderator application.
type Application struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	AboutYourself   string    `json:"aboutYourself"`
	WhyJoin         string    `json:"whyJoin"`
	Timezone        string    `json:"timezone"`
	ActivityLevel   string    `json:"activityLevel"`
	Professionalism int       `json:"professionalism"`
	Joke            string    `json:"joke"`
	OriginIP        string    `json:"-"` // audit only
	UserAgent       string    `json:"-"` // audit only
	Country         string    `json:"-"` // audit only, empty without a Geo DB
	CreatedAt       time.Time `json:"createdAt"`
}

// Submission is the raw inbound payload.  Professionalism is `any` because
// the form layer may post it as a JSON number or a numeric string; Validate
// coerces it.  Unknown keys in the payload are ignored by the decoder.
type Submission struct {
	Username        string `json:"username"`
	AboutYourself   string `json:"aboutYourself"`
	WhyJoin         string `json:"whyJoin"`
	Timezone        string `json:"timezone"`
	ActivityLevel   string `json:"activityLevel"`
	Professionalism any    `json:"professionalism"`
	Joke            string `json:"joke"`
}

//
// Enumerations shared with the form page.
//

// Timezones is the fixed UTC-offset label set offered by the form.
var Timezones = []string{
	"UTC-12:00", "UTC-11:00", "UTC-10:00", "UTC-09:00", "UTC-08:00",
	"UTC-07:00", "UTC-06:00", "UTC-05:00", "UTC-04:00", "UTC-03:00",
	"UTC-02:00", "UTC-01:00", "UTC+00:00", "UTC+01:00", "UTC+02:00",
	"UTC+03:00", "UTC+04:00", "UTC+05:00", "UTC+05:30", "UTC+06:00",
	"UTC+07:00", "UTC+08:00", "UTC+09:00", "UTC+10:00", "UTC+11:00",
	"UTC+12:00",
}

// ActivityLevels is the fixed activity-commitment label set.
var ActivityLevels = []string{
	"24/7", "daily", "most-days", "weekends", "occasional",
}
