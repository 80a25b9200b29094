package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() Record {
	return Record{
		Name:     "Jordan Lee",
		City:     "Austin",
		Area:     "Downtown",
		Zipcode:  "73301",
		Email:    "jordan.lee@example.com",
		Phone:    "+1-555-0102",
		LinkedIn: "https://www.linkedin.com/in/jordanlee",
		Summary:  "Analyst with a taste for clean data.",
		Skills: map[string][]string{
			"programming_languages": {"Python", "SQL"},
		},
		Experience: Experience{
			Profile:     "Data Analyst",
			Company:     "Acme",
			StartDate:   NewDate(time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC)),
			EndDate:     NewDate(time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC)),
			Description: "Built dashboards\nAutomated reports",
		},
		Education: Education{Degree: "BSc Statistics", University: "State University"},
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	assert.NoError(t, validRecord().Validate())
}

func TestValidateAcceptsBlankOptionalFields(t *testing.T) {
	rec := Record{Name: "Grace Hopper"}
	assert.NoError(t, rec.Validate())
}

func TestValidateReportsFriendlyMessages(t *testing.T) {
	rec := validRecord()
	rec.Name = ""
	rec.Email = "not-an-email"
	rec.Phone = "call me"
	rec.LinkedIn = "linkedin.com/in/x"
	rec.Zipcode = "#"

	err := rec.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{
		"name: is required",
		"email: must be a valid email address",
		"phone: must be a valid phone number",
		"linkedin: must be a full URL",
		"zipcode: must be a valid zipcode",
	}, verr.Messages)
}

func TestValidateRejectsEndBeforeStart(t *testing.T) {
	rec := validRecord()
	rec.Experience.EndDate = NewDate(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))

	err := rec.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"experience.endDate: must not be before the start date"}, verr.Messages)

	rec.Experience.CurrentlyEmployed = true
	assert.NoError(t, rec.Validate())
}

func TestValidateRejectsControlCharacters(t *testing.T) {
	rec := validRecord()
	rec.Name = "Jordan\x00Lee"

	var verr *ValidationError
	require.ErrorAs(t, rec.Validate(), &verr)
	assert.Equal(t, []string{"name: must not contain control characters"}, verr.Messages)
}

func TestNormalizeCleansInput(t *testing.T) {
	now := time.Date(2024, time.March, 9, 15, 4, 5, 0, time.UTC)
	rec := Record{
		Name:    "  Ada Lovelace ",
		Summary: "Line one C<C++ and Java>Go\r\n  R&D lead  ",
		Skills: map[string][]string{
			"libraries": {" Pandas ", "", "Pandas", "Numpy"},
			"  ":        {"ignored"},
		},
	}

	got := Normalize(rec, now)

	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "Line one C<C++ and Java>Go\nR&D lead", got.Summary, "text is never removed")
	assert.Equal(t, map[string][]string{"libraries": {"Pandas", "Numpy"}}, got.Skills)
	assert.Equal(t, "2024-03-09", got.Experience.StartDate.String())
	assert.Equal(t, "2024-03-09", got.Experience.EndDate.String())
}

func TestValidateReportsMarkup(t *testing.T) {
	rec := validRecord()
	rec.Name = "<b>Ada</b> Lovelace"
	rec.Summary = "Fluent in C<C++ and Java>Go"
	rec.Experience.Description = "Skills: <Python>"

	var verr *ValidationError
	require.ErrorAs(t, rec.Validate(), &verr)
	assert.Equal(t, []string{
		"name: must not contain markup (text between < and > is read as a tag)",
		"summary: must not contain markup (text between < and > is read as a tag)",
		"experience.description: must not contain markup (text between < and > is read as a tag)",
	}, verr.Messages)
}

func TestValidateAcceptsPlainSymbols(t *testing.T) {
	rec := validRecord()
	rec.Summary = "Cut latency to < 10 ms & grew R&D \"wins\" by 3x -> 5x"
	rec.Experience.Description = "Owned A/B tests\nKept p95 < 200ms"

	assert.NoError(t, rec.Validate())
}

func TestNormalizeKeepsProvidedDates(t *testing.T) {
	rec := validRecord()
	got := Normalize(rec, time.Now())
	assert.Equal(t, "2021-04-01", got.Experience.StartDate.String())
	assert.Equal(t, "2023-06-30", got.Experience.EndDate.String())
}

func TestDateJSON(t *testing.T) {
	var exp Experience
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2022-02-01","endDate":null}`), &exp))
	assert.Equal(t, "February 2022", exp.StartDate.MonthYear())
	assert.True(t, exp.EndDate.IsZero())

	payload, err := json.Marshal(exp)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"startDate":"2022-02-01"`)
	assert.Contains(t, string(payload), `"endDate":null`)

	assert.Error(t, json.Unmarshal([]byte(`{"startDate":"02/01/2022"}`), &exp))
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"one", "two", "three"}, Lines("one\r\n\n  two \rthree\n"))
	assert.Empty(t, Lines("   "))
}
