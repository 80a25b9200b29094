package forms

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"resume-generator/resume/model"
	"resume-generator/resume/variant"
)

const skillPrefix = "skills."

// Form keys of the single-value inputs.
const (
	keyName              = "name"
	keyCity              = "city"
	keyArea              = "area"
	keyZipcode           = "zipcode"
	keyEmail             = "email"
	keyPhone             = "phone"
	keyLinkedIn          = "linkedin"
	keySummary           = "summary"
	keyProfile           = "profile"
	keyCompany           = "company"
	keyStartDate         = "start_date"
	keyCurrentlyEmployed = "currently_employed"
	keyEndDate           = "end_date"
	keyDescription       = "description"
	keyDegree            = "degree"
	keyUniversity        = "university"
	keyCertifications    = "certifications"
	keyAdditionalSkills  = "additional_skills"
)

// RecordFromForm reads a submitted form into a record. Date fields that do
// not parse are reported and left unset.
func RecordFromForm(form url.Values) (model.Record, []string) {
	var problems []string
	date := func(key, field string) model.Date {
		d, err := model.ParseDate(form.Get(key))
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", field, err))
		}
		return d
	}

	rec := model.Record{
		Name:             form.Get(keyName),
		City:             form.Get(keyCity),
		Area:             form.Get(keyArea),
		Zipcode:          form.Get(keyZipcode),
		Email:            form.Get(keyEmail),
		Phone:            form.Get(keyPhone),
		LinkedIn:         form.Get(keyLinkedIn),
		Summary:          form.Get(keySummary),
		Certifications:   form.Get(keyCertifications),
		AdditionalSkills: form.Get(keyAdditionalSkills),
		Experience: model.Experience{
			Profile:           form.Get(keyProfile),
			Company:           form.Get(keyCompany),
			StartDate:         date(keyStartDate, "experience.startDate"),
			EndDate:           date(keyEndDate, "experience.endDate"),
			CurrentlyEmployed: checked(form.Get(keyCurrentlyEmployed)),
			Description:       form.Get(keyDescription),
		},
		Education: model.Education{
			Degree:     form.Get(keyDegree),
			University: form.Get(keyUniversity),
		},
		Skills: map[string][]string{},
	}

	keys := make([]string, 0, len(form))
	for key := range form {
		if strings.HasPrefix(key, skillPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		rec.Skills[strings.TrimPrefix(key, skillPrefix)] = form[key]
	}
	return rec, problems
}

// FormValues is the inverse of RecordFromForm, used to refill a rejected form.
func FormValues(rec model.Record) url.Values {
	form := url.Values{}
	set := func(key, value string) {
		if value != "" {
			form.Set(key, value)
		}
	}
	set(keyName, rec.Name)
	set(keyCity, rec.City)
	set(keyArea, rec.Area)
	set(keyZipcode, rec.Zipcode)
	set(keyEmail, rec.Email)
	set(keyPhone, rec.Phone)
	set(keyLinkedIn, rec.LinkedIn)
	set(keySummary, rec.Summary)
	set(keyProfile, rec.Experience.Profile)
	set(keyCompany, rec.Experience.Company)
	set(keyStartDate, rec.Experience.StartDate.String())
	set(keyEndDate, rec.Experience.EndDate.String())
	set(keyDescription, rec.Experience.Description)
	set(keyDegree, rec.Education.Degree)
	set(keyUniversity, rec.Education.University)
	set(keyCertifications, rec.Certifications)
	set(keyAdditionalSkills, rec.AdditionalSkills)
	if rec.Experience.CurrentlyEmployed {
		form.Set(keyCurrentlyEmployed, "on")
	}
	for category, values := range rec.Skills {
		for _, value := range values {
			form.Add(skillPrefix+category, value)
		}
	}
	return form
}

func checked(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// fieldKeys maps form keys to the variant field definitions.
func fieldKeys(f variant.Fields) map[string]variant.Field {
	return map[string]variant.Field{
		keyName:              f.Name,
		keyCity:              f.City,
		keyArea:              f.Area,
		keyZipcode:           f.Zipcode,
		keyEmail:             f.Email,
		keyPhone:             f.Phone,
		keyLinkedIn:          f.LinkedIn,
		keySummary:           f.Summary,
		keyProfile:           f.Profile,
		keyCompany:           f.Company,
		keyStartDate:         f.StartDate,
		keyCurrentlyEmployed: f.CurrentlyEmployed,
		keyEndDate:           f.EndDate,
		keyDescription:       f.Description,
		keyDegree:            f.Degree,
		keyUniversity:        f.University,
		keyCertifications:    f.Certifications,
		keyAdditionalSkills:  f.AdditionalSkills,
	}
}
