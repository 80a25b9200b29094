package model

import (
	"strings"
	"time"
)

// Normalize returns a cleaned copy of the record. Unset dates take the value
// of now, mirroring date pickers that default to today.
func Normalize(r Record, now time.Time) Record {
	out := Record{
		Name:             cleanLine(r.Name),
		City:             cleanLine(r.City),
		Area:             cleanLine(r.Area),
		Zipcode:          cleanLine(r.Zipcode),
		Email:            strings.TrimSpace(r.Email),
		Phone:            strings.TrimSpace(r.Phone),
		LinkedIn:         strings.TrimSpace(r.LinkedIn),
		Summary:          cleanText(r.Summary),
		Skills:           normalizeSkills(r.Skills),
		Certifications:   cleanText(r.Certifications),
		AdditionalSkills: cleanText(r.AdditionalSkills),
		Education: Education{
			Degree:     cleanLine(r.Education.Degree),
			University: cleanLine(r.Education.University),
		},
		Experience: Experience{
			Profile:           cleanLine(r.Experience.Profile),
			Company:           cleanLine(r.Experience.Company),
			StartDate:         r.Experience.StartDate,
			EndDate:           r.Experience.EndDate,
			CurrentlyEmployed: r.Experience.CurrentlyEmployed,
			Description:       cleanText(r.Experience.Description),
		},
	}
	today := NewDate(now)
	if out.Experience.StartDate.IsZero() {
		out.Experience.StartDate = today
	}
	if out.Experience.EndDate.IsZero() {
		out.Experience.EndDate = today
	}
	return out
}

func normalizeSkills(skills map[string][]string) map[string][]string {
	out := make(map[string][]string, len(skills))
	for category, values := range skills {
		key := strings.TrimSpace(category)
		if key == "" {
			continue
		}
		seen := make(map[string]struct{}, len(values))
		for _, value := range values {
			trimmed := strings.TrimSpace(value)
			if trimmed == "" {
				continue
			}
			if _, ok := seen[trimmed]; ok {
				continue
			}
			seen[trimmed] = struct{}{}
			out[key] = append(out[key], trimmed)
		}
	}
	return out
}

// cleanText trims every line of multi-line input and unifies line breaks.
func cleanText(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func cleanLine(raw string) string {
	return strings.TrimSpace(raw)
}
