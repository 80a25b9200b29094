// Package layout turns a resume record into the single-column rows of the
// generated document.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"resume-generator/resume/model"
	"resume-generator/resume/variant"
)

// ErrMissingName is returned when a record has nothing to put in the title row.
var ErrMissingName = errors.New("name is required")

// Row is one single-cell table row.
type Row struct {
	Text         string
	Bold         bool
	Size         float64
	Color        string
	Centered     bool
	Heading      bool
	HeightMM     float64
	VAlignBottom bool
	BottomBorder bool
}

// Layout is the complete, ordered content of a document.
type Layout struct {
	Title    string
	Author   string
	FontName string
	FontSize float64
	MarginMM float64
	Rows     []Row
}

// Build lays out rec using the fields, sections and style of v.
func Build(v variant.Variant, rec model.Record) (Layout, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return Layout{}, ErrMissingName
	}
	rec = VisibleFields(v, rec)
	s := v.Style

	b := builder{style: s}
	b.add(Row{Text: rec.Name, Bold: true, Size: s.NameSize, Color: s.HeadingColor, Centered: true})
	if v.Role != "" {
		b.add(Row{Text: v.Role, Size: s.RoleSize, Color: s.HeadingColor, Centered: true})
	}
	if contact := contactLine(rec, s.CompactContact); contact != "" {
		b.add(Row{Text: contact, Size: s.ContactSize, Centered: s.ContactAlign == variant.AlignCenter})
	}

	if sec := v.Sections.Summary; !sec.Hidden {
		b.heading(sec.Heading)
		b.body(rec.Summary)
	}

	if sec := v.Sections.Skills; !sec.Hidden {
		b.heading(sec.Heading)
		b.body(strings.Join(skillLines(v, rec.Skills), "\n"))
	}

	if sec := v.Sections.Experience; !sec.Hidden {
		b.heading(sec.Heading)
		b.add(Row{Text: experienceTitle(rec.Experience), Size: s.ExperienceTitleSize})
		b.body(b.bullets(rec.Experience.Description))
	}

	if sec := v.Sections.Education; !sec.Hidden {
		b.heading(sec.Heading)
		b.body(fmt.Sprintf("%s from %s", rec.Education.Degree, rec.Education.University))
	}

	if sec := v.Sections.Certifications; !sec.Hidden {
		b.heading(sec.Heading)
		b.body(b.bullets(rec.Certifications))
	}

	if sec := v.Sections.AdditionalSkills; !sec.Hidden {
		b.heading(sec.Heading)
		b.body(b.bullets(rec.AdditionalSkills))
	}

	return Layout{
		Title:    v.Role,
		Author:   rec.Name,
		FontName: s.FontName,
		FontSize: s.FontSize,
		MarginMM: s.MarginMM,
		Rows:     b.rows,
	}, nil
}

type builder struct {
	style variant.Style
	rows  []Row
}

func (b *builder) add(row Row) {
	b.rows = append(b.rows, row)
}

func (b *builder) heading(text string) {
	b.add(Row{
		Text:         text,
		Bold:         true,
		Size:         b.style.HeadingSize,
		Color:        b.style.HeadingColor,
		Heading:      true,
		HeightMM:     b.style.HeadingHeightMM,
		VAlignBottom: true,
		BottomBorder: b.style.HeadingBorder,
	})
}

// body adds a body-size row unless text is empty.
func (b *builder) body(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.add(Row{Text: text, Size: b.style.BodySize})
}

func (b *builder) bullets(text string) string {
	lines := model.Lines(text)
	for i, line := range lines {
		lines[i] = b.style.Bullet + line
	}
	return strings.Join(lines, "\n")
}

func skillLines(v variant.Variant, selected map[string][]string) []string {
	var out []string
	for _, category := range v.SkillLines() {
		values := selected[category.ID]
		if len(values) == 0 && v.Style.FilterBlankSkillLines {
			continue
		}
		out = append(out, fmt.Sprintf("%s%s: %s", v.Style.Bullet, category.LineLabel, strings.Join(values, ", ")))
	}
	return out
}

func experienceTitle(exp model.Experience) string {
	end := "Present"
	if !exp.CurrentlyEmployed {
		end = exp.EndDate.MonthYear()
	}
	return fmt.Sprintf("%s at %s (%s - %s)", exp.Profile, exp.Company, exp.StartDate.MonthYear(), end)
}

// contactLine joins the location and contact details. In compact mode empty
// parts are dropped instead of leaving stray separators behind.
func contactLine(rec model.Record, compact bool) string {
	if !compact {
		return fmt.Sprintf("%s, %s, %s | %s | %s | %s",
			rec.City, rec.Area, rec.Zipcode, rec.Email, rec.Phone, rec.LinkedIn)
	}
	location := strings.Join(nonEmpty(rec.City, rec.Area, rec.Zipcode), ", ")
	return strings.Join(nonEmpty(location, rec.Email, rec.Phone, rec.LinkedIn), " | ")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}

// VisibleFields blanks values for inputs the variant does not show, so a JSON
// submission cannot put them on the page.
func VisibleFields(v variant.Variant, rec model.Record) model.Record {
	f := v.Fields
	blank := func(field variant.Field, value *string) {
		if field.Hidden {
			*value = ""
		}
	}
	blank(f.City, &rec.City)
	blank(f.Area, &rec.Area)
	blank(f.Zipcode, &rec.Zipcode)
	blank(f.Email, &rec.Email)
	blank(f.Phone, &rec.Phone)
	blank(f.LinkedIn, &rec.LinkedIn)
	blank(f.Summary, &rec.Summary)
	blank(f.Profile, &rec.Experience.Profile)
	blank(f.Company, &rec.Experience.Company)
	blank(f.Description, &rec.Experience.Description)
	blank(f.Degree, &rec.Education.Degree)
	blank(f.University, &rec.Education.University)
	blank(f.Certifications, &rec.Certifications)
	blank(f.AdditionalSkills, &rec.AdditionalSkills)
	return rec
}
