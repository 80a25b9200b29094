// Package variant describes the resume form variants: which fields a form
// shows, which skill categories it offers and how the document is styled.
package variant

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DefaultOutputFile is the fixed file name of a generated resume.
const DefaultOutputFile = "resume.docx"

// Variant is one near-duplicate resume form.
type Variant struct {
	ID         string          `yaml:"id" json:"id"`
	Title      string          `yaml:"title" json:"title"`
	Role       string          `yaml:"role" json:"role"`
	OutputFile string          `yaml:"output_file" json:"outputFile"`
	Fields     Fields          `yaml:"fields" json:"fields"`
	Skills     []SkillCategory `yaml:"skills" json:"skills"`
	Sections   Sections        `yaml:"sections" json:"sections"`
	Style      Style           `yaml:"style" json:"style"`
}

// Field controls how a single form input is presented.
type Field struct {
	Label       string `yaml:"label" json:"label"`
	Placeholder string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Hidden      bool   `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Fields lists every input of the form, grouped like the form sections.
type Fields struct {
	Name              Field `yaml:"name" json:"name"`
	City              Field `yaml:"city" json:"city"`
	Area              Field `yaml:"area" json:"area"`
	Zipcode           Field `yaml:"zipcode" json:"zipcode"`
	Email             Field `yaml:"email" json:"email"`
	Phone             Field `yaml:"phone" json:"phone"`
	LinkedIn          Field `yaml:"linkedin" json:"linkedin"`
	Summary           Field `yaml:"summary" json:"summary"`
	Profile           Field `yaml:"profile" json:"profile"`
	Company           Field `yaml:"company" json:"company"`
	StartDate         Field `yaml:"start_date" json:"startDate"`
	CurrentlyEmployed Field `yaml:"currently_employed" json:"currentlyEmployed"`
	EndDate           Field `yaml:"end_date" json:"endDate"`
	Description       Field `yaml:"description" json:"description"`
	Degree            Field `yaml:"degree" json:"degree"`
	University        Field `yaml:"university" json:"university"`
	Certifications    Field `yaml:"certifications" json:"certifications"`
	AdditionalSkills  Field `yaml:"additional_skills" json:"additionalSkills"`
}

// SkillCategory is a multi-select input. Categories are listed in form order;
// LineOrder positions the category's line inside the skills section.
type SkillCategory struct {
	ID        string   `yaml:"id" json:"id"`
	Label     string   `yaml:"label" json:"label"`
	LineLabel string   `yaml:"line_label" json:"lineLabel"`
	LineOrder int      `yaml:"line_order" json:"lineOrder"`
	Options   []string `yaml:"options" json:"options"`
}

// Section is a titled block of the generated document.
type Section struct {
	Heading string `yaml:"heading" json:"heading"`
	Hidden  bool   `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Sections lists the document sections in output order.
type Sections struct {
	Summary          Section `yaml:"summary" json:"summary"`
	Skills           Section `yaml:"skills" json:"skills"`
	Experience       Section `yaml:"experience" json:"experience"`
	Education        Section `yaml:"education" json:"education"`
	Certifications   Section `yaml:"certifications" json:"certifications"`
	AdditionalSkills Section `yaml:"additional_skills" json:"additionalSkills"`
}

// Style carries the cosmetic settings of the generated document. Sizes are in
// points, lengths in millimetres.
type Style struct {
	FontName              string  `yaml:"font_name" json:"fontName"`
	FontSize              float64 `yaml:"font_size" json:"fontSize"`
	NameSize              float64 `yaml:"name_size" json:"nameSize"`
	RoleSize              float64 `yaml:"role_size" json:"roleSize"`
	ContactSize           float64 `yaml:"contact_size" json:"contactSize"`
	HeadingSize           float64 `yaml:"heading_size" json:"headingSize"`
	BodySize              float64 `yaml:"body_size" json:"bodySize"`
	ExperienceTitleSize   float64 `yaml:"experience_title_size" json:"experienceTitleSize"`
	HeadingColor          string  `yaml:"heading_color" json:"headingColor"`
	HeadingHeightMM       float64 `yaml:"heading_height_mm" json:"headingHeightMm"`
	HeadingBorder         bool    `yaml:"heading_border" json:"headingBorder"`
	MarginMM              float64 `yaml:"margin_mm" json:"marginMm"`
	ContactAlign          string  `yaml:"contact_align" json:"contactAlign"`
	Bullet                string  `yaml:"bullet" json:"bullet"`
	FilterBlankSkillLines bool    `yaml:"filter_blank_skill_lines" json:"filterBlankSkillLines"`
	CompactContact        bool    `yaml:"compact_contact" json:"compactContact"`
}

const (
	AlignCenter = "center"
	AlignLeft   = "left"
)

var (
	idPattern  = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)
	hexPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)
)

// Validate checks that a variant definition can drive a form and a document.
func (v Variant) Validate() error {
	if !idPattern.MatchString(v.ID) {
		return fmt.Errorf("%w: id %q must be lowercase kebab or snake case", ErrInvalidVariant, v.ID)
	}
	if strings.TrimSpace(v.Title) == "" {
		return fmt.Errorf("%w: %s: title is required", ErrInvalidVariant, v.ID)
	}
	if v.Fields.Name.Hidden {
		return fmt.Errorf("%w: %s: the name field cannot be hidden", ErrInvalidVariant, v.ID)
	}
	if len(v.Skills) == 0 {
		return fmt.Errorf("%w: %s: at least one skill category is required", ErrInvalidVariant, v.ID)
	}
	seen := make(map[string]struct{}, len(v.Skills))
	for _, category := range v.Skills {
		if !idPattern.MatchString(category.ID) {
			return fmt.Errorf("%w: %s: skill id %q is invalid", ErrInvalidVariant, v.ID, category.ID)
		}
		if _, dup := seen[category.ID]; dup {
			return fmt.Errorf("%w: %s: duplicate skill category %q", ErrInvalidVariant, v.ID, category.ID)
		}
		seen[category.ID] = struct{}{}
		if len(category.Options) == 0 {
			return fmt.Errorf("%w: %s: skill category %q has no options", ErrInvalidVariant, v.ID, category.ID)
		}
	}
	s := v.Style
	if !hexPattern.MatchString(s.HeadingColor) {
		return fmt.Errorf("%w: %s: heading_color %q must be a 6 digit hex color", ErrInvalidVariant, v.ID, s.HeadingColor)
	}
	for name, size := range map[string]float64{
		"font_size":             s.FontSize,
		"name_size":             s.NameSize,
		"role_size":             s.RoleSize,
		"contact_size":          s.ContactSize,
		"heading_size":          s.HeadingSize,
		"body_size":             s.BodySize,
		"experience_title_size": s.ExperienceTitleSize,
		"heading_height_mm":     s.HeadingHeightMM,
		"margin_mm":             s.MarginMM,
	} {
		if size <= 0 {
			return fmt.Errorf("%w: %s: %s must be positive", ErrInvalidVariant, v.ID, name)
		}
	}
	if s.ContactAlign != AlignCenter && s.ContactAlign != AlignLeft {
		return fmt.Errorf("%w: %s: contact_align must be center or left", ErrInvalidVariant, v.ID)
	}
	return nil
}

// SkillLines returns the skill categories in document order.
func (v Variant) SkillLines() []SkillCategory {
	out := append([]SkillCategory(nil), v.Skills...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LineOrder < out[j].LineOrder
	})
	return out
}

// CheckSelection reports skill values that the form could not have produced.
func (v Variant) CheckSelection(skills map[string][]string) []string {
	options := make(map[string]map[string]struct{}, len(v.Skills))
	for _, category := range v.Skills {
		set := make(map[string]struct{}, len(category.Options))
		for _, option := range category.Options {
			set[option] = struct{}{}
		}
		options[category.ID] = set
	}

	categories := make([]string, 0, len(skills))
	for category := range skills {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var problems []string
	for _, category := range categories {
		allowed, ok := options[category]
		if !ok {
			problems = append(problems, fmt.Sprintf("skills.%s: unknown skill category", category))
			continue
		}
		for _, value := range skills[category] {
			if _, ok := allowed[value]; !ok {
				problems = append(problems, fmt.Sprintf("skills.%s: %q is not an option", category, value))
			}
		}
	}
	return problems
}

func (v *Variant) applyDefaults() {
	if v.OutputFile == "" {
		v.OutputFile = DefaultOutputFile
	}
	if v.Style.Bullet == "" {
		v.Style.Bullet = "• "
	}
	if v.Style.ContactAlign == "" {
		v.Style.ContactAlign = AlignCenter
	}
	for i := range v.Skills {
		if v.Skills[i].LineLabel == "" {
			v.Skills[i].LineLabel = v.Skills[i].Label
		}
	}
}
