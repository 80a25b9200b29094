package forms

import (
	"net/url"

	"resume-generator/resume/variant"
)

type inputKind string

const (
	kindText     inputKind = "text"
	kindEmail    inputKind = "email"
	kindTel      inputKind = "tel"
	kindURL      inputKind = "url"
	kindDate     inputKind = "date"
	kindTextarea inputKind = "textarea"
	kindCheckbox inputKind = "checkbox"
)

type fieldView struct {
	Key         string
	Label       string
	Placeholder string
	Value       string
	Kind        inputKind
	Required    bool
	Checked     bool
}

type optionView struct {
	Value    string
	Selected bool
}

type skillView struct {
	Key     string
	Label   string
	Options []optionView
}

type groupView struct {
	Title  string
	Fields []fieldView
	Skills []skillView
}

type variantLink struct {
	ID      string
	Title   string
	Current bool
}

type formPage struct {
	Title    string
	Role     string
	Action   string
	Variants []variantLink
	Groups   []groupView
	Errors   []string
}

type resultPage struct {
	Title       string
	Role        string
	FileName    string
	DownloadURL string
	FormURL     string
	SizeBytes   int64
}

type groupSpec struct {
	title  string
	keys   []string
	skills bool
}

// Groups mirror the expanders of the form: personal details, skills,
// experience, education.
var groupSpecs = []groupSpec{
	{title: "Personal Details", keys: []string{keyName, keyCity, keyArea, keyZipcode, keyEmail, keyPhone, keyLinkedIn, keySummary}},
	{title: "Skills", skills: true},
	{title: "Professional Experience", keys: []string{keyProfile, keyCompany, keyStartDate, keyCurrentlyEmployed, keyEndDate, keyDescription}},
	{title: "Education", keys: []string{keyDegree, keyUniversity, keyCertifications, keyAdditionalSkills}},
}

var kinds = map[string]inputKind{
	keyEmail:             kindEmail,
	keyPhone:             kindTel,
	keyLinkedIn:          kindURL,
	keySummary:           kindTextarea,
	keyStartDate:         kindDate,
	keyEndDate:           kindDate,
	keyCurrentlyEmployed: kindCheckbox,
	keyDescription:       kindTextarea,
	keyCertifications:    kindTextarea,
	keyAdditionalSkills:  kindTextarea,
}

func buildFormPage(v variant.Variant, all []variant.Variant, values url.Values, problems []string) formPage {
	page := formPage{
		Title:  v.Title,
		Role:   v.Role,
		Action: "/forms/" + v.ID,
		Errors: problems,
	}
	for _, other := range all {
		page.Variants = append(page.Variants, variantLink{ID: other.ID, Title: other.Title, Current: other.ID == v.ID})
	}

	fields := fieldKeys(v.Fields)
	for _, spec := range groupSpecs {
		group := groupView{Title: spec.title}
		if spec.skills {
			group.Skills = skillViews(v, values)
		}
		for _, key := range spec.keys {
			field := fields[key]
			if field.Hidden {
				continue
			}
			kind, ok := kinds[key]
			if !ok {
				kind = kindText
			}
			group.Fields = append(group.Fields, fieldView{
				Key:         key,
				Label:       field.Label,
				Placeholder: field.Placeholder,
				Value:       values.Get(key),
				Kind:        kind,
				Required:    key == keyName,
				Checked:     kind == kindCheckbox && checked(values.Get(key)),
			})
		}
		if len(group.Fields) > 0 || len(group.Skills) > 0 {
			page.Groups = append(page.Groups, group)
		}
	}
	return page
}

func skillViews(v variant.Variant, values url.Values) []skillView {
	out := make([]skillView, 0, len(v.Skills))
	for _, category := range v.Skills {
		key := skillPrefix + category.ID
		selected := make(map[string]struct{}, len(values[key]))
		for _, value := range values[key] {
			selected[value] = struct{}{}
		}
		view := skillView{Key: key, Label: category.Label}
		for _, option := range category.Options {
			_, ok := selected[option]
			view.Options = append(view.Options, optionView{Value: option, Selected: ok})
		}
		out = append(out, view)
	}
	return out
}
