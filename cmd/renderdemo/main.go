package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resume-generator/internal/generator"
	"resume-generator/resume/model"
	"resume-generator/resume/render"
	"resume-generator/resume/variant"
)

func main() {
	outDir := flag.String("out", "./out", "directory for the generated DOCX files")
	only := flag.String("variant", "", "render a single variant")
	flag.Parse()

	registry, err := variant.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load variants: %v\n", err)
		os.Exit(1)
	}

	variants := registry.List()
	if *only != "" {
		v, err := registry.Get(*only)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		variants = []variant.Variant{v}
	}

	now := time.Now()
	for _, v := range variants {
		path := filepath.Join(*outDir, v.ID+".docx")
		if err := renderVariant(v, path, now); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", v.ID, err)
			os.Exit(1)
		}
		fmt.Printf("OK: wrote %s\n", path)
	}
}

func renderVariant(v variant.Variant, path string, now time.Time) error {
	rec, err := generator.Check(v, sampleRecord(v), now)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	docx, err := generator.Render(v, rec, now)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := render.Validate(docx); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return generator.WriteFile(path, docx)
}

// sampleRecord picks the first two options of every skill category.
func sampleRecord(v variant.Variant) model.Record {
	skills := make(map[string][]string, len(v.Skills))
	for _, category := range v.Skills {
		n := len(category.Options)
		if n > 2 {
			n = 2
		}
		skills[category.ID] = append([]string(nil), category.Options[:n]...)
	}
	start, _ := model.ParseDate("2021-03-01")
	return model.Record{
		Name:     "Jane Doe",
		City:     "Pune",
		Area:     "Baner",
		Zipcode:  "411045",
		Email:    "jane.doe@example.com",
		Phone:    "+91 98765 43210",
		LinkedIn: "https://www.linkedin.com/in/janedoe",
		Summary:  "Analyst with five years of experience turning raw data into decisions.",
		Skills:   skills,
		Experience: model.Experience{
			Profile:           v.Role,
			Company:           "Acme Analytics",
			StartDate:         start,
			CurrentlyEmployed: true,
			Description:       "Built weekly KPI dashboards\nAutomated data quality checks\nPartnered with product on experiment design",
		},
		Education: model.Education{
			Degree:     "B.Sc. Statistics",
			University: "University of Pune",
		},
		Certifications:   "Google Data Analytics Certificate",
		AdditionalSkills: "Public speaking, Mentoring",
	}
}
