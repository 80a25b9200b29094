package cli

import (
	"context"
	"fmt"

	"resume-generator/resume/model"
	"resume-generator/resume/variant"
)

const skillPageSize = 10

// Collect walks the variant's visible fields in form order and returns the
// raw record. The end date is asked only when the user is not currently
// employed there.
func Collect(ctx context.Context, d PromptDriver, v variant.Variant) (model.Record, error) {
	var rec model.Record
	f := v.Fields
	c := collector{ctx: ctx, d: d}

	c.input(f.Name, &rec.Name, nil)
	c.input(f.City, &rec.City, nil)
	c.input(f.Area, &rec.Area, nil)
	c.input(f.Zipcode, &rec.Zipcode, nil)
	c.input(f.Email, &rec.Email, nil)
	c.input(f.Phone, &rec.Phone, nil)
	c.input(f.LinkedIn, &rec.LinkedIn, nil)
	c.multiline(f.Summary, &rec.Summary)

	if c.err == nil && len(v.Skills) > 0 {
		rec.Skills = make(map[string][]string, len(v.Skills))
		for _, category := range v.Skills {
			picked, err := d.MultiSelect(ctx, SelectConfig{
				Message:  category.Label,
				Options:  category.Options,
				PageSize: skillPageSize,
			})
			if err != nil {
				c.err = err
				break
			}
			if len(picked) > 0 {
				rec.Skills[category.ID] = picked
			}
		}
	}

	c.input(f.Profile, &rec.Experience.Profile, nil)
	c.input(f.Company, &rec.Experience.Company, nil)
	c.date(f.StartDate, &rec.Experience.StartDate)
	if c.err == nil && !f.CurrentlyEmployed.Hidden {
		rec.Experience.CurrentlyEmployed, c.err = d.Confirm(ctx, ConfirmConfig{Message: f.CurrentlyEmployed.Label})
	}
	if !rec.Experience.CurrentlyEmployed {
		c.date(f.EndDate, &rec.Experience.EndDate)
	}
	c.multiline(f.Description, &rec.Experience.Description)
	c.input(f.Degree, &rec.Education.Degree, nil)
	c.input(f.University, &rec.Education.University, nil)
	c.multiline(f.Certifications, &rec.Certifications)
	c.multiline(f.AdditionalSkills, &rec.AdditionalSkills)

	if c.err != nil {
		return model.Record{}, c.err
	}
	return rec, nil
}

// collector stops asking after the first error.
type collector struct {
	ctx context.Context
	d   PromptDriver
	err error
}

func (c *collector) input(f variant.Field, dst *string, validate func(string) error) {
	if c.err != nil || f.Hidden {
		return
	}
	*dst, c.err = c.d.Input(c.ctx, InputConfig{Message: f.Label, Help: f.Placeholder, Validator: validate})
}

func (c *collector) multiline(f variant.Field, dst *string) {
	if c.err != nil || f.Hidden {
		return
	}
	*dst, c.err = c.d.Multiline(c.ctx, InputConfig{Message: f.Label, Help: f.Placeholder})
}

func (c *collector) date(f variant.Field, dst *model.Date) {
	var raw string
	c.input(variant.Field{Label: f.Label + " (YYYY-MM-DD)", Placeholder: f.Placeholder, Hidden: f.Hidden}, &raw, validDate)
	if c.err != nil || raw == "" {
		return
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		c.err = fmt.Errorf("%s: %w", f.Label, err)
		return
	}
	*dst = d
}

func validDate(raw string) error {
	_, err := model.ParseDate(raw)
	return err
}
