package main

import (
	"context"
	"strings"

	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/renderers/tui"
)

// recordEditor walks an administrator through every record setting.
type recordEditor struct {
	driver tui.PromptDriver
	groups []extrafields.StyleGroup
}

func (e recordEditor) Edit(ctx context.Context, record extrafields.Record) (extrafields.Record, error) {
	var err error
	if err = e.driver.Info(ctx, "Editing "+record.Key().String()); err != nil {
		return record, err
	}

	record.AllowIDTag, err = e.driver.Confirm(ctx, tui.ConfirmConfig{
		Message: "Allow an element ID?",
		Default: record.AllowIDTag,
	})
	if err != nil {
		return record, err
	}

	record.CSSClasses.ClassNames, err = e.driver.Input(ctx, tui.InputConfig{
		Message: "CSS class names",
		Help:    "Comma separated list offered to editors",
		Default: record.CSSClasses.ClassNames,
	})
	if err != nil {
		return record, err
	}
	record.CSSClasses.ClassNames = strings.TrimSpace(record.CSSClasses.ClassNames)
	if record.CSSClasses.ClassNames != "" {
		record.CSSClasses.Multiple, err = e.driver.Confirm(ctx, tui.ConfirmConfig{
			Message: "Allow multiple classes?",
			Default: record.CSSClasses.Multiple,
		})
		if err != nil {
			return record, err
		}
	} else {
		record.CSSClasses.Multiple = false
	}

	styles := extrafields.InlineStyles{}
	for _, group := range e.groups {
		enabled, err := e.promptGroup(ctx, group, record.InlineStyles)
		if err != nil {
			return record, err
		}
		if len(enabled) == 0 {
			continue
		}
		items := make([]any, len(enabled))
		for i, property := range enabled {
			items[i] = property
		}
		styles[extrafields.EnabledStylesKeyPrefix+group.Name] = items

		if !group.Grouped {
			continue
		}
		units := record.InlineStyles.Units(group.Name)
		if len(units) == 0 {
			units = extrafields.DefaultUnits
		}
		raw, err := e.driver.Input(ctx, tui.InputConfig{
			Message: group.Name + " units",
			Help:    "Comma separated, for example px,em,%",
			Default: strings.Join(units, ","),
		})
		if err != nil {
			return record, err
		}
		if raw = strings.ReplaceAll(raw, " ", ""); raw != "" {
			styles[extrafields.UnitsKeyPrefix+group.Name] = raw
		}
	}
	record.InlineStyles = styles
	if len(styles) == 0 {
		record.InlineStyles = nil
	}

	return record, record.Validate(e.groups)
}

func (e recordEditor) promptGroup(ctx context.Context, group extrafields.StyleGroup, current extrafields.InlineStyles) ([]string, error) {
	selected := make(map[string]bool)
	for _, property := range current.Enabled(group.Name) {
		selected[property] = true
	}
	var defaults []int
	for i, property := range group.Properties {
		if selected[property] {
			defaults = append(defaults, i)
		}
	}

	indices, err := e.driver.MultiSelect(ctx, tui.SelectConfig{
		Message:  group.Name,
		Options:  group.Properties,
		Defaults: defaults,
	})
	if err != nil {
		return nil, err
	}
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(group.Properties) {
			out = append(out, group.Properties[idx])
		}
	}
	return out, nil
}
