// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package skills

import "strings"

// category pairs keyword substrings with the skill list returned when one of
// them appears in the job title. Categories are checked in order and the
// first match wins.
type category struct {
	keywords []string
	skills   []string
}

var categories = []category{
	{
		keywords: []string{"nurse", "nursing"},
		skills: []string{
			"Patient Care",
			"Medication Administration",
			"Clinical Documentation",
			"Vital Signs Monitoring",
			"Infection Control",
			"Care Planning",
			"Patient Education",
			"Team Collaboration",
		},
	},
	{
		keywords: []string{"developer", "engineer"},
		skills: []string{
			"Problem Solving",
			"JavaScript",
			"Git",
			"Debugging",
			"REST APIs",
			"Unit Testing",
			"Agile Development",
			"Code Review",
		},
	},
	{
		keywords: []string{"designer"},
		skills: []string{
			"UI Design",
			"UX Research",
			"Figma",
			"Typography",
			"Prototyping",
			"Design Systems",
			"Visual Communication",
			"Attention to Detail",
		},
	},
	{
		keywords: []string{"manager"},
		skills: []string{
			"Leadership",
			"Project Management",
			"Strategic Planning",
			"Team Building",
			"Budget Management",
			"Decision Making",
			"Conflict Resolution",
			"Stakeholder Communication",
		},
	},
}

var generic = []string{
	"Communication",
	"Teamwork",
	"Problem Solving",
	"Time Management",
}

// Fallback returns a deterministic skill list for the given job title.
// The title is lowercased and matched against category keywords in a fixed
// order; unmatched titles get the generic list. The function is pure and
// does no I/O, so it is safe to use for degraded responses.
func Fallback(title string) []string {
	lower := strings.ToLower(title)
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return clone(c.skills)
			}
		}
	}
	return clone(generic)
}

// Generic returns the skill list used when no job title is available at all,
// such as a validation failure before any lookup happens.
func Generic() []string {
	return clone(generic)
}

// clone copies the list so callers cannot mutate the shared tables.
func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
