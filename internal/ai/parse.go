// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"encoding/json"
	"strings"
)

// ParseSkills extracts a list of skill strings from free-form model output.
// It first looks for a JSON array substring; failing that, it splits the text
// on commas. Returns nil when nothing usable is found.
func ParseSkills(text string) []string {
	if list := parseJSONArray(text); len(list) > 0 {
		return list
	}
	return splitCommas(text)
}

// parseJSONArray returns the first JSON array of strings embedded in text,
// or nil if there is none.
func parseJSONArray(text string) []string {
	start := strings.Index(text, "[")
	if start < 0 {
		return nil
	}
	end := strings.LastIndex(text, "]")
	if end <= start {
		return nil
	}

	var list []string
	if err := json.Unmarshal([]byte(text[start:end+1]), &list); err != nil {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// splitCommas splits text on commas, trimming each piece and dropping empties.
func splitCommas(text string) []string {
	var out []string
	for _, piece := range strings.Split(text, ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}
