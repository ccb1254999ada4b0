// Package wiki parses project status wiki pages. A page is plain
// markdown with top-level "# Heading" sections; the "Project Data"
// section carries a two-column field table, and the remaining sections
// of interest are free text passed through verbatim.
package wiki

import (
	"regexp"
	"strings"

	"github.com/optics-lab/optics/pkg/domain/model"
)

var headingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

type section struct {
	heading string
	body    string
}

// Parse extracts structured data from a wiki status page. Returns nil
// when the markdown is empty or holds no content worth keeping.
func Parse(markdown string) *model.WikiReport {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}

	sections := splitSections(markdown)

	report := &model.WikiReport{Fields: map[string]string{}}
	for _, s := range sections {
		switch {
		case s.heading == "project data":
			report.Fields = parseFieldTable(s.body)
		case s.heading == "accomplishments":
			report.Accomplishments = s.body
		case s.heading == "description":
			report.Description = s.body
		case strings.HasPrefix(s.heading, "look ahead") && report.LookAhead == "":
			report.LookAhead = s.body
		}
	}

	return report
}

// splitSections cuts the page at each top-level heading. Headings are
// lowercased so lookups are case-insensitive; bodies keep their
// original markdown, trimmed.
func splitSections(markdown string) []section {
	matches := headingPattern.FindAllStringSubmatchIndex(markdown, -1)

	sections := make([]section, 0, len(matches))
	for i, m := range matches {
		bodyEnd := len(markdown)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		sections = append(sections, section{
			heading: strings.ToLower(strings.TrimSpace(markdown[m[2]:m[3]])),
			body:    strings.TrimSpace(markdown[m[1]:bodyEnd]),
		})
	}
	return sections
}

// parseFieldTable reads a two-column markdown table. The first two
// pipe lines are the header and the divider; every following row
// contributes its first two cells as a field name and value.
func parseFieldTable(body string) map[string]string {
	fields := map[string]string{}

	var rows []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "|") {
			rows = append(rows, line)
		}
	}
	if len(rows) <= 2 {
		return fields
	}

	for _, row := range rows[2:] {
		var cells []string
		for _, c := range strings.Split(row, "|") {
			if c = strings.TrimSpace(c); c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) >= 2 {
			fields[cells[0]] = cells[1]
		}
	}
	return fields
}
