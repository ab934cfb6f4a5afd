package main

import (
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/poiesic/checkdex/checklist"
	"github.com/poiesic/checkdex/core"
)

const (
	scanValueLimit  = 800
	auditValueLimit = 500
	titleLimit      = 300
	excerptLimit    = 200
)

func severityEmoji(severity string) string {
	switch severity {
	case "CRITICAL":
		return "🔴"
	case "HIGH":
		return "🟠"
	case "MEDIUM":
		return "🟡"
	case "LOW":
		return "🟢"
	}
	return "⚪"
}

// truncate cuts s to at most limit runes, appending an ellipsis when
// anything was dropped.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

// title picks a result's heading: the primary column when present,
// otherwise the first projected value.
func title(p core.Projection, primary string) string {
	if primary != "" && p.Has(primary) {
		return p.Get(primary)
	}
	if len(p) > 0 {
		return p[0].Value
	}
	return "(untitled)"
}

func renderReport(w io.Writer, report *core.Report, primary string) {
	scope := report.Domain
	if report.Locale != "" {
		scope = report.Locale
	}
	fmt.Fprintf(w, "# Results for %q in %s\n\n", report.Query, scope)

	if report.Count == 0 {
		fmt.Fprintf(w, "No matches. Try different terms or another domain.\n")
		return
	}

	for _, result := range report.Results {
		emoji := severityEmoji(result.Get("Severity"))
		fmt.Fprintf(w, "## %s %s\n\n", emoji, truncate(title(result, primary), titleLimit))
		for _, field := range result {
			if primary != "" && field.Key == primary {
				continue
			}
			fmt.Fprintf(w, "- **%s**: %s\n", field.Key, truncate(field.Value, scanValueLimit))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d result(s) from %s\n", report.Count, report.Source)
}

func renderAudit(w io.Writer, rows []core.AnnotatedRow, primary map[string]string, full bool) {
	summary := checklist.Summarize(rows)
	fmt.Fprintf(w, "# Audit: %d checks\n\n", summary.Total)
	fmt.Fprintf(w, "🔴 %d critical · 🟠 %d high · 🟡 %d medium · 🟢 %d low\n\n",
		summary.Critical, summary.High, summary.Medium, summary.Low)

	groups := checklist.GroupBySeverity(rows)
	for _, sev := range core.Severities {
		members := groups[sev]
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(w, "## %s %s (%d)\n\n", severityEmoji(sev.String()), sev, len(members))
		for _, row := range members {
			heading := truncate(row.Row.Get(primary[row.Domain]), excerptLimit)
			fmt.Fprintf(w, "- [%s] %s\n", row.Domain, heading)
			if full {
				keys := make([]string, 0, len(row.Row))
				for key := range row.Row {
					if key != primary[row.Domain] {
						keys = append(keys, key)
					}
				}
				sort.Strings(keys)
				for _, key := range keys {
					fmt.Fprintf(w, "    - %s: %s\n", key, truncate(row.Row[key], auditValueLimit))
				}
			}
		}
		fmt.Fprintln(w)
	}
}

func renderChecklist(w io.Writer, sections []checklist.Section, primary map[string]string) {
	fmt.Fprintf(w, "# Production readiness checklist\n\n")
	for _, section := range sections {
		fmt.Fprintf(w, "## %s\n\n", section.Category.Title)
		for _, row := range section.Rows {
			emoji := severityEmoji(row.Row.Get("Severity"))
			heading := truncate(row.Row.Get(primary[row.Domain]), excerptLimit)
			fmt.Fprintf(w, "- [ ] %s (%s) %s\n", emoji, row.Domain, heading)
		}
		fmt.Fprintln(w)
	}
}
