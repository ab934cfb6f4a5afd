package checklist

import (
	"github.com/poiesic/checkdex/core"
)

// Summary holds per-severity row counts.
type Summary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

// Summarize counts rows per severity. Rows without a recognized
// severity count as LOW.
func Summarize(rows []core.AnnotatedRow) Summary {
	var s Summary
	for _, row := range rows {
		switch row.Row.Severity() {
		case core.SeverityCritical:
			s.Critical++
		case core.SeverityHigh:
			s.High++
		case core.SeverityMedium:
			s.Medium++
		default:
			s.Low++
		}
	}
	s.Total = len(rows)
	return s
}

// Count returns the number of rows counted at the given severity.
func (s Summary) Count(sev core.Severity) int {
	switch sev {
	case core.SeverityCritical:
		return s.Critical
	case core.SeverityHigh:
		return s.High
	case core.SeverityMedium:
		return s.Medium
	default:
		return s.Low
	}
}

// GroupBySeverity partitions rows by severity, preserving input order
// within each group. Every severity has an entry, possibly empty.
func GroupBySeverity(rows []core.AnnotatedRow) map[core.Severity][]core.AnnotatedRow {
	groups := make(map[core.Severity][]core.AnnotatedRow, len(core.Severities))
	for _, sev := range core.Severities {
		groups[sev] = []core.AnnotatedRow{}
	}
	for _, row := range rows {
		sev := row.Row.Severity()
		groups[sev] = append(groups[sev], row)
	}
	return groups
}

// GroupByDomain partitions rows by domain identifier, preserving input
// order within each group.
func GroupByDomain(rows []core.AnnotatedRow) map[string][]core.AnnotatedRow {
	groups := make(map[string][]core.AnnotatedRow)
	for _, row := range rows {
		groups[row.Domain] = append(groups[row.Domain], row)
	}
	return groups
}

// FilterBySeverity keeps only the rows at exactly the given severity,
// preserving input order.
func FilterBySeverity(rows []core.AnnotatedRow, sev core.Severity) []core.AnnotatedRow {
	filtered := make([]core.AnnotatedRow, 0, len(rows))
	for _, row := range rows {
		if row.Row.Severity() == sev {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// Category is a printable checklist section covering a fixed set of
// domains.
type Category struct {
	Title   string
	Domains []string
}

// Categories is the fixed checklist layout. Every registered domain
// belongs to exactly one category; categories print in this order.
var Categories = []Category{
	{Title: "SECURITY", Domains: []string{"security", "headers", "secrets", "auth", "validation"}},
	{Title: "PERFORMANCE", Domains: []string{"performance", "vitals", "bundle", "images"}},
	{Title: "SEO", Domains: []string{"seo", "i18n", "sitemap", "robots", "schema"}},
	{Title: "ACCESSIBILITY", Domains: []string{"a11y", "keyboard", "aria", "focus"}},
	{Title: "DATABASE", Domains: []string{"database", "indexes", "migrations", "backup"}},
	{Title: "API", Domains: []string{"api", "cors"}},
	{Title: "ERROR HANDLING", Domains: []string{"errors"}},
	{Title: "MONITORING", Domains: []string{"monitoring", "logging", "alerts", "health"}},
	{Title: "DEPLOYMENT", Domains: []string{"env", "ci", "rollback", "preview"}},
	{Title: "LEGAL", Domains: []string{"legal", "cookies", "gdpr", "retention"}},
}

// Section is a category together with the rows that fall under it.
type Section struct {
	Category Category
	Rows     []core.AnnotatedRow
}

// Sections lays rows out under the fixed category table. Within a
// section rows follow the category's domain order, then input order.
// Rows whose domain is not listed in any category are dropped.
// Categories with no rows are omitted.
func Sections(rows []core.AnnotatedRow) []Section {
	byDomain := GroupByDomain(rows)

	sections := make([]Section, 0, len(Categories))
	for _, cat := range Categories {
		var members []core.AnnotatedRow
		for _, domain := range cat.Domains {
			members = append(members, byDomain[domain]...)
		}
		if len(members) == 0 {
			continue
		}
		sections = append(sections, Section{Category: cat, Rows: members})
	}
	return sections
}
