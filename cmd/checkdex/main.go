// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/checkdex"
	"github.com/poiesic/checkdex/checklist"
	"github.com/poiesic/checkdex/core"
)

func main() {
	if err := run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	app := &cli.App{
		Name:  "checkdex",
		Usage: "Lexical search over a production-readiness knowledge base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding the knowledge base CSVs",
				Value:   "./data",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "scan",
				Usage:     "Search the knowledge base for checks matching a query",
				ArgsUsage: "<query terms>",
				Action:    scanCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "domain",
						Usage: "Domain to search (auto-detected from the query when omitted)",
					},
					&cli.StringFlag{
						Name:  "locale",
						Usage: "Search the locale knowledge base instead (takes priority over --domain)",
					},
					&cli.IntFlag{
						Name:    "max-results",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit the raw report as JSON",
					},
				},
			},
			{
				Name:   "audit",
				Usage:  "List every check, grouped by severity",
				Action: auditCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "domain",
						Usage: "Restrict the audit to one domain",
					},
					&cli.StringFlag{
						Name:  "severity",
						Usage: "Show only one severity (critical, high, medium, low)",
					},
					&cli.BoolFlag{
						Name:  "full",
						Usage: "Print every column of each check",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit rows as JSON",
					},
				},
			},
			{
				Name:   "checklist",
				Usage:  "Print the categorized production-readiness checklist",
				Action: checklistCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "domain",
						Usage: "Restrict the checklist to one domain",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit sections as JSON",
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Write the starter knowledge base into the data directory",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "overwrite",
						Usage: "Replace files that already exist",
					},
				},
			},
		},
	}

	return app.Run(args)
}

func openSearcher(c *cli.Context) (*checkdex.KnowledgeBase, error) {
	return checkdex.Open(c.String("data-dir"))
}

func scanCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	kb, err := openSearcher(c)
	if err != nil {
		return err
	}
	searcher, err := kb.NewSearcher()
	if err != nil {
		return err
	}
	defer searcher.Release()

	ctx := context.Background()
	maxResults := c.Int("max-results")

	var report *core.Report
	if locale := c.String("locale"); locale != "" {
		report, err = searcher.SearchLocale(ctx, query, locale, maxResults)
	} else {
		report, err = searcher.Search(ctx, query, c.String("domain"), maxResults)
	}
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return emitJSON(report)
	}

	primary := primaryColumns(kb)
	renderReport(os.Stdout, report, primary[report.Domain])
	return nil
}

func auditCommand(c *cli.Context) error {
	kb, err := openSearcher(c)
	if err != nil {
		return err
	}
	searcher, err := kb.NewSearcher()
	if err != nil {
		return err
	}
	defer searcher.Release()

	rows, err := searcher.AllChecks(context.Background(), c.String("domain"))
	if err != nil {
		return err
	}

	if sevName := c.String("severity"); sevName != "" {
		sev, ok := parseSeverityFlag(sevName)
		if !ok {
			return fmt.Errorf("invalid severity %q: must be one of critical, high, medium, low", sevName)
		}
		rows = checklist.FilterBySeverity(rows, sev)
	}

	if c.Bool("json") {
		return emitJSON(struct {
			Summary checklist.Summary   `json:"summary"`
			Checks  []core.AnnotatedRow `json:"checks"`
		}{checklist.Summarize(rows), rows})
	}

	renderAudit(os.Stdout, rows, primaryColumns(kb), c.Bool("full"))
	return nil
}

func checklistCommand(c *cli.Context) error {
	kb, err := openSearcher(c)
	if err != nil {
		return err
	}
	searcher, err := kb.NewSearcher()
	if err != nil {
		return err
	}
	defer searcher.Release()

	rows, err := searcher.AllChecks(context.Background(), c.String("domain"))
	if err != nil {
		return err
	}
	sections := checklist.Sections(rows)

	if c.Bool("json") {
		out := make([]map[string]any, 0, len(sections))
		for _, section := range sections {
			out = append(out, map[string]any{
				"category": section.Category.Title,
				"checks":   section.Rows,
			})
		}
		return emitJSON(out)
	}

	renderChecklist(os.Stdout, sections, primaryColumns(kb))
	return nil
}

func seedCommand(c *cli.Context) error {
	dir := c.String("data-dir")
	if err := checkdex.Seed(dir, c.Bool("overwrite")); err != nil {
		return fmt.Errorf("seeding %s: %w", dir, err)
	}
	fmt.Fprintf(os.Stderr, "Seeded starter knowledge base into %s\n", dir)
	return nil
}

// primaryColumns maps each domain identifier to its title column. The
// locale pseudo-domain resolves through the locale registry.
func primaryColumns(kb *checkdex.KnowledgeBase) map[string]string {
	primary := make(map[string]string)
	for _, desc := range kb.Registry().Domains() {
		primary[desc.Name] = desc.Primary
	}
	if names := kb.LocaleRegistry().Names(); len(names) > 0 {
		if desc, err := kb.LocaleRegistry().Lookup(names[0]); err == nil {
			primary["locale"] = desc.Primary
		}
	}
	return primary
}

func parseSeverityFlag(name string) (core.Severity, bool) {
	switch strings.ToUpper(name) {
	case "CRITICAL":
		return core.SeverityCritical, true
	case "HIGH":
		return core.SeverityHigh, true
	case "MEDIUM":
		return core.SeverityMedium, true
	case "LOW":
		return core.SeverityLow, true
	}
	return 0, false
}

func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
