package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/mpplugins/pkg/release"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] <tag>",
	Short: "Classify a tag into its filter pattern (local)",
	Long: `Classify a raw tag such as "WEB-DL" or "2160p" against the built-in
tables. Without --table every table is tried.

Examples:
  mpplug classify 2160p
  mpplug classify --table effect "DoVi HDR10"
  mpplug classify --list`,
	RunE: runClassifyCmd,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringP("table", "t", "", "Table: resolution, source or effect")
	classifyCmd.Flags().Bool("list", false, "List the rules of the tables")
}

// Classification is the result of one table lookup.
type Classification struct {
	Table     string `json:"table"`
	Raw       string `json:"raw"`
	Canonical string `json:"canonical"`
	Matched   bool   `json:"matched"`
}

func classify(raw, tableName string) ([]Classification, error) {
	tables := release.Tables()
	names := make([]string, 0, len(tables))
	if tableName != "" {
		if _, ok := tables[tableName]; !ok {
			return nil, fmt.Errorf("unknown table %q", tableName)
		}
		names = append(names, tableName)
	} else {
		for n := range tables {
			names = append(names, n)
		}
		slices.Sort(names)
	}

	out := make([]Classification, 0, len(names))
	for _, n := range names {
		t := tables[n]
		canonical := t.Normalize(raw)
		out = append(out, Classification{
			Table:     n,
			Raw:       raw,
			Canonical: canonical,
			Matched:   canonical != "" && (canonical != raw || isCanonical(t, raw)),
		})
	}
	return out, nil
}

// isCanonical reports whether s is itself one of t's canonical values.
func isCanonical(t *release.Table, s string) bool {
	for _, r := range t.Rules() {
		if r.Canonical == s {
			return true
		}
	}
	return false
}

func runClassifyCmd(cmd *cobra.Command, args []string) error {
	tableName, _ := cmd.Flags().GetString("table")
	list, _ := cmd.Flags().GetBool("list")

	if list {
		return listTables(tableName)
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: mpplug classify <tag>")
	}

	results, err := classify(strings.Join(args, " "), tableName)
	if err != nil {
		return err
	}
	if jsonOutput {
		printJSON(results)
		return nil
	}

	color := shouldColorize(os.Stdout)
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		canonical := colorize("(no match)", ansiYellow, color)
		if r.Matched {
			canonical = colorize(r.Canonical, ansiGreen, color)
		}
		rows = append(rows, []string{r.Table, canonical})
	}
	fmt.Println(renderTable([]string{"TABLE", "PATTERN"}, rows))
	return nil
}

func listTables(only string) error {
	tables := release.Tables()
	names := make([]string, 0, len(tables))
	for n := range tables {
		if only == "" || n == only {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("unknown table %q", only)
	}
	slices.Sort(names)

	if jsonOutput {
		out := make(map[string][]release.Rule, len(names))
		for _, n := range names {
			out[n] = tables[n].Rules()
		}
		printJSON(out)
		return nil
	}

	var rows [][]string
	for _, n := range names {
		for i, r := range tables[n].Rules() {
			rows = append(rows, []string{n, fmt.Sprint(i + 1), r.Pattern, r.Canonical})
		}
	}
	fmt.Println(renderTable([]string{"TABLE", "#", "PATTERN", "CANONICAL"}, rows, 2))
	return nil
}
