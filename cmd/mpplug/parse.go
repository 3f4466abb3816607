package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/mpplugins/pkg/release"
)

// ParseResult is a parsed release with its tags classified into filter
// patterns.
type ParseResult struct {
	Name       string        `json:"name"`
	Meta       *release.Meta `json:"meta"`
	CleanTitle string        `json:"clean_title"`
	Resolution string        `json:"resolution,omitempty"`
	Quality    string        `json:"quality,omitempty"`
	Effect     string        `json:"effect,omitempty"`
}

func parseRelease(name string) ParseResult {
	meta := release.Parse(name)
	return ParseResult{
		Name:       name,
		Meta:       meta,
		CleanTitle: release.CleanTitle(meta.Title),
		Resolution: release.Normalize(meta.ResourcePix, release.ResolutionTable),
		Quality:    release.Normalize(meta.ResourceType, release.SourceTable),
		Effect:     release.Normalize(meta.ResourceEffect, release.EffectTable),
	}
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <release-name>",
	Short: "Parse release name (local, no server needed)",
	Long: `Parse a release name into tags and show the subscription filter
patterns each tag classifies into.

Examples:
  mpplug parse "The.Last.of.Us.S01E03.2160p.WEB-DL.DV.HDR.H.265-FLUX"
  mpplug parse --file releases.txt --json`,
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("file", "f", "", "Read release names from file (one per line)")
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	inputFile, _ := cmd.Flags().GetString("file")

	var names []string
	switch {
	case inputFile != "":
		n, err := readReleaseFile(inputFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		names = n
	case len(args) > 0:
		names = []string{strings.Join(args, " ")}
	default:
		return fmt.Errorf("usage: mpplug parse <release-name> or mpplug parse --file <filename>")
	}

	results := make([]ParseResult, len(names))
	for i, n := range names {
		results[i] = parseRelease(n)
	}

	if jsonOutput {
		if len(results) == 1 {
			printJSON(results[0])
		} else {
			printJSON(results)
		}
		return nil
	}

	if len(results) == 1 {
		printParseResult(results[0])
		return nil
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{r.Meta.Title, r.Meta.ResourcePix, r.Meta.ResourceType, r.Meta.ResourceEffect, r.Meta.ResourceTeam}
	}
	fmt.Println(renderTable([]string{"TITLE", "PIX", "TYPE", "EFFECT", "TEAM"}, rows))
	return nil
}

func printParseResult(r ParseResult) {
	m := r.Meta
	fmt.Printf("  Title:      %s\n", m.Title)
	if m.Year > 0 {
		fmt.Printf("  Year:       %d\n", m.Year)
	}
	if m.Season > 0 {
		fmt.Printf("  Season:     %d\n", m.Season)
	}
	if m.Episode > 0 {
		fmt.Printf("  Episode:    %d\n", m.Episode)
	}
	fmt.Printf("  Resolution: %-12s -> %s\n", m.ResourcePix, r.Resolution)
	fmt.Printf("  Source:     %-12s -> %s\n", m.ResourceType, r.Quality)
	fmt.Printf("  Effect:     %-12s -> %s\n", m.ResourceEffect, r.Effect)
	fmt.Printf("  Group:      %s\n", m.ResourceTeam)
	if m.VideoCodec != "" {
		fmt.Printf("  Codec:      %s\n", m.VideoCodec)
	}
}

// readReleaseFile reads release names, skipping blank lines and # comments.
func readReleaseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}
