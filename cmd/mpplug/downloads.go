package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/mpplugins/internal/download"
	"github.com/vmunix/mpplugins/internal/events"
	"github.com/vmunix/mpplugins/pkg/release"
)

var downloadsCmd = &cobra.Command{
	Use:     "downloads",
	Aliases: []string{"dl"},
	Short:   "List recorded downloads",
	RunE:    runDownloadsList,
}

var downloadsAddCmd = &cobra.Command{
	Use:   "add <hash> <release-name>",
	Short: "Record a download and report it to the plugins",
	Long: `Record a download in the history and publish download.added with tags
parsed from the release name, as the host does when it hands a torrent to a
download client.

Example:
  mpplug downloads add 3f2a... "Fargo.S05.1080p.WEB-DL.x264-CHDWEB" --tmdbid 60622 --site hdsky`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDownloadsAdd,
}

func init() {
	rootCmd.AddCommand(downloadsCmd)
	downloadsCmd.AddCommand(downloadsAddCmd)
	downloadsCmd.Flags().IntP("limit", "n", 20, "Number of downloads to show")

	downloadsAddCmd.Flags().String("type", string(release.MediaSeries), "movie or series")
	downloadsAddCmd.Flags().Int64("tmdbid", 0, "TMDB id")
	downloadsAddCmd.Flags().String("seasons", "", "Season designator, e.g. S01 (default: parsed)")
	downloadsAddCmd.Flags().String("site", "", "Torrent site")
	_ = downloadsAddCmd.MarkFlagRequired("tmdbid")
}

func runDownloadsList(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	resp, err := NewClient(serverURL).Downloads(limit)
	if err != nil {
		return fmt.Errorf("failed to fetch downloads: %w", err)
	}
	if jsonOutput {
		printJSON(resp)
		return nil
	}
	if resp.Total == 0 {
		fmt.Println("No downloads")
		return nil
	}

	rows := make([][]string, len(resp.Items))
	for i, d := range resp.Items {
		hash := d.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		rows[i] = []string{hash, string(d.Type), fmt.Sprint(d.TMDBID), d.Seasons, d.Title, d.TorrentSite, formatAgo(d.AddedAt)}
	}
	fmt.Println(renderTable([]string{"HASH", "TYPE", "TMDB", "SEASONS", "TITLE", "SITE", "ADDED"}, rows, 3))
	return nil
}

// downloadFromRelease builds the history record and event context for a
// release name.
func downloadFromRelease(hash, name string, typ release.MediaType, tmdbID int64, seasons, site string) (*download.Record, *events.DownloadContext) {
	meta := release.Parse(name)
	if seasons == "" && meta.Season > 0 {
		seasons = fmt.Sprintf("S%02d", meta.Season)
	}
	episodes := ""
	if meta.Episode > 0 {
		episodes = fmt.Sprintf("E%02d", meta.Episode)
	}
	rec := &download.Record{
		Hash:        hash,
		Type:        typ,
		TMDBID:      tmdbID,
		Seasons:     seasons,
		Episodes:    episodes,
		Title:       meta.Title,
		TorrentSite: site,
	}
	dctx := &events.DownloadContext{MetaInfo: meta}
	if site != "" {
		dctx.TorrentInfo = &events.TorrentInfo{Site: site, Title: name}
	}
	return rec, dctx
}

func runDownloadsAdd(cmd *cobra.Command, args []string) error {
	typ, _ := cmd.Flags().GetString("type")
	tmdbID, _ := cmd.Flags().GetInt64("tmdbid")
	seasons, _ := cmd.Flags().GetString("seasons")
	site, _ := cmd.Flags().GetString("site")

	rec, dctx := downloadFromRelease(args[0], strings.Join(args[1:], " "), release.MediaType(typ), tmdbID, seasons, site)

	client := NewClient(serverURL)
	created, err := client.AddDownload(rec)
	if err != nil {
		return fmt.Errorf("record download: %w", err)
	}
	if _, err := client.DownloadAdded(created.Hash, dctx); err != nil {
		return fmt.Errorf("publish download: %w", err)
	}

	if jsonOutput {
		printJSON(created)
		return nil
	}
	fmt.Printf("Recorded %s (%s %s) and notified plugins\n", created.Hash, created.Title, created.Seasons)
	return nil
}
