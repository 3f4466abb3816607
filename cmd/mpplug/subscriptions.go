package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/mpplugins/internal/subscribe"
	"github.com/vmunix/mpplugins/pkg/release"
)

var subscriptionsCmd = &cobra.Command{
	Use:     "subscriptions",
	Aliases: []string{"subs"},
	Short:   "List subscriptions",
	RunE:    runSubscriptionsList,
}

var subscriptionsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a subscription",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSubscriptionsAdd,
}

func init() {
	rootCmd.AddCommand(subscriptionsCmd)
	subscriptionsCmd.AddCommand(subscriptionsAddCmd)
	subscriptionsCmd.Flags().Int64("tmdbid", 0, "Filter by TMDB id")
	subscriptionsCmd.Flags().Int("season", -1, "Filter by season")

	subscriptionsAddCmd.Flags().String("type", string(release.MediaSeries), "movie or series")
	subscriptionsAddCmd.Flags().Int64("tmdbid", 0, "TMDB id")
	subscriptionsAddCmd.Flags().Int("season", -1, "Season (series only)")
	_ = subscriptionsAddCmd.MarkFlagRequired("tmdbid")
}

func runSubscriptionsList(cmd *cobra.Command, _ []string) error {
	tmdbID, _ := cmd.Flags().GetInt64("tmdbid")
	season, _ := cmd.Flags().GetInt("season")

	resp, err := NewClient(serverURL).Subscriptions(tmdbID, season)
	if err != nil {
		return fmt.Errorf("failed to fetch subscriptions: %w", err)
	}
	if jsonOutput {
		printJSON(resp)
		return nil
	}
	if resp.Total == 0 {
		fmt.Println("No subscriptions")
		return nil
	}

	rows := make([][]string, len(resp.Items))
	for i, s := range resp.Items {
		seasonText := ""
		if s.Season != nil {
			seasonText = fmt.Sprint(*s.Season)
		}
		rows[i] = []string{
			fmt.Sprint(s.ID), s.Name, string(s.Type), fmt.Sprint(s.TMDBID), seasonText,
			s.Resolution, s.Quality, s.Effect, s.Include, strings.Join(s.Sites, ","),
		}
	}
	fmt.Println(renderTable(
		[]string{"ID", "NAME", "TYPE", "TMDB", "S", "RESOLUTION", "QUALITY", "EFFECT", "INCLUDE", "SITES"},
		rows, 1, 4, 5))
	return nil
}

func runSubscriptionsAdd(cmd *cobra.Command, args []string) error {
	typ, _ := cmd.Flags().GetString("type")
	tmdbID, _ := cmd.Flags().GetInt64("tmdbid")
	season, _ := cmd.Flags().GetInt("season")

	sub := &subscribe.Subscription{
		Name:   strings.Join(args, " "),
		Type:   release.MediaType(typ),
		TMDBID: tmdbID,
	}
	if season >= 0 {
		sub.Season = &season
	}

	created, err := NewClient(serverURL).AddSubscription(sub)
	if err != nil {
		return err
	}
	if jsonOutput {
		printJSON(created)
		return nil
	}
	fmt.Printf("Added subscription %d\n", created.ID)
	return nil
}
