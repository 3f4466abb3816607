package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent events",
	RunE:  runEventsCmd,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsCmd.Flags().BoolP("payload", "p", false, "Show event payloads")
	eventsCmd.Flags().StringP("type", "t", "", "Only show events of this type (e.g. subscription.enriched)")
}

func runEventsCmd(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	showPayload, _ := cmd.Flags().GetBool("payload")
	eventType, _ := cmd.Flags().GetString("type")

	client := NewClient(serverURL)
	events, err := client.Events(limit, eventType)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	if jsonOutput {
		printJSON(events)
		return nil
	}

	if len(events.Items) == 0 {
		fmt.Println("No events")
		return nil
	}

	fmt.Printf("Recent Events (%d):\n", events.Total)
	headers := []string{"ID", "TIME", "TYPE", "ENTITY"}
	if showPayload {
		headers = append(headers, "PAYLOAD")
	}
	rows := make([][]string, len(events.Items))
	for i, e := range events.Items {
		t, _ := time.Parse(time.RFC3339, e.OccurredAt)
		row := []string{fmt.Sprint(e.ID), formatAgo(t), e.EventType, fmt.Sprintf("%s/%d", e.EntityType, e.EntityID)}
		if showPayload {
			row = append(row, e.Payload)
		}
		rows[i] = row
	}
	fmt.Println(renderTable(headers, rows, 1))
	return nil
}
