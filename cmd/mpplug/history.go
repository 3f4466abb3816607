package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Processed history of the subscribegroup plugin",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List processed media keys",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every processed media key",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	resp, err := NewClient(serverURL).History()
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}
	if jsonOutput {
		printJSON(resp)
		return nil
	}
	if resp.Total == 0 {
		fmt.Println("History is empty")
		return nil
	}
	for _, k := range resp.Items {
		fmt.Println(k)
	}
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	if err := NewClient(serverURL).ClearHistory(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Println("History cleared")
	return nil
}
