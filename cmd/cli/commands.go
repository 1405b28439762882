package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(allocationsCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reassignCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session <session-id>",
	Short: "Show a session with its participants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/sessions/get?sessionID=" + url.QueryEscape(args[0]))
	},
}

var modesCmd = &cobra.Command{
	Use:   "modes <game-type> <players>",
	Short: "List legal modes and bet units for a game type and player count",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/sessions/modes?game_type=%s&players=%s",
			url.QueryEscape(args[0]), url.QueryEscape(args[1])))
	},
}

var allocationsCmd = &cobra.Command{
	Use:   "allocations <session-id>",
	Short: "Show the stroke sheet for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/allocations?sessionID=" + url.QueryEscape(args[0]))
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan <result.json>",
	Short: "Upload an OCR result file for processing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read scan file: %w", err)
		}
		return performPostRequest("/scan/upload", payload)
	},
}

var reassignCmd = &cobra.Command{
	Use:   "reassign <session-id> <player-id>",
	Short: "Cycle a participant to the next scanned scorecard row",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := fmt.Sprintf("/reassign?sessionID=%s&playerID=%s",
			url.QueryEscape(args[0]), url.QueryEscape(args[1]))
		return performPostRequest(endpoint, nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload []byte) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
