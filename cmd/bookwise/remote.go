package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bookwise/recommender/internal/client"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	apiTimeout time.Duration
	recLimit   int
)

func defaultAPIURL() string {
	if url := os.Getenv("BOOKWISE_API_URL"); url != "" {
		return url
	}
	return "http://localhost:5000"
}

func newClient() *client.Client {
	return client.New(apiURL, apiTimeout)
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <bookId>",
	Short: "Fetch recommendations for a book from a running server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if recLimit < 0 {
			return fmt.Errorf("--limit must not be negative, got %d", recLimit)
		}

		resp, err := newClient().Recommendations(cmd.Context(), args[0], recLimit)
		if err != nil {
			if client.IsNotFound(err) {
				return fmt.Errorf("book %s not found", args[0])
			}
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput() {
			return printJSON(out, resp)
		}

		boldColor.Fprintf(out, "%s", resp.SourceBook.Title)
		faintColor.Fprintf(out, " [%s]\n\n", resp.SourceBook.Genre)

		if len(resp.Recommendations) == 0 {
			printInfo(out, "No other books in the catalogue")
			return nil
		}

		rows := make([][]string, 0, len(resp.Recommendations))
		for i, rec := range resp.Recommendations {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				strconv.FormatFloat(rec.SimilarityScore, 'f', 2, 64),
				rec.Title,
				rec.Author,
				rec.Genre,
				fmt.Sprintf("%d/%d", rec.AvailableCopies, rec.TotalCopies),
			})
		}
		return printTable(out, []string{"#", "SCORE", "TITLE", "AUTHOR", "GENRE", "AVAILABLE"}, rows)
	},
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the catalogue's genres from a running server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		genres, err := newClient().Genres(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput() {
			return printJSON(out, genres)
		}
		for _, g := range genres {
			fmt.Fprintln(out, g)
		}
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check a running server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		health, err := newClient().Health(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput() {
			if err := printJSON(out, health); err != nil {
				return err
			}
		} else {
			printSuccess(out, "status: %s", health.Status)
			fmt.Fprintf(out, "database: %s\nport: %s\nenvironment: %s\n",
				health.Database, health.Port, health.Environment)
		}

		if health.Database != "connected" {
			return errors.New("database is disconnected")
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{recommendCmd, genresCmd, healthCmd} {
		cmd.Flags().StringVar(&apiURL, "api-url", defaultAPIURL(), "Recommender API base URL (BOOKWISE_API_URL)")
		cmd.Flags().DurationVar(&apiTimeout, "timeout", 15*time.Second, "Request timeout")
	}
	recommendCmd.Flags().IntVarP(&recLimit, "limit", "l", 0, "Maximum recommendations (server default when 0)")
}
