package main

import (
	"github.com/bookwise/recommender/internal/similarity"
	"github.com/spf13/cobra"
)

var similarityTablePath string

// similarityResult is the json form of a similarity explanation
type similarityResult struct {
	Left        string  `json:"left"`
	Right       string  `json:"right"`
	Score       float64 `json:"score"`
	Kind        string  `json:"kind"`
	MatchLeft   string  `json:"matchLeft,omitempty"`
	MatchRight  string  `json:"matchRight,omitempty"`
	TableSource string  `json:"tableSource"`
}

var similarityCmd = &cobra.Command{
	Use:   "similarity <genreA> <genreB>",
	Short: "Score two genre strings without a server",
	Example: `  bookwise similarity "Mystery, Thriller" Detective
  bookwise similarity sci-fi fantasy --table genres.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := similarity.DefaultTable()
		if similarityTablePath != "" {
			loaded, err := similarity.LoadTable(similarityTablePath)
			if err != nil {
				return err
			}
			table = loaded
		}

		match := similarity.NewScorer(table).Explain(args[0], args[1])
		result := similarityResult{
			Left:        args[0],
			Right:       args[1],
			Score:       match.Score,
			Kind:        string(match.Kind),
			MatchLeft:   match.Left,
			MatchRight:  match.Right,
			TableSource: table.Source(),
		}

		out := cmd.OutOrStdout()
		if jsonOutput() {
			return printJSON(out, result)
		}

		boldColor.Fprintf(out, "%.2f", result.Score)
		faintColor.Fprintf(out, " (%s", result.Kind)
		if result.MatchLeft != "" {
			faintColor.Fprintf(out, ": %s ~ %s", result.MatchLeft, result.MatchRight)
		}
		faintColor.Fprintln(out, ")")
		return nil
	},
}

func init() {
	similarityCmd.Flags().StringVar(&similarityTablePath, "table", "", "Genre relationship file (.json or .yaml); defaults to the built-in table")
}
