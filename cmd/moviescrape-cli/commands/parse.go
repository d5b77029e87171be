package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/ChaitanyaVootla/movie-browser-api/ratings"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var source, sourceURL string
	cmd := &cobra.Command{
		Use:   "parse <file.html|->",
		Short: "Parse a saved IMDb or Rotten Tomatoes page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			switch source {
			case "imdb":
				return printJSON(cmd.OutOrStdout(), ratings.ParseIMDb(html, sourceURL))
			case "rt":
				return printJSON(cmd.OutOrStdout(), ratings.ParseRottenTomatoes(html, sourceURL))
			default:
				return fmt.Errorf("unknown --source %q: want imdb or rt", source)
			}
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "page family: imdb or rt")
	cmd.Flags().StringVar(&sourceURL, "url", "", "original page URL, reported as sourceUrl")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func readInput(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(b), nil
}
