package commands

import (
	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"github.com/spf13/cobra"
)

func newRatingsCmd(g *globalFlags) *cobra.Command {
	var req models.RatingsRequest
	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "Fetch IMDb and Rotten Tomatoes ratings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Normalize()
			if err := req.Validate(); err != nil {
				return err
			}
			a, err := newApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.Ratings.Fetch(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&req.IMDbID, "imdb", "", "IMDb title id, e.g. tt0111161")
	cmd.Flags().StringVar(&req.RottenTomatoesURL, "rt", "", "Rotten Tomatoes URL or path, e.g. m/shawshank_redemption")
	return cmd
}
