package commands

import (
	"context"
	"strings"

	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"github.com/ChaitanyaVootla/movie-browser-api/scraper"
	"github.com/spf13/cobra"
)

func newGoogleCmd(g *globalFlags) *cobra.Command {
	var (
		region  string
		proxies []string
	)
	cmd := &cobra.Command{
		Use:   "google <search string>",
		Short: "Extract ratings, director and watch options from a Google knowledge panel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, errs := scraper.ParseProxyList(proxies)
			if len(errs) > 0 {
				return errs[0]
			}
			a, err := newApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if t := a.Config.Google.Timeout; t > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, t)
				defer cancel()
			}

			res, err := a.Google.Search(ctx, models.GoogleSearchRequest{
				SearchString: strings.Join(args, " "),
				Region:       region,
				ProxyList:    pool,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&region, "region", "r", "", "result region, e.g. US or IN")
	cmd.Flags().StringArrayVar(&proxies, "proxy", nil, "proxy host:port[:user:pass] (repeatable)")
	return cmd
}
