package cmd

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/query"
)

var (
	SearchCmd = &cobra.Command{
		Use:   SearchCmdName,
		Short: SearchCmdShort,
		Example: `  carfinder search --brand Toyota --sort price_asc
  carfinder search --search civic
  carfinder search --fuel electric --max-price 60000 --page 2`,
		Args: cobra.NoArgs,
		RunE: searchCmdFunc(),
	}
)

func init() {
	flags := SearchCmd.Flags()
	flags.String("search", "", "text matched against name and brand")
	flags.String("brand", "", "exact brand")
	flags.String("fuel", "", "fuel type: Petrol, Diesel, Electric or Hybrid")
	flags.Float64("min-price", 0, "minimum price")
	flags.Float64("max-price", 0, "maximum price, 0 for none")
	flags.String("sort", "", "price_asc or price_desc")
	flags.Int("page", 1, "1-based page number")
	flags.Int("per-page", 0, "cars per page (default page.size)")
	flags.Bool("json", false, "print JSON")
}

// searchValues renders the search flags as request values so the CLI and
// the HTTP API share one normalisation.
func searchValues(cmd *cobra.Command) url.Values {
	vars := url.Values{}
	flags := cmd.Flags()
	for _, name := range []string{"search", "brand", "fuel", "sort"} {
		if v, _ := flags.GetString(name); v != "" {
			vars.Set(name, v)
		}
	}
	if v, _ := flags.GetFloat64("min-price"); v != 0 {
		vars.Set("min_price", strconv.FormatFloat(v, 'f', -1, 64))
	}
	if v, _ := flags.GetFloat64("max-price"); v != 0 {
		vars.Set("max_price", strconv.FormatFloat(v, 'f', -1, 64))
	}
	if v, _ := flags.GetInt("page"); v != 0 {
		vars.Set("page", strconv.Itoa(v))
	}
	if v, _ := flags.GetInt("per-page"); v != 0 {
		vars.Set("per_page", strconv.Itoa(v))
	}
	return vars
}

func searchCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		vars := searchValues(cmd)
		spec := query.ParseFilter(vars)
		page, size := query.ParsePage(vars, a.browser.PageSize())
		res := a.browser.Listing(cmd.Context(), spec, page, size)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), res)
		}
		if err := printListing(cmd.OutOrStdout(), res); err != nil {
			return err
		}
		if res.Error != "" {
			return errors.New("search failed")
		}
		return nil
	}
}
