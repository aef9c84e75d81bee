package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/browse"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printListing(w io.Writer, res browse.ListingResult) error {
	if res.Error != "" {
		_, err := fmt.Fprintln(w, res.Error)
		return err
	}
	if len(res.Cars) == 0 {
		_, err := fmt.Fprintln(w, "No cars found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tFUEL\tSEATS\tPRICE\t")
	for _, c := range res.Cars {
		mark := ""
		if c.Wished {
			mark = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.0f\t%s\n", c.ID, c.Name, c.Brand, c.FuelType, c.Seats, c.Price, mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d of %d, %d cars\n", res.Page, res.TotalPages, res.Total)
	return err
}

func printCar(w io.Writer, res browse.DetailResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", res.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", res.Name)
	fmt.Fprintf(tw, "Brand:\t%s\n", res.Brand)
	fmt.Fprintf(tw, "Price:\t%.0f\n", res.Price)
	fmt.Fprintf(tw, "Fuel:\t%s\n", res.FuelType)
	fmt.Fprintf(tw, "Seats:\t%d\n", res.Seats)
	fmt.Fprintf(tw, "Image:\t%s\n", res.ImageURL)
	fmt.Fprintf(tw, "Wished:\t%t\n", res.Wished)
	if err := tw.Flush(); err != nil {
		return err
	}
	if res.Description != "" {
		fmt.Fprintf(w, "\n%s\n", res.Description)
	}
	if len(res.Features) > 0 {
		fmt.Fprintf(w, "\nFeatures:\n  - %s\n", strings.Join(res.Features, "\n  - "))
	}
	return nil
}
