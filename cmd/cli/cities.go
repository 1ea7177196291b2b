package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marosa/locator-service/internal/cities"
)

// citiesCmd represents the cities command
var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List the supported cities",
	Args:  cobra.NoArgs,
	RunE:  runCities,
}

func init() {
	rootCmd.AddCommand(citiesCmd)
}

func runCities(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ENGLISH\tBULGARIAN\tLAT\tLNG")
	for _, city := range cities.All() {
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\n",
			city.EnglishName, city.BulgarianName, city.Latitude, city.Longitude)
	}
	return w.Flush()
}
