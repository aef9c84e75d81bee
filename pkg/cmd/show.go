package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
)

var (
	ShowCmd = &cobra.Command{
		Use:   ShowCmdName,
		Short: ShowCmdShort,
		Args:  cobra.ExactArgs(1),
		RunE:  showCmdFunc(),
	}
)

func init() {
	ShowCmd.Flags().Bool("json", false, "print JSON")
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("car id must be a positive number: %q", arg)
	}
	return id, nil
}

func showCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.browser.Detail(cmd.Context(), id)
		if errors.Is(err, dal.ErrNotFound) {
			return fmt.Errorf("car %d not found", id)
		}
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), res)
		}
		return printCar(cmd.OutOrStdout(), res)
	}
}
