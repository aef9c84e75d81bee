package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	WishlistCmd = &cobra.Command{
		Use:   WishlistCmdName,
		Short: WishlistCmdShort,
	}

	wishlistListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the wished cars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res := a.browser.Wishlist(cmd.Context())
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			return printListing(cmd.OutOrStdout(), res)
		},
	}

	wishlistToggleCmd = &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add a car to the wishlist or remove it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if a.browser.Toggle(cmd.Context(), id) {
				fmt.Fprintf(cmd.OutOrStdout(), "car %d added to the wishlist\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "car %d removed from the wishlist\n", id)
			}
			return nil
		},
	}

	wishlistCheckCmd = &cobra.Command{
		Use:   "check <id>",
		Short: "Report whether a car is on the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(cmd.OutOrStdout(), a.browser.IsWished(cmd.Context(), id))
			return nil
		},
	}
)

func init() {
	wishlistListCmd.Flags().Bool("json", false, "print JSON")
	WishlistCmd.AddCommand(wishlistListCmd, wishlistToggleCmd, wishlistCheckCmd)
}
