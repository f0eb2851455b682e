package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/globe/internal/app"
	"github.com/five82/globe/internal/countries"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "globe: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "globe",
		Short: "Browse the countries of the world in your terminal",
		Long: `globe downloads the REST Countries list once, keeps a copy in the
cache directory and shows it as a sortable list. Select a country to see
its neighbours. When offline, the cached copy is used.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/globe/config.toml)")
	flags.StringVar(&opts.CacheDir, "cache-dir", "", "cache directory override")
	flags.StringVar(&opts.Endpoint, "endpoint", "", "countries endpoint override")
	flags.BoolVar(&opts.Refresh, "refresh", false, "discard the cached list and download it again")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newListCmd(&opts), newBordersCmd(&opts))
	return root
}

func newListCmd(opts *app.Options) *cobra.Command {
	var sortFlag string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every country as name, native name, area and code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var order *countries.SortOrder
			if sortFlag != "" {
				o, err := countries.ParseSortOrder(sortFlag)
				if err != nil {
					return err
				}
				order = &o
			}
			return app.List(cmd.Context(), *opts, order, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&sortFlag, "sort", "", "sort order: name-asc, name-desc, area-asc or area-desc")
	return cmd
}

func newBordersCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "borders CODE",
		Short: "Print the countries bordering the one with alpha code CODE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Borders(cmd.Context(), *opts, args[0], cmd.OutOrStdout())
		},
	}
}
