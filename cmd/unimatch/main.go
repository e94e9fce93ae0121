package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mahendramedapati27/unimatch/internal/version"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "unimatch",
		Short:         "University program recommendations with progressive search relaxation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default: config/<ENV>.yaml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	}

	var (
		profilePath string
		pretty      bool
	)
	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run one recommendation for a profile JSON file and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return recommend(cmd.Context(), configPath, profilePath, pretty, cmd.OutOrStdout())
		},
	}
	recommendCmd.Flags().StringVar(&profilePath, "profile", "", "Path to the student profile JSON (- for stdin)")
	recommendCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	_ = recommendCmd.MarkFlagRequired("profile")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "unimatch %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}

	rootCmd.AddCommand(serveCmd, recommendCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
