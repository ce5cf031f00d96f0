package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snipops/snippetd/config"
	"github.com/snipops/snippetd/internal/service"
)

// version is stamped at build time; the default marks a source build.
var version = "dev"

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "snippetd",
		Short: "Serve the snippet modules behind one fault-isolating shell",
		Long: `snippetd hosts the snippet feature modules the way the serverless host
did: every module registers through a failure boundary, the health endpoints
stay up regardless, and missing backends degrade to failing probes and failed
module loads instead of startup aborts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configPath)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")
	root.AddCommand(newVersionCommand())
	return root
}

func run(cmd *cobra.Command, configPath string) error {
	ctx := cmd.Context()

	cfg, warnings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	svc, err := service.New(ctx, cfg, service.Config{Version: version})
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		svc.Logger().Warn(ctx, warning)
	}

	return svc.Run(ctx)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the snippetd version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "snippetd", version)
		},
	}
}
