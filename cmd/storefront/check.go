package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matst80/slask-catalog/pkg/messaging"
	"github.com/matst80/slask-catalog/pkg/storage"
	"github.com/matst80/slask-catalog/pkg/types"
)

var (
	strict bool
	notify bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the catalog file",
	Long: `Loads the catalog and reports its problems. Missing or duplicate ids fail
the check, data warnings only fail it with --strict.

With --notify a successful check announces the catalog on RABBIT_URL so that
running servers reload it.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	checkCmd.Flags().BoolVar(&notify, "notify", false, "announce the checked catalog to running servers")
}

func runCheck(cmd *cobra.Command, args []string) error {
	data := &types.CatalogData{}
	if err := storage.NewDiskStorage("").LoadJson(data, cfg.CatalogFile); err != nil {
		return fmt.Errorf("load catalog %s: %w", cfg.CatalogFile, err)
	}
	out := cmd.OutOrStdout()
	warnings, err := data.Validate()
	for _, w := range warnings {
		fmt.Fprintf(out, "warning %s\n", w)
	}
	var validation *types.ValidationError
	if errors.As(err, &validation) {
		for _, p := range validation.Problems {
			fmt.Fprintf(out, "error   %s\n", p)
		}
		return fmt.Errorf("%d error(s) in %s", len(validation.Problems), cfg.CatalogFile)
	} else if err != nil {
		return err
	}
	if strict && len(warnings) > 0 {
		return fmt.Errorf("%d warning(s) in %s", len(warnings), cfg.CatalogFile)
	}
	fmt.Fprintf(out, "%s: %d groups, generated %s\n", cfg.CatalogFile, len(data.Groups), data.GeneratedAt.Format(time.RFC3339))

	if !notify {
		return nil
	}
	if cfg.RabbitUrl == "" {
		return errors.New("--notify needs RABBIT_URL")
	}
	bus, err := messaging.DialCatalogBus(cfg.RabbitUrl, logger)
	if err != nil {
		return err
	}
	defer bus.Close()
	logger.Info("announcing catalog", zap.String("file", cfg.CatalogFile))
	return bus.Notify(cmd.Context(), messaging.CatalogChange{
		File:        cfg.CatalogFile,
		GeneratedAt: data.GeneratedAt.Format(time.RFC3339),
		Groups:      len(data.Groups),
	})
}
