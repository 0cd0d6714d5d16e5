package main

import (
	"github.com/spf13/cobra"

	"github.com/matst80/slask-catalog/pkg/export"
	"github.com/matst80/slask-catalog/pkg/storage"
)

var (
	outDir     string
	thumbnails bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the storefront as a static site",
	Long: `Renders the home, catalog, wholesale and not found pages plus one detail
page for every product group id, copies the referenced images and writes
catalog.json for client side rendering.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides EXPORT_DIR)")
	exportCmd.Flags().BoolVar(&thumbnails, "thumbnails", false, "generate cover thumbnails")
}

func runExport(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("out") {
		cfg.Export.OutDir = outDir
	}
	if cmd.Flags().Changed("thumbnails") {
		cfg.Export.Thumbnails = thumbnails
	}
	store := newStore()
	if err := store.Load(); err != nil {
		return err
	}
	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	exporter := &export.Exporter{
		Disk:     storage.NewDiskStorage(cfg.Export.OutDir),
		Renderer: renderer,
		Logger:   logger,
		Workers:  cfg.Export.Workers,
		ImageDir: cfg.Export.ImageDir,
	}
	if cfg.Export.Thumbnails {
		exporter.ThumbSize = cfg.Export.ThumbSize
	}
	_, err = exporter.Export(cmd.Context(), store.Snapshot())
	return err
}
