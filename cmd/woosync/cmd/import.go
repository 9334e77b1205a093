package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prowebkong/woosync/internal/config"
	"github.com/prowebkong/woosync/pkg/logging"
	"github.com/prowebkong/woosync/pkg/products"
	"github.com/prowebkong/woosync/pkg/reconcile"
	"github.com/prowebkong/woosync/pkg/woo"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the scraped product batch into the store",
	Long: `Import loads the scraped products JSON batch, ensures the category
hierarchy and attribute vocabulary exist in the store, then classifies
and uploads each product in order. No single bad product halts the
batch; the run always completes and reports an aggregate count.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("source", "", "scraped products JSON file")
	importCmd.Flags().String("taxonomy", "", "category hierarchy YAML file (default: embedded)")
	importCmd.Flags().Bool("dry-run", false, "classify and build payloads without creating products")

	cobra.CheckErr(viper.BindPFlag("source", importCmd.Flags().Lookup("source")))
	cobra.CheckErr(viper.BindPFlag("taxonomy", importCmd.Flags().Lookup("taxonomy")))

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	batch, err := products.Load(cfg.Source)
	if err != nil {
		return err
	}
	logging.Info().Int("products", len(batch)).Str("source", cfg.Source).Msg("Loaded product batch")

	client := woo.New(woo.Config{
		BaseURL:        cfg.BaseURL,
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		PageSize:       cfg.PageSize,
		RequestTimeout: cfg.RequestTimeout,
		PacingDelay:    cfg.PacingDelay,
	})

	opts := []reconcile.Option{}
	if cfg.Taxonomy != "" {
		tree, err := reconcile.LoadTaxonomy(cfg.Taxonomy)
		if err != nil {
			return err
		}
		opts = append(opts, reconcile.WithTaxonomy(tree))
	}
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		opts = append(opts, reconcile.WithDryRun(true))
	}

	importer, err := reconcile.NewImporter(client, opts...)
	if err != nil {
		return err
	}

	result, err := importer.Run(cmd.Context(), batch)
	if result != nil {
		fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
	}
	return err
}
