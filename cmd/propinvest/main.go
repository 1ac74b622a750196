package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"propinvest/internal/infrastructure/logging"
)

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:          "propinvest",
		Short:        "Property investment calculator: ROI, appreciation, EMI and risk",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional KEY=VALUE file loaded before the environment is read")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web service (HTML form and JSON endpoints)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.AppPort = port
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port (overrides APP_PORT)")
	return cmd
}

func analyzeCmd() *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a property interactively, or from flags when --location is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			f.RateSet = cmd.Flags().Changed("rate")
			f.TenureSet = cmd.Flags().Changed("tenure")
			return runAnalyze(cmd.Context(), cfg, f, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.Location, "location", "", "city or area; enables non-interactive mode")
	fl.StringVar(&f.PropertyType, "type", "Apartment", "property type (Apartment, Villa, Plot, Commercial)")
	fl.StringVar(&f.Price, "price", "", "purchase price, e.g. 5,000,000")
	fl.StringVar(&f.Rent, "rent", "", "expected monthly rent; blank resolves an estimate or typical rent")
	fl.IntVar(&f.Years, "years", 5, "holding period in years")
	fl.StringVar(&f.Loan, "loan", "0", "loan amount, 0 for no loan")
	fl.Float64Var(&f.Rate, "rate", 0, "annual loan interest rate, e.g. 0.085; 0 for interest-free (default from LOAN_INTEREST_RATE)")
	fl.IntVar(&f.Tenure, "tenure", 0, "loan tenure in years (default from LOAN_TENURE_YEARS)")
	return cmd
}

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert reference locations from a YAML file into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			n, err := runSeed(cmd.Context(), cfg, file, logging.New(cfg.LogLevel, os.Stderr))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d locations\n", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "locations YAML (defaults to LOCATIONS_FILE)")
	return cmd
}
