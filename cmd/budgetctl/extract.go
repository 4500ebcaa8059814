package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wzsamuels/budget-project/internal/logger"
	"github.com/wzsamuels/budget-project/internal/paystub"
)

func extractCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Extract a draft paycheck from paystub text",
		Long: `Reads text produced by a PDF-to-text tool and prints the pay date, gross pay
and deductions that could be recognised as JSON. Reads stdin when no file or "-" is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, v, args)
		},
	}

	cmd.Flags().Bool("compact", false, "Print JSON on a single line")
	_ = v.BindPFlag("extract.compact", cmd.Flags().Lookup("compact"))

	return cmd
}

func runExtract(cmd *cobra.Command, v *viper.Viper, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open paystub: %w", err)
		}
		defer f.Close()
		in, name = f, args[0]
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read paystub: %w", err)
	}
	if strings.TrimSpace(string(text)) == "" {
		return fmt.Errorf("paystub text from %s is empty", name)
	}

	result := paystub.Extract(string(text))
	logger.Named("budgetctl").Debugw("extracted paystub",
		"source", name,
		"deductions", len(result.Deductions),
		"has_gross", result.GrossAmount != nil,
	)

	return writeJSON(cmd.OutOrStdout(), result, v.GetBool("extract.compact"))
}

func writeJSON(w io.Writer, value any, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(value)
}
