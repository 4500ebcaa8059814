package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/export"
	"github.com/wzsamuels/budget-project/internal/logger"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/projection"
)

// reportData is the fixture format read by the report command. Records use
// the same JSON shape the API returns.
type reportData struct {
	UserID            string                    `json:"user_id"`
	Paychecks         []models.Paycheck         `json:"paychecks"`
	RecurringExpenses []models.RecurringExpense `json:"recurring_expenses"`
	Transactions      []models.Transaction      `json:"transactions"`
}

func reportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the dashboard report from a JSON fixture",
		Long: `Reads paychecks, recurring expenses and transactions from --data and prints the
dashboard report as of --today. With --xlsx the report is also written as a workbook.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, v)
		},
	}

	cmd.Flags().String("data", "", "JSON file with paychecks, recurring_expenses and transactions")
	cmd.Flags().String("today", "", "Report date (YYYY-MM-DD, default today)")
	cmd.Flags().String("xlsx", "", "Also write the workbook to this path")
	cmd.Flags().Bool("compact", false, "Print JSON on a single line")

	_ = v.BindPFlag("report.data", cmd.Flags().Lookup("data"))
	_ = v.BindPFlag("report.today", cmd.Flags().Lookup("today"))
	_ = v.BindPFlag("report.xlsx", cmd.Flags().Lookup("xlsx"))
	_ = v.BindPFlag("report.compact", cmd.Flags().Lookup("compact"))

	return cmd
}

func runReport(cmd *cobra.Command, v *viper.Viper) error {
	path := v.GetString("report.data")
	if path == "" {
		return fmt.Errorf("--data is required")
	}

	today := calendar.Today()
	if raw := v.GetString("report.today"); raw != "" {
		var err error
		if today, err = calendar.Parse(raw); err != nil {
			return fmt.Errorf("invalid --today: %w", err)
		}
	}

	data, err := loadReportData(path)
	if err != nil {
		return err
	}

	report := projection.BuildReport(data.UserID, data.Paychecks, activeRules(data.RecurringExpenses), data.Transactions, today)
	logger.Named("budgetctl").Debugw("built report",
		"paychecks", len(data.Paychecks),
		"rules", len(data.RecurringExpenses),
		"transactions", len(data.Transactions),
		"today", today,
	)

	if out := v.GetString("report.xlsx"); out != "" {
		if err := writeWorkbook(out, report); err != nil {
			return err
		}
	}

	return writeJSON(cmd.OutOrStdout(), report, v.GetBool("report.compact"))
}

func loadReportData(path string) (*reportData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	var data reportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	return &data, nil
}

// activeRules drops stopped rules, matching what the API loads.
func activeRules(rules []models.RecurringExpense) []models.RecurringExpense {
	out := make([]models.RecurringExpense, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out
}

func writeWorkbook(path string, report projection.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	if err := export.WriteAnnualReport(f, report); err != nil {
		f.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return f.Close()
}
