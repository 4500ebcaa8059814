// Command budgetctl runs the paystub extractor, the recurrence engine and the
// report aggregator offline, without a database or server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wzsamuels/budget-project/internal/logger"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("BUDGETCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "budgetctl",
		Short:         "Offline tools for paychecks, schedules and reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(extractCmd(v))
	root.AddCommand(datesCmd(v))
	root.AddCommand(reportCmd(v))
	return root
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
