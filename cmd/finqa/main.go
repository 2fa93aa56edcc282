// finqa evaluates a language model's question answering over a corpus of
// financial documents and reports accuracy, error, cost, and latency metrics.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// isTTY checks if the current environment has a TTY available.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var configPath string

var rootCmd = &cobra.Command{
	Use:           "finqa",
	Short:         "Financial document QA evaluation harness",
	Long:          "finqa retrieves documents for financial questions, asks a language model,\nand scores the answers against ground truth.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a finqa-config.yaml (default: search . and $HOME)")
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(askCmd)

	if !isTTY() {
		color.NoColor = true
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, red("error: ")+err.Error())
		os.Exit(1)
	}
}
