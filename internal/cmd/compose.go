package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	appconfig "github.com/leadline/crmdesk/internal/config"
	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/directory"
	"github.com/leadline/crmdesk/internal/errors"
	"github.com/leadline/crmdesk/internal/logging"
	"github.com/leadline/crmdesk/internal/tui/compose"
	"github.com/leadline/crmdesk/internal/tui/recipients"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Pick message recipients interactively",
	Long: `Open the compose page with To and Cc recipient fields.

Type to search the contact directory, use the arrow keys to highlight a
suggestion, and press Enter, Tab, comma, or semicolon to add it. Press
Ctrl+S when done; the chosen recipients are printed to stdout.

Examples:
  # Start with a recipient already selected
  crmdesk compose --to ada@lovelace.org

  # Emit JSON for scripting
  crmdesk compose --json`,
	RunE: runCompose,
}

var (
	composeTo   []string
	composeCc   []string
	composeJSON bool
)

func init() {
	rootCmd.AddCommand(composeCmd)

	composeCmd.Flags().StringSliceVar(&composeTo, "to", nil, "Initial To recipients")
	composeCmd.Flags().StringSliceVar(&composeCc, "cc", nil, "Initial Cc recipients")
	composeCmd.Flags().BoolVar(&composeJSON, "json", false, "Print the result as JSON")
}

func runCompose(cmd *cobra.Command, args []string) error {
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}

	to, err := initialSelection(composeTo)
	if err != nil {
		return err
	}
	cc, err := initialSelection(composeCc)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	defer logger.Close()

	source := cfg.Directory.ResolveSource()
	dir, err := directory.Open(source, logger)
	if err != nil {
		return err
	}
	defer dir.Close()

	opts := compose.RunOptions{
		Options: compose.Options{
			To:          to,
			Cc:          cc,
			Directory:   dir,
			Placeholder: cfg.Picker.Placeholder,
			Limit:       cfg.Picker.MaxSuggestions,
			Logger:      logger,
		},
	}
	if _, ok := dir.(*directory.FileDirectory); ok && cfg.Directory.Watch {
		opts.WatchPath = source
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	res, err := compose.Run(ctx, opts)
	if err != nil {
		return err
	}

	if w, ok := dir.(directory.Writer); ok {
		recordInteractions(ctx, w, logger, slices.Concat(res.To, res.Cc), time.Now())
	}

	return printResult(cmd.OutOrStdout(), res, composeJSON)
}

// initialSelection validates and de-duplicates addresses given on the
// command line, in order.
func initialSelection(values []string) ([]string, error) {
	var invalid []string
	var selected []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if !contact.IsValidAddress(v) {
			invalid = append(invalid, v)
			continue
		}
		selected, _ = recipients.Add(selected, v)
	}
	if len(invalid) > 0 {
		return nil, &errors.InvalidAddressError{Values: invalid}
	}
	return selected, nil
}

// recordInteractions bumps the recency of every confirmed recipient that is
// already in the directory. Unknown addresses are left alone.
func recordInteractions(ctx context.Context, w directory.Writer, logger *logging.Logger, addrs []string, at time.Time) {
	for _, addr := range addrs {
		err := w.Touch(ctx, addr, at)
		switch {
		case err == nil:
		case errors.Is(err, errors.ErrContactNotFound):
			logger.Debug("recipient not in directory", "address", addr)
		default:
			logger.Warn("recording interaction failed", "address", addr, "error", err)
		}
	}
}

func printResult(out io.Writer, res compose.Result, asJSON bool) error {
	if asJSON {
		if res.To == nil {
			res.To = []string{}
		}
		if res.Cc == nil {
			res.Cc = []string{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(out, "To: %s\n", strings.Join(res.To, ", "))
	if len(res.Cc) > 0 {
		fmt.Fprintf(out, "Cc: %s\n", strings.Join(res.Cc, ", "))
	}
	return nil
}
