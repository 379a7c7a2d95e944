// Command splitit splits a bill described in a YAML or JSON file.
//
//	splitit split --file dinner.yaml
//	splitit split --file dinner.yaml --format pdf --out dinner.pdf
//	splitit format --amount 12.5 --currency EUR
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/splitit/splitit/internal/billfile"
	"github.com/splitit/splitit/internal/calculator"
	"github.com/splitit/splitit/internal/export"
	"github.com/splitit/splitit/internal/models"
	"github.com/splitit/splitit/internal/money"
	"github.com/splitit/splitit/pkg/logging"
)

func main() {
	logging.Setup()
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		slog.Error("splitit failed", "error", err)
		os.Exit(1)
	}
}

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "splitit",
		Usage:     "split a bill between friends",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:  "split",
				Usage: "calculate who owes what",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "bill file (YAML or JSON)", Required: true},
					&cli.StringFlag{Name: "format", Value: "text", Usage: "text, json or pdf"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to a file instead of stdout"},
				},
				Action: splitCommand,
			},
			{
				Name:  "format",
				Usage: "format an amount in a currency",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "amount", Required: true},
					&cli.StringFlag{Name: "currency", Value: models.DefaultCurrency.Code},
				},
				Action: formatCommand,
			},
			{
				Name:  "currencies",
				Usage: "list the built-in currencies",
				Action: func(c *cli.Context) error {
					for _, cur := range models.Currencies {
						fmt.Fprintf(c.App.Writer, "%-4s %s  %s\n", cur.Code, cur.Symbol, cur.Name)
					}
					return nil
				},
			},
		},
	}
}

func splitCommand(c *cli.Context) error {
	bill, err := billfile.LoadFile(c.String("file"))
	if err != nil {
		return err
	}
	for _, w := range billfile.Warnings(bill) {
		slog.Warn(w)
	}

	summary := export.NewSummary(bill)
	var out []byte
	switch strings.ToLower(c.String("format")) {
	case "text":
		text := export.Text(summary)
		if settle := settlementText(bill); settle != "" {
			text += "\n\n" + settle
		}
		out = []byte(text + "\n")
	case "json":
		out, err = json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		out = append(out, '\n')
	case "pdf":
		out, err = export.PDF(summary)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", c.String("format"))
	}

	if path := c.String("out"); path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return err
		}
		slog.Info("Summary written", "path", path, "bytes", len(out))
		return nil
	}
	_, err = c.App.Writer.Write(out)
	return err
}

// settlementText lists who pays the bill's payer back, or "" without a payer.
func settlementText(bill *models.Bill) string {
	transfers := calculator.Settle(bill, calculator.SplitAmounts(bill))
	if len(transfers) == 0 {
		return ""
	}
	name := func(id string) string {
		if i := bill.PersonIndex(id); i >= 0 {
			return bill.People[i].Name
		}
		return id
	}
	var b strings.Builder
	b.WriteString("Settle up:")
	for _, t := range transfers {
		fmt.Fprintf(&b, "\n• %s → %s: %s", name(t.From), name(t.To), money.Format(t.Amount, bill.Currency.Symbol))
	}
	return b.String()
}

func formatCommand(c *cli.Context) error {
	// Unlike bill prices, formatted amounts may be negative.
	amount, err := decimal.NewFromString(strings.TrimSpace(c.String("amount")))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", c.String("amount"), err)
	}
	currency, ok := models.LookupCurrency(c.String("currency"))
	if !ok {
		return fmt.Errorf("unknown currency %q", c.String("currency"))
	}
	fmt.Fprintln(c.App.Writer, money.Format(amount, currency.Symbol))
	return nil
}
