package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hesab/backend/internal/domain/datasource"
	"github.com/hesab/backend/internal/domain/ledger"
	"github.com/hesab/backend/internal/domain/voucher"
	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const dateLayout = "2006-01-02"

var (
	errUsage = errors.New("usage")
	// errNotReady is returned by check when the voucher cannot be saved
	errNotReady = errors.New("voucher is not ready to save")
)

const usage = `Usage: hesabctl <command> [flags]

Commands:
  health                          Check that the data source is reachable
  accounts                        List the chart of accounts
  transactions [-account ID] [-limit N]
                                  List transactions, newest first
  summary                         Total balance and counts
  recent                          The latest transactions
  chart [-days N]                 Daily sums of the last N days
  check <voucher.json|->          Run the balance checker on a voucher file

The data source comes from the datasource section of config.toml.`

// CLI runs one subcommand against Source
type CLI struct {
	Source  datasource.DataSource
	Out     io.Writer
	Printer *message.Printer
	// Stdin is read by "check -"
	Stdin io.Reader
}

// Run dispatches args[0] to its subcommand
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(c.Out, usage)
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "health":
		return c.health(ctx)
	case "accounts":
		return c.accounts(ctx)
	case "transactions":
		return c.transactions(ctx, rest)
	case "summary":
		return c.summary(ctx)
	case "recent":
		return c.recent(ctx)
	case "chart":
		return c.chart(ctx, rest)
	case "check":
		return c.check(rest)
	case "help", "-h", "--help":
		fmt.Fprintln(c.Out, usage)
		return nil
	default:
		fmt.Fprintf(c.Out, "unknown command %q\n\n%s\n", cmd, usage)
		return errUsage
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	case errors.Is(err, errNotReady):
		return 3
	default:
		return 1
	}
}

func (c *CLI) health(ctx context.Context) error {
	h, err := c.Source.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "status:   %s\n", h.Status)
	if h.Database != "" {
		fmt.Fprintf(c.Out, "database: %s\n", h.Database)
	}
	fmt.Fprintf(c.Out, "time:     %s\n", h.Time.Format(time.RFC3339))
	return nil
}

func (c *CLI) accounts(ctx context.Context) error {
	accounts, err := c.Source.Accounts(ctx)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintln(w, "CODE\tNAME\tTYPE\tID")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", dash(a.Code), a.Name, a.Type, a.ID)
	}
	return w.Flush()
}

func (c *CLI) transactions(ctx context.Context, args []string) error {
	fs := c.flags("transactions")
	account := fs.String("account", "", "Only transactions of this account ID")
	limit := fs.Int("limit", 0, "Maximum number of rows, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit < 0 {
		return fmt.Errorf("%w: -limit must not be negative", errUsage)
	}

	txs, err := c.Source.Transactions(ctx, datasource.TransactionQuery{AccountID: *account, Limit: *limit})
	if err != nil {
		return err
	}
	return c.printTransactions(txs)
}

func (c *CLI) summary(ctx context.Context) error {
	s, err := c.Source.Summary(ctx)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintf(w, "Total balance\t%s\n", c.amount(s.TotalBalance))
	fmt.Fprintf(w, "Accounts\t%s\n", c.Printer.Sprint(s.AccountsCount))
	fmt.Fprintf(w, "Transactions\t%s\n", c.Printer.Sprint(s.TransactionsCount))
	return w.Flush()
}

func (c *CLI) recent(ctx context.Context) error {
	txs, err := c.Source.Recent(ctx)
	if err != nil {
		return err
	}
	return c.printTransactions(txs)
}

func (c *CLI) chart(ctx context.Context, args []string) error {
	fs := c.flags("chart")
	days := fs.Int("days", ledger.DefaultChartDays, "Number of days to chart")
	if err := fs.Parse(args); err != nil {
		return err
	}

	points, err := c.Source.Chart(ctx, *days)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintln(w, "DATE\tVALUE")
	for _, p := range points {
		fmt.Fprintf(w, "%s\t%s\n", p.Date, c.amount(p.Value))
	}
	return w.Flush()
}

// voucherFile is the JSON layout accepted by check, the same as the API's voucher form
type voucherFile struct {
	VoucherNumber string          `json:"voucher_number"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Entries       []voucher.Entry `json:"entries"`
}

func (c *CLI) check(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: check takes exactly one file, or - for stdin", errUsage)
	}

	var r io.Reader
	if args[0] == "-" {
		r = c.Stdin
		if r == nil {
			r = os.Stdin
		}
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	var doc voucherFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("invalid voucher file: %w", err)
	}
	sheet := voucher.Sheet{
		VoucherNumber: doc.VoucherNumber,
		Description:   doc.Description,
		Entries:       doc.Entries,
	}
	if doc.Date != "" {
		d, err := time.Parse(dateLayout, doc.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", doc.Date)
		}
		sheet.Date = d
	}

	report := voucher.CheckBalance(sheet)

	w := c.table()
	fmt.Fprintf(w, "Total debit\t%s\n", c.amount(report.TotalDebit))
	fmt.Fprintf(w, "Total credit\t%s\n", c.amount(report.TotalCredit))
	fmt.Fprintf(w, "Difference\t%s\n", c.amount(report.Difference))
	fmt.Fprintf(w, "Balanced\t%t\n", report.IsBalanced)
	fmt.Fprintf(w, "Ready to save\t%t\n", report.ReadyToSave)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(report.Violations) > 0 {
		fmt.Fprintln(c.Out)
		w = c.table()
		fmt.Fprintln(w, "ROW\tFIELD\tCODE\tMESSAGE")
		for _, v := range report.Violations {
			row := "-"
			if v.EntryIndex != nil {
				row = c.Printer.Sprint(*v.EntryIndex + 1)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row, dash(v.Field), v.Code, v.Message)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if !report.ReadyToSave {
		return errNotReady
	}
	return nil
}

func (c *CLI) printTransactions(txs []datasource.Transaction) error {
	w := c.table()
	fmt.Fprintln(w, "DATE\tAMOUNT\tDESCRIPTION\tACCOUNT")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tx.Date.Format(dateLayout), c.amount(tx.Amount), dash(tx.Description), tx.AccountID)
	}
	return w.Flush()
}

// amount prints d exactly, in the configured locale's digits and separators.
// Only the integer part is grouped; the fraction keeps every significant digit
// so a tiny difference never prints as zero.
func (c *CLI) amount(d decimal.Decimal) string {
	whole, frac, _ := strings.Cut(d.Abs().String(), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || len(frac) > 18 {
		return d.String()
	}

	out := c.Printer.Sprint(number.Decimal(n))
	if frac != "" {
		f, _ := strconv.ParseInt(frac, 10, 64)
		out += c.decimalSeparator() +
			c.Printer.Sprint(number.Decimal(f, number.NoSeparator(), number.MinIntegerDigits(len(frac))))
	}
	if d.IsNegative() {
		out = c.minusSign() + out
	}
	return out
}

func (c *CLI) decimalSeparator() string {
	one, five := c.Printer.Sprint(number.Decimal(1)), c.Printer.Sprint(number.Decimal(5))
	s := c.Printer.Sprint(number.Decimal(1.5, number.MinFractionDigits(1)))
	return strings.TrimSuffix(strings.TrimPrefix(s, one), five)
}

func (c *CLI) minusSign() string {
	return strings.TrimSuffix(c.Printer.Sprint(number.Decimal(-1)), c.Printer.Sprint(number.Decimal(1)))
}

func (c *CLI) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
}

func (c *CLI) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.Out)
	return fs
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
