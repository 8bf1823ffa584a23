// Command bankledger is the local dispatch layer over the account ledger:
// each subcommand maps to one ledger operation.
package main

import (
	"crypto/subtle"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"bankledger/internal/config"
	"bankledger/internal/dto"
	apperrors "bankledger/internal/errors"
	"bankledger/internal/repositories"
	"bankledger/internal/services"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

const usage = `Usage: bankledger <command> [flags]

Commands:
  open      Open a new account
  deposit   Deposit into an account
  withdraw  Withdraw from an account
  transfer  Transfer between accounts
  show      Show account details
  accounts  List all accounts (admin)
  log       Show recent transactions
`

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := newLogger(cfg)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ledger, err := buildLedger(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize ledger", "error", err)
		os.Exit(1)
	}

	app := &cli{ledger: ledger, cfg: cfg, out: os.Stdout}

	if err := app.run(os.Args[1], os.Args[2:]); err != nil {
		outcome := apperrors.FromError(err)
		fmt.Fprintf(os.Stderr, "error [%s]: %s\n", outcome.Code, outcome.Message)
		if outcome.Detail != "" && outcome.Detail != outcome.Message {
			fmt.Fprintf(os.Stderr, "  %s\n", outcome.Detail)
		}
		if outcome.Code == apperrors.SystemInternalError {
			logger.Error("command failed", "command", os.Args[1], "error", err)
		}
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.App.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func buildLedger(cfg *config.Config, logger *slog.Logger) (services.LedgerServiceInterface, error) {
	accountRepo, err := repositories.NewAccountRepository(cfg.Storage.SnapshotPath)
	if err != nil {
		return nil, err
	}

	auditRepo, err := repositories.NewTransactionLogRepository(cfg.Storage.AuditLogPath)
	if err != nil {
		return nil, err
	}

	metrics := services.NewPrometheusMetrics(prometheus.NewRegistry())
	passwords := services.NewPasswordService(cfg.Security.BCryptCost)

	return services.NewLedgerService(
		accountRepo, auditRepo, passwords, metrics,
		cfg.Ledger.MinOpeningDeposit, logger), nil
}

type cli struct {
	ledger services.LedgerServiceInterface
	cfg    *config.Config
	out    *os.File
}

func (c *cli) run(command string, args []string) error {
	switch command {
	case "open":
		return c.open(args)
	case "deposit":
		return c.deposit(args)
	case "withdraw":
		return c.withdraw(args)
	case "transfer":
		return c.transfer(args)
	case "show":
		return c.show(args)
	case "accounts":
		return c.accounts(args)
	case "log":
		return c.recentLog(args)
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (c *cli) open(args []string) error {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	name := fs.String("name", "", "account holder name")
	credential := fs.String("credential", "", "account credential")
	deposit := fs.String("deposit", "", "initial deposit")
	accountType := fs.String("type", "", "account type (Savings or Current)")
	fs.Parse(args)

	account, err := c.ledger.OpenAccount(dto.OpenAccountRequest{
		HolderName:     *name,
		Credential:     *credential,
		InitialDeposit: *deposit,
		AccountType:    *accountType,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Account created. Account number: %d, balance: %s\n",
		account.AccountNumber, account.Balance.StringFixed(2))
	return nil
}

func (c *cli) deposit(args []string) error {
	fs := flag.NewFlagSet("deposit", flag.ExitOnError)
	account := fs.Int("account", 0, "account number")
	credential := fs.String("credential", "", "account credential")
	amount := fs.String("amount", "", "deposit amount")
	fs.Parse(args)

	receipt, err := c.ledger.Deposit(dto.DepositRequest{
		AccountNumber: *account,
		Credential:    *credential,
		Amount:        *amount,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Deposited. New balance: %s\nReference: %s\n",
		receipt.NewBalance.StringFixed(2), receipt.Reference)
	return nil
}

func (c *cli) withdraw(args []string) error {
	fs := flag.NewFlagSet("withdraw", flag.ExitOnError)
	account := fs.Int("account", 0, "account number")
	credential := fs.String("credential", "", "account credential")
	amount := fs.String("amount", "", "withdrawal amount")
	fs.Parse(args)

	receipt, err := c.ledger.Withdraw(dto.WithdrawRequest{
		AccountNumber: *account,
		Credential:    *credential,
		Amount:        *amount,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Withdrawn. New balance: %s\nReference: %s\n",
		receipt.NewBalance.StringFixed(2), receipt.Reference)
	return nil
}

func (c *cli) transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	from := fs.Int("from", 0, "sender account number")
	credential := fs.String("credential", "", "sender credential")
	to := fs.Int("to", 0, "recipient account number")
	amount := fs.String("amount", "", "transfer amount")
	fs.Parse(args)

	receipt, err := c.ledger.Transfer(dto.TransferRequest{
		FromAccountNumber: *from,
		Credential:        *credential,
		ToAccountNumber:   *to,
		Amount:            *amount,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Transferred. Your balance: %s\nReference: %s\n",
		receipt.NewBalance.StringFixed(2), receipt.Reference)
	return nil
}

func (c *cli) show(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	account := fs.Int("account", 0, "account number")
	credential := fs.String("credential", "", "account credential")
	fs.Parse(args)

	view, err := c.ledger.GetAccountSnapshot(*account, *credential)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Account Number: %d\nAccount Holder: %s\nAccount Type: %s\nCurrent Balance: %s\nDate Created: %s\n",
		view.AccountNumber, view.HolderName, view.AccountType,
		view.Balance.StringFixed(2), view.CreatedAt.Format("02/01/2006 15:04:05"))
	return nil
}

func (c *cli) accounts(args []string) error {
	fs := flag.NewFlagSet("accounts", flag.ExitOnError)
	adminCredential := fs.String("admin-credential", "", "admin credential")
	fs.Parse(args)

	if !c.adminAuthorized(*adminCredential) {
		return services.ErrAdminAccessDenied
	}

	accounts := c.ledger.ListAccounts()

	w := tabwriter.NewWriter(c.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Acc No\tName\tType\tBalance")
	for _, account := range accounts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			account.AccountNumber, account.HolderName,
			account.AccountType, account.Balance.StringFixed(2))
	}
	w.Flush()

	fmt.Fprintf(c.out, "\nTotal Accounts: %d\n", len(accounts))
	return nil
}

func (c *cli) recentLog(args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	n := fs.Int("n", c.cfg.Ledger.RecentLogEntries, "number of entries")
	fs.Parse(args)

	records, err := c.ledger.RecentTransactions(*n)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tTime\tAcc No\tType\tAmount\tBalance\tDescription")
	for _, record := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			record.Timestamp.Format("02/01/2006"),
			record.Timestamp.Format("15:04:05"),
			record.AccountNumber, record.Kind,
			record.Amount.StringFixed(2),
			record.BalanceAfter.StringFixed(2),
			record.Description)
	}
	return w.Flush()
}

// adminAuthorized compares the supplied credential against the configured one
// in constant time. An unset admin credential disables admin commands.
func (c *cli) adminAuthorized(credential string) bool {
	configured := c.cfg.Security.AdminCredential
	if configured == "" || credential == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(credential)) == 1
}
