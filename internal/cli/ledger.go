package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eigerco/ledgerpay/internal/crypto"
	"github.com/eigerco/ledgerpay/internal/payment"
	"github.com/eigerco/ledgerpay/internal/store"
)

// amountFlags is the pair of mutually exclusive amount flags.
type amountFlags struct {
	lamports uint64
	sol      string
}

func (a *amountFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&a.lamports, "amount", 0, "amount in lamports")
	cmd.Flags().StringVar(&a.sol, "sol", "", "amount in SOL, e.g. 0.5")
	cmd.MarkFlagsMutuallyExclusive("amount", "sol")
	cmd.MarkFlagsOneRequired("amount", "sol")
}

func (a *amountFlags) value() (uint64, error) {
	if a.sol != "" {
		return ParseSOL(a.sol)
	}
	return a.lamports, nil
}

type balanceResult struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
	SOL      string `json:"sol"`
}

// NewFundCommand creates the fund command.
func NewFundCommand(rootOpts *RootOptions) *cobra.Command {
	var amount amountFlags

	cmd := &cobra.Command{
		Use:   "fund <address|keypair>",
		Short: "Credit lamports to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			lamports, err := amount.value()
			if err != nil {
				return err
			}

			n, err := openNode(rootOpts)
			if err != nil {
				return err
			}
			defer n.Close()

			acc, err := n.rt.Credit(cmd.Context(), addr, lamports)
			if err != nil {
				return err
			}
			return rootOpts.output(cmd).Result(
				balanceResult{Address: addr.String(), Lamports: acc.Lamports, SOL: FormatSOL(acc.Lamports)},
				"%s: %d lamports (%s SOL)", addr, acc.Lamports, FormatSOL(acc.Lamports),
			)
		},
	}

	amount.register(cmd)
	return cmd
}

type receiptResult struct {
	ID   string   `json:"id"`
	Logs []string `json:"logs"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	var keypair string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the global transaction counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payer, err := readKeypair(keypair)
			if err != nil {
				return err
			}

			n, err := openNode(rootOpts)
			if err != nil {
				return err
			}
			defer n.Close()

			tx, err := payment.NewInitializeStateTransaction(n.programID, payer)
			if err != nil {
				return err
			}
			receipt, err := n.rt.Execute(cmd.Context(), tx)
			if err != nil {
				return err
			}
			return rootOpts.output(cmd).Result(
				receiptResult{ID: receipt.ID.String(), Logs: receipt.Logs},
				"%s\n%s", receipt.ID, joinLogs(receipt.Logs),
			)
		},
	}

	cmd.Flags().StringVarP(&keypair, "keypair", "k", "", "payer keypair file")
	return cmd
}

type payResult struct {
	ID                string   `json:"id"`
	Record            string   `json:"record"`
	TotalTransactions uint64   `json:"total_transactions"`
	Logs              []string `json:"logs"`
}

// NewPayCommand creates the pay command.
func NewPayCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		keypair string
		to      string
		memo    string
		amount  amountFlags
	)

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Send a payment and record it",
		Long: `Send lamports from the keypair owner to a receiver. The payment is
recorded at an address derived from the sender and the current value of the
global transaction counter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sender, err := readKeypair(keypair)
			if err != nil {
				return err
			}
			receiver, err := parseAddress(to)
			if err != nil {
				return err
			}
			lamports, err := amount.value()
			if err != nil {
				return err
			}

			n, err := openNode(rootOpts)
			if err != nil {
				return err
			}
			defer n.Close()

			tx, err := payment.NewSendPaymentTransaction(n.rt, n.programID, sender, receiver, lamports, memo)
			if err != nil {
				return err
			}
			receipt, err := n.rt.Execute(cmd.Context(), tx)
			if err != nil {
				return err
			}
			result, err := payment.DecodeSendPaymentResult(receipt.ReturnData)
			if err != nil {
				return err
			}
			return rootOpts.output(cmd).Result(
				payResult{
					ID:                receipt.ID.String(),
					Record:            result.Record.String(),
					TotalTransactions: result.TotalTransactions,
					Logs:              receipt.Logs,
				},
				"%s\nrecord %s\n%s", receipt.ID, result.Record, joinLogs(receipt.Logs),
			)
		},
	}

	cmd.Flags().StringVarP(&keypair, "keypair", "k", "", "sender keypair file")
	cmd.Flags().StringVar(&to, "to", "", "receiver address or keypair file")
	cmd.Flags().StringVarP(&memo, "memo", "m", "", "memo, at most 200 characters")
	amount.register(cmd)
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// NewBalanceCommand creates the balance command.
func NewBalanceCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address|keypair>",
		Short: "Show the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			n, err := openNode(rootOpts)
			if err != nil {
				return err
			}
			defer n.Close()

			lamports, err := n.rt.Balance(addr)
			if err != nil {
				return err
			}
			return rootOpts.output(cmd).Result(
				balanceResult{Address: addr.String(), Lamports: lamports, SOL: FormatSOL(lamports)},
				"%d lamports (%s SOL)", lamports, FormatSOL(lamports),
			)
		},
	}
}

type stateResult struct {
	Address           string `json:"address"`
	TotalTransactions uint64 `json:"total_transactions"`
}

// NewStateCommand creates the state command.
func NewStateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the global transaction counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := openNode(rootOpts)
			if err != nil {
				return err
			}
			defer n.Close()

			counter, err := payment.ReadState(n.rt, n.programID)
			if err != nil {
				return err
			}
			return rootOpts.output(cmd).Result(
				stateResult{Address: counter.Address.String(), TotalTransactions: counter.State.TotalTransactions},
				"%s: %d transactions", counter.Address, counter.State.TotalTransactions,
			)
		},
	}
}

type recordResult struct {
	Address   string `json:"address"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Amount    uint64 `json:"amount"`
	Timestamp int64  `json:"timestamp"`
	Memo      string `json:"memo"`
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "record <sender> <sequence>",
		Short: "Show the record a sender created at a counter value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sender, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			sequence, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("parse sequence: %w", err)
			}

			n, err := openNode(rootOpts)
			if err != nil {
				return err
			}
			defer n.Close()

			record, addr, err := payment.ReadRecord(n.rt, n.programID, sender, sequence)
			if errors.Is(err, store.ErrAccountNotFound) {
				return fmt.Errorf("no record for %s at sequence %d", sender, sequence)
			}
			if err != nil {
				return err
			}
			return rootOpts.output(cmd).Result(
				recordResult{
					Address:   addr.String(),
					Sender:    record.Sender.String(),
					Receiver:  record.Receiver.String(),
					Amount:    record.Amount,
					Timestamp: record.Timestamp,
					Memo:      record.Memo,
				},
				"%s\n  from %s\n  to   %s\n  %d lamports at %d\n  memo: %s",
				addr, record.Sender, record.Receiver, record.Amount, record.Timestamp, record.Memo,
			)
		},
	}
}

func joinLogs(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return "  " + strings.Join(lines, "\n  ")
}

type transactionResult struct {
	ID         string   `json:"id"`
	Signer     string   `json:"signer"`
	Program    string   `json:"program"`
	Logs       []string `json:"logs"`
	ReturnData string   `json:"return_data"`
}

// NewTxCommand creates the tx command.
func NewTxCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tx <id>",
		Short: "Show a committed transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := crypto.ParseHash(args[0])
			if err != nil {
				return err
			}

			n, err := openNode(rootOpts)
			if err != nil {
				return err
			}
			defer n.Close()

			tx, err := n.rt.Transaction(id)
			if err != nil {
				return err
			}
			return rootOpts.output(cmd).Result(
				transactionResult{
					ID:         tx.ID.String(),
					Signer:     tx.Signer.String(),
					Program:    tx.Program.String(),
					Logs:       tx.Logs,
					ReturnData: hex.EncodeToString(tx.ReturnData),
				},
				"%s\n  signer  %s\n  program %s\n%s", tx.ID, tx.Signer, tx.Program, joinLogs(tx.Logs),
			)
		},
	}
}
