/**
 * @description
 * This file contains the core business logic for the payout backend,
 * implemented as a `PayoutService`. It orchestrates the bank-account linking
 * and payout-claim workflows by coordinating the users store and the
 * Razorpay client.
 *
 * @notes
 * - This service layer keeps the API handlers thin and focused on HTTP
 *   concerns, while the business logic remains independent.
 * - Every operation takes the user id explicitly; nothing in here assumes a
 *   particular user exists.
 */
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/SagarAhir/razorpay-claim-money-poc/internal/config"
	"github.com/SagarAhir/razorpay-claim-money-poc/internal/domain"
	"github.com/SagarAhir/razorpay-claim-money-poc/internal/store"
)

// ProviderClient abstracts the three Razorpay calls the workflows need, so
// the service can be tested against a substitute without network access.
type ProviderClient interface {
	CreateContact(ctx context.Context, req domain.CreateContactRequest) (*domain.ContactResponse, error)
	CreateFundAccount(ctx context.Context, req domain.CreateFundAccountRequest) (*domain.FundAccountResponse, error)
	CreatePayout(ctx context.Context, req domain.CreatePayoutRequest, idempotencyKey string) (*domain.PayoutResponse, error)
}

// PayoutService provides the link, claim, and query operations.
type PayoutService struct {
	repo     store.Repository
	provider ProviderClient
	cfg      *config.Config
}

// NewPayoutService creates a new instance of PayoutService.
func NewPayoutService(repo store.Repository, provider ProviderClient, cfg *config.Config) *PayoutService {
	return &PayoutService{
		repo:     repo,
		provider: provider,
		cfg:      cfg,
	}
}

// LinkBankAccountInput defines the required input for linking a bank account.
type LinkBankAccountInput struct {
	UserID            string
	AccountNumber     string
	IfscCode          string
	AccountHolderName string
}

// LinkBankAccount registers the submitted bank account as a payout
// destination: it creates a Razorpay contact for the holder, creates a fund
// account tied to it, and persists the new linked account. Nothing is
// persisted if either provider call fails.
func (s *PayoutService) LinkBankAccount(ctx context.Context, input LinkBankAccountInput) (string, error) {
	if input.AccountNumber == "" || input.IfscCode == "" || input.AccountHolderName == "" {
		return "", fmt.Errorf("accountNumber, ifscCode and accountHolderName are required: %w", domain.ErrValidation)
	}

	// Reject duplicates before spending provider calls on them.
	users, err := s.repo.Load(ctx)
	if err != nil {
		return "", err
	}
	if record, ok := users[input.UserID]; ok && record.HasAccount(input.AccountNumber, input.IfscCode) {
		return "", fmt.Errorf("account %s already linked for user %s: %w", input.AccountNumber, input.UserID, domain.ErrDuplicateAccount)
	}

	contact, err := s.provider.CreateContact(ctx, domain.CreateContactRequest{
		Name:    input.AccountHolderName,
		Email:   s.cfg.ContactEmail,
		Contact: s.cfg.ContactPhone,
		Type:    "customer",
	})
	if err != nil {
		return "", fmt.Errorf("create contact for user %s: %w", input.UserID, err)
	}

	fundAccount, err := s.provider.CreateFundAccount(ctx, domain.CreateFundAccountRequest{
		ContactID:   contact.ID,
		AccountType: "bank_account",
		BankAccount: domain.BankAccountDetails{
			Name:          input.AccountHolderName,
			AccountNumber: input.AccountNumber,
			IFSC:          input.IfscCode,
		},
	})
	if err != nil {
		// The contact now exists at Razorpay with no local record. Log the
		// id so it can be reconciled out of band; deleting it here could
		// race a concurrent retry that just attached a fund account to it.
		log.Printf("fund account creation failed, orphaned contact %s remains at provider: %v", contact.ID, err)
		return "", fmt.Errorf("create fund account for user %s: %w", input.UserID, err)
	}

	err = s.repo.Update(ctx, input.UserID, func(record *domain.UserRecord) error {
		// The duplicate check above ran outside the store lock; a
		// concurrent link may have landed since.
		if record.HasAccount(input.AccountNumber, input.IfscCode) {
			return fmt.Errorf("account %s already linked for user %s: %w", input.AccountNumber, input.UserID, domain.ErrDuplicateAccount)
		}
		record.BankAccounts = append(record.BankAccounts, domain.LinkedAccount{
			FundAccountID:     fundAccount.ID,
			AccountNumber:     input.AccountNumber,
			IfscCode:          input.IfscCode,
			AccountHolderName: input.AccountHolderName,
		})
		return nil
	})
	if err != nil {
		return "", err
	}

	return fundAccount.ID, nil
}

// ClaimMoneyInput defines the input for claiming a payout. Amount (in paise)
// and currency fall back to configured defaults when omitted.
type ClaimMoneyInput struct {
	UserID        string
	FundAccountID string
	Amount        int64
	Currency      string
	// IdempotencyKey de-duplicates retried claims. Optional; when omitted a
	// fresh key is generated per attempt and forwarded to the provider.
	IdempotencyKey string
}

// ClaimMoneyResult is the outcome of a claim, with the amount converted from
// paise for display.
type ClaimMoneyResult struct {
	PayoutID string
	Amount   float64
	Status   string
}

// ClaimMoney executes a payout from the configured settlement account to one
// of the user's linked fund accounts and records a transaction snapshot of
// the provider's response. No transaction is written if the payout fails.
func (s *PayoutService) ClaimMoney(ctx context.Context, input ClaimMoneyInput) (*ClaimMoneyResult, error) {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	record, ok := users[input.UserID]
	if !ok || len(record.BankAccounts) == 0 {
		return nil, fmt.Errorf("user %s has no linked accounts: %w", input.UserID, domain.ErrNoLinkedAccount)
	}
	if input.FundAccountID == "" || record.FindAccountByFundAccountID(input.FundAccountID) == nil {
		return nil, fmt.Errorf("fund account %q not linked for user %s: %w", input.FundAccountID, input.UserID, domain.ErrInvalidDestination)
	}

	// A replayed claim is answered from the stored snapshot instead of
	// paying out a second time.
	if input.IdempotencyKey != "" {
		if tx := findTransactionByIdempotencyKey(record, input.IdempotencyKey); tx != nil {
			return resultFromTransaction(tx), nil
		}
	}

	amount := input.Amount
	if amount == 0 {
		amount = s.cfg.DefaultPayoutAmount
	}
	currency := input.Currency
	if currency == "" {
		currency = s.cfg.DefaultPayoutCurrency
	}

	idempotencyKey := input.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	payout, err := s.provider.CreatePayout(ctx, domain.CreatePayoutRequest{
		AccountNumber: s.cfg.RazorpayAccountNumber,
		FundAccountID: input.FundAccountID,
		Amount:        amount,
		Currency:      currency,
		Mode:          s.cfg.PayoutMode,
		Purpose:       "payout",
		ReferenceID:   uuid.NewString(),
	}, idempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("create payout to %s for user %s: %w", input.FundAccountID, input.UserID, err)
	}

	tx := domain.Transaction{
		PayoutID:      payout.ID,
		FundAccountID: input.FundAccountID,
		Amount:        payout.Amount,
		Currency:      payout.Currency,
		Status:        payout.Status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	if input.IdempotencyKey != "" {
		tx.IdempotencyKey = input.IdempotencyKey
	}

	var result *ClaimMoneyResult
	err = s.repo.Update(ctx, input.UserID, func(record *domain.UserRecord) error {
		// The key lookup above ran outside the store lock; a concurrent
		// replay may have recorded the claim since.
		if input.IdempotencyKey != "" {
			if existing := findTransactionByIdempotencyKey(record, input.IdempotencyKey); existing != nil {
				result = resultFromTransaction(existing)
				return nil
			}
		}
		record.Transactions = append(record.Transactions, tx)
		result = resultFromTransaction(&tx)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// BankStatus reports whether any account is linked, plus the linked accounts.
type BankStatus struct {
	HasBankAccount bool                   `json:"hasBankAccount"`
	Accounts       []domain.LinkedAccount `json:"accounts"`
}

// GetBankStatus returns the user's linked accounts in linking order.
func (s *PayoutService) GetBankStatus(ctx context.Context, userID string) (*BankStatus, error) {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	accounts := []domain.LinkedAccount{}
	if record, ok := users[userID]; ok {
		accounts = append(accounts, record.BankAccounts...)
	}
	return &BankStatus{
		HasBankAccount: len(accounts) > 0,
		Accounts:       accounts,
	}, nil
}

// GetTransactions returns the user's full transaction history in claim order.
func (s *PayoutService) GetTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	transactions := []domain.Transaction{}
	if record, ok := users[userID]; ok {
		transactions = append(transactions, record.Transactions...)
	}
	return transactions, nil
}

func findTransactionByIdempotencyKey(record *domain.UserRecord, key string) *domain.Transaction {
	for i := range record.Transactions {
		if record.Transactions[i].IdempotencyKey == key {
			return &record.Transactions[i]
		}
	}
	return nil
}

func resultFromTransaction(tx *domain.Transaction) *ClaimMoneyResult {
	return &ClaimMoneyResult{
		PayoutID: tx.PayoutID,
		Amount:   float64(tx.Amount) / 100,
		Status:   tx.Status,
	}
}
