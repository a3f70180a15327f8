package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/elamirpay/backend/internal/config"
	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/repository"
)

// LedgerService applies every balance change in the system: deposits
// (with the one-time trader bonus), recharge purchases and the admin
// override. A balance never goes negative and the bonus check-and-set
// happens in the same step as the credit, so a trader can never collect
// it twice.
type LedgerService struct {
	repos     *repository.Repositories
	directory *DirectoryService
	cfg       *config.LedgerConfig
	now       func() time.Time
}

// DepositResult reports the outcome of a credit.
type DepositResult struct {
	Balance      int64 `json:"balance"`
	BonusGranted bool  `json:"bonusGranted"`
}

// RechargeSummary mirrors the client-side order summary: fixed fee on
// top of the requested amount.
type RechargeSummary struct {
	Amount int64 `json:"amount"`
	Fee    int64 `json:"fee"`
	Total  int64 `json:"total"`
}

func NewLedgerService(repos *repository.Repositories, directory *DirectoryService, cfg *config.LedgerConfig) *LedgerService {
	return &LedgerService{
		repos:     repos,
		directory: directory,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Deposit credits amount to the user and grants the trader bonus when
// the eligibility conditions hold. The updated record is written through
// before returning.
func (s *LedgerService) Deposit(ctx context.Context, user *models.User, amount int64) (DepositResult, error) {
	s.repos.Lock()
	defer s.repos.Unlock()
	return s.deposit(ctx, user, amount)
}

// deposit assumes the repository lock is held. Eligibility is evaluated
// and the flags flipped in the same step as the credit.
func (s *LedgerService) deposit(ctx context.Context, user *models.User, amount int64) (DepositResult, error) {
	if amount <= 0 {
		return DepositResult{}, fmt.Errorf("deposit amount %d: %w", amount, ErrInvalidInput)
	}

	user.Balance += amount

	bonusGranted := false
	if user.AccountType == models.AccountTrader &&
		user.BonusEligible &&
		!user.BonusReceived &&
		amount >= s.cfg.BonusThreshold {
		user.Balance += s.cfg.BonusAmount
		user.BonusReceived = true
		user.BonusEligible = false
		bonusGranted = true
	}

	if err := s.directory.update(ctx, *user); err != nil {
		return DepositResult{}, err
	}

	log.Printf("[LEDGER] Deposit of %d for %s, balance now %d (bonus: %v)", amount, user.Email, user.Balance, bonusGranted)
	return DepositResult{Balance: user.Balance, BonusGranted: bonusGranted}, nil
}

// PurchaseRecharge debits amount plus the service fee and appends a
// completed order. On an insufficient balance nothing is debited and no
// order is written.
func (s *LedgerService) PurchaseRecharge(ctx context.Context, userID, operator, phoneNumber string, amount int64) (*models.Order, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("recharge amount %d: %w", amount, ErrInvalidInput)
	}

	s.repos.Lock()
	defer s.repos.Unlock()

	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "user", ID: userID}
		}
		return nil, err
	}

	total := amount + s.cfg.ServiceFee
	if user.Balance < total {
		log.Printf("[LEDGER] Recharge refused for %s: need %d, have %d", user.Email, total, user.Balance)
		return nil, &InsufficientBalanceError{Required: total, Available: user.Balance}
	}

	user.Balance -= total
	if err := s.directory.update(ctx, *user); err != nil {
		return nil, err
	}

	order := models.Order{
		ID:          uuid.New().String(),
		Operator:    operator,
		PhoneNumber: phoneNumber,
		Amount:      amount,
		Fee:         s.cfg.ServiceFee,
		Total:       total,
		UserName:    user.Name,
		UserEmail:   user.Email,
		Date:        s.now(),
		Status:      models.OrderCompleted,
	}
	if err := s.repos.Orders.Append(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("[LEDGER] Recharge of %d (%s %s) for %s, balance now %d", amount, operator, phoneNumber, user.Email, user.Balance)
	return &order, nil
}

// AdminSetBalance overwrites the balance directly, bypassing deposit and
// purchase accounting. Bonus flags are left alone.
func (s *LedgerService) AdminSetBalance(ctx context.Context, userID string, newBalance int64) (*models.User, error) {
	if newBalance < 0 {
		return nil, fmt.Errorf("balance %d: %w", newBalance, ErrInvalidInput)
	}

	s.repos.Lock()
	defer s.repos.Unlock()

	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "user", ID: userID}
		}
		return nil, err
	}

	user.Balance = newBalance
	if err := s.directory.update(ctx, *user); err != nil {
		return nil, err
	}

	log.Printf("[LEDGER] Admin set balance of %s to %d", user.Email, newBalance)
	return user, nil
}

// Summary prices a recharge without touching any state.
func (s *LedgerService) Summary(amount int64) RechargeSummary {
	return RechargeSummary{
		Amount: amount,
		Fee:    s.cfg.ServiceFee,
		Total:  amount + s.cfg.ServiceFee,
	}
}
