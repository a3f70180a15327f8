package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elamirpay/backend/internal/config"
	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/repository"
)

// ReceiptService drives the deposit-receipt pipeline: pending receipts
// move exactly once to the approved or rejected history, and approval is
// the only path that credits the ledger. A review-window timer is
// scheduled per submission; when it elapses with the receipt still
// pending, the admin gets a reminder notification. The timer never
// credits anything itself.
type ReceiptService struct {
	repos     *repository.Repositories
	ledger    *LedgerService
	directory *DirectoryService
	cfg       *config.ReviewConfig
	now       func() time.Time

	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

func NewReceiptService(repos *repository.Repositories, ledger *LedgerService, directory *DirectoryService, cfg *config.ReviewConfig) *ReceiptService {
	return &ReceiptService{
		repos:     repos,
		ledger:    ledger,
		directory: directory,
		cfg:       cfg,
		now:       time.Now,
		timers:    make(map[string]*time.Timer),
	}
}

// acceptedFileTypes are the content types a receipt upload may sniff as.
var acceptedFileTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// Submit validates the uploaded file and queues a pending receipt. The
// user identity fields are a snapshot taken now; later account edits do
// not touch the queued receipt.
func (s *ReceiptService) Submit(ctx context.Context, user *models.User, amount int64, filename string, data []byte) (*models.Receipt, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("receipt amount %d: %w", amount, ErrInvalidInput)
	}
	if int64(len(data)) > s.cfg.MaxReceiptSize {
		return nil, ErrFileTooLarge
	}
	kind := http.DetectContentType(data)
	if !acceptedFileTypes[kind] {
		return nil, &InvalidFileError{Reason: fmt.Sprintf("unsupported content type %s", kind)}
	}

	receipt := models.Receipt{
		ID:        uuid.New().String(),
		UserEmail: user.Email,
		UserName:  user.Name,
		UserPhone: user.Phone,
		Amount:    amount,
		Date:      s.now(),
		FileName:  filename,
		FileType:  kind,
		FileData:  base64.StdEncoding.EncodeToString(data),
		Status:    models.ReceiptPending,
	}

	s.repos.Lock()
	err := s.repos.Receipts.AddPending(ctx, receipt)
	s.repos.Unlock()
	if err != nil {
		return nil, err
	}

	s.scheduleReview(receipt.ID)
	log.Printf("[RECEIPT] Submitted %s: %d from %s (%s, %d bytes)", receipt.ID, amount, user.Email, kind, len(data))
	return &receipt, nil
}

// Approve moves a pending receipt to the approved history and credits
// the submitter. The user is looked up by the receipt's stored email; if
// no account matches, the credit is skipped but the receipt still closes
// out as approved. That asymmetry is intentional and load-bearing:
// closing the queue item must not depend on the secondary lookup.
func (s *ReceiptService) Approve(ctx context.Context, receiptID string) (*models.Receipt, error) {
	s.repos.Lock()
	defer s.repos.Unlock()

	receipt, err := s.repos.Receipts.GetPending(ctx, receiptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "receipt", ID: receiptID}
		}
		return nil, err
	}

	user, err := s.repos.Users.GetByEmail(ctx, receipt.UserEmail)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Printf("[RECEIPT] Approving %s with no matching user %s, credit skipped", receiptID, receipt.UserEmail)
	case err != nil:
		return nil, err
	default:
		result, err := s.ledger.deposit(ctx, user, receipt.Amount)
		if err != nil {
			return nil, err
		}
		if err := s.notify(ctx, user.ID, models.NotifyReceiptApproved, receipt.Amount); err != nil {
			return nil, err
		}
		if result.BonusGranted {
			if err := s.notify(ctx, user.ID, models.NotifyBonusGranted, s.ledger.cfg.BonusAmount); err != nil {
				return nil, err
			}
		}
	}

	approvedAt := s.now()
	receipt.Status = models.ReceiptApproved
	receipt.ApprovedDate = &approvedAt
	if err := s.repos.Receipts.MoveToHistory(ctx, *receipt); err != nil {
		return nil, err
	}

	s.cancelReview(receiptID)
	log.Printf("[RECEIPT] Approved %s for %s (%d)", receiptID, receipt.UserEmail, receipt.Amount)
	return receipt, nil
}

// Reject moves a pending receipt to the rejected history. No balance
// change; the submitter is notified when the account still exists.
func (s *ReceiptService) Reject(ctx context.Context, receiptID string) (*models.Receipt, error) {
	s.repos.Lock()
	defer s.repos.Unlock()

	receipt, err := s.repos.Receipts.GetPending(ctx, receiptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "receipt", ID: receiptID}
		}
		return nil, err
	}

	if user, err := s.repos.Users.GetByEmail(ctx, receipt.UserEmail); err == nil {
		if err := s.notify(ctx, user.ID, models.NotifyReceiptRejected, receipt.Amount); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	rejectedAt := s.now()
	receipt.Status = models.ReceiptRejected
	receipt.RejectedDate = &rejectedAt
	if err := s.repos.Receipts.MoveToHistory(ctx, *receipt); err != nil {
		return nil, err
	}

	s.cancelReview(receiptID)
	log.Printf("[RECEIPT] Rejected %s for %s", receiptID, receipt.UserEmail)
	return receipt, nil
}

// ListPending returns the queue awaiting an admin decision.
func (s *ReceiptService) ListPending(ctx context.Context) ([]models.Receipt, error) {
	s.repos.RLock()
	defer s.repos.RUnlock()
	return s.repos.Receipts.ListPending(ctx)
}

// GetPendingFile returns the stored blob of a pending receipt for the
// admin viewer.
func (s *ReceiptService) GetPendingFile(ctx context.Context, receiptID string) (contentType string, data []byte, err error) {
	s.repos.RLock()
	defer s.repos.RUnlock()

	receipt, err := s.repos.Receipts.GetPending(ctx, receiptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, &NotFoundError{Kind: "receipt", ID: receiptID}
		}
		return "", nil, err
	}
	data, err = base64.StdEncoding.DecodeString(receipt.FileData)
	if err != nil {
		return "", nil, fmt.Errorf("decode receipt %s blob: %w", receiptID, err)
	}
	return receipt.FileType, data, nil
}

// ReviewDue reports whether the review window has elapsed for a receipt
// submitted at its recorded date.
func (s *ReceiptService) ReviewDue(receipt *models.Receipt, now time.Time) bool {
	return now.Sub(receipt.Date) >= s.cfg.ReviewWindow
}

// notify appends a notification for the user. Lock must be held.
func (s *ReceiptService) notify(ctx context.Context, userID string, kind models.NotificationKind, amount int64) error {
	return s.repos.Notifications.Append(ctx, models.Notification{
		ID:     uuid.New().String(),
		UserID: userID,
		Kind:   kind,
		Amount: amount,
		Date:   s.now(),
	})
}

func (s *ReceiptService) scheduleReview(receiptID string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	s.timers[receiptID] = time.AfterFunc(s.cfg.ReviewWindow, func() {
		s.reviewElapsed(receiptID)
	})
}

func (s *ReceiptService) cancelReview(receiptID string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if t, ok := s.timers[receiptID]; ok {
		t.Stop()
		delete(s.timers, receiptID)
	}
}

// reviewElapsed fires when the review window passes. If the receipt is
// still pending, the admin account gets a reminder. Crediting stays with
// the approval path.
func (s *ReceiptService) reviewElapsed(receiptID string) {
	ctx := context.Background()

	s.repos.Lock()
	defer s.repos.Unlock()

	receipt, err := s.repos.Receipts.GetPending(ctx, receiptID)
	if err != nil {
		return // already decided, nothing to remind about
	}

	admin, err := s.repos.Users.GetByEmail(ctx, s.cfg.AdminEmail)
	if err != nil {
		log.Printf("[RECEIPT] Review window elapsed for %s but no admin account to notify", receiptID)
		return
	}
	if err := s.notify(ctx, admin.ID, models.NotifyReviewDue, receipt.Amount); err != nil {
		log.Printf("[RECEIPT] Failed to record review reminder for %s: %v", receiptID, err)
		return
	}
	log.Printf("[RECEIPT] Review window elapsed for %s, admin notified", receiptID)
}

// Close stops all outstanding review timers.
func (s *ReceiptService) Close() {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
