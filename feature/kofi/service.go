package kofi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"donation-manager/feature/kofi/models"
	"donation-manager/feature/user"
	usermodels "donation-manager/feature/user/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound marks a lookup for a token or transaction that does not exist.
	ErrNotFound = errors.New("transaction not found")
	// ErrDuplicate marks a webhook replay of an already stored message id.
	ErrDuplicate = errors.New("transaction already exists")
	// ErrInvalidMethod marks an unknown amount aggregation method.
	ErrInvalidMethod = errors.New("invalid amount method")
	// ErrInvalidSince marks a malformed since timestamp.
	ErrInvalidSince = errors.New("invalid since timestamp")
)

// Amount aggregation methods.
const (
	MethodTotal  = "total"
	MethodRecent = "recent"
	MethodLatest = "latest"
)

// Converter turns an amount in one currency into another. Satisfied by
// exchange.Client.
type Converter interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}

// Service implements donation ingestion and aggregation.
type Service struct {
	db        *gorm.DB
	users     *user.Service
	converter Converter
	logger    *zap.Logger
}

// NewService creates a new donation service.
func NewService(db *gorm.DB, users *user.Service, converter Converter, logger *zap.Logger) *Service {
	return &Service{
		db:        db,
		users:     users,
		converter: converter,
		logger:    logger.Named("kofi"),
	}
}

// StoreWebhook validates and stores an incoming webhook payload, creating the
// user record for its verification token when it is the first event seen.
func (s *Service) StoreWebhook(payload models.WebhookPayload) (*models.Transaction, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.EnsureExists(payload.VerificationToken); err != nil {
		return nil, err
	}

	var existing models.Transaction
	err := s.db.First(&existing, "message_id = ?", payload.MessageID).Error
	if err == nil {
		return nil, ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing transaction: %w", err)
	}

	transaction := payload.ToTransaction()
	if err := s.db.Create(&transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	s.logger.Info("Transaction stored",
		zap.String("message_id", transaction.MessageID),
		zap.String("verification_token", transaction.VerificationToken),
		zap.String("type", transaction.Type),
	)
	return &transaction, nil
}

// Transactions returns every stored transaction for a verification token.
func (s *Service) Transactions(token string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.Find(&transactions, "verification_token = ?", token).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(transactions) == 0 {
		return nil, ErrNotFound
	}
	return transactions, nil
}

// Transaction returns a single transaction by token and message id.
func (s *Service) Transaction(token, messageID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.First(&transaction,
		"verification_token = ? AND message_id = ?", token, messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	return &transaction, nil
}

// Amount aggregates donation amounts for a token and converts them into a
// single currency. method selects the window: "total" covers everything,
// "recent" covers transactions since the given timestamp (or the user's
// latest_request_at, which the call then advances), "latest" covers only the
// newest transaction. When currency is empty the user's preferred currency is
// used. Amount strings that fail to parse are skipped.
func (s *Service) Amount(ctx context.Context, method, token, since, currency string) (float64, error) {
	method = strings.ToLower(method)
	switch method {
	case MethodTotal, MethodRecent, MethodLatest:
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidMethod, method)
	}

	account, err := s.users.Get(token)
	if err != nil {
		return 0, err
	}

	var transactions []models.Transaction
	switch method {
	case MethodTotal, MethodLatest:
		transactions, err = s.windowAll(token)
	case MethodRecent:
		transactions, err = s.windowRecent(token, account, since)
	}
	if err != nil {
		return 0, err
	}

	if method == MethodLatest {
		transactions = latestOf(transactions)
	}

	if currency == "" {
		currency = account.PreferredCurrency
	}
	return s.sumConverted(ctx, transactions, strings.ToUpper(currency))
}

func (s *Service) windowAll(token string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.Find(&transactions, "verification_token = ?", token).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return transactions, nil
}

func (s *Service) windowRecent(token string, account *usermodels.User, since string) ([]models.Transaction, error) {
	if since != "" {
		if _, err := time.Parse(usermodels.TimestampLayout, since); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSince, since)
		}
	} else {
		since = account.LatestRequestAt
	}

	var transactions []models.Transaction
	err := s.db.Find(&transactions,
		"verification_token = ? AND timestamp >= ?", token, since).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	now := usermodels.Now()
	_, err = s.users.Update(token, user.UpdateParams{LatestRequestAt: &now})
	if err != nil {
		return nil, fmt.Errorf("failed to advance latest_request_at: %w", err)
	}
	return transactions, nil
}

// latestOf narrows a window to its newest transaction. Timestamps sort
// lexicographically in the stored format.
func latestOf(transactions []models.Transaction) []models.Transaction {
	if len(transactions) == 0 {
		return nil
	}
	latest := transactions[0]
	for _, t := range transactions[1:] {
		if t.Timestamp > latest.Timestamp {
			latest = t
		}
	}
	return []models.Transaction{latest}
}

// sumConverted groups amounts per source currency, converting each group into
// the target currency once.
func (s *Service) sumConverted(ctx context.Context, transactions []models.Transaction, target string) (float64, error) {
	grouped := map[string]float64{}
	for _, t := range transactions {
		amount, err := strconv.ParseFloat(t.Amount, 64)
		if err != nil {
			s.logger.Warn("Skipping unparseable amount",
				zap.String("message_id", t.MessageID),
				zap.String("amount", t.Amount),
			)
			continue
		}
		grouped[strings.ToUpper(t.Currency)] += amount
	}

	var total float64
	for source, amount := range grouped {
		if source == target {
			total += amount
			continue
		}
		converted, err := s.converter.Convert(ctx, amount, source, target)
		if err != nil {
			return 0, fmt.Errorf("failed to convert %s to %s: %w", source, target, err)
		}
		total += converted
	}
	return total, nil
}
