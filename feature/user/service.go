package user

import (
	"errors"
	"fmt"
	"time"

	kofimodels "donation-manager/feature/kofi/models"
	"donation-manager/feature/user/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no user matches the verification token.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists is returned when creating a token that is taken.
	ErrAlreadyExists = errors.New("user already exists")
)

// Service manages user records and their retention.
type Service struct {
	db                   *gorm.DB
	logger               *zap.Logger
	defaultRetentionDays int
}

// NewService creates a new user service.
func NewService(db *gorm.DB, logger *zap.Logger, defaultRetentionDays int) *Service {
	return &Service{
		db:                   db,
		logger:               logger,
		defaultRetentionDays: defaultRetentionDays,
	}
}

// Create inserts a new user. A non-positive retention falls back to the
// configured default.
func (s *Service) Create(token string, retentionDays int) (*models.User, error) {
	if retentionDays <= 0 {
		retentionDays = s.defaultRetentionDays
	}

	var existing models.User
	err := s.db.First(&existing, "verification_token = ?", token).Error
	if err == nil {
		return nil, ErrAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := models.User{
		VerificationToken: token,
		DataRetentionDays: retentionDays,
		LatestRequestAt:   models.Now(),
		PreferredCurrency: "USD",
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// EnsureExists creates the user record for a token when it is unseen; the
// webhook path tolerates transient absence this way.
func (s *Service) EnsureExists(token string) (*models.User, error) {
	user := models.User{
		VerificationToken: token,
		DataRetentionDays: s.defaultRetentionDays,
		LatestRequestAt:   models.Now(),
		PreferredCurrency: "USD",
	}
	err := s.db.Where("verification_token = ?", token).FirstOrCreate(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user exists: %w", err)
	}
	return &user, nil
}

// Get looks a user up by verification token.
func (s *Service) Get(token string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "verification_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// UpdateParams carries the optional fields of a user update; nil means
// leave the field unchanged.
type UpdateParams struct {
	RetentionDays     *int
	LatestRequestAt   *string
	PreferredCurrency *string
}

// Update applies the provided fields to an existing user.
func (s *Service) Update(token string, params UpdateParams) (*models.User, error) {
	user, err := s.Get(token)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if params.RetentionDays != nil {
		updates["data_retention_days"] = *params.RetentionDays
	}
	if params.LatestRequestAt != nil {
		updates["latest_request_at"] = *params.LatestRequestAt
	}
	if params.PreferredCurrency != nil {
		updates["preferred_currency"] = *params.PreferredCurrency
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes a user, optionally cascading to their transactions.
func (s *Service) Delete(token string, includeTransactions bool) error {
	if _, err := s.Get(token); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.User{}, "verification_token = ?", token).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if includeTransactions {
			if err := tx.Delete(&kofimodels.Transaction{}, "verification_token = ?", token).Error; err != nil {
				return fmt.Errorf("failed to delete transactions: %w", err)
			}
		}
		return nil
	})
}

// SweepExpired deletes each user's transactions older than their retention
// window. It is invoked by the sweep CLI command; an external cron owns
// periodicity.
func (s *Service) SweepExpired() (int64, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	var removed int64
	for _, user := range users {
		if user.DataRetentionDays <= 0 {
			continue
		}
		cutoff := time.Now().UTC().
			AddDate(0, 0, -user.DataRetentionDays).
			Format(models.TimestampLayout)

		res := s.db.Delete(&kofimodels.Transaction{},
			"verification_token = ? AND timestamp < ?", user.VerificationToken, cutoff)
		if res.Error != nil {
			return removed, fmt.Errorf("failed to sweep transactions for %s: %w",
				user.VerificationToken, res.Error)
		}
		if res.RowsAffected > 0 {
			s.logger.Info("Swept expired transactions",
				zap.String("verification_token", user.VerificationToken),
				zap.Int64("removed", res.RowsAffected),
			)
		}
		removed += res.RowsAffected
	}
	return removed, nil
}
