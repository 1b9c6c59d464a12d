package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// payeeService handles payee-related business logic. Payees follow the same
// creation and uniqueness rules as categories.
type payeeService struct {
	db *gorm.DB
}

// NewPayeeService creates a new PayeeServicer.
func NewPayeeService(db *gorm.DB) PayeeServicer {
	return &payeeService{db: db}
}

// CreatePayee creates a new payee with a per-user unique display name.
func (s *payeeService) CreatePayee(userID, name, categoryHint string) (*models.Payee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payee name is required")
	}

	var count int64
	if err := s.db.Model(&models.Payee{}).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(name)).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicatePayee
	}

	payee := &models.Payee{
		UserID:       userID,
		Name:         name,
		MachineName:  models.Slugify(name),
		CategoryHint: categoryHint,
		IsActive:     true,
	}

	if err := s.db.Create(payee).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return payee, nil
}

// GetUserPayees retrieves a paginated list of payees for a user.
func (s *payeeService) GetUserPayees(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Payee], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Payee{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payees []models.Payee
	if err := base.Scopes(pagination.Paginate(page)).Order("name").Find(&payees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(payees, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPayeeByID retrieves a payee by ID for a specific user
func (s *payeeService) GetPayeeByID(userID, payeeID string) (*models.Payee, error) {
	var payee models.Payee
	if err := s.db.Where("id = ? AND user_id = ?", payeeID, userID).First(&payee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPayeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &payee, nil
}

// GetPayeeByName resolves a payee by case-insensitive display name.
func (s *payeeService) GetPayeeByName(userID, name string) (*models.Payee, error) {
	var payee models.Payee
	err := s.db.Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(strings.TrimSpace(name))).
		First(&payee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrPayeeNotFound, "Payee not found: "+name)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &payee, nil
}

// UpdatePayee updates an existing payee.
func (s *payeeService) UpdatePayee(userID, payeeID string, name, categoryHint *string) (*models.Payee, error) {
	payee, err := s.GetPayeeByID(userID, payeeID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil && strings.TrimSpace(*name) != "" {
		newName := strings.TrimSpace(*name)
		var count int64
		if err := s.db.Model(&models.Payee{}).
			Where("user_id = ? AND LOWER(name) = ? AND id <> ?", userID, strings.ToLower(newName), payeeID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicatePayee
		}
		updates["name"] = newName
		updates["machine_name"] = models.Slugify(newName)
	}
	if categoryHint != nil {
		updates["category_hint"] = *categoryHint
	}

	if len(updates) > 0 {
		if err := s.db.Model(payee).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return payee, nil
}

// DeletePayee soft-deletes a payee.
func (s *payeeService) DeletePayee(userID, payeeID string) error {
	payee, err := s.GetPayeeByID(userID, payeeID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(payee).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
