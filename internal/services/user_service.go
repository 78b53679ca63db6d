package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
)

// userService handles user accounts and credential verification.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new user. The role defaults to worker when empty.
func (s *userService) CreateUser(username, password, email, fullName string, role models.Role) (*models.User, error) {
	if username == "" || password == "" || email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username, password and email are required")
	}
	if role == "" {
		role = models.RoleWorker
	}

	var count int64
	s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, strings.ToLower(email)).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateUser
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
		Email:    strings.ToLower(email),
		FullName: fullName,
		Role:     role,
		IsActive: true,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// AttemptLogin verifies a username/password pair against the stored hash.
// Unknown usernames, wrong passwords, and deactivated accounts all surface
// the same generic INVALID_CREDENTIALS error so that accounts cannot be
// enumerated; the deactivation case is distinguished only in internal logs
// via the wrapped error.
func (s *userService) AttemptLogin(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !user.IsActive {
		return nil, apperrors.Wrap(apperrors.ErrInvalidCredentials,
			fmt.Errorf("login rejected for deactivated account %d", user.ID))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// ListUsers returns all users, newest first.
func (s *userService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var users []models.User
	if err := s.db.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(users, page.Page, page.PageSize, total)
	return &resp, nil
}

// UpdateUser applies a partial update. Non-admins may only update their own
// account, and only an admin may change a role.
func (s *userService) UpdateUser(actorID uint, actorRole models.Role, userID uint, params UpdateUserParams) (*models.User, error) {
	if actorRole != models.RoleAdmin && actorID != userID {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if params.Email != nil {
		updates["email"] = strings.ToLower(*params.Email)
	}
	if params.FullName != nil {
		updates["full_name"] = *params.FullName
	}
	if params.Role != nil && actorRole == models.RoleAdmin {
		updates["role"] = *params.Role
	}
	if params.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["password"] = string(hashed)
	}

	if len(updates) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "No fields to update")
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// SetUserActive flips the soft-delete flag. Deactivated users keep their
// row; only login and token refresh are affected.
func (s *userService) SetUserActive(userID uint, active bool) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update("is_active", active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}
