package services

import (
	"signage-command-center/be/apperrors"
	"signage-command-center/be/authz"
	"signage-command-center/be/models"
	"signage-command-center/be/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (s *UserService) List(actor *models.User) ([]models.User, error) {
	if _, err := authorize(actor, authz.ResourceUser, authz.ActionRead); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Register creates a new viewer account. Usernames and emails are unique;
// either clash reports DuplicateUser.
func (s *UserService) Register(username, email, password string) (*models.User, error) {
	if username == "" || email == "" {
		return nil, apperrors.NewValidation("username and email are required")
	}
	if len(password) < 6 {
		return nil, apperrors.NewValidation("password must be at least 6 characters")
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUser
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleViewer,
		IsActive:     true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration.
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies credentials for login. Inactive accounts cannot
// log in.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if translateNotFound(err) == apperrors.ErrNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !utils.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) UpdateRole(actor *models.User, id uint, role models.Role) (*models.User, error) {
	if _, err := authorize(actor, authz.ResourceUser, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperrors.NewValidation("invalid role: %s", role)
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleActive flips the soft-delete flag. Admins cannot deactivate their
// own account.
func (s *UserService) ToggleActive(actor *models.User, id uint) (*models.User, error) {
	if _, err := authorize(actor, authz.ResourceUser, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if actor.ID == id {
		return nil, apperrors.NewValidation("cannot deactivate your own account")
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	Username string
	Email    *string
	FullName *string
}

func (s *UserService) UpdateProfile(actor *models.User, in UpdateProfileInput) (*models.User, error) {
	if in.Username == "" {
		return nil, apperrors.NewValidation("username is required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", in.Username, actor.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUser
	}

	actor.Username = in.Username
	if in.Email != nil {
		actor.Email = *in.Email
	}
	if in.FullName != nil {
		actor.FullName = *in.FullName
	}
	if err := s.db.Save(actor).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, err
	}
	return actor, nil
}

// UpdatePreferences stores the raw preferences JSON on the account.
func (s *UserService) UpdatePreferences(actor *models.User, preferencesJSON string) error {
	actor.Preferences = preferencesJSON
	return s.db.Save(actor).Error
}

func (s *UserService) UpdateNotificationSettings(actor *models.User, settingsJSON string) error {
	actor.NotificationSettings = settingsJSON
	return s.db.Save(actor).Error
}

// ChangePassword verifies the current password before storing the new hash.
func (s *UserService) ChangePassword(actor *models.User, currentPassword, newPassword string) error {
	if !utils.CheckPassword(actor.PasswordHash, currentPassword) {
		return apperrors.NewValidation("current password is incorrect")
	}
	if len(newPassword) < 6 {
		return apperrors.NewValidation("new password must be at least 6 characters")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	actor.PasswordHash = hash
	return s.db.Save(actor).Error
}
