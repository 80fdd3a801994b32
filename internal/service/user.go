package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/email"
	"github.com/gxmovies/backend/internal/hash"
	"github.com/gxmovies/backend/internal/logging"
	"github.com/gxmovies/backend/internal/models"
	"github.com/gxmovies/backend/internal/mykafka"
	"github.com/gxmovies/backend/internal/otp"
	"github.com/gxmovies/backend/internal/token"
)

type UserService struct {
	DB       *gorm.DB
	Tokens   *token.Service
	OTPs     *otp.Store
	Mail     email.Sender
	Producer *mykafka.Producer
	Now      func() time.Time
}

type Registration struct {
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserUpdate struct {
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SendRegistrationOTP mails a one-time password to an address that is not yet
// registered and records it in the OTP store.
func (s *UserService) SendRegistrationOTP(ctx context.Context, address string) error {
	if address == "" {
		return apperr.InvalidArgument("Email cannot be null or empty.")
	}

	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", address).First(&existing).Error
	if err == nil {
		return apperr.AlreadyExists("User with this email already exists.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	code, err := otp.Generate()
	if err != nil {
		return apperr.Internal("cannot generate OTP", err)
	}
	if err := s.Mail.Send(address, "Registration OTP", "Your OTP for registration is: "+code); err != nil {
		return apperr.Internal("cannot send OTP email", err)
	}
	s.OTPs.Put(address, code)

	logging.FromContext(ctx).Info("otp_sent", "email", address)
	return nil
}

// ValidateOTPAndRegister checks the one-time password and creates the account.
func (s *UserService) ValidateOTPAndRegister(ctx context.Context, reg Registration, code string) (models.User, error) {
	if reg.Email == "" || reg.Password == "" || reg.FullName == "" || reg.Age == 0 {
		return models.User{}, apperr.InvalidArgument("Email, Password, FullName or Age cannot be empty.")
	}

	if !s.OTPs.Consume(reg.Email, code) {
		return models.User{}, apperr.InvalidCredential("Invalid or expired OTP.")
	}

	pwHash, err := hash.HashPassword(reg.Password)
	if err != nil {
		return models.User{}, apperr.Internal("cannot hash the password", err)
	}

	user := models.User{
		FullName:     reg.FullName,
		Age:          reg.Age,
		Email:        reg.Email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		CreatedAt:    s.now(),
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		// a concurrent registration can slip past the OTP-time check and
		// trip the unique email index here
		var existing models.User
		if lookupErr := s.DB.WithContext(ctx).Where("email = ?", reg.Email).First(&existing).Error; lookupErr == nil {
			return models.User{}, apperr.AlreadyExists("User with this email already exists.")
		}
		return models.User{}, err
	}

	log := logging.FromContext(ctx)
	if err := s.Producer.PublishEvent(ctx, "user_events", strconv.Itoa(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
	}); err != nil {
		log.Error("kafka_publish_failed", "error", err)
	}

	log.Info("user_registered", "userID", user.ID)
	return user, nil
}

// LoginUser authenticates on the user channel and issues an identity token.
func (s *UserService) LoginUser(ctx context.Context, address, password string) (models.User, string, error) {
	if address == "" || password == "" {
		return models.User{}, "", apperr.InvalidArgument("Email or password cannot be empty.")
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", address).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", apperr.NotFound("User with this email not found.")
		}
		return models.User{}, "", err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return models.User{}, "", apperr.InvalidCredential("Invalid email or password.")
	}
	if user.Status == models.StatusBlocked {
		return models.User{}, "", apperr.InvalidCredential("Your account is blocked. Please contact admin.")
	}
	if user.Role != models.RoleUser {
		return models.User{}, "", apperr.InvalidCredential("This login is only for users.")
	}

	raw, err := s.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", apperr.Internal("cannot create token", err)
	}
	return user, raw, nil
}

// LoginAdmin authenticates on the admin channel and issues an identity token.
func (s *UserService) LoginAdmin(ctx context.Context, address, password string) (models.User, string, error) {
	if address == "" || password == "" {
		return models.User{}, "", apperr.InvalidArgument("Email or password cannot be empty.")
	}

	var admin models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", address).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", apperr.InvalidCredential("Email is not registered yet.")
		}
		return models.User{}, "", err
	}
	if !hash.CheckPassword(admin.PasswordHash, password) {
		return models.User{}, "", apperr.InvalidCredential("Invalid email or password.")
	}
	if admin.Role != models.RoleAdmin {
		return models.User{}, "", apperr.InvalidCredential("This login is only for admins.")
	}

	raw, err := s.Tokens.Issue(admin.ID, admin.Role)
	if err != nil {
		return models.User{}, "", apperr.Internal("cannot create token", err)
	}
	return admin, raw, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound("User not found with ID: %d", userID)
		}
		return models.User{}, err
	}
	return user, nil
}

// GetAllUsers lists accounts on the user role, leaving admins out.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).Where("role = ?", models.RoleUser).Find(&users).Error
	return users, err
}

func (s *UserService) UpdateUser(ctx context.Context, userID int, upd UserUpdate) (models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if upd.FullName != "" {
		user.FullName = upd.FullName
	}
	if upd.Age > 0 {
		user.Age = upd.Age
	}
	if upd.Email != "" && upd.Email != user.Email {
		var other models.User
		err := s.DB.WithContext(ctx).Where("email = ?", upd.Email).First(&other).Error
		if err == nil {
			return models.User{}, apperr.AlreadyExists("User with this email already exists.")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, err
		}
		user.Email = upd.Email
	}
	user.UpdatedAt = s.now()

	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) BlockUser(ctx context.Context, userID int) error {
	return s.setStatus(ctx, userID, models.StatusBlocked)
}

func (s *UserService) UnblockUser(ctx context.Context, userID int) error {
	return s.setStatus(ctx, userID, models.StatusActive)
}

func (s *UserService) setStatus(ctx context.Context, userID int, status string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Status = status
	return s.DB.WithContext(ctx).Save(&user).Error
}
