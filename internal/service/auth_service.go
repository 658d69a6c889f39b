package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Mochytk/INF225-Informagicos/internal/config"
	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/internal/repository"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/Mochytk/INF225-Informagicos/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register hashes the password and stores the user as a student without staff rights.
// Username and email must be unused.
func (s *AuthService) Register(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)

	if _, err := s.UserRepo.FindByEmail(ctx, user.Email); err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if _, err := s.UserRepo.FindByUsername(ctx, user.Username); err == nil {
		return util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	user.Role = model.Student
	user.IsStaff = false
	return s.UserRepo.Create(ctx, user)
}

// Login accepts a username or an email and returns a signed token.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, *model.User, error) {
	login = strings.TrimSpace(login)
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}
	user, err := s.UserRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetRole promotes or demotes a user. Only admins and staff reach this through the router.
func (s *AuthService) SetRole(ctx context.Context, id uint, role model.UserRole, staff bool) (*model.User, error) {
	switch role {
	case model.Student, model.Teacher, model.Admin:
	default:
		return nil, util.ErrInvalidRole
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.UserRepo.UpdateRole(ctx, id, role, staff); err != nil {
		return nil, err
	}
	user.Role = role
	user.IsStaff = staff

	logger.Log.Info("user role changed",
		zap.Uint("user_id", id),
		zap.String("role", string(role)),
		zap.Bool("is_staff", staff),
	)
	return user, nil
}
