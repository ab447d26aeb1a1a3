package service

import (
	"errors"

	"collegemigration/config"
	"collegemigration/internal/auth"
	"collegemigration/internal/domain"
	"collegemigration/internal/models"
	"collegemigration/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCreds = errors.New("invalid email or password")

type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo}
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, userTypeFor(u.Role), u.Role)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, nil
}

// userTypeFor maps an account role to the ledger user type. Admins have
// no wallet, so their user type is empty.
func userTypeFor(role string) string {
	switch role {
	case domain.RoleMember:
		return domain.UserTypeMember
	case domain.RoleAgent:
		return domain.UserTypeAgent
	default:
		return ""
	}
}
