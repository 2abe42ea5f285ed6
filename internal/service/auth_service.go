package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hwojcik/exagen/config"
	"github.com/hwojcik/exagen/internal/apperr"
	"github.com/hwojcik/exagen/internal/dto"
	"github.com/hwojcik/exagen/internal/model"
	"github.com/hwojcik/exagen/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req dto.RegisterRequest) error
	Login(req dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(jti string) error
	Profile(username string) (*dto.ProfileResponse, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	cfg       *config.Config
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, tokenRepo: tokenRepo, cfg: cfg}
}

func (s *authService) Register(req dto.RegisterRequest) error {
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return fmt.Errorf("%w: username already exists", apperr.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return fmt.Errorf("%w: email already exists", apperr.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(&user); err != nil {
		// A concurrent registration can slip past the lookups above and hit
		// the unique indexes; that is still a duplicate, not a server fault.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: username or email already exists", apperr.ErrConflict)
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		return fmt.Errorf("creating user: %w", err)
	}

	log.Info().Str("username", user.Username).Msg("User registered")
	return nil
}

func (s *authService) Login(req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Username,
		"uid": user.ID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(s.cfg.JWT.ExpiryHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	log.Info().Str("username", user.Username).Msg("User logged in")
	return &dto.TokenResponse{AccessToken: signed}, nil
}

func (s *authService) Logout(jti string) error {
	if err := s.tokenRepo.Revoke(jti); err != nil {
		log.Error().Err(err).Str("jti", jti).Msg("Failed to revoke token")
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

func (s *authService) Profile(username string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	return &dto.ProfileResponse{Username: user.Username, Email: user.Email}, nil
}
