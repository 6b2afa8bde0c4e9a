package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"github.com/ArowuTest/sansol-promo-backend/pkg/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is returned on a successful staff login
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

type authService struct {
	verifierRepo      repositories.VerifierRepository
	tokens            *jwt.StaffTokenService
	adminUsername     string
	adminPasswordHash string
}

// NewAuthService creates a new AuthService. The admin account comes from
// configuration; adminPasswordHash is a bcrypt hash and an empty one disables it.
func NewAuthService(verifierRepo repositories.VerifierRepository, tokens *jwt.StaffTokenService, adminUsername, adminPasswordHash string) AuthService {
	return &authService{
		verifierRepo:      verifierRepo,
		tokens:            tokens,
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
	}
}

// Login handles staff login and returns a signed session token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error) {
	username := strings.TrimSpace(req.Username)

	role := ""
	if s.adminPasswordHash != "" && username == s.adminUsername {
		if bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)) != nil {
			return nil, ErrInvalidCredentials
		}
		role = models.RoleAdmin
	} else {
		verifier, err := s.verifierRepo.FindByUsername(ctx, username)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up verifier: %w", err)
		}
		if bcrypt.CompareHashAndPassword([]byte(verifier.Password), []byte(req.Password)) != nil {
			return nil, ErrInvalidCredentials
		}
		role = models.RoleVerifier
	}

	token, expiresAt, err := s.tokens.Issue(username, role, time.Now())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Username: username, Role: role}, nil
}

// ParseToken resolves a bearer token into a staff session
func (s *authService) ParseToken(token string) (*models.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	return &models.Session{Subject: claims.Subject, Role: claims.Role}, nil
}

// CreateVerifier stores a verifier account with a hashed password
func (s *authService) CreateVerifier(ctx context.Context, req *models.VerifierRequest, now time.Time) (*models.Verifier, error) {
	username := strings.TrimSpace(req.Username)
	if strings.EqualFold(username, s.adminUsername) {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verifier := &models.Verifier{
		Username:  username,
		Password:  string(hashedPassword),
		CreatedAt: now,
	}
	if err := s.verifierRepo.Create(ctx, verifier); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create verifier: %w", err)
	}
	return verifier, nil
}

func (s *authService) ListVerifiers(ctx context.Context) ([]*models.Verifier, error) {
	verifiers, err := s.verifierRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list verifiers: %w", err)
	}
	return verifiers, nil
}

func (s *authService) DeleteVerifier(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrVerifierNotFound
	}
	if err := s.verifierRepo.Delete(ctx, objectID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrVerifierNotFound
		}
		return fmt.Errorf("failed to delete verifier: %w", err)
	}
	return nil
}
