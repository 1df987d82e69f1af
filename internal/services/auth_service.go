package services

import (
	"fmt"
	"time"

	"recipebox/internal/apperror"
	"recipebox/internal/models"
	"recipebox/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// credentialErrMsg is returned for every credential failure so callers
// cannot tell an unknown email from a wrong password.
const credentialErrMsg = "unable to authenticate with provided credentials"

// AuthService issues and validates bearer tokens.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// Login verifies the credentials and returns a signed token.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return "", apperror.Unauthenticated(credentialErrMsg)
	}
	if !user.IsActive {
		return "", apperror.Unauthenticated(credentialErrMsg)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.Unauthenticated(credentialErrMsg)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Authenticate resolves a bearer token back to the account that issued it.
// Tokens for deleted or deactivated accounts fail.
func (s *AuthService) Authenticate(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid or expired token")
	}

	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apperror.Unauthenticated("invalid or expired token")
	}

	user, err := s.userRepo.GetByID(uint(rawID))
	if err != nil {
		return nil, apperror.Unauthenticated("invalid or expired token")
	}
	if !user.IsActive {
		return nil, apperror.Unauthenticated("invalid or expired token")
	}
	return user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
