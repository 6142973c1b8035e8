package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/proposalhub/submission-service/internal/models"
	"github.com/proposalhub/submission-service/internal/repository"
)

type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	VerifyToken(tokenString string) (*Claims, error)
}

// Claims is the authorization payload carried by issued tokens.
type Claims struct {
	jwt.StandardClaims
	StudentID string `json:"id"`
}

type AuthConfig struct {
	JWTSecret  []byte
	TokenTTL   time.Duration
	BcryptCost int
}

type authService struct {
	studentRepo repository.StudentRepository
	logger      zerolog.Logger
	config      AuthConfig
}

func NewAuthService(studentRepo repository.StudentRepository, logger zerolog.Logger, config AuthConfig) AuthService {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		studentRepo: studentRepo,
		logger:      logger,
		config:      config,
	}
}

func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return nil, NewValidationError("Full name, email and password are required.")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.studentRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		ID:           uuid.New().String(),
		FullName:     req.FullName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.generateToken(student.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("student_id", student.ID).
		Str("email", student.Email).
		Msg("Account created")

	return &models.AuthResponse{
		Message: "User created successfully",
		Token:   token,
		Student: student.Public(),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, NewValidationError("Email and password are required.")
	}

	student, err := s.studentRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if student == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(student.PasswordHash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(student.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("student_id", student.ID).
		Msg("Login successful")

	return &models.AuthResponse{
		Message: "Login successful",
		Token:   token,
		Student: student.Public(),
	}, nil
}

func (s *authService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.config.JWTSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

func (s *authService) generateToken(studentID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   studentID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.config.TokenTTL).Unix(),
		},
		StudentID: studentID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.config.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
