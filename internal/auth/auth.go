package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fertilitycare/internal/config"
	"fertilitycare/internal/logger"
	"fertilitycare/internal/repository/db"
	"fertilitycare/pkg/api"
	"fertilitycare/pkg/validation"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

// UserContextKey is the request-context key holding the authenticated username.
const UserContextKey contextKey = "user"

// Claims are the JWT claims issued on login/register
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Service issues and validates bearer credentials and serves the auth endpoints
type Service struct {
	config    config.AuthConfig
	db        db.Database
	validator *validation.AuthRequestValidator
}

// NewService creates a new auth Service
func NewService(authConfig config.AuthConfig, database db.Database) *Service {
	return &Service{
		config:    authConfig,
		db:        database,
		validator: validation.NewAuthRequestValidator(),
	}
}

// GenerateToken signs a JWT for the username
func (s *Service) GenerateToken(username string) (string, error) {
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.config.JWTSecret)
}

// ValidateToken parses and verifies a JWT, returning its claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.config.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// verifyPassword checks the password against the user's bcrypt hash
func verifyPassword(user *db.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// sendError sends a JSON error response with a short human-readable message
func sendError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: message})
}

// LoginHandler authenticates a user and returns a JWT token
func (s *Service) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.ValidateLoginRequest(req.Username, req.Password); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.db.GetUserByUsername(req.Username)
	if err != nil {
		logger.Log.WithField("username", req.Username).Info("Login failed: user not found")
		sendError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !verifyPassword(user, req.Password) {
		logger.Log.WithField("username", req.Username).Info("Login failed: invalid password")
		sendError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.GenerateToken(req.Username)
	if err != nil {
		logger.Log.WithError(err).Error("Error generating token")
		sendError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	logger.Log.WithField("username", req.Username).Info("User logged in")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Token: token})
}

// RegisterHandler creates a new user account and returns a JWT token
func (s *Service) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.ValidateRegisterRequest(req.Username, req.Email, req.Password); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.db.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		logger.Log.WithError(err).WithField("username", req.Username).Info("Registration failed")
		if strings.Contains(err.Error(), "already exists") {
			sendError(w, http.StatusConflict, "Username already exists")
			return
		}
		sendError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	token, err := s.GenerateToken(user.Username)
	if err != nil {
		logger.Log.WithError(err).Error("Error generating token")
		sendError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	logger.Log.WithField("username", user.Username).Info("User registered")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RegisterResponse{
		Message: "User registered successfully",
		Token:   token,
	})
}

// Middleware rejects requests without a valid bearer token and stores the
// authenticated username in the request context
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			sendError(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			sendError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := s.ValidateToken(bearerToken[1])
		if err != nil {
			sendError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
