package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SignedPass represents a validated boarding-pass render token.
type SignedPass struct {
	ConfirmationCode string
	UserID           string
	TokenID          string
	ExpiresAt        time.Time
}

// PassSignerService signs single-use URLs that the external image renderer
// exchanges for a boarding pass. Replay is guarded through Redis.
type PassSignerService struct {
	secretKey []byte
	redis     *redis.Client
}

func NewPassSignerService(secretKey []byte, redis *redis.Client) *PassSignerService {
	return &PassSignerService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// SignPassURL generates a single-use render token for a boarding pass.
func (s *PassSignerService) SignPassURL(confirmationCode, userID string, ttl time.Duration) (string, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"confirmation": confirmationCode,
		"user_id":      userID,
		"jti":          tokenID,
		"exp":          expiresAt.Unix(),
		"iat":          time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign pass token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a render token and extracts its claims.
func (s *PassSignerService) ValidateToken(ctx context.Context, tokenString string) (*SignedPass, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse pass token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid pass token")
	}

	confirmation, ok := (*claims)["confirmation"].(string)
	if !ok {
		return nil, errors.New("missing or invalid confirmation claim")
	}

	userID, ok := (*claims)["user_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid user_id claim")
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)

	if time.Now().After(expiresAt) {
		return nil, errors.New("pass token expired")
	}

	used, err := s.isTokenUsed(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token usage: %w", err)
	}
	if used {
		return nil, errors.New("pass token already used")
	}

	return &SignedPass{
		ConfirmationCode: confirmation,
		UserID:           userID,
		TokenID:          tokenID,
		ExpiresAt:        expiresAt,
	}, nil
}

// MarkTokenAsUsed enforces single use.
func (s *PassSignerService) MarkTokenAsUsed(ctx context.Context, tokenID string) error {
	ttl := 15 * time.Minute

	if err := s.redis.Set(ctx, "used_pass:"+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark pass token as used: %w", err)
	}
	return nil
}

func (s *PassSignerService) isTokenUsed(ctx context.Context, tokenID string) (bool, error) {
	result, err := s.redis.Get(ctx, "used_pass:"+tokenID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check pass token usage: %w", err)
	}
	return result == "1", nil
}
