package common

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skyward-va/concourse/internal/constants"
	models "skyward-va/concourse/internal/models/gorm"
)

// LinkData tracks a pending Discord link attempt.
type LinkData struct {
	UserID    string
	IsStaff   bool
	CreatedAt time.Time
}

// LinkingService hands out short-lived linking codes and completes the
// Discord link by marking the user linked and minting an API token. Codes
// live in an injected keyed store with a TTL, never in package-level state.
type LinkingService struct {
	codes CacheInterface
	db    *gorm.DB
	ttl   time.Duration
}

func NewLinkingService(codes CacheInterface, db *gorm.DB) *LinkingService {
	return &LinkingService{
		codes: codes,
		db:    db,
		ttl:   constants.LinkingCodeTTL,
	}
}

// GenerateCode creates a new linking code valid for the configured TTL.
func (s *LinkingService) GenerateCode(isStaff bool) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate linking code: %w", err)
	}
	code := hex.EncodeToString(buf)

	s.codes.Set(cacheKey(code), LinkData{IsStaff: isStaff, CreatedAt: time.Now()}, s.ttl)
	return code, nil
}

// Verify redeems a linking code for the given user. Expired or unknown codes
// fail with ErrNotFound; the store's TTL is also re-checked on read so a
// stale entry can never be redeemed.
func (s *LinkingService) Verify(ctx context.Context, code, userID string) (*LinkData, string, error) {
	val, found := s.codes.Get(cacheKey(code))
	if !found {
		return nil, "", constants.ErrNotFound
	}

	data, ok := val.(LinkData)
	if !ok || time.Since(data.CreatedAt) > s.ttl {
		s.codes.Delete(cacheKey(code))
		return nil, "", constants.ErrNotFound
	}

	token := uuid.New().String()
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"linked": true, "api_token": token})
	if res.Error != nil {
		return nil, "", fmt.Errorf("failed to link user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, "", constants.ErrUserNotFound
	}

	data.UserID = userID
	s.codes.Set(cacheKey(code), data, s.ttl)

	return &data, token, nil
}

func cacheKey(code string) string {
	return string(constants.CachePrefixLinkingCode) + code
}
