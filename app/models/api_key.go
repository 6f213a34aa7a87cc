package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/propnest/PropNest/internal/pkg/shortener"
)

const (
	apiKeyPrefix = "pn_"
	// 40 base62 characters carry well over 200 bits of entropy.
	apiKeySecretLength = 40
)

// ApiKey authenticates staff API calls. Only the SHA-256 hash of the key is
// stored; the plaintext is shown once at issue time.
type ApiKey struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	StaffUserID uint           `gorm:"not null;index" json:"staff_user_id"`
	StaffUser   StaffUser      `gorm:"foreignKey:StaffUserID" json:"staff_user,omitempty"`
	Label       string         `gorm:"type:varchar(100)" json:"label"`
	KeyHash     string         `gorm:"type:char(64);uniqueIndex;not null" json:"-"`
	KeyPrefix   string         `gorm:"type:varchar(20);default:''" json:"key_prefix"`
	LastUsedAt  *time.Time     `gorm:"type:timestamp;default:null" json:"last_used_at"`
	ExpiresAt   *time.Time     `gorm:"type:timestamp;default:null" json:"expires_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsExpired reports whether the key has passed its optional expiry.
func (k *ApiKey) IsExpired() bool {
	return k.ExpiresAt != nil && time.Now().After(*k.ExpiresAt)
}

// TouchUsage updates the last-used timestamp metadata.
func (k *ApiKey) TouchUsage() {
	now := time.Now()
	k.LastUsedAt = &now
}

// HashAPIKey returns the SHA-256 hash for the provided API key.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}

// NewApiKey generates key material for a staff user and returns the record
// together with the raw secret. Callers must persist the record and hand the
// raw key to the requesting user exactly once.
func NewApiKey(staffUserID uint, label string) (*ApiKey, string, error) {
	rawKey, prefix, hash, err := generateAPIKeyMaterial()
	if err != nil {
		return nil, "", err
	}
	key := &ApiKey{
		StaffUserID: staffUserID,
		Label:       label,
		KeyHash:     hash,
		KeyPrefix:   prefix,
	}
	return key, rawKey, nil
}

func generateAPIKeyMaterial() (string, string, string, error) {
	secret, err := shortener.GenerateSecureSlug(apiKeySecretLength)
	if err != nil {
		return "", "", "", err
	}
	rawKey := apiKeyPrefix + secret
	prefix := rawKey[:min(len(rawKey), 16)]
	hash := HashAPIKey(rawKey)
	return rawKey, prefix, hash, nil
}
