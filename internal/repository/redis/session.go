package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type SessionData struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

func sessionKey(userID string) string {
	return fmt.Sprintf("session:user:%s", userID)
}

func lookupKey(token string) string {
	return fmt.Sprintf("session:lookup:%s", token)
}

// Store writes the session document keyed by user plus a reverse lookup
// token -> user_id for validation.
func (r *SessionRepository) Store(ctx context.Context, userID, token, role, ipAddress, userAgent string, ttl time.Duration) error {
	now := time.Now()
	data := SessionData{
		UserID:    userID,
		Role:      role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(userID), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	if err := r.client.Set(ctx, lookupKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session lookup: %w", err)
	}

	return nil
}

// Validate resolves a token to its user id, failing when the session is
// gone or expired.
func (r *SessionRepository) Validate(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, lookupKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", errors.New("session not found or expired")
		}
		return "", fmt.Errorf("failed to validate session: %w", err)
	}

	return userID, nil
}

// Delete drops both the session document and the token lookup.
func (r *SessionRepository) Delete(ctx context.Context, userID, token string) error {
	if err := r.client.Del(ctx, sessionKey(userID), lookupKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
