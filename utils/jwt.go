package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
)

// RedisClient is an optional shared Redis client used for token revocation.
// It will be nil when REDIS_ADDR is not configured; revocation checks are
// skipped in that case (single-instance deployments).
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("warning: redis ping failed: %v\n", err)
		// don't fail startup for redis issues; revocation simply stays disabled
		return
	}
	RedisClient = rc
}

type contextKey string

const MemberIDKey = contextKey("memberID")
const MemberRoleKey = contextKey("memberRole")
const RequestIDKey = contextKey("requestID")

// GenerateAccessToken issues a short-lived HS256 access token for a member.
// Login itself lives in the membership service; this helper exists for
// service-to-service token minting and tests.
func GenerateAccessToken(memberID uint, role string, expiry time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	jti, err := generateJTI(32)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"id":   memberID,
		"role": role,
		"exp":  now.Add(expiry).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  jti,
		"aud":  os.Getenv("JWT_AUD"),
		"iss":  os.Getenv("JWT_ISS"),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken parses and validates an access token, checking the
// registered claims explicitly and the jti revocation blacklist when Redis
// is configured.
func ValidateAccessToken(tokenStr string) (*jwt.Token, jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, nil, errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Require exact HS256 algorithm to avoid algorithm confusion.
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		if err != nil && strings.Contains(err.Error(), "expired") {
			return nil, nil, errors.New("token expired")
		}
		return nil, nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return token, nil, errors.New("invalid claims")
	}

	now := time.Now()
	if expRaw, ok := claims["exp"]; ok {
		if v, ok := expRaw.(float64); ok && now.Unix() > int64(v) {
			return token, nil, errors.New("token expired")
		}
	}
	if nbfRaw, ok := claims["nbf"]; ok {
		if v, ok := nbfRaw.(float64); ok && now.Unix() < int64(v) {
			return token, nil, errors.New("token not yet valid")
		}
	}

	if audEnv := os.Getenv("JWT_AUD"); audEnv != "" {
		if aud, ok := claims["aud"].(string); !ok || aud != audEnv {
			return token, nil, errors.New("invalid audience")
		}
	}
	if issEnv := os.Getenv("JWT_ISS"); issEnv != "" {
		if iss, ok := claims["iss"].(string); !ok || iss != issEnv {
			return token, nil, errors.New("invalid issuer")
		}
	}

	// jti revocation: Redis blacklist only. Redis outages must not lock
	// everyone out, so errors are ignored.
	if jti, ok := claims["jti"].(string); ok && jti != "" && RedisClient != nil {
		res, err := RedisClient.Get(context.Background(), "jwt:blacklist:"+jti).Result()
		if err == nil && res == "1" {
			return token, nil, errors.New("token revoked")
		}
	}

	return token, claims, nil
}

// RevokeJTI adds a jti to the Redis blacklist with a TTL covering the token's
// remaining lifetime. No-op error when Redis is not configured.
func RevokeJTI(jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("empty jti")
	}
	if RedisClient == nil {
		return errors.New("no revocation store configured")
	}
	return RedisClient.Set(context.Background(), "jwt:blacklist:"+jti, "1", ttl).Err()
}

// ClaimsMemberID extracts the member ID from token claims, tolerating the
// numeric types JSON decoding produces.
func ClaimsMemberID(claims jwt.MapClaims) uint {
	rawID, ok := claims["id"]
	if !ok {
		return 0
	}
	switch v := rawID.(type) {
	case float64:
		return uint(v)
	case int:
		return uint(v)
	case string:
		var n uint
		_, _ = fmt.Sscanf(v, "%d", &n)
		return n
	default:
		return 0
	}
}

// generateJTI creates a URL-safe random identifier used as JWT ID
func generateJTI(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	const hex = "0123456789abcdef"
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = hex[int(b[i])%len(hex)]
	}
	return string(out), nil
}

// GetMemberID returns the authenticated member ID stored by the auth middleware.
func GetMemberID(r *http.Request) (uint, bool) {
	v := r.Context().Value(MemberIDKey)
	id, ok := v.(uint)
	return id, ok
}

// GetMemberRole returns the role claim stored by the auth middleware.
func GetMemberRole(r *http.Request) string {
	if s, ok := r.Context().Value(MemberRoleKey).(string); ok {
		return s
	}
	return ""
}
