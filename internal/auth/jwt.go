package auth

import (
	"campaign/internal/entity"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultTokenLifetime = 24 * time.Hour
	defaultIssuer        = "campaign-site"
)

// ErrInvalidToken 覆盖签名错误、算法不符、过期与签发方不符等所有情况
var ErrInvalidToken = errors.New("invalid token")

// Claims 是后台令牌携带的管理员信息
type Claims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Manager 使用 HS256 签发和校验后台令牌
type Manager struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
	parser   *jwt.Parser
	now      func() time.Time
}

// NewManager 创建令牌管理器；lifetime <= 0 时为 24 小时
func NewManager(secret, issuer string, lifetime time.Duration) (*Manager, error) {
	key := strings.TrimSpace(secret)
	if key == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if lifetime <= 0 {
		lifetime = defaultTokenLifetime
	}
	if issuer = strings.TrimSpace(issuer); issuer == "" {
		issuer = defaultIssuer
	}
	return &Manager{
		secret:   []byte(key),
		issuer:   issuer,
		lifetime: lifetime,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
		now: time.Now,
	}, nil
}

// GenerateToken 为管理员签发令牌，返回令牌和过期时间
func (m *Manager) GenerateToken(user *entity.AdminUser) (string, time.Time, error) {
	if user == nil || user.ID == 0 {
		return "", time.Time{}, errors.New("cannot issue token without a persisted user")
	}
	issuedAt := m.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(m.lifetime)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken 校验令牌并返回其中的声明
func (m *Manager) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := m.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
