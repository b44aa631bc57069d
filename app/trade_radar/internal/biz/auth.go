package biz

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/conf"
)

const (
	TokenType = "bearer"

	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
)

// Token 登录成功后签发的访问令牌
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// AuthUseCase 演示账号认证与令牌签发
type AuthUseCase struct {
	username     string
	passwordHash []byte
	secret       []byte
	method       jwt.SigningMethod
	ttl          time.Duration
	log          *log.Helper
	now          func() time.Time
}

// NewAuthUseCase 创建认证业务逻辑实例
func NewAuthUseCase(c *conf.Auth, logger log.Logger) (*AuthUseCase, error) {
	helper := log.NewHelper(logger)
	if c == nil {
		c = conf.Default().Auth
	}

	alg := c.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm: %s", alg)
	}

	secret := []byte(c.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
		helper.Warn("auth.secret 未配置，使用随机密钥，重启后令牌失效")
	}

	// 使用 bcrypt 保存演示账号密码的哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(c.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	ttl := time.Duration(c.ExpireMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &AuthUseCase{
		username:     c.DemoUsername,
		passwordHash: hash,
		secret:       secret,
		method:       method,
		ttl:          ttl,
		log:          helper,
		now:          time.Now,
	}, nil
}

// Login 校验演示账号并签发令牌
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*Token, error) {
	if n := len(username); n < minUsernameLen || n > maxUsernameLen {
		return nil, errors.BadRequest("INVALID_LOGIN_REQUEST",
			fmt.Sprintf("username must be between %d and %d characters", minUsernameLen, maxUsernameLen))
	}
	if len(password) < minPasswordLen {
		return nil, errors.BadRequest("INVALID_LOGIN_REQUEST",
			fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}

	if username != uc.username || bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(password)) != nil {
		uc.log.WithContext(ctx).Warnf("登录失败: %s", username)
		return nil, errors.Unauthorized("AUTH_FAILED", "Incorrect username or password")
	}

	now := uc.now()
	expiresAt := now.Add(uc.ttl)
	token := jwt.NewWithClaims(uc.method, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(uc.secret)
	if err != nil {
		return nil, errors.InternalServer("TOKEN_SIGN_FAILED", "could not issue token").WithCause(err)
	}

	uc.log.WithContext(ctx).Infof("User %s logged in successfully", username)
	return &Token{AccessToken: signed, TokenType: TokenType, ExpiresAt: expiresAt}, nil
}

// ResolveIdentity 从 Authorization 头解析身份，任何问题都降级为匿名
func (uc *AuthUseCase) ResolveIdentity(ctx context.Context, authorization string) Identity {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(raw) == "" {
		return Anonymous()
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims,
		func(*jwt.Token) (interface{}, error) { return uc.secret, nil },
		jwt.WithValidMethods([]string{uc.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(uc.now),
	)
	if err != nil {
		uc.log.WithContext(ctx).Debugf("忽略无效令牌: %v", err)
		return Anonymous()
	}
	if claims.Subject == "" {
		return Anonymous()
	}
	return AuthenticatedAs(claims.Subject)
}
