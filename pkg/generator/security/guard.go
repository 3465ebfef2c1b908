// Package security guards state-changing operations with short lived anti-forgery tokens
// bound to one action and to the principal they were issued to.
package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const moduleName = "security"

// Action names a guarded operation.
type Action string

const (
	ActionGenerate            Action = "wpgen-generate"
	ActionCacheFlush          Action = "wpgen-cache-flush"
	ActionDownloadSQL         Action = "wpgen-download-sql"
	ActionUpdateCommentCounts Action = "wpgen-update-comment-counts"
	ActionDelete              Action = "wpgen-delete"
)

// Actions lists every guarded action.
func Actions() []Action {
	return []Action{ActionGenerate, ActionCacheFlush, ActionDownloadSQL, ActionUpdateCommentCounts, ActionDelete}
}

// CapManageOptions is the privilege every guarded action requires.
const CapManageOptions = "manage_options"

const (
	MessageExpired   = "Your session has expired. Please reload the page."
	MessageForbidden = "You are not allowed to perform this action."
	MessageNoData    = "Something went wrong while performing this action."
)

// Claims are carried by a nonce.
type Claims struct {
	jwt.RegisteredClaims
	Action    Action          `json:"action"`
	Principal model.Principal `json:"principal"`
}

// Guard issues and checks nonces.
type Guard struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewGuard creates a Guard. Without a configured secret a random one is generated, so
// tokens do not outlive the process.
func NewGuard(cfg config.SecurityConfig) (*Guard, error) {
	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, exception.IO(moduleName, "failed to generate a token secret", err)
		}
		secret = []byte(hex.EncodeToString(buf))
		logger.Warnf("security.token_secret is not set; issued tokens are valid for this process only.")
	}
	ttl := time.Duration(cfg.TokenTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Guard{secret: secret, ttl: ttl, issuer: cfg.Issuer, now: time.Now}, nil
}

// WithClock returns a copy of g that reads the time from now.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	c := *g
	c.now = now
	return &c
}

// Issue creates a nonce for action on behalf of p.
func (g *Guard) Issue(p model.Principal, action Action) (string, error) {
	now := g.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    g.issuer,
			Subject:   fmt.Sprintf("%d", p.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		Action:    action,
		Principal: p,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", exception.IO(moduleName, "failed to sign token", err)
	}
	return token, nil
}

// Nonces issues one nonce per action.
func (g *Guard) Nonces(p model.Principal) (map[Action]string, error) {
	out := make(map[Action]string, len(Actions()))
	for _, a := range Actions() {
		token, err := g.Issue(p, a)
		if err != nil {
			return nil, err
		}
		out[a] = token
	}
	return out, nil
}

// Check verifies that token was issued for action and that its principal holds
// CapManageOptions. It returns the principal on success and an AuthFailure otherwise.
func (g *Guard) Check(token string, action Action) (model.Principal, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return g.secret, nil
	}, opts...)
	if err != nil {
		logger.Debugf("Rejected %s token: %v", action, err)
		return model.Principal{}, exception.Auth(moduleName, MessageExpired)
	}
	if claims.Action != action {
		logger.Debugf("Rejected token issued for %s on %s.", claims.Action, action)
		return model.Principal{}, exception.Auth(moduleName, MessageExpired)
	}
	if !claims.Principal.Can(CapManageOptions) {
		return model.Principal{}, exception.Auth(moduleName, MessageForbidden)
	}
	return claims.Principal, nil
}

// RequireData rejects requests that carry no form data.
func RequireData(data string) error {
	if data == "" {
		return exception.Auth(moduleName, MessageNoData)
	}
	return nil
}
