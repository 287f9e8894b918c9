package session

import (
	"errors"
	"strconv"
	"time"

	"gamestore/internal/cart"
	"gamestore/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName はセッショントークンを入れるcookie名。
const CookieName = "session"

var ErrInvalidToken = errors.New("invalid session token")

// Identity はセッションに紐付いたユーザー。UserID=0は未ログイン。
type Identity struct {
	UserID int64
	Email  string
	Role   model.Role
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID > 0
}

func (i Identity) IsSeller() bool {
	return i.IsAuthenticated() && i.Role == model.RoleSeller
}

func (i Identity) IsBuyer() bool {
	return i.IsAuthenticated() && i.Role == model.RoleBuyer
}

// Session は署名付きトークン1枚で運ぶ全状態。
// リクエストごとにトークンから復元して、書き換えたら再発行する。
type Session struct {
	Identity
	Cart cart.Cart
}

func NewAnonymous() *Session {
	return &Session{Cart: cart.New()}
}

type sessionClaims struct {
	Email string    `json:"email,omitempty"`
	Role  string    `json:"role,omitempty"`
	Cart  cart.Cart `json:"cart,omitempty"`
	jwt.RegisteredClaims
}

// Manager はセッショントークンの発行と検証。
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue はHS256で署名したセッショントークンを作る。
func (m *Manager) Issue(s *Session, now time.Time) (string, error) {
	var sub string
	if s.IsAuthenticated() {
		sub = strconv.FormatInt(s.UserID, 10)
	}

	claims := sessionClaims{
		Email: s.Email,
		Role:  string(s.Role),
		Cart:  s.Cart,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Parse はトークンを検証してSessionに戻す。
// 署名不正・期限切れ・壊れたclaimsは全部ErrInvalidToken。
func (m *Manager) Parse(raw string) (*Session, error) {
	var claims sessionClaims

	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	s := &Session{Cart: claims.Cart}
	if s.Cart == nil {
		s.Cart = cart.New()
	}

	if claims.Subject != "" {
		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil || userID <= 0 {
			return nil, ErrInvalidToken
		}
		s.UserID = userID
		s.Email = claims.Email
		s.Role = model.Role(claims.Role)
	}

	return s, nil
}
