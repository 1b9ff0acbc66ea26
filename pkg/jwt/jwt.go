package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles y usuarios los administra el proveedor de identidad externo; este paquete
// solo verifica la firma y extrae quién hace el cambio.

var (
	// ErrExpired token vencido (incluye la tolerancia de reloj).
	ErrExpired = errors.New("jwt: token expirado")
	// ErrInvalid firma, formato o claims inválidos.
	ErrInvalid = errors.New("jwt: token inválido")
)

const clockSkew = 30 * time.Second

// Claims claims estándar más la identidad del operador.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // admin | normal | tercerizado
}

// Identity operador extraído del token.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// Verifier valida tokens HS256. Issuer vacío = no se exige "iss".
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier construye el verificador.
func NewVerifier(secret, issuer string) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkew),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Verifier{secret: []byte(secret), parser: jwt.NewParser(opts...)}, nil
}

// Parse devuelve la identidad o ErrExpired / ErrInvalid (envueltos con el detalle).
func (v *Verifier) Parse(tokenString string) (Identity, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Identity{}, fmt.Errorf("%w: %v", ErrExpired, err)
	case err != nil:
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return Identity{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}

// Parse valida con un verificador sin exigencia de issuer.
func Parse(secret, tokenString string) (Identity, error) {
	v, err := NewVerifier(secret, "")
	if err != nil {
		return Identity{}, err
	}
	return v.Parse(tokenString)
}

// Generate firma un token. Solo lo usa `conciliador token` para pruebas locales.
func Generate(secret, userID, username, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
