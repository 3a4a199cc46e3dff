package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"janggi/internal/janggi"
)

var errBadToken = errors.New("bad seat token")

// signSeatToken issues the HS256 credential binding one color in one
// game. Whoever holds it moves for that color; the server keeps no
// seat state of its own.
func signSeatToken(secret []byte, gameID string, side janggi.Side, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"game_id": gameID,
		"side":    side.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})
	return tok.SignedString(secret)
}

func parseSeatToken(secret []byte, tokenStr string) (string, janggi.Side, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return "", janggi.NoSide, errBadToken
	}

	gameID, _ := claims["game_id"].(string)
	if gameID == "" {
		return "", janggi.NoSide, errBadToken
	}
	var side janggi.Side
	switch claims["side"] {
	case janggi.Red.String():
		side = janggi.Red
	case janggi.Blue.String():
		side = janggi.Blue
	default:
		return "", janggi.NoSide, errBadToken
	}
	return gameID, side, nil
}

// bearerToken pulls the credential out of "Authorization: Bearer ...".
func bearerToken(r *http.Request) string {
	a := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
