package auth

import (
	"fmt"
	"time"

	"cribbage-go/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims ties a token to one game. There are no user accounts: whoever
// holds the game token is that game's human player.
type Claims struct {
	GameID     string `json:"game_id"`
	PlayerName string `json:"player_name"`
	jwt.RegisteredClaims
}

func GenerateToken(gameID, playerName string, cfg config.Config) (string, error) {
	if cfg.TokenSecret == "" {
		return "", fmt.Errorf("TOKEN_SECRET is required")
	}
	now := time.Now().UTC()
	claims := Claims{
		GameID:     gameID,
		PlayerName: playerName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.TokenIssuer,
			Subject:   gameID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(cfg.TokenSecret))
}

func ParseToken(tokenString string, cfg config.Config) (*Claims, error) {
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}

	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.TokenSecret), nil
	},
		jwt.WithIssuer(cfg.TokenIssuer),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
