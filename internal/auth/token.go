package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// decodeUnverifiedUID extracts the user identifier from a token payload
// without checking its signature. Exchange tokens carry the target user in
// the "uid" claim; "user_id" and "sub" cover other provider token shapes.
func decodeUnverifiedUID(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("undecodable token: %w", err)
	}

	for _, key := range []string{"uid", "user_id", "sub"} {
		if uid, ok := claims[key].(string); ok && uid != "" {
			return uid, nil
		}
	}
	return "", fmt.Errorf("token payload carries no user identifier")
}
