package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// identityKey returns a stable identifier for the requester, used to
// build rate-limit keys. Authenticated requests key on the JWT subject
// stored by JWTAuth; everything else keys on "guest".
func identityKey(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			return fmt.Sprintf("%.0f", t)
		case uint64:
			return fmt.Sprintf("%d", t)
		}
	}
	return "guest"
}
