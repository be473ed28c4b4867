// Package cod issues pseudo payment sessions for cash-on-delivery orders so
// the checkout flow can hand every order a session handle, whichever way it
// is paid.
package cod

import (
	"strconv"
	"strings"
	"time"

	"github.com/cartloom/cartloom/internal/constants"
)

// NewSessionID mints a pseudo session handle for a cash-on-delivery order.
func NewSessionID(now time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	return constants.CODSessionPrefix + strconv.FormatInt(now.UnixNano(), 10)
}

// IsPseudoSession reports whether a session handle was minted locally rather
// than by the payment provider.
func IsPseudoSession(sessionID string) bool {
	return strings.HasPrefix(strings.TrimSpace(sessionID), constants.CODSessionPrefix)
}
