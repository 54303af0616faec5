package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// userIDHeader identifies the user a request acts for. It is set by the
// authenticating reverse proxy in front of the backend.
const userIDHeader = "X-User-ID"

// currentUser returns the ID of the user the request acts for.
func currentUser(c *gin.Context) (uuid.UUID, error) {
	header := c.GetHeader(userIDHeader)
	if header == "" {
		return uuid.Nil, errUserIDRequired
	}

	id, err := uuid.Parse(header)
	if err != nil {
		return uuid.Nil, errUserIDInvalid
	}

	return id, nil
}
