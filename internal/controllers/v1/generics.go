package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/paydown/backend/internal/httputil"
	"github.com/paydown/backend/internal/models"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
//
// Note: This function only works for resources that are scoped to a single
// user via their UserID, not for wallets which are scoped via membership.
func resourceOptionsDetail[R models.Transaction | models.Debt | models.RecurringTransaction | models.Budget](c *gin.Context, resource R) {
	userID, err := currentUser(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Where("user_id = ?", userID).First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
