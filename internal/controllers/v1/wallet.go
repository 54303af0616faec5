package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paydown/backend/internal/httputil"
	"github.com/paydown/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterWalletRoutes registers the routes for wallets with
// the RouterGroup that is passed.
func RegisterWalletRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsWallets)
		r.GET("", GetWallets)
		r.POST("", CreateWallet)
	}

	// Wallet with ID
	{
		r.OPTIONS("/:id", OptionsWalletDetail)
		r.GET("/:id", GetWallet)
		r.PATCH("/:id", UpdateWallet)
		r.DELETE("/:id", DeleteWallet)
	}

	// Membership management
	{
		r.OPTIONS("/:id/members", OptionsWalletMembers)
		r.GET("/:id/members", GetWalletMembers)
		r.POST("/:id/members", CreateWalletMember)
		r.DELETE("/:id/members/:userId", DeleteWalletMember)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Wallets
// @Success		204
// @Router			/v1/wallets [options]
func OptionsWallets(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Wallets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wallets/{id} [options]
func OptionsWalletDetail(c *gin.Context) {
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

	_, err = getWalletResource(userID, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Wallets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wallets/{id}/members [options]
func OptionsWalletMembers(c *gin.Context) {
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

	_, err = getWalletResource(userID, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPost(c)
}

// @Summary		Get wallet
// @Description	Returns a specific wallet. The wallet is only visible to its members.
// @Tags			Wallets
// @Produce		json
// @Success		200	{object}	WalletResponse
// @Failure		400	{object}	WalletResponse
// @Failure		404	{object}	WalletResponse
// @Failure		500	{object}	WalletResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wallets/{id} [get]
func GetWallet(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	wallet, err := getWalletResource(userID, uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	data := newWallet(c, wallet)
	c.JSON(http.StatusOK, WalletResponse{Data: &data})
}

// @Summary		Get wallets
// @Description	Returns all wallets the user is a member of
// @Tags			Wallets
// @Produce		json
// @Success		200	{object}	WalletListResponse
// @Failure		401	{object}	WalletListResponse
// @Failure		500	{object}	WalletListResponse
// @Router			/v1/wallets [get]
func GetWallets(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletListResponse{
			Error: &e,
		})
		return
	}

	wallets, err := models.WalletsForUser(userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Wallet, 0)
	for _, wallet := range wallets {
		data = append(data, newWallet(c, wallet))
	}

	c.JSON(http.StatusOK, WalletListResponse{Data: data})
}

// @Summary		Create wallet
// @Description	Creates a new wallet. The caller becomes its owner.
// @Tags			Wallets
// @Produce		json
// @Success		201		{object}	WalletResponse
// @Failure		400		{object}	WalletResponse
// @Failure		500		{object}	WalletResponse
// @Param			wallet	body		WalletEditable	true	"Wallet"
// @Router			/v1/wallets [post]
func CreateWallet(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	var editable WalletEditable

	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	wallet := editable.model(userID)
	err = models.CreateWallet(&wallet)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	data := newWallet(c, wallet)
	c.JSON(http.StatusCreated, WalletResponse{Data: &data})
}

// @Summary		Update wallet
// @Description	Updates an existing wallet. Only the owner is allowed to do this.
// @Tags			Wallets
// @Accept			json
// @Produce		json
// @Success		200		{object}	WalletResponse
// @Failure		400		{object}	WalletResponse
// @Failure		403		{object}	WalletResponse
// @Failure		404		{object}	WalletResponse
// @Failure		500		{object}	WalletResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			wallet	body		WalletEditable	true	"Wallet"
// @Router			/v1/wallets/{id} [patch]
func UpdateWallet(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	wallet, err := getWalletResource(userID, uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	err = wallet.RequireOwner(userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, WalletEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	var update WalletEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&wallet).Select("", updateFields...).Updates(update.model(wallet.OwnerID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	data := newWallet(c, wallet)
	c.JSON(http.StatusOK, WalletResponse{Data: &data})
}

// @Summary		Delete wallet
// @Description	Deletes a wallet and its memberships. Only the owner is allowed to do this. Transactions booked in the wallet are kept, they lose their wallet scope.
// @Tags			Wallets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wallets/{id} [delete]
func DeleteWallet(c *gin.Context) {
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

	wallet, err := getWalletResource(userID, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = wallet.RequireOwner(userID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.WalletMember{WalletID: wallet.ID}).Delete(&models.WalletMember{}).Error
		if err != nil {
			return err
		}

		// UpdateColumn skips the model hooks, they cannot validate a batch
		// update without a loaded transaction
		err = tx.Model(&models.Transaction{}).Where("wallet_id = ?", wallet.ID).UpdateColumn("wallet_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(&wallet).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get wallet members
// @Description	Returns the members of a wallet. The list is only visible to members.
// @Tags			Wallets
// @Produce		json
// @Success		200	{object}	WalletMemberListResponse
// @Failure		400	{object}	WalletMemberListResponse
// @Failure		404	{object}	WalletMemberListResponse
// @Failure		500	{object}	WalletMemberListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wallets/{id}/members [get]
func GetWalletMembers(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletMemberListResponse{
			Error: &e,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletMemberListResponse{
			Error: &e,
		})
		return
	}

	wallet, err := getWalletResource(userID, uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletMemberListResponse{
			Error: &e,
		})
		return
	}

	var members []models.WalletMember
	err = models.DB.Where(&models.WalletMember{WalletID: wallet.ID}).Order("datetime(created_at) ASC").Find(&members).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletMemberListResponse{
			Error: &e,
		})
		return
	}

	data := make([]WalletMember, 0)
	for _, member := range members {
		data = append(data, newWalletMember(member))
	}

	c.JSON(http.StatusOK, WalletMemberListResponse{Data: data})
}

// @Summary		Add wallet member
// @Description	Adds a user to a wallet. Only the owner is allowed to do this.
// @Tags			Wallets
// @Produce		json
// @Success		201		{object}	WalletMemberResponse
// @Failure		400		{object}	WalletMemberResponse
// @Failure		403		{object}	WalletMemberResponse
// @Failure		404		{object}	WalletMemberResponse
// @Failure		500		{object}	WalletMemberResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			member	body		WalletMemberEditable	true	"WalletMember"
// @Router			/v1/wallets/{id}/members [post]
func CreateWalletMember(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletMemberResponse{
			Error: &e,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletMemberResponse{
			Error: &e,
		})
		return
	}

	wallet, err := getWalletResource(userID, uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletMemberResponse{
			Error: &e,
		})
		return
	}

	err = wallet.RequireOwner(userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletMemberResponse{
			Error: &e,
		})
		return
	}

	var editable WalletMemberEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletMemberResponse{
			Error: &e,
		})
		return
	}

	// The owner's membership is created with the wallet and never managed
	// through this endpoint
	if editable.UserID == wallet.OwnerID {
		e := errMemberIsOwner.Error()
		c.JSON(http.StatusBadRequest, WalletMemberResponse{
			Error: &e,
		})
		return
	}

	role := editable.Role
	if role == "" {
		role = models.WalletRoleMember
	}

	member := models.WalletMember{
		WalletID: wallet.ID,
		UserID:   editable.UserID,
		Role:     role,
	}

	err = models.DB.Create(&member).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletMemberResponse{
			Error: &e,
		})
		return
	}

	data := newWalletMember(member)
	c.JSON(http.StatusCreated, WalletMemberResponse{Data: &data})
}

// @Summary		Remove wallet member
// @Description	Removes a user from a wallet. Only the owner is allowed to do this.
// @Tags			Wallets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id		path	URIWalletMember	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wallets/{id}/members/{userId} [delete]
func DeleteWalletMember(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var uri URIWalletMember
	err = c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	wallet, err := getWalletResource(userID, URIID{ID: uri.ID})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = wallet.RequireOwner(userID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if uri.UserID.UUID == wallet.OwnerID {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errMemberIsOwner.Error(),
		})
		return
	}

	var member models.WalletMember
	err = models.DB.Where(&models.WalletMember{WalletID: wallet.ID, UserID: uri.UserID.UUID}).First(&member).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&member).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// getWalletResource loads a wallet and ensures the user is a member of it.
func getWalletResource(userID uuid.UUID, uri URIID) (models.Wallet, error) {
	var wallet models.Wallet
	err := models.DB.First(&wallet, uri.ID).Error
	if err != nil {
		return models.Wallet{}, err
	}

	// Non-members get the same answer as for a wallet that does not exist
	_, err = wallet.RoleOf(userID)
	if err != nil {
		return models.Wallet{}, err
	}

	return wallet, nil
}
