package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paydown/backend/internal/models"
	pd_uuid "github.com/paydown/backend/internal/uuid"
)

type WalletEditable struct {
	Name         string `json:"name" example:"Household"`                  // Name of the wallet
	BaseCurrency string `json:"baseCurrency" example:"EUR" default:"EUR"`  // Currency all amounts in the wallet are denominated in
}

// model returns the database resource for the API representation of the editable fields
func (editable WalletEditable) model(ownerID uuid.UUID) models.Wallet {
	return models.Wallet{
		OwnerID:      ownerID,
		Name:         editable.Name,
		BaseCurrency: editable.BaseCurrency,
	}
}

type WalletLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/wallets/d430d7c3-d14c-4712-9336-ee56965a6673"`         // The wallet itself
	Members string `json:"members" example:"https://example.com/api/v1/wallets/d430d7c3-d14c-4712-9336-ee56965a6673/members"` // The members of the wallet
}

// Wallet is the representation of a Wallet in API v1.
type Wallet struct {
	models.DefaultModel
	WalletEditable
	OwnerID uuid.UUID   `json:"ownerId" example:"c4e12b5a-9d64-4a55-a84f-20fc90fbbbb2"` // The user owning the wallet
	Links   WalletLinks `json:"links"`
}

// newWallet returns the API v1 representation of the resource
func newWallet(c *gin.Context, model models.Wallet) Wallet {
	url := c.GetString(string(models.DBContextURL))

	return Wallet{
		DefaultModel: model.DefaultModel,
		WalletEditable: WalletEditable{
			Name:         model.Name,
			BaseCurrency: model.BaseCurrency,
		},
		OwnerID: model.OwnerID,
		Links: WalletLinks{
			Self:    fmt.Sprintf("%s/v1/wallets/%s", url, model.ID),
			Members: fmt.Sprintf("%s/v1/wallets/%s/members", url, model.ID),
		},
	}
}

type WalletListResponse struct {
	Data  []Wallet `json:"data"`                                                          // List of wallets
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type WalletResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this wallet
	Data  *Wallet `json:"data"`                                                          // The Wallet data, if creation was successful
}

type WalletMemberEditable struct {
	UserID uuid.UUID         `json:"userId" example:"5175b84f-e95c-4b3a-9e6f-04ae08a7c6b4"` // The user to add to the wallet
	Role   models.WalletRole `json:"role" example:"member" default:"member"`                // The role of the user in the wallet
}

// WalletMember is the representation of a WalletMember in API v1.
type WalletMember struct {
	models.DefaultModel
	WalletMemberEditable
}

// newWalletMember returns the API v1 representation of the resource
func newWalletMember(model models.WalletMember) WalletMember {
	return WalletMember{
		DefaultModel: model.DefaultModel,
		WalletMemberEditable: WalletMemberEditable{
			UserID: model.UserID,
			Role:   model.Role,
		},
	}
}

type WalletMemberListResponse struct {
	Data  []WalletMember `json:"data"`                                                          // List of wallet members
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type WalletMemberResponse struct {
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *WalletMember `json:"data"`                                                          // The WalletMember data, if creation was successful
}

type URIWalletMember struct {
	ID     pd_uuid.UUID `uri:"id" binding:"required" format:"UUID"`     // ID of the wallet
	UserID pd_uuid.UUID `uri:"userId" binding:"required" format:"UUID"` // ID of the member
}
