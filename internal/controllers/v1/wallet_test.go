package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/paydown/backend/internal/controllers/v1"
	"github.com/paydown/backend/internal/models"
	"github.com/paydown/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestWallet(t *testing.T, userID uuid.UUID, editable v1.WalletEditable, expectedStatus ...int) v1.WalletResponse {
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/wallets", editable, asUser(userID))
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.WalletResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

// TestWalletsCreate verifies that the creator becomes the owner and is a
// member of the wallet.
func (suite *TestSuiteStandard) TestWalletsCreate() {
	wallet := createTestWallet(suite.T(), suite.userID, v1.WalletEditable{Name: "Household"})

	require.NotNil(suite.T(), wallet.Data)
	assert.Equal(suite.T(), suite.userID, wallet.Data.OwnerID)

	r := test.Request(suite.T(), http.MethodGet, wallet.Data.Links.Members, "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var members v1.WalletMemberListResponse
	test.DecodeResponse(suite.T(), &r, &members)

	require.Len(suite.T(), members.Data, 1)
	assert.Equal(suite.T(), suite.userID, members.Data[0].UserID)
	assert.Equal(suite.T(), models.WalletRoleOwner, members.Data[0].Role)
}

// TestWalletsVisibility verifies that wallets are only visible to their
// members.
func (suite *TestSuiteStandard) TestWalletsVisibility() {
	wallet := createTestWallet(suite.T(), suite.userID, v1.WalletEditable{Name: "Household"})

	stranger := uuid.New()

	r := test.Request(suite.T(), http.MethodGet, wallet.Data.Links.Self, "", asUser(stranger))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// Joined wallets appear in the member's list
	member := uuid.New()
	r = test.Request(suite.T(), http.MethodPost, wallet.Data.Links.Members, v1.WalletMemberEditable{UserID: member}, asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/wallets", "", asUser(member))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.WalletListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	assert.Len(suite.T(), list.Data, 1)
}

// TestWalletsMemberManagement verifies the member endpoints.
func (suite *TestSuiteStandard) TestWalletsMemberManagement() {
	wallet := createTestWallet(suite.T(), suite.userID, v1.WalletEditable{Name: "Household"})
	member := uuid.New()

	// Default role is member
	r := test.Request(suite.T(), http.MethodPost, wallet.Data.Links.Members, v1.WalletMemberEditable{UserID: member}, asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var created v1.WalletMemberResponse
	test.DecodeResponse(suite.T(), &r, &created)
	assert.Equal(suite.T(), models.WalletRoleMember, created.Data.Role)

	// The owner cannot be added again
	r = test.Request(suite.T(), http.MethodPost, wallet.Data.Links.Members, v1.WalletMemberEditable{UserID: suite.userID}, asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// Adding the same user twice fails
	r = test.Request(suite.T(), http.MethodPost, wallet.Data.Links.Members, v1.WalletMemberEditable{UserID: member}, asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.WalletMemberResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrWalletMemberNotUnique.Error(), *response.Error)

	// Members cannot manage the member list
	r = test.Request(suite.T(), http.MethodPost, wallet.Data.Links.Members, v1.WalletMemberEditable{UserID: uuid.New()}, asUser(member))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	// The owner can remove members
	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("%s/%s", wallet.Data.Links.Members, member), "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The owner cannot be removed
	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("%s/%s", wallet.Data.Links.Members, suite.userID), "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestWalletsUpdateRequiresOwner verifies that only the owner can change a
// wallet.
func (suite *TestSuiteStandard) TestWalletsUpdateRequiresOwner() {
	wallet := createTestWallet(suite.T(), suite.userID, v1.WalletEditable{Name: "Household"})
	member := uuid.New()

	r := test.Request(suite.T(), http.MethodPost, wallet.Data.Links.Members, v1.WalletMemberEditable{UserID: member}, asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodPatch, wallet.Data.Links.Self, map[string]any{"name": "Hostile takeover"}, asUser(member))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	var response v1.WalletResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrWalletNotOwner.Error(), *response.Error)

	r = test.Request(suite.T(), http.MethodPatch, wallet.Data.Links.Self, map[string]any{"name": "Family"}, asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Family", response.Data.Name)
}

// TestWalletsDelete verifies that deleting a wallet keeps its transactions
// without the wallet scope.
func (suite *TestSuiteStandard) TestWalletsDelete() {
	wallet := createTestWallet(suite.T(), suite.userID, v1.WalletEditable{Name: "Household"})

	transaction := createTestTransaction(suite.T(), suite.userID, v1.TransactionEditable{
		Category: "Groceries",
		WalletID: &wallet.Data.ID,
	})

	r := test.Request(suite.T(), http.MethodDelete, wallet.Data.Links.Self, "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var kept v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &kept)
	assert.Nil(suite.T(), kept.Data.WalletID, "The transaction must lose its wallet scope when the wallet is deleted")
}
