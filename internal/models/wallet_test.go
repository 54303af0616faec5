package models_test

import (
	"github.com/google/uuid"
	"github.com/paydown/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCreateWalletAddsOwnerMembership() {
	ownerID := uuid.New()
	wallet := suite.createTestWallet(models.Wallet{OwnerID: ownerID, Name: "Household", BaseCurrency: "EUR"})

	role, err := wallet.RoleOf(ownerID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.WalletRoleOwner, role)
}

func (suite *TestSuiteStandard) TestRequireOwner() {
	ownerID := uuid.New()
	wallet := suite.createTestWallet(models.Wallet{OwnerID: ownerID, Name: "Household", BaseCurrency: "EUR"})

	assert.NoError(suite.T(), wallet.RequireOwner(ownerID))
	assert.ErrorIs(suite.T(), wallet.RequireOwner(uuid.New()), models.ErrWalletNotOwner)
}

func (suite *TestSuiteStandard) TestRoleOfNonMember() {
	wallet := suite.createTestWallet(models.Wallet{OwnerID: uuid.New(), Name: "Household", BaseCurrency: "EUR"})

	_, err := wallet.RoleOf(uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestWalletMemberUnique() {
	wallet := suite.createTestWallet(models.Wallet{OwnerID: uuid.New(), Name: "Household", BaseCurrency: "EUR"})
	memberID := uuid.New()

	err := models.DB.Create(&models.WalletMember{WalletID: wallet.ID, UserID: memberID, Role: models.WalletRoleMember}).Error
	require.NoError(suite.T(), err)

	err = models.DB.Create(&models.WalletMember{WalletID: wallet.ID, UserID: memberID, Role: models.WalletRoleMember}).Error
	assert.ErrorIs(suite.T(), err, models.ErrWalletMemberNotUnique)
}

func (suite *TestSuiteStandard) TestWalletsForUser() {
	userID := uuid.New()

	owned := suite.createTestWallet(models.Wallet{OwnerID: userID, Name: "Own", BaseCurrency: "EUR"})
	joined := suite.createTestWallet(models.Wallet{OwnerID: uuid.New(), Name: "Shared", BaseCurrency: "EUR"})
	suite.createTestWallet(models.Wallet{OwnerID: uuid.New(), Name: "Unrelated", BaseCurrency: "EUR"})

	err := models.DB.Create(&models.WalletMember{WalletID: joined.ID, UserID: userID, Role: models.WalletRoleMember}).Error
	require.NoError(suite.T(), err)

	wallets, err := models.WalletsForUser(userID)
	require.NoError(suite.T(), err)

	require.Len(suite.T(), wallets, 2)

	ids := []uuid.UUID{wallets[0].ID, wallets[1].ID}
	assert.Contains(suite.T(), ids, owned.ID)
	assert.Contains(suite.T(), ids, joined.ID)
}
