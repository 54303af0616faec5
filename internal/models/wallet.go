package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WalletRole is the role of a user within a wallet.
type WalletRole string

const (
	WalletRoleOwner  WalletRole = "owner"
	WalletRoleMember WalletRole = "member"
)

// Wallet is a shared scope for ledger entries. The owner manages membership,
// members see the wallet's entries.
type Wallet struct {
	DefaultModel
	OwnerID      uuid.UUID `json:"ownerId"`
	Name         string    `json:"name" example:"Household"`
	BaseCurrency string    `json:"baseCurrency" example:"EUR"`
}

// WalletMember is one user's membership in a wallet.
type WalletMember struct {
	DefaultModel
	WalletID uuid.UUID  `json:"walletId" gorm:"uniqueIndex:wallet_member_user"`
	Wallet   Wallet     `json:"-"`
	UserID   uuid.UUID  `json:"userId" gorm:"uniqueIndex:wallet_member_user"`
	Role     WalletRole `json:"role" example:"member"`
}

// BeforeSave normalizes the wallet name.
func (w *Wallet) BeforeSave(_ *gorm.DB) error {
	w.Name = strings.TrimSpace(w.Name)
	return nil
}

// RequireOwner is the policy check gating all mutating wallet operations.
func (w Wallet) RequireOwner(userID uuid.UUID) error {
	if w.OwnerID != userID {
		return ErrWalletNotOwner
	}

	return nil
}

// RoleOf returns the caller's role in the wallet, or ErrResourceNotFound
// wrapped by the query callback when the user is not a member.
func (w Wallet) RoleOf(userID uuid.UUID) (WalletRole, error) {
	var member WalletMember
	err := DB.Where(&WalletMember{WalletID: w.ID, UserID: userID}).First(&member).Error
	if err != nil {
		return "", err
	}

	return member.Role, nil
}

// CreateWallet persists a wallet together with the owner's membership.
func CreateWallet(wallet *Wallet) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(wallet).Error
		if err != nil {
			return err
		}

		return tx.Create(&WalletMember{
			WalletID: wallet.ID,
			UserID:   wallet.OwnerID,
			Role:     WalletRoleOwner,
		}).Error
	})
}

// WalletsForUser returns all wallets the user is a member of, owned ones
// included.
func WalletsForUser(userID uuid.UUID) ([]Wallet, error) {
	var wallets []Wallet

	err := DB.
		Joins("JOIN wallet_members ON wallet_members.wallet_id = wallets.id").
		Where("wallet_members.user_id = ?", userID).
		Where("wallet_members.deleted_at IS NULL").
		Order("wallets.created_at DESC").
		Find(&wallets).Error
	if err != nil {
		return nil, err
	}

	return wallets, nil
}
