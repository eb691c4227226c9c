package checkout

import (
	"errors"
	"strings"

	"vendora_back_end/internal/models"
)

// Identity — coordonnées client exigées par l'API de tarification et le commit.
type Identity struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

var (
	ErrEmptyCart         = errors.New("panier vide")
	ErrMissingIdentity   = errors.New("coordonnées client incomplètes")
	ErrIncompleteAddress = errors.New("adresse de livraison incomplète")
	ErrNoRateSelected    = errors.New("aucune option de livraison sélectionnée")
)

func (id Identity) IsComplete() bool {
	return strings.TrimSpace(id.FirstName) != "" &&
		strings.TrimSpace(id.LastName) != "" &&
		strings.TrimSpace(id.Email) != "" &&
		strings.TrimSpace(id.Phone) != ""
}

// ValidateCommit — préconditions du commit, vérifiées AVANT tout appel
// réseau. La première condition violée est renvoyée.
func ValidateCommit(items []models.CartItem, identity Identity, addr models.Address, selected *models.RateOption) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	if !identity.IsComplete() {
		return ErrMissingIdentity
	}
	if !addr.IsComplete() {
		return ErrIncompleteAddress
	}
	if selected == nil || len(selected.Legs) == 0 {
		return ErrNoRateSelected
	}
	return nil
}
