package checkout

import (
	"errors"
	"testing"

	"vendora_back_end/internal/models"
)

func completeIdentity() Identity {
	return Identity{FirstName: "Jean", LastName: "Martin", Email: "jean@example.com", Phone: "+33612345678"}
}

func completeAddress() models.Address {
	return models.Address{
		Street: "12 rue des Lilas", City: "Lyon", State: "Rhône",
		PostalCode: "690003", Country: "France", Phone: "+33612345678",
	}
}

func someItems() []models.CartItem {
	return []models.CartItem{{ProductID: "p1", UnitPrice: 10, Quantity: 1}}
}

func someOption() *models.RateOption {
	return &models.RateOption{
		TotalPrice: 5.00,
		Legs:       []models.VendorLeg{{VendorID: "v1", Carrier: "UPS", ServiceCode: "UPS-STD"}},
	}
}

func TestValidateCommitOK(t *testing.T) {
	if err := ValidateCommit(someItems(), completeIdentity(), completeAddress(), someOption()); err != nil {
		t.Fatalf("commit valide refusé: %v", err)
	}
}

func TestValidateCommitRejections(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.CartItem
		identity Identity
		addr     models.Address
		selected *models.RateOption
		want     error
	}{
		{"panier vide", nil, completeIdentity(), completeAddress(), someOption(), ErrEmptyCart},
		{"identité incomplète", someItems(), Identity{FirstName: "Jean"}, completeAddress(), someOption(), ErrMissingIdentity},
		{"adresse incomplète", someItems(), completeIdentity(), models.Address{Street: "12 rue des Lilas"}, someOption(), ErrIncompleteAddress},
		{"pas de sélection", someItems(), completeIdentity(), completeAddress(), nil, ErrNoRateSelected},
		{"option sans segment", someItems(), completeIdentity(), completeAddress(), &models.RateOption{}, ErrNoRateSelected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommit(tt.items, tt.identity, tt.addr, tt.selected)
			if !errors.Is(err, tt.want) {
				t.Fatalf("erreur = %v, attendu %v", err, tt.want)
			}
		})
	}
}

// Le panier vide prime sur toutes les autres violations.
func TestValidateCommitOrder(t *testing.T) {
	err := ValidateCommit(nil, Identity{}, models.Address{}, nil)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("erreur = %v, attendu %v", err, ErrEmptyCart)
	}
}
