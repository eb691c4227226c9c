package checkout

import (
	"encoding/json"
	"errors"
	"testing"

	"vendora_back_end/internal/models"
)

func quotedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	s.SetAddress(completeIdentity(), completeAddress())
	quote := models.RateQuote{
		Cheapest: &models.RateOption{
			TotalPrice: 5.00,
			Legs:       []models.VendorLeg{{VendorID: "v1", Carrier: "Colissimo", ServiceCode: "COL-STD"}},
		},
		Fastest: &models.RateOption{
			TotalPrice: 12.00,
			Legs:       []models.VendorLeg{{VendorID: "v1", Carrier: "Chronopost", ServiceCode: "CHR-EXP"}},
		},
	}
	if err := s.SetQuote(quote); err != nil {
		t.Fatalf("SetQuote: %v", err)
	}
	return s
}

func TestSessionStages(t *testing.T) {
	s := NewSession()
	if s.Stage != StageEmpty {
		t.Fatalf("stage initial = %q", s.Stage)
	}

	s.SetAddress(completeIdentity(), completeAddress())
	if s.Stage != StageAddress {
		t.Fatalf("stage après adresse = %q", s.Stage)
	}

	s = quotedSession(t)
	if s.Stage != StageQuoted {
		t.Fatalf("stage après devis = %q", s.Stage)
	}

	if err := s.SelectRate("cheapest"); err != nil {
		t.Fatalf("SelectRate: %v", err)
	}
	if s.Stage != StageRateSelected {
		t.Fatalf("stage après sélection = %q", s.Stage)
	}
}

func TestSelectRateReplacesPrevious(t *testing.T) {
	s := quotedSession(t)

	if err := s.SelectRate("cheapest"); err != nil {
		t.Fatalf("SelectRate cheapest: %v", err)
	}
	if err := s.SelectRate("fastest"); err != nil {
		t.Fatalf("SelectRate fastest: %v", err)
	}

	selected := s.Selected()
	if selected == nil || selected.TotalPrice != 12.00 {
		t.Fatalf("la seconde sélection doit remplacer la première: %+v", selected)
	}
}

func TestSelectRateWithoutQuote(t *testing.T) {
	s := NewSession()
	s.SetAddress(completeIdentity(), completeAddress())

	if err := s.SelectRate("cheapest"); !errors.Is(err, ErrNoQuote) {
		t.Fatalf("erreur = %v, attendu %v", err, ErrNoQuote)
	}
}

func TestSelectRateUnknownOption(t *testing.T) {
	s := quotedSession(t)
	if err := s.SelectRate("medium"); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("erreur = %v, attendu %v", err, ErrUnknownOption)
	}
}

// Pas d'option par défaut : tant que l'utilisateur n'a pas choisi,
// Selected renvoie nil.
func TestNoDefaultSelection(t *testing.T) {
	s := quotedSession(t)
	if s.Selected() != nil {
		t.Fatal("aucune option ne doit être sélectionnée par défaut")
	}
}

func TestSetAddressInvalidatesQuote(t *testing.T) {
	s := quotedSession(t)
	if err := s.SelectRate("cheapest"); err != nil {
		t.Fatalf("SelectRate: %v", err)
	}
	s.ApplyCoupon("BIENVENUE", 5.00)

	s.SetAddress(completeIdentity(), completeAddress())

	if s.Quote != nil || s.SelectedKey != "" || s.CouponCode != "" || s.Discount != 0 {
		t.Fatalf("changer d'adresse doit invalider devis, sélection et coupon: %+v", s)
	}
	if s.Stage != StageAddress {
		t.Fatalf("stage = %q, attendu %q", s.Stage, StageAddress)
	}
}

func TestApplyCoupon(t *testing.T) {
	s := quotedSession(t)
	if err := s.SelectRate("cheapest"); err != nil {
		t.Fatalf("SelectRate: %v", err)
	}

	s.ApplyCoupon("SAVE10", 2.50)
	if s.Stage != StageCouponApplied || s.Discount != 2.50 || s.CouponCode != "SAVE10" {
		t.Fatalf("coupon non appliqué: %+v", s)
	}

	// Un code refusé remet la remise à zéro
	s.ApplyCoupon("", 0)
	if s.Stage != StageRateSelected || s.Discount != 0 || s.CouponCode != "" {
		t.Fatalf("coupon refusé, remise non réinitialisée: %+v", s)
	}
}

func TestBeginCommitAndFail(t *testing.T) {
	s := quotedSession(t)
	if err := s.SelectRate("cheapest"); err != nil {
		t.Fatalf("SelectRate: %v", err)
	}

	if err := s.BeginCommit(someItems()); err != nil {
		t.Fatalf("BeginCommit: %v", err)
	}
	if s.Stage != StageCommitting {
		t.Fatalf("stage = %q, attendu %q", s.Stage, StageCommitting)
	}

	// Échec du prestataire : retour en rate_selected, rien n'est perdu
	s.FailCommit()
	if s.Stage != StageRateSelected {
		t.Fatalf("stage après échec = %q, attendu %q", s.Stage, StageRateSelected)
	}
	if s.Selected() == nil {
		t.Fatal("la sélection doit survivre à un échec de paiement")
	}

	if err := s.BeginCommit(someItems()); err != nil {
		t.Fatalf("nouvelle tentative refusée: %v", err)
	}
	s.CompleteCommit()
	if s.Stage != StageRedirected {
		t.Fatalf("stage final = %q, attendu %q", s.Stage, StageRedirected)
	}
}

func TestBeginCommitRejectsWrongStage(t *testing.T) {
	s := quotedSession(t)
	// Devis reçu mais aucune option retenue
	if err := s.BeginCommit(someItems()); !errors.Is(err, ErrNotCommittable) {
		t.Fatalf("erreur = %v, attendu %v", err, ErrNotCommittable)
	}
}

func TestBeginCommitEmptyCart(t *testing.T) {
	s := quotedSession(t)
	if err := s.SelectRate("cheapest"); err != nil {
		t.Fatalf("SelectRate: %v", err)
	}
	if err := s.BeginCommit(nil); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("erreur = %v, attendu %v", err, ErrEmptyCart)
	}
}

// La session fait l'aller-retour JSON (persistance Redis) sans perdre
// l'ordre des segments vendeurs.
func TestSessionJSONRoundTrip(t *testing.T) {
	s := quotedSession(t)
	if err := s.SelectRate("fastest"); err != nil {
		t.Fatalf("SelectRate: %v", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Session
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.Stage != StageRateSelected || restored.SelectedKey != "fastest" {
		t.Fatalf("session restaurée incomplète: %+v", restored)
	}
	selected := restored.Selected()
	if selected == nil || len(selected.Legs) != 1 || selected.Legs[0].VendorID != "v1" {
		t.Fatalf("segments perdus à la restauration: %+v", selected)
	}
}
