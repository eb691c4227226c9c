package checkout

import (
	"errors"
	"fmt"

	"vendora_back_end/internal/models"
)

// Stage — étape courante d'une session de checkout.
type Stage string

const (
	StageEmpty         Stage = "empty"
	StageAddress       Stage = "address_entered"
	StageQuoted        Stage = "rates_quoted"
	StageRateSelected  Stage = "rate_selected"
	StageCouponApplied Stage = "coupon_applied"
	StageCommitting    Stage = "committing"
	StageRedirected    Stage = "redirected"
)

var (
	ErrNoQuote        = errors.New("aucun devis de livraison disponible")
	ErrUnknownOption  = errors.New("option de livraison inconnue")
	ErrNotCommittable = errors.New("la session n'est pas prête pour le paiement")
)

// Session — état d'un checkout en cours, persisté en Redis entre deux
// actions utilisateur. Chaque transition est une action explicite ;
// abandonner l'onglet est la seule annulation possible.
type Session struct {
	Stage       Stage             `json:"stage"`
	Identity    Identity          `json:"identity"`
	Address     models.Address    `json:"address"`
	Quote       *models.RateQuote `json:"quote,omitempty"`
	SelectedKey string            `json:"selected_key,omitempty"` // "cheapest" ou "fastest"
	CouponCode  string            `json:"coupon_code,omitempty"`
	Discount    float64           `json:"discount"`
}

func NewSession() *Session {
	return &Session{Stage: StageEmpty}
}

// SetAddress enregistre l'adresse. Toute modification invalide le devis
// précédent : il faut re-coter.
func (s *Session) SetAddress(identity Identity, addr models.Address) {
	s.Identity = identity
	s.Address = addr
	s.Quote = nil
	s.SelectedKey = ""
	s.CouponCode = ""
	s.Discount = 0
	s.Stage = StageAddress
}

// SetQuote remplace intégralement le devis précédent — pas de fusion,
// et la sélection antérieure tombe.
func (s *Session) SetQuote(quote models.RateQuote) error {
	if !s.Address.IsComplete() {
		return ErrIncompleteAddress
	}
	s.Quote = &quote
	s.SelectedKey = ""
	s.Stage = StageQuoted
	return nil
}

// SelectRate retient une option ("cheapest" ou "fastest"). Une nouvelle
// sélection remplace entièrement la précédente.
func (s *Session) SelectRate(key string) error {
	if s.Quote == nil {
		return ErrNoQuote
	}
	if _, err := s.optionByKey(key); err != nil {
		return err
	}
	s.SelectedKey = key
	s.Stage = StageRateSelected
	return nil
}

// Selected — l'option retenue, nil tant que l'utilisateur n'a pas choisi.
// Aucune option par défaut.
func (s *Session) Selected() *models.RateOption {
	if s.Quote == nil || s.SelectedKey == "" {
		return nil
	}
	opt, err := s.optionByKey(s.SelectedKey)
	if err != nil {
		return nil
	}
	return opt
}

func (s *Session) optionByKey(key string) (*models.RateOption, error) {
	switch key {
	case "cheapest":
		if s.Quote.Cheapest == nil {
			return nil, ErrUnknownOption
		}
		return s.Quote.Cheapest, nil
	case "fastest":
		if s.Quote.Fastest == nil {
			return nil, ErrUnknownOption
		}
		return s.Quote.Fastest, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
}

// ApplyCoupon fixe la remise courante. Une réponse "invalide" du serveur
// doit passer discount=0 : seule une erreur réseau laisse l'ancienne
// remise en place (le handler n'appelle alors pas cette méthode).
func (s *Session) ApplyCoupon(code string, discount float64) {
	if discount <= 0 {
		s.CouponCode = ""
		s.Discount = 0
		if s.Stage == StageCouponApplied {
			s.Stage = StageRateSelected
		}
		return
	}
	s.CouponCode = code
	s.Discount = discount
	s.Stage = StageCouponApplied
}

// BeginCommit vérifie les préconditions et passe en Committing.
func (s *Session) BeginCommit(items []models.CartItem) error {
	if s.Stage != StageRateSelected && s.Stage != StageCouponApplied {
		return ErrNotCommittable
	}
	if err := ValidateCommit(items, s.Identity, s.Address, s.Selected()); err != nil {
		return err
	}
	s.Stage = StageCommitting
	return nil
}

// FailCommit — échec côté serveur de paiement : retour en RateSelected,
// panier et saisie préservés pour une nouvelle tentative.
func (s *Session) FailCommit() {
	if s.Stage == StageCommitting {
		s.Stage = StageRateSelected
	}
}

// CompleteCommit — l'URL de paiement a été renvoyée, le navigateur part
// chez le prestataire. État terminal côté session.
func (s *Session) CompleteCommit() {
	s.Stage = StageRedirected
}
