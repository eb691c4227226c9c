package utils

import "strings"

// Indicatifs téléphoniques par code pays ISO 3166-1 alpha-2.
// Couvre les marchés desservis par la marketplace.
var dialCodes = map[string]string{
	"FR": "+33",
	"BE": "+32",
	"LU": "+352",
	"NL": "+31",
	"DE": "+49",
	"ES": "+34",
	"IT": "+39",
	"PT": "+351",
	"CH": "+41",
	"GB": "+44",
	"IE": "+353",
	"US": "+1",
	"CA": "+1",
	"MA": "+212",
	"DZ": "+213",
	"TN": "+216",
	"SN": "+221",
	"CI": "+225",
	"CM": "+237",
	"IN": "+91",
	"NG": "+234",
}

// Les services d'adresses renvoient tantôt le code ISO, tantôt le nom
// complet du pays.
var countryNames = map[string]string{
	"france": "FR", "belgique": "BE", "belgium": "BE", "luxembourg": "LU",
	"pays-bas": "NL", "netherlands": "NL", "allemagne": "DE", "germany": "DE",
	"espagne": "ES", "spain": "ES", "italie": "IT", "italy": "IT",
	"portugal": "PT", "suisse": "CH", "switzerland": "CH",
	"royaume-uni": "GB", "united kingdom": "GB", "irlande": "IE", "ireland": "IE",
	"états-unis": "US", "united states": "US", "canada": "CA",
	"maroc": "MA", "morocco": "MA", "algérie": "DZ", "tunisie": "TN",
	"sénégal": "SN", "côte d'ivoire": "CI", "cameroun": "CM",
	"inde": "IN", "india": "IN", "nigéria": "NG", "nigeria": "NG",
}

// DialCodeForCountry dérive l'indicatif depuis le pays résolu (code ISO
// ou nom complet). Pays inconnu → chaîne vide, le client garde sa saisie.
func DialCodeForCountry(country string) string {
	trimmed := strings.TrimSpace(country)
	if code, ok := dialCodes[strings.ToUpper(trimmed)]; ok {
		return code
	}
	if iso, ok := countryNames[strings.ToLower(trimmed)]; ok {
		return dialCodes[iso]
	}
	return ""
}

// NormalizePostalCode supprime tous les espaces du code postal.
func NormalizePostalCode(code string) string {
	return strings.ReplaceAll(code, " ", "")
}

// IsSuspiciousPostalCode — un code postal de moins de 6 caractères hors
// espaces est suspect pour la région desservie. On avertit sans bloquer.
func IsSuspiciousPostalCode(code string) bool {
	return len(NormalizePostalCode(code)) < 6
}
