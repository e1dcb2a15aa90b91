package entity

import "github.com/shopspring/decimal"

// AddressRole qualifie le rôle supposé d'une adresse selon la pièce dont
// elle provient : les documents employeur portent l'adresse "travail",
// les pièces personnelles l'adresse "domicile".
type AddressRole string

const (
	AddressHome AddressRole = "domicile"
	AddressWork AddressRole = "travail"
)

// Address est une adresse postale extraite, avec sa confiance d'extraction.
type Address struct {
	Number     string      `json:"number"`
	StreetType string      `json:"street_type"`
	StreetName string      `json:"street_name"`
	PostalCode string      `json:"postal_code"`
	City       string      `json:"city"`
	Role       AddressRole `json:"role"`
	Confidence float64     `json:"confidence"` // ∈ [0,1]
}

// Raw reconstruit la forme textuelle de l'adresse.
func (a Address) Raw() string {
	s := a.Number + " " + a.StreetType + " " + a.StreetName
	if a.PostalCode != "" {
		s += ", " + a.PostalCode + " " + a.City
	}
	return s
}

// Email est une adresse électronique extraite et classée.
type Email struct {
	Address      string `json:"address"`
	Domain       string `json:"domain"`
	Professional bool   `json:"professional"` // false = messagerie grand public
}

// Phone est un numéro de téléphone normalisé à 10 chiffres.
type Phone struct {
	Number string `json:"number"`
	Mobile bool   `json:"mobile"` // 06/07 = mobile, sinon fixe
}

// AmountCategory classe un montant selon le mot-clé qui l'ancre dans le texte.
type AmountCategory string

const (
	AmountSalary  AmountCategory = "salaire"
	AmountRent    AmountCategory = "loyer"
	AmountIncome  AmountCategory = "revenu"
	AmountGeneric AmountCategory = "montant"
)

// Amount est un montant monétaire extrait avec son contexte.
type Amount struct {
	Value    decimal.Decimal `json:"value"`
	Category AmountCategory  `json:"category"`
	Context  string          `json:"context"` // extrait du texte autour du montant
}

// EntityBundle regroupe toutes les entités typées extraites d'un document.
// Invariants : codes postaux valides, confiances ∈ [0,1], aucune chaîne
// dupliquée par type d'entité. Un champ est soit vide soit entièrement
// validé, jamais partiellement parsé.
type EntityBundle struct {
	Sirets    []string  `json:"sirets"`    // identifiants établissement à 14 chiffres
	Sirens    []string  `json:"sirens"`    // identifiants à 9 chiffres, hors préfixes de SIRET confirmés
	Addresses []Address `json:"addresses"`
	Emails    []Email   `json:"emails"`
	Phones    []Phone   `json:"phones"`
	Amounts   []Amount  `json:"amounts"`
	Dates     []string  `json:"dates"`
	Names     []string  `json:"names"`
}

// AmountsByCategory filtre les montants d'une catégorie donnée.
func (b EntityBundle) AmountsByCategory(cat AmountCategory) []Amount {
	var out []Amount
	for _, a := range b.Amounts {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return out
}

// BestAddress renvoie l'adresse du rôle demandé ayant la meilleure
// confiance, ou nil si aucune.
func (b EntityBundle) BestAddress(role AddressRole) *Address {
	var best *Address
	for i := range b.Addresses {
		a := &b.Addresses[i]
		if a.Role != role {
			continue
		}
		if best == nil || a.Confidence > best.Confidence {
			best = a
		}
	}
	return best
}
