package entity

import "time"

// Sources des registres externes interrogés.
const (
	SourceSirene     = "sirene"      // registre des entreprises
	SourceBAN        = "ban"         // base adresse nationale
	SourceMX         = "mx"          // résolution du domaine de messagerie
)

// BusinessRecord est la fiche établissement renvoyée par le registre des
// entreprises.
type BusinessRecord struct {
	Siret        string    `json:"siret"`
	LegalName    string    `json:"legal_name"`
	Address      string    `json:"address"`
	PostalCode   string    `json:"postal_code"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`
	ActivityCode string    `json:"activity_code"` // code NAF/APE
}

// AgeYears renvoie l'ancienneté de l'établissement en années à l'instant now.
func (b BusinessRecord) AgeYears(now time.Time) float64 {
	if b.RegisteredAt.IsZero() {
		return 0
	}
	return now.Sub(b.RegisteredAt).Hours() / (24 * 365.25)
}

// NormalizedAddress est la forme canonique renvoyée par le service de
// normalisation d'adresses.
type NormalizedAddress struct {
	Label      string  `json:"label"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Confidence float64 `json:"confidence"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code"`
}

// MailDomainRecord est le résultat de la résolution d'un domaine de
// messagerie.
type MailDomainRecord struct {
	Domain     string  `json:"domain"`
	HasMX      bool    `json:"has_mx"`
	Disposable bool    `json:"disposable"`
	Confidence float64 `json:"confidence"`
}

// CorroborationResult porte l'issue d'un appel de corroboration. Exists
// n'a de sens que si Err est vide ; un échec renseigne Err et laisse les
// attributs à zéro.
type CorroborationResult struct {
	Source   string             `json:"source"`
	Exists   bool               `json:"exists"`
	Err      string             `json:"error,omitempty"`
	Business *BusinessRecord    `json:"business,omitempty"`
	Address  *NormalizedAddress `json:"address,omitempty"`
	Mail     *MailDomainRecord  `json:"mail,omitempty"`
}

// OK indique que l'appel a abouti sans erreur.
func (c *CorroborationResult) OK() bool {
	return c != nil && c.Err == ""
}

// CorroborationReport regroupe les quatre résultats indépendants plus les
// faits dérivés inter-entités.
type CorroborationReport struct {
	Business    *CorroborationResult `json:"business,omitempty"`
	HomeAddress *CorroborationResult `json:"home_address,omitempty"`
	WorkAddress *CorroborationResult `json:"work_address,omitempty"`
	Mail        *CorroborationResult `json:"mail,omitempty"`

	// DistanceKm est la distance orthodromique domicile/travail, calculée
	// uniquement si les deux adresses ont été géocodées.
	DistanceKm         float64 `json:"distance_km"`
	DistanceComputed   bool    `json:"distance_computed"`
	DistanceReasonable bool    `json:"distance_reasonable"`
}
