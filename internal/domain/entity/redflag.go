package entity

// Severity est la gravité d'un signal d'alerte.
type Severity string

const (
	SeverityCritical Severity = "critique"
	SeverityHigh     Severity = "eleve"
	SeverityMedium   Severity = "moyen"
)

// Impacts en points par gravité. La somme des impacts, divisée par 100 et
// plafonnée à 1.0, alimente la part "alertes" du score final.
const (
	ImpactCritical = 25
	ImpactHigh     = 15
	ImpactMedium   = 8
)

// ImpactFor renvoie l'impact en points associé à une gravité.
func ImpactFor(s Severity) int {
	switch s {
	case SeverityCritical:
		return ImpactCritical
	case SeverityHigh:
		return ImpactHigh
	default:
		return ImpactMedium
	}
}

// RedFlag est un signal de risque discret, immuable une fois émis.
// Category identifie la famille du signal ("Entreprise", "Adresse",
// "Email", "Revenus"...) ; le regroupement par gravité est une affaire de
// présentation, pas du moteur.
type RedFlag struct {
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	Message     string   `json:"message"`
	ScoreImpact int      `json:"score_impact"`
}

// NewRedFlag construit un signal avec l'impact standard de sa gravité.
func NewRedFlag(sev Severity, category, message string) RedFlag {
	return RedFlag{
		Severity:    sev,
		Category:    category,
		Message:     message,
		ScoreImpact: ImpactFor(sev),
	}
}
