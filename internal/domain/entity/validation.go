package entity

// CheckStatus est l'état ternaire d'une vérification nommée. "Inconnu"
// signale des données insuffisantes pour trancher et doit rester
// distinguable d'un échec dans la pondération aval.
type CheckStatus string

const (
	CheckPassed  CheckStatus = "ok"
	CheckFailed  CheckStatus = "echec"
	CheckUnknown CheckStatus = "inconnu"
)

// CheckBool convertit un booléen en CheckStatus.
func CheckBool(ok bool) CheckStatus {
	if ok {
		return CheckPassed
	}
	return CheckFailed
}

// RiskLevel est le niveau de risque dérivé du score par bandes fixes.
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "tres_faible"
	RiskLow      RiskLevel = "faible"
	RiskModerate RiskLevel = "modere"
	RiskHigh     RiskLevel = "eleve"
	RiskVeryHigh RiskLevel = "tres_eleve"
)

// RiskLevelFor applique les bandes fixes sur un score 0..100.
func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score < 15:
		return RiskVeryLow
	case score < 30:
		return RiskLow
	case score < 50:
		return RiskModerate
	case score < 70:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// ValidationResult est le verdict d'un validateur de document.
// ScoreFraude est normalisé ∈ [0,1] (0 = aucun signe de fraude).
type ValidationResult struct {
	ScoreFraude float64                `json:"score_fraude"`
	Anomalies   []string               `json:"anomalies"`
	Checks      map[string]CheckStatus `json:"checks"`
	RiskLevel   RiskLevel              `json:"risk_level"`
}

// NewValidationResult initialise un résultat vide prêt à être enrichi.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Anomalies: []string{},
		Checks:    map[string]CheckStatus{},
	}
}

// AddAnomaly enregistre une anomalie.
func (v *ValidationResult) AddAnomaly(msg string) {
	v.Anomalies = append(v.Anomalies, msg)
}

// SetCheck enregistre l'état d'une vérification nommée.
func (v *ValidationResult) SetCheck(name string, status CheckStatus) {
	v.Checks[name] = status
}
