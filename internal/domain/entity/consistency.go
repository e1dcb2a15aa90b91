package entity

// ConsistencyResult est le verdict du contrôle transversal du dossier.
// Chaque vérification est ternaire : "inconnu" quand les données sont
// insuffisantes, et ne doit pas peser comme un échec dans l'agrégation.
type ConsistencyResult struct {
	Checks         map[string]CheckStatus `json:"checks"`
	Anomalies      []string               `json:"anomalies"`
	MissingClasses []DocumentClass        `json:"missing_classes"`

	// SalaryVariation est la variation relative (max-min)/min des salaires
	// des bulletins répétés, renseignée seulement si calculable.
	SalaryVariation         float64 `json:"salary_variation"`
	SalaryVariationComputed bool    `json:"salary_variation_computed"`
}

// NewConsistencyResult initialise un résultat vide prêt à être enrichi.
func NewConsistencyResult() *ConsistencyResult {
	return &ConsistencyResult{
		Checks:    map[string]CheckStatus{},
		Anomalies: []string{},
	}
}

// SetCheck enregistre l'état d'une vérification nommée.
func (c *ConsistencyResult) SetCheck(name string, status CheckStatus) {
	c.Checks[name] = status
}

// AddAnomaly enregistre une anomalie.
func (c *ConsistencyResult) AddAnomaly(msg string) {
	c.Anomalies = append(c.Anomalies, msg)
}

// FailedChecks compte les vérifications en échec, hors "inconnu".
func (c *ConsistencyResult) FailedChecks() int {
	n := 0
	for _, s := range c.Checks {
		if s == CheckFailed {
			n++
		}
	}
	return n
}
