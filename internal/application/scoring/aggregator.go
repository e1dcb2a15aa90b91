// Package scoring agrège les trois composantes de l'analyse en un score
// final sur 100, un verdict et une action recommandée. Le calcul est fait
// une seule fois par exécution, jamais incrémental.
package scoring

import (
	"fmt"
	"math"

	"github.com/Stephfff73/verification-antifraude/internal/domain"
	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
)

// Pondération retenue parmi les variantes historiques : les alertes
// pèsent le plus lourd, la cohérence transversale le moins.
var DefaultWeights = Weights{
	Documents:   0.35,
	Consistency: 0.25,
	RedFlags:    0.40,
}

/// Pénalités de cohérence : chaque vérification en échec coûte 0.15,
// chaque anomalie 0.05, le tout plafonné à 1.
const (
	consistencyFailedWeight  = 0.15
	consistencyAnomalyWeight = 0.05
)

// weightSumTolerance absorbe les arrondis flottants de la configuration.
const weightSumTolerance = 1e-9

// Weights pondère les trois composantes. Leur somme doit faire 1.0.
type Weights struct {
	Documents   float64
	Consistency float64
	RedFlags    float64
}

// Aggregator calcule le score final. Construit une fois, réutilisable.
type Aggregator struct {
	weights Weights
}

// NewAggregator valide la pondération à la construction : une somme
// différente de 1.0 est une erreur de configuration, pas d'exécution.
func NewAggregator(w Weights) (*Aggregator, error) {
	sum := w.Documents + w.Consistency + w.RedFlags
	if math.Abs(sum-1.0) > weightSumTolerance {
		return nil, fmt.Errorf("%w : la somme des pondérations fait %.4f au lieu de 1.0",
			domain.ErrInvalidConfig, sum)
	}
	if w.Documents < 0 || w.Consistency < 0 || w.RedFlags < 0 {
		return nil, fmt.Errorf("%w : pondération négative", domain.ErrInvalidConfig)
	}
	return &Aggregator{weights: w}, nil
}

// Aggregate combine les sorties des étapes amont en un DossierScore.
func (a *Aggregator) Aggregate(
	validations []*entity.ValidationResult,
	cons *entity.ConsistencyResult,
	flags []entity.RedFlag,
) entity.DossierScore {
	docAvg := documentAverage(validations)
	consPenalty := consistencyPenalty(cons)
	flagImpact := redFlagImpact(flags)

	score := 100 * (a.weights.Documents*docAvg +
		a.weights.Consistency*consPenalty +
		a.weights.RedFlags*flagImpact)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	verdict, action := verdictFor(score)
	return entity.DossierScore{
		Score:   score,
		Verdict: verdict,
		Action:  action,
		Breakdown: entity.ScoreBreakdown{
			DocumentAvg:        docAvg,
			ConsistencyPenalty: consPenalty,
			RedFlagImpact:      flagImpact,
			WeightDocuments:    a.weights.Documents,
			WeightConsistency:  a.weights.Consistency,
			WeightRedFlags:     a.weights.RedFlags,
		},
	}
}

// documentAverage : moyenne des scores de fraude par document ∈ [0,1].
// Aucun document validé vaut 0, l'absence de pièces pèse déjà dans la
// composante cohérence.
func documentAverage(validations []*entity.ValidationResult) float64 {
	if len(validations) == 0 {
		return 0
	}
	var sum float64
	for _, v := range validations {
		if v != nil {
			sum += v.ScoreFraude
		}
	}
	return sum / float64(len(validations))
}

// consistencyPenalty convertit le résultat ternaire en pénalité ∈ [0,1].
// Les vérifications "inconnu" ne pèsent pas.
func consistencyPenalty(cons *entity.ConsistencyResult) float64 {
	if cons == nil {
		return 0
	}
	p := consistencyFailedWeight*float64(cons.FailedChecks()) +
		consistencyAnomalyWeight*float64(len(cons.Anomalies))
	if p > 1 {
		p = 1
	}
	return p
}

// redFlagImpact : somme des impacts en points /100, plafonnée à 1.
func redFlagImpact(flags []entity.RedFlag) float64 {
	total := 0
	for _, f := range flags {
		total += f.ScoreImpact
	}
	impact := float64(total) / 100
	if impact > 1 {
		impact = 1
	}
	return impact
}

// verdictFor applique les bandes fixes du score final.
func verdictFor(score float64) (entity.Verdict, string) {
	switch {
	case score < 15:
		return entity.VerdictFiable, "Location recommandée, vérifications standards suffisantes"
	case score < 30:
		return entity.VerdictAcceptable, "Accord possible avec une vigilance normale"
	case score < 50:
		return entity.VerdictPrudence, "Vérifications approfondies recommandées avant accord"
	case score < 70:
		return entity.VerdictSuspect, "Contacter le candidat pour obtenir des clarifications"
	default:
		return entity.VerdictFraude, "Rejet du dossier recommandé"
	}
}
