package entity

// Verdict est le palier de risque nommé dérivé du score final.
type Verdict string

const (
	VerdictFiable     Verdict = "DOSSIER FIABLE"
	VerdictAcceptable Verdict = "DOSSIER ACCEPTABLE"
	VerdictPrudence   Verdict = "PRUDENCE REQUISE"
	VerdictSuspect    Verdict = "DOSSIER SUSPECT"
	VerdictFraude     Verdict = "FRAUDE PROBABLE"
)

// ScoreBreakdown détaille la contribution pondérée de chaque composante.
type ScoreBreakdown struct {
	DocumentAvg        float64 `json:"document_avg"`        // moyenne des scores documents ∈ [0,1]
	ConsistencyPenalty float64 `json:"consistency_penalty"` // pénalité de cohérence ∈ [0,1]
	RedFlagImpact      float64 `json:"red_flag_impact"`     // somme des impacts /100, plafonnée à 1
	WeightDocuments    float64 `json:"weight_documents"`
	WeightConsistency  float64 `json:"weight_consistency"`
	WeightRedFlags     float64 `json:"weight_red_flags"`
}

// DossierScore est le verdict final d'une analyse, calculé une seule fois
// par exécution et jamais muté ensuite.
type DossierScore struct {
	Score     float64        `json:"score"` // ∈ [0,100]
	Verdict   Verdict        `json:"verdict"`
	Action    string         `json:"action"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}
