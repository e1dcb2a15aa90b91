package validation

import (
	"regexp"

	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
	"github.com/Stephfff73/verification-antifraude/internal/domain/textutil"
)

// Pénalités du catalogue de règles par classe : un élément attendu absent
// coûte sa pénalité et produit une anomalie.
const (
	penaltyMissingPrimary   = 25 // vocabulaire central de la classe absent
	penaltyMissingSecondary = 20 // élément d'identification absent
	penaltyMissingTertiary  = 15 // élément de forme absent
)

var (
	monetaryRe  = regexp.MustCompile(`\d+(?:[ \x{a0}\x{202f}]\d{3})*(?:[.,]\d{1,2})?\s*(?:€|euros?\b)`)
	digitRun14  = regexp.MustCompile(`\b\d{14}\b`)
	birthDateRe = regexp.MustCompile(`(?i)n[ée]e?\s*(?:\(e\))?\s*le\s*:?\s*\d{1,2}[/.\-\s]`)
	fiscalRefRe = regexp.MustCompile(`(?i)(?:num[ée]ro\s+fiscal|r[ée]f[ée]rence\s+de\s+l'avis|n°\s*fiscal)`)

	// Mots entiers uniquement : "mai" est un sous-mot trop fréquent
	// ("semaine", "domaine") pour une recherche par sous-chaîne.
	monthRe = regexp.MustCompile(`\b(?:janvier|fevrier|mars|avril|mai|juin|juillet|aout|septembre|octobre|novembre|decembre)\b`)
)

// ── Fiche de paie ─────────────────────────────────────────────────────────────

type fichePaieValidator struct{}

func (fichePaieValidator) rules(text string, res *entity.ValidationResult) float64 {
	var penalty float64

	// Au moins 3 mentions du vocabulaire salarial.
	if textutil.CountAny(text, "salaire", "brut", "net", "cotisation") >= 3 {
		res.SetCheck("salary_keywords", entity.CheckPassed)
	} else {
		res.SetCheck("salary_keywords", entity.CheckFailed)
		res.AddAnomaly("Fiche de paie sans vocabulaire salarial suffisant")
		penalty += penaltyMissingPrimary
	}

	if textutil.ContainsAny(text, "siret", "siren") || digitRun14.MatchString(text) {
		res.SetCheck("employer_identifier", entity.CheckPassed)
	} else {
		res.SetCheck("employer_identifier", entity.CheckFailed)
		res.AddAnomaly("Fiche de paie sans identifiant employeur (SIRET/SIREN)")
		penalty += penaltyMissingSecondary
	}

	penalty += requireMonetary(text, res)
	return penalty
}

// ── Contrat de travail ────────────────────────────────────────────────────────

type contratTravailValidator struct{}

func (contratTravailValidator) rules(text string, res *entity.ValidationResult) float64 {
	var penalty float64

	if textutil.CountAny(text, "contrat", "travail", "employeur", "salarie", "duree") >= 3 {
		res.SetCheck("contract_keywords", entity.CheckPassed)
	} else {
		res.SetCheck("contract_keywords", entity.CheckFailed)
		res.AddAnomaly("Contrat sans vocabulaire contractuel suffisant")
		penalty += penaltyMissingPrimary
	}

	if textutil.ContainsAny(text, "cdi", "cdd", "interim", "apprentissage", "professionnalisation") {
		res.SetCheck("contract_type", entity.CheckPassed)
	} else {
		res.SetCheck("contract_type", entity.CheckFailed)
		res.AddAnomaly("Type de contrat non identifiable (CDI, CDD...)")
		penalty += penaltyMissingSecondary
	}

	if textutil.ContainsAny(text, "signature", "signe", "fait a", "lu et approuve") {
		res.SetCheck("signature_mention", entity.CheckPassed)
	} else {
		res.SetCheck("signature_mention", entity.CheckFailed)
		res.AddAnomaly("Aucune mention de signature")
		penalty += penaltyMissingTertiary
	}

	return penalty
}

// ── Avis d'imposition ─────────────────────────────────────────────────────────

type avisImpositionValidator struct{}

func (avisImpositionValidator) rules(text string, res *entity.ValidationResult) float64 {
	var penalty float64

	if textutil.ContainsAny(text, "impot", "imposition", "revenu fiscal", "dgfip", "finances publiques") {
		res.SetCheck("tax_keywords", entity.CheckPassed)
	} else {
		res.SetCheck("tax_keywords", entity.CheckFailed)
		res.AddAnomaly("Avis sans vocabulaire fiscal")
		penalty += penaltyMissingPrimary
	}

	if fiscalRefRe.MatchString(text) {
		res.SetCheck("fiscal_reference", entity.CheckPassed)
	} else {
		res.SetCheck("fiscal_reference", entity.CheckFailed)
		res.AddAnomaly("Aucune référence fiscale (numéro fiscal, référence de l'avis)")
		penalty += penaltyMissingSecondary
	}

	return penalty
}

// ── Pièce d'identité ──────────────────────────────────────────────────────────

type pieceIdentiteValidator struct{}

func (pieceIdentiteValidator) rules(text string, res *entity.ValidationResult) float64 {
	var penalty float64

	if textutil.ContainsAny(text, "carte nationale d'identite", "carte d'identite", "passeport", "titre de sejour") {
		res.SetCheck("id_type", entity.CheckPassed)
	} else {
		res.SetCheck("id_type", entity.CheckFailed)
		res.AddAnomaly("Type de pièce d'identité non identifiable")
		penalty += penaltyMissingPrimary
	}

	if birthDateRe.MatchString(text) {
		res.SetCheck("birth_date", entity.CheckPassed)
	} else {
		res.SetCheck("birth_date", entity.CheckFailed)
		res.AddAnomaly("Aucune date de naissance détectée")
		penalty += penaltyMissingSecondary
	}

	if textutil.ContainsAny(text, "republique francaise", "prefecture", "ministere de l'interieur") {
		res.SetCheck("issuer_mention", entity.CheckPassed)
	} else {
		res.SetCheck("issuer_mention", entity.CheckFailed)
		res.AddAnomaly("Aucune mention de l'autorité de délivrance")
		penalty += penaltyMissingTertiary
	}

	return penalty
}

// ── Quittance de loyer ────────────────────────────────────────────────────────

type quittanceLoyerValidator struct{}

func (quittanceLoyerValidator) rules(text string, res *entity.ValidationResult) float64 {
	var penalty float64

	if textutil.ContainsAny(text, "loyer", "quittance") {
		res.SetCheck("rent_keywords", entity.CheckPassed)
	} else {
		res.SetCheck("rent_keywords", entity.CheckFailed)
		res.AddAnomaly("Quittance sans vocabulaire locatif")
		penalty += penaltyMissingPrimary
	}

	if monthRe.MatchString(textutil.Normalize(text)) {
		res.SetCheck("month_mention", entity.CheckPassed)
	} else {
		res.SetCheck("month_mention", entity.CheckFailed)
		res.AddAnomaly("Aucun mois de référence mentionné")
		penalty += penaltyMissingTertiary
	}

	penalty += requireMonetary(text, res)
	return penalty
}

// requireMonetary vérifie la présence d'au moins un motif monétaire.
func requireMonetary(text string, res *entity.ValidationResult) float64 {
	if monetaryRe.MatchString(text) {
		res.SetCheck("monetary_amounts", entity.CheckPassed)
		return 0
	}
	res.SetCheck("monetary_amounts", entity.CheckFailed)
	res.AddAnomaly("Aucun montant monétaire détecté")
	return penaltyMissingTertiary
}
