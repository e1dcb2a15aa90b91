// Package redflag évalue le catalogue fixe de signaux de risque sur tout
// ce que les étapes amont ont produit. Chaque règle est pure, indépendante
// des autres, et émet zéro ou un signal ; une précondition manquante
// signifie simplement que la règle ne se prononce pas.
package redflag

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
	"github.com/Stephfff73/verification-antifraude/internal/domain/textutil"
)

// Seuils du catalogue.
const (
	minBusinessAgeYears   = 1.0   // en deçà, entreprise trop récente
	youngBusinessSalary   = 3500  // salaire élevé pour une entreprise récente
	addressSimilarity     = 0.7   // Jaccard domicile/travail
	distanceMediumKm      = 200.0 // trajet domicile/travail improbable
	distanceHighKm        = 500.0
	incomeDeviationRatio  = 0.35 // écart salaires annualisés / revenu déclaré
	salaryCeiling         = 15000
	monthsPerYear         = 12
	variationThreshold    = 0.5 // même seuil que le contrôle de cohérence
)

// executiveKeywords signale une fonction de direction dans le texte d'un
// document. Combiné à une messagerie grand public, le profil est atypique.
var executiveKeywords = []string{
	"directeur", "directrice", "gerant", "gerante", "president",
	"presidente", "pdg", "dirigeant", "fondateur", "fondatrice",
}

// DocumentInput est la vue d'un document nécessaire aux règles : classe,
// texte brut et entités extraites.
type DocumentInput struct {
	Class  entity.DocumentClass
	Text   string
	Bundle entity.EntityBundle
}

// Input regroupe tout le matériel d'évaluation du catalogue.
type Input struct {
	Documents     []DocumentInput
	Corroboration *entity.CorroborationReport
	Consistency   *entity.ConsistencyResult
	Now           time.Time
}

// rule est une règle du catalogue : nil quand elle ne se déclenche pas.
type rule func(in Input) *entity.RedFlag

// Engine évalue le catalogue. Sans état entre appels.
type Engine struct {
	catalog []rule
}

// NewEngine construit le moteur avec le catalogue complet.
func NewEngine() *Engine {
	return &Engine{catalog: []rule{
		youngBusinessHighSalary,
		homeWorkAddressOverlap,
		webmailExecutive,
		homeWorkDistance,
		incomeMismatch,
		inactiveBusiness,
		implausibleSalary,
		missingBusinessID,
		disposableEmail,
		salaryVariation,
		homeAddressUnresolved,
		workAddressPostalMismatch,
	}}
}

// Evaluate applique toutes les règles et renvoie les signaux émis, sans
// ordre garanti entre gravités.
func (e *Engine) Evaluate(in Input) []entity.RedFlag {
	flags := []entity.RedFlag{}
	for _, r := range e.catalog {
		if f := r(in); f != nil {
			flags = append(flags, *f)
		}
	}
	return flags
}

// ── Règles du catalogue ───────────────────────────────────────────────────────

// youngBusinessHighSalary : entreprise immatriculée depuis moins d'un an
// et salaire supérieur à 3500 sur un bulletin.
func youngBusinessHighSalary(in Input) *entity.RedFlag {
	rec := businessRecord(in)
	if rec == nil || rec.RegisteredAt.IsZero() {
		return nil
	}
	if rec.AgeYears(in.Now) >= minBusinessAgeYears {
		return nil
	}
	if !anySalaryAbove(in, decimal.NewFromInt(youngBusinessSalary)) {
		return nil
	}
	f := entity.NewRedFlag(entity.SeverityHigh, "Entreprise",
		"Salaire élevé versé par une entreprise immatriculée depuis moins d'un an")
	return &f
}

// homeWorkAddressOverlap : adresses domicile et travail quasi identiques,
// même code postal et similarité de jetons au-dessus du seuil.
func homeWorkAddressOverlap(in Input) *entity.RedFlag {
	home, work := bestAddress(in, entity.AddressHome), bestAddress(in, entity.AddressWork)
	if home == nil || work == nil {
		return nil
	}
	if home.PostalCode != work.PostalCode {
		return nil
	}
	if textutil.Jaccard(home.Raw(), work.Raw()) < addressSimilarity {
		return nil
	}
	f := entity.NewRedFlag(entity.SeverityCritical, "Adresse",
		"Adresse du domicile identique à celle de l'employeur")
	return &f
}

// webmailExecutive : messagerie grand public alors que le document évoque
// une fonction de direction.
func webmailExecutive(in Input) *entity.RedFlag {
	for _, d := range in.Documents {
		hasWebmail := false
		for _, em := range d.Bundle.Emails {
			if !em.Professional {
				hasWebmail = true
				break
			}
		}
		if hasWebmail && textutil.ContainsAny(d.Text, executiveKeywords...) {
			f := entity.NewRedFlag(entity.SeverityMedium, "Email",
				"Fonction de direction associée à une messagerie grand public")
			return &f
		}
	}
	return nil
}

// homeWorkDistance : trajet domicile/travail au-delà des seuils. Le seuil
// le plus haut l'emporte, un seul signal émis.
func homeWorkDistance(in Input) *entity.RedFlag {
	if in.Corroboration == nil || !in.Corroboration.DistanceComputed {
		return nil
	}
	km := in.Corroboration.DistanceKm
	switch {
	case km > distanceHighKm:
		f := entity.NewRedFlag(entity.SeverityHigh, "Adresse",
			fmt.Sprintf("Distance domicile/travail de %.0f km", km))
		return &f
	case km > distanceMediumKm:
		f := entity.NewRedFlag(entity.SeverityMedium, "Adresse",
			fmt.Sprintf("Distance domicile/travail de %.0f km", km))
		return &f
	}
	return nil
}

// incomeMismatch : salaires annualisés trop éloignés du revenu fiscal
// déclaré sur l'avis d'imposition.
func incomeMismatch(in Input) *entity.RedFlag {
	avg, ok := averageSalary(in)
	if !ok {
		return nil
	}
	declared, ok := declaredIncome(in)
	if !ok || !declared.IsPositive() {
		return nil
	}
	annualized := avg.Mul(decimal.NewFromInt(monthsPerYear))
	deviation, _ := annualized.Sub(declared).Abs().Div(declared).Float64()
	if deviation <= incomeDeviationRatio {
		return nil
	}
	f := entity.NewRedFlag(entity.SeverityCritical, "Revenus",
		fmt.Sprintf("Écart de %.0f%% entre salaires annualisés et revenu fiscal déclaré", deviation*100))
	return &f
}

// inactiveBusiness : le registre signale un établissement fermé.
func inactiveBusiness(in Input) *entity.RedFlag {
	rec := businessRecord(in)
	if rec == nil || rec.Active {
		return nil
	}
	f := entity.NewRedFlag(entity.SeverityCritical, "Entreprise",
		"Établissement signalé fermé au registre des entreprises")
	return &f
}

// implausibleSalary : salaire mensuel au-delà du plafond de plausibilité.
func implausibleSalary(in Input) *entity.RedFlag {
	if !anySalaryAbove(in, decimal.NewFromInt(salaryCeiling)) {
		return nil
	}
	f := entity.NewRedFlag(entity.SeverityHigh, "Revenus",
		"Salaire mensuel au-delà du plafond de plausibilité")
	return &f
}

// missingBusinessID : aucun identifiant d'entreprise dans tout le dossier.
func missingBusinessID(in Input) *entity.RedFlag {
	for _, d := range in.Documents {
		if len(d.Bundle.Sirets) > 0 || len(d.Bundle.Sirens) > 0 {
			return nil
		}
	}
	if len(in.Documents) == 0 {
		return nil
	}
	f := entity.NewRedFlag(entity.SeverityHigh, "Entreprise",
		"Aucun SIRET ni SIREN dans l'ensemble du dossier")
	return &f
}

// disposableEmail : domaine de messagerie jetable.
func disposableEmail(in Input) *entity.RedFlag {
	if in.Corroboration == nil {
		return nil
	}
	mail := in.Corroboration.Mail
	if !mail.OK() || mail.Mail == nil || !mail.Mail.Disposable {
		return nil
	}
	f := entity.NewRedFlag(entity.SeverityCritical, "Email",
		"Domaine de messagerie jetable : "+mail.Mail.Domain)
	return &f
}

// salaryVariation : la variation inter-bulletins calculée par le contrôle
// de cohérence dépasse son seuil.
func salaryVariation(in Input) *entity.RedFlag {
	cons := in.Consistency
	if cons == nil || !cons.SalaryVariationComputed {
		return nil
	}
	if cons.SalaryVariation <= variationThreshold {
		return nil
	}
	f := entity.NewRedFlag(entity.SeverityHigh, "Revenus",
		fmt.Sprintf("Variation de %.0f%% entre les salaires des bulletins", cons.SalaryVariation*100))
	return &f
}

// homeAddressUnresolved : l'adresse du domicile a été soumise à la
// normalisation mais n'a pas pu être résolue.
func homeAddressUnresolved(in Input) *entity.RedFlag {
	if in.Corroboration == nil || in.Corroboration.HomeAddress == nil {
		return nil
	}
	home := in.Corroboration.HomeAddress
	if home.OK() && home.Exists {
		return nil
	}
	f := entity.NewRedFlag(entity.SeverityMedium, "Adresse",
		"Adresse du domicile introuvable dans la base adresse nationale")
	return &f
}

// workAddressPostalMismatch : le code postal du siège enregistré ne
// figure dans aucune adresse travail extraite.
func workAddressPostalMismatch(in Input) *entity.RedFlag {
	rec := businessRecord(in)
	if rec == nil || rec.PostalCode == "" {
		return nil
	}
	found := false
	for _, d := range in.Documents {
		for _, a := range d.Bundle.Addresses {
			if a.Role == entity.AddressWork {
				found = true
				if a.PostalCode == rec.PostalCode {
					return nil
				}
			}
		}
	}
	if !found {
		return nil
	}
	f := entity.NewRedFlag(entity.SeverityHigh, "Entreprise",
		"Code postal du siège absent des adresses employeur du dossier")
	return &f
}

// ── Accès partagés ────────────────────────────────────────────────────────────

// businessRecord renvoie la fiche établissement corroborée, ou nil.
func businessRecord(in Input) *entity.BusinessRecord {
	if in.Corroboration == nil {
		return nil
	}
	biz := in.Corroboration.Business
	if !biz.OK() || !biz.Exists || biz.Business == nil {
		return nil
	}
	return biz.Business
}

// bestAddress renvoie la meilleure adresse du rôle demandé sur tout le
// dossier.
func bestAddress(in Input, role entity.AddressRole) *entity.Address {
	var best *entity.Address
	for _, d := range in.Documents {
		if a := d.Bundle.BestAddress(role); a != nil {
			if best == nil || a.Confidence > best.Confidence {
				best = a
			}
		}
	}
	return best
}

// anySalaryAbove détecte un salaire strictement supérieur au seuil sur
// les bulletins du dossier.
func anySalaryAbove(in Input, threshold decimal.Decimal) bool {
	for _, d := range in.Documents {
		if d.Class != entity.DocFichePaie {
			continue
		}
		for _, a := range d.Bundle.AmountsByCategory(entity.AmountSalary) {
			if a.Value.GreaterThan(threshold) {
				return true
			}
		}
	}
	return false
}

// averageSalary calcule le salaire mensuel moyen sur les bulletins.
func averageSalary(in Input) (decimal.Decimal, bool) {
	var sum decimal.Decimal
	n := 0
	for _, d := range in.Documents {
		if d.Class != entity.DocFichePaie {
			continue
		}
		for _, a := range d.Bundle.AmountsByCategory(entity.AmountSalary) {
			sum = sum.Add(a.Value)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return sum.Div(decimal.NewFromInt(int64(n))), true
}

// declaredIncome renvoie le revenu annuel déclaré le plus élevé des avis
// d'imposition.
func declaredIncome(in Input) (decimal.Decimal, bool) {
	var best decimal.Decimal
	found := false
	for _, d := range in.Documents {
		if d.Class != entity.DocAvisImposition {
			continue
		}
		for _, a := range d.Bundle.AmountsByCategory(entity.AmountIncome) {
			if !found || a.Value.GreaterThan(best) {
				best = a.Value
				found = true
			}
		}
	}
	return best, found
}
