// Package consistency contrôle la cohérence transversale d'un dossier :
// complétude des pièces requises, répétition des bulletins, stabilité des
// salaires d'un bulletin à l'autre. Les contrôles sont ternaires, une
// donnée absente donne "inconnu" et jamais un échec implicite.
package consistency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
)

// salaryVariationThreshold : au-delà de 50% d'écart relatif entre le plus
// petit et le plus grand salaire des bulletins, une anomalie est levée.
const salaryVariationThreshold = 0.5

// requiredClasses est l'ensemble des pièces attendues d'un dossier complet.
// La quittance de loyer est facultative.
var requiredClasses = []entity.DocumentClass{
	entity.DocContratTravail,
	entity.DocFichePaie,
	entity.DocAvisImposition,
	entity.DocPieceIdentite,
}

// DocumentInput est la vue d'un document nécessaire au contrôle : sa
// classe et les entités qui en ont été extraites.
type DocumentInput struct {
	Class  entity.DocumentClass
	Bundle entity.EntityBundle
}

// Checker évalue la cohérence inter-documents. Sans état entre appels.
type Checker struct{}

// NewChecker construit le contrôleur.
func NewChecker() *Checker {
	return &Checker{}
}

// Check évalue l'ensemble des contrôles transversaux sur le dossier.
func (c *Checker) Check(docs []DocumentInput) *entity.ConsistencyResult {
	res := entity.NewConsistencyResult()

	byClass := make(map[entity.DocumentClass]int)
	for _, d := range docs {
		byClass[d.Class]++
	}

	c.checkRepeatedPayslips(byClass, res)
	c.checkSalaryVariation(docs, byClass, res)
	c.checkCompleteness(byClass, res)
	c.checkIncomeCrossCheck(byClass, res)
	c.checkIdentity(byClass, res)

	return res
}

// checkRepeatedPayslips : un dossier sérieux porte plusieurs bulletins.
// Aucun bulletin → invérifiable, la complétude s'en charge.
func (c *Checker) checkRepeatedPayslips(byClass map[entity.DocumentClass]int, res *entity.ConsistencyResult) {
	n := byClass[entity.DocFichePaie]
	switch {
	case n == 0:
		res.SetCheck("repeated_payslips", entity.CheckUnknown)
	case n == 1:
		res.SetCheck("repeated_payslips", entity.CheckFailed)
		res.AddAnomaly("Un seul bulletin de paie fourni, plusieurs mois attendus")
	default:
		res.SetCheck("repeated_payslips", entity.CheckPassed)
	}
}

// checkSalaryVariation compare les salaires extraits des bulletins.
// L'écart excessif est une anomalie, pas un rejet.
func (c *Checker) checkSalaryVariation(docs []DocumentInput, byClass map[entity.DocumentClass]int, res *entity.ConsistencyResult) {
	if byClass[entity.DocFichePaie] < 2 {
		res.SetCheck("salary_coherence", entity.CheckUnknown)
		return
	}

	var salaries []decimal.Decimal
	for _, d := range docs {
		if d.Class != entity.DocFichePaie {
			continue
		}
		for _, a := range d.Bundle.AmountsByCategory(entity.AmountSalary) {
			salaries = append(salaries, a.Value)
		}
	}
	if len(salaries) < 2 {
		res.SetCheck("salary_coherence", entity.CheckUnknown)
		return
	}

	min, max := salaries[0], salaries[0]
	for _, s := range salaries[1:] {
		if s.LessThan(min) {
			min = s
		}
		if s.GreaterThan(max) {
			max = s
		}
	}
	if !min.IsPositive() {
		res.SetCheck("salary_coherence", entity.CheckUnknown)
		return
	}

	variation, _ := max.Sub(min).Div(min).Float64()
	res.SalaryVariation = variation
	res.SalaryVariationComputed = true

	if variation > salaryVariationThreshold {
		res.SetCheck("salary_coherence", entity.CheckFailed)
		res.AddAnomaly(fmt.Sprintf("Variation de salaire de %.0f%% entre les bulletins", variation*100))
	} else {
		res.SetCheck("salary_coherence", entity.CheckPassed)
	}
}

// checkCompleteness vérifie la présence de chaque classe requise.
func (c *Checker) checkCompleteness(byClass map[entity.DocumentClass]int, res *entity.ConsistencyResult) {
	var missing []string
	for _, class := range requiredClasses {
		if byClass[class] == 0 {
			res.MissingClasses = append(res.MissingClasses, class)
			missing = append(missing, string(class))
		}
	}
	if len(missing) == 0 {
		res.SetCheck("required_documents", entity.CheckPassed)
		return
	}
	res.SetCheck("required_documents", entity.CheckFailed)
	res.AddAnomaly("Pièces manquantes au dossier : " + strings.Join(missing, ", "))
}

// checkIncomeCrossCheck : le croisement salaires/revenu déclaré exige au
// moins un bulletin et un avis d'imposition.
func (c *Checker) checkIncomeCrossCheck(byClass map[entity.DocumentClass]int, res *entity.ConsistencyResult) {
	if byClass[entity.DocFichePaie] >= 1 && byClass[entity.DocAvisImposition] >= 1 {
		res.SetCheck("income_cross_check", entity.CheckPassed)
		return
	}
	res.SetCheck("income_cross_check", entity.CheckFailed)
	res.AddAnomaly("Croisement salaires/revenu fiscal impossible, pièces insuffisantes")
}

// checkIdentity vérifie la présence d'une pièce d'identité.
func (c *Checker) checkIdentity(byClass map[entity.DocumentClass]int, res *entity.ConsistencyResult) {
	if byClass[entity.DocPieceIdentite] >= 1 {
		res.SetCheck("identity_document", entity.CheckPassed)
		return
	}
	res.SetCheck("identity_document", entity.CheckFailed)
	res.AddAnomaly("Aucune pièce d'identité dans le dossier")
}
