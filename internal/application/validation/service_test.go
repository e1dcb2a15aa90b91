package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stephfff73/verification-antifraude/internal/application/validation"
	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
)

// Horloge fixe pour les règles de récence.
var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newService() *validation.Service {
	return validation.NewServiceWithClock(func() time.Time { return testNow })
}

// cleanProps est un sac de propriétés sans aucun signe suspect.
func cleanProps() entity.DocumentProperties {
	return entity.DocumentProperties{
		Creator:    "Microsoft Word",
		Producer:   "Acrobat Distiller",
		CreatedAt:  "D:20230110093000",
		ModifiedAt: "D:20230110093000",
		PageCount:  2,
	}
}

func doc(class entity.DocumentClass, text string, props entity.DocumentProperties) entity.Document {
	return entity.Document{ID: "doc-1", Class: class, RawText: text, Properties: props}
}

// ── Texte absent ──────────────────────────────────────────────────────────────

func TestValidate_TexteVide_PenaliteFixeQuelleQueSoitLaClasse(t *testing.T) {
	// Propriété de référence : texte vide → text_extractable=false et
	// pénalité minimale fixe, pour toutes les classes.
	for _, class := range entity.AllDocumentClasses {
		res := newService().Validate(doc(class, "", cleanProps()))

		assert.Equal(t, entity.CheckFailed, res.Checks["text_extractable"],
			"classe %s : text_extractable doit être en échec", class)
		assert.InDelta(t, 0.12, res.ScoreFraude, 1e-9,
			"classe %s : pénalité fixe 20 pondérée à 0.6", class)
		assert.Equal(t, entity.RiskVeryLow, res.RiskLevel)
	}
}

func TestValidate_TexteTropCourtTraiteCommeAbsent(t *testing.T) {
	res := newService().Validate(doc(entity.DocFichePaie, "bulletin", cleanProps()))
	assert.Equal(t, entity.CheckFailed, res.Checks["text_extractable"])
}

// ── Sac de propriétés ─────────────────────────────────────────────────────────

func TestValidate_EditeurGraphiqueDetecte(t *testing.T) {
	props := cleanProps()
	props.Creator = "Adobe Photoshop 2024"
	res := newService().Validate(doc(entity.DocFichePaie, "", props))

	assert.Equal(t, entity.CheckFailed, res.Checks["graphic_editor"])
	// 0.4×25 (éditeur) + 0.6×20 (texte absent) = 22.
	assert.InDelta(t, 0.22, res.ScoreFraude, 1e-9)
}

func TestValidate_OutilDeConversionEnLigne(t *testing.T) {
	props := cleanProps()
	props.Producer = "iLovePDF"
	res := newService().Validate(doc(entity.DocQuittanceLoyer, "", props))
	assert.Equal(t, entity.CheckFailed, res.Checks["online_tool"])
}

func TestValidate_CreationRecente(t *testing.T) {
	props := cleanProps()
	props.CreatedAt = "D:20240613080000" // 2 jours avant l'horloge de test
	props.ModifiedAt = props.CreatedAt
	res := newService().Validate(doc(entity.DocFichePaie, "", props))

	assert.Equal(t, entity.CheckFailed, res.Checks["creation_recent"])
	assert.Contains(t, res.Anomalies, "Document créé il y a moins de 7 jours")
}

func TestValidate_ModificationPosterieure(t *testing.T) {
	props := cleanProps()
	props.ModifiedAt = "D:20240201110000"
	res := newService().Validate(doc(entity.DocFichePaie, "", props))
	assert.Equal(t, entity.CheckFailed, res.Checks["unmodified"])
}

func TestValidate_DatesAbsentesRestentInverifiables(t *testing.T) {
	props := cleanProps()
	props.CreatedAt = ""
	props.ModifiedAt = ""
	res := newService().Validate(doc(entity.DocFichePaie, "", props))

	// Donnée manquante : "inconnu", pas un échec.
	assert.Equal(t, entity.CheckUnknown, res.Checks["creation_recent"])
	assert.Equal(t, entity.CheckUnknown, res.Checks["unmodified"])
}

func TestValidate_ChiffrementEtPagesAnormales(t *testing.T) {
	props := cleanProps()
	props.Encrypted = true
	props.PageCount = 40
	res := newService().Validate(doc(entity.DocFichePaie, "", props))

	assert.Equal(t, entity.CheckFailed, res.Checks["unencrypted"])
	assert.Equal(t, entity.CheckFailed, res.Checks["page_count"])
}

// ── Règles par classe ─────────────────────────────────────────────────────────

const fichePaieComplete = `BULLETIN DE PAIE - Janvier 2024
Employeur : ACME BATIMENT, SIRET 60205235900042
Salaire brut : 2 800,00 €
Cotisations sociales : 620,00 €
Net à payer : 2 180,00 €`

func TestValidate_FichePaieComplete(t *testing.T) {
	res := newService().Validate(doc(entity.DocFichePaie, fichePaieComplete, cleanProps()))

	assert.Equal(t, entity.CheckPassed, res.Checks["salary_keywords"])
	assert.Equal(t, entity.CheckPassed, res.Checks["employer_identifier"])
	assert.Equal(t, entity.CheckPassed, res.Checks["monetary_amounts"])
	assert.InDelta(t, 0.0, res.ScoreFraude, 1e-9)
	assert.Equal(t, entity.RiskVeryLow, res.RiskLevel)
}

func TestValidate_FichePaieSansMentionsSalariales(t *testing.T) {
	text := `Document relatif au mois de janvier 2024 pour un montant de 1 200,00 €
concernant l'établissement SIRET 60205235900042 et rien d'autre à signaler ici.`
	res := newService().Validate(doc(entity.DocFichePaie, text, cleanProps()))

	assert.Equal(t, entity.CheckFailed, res.Checks["salary_keywords"])
	assert.Equal(t, entity.CheckPassed, res.Checks["employer_identifier"])
	// 0.6×25 = 15.
	assert.InDelta(t, 0.15, res.ScoreFraude, 1e-9)
	assert.Equal(t, entity.RiskLow, res.RiskLevel)
}

func TestValidate_ContratComplet(t *testing.T) {
	text := `CONTRAT DE TRAVAIL à durée indéterminée (CDI)
entre l'employeur ACME et le salarié M. Jean Dupont.
La durée du travail est fixée à 35 heures.
Fait à Paris, signature des deux parties.` + " " // > 50 caractères garantis
	res := newService().Validate(doc(entity.DocContratTravail, text, cleanProps()))

	assert.Equal(t, entity.CheckPassed, res.Checks["contract_keywords"])
	assert.Equal(t, entity.CheckPassed, res.Checks["contract_type"])
	assert.Equal(t, entity.CheckPassed, res.Checks["signature_mention"])
	assert.InDelta(t, 0.0, res.ScoreFraude, 1e-9)
}

func TestValidate_ContratSansType(t *testing.T) {
	text := `Contrat de travail entre l'employeur et le salarié, durée de 35 heures,
fait à Lyon, signature des parties au bas du présent document.`
	res := newService().Validate(doc(entity.DocContratTravail, text, cleanProps()))

	assert.Equal(t, entity.CheckFailed, res.Checks["contract_type"])
	assert.Contains(t, res.Anomalies, "Type de contrat non identifiable (CDI, CDD...)")
}

func TestValidate_AvisImposition(t *testing.T) {
	text := `DIRECTION GENERALE DES FINANCES PUBLIQUES - Avis d'impôt sur le revenu 2023
Numéro fiscal : 1234567890123 - Revenu fiscal de référence : 25 600`
	res := newService().Validate(doc(entity.DocAvisImposition, text, cleanProps()))

	assert.Equal(t, entity.CheckPassed, res.Checks["tax_keywords"])
	assert.Equal(t, entity.CheckPassed, res.Checks["fiscal_reference"])
	assert.InDelta(t, 0.0, res.ScoreFraude, 1e-9)
}

func TestValidate_PieceIdentite(t *testing.T) {
	text := `RÉPUBLIQUE FRANÇAISE - CARTE NATIONALE D'IDENTITÉ
Nom : DUPONT Prénom : Jean Né le : 12/03/1985 à Paris`
	res := newService().Validate(doc(entity.DocPieceIdentite, text, cleanProps()))

	assert.Equal(t, entity.CheckPassed, res.Checks["id_type"])
	assert.Equal(t, entity.CheckPassed, res.Checks["birth_date"])
	assert.Equal(t, entity.CheckPassed, res.Checks["issuer_mention"])
}

func TestValidate_QuittanceLoyer(t *testing.T) {
	text := `QUITTANCE DE LOYER - mois de mars 2024
Je soussigné reconnais avoir reçu la somme de 850,00 € au titre du loyer.`
	res := newService().Validate(doc(entity.DocQuittanceLoyer, text, cleanProps()))

	assert.Equal(t, entity.CheckPassed, res.Checks["rent_keywords"])
	assert.Equal(t, entity.CheckPassed, res.Checks["month_mention"])
	assert.Equal(t, entity.CheckPassed, res.Checks["monetary_amounts"])
	assert.InDelta(t, 0.0, res.ScoreFraude, 1e-9)
}

func TestValidate_ScoreBorneA100(t *testing.T) {
	// Tout au rouge : le score reste normalisé dans [0,1].
	props := entity.DocumentProperties{
		Creator:   "Photoshop",
		Producer:  "smallpdf online converter",
		CreatedAt: "D:20240614120000",
		ModifiedAt: "D:20240615090000",
		PageCount: 0,
		Encrypted: true,
	}
	res := newService().Validate(doc(entity.DocFichePaie, "texte quelconque sans aucun des mots attendus, assez long pour être analysé", props))

	require.GreaterOrEqual(t, res.ScoreFraude, 0.0)
	assert.LessOrEqual(t, res.ScoreFraude, 1.0)
	assert.Equal(t, entity.RiskVeryHigh, res.RiskLevel)
}
