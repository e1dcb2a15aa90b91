// Package validation évalue chaque document du dossier : pénalités sur le
// sac de propriétés (outil d'édition, dates, chiffrement) puis catalogue de
// règles propre à la classe du document. Le dispatch se fait sur
// l'énumération fermée des classes, un validateur par variante derrière
// une interface commune.
package validation

import (
	"time"

	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
	"github.com/Stephfff73/verification-antifraude/internal/domain/textutil"
)

// Pondération des deux composantes du sous-score, en pourcentage entier
// pour garder des scores exacts aux frontières des bandes de risque.
const (
	propertiesWeightPct = 40
	textWeightPct       = 60
)

// minTextLength est la taille sous laquelle un texte est réputé inexploitable.
const minTextLength = 50

// penaltyNoText est la pénalité fixe appliquée quand aucun texte n'est
// exploitable, quelle que soit la classe.
const penaltyNoText = 20

// Pénalités par paliers sur le sac de propriétés.
const (
	penaltyGraphicEditor  = 25
	penaltyOnlineTool     = 15
	penaltyRecentCreation = 15
	penaltyModifiedAfter  = 10
	penaltyPageCount      = 10
	penaltyEncrypted      = 10
)

// recentCreationDays : un justificatif créé il y a moins de 7 jours est
// suspect (les pièces d'un dossier locataire préexistent à la demande).
const recentCreationDays = 7

// maxPlausiblePages borne le nombre de pages d'un justificatif individuel.
const maxPlausiblePages = 15

// classValidator est le catalogue de règles d'une classe de document.
// rules renvoie la pénalité texte cumulée et enrichit le résultat.
type classValidator interface {
	rules(text string, res *entity.ValidationResult) float64
}

// Service applique la validation par document. Sans état mutable entre
// appels : sûr pour une exécution concurrente par document.
type Service struct {
	now        func() time.Time
	validators map[entity.DocumentClass]classValidator
}

// NewService construit le service avec le catalogue complet des classes.
func NewService() *Service {
	return NewServiceWithClock(time.Now)
}

// NewServiceWithClock permet d'injecter l'horloge (tests de récence).
func NewServiceWithClock(now func() time.Time) *Service {
	return &Service{
		now: now,
		validators: map[entity.DocumentClass]classValidator{
			entity.DocFichePaie:      fichePaieValidator{},
			entity.DocContratTravail: contratTravailValidator{},
			entity.DocAvisImposition: avisImpositionValidator{},
			entity.DocPieceIdentite:  pieceIdentiteValidator{},
			entity.DocQuittanceLoyer: quittanceLoyerValidator{},
		},
	}
}

// Validate évalue un document et produit son ValidationResult. Ne renvoie
// jamais d'erreur : données manquantes → pénalité ou vérification "inconnu".
func (s *Service) Validate(doc entity.Document) *entity.ValidationResult {
	res := entity.NewValidationResult()

	propPenalty := s.propertyPenalty(doc.Properties, res)

	var textPenalty float64
	if len(doc.RawText) < minTextLength {
		textPenalty = penaltyNoText
		res.SetCheck("text_extractable", entity.CheckFailed)
		res.AddAnomaly("Peu ou pas de texte extrait : scan de mauvaise qualité ou document image")
	} else {
		res.SetCheck("text_extractable", entity.CheckPassed)
		if v, ok := s.validators[doc.Class]; ok {
			textPenalty = v.rules(doc.RawText, res)
		} else {
			// Classe hors catalogue : invérifiable, pas une erreur.
			res.SetCheck("class_rules", entity.CheckUnknown)
		}
	}

	raw := (propPenalty*propertiesWeightPct + textPenalty*textWeightPct) / 100
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	res.ScoreFraude = raw / 100
	res.RiskLevel = entity.RiskLevelFor(raw)
	return res
}

// Signatures d'outils dans creator/producer. Les éditeurs graphiques sont
// plus pénalisés que les convertisseurs en ligne.
var (
	graphicEditors = []string{
		"photoshop", "gimp", "paint.net", "pixlr", "canva",
		"illustrator", "coreldraw", "inkscape",
	}
	onlineTools = []string{
		"online", "converter", "pdf editor", "smallpdf", "ilovepdf", "sejda",
	}
)

// propertyPenalty cumule les pénalités du sac de propriétés (0..100 avant
// pondération).
func (s *Service) propertyPenalty(props entity.DocumentProperties, res *entity.ValidationResult) float64 {
	var penalty float64
	tools := props.Creator + " " + props.Producer

	if kw, hit := firstMatch(tools, graphicEditors); hit {
		penalty += penaltyGraphicEditor
		res.SetCheck("graphic_editor", entity.CheckFailed)
		res.AddAnomaly("Document produit avec un éditeur graphique : " + kw)
	} else {
		res.SetCheck("graphic_editor", entity.CheckPassed)
	}

	if kw, hit := firstMatch(tools, onlineTools); hit {
		penalty += penaltyOnlineTool
		res.SetCheck("online_tool", entity.CheckFailed)
		res.AddAnomaly("Document produit par un outil de conversion en ligne : " + kw)
	} else {
		res.SetCheck("online_tool", entity.CheckPassed)
	}

	created, createdOK := parsePDFDate(props.CreatedAt)
	if createdOK {
		days := s.now().Sub(created).Hours() / 24
		if days >= 0 && days < recentCreationDays {
			penalty += penaltyRecentCreation
			res.SetCheck("creation_recent", entity.CheckFailed)
			res.AddAnomaly("Document créé il y a moins de 7 jours")
		} else {
			res.SetCheck("creation_recent", entity.CheckPassed)
		}
	} else {
		res.SetCheck("creation_recent", entity.CheckUnknown)
	}

	if props.CreatedAt != "" && props.ModifiedAt != "" {
		if !sameTimestamp(props.CreatedAt, props.ModifiedAt) {
			penalty += penaltyModifiedAfter
			res.SetCheck("unmodified", entity.CheckFailed)
			res.AddAnomaly("Document modifié après sa création initiale")
		} else {
			res.SetCheck("unmodified", entity.CheckPassed)
		}
	} else {
		res.SetCheck("unmodified", entity.CheckUnknown)
	}

	if props.PageCount < 1 || props.PageCount > maxPlausiblePages {
		penalty += penaltyPageCount
		res.SetCheck("page_count", entity.CheckFailed)
		res.AddAnomaly("Nombre de pages anormal pour un justificatif")
	} else {
		res.SetCheck("page_count", entity.CheckPassed)
	}

	if props.Encrypted {
		penalty += penaltyEncrypted
		res.SetCheck("unencrypted", entity.CheckFailed)
		res.AddAnomaly("Document chiffré : contenu non vérifiable en l'état")
	} else {
		res.SetCheck("unencrypted", entity.CheckPassed)
	}

	return penalty
}

// firstMatch renvoie le premier mot-clé présent dans la chaîne normalisée.
func firstMatch(s string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if textutil.ContainsAny(s, kw) {
			return kw, true
		}
	}
	return "", false
}

// parsePDFDate interprète le format PDF "D:YYYYMMDDHHmmSS" (fuseau ignoré).
func parsePDFDate(raw string) (time.Time, bool) {
	s := raw
	if len(s) >= 2 && s[:2] == "D:" {
		s = s[2:]
	}
	if len(s) < 8 {
		return time.Time{}, false
	}
	digits := s
	if len(digits) > 14 {
		digits = digits[:14]
	}
	for _, layout := range []string{"20060102150405", "200601021504", "20060102"} {
		if len(digits) >= len(layout) {
			if t, err := time.Parse(layout, digits[:len(layout)]); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// sameTimestamp compare deux dates PDF, en valeur parsée si possible,
// sinon en chaîne brute.
func sameTimestamp(a, b string) bool {
	ta, okA := parsePDFDate(a)
	tb, okB := parsePDFDate(b)
	if okA && okB {
		return ta.Equal(tb)
	}
	return a == b
}
