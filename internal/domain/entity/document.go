package entity

import "time"

// DocumentClass est l'énumération fermée des types de pièces d'un dossier
// locataire. Le dispatch des validateurs se fait sur cette énumération,
// jamais sur des sous-chaînes de clés.
type DocumentClass string

const (
	DocContratTravail DocumentClass = "contrat_travail"
	DocFichePaie      DocumentClass = "fiche_paie"
	DocAvisImposition DocumentClass = "avis_imposition"
	DocPieceIdentite  DocumentClass = "piece_identite"
	DocQuittanceLoyer DocumentClass = "quittance_loyer"
)

// AllDocumentClasses liste les classes connues, dans l'ordre d'affichage.
var AllDocumentClasses = []DocumentClass{
	DocContratTravail,
	DocFichePaie,
	DocAvisImposition,
	DocPieceIdentite,
	DocQuittanceLoyer,
}

// Valid indique si la classe fait partie de l'énumération.
func (c DocumentClass) Valid() bool {
	switch c {
	case DocContratTravail, DocFichePaie, DocAvisImposition, DocPieceIdentite, DocQuittanceLoyer:
		return true
	}
	return false
}

// DocumentProperties est le sac de propriétés restitué par le collaborateur
// d'extraction PDF. Les dates restent des chaînes brutes (format PDF
// "D:YYYYMMDDHHmmSS" ou vide) ; leur interprétation est à la charge du
// validateur.
type DocumentProperties struct {
	Creator      string `json:"creator"`
	Producer     string `json:"producer"`
	CreatedAt    string `json:"created_at"`
	ModifiedAt   string `json:"modified_at"`
	PageCount    int    `json:"page_count"`
	Encrypted    bool   `json:"encrypted"`
}

// Document est une pièce du dossier, créée à l'ingestion puis enrichie en
// lecture seule pendant une analyse.
type Document struct {
	ID         string
	Class      DocumentClass
	FileName   string
	RawText    string // vide si l'extraction de texte a échoué
	Properties DocumentProperties
	UploadedAt time.Time
}

// HasText indique si un texte exploitable a été extrait.
func (d Document) HasText() bool {
	return len(d.RawText) > 0
}
