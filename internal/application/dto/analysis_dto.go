package dto

import (
	"github.com/google/uuid"

	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
)

// PropertiesRequest sac de propriétés d'un document soumis.
type PropertiesRequest struct {
	Creator    string `json:"creator"`
	Producer   string `json:"producer"`
	CreatedAt  string `json:"created_at"`  // format PDF "D:YYYYMMDDHHmmSS"
	ModifiedAt string `json:"modified_at"`
	PageCount  int    `json:"page_count"`
	Encrypted  bool   `json:"encrypted"`
}

// DocumentRequest un document du dossier à analyser. Le texte est fourni
// par l'appelant, l'extraction optique est hors du périmètre du moteur.
type DocumentRequest struct {
	ID         string            `json:"id"`
	Class      string            `json:"class" validate:"required"`
	FileName   string            `json:"file_name"`
	Text       string            `json:"text"`
	Properties PropertiesRequest `json:"properties"`
}

// AnalyzeRequest corps de la demande d'analyse d'un dossier.
type AnalyzeRequest struct {
	Documents []DocumentRequest `json:"documents" validate:"required,min=1"`
}

// ToDocuments convertit la requête en documents du domaine. Un ID absent
// est généré.
func (r AnalyzeRequest) ToDocuments() []entity.Document {
	docs := make([]entity.Document, len(r.Documents))
	for i, d := range r.Documents {
		id := d.ID
		if id == "" {
			id = uuid.New().String()
		}
		docs[i] = entity.Document{
			ID:       id,
			Class:    entity.DocumentClass(d.Class),
			FileName: d.FileName,
			RawText:  d.Text,
			Properties: entity.DocumentProperties{
				Creator:    d.Properties.Creator,
				Producer:   d.Properties.Producer,
				CreatedAt:  d.Properties.CreatedAt,
				ModifiedAt: d.Properties.ModifiedAt,
				PageCount:  d.Properties.PageCount,
				Encrypted:  d.Properties.Encrypted,
			},
		}
	}
	return docs
}
