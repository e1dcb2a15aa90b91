// Package pdfdoc lit le texte et les métadonnées des fichiers PDF du
// dossier. Un document illisible dégrade en texte vide ou propriétés
// partielles, jamais en échec de l'analyse.
package pdfdoc

import (
	"context"
	"io"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/Stephfff73/verification-antifraude/internal/application/ports"
	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
)

// Vérifications à la compilation des deux ports.
var (
	_ ports.TextExtractor  = (*Reader)(nil)
	_ ports.PropertyReader = (*Reader)(nil)
)

// Reader lit les PDF depuis le système de fichiers.
type Reader struct{}

// NewReader construit le lecteur.
func NewReader() *Reader {
	return &Reader{}
}

// Text restitue le texte brut du document. Un PDF chiffré ou corrompu
// produit une chaîne vide sans erreur : la validation pénalise l'absence
// de texte.
func (r *Reader) Text(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc, err := pdf.Open(path)
	if err != nil {
		if isEncryptionError(err) {
			return "", nil
		}
		return "", err
	}

	reader, err := doc.GetPlainText()
	if err != nil {
		return "", nil
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", nil
	}
	return string(raw), nil
}

// Properties restitue le sac de propriétés du document : outil de
// création, dates, nombre de pages, chiffrement.
func (r *Reader) Properties(ctx context.Context, path string) (entity.DocumentProperties, error) {
	if err := ctx.Err(); err != nil {
		return entity.DocumentProperties{}, err
	}
	doc, err := pdf.Open(path)
	if err != nil {
		if isEncryptionError(err) {
			return entity.DocumentProperties{Encrypted: true}, nil
		}
		return entity.DocumentProperties{}, err
	}

	info := doc.Trailer().Key("Info")
	return entity.DocumentProperties{
		Creator:    info.Key("Creator").RawString(),
		Producer:   info.Key("Producer").RawString(),
		CreatedAt:  info.Key("CreationDate").RawString(),
		ModifiedAt: info.Key("ModDate").RawString(),
		PageCount:  doc.NumPage(),
	}, nil
}

// isEncryptionError reconnaît l'erreur de PDF chiffré du lecteur.
func isEncryptionError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "encrypt")
}
