// Package ports définit les contrats des collaborateurs externes du moteur
// d'analyse. Les implémentations concrètes vivent dans internal/infrastructure ;
// les tests injectent des doubles.
package ports

import (
	"context"

	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
)

// TextExtractor restitue le texte brut d'un document. Une extraction
// impossible renvoie une chaîne vide, pas une erreur fatale : le pipeline
// dégrade en pénalité.
type TextExtractor interface {
	Text(ctx context.Context, path string) (string, error)
}

// PropertyReader restitue le sac de propriétés d'un document.
type PropertyReader interface {
	Properties(ctx context.Context, path string) (entity.DocumentProperties, error)
}

// BusinessRegistry interroge le registre des entreprises par SIRET.
// Les échecs sont typés via les erreurs domain.ErrLookup*.
type BusinessRegistry interface {
	LookupBusiness(ctx context.Context, siret string) (*entity.BusinessRecord, error)
}

// AddressNormalizer normalise une adresse en texte libre et la géocode.
type AddressNormalizer interface {
	NormalizeAddress(ctx context.Context, raw string) (*entity.NormalizedAddress, error)
}

// MailDomainResolver vérifie qu'un domaine de messagerie accepte du
// courrier (présence d'enregistrements MX).
type MailDomainResolver interface {
	HasMX(ctx context.Context, domain string) (bool, error)
}
