// Package mailcheck vérifie qu'un domaine de messagerie accepte du
// courrier via la résolution de ses enregistrements MX.
package mailcheck

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/Stephfff73/verification-antifraude/internal/application/ports"
	"github.com/Stephfff73/verification-antifraude/internal/domain"
)

// Vérification à la compilation que Resolver implémente MailDomainResolver.
var _ ports.MailDomainResolver = (*Resolver)(nil)

// Resolver interroge le DNS système.
type Resolver struct {
	resolver *net.Resolver
}

// NewResolver construit le résolveur sur le DNS par défaut.
func NewResolver() *Resolver {
	return &Resolver{resolver: net.DefaultResolver}
}

// HasMX résout les enregistrements MX du domaine. Un domaine inexistant
// n'est pas une erreur : il ne reçoit simplement pas de courrier.
func (r *Resolver) HasMX(ctx context.Context, mailDomain string) (bool, error) {
	records, err := r.resolver.LookupMX(ctx, mailDomain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			if dnsErr.IsNotFound {
				return false, nil
			}
			if dnsErr.IsTimeout {
				return false, fmt.Errorf("mx: %s: %w", mailDomain, domain.ErrLookupTimeout)
			}
		}
		if ctx.Err() != nil {
			return false, fmt.Errorf("mx: %s: %w", mailDomain, domain.ErrLookupTimeout)
		}
		return false, fmt.Errorf("mx: %s: %w", mailDomain, domain.ErrLookupNetwork)
	}
	return len(records) > 0, nil
}
