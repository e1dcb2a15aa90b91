// Package corroboration confronte les entités extraites aux registres
// externes : registre des entreprises, base adresse nationale, résolution
// du domaine de messagerie. Les quatre appels sont indépendants et émis en
// parallèle, chacun sous son propre délai ; un échec renseigne la raison
// sur son seul résultat et ne bloque jamais les autres.
package corroboration

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/Stephfff73/verification-antifraude/internal/application/ports"
	"github.com/Stephfff73/verification-antifraude/internal/domain"
	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
)

// defaultCallTimeout borne chaque appel externe. Pas de nouvelle
// tentative ici, la politique de retry appartient à l'appelant.
const defaultCallTimeout = 8 * time.Second

// reasonableDistanceKm est le trajet domicile/travail au-delà duquel la
// distance est jugée déraisonnable.
const reasonableDistanceKm = 100.0

const earthRadiusKm = 6371.0

// disposableDomains est la liste statique des domaines jetables,
// consultée avant tout appel réseau.
var disposableDomains = map[string]struct{}{
	"yopmail.com": {}, "yopmail.fr": {}, "jetable.org": {}, "jetable.com": {},
	"mailinator.com": {}, "guerrillamail.com": {}, "10minutemail.com": {},
	"tempmail.com": {}, "temp-mail.org": {}, "throwaway.email": {},
	"trashmail.com": {}, "maildrop.cc": {}, "getnada.com": {},
}

// Input désigne les entités représentatives à corroborer. Un champ vide
// ou nil saute l'appel correspondant.
type Input struct {
	Siret       string
	HomeAddress *entity.Address
	WorkAddress *entity.Address
	Email       *entity.Email
}

// Orchestrator émet les appels de corroboration. Sans état entre appels.
type Orchestrator struct {
	registry    ports.BusinessRegistry
	normalizer  ports.AddressNormalizer
	mail        ports.MailDomainResolver
	callTimeout time.Duration
}

// NewOrchestrator construit l'orchestrateur. Un délai nul ou négatif
// retombe sur le délai par défaut.
func NewOrchestrator(
	registry ports.BusinessRegistry,
	normalizer ports.AddressNormalizer,
	mail ports.MailDomainResolver,
	callTimeout time.Duration,
) *Orchestrator {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &Orchestrator{
		registry:    registry,
		normalizer:  normalizer,
		mail:        mail,
		callTimeout: callTimeout,
	}
}

// Corroborate émet les appels en parallèle puis dérive les faits
// inter-entités (distance domicile/travail).
func (o *Orchestrator) Corroborate(ctx context.Context, in Input) *entity.CorroborationReport {
	report := &entity.CorroborationReport{}

	var wg sync.WaitGroup
	if in.Siret != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.Business = o.lookupBusiness(ctx, in.Siret)
		}()
	}
	if in.HomeAddress != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.HomeAddress = o.normalizeAddress(ctx, in.HomeAddress.Raw())
		}()
	}
	if in.WorkAddress != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.WorkAddress = o.normalizeAddress(ctx, in.WorkAddress.Raw())
		}()
	}
	if in.Email != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.Mail = o.resolveMail(ctx, in.Email.Domain)
		}()
	}
	wg.Wait()

	o.deriveDistance(report)
	return report
}

// lookupBusiness interroge le registre des entreprises.
func (o *Orchestrator) lookupBusiness(ctx context.Context, siret string) *entity.CorroborationResult {
	res := &entity.CorroborationResult{Source: entity.SourceSirene}

	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	rec, err := o.registry.LookupBusiness(callCtx, siret)
	if err != nil {
		res.Err = errReason(err)
		return res
	}
	res.Exists = true
	res.Business = rec
	return res
}

// normalizeAddress soumet une adresse brute à la normalisation.
func (o *Orchestrator) normalizeAddress(ctx context.Context, raw string) *entity.CorroborationResult {
	res := &entity.CorroborationResult{Source: entity.SourceBAN}

	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	norm, err := o.normalizer.NormalizeAddress(callCtx, raw)
	if err != nil {
		res.Err = errReason(err)
		return res
	}
	res.Exists = true
	res.Address = norm
	return res
}

// resolveMail vérifie le domaine de messagerie. La liste statique des
// domaines jetables est consultée avant tout appel réseau.
func (o *Orchestrator) resolveMail(ctx context.Context, domain string) *entity.CorroborationResult {
	res := &entity.CorroborationResult{Source: entity.SourceMX}
	d := strings.ToLower(strings.TrimSpace(domain))

	if _, jetable := disposableDomains[d]; jetable {
		res.Exists = true
		res.Mail = &entity.MailDomainRecord{Domain: d, Disposable: true, Confidence: 1.0}
		return res
	}

	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	hasMX, err := o.mail.HasMX(callCtx, d)
	if err != nil {
		res.Err = errReason(err)
		return res
	}
	res.Exists = hasMX
	res.Mail = &entity.MailDomainRecord{Domain: d, HasMX: hasMX, Confidence: 0.8}
	return res
}

// deriveDistance calcule la distance orthodromique domicile/travail si
// les deux adresses ont été géocodées.
func (o *Orchestrator) deriveDistance(report *entity.CorroborationReport) {
	home, work := report.HomeAddress, report.WorkAddress
	if !home.OK() || !work.OK() || !home.Exists || !work.Exists {
		return
	}
	if home.Address == nil || work.Address == nil {
		return
	}
	km := haversineKm(
		home.Address.Latitude, home.Address.Longitude,
		work.Address.Latitude, work.Address.Longitude,
	)
	report.DistanceKm = km
	report.DistanceComputed = true
	report.DistanceReasonable = km <= reasonableDistanceKm
}

// haversineKm : distance orthodromique entre deux points en kilomètres.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// errReason traduit une erreur d'appel externe en raison lisible.
func errReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrLookupTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return "délai d'attente dépassé"
	case errors.Is(err, domain.ErrLookupNotFound):
		return "introuvable dans le registre"
	case errors.Is(err, domain.ErrLookupRateLimited):
		return "quota d'appels dépassé"
	case errors.Is(err, domain.ErrLookupNetwork):
		return "erreur réseau"
	default:
		return err.Error()
	}
}
