package extraction

import (
	"regexp"
	"strings"

	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
	"github.com/Stephfff73/verification-antifraude/internal/domain/siret"
	"github.com/Stephfff73/verification-antifraude/internal/domain/textutil"
)

// Confiances attribuées selon la stratégie qui a trouvé l'adresse.
const (
	confidenceInline    = 0.9 // code postal + ville et voie sur la même ligne
	confidenceMultiline = 0.7 // bloc d'adresse réparti sur 2-3 lignes
)

// backwardWindow est la fenêtre (en octets) de recherche de la voie en
// amont d'un couple code postal + ville.
const backwardWindow = 120

var (
	streetTypes = `rue|avenue|av|boulevard|bd|chemin|impasse|place|all[ée]e|route|quai|cours|square|faubourg`

	// La ville commence par une majuscule ; les mots suivants doivent aussi
	// en porter une pour ne pas avaler la suite de la phrase.
	postalCityRe = regexp.MustCompile(`\b(\d{5})\s+([A-ZÀ-Ÿ][A-Za-zà-ÿÀ-Ÿ'\-]*(?:[ \-][A-ZÀ-Ÿ][A-Za-zà-ÿÀ-Ÿ'\-]*){0,3})`)
	streetRe     = regexp.MustCompile(`(?i)\b(\d{1,4})(?:\s*(?:bis|ter))?\s*,?\s+(` + streetTypes + `)\.?\s+([^\n,]{2,60})`)

	streetLineRe = regexp.MustCompile(`(?i)^\s*(\d{1,4})(?:\s*(?:bis|ter))?\s*,?\s+(` + streetTypes + `)\.?\s+([^,\n]{2,60}?)\s*$`)
	postalLineRe = regexp.MustCompile(`^\s*(\d{5})\s+(\S[^\n]*?)\s*$`)

	longDigitRunRe = regexp.MustCompile(`^\d{5,}$`)
)

// metadataTokens sont les jetons d'étiquette qui contaminent la fin d'un
// nom de voie quand l'adresse précède un cartouche administratif.
var metadataTokens = map[string]struct{}{
	"siret": {}, "siren": {}, "tel": {}, "fax": {}, "email": {}, "mail": {},
	"tva": {}, "ape": {}, "naf": {}, "code": {}, "cedex": {}, "urssaf": {},
}

// extractAddresses combine les deux stratégies puis déduplique par forme
// normalisée. Le rôle domicile/travail découle de la classe du document :
// les pièces employeur portent l'adresse du lieu de travail.
func (e *Extractor) extractAddresses(class entity.DocumentClass, text string) []entity.Address {
	role := entity.AddressHome
	if class == entity.DocContratTravail || class == entity.DocFichePaie {
		role = entity.AddressWork
	}

	seen := make(map[string]struct{})
	var out []entity.Address
	add := func(a entity.Address) {
		if !siret.ValidPostalCode(a.PostalCode) {
			return
		}
		key := textutil.Normalize(a.Raw())
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		a.Role = role
		out = append(out, a)
	}

	for _, a := range inlineAddresses(text) {
		add(a)
	}
	for _, a := range multilineAddresses(text) {
		add(a)
	}
	return out
}

// inlineAddresses : stratégie 1. Pour chaque couple code postal + ville,
// remonte dans une fenêtre bornée à la recherche de "numéro + type de
// voie + nom de voie" sur la même ligne.
func inlineAddresses(text string) []entity.Address {
	var out []entity.Address
	for _, loc := range postalCityRe.FindAllStringSubmatchIndex(text, -1) {
		postal := text[loc[2]:loc[3]]
		city := strings.TrimSpace(text[loc[4]:loc[5]])

		lo := loc[0] - backwardWindow
		if lo < 0 {
			lo = 0
		}
		window := text[lo:loc[0]]
		// Pas de saut de ligne entre la voie et le code postal : on ne
		// garde que la dernière ligne de la fenêtre.
		if nl := strings.LastIndexByte(window, '\n'); nl >= 0 {
			window = window[nl+1:]
		}

		matches := streetRe.FindAllStringSubmatch(window, -1)
		if len(matches) == 0 {
			continue
		}
		m := matches[len(matches)-1] // la voie la plus proche du code postal
		name := trimStreetName(m[3])
		if name == "" {
			continue
		}
		out = append(out, entity.Address{
			Number:     m[1],
			StreetType: strings.ToLower(m[2]),
			StreetName: name,
			PostalCode: postal,
			City:       city,
			Confidence: confidenceInline,
		})
	}
	return out
}

// multilineAddresses : stratégie 2. Fenêtres fixes de 3 lignes, la voie
// sur la première, le couple code postal + ville sur l'une des deux
// suivantes (blocs d'adresse d'en-tête de courrier).
func multilineAddresses(text string) []entity.Address {
	lines := strings.Split(text, "\n")
	var out []entity.Address
	for i, line := range lines {
		sm := streetLineRe.FindStringSubmatch(line)
		if sm == nil {
			continue
		}
		for j := i + 1; j <= i+2 && j < len(lines); j++ {
			pm := postalLineRe.FindStringSubmatch(lines[j])
			if pm == nil {
				continue
			}
			name := trimStreetName(sm[3])
			if name == "" {
				break
			}
			out = append(out, entity.Address{
				Number:     sm[1],
				StreetType: strings.ToLower(sm[2]),
				StreetName: name,
				PostalCode: pm[1],
				City:       strings.TrimSpace(pm[2]),
				Confidence: confidenceMultiline,
			})
			break
		}
	}
	return out
}

// trimStreetName retire de la fin du nom de voie les jetons qui
// ressemblent à des métadonnées : étiquettes administratives et longues
// suites de chiffres.
func trimStreetName(raw string) string {
	tokens := strings.Fields(strings.TrimSpace(raw))
	for len(tokens) > 0 {
		last := textutil.Normalize(tokens[len(tokens)-1])
		_, label := metadataTokens[last]
		if label || longDigitRunRe.MatchString(last) {
			tokens = tokens[:len(tokens)-1]
			continue
		}
		break
	}
	return strings.Join(tokens, " ")
}
