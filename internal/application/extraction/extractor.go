// Package extraction implémente l'extraction multi-stratégies d'entités
// typées depuis le texte brut d'un document : identifiants d'entreprise,
// adresses, emails, téléphones, montants, dates et noms propres.
//
// L'extracteur n'échoue jamais : un texte absent ou illisible produit un
// lot vide. Chaque champ du lot est soit vide soit entièrement validé.
package extraction

import (
	"regexp"
	"strings"

	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
	"github.com/Stephfff73/verification-antifraude/internal/domain/siret"
	"github.com/Stephfff73/verification-antifraude/internal/domain/textutil"
)

// Strictness règle le compromis précision/rappel de l'extraction des
// identifiants d'entreprise non étiquetés.
type Strictness string

const (
	// StrictnessStrict n'accepte une suite nue de 14 chiffres que si sa
	// clé de Luhn est correcte.
	StrictnessStrict Strictness = "strict"
	// StrictnessLenient accepte aussi une suite structurellement plausible
	// si un mot-clé d'entreprise apparaît à proximité.
	StrictnessLenient Strictness = "lenient"
)

// Extractor extrait un EntityBundle depuis le texte d'un document.
// Sans état mutable : sûr pour un usage concurrent entre documents.
type Extractor struct {
	strictness Strictness
}

// NewExtractor construit un extracteur. Une strictness inconnue retombe
// sur le mode strict.
func NewExtractor(s Strictness) *Extractor {
	if s != StrictnessLenient {
		s = StrictnessStrict
	}
	return &Extractor{strictness: s}
}

// ── Identifiants d'entreprise ─────────────────────────────────────────────────

var (
	// Étiquette collée ou suivie de la suite sans séparateur : "SIRET60205235900042".
	siretAdjacentRe = regexp.MustCompile(`(?i)siret\s*(?:n°|no|:)?\s*(\d{14})`)
	// Étiquette suivie de la forme groupée "602 052 359 00042".
	siretSeparatedRe = regexp.MustCompile(`(?i)siret\s*(?:n°|no|:)?\s*(\d{3})[ .\-](\d{3})[ .\-](\d{3})[ .\-](\d{5})`)
	// Suite nue de 14 chiffres, filtrée ensuite par validité structurelle.
	siretBareRe = regexp.MustCompile(`\b(\d{14})\b`)

	sirenLabeledRe = regexp.MustCompile(`(?i)siren\s*(?:n°|no|:)?\s*(\d{9})\b`)
	sirenBareRe    = regexp.MustCompile(`\b(\d{9})\b`)

	// Mots-clés dont la proximité soutient une suite nue en mode tolérant.
	businessKeywords = []string{"siret", "siren", "entreprise", "etablissement", "employeur", "societe", "rcs", "ape", "naf"}
)

// proximityWindow est la fenêtre (en octets) de recherche de mots-clés
// autour d'une suite nue de 14 chiffres.
const proximityWindow = 80

// Extract produit le lot d'entités du document. class oriente le marquage
// domicile/travail des adresses ; text peut être vide.
func (e *Extractor) Extract(class entity.DocumentClass, text string) entity.EntityBundle {
	var bundle entity.EntityBundle
	if strings.TrimSpace(text) == "" {
		return bundle
	}

	bundle.Sirets = e.extractSirets(text)
	bundle.Sirens = e.extractSirens(text, bundle.Sirets)
	bundle.Addresses = e.extractAddresses(class, text)
	bundle.Emails = extractEmails(text)
	bundle.Phones = extractPhones(text)
	bundle.Amounts = extractAmounts(text)
	bundle.Dates = extractDates(text)
	bundle.Names = extractNames(text)
	return bundle
}

// extractSirets applique les motifs par ordre de précédence et déduplique
// par chaîne exacte.
func (e *Extractor) extractSirets(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	// 1. Étiquette adjacente, sans séparateur.
	for _, m := range siretAdjacentRe.FindAllStringSubmatch(text, -1) {
		if siret.PlausibleSiret(m[1]) {
			add(m[1])
		}
	}

	// 2. Étiquette avec séparateurs.
	for _, m := range siretSeparatedRe.FindAllStringSubmatch(text, -1) {
		candidate := m[1] + m[2] + m[3] + m[4]
		if siret.PlausibleSiret(candidate) {
			add(candidate)
		}
	}

	// 3. Suite nue structurellement valide.
	for _, loc := range siretBareRe.FindAllStringSubmatchIndex(text, -1) {
		candidate := text[loc[2]:loc[3]]
		if _, dup := seen[candidate]; dup {
			continue
		}
		if e.acceptBareSiret(text, loc[2], loc[3], candidate) {
			add(candidate)
		}
	}
	return out
}

// acceptBareSiret décide du sort d'une suite nue de 14 chiffres selon la
// strictness configurée.
func (e *Extractor) acceptBareSiret(text string, start, end int, candidate string) bool {
	if siret.ValidSiret(candidate) {
		return true
	}
	if e.strictness != StrictnessLenient {
		return false
	}
	if !siret.PlausibleSiret(candidate) {
		return false
	}
	lo, hi := start-proximityWindow, end+proximityWindow
	if lo < 0 {
		lo = 0
	}
	if hi > len(text) {
		hi = len(text)
	}
	return textutil.ContainsAny(text[lo:hi], businessKeywords...)
}

// extractSirens extrait les identifiants secondaires à 9 chiffres, en
// excluant tout SIREN préfixe d'un SIRET déjà confirmé.
func (e *Extractor) extractSirens(text string, sirets []string) []string {
	prefixes := make(map[string]struct{}, len(sirets))
	for _, s := range sirets {
		prefixes[siret.SirenOf(s)] = struct{}{}
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(candidate string) {
		if !siret.ValidSiren(candidate) {
			return
		}
		if _, shadowed := prefixes[candidate]; shadowed {
			return
		}
		if _, dup := seen[candidate]; dup {
			return
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}

	for _, m := range sirenLabeledRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range sirenBareRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	return out
}

// ── Emails ────────────────────────────────────────────────────────────────────

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// webmailDomains liste les messageries grand public : un email y résidant
// est classé "personnel", les autres "professionnel".
var webmailDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"hotmail.com":    {},
	"hotmail.fr":     {},
	"outlook.com":    {},
	"outlook.fr":     {},
	"live.fr":        {},
	"yahoo.com":      {},
	"yahoo.fr":       {},
	"orange.fr":      {},
	"wanadoo.fr":     {},
	"free.fr":        {},
	"sfr.fr":         {},
	"laposte.net":    {},
	"gmx.fr":         {},
	"icloud.com":     {},
	"protonmail.com": {},
	"proton.me":      {},
}

func extractEmails(text string) []entity.Email {
	seen := make(map[string]struct{})
	var out []entity.Email
	for _, raw := range emailRe.FindAllString(text, -1) {
		addr := strings.ToLower(raw)
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		at := strings.LastIndex(addr, "@")
		domain := addr[at+1:]
		_, personal := webmailDomains[domain]
		out = append(out, entity.Email{
			Address:      addr,
			Domain:       domain,
			Professional: !personal,
		})
	}
	return out
}

// ── Téléphones ────────────────────────────────────────────────────────────────

var phoneRe = regexp.MustCompile(`(?:\+33|0033)[\s.\-]?[1-9](?:[\s.\-]?\d{2}){4}|\b0[1-9](?:[\s.\-]?\d{2}){4}\b`)

var nonDigitRe = regexp.MustCompile(`\D`)

func extractPhones(text string) []entity.Phone {
	seen := make(map[string]struct{})
	var out []entity.Phone
	for _, raw := range phoneRe.FindAllString(text, -1) {
		digits := nonDigitRe.ReplaceAllString(raw, "")
		// +33 / 0033 → forme nationale à 10 chiffres.
		if strings.HasPrefix(digits, "0033") {
			digits = "0" + digits[4:]
		} else if strings.HasPrefix(digits, "33") && len(digits) == 11 {
			digits = "0" + digits[2:]
		}
		if len(digits) != 10 || digits[0] != '0' {
			continue
		}
		if _, dup := seen[digits]; dup {
			continue
		}
		seen[digits] = struct{}{}
		out = append(out, entity.Phone{
			Number: digits,
			Mobile: digits[1] == '6' || digits[1] == '7',
		})
	}
	return out
}

// ── Dates et noms ─────────────────────────────────────────────────────────────

var (
	dateNumericRe = regexp.MustCompile(`\b\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}\b`)
	dateMonthRe   = regexp.MustCompile(`(?i)\b(?:janvier|f[ée]vrier|mars|avril|mai|juin|juillet|ao[uû]t|septembre|octobre|novembre|d[ée]cembre)\s+\d{4}\b`)

	nameRe = regexp.MustCompile(`(?:M\.|Mme|Mlle|Monsieur|Madame)\s+([A-ZÀ-Ÿ][A-Za-zà-ÿ\-]+(?:\s+[A-ZÀ-Ÿ][A-Za-zà-ÿ\-]+){0,2})`)
)

func extractDates(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range dateNumericRe.FindAllString(text, -1) {
		if _, dup := seen[d]; !dup {
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	for _, d := range dateMonthRe.FindAllString(text, -1) {
		key := textutil.Normalize(d)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

func extractNames(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range nameRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		key := textutil.Normalize(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
