package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
)

// Bornes de plausibilité d'un montant (exclusives) : en dehors, la valeur
// est un artefact d'OCR ou un identifiant, pas un montant.
var (
	amountFloor   = decimal.Zero
	amountCeiling = decimal.NewFromInt(1_000_000)
)

// numberPattern accepte les écritures françaises : milliers séparés par
// espace (y compris insécable et fine), décimales par virgule ou point.
const numberPattern = `(\d{1,3}(?:[ \x{a0}\x{202f}]\d{3})*(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?)`

var (
	salaryAmountRe = regexp.MustCompile(`(?i)(?:salaire\s+net|salaire\s+brut|net\s+[aà]\s+payer|net\s+imposable|r[eé]mun[eé]ration|salaire|brut)\s*(?:mensuel(?:le)?)?\s*(?:de)?\s*:?\s*` + numberPattern)
	rentAmountRe   = regexp.MustCompile(`(?i)(?:loyer\s+charges\s+comprises|loyer\s+hors\s+charges|loyer)\s*(?:mensuel)?\s*(?:de)?\s*:?\s*` + numberPattern)
	incomeAmountRe = regexp.MustCompile(`(?i)(?:revenu\s+fiscal\s+de\s+r[eé]f[eé]rence|revenu\s+imposable|revenus?\s+annuels?)\s*:?\s*` + numberPattern)
	bareAmountRe   = regexp.MustCompile(numberPattern + `\s*(?:€|euros?\b)`)

	amountCleanRe = regexp.MustCompile(`[ \x{a0}\x{202f}]`)
)

// contextRadius est la taille (en octets) de l'extrait de contexte
// conservé autour d'un montant.
const contextRadius = 40

type amountPattern struct {
	re       *regexp.Regexp
	category entity.AmountCategory
}

// L'ordre fixe la précédence : un montant capturé par un motif contextuel
// n'est pas recapturé par le motif générique.
var amountPatterns = []amountPattern{
	{salaryAmountRe, entity.AmountSalary},
	{rentAmountRe, entity.AmountRent},
	{incomeAmountRe, entity.AmountIncome},
	{bareAmountRe, entity.AmountGeneric},
}

func extractAmounts(text string) []entity.Amount {
	type span struct{ lo, hi int }
	var taken []span
	overlaps := func(lo, hi int) bool {
		for _, s := range taken {
			if lo < s.hi && s.lo < hi {
				return true
			}
		}
		return false
	}

	seen := make(map[string]struct{})
	var out []entity.Amount
	for _, p := range amountPatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			vLo, vHi := loc[2], loc[3]
			if overlaps(vLo, vHi) {
				continue
			}
			value, ok := parseAmount(text[vLo:vHi])
			if !ok {
				continue
			}
			taken = append(taken, span{vLo, vHi})

			key := string(p.category) + "|" + value.String()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, entity.Amount{
				Value:    value,
				Category: p.category,
				Context:  contextSnippet(text, loc[0], loc[1]),
			})
		}
	}
	return out
}

// parseAmount convertit une écriture française en décimal et applique les
// bornes de plausibilité.
func parseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := amountCleanRe.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	if value.LessThanOrEqual(amountFloor) || value.GreaterThanOrEqual(amountCeiling) {
		return decimal.Zero, false
	}
	return value, true
}

// contextSnippet renvoie l'extrait de texte entourant un montant, sur une
// seule ligne.
func contextSnippet(text string, lo, hi int) string {
	from, to := lo-contextRadius, hi+contextRadius
	if from < 0 {
		from = 0
	}
	if to > len(text) {
		to = len(text)
	}
	snippet := strings.ReplaceAll(text[from:to], "\n", " ")
	return strings.TrimSpace(snippet)
}
