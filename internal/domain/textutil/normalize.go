// Package textutil fournit les primitives de normalisation de texte
// partagées par l'extracteur et les règles d'alerte : suppression des
// accents, mise en forme canonique et similarité de Jaccard sur jetons.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents décompose en NFD puis retire les marques diacritiques.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var multiSpaceRe = regexp.MustCompile(`\s+`)

// RemoveAccents renvoie la chaîne sans diacritiques ("allée" → "allee").
func RemoveAccents(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize met une chaîne en forme canonique pour comparaison :
// sans accents, en minuscules, espaces multiples réduits.
func Normalize(s string) string {
	s = RemoveAccents(s)
	s = strings.ToLower(s)
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokens découpe une chaîne normalisée en jetons alphanumériques.
func Tokens(s string) []string {
	norm := Normalize(s)
	fields := strings.FieldsFunc(norm, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var out []string
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// TokenSet renvoie l'ensemble des jetons distincts.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(s) {
		set[tok] = struct{}{}
	}
	return set
}

// Jaccard calcule la similarité de Jaccard entre les ensembles de jetons
// normalisés de deux chaînes. Deux chaînes sans jeton valent 0.
func Jaccard(a, b string) float64 {
	sa, sb := TokenSet(a), TokenSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := 0
	for tok := range sa {
		if _, ok := sb[tok]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}

// ContainsAny indique si le texte normalisé contient au moins un des
// mots-clés (eux-mêmes comparés sans accents ni casse).
func ContainsAny(text string, keywords ...string) bool {
	return CountAny(text, keywords...) > 0
}

// CountAny compte combien de mots-clés distincts apparaissent dans le texte.
func CountAny(text string, keywords ...string) int {
	norm := Normalize(text)
	n := 0
	for _, kw := range keywords {
		if strings.Contains(norm, Normalize(kw)) {
			n++
		}
	}
	return n
}
