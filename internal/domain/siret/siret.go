// Package siret implémente les règles de validité des identifiants
// d'entreprise français : SIRET (14 chiffres, établissement) et SIREN
// (9 chiffres, unité légale), tous deux contrôlés par clé de Luhn, ainsi
// que la règle de validité des codes postaux.
package siret

// luhnValid applique l'algorithme de Luhn sur une chaîne de chiffres.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// allDigits indique si la chaîne est composée uniquement de chiffres.
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Degenerate détecte les suites de chiffres dégénérées : répétition d'un
// même chiffre ou séquence strictement monotone (12345678901234,
// 98765432109876). Ces suites apparaissent dans les documents de test et
// les gabarits, jamais dans un identifiant réel.
func Degenerate(digits string) bool {
	if len(digits) < 2 {
		return true
	}
	same, asc, desc := true, true, true
	for i := 1; i < len(digits); i++ {
		prev, cur := int(digits[i-1]-'0'), int(digits[i]-'0')
		if cur != prev {
			same = false
		}
		if cur != (prev+1)%10 {
			asc = false
		}
		if cur != (prev+9)%10 {
			desc = false
		}
	}
	return same || asc || desc
}

// ValidSiret contrôle un SIRET : 14 chiffres, premier chiffre non nul,
// non dégénéré, clé de Luhn correcte.
func ValidSiret(s string) bool {
	if len(s) != 14 || !allDigits(s) || s[0] == '0' {
		return false
	}
	if Degenerate(s) {
		return false
	}
	return luhnValid(s)
}

// ValidSiren contrôle un SIREN : 9 chiffres, premier chiffre non nul,
// non dégénéré, clé de Luhn correcte.
func ValidSiren(s string) bool {
	if len(s) != 9 || !allDigits(s) || s[0] == '0' {
		return false
	}
	if Degenerate(s) {
		return false
	}
	return luhnValid(s)
}

// PlausibleSiret applique les contrôles structurels hors clé de Luhn :
// longueur, premier chiffre non nul, non dégénéré. Utilisé par le mode
// d'extraction tolérant où la proximité d'un mot-clé remplace la clé.
func PlausibleSiret(s string) bool {
	return len(s) == 14 && allDigits(s) && s[0] != '0' && !Degenerate(s)
}

// SirenOf extrait les 9 premiers chiffres (unité légale) d'un SIRET.
func SirenOf(siret string) string {
	if len(siret) < 9 {
		return ""
	}
	return siret[:9]
}

// ValidPostalCode contrôle un code postal français : 5 chiffres, dont les
// deux premiers forment un département attribué (01 à 95, outre-mer 97-98).
// 00, 96 et 99 ne sont attribués à aucun département.
func ValidPostalCode(s string) bool {
	if len(s) != 5 || !allDigits(s) {
		return false
	}
	dept := int(s[0]-'0')*10 + int(s[1]-'0')
	return (dept >= 1 && dept <= 95) || dept == 97 || dept == 98
}
