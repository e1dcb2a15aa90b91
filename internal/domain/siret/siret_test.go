package siret_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Stephfff73/verification-antifraude/internal/domain/siret"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vecteurs exacts. 73282932000074 est le SIRET d'exemple classique de la
// documentation INSEE ; 60205235900042 est un établissement réel. Si
// quelqu'un modifie par inadvertance l'algorithme de Luhn ou les contrôles
// structurels, ces tests échouent immédiatement.
// ──────────────────────────────────────────────────────────────────────────────

func TestValidSiret_VecteursValides(t *testing.T) {
	for _, s := range []string{"73282932000074", "60205235900042", "44306184100013"} {
		assert.True(t, siret.ValidSiret(s), "le SIRET %s doit être valide", s)
	}
}

func TestValidSiret_CleLuhnIncorrecte(t *testing.T) {
	assert.False(t, siret.ValidSiret("73282932000075"),
		"un SIRET avec une clé de Luhn incorrecte doit être rejeté")
}

func TestValidSiret_LongueurIncorrecte(t *testing.T) {
	assert.False(t, siret.ValidSiret("732829320"), "9 chiffres ne font pas un SIRET")
	assert.False(t, siret.ValidSiret(""), "chaîne vide rejetée")
	assert.False(t, siret.ValidSiret("7328293200007411"), "16 chiffres rejetés")
}

func TestValidSiret_SequencesDegenerees(t *testing.T) {
	assert.False(t, siret.ValidSiret("11111111111111"), "chiffre répété rejeté")
	assert.False(t, siret.ValidSiret("12345678901234"), "séquence croissante rejetée")
	assert.False(t, siret.ValidSiret("98765432109876"), "séquence décroissante rejetée")
}

func TestValidSiret_PremierChiffreNul(t *testing.T) {
	assert.False(t, siret.ValidSiret("03282932000074"),
		"un SIRET commençant par zéro doit être rejeté")
}

func TestValidSiren_Vecteurs(t *testing.T) {
	assert.True(t, siret.ValidSiren("732829320"))
	assert.True(t, siret.ValidSiren("602052359"))
	assert.False(t, siret.ValidSiren("732829321"), "clé incorrecte")
	assert.False(t, siret.ValidSiren("73282932000074"), "un SIRET n'est pas un SIREN")
}

func TestPlausibleSiret_SansCleLuhn(t *testing.T) {
	// Plausible ne vérifie pas la clé : 73282932000075 passe la structure.
	assert.True(t, siret.PlausibleSiret("73282932000075"))
	assert.False(t, siret.PlausibleSiret("11111111111111"))
	assert.False(t, siret.PlausibleSiret("0328293200007"))
}

func TestSirenOf(t *testing.T) {
	assert.Equal(t, "602052359", siret.SirenOf("60205235900042"))
	assert.Equal(t, "", siret.SirenOf("12345"))
}

// ── Codes postaux ─────────────────────────────────────────────────────────────

func TestValidPostalCode_Vecteurs(t *testing.T) {
	accepted := []string{"75001", "01000", "95880", "97400", "98000", "20000"}
	for _, cp := range accepted {
		assert.True(t, siret.ValidPostalCode(cp), "le code postal %s doit être accepté", cp)
	}

	rejected := []string{"00000", "96000", "99999", "7500", "750011", "7500A", ""}
	for _, cp := range rejected {
		assert.False(t, siret.ValidPostalCode(cp), "le code postal %s doit être rejeté", cp)
	}
}
