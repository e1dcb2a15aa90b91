package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Stephfff73/verification-antifraude/internal/domain/textutil"
)

func TestNormalize_AccentsEtCasse(t *testing.T) {
	assert.Equal(t, "allee des tilleuls", textutil.Normalize("Allée  des Tilleuls"))
	assert.Equal(t, "remuneration brute", textutil.Normalize("RÉMUNÉRATION   BRUTE"))
}

func TestJaccard_MemeAdresseCasseDifferente(t *testing.T) {
	// Propriété de référence : la même adresse en casse et ponctuation
	// différentes doit avoir une similarité ≥ 0.8.
	sim := textutil.Jaccard("5 rue de la Paix, 75002 Paris", "5 RUE DE LA PAIX 75002 PARIS")
	assert.GreaterOrEqual(t, sim, 0.8,
		"deux graphies de la même adresse doivent être quasi identiques")
}

func TestJaccard_AdressesDisjointes(t *testing.T) {
	sim := textutil.Jaccard("12 avenue Victor Hugo 69006 Lyon", "3 impasse des Lilas 33000 Bordeaux")
	assert.Less(t, sim, 0.2, "des adresses sans rapport doivent être dissemblables")
}

func TestJaccard_ChaineVide(t *testing.T) {
	assert.Equal(t, 0.0, textutil.Jaccard("", "5 rue de la Paix"))
	assert.Equal(t, 0.0, textutil.Jaccard("", ""))
}

func TestTokens_IgnoreLaPonctuation(t *testing.T) {
	toks := textutil.Tokens("10, rue du Bac - 75007 PARIS")
	assert.Equal(t, []string{"10", "rue", "du", "bac", "75007", "paris"}, toks)
}

func TestCountAny_MotsClesAccentues(t *testing.T) {
	text := "Votre rémunération brute mensuelle s'élève à 2 500 euros"
	assert.Equal(t, 2, textutil.CountAny(text, "remuneration", "brut", "net"))
	assert.True(t, textutil.ContainsAny(text, "rémunération"))
	assert.False(t, textutil.ContainsAny(text, "loyer"))
}
