package extraction_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stephfff73/verification-antifraude/internal/application/extraction"
	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
)

func newStrict() *extraction.Extractor  { return extraction.NewExtractor(extraction.StrictnessStrict) }
func newLenient() *extraction.Extractor { return extraction.NewExtractor(extraction.StrictnessLenient) }

// ── SIRET / SIREN ─────────────────────────────────────────────────────────────

func TestExtract_SiretEtiquetteCollee(t *testing.T) {
	// Propriété de référence : étiquette directement adjacente, sans séparateur.
	bundle := newStrict().Extract(entity.DocFichePaie, "Employeur SIRET60205235900042 Paris")
	assert.Equal(t, []string{"60205235900042"}, bundle.Sirets,
		"l'étiquette collée doit produire exactement ce SIRET")
}

func TestExtract_SiretAvecSeparateurs(t *testing.T) {
	bundle := newStrict().Extract(entity.DocFichePaie, "N° SIRET : 602 052 359 00042")
	assert.Equal(t, []string{"60205235900042"}, bundle.Sirets)
}

func TestExtract_SiretNu_ModeStrict(t *testing.T) {
	// Clé de Luhn correcte : accepté même sans étiquette.
	bundle := newStrict().Extract(entity.DocContratTravail, "Immatriculation 73282932000074 au registre")
	assert.Equal(t, []string{"73282932000074"}, bundle.Sirets)

	// Clé incorrecte : rejeté en mode strict malgré le mot-clé voisin.
	bundle = newStrict().Extract(entity.DocContratTravail, "entreprise immatriculée 73282932000075")
	assert.Empty(t, bundle.Sirets, "une suite nue à clé incorrecte doit être rejetée en strict")
}

func TestExtract_SiretNu_ModeTolerant(t *testing.T) {
	// Même suite à clé incorrecte : acceptée en tolérant grâce au mot-clé voisin.
	bundle := newLenient().Extract(entity.DocContratTravail, "entreprise immatriculée 73282932000075")
	assert.Equal(t, []string{"73282932000075"}, bundle.Sirets)

	// Sans aucun mot-clé à proximité, la suite reste rejetée.
	bundle = newLenient().Extract(entity.DocContratTravail, "référence interne 73282932000075 dossier")
	assert.Empty(t, bundle.Sirets)
}

func TestExtract_SiretSequenceDegenereeRejetee(t *testing.T) {
	bundle := newLenient().Extract(entity.DocFichePaie, "SIRET : 11111111111111")
	assert.Empty(t, bundle.Sirets, "une suite de chiffres répétés n'est jamais un SIRET")
}

func TestExtract_SiretDeduplique(t *testing.T) {
	text := "SIRET 60205235900042 mentionné deux fois : SIRET60205235900042"
	bundle := newStrict().Extract(entity.DocFichePaie, text)
	assert.Equal(t, []string{"60205235900042"}, bundle.Sirets)
}

func TestExtract_SirenPrefixeDeSiretExclu(t *testing.T) {
	// Propriété de référence : aucun SIREN préfixe d'un SIRET confirmé ne
	// doit figurer dans le même lot.
	text := "SIRET : 60205235900042\nSIREN : 602052359\nSIREN : 732829320"
	bundle := newStrict().Extract(entity.DocContratTravail, text)

	require.Equal(t, []string{"60205235900042"}, bundle.Sirets)
	assert.NotContains(t, bundle.Sirens, "602052359",
		"le SIREN préfixe du SIRET confirmé doit être exclu")
	assert.Contains(t, bundle.Sirens, "732829320",
		"un SIREN indépendant doit rester présent")
}

// ── Adresses ──────────────────────────────────────────────────────────────────

func TestExtract_AdresseSurUneLigne(t *testing.T) {
	text := "Le locataire demeure au 5 rue de la Paix, 75002 Paris depuis 2020."
	bundle := newStrict().Extract(entity.DocQuittanceLoyer, text)

	require.Len(t, bundle.Addresses, 1)
	a := bundle.Addresses[0]
	assert.Equal(t, "5", a.Number)
	assert.Equal(t, "rue", a.StreetType)
	assert.Equal(t, "de la Paix", a.StreetName)
	assert.Equal(t, "75002", a.PostalCode)
	assert.Equal(t, "Paris", a.City)
	assert.Equal(t, entity.AddressHome, a.Role, "une quittance porte l'adresse du domicile")
	assert.InDelta(t, 0.9, a.Confidence, 1e-9)
}

func TestExtract_AdresseMultiLigne(t *testing.T) {
	text := "Société ACME\n12 avenue Victor Hugo\n69006 Lyon\n"
	bundle := newStrict().Extract(entity.DocContratTravail, text)

	require.Len(t, bundle.Addresses, 1)
	a := bundle.Addresses[0]
	assert.Equal(t, "12", a.Number)
	assert.Equal(t, "avenue", a.StreetType)
	assert.Equal(t, "Victor Hugo", a.StreetName)
	assert.Equal(t, "69006", a.PostalCode)
	assert.Equal(t, "Lyon", a.City)
	assert.Equal(t, entity.AddressWork, a.Role, "un contrat de travail porte l'adresse employeur")
	assert.InDelta(t, 0.7, a.Confidence, 1e-9)
}

func TestExtract_AdresseCodePostalInvalideRejetee(t *testing.T) {
	text := "bureau situé 3 rue des Lilas, 96000 Nulleville"
	bundle := newStrict().Extract(entity.DocQuittanceLoyer, text)
	assert.Empty(t, bundle.Addresses, "le département 96 n'existe pas")
}

func TestExtract_AdresseNomDeVoieNettoye(t *testing.T) {
	// Le jeton d'étiquette et la longue suite de chiffres en fin de nom de
	// voie sont des résidus de cartouche, pas le nom de la voie.
	text := "8 rue du Commerce SIRET 75011 Paris"
	bundle := newStrict().Extract(entity.DocQuittanceLoyer, text)

	require.Len(t, bundle.Addresses, 1)
	assert.Equal(t, "du Commerce", bundle.Addresses[0].StreetName)
}

func TestExtract_AdresseDedupliqueeEntreStrategies(t *testing.T) {
	// La même adresse trouvée en ligne et en bloc ne doit compter qu'une fois.
	text := "12 avenue Victor Hugo, 69006 Lyon\n12 avenue Victor Hugo\n69006 Lyon"
	bundle := newStrict().Extract(entity.DocQuittanceLoyer, text)
	assert.Len(t, bundle.Addresses, 1)
}

// ── Emails et téléphones ──────────────────────────────────────────────────────

func TestExtract_EmailClassement(t *testing.T) {
	text := "Contact : jean.dupont@gmail.com ou j.dupont@acme-batiment.fr"
	bundle := newStrict().Extract(entity.DocContratTravail, text)

	require.Len(t, bundle.Emails, 2)
	assert.Equal(t, "jean.dupont@gmail.com", bundle.Emails[0].Address)
	assert.False(t, bundle.Emails[0].Professional, "gmail.com est une messagerie grand public")
	assert.Equal(t, "acme-batiment.fr", bundle.Emails[1].Domain)
	assert.True(t, bundle.Emails[1].Professional)
}

func TestExtract_TelephoneNormalisation(t *testing.T) {
	text := "Tél : +33 6 12 34 56 78 / standard 01.42.68.53.00"
	bundle := newStrict().Extract(entity.DocContratTravail, text)

	require.Len(t, bundle.Phones, 2)
	assert.Equal(t, "0612345678", bundle.Phones[0].Number)
	assert.True(t, bundle.Phones[0].Mobile)
	assert.Equal(t, "0142685300", bundle.Phones[1].Number)
	assert.False(t, bundle.Phones[1].Mobile)
}

func TestExtract_TelephoneDedupliqueSousDeuxFormes(t *testing.T) {
	text := "Joignable au 06 12 34 56 78 ou +33 6 12 34 56 78"
	bundle := newStrict().Extract(entity.DocContratTravail, text)
	assert.Len(t, bundle.Phones, 1, "deux écritures du même numéro ne comptent qu'une fois")
}

// ── Montants ──────────────────────────────────────────────────────────────────

func TestExtract_MontantsCategorises(t *testing.T) {
	text := "Salaire net à payer : 2 134,56 €\nLoyer mensuel : 850 €\nRevenu fiscal de référence : 25 600"
	bundle := newStrict().Extract(entity.DocFichePaie, text)

	salaries := bundle.AmountsByCategory(entity.AmountSalary)
	require.Len(t, salaries, 1)
	assert.True(t, salaries[0].Value.Equal(decimal.RequireFromString("2134.56")),
		"le salaire doit être parsé en écriture française")

	rents := bundle.AmountsByCategory(entity.AmountRent)
	require.Len(t, rents, 1)
	assert.True(t, rents[0].Value.Equal(decimal.NewFromInt(850)))

	incomes := bundle.AmountsByCategory(entity.AmountIncome)
	require.Len(t, incomes, 1)
	assert.True(t, incomes[0].Value.Equal(decimal.NewFromInt(25600)))
}

func TestExtract_MontantHorsBornesRejete(t *testing.T) {
	bundle := newStrict().Extract(entity.DocFichePaie, "prix de cession : 1 500 000 €")
	assert.Empty(t, bundle.Amounts, "un montant ≥ 1 000 000 est hors bornes")

	bundle = newStrict().Extract(entity.DocFichePaie, "montant dû : 0 €")
	assert.Empty(t, bundle.Amounts, "zéro n'est pas un montant plausible")
}

func TestExtract_MontantGeneriqueNonRecaptureParContexte(t *testing.T) {
	text := "Salaire brut : 2 500,00 € et une prime de 300 €"
	bundle := newStrict().Extract(entity.DocFichePaie, text)

	require.Len(t, bundle.Amounts, 2)
	assert.Equal(t, entity.AmountSalary, bundle.Amounts[0].Category)
	assert.Equal(t, entity.AmountGeneric, bundle.Amounts[1].Category)
	assert.True(t, bundle.Amounts[1].Value.Equal(decimal.NewFromInt(300)))
}

func TestExtract_ContexteConserve(t *testing.T) {
	bundle := newStrict().Extract(entity.DocQuittanceLoyer, "Loyer : 850 € pour le mois de mars")
	require.NotEmpty(t, bundle.Amounts)
	assert.Contains(t, bundle.Amounts[0].Context, "Loyer")
}

// ── Dates, noms, texte vide ───────────────────────────────────────────────────

func TestExtract_Dates(t *testing.T) {
	text := "Fait le 12/03/2024, pour la période de janvier 2024"
	bundle := newStrict().Extract(entity.DocQuittanceLoyer, text)
	assert.Contains(t, bundle.Dates, "12/03/2024")
	assert.Contains(t, bundle.Dates, "janvier 2024")
}

func TestExtract_NomsPropres(t *testing.T) {
	text := "Entre M. Jean Dupont et Madame Claire Martin, il est convenu..."
	bundle := newStrict().Extract(entity.DocContratTravail, text)
	assert.Contains(t, bundle.Names, "Jean Dupont")
	assert.Contains(t, bundle.Names, "Claire Martin")
}

func TestExtract_TexteVideProduitLotVide(t *testing.T) {
	bundle := newStrict().Extract(entity.DocFichePaie, "")
	assert.Empty(t, bundle.Sirets)
	assert.Empty(t, bundle.Sirens)
	assert.Empty(t, bundle.Addresses)
	assert.Empty(t, bundle.Emails)
	assert.Empty(t, bundle.Phones)
	assert.Empty(t, bundle.Amounts)

	bundle = newStrict().Extract(entity.DocFichePaie, "   \n  ")
	assert.Empty(t, bundle.Amounts)
}
