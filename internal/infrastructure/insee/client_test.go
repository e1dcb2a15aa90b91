package insee_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stephfff73/verification-antifraude/internal/domain"
	"github.com/Stephfff73/verification-antifraude/internal/infrastructure/insee"
)

const sireneBody = `{
  "etablissement": {
    "siret": "60205235900042",
    "dateCreationEtablissement": "2019-03-01",
    "uniteLegale": {
      "denominationUniteLegale": "ACME BATIMENT",
      "etatAdministratifUniteLegale": "A",
      "activitePrincipaleUniteLegale": "43.99C"
    },
    "adresseEtablissement": {
      "numeroVoieEtablissement": "40",
      "typeVoieEtablissement": "BD",
      "libelleVoieEtablissement": "HAUSSMANN",
      "codePostalEtablissement": "75009",
      "libelleCommuneEtablissement": "PARIS"
    },
    "periodesEtablissement": [
      {"etatAdministratifEtablissement": "A"}
    ]
  }
}`

func TestLookupBusiness_FicheComplete(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/siret/60205235900042", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sireneBody))
	}))
	defer srv.Close()

	c := insee.NewClient(srv.URL, "jeton-test", time.Second)
	rec, err := c.LookupBusiness(context.Background(), "60205235900042")
	require.NoError(t, err)

	assert.Equal(t, "Bearer jeton-test", gotAuth)
	assert.Equal(t, "60205235900042", rec.Siret)
	assert.Equal(t, "ACME BATIMENT", rec.LegalName)
	assert.Equal(t, "75009", rec.PostalCode)
	assert.Equal(t, "43.99C", rec.ActivityCode)
	assert.True(t, rec.Active)
	assert.Equal(t, 2019, rec.RegisteredAt.Year())
}

func TestLookupBusiness_EtablissementFerme(t *testing.T) {
	body := `{"etablissement": {"siret": "73282932000074",
		"uniteLegale": {"etatAdministratifUniteLegale": "A"},
		"periodesEtablissement": [{"etatAdministratifEtablissement": "F"}]}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	rec, err := insee.NewClient(srv.URL, "", time.Second).LookupBusiness(context.Background(), "73282932000074")
	require.NoError(t, err)
	// L'état de la période courante de l'établissement prime sur celui de
	// l'unité légale.
	assert.False(t, rec.Active)
}

func TestLookupBusiness_ErreursTypees(t *testing.T) {
	cases := []struct {
		status int
		target error
	}{
		{http.StatusNotFound, domain.ErrLookupNotFound},
		{http.StatusTooManyRequests, domain.ErrLookupRateLimited},
		{http.StatusInternalServerError, domain.ErrLookupNetwork},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		c := insee.NewClient(srv.URL, "", time.Second)
		_, err := c.LookupBusiness(context.Background(), "60205235900042")
		assert.ErrorIs(t, err, tc.target, "HTTP %d", tc.status)
		srv.Close()
	}
}

func TestLookupBusiness_DelaiDepasse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := insee.NewClient(srv.URL, "", time.Second)
	_, err := c.LookupBusiness(ctx, "60205235900042")
	assert.ErrorIs(t, err, domain.ErrLookupTimeout)
}
