// Package insee interroge l'API Sirene de l'INSEE pour corroborer les
// SIRET extraits. Utilise uniquement la librairie standard (net/http)
// pour ne pas ajouter de dépendances externes.
package insee

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Stephfff73/verification-antifraude/internal/application/ports"
	"github.com/Stephfff73/verification-antifraude/internal/domain"
	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
)

// Vérification à la compilation que Client implémente BusinessRegistry.
var _ ports.BusinessRegistry = (*Client)(nil)

const defaultBaseURL = "https://api.insee.fr/entreprises/sirene/V3.11"

// maxBodySize borne la lecture de la réponse.
const maxBodySize = 256 * 1024

// Client appelle l'API Sirene avec un jeton Bearer.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient construit le client. baseURL vide retombe sur l'API publique.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout, // filet de sécurité; l'appelant pose aussi WithTimeout
		},
	}
}

// ── Structures de la réponse Sirene ───────────────────────────────────────────

type sireneResponse struct {
	Etablissement struct {
		Siret         string `json:"siret"`
		DateCreation  string `json:"dateCreationEtablissement"`
		UniteLegale   struct {
			Denomination      string `json:"denominationUniteLegale"`
			EtatAdministratif string `json:"etatAdministratifUniteLegale"`
			Activite          string `json:"activitePrincipaleUniteLegale"`
		} `json:"uniteLegale"`
		Adresse struct {
			NumeroVoie     string `json:"numeroVoieEtablissement"`
			TypeVoie       string `json:"typeVoieEtablissement"`
			LibelleVoie    string `json:"libelleVoieEtablissement"`
			CodePostal     string `json:"codePostalEtablissement"`
			LibelleCommune string `json:"libelleCommuneEtablissement"`
		} `json:"adresseEtablissement"`
		PeriodesEtablissement []struct {
			EtatAdministratif string `json:"etatAdministratifEtablissement"`
		} `json:"periodesEtablissement"`
	} `json:"etablissement"`
}

// LookupBusiness interroge le registre par SIRET. Les échecs sont typés
// via les erreurs domain.ErrLookup*.
func (c *Client) LookupBusiness(ctx context.Context, siret string) (*entity.BusinessRecord, error) {
	url := fmt.Sprintf("%s/siret/%s", c.baseURL, siret)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("sirene: créer la requête: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("sirene: %w", domain.ErrLookupTimeout)
		}
		return nil, fmt.Errorf("sirene: %w: %v", domain.ErrLookupNetwork, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("sirene: siret %s: %w", siret, domain.ErrLookupNotFound)
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("sirene: %w", domain.ErrLookupRateLimited)
	default:
		return nil, fmt.Errorf("sirene: HTTP %d: %w", resp.StatusCode, domain.ErrLookupNetwork)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("sirene: lire la réponse: %w", domain.ErrLookupNetwork)
	}

	var payload sireneResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("sirene: réponse illisible: %w", err)
	}
	return toRecord(payload), nil
}

// toRecord convertit la réponse Sirene en fiche établissement.
func toRecord(payload sireneResponse) *entity.BusinessRecord {
	et := payload.Etablissement

	// L'état "A" (actif) se lit sur la période courante de l'établissement,
	// à défaut sur l'unité légale.
	active := et.UniteLegale.EtatAdministratif == "A"
	if len(et.PeriodesEtablissement) > 0 {
		active = et.PeriodesEtablissement[0].EtatAdministratif == "A"
	}

	var registered time.Time
	if et.DateCreation != "" {
		if t, err := time.Parse("2006-01-02", et.DateCreation); err == nil {
			registered = t
		}
	}

	addr := et.Adresse
	full := addr.NumeroVoie + " " + addr.TypeVoie + " " + addr.LibelleVoie +
		" " + addr.CodePostal + " " + addr.LibelleCommune

	return &entity.BusinessRecord{
		Siret:        et.Siret,
		LegalName:    et.UniteLegale.Denomination,
		Address:      full,
		PostalCode:   addr.CodePostal,
		Active:       active,
		RegisteredAt: registered,
		ActivityCode: et.UniteLegale.Activite,
	}
}
