// Package ban interroge la Base Adresse Nationale (api-adresse.data.gouv.fr)
// pour normaliser et géocoder les adresses extraites. API publique sans
// authentification, format GeoJSON.
package ban

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Stephfff73/verification-antifraude/internal/application/ports"
	"github.com/Stephfff73/verification-antifraude/internal/domain"
	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
)

// Vérification à la compilation que Client implémente AddressNormalizer.
var _ ports.AddressNormalizer = (*Client)(nil)

const defaultBaseURL = "https://api-adresse.data.gouv.fr"

const maxBodySize = 256 * 1024

// Client appelle l'endpoint /search de la BAN.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construit le client. baseURL vide retombe sur l'API publique.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Structures de la réponse GeoJSON ──────────────────────────────────────────

type searchResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [longitude, latitude]
		} `json:"geometry"`
		Properties struct {
			Label    string  `json:"label"`
			Score    float64 `json:"score"`
			City     string  `json:"city"`
			Postcode string  `json:"postcode"`
		} `json:"properties"`
	} `json:"features"`
}

// NormalizeAddress soumet l'adresse brute et renvoie la meilleure
// correspondance géocodée.
func (c *Client) NormalizeAddress(ctx context.Context, raw string) (*entity.NormalizedAddress, error) {
	endpoint := fmt.Sprintf("%s/search/?q=%s&limit=1", c.baseURL, url.QueryEscape(raw))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ban: créer la requête: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ban: %w", domain.ErrLookupTimeout)
		}
		return nil, fmt.Errorf("ban: %w: %v", domain.ErrLookupNetwork, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("ban: %w", domain.ErrLookupRateLimited)
	default:
		return nil, fmt.Errorf("ban: HTTP %d: %w", resp.StatusCode, domain.ErrLookupNetwork)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("ban: lire la réponse: %w", domain.ErrLookupNetwork)
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("ban: réponse illisible: %w", err)
	}
	if len(payload.Features) == 0 {
		return nil, fmt.Errorf("ban: %q: %w", raw, domain.ErrLookupNotFound)
	}

	f := payload.Features[0]
	norm := &entity.NormalizedAddress{
		Label:      f.Properties.Label,
		Confidence: f.Properties.Score,
		City:       f.Properties.City,
		PostalCode: f.Properties.Postcode,
	}
	if len(f.Geometry.Coordinates) == 2 {
		norm.Longitude = f.Geometry.Coordinates[0]
		norm.Latitude = f.Geometry.Coordinates[1]
	}
	return norm, nil
}
