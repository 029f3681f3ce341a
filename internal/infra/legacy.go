package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// LegacyClient talks to the legacy RapiFarma API, which still owns the branch
// catalog. Only the endpoints the back-office needs are wrapped here.
type LegacyClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewLegacyClient(baseURL, token string) *LegacyClient {
	return &LegacyClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchFarmacias retrieves the id→nombre branch map from the legacy API.
// The legacy endpoint answers with one of two shapes depending on its
// version: {"farmacias": {...}} or the flat map itself. ParseFarmacias
// normalizes both at this single boundary so callers never branch on shape.
func (c *LegacyClient) FetchFarmacias(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/farmacias", nil)
	if err != nil {
		return nil, fmt.Errorf("legacy: create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("legacy: API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("legacy: API returned %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("legacy: decode response: %w", err)
	}
	return ParseFarmacias(raw)
}

// InventarioLegado is one stock row as the legacy API reports it. Stock stays
// owned by the POS; the back office only reads it.
type InventarioLegado struct {
	Codigo     string `json:"codigo"`
	Nombre     string `json:"nombre"`
	Existencia int    `json:"existencia"`
	Farmacia   string `json:"farmacia"` // código legado de la sucursal
}

// FetchInventarios retrieves the read-only stock listing from the legacy API.
func (c *LegacyClient) FetchInventarios(ctx context.Context) ([]InventarioLegado, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/inventarios", nil)
	if err != nil {
		return nil, fmt.Errorf("legacy: create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("legacy: API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("legacy: API returned %d", resp.StatusCode)
	}

	var inventarios []InventarioLegado
	if err := json.NewDecoder(resp.Body).Decode(&inventarios); err != nil {
		return nil, fmt.Errorf("legacy: decode response: %w", err)
	}
	return inventarios, nil
}

// ParseFarmacias accepts both historical response shapes for /farmacias.
func ParseFarmacias(raw json.RawMessage) (map[string]string, error) {
	// Newer shape: {"farmacias": {"001": "RapiFarma Centro", ...}}
	var envuelto struct {
		Farmacias map[string]string `json:"farmacias"`
	}
	if err := json.Unmarshal(raw, &envuelto); err == nil && envuelto.Farmacias != nil {
		return envuelto.Farmacias, nil
	}

	// Older shape: the flat map itself
	var plano map[string]string
	if err := json.Unmarshal(raw, &plano); err == nil {
		return plano, nil
	}
	return nil, fmt.Errorf("legacy: unrecognized /farmacias response shape")
}
