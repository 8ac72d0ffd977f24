package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

// maxSpeciesID caps random draws to species that exist in both the
// /pokemon and /pokemon-species endpoints.
const maxSpeciesID = 898

// Species is one fetched Pokémon species with everything needed to mint a
// collection unit.
type Species struct {
	ID          int
	Name        string
	ImageURL    string
	Types       []string
	CaptureRate int
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type pokemonResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

type speciesResponse struct {
	CaptureRate int `json:"capture_rate"`
}

// FetchSpecies loads one species by ID, combining the /pokemon and
// /pokemon-species endpoints. The official artwork sprite is preferred,
// falling back to the plain front sprite.
func (c *Client) FetchSpecies(ctx context.Context, id int) (Species, error) {
	var pokemon pokemonResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%v/pokemon/%v", c.baseURL, id), &pokemon); err != nil {
		return Species{}, fmt.Errorf("c.getJSON pokemon -> %w", err)
	}

	var species speciesResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%v/pokemon-species/%v", c.baseURL, id), &species); err != nil {
		return Species{}, fmt.Errorf("c.getJSON pokemon-species -> %w", err)
	}

	imageURL := pokemon.Sprites.Other.OfficialArtwork.FrontDefault
	if imageURL == "" {
		imageURL = pokemon.Sprites.FrontDefault
	}

	types := make([]string, 0, len(pokemon.Types))
	for _, t := range pokemon.Types {
		types = append(types, t.Type.Name)
	}

	return Species{
		ID:          pokemon.ID,
		Name:        pokemon.Name,
		ImageURL:    imageURL,
		Types:       types,
		CaptureRate: species.CaptureRate,
	}, nil
}

// FetchRandomSpecies draws a uniformly random species.
func (c *Client) FetchRandomSpecies(ctx context.Context) (Species, error) {
	return c.FetchSpecies(ctx, rand.Intn(maxSpeciesID)+1)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("c.httpClient.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %v from %v", resp.StatusCode, url)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("json.Decode -> %w", err)
	}

	return nil
}
