package pokeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchSpecies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon/25":
			fmt.Fprint(w, `{
				"id": 25,
				"name": "pikachu",
				"sprites": {
					"front_default": "https://img.example/front/25.png",
					"other": {
						"official-artwork": {
							"front_default": "https://img.example/art/25.png"
						}
					}
				},
				"types": [
					{"type": {"name": "electric"}}
				]
			}`)
		case "/pokemon-species/25":
			fmt.Fprint(w, `{"capture_rate": 190}`)
		case "/pokemon/129":
			fmt.Fprint(w, `{
				"id": 129,
				"name": "magikarp",
				"sprites": {
					"front_default": "https://img.example/front/129.png",
					"other": {"official-artwork": {"front_default": ""}}
				},
				"types": [
					{"type": {"name": "water"}}
				]
			}`)
		case "/pokemon-species/129":
			fmt.Fprint(w, `{"capture_rate": 255}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	t.Run("combines both endpoints", func(t *testing.T) {
		species, err := client.FetchSpecies(context.Background(), 25)
		require.NoError(t, err)
		assert.Equal(t, 25, species.ID)
		assert.Equal(t, "pikachu", species.Name)
		assert.Equal(t, "https://img.example/art/25.png", species.ImageURL)
		assert.Equal(t, []string{"electric"}, species.Types)
		assert.Equal(t, 190, species.CaptureRate)
	})

	t.Run("falls back to the front sprite", func(t *testing.T) {
		species, err := client.FetchSpecies(context.Background(), 129)
		require.NoError(t, err)
		assert.Equal(t, "https://img.example/front/129.png", species.ImageURL)
	})

	t.Run("surfaces upstream errors", func(t *testing.T) {
		_, err := client.FetchSpecies(context.Background(), 9999)
		assert.Error(t, err)
	})
}

func TestRarityFromCaptureRate(t *testing.T) {
	tests := []struct {
		captureRate int
		want        int
	}{
		{3, 5},
		{10, 5},
		{11, 4},
		{30, 4},
		{31, 3},
		{70, 3},
		{71, 2},
		{150, 2},
		{151, 1},
		{255, 1},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("capture rate %v", tc.captureRate), func(t *testing.T) {
			assert.Equal(t, tc.want, RarityFromCaptureRate(tc.captureRate))
		})
	}
}

func TestDefaultSpecies(t *testing.T) {
	species := DefaultSpecies()
	assert.Equal(t, 129, species.ID)
	assert.Equal(t, "magikarp", species.Name)
	assert.NotEmpty(t, species.ImageURL)
	assert.Equal(t, []string{"water"}, species.Types)
}
