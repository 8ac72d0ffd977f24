package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/pkg/pokeapi"
	"github.com/poketrade/marketplace-api/internal/repository"
)

var (
	ErrUsernameExists = repository.ErrUsernameExists
	ErrUserNotFound   = repository.ErrUserNotFound
	ErrWrongPassword  = errors.New("wrong password")
)

const (
	startingMoney   = 100
	starterPokemon  = 5
	speciesAttempts = 3
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
}

type StarterPokemonRepository interface {
	Create(ctx context.Context, ownerID uint, pokemon domain.Pokemon) (domain.Pokemon, error)
}

type SpeciesProvider interface {
	FetchRandomSpecies(ctx context.Context) (pokeapi.Species, error)
}

type AuthService struct {
	repo        AuthUserRepository
	pokemonRepo StarterPokemonRepository
	species     SpeciesProvider
}

func NewAuthService(repo AuthUserRepository, pokemonRepo StarterPokemonRepository, species SpeciesProvider) *AuthService {
	return &AuthService{
		repo:        repo,
		pokemonRepo: pokemonRepo,
		species:     species,
	}
}

// Signup creates the account with its starting balance and provisions the
// starter collection. Species fetches are retried a few times and fall back
// to a built-in default, so signup always yields a full collection.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)
	user.Money = startingMoney

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	for i := 0; i < starterPokemon; i++ {
		species := s.fetchSpeciesWithFallback(ctx)

		_, err = s.pokemonRepo.Create(ctx, created.ID, domain.Pokemon{
			PokeapiID: species.ID,
			Name:      species.Name,
			Rarity:    pokeapi.RarityFromCaptureRate(species.CaptureRate),
			ImageURL:  species.ImageURL,
			Types:     species.Types,
		})
		if err != nil {
			return domain.User{}, fmt.Errorf("s.pokemonRepo.Create -> %w", err)
		}
	}

	return created, nil
}

func (s *AuthService) fetchSpeciesWithFallback(ctx context.Context) pokeapi.Species {
	for attempt := 0; attempt < speciesAttempts; attempt++ {
		species, err := s.species.FetchRandomSpecies(ctx)
		if err == nil {
			return species
		}

		zap.L().Warn("species fetch failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	return pokeapi.DefaultSpecies()
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}
