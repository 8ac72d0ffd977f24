package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/pkg/pokeapi"
	"github.com/poketrade/marketplace-api/internal/repository"
)

type fakeUserRepo struct {
	users  map[string]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := r.users[user.Username]; ok {
		return domain.User{}, repository.ErrUsernameExists
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.Username] = user

	return user, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

type fakePokemonRepo struct {
	created []domain.Pokemon
}

func (r *fakePokemonRepo) Create(_ context.Context, ownerID uint, pokemon domain.Pokemon) (domain.Pokemon, error) {
	pokemon.ID = uint(len(r.created) + 1)
	pokemon.Owner = domain.SimpleUser{ID: ownerID}
	r.created = append(r.created, pokemon)

	return pokemon, nil
}

type fakeSpeciesProvider struct {
	species pokeapi.Species
	err     error
	calls   int
}

func (p *fakeSpeciesProvider) FetchRandomSpecies(context.Context) (pokeapi.Species, error) {
	p.calls++
	if p.err != nil {
		return pokeapi.Species{}, p.err
	}

	return p.species, nil
}

func TestAuthService_Signup(t *testing.T) {
	users := newFakeUserRepo()
	collection := &fakePokemonRepo{}
	provider := &fakeSpeciesProvider{
		species: pokeapi.Species{ID: 25, Name: "pikachu", CaptureRate: 190, Types: []string{"electric"}},
	}
	svc := NewAuthService(users, collection, provider)

	created, err := svc.Signup(context.Background(), domain.User{
		Username: "ash",
		Email:    "ash@example.com",
		Password: "pikachu123",
	})
	require.NoError(t, err)

	assert.Equal(t, 100, created.Money)
	assert.NotEqual(t, "pikachu123", created.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("pikachu123")))

	require.Len(t, collection.created, 5)
	for _, pokemon := range collection.created {
		assert.Equal(t, created.ID, pokemon.Owner.ID)
		assert.Equal(t, "pikachu", pokemon.Name)
		assert.Equal(t, 1, pokemon.Rarity)
	}
}

func TestAuthService_Signup_SpeciesFallback(t *testing.T) {
	users := newFakeUserRepo()
	collection := &fakePokemonRepo{}
	provider := &fakeSpeciesProvider{err: errors.New("pokeapi unreachable")}
	svc := NewAuthService(users, collection, provider)

	_, err := svc.Signup(context.Background(), domain.User{
		Username: "misty",
		Email:    "misty@example.com",
		Password: "staryu1234",
	})
	require.NoError(t, err)

	// Three attempts per starter before falling back to the default.
	assert.Equal(t, 15, provider.calls)
	require.Len(t, collection.created, 5)
	for _, pokemon := range collection.created {
		assert.Equal(t, "magikarp", pokemon.Name)
		assert.Equal(t, 1, pokemon.Rarity)
	}
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	users := newFakeUserRepo()
	collection := &fakePokemonRepo{}
	provider := &fakeSpeciesProvider{species: pokeapi.DefaultSpecies()}
	svc := NewAuthService(users, collection, provider)

	_, err := svc.Signup(context.Background(), domain.User{Username: "ash", Password: "pikachu123"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Username: "ash", Password: "pikachu123"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestAuthService_Login(t *testing.T) {
	users := newFakeUserRepo()
	provider := &fakeSpeciesProvider{species: pokeapi.DefaultSpecies()}
	svc := NewAuthService(users, &fakePokemonRepo{}, provider)

	_, err := svc.Signup(context.Background(), domain.User{Username: "ash", Password: "pikachu123"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "ash", "pikachu123")
		require.NoError(t, err)
		assert.Equal(t, "ash", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ash", "raichu123")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "giovanni", "pikachu123")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
