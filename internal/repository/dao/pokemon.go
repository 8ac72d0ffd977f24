package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPokemonNotFound = errors.New("pokemon not found")
	ErrNotOwner        = errors.New("pokemon is not owned by the user")
)

type Pokemon struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID"`

	PokeapiID int    `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	Rarity    int    `gorm:"not null"`
	ImageURL  string
	Types     []string `gorm:"serializer:json"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PokemonDAO struct {
	db *gorm.DB
}

func NewPokemonDAO(db *gorm.DB) *PokemonDAO {
	return &PokemonDAO{
		db: db,
	}
}

func (d *PokemonDAO) Insert(ctx context.Context, pokemon Pokemon) (Pokemon, error) {
	result := d.db.WithContext(ctx).Create(&pokemon)
	if result.Error != nil {
		return Pokemon{}, result.Error
	}

	return pokemon, nil
}

func (d *PokemonDAO) FindByID(ctx context.Context, id uint) (Pokemon, error) {
	var pokemon Pokemon

	result := d.db.WithContext(ctx).Preload("User").First(&pokemon, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Pokemon{}, ErrPokemonNotFound
		}

		return Pokemon{}, result.Error
	}

	return pokemon, nil
}

func (d *PokemonDAO) FindByUserID(ctx context.Context, userID uint) ([]Pokemon, error) {
	var pokemons []Pokemon

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&pokemons)
	if result.Error != nil {
		return nil, result.Error
	}

	return pokemons, nil
}

func (d *PokemonDAO) FindByIDs(ctx context.Context, ids []uint) ([]Pokemon, error) {
	var pokemons []Pokemon

	result := d.db.WithContext(ctx).Preload("User").Where("id IN ?", ids).Find(&pokemons)
	if result.Error != nil {
		return nil, result.Error
	}

	return pokemons, nil
}
