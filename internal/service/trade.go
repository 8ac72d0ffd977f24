package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/repository"
)

var (
	ErrTradeNotFound   = repository.ErrTradeNotFound
	ErrAlreadyPending  = repository.ErrAlreadyPending
	ErrAlreadyResolved = repository.ErrAlreadyResolved
	ErrNotAuthorized   = repository.ErrNotAuthorized
	ErrInvalidAction   = errors.New("action must be accept or decline")
)

type TradeRepository interface {
	CreateRequest(ctx context.Context, senderID, senderPokemonID, receiverID, receiverPokemonID uint) (domain.TradeRequest, error)
	FindByID(ctx context.Context, id uint) (domain.TradeRequest, error)
	FindIncoming(ctx context.Context, receiverID uint) ([]domain.TradeRequest, error)
	FindIncomingForPokemon(ctx context.Context, pokemonID uint) ([]domain.TradeRequest, error)
	Accept(ctx context.Context, requestID, receiverID uint) error
	Decline(ctx context.Context, requestID, receiverID uint) error
	FindHistoryByUserID(ctx context.Context, userID uint) ([]domain.TradeHistory, error)
}

type TradePokemonRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Pokemon, error)
}

type TradeService struct {
	repo        TradeRepository
	pokemonRepo TradePokemonRepository
}

func NewTradeService(repo TradeRepository, pokemonRepo TradePokemonRepository) *TradeService {
	return &TradeService{
		repo:        repo,
		pokemonRepo: pokemonRepo,
	}
}

// CreateRequest proposes a swap. The receiver is derived from the requested
// Pokémon's current owner.
func (s *TradeService) CreateRequest(ctx context.Context, senderID, senderPokemonID, receiverPokemonID uint) (domain.TradeRequest, error) {
	target, err := s.pokemonRepo.FindByID(ctx, receiverPokemonID)
	if err != nil {
		return domain.TradeRequest{}, fmt.Errorf("s.pokemonRepo.FindByID -> %w", err)
	}

	if target.Owner.ID == senderID {
		return domain.TradeRequest{}, ErrSelfTrade
	}

	created, err := s.repo.CreateRequest(ctx, senderID, senderPokemonID, target.Owner.ID, receiverPokemonID)
	if err != nil {
		return domain.TradeRequest{}, fmt.Errorf("s.repo.CreateRequest -> %w", err)
	}

	return created, nil
}

func (s *TradeService) GetRequest(ctx context.Context, id uint) (domain.TradeRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.TradeRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return request, nil
}

func (s *TradeService) ListIncoming(ctx context.Context, receiverID uint) ([]domain.TradeRequest, error) {
	requests, err := s.repo.FindIncoming(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindIncoming -> %w", err)
	}

	return requests, nil
}

func (s *TradeService) ListIncomingForPokemon(ctx context.Context, pokemonID uint) ([]domain.TradeRequest, error) {
	requests, err := s.repo.FindIncomingForPokemon(ctx, pokemonID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindIncomingForPokemon -> %w", err)
	}

	return requests, nil
}

// Respond accepts or declines a pending request on behalf of its receiver.
func (s *TradeService) Respond(ctx context.Context, receiverID, requestID uint, action domain.TradeAction) error {
	switch action {
	case domain.TradeActionAccept:
		if err := s.repo.Accept(ctx, requestID, receiverID); err != nil {
			return fmt.Errorf("s.repo.Accept -> %w", err)
		}
	case domain.TradeActionDecline:
		if err := s.repo.Decline(ctx, requestID, receiverID); err != nil {
			return fmt.Errorf("s.repo.Decline -> %w", err)
		}
	default:
		return ErrInvalidAction
	}

	return nil
}

func (s *TradeService) GetHistory(ctx context.Context, userID uint) ([]domain.TradeHistory, error) {
	history, err := s.repo.FindHistoryByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindHistoryByUserID -> %w", err)
	}

	return history, nil
}
