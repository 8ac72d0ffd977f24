package repository

import (
	"context"
	"fmt"

	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/repository/dao"
)

var (
	ErrTradeNotFound     = dao.ErrTradeNotFound
	ErrSelfTrade         = dao.ErrSelfTrade
	ErrNotForSale        = dao.ErrNotForSale
	ErrInsufficientFunds = dao.ErrInsufficientFunds
	ErrAlreadyPending    = dao.ErrAlreadyPending
	ErrAlreadyResolved   = dao.ErrAlreadyResolved
	ErrNotAuthorized     = dao.ErrNotAuthorized
)

type TradeDAO interface {
	Insert(ctx context.Context, request dao.TradeRequest) (dao.TradeRequest, error)
	FindByID(ctx context.Context, id uint) (dao.TradeRequest, error)
	FindPendingByReceiverID(ctx context.Context, receiverID uint) ([]dao.TradeRequest, error)
	FindPendingByReceiverPokemonID(ctx context.Context, pokemonID uint) ([]dao.TradeRequest, error)
	CountPending(ctx context.Context) (int64, error)
	Accept(ctx context.Context, requestID, receiverID uint) error
	Decline(ctx context.Context, requestID, receiverID uint) error
	BuyPokemon(ctx context.Context, buyerID, pokemonID uint) error
	FindHistoryByUserID(ctx context.Context, userID uint) ([]dao.TradeHistory, error)
	FindRecentHistory(ctx context.Context, limit int) ([]dao.TradeHistory, error)
	CountHistory(ctx context.Context) (int64, error)
}

type TradeRepository struct {
	dao TradeDAO
}

func NewTradeRepository(dao TradeDAO) *TradeRepository {
	return &TradeRepository{
		dao: dao,
	}
}

func (r *TradeRepository) CreateRequest(ctx context.Context, senderID, senderPokemonID, receiverID, receiverPokemonID uint) (domain.TradeRequest, error) {
	created, err := r.dao.Insert(ctx, dao.TradeRequest{
		SenderID:          senderID,
		ReceiverID:        receiverID,
		SenderPokemonID:   senderPokemonID,
		ReceiverPokemonID: receiverPokemonID,
	})
	if err != nil {
		return domain.TradeRequest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TradeRepository) FindByID(ctx context.Context, id uint) (domain.TradeRequest, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.TradeRequest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TradeRepository) FindIncoming(ctx context.Context, receiverID uint) ([]domain.TradeRequest, error) {
	found, err := r.dao.FindPendingByReceiverID(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPendingByReceiverID -> %w", err)
	}

	requests := make([]domain.TradeRequest, 0, len(found))
	for _, req := range found {
		requests = append(requests, r.daoToDomain(req))
	}

	return requests, nil
}

// FindIncomingForPokemon lists the pending offers made against one
// specific Pokémon.
func (r *TradeRepository) FindIncomingForPokemon(ctx context.Context, pokemonID uint) ([]domain.TradeRequest, error) {
	found, err := r.dao.FindPendingByReceiverPokemonID(ctx, pokemonID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPendingByReceiverPokemonID -> %w", err)
	}

	requests := make([]domain.TradeRequest, 0, len(found))
	for _, req := range found {
		requests = append(requests, r.daoToDomain(req))
	}

	return requests, nil
}

func (r *TradeRepository) Accept(ctx context.Context, requestID, receiverID uint) error {
	if err := r.dao.Accept(ctx, requestID, receiverID); err != nil {
		return fmt.Errorf("r.dao.Accept -> %w", err)
	}

	return nil
}

func (r *TradeRepository) Decline(ctx context.Context, requestID, receiverID uint) error {
	if err := r.dao.Decline(ctx, requestID, receiverID); err != nil {
		return fmt.Errorf("r.dao.Decline -> %w", err)
	}

	return nil
}

func (r *TradeRepository) BuyPokemon(ctx context.Context, buyerID, pokemonID uint) error {
	if err := r.dao.BuyPokemon(ctx, buyerID, pokemonID); err != nil {
		return fmt.Errorf("r.dao.BuyPokemon -> %w", err)
	}

	return nil
}

func (r *TradeRepository) FindHistoryByUserID(ctx context.Context, userID uint) ([]domain.TradeHistory, error) {
	found, err := r.dao.FindHistoryByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindHistoryByUserID -> %w", err)
	}

	history := make([]domain.TradeHistory, 0, len(found))
	for _, h := range found {
		history = append(history, r.historyDaoToDomain(h))
	}

	return history, nil
}

func (r *TradeRepository) FindRecentHistory(ctx context.Context, limit int) ([]domain.TradeHistory, error) {
	found, err := r.dao.FindRecentHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRecentHistory -> %w", err)
	}

	history := make([]domain.TradeHistory, 0, len(found))
	for _, h := range found {
		history = append(history, r.historyDaoToDomain(h))
	}

	return history, nil
}

func (r *TradeRepository) CountHistory(ctx context.Context) (int64, error) {
	count, err := r.dao.CountHistory(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountHistory -> %w", err)
	}

	return count, nil
}

func (r *TradeRepository) CountPending(ctx context.Context) (int64, error) {
	count, err := r.dao.CountPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountPending -> %w", err)
	}

	return count, nil
}

func (r *TradeRepository) daoToDomain(t dao.TradeRequest) domain.TradeRequest {
	return domain.TradeRequest{
		ID: t.ID,
		Sender: domain.SimpleUser{
			ID:       t.Sender.ID,
			Username: t.Sender.Username,
		},
		Receiver: domain.SimpleUser{
			ID:       t.Receiver.ID,
			Username: t.Receiver.Username,
		},
		SenderPokemon:   pokemonDaoToRef(t.SenderPokemon),
		ReceiverPokemon: pokemonDaoToRef(t.ReceiverPokemon),
		Status:          domain.TradeRequestStatus(t.Status),
		CreatedAt:       t.CreatedAt,
	}
}

func (r *TradeRepository) historyDaoToDomain(h dao.TradeHistory) domain.TradeHistory {
	return domain.TradeHistory{
		ID: h.ID,
		Buyer: domain.SimpleUser{
			ID:       h.Buyer.ID,
			Username: h.Buyer.Username,
		},
		Seller: domain.SimpleUser{
			ID:       h.Seller.ID,
			Username: h.Seller.Username,
		},
		Pokemon:   pokemonDaoToRef(h.Pokemon),
		Amount:    h.Amount,
		Timestamp: h.Timestamp,
	}
}
