package response

import "github.com/poketrade/marketplace-api/internal/domain"

type ProfileResponse struct {
	User       domain.SimpleUser `json:"user"`
	Collection []domain.Pokemon  `json:"collection"`
}

type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DashboardResponse struct {
	Stats           domain.DashboardStats     `json:"stats"`
	FlaggedListings []domain.MarketplaceEntry `json:"flagged_listings"`
	RecentReports   []domain.TradeReport      `json:"recent_reports"`
	RecentActivity  []domain.TradeHistory     `json:"recent_activity"`
}
