package domain

import "time"

type ReportStatus string

const (
	ReportPending       ReportStatus = "pending"
	ReportInvestigating ReportStatus = "investigating"
	ReportResolved      ReportStatus = "resolved"
	ReportDismissed     ReportStatus = "dismissed"
)

// ValidReportStatus reports whether s is one of the four recognized values.
func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case ReportPending, ReportInvestigating, ReportResolved, ReportDismissed:
		return true
	}
	return false
}

// Terminal reports whether s stamps the report with a resolver.
func (s ReportStatus) Terminal() bool {
	return s == ReportResolved || s == ReportDismissed
}

// TradeReport is a moderation ticket raised against a single listing.
type TradeReport struct {
	ID         uint         `json:"id"`
	Reporter   SimpleUser   `json:"reporter"`
	Listing    ListingRef   `json:"listing"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	AdminNotes string       `json:"admin_notes,omitempty"`
	ResolvedBy *SimpleUser  `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// DashboardStats is the staff dashboard summary.
type DashboardStats struct {
	TotalUsers         int64 `json:"total_users"`
	ActiveMoneyTrades  int64 `json:"active_money_trades"`
	ActiveBarterTrades int64 `json:"active_barter_trades"`
	FlaggedListings    int64 `json:"flagged_listings"`
	OpenReports        int64 `json:"open_reports"`
	SettledTrades      int64 `json:"settled_trades"`
	PendingTradeOffers int64 `json:"pending_trade_offers"`
}
