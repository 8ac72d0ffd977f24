package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/poketrade/marketplace-api/internal/api/handler/v1/request"
	"github.com/poketrade/marketplace-api/internal/api/handler/v1/response"
	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/service"
)

const recentActivityLimit = 20

type ModerationService interface {
	FlagListing(ctx context.Context, ref domain.ListingRef, reason string) error
	UnflagListing(ctx context.Context, ref domain.ListingRef) error
	RemoveListing(ctx context.Context, ref domain.ListingRef) error
	ListReports(ctx context.Context) ([]domain.TradeReport, error)
	ResolveReport(ctx context.Context, reportID, adminID uint, status domain.ReportStatus, notes string) (domain.TradeReport, error)
	FlaggedListings(ctx context.Context) ([]domain.MarketplaceEntry, error)
	RecentActivity(ctx context.Context, limit int) ([]domain.TradeHistory, error)
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
}

type AdminHandler struct {
	svc ModerationService
}

func NewAdminHandler(svc ModerationService) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

// HandleDashboard godoc
// @Summary      Staff dashboard
// @Description  Marketplace counters with flagged listings, recent reports and recent trades
// @Tags         admin
// @Produce      json
// @Success      200      {object}   response.DashboardResponse
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/dashboard [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleDashboard(ctx *gin.Context) {
	stats, err := h.svc.Dashboard(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.svc.Dashboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	flagged, err := h.svc.FlaggedListings(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.svc.FlaggedListings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	reports, err := h.svc.ListReports(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.svc.ListReports -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	activity, err := h.svc.RecentActivity(ctx.Request.Context(), recentActivityLimit)
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.svc.RecentActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.DashboardResponse{
		Stats:           stats,
		FlaggedListings: flagged,
		RecentReports:   reports,
		RecentActivity:  activity,
	})
}

// HandleGetReports godoc
// @Summary      List all moderation reports, newest first
// @Tags         admin
// @Produce      json
// @Success      200      {array}    domain.TradeReport
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/reports [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleGetReports(ctx *gin.Context) {
	reports, err := h.svc.ListReports(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetReports -> h.svc.ListReports -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, reports)
}

// HandleResolveReport godoc
// @Summary      Update a report's status
// @Tags         admin
// @Produce      json
// @Param        reportID path       int true "report ID"
// @Param        request  body       request.ResolveReportRequest true "request body"
// @Success      200      {object}   domain.TradeReport
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/reports/{reportID} [put]
// @Security     BearerAuth
func (h *AdminHandler) HandleResolveReport(ctx *gin.Context) {
	adminID, ok := getUserID(ctx)
	if !ok {
		return
	}

	reportID, err := strconv.ParseUint(ctx.Param("reportID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid report ID")))

		return
	}

	var req request.ResolveReportRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	report, err := h.svc.ResolveReport(ctx.Request.Context(), uint(reportID), adminID,
		domain.ReportStatus(req.Status), req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReportNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrReportNotFound))
		case errors.Is(err, service.ErrInvalidStatus):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidStatus))
		default:
			err = fmt.Errorf("v1.HandleResolveReport -> h.svc.ResolveReport -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, report)
}

// HandleModerateListing godoc
// @Summary      Flag, unflag or remove a listing
// @Tags         admin
// @Produce      json
// @Param        tradeType path      string true "money or barter"
// @Param        tradeID   path      int    true "listing ID"
// @Param        request   body      request.ModerateListingRequest true "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/trades/{tradeType}/{tradeID} [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleModerateListing(ctx *gin.Context) {
	kind := domain.ListingKind(ctx.Param("tradeType"))
	if kind != domain.ListingKindMoney && kind != domain.ListingKindBarter {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("trade type must be money or barter")))

		return
	}

	tradeID, err := strconv.ParseUint(ctx.Param("tradeID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid listing ID")))

		return
	}

	var req request.ModerateListingRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ref := domain.ListingRef{Kind: kind, ID: uint(tradeID)}

	switch req.Action {
	case "flag":
		err = h.svc.FlagListing(ctx.Request.Context(), ref, req.Reason)
	case "unflag":
		err = h.svc.UnflagListing(ctx.Request.Context(), ref)
	case "remove":
		err = h.svc.RemoveListing(ctx.Request.Context(), ref)
	}
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrListingNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleModerateListing -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "moderation action applied"})
}

// HandleGetActivity godoc
// @Summary      Recent marketplace settlement activity
// @Tags         admin
// @Produce      json
// @Param        limit    query      int false "number of rows (default 20)"
// @Success      200      {array}    domain.TradeHistory
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/activity [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleGetActivity(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(recentActivityLimit)))
	if err != nil || limit <= 0 {
		limit = recentActivityLimit
	}

	activity, err := h.svc.RecentActivity(ctx.Request.Context(), limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetActivity -> h.svc.RecentActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, activity)
}
