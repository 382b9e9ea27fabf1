package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/jedyapps/dealdesk/internal/config"
	"github.com/jedyapps/dealdesk/internal/domain"
	"github.com/jedyapps/dealdesk/internal/hubspot"
	"github.com/jedyapps/dealdesk/internal/mapper"
	"go.uber.org/zap"
)

// NextMeetingTag marks deals the dashboard surfaces for the next meeting
const NextMeetingTag = "Next-meeting"

// searchLimit caps one deal search page. The meeting list is curated by hand
// and stays far below this.
const searchLimit = 100

// maxSummaryLength caps the transfer summary text, matching the request
// validator so the limit also holds for callers that bypass the HTTP layer
const maxSummaryLength = 5000

// dealSearchProperties is the fixed property set requested for every deal
var dealSearchProperties = []string{
	// Basic deal info
	"dealname",
	"dealstage",
	"amount",
	"closedate",
	"hubspot_owner_id",
	"hubspot_owner_assigneddate",
	"hs_object_source_label",
	"hs_lastmodifieddate",
	"current_offer",
	"tags",
	"google_play_page",
	"transfer_summary",
	// 3-month averages
	"avg_rev_last_3_months",
	"avg_rev__iap__sub__last_3_months",
	"avg_expenses_last_3_months",
	"avg_other_expenses_last_3_months",
	"avg_profit_last_3_months",
	"avg_ua_profit",
	"avg_ua_rev_last_3_months",
	"ua_profit",
	"ua_roi",
	"avg_installs_last_3_month",
	"avg_organic_installs_last_3_months",
	"organic_installs",
	// App metrics
	"top_countries",
	"app_rating",
	"retention_day_1",
	"retention_day_7",
	"average_engagement_time_per_active_user",
	// Last month data
	"app_revenue__from_ads_last_30_days",
	"app_revenue__from_from_inapp_last_30_days",
	"expenses_last_month",
	"other_expenses_last_month",
	"profit_last_month",
	"installs_last_month",
	"organic_installs_last_month",
}

// DealService serves the dashboard's deal operations against the CRM, or
// against the built-in sample dataset when no usable API key is configured.
type DealService struct {
	client     *hubspot.Client
	stages     *hubspot.StageCache
	owners     *hubspot.OwnerCache
	sampleMode bool
	logger     *zap.Logger

	portalMu sync.Mutex
	portalID *int64
}

func NewDealService(
	client *hubspot.Client,
	stages *hubspot.StageCache,
	owners *hubspot.OwnerCache,
	cfg *config.HubSpotConfig,
	logger *zap.Logger,
) *DealService {
	return &DealService{
		client:     client,
		stages:     stages,
		owners:     owners,
		sampleMode: cfg.SampleDataMode(),
		logger:     logger,
	}
}

// SampleMode reports whether the service runs on the built-in dataset
func (s *DealService) SampleMode() bool {
	return s.sampleMode
}

// ListDeals returns every deal tagged for the next meeting, normalized for
// display. One degraded owner or a missing stage catalog never fails the
// list; only the search itself can.
func (s *DealService) ListDeals(ctx context.Context) (*domain.DealListResponse, error) {
	if s.sampleMode {
		return &domain.DealListResponse{Deals: SampleDeals()}, nil
	}

	s.stages.Ensure(ctx)
	portalID := s.ensurePortalID(ctx)

	raw, err := s.client.SearchDeals(ctx, hubspot.NewTagSearchRequest(NextMeetingTag, dealSearchProperties, searchLimit))
	if err != nil {
		s.logger.Error("deal search failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	ownerIDs := make([]string, 0, len(raw))
	for _, deal := range raw {
		if id := deal.Properties["hubspot_owner_id"]; id != "" {
			ownerIDs = append(ownerIDs, id)
		}
	}
	s.owners.EnsureAll(ctx, ownerIDs)

	deals := make([]domain.Deal, 0, len(raw))
	for _, deal := range raw {
		deals = append(deals, mapper.ToDeal(deal, s.stages, s.owners))
	}

	return &domain.DealListResponse{Deals: deals, PortalID: portalID}, nil
}

// RemoveTag strips the next-meeting tag from a deal's tags property,
// preserving the record's own delimiter. Removing an already absent tag is a
// no-op that still succeeds.
func (s *DealService) RemoveTag(ctx context.Context, dealID string) (*domain.MutationResponse, error) {
	if s.sampleMode {
		return &domain.MutationResponse{Success: true, Message: "Tag removed (sample data)"}, nil
	}

	deal, err := s.client.GetDeal(ctx, dealID, "tags")
	if err != nil {
		return nil, s.upstreamError("failed to read deal tags", dealID, err)
	}

	updated := stripTag(deal.Properties["tags"], NextMeetingTag)

	if err := s.client.UpdateDeal(ctx, dealID, map[string]string{"tags": updated}); err != nil {
		return nil, s.upstreamError("failed to update deal tags", dealID, err)
	}

	s.logger.Info("removed next-meeting tag",
		zap.String("deal_id", dealID),
		zap.String("remaining_tags", updated),
	)
	return &domain.MutationResponse{Success: true, Message: "Tag removed successfully"}, nil
}

// UpdateTransferSummary overwrites the transfer summary text of a deal.
// An empty summary is valid and clears the field.
func (s *DealService) UpdateTransferSummary(ctx context.Context, dealID, summary string) (*domain.MutationResponse, error) {
	if len(summary) > maxSummaryLength {
		return nil, fmt.Errorf("%w: transfer summary exceeds %d characters", ErrInvalidInput, maxSummaryLength)
	}

	if s.sampleMode {
		return &domain.MutationResponse{Success: true, Message: "Summary updated (sample data)"}, nil
	}

	if err := s.client.UpdateDeal(ctx, dealID, map[string]string{"transfer_summary": summary}); err != nil {
		return nil, s.upstreamError("failed to update transfer summary", dealID, err)
	}

	s.logger.Info("updated transfer summary", zap.String("deal_id", dealID))
	return &domain.MutationResponse{Success: true, Message: "Summary updated successfully"}, nil
}

// ensurePortalID resolves the CRM portal ID once and caches it for the
// process lifetime. Failure degrades to a null portal ID, never an error.
func (s *DealService) ensurePortalID(ctx context.Context) *int64 {
	s.portalMu.Lock()
	defer s.portalMu.Unlock()

	if s.portalID != nil {
		return s.portalID
	}

	details, err := s.client.GetAccountDetails(ctx)
	if err != nil {
		s.logger.Warn("failed to load portal ID", zap.Error(err))
		return nil
	}

	s.portalID = &details.PortalID
	s.logger.Info("loaded portal ID", zap.Int64("portal_id", details.PortalID))
	return s.portalID
}

func (s *DealService) upstreamError(msg, dealID string, err error) error {
	s.logger.Error(msg, zap.String("deal_id", dealID), zap.Error(err))

	var apiErr *hubspot.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, dealID)
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

// stripTag removes a tag from a delimited tag list. Records use either
// semicolons or commas; semicolon wins when both appear.
func stripTag(tags, tag string) string {
	separator := ","
	if strings.Contains(tags, ";") {
		separator = ";"
	}

	kept := make([]string, 0)
	for _, part := range strings.Split(tags, separator) {
		part = strings.TrimSpace(part)
		if part == "" || part == tag {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, separator)
}
