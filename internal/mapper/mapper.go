package mapper

import (
	"math"
	"strconv"
	"strings"

	"github.com/jedyapps/dealdesk/internal/domain"
	"github.com/jedyapps/dealdesk/internal/hubspot"
)

// StageResolver maps a raw stage ID to its display label and pipeline order
type StageResolver interface {
	Lookup(stageID string) (label string, displayOrder int, ok bool)
}

// OwnerResolver maps an owner ID to a display name, falling back to a
// synthetic placeholder when the owner never resolved
type OwnerResolver interface {
	Resolve(ownerID string) string
}

// FallbackStageOrder sorts deals with an unknown stage after every known one
const FallbackStageOrder = 999

// MissingDateValue is shown when a deal has no modification timestamp
const MissingDateValue = "--"

// ToDeal converts one raw CRM record into the normalized display shape.
// Pure function: both resolvers are read-only here.
func ToDeal(raw hubspot.RawDeal, stages StageResolver, owners OwnerResolver) domain.Deal {
	props := raw.Properties

	deal := domain.Deal{
		ID:              raw.ID,
		Name:            props["dealname"],
		Stage:           props["dealstage"],
		StageName:       props["dealstage"],
		StageOrder:      FallbackStageOrder,
		Amount:          props["amount"],
		CloseDate:       props["closedate"],
		OwnerID:         props["hubspot_owner_id"],
		LastModified:    props["hs_lastmodifieddate"],
		CurrentOffer:    offerAmount(props["current_offer"]),
		GooglePlayPage:  text(props["google_play_page"]),
		TransferSummary: text(props["transfer_summary"]),
		Performance:     toPerformance(props),
	}

	if label, order, ok := stages.Lookup(deal.Stage); ok {
		deal.StageName = label
		deal.StageOrder = order
	}

	if deal.OwnerID != "" {
		name := owners.Resolve(deal.OwnerID)
		deal.Owner = &name
	}

	return deal
}

func toPerformance(props map[string]string) domain.PerformanceSnapshot {
	return domain.PerformanceSnapshot{
		AvgRevAds3m:        money(props["avg_rev_last_3_months"]),
		AvgRevIAP3m:        money(props["avg_rev__iap__sub__last_3_months"]),
		AvgExpenses3m:      money(props["avg_expenses_last_3_months"]),
		AvgOtherExpenses3m: money(props["avg_other_expenses_last_3_months"]),
		AvgProfit3m:        money(props["avg_profit_last_3_months"]),
		AvgUAProfit:        money(props["avg_ua_profit"]),
		AvgUARev3m:         money(props["avg_ua_rev_last_3_months"]),
		PctUAProfit:        ratio(props["ua_profit"]),
		UAROI:              money(props["ua_roi"]),
		AvgInstalls3m:      count(props["avg_installs_last_3_month"]),
		AvgOrgInstalls3m:   count(props["avg_organic_installs_last_3_months"]),
		PctOrgInstalls:     ratio(props["organic_installs"]),
		TopCountries:       text(props["top_countries"]),
		AppRating:          money(props["app_rating"]),
		RetentionD1:        ratio(props["retention_day_1"]),
		RetentionD7:        ratio(props["retention_day_7"]),
		AvgEngagementTime:  money(props["average_engagement_time_per_active_user"]),
		LastDataUpdate:     dateOnly(props["hs_lastmodifieddate"]),
		RevAdsLastMonth:    money(props["app_revenue__from_ads_last_30_days"]),
		RevIAPLastMonth:    money(props["app_revenue__from_from_inapp_last_30_days"]),
		ExpensesLastMonth:  money(props["expenses_last_month"]),
		OtherExpensesLM:    money(props["other_expenses_last_month"]),
		ProfitLastMonth:    money(props["profit_last_month"]),
		InstallsLastMonth:  count(props["installs_last_month"]),
		OrgInstallsLM:      count(props["organic_installs_last_month"]),
		OtherExpensesInfo:  nil,
	}
}

// Round2 rounds to two decimals, halves away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PercentDisplay converts a 0..1 ratio into a rounded percentage
func PercentDisplay(v float64) float64 {
	return Round2(v * 100)
}

// money parses a raw property into a rounded monetary value.
// Empty and unparseable values are absent, a literal zero is kept.
func money(raw string) *float64 {
	f, ok := parse(raw)
	if !ok {
		return nil
	}
	r := Round2(f)
	return &r
}

// ratio parses a raw 0..1 ratio property into a display percentage
func ratio(raw string) *float64 {
	f, ok := parse(raw)
	if !ok {
		return nil
	}
	r := PercentDisplay(f)
	return &r
}

// count parses a raw property into a whole install count
func count(raw string) *int {
	f, ok := parse(raw)
	if !ok {
		return nil
	}
	n := int(math.Round(f))
	return &n
}

// offerAmount parses the current offer. Unlike the performance fields a zero
// offer means no offer, so it collapses to absent.
func offerAmount(raw string) *float64 {
	f, ok := parse(raw)
	if !ok || f == 0 {
		return nil
	}
	return &f
}

func text(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// dateOnly keeps the date portion of an ISO timestamp
func dateOnly(timestamp string) string {
	if timestamp == "" {
		return MissingDateValue
	}
	date, _, _ := strings.Cut(timestamp, "T")
	return date
}

func parse(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
