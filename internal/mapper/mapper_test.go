package mapper_test

import (
	"testing"

	"github.com/jedyapps/dealdesk/internal/hubspot"
	"github.com/jedyapps/dealdesk/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStages struct {
	labels map[string]string
	orders map[string]int
}

func (s stubStages) Lookup(stageID string) (string, int, bool) {
	label, ok := s.labels[stageID]
	if !ok {
		return "", 0, false
	}
	return label, s.orders[stageID], true
}

type stubOwners map[string]string

func (s stubOwners) Resolve(ownerID string) string {
	if name, ok := s[ownerID]; ok {
		return name
	}
	return "Owner #" + ownerID
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"integer stays put", 373.0, 373.0},
		{"two decimals stay put", 12.34, 12.34},
		{"rounds down", 12.344, 12.34},
		{"rounds up", 12.346, 12.35},
		{"decimal tie stored above the halfway point", 12.345, 12.35},
		{"exact binary tie rounds away from zero", 0.125, 0.13},
		{"negative rounds away from zero", -0.005, -0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, mapper.Round2(tt.in), 1e-9)
		})
	}
}

func TestPercentDisplay(t *testing.T) {
	assert.InDelta(t, 71.0, mapper.PercentDisplay(0.71), 1e-9)
	assert.InDelta(t, 58.5, mapper.PercentDisplay(0.585), 1e-9)
	assert.InDelta(t, 100.0, mapper.PercentDisplay(1.0), 1e-9)
}

func TestToDeal_FullRecord(t *testing.T) {
	raw := hubspot.RawDeal{
		ID: "42",
		Properties: map[string]string{
			"dealname":                           "Acme App",
			"dealstage":                          "contractsent",
			"amount":                             "75000",
			"closedate":                          "2026-02-15",
			"hubspot_owner_id":                   "7",
			"hs_lastmodifieddate":                "2026-01-21T10:00:00.000Z",
			"current_offer":                      "15000",
			"google_play_page":                   "https://play.google.com/store/apps/details?id=com.acme",
			"transfer_summary":                   "Solid target.",
			"avg_rev_last_3_months":              "373",
			"avg_profit_last_3_months":           "372.995",
			"ua_profit":                          "0.71",
			"organic_installs":                   "0.585",
			"avg_installs_last_3_month":          "23559.4",
			"retention_day_1":                    "0.42",
			"retention_day_7":                    "0.18",
			"app_rating":                         "4.7",
			"top_countries":                      "US, UK, CA",
			"installs_last_month":                "25495.6",
		},
	}

	stages := stubStages{
		labels: map[string]string{"contractsent": "Contract Sent"},
		orders: map[string]int{"contractsent": 4},
	}
	owners := stubOwners{"7": "Sarah Chen"}

	deal := mapper.ToDeal(raw, stages, owners)

	assert.Equal(t, "42", deal.ID)
	assert.Equal(t, "Acme App", deal.Name)
	assert.Equal(t, "contractsent", deal.Stage)
	assert.Equal(t, "Contract Sent", deal.StageName)
	assert.Equal(t, 4, deal.StageOrder)
	assert.Equal(t, "75000", deal.Amount)
	assert.Equal(t, "2026-02-15", deal.CloseDate)
	require.NotNil(t, deal.Owner)
	assert.Equal(t, "Sarah Chen", *deal.Owner)
	require.NotNil(t, deal.CurrentOffer)
	assert.InDelta(t, 15000.0, *deal.CurrentOffer, 1e-9)

	perf := deal.Performance
	require.NotNil(t, perf.AvgRevAds3m)
	assert.InDelta(t, 373.0, *perf.AvgRevAds3m, 1e-9)
	require.NotNil(t, perf.AvgProfit3m)
	assert.InDelta(t, 373.0, *perf.AvgProfit3m, 1e-9)
	require.NotNil(t, perf.PctUAProfit)
	assert.InDelta(t, 71.0, *perf.PctUAProfit, 1e-9)
	require.NotNil(t, perf.PctOrgInstalls)
	assert.InDelta(t, 58.5, *perf.PctOrgInstalls, 1e-9)
	require.NotNil(t, perf.AvgInstalls3m)
	assert.Equal(t, 23559, *perf.AvgInstalls3m)
	require.NotNil(t, perf.InstallsLastMonth)
	assert.Equal(t, 25496, *perf.InstallsLastMonth)
	require.NotNil(t, perf.RetentionD1)
	assert.InDelta(t, 42.0, *perf.RetentionD1, 1e-9)
	require.NotNil(t, perf.RetentionD7)
	assert.InDelta(t, 18.0, *perf.RetentionD7, 1e-9)
	assert.Equal(t, "2026-01-21", perf.LastDataUpdate)
	assert.Nil(t, perf.OtherExpensesInfo)
}

func TestToDeal_AbsentFieldsStayAbsent(t *testing.T) {
	raw := hubspot.RawDeal{
		ID: "9",
		Properties: map[string]string{
			"dealname":  "Bare Deal",
			"dealstage": "mystery",
		},
	}

	deal := mapper.ToDeal(raw, stubStages{}, stubOwners{})

	// Unknown stage falls back to the raw ID and sorts last
	assert.Equal(t, "mystery", deal.StageName)
	assert.Equal(t, mapper.FallbackStageOrder, deal.StageOrder)

	// No owner ID means no owner, not a placeholder
	assert.Nil(t, deal.Owner)
	assert.Nil(t, deal.CurrentOffer)
	assert.Nil(t, deal.GooglePlayPage)
	assert.Nil(t, deal.TransferSummary)

	perf := deal.Performance
	assert.Nil(t, perf.AvgRevAds3m)
	assert.Nil(t, perf.AvgProfit3m)
	assert.Nil(t, perf.PctUAProfit)
	assert.Nil(t, perf.AvgInstalls3m)
	assert.Nil(t, perf.TopCountries)
	assert.Equal(t, "--", perf.LastDataUpdate)
}

func TestToDeal_ZeroValues(t *testing.T) {
	raw := hubspot.RawDeal{
		ID: "10",
		Properties: map[string]string{
			"dealname":              "Zeroes",
			"dealstage":             "s1",
			"current_offer":         "0",
			"avg_rev_last_3_months": "0",
		},
	}

	deal := mapper.ToDeal(raw, stubStages{}, stubOwners{})

	// A zero offer means no offer; a zero metric is a real zero
	assert.Nil(t, deal.CurrentOffer)
	require.NotNil(t, deal.Performance.AvgRevAds3m)
	assert.InDelta(t, 0.0, *deal.Performance.AvgRevAds3m, 1e-9)
}

func TestToDeal_UnresolvedOwnerGetsPlaceholder(t *testing.T) {
	raw := hubspot.RawDeal{
		ID: "11",
		Properties: map[string]string{
			"dealname":         "Orphan",
			"dealstage":        "s1",
			"hubspot_owner_id": "404",
		},
	}

	deal := mapper.ToDeal(raw, stubStages{}, stubOwners{})

	require.NotNil(t, deal.Owner)
	assert.Equal(t, "Owner #404", *deal.Owner)
}

func TestToDeal_UnparseableNumbersAreAbsent(t *testing.T) {
	raw := hubspot.RawDeal{
		ID: "12",
		Properties: map[string]string{
			"dealname":              "Garbage In",
			"dealstage":             "s1",
			"current_offer":         "n/a",
			"avg_rev_last_3_months": "abc",
		},
	}

	deal := mapper.ToDeal(raw, stubStages{}, stubOwners{})

	assert.Nil(t, deal.CurrentOffer)
	assert.Nil(t, deal.Performance.AvgRevAds3m)
}
