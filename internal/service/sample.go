package service

import "github.com/jedyapps/dealdesk/internal/domain"

// SampleDeals returns the built-in dataset served when no usable CRM API key
// is configured. The shapes mirror real normalized output so the frontend
// exercises every column without credentials.
func SampleDeals() []domain.Deal {
	return []domain.Deal{
		{
			ID:              "1",
			Name:            "Acme Corp - Enterprise License",
			Stage:           "contractsent",
			StageName:       "Contract Sent",
			StageOrder:      4,
			Amount:          "75000",
			CloseDate:       "2026-02-15",
			OwnerID:         "101",
			Owner:           strPtr("Sarah Chen"),
			LastModified:    "2026-01-21T09:30:00Z",
			CurrentOffer:    f64Ptr(15000),
			GooglePlayPage:  strPtr("https://play.google.com/store/apps/details?id=com.example.app"),
			TransferSummary: strPtr("This app has strong organic growth and consistent revenue streams. The retention metrics are above industry average, making it a solid acquisition target. Key assets include established user base and proven monetization strategy."),
			Performance: domain.PerformanceSnapshot{
				AvgRevAds3m:        f64Ptr(373),
				AvgRevIAP3m:        f64Ptr(0),
				AvgExpenses3m:      f64Ptr(0),
				AvgOtherExpenses3m: f64Ptr(0),
				AvgProfit3m:        f64Ptr(373),
				AvgInstalls3m:      intPtr(23559),
				AvgOrgInstalls3m:   intPtr(23559),
				PctOrgInstalls:     f64Ptr(100),
				TopCountries:       strPtr("US, UK, CA"),
				AppRating:          f64Ptr(4.7),
				RetentionD1:        f64Ptr(42),
				RetentionD7:        f64Ptr(18),
				LastDataUpdate:     "2026-01-21",
				RevAdsLastMonth:    f64Ptr(370),
				RevIAPLastMonth:    f64Ptr(0),
				ExpensesLastMonth:  f64Ptr(0),
				OtherExpensesLM:    f64Ptr(0),
				ProfitLastMonth:    f64Ptr(370),
				InstallsLastMonth:  intPtr(25496),
				OrgInstallsLM:      intPtr(25496),
			},
		},
		{
			ID:           "2",
			Name:         "TechStart Inc - Annual Plan",
			Stage:        "qualifiedtobuy",
			StageName:    "Qualified To Buy",
			StageOrder:   1,
			Amount:       "24000",
			CloseDate:    "2026-02-28",
			OwnerID:      "102",
			Owner:        strPtr("Mike Johnson"),
			LastModified: "2026-01-20T14:05:00Z",
			CurrentOffer: f64Ptr(28000),
			Performance: domain.PerformanceSnapshot{
				AvgRevAds3m:        f64Ptr(890),
				AvgRevIAP3m:        f64Ptr(250),
				AvgExpenses3m:      f64Ptr(120),
				AvgOtherExpenses3m: f64Ptr(50),
				AvgProfit3m:        f64Ptr(970),
				AvgUAProfit:        f64Ptr(450),
				AvgUARev3m:         f64Ptr(600),
				PctUAProfit:        f64Ptr(75),
				UAROI:              f64Ptr(2.5),
				AvgInstalls3m:      intPtr(45000),
				AvgOrgInstalls3m:   intPtr(32000),
				PctOrgInstalls:     f64Ptr(71),
				TopCountries:       strPtr("US, DE, FR"),
				AppRating:          f64Ptr(4.5),
				RetentionD1:        f64Ptr(38),
				RetentionD7:        f64Ptr(15),
				AvgEngagementTime:  f64Ptr(12.5),
				LastDataUpdate:     "2026-01-20",
				RevAdsLastMonth:    f64Ptr(920),
				RevIAPLastMonth:    f64Ptr(280),
				ExpensesLastMonth:  f64Ptr(100),
				OtherExpensesLM:    f64Ptr(30),
				ProfitLastMonth:    f64Ptr(1070),
				InstallsLastMonth:  intPtr(48000),
				OrgInstallsLM:      intPtr(35000),
				OtherExpensesInfo:  strPtr("Marketing"),
			},
		},
		{
			ID:             "3",
			Name:           "Global Solutions - Expansion",
			Stage:          "closedwon",
			StageName:      "Closed Won",
			StageOrder:     5,
			Amount:         "150000",
			CloseDate:      "2026-01-10",
			OwnerID:        "101",
			Owner:          strPtr("Sarah Chen"),
			LastModified:   "2026-01-22T08:15:00Z",
			CurrentOffer:   f64Ptr(180000),
			GooglePlayPage: strPtr("https://play.google.com/store/apps/details?id=com.global.app"),
			Performance: domain.PerformanceSnapshot{
				AvgRevAds3m:        f64Ptr(2500),
				AvgRevIAP3m:        f64Ptr(1800),
				AvgExpenses3m:      f64Ptr(500),
				AvgOtherExpenses3m: f64Ptr(200),
				AvgProfit3m:        f64Ptr(3600),
				AvgUAProfit:        f64Ptr(1200),
				AvgUARev3m:         f64Ptr(1500),
				PctUAProfit:        f64Ptr(80),
				UAROI:              f64Ptr(3.2),
				AvgInstalls3m:      intPtr(120000),
				AvgOrgInstalls3m:   intPtr(85000),
				PctOrgInstalls:     f64Ptr(71),
				TopCountries:       strPtr("US, JP, BR"),
				AppRating:          f64Ptr(4.8),
				RetentionD1:        f64Ptr(52),
				RetentionD7:        f64Ptr(28),
				AvgEngagementTime:  f64Ptr(18.3),
				LastDataUpdate:     "2026-01-22",
				RevAdsLastMonth:    f64Ptr(2800),
				RevIAPLastMonth:    f64Ptr(2100),
				ExpensesLastMonth:  f64Ptr(450),
				OtherExpensesLM:    f64Ptr(180),
				ProfitLastMonth:    f64Ptr(4270),
				InstallsLastMonth:  intPtr(135000),
				OrgInstallsLM:      intPtr(95000),
			},
		},
		{
			ID:           "4",
			Name:         "Startup Labs - Pilot Program",
			Stage:        "presentationscheduled",
			StageName:    "Presentation Scheduled",
			StageOrder:   2,
			Amount:       "12000",
			CloseDate:    "2026-03-01",
			OwnerID:      "103",
			Owner:        strPtr("Alex Rivera"),
			LastModified: "2026-01-19T16:45:00Z",
			CurrentOffer: f64Ptr(5000),
			Performance: domain.PerformanceSnapshot{
				AvgRevAds3m:        f64Ptr(150),
				AvgRevIAP3m:        f64Ptr(0),
				AvgExpenses3m:      f64Ptr(80),
				AvgOtherExpenses3m: f64Ptr(0),
				AvgProfit3m:        f64Ptr(70),
				AvgInstalls3m:      intPtr(8500),
				AvgOrgInstalls3m:   intPtr(8500),
				PctOrgInstalls:     f64Ptr(100),
				TopCountries:       strPtr("US"),
				AppRating:          f64Ptr(4.2),
				RetentionD1:        f64Ptr(35),
				RetentionD7:        f64Ptr(12),
				AvgEngagementTime:  f64Ptr(8.2),
				LastDataUpdate:     "2026-01-19",
				RevAdsLastMonth:    f64Ptr(180),
				RevIAPLastMonth:    f64Ptr(0),
				ExpensesLastMonth:  f64Ptr(75),
				OtherExpensesLM:    f64Ptr(0),
				ProfitLastMonth:    f64Ptr(105),
				InstallsLastMonth:  intPtr(9200),
				OrgInstallsLM:      intPtr(9200),
			},
		},
		{
			ID:           "5",
			Name:         "MegaCorp - Custom Integration",
			Stage:        "decisionmakerboughtin",
			StageName:    "Decision Maker Bought-In",
			StageOrder:   3,
			Amount:       "95000",
			CloseDate:    "2026-02-20",
			OwnerID:      "102",
			Owner:        strPtr("Mike Johnson"),
			LastModified: "2026-01-21T11:20:00Z",
			CurrentOffer: f64Ptr(120000),
			Performance: domain.PerformanceSnapshot{
				AvgRevAds3m:        f64Ptr(1800),
				AvgRevIAP3m:        f64Ptr(3200),
				AvgExpenses3m:      f64Ptr(800),
				AvgOtherExpenses3m: f64Ptr(300),
				AvgProfit3m:        f64Ptr(3900),
				AvgUAProfit:        f64Ptr(2100),
				AvgUARev3m:         f64Ptr(2800),
				PctUAProfit:        f64Ptr(75),
				UAROI:              f64Ptr(2.8),
				AvgInstalls3m:      intPtr(95000),
				AvgOrgInstalls3m:   intPtr(55000),
				PctOrgInstalls:     f64Ptr(58),
				TopCountries:       strPtr("US, UK, AU"),
				AppRating:          f64Ptr(4.6),
				RetentionD1:        f64Ptr(48),
				RetentionD7:        f64Ptr(24),
				AvgEngagementTime:  f64Ptr(15.7),
				LastDataUpdate:     "2026-01-21",
				RevAdsLastMonth:    f64Ptr(1950),
				RevIAPLastMonth:    f64Ptr(3500),
				ExpensesLastMonth:  f64Ptr(750),
				OtherExpensesLM:    f64Ptr(280),
				ProfitLastMonth:    f64Ptr(4420),
				InstallsLastMonth:  intPtr(102000),
				OrgInstallsLM:      intPtr(58000),
				OtherExpensesInfo:  strPtr("Server costs"),
			},
		},
		{
			ID:           "6",
			Name:         "Local Business Pro",
			Stage:        "closedlost",
			StageName:    "Closed Lost",
			StageOrder:   6,
			Amount:       "8500",
			CloseDate:    "2026-01-05",
			OwnerID:      "103",
			Owner:        strPtr("Alex Rivera"),
			LastModified: "2026-01-18T10:00:00Z",
			CurrentOffer: f64Ptr(2000),
			Performance: domain.PerformanceSnapshot{
				AvgRevAds3m:        f64Ptr(45),
				AvgRevIAP3m:        f64Ptr(0),
				AvgExpenses3m:      f64Ptr(60),
				AvgOtherExpenses3m: f64Ptr(20),
				AvgProfit3m:        f64Ptr(-35),
				UAROI:              f64Ptr(-0.5),
				AvgInstalls3m:      intPtr(2100),
				AvgOrgInstalls3m:   intPtr(1800),
				PctOrgInstalls:     f64Ptr(86),
				TopCountries:       strPtr("US"),
				AppRating:          f64Ptr(3.8),
				RetentionD1:        f64Ptr(22),
				RetentionD7:        f64Ptr(8),
				AvgEngagementTime:  f64Ptr(4.5),
				LastDataUpdate:     "2026-01-18",
				RevAdsLastMonth:    f64Ptr(30),
				RevIAPLastMonth:    f64Ptr(0),
				ExpensesLastMonth:  f64Ptr(55),
				OtherExpensesLM:    f64Ptr(15),
				ProfitLastMonth:    f64Ptr(-40),
				InstallsLastMonth:  intPtr(1900),
				OrgInstallsLM:      intPtr(1650),
				OtherExpensesInfo:  strPtr("Support"),
			},
		},
	}
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func intPtr(n int) *int { return &n }
