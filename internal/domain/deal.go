package domain

// Deal is the normalized display shape of one HubSpot deal record.
// Raw CRM property names never leak past the mapper; handlers and the
// frontend only ever see this schema.
type Deal struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Stage           string              `json:"stage"`
	StageName       string              `json:"stageName"`
	StageOrder      int                 `json:"stageOrder"`
	Amount          string              `json:"amount"`
	CloseDate       string              `json:"closeDate"`
	OwnerID         string              `json:"ownerId"`
	Owner           *string             `json:"owner"`
	LastModified    string              `json:"lastModified"`
	CurrentOffer    *float64            `json:"currentOffer"`
	GooglePlayPage  *string             `json:"googlePlayPage"`
	TransferSummary *string             `json:"transferSummary"`
	Performance     PerformanceSnapshot `json:"performance"`
}

// PerformanceSnapshot holds the app performance metrics attached to a deal.
// Every numeric field is independently nullable: absence in the CRM means
// nil here, never zero. Monetary and ratio values are rounded to two
// decimals, install counts to whole numbers, before they reach this struct.
type PerformanceSnapshot struct {
	AvgRevAds3m        *float64 `json:"avgRevAds3m"`
	AvgRevIAP3m        *float64 `json:"avgRevIAP3m"`
	AvgExpenses3m      *float64 `json:"avgExpenses3m"`
	AvgOtherExpenses3m *float64 `json:"avgOtherExpenses3m"`
	AvgProfit3m        *float64 `json:"avgProfit3m"`
	AvgUAProfit        *float64 `json:"avgUAProfit"`
	AvgUARev3m         *float64 `json:"avgUARev3m"`
	PctUAProfit        *float64 `json:"pctUAProfit"`
	UAROI              *float64 `json:"uaROI"`
	AvgInstalls3m      *int     `json:"avgInstalls3m"`
	AvgOrgInstalls3m   *int     `json:"avgOrgInstalls3m"`
	PctOrgInstalls     *float64 `json:"pctOrgInstalls"`
	TopCountries       *string  `json:"topCountries"`
	AppRating          *float64 `json:"appRating"`
	RetentionD1        *float64 `json:"retentionD1"`
	RetentionD7        *float64 `json:"retentionD7"`
	AvgEngagementTime  *float64 `json:"avgEngagementTime"`
	LastDataUpdate     string   `json:"lastDataUpdate"`
	RevAdsLastMonth    *float64 `json:"revAdsLastMonth"`
	RevIAPLastMonth    *float64 `json:"revIAPLastMonth"`
	ExpensesLastMonth  *float64 `json:"expensesLastMonth"`
	OtherExpensesLM    *float64 `json:"otherExpensesLastMonth"`
	ProfitLastMonth    *float64 `json:"profitLastMonth"`
	InstallsLastMonth  *int     `json:"installsLastMonth"`
	OrgInstallsLM      *int     `json:"orgInstallsLastMonth"`
	OtherExpensesInfo  *string  `json:"otherExpensesDetails"`
}

// DealListResponse is the payload of GET /api/deals.
// PortalID lets the frontend build deep links back into HubSpot; it is null
// when the account lookup failed or sample data is active.
type DealListResponse struct {
	Deals    []Deal `json:"deals"`
	PortalID *int64 `json:"portalId"`
}

// MutationResponse is the payload of tag-removal and summary updates.
type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UpdateSummaryRequest is the body of PATCH /api/deals/{dealID}/summary.
type UpdateSummaryRequest struct {
	TransferSummary string `json:"transferSummary" validate:"max=5000"`
}
