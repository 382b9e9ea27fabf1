package view

import (
	"math"
	"sort"

	"github.com/jedyapps/dealdesk/internal/domain"
)

// Board is the stage-grouped rendering of the deal list, most advanced stage
// first. The frontend's card view consumes this directly; Cursor carries the
// detail view's position over the flat list.
type Board struct {
	Groups []StageGroup `json:"groups"`
	Total  int          `json:"total"`
	Cursor Cursor       `json:"cursor"`
}

// StageGroup is one pipeline stage and its deals, in list order
type StageGroup struct {
	Stage      string      `json:"stage"`
	StageName  string      `json:"stageName"`
	StageOrder int         `json:"stageOrder"`
	Deals      []BoardDeal `json:"deals"`
}

// BoardDeal decorates a deal with board-only derived metrics
type BoardDeal struct {
	domain.Deal
	PaybackMonths *int `json:"paybackMonths"`
}

// BuildBoard groups deals by stage. Groups sort by stage order descending;
// within a group the incoming order is preserved.
func BuildBoard(deals []domain.Deal) Board {
	index := make(map[string]int)
	groups := make([]StageGroup, 0)

	for _, deal := range deals {
		i, ok := index[deal.Stage]
		if !ok {
			i = len(groups)
			index[deal.Stage] = i
			groups = append(groups, StageGroup{
				Stage:      deal.Stage,
				StageName:  deal.StageName,
				StageOrder: deal.StageOrder,
			})
		}
		groups[i].Deals = append(groups[i].Deals, BoardDeal{
			Deal:          deal,
			PaybackMonths: paybackMonths(deal),
		})
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].StageOrder > groups[b].StageOrder
	})

	return Board{
		Groups: groups,
		Total:  len(deals),
		Cursor: NewCursor(0, len(deals)),
	}
}

// paybackMonths estimates how many months of average profit cover the
// current offer. Absent unless both inputs exist and profit is positive.
func paybackMonths(deal domain.Deal) *int {
	if deal.CurrentOffer == nil || deal.Performance.AvgProfit3m == nil {
		return nil
	}
	profit := *deal.Performance.AvgProfit3m
	if profit <= 0 {
		return nil
	}
	months := int(math.Round(*deal.CurrentOffer / profit))
	return &months
}

// Cursor is a bounded position over the deal list used by the detail view's
// previous/next navigation.
type Cursor struct {
	Index   int  `json:"index"`
	Total   int  `json:"total"`
	HasPrev bool `json:"hasPrev"`
	HasNext bool `json:"hasNext"`
}

// NewCursor clamps index into [0, total) and derives the navigation flags
func NewCursor(index, total int) Cursor {
	if total <= 0 {
		return Cursor{}
	}
	if index < 0 {
		index = 0
	}
	if index >= total {
		index = total - 1
	}
	return Cursor{
		Index:   index,
		Total:   total,
		HasPrev: index > 0,
		HasNext: index < total-1,
	}
}
