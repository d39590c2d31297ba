package finboard

import "github.com/shopspring/decimal"

// DustThreshold is the quantity below which an open position is treated as
// fully closed, absorbing floating-point dust left by partial sells. It is
// the single configurable constant for this policy; no computation hard-codes
// its own threshold.
var DustThreshold = decimal.New(1, -3) // 0.001

// Scoreboard is a portfolio-level snapshot reconciling three parallel
// equations over the same inputs:
//
//	cash flow:  TotalDeployed - TotalProceeds = NetInvested
//	portfolio:  CostBasisPriced + UnrealizedPL = MarketValue (priced subset)
//	returns:    TotalRealized + UnrealizedPL = TotalPL, over TotalDeployed
//
// CostBasis covers every open position; CostBasisPriced only those carrying
// a live quote, so callers can display an estimate without silently dropping
// unpriced cost. UnrealizedPL is nil while no open position has a price
// (HasAnyPrice false): returns must then be presented as realized-only.
type Scoreboard struct {
	TotalDeployed   decimal.Decimal  `json:"totalDeployed"`
	TotalProceeds   decimal.Decimal  `json:"totalProceeds"`
	NetInvested     decimal.Decimal  `json:"netInvested"`
	CostBasis       decimal.Decimal  `json:"costBasis"`
	CostBasisPriced decimal.Decimal  `json:"costBasisPriced"`
	MarketValue     decimal.Decimal  `json:"marketValue"`
	UnrealizedPL    *decimal.Decimal `json:"unrealizedPL,omitempty"`
	TotalRealized   decimal.Decimal  `json:"totalRealized"`
	TotalPL         decimal.Decimal  `json:"totalPL"`
	ReturnPct       decimal.Decimal  `json:"returnPct"`
	HasAnyPrice     bool             `json:"hasAnyPrice"`
}

// ComputeScoreboard derives the Scoreboard from raw transactions and priced
// holdings. The two inputs must come from the same transaction set; the
// holdings side is usually ApplyPrices(ComputeHoldings(txs), prices).
func ComputeScoreboard(txs []Transaction, holdings []Holding) Scoreboard {
	var sb Scoreboard

	for _, tx := range txs {
		if tx.Action == Buy {
			sb.TotalDeployed = sb.TotalDeployed.Add(tx.Balance.Abs())
		} else {
			sb.TotalProceeds = sb.TotalProceeds.Add(tx.Balance.Abs())
		}
	}
	sb.NetInvested = sb.TotalDeployed.Sub(sb.TotalProceeds)

	var unrealized decimal.Decimal
	for _, h := range holdings {
		sb.TotalRealized = sb.TotalRealized.Add(h.Realized)
		if !h.Quantity.IsPositive() {
			continue
		}
		sb.CostBasis = sb.CostBasis.Add(h.TotalCost)
		if h.MarketValue != nil {
			sb.MarketValue = sb.MarketValue.Add(*h.MarketValue)
			sb.CostBasisPriced = sb.CostBasisPriced.Add(h.TotalCost)
			unrealized = unrealized.Add(*h.Unrealized)
			sb.HasAnyPrice = true
		}
	}
	if sb.HasAnyPrice {
		sb.UnrealizedPL = &unrealized
	}

	sb.TotalPL = unrealized.Add(sb.TotalRealized)
	if sb.TotalDeployed.IsPositive() {
		sb.ReturnPct = sb.TotalPL.Div(sb.TotalDeployed).Mul(oneHundred)
	}
	return sb
}

// KPI summarizes priced holdings alone: market value, cost, unrealized gain
// and position counts. Unlike the Scoreboard it ignores raw cash flow, and
// it skips dust positions entirely.
type KPI struct {
	TotalValue         decimal.Decimal  `json:"totalValue"`
	TotalCost          decimal.Decimal  `json:"totalCost"`
	TotalCostPriced    decimal.Decimal  `json:"totalCostPriced"`
	TotalUnrealized    *decimal.Decimal `json:"totalUnrealized,omitempty"`
	TotalUnrealizedPct *decimal.Decimal `json:"totalUnrealizedPct,omitempty"`
	TotalRealized      decimal.Decimal  `json:"totalRealized"`
	TotalPL            *decimal.Decimal `json:"totalPL,omitempty"`
	PositionsTotal     int              `json:"positionsTotal"`
	PositionsPriced    int              `json:"positionsPriced"`
}

// ComputeKPI derives headline metrics from priced holdings. Positions whose
// quantity is below DustThreshold count as closed: their realized result is
// kept, everything else about them is ignored.
func ComputeKPI(holdings []Holding) KPI {
	var kpi KPI
	var unrealized decimal.Decimal
	priced := false

	for _, h := range holdings {
		kpi.TotalRealized = kpi.TotalRealized.Add(h.Realized)
		if h.Quantity.LessThan(DustThreshold) {
			continue
		}
		kpi.PositionsTotal++
		kpi.TotalCost = kpi.TotalCost.Add(h.TotalCost)
		if h.MarketValue != nil {
			kpi.TotalValue = kpi.TotalValue.Add(*h.MarketValue)
			kpi.TotalCostPriced = kpi.TotalCostPriced.Add(h.TotalCost)
			unrealized = unrealized.Add(*h.Unrealized)
			kpi.PositionsPriced++
			priced = true
		}
	}

	if priced {
		kpi.TotalUnrealized = &unrealized
		if kpi.TotalCostPriced.IsPositive() {
			pct := unrealized.Div(kpi.TotalCostPriced).Mul(oneHundred)
			kpi.TotalUnrealizedPct = &pct
		}
		pl := unrealized.Add(kpi.TotalRealized)
		kpi.TotalPL = &pl
	}
	return kpi
}
