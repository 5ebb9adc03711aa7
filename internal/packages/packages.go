// Package packages maps a paid amount to the view-credit package it buys.
package packages

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	TierBasic    = "basic"
	TierStandard = "standard"
	TierPremium  = "premium"
	TierCustom   = "custom"
	TierAddOn    = "add_on"

	AddOnVerifiedBadge = "verified_badge"
	AddOnBoostProfile  = "boost_profile"
)

var (
	// PremiumPrice is the highest recognized list price. Anything above it buys
	// a custom package.
	PremiumPrice = decimal.NewFromInt(13000)
	// CustomStep is the amount that buys one extra view above PremiumPrice.
	CustomStep = decimal.NewFromInt(200)
	// MaxAmount is the largest value the ledger's numeric(12,2) amount column
	// holds. Larger amounts are credited as if they were MaxAmount.
	MaxAmount = decimal.RequireFromString("9999999999.99")
)

// Package is the result of resolving a payment.
type Package struct {
	Views int    `json:"views"`
	Tier  string `json:"tier"`
}

// Tier describes one fixed package for the public pricing page.
type Tier struct {
	Name   string            `json:"name"`
	Views  int               `json:"views"`
	Prices []decimal.Decimal `json:"prices"`
}

var tiers = []Tier{
	{Name: TierBasic, Views: 20, Prices: []decimal.Decimal{decimal.NewFromInt(5000), decimal.NewFromInt(4500)}},
	{Name: TierStandard, Views: 35, Prices: []decimal.Decimal{decimal.NewFromInt(8000), decimal.NewFromInt(7200)}},
	{Name: TierPremium, Views: 55, Prices: []decimal.Decimal{PremiumPrice, decimal.NewFromInt(11700)}},
}

var addOnPrices = map[string]decimal.Decimal{
	AddOnVerifiedBadge: decimal.NewFromInt(2000),
	AddOnBoostProfile:  decimal.NewFromInt(1500),
}

// Catalog returns the fixed tiers in ascending order.
func Catalog() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// AddOnPrice returns the list price of an add-on.
func AddOnPrice(addOn string) (decimal.Decimal, bool) {
	p, ok := addOnPrices[NormalizeAddOn(addOn)]
	return p, ok
}

// NormalizeAddOn returns the canonical add-on marker, or "" if s is not one.
func NormalizeAddOn(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case AddOnVerifiedBadge:
		return AddOnVerifiedBadge
	case AddOnBoostProfile:
		return AddOnBoostProfile
	}
	return ""
}

// Resolve maps an amount and optional add-on marker to a package. It never
// fails: unknown or missing amounts resolve to zero basic views.
func Resolve(amount *decimal.Decimal, addOn string) Package {
	if NormalizeAddOn(addOn) != "" {
		return Package{Views: 0, Tier: TierAddOn}
	}
	if amount == nil || !amount.IsPositive() {
		return Package{Views: 0, Tier: TierBasic}
	}

	for _, t := range tiers {
		for _, p := range t.Prices {
			if amount.Equal(p) {
				return Package{Views: t.Views, Tier: t.Name}
			}
		}
	}

	if amount.GreaterThan(PremiumPrice) {
		capped := decimal.Min(*amount, MaxAmount)
		extra := capped.Sub(PremiumPrice).Div(CustomStep).Floor().IntPart()
		return Package{Views: 55 + int(extra), Tier: TierCustom}
	}

	return Package{Views: 0, Tier: TierBasic}
}

// ParseAmount accepts the loosely typed amount values gateways send: JSON
// numbers, numeric strings ("8000.00", " 8,000 ") and decimals. It returns nil
// for anything it cannot read.
func ParseAmount(v any) *decimal.Decimal {
	var d decimal.Decimal
	switch x := v.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		d = x
	case *decimal.Decimal:
		return x
	case float64:
		d = decimal.NewFromFloat(x)
	case float32:
		d = decimal.NewFromFloat32(x)
	case int:
		d = decimal.NewFromInt(int64(x))
	case int64:
		d = decimal.NewFromInt(x)
	case json.Number:
		parsed, err := decimal.NewFromString(x.String())
		if err != nil {
			return nil
		}
		d = parsed
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		if s == "" {
			return nil
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return nil
		}
		d = parsed
	default:
		return nil
	}
	return &d
}
