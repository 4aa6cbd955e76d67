package service

import (
	"context"
	"sort"

	"levscore/internal/model"
	"levscore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ABC tier cutoffs on accumulated revenue share (percent).
var (
	tierACutoff = decimal.NewFromInt(80)
	tierBCutoff = decimal.NewFromInt(95)
	hundred     = decimal.NewFromInt(100)
)

// Component score weights for the derived total. Revenue performance
// dominates; assortment breadth and margin quality balance the rest.
var (
	weightSales      = decimal.NewFromFloat(0.40)
	weightAssortment = decimal.NewFromFloat(0.20)
	weightEfficiency = decimal.NewFromFloat(0.20)
	weightMargin     = decimal.NewFromFloat(0.20)
)

type ScoreService interface {
	// Recompute recalculates revenue shares, accumulated shares, and ABC
	// tiers for every supplier in the organization.
	Recompute(ctx context.Context, orgID uuid.UUID) error
}

type scoreService struct {
	suppliers repository.SupplierRepository
}

func NewScoreService(suppliers repository.SupplierRepository) ScoreService {
	return &scoreService{suppliers: suppliers}
}

func (s *scoreService) Recompute(ctx context.Context, orgID uuid.UUID) error {
	suppliers, err := s.suppliers.ListByOrg(ctx, orgID)
	if err != nil {
		return err
	}

	refs := make([]*model.Supplier, len(suppliers))
	for i := range suppliers {
		refs[i] = &suppliers[i]
	}
	RecomputeShares(refs)

	for _, sup := range refs {
		if err := s.suppliers.Update(ctx, sup); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeShares fills RevenueShare, AccumulatedShare, and Tier for the
// given suppliers. Shares are percentages of total revenue, accumulated in
// descending revenue order. Decimal arithmetic keeps the accumulation exact;
// float64 summation drifts on long tails.
//
// A tier carried in from the spreadsheet is authoritative: recomputation
// only fills tiers that are absent.
func RecomputeShares(suppliers []*model.Supplier) {
	sort.SliceStable(suppliers, func(i, j int) bool {
		return suppliers[i].TotalRevenue > suppliers[j].TotalRevenue
	})

	total := decimal.Zero
	for _, s := range suppliers {
		total = total.Add(decimal.NewFromFloat(s.TotalRevenue))
	}

	if total.IsZero() {
		for _, s := range suppliers {
			s.RevenueShare = 0
			s.AccumulatedShare = 0
			if s.Tier == nil {
				tier := deriveTier(decimal.Zero)
				s.Tier = &tier
			}
			fillTotalScore(s)
		}
		return
	}

	accumulated := decimal.Zero
	for _, s := range suppliers {
		share := decimal.NewFromFloat(s.TotalRevenue).Mul(hundred).Div(total)
		accumulated = accumulated.Add(share)

		s.RevenueShare, _ = share.Round(4).Float64()
		s.AccumulatedShare, _ = accumulated.Round(4).Float64()

		if s.Tier == nil {
			tier := deriveTier(accumulated)
			s.Tier = &tier
		}
		fillTotalScore(s)
	}
}

// fillTotalScore derives the weighted total from the component scores when
// the sheet did not supply one. An imported total is authoritative, same
// rule as tiers.
func fillTotalScore(s *model.Supplier) {
	if s.TotalScore != 0 {
		return
	}
	total := decimal.NewFromFloat(s.SalesScore).Mul(weightSales).
		Add(decimal.NewFromFloat(s.AssortmentScore).Mul(weightAssortment)).
		Add(decimal.NewFromFloat(s.EfficiencyScore).Mul(weightEfficiency)).
		Add(decimal.NewFromFloat(s.MarginScore).Mul(weightMargin))
	s.TotalScore, _ = total.Round(2).Float64()
}

// deriveTier maps an accumulated share to an ABC tier:
// A up to 80%, B up to 95%, C beyond.
func deriveTier(accumulated decimal.Decimal) string {
	switch {
	case accumulated.LessThanOrEqual(tierACutoff):
		return "A"
	case accumulated.LessThanOrEqual(tierBCutoff):
		return "B"
	default:
		return "C"
	}
}
