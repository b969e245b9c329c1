package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-points/internal/models"
	"github.com/insightdelivered/statement-points/internal/rewards"
)

// RentRequest overrides the configured Bilt Cash settings. Omitted fields
// keep the configured value.
type RentRequest struct {
	MonthlyRent    *float64 `json:"monthlyRent"`
	EcosystemSpend *float64 `json:"ecosystemSpend"`
	BiltCash       *bool    `json:"biltCash"`
}

func (s *Server) rentSettings(r RentRequest) rewards.RentSettings {
	rent := rewards.RentSettings{
		MonthlyRent:           s.rewards.MonthlyRent,
		MonthlyEcosystemSpend: s.rewards.EcosystemSpend,
		Enabled:               s.rewards.BiltCash,
	}
	if r.MonthlyRent != nil {
		rent.MonthlyRent = *r.MonthlyRent
	}
	if r.EcosystemSpend != nil {
		rent.MonthlyEcosystemSpend = *r.EcosystemSpend
	}
	if r.BiltCash != nil {
		rent.Enabled = *r.BiltCash
	}
	return rent
}

// RewardsRequest is the body of /api/rewards.
type RewardsRequest struct {
	RentRequest
	Transactions []models.Transaction `json:"transactions"`
	Cards        []string             `json:"cards"`
}

// RewardsResponse compares the selected cards.
type RewardsResponse struct {
	Success         bool                       `json:"success"`
	TotalSpend      float64                    `json:"totalSpend"`
	SpendByCategory map[string]float64         `json:"spendByCategory"`
	Cards           []rewards.CardSummary      `json:"cards"`
	BiltCash        *rewards.BiltCashBreakdown `json:"biltCash,omitempty"`
}

func (s *Server) handleRewards(c *fiber.Ctx) error {
	var req RewardsRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}

	names := req.Cards
	if len(names) == 0 {
		names = s.rewards.Cards
	}
	keys := models.AllCardKeys
	if len(names) > 0 {
		keys = make([]models.CardKey, 0, len(names))
		for _, n := range names {
			k, err := models.ParseCardKey(n)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, err.Error())
			}
			keys = append(keys, k)
		}
	}

	rent := s.rentSettings(req.RentRequest)
	summaries, err := rewards.Compare(keys, req.Transactions, &rent)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	resp := RewardsResponse{
		Success:         true,
		TotalSpend:      rewards.TotalSpend(req.Transactions),
		SpendByCategory: rewards.SpendByCategory(req.Transactions),
		Cards:           summaries,
	}
	for _, k := range keys {
		if k == models.CardBilt {
			b := rewards.BiltCash(resp.TotalSpend, rent)
			resp.BiltCash = &b
			break
		}
	}
	return c.JSON(resp)
}

// OptimizeRequest is the body of /api/optimize.
type OptimizeRequest struct {
	RentRequest
	Transactions []models.Transaction `json:"transactions"`
	CardA        string               `json:"cardA"`
	CardB        string               `json:"cardB"`
}

// OptimizeResponse wraps a two-card routing plan.
type OptimizeResponse struct {
	Success bool `json:"success"`
	*rewards.Optimization
}

func (s *Server) handleOptimize(c *fiber.Ctx) error {
	var req OptimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.CardA == "" {
		req.CardA = s.rewards.CardA
	}
	if req.CardB == "" {
		req.CardB = s.rewards.CardB
	}

	a, b, err := rewards.ParsePair(req.CardA, req.CardB)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	rent := s.rentSettings(req.RentRequest)
	opt, err := rewards.Optimize(a, b, req.Transactions, &rent)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(OptimizeResponse{Success: true, Optimization: opt})
}
