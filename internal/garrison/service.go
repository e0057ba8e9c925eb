package garrison

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/napolitain/battle-lnk/internal/combat"
	"github.com/napolitain/battle-lnk/internal/models"
)

// Rules are the stats and constants a siege is resolved with
type Rules struct {
	Stats models.StatTable
	Siege models.SiegeParameters
}

// DefaultRules returns the stock stats and siege constants
func DefaultRules() Rules {
	return Rules{Stats: models.DefaultStatTable(), Siege: models.DefaultSiegeParameters()}
}

// SiegeReport is a resolved siege against a registered fortress together with
// the garrison groups after losses. Nothing is stored until Commit.
type SiegeReport struct {
	FortressID string                    `json:"fortress_id"`
	Result     *models.SiegeBattleResult `json:"result"`
	Groups     []models.UnitGroup        `json:"groups"`
}

// Service runs sieges against fortresses held in a Registry
type Service struct {
	registry Registry
	rules    func() Rules
	log      *zap.Logger
}

// NewService wires a registry. rules is called once per siege so a
// hot-reloaded configuration takes effect on the next call; nil means
// DefaultRules.
func NewService(registry Registry, rules func() Rules, log *zap.Logger) *Service {
	if rules == nil {
		rules = DefaultRules
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{registry: registry, rules: rules, log: log}
}

// ResolveSiegeAt sieges the fortress registered under id with attackers
// warriors. An unknown id yields errx.ErrNotFound.
func (s *Service) ResolveSiegeAt(ctx context.Context, id string, attackers int) (*SiegeReport, error) {
	f, err := s.registry.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rules := s.rules()
	res, err := combat.ResolveSiege(attackers, f.State(), rules.Stats, rules.Siege)
	if err != nil {
		return nil, err
	}

	groups, err := ApplyDivisionLosses(f.Groups, res.GarrisonLosses())
	if err != nil {
		return nil, fmt.Errorf("failed to apply garrison losses: %w", err)
	}

	s.log.Info("siege resolved",
		zap.String("fortress", id),
		zap.Int("attackers", attackers),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("rounds", res.Rounds),
		zap.Int("steps", res.Steps),
		zap.Float64("fort_hp", res.FinalFortHP),
		zap.Int("garrison_lost", res.GarrisonLosses().Total()),
	)

	return &SiegeReport{FortressID: id, Result: res, Groups: groups}, nil
}

// Commit writes the outcome of a siege back into the registry: the new wall
// HP and the surviving groups
func (s *Service) Commit(ctx context.Context, report *SiegeReport) error {
	f, err := s.registry.Get(ctx, report.FortressID)
	if err != nil {
		return err
	}
	f.FortHP = report.Result.FinalFortHP
	f.Groups = report.Groups

	if err := s.registry.Put(ctx, f); err != nil {
		return fmt.Errorf("failed to store fortress %s: %w", f.ID, err)
	}
	s.log.Debug("siege committed", zap.String("fortress", f.ID), zap.Float64("fort_hp", f.FortHP))
	return nil
}

// Fortresses lists every registered fortress
func (s *Service) Fortresses(ctx context.Context) ([]Fortress, error) {
	return s.registry.List(ctx)
}
