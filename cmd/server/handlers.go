package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/napolitain/battle-lnk/internal/combat"
	"github.com/napolitain/battle-lnk/internal/config"
	"github.com/napolitain/battle-lnk/internal/errx"
	"github.com/napolitain/battle-lnk/internal/garrison"
	"github.com/napolitain/battle-lnk/internal/loader"
	"github.com/napolitain/battle-lnk/internal/losses"
	"github.com/napolitain/battle-lnk/internal/models"
)

// ruleSet is the hot-reloadable part of the configuration
type ruleSet struct {
	Stats  models.StatTable
	Battle models.BattleParameters
	Siege  models.SiegeParameters
}

func rulesFrom(cfg *config.Config) *ruleSet {
	return &ruleSet{Stats: cfg.Stats, Battle: cfg.Battle, Siege: cfg.Siege}
}

// server exposes the engine over HTTP
type server struct {
	rules      atomic.Pointer[ruleSet]
	garrison   *garrison.Service
	encounters []models.Encounter
	log        *zap.Logger
}

func newServer(cfg *config.Config, registry garrison.Registry, encounters []models.Encounter, log *zap.Logger) *server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &server{encounters: encounters, log: log}
	s.rules.Store(rulesFrom(cfg))
	s.garrison = garrison.NewService(registry, s.siegeRules, log)
	return s
}

func (s *server) siegeRules() garrison.Rules {
	r := s.rules.Load()
	return garrison.Rules{Stats: r.Stats, Siege: r.Siege}
}

// reload swaps in new rules; in-flight requests keep the ones they loaded
func (s *server) reload(cfg *config.Config) {
	s.rules.Store(rulesFrom(cfg))
}

func (s *server) routes(engine *gin.Engine) {
	engine.Use(accessLog(s.log))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.GET("/rules", s.getRules)
	api.GET("/encounters", s.listEncounters)
	api.POST("/battles", s.resolveBattle)
	api.POST("/sieges", s.resolveSiege)
	api.GET("/fortresses", s.listFortresses)
	api.POST("/fortresses/:id/siege", s.siegeFortress)
	api.POST("/losses/groups", s.distributeAcrossGroups)
	api.POST("/losses/squads", s.distributeLosses)
}

func accessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		log.Info("access",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// writeError maps coded errors to HTTP statuses
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code, _ := errx.CodeOf(err)
	switch code {
	case errx.CodeInvalidInput:
		status = http.StatusBadRequest
	case errx.CodeNotFound:
		status = http.StatusNotFound
	}
	if errors.Is(err, context.Canceled) {
		status = http.StatusRequestTimeout
	}
	c.JSON(status, gin.H{"code": code, "error": err.Error()})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"code": errx.CodeInvalidInput, "error": err.Error()})
}

// seedOf returns the requested seed, or a fresh one when none was sent
func seedOf(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	return rand.Uint64()
}

func newPCG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func (s *server) getRules(c *gin.Context) {
	r := s.rules.Load()
	c.JSON(http.StatusOK, gin.H{"stats": r.Stats, "battle": r.Battle, "siege": r.Siege})
}

func (s *server) listEncounters(c *gin.Context) {
	c.JSON(http.StatusOK, s.encounters)
}

type battleRequest struct {
	Attacker  models.Division `json:"attacker"`
	Defender  models.Division `json:"defender"`
	Encounter string          `json:"encounter"`
	Seed      *uint64         `json:"seed"`
}

func (s *server) resolveBattle(c *gin.Context) {
	var req battleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	defender := req.Defender
	if req.Encounter != "" {
		enc, err := loader.FindEncounter(s.encounters, req.Encounter)
		if err != nil {
			writeError(c, err)
			return
		}
		defender = enc.Enemy
	}

	r := s.rules.Load()
	res, err := combat.Resolve(req.Attacker, defender, r.Stats, r.Battle, newPCG(seedOf(req.Seed)))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type siegeRequest struct {
	Attackers int                  `json:"attackers"`
	Fortress  models.FortressState `json:"fortress"`
}

func (s *server) resolveSiege(c *gin.Context) {
	var req siegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	r := s.rules.Load()
	res, err := combat.ResolveSiege(req.Attackers, req.Fortress, r.Stats, r.Siege)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *server) listFortresses(c *gin.Context) {
	list, err := s.garrison.Fortresses(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type fortressSiegeRequest struct {
	Attackers int  `json:"attackers"`
	Commit    bool `json:"commit"`
}

func (s *server) siegeFortress(c *gin.Context) {
	var req fortressSiegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	report, err := s.garrison.ResolveSiegeAt(ctx, c.Param("id"), req.Attackers)
	if err != nil {
		writeError(c, err)
		return
	}
	if req.Commit {
		if err := s.garrison.Commit(ctx, report); err != nil {
			writeError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, report)
}

type groupLossesRequest struct {
	Shares []losses.GroupShare `json:"shares"`
	Total  float64             `json:"total"`
}

func (s *server) distributeAcrossGroups(c *gin.Context) {
	var req groupLossesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	allocs, err := losses.DistributeAcrossGroups(req.Shares, req.Total)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, allocs)
}

type squadLossesRequest struct {
	Group  models.UnitGroup `json:"group"`
	Losses int              `json:"losses"`
	Seed   *uint64          `json:"seed"`
}

func (s *server) distributeLosses(c *gin.Context) {
	var req squadLossesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	group, err := garrison.ApplyGroupLosses(req.Group, req.Losses, newPCG(seedOf(req.Seed)))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}
