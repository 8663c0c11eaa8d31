// Command reignsim runs a scripted demo game against the rules engine and
// records its chronicle to SQLite.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/slices"

	"github.com/talgya/hexreign/internal/engine"
	"github.com/talgya/hexreign/internal/persistence"
	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/state"
	"github.com/talgya/hexreign/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfgPath := "reignsim.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("hexreign sim", "seed", cfg.Seed, "tribes", cfg.Tribes, "max_turns", cfg.MaxTurns)

	// ── Chronicle store ───────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	store, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	gameID, err := store.CreateGame(cfg.Seed, cfg.Tribes)
	if err != nil {
		slog.Error("failed to register game", "error", err)
		os.Exit(1)
	}
	slog.Info("game registered", "id", gameID, "db", cfg.DBPath)

	// ── World ─────────────────────────────────────────────────────────
	genCfg := world.DefaultGenConfig()
	genCfg.Radius = cfg.MapRadius
	genCfg.Seed = cfg.Seed
	worldMap := world.Generate(genCfg)
	slog.Info("map generated", "tiles", worldMap.TileCount(), "radius", genCfg.Radius)

	// ── Game setup ────────────────────────────────────────────────────
	eng := engine.New(rules.DefaultCatalog(), worldMap, cfg.Seed)

	var seats []engine.Seat
	for _, t := range cfg.Tribes {
		seats = append(seats, engine.Seat{Kind: rules.TribeKind(t)})
	}
	gs := eng.NewGame(seats, cfg.MaxTurns)

	starts := startingPositions(worldMap, len(seats))
	if len(starts) < len(seats) {
		slog.Error("not enough founding sites on this map", "found", len(starts))
		os.Exit(1)
	}
	for i, p := range gs.Players {
		ns, sett, err := eng.FoundSettlement(gs, p.Tribe, starts[i], true)
		if err != nil {
			slog.Error("failed to found capital", "tribe", p.Tribe, "error", err)
			os.Exit(1)
		}
		gs = ns
		record(store, gameID, gs.Turn, int(p.Tribe), "founding",
			fmt.Sprintf("%s founds their capital %s", p.Name, sett.Name))
	}

	// ── Scripted turns ────────────────────────────────────────────────
	for gs.Turn <= cfg.MaxTurns {
		tribe := gs.CurrentPlayer
		gs = playTurn(eng, gs, store, gameID)

		p := gs.Player(tribe)
		stats := persistence.TurnStats{
			Turn:         gs.Turn,
			Tribe:        int(tribe),
			Treasury:     p.Treasury,
			ActiveRoutes: p.GreatPeople.ActiveTradeRoutes,
		}
		for _, sett := range gs.Settlements {
			if sett.Owner == tribe {
				stats.Settlements++
				stats.Population += sett.Population
			}
		}
		if err := store.RecordTurnStats(gameID, stats); err != nil {
			slog.Error("failed to record stats", "error", err)
		}
	}

	// ── Report ────────────────────────────────────────────────────────
	fmt.Printf("\nGame %s complete after %d turns.\n", gameID, cfg.MaxTurns)
	for _, p := range gs.Players {
		sum := eng.TradeSummaryFor(gs, p.Tribe)
		fmt.Printf("  %-10s treasury %s gold, %d settlements, %d active routes (%s/turn trade income)\n",
			p.Name,
			humanize.Comma(int64(p.Treasury)),
			countSettlements(gs, p.Tribe),
			sum.Active,
			humanize.Comma(int64(sum.Income)),
		)
	}
}

// playTurn issues a simple scripted policy for the current player: keep
// research and production running, open trade routes when possible, end turn.
func playTurn(eng *engine.Engine, gs *state.GameState, store *persistence.Store, gameID string) *state.GameState {
	tribe := gs.CurrentPlayer
	p := gs.Player(tribe)

	if p.CurrentResearch == "" {
		if techs := eng.AvailableTechs(gs, tribe); len(techs) > 0 {
			best := techs[0]
			for _, t := range techs[1:] {
				if t.Capacity > best.Capacity || (t.Capacity == best.Capacity && t.Cost < best.Cost) {
					best = t
				}
			}
			if ns, err := eng.ApplyAction(gs, engine.Action{
				Type: engine.ActionStartResearch, Actor: tribe, Tech: best.ID,
			}); err == nil {
				gs = ns
			}
		}
	}

	for _, sett := range ownSettlements(gs, tribe) {
		if len(sett.ProductionQueue) > 0 {
			continue
		}
		choices := eng.AvailableProduction(gs, sett)
		if len(choices) == 0 {
			continue
		}
		if ns, err := eng.ApplyAction(gs, engine.Action{
			Type:            engine.ActionStartProduction,
			Actor:           tribe,
			Settlement:      sett.ID,
			Produce:         choices[0].Item.Type,
			ProduceUnit:     choices[0].Item.UnitID,
			ProduceBuilding: choices[0].Item.Building,
		}); err == nil {
			gs = ns
		}
	}

	gs = tryOpenTradeRoute(eng, gs, store, gameID, tribe)

	ns, err := eng.ApplyAction(gs, engine.Action{Type: engine.ActionEndTurn, Actor: tribe})
	if err != nil {
		slog.Error("end turn rejected", "tribe", tribe, "error", err)
		return gs
	}
	return ns
}

// tryOpenTradeRoute connects the tribe's first two settlements once capacity
// allows.
func tryOpenTradeRoute(eng *engine.Engine, gs *state.GameState, store *persistence.Store, gameID string, tribe state.TribeID) *state.GameState {
	sum := eng.TradeSummaryFor(gs, tribe)
	if sum.Forming+sum.Active >= sum.Capacity {
		return gs
	}
	own := ownSettlements(gs, tribe)
	if len(own) < 2 {
		return gs
	}
	ns, err := eng.ApplyAction(gs, engine.Action{
		Type:       engine.ActionCreateTradeRoute,
		Actor:      tribe,
		Settlement: own[0].ID,
		TargetSett: own[1].ID,
	})
	if err != nil {
		return gs
	}
	record(store, gameID, ns.Turn, int(tribe), "trade",
		fmt.Sprintf("trade route opened between %s and %s", own[0].Name, own[1].Name))
	return ns
}

// startingPositions picks mutually distant founding sites, scanning tiles in
// deterministic order.
func startingPositions(m *world.Map, count int) []world.HexCoord {
	var picked []world.HexCoord
	for q := -m.Radius; q <= m.Radius; q++ {
		for r := -m.Radius; r <= m.Radius; r++ {
			c := world.HexCoord{Q: q, R: r}
			tile := m.Get(c)
			if tile == nil || !tile.Claimable() {
				continue
			}
			ok := true
			for _, prev := range picked {
				if world.Distance(c, prev) < 6 {
					ok = false
					break
				}
			}
			if ok {
				picked = append(picked, c)
				if len(picked) == count {
					return picked
				}
			}
		}
	}
	return picked
}

// ownSettlements returns the tribe's settlements in id order so the script
// replays identically for a given seed regardless of map iteration order.
func ownSettlements(gs *state.GameState, tribe state.TribeID) []*state.Settlement {
	var ids []state.SettlementID
	for id, sett := range gs.Settlements {
		if sett.Owner == tribe {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	setts := make([]*state.Settlement, len(ids))
	for i, id := range ids {
		setts[i] = gs.Settlements[id]
	}
	return setts
}

func countSettlements(gs *state.GameState, tribe state.TribeID) int {
	n := 0
	for _, sett := range gs.Settlements {
		if sett.Owner == tribe {
			n++
		}
	}
	return n
}

func record(store *persistence.Store, gameID string, turn, tribe int, category, desc string) {
	err := store.RecordEvent(gameID, persistence.Event{
		Turn: turn, Tribe: tribe, Category: category, Description: desc,
	})
	if err != nil {
		slog.Error("failed to record event", "error", err)
	}
}
