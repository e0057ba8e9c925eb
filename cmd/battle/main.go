package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/napolitain/battle-lnk/internal/combat"
	"github.com/napolitain/battle-lnk/internal/config"
	"github.com/napolitain/battle-lnk/internal/garrison"
	"github.com/napolitain/battle-lnk/internal/loader"
	"github.com/napolitain/battle-lnk/internal/logs"
	"github.com/napolitain/battle-lnk/internal/models"
	"github.com/napolitain/battle-lnk/internal/report"
)

var (
	configFile string
	dataDir    string
	attacker   models.Division
	defender   models.Division
	encounter  string
	seed       uint64
	noVariance bool
	squadSize  int
	timeline   bool
	listOnly   bool
	jsonOut    bool
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "battle",
		Short: "Resolve a field battle between two divisions",
		Long: `Runs skirmish, melee and pursuit between an attacking and a defending
division, either given explicitly or taken from a named encounter.`,
		Run: runBattle,
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to config file")
	rootCmd.Flags().StringVarP(&dataDir, "data", "d", "", "Path to data directory (overrides data_dir)")
	rootCmd.Flags().IntVarP(&attacker.Warrior, "warriors", "w", 100, "Attacking warriors")
	rootCmd.Flags().IntVarP(&attacker.Archer, "archers", "a", 0, "Attacking archers")
	rootCmd.Flags().IntVar(&defender.Warrior, "enemy-warriors", 10, "Defending warriors")
	rootCmd.Flags().IntVar(&defender.Archer, "enemy-archers", 0, "Defending archers")
	rootCmd.Flags().StringVarP(&encounter, "encounter", "e", "", "Fight a named encounter instead of --enemy-*")
	rootCmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "Random seed (0 picks one)")
	rootCmd.Flags().BoolVar(&noVariance, "no-variance", false, "Disable per-tick noise")
	rootCmd.Flags().IntVar(&squadSize, "squad-size", models.DefaultSquadSize, "Squad size used to show surviving squads")
	rootCmd.Flags().BoolVarP(&timeline, "timeline", "t", false, "Print the tick timeline")
	rootCmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List encounters and exit")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBattle(cmd *cobra.Command, args []string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)

	cfg, err := config.Load(configFile)
	if err != nil {
		color.Red("Error loading config: %v", err)
		os.Exit(1)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	_ = logs.Init("battle", cfg.Log)
	defer func() { _ = logs.Sync() }()

	if !quiet && !jsonOut {
		titleColor.Println("\n╭───────────────────────────╮")
		titleColor.Println("│  Lords and Knights        │")
		titleColor.Println("│  Field Battle Resolver    │")
		titleColor.Println("╰───────────────────────────╯")
		fmt.Println()
	}

	if listOnly || encounter != "" {
		encounters, err := loader.LoadEncounters(cfg.DataDir)
		if err != nil {
			color.Red("Error loading encounters: %v", err)
			os.Exit(1)
		}
		if listOnly {
			printEncounters(encounters)
			return
		}
		enc, err := loader.FindEncounter(encounters, encounter)
		if err != nil {
			color.Red("%v", err)
			os.Exit(1)
		}
		defender = enc.Enemy
		if !quiet && !jsonOut {
			infoColor.Printf("🗺  %s: %s\n\n", enc.Name, enc.Description)
		}
	}

	params := cfg.Battle
	if noVariance {
		params.RNGVariance = 0
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	logs.Debug("resolving battle",
		zap.Int("attacker", attacker.Total()),
		zap.Int("defender", defender.Total()),
		zap.Uint64("seed", seed),
		zap.Float64("variance", params.RNGVariance),
	)

	res, err := combat.Resolve(attacker, defender, cfg.Stats, params, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		color.Red("Invalid battle: %v", err)
		os.Exit(1)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			color.Red("Error encoding result: %v", err)
			os.Exit(1)
		}
		return
	}

	report.PrintBattle(os.Stdout, res, report.Options{Timeline: timeline})

	if quiet {
		return
	}
	fmt.Println()
	infoColor.Printf("🎲 Seed %d\n\n", seed)

	// Raise the attacker as fresh banners and write the losses into them
	var banners []models.UnitGroup
	for _, ut := range models.AllUnitTypes() {
		if n := attacker.Get(ut); n > 0 {
			banners = append(banners, models.NewUnitGroup("attacker-"+string(ut), "player", ut, n, squadSize))
		}
	}
	if len(banners) == 0 {
		return
	}
	survivors, err := garrison.ApplyDivisionLosses(banners, res.Attacker.Losses)
	if err != nil {
		color.Red("Error applying losses: %v", err)
		os.Exit(1)
	}
	infoColor.Println("🪖 Attacker squads after the battle:")
	report.PrintGroups(os.Stdout, survivors)
}

func printEncounters(encounters []models.Encounter) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Encounter", "Kind", "Warriors", "Archers", "Description"}),
	)
	for _, e := range encounters {
		_ = table.Append([]string{
			e.Name,
			string(e.Kind),
			fmt.Sprintf("%d", e.Enemy.Warrior),
			fmt.Sprintf("%d", e.Enemy.Archer),
			e.Description,
		})
	}
	_ = table.Render()
}
