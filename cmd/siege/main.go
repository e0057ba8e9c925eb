package main

import (
	"context"
	"encoding/json"
	"fmt"
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
	attackers  int
	fortress   models.FortressState
	fortressID string
	timeline   bool
	listOnly   bool
	jsonOut    bool
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "siege",
		Short: "Resolve a siege against a fortress",
		Long: `Runs the outer wall siege and, if the walls fall with defenders inside,
the inner battle. The fortress is given by flags or picked by id from
data/fortresses.yaml.`,
		Run: runSiege,
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to config file")
	rootCmd.Flags().StringVarP(&dataDir, "data", "d", "", "Path to data directory (overrides data_dir)")
	rootCmd.Flags().IntVarP(&attackers, "attackers", "n", 50, "Attacking warriors")
	rootCmd.Flags().Float64Var(&fortress.FortHP, "fort-hp", 2000, "Wall hit points")
	rootCmd.Flags().Float64Var(&fortress.MaxFortHP, "max-fort-hp", 0, "Wall hit point cap (0 means uncapped)")
	rootCmd.Flags().IntVar(&fortress.ArcherSlots, "archer-slots", 10, "Archer positions on the walls")
	rootCmd.Flags().IntVar(&fortress.GarrisonWarriors, "garrison-warriors", 20, "Defending warriors")
	rootCmd.Flags().IntVar(&fortress.GarrisonArchers, "garrison-archers", 10, "Defending archers")
	rootCmd.Flags().StringVarP(&fortressID, "fortress", "f", "", "Siege a fortress from the data directory by id")
	rootCmd.Flags().BoolVarP(&timeline, "timeline", "t", false, "Print round and step timelines")
	rootCmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List fortresses and exit")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSiege(cmd *cobra.Command, args []string) {
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
	_ = logs.Init("siege", cfg.Log)
	defer func() { _ = logs.Sync() }()

	if !quiet && !jsonOut {
		titleColor.Println("\n╭───────────────────────────╮")
		titleColor.Println("│  Lords and Knights        │")
		titleColor.Println("│  Siege Resolver           │")
		titleColor.Println("╰───────────────────────────╯")
		fmt.Println()
	}

	if listOnly || fortressID != "" {
		runRegistered(cfg, infoColor)
		return
	}

	logs.Debug("resolving siege", zap.Int("attackers", attackers), zap.Float64("fort_hp", fortress.FortHP))
	res, err := combat.ResolveSiege(attackers, fortress, cfg.Stats, cfg.Siege)
	if err != nil {
		color.Red("Invalid siege: %v", err)
		os.Exit(1)
	}
	printResult(res)
}

// runRegistered sieges a fortress loaded from the data directory
func runRegistered(cfg *config.Config, infoColor *color.Color) {
	fortresses, err := loader.LoadFortresses(cfg.DataDir)
	if err != nil {
		color.Red("Error loading fortresses: %v", err)
		os.Exit(1)
	}
	if listOnly {
		printFortresses(fortresses)
		return
	}

	rules := func() garrison.Rules { return garrison.Rules{Stats: cfg.Stats, Siege: cfg.Siege} }
	svc := garrison.NewService(garrison.NewMemoryRegistry(fortresses...), rules, logs.Logger())

	rep, err := svc.ResolveSiegeAt(context.Background(), fortressID, attackers)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
	printResult(rep.Result)

	if !quiet && !jsonOut {
		fmt.Println()
		infoColor.Printf("🪖 Garrison of %s after the siege:\n", fortressID)
		report.PrintGroups(os.Stdout, rep.Groups)
	}
}

func printResult(res *models.SiegeBattleResult) {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			color.Red("Error encoding result: %v", err)
			os.Exit(1)
		}
		return
	}
	report.PrintSiege(os.Stdout, res, report.Options{Timeline: timeline})
}

func printFortresses(fortresses []garrison.Fortress) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "Name", "Fort HP", "Archer slots", "Warriors", "Archers"}),
	)
	for _, f := range fortresses {
		st := f.State()
		_ = table.Append([]string{
			f.ID,
			f.Name,
			fmt.Sprintf("%.0f", st.FortHP),
			fmt.Sprintf("%d", st.ArcherSlots),
			fmt.Sprintf("%d", st.GarrisonWarriors),
			fmt.Sprintf("%d", st.GarrisonArchers),
		})
	}
	_ = table.Render()
}
