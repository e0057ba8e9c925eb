// Package report renders battle and siege results for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/battle-lnk/internal/models"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgYellow)
)

// Options controls how much is printed
type Options struct {
	Timeline bool
}

// PrintBattle writes a field battle summary and, optionally, its tick timeline
func PrintBattle(w io.Writer, res *models.BattleResult, opts Options) {
	titleColor.Fprintln(w, "⚔  Field battle")
	fmt.Fprintln(w)

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Side", "Warriors", "Archers", "Lost", "Morale", "Break at"}),
	)
	for _, s := range []struct {
		name string
		r    models.SideReport
	}{{"Attacker", res.Attacker}, {"Defender", res.Defender}} {
		_ = table.Append([]string{
			s.name,
			fmt.Sprintf("%d → %d", s.r.Initial.Warrior, s.r.Final.Warrior),
			fmt.Sprintf("%d → %d", s.r.Initial.Archer, s.r.Final.Archer),
			fmt.Sprintf("%d", s.r.Losses.Total()),
			fmt.Sprintf("%.1f → %.1f", s.r.InitialMorale, s.r.FinalMorale),
			fmt.Sprintf("%.1f", s.r.BreakThreshold),
		})
	}
	_ = table.Render()
	fmt.Fprintln(w)

	switch res.Winner {
	case models.WinnerAttacker:
		successColor.Fprintf(w, "🏆 Attacker wins after %d ticks\n", res.Ticks)
	case models.WinnerDefender:
		failColor.Fprintf(w, "🛡  Defender holds after %d ticks\n", res.Ticks)
	default:
		infoColor.Fprintf(w, "🤝 Draw after %d ticks\n", res.Ticks)
	}

	if opts.Timeline && len(res.Timeline) > 0 {
		fmt.Fprintln(w)
		printTicks(w, res.Timeline)
	}
}

func printTicks(w io.Writer, timeline []models.TickRecord) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Tick", "Phase", "Attacker", "Defender", "Att. morale", "Def. morale", "Att. lost", "Def. lost"}),
	)
	for _, r := range timeline {
		_ = table.Append([]string{
			fmt.Sprintf("%d", r.Tick),
			phaseName(r.Phase),
			formatTroops(r.Attacker),
			formatTroops(r.Defender),
			fmt.Sprintf("%.1f", r.AttackerMorale),
			fmt.Sprintf("%.1f", r.DefenderMorale),
			fmt.Sprintf("%.2f", r.AttackerCasualties),
			fmt.Sprintf("%.2f", r.DefenderCasualties),
		})
	}
	_ = table.Render()
}

// PrintSiege writes a siege summary and, optionally, both timelines
func PrintSiege(w io.Writer, res *models.SiegeBattleResult, opts Options) {
	titleColor.Fprintln(w, "🏰 Siege")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "   Walls:     %.0f → %.0f HP over %d rounds\n", res.InitialFortHP, res.FinalFortHP, res.Rounds)
	fmt.Fprintf(w, "   Attackers: %d → %d\n", res.InitialAttackers, res.FinalAttackers)
	fmt.Fprintf(w, "   Garrison:  %s → %s\n", formatDivision(res.InitialGarrison), formatDivision(res.FinalGarrison))
	if res.Steps > 0 {
		fmt.Fprintf(w, "   Inner battle: %d steps\n", res.Steps)
	}
	fmt.Fprintln(w)

	switch res.Outcome {
	case models.OutcomeWallsHold:
		successColor.Fprintln(w, "🛡  The walls hold")
	case models.OutcomeInnerHolds:
		successColor.Fprintln(w, "🛡  The walls fell but the garrison holds")
	case models.OutcomeFalls:
		failColor.Fprintln(w, "🔥 The fortress falls")
	default:
		infoColor.Fprintln(w, "⏳ Stalemate")
	}

	if !opts.Timeline {
		return
	}
	if len(res.OuterTimeline) > 0 {
		fmt.Fprintln(w)
		table := tablewriter.NewTable(w,
			tablewriter.WithHeader([]string{"Round", "Fort HP", "Attackers", "Archers", "Killed", "Wall dmg"}),
		)
		for _, r := range res.OuterTimeline {
			_ = table.Append([]string{
				fmt.Sprintf("%d", r.Round),
				fmt.Sprintf("%.0f", r.FortHP),
				fmt.Sprintf("%.1f", r.Attackers),
				fmt.Sprintf("%d", r.ActiveArchers),
				fmt.Sprintf("%.1f", r.AttackersKilled),
				fmt.Sprintf("%.1f", r.FortDamage),
			})
		}
		_ = table.Render()
	}
	if len(res.InnerTimeline) > 0 {
		fmt.Fprintln(w)
		table := tablewriter.NewTable(w,
			tablewriter.WithHeader([]string{"Step", "Phase", "Attackers", "Def. warriors", "Def. archers", "Att. lost", "Def. lost"}),
		)
		for _, s := range res.InnerTimeline {
			_ = table.Append([]string{
				fmt.Sprintf("%d", s.Step),
				phaseName(s.Phase),
				fmt.Sprintf("%.1f", s.Attackers),
				fmt.Sprintf("%.1f", s.DefenderWarriors),
				fmt.Sprintf("%.1f", s.DefenderArchers),
				fmt.Sprintf("%.2f", s.AttackerCasualties),
				fmt.Sprintf("%.2f", s.DefenderCasualties),
			})
		}
		_ = table.Render()
	}
}

func phaseName(p models.Phase) string {
	s := string(p)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatTroops(t models.Troops) string {
	return fmt.Sprintf("%.1fW %.1fA", t.Warrior, t.Archer)
}

func formatDivision(d models.Division) string {
	return fmt.Sprintf("%dW %dA", d.Warrior, d.Archer)
}

// PrintGroups lists every squad of the given groups
func PrintGroups(w io.Writer, groups []models.UnitGroup) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Group", "Squad", "Type", "Size"}),
	)
	for _, g := range groups {
		for _, s := range g.Squads {
			_ = table.Append([]string{
				g.ID,
				s.ID,
				string(s.Type),
				fmt.Sprintf("%d/%d", s.CurrentSize, s.MaxSize),
			})
		}
	}
	_ = table.Render()
}
