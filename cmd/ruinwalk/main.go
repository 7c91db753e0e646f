package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ruinwalk/internal/analysis"
	"github.com/san-kum/ruinwalk/internal/config"
	"github.com/san-kum/ruinwalk/internal/storage"
	"github.com/san-kum/ruinwalk/internal/viz"
	"github.com/san-kum/ruinwalk/internal/walk"
)

var (
	dataDir    string
	goal       int
	start      int
	winProb    float64
	steps      float64
	chunk      int
	configFile string
	preset     string
	frameRate  int
	barWidth   int

	liveChunk    int
	analyzeSteps float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ruinwalk",
		Short: "gambler's ruin markov chain lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ruinwalk", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "advance the chain and record the distribution",
		RunE:  runWalk,
	}
	addChainFlags(runCmd)
	runCmd.Flags().Float64Var(&steps, "steps", config.DefaultSteps, "total steps to advance")
	runCmd.Flags().IntVar(&chunk, "chunk", config.DefaultChunk, "steps per recorded snapshot")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().IntVar(&barWidth, "bar-width", 40, "distribution bar width")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the distribution evolve in the terminal",
		RunE:  runLive,
	}
	addChainFlags(liveCmd)
	liveCmd.Flags().IntVar(&liveChunk, "chunk", 1, "steps per frame")
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	matrixCmd := &cobra.Command{
		Use:   "matrix",
		Short: "print the transition matrix",
		RunE:  printMatrix,
	}
	addChainFlags(matrixCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "closed-form absorption probabilities and duration",
		RunE:  analyzeChain,
	}
	addChainFlags(analyzeCmd)
	analyzeCmd.Flags().Float64Var(&analyzeSteps, "steps", 1000, "steps for the simulated comparison")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s goal=%d start=%d p=%.4f steps=%.0f\n",
					name, cfg.Goal, cfg.Start, cfg.WinProb, cfg.Steps)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot absorption mass over a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export recorded distributions to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	rootCmd.AddCommand(runCmd, liveCmd, matrixCmd, analyzeCmd, presetsCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addChainFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&goal, "goal", config.DefaultGoal, "target bankroll N")
	cmd.Flags().IntVar(&start, "start", config.DefaultStart, "starting bankroll n")
	cmd.Flags().Float64Var(&winProb, "p", config.DefaultWinProb, "per-step win probability")
}

// applyConfig layers preset < config file < explicit flags, the same
// precedence the flags carry elsewhere in this CLI.
func applyConfig(cmd *cobra.Command) error {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		goal = cfg.Goal
		start = cfg.Start
		winProb = cfg.WinProb
		steps = cfg.Steps
		if cfg.Chunk > 0 {
			chunk = cfg.Chunk
		}
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("goal") {
			goal = cfg.Goal
		}
		if !cmd.Flags().Changed("start") {
			start = cfg.Start
		}
		if !cmd.Flags().Changed("p") {
			winProb = cfg.WinProb
		}
		if !cmd.Flags().Changed("steps") {
			steps = cfg.Steps
		}
		if !cmd.Flags().Changed("chunk") && cfg.Chunk > 0 {
			chunk = cfg.Chunk
		}
	}
	return nil
}

func runWalk(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	session := walk.NewSession()
	trace := &storage.Trace{}
	session.AddObserver(trace)
	session.Reset(goal, start, winProb)

	total := walk.Steps(steps)
	if chunk < 1 {
		chunk = total
	}
	for done := 0; done < total; {
		k := chunk
		if total-done < k {
			k = total - done
		}
		if err := session.Advance(k); err != nil {
			return err
		}
		done += k
	}

	runID, err := st.Save(session.Goal(), session.Start(), session.WinProbability(), trace)
	if err != nil {
		return err
	}

	d := session.Distribution()
	last := len(d) - 1

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n\n", session.StepCount())
	fmt.Print(viz.DistributionBars(d, barWidth))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nMASS\tSIMULATED\tCLOSED FORM")
	fmt.Fprintf(w, "ruin\t%s\t%s\n",
		viz.FormatNum(d[0]), viz.FormatNum(analysis.RuinProbability(session.Goal(), session.Start(), session.WinProbability())))
	fmt.Fprintf(w, "goal\t%s\t%s\n",
		viz.FormatNum(d[last]), viz.FormatNum(analysis.GoalProbability(session.Goal(), session.Start(), session.WinProbability())))
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	m := viz.NewModel(goal, start, winProb, liveChunk, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func printMatrix(cmd *cobra.Command, args []string) error {
	session := walk.NewSession()
	session.Reset(goal, start, winProb)

	fmt.Printf("transition matrix (goal=%d, p=%s)\n\n", session.Goal(), viz.FormatNum(session.WinProbability()))
	fmt.Print(viz.MatrixTable(session.Matrix()))
	return nil
}

func analyzeChain(cmd *cobra.Command, args []string) error {
	session := walk.NewSession()
	session.Reset(goal, start, winProb)
	if err := session.Advance(walk.Steps(analyzeSteps)); err != nil {
		return err
	}

	g, n, p := session.Goal(), session.Start(), session.WinProbability()
	d := session.Distribution()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "goal\t%d\n", g)
	fmt.Fprintf(w, "start\t%d\n", n)
	fmt.Fprintf(w, "win prob\t%s\n", viz.FormatNum(p))
	fmt.Fprintf(w, "ruin prob\t%s\n", viz.FormatPercent(analysis.RuinProbability(g, n, p)))
	fmt.Fprintf(w, "goal prob\t%s\n", viz.FormatPercent(analysis.GoalProbability(g, n, p)))
	fmt.Fprintf(w, "expected duration\t%s steps\n", viz.FormatNum(analysis.ExpectedDuration(g, n, p)))
	fmt.Fprintf(w, "simulated ruin after %d\t%s\n", session.StepCount(), viz.FormatNum(d[0]))
	fmt.Fprintf(w, "simulated goal after %d\t%s\n", session.StepCount(), viz.FormatNum(d[len(d)-1]))
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tGOAL\tSTART\tP\tSTEPS\tRUIN\tGOAL MASS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\t%d\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Goal,
			run.Start,
			run.WinProb,
			run.Steps,
			viz.FormatNum(run.RuinMass),
			viz.FormatNum(run.GoalMass),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace.Dists) == 0 {
		return fmt.Errorf("no data to plot")
	}

	ruin := make([]float64, len(trace.Dists))
	goalMass := make([]float64, len(trace.Dists))
	for i, d := range trace.Dists {
		ruin[i] = d[0]
		goalMass[i] = d[len(d)-1]
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("goal=%d start=%d p=%.4f\n\n", meta.Goal, meta.Start, meta.WinProb)

	graph := asciigraph.PlotMany(
		[][]float64{ruin, goalMass},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("ruin vs goal mass"),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace.Dists) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"step"}
	for i := range trace.Dists[0] {
		header = append(header, fmt.Sprintf("p%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, d := range trace.Dists {
		row := []string{strconv.Itoa(trace.Steps[i])}
		for _, v := range d {
			row = append(row, strconv.FormatFloat(v, 'f', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, trace)
}
