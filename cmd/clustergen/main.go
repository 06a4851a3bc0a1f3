package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/astrobits/clustergen/internal/config"
	"github.com/astrobits/clustergen/internal/model"
	"github.com/astrobits/clustergen/internal/profiles"
	"github.com/astrobits/clustergen/internal/storage"
)

var (
	dataDir    string
	configFile string
	preset     string
	mode       string
	verbose    bool
	// Particle overrides
	numParticles int
	particleRmax float64
	subSample    int
	seed         uint64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clustergen",
		Short: "equilibrium galaxy cluster model generator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetLevel(logrus.WarnLevel)
			if verbose {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clustergen", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "dens_temp", "build mode (dens_temp, dens_tden, entr_tden, no_gas)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "build an equilibrium model and save it",
		RunE:  runBuild,
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "build a model and plot the equilibrium residual",
		RunE:  runCheck,
	}

	particlesCmd := &cobra.Command{
		Use:   "particles",
		Short: "build a model and sample gas particles from it",
		RunE:  runParticles,
	}
	particlesCmd.Flags().IntVarP(&numParticles, "num", "n", 0, "number of particles (overrides config)")
	particlesCmd.Flags().Float64Var(&particleRmax, "rmax", 0, "maximum sampling radius in kpc")
	particlesCmd.Flags().IntVar(&subSample, "sub-sample", 0, "radius sub-sampling factor")
	particlesCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (overrides config)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run:   runPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  runList,
	}

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "list built-in profile laws",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range profiles.Builtin() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(buildCmd, checkCmd, particlesCmd, presetsCmd, listCmd, profilesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(mode, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(mode))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildModel(cfg *config.Config) (*model.Model, error) {
	law, err := cfg.GravityLaw()
	if err != nil {
		return nil, err
	}
	opts := model.Options{
		Law:   law,
		Fgas:  cfg.GasFrac.Fgas,
		RFgas: cfg.GasFrac.RFgas,
	}
	if cfg.Profiles.Stellar != nil {
		stellar, err := cfg.Profiles.Stellar.Build()
		if err != nil {
			return nil, err
		}
		opts.Stellar = &stellar
	}

	build := func(spec *profiles.Spec) (profiles.Profile, error) {
		return spec.Build()
	}
	ctx := context.Background()
	g := cfg.Grid

	m, err := func() (*model.Model, error) {
		switch cfg.Mode {
		case "dens_temp":
			dens, err := build(cfg.Profiles.Density)
			if err != nil {
				return nil, err
			}
			temp, err := build(cfg.Profiles.Temperature)
			if err != nil {
				return nil, err
			}
			return model.FromDensAndTemp(ctx, g.Rmin, g.Rmax, g.NumPoints, dens, temp, opts)
		case "dens_tden":
			dens, err := build(cfg.Profiles.Density)
			if err != nil {
				return nil, err
			}
			tden, err := build(cfg.Profiles.TotalDensity)
			if err != nil {
				return nil, err
			}
			return model.FromDensAndTden(ctx, g.Rmin, g.Rmax, g.NumPoints, dens, tden, opts)
		case "entr_tden":
			entr, err := build(cfg.Profiles.Entropy)
			if err != nil {
				return nil, err
			}
			tden, err := build(cfg.Profiles.TotalDensity)
			if err != nil {
				return nil, err
			}
			return model.FromEntrAndTden(ctx, g.Rmin, g.Rmax, g.NumPoints, entr, tden, opts)
		case "no_gas":
			tden, err := build(cfg.Profiles.TotalDensity)
			if err != nil {
				return nil, err
			}
			return model.NoGas(ctx, g.Rmin, g.Rmax, g.NumPoints, tden, opts)
		}
		return nil, fmt.Errorf("unknown build mode %q", cfg.Mode)
	}()
	if err != nil {
		return nil, err
	}
	// Construction is always Newtonian; an alternative law reanalyzes the
	// finished model.
	if cfg.Gravity.Law != "newtonian" {
		if err := m.ApplyGravity(ctx, law, true); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func applyMagnetic(cfg *config.Config, m *model.Model) error {
	if cfg.Magnetic.Beta > 0 {
		return m.SetMagneticFieldFromBeta(cfg.Magnetic.Beta, true)
	}
	if cfg.Magnetic.B0 > 0 {
		return m.SetMagneticFieldFromDensity(cfg.Magnetic.B0, cfg.Magnetic.Eta)
	}
	return nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := buildModel(cfg)
	if err != nil {
		return err
	}
	if err := applyMagnetic(cfg, m); err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(cfg.Mode, cfg.Gravity.Law, m)
	if err != nil {
		return err
	}

	fmt.Printf("saved run %s\n\n", runID)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tUNITS\tINNER\tOUTER")
	for _, name := range m.Fields.Names() {
		data := m.Fields.Get(name)
		fmt.Fprintf(w, "%s\t%s\t%.4e\t%.4e\n", name, m.Fields.Units(name), data[0], data[len(data)-1])
	}
	return w.Flush()
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := buildModel(cfg)
	if err != nil {
		return err
	}
	chk, err := m.CheckModel()
	if err != nil {
		return err
	}

	maxDev := 0.0
	devs := make([]float64, len(chk))
	for i, c := range chk {
		dev := c
		if dev < 0 {
			dev = -dev
		}
		if dev > maxDev {
			maxDev = dev
		}
		devs[i] = dev
	}

	graph := asciigraph.Plot(devs,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("|dP/dr - rho*g| / |rho*g| vs radial index"),
	)
	fmt.Println(graph)
	fmt.Println()
	fmt.Printf("max fractional deviation: %.3e\n", maxDev)
	return nil
}

func runParticles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if numParticles > 0 {
		cfg.Particles.Num = numParticles
	}
	if particleRmax > 0 {
		cfg.Particles.Rmax = particleRmax
	}
	if subSample > 0 {
		cfg.Particles.SubSample = subSample
	}
	if seed > 0 {
		cfg.Particles.Seed = seed
	}

	m, err := buildModel(cfg)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(cfg.Particles.Seed))
	p, err := m.GenerateParticles(cfg.Particles.Num, cfg.Particles.Rmax, cfg.Particles.SubSample, rng)
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(cfg.Mode, cfg.Gravity.Law, m)
	if err != nil {
		return err
	}
	if err := store.SaveParticles(runID, p); err != nil {
		return err
	}
	fmt.Printf("saved run %s with %d particles (%.4e Msun each)\n", runID, p.N, p.Masses[0])
	return nil
}

func runPresets(cmd *cobra.Command, args []string) {
	modes := make([]string, 0, len(config.Presets))
	for m := range config.Presets {
		modes = append(modes, m)
	}
	sort.Strings(modes)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tPRESET\tGRAVITY\tGRID")
	for _, m := range modes {
		for _, name := range config.ListPresets(m) {
			cfg := config.Presets[m][name]
			fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g] x %d\n", m, name, cfg.Gravity.Law, cfg.Grid.Rmin, cfg.Grid.Rmax, cfg.Grid.NumPoints)
		}
	}
	w.Flush()
}

func runList(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tGRAVITY\tPOINTS\tTIMESTAMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", run.ID, run.Mode, run.GravityLaw, run.NumPoints, run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
