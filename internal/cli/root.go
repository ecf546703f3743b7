package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/prayer-segments/internal/config"
	"github.com/smokyabdulrahman/prayer-segments/internal/logging"
)

// globalFlags are the persistent flags shared across all subcommands.
type globalFlags struct {
	City       string
	Country    string
	Latitude   float64
	Longitude  float64
	Method     int
	Timezone   string
	Store      string
	StorePath  string
	RedisAddr  string
	JSON       bool
	TimeFormat string
	LogLevel   string
}

// NewRootCmd creates the root command for the prayer-segments CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(newApp(version))
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prayer-segments",
		Short: "Split the day into prayer-time segments",
		Long: "Show which of the day's seven prayer-time segments you are in\n" +
			"(Layl, Fajr, Subuh, Dhuhr, Asr, Maghrib, Isha) and how long until the next one.\n" +
			"Timings come from the Al Adhan API and are cached per day and location.",
		Version: a.version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		// Default action: show today's segments.
		RunE:          a.runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	f := &a.flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.City, "city", "", "Override city (takes precedence over config)")
	pf.StringVar(&f.Country, "country", "", "Override country")
	pf.Float64Var(&f.Latitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&f.Longitude, "longitude", 0, "Override longitude")
	pf.IntVar(&f.Method, "method", 2, "Override calculation method (0-23)")
	pf.StringVar(&f.Timezone, "timezone", "", "IANA time zone for the day boundaries (default: system zone)")
	pf.StringVar(&f.Store, "store", "", "Storage backend: file, sqlite, redis or memory")
	pf.StringVar(&f.StorePath, "store-path", "", "Directory (file) or database file (sqlite) for the store")
	pf.StringVar(&f.RedisAddr, "redis-addr", "", "Redis host:port for the redis store")
	pf.BoolVar(&f.JSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&f.TimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error or disabled")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd(a))
	rootCmd.AddCommand(newLocationCmd(a))
	rootCmd.AddCommand(newCacheCmd(a))
	rootCmd.AddCommand(newTimerCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newMethodsCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("prayer-segments %s\n", version)
}

// setup loads the configuration and logger. Commands that need storage or
// the network build those lazily through app.open.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.dotenv...); err != nil {
		return err
	}

	path, err := a.configFile()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.fileConfig = cfg

	eff, err := a.effectiveConfig(cmd)
	if err != nil {
		return err
	}
	a.cfg = eff

	log, err := logging.New(eff.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func (a *app) effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Config{}
	if a.fileConfig != nil {
		cfg = *a.fileConfig
	}

	if err := cfg.ApplyEnv(a.lookupEnv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()
	f := a.flags

	if flagWasSet(flags, root, "city") {
		cfg.City = f.City
	}
	if flagWasSet(flags, root, "country") {
		cfg.Country = f.Country
	}
	if flagWasSet(flags, root, "latitude") {
		if err := cfg.Set("latitude", formatFloat(f.Latitude)); err != nil {
			return nil, err
		}
	}
	if flagWasSet(flags, root, "longitude") {
		if err := cfg.Set("longitude", formatFloat(f.Longitude)); err != nil {
			return nil, err
		}
	}
	if flagWasSet(flags, root, "method") {
		if err := cfg.Set("method", fmt.Sprint(f.Method)); err != nil {
			return nil, err
		}
	}
	if flagWasSet(flags, root, "timezone") {
		if err := cfg.Set("timezone", f.Timezone); err != nil {
			return nil, err
		}
	}
	if flagWasSet(flags, root, "store") {
		if err := cfg.Set("store", f.Store); err != nil {
			return nil, err
		}
	}
	if flagWasSet(flags, root, "store-path") {
		cfg.StorePath = f.StorePath
	}
	if flagWasSet(flags, root, "redis-addr") {
		cfg.RedisAddr = f.RedisAddr
	}
	if flagWasSet(flags, root, "time-format") {
		if err := cfg.Set("time_format", f.TimeFormat); err != nil {
			return nil, err
		}
	}
	if flagWasSet(flags, root, "log-level") {
		if err := cfg.Set("log_level", f.LogLevel); err != nil {
			return nil, err
		}
	}

	// Apply defaults for unset values.
	defaults := config.Defaults()
	if cfg.Method == nil {
		cfg.Method = defaults.Method
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}
	if cfg.Store == "" {
		cfg.Store = defaults.Store
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}

	return &cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
