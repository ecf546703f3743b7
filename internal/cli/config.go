package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-segments/internal/api"
	"github.com/smokyabdulrahman/prayer-segments/internal/config"
	"github.com/smokyabdulrahman/prayer-segments/internal/display"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		Args:  cobra.NoArgs,
		RunE:  a.runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nEach key can also be set with a %s<KEY> environment variable or a .env file.\n\nExamples:\n  prayer-segments config set city Riyadh\n  prayer-segments config set country \"Saudi Arabia\"\n  prayer-segments config set method 4\n  prayer-segments config set timezone America/Toronto\n  prayer-segments config set store sqlite",
			strings.Join(config.ValidKeys, ", "), config.EnvPrefix),
		Args: cobra.ExactArgs(2),
		RunE: a.runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		Args:  cobra.NoArgs,
		RunE:  a.runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Args:  cobra.NoArgs,
		RunE:  a.runConfigPath,
	})

	return cmd
}

// runConfigShow displays the effective value of every key after defaults,
// environment and flag overrides.
func (a *app) runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := a.configFile()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := a.cfg.Get(key)
		shown := val
		if shown == "" {
			shown = "(not set)"
		}
		// Add descriptive labels for method.
		if key == "method" && val != "" {
			shown = formatMethodValue(val)
		}
		fmt.Fprintf(out, "  %-12s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func (a *app) runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path, err := a.configFile()
	if err != nil {
		return err
	}

	// Start from the file alone so overrides are not persisted.
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// runConfigReset deletes the config file.
func (a *app) runConfigReset(cmd *cobra.Command, args []string) error {
	path, err := a.configFile()
	if err != nil {
		return err
	}
	if err := config.ResetAt(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func (a *app) runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := a.configFile()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the method name to the numeric value.
func formatMethodValue(val string) string {
	for _, m := range CalculationMethods {
		if fmt.Sprintf("%d", m.ID) == val {
			return fmt.Sprintf("%s (%s)", val, m.Name)
		}
	}
	return val
}

// CalculationMethods lists all supported Al Adhan API calculation methods.
var CalculationMethods = []struct {
	ID   int
	Name string
}{
	{0, "Shia Ithna-Ashari (Jafari)"},
	{1, "University of Islamic Sciences, Karachi"},
	{2, "Islamic Society of North America (ISNA)"},
	{3, "Muslim World League (MWL)"},
	{4, "Umm Al-Qura University, Makkah"},
	{5, "Egyptian General Authority of Survey"},
	{7, "Institute of Geophysics, University of Tehran"},
	{8, "Gulf Region"},
	{9, "Kuwait"},
	{10, "Qatar"},
	{11, "Majlis Ugama Islam Singapura (Singapore)"},
	{12, "Union Organization Islamic de France"},
	{13, "Diyanet Isleri Baskanligi, Turkey (experimental)"},
	{14, "Spiritual Administration of Muslims of Russia"},
	{15, "Moonsighting Committee Worldwide"},
	{16, "Dubai (experimental)"},
	{17, "JAKIM (Malaysia)"},
	{18, "Tunisia"},
	{19, "Algeria"},
	{20, "KEMENAG (Indonesia)"},
	{21, "Morocco"},
	{22, "Comunidade Islamica de Lisboa (Portugal)"},
	{23, "Ministry of Awqaf, Jordan"},
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of all supported Al Adhan API calculation methods.",
		Args:  cobra.NoArgs,
		// No config or store needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Supported calculation methods:")
			fmt.Fprintln(out)
			tbl := display.NewTable([]string{"ID", "Name"})
			for i, m := range CalculationMethods {
				tbl.AddRow([]string{fmt.Sprint(m.ID), m.Name})
				if m.ID == api.DefaultMethod {
					tbl.SetHighlightRow(i)
				}
			}
			fmt.Fprint(out, tbl.Render())
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Use --method <ID> to select a calculation method (default %d).\n", api.DefaultMethod)
			return nil
		},
	}
}
