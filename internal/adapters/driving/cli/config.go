package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage packmule configuration",
	Long: `View and change the workspace, toolchain and history settings.

Use subcommands to read or write individual keys, or run the
interactive wizard for a guided setup.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Read one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Write one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the supported configuration keys",
	RunE:  runConfigKeys,
}

var configDirCmd = &cobra.Command{
	Use:   "dir [path]",
	Short: "Set the ingestion workspace directory",
	Long: `Points packmule at the ingestion tool's Python project. The
directory must contain the tool's pyproject.toml.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigDir,
}

var configWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runConfigWizard,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configDirCmd)
	configCmd.AddCommand(configWizardCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Workspace]")
	if settings.ToolDir != "" {
		cmd.Printf("  Tool directory: %s\n", settings.ToolDir)
	} else {
		cmd.Printf("  Tool directory: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[Toolchain]")
	cmd.Printf("  Runner: %s\n", settings.Runner)
	cmd.Printf("  Helper module: %s\n", settings.HelperModule)
	cmd.Println()

	cmd.Println("[Marketplace]")
	cmd.Printf("  Download strategy: %s\n", orToolDefault(settings.DefaultDownloadStrategy))
	cmd.Printf("  Output directory: %s\n", orToolDefault(settings.DefaultOutputDir))
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Limit: %d runs\n", settings.HistoryLimit)
	cmd.Println()

	if workspaceService != nil {
		if err := workspaceService.Validate(settings.ToolDir); err != nil {
			cmd.Printf("Warning: %v\n", err)
			cmd.Println("Run 'packmule config wizard' to set up the workspace.")
		} else {
			cmd.Println("Workspace is ready.")
		}
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	value, err := settingsService.GetValue(args[0])
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", args[0], err)
	}

	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetValue(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("Set %s to %q\n", args[0], args[1])
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runConfigDir(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetToolDir(args[0]); err != nil {
		return fmt.Errorf("failed to set tool directory: %w", err)
	}

	cmd.Printf("Workspace set to %s\n", args[0])
	return nil
}

// downloadStrategies lists the strategies the ingestion tool accepts,
// in increasing order of work done. Custom values can still be set
// with 'config set ingest.download_strategy <value>'.
var downloadStrategies = []struct {
	value       string
	description string
}{
	{"metadata_only", "metadata only, no downloads"},
	{"manifests_only", "fetch download manifests"},
	{"download", "download and decrypt assets"},
	{"extract", "download, decrypt and extract"},
}

func runConfigWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("the wizard needs an interactive terminal")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Packmule Setup Wizard")
	cmd.Println("=====================")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)

	// Step 1: Workspace
	cmd.Println("Step 1: Ingestion Workspace")
	cmd.Println("---------------------------")
	cmd.Println("The directory of the ingestion tool's Python project.")
	cmd.Printf("\nTool directory [%s]: ", orUnset(settings.ToolDir))
	if dir := readLine(reader); dir != "" {
		if err := settingsService.SetToolDir(dir); err != nil {
			return fmt.Errorf("failed to set tool directory: %w", err)
		}
		cmd.Printf("Workspace set to %s\n", dir)
	}
	cmd.Println()

	// Step 2: Toolchain
	cmd.Println("Step 2: Toolchain")
	cmd.Println("-----------------")
	cmd.Printf("Runner executable [%s]: ", settings.Runner)
	if runner := readLine(reader); runner != "" {
		if err := settingsService.SetValue("tool.runner", runner); err != nil {
			return fmt.Errorf("failed to set runner: %w", err)
		}
	}
	cmd.Println()

	// Step 3: Marketplace defaults
	cmd.Println("Step 3: Marketplace Defaults")
	cmd.Println("----------------------------")
	for i, strategy := range downloadStrategies {
		cmd.Printf("  %d. %s - %s\n", i+1, strategy.value, strategy.description)
	}
	cmd.Print("\nDefault download strategy [1]: ")
	choice := parseChoice(readLine(reader), len(downloadStrategies), 1)
	selected := downloadStrategies[choice-1].value
	if err := settingsService.SetValue("ingest.download_strategy", selected); err != nil {
		return fmt.Errorf("failed to set download strategy: %w", err)
	}
	cmd.Printf("Download strategy set to: %s\n", selected)

	cmd.Printf("\nDefault output directory [%s]: ", orToolDefault(settings.DefaultOutputDir))
	if outputDir := readLine(reader); outputDir != "" {
		if err := settingsService.SetValue("ingest.output_dir", outputDir); err != nil {
			return fmt.Errorf("failed to set output directory: %w", err)
		}
	}
	cmd.Println()

	// Step 4: History
	cmd.Println("Step 4: Run History")
	cmd.Println("-------------------")
	cmd.Printf("Runs to keep in listings [%d]: ", settings.HistoryLimit)
	if limit := readLine(reader); limit != "" {
		if err := settingsService.SetValue("runs.limit", limit); err != nil {
			return fmt.Errorf("failed to set history limit: %w", err)
		}
	}
	cmd.Println()

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if workspaceService != nil {
		settings, err := settingsService.Get()
		if err == nil {
			if err := workspaceService.Validate(settings.ToolDir); err != nil {
				cmd.Printf("Warning: %v\n", err)
			} else {
				cmd.Println("All settings are valid and saved.")
			}
		}
	}

	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func orUnset(value string) string {
	if value == "" {
		return "not set"
	}
	return value
}

func orToolDefault(value string) string {
	if value == "" {
		return "(tool default)"
	}
	return value
}
