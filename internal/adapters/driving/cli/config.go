package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Manage client configuration",
	Annotations: standalone(),
	Long: `View and change settings stored in the config file.

Keys:
  api.url              Backend base URL
  api.timeout_seconds  Request timeout
  api.rate_limit       Requests per second
  api.burst            Request burst size
  auth.region          Cognito region
  auth.client_id       Cognito app client ID
  auth.user_pool_id    Cognito user pool ID
  ui.theme             TUI theme (dark or light)

Environment variables (KAMELEON_*) and --api-url take precedence over the file.`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print the effective value of a key",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a value in the config file",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every key with its effective value",
	RunE:  runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
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

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	values := make(map[string]string, len(domain.ConfigKeys()))
	for _, key := range domain.ConfigKeys() {
		value, err := settingsService.GetValue(key)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", key, err)
		}
		values[key] = value
	}

	if jsonOutput() {
		return printJSON(cmd, values)
	}

	section := ""
	for _, key := range domain.ConfigKeys() {
		if s, _, _ := strings.Cut(key, "."); s != section {
			if section != "" {
				cmd.Println()
			}
			section = s
			cmd.Printf("[%s]\n", section)
		}
		value := values[key]
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %-20s %s\n", key, value)
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println(settingsService.ConfigPath())
	return nil
}
