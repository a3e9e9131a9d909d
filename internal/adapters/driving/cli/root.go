package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
	"github.com/kameleon-labs/kameleon-cli/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services injected by main. Commands check for nil before use.
var (
	sessionService   driving.SessionService
	authFlows        driving.AuthFlows
	axiomService     driving.AxiomService
	templateService  driving.TemplateService
	personaService   driving.PersonaService
	documentService  driving.DocumentService
	reviewService    driving.ReviewService
	profileService   driving.ProfileService
	dashboardService driving.DashboardService
	settingsService  driving.SettingsService
)

// Services bundles the driving ports used by the commands.
type Services struct {
	Session   driving.SessionService
	Auth      driving.AuthFlows
	Axioms    driving.AxiomService
	Templates driving.TemplateService
	Personas  driving.PersonaService
	Documents driving.DocumentService
	Reviews   driving.ReviewService
	Profile   driving.ProfileService
	Dashboard driving.DashboardService
}

// Bootstrap builds the services once flags are parsed and settings are final.
type Bootstrap func(ctx context.Context) (*Services, error)

var bootstrap Bootstrap

// Global flags.
var (
	verbose      bool
	apiURL       string
	outputFormat string
)

const (
	outputText = "text"
	outputJSON = "json"
)

// annotationStandalone marks commands that run without the backend services.
const annotationStandalone = "standalone"

var rootCmd = &cobra.Command{
	Use:   "kameleon",
	Short: "Kameleon PRD assistant",
	Long: `Kameleon helps product teams write PRDs that their reviewers approve.

Write documents against templates, calibrate reviewer personas with examples,
keep your guiding axioms in one place and submit documents for review, from
the command line, the terminal UI or an MCP-capable assistant.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: runPersistentPre,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&apiURL, "api-url", "", "backend base URL (overrides config and environment)")
	flags.StringVarP(&outputFormat, "output", "o", outputText, "output format: text or json")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetSettingsService sets the settings service. It is needed before bootstrap
// so that flag overrides reach the services built from settings.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetBootstrap sets the function that builds the backend services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs the driving ports used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	sessionService = s.Session
	authFlows = s.Auth
	axiomService = s.Axioms
	templateService = s.Templates
	personaService = s.Personas
	documentService = s.Documents
	reviewService = s.Reviews
	profileService = s.Profile
	dashboardService = s.Dashboard
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runPersistentPre(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	switch outputFormat {
	case outputText, outputJSON:
	default:
		return fmt.Errorf("%w: --output must be %q or %q", domain.ErrInvalidInput, outputText, outputJSON)
	}

	if apiURL != "" {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		if err := settingsService.Override(domain.KeyAPIURL, apiURL); err != nil {
			return fmt.Errorf("invalid --api-url: %w", err)
		}
	}

	if isStandalone(cmd) || bootstrap == nil {
		return nil
	}
	services, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

// isStandalone reports whether cmd or one of its parents needs no backend services.
func isStandalone(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationStandalone]; ok {
			return true
		}
	}
	return false
}

func standalone() map[string]string {
	return map[string]string{annotationStandalone: "true"}
}
