package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/edgeship-go/internal/cli"
	"github.com/quantmind-br/edgeship-go/internal/config"
	"github.com/quantmind-br/edgeship-go/internal/manifest"
	"github.com/quantmind-br/edgeship-go/internal/utils"
	"github.com/quantmind-br/edgeship-go/pkg/version"
)

var (
	cfgFile string
	envName string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "edgeship",
	Short: "Resolve and scaffold edge worker deployment manifests",
	Long: `Edgeship reads an edgeship.toml manifest describing a worker project
and its named environments, and resolves it into a single validated
deployment target per environment.

Scalar manifest fields can be overridden through EDGESHIP_* environment
variables (e.g. EDGESHIP_ACCOUNT_ID).`,
	Version: version.Short(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edgeship/config.yaml)")
	rootCmd.PersistentFlags().StringP("manifest", "m", config.DefaultManifestFile, "Manifest file to resolve")
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", "", "Environment to resolve")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("manifest.file", rootCmd.PersistentFlags().Lookup("manifest"))

	// init flags
	initCmd.Flags().String("type", "", "Target type (plain or webpack)")
	initCmd.Flags().String("site", "", "Static site bucket directory")

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func newLogger(cfg *config.Config) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})
}

func loadManifest(cfg *config.Config) (*manifest.Manifest, error) {
	loader := manifest.NewLoader(manifest.WithNameValidator(cli.ValidateWorkerName))
	return loader.Load(cfg.Manifest.File)
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Scaffold a new manifest in the current directory",
	Long: `Creates an edgeship.toml in the current directory. When the directory
already holds a manifest (e.g. from a project template), its fields seed
the new one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log := newLogger(cfg)

		name := "worker"
		if len(args) > 0 {
			name = args[0]
		}
		if err := cli.ValidateWorkerName(name); err != nil {
			return err
		}

		var targetType manifest.TargetType
		if raw, _ := cmd.Flags().GetString("type"); raw != "" {
			targetType, err = manifest.ParseTargetType(raw)
			if err != nil {
				return err
			}
		}

		var site *manifest.Site
		if bucket, _ := cmd.Flags().GetString("site"); bucket != "" {
			site = &manifest.Site{Bucket: bucket}
		}

		_, err = manifest.Generate(manifest.GenerateOptions{
			Name:   name,
			Type:   targetType,
			Dir:    ".",
			Site:   site,
			Logger: log.WithComponent("init"),
		})
		return err
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the effective deploy configuration for an environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log := newLogger(cfg).WithComponent("resolve")

		m, err := loadManifest(cfg)
		if err != nil {
			return err
		}

		target, err := m.Target(envName)
		if err != nil {
			return err
		}
		deploy, err := m.DeployConfig(envName)
		if err != nil {
			return err
		}

		log.Debug().
			Str("environment", envName).
			Str("script", deploy.ScriptName()).
			Msg("manifest resolved")

		cli.RenderTarget(cmd.OutOrStdout(), target)
		return cli.RenderDeployConfig(cmd.OutOrStdout(), deploy)
	},
}

var nameCmd = &cobra.Command{
	Use:   "name",
	Short: "Print the effective script name for an environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		m, err := loadManifest(cfg)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), m.WorkerName(envName))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
