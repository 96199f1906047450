package cmd

import (
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xortim/crier/conf"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Version: conf.GitVersion,
		Use:     conf.Executable,
		Short:   "Crier posts messages and files to Slack.",
		Long:    `Crier is a thin Slack client for posting threaded messages and uploading files from scripts and pipelines.`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.OnInitialize(initConfig)
	rootCmd := newRootCmd()
	setupFlags(rootCmd)
	addSubcommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func setupFlags(c *cobra.Command) {
	c.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default \"$HOME/."+conf.Executable+".yaml\")")
	c.MarkPersistentFlagFilename("config")

	c.PersistentFlags().String("slack_token", "", "Slack bot OAuth token.")
	viper.BindPFlag("slack.token", c.PersistentFlags().Lookup("slack_token"))
	viper.BindEnv("slack.token", "SLACK_TOKEN")

	c.PersistentFlags().String("slack_api_url", "", "Override the Slack API base URL.")
	viper.BindPFlag("slack.api_url", c.PersistentFlags().Lookup("slack_api_url"))
}

func addSubcommands(c *cobra.Command) {
	c.AddCommand(newVersionCmd())
	c.AddCommand(newSendCmd())
	c.AddCommand(newUploadCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName("." + conf.Executable)
	}

	viper.SetTypeByDefaultValue(true)
	viper.SetEnvPrefix(conf.Executable)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		println("Using config file: ", viper.ConfigFileUsed())
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}
