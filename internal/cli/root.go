package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	output      string
	verbose     bool
	showMetrics bool
)

// NewRootCmd returns the root command for the dtwitter CLI
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dtwitter",
		Short:         "dtwitter — decentralized microblogging client",
		Long:          "dtwitter — post, like, comment and repost on the ledger-backed timeline from your terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if showMetrics && activeRuntime != nil {
				return writeMetrics(cmd.ErrOrStderr(), activeRuntime.registry)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dtwitter/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&output, "output", "", "output format: json|text (default: text)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print collected metrics on exit (Prometheus text format)")

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newPostCmd())
	rootCmd.AddCommand(newTimelineCmd())
	rootCmd.AddCommand(newPostsCmd())
	rootCmd.AddCommand(newLikeCmd())
	rootCmd.AddCommand(newUnlikeCmd())
	rootCmd.AddCommand(newReplyCmd())
	rootCmd.AddCommand(newRepostCmd())
	rootCmd.AddCommand(newThreadCmd())
	rootCmd.AddCommand(newContextCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.dtwitter")
			viper.SetConfigName("config")
		}
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DTWITTER")
	viper.AutomaticEnv()

	// Ignore missing config
	_ = viper.ReadInConfig()
}
