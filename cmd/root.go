package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"procscope/config"
	"procscope/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "procscope",
	Short: "procscope samples resource usage of a target process",
	Long: `procscope periodically samples memory, CPU, GPU, ANE power, swap, and
memory pressure for a named target process on Apple Silicon, records operator
annotations during the run, and writes a CSV file and an HTML chart when the
run ends.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("verbose") {
			logger.SetLevel(slog.LevelDebug)
		}
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runMonitor(cmd.Context(), cfg)
	},
}

// Execute runs the root command. A rejected configuration exits non-zero
// before the sampler starts.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.procscope.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringP("process", "p", "", "target process name or path fragment")
	rootCmd.Flags().Float64P("interval", "i", 2.0, "sampling interval in seconds")
	rootCmd.Flags().Float64P("duration", "d", 0, "maximum duration in seconds (default: until interrupted)")
	rootCmd.Flags().StringP("output", "o", "", "output base path (default: procscope_TIMESTAMP)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("process", rootCmd.Flags().Lookup("process"))
	viper.BindPFlag("interval", rootCmd.Flags().Lookup("interval"))
	viper.BindPFlag("duration", rootCmd.Flags().Lookup("duration"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".procscope")
	}

	viper.SetEnvPrefix("procscope")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
