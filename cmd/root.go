package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/tannerpowell/catch/internal/utils"
	"github.com/tannerpowell/catch/pkg/revel"
)

var cfgFile string

const (
	LOGO = `	           _       _
	  ___ __ _| |_ ___| |__        _ __ ___   ___ _ __  _   _ ___
	 / __/ _' | __/ __| '_ \ _____| '_ ' _ \ / _ \ '_ \| | | / __|
	| (_| (_| | || (__| | | |_____| | | | | |  __/ | | | |_| \__ \
	 \___\__,_|\__\___|_| |_|     |_| |_| |_|\___|_| |_|\__,_|___/

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catch-menus",
	Short: "Menu scraper for The Catch's Revel Up ordering locations.",
	Long: LOGO + `catch-menus pulls the live menu (categories, items, prices, images,
availability) for every configured Revel Up store and writes one JSON
document per store, with optional CSV projections and image downloads.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.catch-menus.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringP("outdir", "o", "data/revel", "Output directory for per-store artifacts")
	rootCmd.PersistentFlags().StringSliceP("store", "s", nil, "Store slug or numeric id to run (repeatable, default: all)")
	rootCmd.PersistentFlags().StringSliceP("exclude", "x", nil, "Store slug or numeric id to skip (repeatable)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".catch-menus")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.catch-menus.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("outdir", "data/revel")
	viper.SetDefault("dbpath", "catch-menus.sqlite")
	viper.SetDefault("headed", false)
	viper.SetDefault("useragent", revel.UserAgent)

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// selection reads the shared store filter flags. The config file supplies
// outdir when the flag is left at its default.
func selection() (include, exclude []string, outdir string) {
	include, _ = rootCmd.PersistentFlags().GetStringSlice("store")
	exclude, _ = rootCmd.PersistentFlags().GetStringSlice("exclude")
	outdir, _ = rootCmd.PersistentFlags().GetString("outdir")
	if !rootCmd.PersistentFlags().Changed("outdir") {
		if v := viper.GetString("outdir"); v != "" {
			outdir = v
		}
	}
	return include, exclude, outdir
}
