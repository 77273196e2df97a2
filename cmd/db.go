package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dbCmd represents the parent db command.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Maintain and query the local sqlite menu index",
}

// indexPath resolves the sqlite index location, config file as fallback.
func indexPath() string {
	path, _ := dbCmd.PersistentFlags().GetString("dbpath")
	if !dbCmd.PersistentFlags().Changed("dbpath") {
		if v := viper.GetString("dbpath"); v != "" {
			path = v
		}
	}
	return path
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.PersistentFlags().String("dbpath", "catch-menus.sqlite", "Path to the sqlite index file")
}
