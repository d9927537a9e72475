package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/geoinspect/database/seeders"
	"github.com/shashiranjanraj/geoinspect/pkg/database"
	"github.com/shashiranjanraj/geoinspect/pkg/migration"
)

// withDB opens the configured spatial_ref_sys database, runs fn against it
// and closes it afterwards.
func withDB(fn func(db *gorm.DB) error) error {
	db, err := database.Connect()
	if err != nil {
		return err
	}
	defer database.Close(db)
	return fn(db)
}

// geoinspect migrate
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the spatial_ref_sys table and run pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
				return migration.New(db).WithOutput(cmd.OutOrStdout()).Run()
			})
		},
	}
}

// geoinspect migrate:rollback
func newMigrateRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Rollback the last batch of migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
				return migration.New(db).WithOutput(cmd.OutOrStdout()).Rollback()
			})
		},
	}
}

// geoinspect migrate:status
func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show the status of each migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				return migration.New(db).WithOutput(cmd.OutOrStdout()).Status()
			})
		},
	}
}

// geoinspect seed
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the built-in reference systems into spatial_ref_sys",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
				return seeders.RunAll(db, cmd.OutOrStdout())
			})
		},
	}
}
