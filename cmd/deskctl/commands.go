package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spec-kit/complaint-service/internal/seed"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the record store schema",
		RunE: withEnv(func(cmd *cobra.Command, e *env) error {
			if err := e.runtime.Migrate(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", e.cfg.Store.Driver)
			return err
		}),
	}
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load departments and accounts from a YAML fixture",
		RunE: withEnv(func(cmd *cobra.Command, e *env) error {
			fixture, err := seed.Load(file)
			if err != nil {
				return err
			}
			res, err := seed.Apply(cmd.Context(), fixture, e.services.Directory, e.services.Auth)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "departments=%d administrators=%d users=%d skipped=%d\n",
				res.Departments, res.Administrators, res.Users, res.Skipped)
			return err
		}),
	}
	cmd.Flags().StringVar(&file, "file", "configs/seed.yaml", "seed fixture path")
	return cmd
}

func newScoresCmd() *cobra.Command {
	var below float64
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Print administrator progress scores",
		RunE: withEnv(func(cmd *cobra.Command, e *env) error {
			scores, err := e.services.Progress.ScoreAll(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDEPARTMENT\tSCORE")
			for _, p := range scores {
				if below > 0 && p.Score >= below {
					continue
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\n", p.AdminID, p.Name, p.DepartmentName, p.Score)
			}
			return w.Flush()
		}),
	}
	cmd.Flags().Float64Var(&below, "below", 0, "only list scores below this value")
	return cmd
}

func newNotifyAdminCmd() *cobra.Command {
	var (
		adminID int64
		title   string
		message string
	)
	cmd := &cobra.Command{
		Use:   "notify-admin",
		Short: "Send an in-app notification to an administrator",
		RunE: withEnv(func(cmd *cobra.Command, e *env) error {
			n, err := e.services.Notifications.NotifyAdministrator(cmd.Context(), adminID, title, message)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "notification %d sent to administrator %d\n", n.ID, adminID)
			return err
		}),
	}
	cmd.Flags().Int64Var(&adminID, "admin", 0, "administrator id")
	cmd.Flags().StringVar(&title, "title", "", "notification title")
	cmd.Flags().StringVar(&message, "message", "", "notification message")
	_ = cmd.MarkFlagRequired("admin")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
