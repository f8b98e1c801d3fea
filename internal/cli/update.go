package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/pulse/internal/adapters/cli"
	"github.com/example/pulse/internal/wire"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Record status updates",
	Long: `Every submitted update is a new snapshot with its own task list; earlier
updates are never changed. A new update starts from the latest one.`,
}

var updateDraftCmd = &cobra.Command{
	Use:   "draft [initiative-id]",
	Short: "Print the pre-filled form for the next update as YAML",
	Args:  initiativeIDArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.UpdateAdapter().Draft(commandContext(cmd), args[0])
	},
}

var updateSubmitCmd = &cobra.Command{
	Use:   "submit [initiative-id]",
	Short: "Submit a new update",
	Long: `Submit a new update. Values not given are copied from the latest update
(or the defaults for a first update).

Examples:
  pulse update submit ID --mood concerned --execution poor --risk "Vendor delay"
  pulse update submit ID --file draft.yaml
  pulse update submit ID --task "Sign contract" --due 3=2026-04-01 --done 1`,
	Args: initiativeIDArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := submitOptions(cmd)
		if err != nil {
			return err
		}
		return wire.UpdateAdapter().Submit(commandContext(cmd), args[0], opts)
	},
}

var updateLatestCmd = &cobra.Command{
	Use:   "latest [initiative-id]",
	Short: "Show the latest update",
	Args:  initiativeIDArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.UpdateAdapter().Latest(commandContext(cmd), args[0])
	},
}

func submitOptions(cmd *cobra.Command) (cliadapter.SubmitOptions, error) {
	var opts cliadapter.SubmitOptions
	flags := cmd.Flags()

	if file, _ := flags.GetString("file"); file != "" {
		doc, err := cliadapter.LoadUpdateFile(file)
		if err != nil {
			return opts, err
		}
		opts.Document = doc
	}

	opts.Plan, _ = flags.GetString("plan")
	opts.Alignment, _ = flags.GetString("alignment")
	opts.Execution, _ = flags.GetString("execution")
	opts.Outcomes, _ = flags.GetString("outcomes")
	opts.Mood, _ = flags.GetString("mood")

	if flags.Changed("status") {
		status, _ := flags.GetString("status")
		opts.Status = &status
	}
	if flags.Changed("risk") {
		risk, _ := flags.GetString("risk")
		opts.Risk = &risk
	}
	if flags.Changed("dept") {
		depts, _ := flags.GetStringSlice("dept")
		opts.Aligned = []string{}
		for _, d := range depts {
			if d != "" && d != "none" {
				opts.Aligned = append(opts.Aligned, d)
			}
		}
	}

	if file, _ := flags.GetString("tasks-file"); file != "" {
		tasks, err := cliadapter.LoadTasksFile(file)
		if err != nil {
			return opts, err
		}
		opts.Tasks = tasks
	}
	opts.AddTasks, _ = flags.GetStringArray("task")

	dueValues, _ := flags.GetStringArray("due")
	due, err := parseDueFlags(dueValues)
	if err != nil {
		return opts, err
	}
	opts.Due = due
	opts.Done, _ = flags.GetIntSlice("done")

	return opts, nil
}

// UpdateCmd returns the update command
func UpdateCmd() *cobra.Command {
	// Add flags
	f := updateSubmitCmd.Flags()
	f.StringP("file", "f", "", "YAML update document (see: pulse update draft)")
	f.String("plan", "", "Plan confidence (poor, medium, good, excellent)")
	f.String("alignment", "", "Alignment confidence (poor, medium, good, excellent)")
	f.String("execution", "", "Execution confidence (poor, medium, good, excellent)")
	f.String("outcomes", "", "Outcomes confidence (poor, medium, good, excellent, na)")
	f.StringP("mood", "m", "", "Status mood (great, good, neutral, concerned, warning)")
	f.StringP("status", "s", "", "Latest status")
	f.StringP("risk", "r", "", "Biggest risk or worry")
	f.StringSlice("dept", nil, "Aligned departments (product, tech, marketing, client_success, commercial, or none)")
	f.String("tasks-file", "", "YAML task list replacing the copied tasks")
	f.StringArray("task", nil, "Append a task (repeatable)")
	f.StringArray("due", nil, "Set a task's due date as N=YYYY-MM-DD, N counting from 1 (repeatable)")
	f.IntSlice("done", nil, "Mark task N complete (repeatable)")

	// Add subcommands
	updateCmd.AddCommand(updateDraftCmd)
	updateCmd.AddCommand(updateSubmitCmd)
	updateCmd.AddCommand(updateLatestCmd)

	return updateCmd
}
