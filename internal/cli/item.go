package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tasksync/tasksync/internal/devops"
	"github.com/tasksync/tasksync/internal/errors"
)

// itemView is the printable projection of a work item.
type itemView struct {
	ID         int      `json:"id"`
	Rev        int      `json:"rev"`
	Title      string   `json:"title"`
	State      string   `json:"state"`
	Type       string   `json:"type,omitempty"`
	AssignedTo string   `json:"assigned_to,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	ParentID   int      `json:"parent_id,omitempty"`
}

func viewOf(item *devops.WorkItem) itemView {
	return itemView{
		ID:         item.ID,
		Rev:        item.Rev,
		Title:      item.Title(),
		State:      item.State(),
		Type:       item.Type(),
		AssignedTo: item.AssignedTo(),
		Tags:       item.Tags(),
		ParentID:   item.ParentID(),
	}
}

// AddItemCommand adds the item command group to the root command.
func AddItemCommand(root *cobra.Command, flags *GlobalFlags, deps *Deps) {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Inspect and update work items",
	}

	cmd.AddCommand(newItemGetCmd(flags, deps))
	cmd.AddCommand(newItemUpdateCmd(flags, deps))

	root.AddCommand(cmd)
}

func newItemGetCmd(flags *GlobalFlags, deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "get <work-item-id>",
		Short: "Show a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg, err := deps.LoadConfig(ctx)
			if err != nil {
				return err
			}
			tracker, err := deps.NewTracker(cfg)
			if err != nil {
				return err
			}

			item, err := tracker.GetWorkItem(ctx, id)
			if err != nil {
				return err
			}
			return renderItem(cmd, flags, viewOf(item))
		},
	}
}

func newItemUpdateCmd(flags *GlobalFlags, deps *Deps) *cobra.Command {
	var (
		newState string
		assignee string
		priority int
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "update <work-item-id>",
		Short: "Update work item fields",
		Long: `Update work item fields. The update is guarded against concurrent edits:
the item is fetched first, and the patch is only sent if nobody else changed
it in between. On a conflict nothing is written and the current revision is
reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			var ops []devops.PatchOp
			if newState != "" {
				ops = append(ops, devops.FieldPatch(devops.FieldState, newState))
			}
			if assignee != "" {
				ops = append(ops, devops.FieldPatch(devops.FieldAssignedTo, assignee))
			}
			if cmd.Flags().Changed("priority") {
				ops = append(ops, devops.FieldPatch(devops.FieldPriority, priority))
			}
			if len(ops) == 0 {
				return errors.Wrap(errors.ErrEmptyValue, "nothing to update, pass --state, --assignee or --priority")
			}

			return runItemUpdate(cmd, flags, deps, id, ops, dryRun)
		},
	}

	cmd.Flags().StringVar(&newState, "state", "", "new workflow state")
	cmd.Flags().StringVar(&assignee, "assignee", "", "new assignee")
	cmd.Flags().IntVar(&priority, "priority", 0, "new priority")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the plan without changing anything")

	return cmd
}

func runItemUpdate(cmd *cobra.Command, flags *GlobalFlags, deps *Deps, id int, ops []devops.PatchOp, dryRun bool) error {
	ctx := cmd.Context()
	logger := GetLogger()

	cfg, err := deps.LoadConfig(ctx)
	if err != nil {
		return err
	}
	tracker, err := deps.NewTracker(cfg)
	if err != nil {
		return err
	}

	item, err := tracker.GetWorkItem(ctx, id)
	if err != nil {
		return err
	}

	if dryRun {
		out := cmd.OutOrStdout()
		if flags.Output == OutputJSON {
			return printJSON(out, map[string]any{
				"dry_run": true,
				"item":    viewOf(item),
				"patch":   ops,
			})
		}
		var fields []string
		for _, op := range ops {
			fields = append(fields, strings.TrimPrefix(op.Path, "/fields/"))
		}
		fmt.Fprintf(out, "[dry-run] Would update item %d (rev %d): %s\n",
			item.ID, item.Rev, strings.Join(fields, ", "))
		return nil
	}

	updated, err := tracker.UpdateWorkItemWithRev(ctx, id, item.Rev, ops)
	if err != nil {
		return err
	}

	logger.Info().
		Int("work_item_id", updated.ID).
		Int("rev", updated.Rev).
		Msg("work item updated")

	return renderItem(cmd, flags, viewOf(updated))
}

func parseItemID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(errors.ErrEmptyValue, "work item ID must be a positive integer, got %q", arg)
	}
	return id, nil
}

func renderItem(cmd *cobra.Command, flags *GlobalFlags, view itemView) error {
	out := cmd.OutOrStdout()
	if flags.Output == OutputJSON {
		return printJSON(out, view)
	}

	fmt.Fprintf(out, "Item %d (rev %d)\n", view.ID, view.Rev)
	fmt.Fprintf(out, "  Title:    %s\n", view.Title)
	fmt.Fprintf(out, "  State:    %s\n", view.State)
	if view.Type != "" {
		fmt.Fprintf(out, "  Type:     %s\n", view.Type)
	}
	if view.AssignedTo != "" {
		fmt.Fprintf(out, "  Assigned: %s\n", view.AssignedTo)
	}
	if len(view.Tags) > 0 {
		fmt.Fprintf(out, "  Tags:     %s\n", strings.Join(view.Tags, ", "))
	}
	if view.ParentID != 0 {
		fmt.Fprintf(out, "  Parent:   %d\n", view.ParentID)
	}
	return nil
}
