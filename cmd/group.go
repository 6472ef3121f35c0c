package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage asset groups",
	Long: `Group assets into named hierarchies. A group is itself an asset, so
groups nest; cycles are rejected. Members of a group disappear from flat
listings and surface through 'group children' or the tree explorer.`,
}

var groupCreateCmd = &cobra.Command{
	Use:     "create <name>",
	Short:   "Create an empty group",
	Example: `  ax group create "Winter Outfits"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runGroupCreate,
}

var groupAddCmd = &cobra.Command{
	Use:     "add <asset> <group>",
	Short:   "Move an asset into a group",
	Example: `  ax group add hat "Winter Outfits"`,
	Args:    cobra.ExactArgs(2),
	RunE:    runGroupAdd,
}

var groupRemoveCmd = &cobra.Command{
	Use:     "remove <asset>",
	Aliases: []string{"rm"},
	Short:   "Move an asset out of its group to the top level",
	Args:    cobra.ExactArgs(1),
	RunE:    runGroupRemove,
}

var groupDisbandCmd = &cobra.Command{
	Use:   "disband <group>",
	Short: "Move every member out of a group, keeping the group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupDisband,
}

var groupChildrenCmd = &cobra.Command{
	Use:     "children <group>",
	Aliases: []string{"ls"},
	Short:   "List the members of a group",
	Args:    cobra.ExactArgs(1),
	RunE:    runGroupChildren,
}

var groupTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Explore the group hierarchy interactively",
	Args:  cobra.NoArgs,
	RunE:  runGroupTree,
}

func init() {
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupRemoveCmd)
	groupCmd.AddCommand(groupDisbandCmd)
	groupCmd.AddCommand(groupChildrenCmd)
	groupCmd.AddCommand(groupTreeCmd)
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	group, err := hierarchyService.CreateGroup(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("Created group " + group.Metadata.Name))
	fmt.Println(ui.FormatMuted(group.ID.String()))
	return nil
}

func runGroupAdd(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	asset, err := resolveAsset(ctx, args[0])
	if err != nil {
		return err
	}
	group, err := resolveAsset(ctx, args[1])
	if err != nil {
		return err
	}

	if err := hierarchyService.AddToGroup(ctx, asset.ID, group.ID); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Moved %s into %s", asset.Metadata.Name, group.Metadata.Name)))
	return nil
}

func runGroupRemove(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	asset, err := resolveAsset(ctx, args[0])
	if err != nil {
		return err
	}
	if asset.ParentGroupID.IsZero() {
		fmt.Println(ui.FormatInfo(asset.Metadata.Name + " is not in a group."))
		return nil
	}
	if err := hierarchyService.RemoveFromGroup(ctx, asset.ID); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("Moved " + asset.Metadata.Name + " to the top level"))
	return nil
}

func runGroupDisband(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	group, err := resolveAsset(ctx, args[0])
	if err != nil {
		return err
	}
	if err := hierarchyService.Disband(ctx, group.ID); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("Disbanded " + group.Metadata.Name))
	return nil
}

func runGroupChildren(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	group, err := resolveAsset(ctx, args[0])
	if err != nil {
		return err
	}
	children, err := hierarchyService.GroupChildren(ctx, group.ID)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		fmt.Println(ui.FormatInfo(group.Metadata.Name + " is empty."))
		return nil
	}

	fmt.Println(ui.FormatTitle(fmt.Sprintf("%s %s (%d)", ui.IconGroup, group.Metadata.Name, len(children))))
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, decorateName(child))
	}
	fmt.Print(ui.RenderSimpleList(names))
	return nil
}

func runGroupTree(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	lib := libraryStore.Load(ctx, libraryPath)
	view, err := NewTreeExplorer(lib)
	if err != nil {
		return err
	}
	return view.Run()
}
