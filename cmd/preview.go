package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docprep/pkg/run"
	"docprep/pkg/scan"
	"docprep/pkg/utils"
)

var previewCmd = &cobra.Command{
	Use:   "preview [source-folder]",
	Short: "List the files a run would process, without extracting anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys, cleanup, err := buildSourceFS()
		if err != nil {
			return err
		}
		if cleanup != nil {
			defer cleanup()
		}

		session := run.NewSession(nil)
		session.FS = fsys
		count, tree, err := session.ScanPreview(args[0])
		if err != nil {
			return err
		}

		printTree(tree, "")
		utils.Infof("%d supported files found", count)
		return nil
	},
	SilenceUsage: true,
}

func printTree(n *scan.TreeNode, indent string) {
	if n.Dir {
		fmt.Fprintf(os.Stdout, "%s%s/ (%d files)\n", indent, n.Name, n.FileCount)
		for _, c := range n.Children {
			printTree(c, indent+"  ")
		}
		return
	}
	fmt.Fprintf(os.Stdout, "%s%s\n", indent, n.Name)
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
