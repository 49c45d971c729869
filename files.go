package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/spgo/sharepoint-go/internal/sp"
	"github.com/spgo/sharepoint-go/internal/sptree"
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <folder>",
		Short: "List files and subfolders",
		Args:  cobra.ExactArgs(1),
		RunE:  runLs,
	}
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <folder>",
		Short: "Show a folder's contents as a tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runTree,
	}

	cmd.Flags().BoolP("recursive", "r", false, "descend into subfolders")

	return cmd
}

func newStatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stat <path>",
		Short: "Display file or folder metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  runStat,
	}

	cmd.Flags().Bool("folder", false, "treat the path as a folder")

	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <remote-file> [local-path]",
		Short: "Download a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runGet,
	}
}

func newGetFolderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-folder <remote-folder> <output.zip>",
		Short: "Download a folder as a .zip archive",
		Args:  cobra.ExactArgs(2),
		RunE:  runGetFolder,
	}

	cmd.Flags().BoolP("recursive", "r", false, "include subfolders")

	return cmd
}

func newPutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put <local-file> <remote-folder>",
		Short: "Upload a file into a folder",
		Args:  cobra.ExactArgs(2),
		RunE:  runPut,
	}

	cmd.Flags().Bool("overwrite", false, "replace an existing remote file")

	return cmd
}

func newPutFolderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put-folder <local-folder> <remote-folder>",
		Short: "Archive a local folder and upload it as a .zip",
		Args:  cobra.ExactArgs(2),
		RunE:  runPutFolder,
	}

	cmd.Flags().Bool("overwrite", false, "replace an existing remote archive")

	return cmd
}

func newMkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <parent-folder> <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(2),
		RunE:  runMkdir,
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <remote-file>",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRm,
	}
}

func newRmdirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rmdir <remote-folder>",
		Short: "Delete a folder and its contents",
		Long: `Delete a folder on the site. Deletion is recursive — the server
removes all contained files and subfolders. Use --force to confirm
intent.`,
		Args: cobra.ExactArgs(1),
		RunE: runRmdir,
	}

	cmd.Flags().BoolP("force", "f", false, "confirm recursive folder deletion")

	return cmd
}

// lsJSONItem is the JSON output schema for a single entry in ls output.
type lsJSONItem struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Size       int64  `json:"size,omitempty"`
	IsFolder   bool   `json:"is_folder"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

func runLs(cmd *cobra.Command, args []string) error {
	folderURL := args[0]
	ctx := cmd.Context()

	client := newSPClient()

	folder, err := client.Folder(ctx, folderURL, "Files", "Folders")
	if err != nil {
		return fmt.Errorf("listing %q: %w", folderURL, err)
	}

	sortFolderEntries(folder)

	if flagJSON {
		return printFolderJSON(os.Stdout, folder)
	}

	printFolderTable(folder)

	return nil
}

// sortFolderEntries orders each group alphabetically so JSON and table
// output agree; folders are listed before files in both.
func sortFolderEntries(folder *sp.FolderInfo) {
	sort.Slice(folder.Folders, func(i, j int) bool {
		return folder.Folders[i].Name < folder.Folders[j].Name
	})
	sort.Slice(folder.Files, func(i, j int) bool {
		return folder.Files[i].Name < folder.Files[j].Name
	})
}

func printFolderJSON(w io.Writer, folder *sp.FolderInfo) error {
	out := make([]lsJSONItem, 0, len(folder.Folders)+len(folder.Files))

	for i := range folder.Folders {
		out = append(out, lsJSONItem{
			Name:     folder.Folders[i].Name,
			Path:     folder.Folders[i].ServerRelativeURL,
			IsFolder: true,
		})
	}

	for i := range folder.Files {
		out = append(out, lsJSONItem{
			Name:       folder.Files[i].Name,
			Path:       folder.Files[i].ServerRelativeURL,
			Size:       int64(folder.Files[i].Length),
			ModifiedAt: formatTimestamp(folder.Files[i].TimeLastModified),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func printFolderTable(folder *sp.FolderInfo) {
	headers := []string{"NAME", "SIZE", "MODIFIED"}
	rows := make([][]string, 0, len(folder.Folders)+len(folder.Files))

	for i := range folder.Folders {
		rows = append(rows, []string{folder.Folders[i].Name + "/", "-", "-"})
	}

	for i := range folder.Files {
		rows = append(rows, []string{
			folder.Files[i].Name,
			formatSize(int64(folder.Files[i].Length)),
			formatTime(folder.Files[i].TimeLastModified),
		})
	}

	printTable(os.Stdout, headers, rows)
}

func runTree(cmd *cobra.Command, args []string) error {
	folderURL := args[0]
	ctx := cmd.Context()

	recursive, err := cmd.Flags().GetBool("recursive")
	if err != nil {
		return err
	}

	client := newSPClient()

	tree, err := client.FolderContents(ctx, folderURL, recursive)
	if err != nil {
		return fmt.Errorf("reading %q: %w", folderURL, err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(tree.Dict())
	}

	printTreeText(tree)
	statusf("%d items\n", tree.Count())

	return nil
}

// printTreeText prints an indented listing, one node per line. Depth is
// derived from each node's parent chain.
func printTreeText(tree *sptree.Tree) {
	for node := range tree.Nodes() {
		depth := 0
		for p := node.Parent(); p != nil; p = p.Parent() {
			depth++
		}

		name := node.Name()
		if node.IsFolder() {
			name += "/"
		}

		for range depth {
			fmt.Print("  ")
		}

		fmt.Println(name)
	}
}

// statJSONOutput is the JSON output schema for the stat command.
type statJSONOutput struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Size       int64  `json:"size,omitempty"`
	IsFolder   bool   `json:"is_folder"`
	ItemCount  int    `json:"item_count,omitempty"`
	UniqueID   string `json:"unique_id,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

func runStat(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := cmd.Context()

	asFolder, err := cmd.Flags().GetBool("folder")
	if err != nil {
		return err
	}

	client := newSPClient()

	var out statJSONOutput

	if asFolder {
		folder, folderErr := client.Folder(ctx, path)
		if folderErr != nil {
			return fmt.Errorf("resolving %q: %w", path, folderErr)
		}

		out = statJSONOutput{
			Name:       folder.Name,
			Path:       folder.ServerRelativeURL,
			IsFolder:   true,
			ItemCount:  folder.ItemCount,
			UniqueID:   folder.UniqueID,
			CreatedAt:  formatTimestamp(folder.TimeCreated),
			ModifiedAt: formatTimestamp(folder.TimeLastModified),
		}
	} else {
		file, fileErr := client.File(ctx, path)
		if fileErr != nil {
			return fmt.Errorf("resolving %q: %w", path, fileErr)
		}

		out = statJSONOutput{
			Name:       file.Name,
			Path:       file.ServerRelativeURL,
			Size:       int64(file.Length),
			UniqueID:   file.UniqueID,
			CreatedAt:  formatTimestamp(file.TimeCreated),
			ModifiedAt: formatTimestamp(file.TimeLastModified),
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(out)
	}

	printStatText(out)

	return nil
}

func printStatText(out statJSONOutput) {
	itemType := "file"
	if out.IsFolder {
		itemType = "folder"
	}

	fmt.Printf("Name:     %s\n", out.Name)
	fmt.Printf("Type:     %s\n", itemType)
	fmt.Printf("Path:     %s\n", out.Path)

	if out.IsFolder {
		fmt.Printf("Items:    %d\n", out.ItemCount)
	} else {
		fmt.Printf("Size:     %s (%d bytes)\n", formatSize(out.Size), out.Size)
	}

	fmt.Printf("Modified: %s\n", out.ModifiedAt)
	fmt.Printf("Created:  %s\n", out.CreatedAt)

	if out.UniqueID != "" {
		fmt.Printf("ID:       %s\n", out.UniqueID)
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	remotePath := args[0]
	ctx := cmd.Context()

	client := newSPClient()

	file, err := client.File(ctx, remotePath)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", remotePath, err)
	}

	localPath := file.Name
	if len(args) > 1 {
		localPath = args[1]
	}

	if err := client.DownloadFile(ctx, file.ServerRelativeURL, localPath); err != nil {
		return fmt.Errorf("downloading %q: %w", remotePath, err)
	}

	statusf("Downloaded %s (%s)\n", localPath, formatSize(int64(file.Length)))

	return nil
}

func runGetFolder(cmd *cobra.Command, args []string) error {
	remoteFolder := args[0]
	outputZip := args[1]
	ctx := cmd.Context()

	recursive, err := cmd.Flags().GetBool("recursive")
	if err != nil {
		return err
	}

	client := newSPClient()

	if err := client.DownloadFolder(ctx, remoteFolder, outputZip, recursive); err != nil {
		return fmt.Errorf("downloading folder %q: %w", remoteFolder, err)
	}

	statusf("Downloaded %s to %s\n", remoteFolder, outputZip)

	return nil
}

func runPut(cmd *cobra.Command, args []string) error {
	localPath := args[0]
	remoteFolder := args[1]
	ctx := cmd.Context()

	overwrite, err := cmd.Flags().GetBool("overwrite")
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("overwrite") {
		overwrite = resolvedCfg.Overwrite
	}

	client := newSPClient()

	uploaded, err := client.UploadFile(ctx, remoteFolder, localPath,
		overwrite, resolvedCfg.ChunkSizeBytes, transferProgress())
	if err != nil {
		return fmt.Errorf("uploading %q: %w", localPath, err)
	}

	statusf("Uploaded %s\n", uploaded)

	return nil
}

func runPutFolder(cmd *cobra.Command, args []string) error {
	localFolder := args[0]
	remoteFolder := args[1]
	ctx := cmd.Context()

	overwrite, err := cmd.Flags().GetBool("overwrite")
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("overwrite") {
		overwrite = resolvedCfg.Overwrite
	}

	client := newSPClient()

	uploaded, err := client.UploadFolderAsZip(ctx, remoteFolder, localFolder, overwrite)
	if err != nil {
		return fmt.Errorf("uploading folder %q: %w", localFolder, err)
	}

	statusf("Uploaded %s\n", uploaded)

	return nil
}

// mkdirJSONOutput is the JSON output schema for the mkdir command.
type mkdirJSONOutput struct {
	Created string `json:"created"`
}

func runMkdir(cmd *cobra.Command, args []string) error {
	parentFolder := args[0]
	name := args[1]
	ctx := cmd.Context()

	client := newSPClient()

	created, err := client.CreateFolder(ctx, parentFolder, name)
	if err != nil {
		return fmt.Errorf("creating folder %q: %w", name, err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(mkdirJSONOutput{Created: created})
	}

	statusf("Created %s\n", created)

	return nil
}

// rmJSONOutput is the JSON output schema for the rm and rmdir commands.
type rmJSONOutput struct {
	Deleted string `json:"deleted"`
}

func runRm(cmd *cobra.Command, args []string) error {
	remotePath := args[0]
	ctx := cmd.Context()

	client := newSPClient()

	if err := client.DeleteFile(ctx, remotePath); err != nil {
		return fmt.Errorf("deleting %q: %w", remotePath, err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(rmJSONOutput{Deleted: remotePath})
	}

	statusf("Deleted %s\n", remotePath)

	return nil
}

func runRmdir(cmd *cobra.Command, args []string) error {
	remoteFolder := args[0]
	ctx := cmd.Context()

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		return fmt.Errorf("cannot delete folder %q without --force (-f) flag", remoteFolder)
	}

	client := newSPClient()

	if err := client.DeleteFolder(ctx, remoteFolder); err != nil {
		return fmt.Errorf("deleting folder %q: %w", remoteFolder, err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(rmJSONOutput{Deleted: remoteFolder})
	}

	statusf("Deleted %s\n", remoteFolder)

	return nil
}
