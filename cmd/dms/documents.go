package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"dms-go/internal/app"
	"dms-go/internal/dms"

	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "List, upload, download and delete documents",
}

// mountDocuments mounts the documents page; openUpload also opens the upload dialog.
func mountDocuments(ctx context.Context, a *app.DMSApp, openUpload bool) (*dms.DocumentsController, error) {
	c := a.Documents()
	if err := c.Mount(ctx, openUpload); err != nil {
		return nil, explain(a, err, dms.StatusMessage{})
	}
	return c, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		category, _ := cmd.Flags().GetString("category")
		return withApp(cmd, search, func(ctx context.Context, a *app.DMSApp) error {
			c, err := mountDocuments(ctx, a, false)
			if err != nil {
				return err
			}
			defer c.Unmount()

			c.SetSearchTerm(search)
			c.SelectCategory(category)
			return renderDocuments(os.Stdout, c.View())
		})
	},
}

var documentsUploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")
		tags, _ := cmd.Flags().GetString("tags")

		return withApp(cmd, args[0], func(ctx context.Context, a *app.DMSApp) error {
			c, err := mountDocuments(ctx, a, true)
			if err != nil {
				return err
			}
			defer c.Unmount()

			c.EditForm(func(f *dms.UploadForm) {
				f.Title = title
				f.Description = description
				f.CategoryID = category
				f.Tags = tags
			})
			if err := c.SelectFile(args[0]); err != nil {
				return explain(a, err, c.View().Status)
			}
			if err := c.Upload(); err != nil {
				return explain(a, err, c.View().Status)
			}
			fmt.Println(c.View().Status.Text)
			return nil
		})
	},
}

var documentsDownloadCmd = &cobra.Command{
	Use:   "download ID",
	Short: "Download a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, args[0], func(ctx context.Context, a *app.DMSApp) error {
			c, err := mountDocuments(ctx, a, false)
			if err != nil {
				return err
			}
			defer c.Unmount()

			location, err := c.Download(id)
			if err != nil {
				return explain(a, err, c.View().Status)
			}
			fmt.Printf("Saved to %s\n", location)
			return nil
		})
	},
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		return withApp(cmd, args[0], func(ctx context.Context, a *app.DMSApp) error {
			c, err := mountDocuments(ctx, a, false)
			if err != nil {
				return err
			}
			defer c.Unmount()

			if err := c.Delete(id, confirmer(yes, "document")); err != nil {
				return explain(a, err, c.View().Status)
			}
			if status := c.View().Status; !status.Empty() {
				fmt.Println(status.Text)
			}
			return nil
		})
	},
}

func init() {
	documentsListCmd.Flags().StringP("search", "s", "", "Only show documents whose title, file name or tags contain this text")
	documentsListCmd.Flags().StringP("category", "c", "", "Only show documents in this category id")

	documentsUploadCmd.Flags().StringP("title", "t", "", "Title (default: file name without extension)")
	documentsUploadCmd.Flags().StringP("description", "d", "", "Description")
	documentsUploadCmd.Flags().StringP("category", "c", "", "Category id")
	documentsUploadCmd.Flags().String("tags", "", "Comma-separated tags")

	documentsDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsUploadCmd)
	documentsCmd.AddCommand(documentsDownloadCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
}
