package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"dms-go/internal/config"
	"dms-go/internal/dms"
	"dms-go/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func dateOf(ts model.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("2006-01-02 15:04")
}

func sizeOf(doc model.Document) string {
	if doc.FileSizeFormatted != "" {
		return doc.FileSizeFormatted
	}
	return fmt.Sprintf("%d B", doc.FileSize)
}

func categoryOf(doc model.Document) string {
	if doc.Category == nil {
		return "-"
	}
	return doc.Category.Name
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// printLoadErrors reports fetches that failed while the rest of the page loaded.
func printLoadErrors(w io.Writer, errs []string) {
	for _, e := range errs {
		fmt.Fprintf(w, "warning: %s\n", e)
	}
}

func renderConfig(w io.Writer, cfg *config.Config) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "API URL:\t%s\n", cfg.APIURL)
	fmt.Fprintf(tw, "Base Dir:\t%s\n", cfg.BaseDir)
	fmt.Fprintf(tw, "Log Dir:\t%s\n", cfg.LogDir)
	fmt.Fprintf(tw, "Log Level:\t%s\n", cfg.LogLevel)
	fmt.Fprintf(tw, "Storage:\t%s %s\n", cfg.Storage.Type, cfg.Storage.Path)
	fmt.Fprintf(tw, "Encryption:\t%s\n", cfg.Encryption.Type)
	switch cfg.Downloads.Type {
	case "s3":
		fmt.Fprintf(tw, "Downloads:\ts3://%s/%s\n", cfg.Downloads.S3Bucket, cfg.Downloads.S3Prefix)
	default:
		fmt.Fprintf(tw, "Downloads:\t%s %s\n", cfg.Downloads.Type, cfg.Downloads.Dir)
	}
	return tw.Flush()
}

func renderUser(w io.Writer, u model.User) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	fmt.Fprintf(tw, "Documents:\t%d\n", u.DocumentsCount)
	fmt.Fprintf(tw, "Member since:\t%s\n", dateOf(u.CreatedAt))
	return tw.Flush()
}

func renderDashboard(w io.Writer, v dms.DashboardView) error {
	fmt.Fprintf(w, "Welcome, %s\n\n", v.User.Username)
	printLoadErrors(w, v.LoadErrors)

	tw := newTable(w)
	if v.Stats != nil {
		fmt.Fprintf(tw, "Documents:\t%d\n", v.Stats.TotalDocuments)
		fmt.Fprintf(tw, "Total size:\t%s\n", v.Stats.TotalSizeFormatted)
		fmt.Fprintf(tw, "Categories:\t%d\n", v.Stats.TotalCategories)
		fmt.Fprintf(tw, "Users:\t%d\n", v.Stats.TotalUsers)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nRecent documents:")
	if len(v.Recent) == 0 {
		fmt.Fprintln(w, "No documents yet. Upload one with 'dms documents upload FILE'.")
	} else if err := writeDocumentTable(w, v.Recent); err != nil {
		return err
	}

	if v.ShowCategoryAdmin() {
		fmt.Fprintln(w, "\nManage categories with 'dms categories'.")
	}
	return nil
}

func renderDocuments(w io.Writer, v dms.DocumentsView) error {
	printLoadErrors(w, v.LoadErrors)
	if len(v.Documents) == 0 {
		if v.TotalFetched == 0 {
			fmt.Fprintln(w, "No documents found.")
		} else {
			fmt.Fprintln(w, "No documents match the filter.")
		}
		return nil
	}
	return writeDocumentTable(w, v.Documents)
}

func writeDocumentTable(w io.Writer, docs []model.Document) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tFILE\tSIZE\tCATEGORY\tTAGS\tOWNER\tUPLOADED")
	for _, d := range docs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Title, d.Filename, sizeOf(d), categoryOf(d),
			strings.Join(d.Tags, ","), d.Owner, dateOf(d.UploadDate))
	}
	return tw.Flush()
}

func renderCategories(w io.Writer, v dms.CategoriesView) error {
	printLoadErrors(w, v.LoadErrors)
	if len(v.Categories) == 0 {
		fmt.Fprintln(w, "No categories yet. Create one with 'dms categories create --name NAME'.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCOLOR\tDOCUMENTS\tDESCRIPTION\tDELETABLE")
	for _, c := range v.Categories {
		deletable := "no"
		if c.CanDelete {
			deletable = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			c.ID, c.Name, c.Color, c.DocumentsCount, orDash(c.Description), deletable)
	}
	return tw.Flush()
}
