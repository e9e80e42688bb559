package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"dms-go/internal/app"
	"dms-go/internal/dms"
	"dms-go/internal/model"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cats"},
	Short:   "Manage categories (admin only)",
}

func mountCategories(ctx context.Context, a *app.DMSApp) (*dms.CategoriesController, error) {
	c := a.Categories()
	if err := c.Mount(ctx); err != nil {
		return nil, explain(a, err, dms.StatusMessage{})
	}
	return c, nil
}

// resolveColor accepts a palette name ("green") or a hex value.
func resolveColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, opt := range dms.CategoryPalette {
		if strings.EqualFold(s, opt.Name) || strings.EqualFold(s, opt.Value) {
			return opt.Value, nil
		}
	}
	if len(s) == 7 && s[0] == '#' {
		return strings.ToLower(s), nil
	}
	return "", fmt.Errorf("unknown color %q", s)
}

// applyCategoryFlags copies the flags the user set onto form.
func applyCategoryFlags(cmd *cobra.Command, form *model.CategoryFields) error {
	if cmd.Flags().Changed("name") {
		form.Name, _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("description") {
		form.Description, _ = cmd.Flags().GetString("description")
	}
	if cmd.Flags().Changed("color") {
		raw, _ := cmd.Flags().GetString("color")
		color, err := resolveColor(raw)
		if err != nil {
			return err
		}
		form.Color = color
	}
	return nil
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "", func(ctx context.Context, a *app.DMSApp) error {
			c, err := mountCategories(ctx, a)
			if err != nil {
				return err
			}
			defer c.Unmount()
			return renderCategories(os.Stdout, c.View())
		})
	},
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		return withApp(cmd, name, func(ctx context.Context, a *app.DMSApp) error {
			c, err := mountCategories(ctx, a)
			if err != nil {
				return err
			}
			defer c.Unmount()

			c.OpenCreate()
			var flagErr error
			c.EditForm(func(form *model.CategoryFields) { flagErr = applyCategoryFlags(cmd, form) })
			if flagErr != nil {
				return flagErr
			}
			if err := c.Create(); err != nil {
				return explain(a, err, c.View().Status)
			}
			fmt.Println(c.View().Status.Text)
			return nil
		})
	},
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, args[0], func(ctx context.Context, a *app.DMSApp) error {
			c, err := mountCategories(ctx, a)
			if err != nil {
				return err
			}
			defer c.Unmount()

			if !c.OpenEdit(id) {
				return fmt.Errorf("category %d not found", id)
			}
			var flagErr error
			c.EditForm(func(form *model.CategoryFields) { flagErr = applyCategoryFlags(cmd, form) })
			if flagErr != nil {
				return flagErr
			}
			if err := c.Update(); err != nil {
				return explain(a, err, c.View().Status)
			}
			fmt.Println(c.View().Status.Text)
			return nil
		})
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an empty category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		return withApp(cmd, args[0], func(ctx context.Context, a *app.DMSApp) error {
			c, err := mountCategories(ctx, a)
			if err != nil {
				return err
			}
			defer c.Unmount()

			if err := c.Delete(id, confirmer(yes, "category")); err != nil {
				if errors.Is(err, dms.ErrNoSelection) {
					return fmt.Errorf("category %d not found", id)
				}
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
	for _, cmd := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		cmd.Flags().StringP("name", "n", "", "Name")
		cmd.Flags().StringP("description", "d", "", "Description")
		cmd.Flags().String("color", dms.DefaultCategoryColor, "Color: a palette name (blue, red, green, ...) or #rrggbb")
	}
	categoriesDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesCreateCmd)
	categoriesCmd.AddCommand(categoriesUpdateCmd)
	categoriesCmd.AddCommand(categoriesDeleteCmd)
}
