package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tressa-sh/tressa/internal/pager"
)

var (
	listMine     bool
	listPage     int
	listPageSize int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tresses, one page at a time",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := openClient()
		if err != nil {
			return err
		}

		endpoint := pager.Public
		if listMine {
			deps.sessions.Hydrate(cmd.Context())
			if !deps.sessions.IsLoggedIn() {
				return fmt.Errorf("`--mine` requires a login; run `tressa login` first")
			}
			endpoint = pager.Mine
		}

		pageSize := listPageSize
		if pageSize == 0 {
			pageSize = deps.cfg.PageSize
		}

		p := pager.New(deps.client, endpoint, pageSize)
		if err := p.LoadPage(cmd.Context(), listPage); err != nil {
			return err
		}

		for _, item := range p.Items() {
			owner := "anonymous"
			if item.OwnerUsername != nil {
				owner = *item.OwnerUsername
			}
			visibility := ""
			if !item.IsPublic {
				visibility = " [private]"
			}
			fmt.Printf("#%d  %s  (%s, %s)%s\n", item.ID, item.Title, item.Language, owner, visibility)
			if preview := strings.TrimSpace(item.ContentPreview); preview != "" && verbose {
				fmt.Printf("    %s\n", strings.ReplaceAll(preview, "\n", "\n    "))
			}
		}

		if pg := p.Pagination(); pg != nil {
			fmt.Printf("\nPage %d of %d (%d items)\n", pg.Page, pg.TotalPages, pg.TotalItems)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listMine, "mine", false, "list your own tresses instead of public ones")
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 0, "items per page (default from config)")
	rootCmd.AddCommand(listCmd)
}
