package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tressa-sh/tressa/internal/pager"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download all of your tresses as files",
	Long: `Walks every page of your tresses and writes each one's raw content to a
file named <id>-<title> in the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := openClient()
		if err != nil {
			return err
		}

		deps.sessions.Hydrate(cmd.Context())
		if !deps.sessions.IsLoggedIn() {
			return fmt.Errorf("exporting requires a login; run `tressa login` first")
		}

		if err := os.MkdirAll(exportDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		p := pager.New(deps.client, pager.Mine, deps.cfg.PageSize)
		if err := p.EnsureLoaded(cmd.Context()); err != nil {
			return err
		}

		pg := p.Pagination()
		if pg == nil || pg.TotalItems == 0 {
			fmt.Println("Nothing to export.")
			return nil
		}

		bar := progressbar.Default(int64(pg.TotalItems), "exporting")
		exported := 0
		for {
			for _, item := range p.Items() {
				content, err := deps.client.RawContent(cmd.Context(), item.ID)
				if err != nil {
					return fmt.Errorf("fetching tress #%d: %w", item.ID, err)
				}
				name := fmt.Sprintf("%d-%s", item.ID, sanitizeFilename(item.Title))
				path := filepath.Join(exportDir, name)
				if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				exported++
				bar.Add(1)
			}

			pg = p.Pagination()
			if pg == nil || !pg.HasNext {
				break
			}
			if err := p.LoadPage(cmd.Context(), pg.Page+1); err != nil {
				return err
			}
		}

		fmt.Printf("\nExported %d tresses to %s\n", exported, exportDir)
		return nil
	},
}

// sanitizeFilename keeps titles filesystem-safe.
func sanitizeFilename(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "untitled"
	}
	return string(out)
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "out", "tresses", "output directory")
	rootCmd.AddCommand(exportCmd)
}
