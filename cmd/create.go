package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/tressa-sh/tressa/internal/api"
	"github.com/tressa-sh/tressa/internal/history"
	"github.com/tressa-sh/tressa/internal/render"
)

var (
	createTitle    string
	createLanguage string
	createPrivate  bool
	createAnon     bool
	createExpires  int
	createResume   bool
	createDraft    bool
)

// extLanguages maps common file extensions to language tags.
var extLanguages = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".rs":   "rust",
	".c":    "c",
	".cpp":  "cpp",
	".java": "java",
	".rb":   "ruby",
	".php":  "php",
	".sh":   "shell",
	".sql":  "sql",
	".html": "html",
	".css":  "css",
	".json": "json",
	".yml":  "yaml",
	".yaml": "yaml",
	".toml": "toml",
	".xml":  "xml",
	".md":   "markdown",
}

var createCmd = &cobra.Command{
	Use:   "create [file|glob ...]",
	Short: "Create a new tress from files, a glob pattern, or stdin",
	Long: `Creates one tress per input file. Arguments may be file paths or doublestar
glob patterns (e.g. 'src/**/*.go'). With no arguments, content is read from
stdin. Use --anon to submit without the stored session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := openClient()
		if err != nil {
			return err
		}

		authed := false
		if !createAnon {
			deps.sessions.Hydrate(cmd.Context())
			authed = deps.sessions.IsLoggedIn()
		}

		var expires *int
		if createExpires > 0 {
			expires = &createExpires
		}
		if err := render.CheckExpiry(expires, authed); err != nil {
			return err
		}

		submit := func(title, content, language string) error {
			if err := render.CheckSize(content, authed); err != nil {
				return err
			}
			req := api.CreateTressRequest{
				Title:         title,
				Content:       content,
				Language:      language,
				IsPublic:      !createPrivate,
				ExpiresInDays: expires,
			}
			created, err := deps.client.CreateTress(cmd.Context(), req, !authed)
			if err != nil {
				return err
			}
			fmt.Printf("Created tress #%d: %s/tress/%d\n", created.ID, deps.client.BaseURL(), created.ID)
			recordHistory(cmd.Context(), created.ID, created.Title, created.Language, history.ActionCreated)
			return nil
		}

		if createResume {
			return submitDraft(cmd, submit)
		}

		if len(args) == 0 {
			content, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			title := createTitle
			if title == "" {
				title = "Untitled"
			}
			language := createLanguage
			if language == "" {
				language = "text"
			}
			if createDraft {
				return saveDraft(cmd, title, string(content), language)
			}
			return submit(title, string(content), language)
		}

		paths, err := expandArgs(args)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no files matched")
		}

		for _, path := range paths {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			title := createTitle
			if title == "" || len(paths) > 1 {
				title = filepath.Base(path)
			}
			language := createLanguage
			if language == "" {
				language = languageForFile(path)
			}
			if err := submit(title, string(content), language); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	},
}

// expandArgs resolves each argument as a glob pattern when it contains glob
// metacharacters, or as a literal path otherwise.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func languageForFile(path string) string {
	if lang, ok := extLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "text"
}

// saveDraft stores the content locally instead of submitting it.
func saveDraft(cmd *cobra.Command, title, content, language string) error {
	store, closeDB, err := openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	d, err := store.SaveDraft(cmd.Context(), history.Draft{
		Title:    title,
		Content:  content,
		Language: language,
		IsPublic: !createPrivate,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Saved draft %s (resume with `tressa create --resume`)\n", d.ID)
	return nil
}

// submitDraft submits the most recent local draft and deletes it on success.
func submitDraft(cmd *cobra.Command, submit func(title, content, language string) error) error {
	store, closeDB, err := openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	d, err := store.LatestDraft(cmd.Context())
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("no draft to resume")
	}
	if err := submit(d.Title, d.Content, d.Language); err != nil {
		return err
	}
	return store.DeleteDraft(cmd.Context(), d.ID)
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "tress title (defaults to the file name)")
	createCmd.Flags().StringVar(&createLanguage, "language", "", "language tag (guessed from the file extension)")
	createCmd.Flags().BoolVar(&createPrivate, "private", false, "make the tress private")
	createCmd.Flags().BoolVar(&createAnon, "anon", false, "submit anonymously, without the stored session")
	createCmd.Flags().IntVar(&createExpires, "expires", 0, "expire after this many days (max 365 for anonymous)")
	createCmd.Flags().BoolVar(&createResume, "resume", false, "submit the most recent local draft")
	createCmd.Flags().BoolVar(&createDraft, "draft", false, "save locally as a draft instead of submitting")
	rootCmd.AddCommand(createCmd)
}
