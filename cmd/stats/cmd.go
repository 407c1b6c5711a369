package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/asterix-bot/storage-bot/config"
	"github.com/asterix-bot/storage-bot/database"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(12)
	valueStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "print ledger statistics and the most downloaded files",
	RunE:  Stats,
}

func Register(root *cobra.Command) {
	statsCmd.Flags().IntP("top", "n", 10, "number of most downloaded files to list")
	root.AddCommand(statsCmd)
}

func Stats(cmd *cobra.Command, _ []string) error {
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := config.Init(ctx, config.GetConfigFile(cmd)); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	store, err := database.Open(ctx, config.C().DB.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	files, err := store.TopFiles(ctx, top)
	if err != nil {
		return err
	}
	fmt.Println(Render(st, files))
	return nil
}

// Render formats the statistics box followed by the top files.
func Render(st *database.Stats, files []database.File) string {
	line := func(label string, value int64) string {
		return labelStyle.Render(label) + valueStyle.Render(humanize.Comma(value))
	}
	summary := strings.Join([]string{
		titleStyle.Render("Asterix Bot"),
		line("Users", st.Users),
		line("Banned", st.Banned),
		line("Files", st.Files),
		line("Downloads", st.Downloads),
		line("Searches", st.Searches),
	}, "\n")

	var b strings.Builder
	b.WriteString(boxStyle.Render(summary))
	if len(files) == 0 {
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Most downloaded"))
	for i, f := range files {
		name := f.Title
		if name == "" {
			name = f.FileName
		}
		fmt.Fprintf(&b, "\n%2d. %s  %s  %s", i+1, name, labelStyle.Render(humanize.Bytes(uint64(max(f.Size, 0)))), valueStyle.Render(humanize.Comma(f.Downloads)))
	}
	return b.String()
}
