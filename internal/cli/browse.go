package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/gallery"
	"github.com/olofgunnarsson/photowall/pkg/layout"
)

// browseCommand creates the browse command for the interactive terminal wall.
func (c *CLI) browseCommand() *cobra.Command {
	var rowsPerPage int

	cmd := &cobra.Command{
		Use:   "browse [album.json]",
		Short: "Browse an album as an interactive terminal wall",
		Long: `Browse an album as an interactive terminal wall.

The browse command lays the album out as a justified wall scaled to the
terminal and reveals it incrementally: the first screenful up front, one
more row whenever you scroll past the bottom. The album file acts as a
paged source, so large albums load in windows just like a remote API.

Keys:

  j/k, ↓/↑   scroll (scrolling past the bottom reveals the next row)
  h/l, ←/→   move the cursor between photos
  enter      select or deselect the photo under the cursor
  m          reveal one more row
  r          collapse back to an empty wall (the album is kept)
  q          quit and print the selection

Resizing the terminal re-packs the wall at the new width, keeping the
same number of rows revealed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("rows-per-page") {
				rowsPerPage = c.Config.Page.RowsPerPage
			}
			opts := c.pipelineOptions()
			applyLayoutFlags(cmd, &opts)
			return c.runBrowse(cmd.Context(), args[0], opts.Layout, rowsPerPage)
		},
	}

	cmd.Flags().IntVar(&rowsPerPage, "rows-per-page", 0, "rows revealed per page (0 = derive from terminal height)")
	registerLayoutFlags(cmd)

	return cmd
}

// runBrowse loads the album and runs the TUI until the user quits, then
// prints the selection.
func (c *CLI) runBrowse(ctx context.Context, input string, layoutOpts layout.Options, rowsPerPage int) error {
	a, err := album.ReadAlbumFile(input)
	if err != nil {
		return fmt.Errorf("load album %s: %w", input, err)
	}
	if a.Len() == 0 {
		printWarning("Album %s has no photos", input)
		return nil
	}

	galleryOpts := gallery.Options{
		Layout:         layoutOpts,
		RowsPerPage:    rowsPerPage,
		MinRowsAtStart: c.Config.Page.MinRowsAtStart,
		Selectable:     true,
		// The gallery logs through the CLI logger elsewhere; inside the
		// TUI that would scribble over the alternate screen.
		Logger: log.New(io.Discard),
	}

	model, err := newBrowseModel(a, galleryOpts)
	if err != nil {
		return fmt.Errorf("initialize gallery: %w", err)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}

	m, ok := final.(browseModel)
	if !ok {
		return nil
	}
	if m.err != nil {
		return m.err
	}

	selected := m.gallery.Selection()
	if len(selected) == 0 {
		printInfo("No photos selected")
		return nil
	}

	printSuccess("%d photo(s) selected", len(selected))
	for _, it := range selected {
		label := it.URL
		if label == "" {
			label = it.ID
		}
		printFile(label)
	}
	return nil
}
