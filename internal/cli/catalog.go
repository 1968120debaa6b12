package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/protoboard/protoboard/pkg/catalog"
)

// boardsCommand lists boards, or shows one board in detail.
func (c *CLI) boardsCommand() *cobra.Command {
	var (
		category  string
		query     string
		asJSON    bool
		footprint string
	)

	cmd := &cobra.Command{
		Use:   "boards [board-id]",
		Short: "List development boards",
		Long: `List the development boards in the catalog, optionally filtered by
category (arduino, raspberry-pi, fpga) or a search term.

With a board id, show that board's details. --footprint writes its
footprint SVG to a file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.newCatalog()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				b, ok := cat.Board(args[0])
				if !ok {
					return fmt.Errorf("unknown board %q", args[0])
				}
				if footprint != "" {
					if err := os.WriteFile(footprint, []byte(catalog.FootprintSVG(b)), 0o644); err != nil {
						return fmt.Errorf("write footprint: %w", err)
					}
				}
				if asJSON {
					return writeJSON(c.out, b)
				}
				printBoard(c.out, b)
				if footprint != "" {
					printFile(c.out, footprint)
				}
				return nil
			}

			boards := cat.FilterBoards(catalog.BoardCategory(category), query)
			if asJSON {
				return writeJSON(c.out, boards)
			}
			if len(boards) == 0 {
				printInfo(c.out, "No boards match")
				return nil
			}
			fmt.Fprintln(c.out, boardTable(boards))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category (arduino, raspberry-pi, fpga)")
	cmd.Flags().StringVarP(&query, "search", "q", "", "filter by name, manufacturer or description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().StringVar(&footprint, "footprint", "", "write the board footprint SVG to this file")
	_ = cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"arduino", "raspberry-pi", "fpga"}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.ValidArgsFunction = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return catalog.Default().BoardIDs(), cobra.ShellCompDirectiveNoFileComp
	}
	return cmd
}

func boardTable(boards []catalog.Board) string {
	rows := make([][]string, 0, len(boards))
	for _, b := range boards {
		rows = append(rows, []string{
			b.ID,
			b.Name,
			string(b.Category),
			fmt.Sprintf("%g × %g mm", b.Dimensions.Width, b.Dimensions.Height),
			strconv.Itoa(b.Power.MaxCurrentMa) + " mA",
		})
	}
	return renderTable([]string{"ID", "Name", "Category", "Size", "Max current"}, rows, nil)
}

func printBoard(w io.Writer, b catalog.Board) {
	fmt.Fprintln(w, StyleTitle.Render(b.Name))
	fmt.Fprintln(w, StyleDim.Render(b.Description))
	fmt.Fprintln(w)
	printKeyValue(w, "ID", b.ID)
	printKeyValue(w, "Manufacturer", b.Manufacturer)
	printKeyValue(w, "Category", string(b.Category))
	printKeyValue(w, "Size", fmt.Sprintf("%g × %g × %g mm", b.Dimensions.Width, b.Dimensions.Height, b.Dimensions.Thickness))
	printKeyValue(w, "Digital pins", strconv.Itoa(b.IO.DigitalPins))
	printKeyValue(w, "Analog inputs", strconv.Itoa(b.IO.AnalogInputs))
	printKeyValue(w, "Interfaces", strings.Join(b.IO.Communication, ", "))
	printKeyValue(w, "Supply", b.Power.Supply)
	printKeyValue(w, "Max current", fmt.Sprintf("%d mA", b.Power.MaxCurrentMa))
	for _, s := range b.Specs {
		printKeyValue(w, s.Key, s.Value)
	}
}

// modulesCommand searches the module catalog.
func (c *CLI) modulesCommand() *cobra.Command {
	var (
		category string
		query    string
		board    string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List sensor and actuator modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.newCatalog()
			if err != nil {
				return err
			}
			if board != "" {
				if _, ok := cat.Board(board); !ok {
					return fmt.Errorf("unknown board %q", board)
				}
			}

			mods := cat.SearchModules(query, catalog.ModuleCategory(category), board)
			if asJSON {
				return writeJSON(c.out, mods)
			}
			if len(mods) == 0 {
				printInfo(c.out, "No modules match")
				return nil
			}
			fmt.Fprintln(c.out, moduleTable(mods))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category (sensor, actuator, communication, power, display)")
	cmd.Flags().StringVarP(&query, "search", "q", "", "filter by name, description or source URL")
	cmd.Flags().StringVarP(&board, "board", "b", "", "only modules compatible with this board")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func moduleTable(mods []catalog.ModuleMetadata) string {
	rows := make([][]string, 0, len(mods))
	for _, m := range mods {
		rows = append(rows, []string{
			m.ID,
			m.Name,
			string(m.Category),
			string(m.Status),
			strings.Join(m.Electrical.Interfaces, ", "),
			fmt.Sprintf("%g mA", m.Electrical.TypicalCurrentMa),
		})
	}
	return renderTable([]string{"ID", "Name", "Category", "Status", "Interfaces", "Current"}, rows,
		func(row, col int) *lipgloss.Style {
			if col != 3 || row < 0 || row >= len(mods) {
				return nil
			}
			if s, ok := statusStyles[string(mods[row].Status)]; ok {
				return &s
			}
			return nil
		})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
