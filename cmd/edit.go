package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/workbench"
)

var editCmd = &cobra.Command{
	Use:   "edit <file> <action> [args...]",
	Short: "Apply one edit to an instrument file and rewrite it",
	Long: `Apply one edit to an instrument file and rewrite it.

Actions:
  add                         append a blank element and print its ID
  remove <id>                 remove an element
  set <id> <field> <value>    set one element field
  title <text>                set the title
  student <name>              set the evaluated student
  fields                      list the editable element fields`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, action, rest := args[0], args[1], args[2:]

		inst, err := readInstrument(path)
		if err != nil {
			return err
		}
		kind := inst.Kind()
		out := cmd.OutOrStdout()

		if action == "fields" {
			fmt.Fprintln(out, strings.Join(instrument.Fields(kind), "\n"))
			return nil
		}

		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		wb := workbench.New(nil, d.cat.Placeholders(), d.log)
		wb.Load(inst)

		switch action {
		case "add":
			var id string
			inst, id, err = wb.AppendBlank(kind)
			if err == nil {
				fmt.Fprintln(out, id)
			}
		case "remove":
			if err := wantArgs(rest, 1, "remove <id>"); err != nil {
				return err
			}
			inst, err = wb.Remove(kind, rest[0])
		case "set":
			if err := wantArgs(rest, 3, "set <id> <field> <value>"); err != nil {
				return err
			}
			inst, err = wb.SetField(kind, rest[0], rest[1], rest[2])
		case "title", "student":
			if err := wantArgs(rest, 1, action+" <text>"); err != nil {
				return err
			}
			m := inst.Meta()
			if action == "title" {
				m.Title = rest[0]
			} else {
				m.Student = rest[0]
			}
			inst, err = wb.SetMeta(kind, m)
		default:
			return fmt.Errorf("unknown action %q", action)
		}
		if err != nil {
			return err
		}

		data, err := instrument.Marshal(inst)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write instrument: %w", err)
		}
		d.log.Debug("instrument edited", zap.String("file", path), zap.String("action", action))
		fmt.Fprintf(cmd.ErrOrStderr(), "score: %s\n", inst.Score())
		return nil
	},
}

func wantArgs(args []string, n int, usage string) error {
	if len(args) != n {
		return fmt.Errorf("usage: eduval edit <file> %s", usage)
	}
	return nil
}
