package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eduval/eduval/internal/export"
	"github.com/eduval/eduval/internal/generate"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/workbench"
)

var kindList = strings.Join(kindNames(), ", ")

func kindNames() []string {
	names := make([]string, len(instrument.Kinds))
	for i, k := range instrument.Kinds {
		names[i] = string(k)
	}
	return names
}

var newCmd = &cobra.Command{
	Use:       "new <kind>",
	Short:     "Print a blank instrument as JSON",
	Long:      "Print a blank instrument as JSON. Kinds: " + kindList + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := instrument.ParseKind(args[0])
		if err != nil {
			return err
		}
		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		inst, err := instrument.NewBlank(kind, d.cat.Placeholders())
		if err != nil {
			return err
		}
		return writeInstrument(cmd, inst)
	},
}

var generateCmd = &cobra.Command{
	Use:       "generate <kind>",
	Short:     "Generate an instrument with the configured AI provider",
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := instrument.ParseKind(args[0])
		if err != nil {
			return err
		}
		p := paramsFromFlags(cmd)

		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		gen, err := d.generator(cmd.Context())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		wb := workbench.New(gen, d.cat.Placeholders(), d.log)
		inst, err := wb.Generate(cmd.Context(), kind, p)
		if err != nil {
			n := workbench.NotificationFor(err)
			return fmt.Errorf("%s: %w", d.cat.T(n.MessageID), err)
		}
		return writeInstrument(cmd, inst)
	},
}

var promptCmd = &cobra.Command{
	Use:       "prompt <kind>",
	Short:     "Print the AI request for a kind without sending it",
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := instrument.ParseKind(args[0])
		if err != nil {
			return err
		}
		p := paramsFromFlags(cmd)

		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		req := generate.NewBuilder(d.cat).Build(kind, p.Level, p.Subject, p.Topic)
		schema, err := json.MarshalIndent(req.Schema.Definition, "", "  ")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)
		fmt.Fprintln(out, "SYSTEM")
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, req.System)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "PROMPT")
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, req.Prompt)
		fmt.Fprintln(out, sep)
		fmt.Fprintf(out, "SCHEMA (%s)\n", req.Schema.Name)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, string(schema))
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <file>",
	Short: "Print the score of an instrument file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := readInstrument(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), inst.Score())
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export an instrument file as JSON, YAML or a printable sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(name)
		if err != nil {
			return err
		}
		inst, err := readInstrument(args[0])
		if err != nil {
			return err
		}

		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		return withOutput(cmd, func(w io.Writer) error {
			return export.Write(w, inst, format, d.cat)
		})
	},
}

func paramsFromFlags(cmd *cobra.Command) generate.Params {
	level, _ := cmd.Flags().GetString("level")
	subject, _ := cmd.Flags().GetString("subject")
	topic, _ := cmd.Flags().GetString("topic")
	return generate.Params{Level: level, Subject: subject, Topic: topic}
}

func readInstrument(path string) (instrument.Instrument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instrument: %w", err)
	}
	inst, err := instrument.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return inst, nil
}

// withOutput runs fn against the -o file, or stdout when none is given.
func withOutput(cmd *cobra.Command, fn func(io.Writer) error) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeInstrument(cmd *cobra.Command, inst instrument.Instrument) error {
	data, err := instrument.Marshal(inst)
	if err != nil {
		return err
	}
	return withOutput(cmd, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, string(data))
		return err
	})
}

func init() {
	for _, c := range []*cobra.Command{generateCmd, promptCmd} {
		c.Flags().String("level", "", "Educational level, e.g. \"Grade 7\"")
		c.Flags().String("subject", "", "Subject, e.g. \"Mathematics\"")
		c.Flags().String("topic", "", "Topic to assess")
	}
	for _, c := range []*cobra.Command{newCmd, generateCmd, exportCmd} {
		c.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	}
	exportCmd.Flags().StringP("format", "f", "json", "Export format (json, yaml, text)")
}
