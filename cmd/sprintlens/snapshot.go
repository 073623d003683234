package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/sprintlens/internal/output"
	"github.com/panbanda/sprintlens/internal/vcs"
	"github.com/panbanda/sprintlens/pkg/snapshot"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Snapshot file utilities",
		Subcommands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Decode and schema-check the snapshot",
				Action: runSnapshotValidate,
			},
			{
				Name:      "encode",
				Usage:     "Write an obfuscated copy of a snapshot",
				ArgsUsage: "<input> <output.obf>",
				Action:    runSnapshotEncode,
			},
			{
				Name:      "decode",
				Usage:     "Print an obfuscated snapshot as JSON",
				ArgsUsage: "<input.obf> [output.json]",
				Action:    runSnapshotDecode,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema snapshots are validated against",
				Action: runSnapshotSchema,
			},
			{
				Name:  "history",
				Usage: "List the commits that changed the snapshot file",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "Maximum number of commits (0 for all)",
					},
				},
				Action: runSnapshotHistory,
			},
		},
	}
}

func runSnapshotValidate(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	snap, _, err := e.open()
	if err != nil {
		return err
	}
	f, err := e.formatter(c)
	if err != nil {
		return err
	}
	defer f.Close()
	f.Success("Snapshot valid: %s (%d issues, %d sprints, %d users)",
		e.source, len(snap.Issues), len(snap.Sprints), len(snap.Users))
	return nil
}

func runSnapshotEncode(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: %s snapshot encode <input> <output.obf>", c.App.Name)
	}
	in, out := c.Args().Get(0), c.Args().Get(1)
	if filepath.Ext(out) != ".obf" {
		return fmt.Errorf("output %q must end in .obf", out)
	}

	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	format, err := snapshot.FormatFromPath(in)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	// Decoding first rejects snapshots that would not load back.
	if _, err := e.loader.LoadBytes(data, format); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	normalized, err := e.loader.Normalize(data, format)
	if err != nil {
		return err
	}

	codec := snapshot.NewCodec(e.cfg.Snapshot.ObfuscationKey)
	if err := os.WriteFile(out, codec.Encode(normalized), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	e.log.Debug().Str("input", in).Str("output", out).Msg("snapshot encoded")
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", out)
	return nil
}

func runSnapshotDecode(c *cli.Context) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		return fmt.Errorf("usage: %s snapshot decode <input.obf> [output.json]", c.App.Name)
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	plain, err := snapshot.NewCodec(e.cfg.Snapshot.ObfuscationKey).Decode(data)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, plain, "", "  "); err != nil {
		return fmt.Errorf("decoded payload is not JSON (wrong key?): %w", err)
	}
	buf.WriteByte('\n')

	if out := c.Args().Get(1); out != "" {
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintf(c.App.Writer, "Wrote %s\n", out)
		return nil
	}
	_, err = c.App.Writer.Write(buf.Bytes())
	return err
}

func runSnapshotSchema(c *cli.Context) error {
	_, err := fmt.Fprintln(c.App.Writer, snapshot.Schema())
	return err
}

func runSnapshotHistory(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	repo, err := vcs.NewGitOpener().PlainOpenWithDetect(filepath.Dir(e.source.Path))
	if err != nil {
		return err
	}
	revs, err := repo.Revisions(e.source.Path, c.Int("limit"))
	if err != nil {
		return err
	}
	if revs == nil {
		revs = []vcs.Revision{}
	}

	rows := make([][]string, 0, len(revs))
	for _, r := range revs {
		rows = append(rows, []string{
			r.ShortHash(),
			r.When.Format("2006-01-02 15:04"),
			r.Author,
			truncate(r.Message, 60),
		})
	}
	table := output.NewTable(
		"Snapshot History: "+e.source.Path,
		[]string{"Revision", "Date", "Author", "Message"},
		rows,
		[]string{fmt.Sprintf("Commits: %d", len(revs)), "", "", ""},
		revs,
	)
	return e.emit(c, table)
}
