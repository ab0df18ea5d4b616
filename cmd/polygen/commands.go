package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chazu/polyview/pkg/catalog"
	"github.com/chazu/polyview/pkg/config"
	"github.com/chazu/polyview/pkg/engine"
	"github.com/chazu/polyview/pkg/export"
	"github.com/chazu/polyview/pkg/mesh"
	"github.com/chazu/polyview/pkg/polyhedron"
	"github.com/chazu/polyview/pkg/tessellate"
)

// cli carries what every subcommand needs.
type cli struct {
	conf config.Config
	log  *logrus.Logger
	out  io.Writer
}

func newRootCmd(conf config.Config, out io.Writer) *cobra.Command {
	c := &cli{conf: conf, log: conf.NewLogger(), out: out}

	rootCmd := &cobra.Command{
		Use:           "polygen",
		Short:         "generate and inspect polyhedron description files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(c.conf.LogLevel)
			if err != nil {
				return errors.Wrap(err, "log level")
			}
			c.log.SetLevel(lvl)
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&c.conf.LogLevel, "log-level", conf.LogLevel,
		"logging level, one of: "+strings.Join(config.AvailableLogLevels, ", "))

	rootCmd.AddCommand(
		c.generateListCmd(),
		c.generateGenerateCmd(),
		c.generateEvalCmd(),
		c.generateExportCmd(),
		c.generateInspectCmd(),
	)

	return rootCmd
}

func (c *cli) generateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list catalog polytopes with their vertex, edge and face counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tFAMILY\tV\tE\tF\tNAME")
			for _, e := range catalog.Entries() {
				d, err := e.Build()
				if err != nil {
					return err
				}
				m := tessellate.Build(d)
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
					e.Key, e.Family, d.VertexCount(), m.EdgeCount(), m.GroupCount(), e.DisplayName)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) generateGenerateCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "generate [keys...]",
		Short: "write catalog polytopes as JSON description files",
		Long:  "writes <key>.json for every given catalog key, or for the whole catalog when no key is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := args
			if len(keys) == 0 {
				for _, e := range catalog.Entries() {
					keys = append(keys, e.Key)
				}
			}
			for _, key := range keys {
				d, err := catalog.Build(key)
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, key+".json")
				if err := polyhedron.Save(path, d); err != nil {
					return err
				}
				c.log.WithFields(logrus.Fields{"polyhedron": d.Name, "path": path}).Info("written")
				fmt.Fprintln(c.out, path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", c.conf.OutDir, "output directory")
	return cmd
}

func (c *cli) generateEvalCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "eval SCRIPT",
		Short: "evaluate a script and write every shown polyhedron",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "read script")
			}

			scene, evalErrs, err := engine.NewEngine().Evaluate(string(source))
			if err != nil {
				return err
			}
			if len(evalErrs) > 0 {
				for _, e := range evalErrs {
					c.log.WithField("line", e.Line).Error(e.Message)
				}
				return errors.Errorf("%s: %d script errors", args[0], len(evalErrs))
			}

			used := make(map[string]bool)
			for i, d := range scene.Polyhedra {
				slug := uniqueSlug(used, polyhedron.Slug(d.Name, i))
				path := filepath.Join(outDir, slug+".json")
				if err := polyhedron.Save(path, d); err != nil {
					return err
				}
				fmt.Fprintln(c.out, path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", c.conf.OutDir, "output directory")
	return cmd
}

func (c *cli) generateExportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export KEY|FILE",
		Short: "build a catalog polytope or description file and export it as STL or OBJ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "stl" && format != "obj" {
				return errors.Errorf("unknown format %q, expected stl or obj", format)
			}

			d, err := c.resolve(args[0])
			if err != nil {
				return err
			}
			m := c.build(d)

			path := out
			if path == "" {
				path = filepath.Join(c.conf.OutDir, polyhedron.Slug(d.Name, 0)+"."+format)
			}
			if format == "stl" {
				err = export.SaveSTL(path, m)
			} else {
				err = export.SaveOBJ(path, d, m)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "stl", "export format, stl or obj")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <out-dir>/<name>.<format>)")
	return cmd
}

func (c *cli) generateInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "report validation findings and mesh builder diagnostics for a description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.resolve(args[0])
			if err != nil {
				return err
			}
			m := tessellate.Build(d)
			errs, warns := d.Validate()

			fmt.Fprintf(c.out, "%s\n", d)
			fmt.Fprintf(c.out, "triangles: %d  groups: %d  edges: %d  euler: %d\n",
				m.TriangleCount(), m.GroupCount(), m.EdgeCount(), m.EulerCharacteristic())
			for _, e := range errs {
				fmt.Fprintf(c.out, "%s\n", e.Error())
			}
			for _, w := range warns {
				fmt.Fprintf(c.out, "[warning] %s\n", w)
			}
			for _, diag := range m.Diagnostics {
				fmt.Fprintf(c.out, "skipped %s\n", diag)
			}

			if m.IsEmpty() {
				return errors.WithMessage(mesh.ErrNothingToRender, d.Name)
			}
			return nil
		},
	}
}

// resolve treats arg as a description file when it exists, and as a
// catalog key otherwise.
func (c *cli) resolve(arg string) (*polyhedron.Description, error) {
	if _, err := os.Stat(arg); err == nil {
		return polyhedron.Load(arg)
	}
	if strings.HasSuffix(arg, ".json") {
		return nil, errors.Errorf("%s: no such file", arg)
	}
	return catalog.Build(arg)
}

// build runs the mesh builder and logs what it skipped.
func (c *cli) build(d *polyhedron.Description) *mesh.Mesh {
	m := tessellate.Build(d)
	for _, diag := range m.Diagnostics {
		c.log.WithFields(logrus.Fields{
			"polyhedron": d.Name,
			"pass":       diag.Pass,
			"face":       diag.Face,
			"kind":       diag.Kind.String(),
		}).Warn("skipped malformed input")
	}
	return m
}

// uniqueSlug returns base, or base-1, base-2 and so on, whichever is not yet
// in used, and records it.
func uniqueSlug(used map[string]bool, base string) string {
	slug := base
	for n := 1; used[slug]; n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	used[slug] = true
	return slug
}
