package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/singerma/vcfmerge/internal/catalog"
	"github.com/singerma/vcfmerge/internal/merge"
	"github.com/singerma/vcfmerge/internal/registry"
	"github.com/singerma/vcfmerge/internal/vcf"
)

// mergeOptions are the flags shared by the merge and tcga subcommands.
type mergeOptions struct {
	output      string
	names       []string
	prefix      string
	catalogPath string
	run         string
}

func (o *mergeOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringSliceVar(&o.names, "names", nil, "Only merge sources with these names")
	cmd.Flags().StringVar(&o.prefix, "prefix", "", "Only merge sources whose name starts with this prefix")
	cmd.Flags().StringVar(&o.catalogPath, "catalog", "", "Record the merge in a DuckDB catalog at this path")
	cmd.Flags().StringVar(&o.run, "run", "", "Run name to record in the catalog (default: output file name)")
}

func newMergeCmd(quiet *bool) *cobra.Command {
	opts := &mergeOptions{}

	cmd := &cobra.Command{
		Use:   "merge [name=]<vcf>...",
		Short: "Merge headers with the generic algorithm",
		Long: `Merge the headers of the given VCF files into one header.

Declarations with the same identity are unified: cardinality differences
widen to '.', Integer/Float differences promote to Float, and description
differences keep the first-seen description. Unresolvable conflicts abort
the merge.`,
		Example: `  vcfmerge merge a.vcf b.vcf.gz
  vcfmerge merge --names caller1,caller2 caller1=a.vcf caller2=b.vcf
  vcfmerge merge --catalog merges.db --run nightly a.vcf b.vcf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(args, opts, *quiet, func(sources []registry.Source, logger *zap.Logger) ([]vcf.HeaderLine, error) {
				return merge.Smart(registry.Headers(sources), logger)
			}, "smart")
		},
	}

	opts.register(cmd)
	return cmd
}

func newTCGACmd(quiet *bool) *cobra.Command {
	opts := &mergeOptions{}

	cmd := &cobra.Command{
		Use:   "tcga [name=]<vcf>...",
		Short: "Merge headers the stricter TCGA way",
		Long: `Merge the headers of the given VCF files with per-source qualification:
filters and sample annotations are renamed by source, center values are
accumulated in source order, and vcfProcessLog provenance is re-assembled
field by field.`,
		Example: `  vcfmerge tcga broad=broad.vcf sanger=sanger.vcf`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(args, opts, *quiet, merge.TCGA, "tcga")
		},
	}

	opts.register(cmd)
	return cmd
}

type mergeFunc func([]registry.Source, *zap.Logger) ([]vcf.HeaderLine, error)

func runMerge(args []string, opts *mergeOptions, quiet bool, fn mergeFunc, algorithm string) error {
	logger, err := newLogger(quiet)
	if err != nil {
		return err
	}
	if logger != nil {
		defer logger.Sync()
	}

	reg, err := loadSources(args)
	if err != nil {
		return err
	}

	sources := reg.All()
	if len(opts.names) > 0 {
		sources = reg.Named(opts.names...)
	} else if opts.prefix != "" {
		sources = reg.WithPrefix(opts.prefix)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources selected")
	}

	lines, err := fn(sources, logger)
	if err != nil {
		return err
	}

	if opts.catalogPath != "" {
		if err := recordMerge(opts, algorithm, sources, lines); err != nil {
			return err
		}
	}

	return writeLines(opts.output, lines)
}

// loadSources parses the headers of the given files. Arguments are either a
// bare path or name=path; bare paths are named after the file without its
// .vcf/.vcf.gz extension.
func loadSources(args []string) (*registry.Registry, error) {
	loader, err := registry.NewLoader(viper.GetInt("loader.size"))
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	for _, arg := range args {
		name, path, found := strings.Cut(arg, "=")
		if !found {
			path = arg
			name = sourceName(arg)
		}

		header, err := loader.Load(path)
		if err != nil {
			return nil, err
		}
		reg.Add(name, header)
	}
	return reg, nil
}

// sourceName derives a source name from a file path.
func sourceName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, ".vcf")
}

func recordMerge(opts *mergeOptions, algorithm string, sources []registry.Source, lines []vcf.HeaderLine) error {
	run := opts.run
	if run == "" {
		run = opts.output
	}
	if run == "" {
		return fmt.Errorf("--catalog requires --run or --output to name the run")
	}

	store, err := catalog.Open(opts.catalogPath)
	if err != nil {
		return err
	}
	defer store.Close()

	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}

	return store.RecordMerge(run, algorithm, names, lines)
}

// writeLines renders the merged lines, sorted for determinism.
func writeLines(output string, lines []vcf.HeaderLine) error {
	var out io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	for _, line := range vcf.SortLines(lines) {
		if _, err := fmt.Fprintln(out, line.String()); err != nil {
			return fmt.Errorf("writing header line: %w", err)
		}
	}
	return nil
}
