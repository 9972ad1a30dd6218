/*
 *  cmd.go
 *  mirbench
 *
 *  Created by Haibao Tang on 12/12/19
 *  Copyright © 2019 Haibao Tang. All rights reserved.
 */

package mirbench

import (
	"github.com/spf13/cobra"
)

// toolUsage describes the index flag of each tool
var toolUsage = map[string]string{
	"star":       "star index",
	"bowtie2":    "bowtie2 index",
	"hisat":      "hisat index",
	"tailor":     "tailor index",
	"bwa_aln":    "bwa_aln index",
	"srnamapper": "srnamapper index",
}

// NewRootCmd builds the command line interface. The runner executes the
// external tools, nil means the real ones.
func NewRootCmd(runner Runner) *cobra.Command {
	p := &Benchmark{Runner: runner}
	indexes := map[string]*string{}

	rootCmd := &cobra.Command{
		Use:   "mirbench --fasta reads.fa --mirbase mirbase.bed [--star index ...]",
		Short: "Run different tools in simulated fasta file",
		Long: `
Run multiple tools to measure accuracy of isomiRs genome based annotation.

Every tool given an index is run in its own directory, in this order:
star, bowtie2, hisat, tailor, bwa_aln, srnamapper. The alignments are
intersected with the miRBase loci and compared to the simulated reads. All
tables are merged into summary.tsv. Files already present are not regenerated.
`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Indexes = map[string]string{}
			for _, name := range Tools {
				if cmd.Flags().Changed(name) {
					p.Indexes[name] = *indexes[name]
				}
			}
			return p.Run()
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&p.Fasta, "fasta", "", "short reads")
	flags.StringVar(&p.Mirbase, "mirbase", "", "bed file with mirbase annotation")
	flags.StringVar(&p.Workdir, "workdir", ".", "directory where the tool directories and summary are written")
	flags.Float64Var(&p.Overlap, "overlap", DefaultOverlap, "minimum fraction of a read overlapping a miRNA")
	for _, name := range Tools {
		indexes[name] = flags.String(name, "", toolUsage[name])
	}
	rootCmd.MarkFlagRequired("fasta")
	rootCmd.MarkFlagRequired("mirbase")
	return rootCmd
}

// Execute runs the command line with the real external tools
func Execute() error {
	return NewRootCmd(nil).Execute()
}
