/*
 *  benchmark.go
 *  mirbench
 *
 *  Created by Haibao Tang on 12/12/19
 *  Copyright © 2019 Haibao Tang. All rights reserved.
 */

package mirbench

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Benchmark runs all the configured tools on the simulated reads, then merges
// their stats into one summary
type Benchmark struct {
	Fasta   string
	Mirbase string
	Indexes map[string]string // tool name => index, only tools in Tools are run
	Workdir string
	Overlap float64
	Runner  Runner
	// Output files
	OutStatsfiles  map[string]string
	OutSummaryfile string
}

// toolOutput keeps what a ToolRunner produced
type toolOutput struct {
	name       string
	annotation string
	alignment  string
}

// Run executes the tools in the order of Tools, regardless of how they were
// specified, and writes the summary
func (r *Benchmark) Run() error {
	if r.Runner == nil {
		r.Runner = ExecRunner{}
	}
	if r.Workdir == "" {
		r.Workdir = "."
	}
	workdir := Full(r.Workdir)
	for name := range r.Indexes {
		if _, err := NewAligner(name); err != nil {
			return err
		}
	}

	outputs := []toolOutput{}
	for _, name := range Tools {
		index, ok := r.Indexes[name]
		if !ok || index == "" {
			continue
		}
		banner(fmt.Sprintf("Doing %s", name))
		aligner, _ := NewAligner(name)
		tr := ToolRunner{Aligner: aligner, Runner: r.Runner, Workdir: workdir, Overlap: r.Overlap}
		if err := tr.Run(r.Fasta, index, r.Mirbase); err != nil {
			return err
		}
		outputs = append(outputs, toolOutput{name, tr.OutAnnotation, tr.OutAlignment})
	}

	summary := filepath.Join(workdir, SummaryFile)
	r.OutSummaryfile = summary
	r.OutStatsfiles = map[string]string{}
	if err := os.Remove(summary); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "cannot remove `%s`", summary)
	}
	f, err := os.Create(summary)
	if err != nil {
		return errors.Wrapf(err, "cannot create `%s`", summary)
	}
	w := bufio.NewWriter(f)
	err = r.mergeStats(w, workdir, outputs)
	if err == nil {
		if ferr := w.Flush(); ferr != nil {
			err = errors.Wrapf(ferr, "cannot write `%s`", summary)
		}
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrapf(cerr, "cannot close `%s`", summary)
	}
	if err != nil {
		return err
	}
	log.Noticef("Summary of %d tools written to `%s`", len(outputs), summary)
	return nil
}

// mergeStats writes the header then the table of every tool, in order
func (r *Benchmark) mergeStats(w io.Writer, workdir string, outputs []toolOutput) error {
	fmt.Fprintln(w, H)
	for _, o := range outputs {
		stats := StatsCollector{Tool: o.name,
			Annotation: o.annotation,
			Alignment:  o.alignment,
			Fasta:      Full(r.Fasta),
			Prefix:     filepath.Join(workdir, o.name, o.name)}
		if err := stats.Run(); err != nil {
			return errors.Wrapf(err, "%s stats failed", o.name)
		}
		r.OutStatsfiles[o.name] = stats.OutStatsfile
		log.Noticef("Merging %s", o.name)
		if err := appendFile(w, stats.OutStatsfile); err != nil {
			return err
		}
	}
	return nil
}

// appendFile copies the content of filename to w
func appendFile(w io.Writer, filename string) error {
	fh, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "cannot open `%s`", filename)
	}
	defer fh.Close()
	if _, err := io.Copy(w, fh); err != nil {
		return errors.Wrapf(err, "cannot merge `%s`", filename)
	}
	return nil
}
