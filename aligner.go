/*
 *  aligner.go
 *  mirbench
 *
 *  Created by Haibao Tang on 12/12/19
 *  Copyright © 2019 Haibao Tang. All rights reserved.
 */

package mirbench

import (
	"os"
	"path/filepath"

	"github.com/biogo/external"
	"github.com/pkg/errors"
)

// Tools lists the supported aligners in the order they are run and merged
var Tools = []string{"star", "bowtie2", "hisat", "tailor", "bwa_aln", "srnamapper"}

// Aligner produces one alignment container from a set of reads and an index.
// Align works inside dir and returns the absolute path of the container.
type Aligner interface {
	Name() string
	Align(r Runner, dir, reads, index string) (string, error)
}

// NewAligner returns the aligner registered under name
func NewAligner(name string) (Aligner, error) {
	switch name {
	case "star":
		return StarAligner{}, nil
	case "bowtie2":
		return Bowtie2Aligner{Cmd: "bowtie2"}, nil
	case "hisat":
		return Bowtie2Aligner{Cmd: "hisat"}, nil
	case "tailor":
		return TailorAligner{}, nil
	case "bwa_aln":
		return BWAAligner{}, nil
	case "srnamapper":
		return SRNAmapperAligner{}, nil
	}
	return nil, errors.Errorf("unknown tool `%s`", name)
}

// ToolRunner runs one aligner and annotates its alignments against miRBase
type ToolRunner struct {
	Aligner Aligner
	Runner  Runner
	Workdir string
	Overlap float64
	// Output files
	OutAnnotation string
	OutAlignment  string
}

// Run makes sure the tool has been run, converted and annotated. Every step is
// skipped when its output is already there.
func (r *ToolRunner) Run(reads, index, mirbase string) error {
	name := r.Aligner.Name()
	dir := filepath.Join(Full(r.Workdir), name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "cannot create `%s`", dir)
	}

	aln, err := r.Aligner.Align(r.Runner, dir, Full(reads), Full(index))
	if err != nil {
		return errors.Wrapf(err, "%s failed", name)
	}
	annotator := Annotator{Runner: r.Runner, Dir: dir, Overlap: r.Overlap}
	ann, err := annotator.Run(aln, Full(mirbase))
	if err != nil {
		return errors.Wrapf(err, "%s annotation failed", name)
	}
	r.OutAlignment = aln
	r.OutAnnotation = ann
	return nil
}

// runStep runs the command unless output is already on disk
func runStep(r Runner, output string, cb external.CommandBuilder, dir, stdout, desc string) error {
	if IsThere(output) {
		log.Noticef("Found `%s`, skipped", output)
		return nil
	}
	c, err := NewCommand(cb, dir, stdout, desc)
	if err != nil {
		return err
	}
	return r.Run(c)
}

// samToBam converts sam into the tool's BAM
func samToBam(r Runner, dir, sam, bam string) error {
	return runStep(r, bam, SamtoolsView{Input: sam}, dir, bam, "Convert `"+sam+"` to BAM")
}

// StarAligner runs STAR, which writes Aligned.out.sam in the working directory
type StarAligner struct{}

// Name is the tool name
func (StarAligner) Name() string { return "star" }

// Align runs STAR then converts to BAM
func (a StarAligner) Align(r Runner, dir, reads, index string) (string, error) {
	sam := filepath.Join(dir, "Aligned.out.sam")
	bam := filepath.Join(dir, "star_map.bam")
	p := STAR{GenomeDir: index, Reads: reads,
		MultimapNmax:   50,
		SAMAttributes:  []string{"NH", "HI", "NM"},
		AlignIntronMax: 1}
	if err := runStep(r, sam, p, dir, "", "Align with STAR"); err != nil {
		return "", err
	}
	if err := samToBam(r, dir, sam, bam); err != nil {
		return "", err
	}
	return bam, nil
}

// Bowtie2Aligner runs bowtie2 or hisat, both write SAM to stdout
type Bowtie2Aligner struct {
	Cmd string
}

// Name is the tool name
func (a Bowtie2Aligner) Name() string { return a.Cmd }

// Align runs the aligner then converts to BAM
func (a Bowtie2Aligner) Align(r Runner, dir, reads, index string) (string, error) {
	sam := filepath.Join(dir, "hits.sam")
	bam := filepath.Join(dir, a.Cmd+"_map.bam")
	p := Bowtie2{Cmd: a.Cmd, Fasta: true, K: 50, SeedLength: 18,
		Index: index, Unpaired: reads}
	if err := runStep(r, sam, p, dir, sam, "Align with "+a.Cmd); err != nil {
		return "", err
	}
	if err := samToBam(r, dir, sam, bam); err != nil {
		return "", err
	}
	return bam, nil
}

// TailorAligner runs `tailor map`
type TailorAligner struct{}

// Name is the tool name
func (TailorAligner) Name() string { return "tailor" }

// Align runs tailor then converts to BAM
func (a TailorAligner) Align(r Runner, dir, reads, index string) (string, error) {
	sam := filepath.Join(dir, "hits.sam")
	bam := filepath.Join(dir, "tailor_map.bam")
	p := Tailor{MinLength: 15, Index: index, Reads: reads, Out: sam}
	if err := runStep(r, sam, p, dir, "", "Align with tailor"); err != nil {
		return "", err
	}
	if err := samToBam(r, dir, sam, bam); err != nil {
		return "", err
	}
	return bam, nil
}

// BWAAligner runs `bwa aln` followed by `bwa samse`
type BWAAligner struct{}

// Name is the tool name
func (BWAAligner) Name() string { return "bwa_aln" }

// Align runs bwa aln/samse then converts to BAM
func (a BWAAligner) Align(r Runner, dir, reads, index string) (string, error) {
	sai := filepath.Join(dir, "hits.sai")
	sam := filepath.Join(dir, "hits.sam")
	bam := filepath.Join(dir, "bwa_aln_map.bam")
	// The .sai is only needed to make the SAM
	if !IsThere(sam) {
		if err := runStep(r, sai, BWAAln{Index: index, Reads: reads}, dir, sai, "Align with bwa aln"); err != nil {
			return "", err
		}
	}
	if err := runStep(r, sam, BWASamse{Index: index, Sai: sai, Reads: reads}, dir, sam, "Convert `"+sai+"` to SAM"); err != nil {
		return "", err
	}
	if err := samToBam(r, dir, sam, bam); err != nil {
		return "", err
	}
	return bam, nil
}

// SRNAmapperAligner runs sRNAmapper.pl, whose eland-like output is rewritten
// as BED instead of BAM
type SRNAmapperAligner struct{}

// Name is the tool name
func (SRNAmapperAligner) Name() string { return "srnamapper" }

// Align runs sRNAmapper then reformats its hits
func (a SRNAmapperAligner) Align(r Runner, dir, reads, index string) (string, error) {
	eland := filepath.Join(dir, "hits.eland")
	bed := filepath.Join(dir, "srnamapper_map.bed")
	p := SRNAmapper{Reads: reads, Genome: index, SeedLength: 10, Mismatches: 3, Out: eland}
	if err := runStep(r, eland, p, dir, "", "Align with sRNAmapper"); err != nil {
		return "", err
	}
	if IsThere(bed) {
		log.Noticef("Found `%s`, skipped", bed)
		return bed, nil
	}
	if err := ElandToBed(eland, bed); err != nil {
		return "", err
	}
	return bed, nil
}
