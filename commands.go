/*
 *  commands.go
 *  mirbench
 *
 *  Created by Haibao Tang on 12/12/19
 *  Copyright © 2019 Haibao Tang. All rights reserved.
 */

package mirbench

import (
	"os/exec"

	"github.com/biogo/external"
	"github.com/pkg/errors"
)

// ErrMissingRequired is returned when a command lacks a mandatory argument
var ErrMissingRequired = errors.New("mirbench: missing required argument")

// STAR defines parameters for the STAR aligner
type STAR struct {
	Cmd            string   `buildarg:"{{if .}}{{.}}{{else}}STAR{{end}}"`
	GenomeDir      string   `buildarg:"{{if .}}--genomeDir{{split}}{{.}}{{end}}"`
	Reads          string   `buildarg:"{{if .}}--readFilesIn{{split}}{{.}}{{end}}"`
	MultimapNmax   int      `buildarg:"{{if .}}--outFilterMultimapNmax{{split}}{{.}}{{end}}"`
	SAMAttributes  []string `buildarg:"{{if .}}--outSAMattributes{{range .}}{{split}}{{.}}{{end}}{{end}}"`
	AlignIntronMax int      `buildarg:"{{if .}}--alignIntronMax{{split}}{{.}}{{end}}"`
}

// BuildCommand returns an exec.Cmd built from the parameters in p
func (p STAR) BuildCommand() (*exec.Cmd, error) {
	if p.GenomeDir == "" || p.Reads == "" {
		return nil, ErrMissingRequired
	}
	return buildCommand(p)
}

// Bowtie2 defines parameters for bowtie2, and for hisat which shares its interface
type Bowtie2 struct {
	Cmd        string `buildarg:"{{if .}}{{.}}{{else}}bowtie2{{end}}"`
	Fasta      bool   `buildarg:"{{if .}}-f{{end}}"`
	K          int    `buildarg:"{{if .}}-k{{split}}{{.}}{{end}}"`
	SeedLength int    `buildarg:"{{if .}}-L{{split}}{{.}}{{end}}"`
	Index      string `buildarg:"{{if .}}-x{{split}}{{.}}{{end}}"`
	Unpaired   string `buildarg:"{{if .}}-U{{split}}{{.}}{{end}}"`
}

// BuildCommand returns an exec.Cmd built from the parameters in p
func (p Bowtie2) BuildCommand() (*exec.Cmd, error) {
	if p.Index == "" || p.Unpaired == "" {
		return nil, ErrMissingRequired
	}
	return buildCommand(p)
}

// Tailor defines parameters for `tailor map`
type Tailor struct {
	Cmd       string `buildarg:"{{if .}}{{.}}{{else}}tailor{{end}}"`
	MinLength int    `buildarg:"{{if .}}-l{{split}}{{.}}{{end}}"`
	Sub       string `buildarg:"{{if .}}{{.}}{{else}}map{{end}}"`
	Index     string `buildarg:"{{if .}}-p{{split}}{{.}}{{end}}"`
	Reads     string `buildarg:"{{if .}}-i{{split}}{{.}}{{end}}"`
	Out       string `buildarg:"{{if .}}-o{{split}}{{.}}{{end}}"`
}

// BuildCommand returns an exec.Cmd built from the parameters in p
func (p Tailor) BuildCommand() (*exec.Cmd, error) {
	if p.Index == "" || p.Reads == "" || p.Out == "" {
		return nil, ErrMissingRequired
	}
	return buildCommand(p)
}

// BWAAln defines parameters for `bwa aln`, which writes a .sai to stdout
type BWAAln struct {
	Cmd   string `buildarg:"{{if .}}{{.}}{{else}}bwa{{end}}"`
	Sub   string `buildarg:"{{if .}}{{.}}{{else}}aln{{end}}"`
	Index string `buildarg:"{{.}}"`
	Reads string `buildarg:"{{.}}"`
}

// BuildCommand returns an exec.Cmd built from the parameters in p
func (p BWAAln) BuildCommand() (*exec.Cmd, error) {
	if p.Index == "" || p.Reads == "" {
		return nil, ErrMissingRequired
	}
	return buildCommand(p)
}

// BWASamse defines parameters for `bwa samse`, which writes SAM to stdout
type BWASamse struct {
	Cmd   string `buildarg:"{{if .}}{{.}}{{else}}bwa{{end}}"`
	Sub   string `buildarg:"{{if .}}{{.}}{{else}}samse{{end}}"`
	Index string `buildarg:"{{.}}"`
	Sai   string `buildarg:"{{.}}"`
	Reads string `buildarg:"{{.}}"`
}

// BuildCommand returns an exec.Cmd built from the parameters in p
func (p BWASamse) BuildCommand() (*exec.Cmd, error) {
	if p.Index == "" || p.Sai == "" || p.Reads == "" {
		return nil, ErrMissingRequired
	}
	return buildCommand(p)
}

// SRNAmapper defines parameters for the sRNAmapper.pl script
type SRNAmapper struct {
	Cmd        string `buildarg:"{{if .}}{{.}}{{else}}sRNAmapper.pl{{end}}"`
	Reads      string `buildarg:"{{if .}}-i{{split}}{{.}}{{end}}"`
	Genome     string `buildarg:"{{if .}}-g{{split}}{{.}}{{end}}"`
	SeedLength int    `buildarg:"{{if .}}-s{{split}}{{.}}{{end}}"`
	Mismatches int    `buildarg:"{{if .}}-n{{split}}{{.}}{{end}}"`
	Out        string `buildarg:"{{if .}}-o{{split}}{{.}}{{end}}"`
}

// BuildCommand returns an exec.Cmd built from the parameters in p
func (p SRNAmapper) BuildCommand() (*exec.Cmd, error) {
	if p.Reads == "" || p.Genome == "" || p.Out == "" {
		return nil, ErrMissingRequired
	}
	return buildCommand(p)
}

// SamtoolsView converts SAM to BAM on stdout
type SamtoolsView struct {
	Cmd   string `buildarg:"{{if .}}{{.}}{{else}}samtools{{end}}"`
	Sub   string `buildarg:"{{if .}}{{.}}{{else}}view{{end}}"`
	Flags string `buildarg:"{{if .}}{{.}}{{else}}-Sbh{{end}}"`
	Input string `buildarg:"{{.}}"`
}

// BuildCommand returns an exec.Cmd built from the parameters in p
func (p SamtoolsView) BuildCommand() (*exec.Cmd, error) {
	if p.Input == "" {
		return nil, ErrMissingRequired
	}
	return buildCommand(p)
}

// BedtoolsIntersect reports, strand-aware, the reads in A overlapping B by a
// minimum fraction of A, along with the number of overlapping bases
type BedtoolsIntersect struct {
	Cmd        string  `buildarg:"{{if .}}{{.}}{{else}}bedtools{{end}}"`
	Sub        string  `buildarg:"{{if .}}{{.}}{{else}}intersect{{end}}"`
	Bed        bool    `buildarg:"{{if .}}-bed{{end}}"`
	WriteBoth  bool    `buildarg:"{{if .}}-wo{{end}}"`
	SameStrand bool    `buildarg:"{{if .}}-s{{end}}"`
	Fraction   float64 `buildarg:"{{if .}}-f{{split}}{{printf \"%.2f\" .}}{{end}}"`
	A          string  `buildarg:"{{if .}}-a{{split}}{{.}}{{end}}"`
	B          string  `buildarg:"{{if .}}-b{{split}}{{.}}{{end}}"`
}

// BuildCommand returns an exec.Cmd built from the parameters in p
func (p BedtoolsIntersect) BuildCommand() (*exec.Cmd, error) {
	if p.A == "" || p.B == "" {
		return nil, ErrMissingRequired
	}
	return buildCommand(p)
}

// buildCommand renders the buildarg tags of cb into an exec.Cmd
func buildCommand(cb external.CommandBuilder) (*exec.Cmd, error) {
	cl, err := external.Build(cb)
	if err != nil {
		return nil, err
	}
	return exec.Command(cl[0], cl[1:]...), nil
}

// NewCommand builds the arguments of cb into a Command that runs in dir
func NewCommand(cb external.CommandBuilder, dir, stdout, desc string) (*Command, error) {
	cmd, err := cb.BuildCommand()
	if err != nil {
		return nil, err
	}
	return &Command{Args: cmd.Args, Dir: dir, Stdout: stdout, Desc: desc}, nil
}
