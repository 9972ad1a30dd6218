/*
 *  fixtures_test.go
 *  mirbench
 *
 *  Created by Haibao Tang on 12/12/19
 *  Copyright © 2019 Haibao Tang. All rights reserved.
 */

package mirbench_test

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/require"
	"github.com/tanghaibao/mirbench"
)

// Simulated reads: one correct, one ambiguous isomiR, one wrong, one unmapped
// and one mapped outside of any miRNA
const (
	read1 = "r1_hsa-let-7a-5p_t5:0_t3:0_add:null_mut:null"
	read2 = "r2_hsa-let-7a-5p_t5:0_t3:AG_add:null_mut:null"
	read3 = "r3_hsa-mir-21-5p_t5:0_t3:0_add:null_mut:null"
	read4 = "r4_hsa-mir-21-5p_t5:0_t3:0_add:null_mut:null"
	read5 = "r5_hsa-mir-21-5p_t5:0_t3:0_add:null_mut:5GT"
	seq   = "TGAGGTAGTAGGTTGTATAGTT"
)

var readNames = []string{read1, read2, read3, read4, read5}

// writeFile creates filename with content, failing the test otherwise
func writeFile(t *testing.T, filename, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0755))
	require.NoError(t, ioutil.WriteFile(filename, []byte(content), 0644))
}

// readFile returns the content of filename
func readFile(t *testing.T, filename string) string {
	b, err := ioutil.ReadFile(filename)
	require.NoError(t, err)
	return string(b)
}

// writeInputs writes the simulated reads and the miRBase annotation in dir
func writeInputs(t *testing.T, dir string) (fasta, mirbase string) {
	fasta = filepath.Join(dir, "sim.fa")
	var sb strings.Builder
	for _, name := range readNames {
		fmt.Fprintf(&sb, ">%s\n%s\n", name, seq)
	}
	writeFile(t, fasta, sb.String())

	mirbase = filepath.Join(dir, "mirbase.bed")
	writeFile(t, mirbase, "chr1\t10\t32\thsa-let-7a-5p\t0\t+\n"+
		"chr1\t10\t32\thsa-let-7c-5p\t0\t+\n"+
		"chr1\t100\t122\thsa-let-7a-5p\t0\t+\n")
	return
}

// intersectLine is what bedtools reports for a read hitting a miRNA
func intersectLine(read, mirna string, start int) string {
	return fmt.Sprintf("chr1\t%d\t%d\t%s\t60\t+\t%d\t%d\t0\t1\t22,\t0,\tchr1\t%d\t%d\t%s\t0\t+\t22",
		start, start+22, read, start, start+22, start, start+22, mirna)
}

// intersection is the bedtools output for the simulated reads
var intersection = strings.Join([]string{
	intersectLine(read1, "hsa-let-7a-5p", 10),
	intersectLine(read2, "hsa-let-7a-5p", 10),
	intersectLine(read2, "hsa-let-7c-5p", 10),
	intersectLine(read3, "hsa-let-7a-5p", 100),
	intersectLine(read3, "hsa-let-7a-5p", 100),
}, "\n") + "\n"

// eland is the sRNAmapper output for the simulated reads
var eland = strings.Join([]string{
	"chr1\t10\t" + seq + "\t" + read1 + "\t0\t1\t+",
	"chr1\t10\t" + seq + "\t" + read2 + "\t0\t1\t+",
	"chr1\t100\t" + seq + "\t" + read3 + "\t0\t1\t+",
	"chr1\t500\t" + seq + "\t" + read5 + "\t1\t1\t+",
}, "\n") + "\n"

// writeBam writes the alignments of the simulated reads
func writeBam(t *testing.T, filename string) {
	ref, err := sam.NewReference("chr1", "", "", 1000, nil, nil)
	require.NoError(t, err)
	h, err := sam.NewHeader(nil, []*sam.Reference{ref})
	require.NoError(t, err)

	f, err := os.Create(filename)
	require.NoError(t, err)
	defer f.Close()
	bw, err := bam.NewWriter(f, h, 1)
	require.NoError(t, err)

	cigar := []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, len(seq))}
	mapped := []struct {
		name string
		pos  int
		nm   int
	}{
		{read1, 10, 0},
		{read2, 10, 2},
		{read3, 100, 1},
		{read3, 300, 0},
		{read5, 500, 1},
	}
	for _, m := range mapped {
		nm, err := sam.NewAux(sam.NewTag("NM"), m.nm)
		require.NoError(t, err)
		rec, err := sam.NewRecord(m.name, ref, nil, m.pos, -1, 0, 60, cigar,
			[]byte(seq), nil, []sam.Aux{nm})
		require.NoError(t, err)
		require.NoError(t, bw.Write(rec))
	}
	rec, err := sam.NewRecord(read4, nil, nil, -1, -1, 0, 0, nil, []byte(seq), nil, nil)
	require.NoError(t, err)
	rec.Flags |= sam.Unmapped
	require.NoError(t, bw.Write(rec))
	require.NoError(t, bw.Close())
}

// fakeRunner records the commands and writes plausible outputs in place of
// the external tools. Programs in empty write a 0-byte output, as tools do
// when they find no hits.
type fakeRunner struct {
	t        *testing.T
	commands []*mirbench.Command
	fail     string
	empty    map[string]bool
}

// argAfter returns the argument following flag
func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func (r *fakeRunner) Run(c *mirbench.Command) error {
	r.commands = append(r.commands, c)
	if c.Args[0] == r.fail {
		return fmt.Errorf("%s exited with status 1", c.Args[0])
	}
	output := c.Stdout
	switch c.Args[0] {
	case "STAR":
		output = filepath.Join(c.Dir, "Aligned.out.sam")
	case "tailor", "sRNAmapper.pl":
		output = argAfter(c.Args, "-o")
	}
	if r.empty[c.Args[0]] {
		writeFile(r.t, output, "")
		return nil
	}
	switch c.Args[0] {
	case "samtools":
		writeBam(r.t, output)
	case "bedtools":
		writeFile(r.t, output, intersection)
	case "sRNAmapper.pl":
		writeFile(r.t, output, eland)
	default:
		writeFile(r.t, output, "@HD\tVN:1.4\n")
	}
	return nil
}

// programs lists the executables run, in order
func (r *fakeRunner) programs() []string {
	var names []string
	for _, c := range r.commands {
		names = append(names, strings.Join(c.Args[:2], " "))
	}
	return names
}
