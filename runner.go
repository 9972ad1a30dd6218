/*
 *  runner.go
 *  mirbench
 *
 *  Created by Haibao Tang on 12/12/19
 *  Copyright © 2019 Haibao Tang. All rights reserved.
 */

package mirbench

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// stderrTail is how many bytes of stderr we keep in an error message
const stderrTail = 2048

// Command is one external invocation. Stdout, when set, is the file that receives
// the standard output, replacing the `>|` redirection of a shell. A relative
// Stdout is taken from Dir.
type Command struct {
	Args   []string
	Dir    string
	Stdout string
	Desc   string
}

// String gives the shell-like rendering of the command, for the logs
func (c *Command) String() string {
	s := strings.Join(c.Args, " ")
	if c.Stdout != "" {
		s += " >| " + c.Stdout
	}
	return s
}

// Runner executes external commands. A non-nil error aborts the benchmark.
type Runner interface {
	Run(c *Command) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run starts the command in its directory and waits for it to finish
func (r ExecRunner) Run(c *Command) error {
	if len(c.Args) == 0 {
		return ErrMissingRequired
	}
	if c.Desc != "" {
		log.Notice(c.Desc)
	}
	log.Infof("Run `%s` in `%s`", c, c.Dir)

	cmd := exec.Command(c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr

	var fw *os.File
	if c.Stdout != "" {
		stdout := c.Stdout
		if !filepath.IsAbs(stdout) {
			stdout = filepath.Join(c.Dir, stdout)
		}
		var err error
		fw, err = os.Create(stdout)
		if err != nil {
			return errors.Wrapf(err, "cannot create `%s`", stdout)
		}
		cmd.Stdout = fw
	}

	err := cmd.Run()
	if fw != nil {
		if cerr := fw.Close(); err == nil && cerr != nil {
			return errors.Wrapf(cerr, "cannot close `%s`", fw.Name())
		}
	}
	if err != nil {
		msg := stderr.String()
		if len(msg) > stderrTail {
			msg = msg[len(msg)-stderrTail:]
		}
		return errors.Wrapf(err, "`%s` failed: %s", c, strings.TrimSpace(msg))
	}
	return nil
}
