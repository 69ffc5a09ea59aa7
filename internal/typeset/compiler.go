// Package typeset compiles LaTeX documents to PDF with a local pdflatex
// installation. Shell escape is always disabled. Compilation failures are
// non-fatal to the pipeline: the caller still has the LaTeX source to hand
// back to the user.
package typeset

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// auxExtensions are the pdflatex byproducts removed after every run.
var auxExtensions = []string{".aux", ".log", ".out", ".toc", ".nav", ".snm"}

// CompileError indicates a LaTeX document could not be typeset.
type CompileError struct {
	JobID   string
	Message string
	Cause   error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation failed for job %s: %s: %v", e.JobID, e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation failed for job %s: %s", e.JobID, e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// Compiler runs pdflatex over generated documents.
type Compiler struct {
	// OutputDir holds the .tex sources and produced PDFs.
	OutputDir string
	// Timeout bounds one pdflatex invocation.
	Timeout time.Duration
	// MaxRuns is how many passes to execute so references settle.
	MaxRuns int

	// binary is resolved lazily; overridable in tests.
	binary string
}

// New creates a Compiler writing into outputDir.
func New(outputDir string, timeout time.Duration, maxRuns int) *Compiler {
	if maxRuns < 1 {
		maxRuns = 1
	}
	return &Compiler{OutputDir: outputDir, Timeout: timeout, MaxRuns: maxRuns}
}

// Available reports whether pdflatex can be found on this host.
func (c *Compiler) Available() bool {
	return c.lookupBinary() == nil
}

func (c *Compiler) lookupBinary() error {
	if c.binary != "" {
		return nil
	}
	path, err := exec.LookPath("pdflatex")
	if err != nil {
		return err
	}
	c.binary = path
	return nil
}

// Compile writes latexContent to disk under a fresh job id and typesets it.
// Returns the PDF path on success. Auxiliary files are removed regardless of
// outcome; the .tex source is kept so failures remain debuggable.
func (c *Compiler) Compile(ctx context.Context, latexContent string) (string, error) {
	jobID := uuid.New().String()

	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return "", &CompileError{JobID: jobID, Message: "failed to create output directory", Cause: err}
	}

	texPath := filepath.Join(c.OutputDir, jobID+".tex")
	pdfPath := filepath.Join(c.OutputDir, jobID+".pdf")

	if err := os.WriteFile(texPath, []byte(latexContent), 0o644); err != nil {
		return "", &CompileError{JobID: jobID, Message: "failed to write source file", Cause: err}
	}
	defer c.cleanupAux(jobID)

	if err := c.lookupBinary(); err != nil {
		return "", &CompileError{JobID: jobID, Message: "pdflatex not found", Cause: err}
	}

	for run := 0; run < c.MaxRuns; run++ {
		if err := c.runOnce(ctx, texPath); err != nil {
			// pdflatex exits non-zero on recoverable warnings too; only the
			// presence of the PDF decides success.
			log.Printf("[TYPESET] pdflatex run %d for job %s: %v", run+1, jobID, err)
		}
	}

	if _, err := os.Stat(pdfPath); err != nil {
		return "", &CompileError{JobID: jobID, Message: "no PDF produced"}
	}

	log.Printf("[TYPESET] compiled job %s", jobID)
	return pdfPath, nil
}

func (c *Compiler) runOnce(ctx context.Context, texPath string) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.binary,
		"--no-shell-escape",
		"-interaction=nonstopmode",
		"-output-directory="+c.OutputDir,
		texPath,
	)
	return cmd.Run()
}

func (c *Compiler) cleanupAux(jobID string) {
	for _, ext := range auxExtensions {
		_ = os.Remove(filepath.Join(c.OutputDir, jobID+ext))
	}
}
