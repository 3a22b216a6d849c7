// Command redline compares two rendered versions of a structured document
// and reports additions, deletions, and in-place modifications.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tsawler/redline"
	"github.com/tsawler/redline/internal/logging"
	"github.com/tsawler/redline/render"
)

const version = "0.1.0"

// CLI defines the command-line interface for redline.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"warn" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`

	Compare CompareCmd `cmd:"" default:"withargs" help:"Compare two documents"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// CompareCmd compares two document files and writes the annotated result.
type CompareCmd struct {
	Left  string `arg:"" type:"existingfile" help:"Left (old) document: HTML or Markdown"`
	Right string `arg:"" type:"existingfile" help:"Right (new) document: HTML or Markdown"`

	Threshold float64  `default:"0.6" help:"Similarity a fuzzy match must exceed (0..1)"`
	Tags      []string `name:"paragraph-tags" help:"Extra tags treated as paragraphs (e.g. h1,h2,li)"`
	Format    string   `default:"text" enum:"text,json,html" help:"Output format"`
	Out       string   `short:"o" type:"path" help:"Write output to file instead of stdout"`
	Strict    bool     `help:"Fail loudly on internal invariant violations (debugging)"`
}

// VersionCmd prints the tool version.
type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	fmt.Println("redline", version)
	return nil
}

func (c *CompareCmd) Run() error {
	level, err := logging.ParseLevel(CLI.LogLevel)
	if err != nil {
		return err
	}
	logFormat := logging.FormatText
	if CLI.LogFormat == "json" {
		logFormat = logging.FormatJSON
	}
	logger := logging.Init(level, logFormat)

	cmp := redline.Open(c.Left, c.Right).
		Threshold(c.Threshold).
		ParagraphTags(c.Tags...).
		Logger(logger)
	if c.Strict {
		cmp = cmp.Strict()
	}

	result, err := cmp.Compare()
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "html":
		return render.HTML(out, result)
	default:
		if result.Degraded {
			fmt.Fprintln(out, "comparison degraded: documents echoed unchanged")
		}
		fmt.Fprintf(out, "%d added, %d deleted, %d changed\n",
			result.Summary.Additions, result.Summary.Deletions, result.Summary.Changes)
		return nil
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("redline"),
		kong.Description("Compare two rendered documents and annotate the differences."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
