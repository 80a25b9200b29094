package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"resume-generator/internal/cli"
	"resume-generator/internal/generator"
	"resume-generator/resume/render"
	"resume-generator/resume/variant"
)

func main() {
	variantID := flag.String("variant", "", "form variant to fill in (default: the first variant)")
	outPath := flag.String("out", "resume.docx", "where to write the generated DOCX")
	list := flag.Bool("list", false, "list the available variants and exit")
	preview := flag.Bool("preview", false, "print the document text after writing it")
	flag.Parse()

	os.Exit(run(*variantID, *outPath, *list, *preview))
}

func run(variantID, outPath string, list, preview bool) int {
	registry, err := variant.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load variants: %v\n", err)
		return 1
	}

	if list {
		for _, v := range registry.List() {
			fmt.Printf("%-20s %s\n", v.ID, v.Title)
		}
		return 0
	}

	v := registry.Default()
	if variantID != "" {
		if v, err = registry.Get(variantID); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 2
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println(v.Title)
	rec, err := cli.Collect(ctx, cli.NewSurveyDriver(), v)
	if err != nil {
		if errors.Is(err, cli.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "aborted")
			return 130
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	now := time.Now()
	clean, err := generator.Check(v, rec, now)
	if err != nil {
		msgs := generator.Messages(err)
		if len(msgs) == 0 {
			msgs = []string{err.Error()}
		}
		fmt.Fprintln(os.Stderr, "The form has errors:")
		for _, msg := range msgs {
			fmt.Fprintf(os.Stderr, "  - %s\n", msg)
		}
		return 1
	}
	docx, err := generator.Render(v, clean, now)
	if err == nil {
		docx, err = saveDocument(outPath, docx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		return 1
	}

	fmt.Printf("Resume generated successfully! Wrote %s\n", outPath)
	if preview {
		text, err := render.DocumentText(docx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "preview: %v\n", err)
			return 1
		}
		fmt.Println(text)
	}
	return 0
}

// saveDocument writes docx to path and validates the bytes read back from disk.
func saveDocument(path string, docx []byte) ([]byte, error) {
	if err := generator.WriteFile(path, docx); err != nil {
		return nil, err
	}
	written, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := render.Validate(written); err != nil {
		return nil, fmt.Errorf("self-check %s: %w", path, err)
	}
	return written, nil
}
