package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra/doc"
	"github.com/ygelfand/vidstrip/cmd"
)

const frontMatter = `---
title: "%s"
---

`

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	outDir := filepath.Join(cwd, "docs", "cli")
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.RemoveAll(outDir); err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatal(err)
	}

	root := cmd.GetRootCmd()
	root.DisableAutoGenTag = true

	prepend := func(filename string) string {
		name := strings.TrimSuffix(filepath.Base(filename), ".md")
		return fmt.Sprintf(frontMatter, strings.ReplaceAll(name, "_", " "))
	}
	link := func(name string) string {
		return strings.TrimSuffix(name, ".md")
	}
	if err := doc.GenMarkdownTreeCustom(root, outDir, prepend, link); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Successfully generated CLI documentation in %s\n", outDir)
}
