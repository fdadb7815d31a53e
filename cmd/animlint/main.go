// animlint validates object animation documents and prints a summary of
// their entries. Exit status is 1 when any file fails to load.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/animatable/anim"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: animlint file.yaml [file.yaml ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		if err := lint(path); err != nil {
			log.Printf("animlint: %s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func lint(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc anim.ObjectAnimationDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	oa := anim.NewObjectAnimation(filepath.ToSlash(path))
	if err := oa.LoadDoc(&doc); err != nil {
		return err
	}

	fmt.Printf("%s: %d entries\n", path, len(oa.Entries()))
	for _, entry := range oa.Entries() {
		c := entry.Curve
		fmt.Printf("  %-20s %-7s wrap=%-8s keyframes=%d duration=%.3fs speed=%g",
			entry.Name, c.ValueType(), c.Wrap(), len(c.Keyframes()), c.Duration(), entry.Speed)
		if n := len(c.EventFrames()); n > 0 {
			fmt.Printf(" events=%d", n)
		}
		fmt.Println()
	}
	return nil
}
