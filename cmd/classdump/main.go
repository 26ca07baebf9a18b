// Command classdump is a local CLI wrapper around the classdump library
// facade, for exercising the parser against files on disk without going
// through the WASM/browser path. It is not part of the library's public
// surface -- just a developer convenience in the spirit of the PE dumper
// CLI this project's WASM tooling is modeled on.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tha2015/class-file-visualizer/classdump"
)

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("error reading %s: %s", path, err)
		return
	}

	out, err := classdump.Decode(data)
	if err != nil {
		log.Printf("error parsing %s: %s", path, err)
		return
	}

	fmt.Println(out)
}

func dump(cmd *cobra.Command, args []string) {
	path := args[0]

	if !isDirectory(path) {
		dumpFile(path)
		return
	}

	var files []string
	filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && strings.HasSuffix(p, ".class") {
			files = append(files, p)
		}
		return nil
	})
	for _, f := range files {
		dumpFile(f)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "classdump",
		Short: "Decode a JVM class file into a JSON document",
		Long:  "Parses a .class file (or every .class file under a directory) and prints the dereferenced JSON view of its constant pool, fields, methods, and attributes.",
		Args:  cobra.ExactArgs(1),
		Run:   dump,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
