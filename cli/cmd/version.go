package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rensoftworks/slang/pkg"
)

// Version prints version and build metadata.
type Version struct {
	Verbose bool `help:"Include author information" short:"v"`
}

// Run executes the version command.
func (v *Version) Run(_ context.Context) error {
	fmt.Printf("%s %s\n", pkg.Name, strings.TrimSpace(pkg.Version))

	if v.Verbose {
		for _, author := range pkg.Author {
			fmt.Printf("  %s <%s>\n", author.Name, author.Email)
		}
	}

	return nil
}
