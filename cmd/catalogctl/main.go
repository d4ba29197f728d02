// Command catalogctl runs the product filter pipeline over a YAML catalog
// file, the same way the storefront filters its product grid.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
