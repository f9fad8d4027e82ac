package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GraybirdSoftware/offsetter/cmd/offsetter/commands"
	"github.com/GraybirdSoftware/offsetter/logger"
)

var rootCmd = &cobra.Command{
	Use:   "offsetter",
	Short: "offsetter - Fixed-offset struct layout compiler",
	Long: `offsetter - compile declarative memory layouts into Go structs.

Given a layout file listing fields at exact byte offsets (the shape of a
kernel structure, a game-engine object, a hardware register block), offsetter
generates a Go struct whose fields occupy exactly those offsets, with
explicit padding filling every gap, an optional padding-omitting String()
printer, and optional compile-time guards that fail the build if the Go
compiler cannot honor the declared layout.

Available commands:
  gen     - Generate struct definitions from layout files
  check   - Verify committed generated files are current (for CI)
  version - Show version information

Examples:
  offsetter gen device.toml            # Generate device_gen.go
  offsetter gen --checked device.toml  # Generate with layout guards
  offsetter check device.toml          # Fail if device_gen.go is stale`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(false, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.GenCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
