// Command scuasm assembles source files for the Sega Saturn SCU DSP.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scudsp/scuasm/assembler"
)

const version = "0.1.0"

var (
	flagRelaxed bool
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:           "scuasm",
	Short:         fmt.Sprintf("scuasm v%s: Sega Saturn SCU DSP assembler", version),
	SilenceUsage:  true,
	SilenceErrors: false,
}

var asmCmd = &cobra.Command{
	Use:   "asm source [dest]",
	Short: "Assemble a single SCU DSP source file",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runAsm,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scuasm v%s: Sega Saturn SCU DSP assembler\n", version)
	},
}

func runAsm(cmd *cobra.Command, args []string) error {
	if !flagDebug {
		log.SetOutput(io.Discard)
	}
	if flagRelaxed {
		fmt.Fprintln(os.Stderr, "warning: running in relaxed mode; use only to parse legacy documents")
	}

	src := args[0]
	dest := strings.TrimSuffix(src, filepath.Ext(src)) + ".bin"
	if len(args) > 1 {
		dest = args[1]
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	text := string(data)

	prog, err := assembler.Assemble(text, assembler.Options{
		Relaxed: flagRelaxed,
		Debug:   flagDebug,
	})
	if err != nil {
		return withContext(err, text)
	}

	if flagDebug {
		prog.DebugDump()
	}
	return os.WriteFile(dest, prog.Bytes(), 0o644)
}

// withContext appends the offending source line to an assembly error so the
// user sees what the assembler was looking at.
func withContext(err error, text string) error {
	var le *assembler.LineError
	if !errors.As(err, &le) {
		return err
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	context := "error fetching context"
	if le.Line >= 0 && le.Line < len(lines) {
		context = strings.TrimSpace(lines[le.Line])
	}
	return fmt.Errorf("%w\n%d |    %s", err, le.Line+1, context)
}

func init() {
	asmCmd.Flags().BoolVar(&flagRelaxed, "relaxed", false,
		"relax some parsing rules to assemble files written for the original assembler on a best-effort basis")
	asmCmd.Flags().BoolVar(&flagDebug, "debug", false,
		"print internal parser debug information")
	rootCmd.AddCommand(asmCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
