// Command evmasm is a thin wrapper over the assemble/disassemble/trace/
// build_cfg core functions (spec.md §6 "CLI (collaborator, not core)").
// It owns no analysis logic of its own: every subcommand is a few
// lines of argument parsing around a package-level function.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/evmkit/evmasm/absstack"
	"github.com/evmkit/evmasm/absstate"
	"github.com/evmkit/evmasm/asmtext"
	"github.com/evmkit/evmasm/cfg"
	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
	"github.com/evmkit/evmasm/trace"
)

func main() {
	app := cli.NewApp()
	app.Name = "evmasm"
	app.Usage = "assemble, disassemble, trace, and analyze EVM bytecode"
	app.Action = func(c *cli.Context) error {
		cli.ShowAppHelp(c)
		return nil
	}
	app.Commands = []*cli.Command{
		assembleCmd,
		disassembleCmd,
		traceCmd,
		cfgCmd,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var assembleCmd = &cli.Command{
	Name:      "assemble",
	Aliases:   []string{"asm"},
	Usage:     "assemble a source file into bytecode, printed as hex",
	ArgsUsage: "file",
	Action: func(c *cli.Context) error {
		file := c.Args().First()
		if file == "" {
			return cli.Exit("missing source file", 1)
		}
		src, err := os.ReadFile(file)
		if err != nil {
			return cli.Exit(err, 1)
		}
		code, err := asmtext.Assemble(string(src))
		if err != nil {
			return cli.Exit(err, 1)
		}
		fmt.Println(hex.EncodeToString(code))
		return nil
	},
}

var disassembleCmd = &cli.Command{
	Name:      "disassemble",
	Aliases:   []string{"disasm"},
	Usage:     "disassemble a hex or raw bytecode file into assembly text",
	ArgsUsage: "file",
	Action: func(c *cli.Context) error {
		file := c.Args().First()
		if file == "" {
			return cli.Exit("missing bytecode file", 1)
		}
		code, err := readCode(file)
		if err != nil {
			return cli.Exit(err, 1)
		}
		text, err := asmtext.Disassemble(code)
		if err != nil {
			return cli.Exit(err, 1)
		}
		fmt.Print(text)
		return nil
	},
}

var traceCmd = &cli.Command{
	Name:      "trace",
	Usage:     "run the fixed-point tracer and print the per-instruction state vector",
	ArgsUsage: "file",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "budget", Value: 100000, Usage: "maximum step applications before reporting partial results"},
	},
	Action: func(c *cli.Context) error {
		insns, err := decodeFileArg(c)
		if err != nil {
			return cli.Exit(err, 1)
		}
		initial := absstate.State{Stack: absstack.Empty}
		result := trace.Run(insns, initial, c.Int("budget"))
		for i, ins := range insns {
			state := "⊥"
			if !result.States[i].IsBottom() {
				state = fmt.Sprintf("height=%s", result.States[i].Stack.Size())
			}
			fmt.Printf("%4d  %-12s %s\n", i, ops.Name(ins.Kind), state)
		}
		if result.Exhausted {
			fmt.Fprintln(os.Stderr, "warning: step budget exhausted, results are partial")
		}
		return nil
	},
}

var cfgCmd = &cli.Command{
	Name:      "cfg",
	Usage:     "build the control-flow graph and print blocks and edges",
	ArgsUsage: "file",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "budget", Value: 100000, Usage: "maximum step applications before reporting partial results"},
	},
	Action: func(c *cli.Context) error {
		insns, err := decodeFileArg(c)
		if err != nil {
			return cli.Exit(err, 1)
		}
		initial := absstate.State{Stack: absstack.Empty}
		g := cfg.Build(insns, initial, c.Int("budget"))
		for i := 0; i < g.Blocks.Len(); i++ {
			blk := g.Blocks.Block(i)
			fmt.Printf("block %d: instructions [%d,%d)\n", i, blk.Start, blk.End)
			out := g.Digraph.Outgoing(i)
			if len(out) == 0 {
				fmt.Println("  (no outgoing edges)")
				continue
			}
			for _, o := range out {
				fmt.Printf("  -> block %d\n", o)
			}
		}
		if g.Incomplete {
			fmt.Fprintln(os.Stderr, "warning: underlying trace exhausted its step budget, graph may be missing edges")
		}
		return nil
	},
}

func decodeFileArg(c *cli.Context) ([]instr.Concrete, error) {
	file := c.Args().First()
	if file == "" {
		return nil, fmt.Errorf("missing bytecode file")
	}
	code, err := readCode(file)
	if err != nil {
		return nil, err
	}
	return instr.DecodeAll(code)
}

// readCode reads file and interprets its contents as hex text if every
// non-whitespace byte is a valid hex digit, falling back to raw bytes
// otherwise (so either `xxd`-style hex or a compiled .bin works).
func readCode(file string) ([]byte, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(raw))
	trimmed = strings.TrimPrefix(trimmed, "0x")
	if looksLikeHex(trimmed) {
		decoded, err := hex.DecodeString(trimmed)
		if err == nil {
			return decoded, nil
		}
	}
	return raw, nil
}

func looksLikeHex(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
