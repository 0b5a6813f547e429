// Command symprofile loads a network file and a directory of serialized
// tensors, binds them, launches the network, and prints the resulting
// profile and contraction diagram (spec §6).
//
// Flags are parsed with the standard library's flag package: a handful of
// positional-ish string/bool options with no subcommands or nested
// parsing, which flag covers directly — nothing in the example pack's
// third-party CLI stacks (cobra, urfave/cli) earns its weight for a tool
// this small.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qsymm/symten/network/netfile"
	"github.com/qsymm/symten/symlog"
	"github.com/qsymm/symten/symtensor"
)

func main() {
	netPath := flag.String("network", "", "path to a network spec file")
	tensorDir := flag.String("tensors", "", "directory of serialized tensors, one file per entry name")
	configPath := flag.String("config", "", "optional YAML run config")
	flag.Parse()

	if *netPath == "" || *tensorDir == "" {
		fmt.Fprintln(os.Stderr, "symprofile: -network and -tensors are required")
		os.Exit(2)
	}

	if err := run(*netPath, *tensorDir, *configPath); err != nil {
		symlog.Log.Error().Err(err).Msg("symprofile run failed")
		os.Exit(1)
	}
}

func run(netPath, tensorDir, configPath string) error {
	cfg := netfile.DefaultRunConfig()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return err
		}
		defer f.Close()
		cfg, err = netfile.LoadRunConfig(f)
		if err != nil {
			return err
		}
		symlog.SetLevel(cfg.LogLevel)
	}

	nf, err := os.Open(netPath)
	if err != nil {
		return err
	}
	defer nf.Close()

	net, names, err := netfile.BuildNetwork(nf)
	if err != nil {
		return err
	}
	net.SetRunOptions(cfg.Fast, cfg.EmitSwapLog)

	for i, name := range names {
		t, err := loadTensor(tensorDir, name)
		if err != nil {
			return err
		}
		if err := net.Bind(i, t); err != nil {
			return err
		}
	}

	if err := net.Construct(); err != nil {
		return err
	}
	if err := net.Launch(); err != nil {
		return err
	}

	fmt.Println(symtensor.Profile())
	fmt.Print(net.PrintDiagram())
	if result := net.Result(); result != nil {
		fmt.Print(result.PrintRawElem())
	}
	return nil
}

func loadTensor(dir, name string) (*symtensor.SymTensor, error) {
	path := filepath.Join(dir, name+".ut")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return symtensor.Load(f, symtensor.U1Codec{})
}
