// Command myass assembles a source file for the reduced x86-64 subset
// defined by the encoder package and writes the resulting machine code.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"myass/config"
	"myass/encoder"
	"myass/internal/hexdump"
)

// Version is overridable at build time with -ldflags "-X main.Version=v1.2.3".
var Version = "dev"

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		hexdumpFlag = flag.Bool("f", false, "Print a hex dump of the assembled output")
		interactive = flag.Bool("i", false, "Launch an interactive hex dump viewer instead of printing")
		verbose     = flag.Bool("v", false, "Verbose logging")
		outputPath  = flag.String("o", "", "Output file for machine code (default: <source>.bin)")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("myass %s\n", Version)
		os.Exit(0)
	}
	if *showHelp || flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(*verbose || cfg.Logging.Verbose)

	srcFile := flag.Arg(0)
	src, err := os.ReadFile(srcFile) // #nosec G304 -- user-specified source file
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", srcFile, err)
		os.Exit(1)
	}
	log.WithField("file", srcFile).Debug("read source file")

	code, insts, err := encoder.AssembleDetail(srcFile, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.WithField("bytes", len(code)).Info("assembly complete")

	dest := *outputPath
	if dest == "" {
		dest = strippedExt(srcFile) + ".bin"
	}
	if err := os.WriteFile(dest, code, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", dest, err)
		os.Exit(1)
	}
	log.WithField("file", dest).Info("wrote machine code")

	showHexdump := *hexdumpFlag || cfg.Hexdump.Enabled
	wantInteractive := *interactive || cfg.Hexdump.Interactive
	switch {
	case wantInteractive:
		v := hexdump.NewViewer(code, insts, cfg.Hexdump.BytesPerLine)
		if err := v.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Hexdump viewer error: %v\n", err)
			os.Exit(1)
		}
	case showHexdump:
		fmt.Print(hexdump.Format(code, cfg.Hexdump.BytesPerLine))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

func strippedExt(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)]
}

func printHelp() {
	fmt.Printf(`myass %s - x86-64 subset assembler

Usage: myass [options] <source-file>

Options:
  -o FILE      Output file for machine code (default: <source>.bin)
  -f           Print a hex dump of the assembled output
  -i           Launch an interactive hex dump viewer
  -v           Verbose logging
  -config FILE Path to a TOML config file
  -version     Show version information
  -help        Show this help message

Examples:
  myass program.asm
  myass -f -o program.bin program.asm
  myass -i program.asm
`, Version)
}
