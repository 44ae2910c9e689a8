// Command scan prints the duration and tags of local audio files,
// using a decoder plugin's scanner when one claims the file and the
// generic tag probe otherwise.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/aulos-player/aulos/internal/config"
	"github.com/aulos-player/aulos/internal/fsutil"
	"github.com/aulos-player/aulos/internal/logging"
	"github.com/aulos-player/aulos/pkg/decoder"
	_ "github.com/aulos-player/aulos/pkg/decoder/flacdec"
	_ "github.com/aulos-player/aulos/pkg/decoder/mp3dec"
	_ "github.com/aulos-player/aulos/pkg/decoder/wavpack"
	"github.com/aulos-player/aulos/pkg/tags"
)

func main() {
	configFilePath := flag.String("configFilePath", "", "Set the file path to the config file.")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: scan [flags] <file>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := config.Load(*configFilePath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logFilePointer, err := logging.Configure(viper.GetString("loglevel"), viper.GetString("logfile"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// --------------------------------------------------------------------------------

	logger := slog.Default().With("run", uuid.New())

	code := 0
	for _, arg := range flag.Args() {
		if err := scanOne(logger, arg); err != nil {
			logger.Error("scan failed", "path", arg, "err", err)
			code = 1
		}
	}
	if logFilePointer != nil {
		logFilePointer.Close()
	}
	os.Exit(code)
}

func scanOne(logger *slog.Logger, path string) error {
	if strings.Contains(path, "://") {
		return fmt.Errorf("only local files can be scanned: %q", path)
	}
	if strings.HasPrefix(path, "~") {
		expanded, err := fsutil.ExpandUser(path)
		if err != nil {
			return err
		}
		path = expanded
	}

	builder := tags.NewBuilder()
	scanned := false
	if plugin := decoder.ForPath(path); plugin != nil && plugin.ScanFile != nil {
		if err := plugin.ScanFile(path, builder); err != nil {
			return err
		}
		scanned = true
	}

	tag := builder.Commit()

	// Plugins whose scanner only learns the duration still get their
	// ID3 or similar side tags through the generic probe.
	if len(tag.Items) == 0 {
		found, err := tags.ProbeFile(path, builder)
		if err != nil {
			if !scanned {
				return err
			}
			logger.Warn("tag probe failed", "path", path, "err", err)
		}
		probed := builder.Commit()
		if found {
			tag.Items = probed.Items
			tag.Pairs = probed.Pairs
		}
	}

	printTag(path, tag)
	return nil
}

func printTag(path string, tag tags.Tag) {
	fmt.Println(path)
	if tag.HasDuration() {
		fmt.Printf("  duration: %v\n", tag.Duration)
	}
	for _, item := range tag.Items {
		fmt.Printf("  %s: %s\n", item.Type, item.Value)
	}
	for _, pair := range tag.Pairs {
		fmt.Printf("  %s: %s\n", pair.Name, pair.Value)
	}
}
