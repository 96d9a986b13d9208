// SPDX-License-Identifier: EPL-2.0

// Command rrlite inspects, converts and auditions round robin instruments.
//
//	rrlite [-debug] <command> [flags]
//
// Commands:
//
//	inspect  -config inst.toml              list the loaded slots
//	export   -config inst.toml -slot N -o out.wav [-rate R]
//	convert  [-rate R] in.{wav,mp3,ogg,aiff} out.{wav,aiff}
//	play     -config inst.toml -note N [-stub]
//	watch    -config inst.toml              reload slots when files change
//	formats                                 list decodable file extensions
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/gomidi/midi/v2"

	"github.com/ik5/rrlite"
	"github.com/ik5/rrlite/config"
	"github.com/ik5/rrlite/formats"
	"github.com/ik5/rrlite/internal/player"
	"github.com/ik5/rrlite/internal/watch"
	"github.com/ik5/rrlite/keypair"
	"github.com/ik5/rrlite/sampler"
)

var errUsage = errors.New("usage: rrlite [-debug] inspect|export|convert|play|watch|formats [flags]")

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := newLogger(os.Stderr, *debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Args(), os.Stdout, log); err != nil {
		log.Error().Err(err).Msg("rrlite failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, log zerolog.Logger) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "inspect":
		return cmdInspect(rest, out, log)
	case "export":
		return cmdExport(rest, log)
	case "convert":
		return cmdConvert(rest, log)
	case "play":
		return cmdPlay(rest, log)
	case "watch":
		return cmdWatch(ctx, rest, log)
	case "formats":
		_, err := fmt.Fprintln(out, strings.Join(formats.DefaultRegistry().Formats(), " "))
		return err
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

// loadInstrument reads a config file and loads every slot it names.
// Slots that fail are logged and left empty.
func loadInstrument(path string, log zerolog.Logger) (*sampler.Instrument, *config.Config, error) {
	if path == "" {
		return nil, nil, errors.New("-config is required")
	}

	cfg, err := config.Load(path, log)
	if err != nil {
		return nil, nil, err
	}

	inst := sampler.NewInstrument(sampler.WithLogger(log))
	if err := inst.Apply(cfg, formats.DefaultRegistry()); err != nil {
		log.Warn().Err(err).Msg("Some slots failed to load")
	}

	return inst, cfg, nil
}

func cmdInspect(args []string, out io.Writer, log zerolog.Logger) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "instrument file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	inst, _, err := loadInstrument(*cfgPath, log)
	if err != nil {
		return err
	}

	return writeTable(out, inst)
}

func writeTable(out io.Writer, inst *sampler.Instrument) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tNOTES\tROOT\tNAME\tFRAMES\tRATE\tDURATION")

	for _, p := range keypair.All() {
		s, ok := inst.Slot(p.Index)
		if !ok {
			fmt.Fprintf(tw, "%d\t%s\t%d\t-\t-\t-\t-\n", p.Index, p, p.Root())
			continue
		}

		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%.0f\t%s\n",
			p.Index, p, s.RootNote(), s.DisplayName(), s.Len(),
			s.OriginalSampleRate(), s.Duration().Round(time.Millisecond))
	}

	return tw.Flush()
}

// writeSound picks the container from the extension of path.
func writeSound(path string, s *sampler.Sound, rate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".aif", ".aiff":
		return rrlite.WriteSoundAIFF(f, s, rate)
	default:
		return rrlite.WriteSoundWAV(f, s, rate)
	}
}

func cmdExport(args []string, log zerolog.Logger) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "instrument file")
	slot := fs.Int("slot", keypair.RootPair, "slot to export")
	rate := fs.Int("rate", 0, "output sample rate, 0 keeps the original")
	outPath := fs.String("o", "", "output file (.wav or .aiff)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *outPath == "" {
		return errors.New("-o is required")
	}

	inst, _, err := loadInstrument(*cfgPath, log)
	if err != nil {
		return err
	}

	s, ok := inst.Slot(*slot)
	if !ok {
		return fmt.Errorf("slot %d: %w", *slot, rrlite.ErrNotLoaded)
	}

	if err := writeSound(*outPath, s, *rate); err != nil {
		return err
	}

	log.Info().Int("slot", *slot).Str("path", *outPath).Msg("Exported sample")

	return nil
}

func cmdConvert(args []string, log zerolog.Logger) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	rate := fs.Int("rate", 0, "output sample rate, 0 keeps the original")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 2 {
		return errors.New("convert needs an input and an output file")
	}
	in, outPath := fs.Arg(0), fs.Arg(1)

	s := sampler.NewSound()
	if err := s.LoadFile(in, formats.DefaultRegistry()); err != nil {
		return err
	}

	if err := writeSound(outPath, s, *rate); err != nil {
		return err
	}

	log.Info().
		Str("in", in).
		Str("out", outPath).
		Int("frames", s.Len()).
		Float64("rate", s.OriginalSampleRate()).
		Msg("Converted")

	return nil
}

func cmdPlay(args []string, log zerolog.Logger) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "instrument file")
	note := fs.Int("note", keypair.RootNote, "MIDI note to trigger")
	stub := fs.Bool("stub", false, "log instead of using the audio device")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *note < 0 || *note > 127 {
		return fmt.Errorf("note %d outside 0-127", *note)
	}

	inst, _, err := loadInstrument(*cfgPath, log)
	if err != nil {
		return err
	}

	var p player.Player
	if *stub {
		p = player.NewStubPlayer(log)
	} else if p, err = player.NewOtoPlayer(log); err != nil {
		return err
	}
	defer p.Close()

	return playNote(inst, p, uint8(*note), log)
}

func playNote(inst *sampler.Instrument, p player.Player, note uint8, log zerolog.Logger) error {
	sounds := inst.Match(midi.NoteOn(0, note, 100))
	if len(sounds) == 0 {
		log.Warn().Str("note", midi.Note(note).String()).Msg("No sample on this note")
		return nil
	}

	for _, s := range sounds {
		samples, _, err := rrlite.ExportMono(s, player.SampleRate, 0)
		if err != nil {
			return err
		}

		if err := p.Play(s.DisplayName(), samples); err != nil {
			return err
		}
	}

	return nil
}

func cmdWatch(ctx context.Context, args []string, log zerolog.Logger) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "instrument file")
	delay := fs.Duration("delay", watch.DefaultDelay, "quiet time before reloading")
	if err := fs.Parse(args); err != nil {
		return err
	}

	inst, cfg, err := loadInstrument(*cfgPath, log)
	if err != nil {
		return err
	}

	w, err := watch.New(cfg.Paths(), *delay, log)
	if err != nil {
		return err
	}
	defer w.Close()

	log.Info().Int("files", len(cfg.Slots)).Msg("Watching samples")

	return w.Run(ctx, func(path string) {
		reload(inst, cfg, path, log)
	})
}

// reload loads path again into every slot that uses it.
func reload(inst *sampler.Instrument, cfg *config.Config, path string, log zerolog.Logger) {
	reg := formats.DefaultRegistry()

	for _, slot := range cfg.Slots {
		abs, err := filepath.Abs(slot.Path)
		if err != nil || abs != path {
			continue
		}

		log.Info().Int("slot", slot.KeyPair).Str("path", path).Msg("Reloading sample")

		if err := inst.LoadSlot(slot.KeyPair, slot.Path, reg); err != nil {
			// the previous sound stays in place
			continue
		}

		if slot.Name != "" {
			_ = inst.SetDisplayName(slot.KeyPair, slot.Name)
		}
	}
}
