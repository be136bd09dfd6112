package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/db47h/parsekit"
	"github.com/db47h/parsekit/grammar/json"
	"github.com/db47h/parsekit/source"
	"github.com/db47h/parsekit/token"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
)

func newJSONCmd(conf *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "json FILE...",
		Short: "Validate JSON documents",
		Long: `Validate JSON documents.

Files are parsed concurrently, in streaming mode. For each invalid file, the
error is printed along with the offending source line.

Examples:
  parsekit json data.json
  parsekit json --encoding latin1 --workers 2 *.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(conf)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runJSON(cmd.Context(), cmd.OutOrStdout(), cfg, log, args)
		},
	}
}

type result struct {
	file string
	size int64
	err  error
}

func runJSON(ctx context.Context, w io.Writer, cfg *config, log *zap.Logger, files []string) error {
	enc, err := source.Lookup(cfg.Encoding)
	if err != nil {
		return err
	}

	results := make([]result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, name := range files {
		g.Go(func() error {
			results[i] = validate(ctx, name, enc, cfg, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var (
		failed int
		total  int64
	)
	for _, r := range results {
		if r.err != nil {
			failed++
			report(w, r, enc, cfg.TabWidth)
			continue
		}
		total += r.size
	}
	fmt.Fprintf(w, "%d of %d files valid, %s parsed\n",
		len(files)-failed, len(files), humanize.Bytes(uint64(total)))
	if failed > 0 {
		return fmt.Errorf("%d invalid files", failed)
	}
	return nil
}

func validate(ctx context.Context, name string, enc encoding.Encoding, cfg *config, log *zap.Logger) result {
	r := result{file: name}
	f, err := os.Open(name)
	if err != nil {
		r.err = errors.WithStack(err)
		return r
	}
	if fi, err := f.Stat(); err == nil {
		r.size = fi.Size()
	}

	log = log.With(zap.String("file", name))
	opts := []parsekit.Option{parsekit.WithLogger(log)}
	if cfg.ChunkSize > 0 {
		opts = append(opts, parsekit.WithChunkSize(cfg.ChunkSize))
	}
	// f is closed by the parser
	src := source.WithContext(ctx, source.Decode(f, enc))
	_, r.err = parsekit.Parse(json.Document, src, token.RunePosTab(cfg.TabWidth), opts...)
	log.Debug("parse done", zap.Int64("size", r.size), zap.Error(r.err))
	return r
}

// report prints the error in r. For parse errors, the offending line is
// printed as well, with a caret under the error column.
func report(w io.Writer, r result, enc encoding.Encoding, tabWidth int) {
	fmt.Fprintf(w, "%s: %v\n", r.file, r.err)

	var pe *parsekit.ParseError[rune]
	if !errors.As(r.err, &pe) {
		return
	}
	f, err := os.Open(r.file)
	if err != nil {
		return
	}
	defer f.Close()
	line, err := token.Line(f, pe.Pos.Line)
	if err != nil {
		return
	}
	if line, err = enc.NewDecoder().Bytes(line); err != nil {
		return
	}
	fmt.Fprintf(w, "%s\n%s\n", line, token.Caret(line, pe.Pos.Column, tabWidth))
}
