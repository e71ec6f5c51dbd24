// Copyright © 2024 compgraph authors. All rights reserved.

// Command tfidf computes TF-IDF scores of words in documents and keeps,
// for every word, the three documents where it scores highest,
// mirroring original_source/examples/run_inverted_index.py.
package main

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/dkovalenko/compgraph"
	"github.com/dkovalenko/compgraph/pipelines"
	"github.com/dkovalenko/compgraph/rowio"
)

func main() {
	inputPath := pflag.String("input_filepath", "", "path to the input table")
	outputPath := pflag.String("output_filepath", "", "path to write the result table")
	pflag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Str("run_id", uuid.NewString()).Logger()

	if *inputPath == "" || *outputPath == "" {
		log.Fatal().Msg("--input_filepath and --output_filepath are required")
	}

	start := time.Now()
	graph := pipelines.InvertedIndex("input", "doc_id", "text", "tf_idf", rowio.DefaultParser{})
	stream, err := graph.Execute(compgraph.Bindings{
		"input": compgraph.WithFile(*inputPath),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("building pipeline")
	}
	defer stream.Close()

	out, err := os.Create(*outputPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *outputPath).Msg("creating output file")
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	defer w.Flush()

	rows := 0
	for {
		row, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal().Err(err).Msg("running pipeline")
		}
		line, err := rowio.WriteRow(row)
		if err != nil {
			log.Fatal().Err(err).Msg("writing row")
		}
		w.WriteString(line)
		w.WriteByte('\n')
		rows++
	}

	log.Info().
		Int("rows", rows).
		Dur("elapsed", time.Since(start)).
		Str("output", *outputPath).
		Msg("tf-idf complete")
}
