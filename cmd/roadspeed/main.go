// Copyright © 2024 compgraph authors. All rights reserved.

// Command roadspeed measures average travel speed by weekday and hour
// from road-segment traversal and length tables, mirroring
// original_source/examples/run_yandex_maps.py.
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
	travelTimePath := pflag.String("filepath_travel_time", "", "path to the road-segment traversal table")
	edgeLengthPath := pflag.String("filepath_edge_length", "", "path to the road-segment endpoint table")
	outputPath := pflag.String("output_filepath", "", "path to write the result table")
	pflag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Str("run_id", uuid.NewString()).Logger()

	if *travelTimePath == "" || *edgeLengthPath == "" || *outputPath == "" {
		log.Fatal().Msg("--filepath_travel_time, --filepath_edge_length, and --output_filepath are required")
	}

	start := time.Now()
	graph := pipelines.RoadSpeed("travel_time", "edge_length", rowio.DefaultParser{}, pipelines.DefaultRoadSpeedColumns())
	stream, err := graph.Execute(compgraph.Bindings{
		"travel_time": compgraph.WithFile(*travelTimePath),
		"edge_length": compgraph.WithFile(*edgeLengthPath),
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
		Msg("road speed complete")
}
