// Package etl wires the sparkify pipeline end to end: read the song catalog
// and the event log, build the five star-schema tables, and write each one
// as partitioned parquet.
package etl

import (
	"io"
	"log"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Marcoc51/sparkify"
	"github.com/Marcoc51/sparkify/aws/s3"
	"github.com/Marcoc51/sparkify/file"
	"github.com/Marcoc51/sparkify/kafka"
	"github.com/Marcoc51/sparkify/parquet"
	"github.com/pkg/errors"
)

// Main contains the configuration for a full pipeline run. The input root
// must hold a song_data tree (one json record per file) and a log_data tree
// (newline-delimited json, one file per day), unless events come from kafka.
type Main struct {
	Input      string   `help:"Directory or s3://bucket/prefix holding song_data and log_data."`
	Output     string   `help:"Directory to write the output tables under."`
	Region     string   `help:"AWS region, for s3 input."`
	Lenient    bool     `help:"Skip records which fail schema validation instead of aborting the run."`
	KafkaTopic string   `help:"Kafka topic to read event records from instead of log_data files."`
	KafkaHosts []string `help:"Comma separated list of kafka hosts and ports."`
	KafkaGroup string   `help:"Kafka consumer group."`
	KafkaMax   int      `help:"Number of kafka messages to consume before ending the run."`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Input:      "data",
		Output:     "out",
		Region:     "us-east-1",
		KafkaHosts: []string{"localhost:9092"},
		KafkaGroup: "sparkify",
		KafkaMax:   100000,
	}
}

// Run executes the pipeline. A run either writes all five tables or fails
// as a whole; there is no partial commit.
func (m *Main) Run() error {
	start := time.Now()

	songSrc, err := m.pathSource("song_data")
	if err != nil {
		return errors.Wrap(err, "getting song source")
	}
	songs, err := readSongs(songSrc, m.Lenient)
	if err != nil {
		return err
	}
	eventSrc, err := m.eventSource()
	if err != nil {
		return errors.Wrap(err, "getting event source")
	}
	events, err := readEvents(eventSrc, m.Lenient)
	if err != nil {
		return err
	}
	log.Printf("read %d song records, %d event records", len(songs), len(events))

	songTable := sparkify.BuildSongs(songs)
	artistTable := sparkify.BuildArtists(songs)
	userTable := sparkify.BuildUsers(events)
	timeTable := sparkify.BuildTime(events)
	playTable := sparkify.BuildSongplays(events, songs)

	if err := parquet.Write(filepath.Join(m.Output, "songs"), songTable, sparkify.SongRow.Partitions); err != nil {
		return errors.Wrap(err, "writing songs")
	}
	if err := parquet.Write(filepath.Join(m.Output, "artists"), artistTable, nil); err != nil {
		return errors.Wrap(err, "writing artists")
	}
	if err := parquet.Write(filepath.Join(m.Output, "users"), userTable, nil); err != nil {
		return errors.Wrap(err, "writing users")
	}
	if err := parquet.Write(filepath.Join(m.Output, "time"), timeTable, sparkify.TimeRow.Partitions); err != nil {
		return errors.Wrap(err, "writing time")
	}
	if err := parquet.Write(filepath.Join(m.Output, "songplays"), playTable, sparkify.SongplayRow.Partitions); err != nil {
		return errors.Wrap(err, "writing songplays")
	}

	log.Printf("wrote %d songs, %d artists, %d users, %d time rows, %d songplays in %s",
		len(songTable), len(artistTable), len(userTable), len(timeTable), len(playTable), time.Since(start))
	return nil
}

// pathSource gets a record source for a subtree of the input root, from
// either the local filesystem or S3.
func (m *Main) pathSource(sub string) (sparkify.Source, error) {
	if strings.HasPrefix(m.Input, "s3://") {
		bucket, prefix, err := s3.ParseURL(m.Input)
		if err != nil {
			return nil, err
		}
		return s3.NewSource(m.Region, bucket, path.Join(prefix, sub)+"/")
	}
	return file.NewSource(filepath.Join(m.Input, sub))
}

func (m *Main) eventSource() (sparkify.Source, error) {
	if m.KafkaTopic == "" {
		return m.pathSource("log_data")
	}
	src := kafka.NewSource()
	src.Hosts = m.KafkaHosts
	src.Topics = []string{m.KafkaTopic}
	src.Group = m.KafkaGroup
	src.MaxMsgs = m.KafkaMax
	if err := src.Open(); err != nil {
		return nil, errors.Wrap(err, "opening kafka source")
	}
	return src, nil
}

func readSongs(src sparkify.Source, lenient bool) ([]sparkify.SongRecord, error) {
	var out []sparkify.SongRecord
	for {
		rec, err := src.Record()
		if err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, errors.Wrap(err, "reading song record")
		}
		s, err := sparkify.ParseSong(rec)
		if err != nil {
			if lenient {
				log.Printf("skipping song record: %v", err)
				continue
			}
			return nil, errors.Wrap(err, "parsing song record")
		}
		out = append(out, s)
	}
}

func readEvents(src sparkify.Source, lenient bool) ([]sparkify.EventRecord, error) {
	var out []sparkify.EventRecord
	for {
		rec, err := src.Record()
		if err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, errors.Wrap(err, "reading event record")
		}
		e, err := sparkify.ParseEvent(rec)
		if err != nil {
			if lenient {
				log.Printf("skipping event record: %v", err)
				continue
			}
			return nil, errors.Wrap(err, "parsing event record")
		}
		out = append(out, e)
	}
}
