// Package sparkify transforms a song-metadata catalog and a user-activity
// event log into a star schema for playback analytics: four dimension tables
// (songs, artists, users, time) and one fact table (songplays), written as
// partitioned parquet.
//
// The pipeline has four stages, each usable on its own:
//
// 1. Source
//
//    A sparkify.Source hands out raw records one at a time as
//    map[string]interface{}, returning io.EOF when the data is exhausted.
//    Sources exist for local file trees (file), S3 prefixes (aws/s3), and
//    Kafka topics (kafka), all of which decode newline-delimited json via the
//    json subpackage. Sources only fetch bytes and decode them - typing and
//    validation belong to the schema layer.
//
// 2. Schema
//
//    ParseSong and ParseEvent turn raw records into typed SongRecord and
//    EventRecord values, coercing string-encoded numbers and rejecting
//    records with missing or mistyped required fields via *SchemaError.
//
// 3. Build
//
//    BuildSongs, BuildArtists, BuildUsers, BuildTime, and BuildSongplays are
//    pure functions from record slices to table row slices. They own all of
//    the interesting decisions: dedup tie-breaks, calendar derivation, the
//    fuzzy event-to-song join, and surrogate-ID assignment.
//
// 4. Write
//
//    The parquet subpackage groups each table by its declared partition keys
//    and writes one self-contained parquet file per partition, using a
//    write-then-rename so re-runs overwrite partitions cleanly.
//
// The etl subpackage wires the stages into a runnable pipeline, and cmd holds
// the command line interface.
package sparkify
