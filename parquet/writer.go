// Package parquet writes table row slices as partitioned parquet files.
//
// Each distinct partition-key tuple becomes one directory level per key,
// hive style ("year=2018/month=11"), holding a single self-contained file.
// Files are written to a temporary name and renamed into place, so rerunning
// a pipeline overwrites each partition atomically instead of appending to it
// or leaving a mix of old and new data behind.
package parquet

import (
	"os"
	"path/filepath"

	parquet "github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
)

// DataFile is the name of the parquet file inside each partition directory.
const DataFile = "data.parquet"

// DefaultPartition is the directory value used for rows whose partition
// column is empty, matching the hive convention.
const DefaultPartition = "__HIVE_DEFAULT_PARTITION__"

// Partition is one key=value component of a partition path.
type Partition struct {
	Key   string
	Value string
}

// Write persists rows under dest, one parquet file per distinct partition
// tuple. partitionBy gives each row's partition values in layout order; a
// nil partitionBy writes the whole table as a single file directly under
// dest. Group order follows first appearance in rows, so output is
// deterministic for a deterministic input order.
func Write[T any](dest string, rows []T, partitionBy func(T) []Partition) error {
	dirs := []string{}
	groups := make(map[string][]T)
	for _, row := range rows {
		dir := dest
		if partitionBy != nil {
			for _, p := range partitionBy(row) {
				val := p.Value
				if val == "" {
					val = DefaultPartition
				}
				dir = filepath.Join(dir, p.Key+"="+val)
			}
		}
		if _, ok := groups[dir]; !ok {
			dirs = append(dirs, dir)
		}
		groups[dir] = append(groups[dir], row)
	}
	if len(rows) == 0 {
		// an empty table still gets an (empty) file carrying the schema
		dirs = append(dirs, dest)
	}
	for _, dir := range dirs {
		if err := writeFile(dir, groups[dir]); err != nil {
			return err
		}
	}
	return nil
}

func writeFile[T any](dir string, rows []T) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	tmp, err := os.CreateTemp(dir, DataFile+".tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	w := parquet.NewGenericWriter[T](tmp, parquet.Compression(&parquet.Snappy))
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			tmp.Close()
			return errors.Wrapf(err, "writing rows to %s", dir)
		}
	}
	if err := w.Close(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "closing parquet writer")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, DataFile)); err != nil {
		return errors.Wrapf(err, "renaming into %s", dir)
	}
	return nil
}
