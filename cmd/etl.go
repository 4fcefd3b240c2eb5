package cmd

import (
	"io"
	"log"
	"time"

	"github.com/Marcoc51/sparkify/etl"
	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"
)

// EtlMain is wrapped by NewEtlCommand and only exported for testing purposes.
var EtlMain *etl.Main

// NewEtlCommand returns a new cobra command wrapping EtlMain.
func NewEtlCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	EtlMain = etl.NewMain()
	etlCommand := &cobra.Command{
		Use:   "etl",
		Short: "etl - build and write the songplay star schema from raw json",
		Long: `Reads the song catalog and event log under the input root, builds the
songs, artists, users, time, and songplays tables, and writes each one as
partitioned parquet under the output root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			err = EtlMain.Run()
			if err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := etlCommand.Flags()
	err = commandeer.Flags(flags, EtlMain)
	if err != nil {
		panic(err)
	}
	return etlCommand
}

func init() {
	subcommandFns["etl"] = NewEtlCommand
}
