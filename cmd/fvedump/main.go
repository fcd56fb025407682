// The fvedump CLI tool prints the FVE metadata of a BitLocker volume image:
// the volume header, the metadata and dataset headers, and the datum records,
// and checks that the redundant metadata copies agree.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/robert-malhotra/go-fve/fve"
	"github.com/robert-malhotra/go-fve/internal/render"
)

var versionGitCommit string
var versionBuildTime string

// Exit codes.
const (
	exitFailure   = 1
	exitMalformed = 2
	exitDiverged  = 3
)

func volumeFlags(extra ...cli.Flag) []cli.Flag {
	return append(extra,
		&cli.IntFlag{Name: "max-metadata-size", Value: fve.DefaultMaxMetadataSize, Usage: "Maximum bytes read for one metadata copy", EnvVars: []string{"FVEDUMP_MAX_METADATA_SIZE"}},
		&cli.Int64Flag{Name: "image-limit", Value: 0, Usage: "Maximum decompressed size of a zstd or lz4 image, 0 for the default", EnvVars: []string{"FVEDUMP_IMAGE_LIMIT"}},
		&cli.BoolFlag{Name: "no-signature-check", Value: false, Usage: "Accept headers without the FVE signature", EnvVars: []string{"FVEDUMP_NO_SIGNATURE_CHECK"}},
	)
}

func copyFlag() cli.Flag {
	return &cli.IntFlag{Name: "copy", Value: 0, Usage: "Metadata copy to read (1-3), 0 for the first readable one", EnvVars: []string{"FVEDUMP_COPY"}}
}

func openVolume(c *cli.Context, log *logrus.Logger) (*fve.Volume, error) {
	path := c.Args().First()
	if path == "" {
		return nil, errors.New("volume image path is required")
	}

	return fve.Open(path,
		fve.WithLogger(log),
		fve.WithMaxMetadataSize(c.Int("max-metadata-size")),
		fve.WithImageLimit(c.Int64("image-limit")),
		fve.WithSignatureCheck(!c.Bool("no-signature-check")),
	)
}

func selectMetadata(ctx context.Context, v *fve.Volume, copyIndex int) (*fve.Metadata, error) {
	if copyIndex == 0 {
		return v.FirstMetadata(ctx)
	}
	return v.Metadata(ctx, copyIndex-1)
}

func walkExit(st fve.Status) error {
	if st.OK() {
		return nil
	}
	return cli.Exit(fmt.Sprintf("datum stream: %s: %v", st, st.Reason), exitMalformed)
}

func newApp(log *logrus.Logger) *cli.App {
	version := fmt.Sprintf("%s.%s", versionGitCommit, versionBuildTime)

	return &cli.App{
		Name:      "fvedump",
		Usage:     "BitLocker metadata inspection tool",
		Version:   version,
		ArgsUsage: "IMAGE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "Set log level (panic, fatal, error, warn, info, debug, trace)", EnvVars: []string{"FVEDUMP_LOG_LEVEL"}},
		},
		// Exit codes are handled by main so the app can run in tests.
		ExitErrHandler: func(*cli.Context, error) {},
		Before: func(c *cli.Context) error {
			logLevel, err := logrus.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			log.SetLevel(logLevel)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Print the volume header, one metadata copy and its datum records",
				ArgsUsage: "IMAGE",
				Flags: volumeFlags(
					copyFlag(),
					&cli.BoolFlag{Name: "payload", Value: false, Usage: "Hex dump the payload of each datum", EnvVars: []string{"FVEDUMP_PAYLOAD"}},
				),
				Action: func(c *cli.Context) error {
					v, err := openVolume(c, log)
					if err != nil {
						return err
					}
					defer v.Close()

					fve.DumpVolume(log, logrus.InfoLevel, v)

					m, err := selectMetadata(c.Context, v, c.Int("copy"))
					if err != nil {
						return err
					}
					log.Infof("Metadata copy at %#x", m.Offset)
					return walkExit(fve.Dump(log, logrus.InfoLevel, m, c.Bool("payload")))
				},
			},
			{
				Name:      "records",
				Usage:     "List the datum records of one metadata copy, one per line",
				ArgsUsage: "IMAGE",
				Flags:     volumeFlags(copyFlag()),
				Action: func(c *cli.Context) error {
					v, err := openVolume(c, log)
					if err != nil {
						return err
					}
					defer v.Close()

					m, err := selectMetadata(c.Context, v, c.Int("copy"))
					if err != nil {
						return err
					}

					st := m.Walk(func(i int, rec fve.Record, _ []byte) error {
						log.WithFields(logrus.Fields{
							"offset": fmt.Sprintf("%#x", rec.Offset),
							"size":   rec.Size,
							"entry":  rec.EntryType.String(),
							"value":  rec.ValueType.String(),
						}).Infof("datum %d", i)
						return nil
					})
					log.WithField("status", st.String()).Info("walk finished")
					return walkExit(st)
				},
			},
			{
				Name:      "verify",
				Usage:     "Read every metadata copy and check that they agree",
				ArgsUsage: "IMAGE",
				Flags:     volumeFlags(),
				Action: func(c *cli.Context) error {
					v, err := openVolume(c, log)
					if err != nil {
						return err
					}
					defer v.Close()

					copies, err := v.AllMetadata(c.Context)
					if err != nil {
						return err
					}

					malformed := false
					for _, cp := range copies {
						entry := log.WithField("copy", cp.Index+1).WithField("offset", fmt.Sprintf("%#x", cp.Offset))
						if cp.Err != nil {
							entry.WithError(cp.Err).Warn("unreadable metadata copy")
							continue
						}
						fp := cp.Metadata.Fingerprint()
						st := cp.Metadata.Walk(nil)
						malformed = malformed || !st.OK()
						entry.WithField("status", st.String()).
							WithField("blake3", hex.EncodeToString(fp[:])).
							Info("metadata copy")
					}

					if !fve.CompareCopies(copies) {
						return cli.Exit("metadata copies differ or none is readable", exitDiverged)
					}
					if malformed {
						return cli.Exit("metadata copies agree but the datum stream is malformed", exitMalformed)
					}
					log.Info("metadata copies agree")
					return nil
				},
			},
		},
	}
}

func main() {
	log := logrus.New()
	log.SetFormatter(&render.LineFormatter{})
	log.SetOutput(os.Stdout)

	if err := newApp(log).Run(os.Args); err != nil {
		log.Error(err)
		code := exitFailure
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			code = exit.ExitCode()
		}
		os.Exit(code)
	}
}
