package commonsctl

import (
	"fmt"
	"io"
	"strconv"

	cliflag "github.com/ifkeeper/keeper-commons-utils/component-base/cli/flag"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/geoutil"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/ziputil"
	"github.com/ifkeeper/keeper-commons-utils/component-base/version"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/app"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

type gzipOptions struct {
	Decompress bool `mapstructure:"decompress"`
	Keep       bool `mapstructure:"keep"`
}

func (o *gzipOptions) Flags() (fss cliflag.NamedFlagSets) {
	fs := fss.FlagSet("gzip")
	fs.BoolVarP(&o.Decompress, "decompress", "d", o.Decompress, "Decompress FILE.gz into FILE.")
	fs.BoolVarP(&o.Keep, "keep", "k", o.Keep, "Keep the input file.")
	return fss
}

func (o *gzipOptions) Validate() []error { return nil }

func newGzipCommand(out io.Writer) *app.Command {
	o := &gzipOptions{}
	return app.NewCommand("gzip FILE...", "Compress or decompress files",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			if len(args) == 0 {
				return errors.WithCode(code.ErrInvalidArgument, "at least one file is required")
			}
			for _, path := range args {
				var (
					target string
					err    error
				)
				if o.Decompress {
					target, err = ziputil.DecompressFile(path, !o.Keep)
				} else {
					target, err = ziputil.CompressFile(path, !o.Keep)
				}
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(out, "%s -> %s\n", path, target); err != nil {
					return err
				}
			}
			return nil
		}),
	)
}

type distanceOptions struct {
	FromLng float64 `mapstructure:"from-lng" validate:"min=-180,max=180"`
	FromLat float64 `mapstructure:"from-lat" validate:"min=-90,max=90"`
	ToLng   float64 `mapstructure:"to-lng"   validate:"min=-180,max=180"`
	ToLat   float64 `mapstructure:"to-lat"   validate:"min=-90,max=90"`
}

func (o *distanceOptions) Flags() (fss cliflag.NamedFlagSets) {
	fs := fss.FlagSet("distance")
	fs.Float64Var(&o.FromLng, "from-lng", o.FromLng, "Longitude of the start point.")
	fs.Float64Var(&o.FromLat, "from-lat", o.FromLat, "Latitude of the start point.")
	fs.Float64Var(&o.ToLng, "to-lng", o.ToLng, "Longitude of the end point.")
	fs.Float64Var(&o.ToLat, "to-lat", o.ToLat, "Latitude of the end point.")
	return fss
}

func (o *distanceOptions) Validate() []error {
	return validateOptions(o)
}

func newDistanceCommand(out io.Writer) *app.Command {
	o := &distanceOptions{}
	return app.NewCommand("distance", "Great-circle distance between two points in kilometers",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			d := geoutil.Distance(o.FromLng, o.FromLat, o.ToLng, o.ToLat)
			_, err := fmt.Fprintln(out, strconv.FormatFloat(d, 'f', 1, 64)+" km")
			return err
		}),
	)
}

type versionOptions struct {
	Output string `mapstructure:"output" validate:"omitempty,oneof=json text"`
}

func (o *versionOptions) Flags() (fss cliflag.NamedFlagSets) {
	fss.FlagSet("version").StringVarP(&o.Output, "output", "o", o.Output, "One of 'text' or 'json'.")
	return fss
}

func (o *versionOptions) Validate() []error {
	return validateOptions(o)
}

func newVersionCommand(out io.Writer) *app.Command {
	o := &versionOptions{Output: "text"}
	return app.NewCommand("version", "Print the version information",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			info := version.Get()
			if o.Output == "json" {
				_, err := fmt.Fprintln(out, info.ToJSON())
				return err
			}
			_, err := fmt.Fprint(out, info.String())
			return err
		}),
	)
}
