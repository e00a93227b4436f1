package commonsctl

import (
	"fmt"
	"io"
	"strconv"
	"time"

	cliflag "github.com/ifkeeper/keeper-commons-utils/component-base/cli/flag"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/dateutil"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/idutil"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/stringutil"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	genericoptions "github.com/ifkeeper/keeper-commons-utils/internal/pkg/options"
	"github.com/ifkeeper/keeper-commons-utils/pkg/app"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// addInstantFlags 注册时间基准和时刻相关的标志.
func addInstantFlags(fss *cliflag.NamedFlagSets, feed *genericoptions.FeedOptions, at *string) {
	fss.FlagSet("time").StringVar(at, "at", *at, "Instant to encode, RFC3339 or unix milliseconds. Defaults to now.")
	feed.AddFlags(fss.FlagSet("feed"))
}

func validateInstant(feed *genericoptions.FeedOptions, at string) []error {
	errs := feed.Validate()
	if at != "" {
		if _, err := dateutil.ParseInstant(at); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func instant(at string) time.Time {
	if at == "" {
		return time.Now()
	}
	t, _ := dateutil.ParseInstant(at)
	return t
}

func checkUserTag(feed *genericoptions.FeedOptions, userTag string) error {
	if !stringutil.IsAlphanumeric(userTag) {
		return errors.WithCode(code.ErrInvalidArgument, "user tag %q must be alphanumeric", userTag)
	}
	if n := feed.UserTagLength; n > 0 && len(userTag) != n {
		return errors.WithCode(code.ErrInvalidArgument, "user tag %q must be %d characters", userTag, n)
	}
	return nil
}

type postIDOptions struct {
	Feed    *genericoptions.FeedOptions `mapstructure:"feed"     validate:"-"`
	At      string                      `mapstructure:"at"`
	UserTag string                      `mapstructure:"user-tag" validate:"required"`
	Seq     int                         `mapstructure:"seq"      validate:"min=1,max=99"`
}

func (o *postIDOptions) Flags() (fss cliflag.NamedFlagSets) {
	fs := fss.FlagSet("postid")
	fs.StringVarP(&o.UserTag, "user-tag", "u", o.UserTag, "User tag prefixing the id.")
	fs.IntVarP(&o.Seq, "seq", "s", o.Seq, "Sequence within the second, 1 to 99.")
	addInstantFlags(&fss, o.Feed, &o.At)
	return fss
}

func (o *postIDOptions) Validate() []error {
	return append(validateOptions(o), validateInstant(o.Feed, o.At)...)
}

func newPostIDCommand(out io.Writer) *app.Command {
	o := &postIDOptions{Feed: genericoptions.NewFeedOptions(), Seq: 1}
	return app.NewCommand("postid", "Generate a post id",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			if err := checkUserTag(o.Feed, o.UserTag); err != nil {
				return err
			}
			g, err := o.Feed.NewGenerator()
			if err != nil {
				return err
			}
			at := instant(o.At)
			id, err := g.PostIDAt(o.UserTag, at, o.Seq)
			if err != nil {
				return err
			}
			elapsed, _ := g.Elapsed(at)

			return printTable(out,
				"postID", id,
				"elapsed", strconv.FormatInt(elapsed, 10)+"s",
				"benchmark", g.Benchmark().Format(time.RFC3339),
			)
		}),
	)
}

type weekIDOptions struct {
	Feed    *genericoptions.FeedOptions `mapstructure:"feed"     validate:"-"`
	At      string                      `mapstructure:"at"`
	UserTag string                      `mapstructure:"user-tag" validate:"required"`
}

func (o *weekIDOptions) Flags() (fss cliflag.NamedFlagSets) {
	fss.FlagSet("weekid").StringVarP(&o.UserTag, "user-tag", "u", o.UserTag, "User tag prefixing the id.")
	addInstantFlags(&fss, o.Feed, &o.At)
	return fss
}

func (o *weekIDOptions) Validate() []error {
	return append(validateOptions(o), validateInstant(o.Feed, o.At)...)
}

func newWeekIDCommand(out io.Writer) *app.Command {
	o := &weekIDOptions{Feed: genericoptions.NewFeedOptions()}
	return app.NewCommand("weekid", "Generate the week id of a user",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			if err := checkUserTag(o.Feed, o.UserTag); err != nil {
				return err
			}
			g, err := o.Feed.NewGenerator()
			if err != nil {
				return err
			}
			at := instant(o.At)
			id, err := g.PostWeekIDAt(o.UserTag, at)
			if err != nil {
				return err
			}

			return printTable(out,
				"weekID", id,
				"weekStart", g.WeekStart(at).Format(time.RFC3339),
			)
		}),
	)
}

type parseIDOptions struct {
	Feed *genericoptions.FeedOptions `mapstructure:"feed" validate:"-"`
}

func (o *parseIDOptions) Flags() (fss cliflag.NamedFlagSets) {
	o.Feed.AddFlags(fss.FlagSet("feed"))
	return fss
}

func (o *parseIDOptions) Validate() []error {
	return o.Feed.Validate()
}

func newParseIDCommand(out io.Writer) *app.Command {
	o := &parseIDOptions{Feed: genericoptions.NewFeedOptions()}
	return app.NewCommand("parseid POST_ID...", "Split post ids into user tag, time and sequence",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			if len(args) == 0 {
				return errors.WithCode(code.ErrInvalidArgument, "at least one post id is required")
			}
			g, err := o.Feed.NewGenerator()
			if err != nil {
				return err
			}
			for _, arg := range args {
				id, err := g.Parse(arg, o.Feed.UserTagLength)
				if err != nil {
					return err
				}
				if err := printTable(out,
					"postID", arg,
					"userTag", id.UserTag,
					"time", id.Time.Format(time.RFC3339),
					"seq", strconv.Itoa(id.Seq),
				); err != nil {
					return err
				}
			}
			return nil
		}),
	)
}

type uuidOptions struct {
	Kind   string `mapstructure:"kind"   validate:"oneof=uuid user snowflake short instance secret-id secret-key"`
	Count  int    `mapstructure:"count"  validate:"min=1,max=1000"`
	Prefix string `mapstructure:"prefix"`
}

func (o *uuidOptions) Flags() (fss cliflag.NamedFlagSets) {
	fs := fss.FlagSet("uuid")
	fs.StringVarP(&o.Kind, "kind", "k", o.Kind, "One of uuid, user, snowflake, short, instance, secret-id, secret-key.")
	fs.IntVarP(&o.Count, "count", "n", o.Count, "Number of ids to generate.")
	fs.StringVar(&o.Prefix, "prefix", o.Prefix, "Prefix of short and instance ids.")
	return fss
}

func (o *uuidOptions) Validate() []error {
	return validateOptions(o)
}

func (o *uuidOptions) next() (string, error) {
	switch o.Kind {
	case "user":
		return idutil.NewUserID(), nil
	case "snowflake":
		id, err := idutil.GetIntID()
		return strconv.FormatUint(id, 10), err
	case "short":
		return idutil.GetUUID36(o.Prefix)
	case "instance":
		id, err := idutil.GetIntID()
		if err != nil {
			return "", err
		}
		return idutil.GetInstanceID(id, o.Prefix)
	case "secret-id":
		return idutil.NewSecretID(), nil
	case "secret-key":
		return idutil.NewSecretKey(), nil
	default:
		return idutil.NewUUID(), nil
	}
}

func newUUIDCommand(out io.Writer) *app.Command {
	o := &uuidOptions{Kind: "uuid", Count: 1}
	return app.NewCommand("uuid", "Generate unique ids",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			for i := 0; i < o.Count; i++ {
				id, err := o.next()
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out, id); err != nil {
					return err
				}
			}
			return nil
		}),
	)
}
