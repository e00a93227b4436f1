package commonsctl

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/ifkeeper/keeper-commons-utils/component-base/auth"
	cliflag "github.com/ifkeeper/keeper-commons-utils/component-base/cli/flag"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/cryptoutil"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/passwordutil"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/app"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

type passwordOptions struct {
	Length int    `mapstructure:"length" validate:"min=1,max=64"`
	Kinds  int    `mapstructure:"kinds"  validate:"min=1,max=4"`
	Hash   bool   `mapstructure:"hash"`
	Check  string `mapstructure:"check"`
}

func (o *passwordOptions) Flags() (fss cliflag.NamedFlagSets) {
	fs := fss.FlagSet("password")
	fs.IntVarP(&o.Length, "length", "l", o.Length, "Password length.")
	fs.IntVar(&o.Kinds, "kinds", o.Kinds, "Number of character classes to draw from: digits, lower, upper, specials.")
	fs.BoolVar(&o.Hash, "hash", o.Hash, "Also print the bcrypt hash of the password.")
	fs.StringVar(&o.Check, "check", o.Check, "Compare the password given as argument with this bcrypt hash.")
	return fss
}

func (o *passwordOptions) Validate() []error {
	return validateOptions(o)
}

func newPasswordCommand(out io.Writer) *app.Command {
	o := &passwordOptions{Length: passwordutil.DefaultLength, Kinds: passwordutil.MaxKinds}
	return app.NewCommand("password [PASSWORD]", "Generate, hash or verify a password",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			if o.Check != "" {
				if len(args) != 1 {
					return errors.WithCode(code.ErrInvalidArgument, "--check needs the plain password as argument")
				}
				if err := auth.Compare(o.Check, args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintln(out, color.GreenString("password matches"))
				return err
			}

			var (
				pwd string
				err error
			)
			if len(args) > 0 {
				pwd = args[0]
			} else if pwd, err = passwordutil.GenerateWith(o.Length, o.Kinds); err != nil {
				return err
			}
			if !o.Hash {
				_, err = fmt.Fprintln(out, pwd)
				return err
			}

			hashed, err := auth.Encrypt(pwd)
			if err != nil {
				return err
			}
			return printTable(out, "password", pwd, "bcrypt", hashed)
		}),
	)
}

type digestOptions struct {
	Algorithm string `mapstructure:"algorithm" validate:"oneof=md5 sha1 sha256"`
	File      string `mapstructure:"file"`
	Salted    bool   `mapstructure:"salted"`
}

func (o *digestOptions) Flags() (fss cliflag.NamedFlagSets) {
	fs := fss.FlagSet("digest")
	fs.StringVarP(&o.Algorithm, "algorithm", "a", o.Algorithm, "Digest algorithm: md5, sha1 or sha256.")
	fs.StringVarP(&o.File, "file", "f", o.File, "Digest the content of this file instead of the arguments.")
	fs.BoolVar(&o.Salted, "salted", o.Salted, "Append the built-in salt before hashing (md5 and sha256).")
	return fss
}

func (o *digestOptions) Validate() []error {
	return validateOptions(o)
}

func (o *digestOptions) sum(s string) string {
	switch {
	case o.Algorithm == "sha1":
		return cryptoutil.SHA1Hex([]byte(s))
	case o.Algorithm == "sha256" && o.Salted:
		return cryptoutil.EncryptWithSHA256(s)
	case o.Algorithm == "sha256":
		return cryptoutil.SHA256Hex([]byte(s))
	case o.Salted:
		return cryptoutil.EncryptWithMD5(s)
	default:
		return cryptoutil.MD5Hex([]byte(s))
	}
}

func newDigestCommand(out io.Writer) *app.Command {
	o := &digestOptions{Algorithm: "md5"}
	return app.NewCommand("digest [TEXT]", "Print hex digests of text or a file",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			if o.File != "" {
				data, err := os.ReadFile(o.File)
				if err != nil {
					return errors.WrapC(err, code.ErrIO, "read %s", o.File)
				}
				_, err = fmt.Fprintf(out, "%s  %s\n", o.sum(string(data)), o.File)
				return err
			}
			if len(args) == 0 {
				return errors.WithCode(code.ErrInvalidArgument, "nothing to digest")
			}
			_, err := fmt.Fprintln(out, o.sum(strings.Join(args, " ")))
			return err
		}),
	)
}

type base64Options struct {
	Decode bool `mapstructure:"decode"`
}

func (o *base64Options) Flags() (fss cliflag.NamedFlagSets) {
	fss.FlagSet("base64").BoolVarP(&o.Decode, "decode", "d", o.Decode, "Decode instead of encode.")
	return fss
}

func (o *base64Options) Validate() []error { return nil }

func newBase64Command(out io.Writer) *app.Command {
	o := &base64Options{}
	return app.NewCommand("base64 TEXT", "Encode or decode standard base64",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			if len(args) != 1 {
				return errors.WithCode(code.ErrInvalidArgument, "exactly one argument is required")
			}
			if !o.Decode {
				_, err := fmt.Fprintln(out, cryptoutil.Base64EncodeString(args[0]))
				return err
			}
			s, err := cryptoutil.Base64DecodeString(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, s)
			return err
		}),
	)
}

type tripleDESOptions struct {
	Key     string `mapstructure:"key"     validate:"min=24"`
	Decrypt bool   `mapstructure:"decrypt"`
}

func (o *tripleDESOptions) Flags() (fss cliflag.NamedFlagSets) {
	fs := fss.FlagSet("3des")
	fs.StringVarP(&o.Key, "key", "k", o.Key, "Key of at least 24 bytes; only the first 24 are used.")
	fs.BoolVarP(&o.Decrypt, "decrypt", "d", o.Decrypt, "Decrypt colon separated hex instead of encrypting.")
	return fss
}

func (o *tripleDESOptions) Validate() []error {
	return validateOptions(o)
}

func newTripleDESCommand(out io.Writer) *app.Command {
	o := &tripleDESOptions{}
	return app.NewCommand("3des TEXT", "Encrypt or decrypt with 3DES/ECB",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			if len(args) != 1 {
				return errors.WithCode(code.ErrInvalidArgument, "exactly one argument is required")
			}
			var (
				s   string
				err error
			)
			if o.Decrypt {
				s, err = cryptoutil.TripleDESDecrypt(o.Key, args[0])
			} else {
				s, err = cryptoutil.TripleDESEncrypt(o.Key, []byte(args[0]))
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, s)
			return err
		}),
	)
}

type tokenOptions struct {
	SecretID  string        `mapstructure:"secret-id"  validate:"required"`
	SecretKey string        `mapstructure:"secret-key" validate:"required"`
	Issuer    string        `mapstructure:"issuer"`
	Audience  string        `mapstructure:"audience"   validate:"required"`
	TTL       time.Duration `mapstructure:"ttl"        validate:"gt=0"`
}

func (o *tokenOptions) Flags() (fss cliflag.NamedFlagSets) {
	fs := fss.FlagSet("token")
	fs.StringVar(&o.SecretID, "secret-id", o.SecretID, "Secret id written to the kid header.")
	fs.StringVar(&o.SecretKey, "secret-key", o.SecretKey, "HMAC key used to sign the token.")
	fs.StringVar(&o.Issuer, "issuer", o.Issuer, "Token issuer.")
	fs.StringVar(&o.Audience, "audience", o.Audience, "Token audience.")
	fs.DurationVar(&o.TTL, "ttl", o.TTL, "Token lifetime.")
	return fss
}

func (o *tokenOptions) Validate() []error {
	return validateOptions(o)
}

func newTokenCommand(out io.Writer) *app.Command {
	o := &tokenOptions{Issuer: "commonsctl", Audience: "feed.ifkeeper.com", TTL: 2 * time.Hour}
	return app.NewCommand("token", "Sign a JWT accepted by feed-apiserver",
		app.WithCommandOptions(o),
		app.WithCommandRunFunc(func(args []string) error {
			token, err := auth.SignWithTTL(o.SecretID, o.SecretKey, o.Issuer, o.Audience, o.TTL)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, token)
			return err
		}),
	)
}
