// Package config loads and validates the settings of both jobs.
package config

import (
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/naka-gawa/profile-stats/internal/facts"
)

// Defaults used when neither the environment nor a flag sets a value.
const (
	DefaultOutputPath = "assets/stats.svg"
	DefaultReadmePath = "README.md"
	DefaultEnvFile    = ".env"
)

// Card holds the settings of the stats card generator.
type Card struct {
	Login         string        `env:"GITHUB_USERNAME" validate:"required"`
	Token         string        `env:"GITHUB_TOKEN" validate:"required"`
	OutputPath    string        `env:"OUTPUT_PATH" validate:"required"`
	RateLimitWait time.Duration `env:"RATE_LIMIT_WAIT" validate:"gte=0"`
}

// Fact holds the settings of the fact rotator.
type Fact struct {
	ReadmePath string `env:"README_PATH" validate:"required"`
	Anchor     string `env:"FACT_ANCHOR" validate:"required"`
	FactsFile  string `env:"FACTS_FILE"`
}

// Config is the full application configuration.
type Config struct {
	Card Card
	Fact Fact
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their environment variable
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if tag := fld.Tag.Get("env"); tag != "" {
			return tag
		}
		return fld.Name
	})
	return v
}

// Load reads the configuration from the environment after applying envFile.
// A missing envFile is ignored unless strict is set.
func Load(envFile string, strict bool) (cfg Config, err error) {
	if envFile != "" {
		err = applyEnvFile(envFile)
		if err != nil {
			if strict || !errors.Is(err, fs.ErrNotExist) {
				err = errors.Wrapf(err, "failed to load env file: %s", envFile)
				return cfg, err
			}
			err = nil
		}
	}

	cfg = Config{
		Card: Card{
			Login:      os.Getenv("GITHUB_USERNAME"),
			Token:      os.Getenv("GITHUB_TOKEN"),
			OutputPath: getEnv("OUTPUT_PATH", DefaultOutputPath),
		},
		Fact: Fact{
			ReadmePath: getEnv("README_PATH", DefaultReadmePath),
			Anchor:     getEnv("FACT_ANCHOR", facts.DefaultAnchor),
			FactsFile:  os.Getenv("FACTS_FILE"),
		},
	}

	if raw := os.Getenv("RATE_LIMIT_WAIT"); raw != "" {
		cfg.Card.RateLimitWait, err = time.ParseDuration(raw)
		if err != nil {
			err = errors.Wrapf(err, "invalid RATE_LIMIT_WAIT %q", raw)
			return cfg, err
		}
	}

	return cfg, err
}

// applyEnvFile exports the values of envFile for every variable that is unset or empty,
// so an empty variable counts as unset for both the file and the defaults.
func applyEnvFile(envFile string) error {
	values, err := godotenv.Read(envFile)
	if err != nil {
		return err
	}
	for key, value := range values {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return errors.Wrapf(err, "failed to set %s", key)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate checks that the card settings are complete.
func (c *Card) Validate() error {
	return check(c)
}

// Validate checks that the fact settings are complete.
func (f *Fact) Validate() error {
	return check(f)
}

func check(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "config validation failed")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, fe.Field()+" is required")
			continue
		}
		msgs = append(msgs, fe.Field()+" must satisfy "+fe.Tag()+"="+fe.Param())
	}
	return errors.New(strings.Join(msgs, "; "))
}
