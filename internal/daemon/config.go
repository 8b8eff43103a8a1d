package daemon

import (
	"errors"
	"github.com/creasty/defaults"
	"github.com/icinga/icinga-filter/internal"
	"github.com/icinga/icinga-filter/internal/query"
	"github.com/icinga/icinga-filter/internal/records"
	"github.com/icinga/icinga-go-library/config"
	"github.com/icinga/icinga-go-library/logging"
	"github.com/icinga/icinga-go-library/utils"
	"os"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

type ConfigFile struct {
	Records string         `yaml:"records"`
	Output  records.Format `yaml:"output" default:"table"`
	Query   query.Query    `yaml:"query"`
	Logging logging.Config `yaml:"logging"`
}

// SetDefaults implements the defaults.Setter interface.
func (c *ConfigFile) SetDefaults() {
	if defaults.CanUpdate(c.Records) {
		c.Records = internal.SysConfDir + "/icinga-filter/records.yml"
	}
}

// Validate implements the config.Validator interface.
// Validates the entire configuration before any record is loaded.
func (c *ConfigFile) Validate() error {
	if c.Records == "" {
		return errors.New("records file missing")
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Query.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}

	return nil
}

// Assert interface compliance.
var (
	_ defaults.Setter  = (*ConfigFile)(nil)
	_ config.Validator = (*ConfigFile)(nil)
)

// Flags defines the CLI flags supported by icinga-filter.
type Flags struct {
	// Version decides whether to just print the version and exit.
	Version bool `long:"version" description:"print version and exit"`
	// Config is the path to the config file
	Config string `short:"c" long:"config" description:"path to config file"`
	// Records overrides the records file of the config file.
	Records string `short:"r" long:"records" description:"path to a YAML or JSON file of records to filter"`
	// Output overrides the output format of the config file.
	Output string `short:"o" long:"output" description:"output format, table or yaml"`
}

// FromFile loads the config from the given YAML file and applies the flag overrides.
//
// Unknown keys are rejected, so that typos in the query don't silently change its meaning.
// The config is validated again after the overrides have been applied.
func FromFile(path string, flags Flags) (*ConfigFile, error) {
	c := new(ConfigFile)
	if err := config.FromYAMLFile(path, c); err != nil {
		return nil, err
	}

	if flags.Records != "" {
		c.Records = flags.Records
	}
	if flags.Output != "" {
		c.Output = records.Format(flags.Output)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// ParseFlagsAndConfig parses the CLI flags provided to the executable and tries to load the config from the YAML file.
//
// Prints any error during parsing or config loading to os.Stderr and exits, otherwise returns the loaded ConfigFile.
func ParseFlagsAndConfig() *ConfigFile {
	flags := Flags{Config: internal.SysConfDir + "/icinga-filter/config.yml"}
	if err := config.ParseFlags(&flags); err != nil {
		if errors.Is(err, config.ErrInvalidArgument) {
			panic(err)
		}

		utils.PrintErrorThenExit(err, ExitFailure)
	}

	if flags.Version {
		internal.Version.Print("Icinga Filter")
		os.Exit(ExitSuccess)
	}

	conf, err := FromFile(flags.Config, flags)
	if err != nil {
		if errors.Is(err, config.ErrInvalidArgument) {
			panic(err)
		}

		utils.PrintErrorThenExit(err, ExitFailure)
	}

	return conf
}
