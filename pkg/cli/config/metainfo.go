package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/metarel/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

const (
	// FlagMetainfo names the metainfo path flag
	FlagMetainfo = "metainfo"
	// FlagRepositoryURL names the repository URL flag
	FlagRepositoryURL = "repository-url"
	// FlagConfig names the TOML config file flag
	FlagConfig = "config"
	// FlagDryRun names the dry run flag
	FlagDryRun = "dry-run"
)

// Metainfo holds the location of the metainfo file and how release links are built
type Metainfo struct {
	Path          string
	RepositoryURL string
	ConfigFile    string
	DryRun        bool
}

// metainfoFile is the TOML representation of Metainfo
type metainfoFile struct {
	Metainfo      string `toml:"metainfo"`
	RepositoryURL string `toml:"repository_url"`
}

// Flags returns CLI flags for metainfo configuration
func (c *Metainfo) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        FlagMetainfo,
			Aliases:     []string{"m"},
			Usage:       "Path to the AppStream metainfo XML file",
			Value:       types.DefaultMetainfoPath,
			Destination: &c.Path,
			Sources:     cli.EnvVars("METAREL_METAINFO"),
		},
		&cli.StringFlag{
			Name:        FlagRepositoryURL,
			Usage:       "Repository URL used to build the default release tag link",
			Value:       types.DefaultRepositoryURL,
			Destination: &c.RepositoryURL,
			Sources:     cli.EnvVars("METAREL_REPOSITORY_URL"),
		},
		&cli.StringFlag{
			Name:        FlagConfig,
			Aliases:     []string{"c"},
			Usage:       "TOML file providing metainfo and repository_url",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("METAREL_CONFIG"),
		},
		&cli.BoolFlag{
			Name:        FlagDryRun,
			Usage:       "Print the updated metainfo to stdout instead of writing the file",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("METAREL_DRY_RUN"),
		},
	}
}

// Load applies values of ConfigFile to options for which isSet reports false,
// then checks that every option has a value.
func (c *Metainfo) Load(isSet func(name string) bool) error {
	if c.ConfigFile != "" {
		fd, err := os.Open(c.ConfigFile)
		if err != nil {
			return goerr.Wrap(err, "failed to open config file", goerr.V("path", c.ConfigFile))
		}
		defer fd.Close()

		var file metainfoFile
		if err := toml.NewDecoder(fd).DisallowUnknownFields().Decode(&file); err != nil {
			return goerr.Wrap(err, "failed to decode config file", goerr.V("path", c.ConfigFile))
		}

		if file.Metainfo != "" && !isSet(FlagMetainfo) {
			c.Path = file.Metainfo
		}
		if file.RepositoryURL != "" && !isSet(FlagRepositoryURL) {
			c.RepositoryURL = file.RepositoryURL
		}
	}

	if c.Path == "" {
		return goerr.New("metainfo path is empty")
	}
	if c.RepositoryURL == "" {
		return goerr.New("repository URL is empty")
	}

	return nil
}
